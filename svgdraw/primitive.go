package svgdraw

import (
	"fmt"

	"github.com/benoitkugler/cutmat/svgpath"
)

// TextAnchor is the horizontal alignment of a text run
// relative to its reference point.
type TextAnchor uint8

const (
	AnchorStart TextAnchor = iota
	AnchorMiddle
	AnchorEnd
)

func (a TextAnchor) String() string {
	switch a {
	case AnchorStart:
		return "start"
	case AnchorMiddle:
		return "middle"
	case AnchorEnd:
		return "end"
	default:
		return "<unknown TextAnchor>"
	}
}

// ParseAnchor accepts the SVG "text-anchor" keywords.
// Unknown values fall back to AnchorStart.
func ParseAnchor(s string) TextAnchor {
	switch s {
	case "middle":
		return AnchorMiddle
	case "end":
		return AnchorEnd
	default:
		return AnchorStart
	}
}

// MarshalText implements encoding.TextMarshaler.
func (a TextAnchor) MarshalText() ([]byte, error) {
	if a > AnchorEnd {
		return nil, fmt.Errorf("invalid text anchor %d", a)
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler,
// and only accepts the three SVG keywords.
func (a *TextAnchor) UnmarshalText(text []byte) error {
	switch s := string(text); s {
	case "start", "middle", "end":
		*a = ParseAnchor(s)
		return nil
	default:
		return fmt.Errorf("invalid text anchor %q", s)
	}
}

// Offset returns the horizontal shift to apply to a run
// of the given width so that it is aligned on its reference point.
func (a TextAnchor) Offset(width float64) float64 {
	switch a {
	case AnchorMiddle:
		return -width / 2
	case AnchorEnd:
		return -width
	default:
		return 0
	}
}

// Stroke describes how an outline is painted.
// A zero Width disables stroking.
type Stroke struct {
	Color string
	Width float64
	Dash  []float64 // nil for solid lines
}

func (s Stroke) visible() bool { return s.Width > 0 && s.Color != "" && s.Color != "none" }

// Primitive is one drawing element of a Document.
// The concrete types are Line, Rect, GlyphGroup and Text.
type Primitive interface {
	isPrimitive()
}

func (Line) isPrimitive()       {}
func (Rect) isPrimitive()       {}
func (GlyphGroup) isPrimitive() {}
func (Text) isPrimitive()       {}

// Line is a straight segment.
type Line struct {
	X1, Y1, X2, Y2 float64
	Stroke         Stroke
}

// Rect is an axis aligned rectangle. An empty Fill means no filling.
type Rect struct {
	X, Y, Width, Height float64
	Fill                string
	Stroke              Stroke
}

// GlyphGroup is a run of stroke font glyphs.
// Path is expressed in the run local space: the baseline is y = 0
// and the run starts at x = 0.
// The group is placed with
//
//	translate(X + Offset, Y) rotate(Rotation, -Offset, 0)
//
// so that rotation happens about the anchor point (X, Y).
type GlyphGroup struct {
	X, Y     float64
	Offset   float64 // as returned by TextAnchor.Offset
	Rotation float64 // degrees
	Path     svgpath.Path
	Stroke   Stroke
}

// Transform returns the group matrix.
func (g GlyphGroup) Transform() svgpath.Matrix2D {
	m := svgpath.Identity.Translate(g.X+g.Offset, g.Y)
	if g.Rotation != 0 {
		m = m.RotateAround(radians(g.Rotation), -g.Offset, 0)
	}
	return m
}

// Text is a plain text element, used when a run
// cannot be drawn with a stroke font.
type Text struct {
	X, Y     float64
	Content  string
	Family   string
	Size     float64
	Rotation float64 // degrees, about (X, Y)
	Anchor   TextAnchor
	Color    string
}

// Layer is a named group of primitives, serialized as <g id="...">.
type Layer struct {
	ID         string
	Primitives []Primitive
}

// Document is the complete, ordered output of the engine.
// Width and Height are in pixels; the view box is 0 0 Width Height.
type Document struct {
	Width, Height float64
	Layers        []Layer
}

// Layer returns the layer with the given id, or nil.
func (doc *Document) Layer(id string) *Layer {
	for i := range doc.Layers {
		if doc.Layers[i].ID == id {
			return &doc.Layers[i]
		}
	}
	return nil
}

// Count returns the number of primitives, in every layer.
func (doc Document) Count() int {
	n := 0
	for _, l := range doc.Layers {
		n += len(l.Primitives)
	}
	return n
}
