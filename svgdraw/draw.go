// Given a composed document, implements how to
// draw it on screen.
// This requires a driver implementing the actual draw operations,
// such as a rasterizer to output .png images or a pdf writer.
package svgdraw

import (
	"fmt"
	"image/color"
	"math"

	"github.com/benoitkugler/cutmat/svgpath"
	"golang.org/x/image/math/fixed"
)

// Drawer knows how to do the actual draw operations
// but doesn't need any SVG kwowledge.
// In particular, tranformations matrix are already applied to the points
// before sending them to the Drawer.
type Drawer interface {
	// Clear must reset the internal state (used before starting a new path painting)
	Clear()

	// Start starts a new path at the given point.
	Start(a fixed.Point26_6)

	// Line adds a line from the current point to `b`
	Line(b fixed.Point26_6)

	// Stop closes the path to the start point if `closeLoop` is true
	Stop(closeLoop bool)

	// SetColor sets the color for the current path
	SetColor(c color.Color)

	// Draw fills or strokes the accumulated path using the current settings
	Draw()
}

type Filler interface {
	Drawer

	// Decide to use or not the NonZeroWinding rule for the current path
	SetWinding(useNonZeroWinding bool)
}

type Stroker interface {
	Drawer

	// Parametrize the stroking style for the current path
	SetStrokeOptions(options StrokeOptions)
}

type Driver interface {
	// SetupDrawers returns the backend painters, and
	// will be called at the begining of every path.
	// If the `willXXX` boolean is false, the returned drawer should be nil
	// to avoid useless operations.
	// When both booleans are true, one can assume that the exact same draw operations
	// will be performed on the Filler first and then on the Stroker.
	SetupDrawers(willFill, willStroke bool) (Filler, Stroker)
}

// JoinMode type to specify how segments join.
type JoinMode uint8

const (
	Miter JoinMode = iota
	Round
	Bevel
)

func (s JoinMode) String() string {
	switch s {
	case Round:
		return "Round"
	case Bevel:
		return "Bevel"
	case Miter:
		return "Miter"
	default:
		return "<unknown JoinMode>"
	}
}

// CapMode defines how to draw caps on the ends of lines
type CapMode uint8

const (
	ButtCap CapMode = iota
	RoundCap
	SquareCap
)

func (c CapMode) String() string {
	switch c {
	case ButtCap:
		return "ButtCap"
	case RoundCap:
		return "RoundCap"
	case SquareCap:
		return "SquareCap"
	default:
		return "<unknown CapMode>"
	}
}

type StrokeOptions struct {
	LineWidth  fixed.Int26_6
	MiterLimit fixed.Int26_6
	Join       JoinMode
	Cap        CapMode
	Dash       []float64 // nil or an empty slice for no dashes
	DashOffset float64
}

// Draw paints the document into the driver `d`, after applying
// the transform `t` to every point.
// Text elements have no path representation: they are not drawn
// and are returned to the caller instead.
func Draw(d Driver, doc Document, t svgpath.Matrix2D) (skipped []Text, err error) {
	for _, layer := range doc.Layers {
		for _, prim := range layer.Primitives {
			switch prim := prim.(type) {
			case Line:
				var p svgpath.Path
				p.AddLine(prim.X1, prim.Y1, prim.X2, prim.Y2)
				err = drawPath(d, p, t, "", prim.Stroke, ButtCap, Miter)
			case Rect:
				var p svgpath.Path
				p.AddRect(prim.X, prim.Y, prim.X+prim.Width, prim.Y+prim.Height)
				err = drawPath(d, p, t, prim.Fill, prim.Stroke, ButtCap, Miter)
			case GlyphGroup:
				err = drawPath(d, prim.Path, t.Mult(prim.Transform()), "", prim.Stroke, RoundCap, Round)
			case Text:
				skipped = append(skipped, prim)
			}
			if err != nil {
				return skipped, fmt.Errorf("layer %s: %w", layer.ID, err)
			}
		}
	}
	return skipped, nil
}

// scaleOf returns the length scaling factor of m.
func scaleOf(m svgpath.Matrix2D) float64 {
	return math.Sqrt(math.Abs(m.A*m.D - m.B*m.C))
}

func drawPath(d Driver, p svgpath.Path, t svgpath.Matrix2D, fill string, stroke Stroke, capMode CapMode, join JoinMode) error {
	fillColor, willFill, err := ParseColor(fill)
	if err != nil {
		return err
	}
	var strokeColor color.RGBA
	willStroke := stroke.visible()
	if willStroke {
		strokeColor, willStroke, err = ParseColor(stroke.Color)
		if err != nil {
			return err
		}
	}
	if !willFill && !willStroke {
		return nil
	}

	p = p.Transform(t)
	filler, stroker := d.SetupDrawers(willFill, willStroke)
	if filler != nil {
		filler.Clear()
		filler.SetWinding(true)
		replay(filler, p)
		filler.SetColor(fillColor)
		filler.Draw()
	}
	if stroker != nil {
		scale := scaleOf(t)
		var dash []float64
		for _, v := range stroke.Dash {
			dash = append(dash, v*scale)
		}
		stroker.Clear()
		stroker.SetStrokeOptions(StrokeOptions{
			LineWidth:  fixed.Int26_6(math.Round(stroke.Width * scale * 64)),
			MiterLimit: fixed.I(4),
			Join:       join,
			Cap:        capMode,
			Dash:       dash,
		})
		replay(stroker, p)
		stroker.SetColor(strokeColor)
		stroker.Draw()
	}
	return nil
}

func replay(dr Drawer, p svgpath.Path) {
	started := false
	for _, op := range p {
		switch op := op.(type) {
		case svgpath.MoveTo:
			if started {
				dr.Stop(false)
			}
			dr.Start(fixed.Point26_6(op))
			started = true
		case svgpath.LineTo:
			dr.Line(fixed.Point26_6(op))
		case svgpath.Close:
			dr.Stop(true)
			started = false
		}
	}
	if started {
		dr.Stop(false)
	}
}
