// Package overlay places the outlines of standard paper sheets at the
// origin of the working rectangle, with an anchored label.
package overlay

import (
	"log/slog"

	"github.com/benoitkugler/cutmat/config"
	"github.com/benoitkugler/cutmat/hershey"
	"github.com/benoitkugler/cutmat/paper"
	"github.com/benoitkugler/cutmat/svgdraw"
	"seehuhn.de/go/geom/rect"
)

const (
	// Padding separates a label from its rectangle, in pixels.
	Padding = 8

	// StrokeWidth is the outline width, in pixels.
	StrokeWidth = 2

	// fitTolerance absorbs rounding errors when a sheet has
	// exactly the size of the working rectangle.
	fitTolerance = 1e-9
)

// Dash is the outline dash pattern.
var Dash = []float64{5, 5}

// Orientation of a sheet.
type Orientation uint8

const (
	Portrait Orientation = iota
	Landscape
)

func (o Orientation) String() string {
	switch o {
	case Portrait:
		return "portrait"
	case Landscape:
		return "landscape"
	default:
		return "<unknown Orientation>"
	}
}

// TextRenderer draws and measures label text.
// *hershey.Renderer and hershey.Renderer implement it.
type TextRenderer interface {
	Measure(content, family string, size float64) float64
	Render(t hershey.Text) (svgdraw.Primitive, float64)
}

// Position is the reference point of a label, with its alignment.
type Position struct {
	X, Y   float64
	Anchor svgdraw.TextAnchor
}

// LabelPosition returns where to put the label of r for the given anchor.
// The vertical rules shift the baseline by fontSize so that bottom labels
// hang below the rectangle, and by fontSize/3 to center side labels.
// Unknown anchors are treated as "bottom".
func LabelPosition(r svgdraw.Rect, anchor config.LabelAnchor, fontSize float64) Position {
	var (
		left    = r.X
		right   = r.X + r.Width
		centerX = r.X + r.Width/2
		above   = r.Y - Padding
		below   = r.Y + r.Height + Padding + fontSize
		middleY = r.Y + r.Height/2 + fontSize/3
	)
	switch anchor {
	case config.Top:
		return Position{centerX, above, svgdraw.AnchorMiddle}
	case config.Left:
		return Position{left - Padding, middleY, svgdraw.AnchorEnd}
	case config.Right:
		return Position{right + Padding, middleY, svgdraw.AnchorStart}
	case config.TopLeft:
		return Position{left, above, svgdraw.AnchorStart}
	case config.TopRight:
		return Position{right, above, svgdraw.AnchorEnd}
	case config.BottomLeft:
		return Position{left, below, svgdraw.AnchorStart}
	case config.BottomRight:
		return Position{right, below, svgdraw.AnchorEnd}
	default:
		return Position{centerX, below, svgdraw.AnchorMiddle}
	}
}

// LabelBounds returns the box covered by an unrotated label of the given
// width at pos: from one font size above the baseline to half a size below.
func LabelBounds(pos Position, width, fontSize float64) rect.Rect {
	x := pos.X + pos.Anchor.Offset(width)
	return rect.Rect{LLx: x, LLy: pos.Y - fontSize, URx: x + width, URy: pos.Y + fontSize/2}
}

// Placement is one drawn sheet outline.
type Placement struct {
	Paper       paper.Entry // as drawn, with sides swapped in landscape
	Orientation Orientation
	Rect        svgdraw.Rect
	Label       svgdraw.Primitive
	LabelPos    Position
	LabelBounds rect.Rect
}

// Placer computes the overlays of a configuration.
type Placer struct {
	Papers []paper.Entry // drawing order; nil means paper.Catalog()
	Text   TextRenderer
	Logger *slog.Logger // skipped sheets are logged at debug level; may be nil
}

// Place returns the overlays fitting in the working rectangle of size
// width x height at (x0, y0), all in pixels. Sheets are visited in
// catalog order, portrait before landscape. Sheets larger than the
// working rectangle are skipped.
// Every placed orientation is labelled, so that enabling both gives
// two labels, each positioned relative to its own rectangle.
func (pl Placer) Place(overlays map[string]config.PaperOverlay, font config.LabelFont, width, height, x0, y0 float64) []Placement {
	papers := pl.Papers
	if papers == nil {
		papers = paper.Catalog()
	}
	var out []Placement
	for _, entry := range papers {
		cfg, ok := overlays[entry.Name]
		if !ok || !cfg.Enabled {
			continue
		}
		for _, o := range [...]Orientation{Portrait, Landscape} {
			sheet := entry
			switch o {
			case Portrait:
				if !cfg.Portrait {
					continue
				}
			case Landscape:
				if !cfg.Landscape {
					continue
				}
				sheet = entry.Landscape()
			}
			w, h := sheet.Pixels()
			if !fits(w, width) || !fits(h, height) {
				if pl.Logger != nil {
					pl.Logger.Debug("paper overlay larger than the working area",
						"paper", entry.Name, "orientation", o, "width", w, "height", h)
				}
				continue
			}
			out = append(out, pl.place(sheet, o, cfg, font, svgdraw.Rect{X: x0, Y: y0, Width: w, Height: h}))
		}
	}
	return out
}

func fits(size, available float64) bool {
	return size <= available*(1+fitTolerance)
}

func (pl Placer) place(sheet paper.Entry, o Orientation, cfg config.PaperOverlay, font config.LabelFont, r svgdraw.Rect) Placement {
	r.Stroke = svgdraw.Stroke{Color: cfg.Color, Width: StrokeWidth, Dash: Dash}
	p := Placement{Paper: sheet, Orientation: o, Rect: r}
	text := cfg.CustomLabel
	if text == "" {
		text = sheet.Name
	}
	p.LabelPos = LabelPosition(r, cfg.LabelAnchor, font.Size)
	label, width := pl.Text.Render(hershey.Text{
		Content:  text,
		Family:   font.Family,
		Size:     font.Size,
		X:        p.LabelPos.X,
		Y:        p.LabelPos.Y,
		Rotation: font.Rotation,
		Anchor:   p.LabelPos.Anchor,
		Color:    cfg.Color,
	})
	p.Label = label
	p.LabelBounds = LabelBounds(p.LabelPos, width, font.Size)
	return p
}

// Primitives flattens placements: each rectangle is followed by its label.
func Primitives(ps []Placement) []svgdraw.Primitive {
	out := make([]svgdraw.Primitive, 0, 2*len(ps))
	for _, p := range ps {
		out = append(out, p.Rect, p.Label)
	}
	return out
}
