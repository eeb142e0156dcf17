// Package axis draws the rulers along the top and left edges
// of the working rectangle.
package axis

import (
	"math"
	"strconv"

	"github.com/benoitkugler/cutmat/config"
	"github.com/benoitkugler/cutmat/grid"
	"github.com/benoitkugler/cutmat/hershey"
	"github.com/benoitkugler/cutmat/svgdraw"
	"github.com/benoitkugler/cutmat/units"
)

const (
	// TickLength is the length of a tick mark, in pixels,
	// drawn outward from the working rectangle.
	TickLength = 10

	StrokeWidth = 1
)

// TextRenderer draws label text.
type TextRenderer interface {
	Render(t hershey.Text) (svgdraw.Primitive, float64)
}

// FormatValue prints a ruler value expressed in u. Millimeters are
// rounded to integers. Other units use one decimal, which is dropped
// when the rounded value is an integer.
func FormatValue(v float64, u units.Unit) string {
	decimals := 1
	if u == units.Millimeters {
		decimals = 0
	}
	pow := math.Pow10(decimals)
	v = math.Round(v*pow) / pow
	if v == 0 { // avoid "-0"
		return "0"
	}
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// Labeler produces the ruler primitives.
type Labeler struct {
	Text TextRenderer
}

// Frame is the working rectangle, in pixels.
type Frame struct {
	X, Y, Width, Height float64
}

// Generate returns a tick at every multiple of interval (in pixels)
// from 0 through the frame size, along the top edge then the left edge,
// each tick followed by its label when m.ShowLabels is set.
// Labels show the tick position converted to unit.
// Nothing is returned when m.Enabled is false.
func (l Labeler) Generate(m config.Measurements, font config.AxisFont, unit units.Unit, interval float64, f Frame) []svgdraw.Primitive {
	if !m.Enabled {
		return nil
	}
	stroke := svgdraw.Stroke{Color: m.Color, Width: StrokeWidth}
	label := func(pos, x, y, rotation float64, anchor svgdraw.TextAnchor) svgdraw.Primitive {
		prim, _ := l.Text.Render(hershey.Text{
			Content:  FormatValue(units.FromPixels(pos, unit), unit),
			Family:   font.Family,
			Size:     font.Size,
			X:        x,
			Y:        y,
			Rotation: rotation,
			Anchor:   anchor,
			Color:    m.Color,
		})
		return prim
	}

	var out []svgdraw.Primitive
	for _, x := range grid.Ticks(interval, f.Width) {
		out = append(out, svgdraw.Line{X1: f.X + x, Y1: f.Y, X2: f.X + x, Y2: f.Y - TickLength, Stroke: stroke})
		if m.ShowLabels {
			out = append(out, label(x, f.X+x, f.Y-font.LabelDistance, font.TopRotation, font.TopAlignment))
		}
	}
	for _, y := range grid.Ticks(interval, f.Height) {
		out = append(out, svgdraw.Line{X1: f.X, Y1: f.Y + y, X2: f.X - TickLength, Y2: f.Y + y, Stroke: stroke})
		if m.ShowLabels {
			out = append(out, label(y, f.X-font.LabelDistance, f.Y+y+font.Size/3, font.LeftRotation, font.LeftAlignment))
		}
	}
	return out
}
