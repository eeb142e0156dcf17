// Package grid tiles the working rectangle with the lines of one grid tier.
package grid

import (
	"math"

	"github.com/benoitkugler/cutmat/config"
	"github.com/benoitkugler/cutmat/svgdraw"
)

// MaxSteps bounds the number of positions returned along one axis.
const MaxSteps = 1 << 14

// tolerance is relative to the axis length: positions closer than
// that to the end of the axis are considered to be on it.
const tolerance = 1e-9

func usable(interval, length float64) bool {
	return interval > 0 && length > 0 && !math.IsInf(interval, 0) && !math.IsInf(length, 0) &&
		!math.IsNaN(interval) && !math.IsNaN(length)
}

// Steps returns the interior positions k * interval, k >= 1,
// strictly before length. A position equal to length, up to
// rounding errors, is excluded.
func Steps(interval, length float64) []float64 {
	if !usable(interval, length) {
		return nil
	}
	end := length * (1 - tolerance)
	var out []float64
	for k := 1; k <= MaxSteps; k++ {
		p := float64(k) * interval
		if p >= end {
			break
		}
		out = append(out, p)
	}
	return out
}

// Ticks returns the positions k * interval, k >= 0, up to and
// including length, up to rounding errors.
func Ticks(interval, length float64) []float64 {
	if !usable(interval, length) {
		return nil
	}
	end := length * (1 + tolerance)
	var out []float64
	for k := 0; k <= MaxSteps; k++ {
		p := float64(k) * interval
		if p > end {
			break
		}
		out = append(out, p)
	}
	return out
}

// DashPattern returns the dash array for a line style and weight,
// or nil for solid lines.
func DashPattern(style config.LineStyle, weight float64) []float64 {
	switch style {
	case config.Dashed:
		return []float64{4 * weight, 2 * weight}
	case config.Dotted:
		return []float64{weight, 2 * weight}
	default:
		return nil
	}
}

// Generate returns the lines of one tier over the working rectangle
// of size width x height at (x0, y0): vertical lines first, by
// increasing x, then horizontal lines, by increasing y.
// The interval is in pixels, as are the other arguments. The edges of
// the rectangle are not drawn.
func Generate(tier config.Grid, interval, width, height, x0, y0 float64) []svgdraw.Line {
	if !tier.Enabled {
		return nil
	}
	stroke := svgdraw.Stroke{
		Color: tier.Color,
		Width: tier.LineWeight,
		Dash:  DashPattern(tier.LineStyle, tier.LineWeight),
	}
	xs, ys := Steps(interval, width), Steps(interval, height)
	out := make([]svgdraw.Line, 0, len(xs)+len(ys))
	for _, x := range xs {
		out = append(out, svgdraw.Line{X1: x0 + x, Y1: y0, X2: x0 + x, Y2: y0 + height, Stroke: stroke})
	}
	for _, y := range ys {
		out = append(out, svgdraw.Line{X1: x0, Y1: y0 + y, X2: x0 + width, Y2: y0 + y, Stroke: stroke})
	}
	return out
}
