package svgpath

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// This file implements the transformation from
// simple shapes to their path equivalent

// toFixedP converts two floats to a fixed point.
func toFixedP(x, y float64) (p fixed.Point26_6) {
	p.X = fixed.Int26_6(math.Round(x * 64))
	p.Y = fixed.Int26_6(math.Round(y * 64))
	return
}

// Pt returns the fixed point for (x, y).
func Pt(x, y float64) fixed.Point26_6 { return toFixedP(x, y) }

// AddLine adds an open segment from (x1, y1) to (x2, y2).
func (p *Path) AddLine(x1, y1, x2, y2 float64) {
	p.Start(toFixedP(x1, y1))
	p.Line(toFixedP(x2, y2))
}

// AddRect adds a closed axis aligned rectangle.
func (p *Path) AddRect(minX, minY, maxX, maxY float64) {
	p.Start(toFixedP(minX, minY))
	p.Line(toFixedP(maxX, minY))
	p.Line(toFixedP(maxX, maxY))
	p.Line(toFixedP(minX, maxY))
	p.Stop(true)
}
