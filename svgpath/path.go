// Package svgpath implements an abstract representation of
// open and closed polylines, in 26.6 fixed point coordinates,
// which can then be consumed by painting drivers or written
// back as SVG path data.
package svgpath

import (
	"fmt"
	"strings"

	"golang.org/x/image/math/fixed"
)

type pathCommand uint8

// Human readable path constants
const (
	pathMoveTo pathCommand = iota
	pathLineTo
	pathClose
)

// Operation groups the different path commands
type Operation interface {
	command() pathCommand
}

type MoveTo fixed.Point26_6

type LineTo fixed.Point26_6

type Close struct{}

func (MoveTo) command() pathCommand { return pathMoveTo }
func (LineTo) command() pathCommand { return pathLineTo }
func (Close) command() pathCommand  { return pathClose }

// Path describes a sequence of basic SVG operations.
type Path []Operation

// ToSVGPath returns a string representation of the path,
// suitable for the "d" attribute of a <path> element.
func (p Path) ToSVGPath() string {
	chunks := make([]string, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			chunks[i] = fmt.Sprintf("M%.3f,%.3f", float32(op.X)/64, float32(op.Y)/64)
		case LineTo:
			chunks[i] = fmt.Sprintf("L%.3f,%.3f", float32(op.X)/64, float32(op.Y)/64)
		case Close:
			chunks[i] = "Z"
		}
	}
	return strings.Join(chunks, " ")
}

// String returns a readable representation of a Path.
func (p Path) String() string {
	return p.ToSVGPath()
}

// Clear zeros the path slice
func (p *Path) Clear() {
	*p = (*p)[:0]
}

// Start starts a new polyline at the given point.
func (p *Path) Start(a fixed.Point26_6) {
	*p = append(*p, MoveTo{a.X, a.Y})
}

// Line adds a linear segment to the current polyline.
func (p *Path) Line(b fixed.Point26_6) {
	*p = append(*p, LineTo{b.X, b.Y})
}

// Stop joins the ends of the path
func (p *Path) Stop(closeLoop bool) {
	if closeLoop {
		*p = append(*p, Close{})
	}
}

// Transform returns a new path with every point mapped by m.
func (p Path) Transform(m Matrix2D) Path {
	out := make(Path, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			out[i] = MoveTo(m.TFixed(fixed.Point26_6(op)))
		case LineTo:
			out[i] = LineTo(m.TFixed(fixed.Point26_6(op)))
		default:
			out[i] = op
		}
	}
	return out
}

// Bounds returns the extent of the points of the path.
// The zero rectangle is returned for an empty path.
func (p Path) Bounds() fixed.Rectangle26_6 {
	var (
		r    fixed.Rectangle26_6
		seen bool
	)
	add := func(pt fixed.Point26_6) {
		if !seen {
			r.Min, r.Max, seen = pt, pt, true
			return
		}
		r.Min.X, r.Min.Y = min(r.Min.X, pt.X), min(r.Min.Y, pt.Y)
		r.Max.X, r.Max.Y = max(r.Max.X, pt.X), max(r.Max.Y, pt.Y)
	}
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			add(fixed.Point26_6(op))
		case LineTo:
			add(fixed.Point26_6(op))
		}
	}
	return r
}

// Polylines splits the path at each MoveTo and returns the points
// of every sub-path. A closed sub-path repeats its first point.
func (p Path) Polylines() [][]fixed.Point26_6 {
	var (
		out     [][]fixed.Point26_6
		current []fixed.Point26_6
	)
	flush := func() {
		if len(current) > 0 {
			out = append(out, current)
		}
		current = nil
	}
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			flush()
			current = []fixed.Point26_6{fixed.Point26_6(op)}
		case LineTo:
			current = append(current, fixed.Point26_6(op))
		case Close:
			if len(current) > 0 {
				current = append(current, current[0])
			}
		}
	}
	flush()
	return out
}
