// Package units implements the length arithmetic used by the diagram
// engine. All geometry is normalized to inches before being expressed in
// pixels at a fixed resolution.
package units

import (
	"errors"
	"fmt"
	"strings"
)

// Unit is a supported length unit.
type Unit string

const (
	Inches      Unit = "inches"
	Centimeters Unit = "cm"
	Millimeters Unit = "mm"
)

// Base is the unit every length is normalized to.
const Base = Inches

// PixelsPerInch is the resolution of the output pixel space.
const PixelsPerInch = 96

var ErrUnsupportedUnit = errors.New("unsupported unit")

// All returns the supported units, in display order.
func All() []Unit { return []Unit{Inches, Centimeters, Millimeters} }

// Parse validates s as a unit name. "in" and "inch" are accepted as
// aliases for inches.
func Parse(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inches", "inch", "in":
		return Inches, nil
	case "cm":
		return Centimeters, nil
	case "mm":
		return Millimeters, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedUnit, s)
}

// Valid reports whether u is one of the supported units.
func (u Unit) Valid() bool {
	switch u {
	case Inches, Centimeters, Millimeters:
		return true
	}
	return false
}

func (u Unit) String() string { return string(u) }

// perInch returns how many u fit in one inch.
// It panics on an unknown unit: the set is closed and callers are
// expected to validate with Parse or Valid first.
func (u Unit) perInch() float64 {
	switch u {
	case Inches:
		return 1
	case Centimeters:
		return 2.54
	case Millimeters:
		return 25.4
	}
	panic(fmt.Sprintf("units: %v: %q", ErrUnsupportedUnit, string(u)))
}

// ToBase converts value, expressed in u, to inches.
func ToBase(value float64, u Unit) float64 {
	if u == Inches {
		return value
	}
	return value / u.perInch()
}

// FromBase converts value, expressed in inches, to u.
func FromBase(value float64, u Unit) float64 {
	if u == Inches {
		return value
	}
	return value * u.perInch()
}

// Convert converts value from one unit to another.
func Convert(value float64, from, to Unit) float64 {
	if from == to {
		return value
	}
	return value * to.perInch() / from.perInch()
}

// ToPixels converts a length in u to output pixels.
func ToPixels(value float64, u Unit) float64 {
	return ToBase(value, u) * PixelsPerInch
}

// FromPixels converts a pixel length back to u.
func FromPixels(px float64, u Unit) float64 {
	return FromBase(px/PixelsPerInch, u)
}
