package config

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/benoitkugler/cutmat/units"
)

var (
	// ErrMissingFont is returned when the font settings,
	// or one of its two parts, are absent.
	ErrMissingFont = errors.New("missing font configuration")

	ErrInvalidValue = errors.New("invalid configuration value")
)

// Sanitize replaces NaN, infinite and negative lengths by 0,
// and non finite angles by 0. It returns the cleaned copy and
// the names of the fields it changed.
func Sanitize(c Config) (Config, []string) {
	out := c.Clone()
	var fixed []string
	length := func(v *float64, name string) {
		if math.IsNaN(*v) || math.IsInf(*v, 0) || *v < 0 {
			*v = 0
			fixed = append(fixed, name)
		}
	}
	finite := func(v *float64, name string) {
		if math.IsNaN(*v) || math.IsInf(*v, 0) {
			*v = 0
			fixed = append(fixed, name)
		}
	}

	length(&out.Canvas.Width, "canvas.width")
	length(&out.Canvas.Height, "canvas.height")
	length(&out.Canvas.Margin, "canvas.margin")
	for _, t := range []struct {
		g    *Grid
		name string
	}{
		{&out.PrimaryGrid, "primaryGrid"},
		{&out.SecondaryGrid, "secondaryGrid"},
		{&out.TertiaryGrid, "tertiaryGrid"},
	} {
		length(&t.g.Interval, t.name+".interval")
		length(&t.g.LineWeight, t.name+".lineWeight")
	}
	if out.Font != nil && out.Font.Label != nil {
		length(&out.Font.Label.Size, "font.label.size")
		finite(&out.Font.Label.Rotation, "font.label.rotation")
	}
	if out.Font != nil && out.Font.Axis != nil {
		a := out.Font.Axis
		length(&a.Size, "font.axis.size")
		finite(&a.TopRotation, "font.axis.topRotation")
		finite(&a.LeftRotation, "font.axis.leftRotation")
		finite(&a.LabelDistance, "font.axis.labelDistance")
	}
	return out, fixed
}

// Validate checks the structural requirements of c:
// the font settings must be present, and the enumerated
// fields of enabled tiers and overlays must hold known values.
func Validate(c Config) error {
	switch {
	case c.Font == nil:
		return ErrMissingFont
	case c.Font.Label == nil:
		return fmt.Errorf("%w: label", ErrMissingFont)
	case c.Font.Axis == nil:
		return fmt.Errorf("%w: axis", ErrMissingFont)
	}
	if !c.Canvas.Unit.Valid() {
		return fmt.Errorf("canvas: %w: %q", units.ErrUnsupportedUnit, c.Canvas.Unit)
	}
	for _, t := range DrawOrder {
		if g := c.Grid(t); g.Enabled && !g.LineStyle.valid() {
			return fmt.Errorf("%w: %s grid line style %q", ErrInvalidValue, t, g.LineStyle)
		}
	}
	for _, name := range slices.Sorted(maps.Keys(c.PaperSizes)) {
		if o := c.PaperSizes[name]; o.Enabled && !o.LabelAnchor.valid() {
			return fmt.Errorf("%w: %s label anchor %q", ErrInvalidValue, name, o.LabelAnchor)
		}
	}
	return nil
}
