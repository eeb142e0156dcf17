package svgdraw

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

var ErrInvalidColor = errors.New("invalid color")

// ParseColor resolves an SVG color value: a named color,
// "#rgb", "#rrggbb" or "rgb(r, g, b)" with integer or percent components.
// "none" and the empty string give ok == false.
func ParseColor(s string) (c color.RGBA, ok bool, err error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "" || s == "none" || s == "transparent":
		return c, false, nil
	case strings.HasPrefix(s, "#"):
		c, err = parseHexColor(s[1:])
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		c, err = parseRGBColor(s[4 : len(s)-1])
	default:
		var found bool
		c, found = colornames.Map[s]
		if !found {
			err = fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
	}
	if err != nil {
		return color.RGBA{}, false, err
	}
	return c, true, nil
}

func parseHexColor(hex string) (color.RGBA, error) {
	var digits [6]byte
	switch len(hex) {
	case 3:
		for i := 0; i < 3; i++ {
			digits[2*i], digits[2*i+1] = hex[i], hex[i]
		}
	case 6:
		copy(digits[:], hex)
	default:
		return color.RGBA{}, fmt.Errorf("%w: #%s", ErrInvalidColor, hex)
	}
	v, err := strconv.ParseUint(string(digits[:]), 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: #%s", ErrInvalidColor, hex)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

func parseRGBColor(args string) (color.RGBA, error) {
	fields := strings.Split(args, ",")
	if len(fields) != 3 {
		return color.RGBA{}, fmt.Errorf("%w: rgb(%s)", ErrInvalidColor, args)
	}
	var comps [3]uint8
	for i, f := range fields {
		f = strings.TrimSpace(f)
		isPercent := strings.HasSuffix(f, "%")
		v, err := strconv.ParseFloat(strings.TrimSuffix(f, "%"), 64)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("%w: rgb(%s)", ErrInvalidColor, args)
		}
		if isPercent {
			v = v * 255 / 100
		}
		comps[i] = uint8(math.Round(min(max(v, 0), 255)))
	}
	return color.RGBA{R: comps[0], G: comps[1], B: comps[2], A: 0xff}, nil
}
