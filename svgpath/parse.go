package svgpath

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

var (
	errParamMismatch  = errors.New("param mismatch")
	errCommandUnknown = errors.New("unknown or unsupported path command")
	errNoMoveTo       = errors.New("path data must start with a moveto")
)

// pathCursor is used while parsing path data
type pathCursor struct {
	path            Path
	placeX, placeY  float64 // start of the current sub-path
	curX, curY      float64
	points          []float64
	hasCurrentPoint bool
}

// Parse compiles SVG path data restricted to polylines: the
// M, L, H, V and Z commands, absolute or relative.
// Curves are rejected since stroke glyphs are made of straight segments.
func Parse(d string) (Path, error) {
	var c pathCursor
	if err := c.compilePath(d); err != nil {
		return nil, err
	}
	return c.path, nil
}

// MustParse is like Parse but panics on malformed data.
// It is intended for static tables.
func MustParse(d string) Path {
	p, err := Parse(d)
	if err != nil {
		panic(fmt.Sprintf("svgpath: %q: %s", d, err))
	}
	return p
}

func (c *pathCursor) compilePath(svgPath string) error {
	lastIndex := -1
	for i, r := range svgPath {
		if !unicode.IsLetter(r) || r == 'e' || r == 'E' {
			continue
		}
		if lastIndex != -1 {
			if err := c.addSeg(svgPath[lastIndex:i]); err != nil {
				return err
			}
		} else if strings.TrimSpace(svgPath[:i]) != "" {
			return errNoMoveTo
		}
		lastIndex = i
	}
	if lastIndex != -1 {
		return c.addSeg(svgPath[lastIndex:])
	}
	if strings.TrimSpace(svgPath) != "" {
		return errNoMoveTo
	}
	return nil
}

// getPoints reads the numbers of dataPoints into c.points.
func (c *pathCursor) getPoints(dataPoints string) error {
	c.points = c.points[:0]
	fields := strings.FieldsFunc(dataPoints, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	for _, f := range fields {
		// a sign not following an exponent starts a new number
		start := 0
		for i := 1; i < len(f); i++ {
			if (f[i] == '-' || f[i] == '+') && f[i-1] != 'e' && f[i-1] != 'E' {
				if err := c.appendNumber(f[start:i]); err != nil {
					return err
				}
				start = i
			}
		}
		if err := c.appendNumber(f[start:]); err != nil {
			return err
		}
	}
	return nil
}

func (c *pathCursor) appendNumber(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q: %w", s, err)
	}
	c.points = append(c.points, v)
	return nil
}

func (c *pathCursor) addSeg(segString string) error {
	if err := c.getPoints(segString[1:]); err != nil {
		return err
	}
	key := segString[0]
	if !c.hasCurrentPoint && key != 'M' && key != 'm' {
		return errNoMoveTo
	}
	l := len(c.points)
	switch key {
	case 'M', 'm':
		if l < 2 || l%2 != 0 {
			return errParamMismatch
		}
		rel := key == 'm' && c.hasCurrentPoint
		for i := 0; i < l; i += 2 {
			x, y := c.points[i], c.points[i+1]
			if rel {
				x, y = x+c.curX, y+c.curY
			}
			if i == 0 {
				c.placeX, c.placeY = x, y
				c.path.Start(toFixedP(x, y))
			} else {
				// implicit lineto
				c.path.Line(toFixedP(x, y))
			}
			c.curX, c.curY = x, y
			rel = key == 'm'
		}
		c.hasCurrentPoint = true
	case 'L', 'l':
		if l == 0 || l%2 != 0 {
			return errParamMismatch
		}
		for i := 0; i < l; i += 2 {
			x, y := c.points[i], c.points[i+1]
			if key == 'l' {
				x, y = x+c.curX, y+c.curY
			}
			c.path.Line(toFixedP(x, y))
			c.curX, c.curY = x, y
		}
	case 'H', 'h':
		if l == 0 {
			return errParamMismatch
		}
		for _, x := range c.points {
			if key == 'h' {
				x += c.curX
			}
			c.path.Line(toFixedP(x, c.curY))
			c.curX = x
		}
	case 'V', 'v':
		if l == 0 {
			return errParamMismatch
		}
		for _, y := range c.points {
			if key == 'v' {
				y += c.curY
			}
			c.path.Line(toFixedP(c.curX, y))
			c.curY = y
		}
	case 'Z', 'z':
		if l != 0 {
			return errParamMismatch
		}
		c.path.Stop(true)
		c.curX, c.curY = c.placeX, c.placeY
	default:
		return fmt.Errorf("%w: %c", errCommandUnknown, key)
	}
	return nil
}
