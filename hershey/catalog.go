// Package hershey draws text with single stroke, plotter style fonts.
//
// Glyphs are open polylines designed on a 21 units cap height, with the
// baseline at y = 0 and y growing downward. The fonts are defined by an
// embedded glyph table and a list of family variants which derive
// heavier or slanted faces from it.
package hershey

import (
	"bufio"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/benoitkugler/cutmat/svgpath"
)

// UnitsPerEm is the glyph design height: a font rendered
// at size s is scaled by s / UnitsPerEm.
const UnitsPerEm = 21

//go:embed data/simplex.txt data/families.json
var dataFS embed.FS

var (
	ErrUnknownFamily = errors.New("unknown font family")
	ErrMalformedFont = errors.New("malformed font entry")
	ErrMissingGlyph  = errors.New("missing glyph")
)

// Glyph is one character, in font units.
type Glyph struct {
	Advance float64
	Path    svgpath.Path
}

// Font maps runes to glyphs.
type Font struct {
	Name   string
	Title  string
	glyphs map[rune]Glyph
}

// Glyph returns the glyph for r.
func (f *Font) Glyph(r rune) (Glyph, bool) {
	g, ok := f.glyphs[r]
	return g, ok
}

// Registry gives access to font families by name.
type Registry interface {
	// Font returns the family, or an error wrapping
	// ErrUnknownFamily or ErrMalformedFont.
	Font(family string) (*Font, error)
}

// Family is one entry of the family list: a variant of the base glyph table.
type Family struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	// Strokes lists horizontal offsets, in font units: each glyph
	// is drawn once per offset to simulate heavier pens.
	Strokes []float64 `json:"strokes"`
	Slant   float64   `json:"slant"`   // degrees, positive leans right
	Spacing float64   `json:"spacing"` // extra advance per glyph
}

func (fa Family) validate() error {
	if len(fa.Strokes) == 0 {
		return fmt.Errorf("%w: %s: no strokes", ErrMalformedFont, fa.Name)
	}
	for _, o := range fa.Strokes {
		if math.IsNaN(o) || math.IsInf(o, 0) || o < 0 {
			return fmt.Errorf("%w: %s: invalid stroke offset %v", ErrMalformedFont, fa.Name, o)
		}
	}
	if math.IsNaN(fa.Slant) || math.Abs(fa.Slant) >= 60 {
		return fmt.Errorf("%w: %s: invalid slant %v", ErrMalformedFont, fa.Name, fa.Slant)
	}
	if math.IsNaN(fa.Spacing) || math.IsInf(fa.Spacing, 0) {
		return fmt.Errorf("%w: %s: invalid spacing %v", ErrMalformedFont, fa.Name, fa.Spacing)
	}
	return nil
}

// Catalog is an immutable Registry.
type Catalog struct {
	fonts  map[string]*Font
	broken map[string]error // families whose definition is unusable
}

var _ Registry = (*Catalog)(nil)

// Font implements Registry.
func (c *Catalog) Font(family string) (*Font, error) {
	if err, ok := c.broken[family]; ok {
		return nil, err
	}
	f, ok := c.fonts[family]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFamily, family)
	}
	return f, nil
}

// Families returns the sorted names of the usable families.
func (c *Catalog) Families() []string {
	out := make([]string, 0, len(c.fonts))
	for name := range c.fonts {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ParseGlyphTable reads a glyph table. Each non empty line not
// starting with '#' has the form
//
//	U+0041 18 M2,0L9,-21L16,0M4.67,-7L13.33,-7
//
// that is a code point, an advance width and optional path data.
func ParseGlyphTable(r io.Reader) (map[rune]Glyph, error) {
	out := make(map[rune]Glyph)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNumber := 0
	for sc.Scan() {
		lineNumber++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 || len(fields) > 3 || !strings.HasPrefix(fields[0], "U+") {
			return nil, fmt.Errorf("glyph table line %d: invalid entry %q", lineNumber, line)
		}
		code, err := strconv.ParseUint(fields[0][2:], 16, 32)
		if err != nil {
			return nil, fmt.Errorf("glyph table line %d: %s", lineNumber, err)
		}
		adv, err := strconv.ParseFloat(fields[1], 64)
		if err != nil || adv < 0 {
			return nil, fmt.Errorf("glyph table line %d: invalid advance %q", lineNumber, fields[1])
		}
		var g Glyph
		g.Advance = adv
		if len(fields) == 3 {
			g.Path, err = svgpath.Parse(fields[2])
			if err != nil {
				return nil, fmt.Errorf("glyph table line %d: %s", lineNumber, err)
			}
		}
		out[rune(code)] = g
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// NewCatalog derives every family from the base glyphs.
// An invalid family does not prevent the others from loading:
// looking it up later returns an error wrapping ErrMalformedFont.
func NewCatalog(base map[rune]Glyph, families []Family) *Catalog {
	c := &Catalog{fonts: make(map[string]*Font), broken: make(map[string]error)}
	for _, fa := range families {
		if err := fa.validate(); err != nil {
			c.broken[fa.Name] = err
			continue
		}
		c.fonts[fa.Name] = deriveFont(base, fa)
	}
	return c
}

func deriveFont(base map[rune]Glyph, fa Family) *Font {
	f := &Font{Name: fa.Name, Title: fa.Title, glyphs: make(map[rune]Glyph, len(base))}
	slant := svgpath.Identity.SkewX(-fa.Slant * math.Pi / 180)
	weight := 0.
	for _, o := range fa.Strokes {
		weight = math.Max(weight, o)
	}
	for r, g := range base {
		var path svgpath.Path
		for _, o := range fa.Strokes {
			path = append(path, g.Path.Transform(slant.Translate(o, 0))...)
		}
		f.glyphs[r] = Glyph{Advance: g.Advance + weight + fa.Spacing, Path: path}
	}
	return f
}

// Load reads a glyph table and a JSON family list.
func Load(glyphTable, families io.Reader) (*Catalog, error) {
	base, err := ParseGlyphTable(glyphTable)
	if err != nil {
		return nil, err
	}
	var fams []Family
	if err := json.NewDecoder(families).Decode(&fams); err != nil {
		return nil, fmt.Errorf("font families: %w", err)
	}
	return NewCatalog(base, fams), nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// DefaultRegistry returns the catalog built from the embedded data.
// It is loaded once and never modified.
func DefaultRegistry() *Catalog {
	defaultOnce.Do(func() {
		table, err := dataFS.Open("data/simplex.txt")
		if err != nil {
			panic(err)
		}
		defer table.Close()
		fams, err := dataFS.Open("data/families.json")
		if err != nil {
			panic(err)
		}
		defer fams.Close()
		defaultCatalog, err = Load(table, fams)
		if err != nil {
			panic("hershey: invalid embedded font data: " + err.Error())
		}
	})
	return defaultCatalog
}
