package hershey

import (
	"fmt"
	"log/slog"
	"unicode"

	"github.com/benoitkugler/cutmat/svgdraw"
	"github.com/benoitkugler/cutmat/svgpath"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// StrokeWidth is the pen width of rendered glyphs, in pixels.
	StrokeWidth = 1

	// fallbackAdvance is the average glyph width, relative to the font size,
	// used to estimate the width of plain text.
	fallbackAdvance = 0.6

	fallbackFamily = "sans-serif"
)

// Text is a run to render.
type Text struct {
	Content  string
	Family   string
	Size     float64
	X, Y     float64 // reference point, on the baseline
	Rotation float64 // degrees, about the reference point
	Anchor   svgdraw.TextAnchor
	Color    string
}

// Renderer lays out text with the fonts of a Registry.
// The zero value uses DefaultRegistry and discards log records.
type Renderer struct {
	Fonts  Registry
	Logger *slog.Logger
}

func (r Renderer) fonts() Registry {
	if r.Fonts == nil {
		return DefaultRegistry()
	}
	return r.Fonts
}

func (r Renderer) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.Logger
}

// Normalize decomposes s, drops combining marks and recomposes it,
// so that accented letters map to their base glyph.
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// layout assembles the glyphs of content, scaled to size,
// and returns the run path, starting at the origin, with its advance width.
func (r Renderer) layout(content, family string, size float64) (svgpath.Path, float64, error) {
	font, err := r.fonts().Font(family)
	if err != nil {
		return nil, 0, err
	}
	scale := size / UnitsPerEm
	var (
		path svgpath.Path
		pen  float64 // in font units
	)
	for _, c := range Normalize(content) {
		g, ok := font.Glyph(c)
		if !ok {
			return nil, 0, fmt.Errorf("%w: %q in %s", ErrMissingGlyph, c, family)
		}
		m := svgpath.Identity.Scale(scale, scale).Translate(pen, 0)
		path = append(path, g.Path.Transform(m)...)
		pen += g.Advance
	}
	return path, pen * scale, nil
}

// fallbackWidth estimates the width of a plain text run.
func fallbackWidth(content string, size float64) float64 {
	return float64(len([]rune(content))) * size * fallbackAdvance
}

// Measure returns the width of content, in the same units as size.
// It always agrees with the width returned by Render.
func (r Renderer) Measure(content, family string, size float64) float64 {
	_, width, err := r.layout(content, family, size)
	if err != nil {
		return fallbackWidth(content, size)
	}
	return width
}

// Render returns the glyph group drawing t, and its width.
// When the font cannot draw t, a plain text element is returned
// instead, and the failure is logged.
func (r Renderer) Render(t Text) (svgdraw.Primitive, float64) {
	path, width, err := r.layout(t.Content, t.Family, t.Size)
	if err != nil {
		r.logger().Warn("stroke font rendering failed, using plain text",
			"text", t.Content, "family", t.Family, "error", err)
		return svgdraw.Text{
			X:        t.X,
			Y:        t.Y,
			Content:  t.Content,
			Family:   fallbackFamily,
			Size:     t.Size,
			Rotation: t.Rotation,
			Anchor:   t.Anchor,
			Color:    t.Color,
		}, fallbackWidth(t.Content, t.Size)
	}
	return svgdraw.GlyphGroup{
		X:        t.X,
		Y:        t.Y,
		Offset:   t.Anchor.Offset(width),
		Rotation: t.Rotation,
		Path:     path,
		Stroke:   svgdraw.Stroke{Color: t.Color, Width: StrokeWidth},
	}, width
}
