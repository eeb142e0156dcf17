package hershey

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/benoitkugler/cutmat/svgdraw"
	"github.com/benoitkugler/cutmat/svgpath"
	"github.com/google/go-cmp/cmp"
)

var familyNames = []string{
	"cyrillic", "futural", "futuram", "gothiceng", "gothicger",
	"gothicita", "scriptc", "scripts", "timesg", "timesr",
}

func TestDefaultRegistry(t *testing.T) {
	reg := DefaultRegistry()
	if diff := cmp.Diff(familyNames, reg.Families()); diff != "" {
		t.Fatalf("unexpected families (-want +got):\n%s", diff)
	}
	if DefaultRegistry() != reg {
		t.Error("default registry should be built once")
	}
	font, err := reg.Font("futural")
	if err != nil {
		t.Fatal(err)
	}
	for c := rune(' '); c <= '~'; c++ {
		if _, ok := font.Glyph(c); !ok {
			t.Errorf("missing glyph for %q", c)
		}
	}
	if _, err := reg.Font("comicsans"); !errors.Is(err, ErrUnknownFamily) {
		t.Errorf("expected ErrUnknownFamily, got %v", err)
	}
}

func TestGlyphsInsideDesignBox(t *testing.T) {
	font, _ := DefaultRegistry().Font("futural")
	for c := rune('A'); c <= 'Z'; c++ {
		g, _ := font.Glyph(c)
		b := g.Path.Bounds()
		if b.Min.Y < -21*64-32 || b.Max.Y > 2*64 {
			t.Errorf("%q: capital exceeds the cap height: %v", c, b)
		}
		if float64(b.Max.X) > 64*(g.Advance+2) {
			t.Errorf("%q: glyph wider than its advance", c)
		}
	}
}

func TestParseGlyphTable(t *testing.T) {
	table := `# comment
U+0041 18 M2,0L9,-21L16,0
U+0020 16
`
	glyphs, err := ParseGlyphTable(strings.NewReader(table))
	if err != nil {
		t.Fatal(err)
	}
	want := map[rune]Glyph{
		'A': {Advance: 18, Path: svgpath.MustParse("M2,0L9,-21L16,0")},
		' ': {Advance: 16},
	}
	if diff := cmp.Diff(want, glyphs); diff != "" {
		t.Errorf("unexpected glyphs (-want +got):\n%s", diff)
	}

	for _, bad := range []string{
		"0041 18 M0,0",
		"U+ZZ 18 M0,0",
		"U+0041 -1 M0,0",
		"U+0041 18 L0,0",
		"U+0041",
	} {
		if _, err := ParseGlyphTable(strings.NewReader(bad)); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestMalformedFamily(t *testing.T) {
	base := map[rune]Glyph{'A': {Advance: 18, Path: svgpath.MustParse("M2,0L9,-21L16,0")}}
	cat := NewCatalog(base, []Family{
		{Name: "ok", Strokes: []float64{0, 1}, Spacing: 1},
		{Name: "nostroke"},
		{Name: "tilted", Strokes: []float64{0}, Slant: 80},
	})
	if _, err := cat.Font("nostroke"); !errors.Is(err, ErrMalformedFont) {
		t.Errorf("expected ErrMalformedFont, got %v", err)
	}
	if _, err := cat.Font("tilted"); !errors.Is(err, ErrMalformedFont) {
		t.Errorf("expected ErrMalformedFont, got %v", err)
	}
	f, err := cat.Font("ok")
	if err != nil {
		t.Fatal(err)
	}
	g, _ := f.Glyph('A')
	if g.Advance != 20 {
		t.Errorf("unexpected advance %g", g.Advance)
	}
	if len(g.Path) != 6 {
		t.Errorf("expected two copies of the strokes, got %v", g.Path)
	}
}

func TestMeasure(t *testing.T) {
	var r Renderer
	// at size 21 the font units are pixels
	if w := r.Measure("A", "futural", 21); w != 18 {
		t.Errorf("unexpected width %g", w)
	}
	if w := r.Measure("AA", "futural", 10.5); w != 18 {
		t.Errorf("unexpected width %g", w)
	}
	if w := r.Measure("", "futural", 12); w != 0 {
		t.Errorf("unexpected width %g", w)
	}
	// accents are dropped
	if a, b := r.Measure("é", "timesr", 12), r.Measure("e", "timesr", 12); a != b {
		t.Errorf("expected %g, got %g", b, a)
	}
}

func TestMeasureMatchesRender(t *testing.T) {
	var r Renderer
	for _, family := range append(familyNames, "unknown") {
		for _, content := range []string{"A4", "Letter", "12.5", "Tabloid (landscape)", "Ω"} {
			text := Text{Content: content, Family: family, Size: 12, X: 10, Y: 20, Anchor: svgdraw.AnchorMiddle}
			_, width := r.Render(text)
			if m := r.Measure(content, family, 12); m != width {
				t.Errorf("%s %q: Measure = %g, Render = %g", family, content, m, width)
			}
		}
	}
}

func TestRender(t *testing.T) {
	var r Renderer
	prim, width := r.Render(Text{Content: "I", Family: "futural", Size: 21, X: 100, Y: 50, Rotation: 90, Anchor: svgdraw.AnchorEnd, Color: "red"})
	g, ok := prim.(svgdraw.GlyphGroup)
	if !ok {
		t.Fatalf("expected a glyph group, got %T", prim)
	}
	if width != 8 || g.Offset != -8 || g.Rotation != 90 || g.X != 100 || g.Y != 50 {
		t.Errorf("unexpected layout %+v (width %g)", g, width)
	}
	if diff := cmp.Diff(svgpath.MustParse("M4,-21L4,0"), g.Path); diff != "" {
		t.Errorf("unexpected path (-want +got):\n%s", diff)
	}
	if g.Stroke != (svgdraw.Stroke{Color: "red", Width: StrokeWidth}) {
		t.Errorf("unexpected stroke %v", g.Stroke)
	}

	// the second glyph follows the first advance
	prim, _ = r.Render(Text{Content: "II", Family: "futural", Size: 42})
	g = prim.(svgdraw.GlyphGroup)
	if diff := cmp.Diff(svgpath.MustParse("M8,-42L8,0M24,-42L24,0"), g.Path); diff != "" {
		t.Errorf("unexpected path (-want +got):\n%s", diff)
	}
}

func TestFallback(t *testing.T) {
	var logs bytes.Buffer
	r := Renderer{Logger: slog.New(slog.NewTextHandler(&logs, nil))}
	for _, text := range []Text{
		{Content: "A4", Family: "nosuchfont", Size: 10, X: 1, Y: 2, Rotation: 45, Anchor: svgdraw.AnchorEnd, Color: "blue"},
		{Content: "Ωmega", Family: "futural", Size: 10, X: 1, Y: 2, Rotation: 45, Anchor: svgdraw.AnchorEnd, Color: "blue"},
	} {
		logs.Reset()
		prim, width := r.Render(text)
		txt, ok := prim.(svgdraw.Text)
		if !ok {
			t.Fatalf("expected a text fallback, got %T", prim)
		}
		want := svgdraw.Text{X: 1, Y: 2, Content: text.Content, Family: fallbackFamily, Size: 10, Rotation: 45, Anchor: svgdraw.AnchorEnd, Color: "blue"}
		if diff := cmp.Diff(want, txt); diff != "" {
			t.Errorf("unexpected fallback (-want +got):\n%s", diff)
		}
		if exp := float64(len([]rune(text.Content))) * 10 * 0.6; math.Abs(width-exp) > 1e-9 {
			t.Errorf("unexpected fallback width %g", width)
		}
		if !strings.Contains(logs.String(), "level=WARN") {
			t.Errorf("expected a warning, got %q", logs.String())
		}
	}
}

func TestNormalize(t *testing.T) {
	for in, want := range map[string]string{
		"Légende": "Legende",
		"A4":      "A4",
		"naïve ×": "naive ×",
	} {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}
