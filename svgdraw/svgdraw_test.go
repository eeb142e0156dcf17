package svgdraw

import (
	"errors"
	"image/color"
	"testing"

	"github.com/benoitkugler/cutmat/svgpath"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/math/fixed"
)

func TestFormatNumber(t *testing.T) {
	for _, test := range []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{-0.00001, "0"},
		{96, "96"},
		{1.5, "1.5"},
		{47.5, "47.5"},
		{1 / 3., "0.3333"},
		{0.1 + 0.2, "0.3"},
		{-12.34567, "-12.3457"},
		{1248, "1248"},
	} {
		if got := FormatNumber(test.in); got != test.want {
			t.Errorf("FormatNumber(%v) = %s, want %s", test.in, got, test.want)
		}
	}
}

func TestFormatDash(t *testing.T) {
	if got := FormatDash([]float64{8, 4}); got != "8 4" {
		t.Errorf("got %q", got)
	}
	if got := FormatDash(nil); got != "" {
		t.Errorf("got %q", got)
	}
}

func TestAnchorOffset(t *testing.T) {
	if o := AnchorStart.Offset(10); o != 0 {
		t.Error(o)
	}
	if o := AnchorMiddle.Offset(10); o != -5 {
		t.Error(o)
	}
	if o := AnchorEnd.Offset(10); o != -10 {
		t.Error(o)
	}
	if ParseAnchor("end") != AnchorEnd || ParseAnchor("bogus") != AnchorStart {
		t.Error("unexpected ParseAnchor")
	}
}

func TestSVG(t *testing.T) {
	doc := Document{
		Width: 100, Height: 50,
		Layers: []Layer{
			{ID: "background", Primitives: []Primitive{
				Rect{Width: 100, Height: 50, Fill: "#ffffff"},
			}},
			{ID: "grid", Primitives: []Primitive{
				Line{X1: 10, Y1: 0, X2: 10, Y2: 50, Stroke: Stroke{Color: "black", Width: 2, Dash: []float64{8, 4}}},
			}},
			{ID: "labels", Primitives: []Primitive{
				GlyphGroup{X: 20, Y: 30, Offset: -5, Rotation: 90, Path: svgpath.MustParse("M0,0L10,0"), Stroke: Stroke{Color: "red", Width: 1}},
				Text{X: 1, Y: 2, Content: "A&B", Size: 12, Anchor: AnchorMiddle, Color: "black"},
			}},
		},
	}
	want := `<svg xmlns="http://www.w3.org/2000/svg" width="100" height="50" viewBox="0 0 100 50">
<g id="background">
<rect x="0" y="0" width="100" height="50" fill="#ffffff"/>
</g>
<g id="grid">
<line x1="10" y1="0" x2="10" y2="50" stroke="black" stroke-width="2" stroke-dasharray="8 4"/>
</g>
<g id="labels">
<g transform="translate(15 30) rotate(90 5 0)" fill="none" stroke="red" stroke-width="1" stroke-linecap="round" stroke-linejoin="round"><path d="M0 0L10 0"/></g>
<text x="1" y="2" font-size="12" text-anchor="middle" fill="black">A&amp;B</text>
</g>
</svg>
`
	if diff := cmp.Diff(want, doc.SVG()); diff != "" {
		t.Errorf("unexpected svg (-want +got):\n%s", diff)
	}
	if doc.Count() != 4 {
		t.Errorf("unexpected count %d", doc.Count())
	}
	if doc.Layer("grid") == nil || doc.Layer("missing") != nil {
		t.Error("unexpected Layer lookup")
	}
}

func TestGlyphGroupTransform(t *testing.T) {
	g := GlyphGroup{X: 20, Y: 30, Offset: -10, Rotation: 90}
	// the anchor point is invariant under rotation
	x, y := g.Transform().Transform(10, 0)
	if abs(x-20) > 1e-9 || abs(y-30) > 1e-9 {
		t.Errorf("anchor moved to (%g, %g)", x, y)
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func TestParseColor(t *testing.T) {
	for _, test := range []struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		{"#666666", color.RGBA{0x66, 0x66, 0x66, 0xff}, true},
		{"#f00", color.RGBA{0xff, 0, 0, 0xff}, true},
		{"Black", color.RGBA{0, 0, 0, 0xff}, true},
		{"rgb(255, 0, 50%)", color.RGBA{255, 0, 128, 0xff}, true},
		{"none", color.RGBA{}, false},
		{"", color.RGBA{}, false},
	} {
		got, ok, err := ParseColor(test.in)
		if err != nil {
			t.Fatalf("ParseColor(%q): %s", test.in, err)
		}
		if ok != test.ok || got != test.want {
			t.Errorf("ParseColor(%q) = %v %v, want %v %v", test.in, got, ok, test.want, test.ok)
		}
	}
	for _, in := range []string{"#12", "#zzzzzz", "rgb(1,2)", "notacolor"} {
		if _, _, err := ParseColor(in); !errors.Is(err, ErrInvalidColor) {
			t.Errorf("ParseColor(%q): expected ErrInvalidColor, got %v", in, err)
		}
	}
}

// recorder logs the calls it receives.
type recorder struct {
	calls *[]string
	kind  string
}

func (r recorder) Clear()                  {}
func (r recorder) Start(a fixed.Point26_6) { r.log("start") }
func (r recorder) Line(b fixed.Point26_6)  { r.log("line") }
func (r recorder) Stop(closeLoop bool) {
	if closeLoop {
		r.log("close")
	}
}
func (r recorder) SetColor(color.Color)              {}
func (r recorder) Draw()                             { r.log("draw") }
func (r recorder) SetWinding(bool)                   {}
func (r recorder) SetStrokeOptions(o StrokeOptions)  { r.log("options") }
func (r recorder) log(s string)                      { *r.calls = append(*r.calls, r.kind+":"+s) }

type recordDriver struct{ calls []string }

func (d *recordDriver) SetupDrawers(willFill, willStroke bool) (f Filler, s Stroker) {
	if willFill {
		f = recorder{calls: &d.calls, kind: "fill"}
	}
	if willStroke {
		s = recorder{calls: &d.calls, kind: "stroke"}
	}
	return f, s
}

func TestDraw(t *testing.T) {
	doc := Document{Width: 10, Height: 10, Layers: []Layer{{ID: "l", Primitives: []Primitive{
		Rect{Width: 10, Height: 10, Fill: "white"},
		Line{X2: 10, Stroke: Stroke{Color: "black", Width: 1}},
		Line{X2: 10, Stroke: Stroke{Color: "none", Width: 1}},
		Text{Content: "skipped"},
	}}}}
	var d recordDriver
	skipped, err := Draw(&d, doc, svgpath.Identity)
	if err != nil {
		t.Fatal(err)
	}
	if len(skipped) != 1 || skipped[0].Content != "skipped" {
		t.Errorf("unexpected skipped texts %v", skipped)
	}
	want := []string{
		"fill:start", "fill:line", "fill:line", "fill:line", "fill:close", "fill:draw",
		"stroke:options", "stroke:start", "stroke:line", "stroke:draw",
	}
	if diff := cmp.Diff(want, d.calls); diff != "" {
		t.Errorf("unexpected calls (-want +got):\n%s", diff)
	}

	doc.Layers[0].Primitives = []Primitive{Rect{Fill: "nocolor"}}
	if _, err := Draw(&d, doc, svgpath.Identity); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("expected ErrInvalidColor, got %v", err)
	}
}
