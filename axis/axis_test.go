package axis

import (
	"testing"

	"github.com/benoitkugler/cutmat/config"
	"github.com/benoitkugler/cutmat/hershey"
	"github.com/benoitkugler/cutmat/svgdraw"
	"github.com/benoitkugler/cutmat/units"
	"github.com/google/go-cmp/cmp"
)

func TestFormatValue(t *testing.T) {
	for _, test := range []struct {
		v    float64
		u    units.Unit
		want string
	}{
		{0, units.Inches, "0"},
		{3, units.Inches, "3"},
		{0.5, units.Inches, "0.5"},
		{2.54, units.Centimeters, "2.5"},
		{5.08, units.Centimeters, "5.1"},
		{2.96, units.Centimeters, "3"},
		{12.000000001, units.Inches, "12"},
		{25.4, units.Millimeters, "25"},
		{50.8, units.Millimeters, "51"},
		{12.5, units.Millimeters, "13"},
		{-0.01, units.Inches, "0"},
	} {
		if got := FormatValue(test.v, test.u); got != test.want {
			t.Errorf("FormatValue(%g, %s) = %q, want %q", test.v, test.u, got, test.want)
		}
	}
}

// echo renders text as plain text elements, to inspect the labels.
type echo struct{}

func (echo) Render(t hershey.Text) (svgdraw.Primitive, float64) {
	return svgdraw.Text{X: t.X, Y: t.Y, Content: t.Content, Size: t.Size, Rotation: t.Rotation, Anchor: t.Anchor, Color: t.Color}, 0
}

var axisFont = config.AxisFont{
	Family: "futural", Size: 9, LeftRotation: -90,
	TopAlignment: svgdraw.AnchorMiddle, LeftAlignment: svgdraw.AnchorEnd, LabelDistance: 20,
}

func TestGenerate(t *testing.T) {
	m := config.Measurements{Enabled: true, ShowLabels: true, Color: "black"}
	frame := Frame{X: 48, Y: 48, Width: 192, Height: 96}
	prims := Labeler{Text: echo{}}.Generate(m, axisFont, units.Inches, 96, frame)

	stroke := svgdraw.Stroke{Color: "black", Width: 1}
	top := func(x float64, s string) []svgdraw.Primitive {
		return []svgdraw.Primitive{
			svgdraw.Line{X1: x, Y1: 48, X2: x, Y2: 38, Stroke: stroke},
			svgdraw.Text{X: x, Y: 28, Content: s, Size: 9, Anchor: svgdraw.AnchorMiddle, Color: "black"},
		}
	}
	left := func(y float64, s string) []svgdraw.Primitive {
		return []svgdraw.Primitive{
			svgdraw.Line{X1: 48, Y1: y, X2: 38, Y2: y, Stroke: stroke},
			svgdraw.Text{X: 28, Y: y + 3, Content: s, Size: 9, Rotation: -90, Anchor: svgdraw.AnchorEnd, Color: "black"},
		}
	}
	var want []svgdraw.Primitive
	want = append(want, top(48, "0")...)
	want = append(want, top(144, "1")...)
	want = append(want, top(240, "2")...)
	want = append(want, left(48, "0")...)
	want = append(want, left(144, "1")...)
	if diff := cmp.Diff(want, prims); diff != "" {
		t.Errorf("unexpected rulers (-want +got):\n%s", diff)
	}
}

func TestGenerateOptions(t *testing.T) {
	frame := Frame{Width: 1152, Height: 1152}
	l := Labeler{Text: hershey.Renderer{}}

	m := config.Measurements{Enabled: true, ShowLabels: true, Color: "black"}
	if got := len(l.Generate(m, axisFont, units.Inches, 96, frame)); got != 2*2*13 {
		t.Errorf("expected 13 ticks and labels per edge, got %d primitives", got)
	}
	m.ShowLabels = false
	if got := len(l.Generate(m, axisFont, units.Inches, 96, frame)); got != 2*13 {
		t.Errorf("expected 13 ticks per edge, got %d primitives", got)
	}
	m.Enabled = false
	if got := l.Generate(m, axisFont, units.Inches, 96, frame); got != nil {
		t.Errorf("expected no rulers, got %d primitives", len(got))
	}
}

func TestGenerateMillimeters(t *testing.T) {
	// a 10 cm frame, ticks every centimeter, labelled in millimeters
	interval := units.ToPixels(10, units.Millimeters)
	frame := Frame{Width: units.ToPixels(100, units.Millimeters), Height: 0}
	m := config.Measurements{Enabled: true, ShowLabels: true}
	prims := Labeler{Text: echo{}}.Generate(m, axisFont, units.Millimeters, interval, frame)
	var labels []string
	for _, p := range prims {
		if txt, ok := p.(svgdraw.Text); ok {
			labels = append(labels, txt.Content)
		}
	}
	want := []string{"0", "10", "20", "30", "40", "50", "60", "70", "80", "90", "100"}
	if diff := cmp.Diff(want, labels); diff != "" {
		t.Errorf("unexpected labels (-want +got):\n%s", diff)
	}
}
