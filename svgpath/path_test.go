package svgpath

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/math/fixed"
)

func TestParse(t *testing.T) {
	for _, test := range []struct {
		d    string
		want Path
	}{
		{"", nil},
		{"M1,2 L3,4", Path{MoveTo(Pt(1, 2)), LineTo(Pt(3, 4))}},
		{"M1 2 3 4", Path{MoveTo(Pt(1, 2)), LineTo(Pt(3, 4))}},
		{"m1,1 l2,0 0,2z", Path{MoveTo(Pt(1, 1)), LineTo(Pt(3, 1)), LineTo(Pt(3, 3)), Close{}}},
		{"M0-21L9-0.5", Path{MoveTo(Pt(0, -21)), LineTo(Pt(9, -0.5))}},
		{"M2,2H6V-1h-1v1", Path{MoveTo(Pt(2, 2)), LineTo(Pt(6, 2)), LineTo(Pt(6, -1)), LineTo(Pt(5, -1)), LineTo(Pt(5, 0))}},
		{"M1e1,0L0,0", Path{MoveTo(Pt(10, 0)), LineTo(Pt(0, 0))}},
	} {
		got, err := Parse(test.d)
		if err != nil {
			t.Fatalf("Parse(%q): %s", test.d, err)
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Parse(%q) (-want +got):\n%s", test.d, diff)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, d := range []string{
		"L1,2",
		"1,2",
		"M1",
		"M0,0 C1,1 2,2 3,3",
		"M0,0 L1",
		"M0,0 Lx,1",
	} {
		if _, err := Parse(d); err == nil {
			t.Errorf("Parse(%q): expected an error", d)
		}
	}
}

func TestToSVGPath(t *testing.T) {
	p := MustParse("M0,-21 L9,0 Z")
	if got, want := p.ToSVGPath(), "M0.000,-21.000 L9.000,0.000 Z"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTransform(t *testing.T) {
	p := MustParse("M1,0 L2,0")
	m := Identity.Translate(10, 5).Scale(2, 2)
	got := p.Transform(m)
	want := Path{MoveTo(Pt(12, 5)), LineTo(Pt(14, 5))}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	r := Identity.RotateAround(math.Pi/2, 1, 0)
	x, y := r.Transform(2, 0)
	if math.Abs(x-1) > 1e-12 || math.Abs(y-1) > 1e-12 {
		t.Errorf("rotation about (1,0): got (%v, %v)", x, y)
	}
}

func TestBoundsAndPolylines(t *testing.T) {
	var p Path
	p.AddRect(1, 2, 5, 7)
	p.AddLine(-1, 0, 0, 9)
	b := p.Bounds()
	want := fixed.Rectangle26_6{Min: Pt(-1, 0), Max: Pt(5, 9)}
	if b != want {
		t.Errorf("bounds: got %v, want %v", b, want)
	}
	polys := p.Polylines()
	if len(polys) != 2 {
		t.Fatalf("expected 2 polylines, got %d", len(polys))
	}
	if len(polys[0]) != 5 || polys[0][0] != polys[0][4] {
		t.Errorf("closed rectangle should repeat its first point: %v", polys[0])
	}
	if len(Path{}.Polylines()) != 0 {
		t.Error("empty path should have no polylines")
	}
}
