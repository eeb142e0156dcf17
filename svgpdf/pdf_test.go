package svgpdf

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/benoitkugler/cutmat/config"
	"github.com/benoitkugler/cutmat/mat"
	"github.com/benoitkugler/cutmat/svgdraw"
	"github.com/benoitkugler/cutmat/svgpath"
	"github.com/benoitkugler/cutmat/units"
	"github.com/benoitkugler/pdf/contentstream"
)

func smallMat(t *testing.T) svgdraw.Document {
	t.Helper()
	cfg := config.Default().WithCanvas(config.Canvas{Width: 4, Height: 3, Unit: units.Centimeters, Margin: 1, BackgroundColor: "#fafafa"})
	doc, err := mat.Engine{}.Build(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestRenderDocument(t *testing.T) {
	pdfDoc, skipped, err := RenderDocument(smallMat(t))
	if err != nil {
		t.Fatal(err)
	}
	if len(skipped) != 0 {
		t.Errorf("unexpected skipped texts %v", skipped)
	}
	if len(pdfDoc.Catalog.Pages.Kids) != 1 {
		t.Errorf("expected one page, got %d", len(pdfDoc.Catalog.Pages.Kids))
	}

	var buf bytes.Buffer
	if _, err := Write(&buf, smallMat(t)); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "%PDF-") {
		t.Errorf("unexpected PDF header %q", buf.String()[:min(10, buf.Len())])
	}
}

func TestOpacityStates(t *testing.T) {
	doc := svgdraw.Document{Width: 10, Height: 10, Layers: []svgdraw.Layer{{
		ID: "shapes",
		Primitives: []svgdraw.Primitive{
			svgdraw.Rect{Width: 10, Height: 10, Fill: "white", Stroke: svgdraw.Stroke{Color: "black", Width: 1}},
			svgdraw.Rect{Width: 5, Height: 5, Fill: "red"},
			svgdraw.Line{X2: 10, Y2: 10, Stroke: svgdraw.Stroke{Color: "blue", Width: 2, Dash: []float64{4, 2}}},
		},
	}}}
	ap := contentstream.NewAppearance(10, 10)
	renderer := NewRenderer(&ap)
	if _, err := svgdraw.Draw(renderer, doc, svgpath.Identity); err != nil {
		t.Fatal(err)
	}
	// every color is opaque: one state per painting operation
	if len(renderer.fillOpacityStates) != 1 || len(renderer.strokeOpacityStates) != 1 {
		t.Errorf("unexpected graphic states %v %v", renderer.fillOpacityStates, renderer.strokeOpacityStates)
	}
}

func TestRenderSVGIconToPDF(t *testing.T) {
	out, err := mat.Compose(config.Default())
	if err != nil {
		t.Fatal(err)
	}
	file := filepath.Join(t.TempDir(), "mat.pdf")
	if err := RenderSVGIconToPDF(strings.NewReader(out), file); err != nil {
		t.Fatal(err)
	}
	content, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(content, []byte("%PDF-")) {
		t.Error("invalid PDF file")
	}

	if err := RenderSVGIconToPDF(strings.NewReader("<svg><line x1=\"?\"/></svg>"), file); err == nil {
		t.Error("expected an error for invalid input")
	}
}
