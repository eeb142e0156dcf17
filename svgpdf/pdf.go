// Implements a PDF backend to render mat documents,
// by wrapping github.com/benoitkugler/pdf.
package svgpdf

import (
	"image/color"
	"io"

	"github.com/benoitkugler/cutmat/svgdraw"
	"github.com/benoitkugler/cutmat/svgicon"
	"github.com/benoitkugler/cutmat/svgpath"
	"github.com/benoitkugler/pdf/contentstream"
	"github.com/benoitkugler/pdf/model"
	"golang.org/x/image/math/fixed"
)

// PointsPerPixel converts the 96 dpi document space to PDF points.
const PointsPerPixel = 0.75

// assert interface conformance
var (
	_ svgdraw.Driver  = Renderer{}
	_ svgdraw.Filler  = (*filler)(nil)
	_ svgdraw.Stroker = (*patherStroker)(nil)
)

type Renderer struct {
	pdf                 *contentstream.Appearance
	fillOpacityStates   map[float64]*model.GraphicState
	strokeOpacityStates map[float64]*model.GraphicState
}

// implements the common path commands,
// shared by the filler and the stroker
type pather struct {
	pdf   *contentstream.Appearance
	color color.RGBA
}

// implements the filling operation
type filler struct {
	pather
	useNonZeroWinding bool
	fillOpacityStates map[float64]*model.GraphicState
}

// implements the stroking operation, while
// also writing the path
type patherStroker struct {
	pather
	strokeOpacityStates map[float64]*model.GraphicState
}

// NewRenderer return a renderer which will
// write to the given `pdf`.
func NewRenderer(cs *contentstream.Appearance) Renderer {
	return Renderer{
		pdf:                 cs,
		fillOpacityStates:   make(map[float64]*model.GraphicState),
		strokeOpacityStates: make(map[float64]*model.GraphicState),
	}
}

// RenderDocument returns a one page PDF document for doc,
// with a page size of doc.Width x doc.Height pixels at 96 dpi.
// Text elements have no stroke representation and
// are returned instead.
func RenderDocument(doc svgdraw.Document) (model.Document, []svgdraw.Text, error) {
	width, height := doc.Width*PointsPerPixel, doc.Height*PointsPerPixel
	pdf := contentstream.NewAppearance(width, height)
	renderer := NewRenderer(&pdf)
	pdf.Ops(
		contentstream.OpSave{},
		contentstream.OpConcat{Matrix: model.Matrix{1, 0, 0, -1, 0, height}},
	)
	skipped, err := svgdraw.Draw(renderer, doc, svgpath.Identity.Scale(PointsPerPixel, PointsPerPixel))
	if err != nil {
		return model.Document{}, nil, err
	}
	pdf.Ops(contentstream.OpRestore{})

	var out model.Document
	out.Catalog.Pages.Kids = append(out.Catalog.Pages.Kids, pdf.ToPageObject(true))
	return out, skipped, nil
}

// Write renders doc and writes the PDF file to out.
func Write(out io.Writer, doc svgdraw.Document) ([]svgdraw.Text, error) {
	pdfDoc, skipped, err := RenderDocument(doc)
	if err != nil {
		return nil, err
	}
	return skipped, pdfDoc.Write(out, nil)
}

// RenderSVGIconToPDF reads the given icon and renders it
// into the given file.
func RenderSVGIconToPDF(icon io.Reader, pdfName string) error {
	parsedIcon, err := svgicon.ReadIconStream(icon, svgicon.WarnErrorMode)
	if err != nil {
		return err
	}
	pdfDoc, _, err := RenderDocument(parsedIcon.Document)
	if err != nil {
		return err
	}
	return pdfDoc.WriteFile(pdfName, nil)
}

func (r Renderer) SetupDrawers(willFill, willDraw bool) (f svgdraw.Filler, s svgdraw.Stroker) {
	if willFill {
		f = &filler{pather: pather{pdf: r.pdf}, fillOpacityStates: r.fillOpacityStates}
	}
	// the fill operator ends the path: the stroker writes it again
	if willDraw {
		s = &patherStroker{pather: pather{pdf: r.pdf}, strokeOpacityStates: r.strokeOpacityStates}
	}
	return f, s
}

func fixedTof(a fixed.Point26_6) (float64, float64) {
	return float64(a.X) / 64, float64(a.Y) / 64
}

func (p *pather) Clear() {}

func (p *pather) Start(a fixed.Point26_6) {
	x, y := fixedTof(a)
	p.pdf.Ops(contentstream.OpMoveTo{X: x, Y: y})
}

func (p *pather) Line(b fixed.Point26_6) {
	x, y := fixedTof(b)
	p.pdf.Ops(contentstream.OpLineTo{X: x, Y: y})
}

func (p *pather) Stop(closeLoop bool) {
	if closeLoop {
		p.pdf.Ops(contentstream.OpClosePath{})
	}
}

func (p *pather) SetColor(c color.Color) {
	p.color = color.RGBAModel.Convert(c).(color.RGBA)
}

// opacityState returns the cached graphic state for `opacity`,
// registered in the appearance resources.
func opacityState(cache map[float64]*model.GraphicState, opacity float64, stroke bool) *model.GraphicState {
	gs, ok := cache[opacity]
	if !ok {
		gs = &model.GraphicState{BM: []model.Name{"Normal"}}
		if stroke {
			gs.CA = model.ObjFloat(opacity)
		} else {
			gs.Ca = model.ObjFloat(opacity)
		}
		cache[opacity] = gs
	}
	return gs
}

func (f *filler) Draw() {
	f.pdf.SetColorFill(f.color)
	gs := opacityState(f.fillOpacityStates, float64(f.color.A)/255., false)
	name := f.pdf.AddExtGState(gs)
	f.pdf.Ops(contentstream.OpSetExtGState{Dict: name})

	if f.useNonZeroWinding {
		f.pdf.Ops(contentstream.OpFill{})
	} else {
		f.pdf.Ops(contentstream.OpEOFill{})
	}
}

func (f *filler) SetWinding(useNonZeroWinding bool) {
	f.useNonZeroWinding = useNonZeroWinding
}

func (f *patherStroker) SetStrokeOptions(options svgdraw.StrokeOptions) {
	var capStyle, joinStyle uint8
	switch options.Cap {
	case svgdraw.ButtCap:
		capStyle = 0
	case svgdraw.RoundCap:
		capStyle = 1
	case svgdraw.SquareCap:
		capStyle = 2
	}
	switch options.Join {
	case svgdraw.Bevel:
		joinStyle = 2
	case svgdraw.Miter:
		joinStyle = 0
	case svgdraw.Round:
		joinStyle = 1
	}

	f.pdf.Ops(
		contentstream.OpSetDash{Dash: model.DashPattern{
			Array: options.Dash,
			Phase: options.DashOffset,
		}},
		contentstream.OpSetLineWidth{W: float64(options.LineWidth) / 64},
		contentstream.OpSetLineCap{Style: capStyle},
		contentstream.OpSetLineJoin{Style: joinStyle},
		contentstream.OpSetMiterLimit{Limit: float64(options.MiterLimit) / 64},
	)
}

func (f *patherStroker) Draw() {
	f.pdf.SetColorStroke(f.color)
	gs := opacityState(f.strokeOpacityStates, float64(f.color.A)/255., true)
	name := f.pdf.AddExtGState(gs)
	f.pdf.Ops(contentstream.OpSetExtGState{Dict: name}, contentstream.OpStroke{})
}

