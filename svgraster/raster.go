// Implements a raster backend to render mat documents,
// by wrapping rasterx.
package svgraster

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/benoitkugler/cutmat/svgdraw"
	"github.com/benoitkugler/cutmat/svgicon"
	"github.com/benoitkugler/cutmat/svgpath"
	"github.com/srwiley/rasterx"
)

var _ svgdraw.Driver = (*Renderer)(nil) // assert interface conformance

type Renderer struct {
	dasher *rasterx.Dasher // to avoid shared state
	filler *rasterx.Filler // we use separated instance
}

// NewRenderer returns a renderer with default values.
// If scanner is nil, a default scanner rasterx.ScannerGV is used
func NewRenderer(width, height int, scanner rasterx.Scanner) *Renderer {
	return &Renderer{dasher: rasterx.NewDasher(width, height, scanner), filler: rasterx.NewFiller(width, height, scanner)}
}

// SetupDrawers implements svgdraw.Driver.
func (rd *Renderer) SetupDrawers(willFill, willStroke bool) (f svgdraw.Filler, s svgdraw.Stroker) {
	if willFill {
		f = filler{rd.filler}
	}
	if willStroke {
		s = dasher{rd.dasher}
	}
	return f, s
}

// filler adapts the rasterx color setter
type filler struct{ *rasterx.Filler }

func (f filler) SetColor(c color.Color) { f.Filler.SetColor(c) }

type dasher struct{ *rasterx.Dasher }

func (d dasher) SetColor(c color.Color) { d.Dasher.SetColor(c) }

var (
	joinToJoin = [...]rasterx.JoinMode{
		svgdraw.Round: rasterx.Round,
		svgdraw.Bevel: rasterx.Bevel,
		svgdraw.Miter: rasterx.Miter,
	}

	capToFunc = [...]rasterx.CapFunc{
		svgdraw.ButtCap:   rasterx.ButtCap,
		svgdraw.SquareCap: rasterx.SquareCap,
		svgdraw.RoundCap:  rasterx.RoundCap,
	}
)

func (d dasher) SetStrokeOptions(options svgdraw.StrokeOptions) {
	d.SetStroke(
		options.LineWidth, options.MiterLimit, capToFunc[options.Cap],
		capToFunc[options.Cap], rasterx.RoundGap,
		joinToJoin[options.Join], options.Dash, options.DashOffset,
	)
}

// RasterDocument renders doc at the given scale (output pixels
// per document pixel). Text elements have no stroke representation and
// are returned instead.
func RasterDocument(doc svgdraw.Document, scale float64) (*image.RGBA, []svgdraw.Text, error) {
	w, h := int(math.Ceil(doc.Width*scale)), int(math.Ceil(doc.Height*scale))
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	renderer := NewRenderer(w, h, scanner)
	skipped, err := svgdraw.Draw(renderer, doc, svgpath.Identity.Scale(scale, scale))
	if err != nil {
		return nil, nil, err
	}
	return img, skipped, nil
}

// RasterSVGIconToImage uses a ScannerGV instance to renderer the
// icon into an image and returns it
func RasterSVGIconToImage(icon io.Reader, scale float64) (*image.RGBA, error) {
	parsedIcon, err := svgicon.ReadIconStream(icon, svgicon.IgnoreErrorMode)
	if err != nil {
		return nil, err
	}
	img, _, err := RasterDocument(parsedIcon.Document, scale)
	return img, err
}

// WritePNG renders doc and encodes it as PNG.
func WritePNG(out io.Writer, doc svgdraw.Document, scale float64) ([]svgdraw.Text, error) {
	img, skipped, err := RasterDocument(doc, scale)
	if err != nil {
		return nil, err
	}
	return skipped, png.Encode(out, img)
}
