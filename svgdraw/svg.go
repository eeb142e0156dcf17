package svgdraw

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/benoitkugler/cutmat/svgpath"
	"golang.org/x/image/math/fixed"
)

const svgNamespace = "http://www.w3.org/2000/svg"

// FormatNumber prints v with at most 4 decimals, without trailing zeros.
func FormatNumber(v float64) string {
	v = math.Round(v*1e4) / 1e4
	if v == 0 { // also catches -0
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatDash returns the "stroke-dasharray" value for dash,
// or an empty string for a solid line.
func FormatDash(dash []float64) string {
	if len(dash) == 0 {
		return ""
	}
	chunks := make([]string, len(dash))
	for i, d := range dash {
		chunks[i] = FormatNumber(d)
	}
	return strings.Join(chunks, " ")
}

// FormatPath returns path data for p, with FormatNumber precision.
func FormatPath(p svgpath.Path) string {
	var b strings.Builder
	for _, op := range p {
		switch op := op.(type) {
		case svgpath.MoveTo:
			fmt.Fprintf(&b, "M%s %s", fixedToString(op.X), fixedToString(op.Y))
		case svgpath.LineTo:
			fmt.Fprintf(&b, "L%s %s", fixedToString(op.X), fixedToString(op.Y))
		case svgpath.Close:
			b.WriteByte('Z')
		}
	}
	return b.String()
}

func fixedToString(v fixed.Int26_6) string { return FormatNumber(float64(v) / 64) }

func radians(deg float64) float64 { return deg * math.Pi / 180 }

type svgWriter struct {
	b bytes.Buffer
}

func (w *svgWriter) attr(name, value string) {
	w.b.WriteByte(' ')
	w.b.WriteString(name)
	w.b.WriteString(`="`)
	xml.EscapeText(&w.b, []byte(value))
	w.b.WriteByte('"')
}

func (w *svgWriter) num(name string, v float64) { w.attr(name, FormatNumber(v)) }

func (w *svgWriter) stroke(s Stroke) {
	if !s.visible() {
		return
	}
	w.attr("stroke", s.Color)
	w.num("stroke-width", s.Width)
	if dash := FormatDash(s.Dash); dash != "" {
		w.attr("stroke-dasharray", dash)
	}
}

func fillValue(fill string) string {
	if fill == "" {
		return "none"
	}
	return fill
}

func (w *svgWriter) primitive(p Primitive) {
	switch p := p.(type) {
	case Line:
		w.b.WriteString("<line")
		w.num("x1", p.X1)
		w.num("y1", p.Y1)
		w.num("x2", p.X2)
		w.num("y2", p.Y2)
		w.stroke(p.Stroke)
		w.b.WriteString("/>\n")
	case Rect:
		w.b.WriteString("<rect")
		w.num("x", p.X)
		w.num("y", p.Y)
		w.num("width", p.Width)
		w.num("height", p.Height)
		w.attr("fill", fillValue(p.Fill))
		w.stroke(p.Stroke)
		w.b.WriteString("/>\n")
	case GlyphGroup:
		w.b.WriteString("<g")
		tr := fmt.Sprintf("translate(%s %s)", FormatNumber(p.X+p.Offset), FormatNumber(p.Y))
		if p.Rotation != 0 {
			tr += fmt.Sprintf(" rotate(%s %s 0)", FormatNumber(p.Rotation), FormatNumber(-p.Offset))
		}
		w.attr("transform", tr)
		w.attr("fill", "none")
		w.stroke(p.Stroke)
		w.attr("stroke-linecap", "round")
		w.attr("stroke-linejoin", "round")
		w.b.WriteString("><path")
		w.attr("d", FormatPath(p.Path))
		w.b.WriteString("/></g>\n")
	case Text:
		w.b.WriteString("<text")
		w.num("x", p.X)
		w.num("y", p.Y)
		if p.Family != "" {
			w.attr("font-family", p.Family)
		}
		w.num("font-size", p.Size)
		w.attr("text-anchor", p.Anchor.String())
		w.attr("fill", fillValue(p.Color))
		if p.Rotation != 0 {
			w.attr("transform", fmt.Sprintf("rotate(%s %s %s)",
				FormatNumber(p.Rotation), FormatNumber(p.X), FormatNumber(p.Y)))
		}
		w.b.WriteByte('>')
		xml.EscapeText(&w.b, []byte(p.Content))
		w.b.WriteString("</text>\n")
	}
}

// SVG serializes the document. The output only depends on
// the document content, so that equal documents give identical bytes.
func (doc Document) SVG() string {
	var w svgWriter
	w.b.WriteString("<svg")
	w.attr("xmlns", svgNamespace)
	w.num("width", doc.Width)
	w.num("height", doc.Height)
	w.attr("viewBox", "0 0 "+FormatNumber(doc.Width)+" "+FormatNumber(doc.Height))
	w.b.WriteString(">\n")
	for _, layer := range doc.Layers {
		w.b.WriteString("<g")
		w.attr("id", layer.ID)
		w.b.WriteString(">\n")
		for _, p := range layer.Primitives {
			w.primitive(p)
		}
		w.b.WriteString("</g>\n")
	}
	w.b.WriteString("</svg>\n")
	return w.b.String()
}

// WriteTo writes the SVG serialization of doc to out.
func (doc Document) WriteTo(out io.Writer) (int64, error) {
	n, err := io.WriteString(out, doc.SVG())
	return int64(n), err
}
