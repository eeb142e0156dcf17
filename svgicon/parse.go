package svgicon

import (
	"encoding/xml"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode"

	"github.com/benoitkugler/cutmat/svgdraw"
	"github.com/benoitkugler/cutmat/svgpath"
)

var errParamMismatch = errors.New("param mismatch")

// iconCursor is used while parsing SVG files
type iconCursor struct {
	icon      *SvgIcon
	errorMode ErrorMode

	layer     int // index in icon.Document.Layers, valid when hasLayer
	depth     int // of the current element, the root being 1
	skipUntil int // when > 0, the depth of an ignored element
	hasLayer  bool

	glyph      *svgdraw.GlyphGroup // pending <g transform=...>
	glyphDepth int
	text       *svgdraw.Text
	inTitle    bool
}

// handleUnsupported applies the error mode for `msg`.
func (c *iconCursor) handleUnsupported(msg string) error {
	if c.errorMode == StrictErrorMode {
		return errors.New(msg)
	} else if c.errorMode == WarnErrorMode {
		slog.Warn(msg)
	}
	return nil
}

// splitList splits on commas and whitespaces.
func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

func parseFloat(s string) (float64, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	return strconv.ParseFloat(s, 64)
}

func parseFloats(s string) ([]float64, error) {
	fields := splitList(s)
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := parseFloat(f)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// attrs is a convenience view over the attributes of an element.
type attrs []xml.Attr

func (as attrs) get(name string) (string, bool) {
	for _, attr := range as {
		if attr.Name.Local == name {
			return attr.Value, true
		}
	}
	return "", false
}

// num returns 0 for a missing attribute.
func (as attrs) num(name string) (float64, error) {
	v, ok := as.get(name)
	if !ok {
		return 0, nil
	}
	f, err := parseFloat(v)
	if err != nil {
		return 0, fmt.Errorf("attribute %s: %w", name, err)
	}
	return f, nil
}

// nums reads several attributes at once, stopping at the first error.
func (as attrs) nums(names []string, out ...*float64) error {
	for i, name := range names {
		v, err := as.num(name)
		if err != nil {
			return err
		}
		*out[i] = v
	}
	return nil
}

// paint returns an empty string for "none" or a missing attribute.
func (as attrs) paint(name string) string {
	v, _ := as.get(name)
	if v = strings.TrimSpace(v); v == "none" {
		return ""
	}
	return v
}

func (as attrs) stroke() (svgdraw.Stroke, error) {
	var s svgdraw.Stroke
	s.Color = as.paint("stroke")
	if s.Color == "" {
		return s, nil
	}
	var err error
	if s.Width, err = as.num("stroke-width"); err != nil {
		return s, err
	}
	if _, has := as.get("stroke-width"); !has {
		s.Width = 1
	}
	if dash, ok := as.get("stroke-dasharray"); ok && strings.TrimSpace(dash) != "none" {
		if s.Dash, err = parseFloats(dash); err != nil {
			return s, fmt.Errorf("attribute stroke-dasharray: %w", err)
		}
	}
	return s, nil
}

// transformOp is one function of a transform attribute,
// such as translate(10 20).
type transformOp struct {
	name string
	args []float64
}

func parseTransform(s string) ([]transformOp, error) {
	var out []transformOp
	for _, chunk := range strings.Split(s, ")") {
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		name, args, ok := strings.Cut(chunk, "(")
		if !ok {
			return nil, fmt.Errorf("invalid transform %q", s)
		}
		name = strings.Trim(name, ", \t\n")
		values, err := parseFloats(args)
		if err != nil {
			return nil, fmt.Errorf("transform %s: %w", name, err)
		}
		out = append(out, transformOp{name: name, args: values})
	}
	return out, nil
}

// currentLayer returns the layer receiving the primitives,
// creating an anonymous one for elements outside any group.
func (c *iconCursor) currentLayer() *svgdraw.Layer {
	doc := &c.icon.Document
	if !c.hasLayer {
		doc.Layers = append(doc.Layers, svgdraw.Layer{})
		c.layer, c.hasLayer = len(doc.Layers)-1, true
	}
	return &doc.Layers[c.layer]
}

func (c *iconCursor) add(p svgdraw.Primitive) {
	l := c.currentLayer()
	l.Primitives = append(l.Primitives, p)
}

// collectRefs records the references to external resources.
func (c *iconCursor) collectRefs(as []xml.Attr) {
	for _, attr := range as {
		v := strings.TrimSpace(attr.Value)
		if attr.Name.Local == "href" && v != "" && !strings.HasPrefix(v, "#") {
			c.icon.ExternalRefs = append(c.icon.ExternalRefs, v)
		}
		for rest := v; ; {
			_, after, ok := strings.Cut(rest, "url(")
			if !ok {
				break
			}
			target, tail, _ := strings.Cut(after, ")")
			target = strings.Trim(target, `'" `)
			if !strings.HasPrefix(target, "#") {
				c.icon.ExternalRefs = append(c.icon.ExternalRefs, target)
			}
			rest = tail
		}
	}
}

func (c *iconCursor) readStartElement(se xml.StartElement) error {
	c.depth++
	if c.skipUntil > 0 {
		return nil
	}
	as := attrs(se.Attr)
	var err error
	switch se.Name.Local {
	case "svg":
		err = c.readSVG(as)
	case "title":
		c.icon.Titles = append(c.icon.Titles, "")
		c.inTitle = true
	case "desc", "metadata":
		c.skipUntil = c.depth
	case "g":
		if _, ok := as.get("transform"); ok {
			err = c.readGlyphGroup(as)
		} else {
			id, _ := as.get("id")
			c.icon.Document.Layers = append(c.icon.Document.Layers, svgdraw.Layer{ID: id})
			c.layer, c.hasLayer = len(c.icon.Document.Layers)-1, true
		}
	case "path":
		err = c.readPath(as)
	case "line":
		err = c.readLine(as)
	case "rect":
		err = c.readRect(as)
	case "text":
		err = c.readText(as)
	default:
		c.skipUntil = c.depth
		err = c.handleUnsupported("Cannot process svg element " + se.Name.Local)
	}
	if err != nil {
		return fmt.Errorf("element %s: %w", se.Name.Local, err)
	}
	return nil
}

func (c *iconCursor) readEndElement(se xml.EndElement) error {
	defer func() { c.depth-- }()
	if c.skipUntil > 0 {
		if c.depth == c.skipUntil {
			c.skipUntil = 0
		}
		return nil
	}
	switch se.Name.Local {
	case "title":
		c.inTitle = false
	case "g":
		if c.glyph != nil && c.depth == c.glyphDepth {
			c.add(*c.glyph)
			c.glyph = nil
		} else if c.glyph == nil {
			c.hasLayer = false
		}
	case "text":
		if c.text != nil {
			c.add(*c.text)
			c.text = nil
		}
	}
	return nil
}

func (c *iconCursor) readCharData(data xml.CharData) {
	if c.skipUntil > 0 {
		return
	}
	if c.inTitle {
		c.icon.Titles[len(c.icon.Titles)-1] += string(data)
	}
	if c.text != nil {
		c.text.Content += string(data)
	}
}

func (c *iconCursor) readSVG(as attrs) error {
	c.icon.Width, _ = as.get("width")
	c.icon.Height, _ = as.get("height")
	if vb, ok := as.get("viewBox"); ok {
		values, err := parseFloats(vb)
		if err != nil {
			return fmt.Errorf("attribute viewBox: %w", err)
		}
		if len(values) != 4 {
			return fmt.Errorf("attribute viewBox: %w", errParamMismatch)
		}
		c.icon.ViewBox = Bounds{X: values[0], Y: values[1], W: values[2], H: values[3]}
		c.icon.Document.Width, c.icon.Document.Height = values[2], values[3]
		return nil
	}
	return as.nums([]string{"width", "height"}, &c.icon.Document.Width, &c.icon.Document.Height)
}

// readGlyphGroup inverts the transform written for svgdraw.GlyphGroup.
func (c *iconCursor) readGlyphGroup(as attrs) error {
	tr, _ := as.get("transform")
	ops, err := parseTransform(tr)
	if err != nil {
		return err
	}
	stroke, err := as.stroke()
	if err != nil {
		return err
	}
	var g svgdraw.GlyphGroup
	var tx, ty, cx float64
	for _, op := range ops {
		switch {
		case op.name == "translate" && (len(op.args) == 1 || len(op.args) == 2):
			tx = op.args[0]
			if len(op.args) == 2 {
				ty = op.args[1]
			}
		case op.name == "rotate" && len(op.args) == 1:
			g.Rotation = op.args[0]
		case op.name == "rotate" && len(op.args) == 3 && op.args[2] == 0:
			g.Rotation, cx = op.args[0], op.args[1]
		default:
			if err := c.handleUnsupported(fmt.Sprintf("Cannot process transform %s%v", op.name, op.args)); err != nil {
				return err
			}
		}
	}
	g.Offset = -cx
	g.X, g.Y = tx+cx, ty
	g.Stroke = stroke
	c.glyph, c.glyphDepth = &g, c.depth
	return nil
}

func (c *iconCursor) readPath(as attrs) error {
	d, _ := as.get("d")
	p, err := svgpath.Parse(d)
	if err != nil {
		return err
	}
	if c.glyph != nil {
		c.glyph.Path = append(c.glyph.Path, p...)
		return nil
	}
	// a free path is a glyph group without transform
	stroke, err := as.stroke()
	if err != nil {
		return err
	}
	c.add(svgdraw.GlyphGroup{Path: p, Stroke: stroke})
	return nil
}

func (c *iconCursor) readLine(as attrs) error {
	var l svgdraw.Line
	if err := as.nums([]string{"x1", "y1", "x2", "y2"}, &l.X1, &l.Y1, &l.X2, &l.Y2); err != nil {
		return err
	}
	var err error
	if l.Stroke, err = as.stroke(); err != nil {
		return err
	}
	c.add(l)
	return nil
}

func (c *iconCursor) readRect(as attrs) error {
	var r svgdraw.Rect
	if err := as.nums([]string{"x", "y", "width", "height"}, &r.X, &r.Y, &r.Width, &r.Height); err != nil {
		return err
	}
	r.Fill = as.paint("fill")
	var err error
	if r.Stroke, err = as.stroke(); err != nil {
		return err
	}
	c.add(r)
	return nil
}

func (c *iconCursor) readText(as attrs) error {
	var t svgdraw.Text
	if err := as.nums([]string{"x", "y", "font-size"}, &t.X, &t.Y, &t.Size); err != nil {
		return err
	}
	t.Family, _ = as.get("font-family")
	anchor, _ := as.get("text-anchor")
	t.Anchor = svgdraw.ParseAnchor(anchor)
	t.Color = as.paint("fill")
	if tr, ok := as.get("transform"); ok {
		ops, err := parseTransform(tr)
		if err != nil {
			return err
		}
		for _, op := range ops {
			if op.name == "rotate" && (len(op.args) == 1 || len(op.args) == 3) {
				t.Rotation = op.args[0]
				continue
			}
			if err := c.handleUnsupported(fmt.Sprintf("Cannot process transform %s%v", op.name, op.args)); err != nil {
				return err
			}
		}
	}
	c.text = &t
	return nil
}
