// Provides parsing of the SVG mats written by the engine.
// SVG files are parsed back into an svgdraw.Document,
// which can then be consumed by painting drivers.
// See for example cutmat/svgraster or cutmat/svgpdf .
package svgicon

import (
	"encoding/xml"
	"errors"
	"io"
	"os"

	"github.com/benoitkugler/cutmat/svgdraw"
	"golang.org/x/net/html/charset"
)

// ErrorMode is the strategy used for elements and
// attributes the reader does not handle.
type ErrorMode uint8

const (
	IgnoreErrorMode ErrorMode = iota // silently skip
	WarnErrorMode                    // skip and log a warning
	StrictErrorMode                  // return an error
)

// Bounds defines a bounding box, such as a viewport.
type Bounds struct{ X, Y, W, H float64 }

// SvgIcon holds data from parsed SVGs.
type SvgIcon struct {
	ViewBox Bounds
	Titles  []string // Title elements collect here

	Width, Height string // top level width and height attributes

	// Document holds the recognized elements, grouped
	// by top level <g> element. Elements outside any group
	// are collected in a layer with an empty ID.
	Document svgdraw.Document

	// ExternalRefs lists the references to resources
	// outside the file (href attributes and url(...) values
	// not starting with '#').
	ExternalRefs []string
}

// LayerSummary counts the elements of one layer.
type LayerSummary struct {
	ID                          string
	Lines, Rects, Glyphs, Texts int
}

// Summary returns the element counts of each layer, in document order.
func (icon *SvgIcon) Summary() []LayerSummary {
	out := make([]LayerSummary, len(icon.Document.Layers))
	for i, layer := range icon.Document.Layers {
		s := LayerSummary{ID: layer.ID}
		for _, p := range layer.Primitives {
			switch p.(type) {
			case svgdraw.Line:
				s.Lines++
			case svgdraw.Rect:
				s.Rects++
			case svgdraw.GlyphGroup:
				s.Glyphs++
			case svgdraw.Text:
				s.Texts++
			}
		}
		out[i] = s
	}
	return out
}

// ReadIconStream reads the Icon from the given io.Reader
// This only supports the sub-set of SVG written by svgdraw.Document.SVG.
// errMode determines if the icon ignores, errors out, or logs a warning
// if it does not handle an element found in the icon file.
func ReadIconStream(stream io.Reader, errMode ErrorMode) (*SvgIcon, error) {
	icon := &SvgIcon{}
	cursor := &iconCursor{icon: icon, errorMode: errMode}
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel
	seenTag := false
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				if !seenTag {
					return nil, errors.New("invalid svg xml icon")
				}
				break
			}
			return icon, err
		}
		// Inspect the type of the XML token
		switch se := t.(type) {
		case xml.StartElement:
			seenTag = true
			cursor.collectRefs(se.Attr)
			if err = cursor.readStartElement(se); err != nil {
				return icon, err
			}
		case xml.EndElement:
			if err = cursor.readEndElement(se); err != nil {
				return icon, err
			}
		case xml.CharData:
			cursor.readCharData(se)
		}
	}
	return icon, nil
}

// ReadIcon reads the Icon from the named file
// This only supports the sub-set of SVG written by svgdraw.Document.SVG.
// errMode determines if the icon ignores, errors out, or logs a warning
// if it does not handle an element found in the icon file.
func ReadIcon(iconFile string, errMode ErrorMode) (*SvgIcon, error) {
	fin, errf := os.Open(iconFile)
	if errf != nil {
		return nil, errf
	}
	defer fin.Close()
	return ReadIconStream(fin, errMode)
}
