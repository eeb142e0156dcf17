// Package mat composes a complete cutting mat diagram from its
// configuration: background, grid tiers, paper overlays and rulers,
// serialized as a self-contained SVG document.
//
// Composition is a pure function of the configuration: the same input
// always gives byte identical output, and engines may be used
// concurrently.
package mat

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/benoitkugler/cutmat/axis"
	"github.com/benoitkugler/cutmat/config"
	"github.com/benoitkugler/cutmat/grid"
	"github.com/benoitkugler/cutmat/hershey"
	"github.com/benoitkugler/cutmat/overlay"
	"github.com/benoitkugler/cutmat/paper"
	"github.com/benoitkugler/cutmat/svgdraw"
	"github.com/benoitkugler/cutmat/units"
)

// Layer ids, in stacking order.
const (
	LayerBackground    = "background"
	LayerGridTertiary  = "grid-tertiary"
	LayerGridSecondary = "grid-secondary"
	LayerGridPrimary   = "grid-primary"
	LayerOverlays      = "overlays"
	LayerAxis          = "axis"
)

// OutlineWidth is the stroke width of the working area border.
const OutlineWidth = 2

var tierLayers = map[config.Tier]string{
	config.Tertiary:  LayerGridTertiary,
	config.Secondary: LayerGridSecondary,
	config.Primary:   LayerGridPrimary,
}

// Engine holds the static catalogs used to compose diagrams.
// The zero value uses paper.Catalog, hershey.DefaultRegistry
// and the package logger.
type Engine struct {
	Papers []paper.Entry
	Fonts  hershey.Registry
	Logger *slog.Logger
}

func (e Engine) logger() *slog.Logger {
	if e.Logger == nil {
		return Logger()
	}
	return e.Logger
}

// geometry is the pixel layout of a canvas.
type geometry struct {
	margin, width, height float64 // working area
	docWidth, docHeight   float64
}

func newGeometry(c config.Canvas) geometry {
	var g geometry
	g.margin = units.ToPixels(c.Margin, c.Unit)
	g.width = units.ToPixels(c.Width, c.Unit)
	g.height = units.ToPixels(c.Height, c.Unit)
	g.docWidth = g.width + 2*g.margin
	g.docHeight = g.height + 2*g.margin
	return g
}

// Build returns the ordered primitives of the diagram described by cfg.
// Legacy font settings are migrated and numeric fields sanitized first.
// An error is returned if the font configuration is missing or if
// an enumerated field holds an unknown value.
func (e Engine) Build(cfg config.Config) (svgdraw.Document, error) {
	cfg = config.Migrate(cfg)
	if err := config.Validate(cfg); err != nil {
		return svgdraw.Document{}, fmt.Errorf("invalid configuration: %w", err)
	}
	log := e.logger()
	cfg, fixed := config.Sanitize(cfg)
	if len(fixed) != 0 {
		log.Debug("invalid numeric values replaced by 0", "fields", fixed)
	}

	unit := cfg.Canvas.Unit
	geo := newGeometry(cfg.Canvas)
	text := hershey.Renderer{Fonts: e.Fonts, Logger: log}

	doc := svgdraw.Document{Width: geo.docWidth, Height: geo.docHeight}
	doc.Layers = append(doc.Layers, svgdraw.Layer{
		ID: LayerBackground,
		Primitives: []svgdraw.Primitive{
			svgdraw.Rect{Width: geo.docWidth, Height: geo.docHeight, Fill: cfg.Canvas.BackgroundColor},
			svgdraw.Rect{
				X: geo.margin, Y: geo.margin, Width: geo.width, Height: geo.height,
				Stroke: svgdraw.Stroke{Color: cfg.Measurements.Color, Width: OutlineWidth},
			},
		},
	})

	for _, tier := range config.DrawOrder {
		spec := cfg.Grid(tier)
		lines := grid.Generate(spec, units.ToPixels(spec.Interval, unit), geo.width, geo.height, geo.margin, geo.margin)
		layer := svgdraw.Layer{ID: tierLayers[tier], Primitives: make([]svgdraw.Primitive, len(lines))}
		for i, l := range lines {
			layer.Primitives[i] = l
		}
		doc.Layers = append(doc.Layers, layer)
	}

	placer := overlay.Placer{Papers: e.Papers, Text: text, Logger: log}
	placements := placer.Place(cfg.PaperSizes, *cfg.Font.Label, geo.width, geo.height, geo.margin, geo.margin)
	doc.Layers = append(doc.Layers, svgdraw.Layer{ID: LayerOverlays, Primitives: overlay.Primitives(placements)})

	labeler := axis.Labeler{Text: text}
	frame := axis.Frame{X: geo.margin, Y: geo.margin, Width: geo.width, Height: geo.height}
	ticks := labeler.Generate(cfg.Measurements, *cfg.Font.Axis, unit, units.ToPixels(cfg.PrimaryGrid.Interval, unit), frame)
	doc.Layers = append(doc.Layers, svgdraw.Layer{ID: LayerAxis, Primitives: ticks})

	return doc, nil
}

// Compose returns the SVG document for cfg.
func (e Engine) Compose(cfg config.Config) (string, error) {
	doc, err := e.Build(cfg)
	if err != nil {
		return "", err
	}
	return doc.SVG(), nil
}

// Compose uses the default Engine.
func Compose(cfg config.Config) (string, error) {
	return Engine{}.Compose(cfg)
}

// FileName returns the conventional name of an exported diagram,
// such as "cutting-mat-12x18-inches.svg".
func FileName(c config.Canvas, ext string) string {
	format := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return fmt.Sprintf("cutting-mat-%sx%s-%s.%s", format(c.Width), format(c.Height), c.Unit, strings.TrimPrefix(ext, "."))
}
