// Package config defines the declarative description of a cutting mat,
// with its defaults, JSON encoding and field update helpers.
//
// A Config is a plain value: helpers never modify their receiver
// and return an updated copy instead.
package config

import (
	"maps"

	"github.com/benoitkugler/cutmat/svgdraw"
	"github.com/benoitkugler/cutmat/units"
)

// LineStyle is the dash style of a grid tier.
type LineStyle string

const (
	Solid  LineStyle = "solid"
	Dashed LineStyle = "dashed"
	Dotted LineStyle = "dotted"
)

func (s LineStyle) valid() bool { return s == Solid || s == Dashed || s == Dotted }

// Tier identifies one of the three grid densities.
type Tier uint8

const (
	Primary Tier = iota
	Secondary
	Tertiary
)

func (t Tier) String() string {
	switch t {
	case Primary:
		return "primary"
	case Secondary:
		return "secondary"
	case Tertiary:
		return "tertiary"
	default:
		return "<unknown Tier>"
	}
}

// DrawOrder lists the tiers from bottom to top.
var DrawOrder = [...]Tier{Tertiary, Secondary, Primary}

// LabelAnchor is where an overlay label sits relative to its rectangle.
type LabelAnchor string

const (
	Top         LabelAnchor = "top"
	Bottom      LabelAnchor = "bottom"
	Left        LabelAnchor = "left"
	Right       LabelAnchor = "right"
	TopLeft     LabelAnchor = "top-left"
	TopRight    LabelAnchor = "top-right"
	BottomLeft  LabelAnchor = "bottom-left"
	BottomRight LabelAnchor = "bottom-right"
)

// Anchors returns the eight label anchors.
func Anchors() []LabelAnchor {
	return []LabelAnchor{Top, Bottom, Left, Right, TopLeft, TopRight, BottomLeft, BottomRight}
}

func (a LabelAnchor) valid() bool {
	for _, v := range Anchors() {
		if a == v {
			return true
		}
	}
	return false
}

// Families lists the stroke font families a configuration may name.
var Families = [...]string{
	"futural", "futuram", "scripts", "scriptc", "gothiceng",
	"gothicger", "gothicita", "timesr", "timesg", "cyrillic",
}

// Canvas is the mat itself. The working rectangle is Width x Height,
// surrounded by Margin on every side, all in Unit.
type Canvas struct {
	Width           float64    `json:"width"`
	Height          float64    `json:"height"`
	Unit            units.Unit `json:"unit"`
	Margin          float64    `json:"margin"`
	BackgroundColor string     `json:"backgroundColor"`
}

// Grid configures one tier. Interval is in the canvas unit,
// LineWeight in pixels.
type Grid struct {
	Interval   float64   `json:"interval"`
	LineWeight float64   `json:"lineWeight"`
	LineStyle  LineStyle `json:"lineStyle"`
	Color      string    `json:"color"`
	Enabled    bool      `json:"enabled"`
}

// Measurements configures the rulers on the top and left edges.
type Measurements struct {
	Enabled    bool   `json:"enabled"`
	ShowLabels bool   `json:"showLabels"`
	Color      string `json:"color"`
}

// LabelFont is used for paper overlay labels.
type LabelFont struct {
	Family   string  `json:"family"`
	Size     float64 `json:"size"`
	Rotation float64 `json:"rotation"` // degrees
}

// AxisFont is used for ruler labels.
type AxisFont struct {
	Family        string             `json:"family"`
	Size          float64            `json:"size"`
	TopRotation   float64            `json:"topRotation"`
	LeftRotation  float64            `json:"leftRotation"`
	TopAlignment  svgdraw.TextAnchor `json:"topAlignment"`
	LeftAlignment svgdraw.TextAnchor `json:"leftAlignment"`
	LabelDistance float64            `json:"labelDistance"` // pixels from the edge
}

// Font groups the text settings. Both fields are required.
type Font struct {
	Label *LabelFont `json:"label"`
	Axis  *AxisFont  `json:"axis"`
}

// PaperOverlay configures the outline of one catalog sheet.
type PaperOverlay struct {
	Enabled     bool        `json:"enabled"`
	Portrait    bool        `json:"portrait"`
	Landscape   bool        `json:"landscape"`
	Color       string      `json:"color"`
	LabelAnchor LabelAnchor `json:"labelAnchor"`
	CustomLabel string      `json:"customLabel,omitempty"`
}

// Config is the complete description of a mat.
type Config struct {
	Canvas        Canvas                  `json:"canvas"`
	PrimaryGrid   Grid                    `json:"primaryGrid"`
	SecondaryGrid Grid                    `json:"secondaryGrid"`
	TertiaryGrid  Grid                    `json:"tertiaryGrid"`
	Measurements  Measurements            `json:"measurements"`
	Font          *Font                   `json:"font,omitempty"`
	PaperSizes    map[string]PaperOverlay `json:"paperSizes"`

	// Fields written by older versions, moved into Font by Migrate.
	LabelFont *LabelFont `json:"labelFont,omitempty"`
	AxisFont  *AxisFont  `json:"axisFont,omitempty"`
}

// Default returns the stock 12 x 18 inches mat.
func Default() Config {
	overlay := func(enabled bool, color string) PaperOverlay {
		return PaperOverlay{Enabled: enabled, Portrait: true, Color: color, LabelAnchor: Bottom}
	}
	return Config{
		Canvas: Canvas{Width: 12, Height: 18, Unit: units.Inches, Margin: 0.5, BackgroundColor: "#ffffff"},
		PrimaryGrid: Grid{
			Interval: 1, LineWeight: 2, LineStyle: Solid, Color: "#000000", Enabled: true,
		},
		SecondaryGrid: Grid{
			Interval: 0.5, LineWeight: 1, LineStyle: Solid, Color: "#666666", Enabled: true,
		},
		TertiaryGrid: Grid{
			Interval: 0.25, LineWeight: 0.5, LineStyle: Dotted, Color: "#999999", Enabled: false,
		},
		Measurements: Measurements{Enabled: true, ShowLabels: true, Color: "#000000"},
		Font: &Font{
			Label: &LabelFont{Family: "futural", Size: 12},
			Axis: &AxisFont{
				Family: "futural", Size: 10,
				TopAlignment: svgdraw.AnchorMiddle, LeftAlignment: svgdraw.AnchorEnd,
				LabelDistance: 20,
			},
		},
		PaperSizes: map[string]PaperOverlay{
			"A1":      overlay(false, "#ff0000"),
			"A2":      overlay(false, "#ff0000"),
			"A3":      overlay(false, "#ff0000"),
			"A4":      overlay(true, "#ff0000"),
			"Letter":  overlay(true, "#0000ff"),
			"Legal":   overlay(false, "#0000ff"),
			"Tabloid": overlay(false, "#0000ff"),
		},
	}
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	out := c
	out.PaperSizes = maps.Clone(c.PaperSizes)
	if c.Font != nil {
		f := Font{}
		if c.Font.Label != nil {
			l := *c.Font.Label
			f.Label = &l
		}
		if c.Font.Axis != nil {
			a := *c.Font.Axis
			f.Axis = &a
		}
		out.Font = &f
	}
	if c.LabelFont != nil {
		l := *c.LabelFont
		out.LabelFont = &l
	}
	if c.AxisFont != nil {
		a := *c.AxisFont
		out.AxisFont = &a
	}
	return out
}

// Grid returns the settings of tier t.
func (c Config) Grid(t Tier) Grid {
	switch t {
	case Secondary:
		return c.SecondaryGrid
	case Tertiary:
		return c.TertiaryGrid
	default:
		return c.PrimaryGrid
	}
}

// WithCanvas returns a copy of c using canvas.
func (c Config) WithCanvas(canvas Canvas) Config {
	out := c.Clone()
	out.Canvas = canvas
	return out
}

// WithGrid returns a copy of c where tier t uses g.
func (c Config) WithGrid(t Tier, g Grid) Config {
	out := c.Clone()
	switch t {
	case Secondary:
		out.SecondaryGrid = g
	case Tertiary:
		out.TertiaryGrid = g
	default:
		out.PrimaryGrid = g
	}
	return out
}

// WithMeasurements returns a copy of c using m.
func (c Config) WithMeasurements(m Measurements) Config {
	out := c.Clone()
	out.Measurements = m
	return out
}

// WithLabelFont returns a copy of c using f for overlay labels.
func (c Config) WithLabelFont(f LabelFont) Config {
	out := c.Clone()
	if out.Font == nil {
		out.Font = &Font{}
	}
	out.Font.Label = &f
	return out
}

// WithAxisFont returns a copy of c using f for ruler labels.
func (c Config) WithAxisFont(f AxisFont) Config {
	out := c.Clone()
	if out.Font == nil {
		out.Font = &Font{}
	}
	out.Font.Axis = &f
	return out
}

// WithPaperOverlay returns a copy of c where the sheet
// called name uses o.
func (c Config) WithPaperOverlay(name string, o PaperOverlay) Config {
	out := c.Clone()
	if out.PaperSizes == nil {
		out.PaperSizes = make(map[string]PaperOverlay)
	}
	out.PaperSizes[name] = o
	return out
}

// WithoutOverlays returns a copy of c where every overlay is disabled.
func (c Config) WithoutOverlays() Config {
	out := c.Clone()
	for name, o := range out.PaperSizes {
		o.Enabled = false
		out.PaperSizes[name] = o
	}
	return out
}
