// Package paper lists the standard sheet sizes drawn as overlays.
package paper

import "github.com/benoitkugler/cutmat/units"

// Entry is a sheet size, in portrait orientation.
type Entry struct {
	Name          string
	Width, Height float64
	Unit          units.Unit
}

var catalog = [...]Entry{
	{Name: "A1", Width: 594, Height: 841, Unit: units.Millimeters},
	{Name: "A2", Width: 420, Height: 594, Unit: units.Millimeters},
	{Name: "A3", Width: 297, Height: 420, Unit: units.Millimeters},
	{Name: "A4", Width: 210, Height: 297, Unit: units.Millimeters},
	{Name: "Letter", Width: 8.5, Height: 11, Unit: units.Inches},
	{Name: "Legal", Width: 8.5, Height: 14, Unit: units.Inches},
	{Name: "Tabloid", Width: 11, Height: 17, Unit: units.Inches},
}

// Catalog returns a copy of the known sizes, in drawing order.
func Catalog() []Entry {
	out := catalog
	return out[:]
}

// Lookup returns the entry with the given name.
func Lookup(name string) (Entry, bool) {
	for _, e := range catalog {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Landscape returns the entry with its sides swapped.
func (e Entry) Landscape() Entry {
	e.Width, e.Height = e.Height, e.Width
	return e
}

// Pixels returns the size of the sheet in output pixels.
func (e Entry) Pixels() (width, height float64) {
	return units.ToPixels(e.Width, e.Unit), units.ToPixels(e.Height, e.Unit)
}
