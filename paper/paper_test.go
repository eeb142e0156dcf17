package paper

import (
	"testing"

	"github.com/benoitkugler/cutmat/units"
)

func TestCatalog(t *testing.T) {
	cat := Catalog()
	var names []string
	for _, e := range cat {
		names = append(names, e.Name)
	}
	want := []string{"A1", "A2", "A3", "A4", "Letter", "Legal", "Tabloid"}
	if len(names) != len(want) {
		t.Fatalf("unexpected catalog %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("entry %d: got %s, want %s", i, names[i], want[i])
		}
	}

	// the returned slice is a copy
	cat[0].Width = 1
	if e, _ := Lookup("A1"); e.Width != 594 {
		t.Error("catalog was modified")
	}
}

func TestLookup(t *testing.T) {
	e, ok := Lookup("Letter")
	if !ok || e.Width != 8.5 || e.Height != 11 || e.Unit != units.Inches {
		t.Errorf("unexpected entry %v", e)
	}
	if _, ok := Lookup("B5"); ok {
		t.Error("B5 is not in the catalog")
	}
	l := e.Landscape()
	if l.Width != 11 || l.Height != 8.5 {
		t.Errorf("unexpected landscape %v", l)
	}
	w, h := e.Pixels()
	if w != 816 || h != 1056 {
		t.Errorf("unexpected pixel size %g x %g", w, h)
	}
}
