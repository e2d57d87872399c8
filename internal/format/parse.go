package format

import (
	"fmt"
	"sort"

	"github.com/garyjia/election-finance/internal/models"
	"github.com/garyjia/election-finance/internal/workbook"
)

var registry = map[string]Layout{
	Tokyo.Name:    Tokyo,
	Wakayama.Name: Wakayama,
}

// Lookup returns the layout registered under name
func Lookup(name string) (Layout, error) {
	l, ok := registry[name]
	if !ok {
		return Layout{}, fmt.Errorf("%w: %q (known: %v)", ErrUnknownFormat, name, Names())
	}
	return l, nil
}

// Names lists the registered layouts
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Parse extracts the named sections of a document in layout order; no names means every section.
// Any error aborts the document: a missing sheet or anchor means the layout does not fit.
func Parse(book workbook.Source, layout Layout, names ...string) ([]*models.Section, error) {
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		if _, ok := layout.Section(n); !ok {
			return nil, fmt.Errorf("layout %s has no section %q", layout.Name, n)
		}
		wanted[n] = true
	}

	var sections []*models.Section
	for _, spec := range layout.Sections {
		if len(wanted) > 0 && !wanted[spec.Name] {
			continue
		}
		sheet, err := book.Sheet(spec.Sheet)
		if err != nil {
			return nil, fmt.Errorf("section %s: %w", spec.Name, err)
		}
		section, err := spec.Extract(sheet)
		if err != nil {
			return nil, err
		}
		sections = append(sections, section)
	}
	return sections, nil
}
