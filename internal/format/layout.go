// Package format holds the declarative layouts of each prefecture's report workbook
// and applies them with the generic extractors.
package format

import (
	"errors"
	"fmt"

	"github.com/garyjia/election-finance/internal/extract"
	"github.com/garyjia/election-finance/internal/models"
	"github.com/garyjia/election-finance/internal/workbook"
)

// ErrUnknownFormat is returned for a layout name that is not registered
var ErrUnknownFormat = errors.New("unknown report format")

// Layout describes one prefecture's workbook
type Layout struct {
	Name     string
	Sections []SectionSpec
	Batch    BatchPolicy
}

// BatchPolicy decides which sections are read from which submission of a batch.
// The final submission is always read in full.
type BatchPolicy struct {
	EarliestOnly  []string // read from the earliest submission only
	PerSubmission []string // read from every submission but the final one
}

// SectionSpec maps one sheet to one output document
type SectionSpec struct {
	Name     string // document name, e.g. "personnel_data"
	Sheet    string
	Category models.Category
	Blocks   []Block
}

// Block is one extraction step applied to a sheet
type Block interface {
	apply(sheet workbook.Sheet, category models.Category, out *models.Section) error
}

// Items reads a block of line items into individual_<Key>.
// With Anchor set, the start row is located instead of Scan.StartRow.
type Items struct {
	Key    string
	Scan   extract.ScanSpec
	Anchor *extract.AnchorSpec
}

func (b Items) apply(sheet workbook.Sheet, category models.Category, out *models.Section) error {
	spec := b.Scan
	if b.Anchor != nil {
		start, err := extract.FindAnchor(sheet, *b.Anchor)
		if err != nil {
			return err
		}
		spec.StartRow = start
	}

	result := extract.Scan(sheet, category, spec)
	out.AddItems(b.Key, result.Items)
	if result.HasChecksum {
		out.AddChecksum(result.Checksum)
	}
	return nil
}

// Totals reads a located block of labelled totals into total_<Key>
type Totals struct {
	Key   string
	Block extract.BlockSpec
}

func (b Totals) apply(sheet workbook.Sheet, _ models.Category, out *models.Section) error {
	result, err := extract.CollectBlock(sheet, b.Block)
	if err != nil {
		return err
	}
	out.AddTotals(b.Key, result.Rows)
	if result.HasChecksum {
		out.AddChecksum(result.Checksum)
	}
	return nil
}

// Periods reads a fixed per-period table into individual_<Key>
type Periods struct {
	Key  string
	Spec extract.PeriodSpec
}

func (b Periods) apply(sheet workbook.Sheet, _ models.Category, out *models.Section) error {
	out.Set(models.IndividualPrefix+b.Key, extract.ReadPeriods(sheet, b.Spec))
	return nil
}

// PublicExpenseNote parses the public expense prose into public_expense_summary
type PublicExpenseNote struct {
	Note extract.NoteSpec
}

func (b PublicExpenseNote) apply(sheet workbook.Sheet, _ models.Category, out *models.Section) error {
	text, found := extract.FindNote(sheet, b.Note)
	summary := models.PublicExpenseSummary{Breakdown: map[string]int64{}}
	if found {
		summary = extract.ParsePublicExpense(text)
	}
	out.Set(models.KeyPublicExpenseSummary, summary)
	return nil
}

// PublicExpenseEquivalents reads the publicly funded spending table
type PublicExpenseEquivalents struct {
	Spec extract.EquivalentSpec
}

func (b PublicExpenseEquivalents) apply(sheet workbook.Sheet, _ models.Category, out *models.Section) error {
	out.Set(models.KeyPublicExpenseEquivalentSummary, extract.ReadEquivalents(sheet, b.Spec))
	return nil
}

// Extract applies the section's blocks to its sheet
func (s SectionSpec) Extract(sheet workbook.Sheet) (*models.Section, error) {
	section := models.NewSection(s.Name)
	for _, block := range s.Blocks {
		if err := block.apply(sheet, s.Category, section); err != nil {
			return nil, fmt.Errorf("section %s: %w", s.Name, err)
		}
	}
	return section, nil
}

// Section returns the spec for a document name
func (l Layout) Section(name string) (SectionSpec, bool) {
	for _, s := range l.Sections {
		if s.Name == name {
			return s, true
		}
	}
	return SectionSpec{}, false
}
