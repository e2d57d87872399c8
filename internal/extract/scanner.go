package extract

import (
	"github.com/garyjia/election-finance/internal/models"
	"github.com/garyjia/election-finance/internal/normalize"
	"github.com/garyjia/election-finance/internal/workbook"
)

// Columns maps line item fields to 1-based sheet columns. Zero means the layout has no such column.
type Columns struct {
	Date             int
	Price            int
	Type             int
	Purpose          int
	NonMonetaryBasis int
	Note             int
}

// Predicate tests one row of a sheet
type Predicate func(sheet workbook.Sheet, row int) bool

// TextEquals matches rows whose cell in col holds exactly s
func TextEquals(col int, s string) Predicate {
	return func(sheet workbook.Sheet, row int) bool {
		return sheet.Cell(row, col).TextEquals(s)
	}
}

// Blank matches rows whose cell in col is empty
func Blank(col int) Predicate {
	return func(sheet workbook.Sheet, row int) bool {
		return sheet.Cell(row, col).IsEmpty()
	}
}

// Terminator ends a scan. When Capture is set, the terminating row's
// cell in that column is read as the declared checksum.
type Terminator struct {
	When    Predicate
	Capture int
}

// ScanSpec describes one block of itemized rows
type ScanSpec struct {
	StartRow int
	Columns  Columns
	Stop     []Terminator
	Skip     []Predicate
}

// ScanResult holds the items of one block
type ScanResult struct {
	Items       []*models.LineItem
	Checksum    models.Amount
	HasChecksum bool
	EndRow      int // row the scan stopped at
}

// Scan reads line items from spec.StartRow until a terminator matches or the sheet ends
func Scan(sheet workbook.Sheet, category models.Category, spec ScanSpec) ScanResult {
	result := ScanResult{Items: []*models.LineItem{}}

	row := spec.StartRow
	if row < 1 {
		row = 1
	}
rows:
	for ; row <= sheet.MaxRow(); row++ {
		for _, stop := range spec.Stop {
			if !stop.When(sheet, row) {
				continue
			}
			if stop.Capture > 0 {
				result.Checksum = normalize.Amount(sheet.Cell(row, stop.Capture))
				result.HasChecksum = true
			}
			break rows
		}
		for _, skip := range spec.Skip {
			if skip(sheet, row) {
				continue rows
			}
		}
		result.Items = append(result.Items, readItem(sheet, row, category, spec.Columns))
	}
	result.EndRow = row
	return result
}

func readItem(sheet workbook.Sheet, row int, category models.Category, cols Columns) *models.LineItem {
	cell := func(col int) workbook.Value {
		if col == 0 {
			return workbook.Empty
		}
		return sheet.Cell(row, col)
	}
	item := &models.LineItem{
		Category:         category,
		Date:             normalize.Date(cell(cols.Date)),
		Price:            normalize.Amount(cell(cols.Price)),
		Type:             normalize.Text(cell(cols.Type)),
		NonMonetaryBasis: normalize.Text(cell(cols.NonMonetaryBasis)),
		Note:             normalize.Text(cell(cols.Note)),
	}
	if cols.Purpose != 0 {
		item.Purpose = normalize.Text(cell(cols.Purpose))
	}
	return item
}
