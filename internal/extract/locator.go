package extract

import (
	"fmt"

	"github.com/garyjia/election-finance/internal/models"
	"github.com/garyjia/election-finance/internal/normalize"
	"github.com/garyjia/election-finance/internal/workbook"
)

// AnchorSpec locates a block that starts Offset rows below a marker cell
type AnchorSpec struct {
	FromRow int
	Column  int
	Marker  string
	Offset  int
}

// FindAnchor returns the first row at or after FromRow whose cell equals Marker, plus Offset
func FindAnchor(sheet workbook.Sheet, spec AnchorSpec) (int, error) {
	for row := max(spec.FromRow, 1); row <= sheet.MaxRow(); row++ {
		if sheet.Cell(row, spec.Column).TextEquals(spec.Marker) {
			return row + spec.Offset, nil
		}
	}
	return 0, fmt.Errorf("%w: %q in sheet %q from row %d", ErrAnchorNotFound, spec.Marker, sheet.Name(), spec.FromRow)
}

// BlockSpec describes a block of labelled total rows whose position shifts with the items above it
type BlockSpec struct {
	FromRow       int
	LabelColumn   int
	PriceColumn   int
	Labels        []string
	Limit         int    // stop after this many matches
	ChecksumLabel string // label whose price is the declared checksum
	Required      bool   // no match at all is a layout violation
}

// BlockResult holds the rows of a located block
type BlockResult struct {
	Rows        []models.AggregateRow
	Checksum    models.Amount
	HasChecksum bool
}

// CollectBlock scans down from FromRow collecting rows whose label is one of Labels.
// Labels compare after trimming spaces, including ideographic ones.
func CollectBlock(sheet workbook.Sheet, spec BlockSpec) (BlockResult, error) {
	accepted := make(map[string]bool, len(spec.Labels))
	for _, l := range spec.Labels {
		accepted[l] = true
	}

	result := BlockResult{Rows: []models.AggregateRow{}}
	for row := max(spec.FromRow, 1); row <= sheet.MaxRow(); row++ {
		if spec.Limit > 0 && len(result.Rows) >= spec.Limit {
			break
		}
		cell := sheet.Cell(row, spec.LabelColumn)
		if !cell.IsText() {
			continue
		}
		label := normalize.Label(cell)
		if !accepted[label] {
			continue
		}

		price := normalize.Amount(sheet.Cell(row, spec.PriceColumn))
		result.Rows = append(result.Rows, models.AggregateRow{Name: label, Price: price.Ptr()})
		if spec.ChecksumLabel != "" && label == spec.ChecksumLabel {
			result.Checksum = price
			result.HasChecksum = true
		}
	}

	if spec.Required && len(result.Rows) == 0 {
		return result, fmt.Errorf("%w: none of %v in sheet %q from row %d", ErrAnchorNotFound, spec.Labels, sheet.Name(), spec.FromRow)
	}
	return result, nil
}
