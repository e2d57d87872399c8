package extract

import (
	"github.com/garyjia/election-finance/internal/models"
	"github.com/garyjia/election-finance/internal/normalize"
	"github.com/garyjia/election-finance/internal/workbook"
)

// PeriodSpec describes a fixed table of per-period totals:
// RowsPerPeriod rows for each entry of Periods, starting at FirstRow.
type PeriodSpec struct {
	FirstRow      int
	LabelColumn   int
	PriceColumn   int
	Periods       []string
	RowsPerPeriod int
	Raw           bool // keep numeric cells as-is, nil otherwise
}

// ReadPeriods reads the period table, naming each row "<period> <label>"
func ReadPeriods(sheet workbook.Sheet, spec PeriodSpec) []models.AggregateRow {
	rows := make([]models.AggregateRow, 0, len(spec.Periods)*spec.RowsPerPeriod)
	row := spec.FirstRow
	for _, period := range spec.Periods {
		for i := 0; i < spec.RowsPerPeriod; i, row = i+1, row+1 {
			label := sheet.Cell(row, spec.LabelColumn).String()
			price := sheet.Cell(row, spec.PriceColumn)

			var amount *models.Amount
			if spec.Raw {
				amount = normalize.RawAmount(price)
			} else {
				amount = normalize.Amount(price).Ptr()
			}
			rows = append(rows, models.AggregateRow{Name: period + " " + label, Price: amount})
		}
	}
	return rows
}

// EquivalentSpec describes the table of publicly funded spending.
// With LastRow set the rows are fixed; otherwise rows are read until TotalLabel.
type EquivalentSpec struct {
	FirstRow        int
	LastRow         int
	ItemColumn      int
	UnitPriceColumn int
	QuantityColumn  int
	PriceColumn     int
	TotalLabel      string
}

// ReadEquivalents reads the publicly funded spending table
func ReadEquivalents(sheet workbook.Sheet, spec EquivalentSpec) []models.PublicExpenseEquivalent {
	rows := []models.PublicExpenseEquivalent{}

	if spec.LastRow > 0 {
		for row := spec.FirstRow; row <= spec.LastRow; row++ {
			rows = append(rows, models.PublicExpenseEquivalent{
				Item:      normalize.Text(sheet.Cell(row, spec.ItemColumn)),
				UnitPrice: normalize.Amount(sheet.Cell(row, spec.UnitPriceColumn)).Ptr(),
				Quantity:  normalize.Amount(sheet.Cell(row, spec.QuantityColumn)).Ptr(),
				Price:     normalize.Amount(sheet.Cell(row, spec.PriceColumn)),
			})
		}
		return rows
	}

	for row := spec.FirstRow; row <= sheet.MaxRow(); row++ {
		cell := sheet.Cell(row, spec.ItemColumn)
		if !cell.IsText() {
			continue
		}
		label := normalize.Label(cell)
		if label == "" {
			continue
		}
		if label == spec.TotalLabel {
			rows = append(rows, models.PublicExpenseEquivalent{
				Item:  &label,
				Price: normalize.Amount(sheet.Cell(row, spec.PriceColumn)),
			})
			break
		}
		rows = append(rows, models.PublicExpenseEquivalent{
			Item:      &label,
			UnitPrice: normalize.Amount(sheet.Cell(row, spec.UnitPriceColumn)).Ptr(),
			Quantity:  normalize.Amount(sheet.Cell(row, spec.QuantityColumn)).Ptr(),
			Price:     normalize.Amount(sheet.Cell(row, spec.PriceColumn)),
		})
	}
	return rows
}
