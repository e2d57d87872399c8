package format

import (
	"github.com/garyjia/election-finance/internal/extract"
	"github.com/garyjia/election-finance/internal/models"
	wb "github.com/garyjia/election-finance/internal/workbook"
)

// 小計 closes every itemized block of the Tokyo form
const tokyoSubtotal = "小計"

var tokyoPeriods = []string{"今回計", "前回計", "総計"}

// Tokyo is the single-workbook layout of the Tokyo report form
var Tokyo = tokyoLayout()

func tokyoLayout() Layout {
	sections := []SectionSpec{
		{
			Name:     "income_data",
			Sheet:    models.CategoryIncome.Label(),
			Category: models.CategoryIncome,
			Blocks: []Block{
				Items{
					Key: "income",
					Scan: extract.ScanSpec{
						StartRow: 3,
						Columns: extract.Columns{
							Date:             wb.ColA,
							Price:            wb.ColB,
							Type:             wb.ColC,
							NonMonetaryBasis: wb.ColG,
							Note:             wb.ColH,
						},
						Stop: []extract.Terminator{{When: extract.TextEquals(wb.ColA, tokyoSubtotal), Capture: wb.ColB}},
						// merged label rows leave A blank above the subtotal
						Skip: []extract.Predicate{extract.Blank(wb.ColA)},
					},
				},
			},
		},
		{
			Name:     "income_summary_data",
			Sheet:    "収入 (計)",
			Category: models.CategoryIncome,
			Blocks: []Block{
				Periods{
					Key: "income_summary",
					Spec: extract.PeriodSpec{
						FirstRow:      2,
						LabelColumn:   wb.ColB,
						PriceColumn:   wb.ColC,
						Periods:       tokyoPeriods,
						RowsPerPeriod: 3,
						Raw:           true,
					},
				},
				PublicExpenseNote{Note: extract.NoteSpec{Row: 12, Column: wb.ColC}},
			},
		},
	}

	for _, c := range models.ExpenseCategories {
		sections = append(sections, SectionSpec{
			Name:     string(c) + "_data",
			Sheet:    c.Label(),
			Category: c,
			Blocks: []Block{
				Items{
					Key: string(c),
					Scan: extract.ScanSpec{
						StartRow: 4,
						Columns: extract.Columns{
							Date:             wb.ColA,
							Price:            wb.ColB,
							Type:             wb.ColC,
							Purpose:          wb.ColD,
							NonMonetaryBasis: wb.ColH,
							Note:             wb.ColI,
						},
						Stop: []extract.Terminator{{When: extract.TextEquals(wb.ColA, tokyoSubtotal), Capture: wb.ColB}},
					},
				},
			},
		})
	}

	sections = append(sections, SectionSpec{
		Name:  "summary_data",
		Sheet: "支出 (計)",
		Blocks: []Block{
			Periods{
				Key: "summary",
				Spec: extract.PeriodSpec{
					FirstRow:      2,
					LabelColumn:   wb.ColB,
					PriceColumn:   wb.ColC,
					Periods:       tokyoPeriods,
					RowsPerPeriod: 3,
				},
			},
			PublicExpenseEquivalents{Spec: extract.EquivalentSpec{
				FirstRow:        12,
				ItemColumn:      wb.ColB,
				UnitPriceColumn: wb.ColC,
				QuantityColumn:  wb.ColE,
				PriceColumn:     wb.ColH,
				TotalLabel:      "計",
			}},
		},
	})

	return Layout{Name: "tokyo", Sections: sections}
}
