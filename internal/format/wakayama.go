package format

import (
	"github.com/garyjia/election-finance/internal/extract"
	"github.com/garyjia/election-finance/internal/models"
	wb "github.com/garyjia/election-finance/internal/workbook"
)

var (
	// spending totals printed below each expense block
	wakayamaSpendingLabels = []string{"立候補準備のための支出", "選挙運動のための支出", "計"}
	wakayamaIncomeLabels   = []string{"寄附", "その他の収入", "計", "総計"}
	wakayamaPeriods        = []string{"計", "前回計", "総計"}

	wakayamaExpenseColumns = extract.Columns{
		Date:             wb.ColA,
		Price:            wb.ColC,
		Type:             wb.ColE,
		Purpose:          wb.ColF,
		NonMonetaryBasis: wb.ColJ,
		Note:             wb.ColK,
	}
)

// Wakayama is the layout of the Wakayama report form. A campaign files one
// workbook per reporting period; see BatchPolicy for how they are combined.
var Wakayama = wakayamaLayout()

func wakayamaSpendingTotals(fromRow int) extract.BlockSpec {
	return extract.BlockSpec{
		FromRow:       fromRow,
		LabelColumn:   wb.ColB,
		PriceColumn:   wb.ColC,
		Labels:        wakayamaSpendingLabels,
		Limit:         3,
		ChecksumLabel: "計",
	}
}

func wakayamaLayout() Layout {
	sections := []SectionSpec{
		{
			Name:     "income_data",
			Sheet:    models.CategoryIncome.Label(),
			Category: models.CategoryIncome,
			Blocks: []Block{
				Items{
					Key: "income",
					Scan: extract.ScanSpec{
						StartRow: 4,
						Columns: extract.Columns{
							Date:             wb.ColA,
							Price:            wb.ColC,
							Type:             wb.ColE,
							NonMonetaryBasis: wb.ColI,
							Note:             wb.ColJ,
						},
						Stop: []extract.Terminator{{When: extract.Blank(wb.ColA)}},
					},
				},
				// income carries period-to-date figures, so no checksum is declared here
				Totals{
					Key: "income",
					Block: extract.BlockSpec{
						FromRow:     7,
						LabelColumn: wb.ColB,
						PriceColumn: wb.ColC,
						Labels:      wakayamaIncomeLabels,
						Limit:       9,
					},
				},
				PublicExpenseNote{Note: extract.NoteSpec{
					FromRow:      18,
					MarkerColumn: wb.ColA,
					Marker:       "参考",
					Column:       wb.ColB,
				}},
			},
		},
		{
			Name:     "building_data",
			Sheet:    models.CategoryBuilding.Label(),
			Category: models.CategoryBuilding,
			Blocks: []Block{
				Items{
					Key: "election_office",
					Scan: extract.ScanSpec{
						StartRow: 4,
						Columns:  wakayamaExpenseColumns,
						Stop:     []extract.Terminator{{When: extract.Blank(wb.ColA)}},
					},
				},
				Totals{Key: "election_office", Block: wakayamaSpendingTotals(16)},
				Items{
					Key: "meeting_venue",
					Anchor: &extract.AnchorSpec{
						FromRow: 20,
						Column:  wb.ColA,
						Marker:  "月　　日",
						Offset:  2,
					},
					Scan: extract.ScanSpec{
						Columns: wakayamaExpenseColumns,
						Stop:    []extract.Terminator{{When: extract.Blank(wb.ColA)}},
					},
				},
				Totals{Key: "meeting_venue", Block: wakayamaSpendingTotals(34)},
			},
		},
	}

	for _, c := range models.ExpenseCategories {
		if c == models.CategoryBuilding {
			continue
		}
		sections = append(sections, SectionSpec{
			Name:     string(c) + "_data",
			Sheet:    c.Label(),
			Category: c,
			Blocks: []Block{
				Items{
					Key: string(c),
					Scan: extract.ScanSpec{
						StartRow: 4,
						Columns:  wakayamaExpenseColumns,
						Stop:     []extract.Terminator{{When: extract.Blank(wb.ColC)}},
					},
				},
				Totals{Key: string(c), Block: wakayamaSpendingTotals(16)},
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
					FirstRow:      5,
					LabelColumn:   wb.ColB,
					PriceColumn:   wb.ColC,
					Periods:       wakayamaPeriods,
					RowsPerPeriod: 3,
				},
			},
			PublicExpenseEquivalents{Spec: extract.EquivalentSpec{
				FirstRow:        15,
				LastRow:         23,
				ItemColumn:      wb.ColC,
				UnitPriceColumn: wb.ColG,
				QuantityColumn:  wb.ColH,
				PriceColumn:     wb.ColI,
			}},
		},
	})

	return Layout{
		Name:     "wakayama",
		Sections: sections,
		Batch: BatchPolicy{
			EarliestOnly:  []string{"income_data"},
			PerSubmission: []string{"communication_data"},
		},
	}
}
