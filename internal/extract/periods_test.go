package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wb "github.com/garyjia/election-finance/internal/workbook"
)

func TestReadPeriods(t *testing.T) {
	sheet := wb.NewGrid("支出 (計)")
	labels := []string{"立候補準備", "選挙運動", "計"}
	row := 5
	for p := 0; p < 3; p++ {
		for i, l := range labels {
			sheet.SetRow(row, wb.Empty, wb.Text(l), wb.Number(float64((p+1)*100+i)))
			row++
		}
	}
	sheet.Set(13, wb.ColC, wb.Text("1,000円"))

	rows := ReadPeriods(sheet, PeriodSpec{
		FirstRow:      5,
		LabelColumn:   wb.ColB,
		PriceColumn:   wb.ColC,
		Periods:       []string{"計", "前回計", "総計"},
		RowsPerPeriod: 3,
	})

	require.Len(t, rows, 9)
	assert.Equal(t, "計 立候補準備", rows[0].Name)
	assert.Equal(t, "100", rows[0].Price.String())
	assert.Equal(t, "前回計 選挙運動", rows[4].Name)
	assert.Equal(t, "総計 計", rows[8].Name)
	assert.Equal(t, "1000", rows[8].Price.String())
}

func TestReadPeriods_Raw(t *testing.T) {
	sheet := wb.NewGrid("収入 (計)").
		SetRow(2, wb.Empty, wb.Text("寄附"), wb.Number(2.5)).
		SetRow(3, wb.Empty, wb.Text("その他"), wb.Text("なし"))

	rows := ReadPeriods(sheet, PeriodSpec{
		FirstRow:      2,
		LabelColumn:   wb.ColB,
		PriceColumn:   wb.ColC,
		Periods:       []string{"今回計"},
		RowsPerPeriod: 3,
		Raw:           true,
	})

	require.Len(t, rows, 3)
	assert.Equal(t, "2.5", rows[0].Price.String(), "raw prices are not rounded")
	assert.Nil(t, rows[1].Price)
	assert.Equal(t, "今回計 ", rows[2].Name)
	assert.Nil(t, rows[2].Price)
}

func TestReadEquivalents_FixedRange(t *testing.T) {
	sheet := wb.NewGrid("支出 (計)").
		SetRow(15, wb.Empty, wb.Empty, wb.Text("ポスター"), wb.Empty, wb.Empty, wb.Empty, wb.Number(500), wb.Number(100), wb.Number(50000))

	rows := ReadEquivalents(sheet, EquivalentSpec{
		FirstRow: 15, LastRow: 17,
		ItemColumn: wb.ColC, UnitPriceColumn: wb.ColG, QuantityColumn: wb.ColH, PriceColumn: wb.ColI,
	})

	require.Len(t, rows, 3)
	assert.Equal(t, "ポスター", *rows[0].Item)
	assert.Equal(t, "500", rows[0].UnitPrice.String())
	assert.Equal(t, "100", rows[0].Quantity.String())
	assert.Equal(t, "50000", rows[0].Price.String())
	assert.Nil(t, rows[1].Item)
	assert.Equal(t, "0", rows[1].Price.String())
}

func TestReadEquivalents_UntilTotal(t *testing.T) {
	sheet := wb.NewGrid("支出 (計)").
		SetRow(12, wb.Empty, wb.Text("ビラ"), wb.Number(7.51), wb.Empty, wb.Number(1000), wb.Empty, wb.Empty, wb.Number(7510)).
		SetRow(13, wb.Empty, wb.Number(1)).
		SetRow(14, wb.Empty, wb.Text("　")).
		SetRow(15, wb.Empty, wb.Text("計"), wb.Empty, wb.Empty, wb.Empty, wb.Empty, wb.Empty, wb.Number(7510)).
		SetRow(16, wb.Empty, wb.Text("後続"))

	rows := ReadEquivalents(sheet, EquivalentSpec{
		FirstRow: 12, ItemColumn: wb.ColB, UnitPriceColumn: wb.ColC,
		QuantityColumn: wb.ColE, PriceColumn: wb.ColH, TotalLabel: "計",
	})

	require.Len(t, rows, 2)
	assert.Equal(t, "ビラ", *rows[0].Item)
	assert.Equal(t, "8", rows[0].UnitPrice.String())
	assert.Equal(t, "計", *rows[1].Item)
	assert.Nil(t, rows[1].UnitPrice)
	assert.Nil(t, rows[1].Quantity)
	assert.Equal(t, "7510", rows[1].Price.String())
}
