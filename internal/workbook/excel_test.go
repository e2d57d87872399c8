package workbook

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeTestBook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", "収入"))
	_, err := f.NewSheet("支出 (計)")
	require.NoError(t, err)

	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: 14})
	require.NoError(t, err)
	custom := "yyyy\"年\"m\"月\"d\"日\""
	customStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &custom})
	require.NoError(t, err)
	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: 3})
	require.NoError(t, err)

	// A3: date serial for 2024-04-01 with a built-in date format
	require.NoError(t, f.SetCellValue("収入", "A3", 45383))
	require.NoError(t, f.SetCellStyle("収入", "A3", "A3", dateStyle))
	require.NoError(t, f.SetCellValue("収入", "B3", 12000))
	require.NoError(t, f.SetCellStyle("収入", "B3", "B3", amountStyle))
	require.NoError(t, f.SetCellValue("収入", "C3", "寄附"))
	require.NoError(t, f.SetCellValue("収入", "D3", 12.5))
	require.NoError(t, f.SetCellBool("収入", "E3", true))
	// A4: custom Japanese date format
	require.NoError(t, f.SetCellValue("収入", "A4", 45384))
	require.NoError(t, f.SetCellStyle("収入", "A4", "A4", customStyle))
	require.NoError(t, f.SetCellValue("収入", "A5", "小計"))
	require.NoError(t, f.SetCellValue("収入", "B5", "1,200円"))

	require.NoError(t, f.SetCellValue("支出 (計)", "B2", "人件費"))

	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestWorkbook_Sheet(t *testing.T) {
	wb, err := Open(writeTestBook(t))
	require.NoError(t, err)
	defer wb.Close()

	sheet, err := wb.Sheet("収入")
	require.NoError(t, err)

	assert.Equal(t, "収入", sheet.Name())
	assert.Equal(t, 5, sheet.MaxRow())

	date := sheet.Cell(3, ColA)
	assert.Equal(t, KindDate, date.Kind)
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), date.Time)

	amount := sheet.Cell(3, ColB)
	assert.Equal(t, KindNumber, amount.Kind, "a thousands format is not a date format")
	assert.Equal(t, 12000.0, amount.Number)

	assert.True(t, sheet.Cell(3, ColC).TextEquals("寄附"))
	assert.Equal(t, 12.5, sheet.Cell(3, ColD).Number)
	assert.Equal(t, Bool(true), sheet.Cell(3, ColE))

	assert.Equal(t, "2024-04-02", sheet.Cell(4, ColA).String())
	assert.True(t, sheet.Cell(4, ColB).IsEmpty())

	assert.Equal(t, "1,200円", sheet.Cell(5, ColB).String())
	assert.True(t, sheet.Cell(99, ColA).IsEmpty())
}

func TestWorkbook_SheetNameFolding(t *testing.T) {
	wb, err := Open(writeTestBook(t))
	require.NoError(t, err)
	defer wb.Close()

	for _, name := range []string{"支出 (計)", "支出（計）", "支出(計)", "支出　（計）"} {
		t.Run(name, func(t *testing.T) {
			sheet, err := wb.Sheet(name)
			require.NoError(t, err)
			assert.Equal(t, "支出 (計)", sheet.Name())
			assert.Equal(t, "人件費", sheet.Cell(2, ColB).String())
		})
	}
}

func TestWorkbook_MissingSheet(t *testing.T) {
	wb, err := Open(writeTestBook(t))
	require.NoError(t, err)
	defer wb.Close()

	_, err = wb.Sheet("家屋")
	assert.ErrorIs(t, err, ErrSheetNotFound)
	assert.ElementsMatch(t, []string{"収入", "支出 (計)"}, wb.SheetNames())
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "absent.xlsx"))
	assert.Error(t, err)
}

func TestIsDateNumFmt(t *testing.T) {
	custom := func(s string) *string { return &s }

	tests := []struct {
		name   string
		id     int
		custom *string
		want   bool
	}{
		{"general", 0, nil, false},
		{"thousands", 3, nil, false},
		{"m/d/yyyy", 14, nil, true},
		{"datetime", 22, nil, true},
		{"japanese era", 57, nil, true},
		{"time only", 20, nil, false},
		{"custom date", 0, custom("yyyy/mm/dd"), true},
		{"custom currency", 0, custom(`"¥"#,##0`), false},
		{"quoted d is not a date", 0, custom(`#,##0"d"`), false},
		{"colour bracket", 0, custom("[Red]#,##0"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isDateNumFmt(tt.id, tt.custom))
		})
	}
}
