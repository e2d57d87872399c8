package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garyjia/election-finance/internal/models"
	"github.com/garyjia/election-finance/internal/workbook"
)

func TestAmount(t *testing.T) {
	tests := []struct {
		name  string
		value workbook.Value
		want  string
	}{
		{"empty", workbook.Empty, "0"},
		{"integer", workbook.Number(1500), "1500"},
		{"half rounds up", workbook.Number(2.5), "3"},
		{"below half rounds down", workbook.Number(2.4), "2"},
		{"negative half rounds away from zero", workbook.Number(-2.5), "-3"},
		{"integral float", workbook.Number(3.0), "3"},
		{"text with separators and currency", workbook.Text("¥1,234"), "1234"},
		{"text with fraction", workbook.Text("12.50 units"), "12.5"},
		{"text with yen suffix", workbook.Text("3,000円"), "3000"},
		{"full width digits", workbook.Text("１，２００円"), "1200"},
		{"first number wins", workbook.Text("2回 500円"), "2"},
		{"no digits", workbook.Text("no digits"), "0"},
		{"blank text", workbook.Text(""), "0"},
		{"bool", workbook.Bool(true), "0"},
		{"date", workbook.Date(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)), "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Amount(tt.value).String())
		})
	}
}

func TestAmount_TextFractionIsKept(t *testing.T) {
	a := Amount(workbook.Text("12.50"))

	assert.False(t, a.IsInteger())
	assert.True(t, a.Equal(models.MustAmount("12.5")))
	assert.True(t, Amount(workbook.Text("12.0")).IsInteger())
}

func TestDate(t *testing.T) {
	tests := []struct {
		name  string
		value workbook.Value
		want  *string
	}{
		{"empty", workbook.Empty, nil},
		{"date", workbook.Date(time.Date(2024, 4, 1, 13, 0, 0, 0, time.UTC)), strPtr("2024-04-01")},
		{"serial", workbook.Number(45383), strPtr("2024-04-01")},
		{"serial out of range", workbook.Number(3e6), nil},
		{"negative serial", workbook.Number(-1), nil},
		{"text", workbook.Text("令和6年4月1日"), nil},
		{"bool", workbook.Bool(true), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Date(tt.value)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestDate_RoundTrip(t *testing.T) {
	for _, d := range []string{"2023-12-31", "2024-02-29", "2024-04-01"} {
		parsed, err := time.Parse(DateLayout, d)
		require.NoError(t, err)

		got := Date(workbook.Date(parsed))
		require.NotNil(t, got)
		assert.Equal(t, d, *got)
	}
}

func TestText(t *testing.T) {
	assert.Nil(t, Text(workbook.Empty))
	assert.Equal(t, "公費", *Text(workbook.Text("公費")))
	assert.Equal(t, "2500", *Text(workbook.Number(2500)))
	assert.Equal(t, "", *Text(workbook.Text("")), "an explicit empty string is kept")
}

func TestRawAmount(t *testing.T) {
	assert.Nil(t, RawAmount(workbook.Text("1,000")))
	assert.Nil(t, RawAmount(workbook.Empty))
	require.NotNil(t, RawAmount(workbook.Number(2.5)))
	assert.Equal(t, "2.5", RawAmount(workbook.Number(2.5)).String())
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "計", Label(workbook.Text("　計　")))
	assert.Equal(t, "選挙運動のための支出", Label(workbook.Text(" 選挙運動の　ための支出 ")))
	assert.Equal(t, "12", Label(workbook.Number(12)))
}

func strPtr(s string) *string { return &s }
