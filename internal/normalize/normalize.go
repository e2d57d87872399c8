// Package normalize converts raw cell values into canonical amounts, dates and text.
// None of its functions fail: unreadable input falls back to zero or nil.
package normalize

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/width"

	"github.com/garyjia/election-finance/internal/models"
	"github.com/garyjia/election-finance/internal/workbook"
)

// DateLayout is the canonical date form written to output documents
const DateLayout = "2006-01-02"

// maxSerial is 9999-12-31 in the 1900 date system
const maxSerial = 2958465

var numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// Amount converts a cell value to an amount.
// Fractional numbers round half away from zero; text yields its first number.
func Amount(v workbook.Value) models.Amount {
	switch v.Kind {
	case workbook.KindNumber:
		d := decimal.NewFromFloat(v.Number)
		if !d.IsInteger() {
			d = d.Round(0)
		}
		return models.AmountFromDecimal(d)
	case workbook.KindText:
		return AmountFromText(v.Text)
	default:
		return models.Amount{}
	}
}

// AmountFromText extracts the first decimal number from free text.
// Thousands separators and full-width digits are accepted.
func AmountFromText(s string) models.Amount {
	clean := strings.ReplaceAll(width.Fold.String(s), ",", "")
	match := numberPattern.FindString(clean)
	if match == "" {
		return models.Amount{}
	}
	d, err := decimal.NewFromString(match)
	if err != nil {
		return models.Amount{}
	}
	return models.AmountFromDecimal(d)
}

// Date converts a cell value to YYYY-MM-DD.
// Numbers are read as 1900-system serial dates.
func Date(v workbook.Value) *string {
	switch v.Kind {
	case workbook.KindDate:
		s := v.Time.Format(DateLayout)
		return &s
	case workbook.KindNumber:
		if v.Number < 0 || v.Number > maxSerial {
			return nil
		}
		t, err := excelize.ExcelDateToTime(v.Number, false)
		if err != nil {
			return nil
		}
		s := t.Format(DateLayout)
		return &s
	default:
		return nil
	}
}

// Text passes a cell through as text, nil when empty
func Text(v workbook.Value) *string {
	if v.IsEmpty() {
		return nil
	}
	s := v.String()
	return &s
}

// RawAmount keeps a numeric cell as-is and yields nil for anything else
func RawAmount(v workbook.Value) *models.Amount {
	if v.Kind != workbook.KindNumber {
		return nil
	}
	return models.AmountFromDecimal(decimal.NewFromFloat(v.Number)).Ptr()
}

// Label renders a label cell, trimming surrounding and ideographic spaces
func Label(v workbook.Value) string {
	if !v.IsText() {
		return v.String()
	}
	return strings.ReplaceAll(strings.TrimSpace(v.Text), "　", "")
}
