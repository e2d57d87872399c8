package workbook

import (
	"strconv"
	"time"
)

// Kind is the type of a cell value
type Kind int

const (
	KindEmpty Kind = iota
	KindText
	KindNumber
	KindDate
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	case KindBool:
		return "bool"
	default:
		return "empty"
	}
}

// Value is a typed cell value
type Value struct {
	Kind   Kind
	Text   string
	Number float64
	Time   time.Time
	Bool   bool
}

// Empty is the value of a cell that holds nothing
var Empty = Value{}

// Text creates a text value
func Text(s string) Value { return Value{Kind: KindText, Text: s} }

// Number creates a numeric value
func Number(f float64) Value { return Value{Kind: KindNumber, Number: f} }

// Date creates a date value
func Date(t time.Time) Value { return Value{Kind: KindDate, Time: t} }

// Bool creates a boolean value
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// IsEmpty reports whether the cell holds no value
func (v Value) IsEmpty() bool { return v.Kind == KindEmpty }

// IsText reports whether the cell holds text
func (v Value) IsText() bool { return v.Kind == KindText }

// TextEquals reports whether the cell holds exactly s
func (v Value) TextEquals(s string) bool {
	return v.Kind == KindText && v.Text == s
}

// String renders the value the way it reads in the sheet.
// Empty cells render as "".
func (v Value) String() string {
	switch v.Kind {
	case KindText:
		return v.Text
	case KindNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case KindDate:
		return v.Time.Format("2006-01-02")
	case KindBool:
		if v.Bool {
			return "TRUE"
		}
		return "FALSE"
	default:
		return ""
	}
}
