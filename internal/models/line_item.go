package models

// PublicExpenseUnknown marks a subsidized item whose covered share could not be read from its note
var PublicExpenseUnknown = NewAmount(-1)

// LineItem is one itemized transaction of a report
type LineItem struct {
	Category            Category `json:"category"`
	Date                *string  `json:"date"`                   // YYYY-MM-DD
	Price               Amount   `json:"price"`                  // 金額
	Type                *string  `json:"type"`                   // 種別
	Purpose             *string  `json:"purpose,omitempty"`      // 支出の目的, absent on income
	NonMonetaryBasis    *string  `json:"non_monetary_basis"`     // 金銭以外の見積りの根拠
	Note                *string  `json:"note"`                   // 備考
	PublicExpenseAmount *Amount  `json:"public_expense_amount,omitempty"`
	DataID              string   `json:"data_id,omitempty"`
}

// NoteText returns the note or an empty string
func (i *LineItem) NoteText() string {
	if i.Note == nil {
		return ""
	}
	return *i.Note
}

// AggregateRow is a named subtotal or total line
type AggregateRow struct {
	Name  string  `json:"name"`
	Price *Amount `json:"price"`
}

// PublicExpenseSummary is the structured form of the 公費負担相当額 prose
type PublicExpenseSummary struct {
	Summary   *int64           `json:"summary,omitempty"`
	Breakdown map[string]int64 `json:"breakdown"`
}

// PublicExpenseEquivalent is one row of the publicly funded spending table
type PublicExpenseEquivalent struct {
	Item      *string `json:"item"`
	UnitPrice *Amount `json:"unit_price"`
	Quantity  *Amount `json:"quantity"`
	Price     Amount  `json:"price"`
}
