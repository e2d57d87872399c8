package extract

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/width"

	"github.com/garyjia/election-finance/internal/models"
	"github.com/garyjia/election-finance/internal/workbook"
)

var (
	publicExpenseTotalPattern = regexp.MustCompile(`公費負担相当額[:：\s\p{Zs}]*(\d+(?:,\d+)*)円`)
	breakdownPattern          = regexp.MustCompile(`内訳[\s\p{Zs}]+(.+)`)
	breakdownItemPattern      = regexp.MustCompile(`([^0-9]+)(\d+)円`)
)

// ParsePublicExpense reads the 公費負担相当額 total and its 内訳 breakdown from prose.
// A missing total leaves Summary nil; a missing breakdown leaves it empty.
func ParsePublicExpense(text string) models.PublicExpenseSummary {
	result := models.PublicExpenseSummary{Breakdown: map[string]int64{}}
	text = width.Fold.String(text)

	if m := publicExpenseTotalPattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.ParseInt(strings.ReplaceAll(m[1], ",", ""), 10, 64); err == nil {
			result.Summary = &n
		}
	}

	m := breakdownPattern.FindStringSubmatch(text)
	if m == nil {
		return result
	}
	tail := strings.ReplaceAll(m[1], ",", "")
	for _, item := range breakdownItemPattern.FindAllStringSubmatch(tail, -1) {
		label := strings.ReplaceAll(strings.TrimSpace(item[1]), "、", "")
		amount, err := strconv.ParseInt(item[2], 10, 64)
		if err != nil {
			continue
		}
		result.Breakdown[label] = amount
	}
	return result
}

// NoteSpec locates the cell holding the public expense prose: either a fixed
// cell, or the first row at or after FromRow whose MarkerColumn equals Marker.
type NoteSpec struct {
	Row          int
	Column       int
	FromRow      int
	MarkerColumn int
	Marker       string
}

// FindNote returns the prose cell text; found is false when the marker is absent
func FindNote(sheet workbook.Sheet, spec NoteSpec) (text string, found bool) {
	if spec.Marker == "" {
		return sheet.Cell(spec.Row, spec.Column).String(), true
	}
	for row := max(spec.FromRow, 1); row <= sheet.MaxRow(); row++ {
		if sheet.Cell(row, spec.MarkerColumn).TextEquals(spec.Marker) {
			return sheet.Cell(row, spec.Column).String(), true
		}
	}
	return "", false
}
