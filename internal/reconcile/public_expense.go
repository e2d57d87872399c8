package reconcile

import (
	"regexp"
	"strings"

	"golang.org/x/text/width"
	"go.uber.org/zap"

	"github.com/garyjia/election-finance/internal/models"
	"github.com/garyjia/election-finance/internal/normalize"
)

// PublicExpenseMarker in a note flags a publicly subsidized item
const PublicExpenseMarker = "公費"

var noteNumberPattern = regexp.MustCompile(`\d[\d,]*`)

// AddPublicExpenseAmount fills PublicExpenseAmount on every subsidized item.
// A note without numbers, or with a number equal to the price, means full coverage.
// Any other note leaves the covered share unknown (-1) and is logged for review.
func (r *Reconciler) AddPublicExpenseAmount(items []*models.LineItem) []*models.LineItem {
	for _, item := range items {
		note := item.NoteText()
		if !strings.Contains(note, PublicExpenseMarker) {
			continue
		}

		numbers := noteNumberPattern.FindAllString(width.Fold.String(note), -1)
		if len(numbers) == 0 {
			item.PublicExpenseAmount = item.Price.Ptr()
			continue
		}

		matched := false
		for _, n := range numbers {
			if normalize.AmountFromText(n).Equal(item.Price) {
				matched = true
				break
			}
		}
		if matched {
			item.PublicExpenseAmount = item.Price.Ptr()
			continue
		}

		item.PublicExpenseAmount = models.PublicExpenseUnknown.Ptr()
		r.logger.Error("Public expense amount is indeterminate, set to -1",
			zap.String("category", string(item.Category)),
			zap.Stringer("price", item.Price),
			zap.String("note", note),
			zap.Any("item", item))
	}
	return items
}
