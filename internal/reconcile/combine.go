package reconcile

import (
	"go.uber.org/zap"

	"github.com/garyjia/election-finance/internal/models"
)

// Combine merges the line items of every non-summary section, in section then row order.
// Each section is validated again, subsidy amounts are inferred and identifiers assigned.
func (r *Reconciler) Combine(sections []*models.Section) []*models.LineItem {
	combined := []*models.LineItem{}
	for _, section := range sections {
		if section.IsSummary() {
			continue
		}
		r.ValidateSum(section, section.Source())
		combined = append(combined, section.Items()...)
	}

	r.AddPublicExpenseAmount(combined)

	for seq, item := range combined {
		item.DataID = r.newID(seq, item)
	}

	r.logger.Debug("Combined sections",
		zap.Int("sections", len(sections)),
		zap.Int("items", len(combined)))
	return combined
}
