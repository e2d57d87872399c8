package reconcile

import (
	"go.uber.org/zap"

	"github.com/garyjia/election-finance/internal/models"
)

// Verdict is the outcome of a checksum validation
type Verdict int

const (
	VerdictOK Verdict = iota
	VerdictSkipped
	VerdictZero
	VerdictMismatch
)

func (v Verdict) String() string {
	switch v {
	case VerdictSkipped:
		return "skipped"
	case VerdictZero:
		return "zero"
	case VerdictMismatch:
		return "mismatch"
	default:
		return "ok"
	}
}

// ValidateSum compares the sum of every individual_ list against the declared checksum.
// Aggregate sections are skipped. Problems are logged, never returned.
func (r *Reconciler) ValidateSum(section *models.Section, path string) Verdict {
	if models.IsSummarySource(path) {
		return VerdictSkipped
	}

	items := section.Items()
	var total models.Amount
	for _, item := range items {
		total = total.Add(item.Price)
	}
	checksum := section.Checksum()

	if checksum.IsZero() || total.IsZero() {
		msg := "Section total is zero, check the source file"
		if len(items) == 0 {
			msg = "No line items scanned, check the source file"
		}
		r.logger.Warn(msg,
			zap.String("file", path),
			zap.Int("item_count", len(items)),
			zap.Stringer("json_checksum", checksum),
			zap.Stringer("total_price", total))
		return VerdictZero
	}

	if !checksum.Equal(total) {
		r.logger.Error("Section total does not match declared checksum",
			zap.String("file", path),
			zap.Stringer("json_checksum", checksum),
			zap.Stringer("total_price", total))
		return VerdictMismatch
	}

	return VerdictOK
}
