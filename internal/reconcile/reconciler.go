// Package reconcile cross-checks extracted sections and merges them into one record list.
package reconcile

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/garyjia/election-finance/internal/models"
)

// IDFunc assigns an identifier to the item at position seq of the combined list
type IDFunc func(seq int, item *models.LineItem) string

// RandomID assigns a fresh random UUID, unrelated to content
func RandomID(int, *models.LineItem) string {
	return uuid.NewString()
}

// stableNamespace scopes content-derived identifiers
var stableNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("election-finance/line-item"))

// StableID derives a UUIDv5 from the batch name, the position and the item content,
// so reruns over unchanged input reproduce the same identifiers.
func StableID(batch string) IDFunc {
	return func(seq int, item *models.LineItem) string {
		key := batch + "\x00" + strconv.Itoa(seq) + "\x00" + itemKey(item)
		return uuid.NewSHA1(stableNamespace, []byte(key)).String()
	}
}

func itemKey(item *models.LineItem) string {
	s := func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	}
	return fmt.Sprintf("%s|%s|%s|%s|%s|%s|%s",
		item.Category, s(item.Date), item.Price, s(item.Type), s(item.Purpose), s(item.NonMonetaryBasis), s(item.Note))
}

// Reconciler validates section totals and builds the combined record list
type Reconciler struct {
	logger *zap.Logger
	newID  IDFunc
}

// NewReconciler creates a Reconciler; a nil newID falls back to RandomID
func NewReconciler(newID IDFunc, logger *zap.Logger) *Reconciler {
	if newID == nil {
		newID = RandomID
	}
	return &Reconciler{
		logger: logger,
		newID:  newID,
	}
}
