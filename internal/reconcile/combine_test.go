package reconcile

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/garyjia/election-finance/internal/models"
)

func combineFixture() []*models.Section {
	personnel := sectionWith("personnel_data", 600, 100, 200, 300)
	printing := models.NewSection("printing_data")
	printing.AddItems("printing", []*models.LineItem{
		{Category: models.CategoryPrinting, Price: models.NewAmount(400), Note: strPtr("公費")},
		{Category: models.CategoryPrinting, Price: models.NewAmount(500)},
	})
	printing.AddChecksum(models.NewAmount(900))

	summary := models.NewSection("summary_data")
	summary.AddItems("ignored", []*models.LineItem{{Price: models.NewAmount(9999)}})

	return []*models.Section{personnel, printing, summary}
}

func TestCombine(t *testing.T) {
	r, logs := observed(t)

	items := r.Combine(combineFixture())

	require.Len(t, items, 5)
	prices := make([]string, len(items))
	ids := make(map[string]bool)
	for i, item := range items {
		prices[i] = item.Price.String()
		_, err := uuid.Parse(item.DataID)
		assert.NoError(t, err)
		ids[item.DataID] = true
	}
	assert.Equal(t, []string{"100", "200", "300", "400", "500"}, prices)
	assert.Len(t, ids, 5, "identifiers are distinct")

	require.NotNil(t, items[3].PublicExpenseAmount)
	assert.Equal(t, "400", items[3].PublicExpenseAmount.String())
	assert.Nil(t, items[4].PublicExpenseAmount)

	assert.Zero(t, logs.FilterMessage("Section total does not match declared checksum").Len())
}

func TestCombine_IDsAreFreshEachRun(t *testing.T) {
	r := NewReconciler(nil, zap.NewNop())

	first := r.Combine(combineFixture())
	second := r.Combine(combineFixture())

	assert.NotEqual(t, first[0].DataID, second[0].DataID)
}

func TestCombine_StableIDs(t *testing.T) {
	r := NewReconciler(StableID("report.xlsx"), zap.NewNop())

	first := r.Combine(combineFixture())
	second := r.Combine(combineFixture())

	for i := range first {
		assert.Equal(t, first[i].DataID, second[i].DataID)
	}
	assert.NotEqual(t, first[0].DataID, first[1].DataID)

	other := NewReconciler(StableID("other.xlsx"), zap.NewNop()).Combine(combineFixture())
	assert.NotEqual(t, first[0].DataID, other[0].DataID)
}

func TestCombine_Empty(t *testing.T) {
	items := NewReconciler(nil, zap.NewNop()).Combine(nil)

	assert.NotNil(t, items)
	assert.Empty(t, items)
}
