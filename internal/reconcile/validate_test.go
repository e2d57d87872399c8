package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/garyjia/election-finance/internal/models"
)

func observed(t *testing.T) (*Reconciler, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	return NewReconciler(nil, zap.New(core)), logs
}

func sectionWith(name string, checksum int64, prices ...int64) *models.Section {
	s := models.NewSection(name)
	items := make([]*models.LineItem, len(prices))
	for i, p := range prices {
		items[i] = &models.LineItem{Category: models.CategoryPrinting, Price: models.NewAmount(p)}
	}
	s.AddItems("printing", items)
	s.AddChecksum(models.NewAmount(checksum))
	return s
}

func TestValidateSum_Match(t *testing.T) {
	r, logs := observed(t)

	verdict := r.ValidateSum(sectionWith("printing_data", 500, 200, 300), "out/printing_data.json")

	assert.Equal(t, VerdictOK, verdict)
	assert.Zero(t, logs.FilterLevelExact(zapcore.WarnLevel).Len())
	assert.Zero(t, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}

func TestValidateSum_Mismatch(t *testing.T) {
	r, logs := observed(t)

	verdict := r.ValidateSum(sectionWith("printing_data", 400, 200, 300), "out/printing_data.json")

	assert.Equal(t, VerdictMismatch, verdict)
	errs := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	require.Len(t, errs, 1)
	fields := errs[0].ContextMap()
	assert.Equal(t, "400", fields["json_checksum"])
	assert.Equal(t, "500", fields["total_price"])
	assert.Equal(t, "out/printing_data.json", fields["file"])
}

func TestValidateSum_Zero(t *testing.T) {
	tests := []struct {
		name     string
		section  *models.Section
		message  string
		itemsLen int64
	}{
		{"zero checksum and zero sum", sectionWith("food_data", 0, 0), "Section total is zero, check the source file", 1},
		{"no items scanned", sectionWith("food_data", 0), "No line items scanned, check the source file", 0},
		{"declared total but nothing scanned", sectionWith("food_data", 700), "No line items scanned, check the source file", 0},
		{"items but no checksum", sectionWith("food_data", 0, 700), "Section total is zero, check the source file", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, logs := observed(t)

			verdict := r.ValidateSum(tt.section, "food_data.json")

			assert.Equal(t, VerdictZero, verdict)
			assert.Zero(t, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
			warns := logs.FilterLevelExact(zapcore.WarnLevel).All()
			require.Len(t, warns, 1)
			assert.Equal(t, tt.message, warns[0].Message)
			assert.Equal(t, tt.itemsLen, warns[0].ContextMap()["item_count"])
		})
	}
}

func TestValidateSum_SkipsSummary(t *testing.T) {
	r, logs := observed(t)

	verdict := r.ValidateSum(sectionWith("summary_data", 1, 2), "out/batch/summary_data.json")

	assert.Equal(t, VerdictSkipped, verdict)
	assert.Zero(t, logs.Len())
}

func TestValidateSum_SumsEveryList(t *testing.T) {
	r, _ := observed(t)
	s := models.NewSection("building_data")
	s.AddItems("election_office", []*models.LineItem{{Price: models.NewAmount(50000)}})
	s.AddItems("meeting_venue", []*models.LineItem{{Price: models.NewAmount(8000)}})
	s.AddChecksum(models.NewAmount(50000))
	s.AddChecksum(models.NewAmount(8000))

	assert.Equal(t, VerdictOK, r.ValidateSum(s, "building_data.json"))
	assert.Equal(t, "ok", VerdictOK.String())
	assert.Equal(t, "mismatch", VerdictMismatch.String())
}
