package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fenceworks/fencecalc/internal/model"
)

func testTable() model.PriceTable {
	return model.PriceTable{Entries: []model.PriceEntry{
		{
			FenceType:        "wood-privacy",
			Height:           6,
			PanelPrice:       100,
			PostPrice:        20,
			GateKitPrice:     150,
			HardwarePrice:    2,
			ConcreteBagPrice: 8,
			LaborRate:        6,
			TaxRate:          0.08,
			MarkupRate:       0.20,
		},
		{
			FenceType:       "chain-link",
			Height:          4,
			LinearFootPrice: 8,
			PostPrice:       14,
			LaborRate:       4,
			TaxRate:         0.08,
			MarkupRate:      0.20,
		},
	}}
}

func testQuantities() model.Quantities {
	return model.Quantities{
		Key:          model.MaterialKey{FenceType: "wood-privacy", Height: 6},
		RunID:        "RUN-1",
		FenceLength:  24,
		Panels:       3,
		Posts:        model.PostCounts{End: 2, Line: 2},
		Hardware:     24,
		ConcreteBags: 6,
	}
}

func TestForQuantities_Breakdown(t *testing.T) {
	q := testQuantities()
	plan := model.StockPlan{TotalCost: 38}

	costs, err := ForQuantities(q, plan, testTable(), false)
	require.NoError(t, err)

	// 3x100 panels + 38 stock + 4x20 posts + 24x2 hardware + 6x8 bags.
	assert.InDelta(t, 514.0, costs.MaterialsCost, 1e-9)
	assert.InDelta(t, 144.0, costs.LaborCost, 1e-9) // 24 ft x $6
	assert.InDelta(t, 658.0, costs.Subtotal, 1e-9)
	assert.InDelta(t, 52.64, costs.Tax, 1e-9)
	assert.InDelta(t, 131.6, costs.Markup, 1e-9)
	assert.InDelta(t, 842.24, costs.Total, 1e-9)
}

func TestForQuantities_GateKitAndOpeningLabor(t *testing.T) {
	q := testQuantities()
	q.Gates = model.GateKits{Single: 1}
	q.GateLength = 4

	costs, err := ForQuantities(q, model.StockPlan{}, testTable(), false)
	require.NoError(t, err)

	base, err := ForQuantities(testQuantities(), model.StockPlan{}, testTable(), false)
	require.NoError(t, err)

	assert.InDelta(t, 150.0, costs.MaterialsCost-base.MaterialsCost, 1e-9)
	// Gate openings are walked and hung: labor covers them too.
	assert.InDelta(t, 24.0, costs.LaborCost-base.LaborCost, 1e-9)
}

func TestForQuantities_LinearFootPricing(t *testing.T) {
	q := model.Quantities{
		Key:         model.MaterialKey{FenceType: "chain-link", Height: 4},
		RunID:       "RUN-1",
		FenceLength: 50,
		LinearFeet:  50,
		Posts:       model.PostCounts{End: 2, Line: 4},
	}

	costs, err := ForQuantities(q, model.StockPlan{TotalCost: 115}, testTable(), false)
	require.NoError(t, err)

	// 50 ft x $8 + 115 roll stock + 6 posts x $14.
	assert.InDelta(t, 599.0, costs.MaterialsCost, 1e-9)
	assert.InDelta(t, 200.0, costs.LaborCost, 1e-9)
}

func TestForQuantities_TaxExempt(t *testing.T) {
	costs, err := ForQuantities(testQuantities(), model.StockPlan{}, testTable(), true)
	require.NoError(t, err)

	assert.Zero(t, costs.Tax)
	assert.Greater(t, costs.Markup, 0.0, "markup still applies for exempt customers")
	assert.InDelta(t, costs.Subtotal+costs.Markup, costs.Total, 1e-9)
}

func TestForQuantities_MissingEntry(t *testing.T) {
	q := testQuantities()
	q.Key = model.MaterialKey{FenceType: "wood-privacy", Height: 8}

	_, err := ForQuantities(q, model.StockPlan{}, testTable(), false)

	var notFound *model.PricingNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "wood-privacy", notFound.FenceType)
	assert.Equal(t, 8.0, notFound.Height)
}

func TestForQuantities_MonotonicInQuantities(t *testing.T) {
	base, err := ForQuantities(testQuantities(), model.StockPlan{}, testTable(), false)
	require.NoError(t, err)

	bigger := testQuantities()
	bigger.FenceLength += 8
	bigger.Panels++
	bigger.Posts.Line++

	more, err := ForQuantities(bigger, model.StockPlan{}, testTable(), false)
	require.NoError(t, err)

	assert.Greater(t, more.Total, base.Total)
}
