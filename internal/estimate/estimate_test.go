package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fenceworks/fencecalc/internal/config"
	"github.com/fenceworks/fencecalc/internal/model"
)

func seg(x1, y1, x2, y2 float64, fenceType string, height float64) model.Segment {
	return model.Segment{
		Start:     model.Point{X: x1, Y: y1},
		End:       model.Point{X: x2, Y: y2},
		FenceType: fenceType,
		Height:    height,
	}
}

func defaultEngine() *Engine {
	return New(config.Default(), config.DefaultPrices())
}

func TestEstimate_SingleStraightRun(t *testing.T) {
	est, err := defaultEngine().Estimate([]model.Segment{
		seg(0, 0, 10, 0, "wood-privacy", 6),
	})
	require.NoError(t, err)

	assert.Len(t, est.ID, 8)
	assert.InDelta(t, 10.0, est.TotalLength, 1e-9)
	assert.Equal(t, 1, est.SegmentCount)
	require.Len(t, est.Runs, 1)
	assert.False(t, est.Runs[0].Closed)

	assert.Equal(t, 2, est.PanelCount)
	assert.Equal(t, 2, est.Posts.End)
	assert.Equal(t, 1, est.Posts.Line)
	assert.Equal(t, 3, est.Posts.Total())

	// Six rail pieces (3 per panel width) all packed into stock.
	assert.Equal(t, 6, est.StockPlan.PieceCount)
	assert.NotEmpty(t, est.StockPlan.Bins)

	assert.Greater(t, est.Costs.MaterialsCost, 0.0)
	assert.Greater(t, est.Costs.LaborCost, 0.0)
	assert.InDelta(t, est.Costs.Total/est.TotalLength, est.Costs.CostPerFoot, 1e-9)
}

func TestEstimate_ClosedRectangle(t *testing.T) {
	est, err := defaultEngine().Estimate([]model.Segment{
		seg(0, 0, 20, 0, "wood-privacy", 6),
		seg(20, 0, 20, 10, "wood-privacy", 6),
		seg(20, 10, 0, 10, "wood-privacy", 6),
		seg(0, 10, 0, 0, "wood-privacy", 6),
	})
	require.NoError(t, err)

	require.Len(t, est.Runs, 1)
	run := est.Runs[0]
	assert.True(t, run.Closed)
	assert.InDelta(t, 60.0, run.Length, 1e-9)
	assert.Equal(t, 0, run.Posts.End)
	assert.Equal(t, 4, run.Posts.Corner)
	assert.Equal(t, est.Posts, run.Posts)
}

func TestEstimate_MultipleRunsAggregated(t *testing.T) {
	est, err := defaultEngine().Estimate([]model.Segment{
		seg(0, 0, 10, 0, "wood-privacy", 6),
		seg(100, 100, 130, 100, "chain-link", 4),
	})
	require.NoError(t, err)

	require.Len(t, est.Runs, 2)
	assert.InDelta(t, 40.0, est.TotalLength, 1e-9)
	assert.Equal(t, 2, est.PanelCount)
	assert.InDelta(t, 30.0, est.LinearFeet, 1e-9)

	// Per-run summaries carry only their own posts.
	assert.Equal(t, 2, est.Runs[0].Posts.End)
	assert.Equal(t, 2, est.Runs[1].Posts.End)
	assert.Equal(t, est.Posts.End, 4)
}

func TestEstimate_GateAddsKitAndPosts(t *testing.T) {
	gate := seg(10, 0, 14, 0, "wood-privacy", 6)
	gate.IsGate = true

	est, err := defaultEngine().Estimate([]model.Segment{
		seg(0, 0, 10, 0, "wood-privacy", 6),
		gate,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, est.Gates.Single)
	assert.Equal(t, 0, est.Gates.Double)
	assert.Equal(t, 2, est.Posts.Gate)
	// The gate opening counts toward the run length but not panels.
	assert.InDelta(t, 14.0, est.TotalLength, 1e-9)
	assert.Equal(t, 2, est.PanelCount)
}

func TestEstimate_InvalidGeometryFailsWhole(t *testing.T) {
	_, err := defaultEngine().Estimate([]model.Segment{
		seg(0, 0, 10, 0, "wood-privacy", 6),
		seg(20, 20, 20, 20, "wood-privacy", 6),
	})

	var geomErr *model.InvalidGeometryError
	require.ErrorAs(t, err, &geomErr)
	assert.Equal(t, 1, geomErr.SegmentIndex)
}

func TestEstimate_UnknownFenceType(t *testing.T) {
	_, err := defaultEngine().Estimate([]model.Segment{
		seg(0, 0, 10, 0, "barbed-wire", 4),
	})

	var specErr *model.UnknownFenceSpecError
	require.ErrorAs(t, err, &specErr)
}

func TestEstimate_TaxExemptConfig(t *testing.T) {
	cfg := config.Default()
	cfg.TaxExempt = true
	est, err := New(cfg, config.DefaultPrices()).Estimate([]model.Segment{
		seg(0, 0, 10, 0, "wood-privacy", 6),
	})
	require.NoError(t, err)

	assert.Zero(t, est.Costs.Tax)
	assert.Greater(t, est.Costs.Total, 0.0)
}

func TestRuns_ExposesClassifiedTopology(t *testing.T) {
	runs, err := defaultEngine().Runs([]model.Segment{
		seg(0, 0, 10, 0, "wood-privacy", 6),
		seg(10, 0, 10, 10, "wood-privacy", 6),
	})
	require.NoError(t, err)

	require.Len(t, runs, 1)
	assert.Len(t, runs[0].PostsOfKind(model.PostCorner), 1)
	assert.Len(t, runs[0].PostsOfKind(model.PostEnd), 2)
}
