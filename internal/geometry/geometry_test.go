package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fenceworks/fencecalc/internal/model"
)

const testTolerance = 0.05

func seg(x1, y1, x2, y2 float64) model.Segment {
	return model.Segment{
		Start: model.Point{X: x1, Y: y1},
		End:   model.Point{X: x2, Y: y2},
	}
}

func TestNormalize_MergesSharedEndpoints(t *testing.T) {
	segments := []model.Segment{
		seg(0, 0, 10, 0),
		seg(10, 0, 20, 0),
	}

	layout, err := Normalize(segments, testTolerance)
	require.NoError(t, err)

	assert.Len(t, layout.Nodes, 3)
	assert.Equal(t, layout.Ends[0][1], layout.Ends[1][0], "shared joint should be one node")
}

func TestNormalize_SnapsNearbyEndpoints(t *testing.T) {
	// Second segment starts 0.04 ft from the first's end, inside the
	// snap tolerance.
	segments := []model.Segment{
		seg(0, 0, 10, 0),
		seg(10.04, 0, 20, 0),
	}

	layout, err := Normalize(segments, testTolerance)
	require.NoError(t, err)

	assert.Len(t, layout.Nodes, 3)
	assert.Equal(t, layout.Ends[0][1], layout.Ends[1][0])
	// The first-encountered member represents the cluster.
	assert.Equal(t, 10.0, layout.Nodes[layout.Ends[0][1]].X)
}

func TestNormalize_TransitiveMerge(t *testing.T) {
	// Three endpoints chained pairwise within tolerance. The outer pair
	// is 0.08 ft apart, beyond the tolerance on its own, but the chain
	// collapses all three into one node.
	segments := []model.Segment{
		seg(0, 0, 10, 0),
		seg(10.04, 0, 20, 0),
		seg(10.08, 0, 10, 10),
	}

	layout, err := Normalize(segments, testTolerance)
	require.NoError(t, err)

	require.Len(t, layout.Nodes, 4)
	joint := layout.Ends[0][1]
	assert.Equal(t, joint, layout.Ends[1][0])
	assert.Equal(t, joint, layout.Ends[2][0])
	assert.Equal(t, 3, layout.Degree()[joint])
}

func TestNormalize_Idempotent(t *testing.T) {
	segments := []model.Segment{
		seg(0, 0, 10, 0),
		seg(10.03, 0.02, 20, 0),
		seg(20, 0.04, 20, 10),
	}

	first, err := Normalize(segments, testTolerance)
	require.NoError(t, err)

	// Rebuild the segments from the merged coordinates and normalize
	// again. The node set must not change.
	rebuilt := make([]model.Segment, len(segments))
	for i := range segments {
		rebuilt[i] = model.Segment{
			Start: first.Nodes[first.Ends[i][0]],
			End:   first.Nodes[first.Ends[i][1]],
		}
	}
	second, err := Normalize(rebuilt, testTolerance)
	require.NoError(t, err)

	assert.Equal(t, first.Nodes, second.Nodes)
	assert.Equal(t, first.Ends, second.Ends)
}

func TestNormalize_ZeroLengthSegment(t *testing.T) {
	segments := []model.Segment{seg(5, 5, 5, 5)}

	_, err := Normalize(segments, testTolerance)

	var geomErr *model.InvalidGeometryError
	require.ErrorAs(t, err, &geomErr)
	assert.Equal(t, 0, geomErr.SegmentIndex)
}

func TestNormalize_NonFiniteCoordinates(t *testing.T) {
	segments := []model.Segment{
		seg(0, 0, 10, 0),
		seg(10, 0, math.NaN(), 5),
	}

	_, err := Normalize(segments, testTolerance)

	var geomErr *model.InvalidGeometryError
	require.ErrorAs(t, err, &geomErr)
	assert.Equal(t, 1, geomErr.SegmentIndex)
}

func TestNormalize_NegativeTolerance(t *testing.T) {
	_, err := Normalize([]model.Segment{seg(0, 0, 10, 0)}, -1)
	assert.Error(t, err)
}

func TestNormalize_EndpointsCollapseIntoOneNode(t *testing.T) {
	// The middle segment is longer than the tolerance, but both of its
	// endpoints merge into the same cluster through the third segment's
	// start point, leaving it with zero effective length.
	segments := []model.Segment{
		seg(0, 0, 5, 0),
		seg(5.04, 0, 5.1, 0),
		seg(5.08, 0, 10, 0),
	}

	_, err := Normalize(segments, testTolerance)

	var geomErr *model.InvalidGeometryError
	require.True(t, errors.As(err, &geomErr))
	assert.Equal(t, 1, geomErr.SegmentIndex)
}

func TestLayout_Degree(t *testing.T) {
	segments := []model.Segment{
		seg(0, 0, 10, 0),
		seg(10, 0, 20, 0),
		seg(10, 0, 10, 10),
	}

	layout, err := Normalize(segments, testTolerance)
	require.NoError(t, err)

	deg := layout.Degree()
	assert.Equal(t, 1, deg[layout.Ends[0][0]])
	assert.Equal(t, 3, deg[layout.Ends[0][1]])
}
