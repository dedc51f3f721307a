// Package geometry turns the raw drawn segments into a normalized node
// arena: coincident endpoints are merged with a union-find keyed on
// pairwise distance, and segments afterwards reference node indices
// instead of coordinates. No object graphs, no back-references.
package geometry

import (
	"fmt"
	"math"

	"github.com/fenceworks/fencecalc/internal/model"
)

// Layout is the normalized form of a segment list.
type Layout struct {
	// Nodes holds the merged points. Each cluster is represented by its
	// first-encountered member in input order, so identical inputs always
	// produce identical layouts.
	Nodes []model.Point

	// Ends maps each input segment to its (start, end) node indices.
	Ends [][2]int
}

// Degree returns the number of segments attached to each node.
func (l Layout) Degree() []int {
	deg := make([]int, len(l.Nodes))
	for _, e := range l.Ends {
		deg[e[0]]++
		deg[e[1]]++
	}
	return deg
}

// Normalize validates the segments and merges endpoints that lie within
// snapTolerance of each other. Merging is transitive: chains of nearby
// points collapse into one node even when the chain ends are farther
// apart than the tolerance.
func Normalize(segments []model.Segment, snapTolerance float64) (Layout, error) {
	if snapTolerance < 0 || math.IsNaN(snapTolerance) {
		return Layout{}, fmt.Errorf("normalize: snap tolerance must be >= 0, got %v", snapTolerance)
	}

	for i, s := range segments {
		if !s.Start.Finite() || !s.End.Finite() {
			return Layout{}, &model.InvalidGeometryError{SegmentIndex: i, Reason: "non-finite coordinates"}
		}
		if s.Length() <= snapTolerance {
			return Layout{}, &model.InvalidGeometryError{SegmentIndex: i, Reason: "zero-length segment"}
		}
	}

	// Raw endpoints in input order: seg 0 start, seg 0 end, seg 1 start, ...
	raw := make([]model.Point, 0, len(segments)*2)
	for _, s := range segments {
		raw = append(raw, s.Start, s.End)
	}

	uf := newUnionFind(len(raw))
	for i := 0; i < len(raw); i++ {
		for j := i + 1; j < len(raw); j++ {
			if raw[i].Distance(raw[j]) <= snapTolerance {
				uf.union(i, j)
			}
		}
	}

	layout := Layout{Ends: make([][2]int, len(segments))}
	nodeOf := make(map[int]int, len(raw)) // union-find root -> node index
	for i := range raw {
		root := uf.find(i)
		if _, seen := nodeOf[root]; !seen {
			nodeOf[root] = len(layout.Nodes)
			layout.Nodes = append(layout.Nodes, raw[root])
		}
	}
	for i := range segments {
		start := nodeOf[uf.find(2*i)]
		end := nodeOf[uf.find(2*i+1)]
		if start == end {
			// Endpoints collapsed into the same node: effectively zero length.
			return Layout{}, &model.InvalidGeometryError{SegmentIndex: i, Reason: "endpoints merge to a single point"}
		}
		layout.Ends[i] = [2]int{start, end}
	}
	return layout, nil
}

// unionFind is a plain disjoint-set with the invariant that every root is
// the lowest (earliest in input order) index of its cluster. That makes
// the cluster representative deterministic without sorting.
type unionFind struct {
	parent []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (uf *unionFind) find(i int) int {
	for uf.parent[i] != i {
		uf.parent[i] = uf.parent[uf.parent[i]]
		i = uf.parent[i]
	}
	return i
}

func (uf *unionFind) union(i, j int) {
	ri, rj := uf.find(i), uf.find(j)
	if ri == rj {
		return
	}
	// Keep the earliest index as root so representatives stay stable.
	if ri < rj {
		uf.parent[rj] = ri
	} else {
		uf.parent[ri] = rj
	}
}
