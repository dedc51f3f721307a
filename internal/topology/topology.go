// Package topology groups normalized segments into connected fence runs
// and classifies every connection point as an end, line, corner, or gate
// post. Branching layouts (degree >= 3 nodes) are supported; branch
// points are treated as corners.
package topology

import (
	"fmt"
	"math"
	"sort"

	"github.com/fenceworks/fencecalc/internal/geometry"
	"github.com/fenceworks/fencecalc/internal/model"
)

// Stretch is a maximal straight span of fence between two structural
// anchors (end, corner, or gate posts), passing only through collinear
// line joints. Line posts are spaced along stretches.
type Stretch struct {
	Length         float64 // feet, gate openings excluded
	InteriorJoints int     // line-classified joints inside the stretch
	Loop           bool    // stretch closes on itself with no anchor at all
	JointCount     int     // total joints for a loop stretch
	FirstSegment   int     // index of the first segment walked; keys the stretch to a fence type
}

// RunTopology pairs a classified run with its straight stretches.
type RunTopology struct {
	Run       model.Run
	Stretches []Stretch
}

// Analyze partitions the layout into connected runs and classifies each
// node. Two segments belong to the same run iff they share a merged node.
// Every segment lands in exactly one run.
func Analyze(segments []model.Segment, layout geometry.Layout, angleTolerance float64) []RunTopology {
	adjacency := make([][]int, len(layout.Nodes)) // node -> incident segment indices
	for si, e := range layout.Ends {
		adjacency[e[0]] = append(adjacency[e[0]], si)
		adjacency[e[1]] = append(adjacency[e[1]], si)
	}
	degree := layout.Degree()

	post := classifyNodes(layout, adjacency, degree, angleTolerance)
	gate := gateNodes(segments, layout)

	var runs []RunTopology
	visited := make([]bool, len(layout.Nodes))
	for start := range layout.Nodes {
		if visited[start] {
			continue
		}
		nodes := component(start, adjacency, layout.Ends, visited)
		rt := buildRun(fmt.Sprintf("RUN-%d", len(runs)+1), nodes, segments, layout, adjacency, degree, post, gate)
		runs = append(runs, rt)
	}
	return runs
}

// component walks one connected component with BFS and returns its nodes
// in ascending order.
func component(start int, adjacency [][]int, ends [][2]int, visited []bool) []int {
	queue := []int{start}
	visited[start] = true
	var nodes []int
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		nodes = append(nodes, n)
		for _, si := range adjacency[n] {
			for _, next := range ends[si] {
				if !visited[next] {
					visited[next] = true
					queue = append(queue, next)
				}
			}
		}
	}
	sort.Ints(nodes)
	return nodes
}

// classifyNodes assigns the structural post kind for every node.
func classifyNodes(layout geometry.Layout, adjacency [][]int, degree []int, angleTolerance float64) []model.PostKind {
	post := make([]model.PostKind, len(layout.Nodes))
	for n := range layout.Nodes {
		switch {
		case degree[n] == 1:
			post[n] = model.PostEnd
		case degree[n] >= 3:
			// Branch point. Whether branches deserve a dedicated post type
			// is a policy question; structurally they behave as corners.
			post[n] = model.PostCorner
		default:
			a, b := adjacency[n][0], adjacency[n][1]
			if isStraight(n, a, b, layout, angleTolerance) {
				post[n] = model.PostLine
			} else {
				post[n] = model.PostCorner
			}
		}
	}
	return post
}

// isStraight reports whether two segments pass straight through their
// shared node, within the angle tolerance (degrees off 180).
func isStraight(node, segA, segB int, layout geometry.Layout, angleTolerance float64) bool {
	away := func(si int) (float64, float64) {
		e := layout.Ends[si]
		other := e[0]
		if other == node {
			other = e[1]
		}
		p, q := layout.Nodes[node], layout.Nodes[other]
		return q.X - p.X, q.Y - p.Y
	}
	ax, ay := away(segA)
	bx, by := away(segB)
	la := math.Hypot(ax, ay)
	lb := math.Hypot(bx, by)
	if la == 0 || lb == 0 {
		return false
	}
	cos := (ax*bx + ay*by) / (la * lb)
	cos = math.Max(-1, math.Min(1, cos))
	angle := math.Acos(cos) * 180 / math.Pi // 180 means straight through
	return math.Abs(180-angle) <= angleTolerance
}

// gateNodes flags every node that touches a gate segment.
func gateNodes(segments []model.Segment, layout geometry.Layout) []bool {
	gate := make([]bool, len(layout.Nodes))
	for si, s := range segments {
		if s.IsGate {
			gate[layout.Ends[si][0]] = true
			gate[layout.Ends[si][1]] = true
		}
	}
	return gate
}

func buildRun(id string, nodes []int, segments []model.Segment, layout geometry.Layout, adjacency [][]int, degree []int, post []model.PostKind, gate []bool) RunTopology {
	inRun := make(map[int]bool, len(nodes))
	for _, n := range nodes {
		inRun[n] = true
	}

	run := model.Run{ID: id}
	segSeen := make(map[int]bool)
	for _, n := range nodes {
		for _, si := range adjacency[n] {
			if !segSeen[si] {
				segSeen[si] = true
				run.Segments = append(run.Segments, si)
			}
		}
	}
	sort.Ints(run.Segments)
	for _, si := range run.Segments {
		run.Length += segments[si].Length()
	}

	closed := true
	for _, n := range nodes {
		run.Posts = append(run.Posts, model.Post{
			Node:     n,
			Location: layout.Nodes[n],
			Kind:     post[n],
			GatePost: gate[n],
			Degree:   degree[n],
		})
		if degree[n] != 2 {
			closed = false
		}
	}
	run.Closed = closed

	return RunTopology{
		Run:       run,
		Stretches: findStretches(run.Segments, segments, layout, adjacency, post, gate),
	}
}

// findStretches walks each run between anchors (anything that is not a
// plain line joint) and accumulates the straight spans in between. Gate
// segments are their own openings and never host line posts, so they are
// excluded from stretch lengths.
func findStretches(runSegments []int, segments []model.Segment, layout geometry.Layout, adjacency [][]int, post []model.PostKind, gate []bool) []Stretch {
	isAnchor := func(n int) bool {
		return post[n] != model.PostLine || gate[n]
	}

	segDone := make(map[int]bool)
	var stretches []Stretch

	// walk follows segments from an anchor through line joints until the
	// next anchor, consuming segments as it goes.
	walk := func(startSeg, fromNode int) Stretch {
		st := Stretch{FirstSegment: startSeg}
		si := startSeg
		node := fromNode
		for {
			segDone[si] = true
			st.Length += segments[si].Length()
			e := layout.Ends[si]
			next := e[0]
			if next == node {
				next = e[1]
			}
			if isAnchor(next) {
				return st
			}
			st.InteriorJoints++
			// Degree is exactly 2 here; pick the segment we did not arrive on.
			cont := adjacency[next][0]
			if cont == si {
				cont = adjacency[next][1]
			}
			si = cont
			node = next
		}
	}

	for _, si := range runSegments {
		if segDone[si] || segments[si].IsGate {
			segDone[si] = true
			continue
		}
		e := layout.Ends[si]
		switch {
		case isAnchor(e[0]):
			stretches = append(stretches, walk(si, e[0]))
		case isAnchor(e[1]):
			stretches = append(stretches, walk(si, e[1]))
		}
	}

	// Anything left is a pure loop of line joints (a drawn circle with no
	// corner sharp enough to anchor on). Traverse the cycle once.
	for _, si := range runSegments {
		if segDone[si] || segments[si].IsGate {
			continue
		}
		st := Stretch{Loop: true, FirstSegment: si}
		start := layout.Ends[si][0]
		node := start
		cur := si
		for {
			segDone[cur] = true
			st.Length += segments[cur].Length()
			st.JointCount++
			e := layout.Ends[cur]
			next := e[0]
			if next == node {
				next = e[1]
			}
			if next == start {
				break
			}
			cont := adjacency[next][0]
			if cont == cur {
				cont = adjacency[next][1]
			}
			node = next
			cur = cont
		}
		stretches = append(stretches, st)
	}

	return stretches
}
