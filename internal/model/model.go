package model

import "math"

// Point represents a 2D coordinate in feet.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the Euclidean distance to another point.
func (p Point) Distance(other Point) float64 {
	return math.Hypot(other.X-p.X, other.Y-p.Y)
}

// Finite reports whether both coordinates are real numbers.
func (p Point) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Segment represents one drawn fence section between two points.
// Gate segments carry a gate width instead of contributing panels.
type Segment struct {
	Start     Point   `json:"start"`
	End       Point   `json:"end"`
	FenceType string  `json:"fence_type"`           // e.g. "vinyl-privacy"
	Height    float64 `json:"height"`               // feet
	IsGate    bool    `json:"is_gate"`
	GateWidth float64 `json:"gate_width,omitempty"` // feet; 0 means use segment length
}

// Length returns the segment length in feet.
func (s Segment) Length() float64 {
	return s.Start.Distance(s.End)
}

// OpeningWidth returns the gate opening width for gate segments.
// Falls back to the drawn length when no explicit width was set.
func (s Segment) OpeningWidth() float64 {
	if s.GateWidth > 0 {
		return s.GateWidth
	}
	return s.Length()
}

// PostKind classifies the structural role of a fence post.
type PostKind int

const (
	PostLine   PostKind = iota // Mid-run post between collinear sections
	PostEnd                    // Terminal post, only one attached section
	PostCorner                 // Direction change or branch point
	PostGate                   // Post flanking a gate opening
)

func (k PostKind) String() string {
	switch k {
	case PostEnd:
		return "End"
	case PostCorner:
		return "Corner"
	case PostGate:
		return "Gate"
	default:
		return "Line"
	}
}

// Post is one classified connection point within a run.
type Post struct {
	Node     int      `json:"node"` // Index into the normalized node arena
	Location Point    `json:"location"`
	Kind     PostKind `json:"kind"`
	GatePost bool     `json:"gate_post"` // Flanks a gate opening; Kind keeps the structural role
	Degree   int      `json:"degree"`
}

// Run is a maximal connected group of fence segments: one physically
// continuous fence line, possibly branching.
type Run struct {
	ID       string  `json:"id"`       // Sequential ("RUN-1"), stable for identical input
	Segments []int   `json:"segments"` // Indices into the input segment list
	Posts    []Post  `json:"posts"`
	Length   float64 `json:"length"` // feet, gates included
	Closed   bool    `json:"closed"` // Loop with no end posts
}

// PostsOfKind returns the run's posts with the given structural kind.
func (r Run) PostsOfKind(kind PostKind) []Post {
	var out []Post
	for _, p := range r.Posts {
		if p.Kind == kind {
			out = append(out, p)
		}
	}
	return out
}
