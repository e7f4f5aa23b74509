// Package profile reduces payload geometry to a radial clearance profile:
// the maximum distance from the fairing axis seen in each height band.
package profile

import (
	"github.com/chewxy/math32"

	pfmath "github.com/Faultbox/procfairings/pkg/math"
)

// Scanner accumulates payload edges into height buckets.
// Buckets only grow: every insertion keeps the max of the old and new radius.
type Scanner struct {
	step        float32
	extraRadius float32
	offset      float32
	radii       []float32
}

// NewScanner creates a scanner with the given bucket height, clearance added
// to every radius, and height of bucket 0.
func NewScanner(step, extraRadius, offset float32) *Scanner {
	if step <= 0 {
		step = DefaultStep
	}
	return &Scanner{step: step, extraRadius: extraRadius, offset: offset}
}

// DefaultStep is the bucket height used when a non-positive step is given.
const DefaultStep = 0.1

// AddEdge rasterizes one edge into the profile.
func (s *Scanner) AddEdge(v0, v1 pfmath.Vec3) {
	r0 := v0.Radial() + s.extraRadius
	r1 := v1.Radial() + s.extraRadius
	y0 := (v0.Y - s.offset) / s.step
	y1 := (v1.Y - s.offset) / s.step
	if y0 > y1 {
		y0, y1 = y1, y0
		r0, r1 = r1, r0
	}

	h0 := int(math32.Floor(y0))
	h1 := int(math32.Floor(y1))
	if h1 < 0 {
		return
	}
	s.grow(h1 + 1)

	if h0 >= 0 {
		s.radii[h0] = math32.Max(s.radii[h0], r0)
	}
	s.radii[h1] = math32.Max(s.radii[h1], r1)

	if h0 == h1 {
		return
	}

	k := (r1 - r0) / (y1 - y0)
	b := r0 + k*(float32(h0+1)-y0)
	maxR := math32.Max(r0, r1)
	for h := max(h0, 0); h < h1; h++ {
		r := math32.Min(k*float32(h-h0)+b, maxR)
		s.radii[h] = math32.Max(s.radii[h], r)
		s.radii[h+1] = math32.Max(s.radii[h+1], r)
	}
}

// AddBox adds the 12 edges of a box placed by m.
func (s *Scanner) AddBox(b pfmath.Bounds, m pfmath.Mat4) {
	s.addEdges(Box{b}.Edges(m))
}

// AddTriMesh adds every triangle edge of a mesh placed by m.
func (s *Scanner) AddTriMesh(mesh TriMesh, m pfmath.Mat4) {
	s.addEdges(mesh.Edges(m))
}

// Add adds one payload item. Items without a shape are skipped.
func (s *Scanner) Add(it Item) {
	if it.Shape == nil {
		return
	}
	s.addEdges(it.Shape.Edges(it.Transform))
}

// AddAll adds every item.
func (s *Scanner) AddAll(items []Item) {
	for _, it := range items {
		s.Add(it)
	}
}

// Profile returns a snapshot of the accumulated profile. An empty scan
// becomes a single bucket holding the extra radius.
func (s *Scanner) Profile() Profile {
	radii := make([]float32, len(s.radii))
	copy(radii, s.radii)
	if len(radii) == 0 {
		radii = []float32{s.extraRadius}
	}
	return Profile{Radii: radii, Offset: s.offset, Step: s.step}
}

func (s *Scanner) addEdges(edges []Edge) {
	for _, e := range edges {
		s.AddEdge(e[0], e[1])
	}
}

func (s *Scanner) grow(n int) {
	if n <= len(s.radii) {
		return
	}
	s.radii = append(s.radii, make([]float32, n-len(s.radii))...)
}
