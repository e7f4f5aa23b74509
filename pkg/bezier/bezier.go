// Package bezier evaluates the cubic slope curves that shape fairing cones.
package bezier

import pfmath "github.com/Faultbox/procfairings/pkg/math"

// Slope is a cubic Bezier from (0,0) to (1,1) with control points P1 and P2.
type Slope struct {
	P1, P2 pfmath.Vec2
}

// NewSlope builds a slope from a packed (x1, y1, x2, y2) control shape.
func NewSlope(shape pfmath.Vec4) Slope {
	return Slope{
		P1: pfmath.Vec2{X: shape.X, Y: shape.Y},
		P2: pfmath.Vec2{X: shape.Z, Y: shape.W},
	}
}

// Interp returns the curve point at t. t is not clamped.
func (s Slope) Interp(t float32) pfmath.Vec2 {
	a := pfmath.Vec2{}.Lerp(s.P1, t)
	b := s.P1.Lerp(s.P2, t)
	c := s.P2.Lerp(pfmath.Vec2{X: 1, Y: 1}, t)
	d := a.Lerp(b, t)
	e := b.Lerp(c, t)
	return d.Lerp(e, t)
}

// Sample evaluates the curve at segs+1 evenly spaced parameters in [0, 1].
func (s Slope) Sample(segs int) []pfmath.Vec2 {
	if segs < 1 {
		segs = 1
	}
	out := make([]pfmath.Vec2, segs+1)
	for i := range out {
		out[i] = s.Interp(float32(i) / float32(segs))
	}
	return out
}
