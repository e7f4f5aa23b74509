// Package shielding decides which objects sit entirely inside a closed
// fairing and are therefore shielded from the airstream.
package shielding

import (
	"github.com/chewxy/math32"

	pfmath "github.com/Faultbox/procfairings/pkg/math"
	"github.com/Faultbox/procfairings/pkg/shape"
)

// Volume is the enclosed space of an assembled fairing, in the fairing frame.
type Volume struct {
	Curve     shape.Curve // outer silhouette, thickness applied
	Thickness float32
	Inline    bool
	TopRad    float32

	// Bounding cylinder of Curve.
	Y0, Y1, Rad float32

	// Sphere around the bounding cylinder, used to gather candidates.
	LookupCenter pfmath.Vec3
	LookupRad    float32
}

// NewVolume offsets the silhouette by the wall thickness and computes its
// bounding cylinder and lookup sphere. topRad is only used when inline.
func NewVolume(curve shape.Curve, thickness float32, inline bool, topRad float32) Volume {
	outer := curve.Offset(thickness)
	y0, y1, rad := outer.Bounds()
	return Volume{
		Curve:        outer,
		Thickness:    thickness,
		Inline:       inline,
		TopRad:       topRad,
		Y0:           y0,
		Y1:           y1,
		Rad:          rad,
		LookupCenter: pfmath.Vec3{Y: (y0 + y1) * 0.5},
		LookupRad:    pfmath.Vec2{X: rad, Y: (y1 - y0) * 0.5}.Length(),
	}
}

// Contains reports whether the point at distance r from the axis and height
// y lies inside the silhouette. The first edge spanning y decides: the point
// is inside when r does not exceed the edge radius at that height.
func (v Volume) Contains(r, y float32) bool {
	for i := 1; i < len(v.Curve); i++ {
		p0, p1 := v.Curve[i-1], v.Curve[i]
		if p0.Y > p1.Y {
			p0, p1 = p1, p0
		}
		if y < p0.Y || y > p1.Y {
			continue
		}

		var edgeR float32
		if dy := p1.Y - p0.Y; dy <= 1e-6 {
			edgeR = (p0.R + p1.R) * 0.5
		} else {
			edgeR = (p1.R-p0.R)*(y-p0.Y)/dy + p0.R
		}
		if r > edgeR {
			continue
		}
		return true
	}
	return false
}

// ContainsPoint tests a point given in the fairing frame.
func (v Volume) ContainsPoint(p pfmath.Vec3) bool {
	if p.Y < v.Y0 || p.Y > v.Y1 {
		return false
	}
	rsq := p.X*p.X + p.Z*p.Z
	if rsq > v.Rad*v.Rad {
		return false
	}
	return v.Contains(math32.Sqrt(rsq), p.Y)
}

// InLookup reports whether box b, in the fairing frame, touches the lookup
// sphere.
func (v Volume) InLookup(b pfmath.Bounds) bool {
	c := v.LookupCenter
	closest := c.Max(b.Min).Min(b.Max)
	d := closest.Sub(c)
	return d.Dot(d) <= v.LookupRad*v.LookupRad
}

// TopBounds returns the box the inline top opening must be covered by.
func (v Volume) TopBounds() pfmath.Bounds {
	return pfmath.BoundsFromCenter(
		pfmath.Vec3{Y: v.Y1},
		pfmath.Vec3{X: v.TopRad * 2, Y: v.Thickness, Z: v.TopRad * 2},
	)
}
