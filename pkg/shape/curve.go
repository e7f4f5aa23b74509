// Package shape turns a fitted envelope into the fairing silhouette: an
// ordered (radius, height, texture V) polyline from the base to the tip or
// inline top.
package shape

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/procfairings/pkg/bezier"
	"github.com/Faultbox/procfairings/pkg/envelope"
	pfmath "github.com/Faultbox/procfairings/pkg/math"
)

// Point is one silhouette vertex.
type Point struct {
	R float32 // distance from the axis
	Y float32 // height above the base
	V float32 // texture V
}

// RY drops the texture coordinate.
func (p Point) RY() pfmath.Vec2 {
	return pfmath.Vec2{X: p.R, Y: p.Y}
}

// Curve is a silhouette ordered from base to top.
type Curve []Point

// Cones holds the cone shaping parameters of a side panel.
type Cones struct {
	BaseShape       pfmath.Vec4 `yaml:"base_cone_shape" json:"base_cone_shape"`
	NoseShape       pfmath.Vec4 `yaml:"nose_cone_shape" json:"nose_cone_shape"`
	BaseSegments    int         `yaml:"base_cone_segments" json:"base_cone_segments"`
	NoseSegments    int         `yaml:"nose_cone_segments" json:"nose_cone_segments"`
	NoseHeightRatio float32     `yaml:"nose_height_ratio" json:"nose_height_ratio"`
}

// Build dispatches to BuildInline or BuildFairing.
func Build(env envelope.Envelope, c Cones, m Mapping) Curve {
	if env.Inline {
		return BuildInline(env, c, m)
	}
	return BuildFairing(env, c, m)
}

// BuildFairing builds the free-nose silhouette. It has
// 1 + BaseSegments (only when CylStart != 0) + 1 + NoseSegments points.
func BuildFairing(env envelope.Envelope, c Cones, m Mapping) Curve {
	baseSegs, noseSegs := max(c.BaseSegments, 1), max(c.NoseSegments, 1)
	baseConeRad := env.MaxRad - env.BaseRad
	tip := env.MaxRad * c.NoseHeightRatio

	baseSlope := bezier.NewSlope(c.BaseShape)
	noseSlope := bezier.NewSlope(c.NoseShape)
	baseV0, baseV1, noseV0, noseV1 := m.VRange()

	n := 1 + 1 + noseSegs
	if env.CylStart != 0 {
		n += baseSegs
	}
	curve := make(Curve, 0, n)

	if env.CylStart != 0 {
		for i := 0; i <= baseSegs; i++ {
			t := float32(i) / float32(baseSegs)
			p := baseSlope.Interp(t)
			curve = append(curve, Point{
				R: p.X*baseConeRad + env.BaseRad,
				Y: p.Y * env.CylStart,
				V: pfmath.Lerp(baseV0, baseV1, t),
			})
		}
	} else {
		curve = append(curve, Point{R: env.BaseRad, Y: 0, V: baseV1})
	}

	for i := 0; i <= noseSegs; i++ {
		t := float32(i) / float32(noseSegs)
		p := noseSlope.Interp(1 - t)
		curve = append(curve, Point{
			R: p.X * env.MaxRad,
			Y: (1-p.Y)*tip + env.CylEnd,
			V: pfmath.Lerp(noseV0, noseV1, t),
		})
	}
	return curve
}

// BuildInline builds the silhouette of a fairing capped at (TopRad, TopY).
// It has 2 + (BaseSegments+1 when CylStart != 0) + (BaseSegments+1 when
// CylEnd != TopY) points. The top cone reuses the base cone shape reversed.
func BuildInline(env envelope.Envelope, c Cones, m Mapping) Curve {
	baseSegs := max(c.BaseSegments, 1)
	baseConeRad := env.MaxRad - env.BaseRad
	topConeRad := env.MaxRad - env.TopRad

	baseSlope := bezier.NewSlope(c.BaseShape)
	baseV0, baseV1, noseV0, _ := m.VRange()

	n := 2
	if env.CylStart != 0 {
		n += baseSegs + 1
	}
	if env.CylEnd != env.TopY {
		n += baseSegs + 1
	}
	curve := make(Curve, 0, n)

	if env.CylStart != 0 {
		for i := 0; i <= baseSegs; i++ {
			t := float32(i) / float32(baseSegs)
			p := baseSlope.Interp(t)
			curve = append(curve, Point{
				R: p.X*baseConeRad + env.BaseRad,
				Y: p.Y * env.CylStart,
				V: pfmath.Lerp(baseV0, baseV1, t),
			})
		}
	}

	curve = append(curve,
		Point{R: env.MaxRad, Y: env.CylStart, V: baseV1},
		Point{R: env.MaxRad, Y: env.CylEnd, V: noseV0},
	)

	if env.CylEnd != env.TopY {
		for i := 0; i <= baseSegs; i++ {
			t := float32(i) / float32(baseSegs)
			p := baseSlope.Interp(1 - t)
			curve = append(curve, Point{
				R: p.X*topConeRad + env.TopRad,
				Y: pfmath.Lerp(env.TopY, env.CylEnd, p.Y),
				V: pfmath.Lerp(baseV1, baseV0, t),
			})
		}
	}
	return curve
}

// Normal returns the outward unit normal of the silhouette at point i in the
// (radius, height) plane, from the central difference of its neighbours.
func (c Curve) Normal(i int) pfmath.Vec2 {
	last := len(c) - 1
	if last < 1 {
		return pfmath.Vec2{X: 1}
	}
	var d pfmath.Vec2
	switch i {
	case 0:
		d = c[1].RY().Sub(c[0].RY())
	case last:
		d = c[last].RY().Sub(c[last-1].RY())
	default:
		d = c[i+1].RY().Sub(c[i-1].RY())
	}
	return d.Perp().Normalize()
}

// Offset moves every point outward by thickness: the end points radially,
// the others along the silhouette normal.
func (c Curve) Offset(thickness float32) Curve {
	out := make(Curve, len(c))
	copy(out, c)
	for i := range out {
		if i == 0 || i == len(out)-1 {
			out[i].R += thickness
			continue
		}
		n := c.Normal(i)
		out[i].R += n.X * thickness
		out[i].Y += n.Y * thickness
	}
	return out
}

// Bounds returns the height range and the largest radius of the curve.
func (c Curve) Bounds() (y0, y1, maxR float32) {
	if len(c) == 0 {
		return 0, 0, 0
	}
	y0, y1, maxR = c[0].Y, c[0].Y, c[0].R
	for _, p := range c[1:] {
		y0 = math32.Min(y0, p.Y)
		y1 = math32.Max(y1, p.Y)
		maxR = math32.Max(maxR, p.R)
	}
	return y0, y1, maxR
}

// Top returns the height of the last point.
func (c Curve) Top() float32 {
	if len(c) == 0 {
		return 0
	}
	return c[len(c)-1].Y
}

// SurfaceArea returns the lateral area of the surface of revolution traced by
// the curve, divided by parts. Terms are summed in float64.
func (c Curve) SurfaceArea(parts int) float64 {
	parts = max(parts, 1)
	var area float64
	for i := 1; i < len(c); i++ {
		area += float64((c[i-1].R + c[i].R) * (c[i].Y - c[i-1].Y) * math32.Pi / float32(parts))
	}
	return area
}
