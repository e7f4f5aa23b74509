// Package envelope fits the minimal cylinder-with-cones shape around a radial
// clearance profile.
//
// The fit is a greedy single pass: the base cone is pushed up until its slope
// drops below the minimum cone angle or it would cut into the payload, and the
// nose (or inline top) cone is pushed down until it would cut into the
// payload. Every cone is checked against the cone radius at the upper edge of
// each bucket it spans: the widest point of the base cone over that bucket,
// and the narrowest point of the nose or inline top cone.
package envelope

import (
	"github.com/chewxy/math32"

	pfmath "github.com/Faultbox/procfairings/pkg/math"
	"github.com/Faultbox/procfairings/pkg/profile"
)

// Params are the fixed constraints of a fit.
type Params struct {
	BaseRad          float32
	MinBaseConeAngle float32 // degrees
	NoseHeightRatio  float32

	// Inline fairings end in a truncated cone at (TopRad, TopY) instead of a nose.
	Inline bool
	TopY   float32
	TopRad float32
}

// Envelope is the fitted shape: a base cone from BaseRad at y=0 to MaxRad at
// CylStart, a cylinder up to CylEnd, then a nose or an inline top cone.
type Envelope struct {
	BaseRad  float32
	MaxRad   float32
	CylStart float32
	CylEnd   float32
	TopRad   float32
	TopY     float32
	Inline   bool
}

// Fit computes the envelope of p under params.
func Fit(p profile.Profile, params Params) Envelope {
	env := Envelope{
		BaseRad: params.BaseRad,
		TopRad:  params.TopRad,
		TopY:    params.TopY,
		Inline:  params.Inline,
	}

	profTop := p.Len()
	if params.Inline {
		if env.TopY < p.Offset {
			env.TopY = p.Offset
		}
		profTop = min(int(math32.Ceil((env.TopY-p.Offset)/p.Step)), p.Len())
		env.MaxRad = math32.Max(p.MaxBelow(profTop), env.TopRad)
	} else {
		env.MaxRad = p.Max()
	}

	if env.MaxRad > env.BaseRad {
		env.CylStart = fitBase(p, env.BaseRad, env.MaxRad, params.MinBaseConeAngle)
	} else {
		env.MaxRad = env.BaseRad
		env.CylStart = 0
	}

	if params.Inline {
		env.CylEnd = fitTop(p, env.MaxRad, env.TopRad, env.TopY, profTop)
	} else {
		env.CylEnd = fitNose(p, env.MaxRad, params.NoseHeightRatio)
	}

	if env.CylStart > env.CylEnd {
		env.CylStart = env.CylEnd
	}
	return env
}

// fitBase returns the highest bucket boundary the base cone can reach.
func fitBase(p profile.Profile, baseRad, maxRad, minAngle float32) float32 {
	minTan := math32.Tan(minAngle * pfmath.Deg2Rad)
	cylStart := p.Offset

	for i := 1; i < p.Len(); i++ {
		y := p.BucketY(i)
		if y <= 0 {
			continue
		}
		k := (maxRad - baseRad) / y
		if k < minTan {
			break
		}

		ok := true
		for j := 0; j < i; j++ {
			r := baseRad + k*p.BucketY(j+1)
			if p.Radii[j] > r {
				ok = false
				break
			}
		}
		if !ok {
			break
		}
		cylStart = y
	}
	return cylStart
}

// fitNose returns the lowest bucket boundary the nose cone can start from.
func fitNose(p profile.Profile, maxRad, noseHeightRatio float32) float32 {
	cylEnd := p.Top()
	if noseHeightRatio <= 0 {
		return cylEnd
	}
	s := p.Step / noseHeightRatio

	for i := p.Len() - 1; i >= 0; i-- {
		ok := true
		r := maxRad - s
		for j := i; j < p.Len(); j++ {
			if p.Radii[j] > r {
				ok = false
				break
			}
			r -= s
		}
		if !ok {
			break
		}
		cylEnd = p.BucketY(i)
	}
	return cylEnd
}

// fitTop returns the lowest bucket boundary the inline top cone can start from.
func fitTop(p profile.Profile, maxRad, topRad, topY float32, profTop int) float32 {
	r0 := topRad
	if profTop > 0 && profTop < p.Len() {
		r0 = math32.Max(r0, p.Radii[profTop-1])
		if profTop >= 2 {
			r0 = math32.Max(r0, p.Radii[profTop-2])
		}
	}
	if maxRad <= r0 {
		return topY
	}

	cylEnd := p.Top()
	if cylEnd > topY {
		cylEnd = topY - p.Step
	}

	for i := profTop - 1; i >= 0; i-- {
		y := p.BucketY(i)
		k := (maxRad - r0) / (y - topY)

		ok := true
		r := maxRad + k*p.Step
		for j := i; j < profTop; j++ {
			r = math32.Max(r, r0)
			if p.Radii[j] > r {
				ok = false
				break
			}
			r += k * p.Step
		}
		if !ok {
			break
		}
		cylEnd = y
	}
	return cylEnd
}

// Top returns the height of the top of the shape: the inline cap height, or
// the nose tip.
func (e Envelope) Top(noseHeightRatio float32) float32 {
	if e.Inline {
		return e.TopY
	}
	return e.CylEnd + e.MaxRad*noseHeightRatio
}
