package profile

import (
	"github.com/chewxy/math32"
	"github.com/samber/lo"

	pfmath "github.com/Faultbox/procfairings/pkg/math"
)

// Profile is a radial clearance profile. Radii[i] covers the height band
// [Offset + i*Step, Offset + (i+1)*Step).
type Profile struct {
	Radii  []float32
	Offset float32
	Step   float32
}

// Len returns the bucket count.
func (p Profile) Len() int {
	return len(p.Radii)
}

// Max returns the largest radius, or 0 for an empty profile.
func (p Profile) Max() float32 {
	return p.MaxBelow(len(p.Radii))
}

// MaxBelow returns the largest radius among the first n buckets.
func (p Profile) MaxBelow(n int) float32 {
	n = min(max(n, 0), len(p.Radii))
	if n == 0 {
		return 0
	}
	return lo.Max(p.Radii[:n])
}

// Top returns the height just above the last bucket.
func (p Profile) Top() float32 {
	return float32(len(p.Radii))*p.Step + p.Offset
}

// BucketY returns the lower edge height of bucket i.
func (p Profile) BucketY(i int) float32 {
	return float32(i)*p.Step + p.Offset
}

// BucketAt returns the index of the bucket containing height y. The result
// may be negative or past the end.
func (p Profile) BucketAt(y float32) int {
	return int(math32.Floor((y - p.Offset) / p.Step))
}

// Outline returns the stepped (radius, height) polyline of the profile,
// starting and ending on the axis. It has 2*Len()+2 points.
func (p Profile) Outline() []pfmath.Vec2 {
	out := make([]pfmath.Vec2, 0, 2*len(p.Radii)+2)
	var prev float32
	for i, r := range p.Radii {
		y := p.BucketY(i)
		out = append(out, pfmath.Vec2{X: prev, Y: y}, pfmath.Vec2{X: r, Y: y})
		prev = r
	}
	top := p.Top()
	return append(out, pfmath.Vec2{X: prev, Y: top}, pfmath.Vec2{X: 0, Y: top})
}

// WithBucket returns a copy with bucket i raised to at least r.
func (p Profile) WithBucket(i int, r float32) Profile {
	radii := make([]float32, len(p.Radii))
	copy(radii, p.Radii)
	if i >= 0 && i < len(radii) {
		radii[i] = math32.Max(radii[i], r)
	}
	return Profile{Radii: radii, Offset: p.Offset, Step: p.Step}
}
