package shell

import (
	"github.com/chewxy/math32"

	pfmath "github.com/Faultbox/procfairings/pkg/math"
	"github.com/Faultbox/procfairings/pkg/shape"
)

// ColliderKind is the primitive type of a collider.
type ColliderKind int

const (
	BoxCollider ColliderKind = iota
	SphereCollider
)

func (k ColliderKind) String() string {
	switch k {
	case BoxCollider:
		return "box"
	case SphereCollider:
		return "sphere"
	default:
		return "unknown"
	}
}

// Collider is a physics primitive attached to the panel. Center and Size are
// in the collider's own frame, placed in the panel frame by Transform.
type Collider struct {
	Name      string
	Kind      ColliderKind
	Transform pfmath.Mat4
	Center    pfmath.Vec3
	Size      pfmath.Vec3 // boxes only
	Radius    float32     // spheres only
}

// Bounds returns the collider's axis-aligned bounds in the panel frame.
func (c Collider) Bounds() pfmath.Bounds {
	if c.Kind == SphereCollider {
		center := c.Transform.TransformVec3(c.Center)
		r := pfmath.Vec3{X: c.Radius, Y: c.Radius, Z: c.Radius}
		return pfmath.Bounds{Min: center.Sub(r), Max: center.Add(r)}
	}
	return pfmath.BoundsFromCenter(c.Center, c.Size).Transform(c.Transform)
}

// colliders returns three wall boxes spread over the panel arc and a sphere
// near the nose tip. Inline panels get a small sphere on the wall instead.
func colliders(curve shape.Curve, p Params) []Collider {
	env := p.Envelope
	th := p.SideThickness
	nsp := float32(p.NumSideParts)

	collCenter := (env.CylStart + env.CylEnd) / 2
	collHeight := env.CylEnd - env.CylStart
	if collHeight <= 0 {
		collHeight = math32.Min(curve.Top()-env.CylEnd, env.CylStart) / 2
	}
	collWidth := env.MaxRad * math32.Pi * 2 / (nsp * 3)

	out := make([]Collider, 0, 4)
	for i := -1; i <= 1; i++ {
		rot := pfmath.QuatFromAxisAngle(pfmath.Up, 90*float32(i)/nsp*pfmath.Deg2Rad)
		out = append(out, Collider{
			Name:      "collider",
			Kind:      BoxCollider,
			Transform: rot.ToMat4(),
			Center:    pfmath.Vec3{X: env.MaxRad + th*0.5, Y: collCenter},
			Size:      pfmath.Vec3{X: th, Y: collHeight, Z: collWidth},
		})
	}

	r := env.MaxRad * 0.2
	pos := pfmath.Vec3{X: r, Y: env.CylEnd + env.MaxRad*p.Cones.NoseHeightRatio - r*1.2}
	if env.Inline {
		r = th * 0.5
		pos = pfmath.Vec3{X: env.MaxRad + r, Y: collCenter}
	}
	out = append(out, Collider{
		Name:      "nose_collider",
		Kind:      SphereCollider,
		Transform: pfmath.Translate(pos.X, pos.Y, pos.Z),
		Radius:    r,
	})
	return out
}
