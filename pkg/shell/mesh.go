// Package shell tessellates a fairing silhouette into one double-walled side
// panel: outer and inner surfaces, the two seam strips, and the closing rings,
// along with the panel's colliders and physical properties.
package shell

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/procfairings/pkg/envelope"
	pfmath "github.com/Faultbox/procfairings/pkg/math"
	"github.com/Faultbox/procfairings/pkg/shape"
)

// ErrShortCurve is returned when the silhouette has fewer than two points.
var ErrShortCurve = errors.New("shell: silhouette needs at least two points")

// ErrBadEnvelope is returned when an envelope dimension is NaN or infinite,
// which a verbatim manual override can produce.
var ErrBadEnvelope = errors.New("shell: envelope is not finite")

// Params fully determine a panel mesh. Params is comparable; equal params
// always produce identical meshes.
type Params struct {
	Envelope envelope.Envelope
	Cones    shape.Cones
	Mapping  shape.Mapping

	NumSegs      int // angular segments per panel, at least 2
	NumSideParts int // panels around the axis, at least 1

	SideThickness          float32
	Density                float32
	CostPerTonne           float32
	SpecificBreakingForce  float32
	SpecificBreakingTorque float32

	// Angle is the panel direction in degrees around the axis.
	Angle float32
}

func (p Params) normalized() Params {
	p.NumSegs = max(p.NumSegs, 2)
	p.NumSideParts = max(p.NumSideParts, 1)
	return p
}

// Physics are the derived physical properties of one panel.
type Physics struct {
	Area           float64
	Volume         float32
	Mass           float32
	BreakingForce  float32
	BreakingTorque float32
	Cost           float32
	CoMOffset      pfmath.Vec3
}

// Mesh is one side panel in its own frame: the panel is centred on +X and
// the axis is +Y.
type Mesh struct {
	Vertices []pfmath.Vec3
	Normals  []pfmath.Vec3
	Tangents []pfmath.Vec4
	UVs      []pfmath.Vec2
	Indices  []uint32

	Counts    Counts
	Curve     shape.Curve
	Physics   Physics
	Colliders []Collider
	Angle     float32
}

// Build generates the silhouette from the envelope and tessellates it.
func Build(p Params) (*Mesh, error) {
	if !finite(p.Envelope) {
		return nil, fmt.Errorf("%w: %+v", ErrBadEnvelope, p.Envelope)
	}
	curve := shape.Build(p.Envelope, p.Cones, p.Mapping)
	return BuildFromCurve(curve, p)
}

func finite(e envelope.Envelope) bool {
	for _, v := range [...]float32{e.BaseRad, e.MaxRad, e.CylStart, e.CylEnd, e.TopRad, e.TopY} {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// BuildFromCurve tessellates an existing silhouette. The envelope in p still
// drives the inline flag, ring radii and colliders.
func BuildFromCurve(curve shape.Curve, p Params) (*Mesh, error) {
	if len(curve) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrShortCurve, len(curve))
	}
	p = p.normalized()

	b := newBuilder(curve, p)
	b.tip()
	b.mainVertices()
	b.sideVertices()
	b.ringVertices()
	for i := range b.m.Tangents {
		b.m.Tangents[i].W = 1
	}
	b.faces()

	b.m.Physics = physics(curve, p)
	b.m.Colliders = colliders(curve, p)
	return b.m, nil
}

// Transform places the panel around the fairing axis.
func (m *Mesh) Transform() pfmath.Mat4 {
	return pfmath.RotateY(-m.Angle * pfmath.Deg2Rad)
}

// Bounds returns the axis-aligned bounds of the vertices in the panel frame.
func (m *Mesh) Bounds() pfmath.Bounds {
	if len(m.Vertices) == 0 {
		return pfmath.Bounds{}
	}
	b := pfmath.Bounds{Min: m.Vertices[0], Max: m.Vertices[0]}
	for _, v := range m.Vertices[1:] {
		b = b.Encapsulate(v)
	}
	return b
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

type builder struct {
	m      *Mesh
	curve  shape.Curve
	p      Params
	inline bool
	segs   int
	dirs   []pfmath.Vec3

	segOScale, segOOfs float32
	segIScale, segIOfs float32
	stripU0, stripU1   float32
	stripScale         float32
}

func newBuilder(curve shape.Curve, p Params) *builder {
	inline := p.Envelope.Inline
	segs := p.NumSegs
	nsp := float32(p.NumSideParts)
	counts := Count(len(curve), segs, inline)

	b := &builder{
		m: &Mesh{
			Vertices: make([]pfmath.Vec3, counts.TotalVerts),
			Normals:  make([]pfmath.Vec3, counts.TotalVerts),
			Tangents: make([]pfmath.Vec4, counts.TotalVerts),
			UVs:      make([]pfmath.Vec2, counts.TotalVerts),
			Indices:  make([]uint32, counts.TotalFaces*3),
			Counts:   counts,
			Curve:    curve,
			Angle:    p.Angle,
		},
		curve:  curve,
		p:      p,
		inline: inline,
		segs:   segs,
		dirs:   make([]pfmath.Vec3, segs+1),
	}

	for i := range b.dirs {
		a := math32.Pi * 2 * (float32(i) - float32(segs)*0.5) / (nsp * float32(segs))
		s, c := math32.Sincos(a)
		b.dirs[i] = pfmath.Vec3{X: c, Z: s}
	}

	ms, hm, sm := p.Mapping.MappingScale, p.Mapping.HorMapping, p.Mapping.StripMapping
	fs := float32(segs)
	b.segOScale = (hm.Y - hm.X) / (ms.X * fs)
	b.segIScale = (hm.W - hm.Z) / (ms.X * fs)
	b.segOOfs = hm.X / ms.X
	b.segIOfs = hm.Z / ms.X
	if p.NumSideParts > 2 {
		b.segOOfs += b.segOScale * fs * (0.5 - 1/nsp)
		b.segOScale *= 2 / nsp
		b.segIOfs += b.segIScale * fs * (0.5 - 1/nsp)
		b.segIScale *= 2 / nsp
	}
	b.stripU0 = sm.X / ms.X
	b.stripU1 = sm.Y / ms.X

	// A zero-thickness wall would make the strip scale infinite.
	if d := p.SideThickness * ms.Y; d != 0 {
		b.stripScale = math32.Abs(sm.Y-sm.X) / d
	}
	return b
}

// tip fills the shared apex vertices of a free-nose panel.
func (b *builder) tip() {
	if b.inline {
		return
	}
	m := b.m
	n := m.Counts.MainVerts
	last := b.curve[len(b.curve)-1]
	fs := float32(b.segs)

	m.Vertices[n-1] = pfmath.Vec3{Y: last.Y + b.p.SideThickness}
	m.Vertices[2*n-1] = pfmath.Vec3{Y: last.Y}
	m.UVs[n-1] = pfmath.Vec2{X: b.segOScale*0.5*fs + b.segOOfs, Y: last.V}
	m.UVs[2*n-1] = pfmath.Vec2{X: b.segIScale*0.5*fs + b.segIOfs, Y: last.V}
	m.Normals[n-1] = pfmath.Up
	m.Normals[2*n-1] = pfmath.Up.Neg()
}

// mainVertices sweeps every silhouette row (except a free-nose tip) around
// the panel's arc, outer surface first.
func (b *builder) mainVertices() {
	m := b.m
	n := m.Counts.MainVerts
	th := b.p.SideThickness
	ms, hm := b.p.Mapping.MappingScale, b.p.Mapping.HorMapping
	_, _, noseV0, noseV1 := b.p.Mapping.VRange()
	noseVScale := 1 / (noseV1 - noseV0)
	oCenter := (hm.X + hm.Y) / (ms.X * 2)
	iCenter := (hm.Z + hm.W) / (ms.X * 2)

	rows := len(b.curve)
	if !b.inline {
		rows--
	}

	vi := 0
	for i := 0; i < rows; i++ {
		pt := b.curve[i]
		nrm := b.curve.Normal(i)
		edge := i == 0 || i == len(b.curve)-1

		for j := 0; j <= b.segs; j++ {
			d := b.dirs[j]
			dp := d.Scale(pt.R).Add(pfmath.Up.Scale(pt.Y))
			dn := d.Scale(nrm.X).Add(pfmath.Up.Scale(nrm.Y))

			if edge {
				m.Vertices[vi] = dp.Add(d.Scale(th))
			} else {
				m.Vertices[vi] = dp.Add(dn.Scale(th))
			}
			m.Vertices[vi+n] = dp

			// Narrow the U range towards the centre line as the nose closes.
			v := (pt.V - noseV0) * noseVScale
			uo := float32(j)*b.segOScale + b.segOOfs
			ui := float32(b.segs-j)*b.segIScale + b.segIOfs
			if v > 0 && v < 1 {
				us := 1 - v
				uo = (uo-oCenter)*us + oCenter
				ui = (ui-iCenter)*us + iCenter
			}

			m.UVs[vi] = pfmath.Vec2{X: uo, Y: pt.V}
			m.UVs[vi+n] = pfmath.Vec2{X: ui, Y: pt.V}
			m.Normals[vi] = dn
			m.Normals[vi+n] = dn.Neg()
			m.Tangents[vi] = pfmath.Vec4{X: -d.Z, Z: d.X}
			m.Tangents[vi+n] = pfmath.Vec4{X: d.Z, Z: -d.X}
			vi++
		}
	}
}

// sideVertices builds the two seam strips. The first runs up the j=0 edge,
// the second is filled top-down along the j=segs edge so both share winding.
func (b *builder) sideVertices() {
	m := b.m
	n := m.Counts.MainVerts
	l := len(b.curve)
	row := b.segs + 1

	vi := m.Counts.sideStart()
	var o float32
	d := b.dirs[0]
	for i := 0; i < l; i++ {
		b.stripPair(vi, i*row, o, pfmath.Vec3{X: d.Z, Z: -d.X})
		if i+1 < l {
			o += b.curve[i+1].RY().Sub(b.curve[i].RY()).Length() * b.stripScale
		}
		vi += 2
	}

	vi += m.Counts.SideVerts - 2
	d = b.dirs[b.segs]
	for i := l - 1; i >= 0; i-- {
		si := i*row + b.segs
		if i == l-1 && !b.inline {
			si = n - 1
		}
		b.stripPair(vi, si, o, pfmath.Vec3{X: -d.Z, Z: d.X})
		if i > 0 {
			o += b.curve[i].RY().Sub(b.curve[i-1].RY()).Length() * b.stripScale
		}
		vi -= 2
	}
}

// ringVertices closes the wall at the base, and at the top for inline panels.
func (b *builder) ringVertices() {
	m := b.m
	nsp := float32(b.p.NumSideParts)
	fs := float32(b.segs)
	ringSegLen := b.p.Envelope.BaseRad * math32.Pi * 2 / (fs * nsp)
	topRingSegLen := b.p.Envelope.TopRad * math32.Pi * 2 / (fs * nsp)

	vi := m.Counts.ringStart()
	var o float32
	down := pfmath.Up.Neg()
	for j := b.segs; j >= 0; j-- {
		b.stripPair(vi, j, o, down)
		vi += 2
		o += ringSegLen * b.stripScale
	}

	if !b.inline {
		return
	}
	o = 0
	si := (len(b.curve) - 1) * (b.segs + 1)
	for j := 0; j <= b.segs; j++ {
		b.stripPair(vi, si+j, o, pfmath.Up)
		vi += 2
		o += topRingSegLen * b.stripScale
	}
}

// stripPair copies outer vertex si and its inner twin to vi and vi+1.
func (b *builder) stripPair(vi, si int, o float32, normal pfmath.Vec3) {
	m := b.m
	n := m.Counts.MainVerts

	m.Vertices[vi] = m.Vertices[si]
	m.Vertices[vi+1] = m.Vertices[si+n]
	m.UVs[vi] = pfmath.Vec2{X: b.stripU0, Y: o}
	m.UVs[vi+1] = pfmath.Vec2{X: b.stripU1, Y: o}
	m.Normals[vi] = normal
	m.Normals[vi+1] = normal

	t := pfmath.Vec4From(m.Vertices[vi+1].Sub(m.Vertices[vi]).Normalize(), 0)
	m.Tangents[vi] = t
	m.Tangents[vi+1] = t
}

func (b *builder) faces() {
	m := b.m
	c := m.Counts
	n := c.MainVerts
	segs := b.segs
	tri := m.Indices

	put := func(ti *int, a, bb, cc int) {
		tri[*ti] = uint32(a)
		tri[*ti+1] = uint32(bb)
		tri[*ti+2] = uint32(cc)
		*ti += 3
	}

	// Main quads: outer faces from 0, inner faces mirrored after them.
	rows := len(b.curve) - 1
	if !b.inline {
		rows--
	}
	ti1, ti2 := 0, c.MainFaces*3
	vi := 0
	for i := 0; i < rows; i++ {
		for j := 0; j < segs; j++ {
			put(&ti1, vi, vi+segs+2, vi+1)
			put(&ti1, vi, vi+segs+1, vi+segs+2)
			put(&ti2, n+vi, n+vi+1, n+vi+segs+2)
			put(&ti2, n+vi, n+vi+segs+2, n+vi+segs+1)
			vi++
		}
		vi++
	}

	if !b.inline {
		for j := 0; j < segs; j++ {
			put(&ti1, vi, n-1, vi+1)
			put(&ti2, n+vi, n+vi+1, 2*n-1)
			vi++
		}
	}

	// Seam strips.
	vi = c.sideStart()
	ti1 = c.MainFaces * 2 * 3
	ti2 = ti1 + c.SideFaces*3
	sv := c.SideVerts
	for i := 0; i < len(b.curve)-1; i++ {
		put(&ti1, vi, vi+1, vi+3)
		put(&ti1, vi, vi+3, vi+2)
		put(&ti2, sv+vi, sv+vi+3, sv+vi+1)
		put(&ti2, sv+vi, sv+vi+2, sv+vi+3)
		vi += 2
	}

	// Rings.
	vi = c.ringStart()
	ti1 = (c.MainFaces + c.SideFaces) * 2 * 3
	for j := 0; j < segs; j++ {
		put(&ti1, vi, vi+1, vi+3)
		put(&ti1, vi, vi+3, vi+2)
		vi += 2
	}
	if b.inline {
		vi += 2
		for j := 0; j < segs; j++ {
			put(&ti1, vi, vi+1, vi+3)
			put(&ti1, vi, vi+3, vi+2)
			vi += 2
		}
	}
}

func physics(curve shape.Curve, p Params) Physics {
	area := curve.SurfaceArea(p.NumSideParts)
	volume := float32(area * float64(p.SideThickness))
	mass := volume * p.Density
	return Physics{
		Area:           area,
		Volume:         volume,
		Mass:           mass,
		BreakingForce:  mass * p.SpecificBreakingForce,
		BreakingTorque: mass * p.SpecificBreakingTorque,
		Cost:           mass * p.CostPerTonne,
		CoMOffset:      pfmath.Vec3{X: p.Envelope.MaxRad * 0.7, Y: curve.Top() * 0.5},
	}
}
