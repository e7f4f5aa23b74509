package math

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min Vec3
	Max Vec3
}

// BoundsFromCenter builds a box from its center and full size.
func BoundsFromCenter(center, size Vec3) Bounds {
	half := size.Scale(0.5)
	return Bounds{Min: center.Sub(half), Max: center.Add(half)}
}

// Center returns the box midpoint.
func (b Bounds) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the full box extent.
func (b Bounds) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// Expand grows the size by amount on every axis (amount/2 on each side).
func (b Bounds) Expand(amount float32) Bounds {
	h := amount / 2
	d := Vec3{h, h, h}
	return Bounds{Min: b.Min.Sub(d), Max: b.Max.Add(d)}
}

// Contains reports whether p lies inside or on the box.
func (b Bounds) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Encapsulate grows the box to include p.
func (b Bounds) Encapsulate(p Vec3) Bounds {
	return Bounds{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Corner returns corner i (0..7). Bit 0 selects max X, bit 1 max Y, bit 2 max Z.
func (b Bounds) Corner(i int) Vec3 {
	c := b.Min
	if i&1 != 0 {
		c.X = b.Max.X
	}
	if i&2 != 0 {
		c.Y = b.Max.Y
	}
	if i&4 != 0 {
		c.Z = b.Max.Z
	}
	return c
}

// BoxEdges lists the 12 box edges as corner index pairs: X edges, then Y, then Z.
var BoxEdges = [12][2]int{
	{0, 1}, {2, 3}, {4, 5}, {6, 7},
	{0, 2}, {1, 3}, {4, 6}, {5, 7},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// Transform returns the axis-aligned bounds of the box after applying m.
func (b Bounds) Transform(m Mat4) Bounds {
	center := m.TransformVec3(b.Center())
	extent := m.Abs().TransformDirection(b.Size().Scale(0.5))
	return Bounds{Min: center.Sub(extent), Max: center.Add(extent)}
}
