package profile

import pfmath "github.com/Faultbox/procfairings/pkg/math"

// Edge is a line segment in the fairing frame.
type Edge [2]pfmath.Vec3

// Shape is a bounding volume that can be reduced to edges.
type Shape interface {
	// Edges returns the shape's edges after transforming by m.
	Edges(m pfmath.Mat4) []Edge
	// LocalBounds returns the untransformed axis-aligned bounds.
	LocalBounds() pfmath.Bounds
}

// Box is an axis-aligned box in its own local space.
type Box struct {
	pfmath.Bounds
}

// Edges returns the 12 box edges in corner order.
func (b Box) Edges(m pfmath.Mat4) []Edge {
	var corners [8]pfmath.Vec3
	for i := range corners {
		corners[i] = m.TransformVec3(b.Corner(i))
	}

	edges := make([]Edge, 0, len(pfmath.BoxEdges))
	for _, e := range pfmath.BoxEdges {
		edges = append(edges, Edge{corners[e[0]], corners[e[1]]})
	}
	return edges
}

// LocalBounds returns the box itself.
func (b Box) LocalBounds() pfmath.Bounds {
	return b.Bounds
}

// TriMesh is an indexed triangle mesh, usually a collider.
type TriMesh struct {
	Vertices []pfmath.Vec3
	Indices  []int
}

// Edges returns three edges per triangle. A trailing partial triangle and
// out-of-range indices are ignored.
func (t TriMesh) Edges(m pfmath.Mat4) []Edge {
	edges := make([]Edge, 0, len(t.Indices))
	for i := 0; i+2 < len(t.Indices); i += 3 {
		a, b, c := t.Indices[i], t.Indices[i+1], t.Indices[i+2]
		if !t.valid(a) || !t.valid(b) || !t.valid(c) {
			continue
		}
		v0 := m.TransformVec3(t.Vertices[a])
		v1 := m.TransformVec3(t.Vertices[b])
		v2 := m.TransformVec3(t.Vertices[c])
		edges = append(edges, Edge{v0, v1}, Edge{v1, v2}, Edge{v2, v0})
	}
	return edges
}

// LocalBounds returns the bounds of the referenced vertices.
func (t TriMesh) LocalBounds() pfmath.Bounds {
	if len(t.Vertices) == 0 {
		return pfmath.Bounds{}
	}
	b := pfmath.Bounds{Min: t.Vertices[0], Max: t.Vertices[0]}
	for _, v := range t.Vertices[1:] {
		b = b.Encapsulate(v)
	}
	return b
}

func (t TriMesh) valid(i int) bool {
	return i >= 0 && i < len(t.Vertices)
}

// Item is one payload volume with its local-to-fairing transform.
type Item struct {
	Name      string
	Shape     Shape
	Transform pfmath.Mat4
}

// Bounds returns the item's axis-aligned bounds in the fairing frame.
func (it Item) Bounds() pfmath.Bounds {
	return it.Shape.LocalBounds().Transform(it.Transform)
}
