// Package meshio writes side panel meshes to disk formats. Every writer
// places the panels around the fairing axis with their own transforms.
package meshio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	pfmath "github.com/Faultbox/procfairings/pkg/math"
	"github.com/Faultbox/procfairings/pkg/shell"
)

// Record is one panel as flat GPU-style buffers in the fairing frame.
type Record struct {
	Name     string    `json:"name"`
	Angle    float32   `json:"angle"`
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`
	Tangents []float32 `json:"tangents"` // xyzw
	UVs      []float32 `json:"uvs"`
	Indices  []uint32  `json:"indices"`
	Mass     float32   `json:"mass"`
	Cost     float32   `json:"cost"`
}

// VertexCount returns the number of vertices.
func (r Record) VertexCount() int {
	return len(r.Vertices) / 3
}

// Flatten converts a panel into a Record.
func Flatten(name string, m *shell.Mesh) Record {
	xf := m.Transform()
	r := Record{
		Name:     name,
		Angle:    m.Angle,
		Vertices: make([]float32, 0, len(m.Vertices)*3),
		Normals:  make([]float32, 0, len(m.Normals)*3),
		Tangents: make([]float32, 0, len(m.Tangents)*4),
		UVs:      make([]float32, 0, len(m.UVs)*2),
		Indices:  append([]uint32(nil), m.Indices...),
		Mass:     m.Physics.Mass,
		Cost:     m.Physics.Cost,
	}
	for _, v := range m.Vertices {
		p := xf.TransformVec3(v)
		r.Vertices = append(r.Vertices, p.X, p.Y, p.Z)
	}
	for _, n := range m.Normals {
		d := xf.TransformDirection(n)
		r.Normals = append(r.Normals, d.X, d.Y, d.Z)
	}
	for _, t := range m.Tangents {
		d := xf.TransformDirection(t.XYZ())
		r.Tangents = append(r.Tangents, d.X, d.Y, d.Z, t.W)
	}
	for _, uv := range m.UVs {
		r.UVs = append(r.UVs, uv.X, uv.Y)
	}
	return r
}

func panelName(i int) string {
	return fmt.Sprintf("panel%d", i)
}

// WriteJSON writes all panels as a JSON array of Records.
func WriteJSON(w io.Writer, meshes ...*shell.Mesh) error {
	recs := make([]Record, len(meshes))
	for i, m := range meshes {
		recs[i] = Flatten(panelName(i), m)
	}
	enc := json.NewEncoder(w)
	if err := enc.Encode(recs); err != nil {
		return fmt.Errorf("encoding meshes: %w", err)
	}
	return nil
}

// WriteOBJ writes all panels as Wavefront OBJ, one object per panel.
func WriteOBJ(w io.Writer, meshes ...*shell.Mesh) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "# procedural fairing")

	base := 1
	for i, m := range meshes {
		xf := m.Transform()
		fmt.Fprintf(bw, "o %s\n", panelName(i))
		for _, v := range m.Vertices {
			p := xf.TransformVec3(v)
			fmt.Fprintf(bw, "v %g %g %g\n", p.X, p.Y, p.Z)
		}
		for _, uv := range m.UVs {
			fmt.Fprintf(bw, "vt %g %g\n", uv.X, uv.Y)
		}
		for _, n := range m.Normals {
			d := xf.TransformDirection(n)
			fmt.Fprintf(bw, "vn %g %g %g\n", d.X, d.Y, d.Z)
		}
		for t := 0; t+2 < len(m.Indices); t += 3 {
			a, b, c := int(m.Indices[t])+base, int(m.Indices[t+1])+base, int(m.Indices[t+2])+base
			fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
		}
		base += len(m.Vertices)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing obj: %w", err)
	}
	return nil
}

// Triangles returns every panel triangle in the fairing frame.
func Triangles(meshes ...*shell.Mesh) []*sdf.Triangle3 {
	var n int
	for _, m := range meshes {
		n += m.TriangleCount()
	}
	tris := make([]*sdf.Triangle3, 0, n)
	for _, m := range meshes {
		xf := m.Transform()
		for t := 0; t+2 < len(m.Indices); t += 3 {
			tris = append(tris, &sdf.Triangle3{
				toV3(xf.TransformVec3(m.Vertices[m.Indices[t]])),
				toV3(xf.TransformVec3(m.Vertices[m.Indices[t+1]])),
				toV3(xf.TransformVec3(m.Vertices[m.Indices[t+2]])),
			})
		}
	}
	return tris
}

func toV3(v pfmath.Vec3) v3.Vec {
	return v3.Vec{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
}

// SaveSTL writes all panels to a binary STL file.
func SaveSTL(path string, meshes ...*shell.Mesh) error {
	if err := render.SaveSTL(path, Triangles(meshes...)); err != nil {
		return fmt.Errorf("saving stl %s: %w", path, err)
	}
	return nil
}
