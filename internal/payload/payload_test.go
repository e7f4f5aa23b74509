package payload

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/Faultbox/procfairings/pkg/fairing"
	pfmath "github.com/Faultbox/procfairings/pkg/math"
	"github.com/Faultbox/procfairings/pkg/profile"
	"github.com/Faultbox/procfairings/pkg/shape"
	"github.com/Faultbox/procfairings/pkg/shielding"
)

const scene = `
top_offset: 0.2
items:
  - name: probe
    box: {center: [0, 1, 0], size: [1, 2, 1]}
    position: [0, 0.5, 0]
  - name: antenna
    mesh:
      vertices: [[0, 0, 0], [0.5, 0, 0], [0, 2, 0]]
      indices: [0, 1, 2]
    rotation: [0, 90, 0]
    scale: [2, 1, 1]
candidates:
  - id: base
    box: {center: [0, 0, 0], size: [1.25, 0.4, 1.25]}
    self: true
  - id: probe
    box: {center: [0, 1, 0], size: [1, 2, 1]}
    position: [0, 0.5, 0]
`

func TestParse(t *testing.T) {
	d, err := Parse([]byte(scene))
	require.NoError(t, err)

	assert.Equal(t, float32(0.2), d.TopOffset)
	assert.Nil(t, d.Inline)
	require.Len(t, d.Items, 2)
	require.NotNil(t, d.Items[0].Box)
	assert.Equal(t, Vector{1, 2, 1}, d.Items[0].Box.Size)
	require.NotNil(t, d.Items[1].Mesh)
	assert.Len(t, d.Items[1].Mesh.Vertices, 3)
	require.NotNil(t, d.Items[1].Scale)
	assert.Len(t, d.Candidates, 2)
	assert.True(t, d.Candidates[0].Self)
}

func TestPlacementMatrix(t *testing.T) {
	p := Placement{Position: Vector{1, 2, 3}}
	assert.Equal(t, pfmath.Translate(1, 2, 3), p.Matrix())

	p = Placement{Rotation: Vector{0, 90, 0}, Scale: &Vector{2, 1, 1}}
	v := p.Matrix().TransformVec3(pfmath.Vec3{X: 1})
	assert.InDelta(t, 0, v.X, 1e-5)
	assert.InDelta(t, -2, v.Z, 1e-5)
}

func TestProfileItems(t *testing.T) {
	d, err := Parse([]byte(scene))
	require.NoError(t, err)

	items, err := d.ProfileItems()
	require.NoError(t, err)
	require.Len(t, items, 2)

	box, ok := items[0].Shape.(profile.Box)
	require.True(t, ok)
	b := items[0].Bounds()
	assert.Equal(t, pfmath.Vec3{X: -0.5, Y: 0.5, Z: -0.5}, b.Min)
	assert.Equal(t, pfmath.Vec3{X: 0.5, Y: 2.5, Z: 0.5}, b.Max)
	assert.Equal(t, pfmath.Vec3{Y: 1}, box.Center())

	mesh, ok := items[1].Shape.(profile.TriMesh)
	require.True(t, ok)
	assert.Equal(t, []int{0, 1, 2}, mesh.Indices)
}

func TestProfileItemsReportsBadItems(t *testing.T) {
	d := &Document{Items: []Item{
		{Name: "empty"},
		{Name: "ok", Box: &Box{Size: Vector{1, 1, 1}}},
		{Name: "both", Box: &Box{}, Mesh: &Mesh{}},
	}}
	items, err := d.ProfileItems()
	require.Error(t, err)
	assert.Len(t, items, 1)
	errs := multierr.Errors(err)
	require.Len(t, errs, 2)
	for _, e := range errs {
		assert.True(t, errors.Is(e, ErrNoShape))
	}
}

func TestShieldingCandidates(t *testing.T) {
	d, err := Parse([]byte(scene))
	require.NoError(t, err)

	cands := d.ShieldingCandidates()
	require.Len(t, cands, 2)
	assert.True(t, cands[0].Self)
	assert.Equal(t, pfmath.Vec3{Y: 1.5}, cands[1].Centroid())

	d.Candidates = nil
	cands = d.ShieldingCandidates()
	require.Len(t, cands, 2)
	assert.Equal(t, "probe", cands[0].ID)
	assert.Equal(t, pfmath.Vec3{Y: 1.5}, cands[0].Centroid())
}

func TestItemCandidatesCloseInlineTop(t *testing.T) {
	d, err := Parse([]byte(`
items:
  - name: probe
    box: {center: [0, 2.5, 0], size: [0.5, 0.5, 0.5]}
  - name: lid
    box: {center: [0, 5.5, 0], size: [1.2, 1.2, 1.2]}
`))
	require.NoError(t, err)

	cands := d.ShieldingCandidates()
	require.Len(t, cands, 2)
	for _, c := range cands {
		assert.True(t, c.SameAssembly, c.ID)
	}

	v := shielding.NewVolume(shape.Curve{{R: 1, Y: 0}, {R: 1, Y: 5}}, 0.1, true, 0.5)
	res := v.Query(cands)
	assert.True(t, res.TopClosed)
	assert.False(t, res.Disabled)
	assert.Equal(t, []string{"probe"}, res.Shielded)
}

func TestApplyAndRecalculate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(scene+"inline: {y: 4, radius: 0.5}\n"), 0644))

	d, err := Load(path)
	require.NoError(t, err)

	a := &fairing.Assembly{Base: fairing.DefaultBase(), Side: fairing.DefaultSide(), NumSideParts: 2}
	require.NoError(t, d.Apply(a))
	assert.Len(t, a.Payload, 2)
	assert.Equal(t, float32(0.2), a.TopOffset)
	require.NotNil(t, a.Inline)
	assert.Equal(t, fairing.InlineTop{Y: 4, Radius: 0.5}, *a.Inline)

	res, err := a.Recalculate()
	require.NoError(t, err)
	assert.True(t, res.Envelope.Inline)
	assert.Equal(t, float32(0.2), res.Profile.Offset)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Parse([]byte("items: [1, 2"))
	assert.Error(t, err)

	_, err = Parse([]byte("items:\n  - box: {size: [1, 2]}\n"))
	assert.Error(t, err, "vectors need three components")
}
