// Package payload loads payload scene documents: the objects a fairing must
// enclose and the candidates tested for shielding.
package payload

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/procfairings/pkg/fairing"
	pfmath "github.com/Faultbox/procfairings/pkg/math"
	"github.com/Faultbox/procfairings/pkg/profile"
	"github.com/Faultbox/procfairings/pkg/shielding"
)

// ErrNoShape is returned for an item with neither a box nor a mesh, or both.
var ErrNoShape = errors.New("payload: item needs exactly one of box or mesh")

// Vector is an [x, y, z] triple.
type Vector [3]float32

// Vec3 converts v.
func (v Vector) Vec3() pfmath.Vec3 {
	return pfmath.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

// Placement positions an object in the fairing frame. Rotation is Euler
// angles in degrees; a missing scale means 1.
type Placement struct {
	Position Vector  `yaml:"position" json:"position"`
	Rotation Vector  `yaml:"rotation" json:"rotation"`
	Scale    *Vector `yaml:"scale,omitempty" json:"scale,omitempty"`
}

// Matrix returns the object-to-fairing transform.
func (p Placement) Matrix() pfmath.Mat4 {
	scale := pfmath.Vec3{X: 1, Y: 1, Z: 1}
	if p.Scale != nil {
		scale = p.Scale.Vec3()
	}
	rot := pfmath.QuatFromEuler(p.Rotation[0], p.Rotation[1], p.Rotation[2])
	return pfmath.TRS(p.Position.Vec3(), rot, scale)
}

// Box is an axis-aligned box in object space.
type Box struct {
	Center Vector `yaml:"center" json:"center"`
	Size   Vector `yaml:"size" json:"size"`
}

// Bounds converts b.
func (b Box) Bounds() pfmath.Bounds {
	return pfmath.BoundsFromCenter(b.Center.Vec3(), b.Size.Vec3())
}

// Mesh is an indexed triangle mesh in object space.
type Mesh struct {
	Vertices []Vector `yaml:"vertices" json:"vertices"`
	Indices  []int    `yaml:"indices" json:"indices"`
}

// Item is one payload object.
type Item struct {
	Name      string `yaml:"name" json:"name"`
	Box       *Box   `yaml:"box,omitempty" json:"box,omitempty"`
	Mesh      *Mesh  `yaml:"mesh,omitempty" json:"mesh,omitempty"`
	Placement `yaml:",inline"`
}

// ProfileItem converts the item for the profile scanner.
func (it Item) ProfileItem() (profile.Item, error) {
	var sh profile.Shape
	switch {
	case it.Box != nil && it.Mesh == nil:
		sh = profile.Box{Bounds: it.Box.Bounds()}
	case it.Mesh != nil && it.Box == nil:
		tm := profile.TriMesh{
			Vertices: make([]pfmath.Vec3, len(it.Mesh.Vertices)),
			Indices:  it.Mesh.Indices,
		}
		for i, v := range it.Mesh.Vertices {
			tm.Vertices[i] = v.Vec3()
		}
		sh = tm
	default:
		return profile.Item{}, fmt.Errorf("%w: %q", ErrNoShape, it.Name)
	}
	return profile.Item{Name: it.Name, Shape: sh, Transform: it.Matrix()}, nil
}

// Candidate is an object tested for shielding.
type Candidate struct {
	ID           string `yaml:"id" json:"id"`
	Box          Box    `yaml:"box" json:"box"`
	Self         bool   `yaml:"self,omitempty" json:"self,omitempty"`
	Side         bool   `yaml:"side,omitempty" json:"side,omitempty"`
	SameAssembly bool   `yaml:"same_assembly,omitempty" json:"same_assembly,omitempty"`
	Placement    `yaml:",inline"`
}

// Document is a payload scene file.
type Document struct {
	TopOffset  float32            `yaml:"top_offset" json:"top_offset" jsonschema:"description=Height of the payload attachment point"`
	Inline     *fairing.InlineTop `yaml:"inline,omitempty" json:"inline,omitempty"`
	Items      []Item             `yaml:"items" json:"items"`
	Candidates []Candidate        `yaml:"candidates,omitempty" json:"candidates,omitempty"`
}

// Parse decodes a YAML document.
func Parse(data []byte) (*Document, error) {
	var d Document
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parsing payload: %w", err)
	}
	return &d, nil
}

// Load reads and decodes a YAML document.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading payload: %w", err)
	}
	return Parse(data)
}

// ProfileItems converts every item. Bad items are skipped and reported
// together.
func (d *Document) ProfileItems() ([]profile.Item, error) {
	items := make([]profile.Item, 0, len(d.Items))
	var errs error
	for i, it := range d.Items {
		pi, err := it.ProfileItem()
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("item %d: %w", i, err))
			continue
		}
		items = append(items, pi)
	}
	return items, errs
}

// ShieldingCandidates returns the listed candidates. Without any, every item
// becomes a candidate with its own bounds; items ride inside the fairing, so
// they count as the same assembly and may close an inline top.
func (d *Document) ShieldingCandidates() []shielding.Candidate {
	if len(d.Candidates) > 0 {
		out := make([]shielding.Candidate, len(d.Candidates))
		for i, c := range d.Candidates {
			out[i] = shielding.Candidate{
				ID:           c.ID,
				Bounds:       c.Box.Bounds(),
				Transform:    c.Matrix(),
				Self:         c.Self,
				Side:         c.Side,
				SameAssembly: c.SameAssembly,
			}
		}
		return out
	}

	var out []shielding.Candidate
	for _, it := range d.Items {
		pi, err := it.ProfileItem()
		if err != nil {
			continue
		}
		out = append(out, shielding.Candidate{
			ID:           it.Name,
			Bounds:       pi.Shape.LocalBounds(),
			Transform:    pi.Transform,
			SameAssembly: true,
		})
	}
	return out
}

// Apply installs the payload into a.
func (d *Document) Apply(a *fairing.Assembly) error {
	items, err := d.ProfileItems()
	a.Payload = items
	a.TopOffset = d.TopOffset
	a.Inline = nil
	if d.Inline != nil {
		top := *d.Inline
		a.Inline = &top
	}
	return err
}
