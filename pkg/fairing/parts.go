package fairing

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/procfairings/pkg/envelope"
	pfmath "github.com/Faultbox/procfairings/pkg/math"
	"github.com/Faultbox/procfairings/pkg/shape"
)

// Base is the fairing base the panels attach to.
type Base struct {
	VerticalStep   float32 `yaml:"vertical_step" json:"vertical_step" jsonschema:"description=Profile bucket height"`
	BaseSize       float32 `yaml:"base_size" json:"base_size" jsonschema:"description=Base diameter"`
	ExtraRadius    float32 `yaml:"extra_radius" json:"extra_radius" jsonschema:"description=Clearance added around the payload"`
	CircleSegments int     `yaml:"circle_segments" json:"circle_segments" jsonschema:"description=Angular segments of the whole fairing"`
	SideThickness  float32 `yaml:"side_thickness" json:"side_thickness"`

	// AutoShape fits the envelope to the payload; otherwise Manual is used.
	AutoShape bool            `yaml:"auto_shape" json:"auto_shape"`
	Manual    envelope.Manual `yaml:"manual" json:"manual"`
}

// DefaultBase returns the stock 1.25m base.
func DefaultBase() Base {
	return Base{
		VerticalStep:   0.1,
		BaseSize:       1.25,
		CircleSegments: 24,
		SideThickness:  0.05,
		AutoShape:      true,
		Manual:         envelope.Manual{MaxSize: 0.625, CylStart: 0, CylEnd: 1},
	}
}

// Radius returns half the base size.
func (b Base) Radius() float32 {
	return b.BaseSize * 0.5
}

// Side holds the shaping and material settings shared by all panels.
type Side struct {
	MinBaseConeAngle float32       `yaml:"min_base_cone_angle" json:"min_base_cone_angle" jsonschema:"description=Minimum base cone angle in degrees"`
	Cones            shape.Cones   `yaml:"cones" json:"cones"`
	Mapping          shape.Mapping `yaml:"mapping" json:"mapping"`

	Density                float32 `yaml:"density" json:"density"`
	CostPerTonne           float32 `yaml:"cost_per_tonne" json:"cost_per_tonne"`
	SpecificBreakingForce  float32 `yaml:"specific_breaking_force" json:"specific_breaking_force"`
	SpecificBreakingTorque float32 `yaml:"specific_breaking_torque" json:"specific_breaking_torque"`
}

// DefaultSide returns the stock panel settings.
func DefaultSide() Side {
	return Side{
		MinBaseConeAngle: 20,
		Cones: shape.Cones{
			BaseShape:       pfmath.Vec4{X: 0.5, Y: 0, Z: 1, W: 0.5},
			NoseShape:       pfmath.Vec4{X: 0.5, Y: 0, Z: 1, W: 0.5},
			BaseSegments:    5,
			NoseSegments:    7,
			NoseHeightRatio: 2,
		},
		Mapping:                shape.DefaultMapping(),
		Density:                0.2,
		CostPerTonne:           2000,
		SpecificBreakingForce:  2000,
		SpecificBreakingTorque: 2000,
	}
}

// InlineTop is where an inline fairing closes: a ring of Radius at height Y.
type InlineTop struct {
	Y      float32 `yaml:"y" json:"y"`
	Radius float32 `yaml:"radius" json:"radius"`
}

// ReversedBaseTop returns the top formed by a second base mounted upside
// down at height y above this one.
func ReversedBaseTop(top Base, y float32) InlineTop {
	return InlineTop{Y: y, Radius: top.Radius()}
}

// Adapter is a fairing base with a top node: it always makes the fairing
// inline and has its own mass.
type Adapter struct {
	BaseSize    float32 `yaml:"base_size" json:"base_size"`
	TopSize     float32 `yaml:"top_size" json:"top_size"`
	Height      float32 `yaml:"height" json:"height"`
	ExtraHeight float32 `yaml:"extra_height" json:"extra_height"`

	// SideThickness is relative to the larger diameter.
	SideThickness float32 `yaml:"side_thickness" json:"side_thickness"`
	// SpecificMass holds cubic polynomial coefficients in the scale.
	SpecificMass           pfmath.Vec4 `yaml:"specific_mass" json:"specific_mass"`
	SpecificBreakingForce  float32     `yaml:"specific_breaking_force" json:"specific_breaking_force"`
	SpecificBreakingTorque float32     `yaml:"specific_breaking_torque" json:"specific_breaking_torque"`
	CostPerTonne           float32     `yaml:"cost_per_tonne" json:"cost_per_tonne"`
}

// DefaultAdapter returns the stock 1.25m adapter.
func DefaultAdapter() Adapter {
	return Adapter{
		BaseSize:               1.25,
		TopSize:                1.25,
		Height:                 1,
		SideThickness:          0.05 / 1.25,
		SpecificMass:           pfmath.Vec4{X: 0.005, Y: 0.011, Z: 0.009, W: 0},
		SpecificBreakingForce:  6050,
		SpecificBreakingTorque: 6050,
		CostPerTonne:           2000,
	}
}

// Thickness returns the wall thickness in meters.
func (a Adapter) Thickness() float32 {
	return math32.Min(a.SideThickness*math32.Max(a.BaseSize, a.TopSize), math32.Min(a.BaseSize, a.TopSize)*0.25)
}

// TopRadius returns the inner radius of the top opening.
func (a Adapter) TopRadius() float32 {
	return a.TopSize*0.5 - a.Thickness()
}

// MinHeight is the lowest height the adapter can be set to.
func (a Adapter) MinHeight() float32 {
	return a.BaseSize * 0.2
}

// Top returns the inline top the adapter imposes.
func (a Adapter) Top() InlineTop {
	return InlineTop{Y: a.Height + a.ExtraHeight, Radius: a.TopRadius()}
}

func (a Adapter) innerRadius() float32 {
	return a.BaseSize*0.5 - a.Thickness()
}

// Scale is the model scale factor, the inner base diameter.
func (a Adapter) Scale() float32 {
	return a.innerRadius() * 2
}

// Mass returns the adapter mass in tonnes.
func (a Adapter) Mass() float32 {
	s, m := a.Scale(), a.SpecificMass
	return ((m.X*s+m.Y)*s+m.Z)*s + m.W
}

// Cost returns the adapter cost.
func (a Adapter) Cost() float32 {
	return a.Mass() * a.CostPerTonne
}

// BreakingForce returns the joint breaking force.
func (a Adapter) BreakingForce() float32 {
	br := a.innerRadius()
	return a.SpecificBreakingForce * br * br
}

// BreakingTorque returns the joint breaking torque.
func (a Adapter) BreakingTorque() float32 {
	br := a.innerRadius()
	return a.SpecificBreakingTorque * br * br
}
