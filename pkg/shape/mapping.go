package shape

import pfmath "github.com/Faultbox/procfairings/pkg/math"

// Mapping describes where the fairing panels sit in the texture, in texels
// against MappingScale.
//
// HorMapping holds the outer U range in X..Y and the inner U range in Z..W.
// VertMapping holds the base cone V range in X..Y and the nose V range in Z..W.
// StripMapping is the U range used for the panel edges and rings.
type Mapping struct {
	MappingScale pfmath.Vec2 `yaml:"mapping_scale" json:"mapping_scale"`
	StripMapping pfmath.Vec2 `yaml:"strip_mapping" json:"strip_mapping"`
	HorMapping   pfmath.Vec4 `yaml:"hor_mapping" json:"hor_mapping"`
	VertMapping  pfmath.Vec4 `yaml:"vert_mapping" json:"vert_mapping"`
}

// DefaultMapping returns the reference texture layout.
func DefaultMapping() Mapping {
	return Mapping{
		MappingScale: pfmath.Vec2{X: 1024, Y: 1024},
		StripMapping: pfmath.Vec2{X: 992, Y: 1024},
		HorMapping:   pfmath.Vec4{X: 0, Y: 480, Z: 512, W: 992},
		VertMapping:  pfmath.Vec4{X: 0, Y: 160, Z: 704, W: 1024},
	}
}

// VRange returns the normalized V coordinates of the base and nose bands.
func (m Mapping) VRange() (baseV0, baseV1, noseV0, noseV1 float32) {
	s := m.MappingScale.Y
	return m.VertMapping.X / s, m.VertMapping.Y / s, m.VertMapping.Z / s, m.VertMapping.W / s
}
