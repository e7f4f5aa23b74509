package envelope

import (
	"fmt"

	"github.com/chewxy/math32"
	"go.uber.org/multierr"
)

// Manual holds the user-editable shape parameters. These are the only shape
// values that persist; in auto mode they mirror the last fit.
type Manual struct {
	MaxSize  float32 `yaml:"max_size" json:"max_size" jsonschema:"description=Cylinder diameter"`
	CylStart float32 `yaml:"cyl_start" json:"cyl_start" jsonschema:"description=Height where the cylinder starts"`
	CylEnd   float32 `yaml:"cyl_end" json:"cyl_end" jsonschema:"description=Height where the cylinder ends"`
}

// Manual returns the envelope's values in their persisted form.
func (e Envelope) Manual() Manual {
	return Manual{MaxSize: e.MaxRad * 2, CylStart: e.CylStart, CylEnd: e.CylEnd}
}

// WithManual replaces the fitted values with m. Values are taken verbatim;
// only CylStart > CylEnd is clamped. Use Manual.Validate to report problems.
func (e Envelope) WithManual(m Manual) Envelope {
	e.MaxRad = m.MaxSize * 0.5
	e.CylStart = m.CylStart
	e.CylEnd = m.CylEnd
	if e.CylStart > e.CylEnd {
		e.CylStart = e.CylEnd
	}
	return e
}

// Validate reports every suspicious value in m. The result is advisory:
// WithManual accepts invalid values and mesh generation still runs.
func (m Manual) Validate() error {
	var err error
	if math32.IsNaN(m.MaxSize) || math32.IsNaN(m.CylStart) || math32.IsNaN(m.CylEnd) {
		err = multierr.Append(err, fmt.Errorf("manual shape contains NaN"))
	}
	if m.MaxSize <= 0 {
		err = multierr.Append(err, fmt.Errorf("max size %g must be positive", m.MaxSize))
	}
	if m.CylStart < 0 {
		err = multierr.Append(err, fmt.Errorf("cylinder start %g is below the base", m.CylStart))
	}
	if m.CylStart > m.CylEnd {
		err = multierr.Append(err, fmt.Errorf("cylinder start %g is above cylinder end %g", m.CylStart, m.CylEnd))
	}
	return err
}

// ValidateFor adds the checks that depend on the base radius.
func (m Manual) ValidateFor(baseRad float32) error {
	err := m.Validate()
	if m.MaxSize*0.5 < baseRad {
		err = multierr.Append(err, fmt.Errorf("max size %g is narrower than the base (%g)", m.MaxSize, baseRad*2))
	}
	return err
}
