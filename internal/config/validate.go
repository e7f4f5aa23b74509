package config

import (
	"fmt"

	"go.uber.org/multierr"
)

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var err error
	add := func(format string, args ...any) {
		err = multierr.Append(err, fmt.Errorf(format, args...))
	}

	f := c.Fairing
	if f.VerticalStep <= 0 {
		add("fairing.vertical_step must be positive, got %g", f.VerticalStep)
	}
	if f.BaseSize <= 0 {
		add("fairing.base_size must be positive, got %g", f.BaseSize)
	}
	if f.ExtraRadius < 0 {
		add("fairing.extra_radius must not be negative, got %g", f.ExtraRadius)
	}
	if f.CircleSegments < 2 {
		add("fairing.circle_segments must be at least 2, got %d", f.CircleSegments)
	}
	if f.SideThickness < 0 {
		add("fairing.side_thickness must not be negative, got %g", f.SideThickness)
	}
	if f.NumSideParts < 1 {
		add("fairing.num_side_parts must be at least 1, got %d", f.NumSideParts)
	}
	if !f.AutoShape {
		if merr := f.Manual.ValidateFor(f.Radius()); merr != nil {
			err = multierr.Append(err, fmt.Errorf("fairing.manual: %w", merr))
		}
	}

	s := c.Side
	if s.MinBaseConeAngle < 0 || s.MinBaseConeAngle >= 90 {
		add("side.min_base_cone_angle must be in [0, 90), got %g", s.MinBaseConeAngle)
	}
	if s.Cones.NoseHeightRatio <= 0 {
		add("side.cones.nose_height_ratio must be positive, got %g", s.Cones.NoseHeightRatio)
	}
	if s.Cones.BaseSegments < 1 || s.Cones.NoseSegments < 1 {
		add("side.cones segment counts must be at least 1")
	}
	if s.Mapping.MappingScale.X == 0 || s.Mapping.MappingScale.Y == 0 {
		add("side.mapping.mapping_scale must be non-zero")
	}
	if s.Density < 0 {
		add("side.density must not be negative, got %g", s.Density)
	}

	if a := c.Adapter; a.Enabled {
		if a.BaseSize <= 0 || a.TopSize <= 0 {
			add("adapter sizes must be positive, got %g and %g", a.BaseSize, a.TopSize)
		}
		if a.Height < a.MinHeight() {
			add("adapter.height %g is below the minimum %g", a.Height, a.MinHeight())
		}
		if a.ExtraHeight < 0 {
			add("adapter.extra_height must not be negative, got %g", a.ExtraHeight)
		}
	}

	switch c.Export.Format {
	case "obj", "stl", "json":
	default:
		add("export.format must be obj, stl or json, got %q", c.Export.Format)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		add("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}

	return err
}
