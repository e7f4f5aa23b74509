package config

import (
	"flag"
	"fmt"

	"github.com/Faultbox/procfairings/pkg/envelope"
)

// Flags are the command-line overrides shared by the fairing commands.
type Flags struct {
	Config      string
	Debug       bool
	Sides       int
	Segments    int
	ExtraRadius float64
	Manual      string
}

// RegisterFlags adds the shared flags to fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{ExtraRadius: -1}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.IntVar(&f.Sides, "sides", 0, "Number of side panels")
	fs.IntVar(&f.Segments, "segments", 0, "Angular segments of the whole fairing")
	fs.Float64Var(&f.ExtraRadius, "extra-radius", -1, "Clearance added around the payload")
	fs.StringVar(&f.Manual, "manual", "", "Manual shape as max_size,cyl_start,cyl_end (disables auto-shape)")
	return f
}

// apply applies flag overrides to the config.
func (f *Flags) apply(cfg *Config) error {
	if f == nil {
		return nil
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Sides > 0 {
		cfg.Fairing.NumSideParts = f.Sides
	}
	if f.Segments > 0 {
		cfg.Fairing.CircleSegments = f.Segments
	}
	if f.ExtraRadius >= 0 {
		cfg.Fairing.ExtraRadius = float32(f.ExtraRadius)
	}
	if f.Manual != "" {
		var m envelope.Manual
		if _, err := fmt.Sscanf(f.Manual, "%g,%g,%g", &m.MaxSize, &m.CylStart, &m.CylEnd); err != nil {
			return fmt.Errorf("parsing -manual %q: %w", f.Manual, err)
		}
		cfg.Fairing.AutoShape = false
		cfg.Fairing.Manual = m
	}
	return nil
}
