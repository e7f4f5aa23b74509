// Package fairing ties the geometry packages together for one fairing base:
// scan the payload, fit the envelope, build the silhouette, rebuild the side
// panels that changed and derive the shielding volume.
package fairing

import (
	"fmt"

	"github.com/samber/lo"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/procfairings/internal/logger"
	"github.com/Faultbox/procfairings/pkg/envelope"
	"github.com/Faultbox/procfairings/pkg/profile"
	"github.com/Faultbox/procfairings/pkg/shape"
	"github.com/Faultbox/procfairings/pkg/shell"
	"github.com/Faultbox/procfairings/pkg/shielding"
)

// Assembly is a base with its side panels and the payload above it.
type Assembly struct {
	Base         Base
	Side         Side
	NumSideParts int

	// TopOffset is the height of the payload attachment point above the base.
	TopOffset float32

	// Adapter, when set, makes the fairing inline and takes precedence
	// over Inline.
	Adapter *Adapter
	Inline  *InlineTop

	Payload []profile.Item

	panels []shell.Cache
}

// Result is the outcome of one recalculation.
type Result struct {
	Profile   profile.Profile
	Envelope  envelope.Envelope
	Curve     shape.Curve
	Panels    []*shell.Mesh
	Shielding shielding.Volume

	// Rebuilt counts the panels whose mesh changed.
	Rebuilt   int
	TotalMass float32
	TotalCost float32
}

// NumSegs returns the angular segment count of one panel.
func (a *Assembly) NumSegs() int {
	return max(a.Base.CircleSegments/a.numSideParts(), 2)
}

func (a *Assembly) numSideParts() int {
	return max(a.NumSideParts, 1)
}

func (a *Assembly) top() (InlineTop, bool) {
	switch {
	case a.Adapter != nil:
		return a.Adapter.Top(), true
	case a.Inline != nil:
		return *a.Inline, true
	}
	return InlineTop{}, false
}

// Fit scans the payload and fits the envelope, applying the manual shape or
// writing the fit back into it depending on Base.AutoShape.
func (a *Assembly) Fit() (profile.Profile, envelope.Envelope) {
	log := logger.Named("fairing")

	sc := profile.NewScanner(a.Base.VerticalStep, a.Base.ExtraRadius, a.TopOffset)
	sc.AddAll(a.Payload)
	prof := sc.Profile()

	top, inline := a.top()
	env := envelope.Fit(prof, envelope.Params{
		BaseRad:          a.Base.Radius(),
		MinBaseConeAngle: a.Side.MinBaseConeAngle,
		NoseHeightRatio:  a.Side.Cones.NoseHeightRatio,
		Inline:           inline,
		TopY:             top.Y,
		TopRad:           top.Radius,
	})

	if a.Base.AutoShape {
		a.Base.Manual = env.Manual()
	} else {
		if err := a.Base.Manual.ValidateFor(a.Base.Radius()); err != nil {
			for _, e := range multierr.Errors(err) {
				log.Warn("manual shape", zap.Error(e))
			}
		}
		env = env.WithManual(a.Base.Manual)
	}

	log.Debug("envelope fitted",
		zap.Int("buckets", prof.Len()),
		zap.Float32("max_rad", env.MaxRad),
		zap.Float32("cyl_start", env.CylStart),
		zap.Float32("cyl_end", env.CylEnd),
		zap.Bool("inline", env.Inline))
	return prof, env
}

// PanelParams returns the mesh params of panel i for env.
func (a *Assembly) PanelParams(env envelope.Envelope, i int) shell.Params {
	n := a.numSideParts()
	return shell.Params{
		Envelope:               env,
		Cones:                  a.Side.Cones,
		Mapping:                a.Side.Mapping,
		NumSegs:                a.NumSegs(),
		NumSideParts:           n,
		SideThickness:          a.Base.SideThickness,
		Density:                a.Side.Density,
		CostPerTonne:           a.Side.CostPerTonne,
		SpecificBreakingForce:  a.Side.SpecificBreakingForce,
		SpecificBreakingTorque: a.Side.SpecificBreakingTorque,
		Angle:                  360 * float32(i) / float32(n),
	}
}

// Recalculate runs the whole pipeline. Panels whose params did not change
// keep their mesh. A panel that fails to build keeps its previous mesh; the
// failures are returned together with the otherwise complete result.
func (a *Assembly) Recalculate() (*Result, error) {
	log := logger.Named("fairing")

	prof, env := a.Fit()
	curve := shape.Build(env, a.Side.Cones, a.Side.Mapping)

	n := a.numSideParts()
	if len(a.panels) != n {
		log.Debug("panel count changed", zap.Int("from", len(a.panels)), zap.Int("to", n))
		a.panels = make([]shell.Cache, n)
	}

	res := &Result{Profile: prof, Envelope: env, Curve: curve}
	var errs error
	for i := range a.panels {
		mesh, rebuilt, err := a.panels[i].Rebuild(a.PanelParams(env, i))
		if err != nil {
			log.Error("panel rebuild failed", zap.Int("panel", i), zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("panel %d: %w", i, err))
		}
		if rebuilt {
			res.Rebuilt++
		}
		if mesh != nil {
			res.Panels = append(res.Panels, mesh)
		}
	}

	res.TotalMass = lo.SumBy(res.Panels, func(m *shell.Mesh) float32 { return m.Physics.Mass })
	res.TotalCost = lo.SumBy(res.Panels, func(m *shell.Mesh) float32 { return m.Physics.Cost })
	if a.Adapter != nil {
		res.TotalMass += a.Adapter.Mass()
		res.TotalCost += a.Adapter.Cost()
	}

	res.Shielding = shielding.NewVolume(curve, a.Base.SideThickness, env.Inline, env.TopRad)

	log.Debug("fairing recalculated",
		zap.Int("panels", len(res.Panels)),
		zap.Int("rebuilt", res.Rebuilt),
		zap.Float32("mass", res.TotalMass))
	return res, errs
}

// Invalidate drops every cached panel mesh.
func (a *Assembly) Invalidate() {
	for i := range a.panels {
		a.panels[i].Reset()
	}
}
