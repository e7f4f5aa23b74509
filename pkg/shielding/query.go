package shielding

import pfmath "github.com/Faultbox/procfairings/pkg/math"

// Candidate is a nearby object that may be shielded.
type Candidate struct {
	ID        string
	Bounds    pfmath.Bounds // object space
	Transform pfmath.Mat4   // object to fairing frame; zero means identity

	Self         bool // the fairing base itself, always shielded
	Side         bool // a side panel of this fairing, never shielded
	SameAssembly bool // may close the top of an inline fairing
}

func (c Candidate) toFairing() pfmath.Mat4 {
	if c.Transform == (pfmath.Mat4{}) {
		return pfmath.Identity()
	}
	return c.Transform
}

// FairingBounds returns the candidate's bounds in the fairing frame.
func (c Candidate) FairingBounds() pfmath.Bounds {
	return c.Bounds.Transform(c.toFairing())
}

// Centroid returns the candidate's bounds centre in the fairing frame.
func (c Candidate) Centroid() pfmath.Vec3 {
	return c.toFairing().TransformVec3(c.Bounds.Center())
}

// Result lists the shielded candidates.
type Result struct {
	Shielded []string
	Inline   bool
	// TopClosed is set when some candidate covers the inline top opening.
	TopClosed bool
	// Disabled is set when an inline fairing is open at the top; nothing is
	// shielded then.
	Disabled bool
}

// Query tests every candidate against the volume.
func (v Volume) Query(cands []Candidate) Result {
	res := Result{Inline: v.Inline}
	var top pfmath.Bounds
	if v.Inline {
		top = v.TopBounds()
	}

	for _, c := range cands {
		if !v.InLookup(c.FairingBounds()) {
			continue
		}
		if c.Self {
			res.Shielded = append(res.Shielded, c.ID)
			continue
		}
		if c.Side {
			continue
		}

		if v.Inline && !res.TopClosed && c.SameAssembly {
			cover := c.Bounds.Expand(v.Thickness * 4).Transform(c.toFairing())
			if cover.Contains(top.Min) && cover.Contains(top.Max) {
				res.TopClosed = true
			}
		}

		if v.ContainsPoint(c.Centroid()) {
			res.Shielded = append(res.Shielded, c.ID)
		}
	}

	if v.Inline && !res.TopClosed {
		res.Shielded = nil
		res.Disabled = true
	}
	return res
}
