// Package validate evaluates the fixed checklist of geometric invariants a
// derived layout must satisfy: clearances, retention geometry and gear mesh
// consistency.
//
// A failed check is data, not an error. Check always evaluates the full
// list and reports every violation in one pass, with the numeric margin per
// check so near-failures can be ranked.
package validate

import (
	"fmt"
	"math"

	"gibtuner-go-migration/pkg/layout"
	"gibtuner-go-migration/pkg/params"
)

const (
	// CenterDistanceEpsilon bounds the allowed difference between the
	// configured center distance and the one computed from pitch diameters.
	CenterDistanceEpsilon = 0.01

	// MatchEpsilon bounds module and pressure-angle agreement between the
	// worm and wheel records.
	MatchEpsilon = 1e-3
)

// Check is the result of one named validation check. Margin is the slack
// that made it pass: hole minus shaft for fits, retainer minus hole for
// retention, epsilon minus deviation for equality checks. For a strict
// check a margin of exactly zero fails (contact is not a running fit); for
// a non-strict check zero passes.
type Check struct {
	Name   string
	Passed bool
	Strict bool
	Margin float64
	Detail string
}

// Report is the outcome of the full checklist.
type Report struct {
	Passed bool
	Checks []Check
}

// Failed returns the subset of checks that did not pass.
func (r Report) Failed() []Check {
	var out []Check
	for _, c := range r.Checks {
		if !c.Passed {
			out = append(out, c)
		}
	}
	return out
}

func strictCheck(name string, margin float64, detail string) Check {
	return Check{Name: name, Passed: margin > 0, Strict: true, Margin: margin, Detail: detail}
}

func looseCheck(name string, margin float64, detail string) Check {
	return Check{Name: name, Passed: margin >= 0, Strict: false, Margin: margin, Detail: detail}
}

// Run evaluates every check against the model and its derived layout. It
// never returns an error; malformed geometry surfaces as failed checks.
func Run(m params.Model, l layout.Layout) Report {
	s := m.Scale
	g := m.Gear

	wormTip := g.Worm.TipDiameter * s
	wheelTip := g.Wheel.TipDiameter * s

	checks := []Check{
		// The worm lives inside the box cavity; its tip circle must clear
		// the opposite wall.
		strictCheck("worm-fits-cavity",
			l.BoxInner-wormTip,
			fmt.Sprintf("%.2fmm worm in %.2fmm cavity", wormTip, l.BoxInner)),

		// Insertion paths.
		strictCheck("worm-through-entry-hole",
			l.WormEntryHole-wormTip,
			fmt.Sprintf("%.2fmm worm through %.2fmm hole", wormTip, l.WormEntryHole)),
		strictCheck("wheel-through-inlet",
			l.WheelInletHole-wheelTip,
			fmt.Sprintf("%.2fmm wheel through %.2fmm hole", wheelTip, l.WheelInletHole)),

		// Running fits: shaft turning in a reamed hole.
		strictCheck("peg-shaft-in-bearing",
			l.PegBearingHole-m.PegHead.ShaftDiameter*s,
			fmt.Sprintf("%.2fmm shaft in %.2fmm hole", m.PegHead.ShaftDiameter*s, l.PegBearingHole)),
		strictCheck("post-shaft-in-bearing",
			l.PostBearingHole-m.StringPost.BearingDiameter*s,
			fmt.Sprintf("%.2fmm shaft in %.2fmm hole", m.StringPost.BearingDiameter*s, l.PostBearingHole)),

		// The peg shoulder passes inside the entry hole; it is the cap
		// outside the frame that stops push-in.
		strictCheck("peg-shoulder-clears-entry",
			l.WormEntryHole-m.PegHead.ShoulderDiameter*s,
			fmt.Sprintf("%.2fmm shoulder in %.2fmm hole", m.PegHead.ShoulderDiameter*s, l.WormEntryHole)),

		// Retention, push-in and pull-out evaluated independently.
		strictCheck("peg-cap-retains",
			m.PegHead.CapDiameter*s-l.WormEntryHole,
			fmt.Sprintf("%.2fmm cap against %.2fmm hole", m.PegHead.CapDiameter*s, l.WormEntryHole)),
		strictCheck("washer-retains-peg",
			m.PegHead.WasherOD*s-l.PegBearingHole,
			fmt.Sprintf("%.2fmm washer against %.2fmm hole", m.PegHead.WasherOD*s, l.PegBearingHole)),
		strictCheck("post-cap-retains",
			m.StringPost.CapDiameter*s-l.PostBearingHole,
			fmt.Sprintf("%.2fmm cap against %.2fmm hole", m.StringPost.CapDiameter*s, l.PostBearingHole)),
		strictCheck("washer-retains-wheel",
			m.StringPost.WasherOD*s-g.Wheel.Bore.Diameter*s,
			fmt.Sprintf("%.2fmm washer against %.2fmm bore", m.StringPost.WasherOD*s, g.Wheel.Bore.Diameter*s)),

		// The retention screw's tap bore must fit between the DD flats.
		strictCheck("tap-bore-through-dd",
			l.DD.AcrossFlats-m.StringPost.TapBore*s,
			fmt.Sprintf("%.2fmm tap bore across %.2fmm flats", m.StringPost.TapBore*s, l.DD.AcrossFlats)),
	}

	// Gear consistency checks compare nominal records; agreement does not
	// depend on scale.
	computedCD := (g.Worm.PitchDiameter + g.Wheel.PitchDiameter) / 2
	checks = append(checks,
		looseCheck("center-distance-consistent",
			CenterDistanceEpsilon-math.Abs(g.CenterDistance-computedCD),
			fmt.Sprintf("configured %.3fmm, computed %.3fmm", g.CenterDistance, computedCD)),
		looseCheck("gear-module-match",
			MatchEpsilon-math.Abs(g.Worm.Module-g.Wheel.Module),
			fmt.Sprintf("worm %.3fmm, wheel %.3fmm", g.Worm.Module, g.Wheel.Module)),
		looseCheck("pressure-angle-match",
			MatchEpsilon-math.Abs(g.Worm.PressureAngleDeg-g.Wheel.PressureAngleDeg),
			fmt.Sprintf("worm %.2f deg, wheel %.2f deg", g.Worm.PressureAngleDeg, g.Wheel.PressureAngleDeg)),
	)

	passed := true
	for _, c := range checks {
		if !c.Passed {
			passed = false
		}
	}
	return Report{Passed: passed, Checks: checks}
}
