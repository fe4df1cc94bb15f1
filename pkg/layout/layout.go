// Package layout derives the complete dimensional model of an N-gang tuner
// frame from the primary parameters: every hole position and diameter, shaft
// section length, axial-play gap and axis offset downstream geometry
// construction needs.
//
// Derivation is a pure function over a validated params.Model. Scaling rule:
// every nominal dimension is multiplied by the build scale; additive fit gaps
// (tolerance offsets, axial play, slip clearances) are applied after scaling
// and are scale-invariant. A 2:1 print of a 0.1mm running fit still needs a
// 0.1mm running fit.
package layout

import (
	"gibtuner-go-migration/pkg/params"
)

// Station holds the per-housing axis positions along the frame.
type Station struct {
	// CenterY is the housing center position from the frame start.
	CenterY float64

	// PostAxisY and WormAxisY are offset symmetrically about the housing
	// center, separated by exactly the gear center distance. The post sits
	// toward the frame start, the worm toward the frame end, for both hands.
	PostAxisY float64
	WormAxisY float64
}

// DDCut is the derived double-D shaft geometry mating with the wheel bore.
type DDCut struct {
	Diameter    float64
	AcrossFlats float64
	Length      float64
}

// Layout is the complete derived dimensional record for one frame. All
// values are derived, never independently settable; recompute via Derive
// whenever any input changes.
type Layout struct {
	Hand  params.Hand
	Scale float64

	// Frame envelope
	TotalLength   float64
	BoxOuter      float64
	BoxInner      float64
	WallThickness float64

	// Longitudinal positions
	Stations       []Station
	MountingHoleYs []float64

	// Hole diameters
	PostBearingHole      float64
	WheelInletHole       float64
	WormEntryHole        float64
	PegBearingHole       float64
	MountingHoleDiameter float64

	// Lateral hole placement on the side faces. Signed X from the frame
	// centerline; the sign flips between hands.
	WormEntryX  float64
	PegBearingX float64

	// Wheel interface
	DD DDCut

	// Bearing sections. Each passes through a frame wall and protrudes by
	// exactly the configured axial play, so the frame floats inside the
	// shoulder-to-retainer sandwich instead of being clamped.
	PostBearingLength float64
	PegBearingLength  float64
	PostAxialPlay     float64
	PegAxialPlay      float64

	// Worm placement
	WormZ               float64
	WormCavityClearance float64
	CenterDistance      float64

	// Shaft totals
	PegShaftLength  float64
	PostTotalLength float64
}

// Derive expands a parameter model into its full derived layout. It is total
// for any model that passes Validate; the only failure mode is a
// configuration error for a malformed model. Left-hand layouts are produced
// by mirroring the right-hand derivation, never by separate derivation
// logic.
func Derive(m params.Model) (Layout, error) {
	if err := m.Validate(); err != nil {
		return Layout{}, err
	}

	l := deriveRight(m)
	if m.Hand == params.HandLeft {
		l = Mirror(l)
	}
	return l, nil
}

func deriveRight(m params.Model) Layout {
	s := m.Scale
	tol := m.Tolerance
	f := m.Frame
	g := m.Gear

	wall := f.WallThickness * s
	boxOuter := f.BoxOuter * s
	boxInner := f.BoxInner() * s
	housing := f.HousingLength * s
	end := f.EndLength * s
	pitch := f.Pitch * s

	// Symmetric layout: equal end margins regardless of housing count.
	totalLength := 2*end + housing + float64(f.NumHousings-1)*pitch
	firstCenter := end + housing/2

	centerDistance := g.CenterDistance * s

	stations := make([]Station, f.NumHousings)
	for i := range stations {
		cy := firstCenter + float64(i)*pitch
		stations[i] = Station{
			CenterY:   cy,
			PostAxisY: cy - centerDistance/2,
			WormAxisY: cy + centerDistance/2,
		}
	}

	// One mounting hole centered in each gap: before the first housing,
	// between each pair, after the last.
	mountingYs := make([]float64, 0, f.NumHousings+1)
	mountingYs = append(mountingYs, end/2)
	for i := 0; i < len(stations)-1; i++ {
		gapStart := stations[i].CenterY + housing/2
		gapEnd := stations[i+1].CenterY - housing/2
		mountingYs = append(mountingYs, (gapStart+gapEnd)/2)
	}
	mountingYs = append(mountingYs, totalLength-end/2)

	postBearingLength := wall + m.StringPost.AxialPlay
	pegBearingLength := wall + m.PegHead.AxialPlay

	// Slip-fit DD: sized from the wheel bore by a fixed press-fit allowance,
	// independent of the tolerance profile.
	dd := DDCut{
		Diameter:    g.Wheel.Bore.Diameter*s - m.StringPost.DDClearance,
		AcrossFlats: g.Wheel.Bore.AcrossFlats*s - m.StringPost.DDClearance,
		Length:      g.Wheel.FaceWidth*s - m.StringPost.DDLengthClearance,
	}

	var wormZ float64
	switch m.ResolvedWormZMode() {
	case params.ZModeAligned:
		// Worm mid-plane on the wheel mid-plane: the wheel sits on the
		// bottom wall, face width up.
		wormZ = wall + g.Wheel.FaceWidth*s/2
	default:
		wormZ = boxOuter / 2
	}

	return Layout{
		Hand:  params.HandRight,
		Scale: s,

		TotalLength:   totalLength,
		BoxOuter:      boxOuter,
		BoxInner:      boxInner,
		WallThickness: wall,

		Stations:       stations,
		MountingHoleYs: mountingYs,

		PostBearingHole:      m.StringPost.BearingDiameter*s + tol.BearingOffset,
		WheelInletHole:       f.WheelInletHole*s + tol.ClearanceOffset,
		WormEntryHole:        g.Worm.TipDiameter*s + params.WormEntryClearance + tol.ClearanceOffset,
		PegBearingHole:       m.PegHead.ShaftDiameter*s + tol.BearingOffset,
		MountingHoleDiameter: f.MountingHole*s + tol.ClearanceOffset,

		// Right hand: worm enters from -X, peg bearing on +X.
		WormEntryX:  -boxOuter / 2,
		PegBearingX: boxOuter / 2,

		DD: dd,

		PostBearingLength: postBearingLength,
		PegBearingLength:  pegBearingLength,
		PostAxialPlay:     m.StringPost.AxialPlay,
		PegAxialPlay:      m.PegHead.AxialPlay,

		WormZ:               wormZ,
		WormCavityClearance: boxInner - g.Worm.TipDiameter*s,
		CenterDistance:      centerDistance,

		PegShaftLength: g.Worm.Length*s + pegBearingLength,
		PostTotalLength: m.StringPost.CapHeight*s + m.StringPost.PostHeight*s +
			postBearingLength + dd.Length,
	}
}
