// Package params defines the primary design parameters for a multi-station
// worm-drive tuner assembly and the tolerance profiles applied to them.
//
// All dimensions are in millimeters at scale 1.0. A Model is constructed once
// per build request and never mutated; every derived quantity is computed
// downstream by pkg/layout.
package params

import (
	"gibtuner-go-migration/pkg/errors"
)

// Hand is the handedness of the tuner assembly.
type Hand string

const (
	HandRight Hand = "right"
	HandLeft  Hand = "left"
)

// Other returns the opposite hand.
func (h Hand) Other() Hand {
	if h == HandLeft {
		return HandRight
	}
	return HandLeft
}

// WormType selects the worm thread geometry.
type WormType string

const (
	WormCylindrical WormType = "cylindrical"
	WormGloboid     WormType = "globoid"
)

// WormZMode overrides the worm axial positioning.
type WormZMode string

const (
	// ZModeAuto resolves to centered for cylindrical worms, aligned for globoid.
	ZModeAuto WormZMode = "auto"

	// ZModeCentered centers the worm in the frame cavity.
	ZModeCentered WormZMode = "centered"

	// ZModeAligned aligns the worm mid-plane with the wheel.
	ZModeAligned WormZMode = "aligned"
)

// WormEntryClearance is the fixed pass-through allowance added to the worm
// tip diameter when sizing the entry hole (0.1mm per side). It is a fit gap:
// never multiplied by scale.
const WormEntryClearance = 0.2

// FrameParams describes an N-gang frame machined from square box tube.
type FrameParams struct {
	BoxOuter      float64 // Outer dimension of square tube
	WallThickness float64 // Wall thickness
	HousingLength float64 // Length of each rigid box section
	EndLength     float64 // Distance from frame end to housing edge (symmetric)
	NumHousings   int     // Number of tuning stations (>= 1)
	Pitch         float64 // Center-to-center spacing between stations

	WheelInletHole float64 // Nominal bottom-face hole for wheel insertion
	MountingHole   float64 // Nominal bottom-plate hole for headstock bolts
}

// BoxInner returns the internal cavity dimension.
func (f FrameParams) BoxInner() float64 {
	return f.BoxOuter - 2*f.WallThickness
}

// DDCut describes a double-D anti-rotation interface: two parallel flats
// on a round shaft or bore.
type DDCut struct {
	Diameter    float64 // Nominal shaft/bore diameter
	FlatDepth   float64 // Depth of each flat
	AcrossFlats float64 // Distance between flats
}

// WormParams describes the worm, integral to the peg head.
type WormParams struct {
	Module           float64
	Starts           int
	PitchDiameter    float64
	TipDiameter      float64
	RootDiameter     float64
	Lead             float64
	LeadAngleDeg     float64
	Length           float64
	Type             WormType
	PressureAngleDeg float64

	// Globoid-specific
	ThroatReduction float64
	ThroatRadius    float64
}

// WheelParams describes the worm wheel.
type WheelParams struct {
	Module           float64
	Teeth            int
	PitchDiameter    float64
	TipDiameter      float64
	RootDiameter     float64
	FaceWidth        float64
	PressureAngleDeg float64
	Bore             DDCut
}

// GearParams combines the gear set.
type GearParams struct {
	Worm           WormParams
	Wheel          WheelParams
	CenterDistance float64 // Worm-to-wheel axis distance
	Backlash       float64
	ExtraBacklash  float64 // Additional backlash beyond gear design
	Ratio          int
	VirtualHobbing bool
	WormZMode      WormZMode
}

// PegHeadParams describes the peg head assembly: decorative ring, cap
// against the frame, shoulder in the entry hole, integral worm, and the
// bearing shaft with its retention hardware.
type PegHeadParams struct {
	RingOD      float64 // Ring outer diameter
	RingBore    float64 // Finger-grip bore diameter
	CapDiameter float64 // Must exceed the worm entry hole
	CapLength   float64

	ShoulderDiameter float64 // Fits inside the worm entry hole with clearance
	ShaftDiameter    float64 // Bearing section diameter

	// AxialPlay is the free-sliding gap allowing rotation without binding
	// against the frame wall. A fit gap: never multiplied by scale.
	AxialPlay       float64
	WasherClearance float64 // Shaft extension beyond frame for the washer

	// M2 retention: screw threads into a tapped bore in the shaft end,
	// clamping a washer against the frame wall.
	TapDrill        float64
	TapDepth        float64
	ScrewHeadOD     float64
	ScrewHeadDepth  float64
	WasherOD        float64 // Must exceed the peg bearing hole
	WasherID        float64
	WasherThickness float64
}

// StringPostParams describes the string post carrying the wheel.
type StringPostParams struct {
	CapDiameter float64 // Must exceed the post bearing hole
	CapHeight   float64
	CapChamfer  float64

	PostDiameter float64 // Visible post above the frame
	PostHeight   float64

	BearingDiameter float64 // Frame bearing section diameter

	// AxialPlay is the free-sliding gap for the post+wheel assembly.
	// A fit gap: never multiplied by scale.
	AxialPlay float64

	// DDClearance is the slip-fit allowance subtracted from the wheel bore
	// when sizing the DD shaft. This is a press/compression fit constant,
	// independent of the tolerance profile.
	DDClearance float64

	// DDLengthClearance keeps the DD section shorter than the wheel face so
	// the retention screw clamps the wheel to the shoulder.
	DDLengthClearance float64

	TapBore  float64 // M2 tap drill in the DD section end
	TapDepth float64
	WasherOD float64 // Retention washer under the M2 screw; must exceed the wheel bore

	StringHoleDiameter float64
	StringHolePosition float64 // Height of string hole in visible post
}

// Model is the immutable primary-parameter aggregate for one build request.
type Model struct {
	Scale     float64
	Hand      Hand
	Tolerance ToleranceProfile

	Frame      FrameParams
	Gear       GearParams
	PegHead    PegHeadParams
	StringPost StringPostParams
}

// Validate checks the model for structural validity. It returns a
// configuration error naming the first offending field, or nil. A model that
// passes Validate never causes derivation to fail.
func (m Model) Validate() error {
	if m.Scale <= 0 {
		return errors.ConfigFieldError("scale", m.Scale, "must be positive")
	}
	if m.Hand != HandRight && m.Hand != HandLeft {
		return errors.ConfigFieldError("hand", string(m.Hand), "must be 'right' or 'left'")
	}
	if m.Tolerance.Name == "" {
		return errors.ConfigFieldError("tolerance", "", "tolerance profile not set")
	}

	f := m.Frame
	if f.NumHousings < 1 {
		return errors.ConfigFieldError("frame.num_housings", f.NumHousings, "must be at least 1")
	}
	for _, c := range []struct {
		name  string
		value float64
	}{
		{"frame.box_outer", f.BoxOuter},
		{"frame.wall_thickness", f.WallThickness},
		{"frame.housing_length", f.HousingLength},
		{"frame.end_length", f.EndLength},
		{"frame.pitch", f.Pitch},
		{"frame.wheel_inlet_hole", f.WheelInletHole},
		{"frame.mounting_hole", f.MountingHole},
	} {
		if c.value <= 0 {
			return errors.ConfigFieldError(c.name, c.value, "must be positive")
		}
	}
	if f.BoxInner() <= 0 {
		return errors.ConfigFieldError("frame.wall_thickness", f.WallThickness, "walls leave no internal cavity")
	}

	g := m.Gear
	if g.Worm.Type != WormCylindrical && g.Worm.Type != WormGloboid {
		return errors.ConfigFieldError("gear.worm.type", string(g.Worm.Type), "must be 'cylindrical' or 'globoid'")
	}
	switch g.WormZMode {
	case ZModeAuto, ZModeCentered, ZModeAligned:
	default:
		return errors.ConfigFieldError("gear.worm_z_mode", string(g.WormZMode), "must be 'auto', 'centered' or 'aligned'")
	}
	if g.Wheel.Teeth < 1 {
		return errors.ConfigFieldError("gear.wheel.teeth", g.Wheel.Teeth, "must be at least 1")
	}
	if g.Worm.Starts < 1 {
		return errors.ConfigFieldError("gear.worm.starts", g.Worm.Starts, "must be at least 1")
	}
	for _, c := range []struct {
		name  string
		value float64
	}{
		{"gear.worm.module", g.Worm.Module},
		{"gear.worm.pitch_diameter", g.Worm.PitchDiameter},
		{"gear.worm.tip_diameter", g.Worm.TipDiameter},
		{"gear.worm.root_diameter", g.Worm.RootDiameter},
		{"gear.worm.length", g.Worm.Length},
		{"gear.wheel.module", g.Wheel.Module},
		{"gear.wheel.pitch_diameter", g.Wheel.PitchDiameter},
		{"gear.wheel.tip_diameter", g.Wheel.TipDiameter},
		{"gear.wheel.root_diameter", g.Wheel.RootDiameter},
		{"gear.wheel.face_width", g.Wheel.FaceWidth},
		{"gear.wheel.bore.diameter", g.Wheel.Bore.Diameter},
		{"gear.wheel.bore.across_flats", g.Wheel.Bore.AcrossFlats},
		{"gear.center_distance", g.CenterDistance},
	} {
		if c.value <= 0 {
			return errors.ConfigFieldError(c.name, c.value, "must be positive")
		}
	}

	p := m.PegHead
	if p.ShaftDiameter <= 0 {
		return errors.ConfigFieldError("peg_head.shaft_diameter", p.ShaftDiameter, "must be positive")
	}
	if p.AxialPlay < 0 {
		return errors.ConfigFieldError("peg_head.axial_play", p.AxialPlay, "must not be negative")
	}

	s := m.StringPost
	if s.BearingDiameter <= 0 {
		return errors.ConfigFieldError("string_post.bearing_diameter", s.BearingDiameter, "must be positive")
	}
	if s.AxialPlay < 0 {
		return errors.ConfigFieldError("string_post.axial_play", s.AxialPlay, "must not be negative")
	}
	if s.DDClearance < 0 {
		return errors.ConfigFieldError("string_post.dd_clearance", s.DDClearance, "must not be negative")
	}
	if s.DDClearance >= g.Wheel.Bore.Diameter {
		return errors.ConfigFieldError("string_post.dd_clearance", s.DDClearance, "consumes the entire wheel bore")
	}

	return nil
}

// ResolvedWormZMode resolves ZModeAuto from the worm type: globoid worms must
// align with the wheel, cylindrical worms center in the cavity.
func (m Model) ResolvedWormZMode() WormZMode {
	if m.Gear.WormZMode != ZModeAuto {
		return m.Gear.WormZMode
	}
	if m.Gear.Worm.Type == WormGloboid || m.Gear.VirtualHobbing {
		return ZModeAligned
	}
	return ZModeCentered
}
