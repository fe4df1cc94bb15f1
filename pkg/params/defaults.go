package params

// Default returns the balanced M0.6 10:1 configuration measured from the
// reference hardware: a 5-gang frame from 10mm box tube, 27.2mm pitch.
func Default() Model {
	tol, _ := ProfileByName("production")
	return Model{
		Scale:     1.0,
		Hand:      HandRight,
		Tolerance: tol,

		Frame: FrameParams{
			BoxOuter:       10.0,
			WallThickness:  1.1,
			HousingLength:  16.2,
			EndLength:      10.0,
			NumHousings:    5,
			Pitch:          27.2,
			WheelInletHole: 8.0,
			MountingHole:   3.0,
		},

		Gear: GearParams{
			Worm: WormParams{
				Module:           0.6,
				Starts:           1,
				PitchDiameter:    5.8,
				TipDiameter:      7.0,
				RootDiameter:     4.3,
				Lead:             1.885, // pi * module
				LeadAngleDeg:     5.91,
				Length:           7.8,
				Type:             WormCylindrical,
				PressureAngleDeg: 20.0,
				ThroatReduction:  0.1,
				ThroatRadius:     3.0,
			},
			Wheel: WheelParams{
				Module:           0.6,
				Teeth:            10,
				PitchDiameter:    6.0,
				TipDiameter:      7.2,
				RootDiameter:     4.5,
				FaceWidth:        7.6,
				PressureAngleDeg: 20.0,
				Bore: DDCut{
					Diameter:    3.25,
					FlatDepth:   0.45,
					AcrossFlats: 2.35,
				},
			},
			CenterDistance: 5.9,
			Backlash:       0.0,
			ExtraBacklash:  0.0,
			Ratio:          10,
			VirtualHobbing: false,
			WormZMode:      ZModeAuto,
		},

		PegHead: PegHeadParams{
			RingOD:           12.5,
			RingBore:         9.8,
			CapDiameter:      8.5, // must clear the 7.2mm entry hole
			CapLength:        1.0,
			ShoulderDiameter: 7.0,
			ShaftDiameter:    4.0,
			AxialPlay:        0.2,
			WasherClearance:  0.1,
			TapDrill:         1.6,
			TapDepth:         4.0,
			ScrewHeadOD:      3.75,
			ScrewHeadDepth:   1.0,
			WasherOD:         5.5,
			WasherID:         2.7,
			WasherThickness:  0.5,
		},

		StringPost: StringPostParams{
			CapDiameter:        7.5,
			CapHeight:          1.0,
			CapChamfer:         0.3,
			PostDiameter:       6.0,
			PostHeight:         5.5,
			BearingDiameter:    4.0,
			AxialPlay:          0.2,
			DDClearance:        0.1,
			DDLengthClearance:  0.1,
			TapBore:            1.6,
			TapDepth:           4.0,
			WasherOD:           5.0,
			StringHoleDiameter: 1.5,
			StringHolePosition: 2.75,
		},
	}
}
