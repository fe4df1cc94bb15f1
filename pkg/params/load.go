package params

import (
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"gibtuner-go-migration/pkg/errors"
)

// Wire format for gear config files produced by the gear generator. Field
// names carry explicit units to match the generator output.
type gearConfigFile struct {
	Worm struct {
		ModuleMM          float64 `yaml:"module_mm"`
		NumStarts         int     `yaml:"num_starts"`
		PitchDiameterMM   float64 `yaml:"pitch_diameter_mm"`
		TipDiameterMM     float64 `yaml:"tip_diameter_mm"`
		RootDiameterMM    float64 `yaml:"root_diameter_mm"`
		LeadMM            float64 `yaml:"lead_mm"`
		LeadAngleDeg      float64 `yaml:"lead_angle_deg"`
		Type              string  `yaml:"type"`
		ThroatReductionMM float64 `yaml:"throat_reduction_mm"`
		ThroatRadiusMM    float64 `yaml:"throat_curvature_radius_mm"`
	} `yaml:"worm"`
	Wheel struct {
		ModuleMM        float64 `yaml:"module_mm"`
		NumTeeth        int     `yaml:"num_teeth"`
		PitchDiameterMM float64 `yaml:"pitch_diameter_mm"`
		TipDiameterMM   float64 `yaml:"tip_diameter_mm"`
		RootDiameterMM  float64 `yaml:"root_diameter_mm"`
	} `yaml:"wheel"`
	Assembly struct {
		CentreDistanceMM float64 `yaml:"centre_distance_mm"`
		PressureAngleDeg float64 `yaml:"pressure_angle_deg"`
		BacklashMM       float64 `yaml:"backlash_mm"`
		Ratio            int     `yaml:"ratio"`
	} `yaml:"assembly"`
	Features struct {
		Wheel struct {
			BoreDiameterMM float64 `yaml:"bore_diameter_mm"`
		} `yaml:"wheel"`
	} `yaml:"features"`
	Manufacturing struct {
		WormLengthMM float64 `yaml:"worm_length_mm"`
		WheelWidthMM float64 `yaml:"wheel_width_mm"`
	} `yaml:"manufacturing"`
}

// round1 rounds to one decimal place, matching the generator's DD sizing.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// LoadGearConfig reads gear geometry from a generator-produced YAML file.
// The wheel bore DD cut is derived from the bore diameter: each flat is
// roughly 14% of the bore, the across-flats distance follows.
func LoadGearConfig(path string) (GearParams, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return GearParams{}, errors.ConfigFileError(path, err)
	}

	var f gearConfigFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return GearParams{}, errors.ConfigFileError(path, err)
	}

	wormType := WormCylindrical
	if f.Worm.Type == string(WormGloboid) {
		wormType = WormGloboid
	}

	wormLength := f.Manufacturing.WormLengthMM
	if wormLength == 0 {
		wormLength = 7.0
	}
	wheelWidth := f.Manufacturing.WheelWidthMM
	if wheelWidth == 0 {
		wheelWidth = 6.0
	}

	bore := f.Features.Wheel.BoreDiameterMM
	if bore == 0 {
		bore = 3.5
	}
	flat := round1(bore * 0.14)
	across := round1(bore - 2*flat)

	return GearParams{
		Worm: WormParams{
			Module:           f.Worm.ModuleMM,
			Starts:           f.Worm.NumStarts,
			PitchDiameter:    f.Worm.PitchDiameterMM,
			TipDiameter:      f.Worm.TipDiameterMM,
			RootDiameter:     f.Worm.RootDiameterMM,
			Lead:             f.Worm.LeadMM,
			LeadAngleDeg:     f.Worm.LeadAngleDeg,
			Length:           wormLength,
			Type:             wormType,
			PressureAngleDeg: f.Assembly.PressureAngleDeg,
			ThroatReduction:  f.Worm.ThroatReductionMM,
			ThroatRadius:     f.Worm.ThroatRadiusMM,
		},
		Wheel: WheelParams{
			Module:           f.Wheel.ModuleMM,
			Teeth:            f.Wheel.NumTeeth,
			PitchDiameter:    f.Wheel.PitchDiameterMM,
			TipDiameter:      f.Wheel.TipDiameterMM,
			RootDiameter:     f.Wheel.RootDiameterMM,
			FaceWidth:        wheelWidth,
			PressureAngleDeg: f.Assembly.PressureAngleDeg,
			Bore: DDCut{
				Diameter:    bore,
				FlatDepth:   flat,
				AcrossFlats: across,
			},
		},
		CenterDistance: f.Assembly.CentreDistanceMM,
		Backlash:       f.Assembly.BacklashMM,
		Ratio:          f.Assembly.Ratio,
		WormZMode:      ZModeAuto,
	}, nil
}

// buildFile is the wire format for a top-level build request file.
type buildFile struct {
	Scale       float64 `yaml:"scale"`
	Hand        string  `yaml:"hand"`
	Tolerance   string  `yaml:"tolerance"`
	NumHousings int     `yaml:"num_housings"`
	GearConfig  string  `yaml:"gear_config"`
}

// LoadBuildFile reads a build request file and returns a Model based on
// Default() with the file's overrides applied. An empty or missing field
// keeps the default.
func LoadBuildFile(path string) (Model, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Model{}, errors.ConfigFileError(path, err)
	}

	var f buildFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return Model{}, errors.ConfigFileError(path, err)
	}

	m := Default()
	if f.Scale != 0 {
		m.Scale = f.Scale
	}
	if f.Hand != "" {
		m.Hand = Hand(f.Hand)
	}
	if f.Tolerance != "" {
		tol, err := ProfileByName(f.Tolerance)
		if err != nil {
			return Model{}, err
		}
		m.Tolerance = tol
	}
	if f.NumHousings != 0 {
		m.Frame.NumHousings = f.NumHousings
	}
	if f.GearConfig != "" {
		gear, err := LoadGearConfig(f.GearConfig)
		if err != nil {
			return Model{}, err
		}
		m.Gear = gear
	}

	if err := m.Validate(); err != nil {
		return Model{}, err
	}
	return m, nil
}
