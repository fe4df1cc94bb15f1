package params

import (
	"os"
	"path/filepath"
	"testing"

	"gibtuner-go-migration/pkg/errors"
)

const gearYAML = `
worm:
  module_mm: 0.5
  num_starts: 1
  pitch_diameter_mm: 5.5
  tip_diameter_mm: 6.5
  root_diameter_mm: 4.25
  lead_mm: 1.571
  lead_angle_deg: 5.2
  type: globoid
  throat_reduction_mm: 0.1
  throat_curvature_radius_mm: 3.0
wheel:
  module_mm: 0.5
  num_teeth: 13
  pitch_diameter_mm: 6.5
  tip_diameter_mm: 7.5
  root_diameter_mm: 5.25
assembly:
  centre_distance_mm: 6.0
  pressure_angle_deg: 20.0
  backlash_mm: 0.05
  ratio: 13
features:
  wheel:
    bore_diameter_mm: 3.5
manufacturing:
  worm_length_mm: 7.6
  wheel_width_mm: 7.5
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadGearConfig(t *testing.T) {
	g, err := LoadGearConfig(writeFile(t, "gear.yaml", gearYAML))
	if err != nil {
		t.Fatal(err)
	}

	if g.Wheel.Teeth != 13 {
		t.Errorf("teeth = %d, want 13", g.Wheel.Teeth)
	}
	if g.Worm.Type != WormGloboid {
		t.Errorf("worm type = %v, want globoid", g.Worm.Type)
	}
	if g.Worm.Length != 7.6 {
		t.Errorf("worm length = %v, want 7.6", g.Worm.Length)
	}
	if g.CenterDistance != 6.0 {
		t.Errorf("center distance = %v, want 6.0", g.CenterDistance)
	}
	if g.Worm.PressureAngleDeg != 20.0 || g.Wheel.PressureAngleDeg != 20.0 {
		t.Error("pressure angle should flow to both records")
	}

	// DD bore derived from the bore diameter: flats at ~14%, rounded.
	if g.Wheel.Bore.Diameter != 3.5 {
		t.Errorf("bore = %v, want 3.5", g.Wheel.Bore.Diameter)
	}
	if g.Wheel.Bore.FlatDepth != 0.5 {
		t.Errorf("flat depth = %v, want 0.5", g.Wheel.Bore.FlatDepth)
	}
	if g.Wheel.Bore.AcrossFlats != 2.5 {
		t.Errorf("across flats = %v, want 2.5", g.Wheel.Bore.AcrossFlats)
	}
}

func TestLoadGearConfigMissingFile(t *testing.T) {
	_, err := LoadGearConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, errors.ErrConfigFile) {
		t.Errorf("got %v, want config file error", err)
	}
}

func TestLoadBuildFile(t *testing.T) {
	gearPath := writeFile(t, "gear.yaml", gearYAML)
	buildPath := writeFile(t, "build.yaml", `
scale: 2.0
hand: left
tolerance: prototype-fdm
num_housings: 3
gear_config: `+gearPath+`
`)

	m, err := LoadBuildFile(buildPath)
	if err != nil {
		t.Fatal(err)
	}

	if m.Scale != 2.0 {
		t.Errorf("scale = %v, want 2.0", m.Scale)
	}
	if m.Hand != HandLeft {
		t.Errorf("hand = %v, want left", m.Hand)
	}
	if m.Tolerance.Name != "prototype-fdm" {
		t.Errorf("tolerance = %q, want prototype-fdm", m.Tolerance.Name)
	}
	if m.Frame.NumHousings != 3 {
		t.Errorf("housings = %d, want 3", m.Frame.NumHousings)
	}
	if m.Gear.Wheel.Teeth != 13 {
		t.Errorf("gear config not applied: teeth = %d", m.Gear.Wheel.Teeth)
	}
	// Untouched fields keep the defaults.
	if m.Frame.Pitch != 27.2 {
		t.Errorf("pitch = %v, want default 27.2", m.Frame.Pitch)
	}
}

func TestLoadBuildFileRejectsBadProfile(t *testing.T) {
	buildPath := writeFile(t, "build.yaml", "tolerance: lost-wax\n")
	if _, err := LoadBuildFile(buildPath); err == nil {
		t.Fatal("expected profile error")
	}
}

func TestLoadBuildFileValidates(t *testing.T) {
	buildPath := writeFile(t, "build.yaml", "num_housings: -1\n")
	_, err := LoadBuildFile(buildPath)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.IsConfig(err) {
		t.Errorf("got %v, want config error", err)
	}
}
