package mesh

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"testing"

	"gibtuner-go-migration/pkg/errors"
	"gibtuner-go-migration/pkg/geom"
)

// fakeSolid tracks the accumulated Z rotation applied by the fake kernel.
type fakeSolid struct {
	name     string
	rotation float64
}

// fakeKernel evaluates interference as a pure function of the wheel's
// rotation angle and records every probed angle.
type fakeKernel struct {
	mu           sync.Mutex
	probed       []float64
	interference func(angleDeg float64) (float64, error)
}

func (k *fakeKernel) IntersectionVolume(a, b geom.Solid) (float64, error) {
	wheel := a.(*fakeSolid)
	k.mu.Lock()
	k.probed = append(k.probed, wheel.rotation)
	k.mu.Unlock()
	return k.interference(wheel.rotation)
}

func (k *fakeKernel) Rotate(s geom.Solid, axis geom.Axis, angleDeg float64) geom.Solid {
	fs := s.(*fakeSolid)
	return &fakeSolid{name: fs.name, rotation: fs.rotation + angleDeg}
}

func (k *fakeKernel) Translate(s geom.Solid, dx, dy, dz float64) geom.Solid { return s }
func (k *fakeKernel) Fuse(a, b geom.Solid) (geom.Solid, error)             { return a, nil }
func (k *fakeKernel) Cut(a, b geom.Solid) (geom.Solid, error)              { return a, nil }
func (k *fakeKernel) ImportSTEP(path string) (geom.Solid, error)           { return nil, nil }
func (k *fakeKernel) ExportSTL(s geom.Solid, path string) error            { return nil }

func newPair() (geom.Solid, geom.Solid) {
	return &fakeSolid{name: "wheel"}, &fakeSolid{name: "worm"}
}

// vShaped returns an interference function with a single minimum at
// optimum degrees within one tooth pitch.
func vShaped(optimum, pitch float64) func(float64) (float64, error) {
	return func(angle float64) (float64, error) {
		a := math.Mod(angle, pitch)
		d := math.Abs(a - optimum)
		if d > pitch/2 {
			d = pitch - d
		}
		return d * 10, nil
	}
}

func TestPerfectMeshAtZero(t *testing.T) {
	k := &fakeKernel{interference: func(angle float64) (float64, error) {
		if angle == 0 {
			return 0, nil
		}
		return 1 + angle, nil
	}}
	wheel, worm := newPair()

	s := NewSearch(k, DefaultSettings(), nil)
	r, err := s.FindOptimalRotation(context.Background(), wheel, worm, 12)
	if err != nil {
		t.Fatal(err)
	}

	if r.OptimalRotationDeg != 0 {
		t.Errorf("rotation = %v, want 0", r.OptimalRotationDeg)
	}
	if r.InterferenceVolume != 0 {
		t.Errorf("interference = %v, want 0", r.InterferenceVolume)
	}
	if r.Message != "perfect mesh" {
		t.Errorf("message = %q, want \"perfect mesh\"", r.Message)
	}
	if !r.WithinTolerance {
		t.Error("zero interference is within tolerance")
	}
	if r.ToothPitchDeg != 30.0 {
		t.Errorf("tooth pitch = %v, want 30", r.ToothPitchDeg)
	}
}

func TestPeriodicityBound(t *testing.T) {
	// No probe at or beyond one tooth pitch, regardless of where the
	// optimum lies.
	pitch := 360.0 / 13.0
	k := &fakeKernel{interference: vShaped(14.3, pitch)}
	wheel, worm := newPair()

	s := NewSearch(k, DefaultSettings(), nil)
	if _, err := s.FindOptimalRotation(context.Background(), wheel, worm, 13); err != nil {
		t.Fatal(err)
	}

	for _, a := range k.probed {
		if a < 0 || a >= pitch {
			t.Errorf("probed %v outside [0, %v)", a, pitch)
		}
	}
	if len(k.probed) == 0 {
		t.Fatal("no probes recorded")
	}
}

func TestFineNeverWorseThanCoarse(t *testing.T) {
	pitch := 30.0
	k := &fakeKernel{interference: vShaped(7.43, pitch)}
	wheel, worm := newPair()

	s := NewSearch(k, DefaultSettings(), nil)
	r, err := s.FindOptimalRotation(context.Background(), wheel, worm, 12)
	if err != nil {
		t.Fatal(err)
	}

	// Best coarse sample is at 7.0: interference 4.3. The fine pass must
	// end at least that good, and here should land on 7.4.
	coarseBest, _ := vShaped(7.43, pitch)(7.0)
	if r.InterferenceVolume > coarseBest {
		t.Errorf("fine result %v worse than coarse %v", r.InterferenceVolume, coarseBest)
	}
	if math.Abs(r.OptimalRotationDeg-7.4) > 1e-6 {
		t.Errorf("rotation = %v, want 7.4", r.OptimalRotationDeg)
	}
}

func TestFineWindowStaysCenteredOnCoarseOptimum(t *testing.T) {
	// The fine grid is fixed around the coarse result before any fine probe
	// runs: improvements found mid-scan must not shift the window, skip
	// grid points, or push probes past one coarse step from the center.
	pitch := 30.0
	k := &fakeKernel{interference: vShaped(7.43, pitch)}
	wheel, worm := newPair()

	s := NewSearch(k, DefaultSettings(), nil)
	if _, err := s.FindOptimalRotation(context.Background(), wheel, worm, 12); err != nil {
		t.Fatal(err)
	}

	// Coarse best is 7.0; the fine probes are the last 21 recorded angles.
	fineProbes := k.probed[len(k.probed)-21:]
	for i, a := range fineProbes {
		want := 6.0 + 0.1*float64(i)
		if math.Abs(a-want) > 1e-9 {
			t.Fatalf("fine probe %d = %v, want %v", i, a, want)
		}
	}
}

func TestCoarseTieBreaksToFirstAngle(t *testing.T) {
	// Flat zero interference everywhere: the first coarse sample (0) wins
	// and the fine pass cannot displace it without a strict improvement.
	k := &fakeKernel{interference: func(float64) (float64, error) { return 0, nil }}
	wheel, worm := newPair()

	s := NewSearch(k, DefaultSettings(), nil)
	r, err := s.FindOptimalRotation(context.Background(), wheel, worm, 10)
	if err != nil {
		t.Fatal(err)
	}
	if r.OptimalRotationDeg != 0 {
		t.Errorf("rotation = %v, want 0 (first minimum wins)", r.OptimalRotationDeg)
	}
}

func TestOracleFailureCountsAsZero(t *testing.T) {
	// A numerically failed sample reads as zero interference, which then
	// wins the search.
	k := &fakeKernel{interference: func(angle float64) (float64, error) {
		if angle >= 5 && angle < 6 {
			return 0, fmt.Errorf("boolean op failed: %w", geom.ErrNoIntersection)
		}
		return 100, nil
	}}
	wheel, worm := newPair()

	s := NewSearch(k, DefaultSettings(), nil)
	r, err := s.FindOptimalRotation(context.Background(), wheel, worm, 12)
	if err != nil {
		t.Fatal(err)
	}
	if r.InterferenceVolume != 0 {
		t.Errorf("interference = %v, want 0", r.InterferenceVolume)
	}
	if r.OptimalRotationDeg != 5 {
		t.Errorf("rotation = %v, want 5", r.OptimalRotationDeg)
	}
}

func TestInvalidSolidAbortsSearch(t *testing.T) {
	k := &fakeKernel{interference: func(angle float64) (float64, error) {
		return 0, fmt.Errorf("open shell: %w", geom.ErrInvalidSolid)
	}}
	wheel, worm := newPair()

	s := NewSearch(k, DefaultSettings(), nil)
	_, err := s.FindOptimalRotation(context.Background(), wheel, worm, 12)
	if err == nil {
		t.Fatal("expected a kernel error")
	}
	if !errors.IsKernel(err) {
		t.Errorf("got %v, want kernel error", err)
	}
}

func TestContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	k := &fakeKernel{interference: func(angle float64) (float64, error) {
		calls++
		if calls == 3 {
			cancel()
		}
		return 1, nil
	}}
	wheel, worm := newPair()

	s := NewSearch(k, DefaultSettings(), nil)
	_, err := s.FindOptimalRotation(ctx, wheel, worm, 12)
	if err != context.Canceled {
		t.Fatalf("got %v, want context.Canceled", err)
	}
	if calls > 4 {
		t.Errorf("search kept probing after cancellation: %d calls", calls)
	}
}

func TestParallelCoarsePassMatchesSequential(t *testing.T) {
	pitch := 360.0 / 13.0
	run := func(parallelism int) Result {
		k := &fakeKernel{interference: vShaped(11.17, pitch)}
		wheel, worm := newPair()
		settings := DefaultSettings()
		settings.Parallelism = parallelism
		s := NewSearch(k, settings, nil)
		r, err := s.FindOptimalRotation(context.Background(), wheel, worm, 13)
		if err != nil {
			t.Fatal(err)
		}
		return r
	}

	seq := run(1)
	par := run(8)
	if seq.OptimalRotationDeg != par.OptimalRotationDeg {
		t.Errorf("parallel rotation %v differs from sequential %v", par.OptimalRotationDeg, seq.OptimalRotationDeg)
	}
	if seq.InterferenceVolume != par.InterferenceVolume {
		t.Errorf("parallel interference %v differs from sequential %v", par.InterferenceVolume, seq.InterferenceVolume)
	}
}

func TestWithinToleranceInclusive(t *testing.T) {
	// The tolerance comparison is <=: residual interference exactly at the
	// tolerance volume is still acceptable.
	k := &fakeKernel{interference: func(float64) (float64, error) { return 1.0, nil }}
	wheel, worm := newPair()

	s := NewSearch(k, DefaultSettings(), nil) // tolerance 1.0
	r, err := s.FindOptimalRotation(context.Background(), wheel, worm, 12)
	if err != nil {
		t.Fatal(err)
	}
	if !r.WithinTolerance {
		t.Error("interference equal to the tolerance volume must be acceptable")
	}

	settings := DefaultSettings()
	settings.ToleranceVolume = 0.5
	s = NewSearch(k, settings, nil)
	r, err = s.FindOptimalRotation(context.Background(), wheel, worm, 12)
	if err != nil {
		t.Fatal(err)
	}
	if r.WithinTolerance {
		t.Error("interference above the tolerance volume is a warning")
	}
}

func TestCoarseSampleCount(t *testing.T) {
	k := &fakeKernel{interference: func(float64) (float64, error) { return 1, nil }}
	wheel, worm := newPair()

	s := NewSearch(k, DefaultSettings(), nil)
	r, err := s.FindOptimalRotation(context.Background(), wheel, worm, 12)
	if err != nil {
		t.Fatal(err)
	}

	// 30 coarse samples (0..29 deg) plus 21 fine samples around the optimum.
	if r.Samples != 51 {
		t.Errorf("samples = %d, want 51", r.Samples)
	}

	sort.Float64s(k.probed)
	if k.probed[len(k.probed)-1] >= 30.0 {
		t.Errorf("max probe %v reached the tooth pitch", k.probed[len(k.probed)-1])
	}
}

func TestCheckInterference(t *testing.T) {
	k := &fakeKernel{interference: func(angle float64) (float64, error) {
		return angle * 2, nil
	}}
	wheel, worm := newPair()

	v, err := CheckInterference(k, wheel, worm, 0)
	if err != nil || v != 0 {
		t.Errorf("at 0: got %v, %v", v, err)
	}

	v, err = CheckInterference(k, wheel, worm, 3)
	if err != nil || v != 6 {
		t.Errorf("at 3: got %v, %v", v, err)
	}
}
