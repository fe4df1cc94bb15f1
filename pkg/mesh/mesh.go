// Package mesh searches the periodic rotation space between a positioned
// worm and wheel for the offset that minimizes solid interference.
//
// The interference pattern repeats every tooth pitch (360/teeth degrees), so
// only [0, toothPitch) is ever probed. A coarse grid pass finds the
// neighborhood of the optimum; a fine pass refines it. The search contains
// no geometry logic of its own; every sample is one call to the injected
// kernel's interference oracle.
package mesh

import (
	"context"
	stderrors "errors"
	"fmt"
	"math"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gibtuner-go-migration/pkg/errors"
	"gibtuner-go-migration/pkg/geom"
)

// Settings tunes the two-phase grid search. The zero value of any field
// falls back to its default.
type Settings struct {
	// CoarseStepDeg is the first-pass resolution (default 1.0).
	CoarseStepDeg float64

	// FineStepDeg is the refinement resolution (default 0.1).
	FineStepDeg float64

	// ToleranceVolume is the acceptable residual interference in mm3
	// (default 1.0). WithinTolerance reports interference <= this value;
	// the comparison is inclusive.
	ToleranceVolume float64

	// Parallelism bounds concurrent coarse-pass oracle calls. Anything
	// below 2 evaluates sequentially. Only raise this if the kernel is
	// reentrant.
	Parallelism int
}

// DefaultSettings returns the standard search configuration.
func DefaultSettings() Settings {
	return Settings{
		CoarseStepDeg:   1.0,
		FineStepDeg:     0.1,
		ToleranceVolume: 1.0,
		Parallelism:     1,
	}
}

func (s Settings) normalized() Settings {
	d := DefaultSettings()
	if s.CoarseStepDeg <= 0 {
		s.CoarseStepDeg = d.CoarseStepDeg
	}
	if s.FineStepDeg <= 0 {
		s.FineStepDeg = d.FineStepDeg
	}
	if s.ToleranceVolume <= 0 {
		s.ToleranceVolume = d.ToleranceVolume
	}
	if s.Parallelism < 1 {
		s.Parallelism = d.Parallelism
	}
	return s
}

// Result reports the outcome of one alignment search.
type Result struct {
	OptimalRotationDeg float64
	InterferenceVolume float64
	ToothPitchDeg      float64
	WithinTolerance    bool
	Message            string

	// Samples is the total number of oracle probes spent.
	Samples int
}

// Search runs mesh alignment searches against one kernel.
type Search struct {
	kernel   geom.Kernel
	settings Settings
	log      *zap.Logger
}

// NewSearch creates a Search. A nil logger is replaced with a no-op one.
func NewSearch(k geom.Kernel, settings Settings, log *zap.Logger) *Search {
	if log == nil {
		log = zap.NewNop()
	}
	return &Search{kernel: k, settings: settings.normalized(), log: log}
}

// probe measures interference with the wheel rotated by angleDeg. An empty
// or numerically failed intersection counts as zero overlap: for search
// purposes a pair the kernel cannot intersect is indistinguishable from a
// non-colliding pair. A malformed solid aborts the search.
func (s *Search) probe(wheel, worm geom.Solid, angleDeg float64) (float64, error) {
	rotated := s.kernel.Rotate(wheel, geom.AxisZ, angleDeg)
	v, err := s.kernel.IntersectionVolume(rotated, worm)
	if err != nil {
		if stderrors.Is(err, geom.ErrInvalidSolid) {
			return 0, errors.KernelError("intersection", err)
		}
		s.log.Debug("oracle failure treated as zero interference",
			zap.Float64("angle_deg", angleDeg),
			zap.Error(err))
		return 0, nil
	}
	return v, nil
}

// FindOptimalRotation searches for the wheel rotation that minimizes
// interference with the positioned worm. The context is honored between
// samples; cancelling it aborts the search with the context's error. Ties
// in the coarse pass resolve to the first (smallest) angle; the fine pass
// only moves the optimum on a strict improvement. Both rules keep the
// search deterministic for a deterministic oracle.
func (s *Search) FindOptimalRotation(ctx context.Context, wheel, worm geom.Solid, teeth int) (Result, error) {
	if teeth < 1 {
		return Result{}, errors.ConfigFieldError("tooth_count", teeth, "must be at least 1")
	}

	toothPitch := 360.0 / float64(teeth)
	coarse := s.settings.CoarseStepDeg
	fine := s.settings.FineStepDeg

	// Coarse pass over [0, toothPitch). The periodicity bound is exact: no
	// sample at or beyond one tooth pitch.
	var coarseAngles []float64
	for i := 0; ; i++ {
		a := float64(i) * coarse
		if a >= toothPitch {
			break
		}
		coarseAngles = append(coarseAngles, a)
	}

	volumes := make([]float64, len(coarseAngles))
	samples := 0

	if s.settings.Parallelism > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.settings.Parallelism)
		for i, a := range coarseAngles {
			i, a := i, a
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				v, err := s.probe(wheel, worm, a)
				if err != nil {
					return err
				}
				volumes[i] = v
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return Result{}, err
		}
		samples += len(coarseAngles)
	} else {
		for i, a := range coarseAngles {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
			v, err := s.probe(wheel, worm, a)
			if err != nil {
				return Result{}, err
			}
			volumes[i] = v
			samples++
		}
	}

	// Index-ordered reduction keeps the first-minimum rule even when the
	// probes ran concurrently.
	bestAngle := 0.0
	bestVolume := math.Inf(1)
	for i, v := range volumes {
		if v < bestVolume {
			bestVolume = v
			bestAngle = coarseAngles[i]
		}
	}

	s.log.Debug("coarse pass complete",
		zap.Float64("best_angle_deg", bestAngle),
		zap.Float64("interference_mm3", bestVolume),
		zap.Int("samples", samples))

	// Fine pass: one coarse step either side of the coarse optimum, wrapped
	// into the periodic domain. The window stays centered on the coarse
	// result even as the running best improves.
	center := bestAngle
	steps := int(math.Round(coarse / fine))
	for d := -steps; d <= steps; d++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		a := math.Mod(center+float64(d)*fine, toothPitch)
		if a < 0 {
			a += toothPitch
		}
		v, err := s.probe(wheel, worm, a)
		if err != nil {
			return Result{}, err
		}
		samples++
		if v < bestVolume {
			bestVolume = v
			bestAngle = a
		}
	}

	within := bestVolume <= s.settings.ToleranceVolume

	var msg string
	switch {
	case bestVolume == 0:
		msg = "perfect mesh"
	case within:
		msg = fmt.Sprintf("acceptable - interference %.4fmm3 within tolerance", bestVolume)
	default:
		msg = fmt.Sprintf("warning - interference %.4fmm3 exceeds tolerance", bestVolume)
	}

	s.log.Info("mesh alignment search complete",
		zap.Float64("rotation_deg", bestAngle),
		zap.Float64("interference_mm3", bestVolume),
		zap.Bool("within_tolerance", within))

	return Result{
		OptimalRotationDeg: bestAngle,
		InterferenceVolume: bestVolume,
		ToothPitchDeg:      toothPitch,
		WithinTolerance:    within,
		Message:            msg,
		Samples:            samples,
	}, nil
}

// CheckInterference measures the interference volume at a single rotation
// offset, with the same oracle-failure semantics as the search.
func CheckInterference(k geom.Kernel, wheel, worm geom.Solid, rotationDeg float64) (float64, error) {
	s := NewSearch(k, DefaultSettings(), nil)
	if rotationDeg != 0 {
		return s.probe(wheel, worm, rotationDeg)
	}
	v, err := k.IntersectionVolume(wheel, worm)
	if err != nil {
		if stderrors.Is(err, geom.ErrInvalidSolid) {
			return 0, errors.KernelError("intersection", err)
		}
		return 0, nil
	}
	return v, nil
}
