package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"gibtuner-go-migration/pkg/errors"
	"gibtuner-go-migration/pkg/mesh"
)

// mesh-plan reports the search schedule the alignment search would run for
// a given wheel. The search itself needs constructed solids and runs inside
// the embedding CAD application.
func newMeshPlanCmd() *cobra.Command {
	var teeth int
	var coarse, fine, tolerance float64

	c := &cobra.Command{
		Use:   "mesh-plan",
		Short: "Show the mesh alignment search schedule for a wheel",
		RunE: func(_ *cobra.Command, _ []string) error {
			if teeth < 1 {
				return errors.ConfigFieldError("teeth", teeth, "must be at least 1")
			}
			s := mesh.Settings{
				CoarseStepDeg:   coarse,
				FineStepDeg:     fine,
				ToleranceVolume: tolerance,
			}
			d := mesh.DefaultSettings()
			if s.CoarseStepDeg <= 0 {
				s.CoarseStepDeg = d.CoarseStepDeg
			}
			if s.FineStepDeg <= 0 {
				s.FineStepDeg = d.FineStepDeg
			}
			if s.ToleranceVolume <= 0 {
				s.ToleranceVolume = d.ToleranceVolume
			}

			pitch := 360.0 / float64(teeth)
			coarseSamples := int(math.Ceil(pitch / s.CoarseStepDeg))
			fineSamples := 2*int(math.Round(s.CoarseStepDeg/s.FineStepDeg)) + 1

			fmt.Printf("Tooth pitch:      %.4f deg (search domain [0, %.4f))\n", pitch, pitch)
			fmt.Printf("Coarse pass:      %d samples at %.2f deg\n", coarseSamples, s.CoarseStepDeg)
			fmt.Printf("Fine pass:        %d samples at %.2f deg around the coarse optimum\n", fineSamples, s.FineStepDeg)
			fmt.Printf("Total probes:     %d\n", coarseSamples+fineSamples)
			fmt.Printf("Tolerance volume: %.2fmm3 (inclusive)\n", s.ToleranceVolume)
			return nil
		},
	}
	c.Flags().IntVar(&teeth, "teeth", 0, "Wheel tooth count (required)")
	c.Flags().Float64Var(&coarse, "coarse-step", 0, "Coarse step in degrees (default 1.0)")
	c.Flags().Float64Var(&fine, "fine-step", 0, "Fine step in degrees (default 0.1)")
	c.Flags().Float64Var(&tolerance, "tolerance-volume", 0, "Acceptable interference in mm3 (default 1.0)")
	_ = c.MarkFlagRequired("teeth")
	return c
}
