// gibtuner derives, validates and reports the dimensional model of a
// multi-station worm-drive tuner assembly.
//
// Usage:
//
//	gibtuner derive [--scale 2.0] [--hand left] [--tolerance prototype-fdm]
//	gibtuner validate [--build build.yaml]
//	gibtuner profiles
//	gibtuner mesh-plan --teeth 13
//
// Dimension derivation is deterministic: the same parameters always produce
// the same layout. Solid construction and mesh alignment against real
// geometry run in the embedding CAD application; mesh-plan only reports the
// search schedule.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gibtuner-go-migration/pkg/params"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// modelFlags are the parameter overrides shared by derive and validate.
type modelFlags struct {
	buildFile  string
	gearConfig string
	scale      float64
	hand       string
	tolerance  string
	housings   int
}

func (f *modelFlags) register(c *cobra.Command) {
	c.Flags().StringVar(&f.buildFile, "build", "", "Build request YAML file")
	c.Flags().StringVar(&f.gearConfig, "gear-config", "", "Gear geometry YAML file")
	c.Flags().Float64Var(&f.scale, "scale", 0, "Uniform scale factor (default 1.0)")
	c.Flags().StringVar(&f.hand, "hand", "", "Handedness: right or left")
	c.Flags().StringVar(&f.tolerance, "tolerance", "", "Tolerance profile name")
	c.Flags().IntVar(&f.housings, "housings", 0, "Number of tuning stations")
}

// model resolves the flags into a validated parameter model. Flag overrides
// apply on top of the build file (or the defaults).
func (f *modelFlags) model() (params.Model, error) {
	var m params.Model
	if f.buildFile != "" {
		loaded, err := params.LoadBuildFile(f.buildFile)
		if err != nil {
			return params.Model{}, err
		}
		m = loaded
	} else {
		m = params.Default()
	}

	if f.gearConfig != "" {
		gear, err := params.LoadGearConfig(f.gearConfig)
		if err != nil {
			return params.Model{}, err
		}
		m.Gear = gear
	}
	if f.scale != 0 {
		m.Scale = f.scale
	}
	if f.hand != "" {
		m.Hand = params.Hand(f.hand)
	}
	if f.tolerance != "" {
		tol, err := params.ProfileByName(f.tolerance)
		if err != nil {
			return params.Model{}, err
		}
		m.Tolerance = tol
	}
	if f.housings != 0 {
		m.Frame.NumHousings = f.housings
	}

	if err := m.Validate(); err != nil {
		return params.Model{}, err
	}
	return m, nil
}

func newRootCmd() *cobra.Command {
	var verbose bool
	var logger *zap.Logger

	root := &cobra.Command{
		Use:           "gibtuner",
		Short:         "Dimensional model engine for gang tuner assemblies",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if verbose {
				logger, err = zap.NewDevelopment()
			} else {
				logger, err = zap.NewProduction()
			}
			return err
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	log := func() *zap.Logger {
		if logger == nil {
			return zap.NewNop()
		}
		return logger
	}

	root.AddCommand(
		newDeriveCmd(log),
		newValidateCmd(log),
		newProfilesCmd(),
		newMeshPlanCmd(),
	)
	return root
}
