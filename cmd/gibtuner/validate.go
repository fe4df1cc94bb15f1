package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gibtuner-go-migration/pkg/layout"
	"gibtuner-go-migration/pkg/report"
	"gibtuner-go-migration/pkg/validate"
)

func newValidateCmd(log func() *zap.Logger) *cobra.Command {
	var flags modelFlags

	c := &cobra.Command{
		Use:   "validate",
		Short: "Run the geometric invariant checklist against the derived layout",
		RunE: func(_ *cobra.Command, _ []string) error {
			m, err := flags.model()
			if err != nil {
				return err
			}

			l, err := layout.Derive(m)
			if err != nil {
				return err
			}

			r := validate.Run(m, l)
			fmt.Print(report.RenderValidation(r))

			if !r.Passed {
				for _, chk := range r.Failed() {
					log().Warn("check failed",
						zap.String("check", chk.Name),
						zap.Float64("margin_mm", chk.Margin))
				}
				return fmt.Errorf("validation failed: %d of %d checks", len(r.Failed()), len(r.Checks))
			}
			return nil
		},
	}
	flags.register(c)
	return c
}
