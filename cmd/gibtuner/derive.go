package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"gibtuner-go-migration/pkg/layout"
)

func newDeriveCmd(log func() *zap.Logger) *cobra.Command {
	var flags modelFlags
	var output string

	c := &cobra.Command{
		Use:   "derive",
		Short: "Derive the full dimensional layout from the parameters",
		RunE: func(_ *cobra.Command, _ []string) error {
			m, err := flags.model()
			if err != nil {
				return err
			}

			l, err := layout.Derive(m)
			if err != nil {
				return err
			}

			log().Info("layout derived",
				zap.String("hand", string(l.Hand)),
				zap.Float64("scale", l.Scale),
				zap.Int("stations", len(l.Stations)),
				zap.Float64("total_length_mm", l.TotalLength))

			out := os.Stdout
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}

			enc := yaml.NewEncoder(out)
			defer enc.Close()
			return enc.Encode(l)
		},
	}
	flags.register(c)
	c.Flags().StringVarP(&output, "output", "o", "", "Write layout YAML to file instead of stdout")
	return c
}
