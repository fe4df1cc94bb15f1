package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gibtuner-go-migration/pkg/params"
)

func newProfilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List the manufacturing tolerance profiles",
		RunE: func(_ *cobra.Command, _ []string) error {
			fmt.Printf("%-16s %-9s %-11s %s\n", "NAME", "BEARING", "CLEARANCE", "DESCRIPTION")
			for _, p := range params.Profiles() {
				fmt.Printf("%-16s +%.2fmm   +%.2fmm     %s\n",
					p.Name, p.BearingOffset, p.ClearanceOffset, p.Description)
			}
			return nil
		},
	}
}
