// Package report renders validation and mesh-alignment results as
// human-readable text blocks for the CLI.
package report

import (
	"fmt"
	"strings"

	"gibtuner-go-migration/pkg/mesh"
	"gibtuner-go-migration/pkg/validate"
)

// RenderValidation formats a validation report. Failed checks show their
// margin so the nearest fixes are obvious.
func RenderValidation(r validate.Report) string {
	var b strings.Builder

	status := "PASSED"
	if !r.Passed {
		status = "FAILED"
	}
	fmt.Fprintf(&b, "Validation %s\n", status)
	b.WriteString(strings.Repeat("-", 40))
	b.WriteByte('\n')

	for _, c := range r.Checks {
		mark := "[x]"
		if !c.Passed {
			mark = "[ ]"
		}
		fmt.Fprintf(&b, "%s %-28s margin %+.3fmm  (%s)\n", mark, c.Name, c.Margin, c.Detail)
	}
	return b.String()
}

// RenderMesh formats a mesh alignment result.
func RenderMesh(r mesh.Result, centerDistance float64, teeth int) string {
	var b strings.Builder

	rule := strings.Repeat("=", 50)
	b.WriteString(rule + "\n")
	b.WriteString("WORM-WHEEL MESH ALIGNMENT\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Wheel teeth:      %d\n", teeth)
	fmt.Fprintf(&b, "Tooth pitch:      %.2f deg\n", r.ToothPitchDeg)
	fmt.Fprintf(&b, "Center distance:  %.2fmm\n", centerDistance)
	fmt.Fprintf(&b, "Optimal rotation: %.2f deg\n", r.OptimalRotationDeg)
	fmt.Fprintf(&b, "Interference:     %.4fmm3\n", r.InterferenceVolume)
	fmt.Fprintf(&b, "Oracle samples:   %d\n", r.Samples)
	within := "yes"
	if !r.WithinTolerance {
		within = "NO"
	}
	fmt.Fprintf(&b, "Within tolerance: %s\n", within)
	fmt.Fprintf(&b, "Status: %s\n", r.Message)
	b.WriteString(rule + "\n")
	return b.String()
}
