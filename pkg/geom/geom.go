// Package geom declares the boundary with the external boundary-representation
// geometry kernel. This core contains no kernel logic; it consumes a Kernel
// implementation supplied by the embedding application.
package geom

import (
	"errors"
)

// Axis names a principal rotation axis.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	default:
		return "?"
	}
}

// Solid is an opaque handle to a positioned solid owned by the kernel.
type Solid interface{}

// Sentinel error kinds a Kernel implementation reports through errors.Is.
var (
	// ErrNoIntersection: the boolean intersection is empty or degenerate.
	// Callers may treat it as zero overlap.
	ErrNoIntersection = errors.New("geom: no intersection")

	// ErrInvalidSolid: an input solid is malformed; no further boolean
	// operation on it can be trusted.
	ErrInvalidSolid = errors.New("geom: invalid solid")
)

// Kernel is the geometry engine surface this core depends on. Boolean
// operations return new solids; inputs are never mutated.
type Kernel interface {
	// IntersectionVolume reports the volume of solid overlap between two
	// positioned parts, >= 0.
	IntersectionVolume(a, b Solid) (float64, error)

	// Rotate returns a rotated by angleDeg about the given axis through the
	// origin.
	Rotate(s Solid, axis Axis, angleDeg float64) Solid

	// Translate returns s moved by (dx, dy, dz).
	Translate(s Solid, dx, dy, dz float64) Solid

	// Fuse and Cut are the boolean union and difference.
	Fuse(a, b Solid) (Solid, error)
	Cut(a, b Solid) (Solid, error)

	// ImportSTEP and ExportSTL move reference geometry across the file
	// boundary.
	ImportSTEP(path string) (Solid, error)
	ExportSTL(s Solid, path string) error
}
