package layout

// Mirror reflects a layout across the frame's longitudinal axis, producing
// the opposite-hand record without re-deriving any dimension. The worm-entry
// and peg-bearing sides swap by sign flip; longitudinal positions, hole
// diameters and axial geometry are untouched. Mirror is its own inverse.
//
// Thread handedness of the worm itself is a construction-stage flag, not
// part of the dimensional layout.
func Mirror(l Layout) Layout {
	m := l
	m.Hand = l.Hand.Other()
	m.WormEntryX = -l.WormEntryX
	m.PegBearingX = -l.PegBearingX

	// Slices are shared state in a copied struct; the mirrored record must
	// not alias the source.
	m.Stations = append([]Station(nil), l.Stations...)
	m.MountingHoleYs = append([]float64(nil), l.MountingHoleYs...)
	return m
}
