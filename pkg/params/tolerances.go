package params

import (
	"sort"
	"strings"

	"gibtuner-go-migration/pkg/errors"
)

// ToleranceProfile is a named set of additive offsets applied to nominal
// bore diameters. BearingOffset sizes running fits (a shaft turning in a
// reamed hole), ClearanceOffset sizes sliding/pass-through fits. Offsets are
// fit gaps: they are never multiplied by the build scale.
type ToleranceProfile struct {
	Name            string
	Description     string
	BearingOffset   float64
	ClearanceOffset float64
}

// The profile catalog is closed: profiles are resolved by name once at the
// boundary and passed by value thereafter.
var profileCatalog = map[string]ToleranceProfile{
	"production": {
		Name:            "production",
		Description:     "Machined brass (final production)",
		BearingOffset:   0.05,
		ClearanceOffset: 0.10,
	},
	"prototype-resin": {
		Name:            "prototype-resin",
		Description:     "1:1 resin print validation",
		BearingOffset:   0.10,
		ClearanceOffset: 0.15,
	},
	"prototype-fdm": {
		Name:            "prototype-fdm",
		Description:     "2:1 FDM functional test",
		BearingOffset:   0.20,
		ClearanceOffset: 0.30,
	},
}

// ProfileByName resolves a tolerance profile from the catalog.
func ProfileByName(name string) (ToleranceProfile, error) {
	p, ok := profileCatalog[name]
	if !ok {
		names := make([]string, 0, len(profileCatalog))
		for n := range profileCatalog {
			names = append(names, n)
		}
		sort.Strings(names)
		return ToleranceProfile{}, errors.ConfigProfileError(name, strings.Join(names, ", "))
	}
	return p, nil
}

// Profiles returns the catalog in stable name order.
func Profiles() []ToleranceProfile {
	names := make([]string, 0, len(profileCatalog))
	for n := range profileCatalog {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]ToleranceProfile, 0, len(names))
	for _, n := range names {
		out = append(out, profileCatalog[n])
	}
	return out
}
