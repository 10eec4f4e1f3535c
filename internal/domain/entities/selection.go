package entities

import (
	"slices"
)

// ValidatorSelection narrows which validators run. Enable and Disable are
// mutually exclusive; both empty means everything runs.
type ValidatorSelection struct {
	Enable  []string
	Disable []string
}

// Validate checks exclusivity and that every name is known.
func (s ValidatorSelection) Validate(known []string) error {
	if len(s.Enable) > 0 && len(s.Disable) > 0 {
		return NewConfigError("--enable and --disable cannot be used together")
	}
	for _, name := range append(slices.Clone(s.Enable), s.Disable...) {
		if !slices.Contains(known, name) {
			return NewConfigError("unknown validator %q, expected one of %v", name, known)
		}
	}
	return nil
}

// Allows reports whether the named validator should run.
func (s ValidatorSelection) Allows(name string) bool {
	if len(s.Enable) > 0 {
		return slices.Contains(s.Enable, name)
	}
	return !slices.Contains(s.Disable, name)
}
