package refs

import "slices"

// Activate returns a new active set with name's pointer added.
// Adding a pointer that is already active leaves the set as is.
func Activate(active []string, name string) []string {
	pointer := PointerFor(name)
	out := slices.Clone(active)
	if out == nil {
		out = []string{}
	}
	if slices.Contains(out, pointer) {
		return out
	}
	return append(out, pointer)
}

// RemoveActive returns a new active set without pointer.
func RemoveActive(active []string, pointer string) []string {
	out := make([]string, 0, len(active))
	for _, p := range active {
		if p != pointer {
			out = append(out, p)
		}
	}
	return out
}

// IsActive reports whether name or pointer is in the active set.
func IsActive(active []string, name string) bool {
	return slices.Contains(active, PointerFor(name))
}
