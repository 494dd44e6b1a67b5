package refs

import (
	"sort"
	"strings"
)

// CollectReferenceNames walks every nested object and array of the given
// schema maps and returns the distinct schema names referenced by string
// values such as "#/components/schemas/Pet", sorted.
func CollectReferenceNames(maps ...map[string]any) []string {
	seen := make(map[string]struct{})
	for _, m := range maps {
		collect(m, seen)
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func collect(v any, seen map[string]struct{}) {
	switch t := v.(type) {
	case map[string]any:
		for _, child := range t {
			collect(child, seen)
		}
	case []any:
		for _, child := range t {
			collect(child, seen)
		}
	case string:
		if strings.Contains(t, schemasSegment) {
			if name := SchemaName(t); name != "" {
				seen[name] = struct{}{}
			}
		}
	}
}
