// Package refs resolves schema references between two versions of a spec
// and finds where referenced schema names occur in rendered pane text.
package refs

import (
	"encoding/json"
	"strings"

	"github.com/huangsam/specboard/schema"
	"sigs.k8s.io/yaml"
)

// schemasSegment separates the schema name from the rest of a pointer.
const schemasSegment = "/schemas/"

// ParseSchemas returns the components.schemas mapping of a JSON or YAML
// document. Empty, malformed or schema-less documents give an empty map.
func ParseSchemas(doc string) map[string]any {
	out := map[string]any{}
	if strings.TrimSpace(doc) == "" {
		return out
	}
	var root map[string]any
	if err := yaml.Unmarshal([]byte(doc), &root); err != nil {
		return out
	}
	components, ok := root["components"].(map[string]any)
	if !ok {
		return out
	}
	schemas, ok := components["schemas"].(map[string]any)
	if !ok {
		return out
	}
	return schemas
}

// SchemaName returns the part of pointer after its last "/schemas/" segment,
// with JSON pointer escapes decoded. A pointer without that segment is
// taken to be a bare name.
func SchemaName(pointer string) string {
	name := pointer
	if idx := strings.LastIndex(pointer, schemasSegment); idx >= 0 {
		name = pointer[idx+len(schemasSegment):]
	}
	return strings.ReplaceAll(strings.ReplaceAll(name, "~1", "/"), "~0", "~")
}

// PointerFor returns the schema pointer for a name. Values that already
// look like pointers are returned unchanged.
func PointerFor(name string) string {
	if strings.Contains(name, schemasSegment) {
		return name
	}
	return schema.SchemaPointerPrefix + strings.ReplaceAll(strings.ReplaceAll(name, "~", "~0"), "/", "~1")
}

// Resolve looks pointer up in both documents. Either document may be empty
// or malformed, and the name may be missing on either side; those cases
// produce empty maps, nil values and empty pane text rather than errors.
func Resolve(oldDoc, newDoc, pointer string) schema.Resolution {
	oldSchemas := ParseSchemas(oldDoc)
	newSchemas := ParseSchemas(newDoc)
	name := SchemaName(pointer)

	res := schema.Resolution{
		Pointer:    PointerFor(name),
		Name:       name,
		OldSchemas: oldSchemas,
		NewSchemas: newSchemas,
		Candidates: CollectReferenceNames(oldSchemas, newSchemas),
	}
	if v, ok := oldSchemas[name]; ok {
		res.OldValue = v
		res.OldText = RenderPane(v)
	}
	if v, ok := newSchemas[name]; ok {
		res.NewValue = v
		res.NewText = RenderPane(v)
	}
	return res
}

// ResolveActive resolves every pinned pointer, keeping the pinned order.
func ResolveActive(oldDoc, newDoc string, active []string) []schema.Resolution {
	out := make([]schema.Resolution, 0, len(active))
	for _, pointer := range active {
		out = append(out, Resolve(oldDoc, newDoc, pointer))
	}
	return out
}

// RenderPane formats a schema fragment the way the diff panes show it.
// A nil fragment renders as an empty pane.
func RenderPane(v any) string {
	if v == nil {
		return ""
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ""
	}
	return string(b) + "\n"
}
