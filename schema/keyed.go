package schema

import orderedmap "github.com/wk8/go-ordered-map/v2"

// keyed is a string-keyed map that keeps insertion order and decodes JSON
// objects in document order. Analyzer output is discovery-ordered, so the
// order keys appear in the payload is significant downstream.
type keyed[V any] struct {
	m *orderedmap.OrderedMap[string, V]
}

func (k *keyed[V]) set(key string, v V) {
	if k.m == nil {
		k.m = orderedmap.New[string, V]()
	}
	k.m.Set(key, v)
}

func (k *keyed[V]) get(key string) (V, bool) {
	if k.m == nil {
		var zero V
		return zero, false
	}
	return k.m.Get(key)
}

func (k *keyed[V]) keys() []string {
	if k.m == nil {
		return nil
	}
	out := make([]string, 0, k.m.Len())
	for pair := k.m.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

func (k *keyed[V]) size() int {
	if k.m == nil {
		return 0
	}
	return k.m.Len()
}

// UnmarshalJSON decodes a JSON object, keeping key order.
func (k *keyed[V]) UnmarshalJSON(data []byte) error {
	k.m = orderedmap.New[string, V]()
	return k.m.UnmarshalJSON(data)
}

// MarshalJSON encodes the map as a JSON object in insertion order.
func (k keyed[V]) MarshalJSON() ([]byte, error) {
	if k.m == nil {
		return []byte("{}"), nil
	}
	return k.m.MarshalJSON()
}
