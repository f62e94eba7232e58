package tree

// Map is a configuration mapping: at the top level it maps section names to
// sections, below that keys to values.
type Map map[string]Value

// Get navigates the mapping along path. With an empty path it returns the
// whole mapping. The second result is false when any segment is missing or
// a non-final segment is not a mapping.
func (m Map) Get(path ...string) (Value, bool) {
	if len(path) == 0 {
		return Object(m), m != nil
	}

	current := m
	for i, key := range path {
		v, ok := current[key]
		if !ok {
			return Null(), false
		}
		if i == len(path)-1 {
			return v, true
		}
		if !v.IsMap() {
			return Null(), false
		}
		current = v.Map()
	}

	return Null(), false
}

// Set writes value at path, creating intermediate mappings as needed and
// replacing non-mapping values found on the way. An empty path is a no-op.
func (m Map) Set(value Value, path ...string) {
	if len(path) == 0 || m == nil {
		return
	}

	current := m
	for _, key := range path[:len(path)-1] {
		next, ok := current[key]
		if !ok || !next.IsMap() {
			next = Object(Map{})
			current[key] = next
		}
		current = next.Map()
	}
	current[path[len(path)-1]] = value
}

// Section returns the mapping stored under name, or an empty mapping.
func (m Map) Section(name string) Map {
	if v, ok := m[name]; ok && v.IsMap() {
		return v.Map()
	}
	return Map{}
}

// Clone returns a deep copy of m.
func (m Map) Clone() Map {
	if m == nil {
		return nil
	}
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v.Clone()
	}
	return out
}

// Equal reports whether both mappings hold the same keys and values.
func (m Map) Equal(other Map) bool {
	if len(m) != len(other) {
		return false
	}
	for k, v := range m {
		o, ok := other[k]
		if !ok || !v.Equal(o) {
			return false
		}
	}
	return true
}

// Interface converts m into map[string]any.
func (m Map) Interface() map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v.Interface()
	}
	return out
}

// MapFromAny converts decoded data into a Map. Non-mapping input yields an
// empty Map.
func MapFromAny(v any) Map {
	if m := FromAny(v).Map(); m != nil {
		return m
	}
	return Map{}
}
