package tree

// Merge combines dst and src right-biased: when both are mappings they are
// merged key by key, recursively; in every other combination src replaces
// dst wholesale, so lists are never concatenated. Neither input is mutated.
func Merge(dst, src Value) Value {
	switch {
	case dst.kind == KindMap && src.kind == KindMap:
		return Object(MergeMaps(dst.fields, src.fields))
	default:
		return src.Clone()
	}
}

// MergeMaps returns a new mapping holding every key of defaults, with every
// key of overrides merged on top via [Merge].
func MergeMaps(defaults, overrides Map) Map {
	out := defaults.Clone()
	if out == nil {
		out = Map{}
	}
	for k, v := range overrides {
		if existing, ok := out[k]; ok {
			out[k] = Merge(existing, v)
			continue
		}
		out[k] = v.Clone()
	}
	return out
}
