// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tree

import (
	"fmt"
	"math"
	"strconv"
)

// Kind tags the variant held by a [Value].
type Kind uint8

const (
	// KindNull is the zero Value: no data.
	KindNull Kind = iota
	// KindScalar holds a string, number, bool or an opaque Go value
	// (for example a resolved callback function).
	KindScalar
	// KindList holds an ordered list of values.
	KindList
	// KindMap holds a nested mapping.
	KindMap
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "null"
	}
}

// Value is one node of the configuration tree. Exactly one of the variant
// fields is meaningful, selected by kind.
type Value struct {
	kind   Kind
	scalar any
	list   []Value
	fields Map
}

// Null returns the empty Value.
func Null() Value {
	return Value{}
}

// Scalar wraps a single non-container value.
func Scalar(v any) Value {
	return Value{kind: KindScalar, scalar: v}
}

// List wraps an ordered list of values.
func List(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindList, list: items}
}

// Strings builds a list of string scalars.
func Strings(items ...string) Value {
	list := make([]Value, 0, len(items))
	for _, s := range items {
		list = append(list, Scalar(s))
	}
	return Value{kind: KindList, list: list}
}

// Object wraps a nested mapping.
func Object(m Map) Value {
	if m == nil {
		m = Map{}
	}
	return Value{kind: KindMap, fields: m}
}

// FromAny converts decoded data (as produced by encoding/json, yaml.v3,
// BurntSushi/toml or the HCL loader) into a Value. Maps and slices are
// converted recursively; everything else becomes a scalar.
func FromAny(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null()
	case Value:
		return t
	case Map:
		return Object(t)
	case map[string]any:
		m := make(Map, len(t))
		for k, item := range t {
			m[k] = FromAny(item)
		}
		return Object(m)
	case map[any]any:
		m := make(Map, len(t))
		for k, item := range t {
			m[fmt.Sprint(k)] = FromAny(item)
		}
		return Object(m)
	case map[string]string:
		m := make(Map, len(t))
		for k, item := range t {
			m[k] = Scalar(item)
		}
		return Object(m)
	case []Value:
		return List(t...)
	case []any:
		list := make([]Value, 0, len(t))
		for _, item := range t {
			list = append(list, FromAny(item))
		}
		return List(list...)
	case []map[string]any:
		list := make([]Value, 0, len(t))
		for _, item := range t {
			list = append(list, FromAny(item))
		}
		return List(list...)
	case []string:
		return Strings(t...)
	default:
		return Scalar(v)
	}
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v holds no data.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsScalar reports whether v is a scalar.
func (v Value) IsScalar() bool { return v.kind == KindScalar }

// IsList reports whether v is a list.
func (v Value) IsList() bool { return v.kind == KindList }

// IsMap reports whether v is a mapping.
func (v Value) IsMap() bool { return v.kind == KindMap }

// Scalar returns the raw scalar, or nil when v is not a scalar.
func (v Value) Scalar() any {
	if v.kind != KindScalar {
		return nil
	}
	return v.scalar
}

// List returns the list items, or nil when v is not a list.
func (v Value) List() []Value {
	if v.kind != KindList {
		return nil
	}
	return v.list
}

// Map returns the nested mapping, or nil when v is not a mapping.
func (v Value) Map() Map {
	if v.kind != KindMap {
		return nil
	}
	return v.fields
}

// Str returns the value as a string if it is a string scalar.
func (v Value) Str() (string, bool) {
	s, ok := v.Scalar().(string)
	return s, ok
}

// StringOr returns the string scalar or def.
func (v Value) StringOr(def string) string {
	if s, ok := v.Str(); ok {
		return s
	}
	return def
}

// Bool returns the value as a bool. String scalars "true"/"false"/"1"/"0"
// are accepted since flat request parameters arrive as strings.
func (v Value) Bool() (bool, bool) {
	switch t := v.Scalar().(type) {
	case bool:
		return t, true
	case string:
		b, err := strconv.ParseBool(t)
		return b, err == nil
	}
	return false, false
}

// BoolOr returns the bool scalar or def.
func (v Value) BoolOr(def bool) bool {
	if b, ok := v.Bool(); ok {
		return b
	}
	return def
}

// Int returns the value as an int when it holds an integral number.
func (v Value) Int() (int, bool) {
	switch t := v.Scalar().(type) {
	case int:
		return t, true
	case int8:
		return int(t), true
	case int16:
		return int(t), true
	case int32:
		return int(t), true
	case int64:
		return int(t), true
	case uint:
		return int(t), true
	case uint8:
		return int(t), true
	case uint16:
		return int(t), true
	case uint32:
		return int(t), true
	case uint64:
		return int(t), true
	case float32:
		if float64(t) == math.Trunc(float64(t)) {
			return int(t), true
		}
	case float64:
		if t == math.Trunc(t) {
			return int(t), true
		}
	case string:
		n, err := strconv.Atoi(t)
		return n, err == nil
	}
	return 0, false
}

// IntOr returns the integral scalar or def.
func (v Value) IntOr(def int) int {
	if n, ok := v.Int(); ok {
		return n
	}
	return def
}

// StringList returns the string items of a list value, skipping
// non-string entries.
func (v Value) StringList() []string {
	items := v.List()
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.Str(); ok {
			out = append(out, s)
		}
	}
	return out
}

// Interface converts v back into plain Go data: map[string]any, []any or
// the scalar itself.
func (v Value) Interface() any {
	switch v.kind {
	case KindScalar:
		return v.scalar
	case KindList:
		out := make([]any, 0, len(v.list))
		for _, item := range v.list {
			out = append(out, item.Interface())
		}
		return out
	case KindMap:
		return v.fields.Interface()
	default:
		return nil
	}
}

// Clone returns a deep copy of v. Scalars are copied by value.
func (v Value) Clone() Value {
	switch v.kind {
	case KindList:
		list := make([]Value, 0, len(v.list))
		for _, item := range v.list {
			list = append(list, item.Clone())
		}
		return Value{kind: KindList, list: list}
	case KindMap:
		return Value{kind: KindMap, fields: v.fields.Clone()}
	default:
		return v
	}
}

// Equal reports whether v and other hold the same data. Scalars are
// compared with ==; incomparable scalars (such as functions) are never equal.
func (v Value) Equal(other Value) (equal bool) {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindScalar:
		defer func() {
			if recover() != nil {
				equal = false
			}
		}()
		return v.scalar == other.scalar
	case KindList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(other.list[i]) {
				return false
			}
		}
		return true
	default:
		return v.fields.Equal(other.fields)
	}
}

// String renders the value for logs.
func (v Value) String() string {
	return fmt.Sprint(v.Interface())
}
