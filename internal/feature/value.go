package feature

import (
	"encoding/json"
	"slices"
	"sort"
	"strings"
)

// Feature names produced by the parser.
const (
	Glyph                   = "glyph"
	Place                   = "place"
	Manner                  = "manner"
	Voice                   = "voice"
	AdditionalArticulations = "additional articulations"
	PreFeatures             = "pre-features"
)

// IsListFeature reports whether the named feature holds a list value.
func IsListFeature(name string) bool {
	return name == AdditionalArticulations || name == PreFeatures
}

// Kind distinguishes absent, scalar and list values.
type Kind int

const (
	KindAbsent Kind = iota
	KindScalar
	KindList
)

// Value is a single feature value. The zero Value is absent.
type Value struct {
	kind   Kind
	scalar string
	list   []string
}

// Scalar returns a scalar value.
func Scalar(s string) Value {
	return Value{kind: KindScalar, scalar: s}
}

// List returns a list value. The items are copied.
func List(items ...string) Value {
	return Value{kind: KindList, list: slices.Clone(items)}
}

func (v Value) Kind() Kind      { return v.kind }
func (v Value) IsPresent() bool { return v.kind != KindAbsent }

// Str returns the scalar string, or "" for list and absent values.
func (v Value) Str() string {
	return v.scalar
}

// Items returns a copy of the list items.
func (v Value) Items() []string {
	return slices.Clone(v.list)
}

// Equal is exact equality. Lists compare element by element in order.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindScalar:
		return v.scalar == o.scalar
	case KindList:
		return slices.Equal(v.list, o.list)
	}
	return true
}

// SameItems compares two list values as multisets.
func (v Value) SameItems(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	a, b := slices.Clone(v.list), slices.Clone(o.list)
	sort.Strings(a)
	sort.Strings(b)
	return slices.Equal(a, b)
}

func (v Value) String() string {
	switch v.kind {
	case KindScalar:
		return v.scalar
	case KindList:
		return "[" + strings.Join(v.list, ", ") + "]"
	}
	return "<absent>"
}

// MarshalJSON encodes scalars as strings, lists as arrays and absent
// values as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindScalar:
		return json.Marshal(v.scalar)
	case KindList:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	}
	return []byte("null"), nil
}

// Record is the parsed feature set of one descriptor.
type Record struct {
	values map[string]Value
}

// NewRecord builds a record from the given values. Absent values are
// dropped and list values are copied.
func NewRecord(values map[string]Value) Record {
	r := Record{values: make(map[string]Value, len(values))}
	for k, v := range values {
		if !v.IsPresent() {
			continue
		}
		if v.kind == KindList {
			v = List(v.list...)
		}
		r.values[k] = v
	}
	return r
}

// Get returns the value of the named feature and whether it is present.
func (r Record) Get(name string) (Value, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Has reports whether the named feature is present.
func (r Record) Has(name string) bool {
	_, ok := r.values[name]
	return ok
}

// Lookup returns the named value, or the absent Value.
func (r Record) Lookup(name string) Value {
	return r.values[name]
}

// Keys returns the present feature names in sorted order.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r.values))
	for k := range r.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (r Record) Len() int { return len(r.values) }

// MarshalJSON encodes the record as a JSON object.
func (r Record) MarshalJSON() ([]byte, error) {
	if r.values == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(r.values)
}
