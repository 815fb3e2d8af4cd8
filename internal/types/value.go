package types

import (
	"encoding/json"
	"fmt"
)

/*
 * Tagged-variant value type for snapshot and condition entries.
 *
 * A Value is exactly one of: null, boolean, number, string, nested object,
 * or list. The variant replaces runtime type inspection of raw interface
 * values: matching is a visit over the Kind tag, and invalid shapes are
 * unrepresentable rather than discovered mid-evaluation.
 *
 * Equality is kind-sensitive with no coercion: Bool(true) never equals
 * Number(1), String("true") never equals Bool(true). Numbers carry float64
 * per JSON semantics, so 1 and 1.0 are the same Value.
 *
 * JSON round-trip: Value unmarshals from any JSON value and marshals back
 * to the equivalent JSON. Snapshots and catalog documents both decode
 * through this type.
 */

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindNested
	KindList
)

// String returns the kind name for diagnostics.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindNested:
		return "nested"
	case KindList:
		return "list"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is a tagged variant holding one snapshot or condition entry.
// The zero Value is null. Construct via Null, Bool, Number, String,
// Nested, or List; never mutate a Value after construction.
type Value struct {
	kind   Kind
	b      bool
	n      float64
	s      string
	nested map[string]Value
	list   []Value
}

// Null returns the null Value.
func Null() Value { return Value{} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a numeric Value. Integers and floats share this variant
// per JSON number semantics.
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Nested returns a one-level object Value. The map is retained, not
// copied; callers must not mutate it afterwards.
func Nested(m map[string]Value) Value {
	if m == nil {
		m = map[string]Value{}
	}
	return Value{kind: KindNested, nested: m}
}

// List returns a sequence Value. The slice is retained, not copied.
func List(vs []Value) Value { return Value{kind: KindList, list: vs} }

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// BoolVal returns the boolean payload; valid only when Kind is KindBool.
func (v Value) BoolVal() bool { return v.b }

// NumberVal returns the numeric payload; valid only when Kind is KindNumber.
func (v Value) NumberVal() float64 { return v.n }

// StringVal returns the string payload; valid only when Kind is KindString.
func (v Value) StringVal() string { return v.s }

// NestedVal returns the object payload; valid only when Kind is KindNested.
// The returned map is shared; treat it as read-only.
func (v Value) NestedVal() map[string]Value { return v.nested }

// ListVal returns the sequence payload; valid only when Kind is KindList.
func (v Value) ListVal() []Value { return v.list }

// Scalar reports whether the value is a boolean, number, or string.
func (v Value) Scalar() bool {
	switch v.kind {
	case KindBool, KindNumber, KindString:
		return true
	default:
		return false
	}
}

// Equal reports kind-sensitive deep equality. Values of different kinds are
// never equal; nested objects and lists compare element-wise.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindNumber:
		return v.n == o.n
	case KindString:
		return v.s == o.s
	case KindNested:
		if len(v.nested) != len(o.nested) {
			return false
		}
		for k, vv := range v.nested {
			ov, ok := o.nested[k]
			if !ok || !vv.Equal(ov) {
				return false
			}
		}
		return true
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// UnmarshalJSON implements json.Unmarshaler.
// Maps JSON null/bool/number/string/object/array onto the variant.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := fromAny(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		return json.Marshal(v.b)
	case KindNumber:
		return json.Marshal(v.n)
	case KindString:
		return json.Marshal(v.s)
	case KindNested:
		return json.Marshal(v.nested)
	case KindList:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownValueKind, v.kind)
	}
}

// fromAny converts a decoded JSON value into the variant representation.
func fromAny(raw any) (Value, error) {
	switch t := raw.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case float64:
		return Number(t), nil
	case string:
		return String(t), nil
	case map[string]any:
		m := make(map[string]Value, len(t))
		for k, sub := range t {
			sv, err := fromAny(sub)
			if err != nil {
				return Value{}, err
			}
			m[k] = sv
		}
		return Nested(m), nil
	case []any:
		vs := make([]Value, 0, len(t))
		for _, sub := range t {
			sv, err := fromAny(sub)
			if err != nil {
				return Value{}, err
			}
			vs = append(vs, sv)
		}
		return List(vs), nil
	default:
		return Value{}, fmt.Errorf("%w: %T", ErrUnknownValueKind, raw)
	}
}
