// Value is the central entity of the domain.
package core

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Kind discriminates the three shapes a configuration fragment can take.
type Kind uint8

const (
	KindScalar Kind = iota
	KindSequence
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Value is a configuration fragment: a scalar, a sequence of Values, or a
// mapping from string keys to Values. It is the uniform shape every loader
// produces and every check consumes.
//
// Scalars are restricted to nil, bool, int64, float64 and string; FromAny
// normalizes the wider set of types decoders emit into these.
type Value struct {
	kind   Kind
	scalar any
	seq    []Value
	fields map[string]Value
}

// Scalar wraps a raw scalar. The input must already be one of the five
// normalized scalar types; use FromAny for arbitrary decoder output.
func Scalar(v any) Value {
	return Value{kind: KindScalar, scalar: v}
}

// String wraps a string scalar.
func String(s string) Value { return Scalar(s) }

// Int wraps an integer scalar.
func Int(i int64) Value { return Scalar(i) }

// Float wraps a floating point scalar.
func Float(f float64) Value { return Scalar(f) }

// Bool wraps a boolean scalar.
func Bool(b bool) Value { return Scalar(b) }

// Null is the nil scalar.
func Null() Value { return Scalar(nil) }

// Seq builds a sequence Value from its elements.
func Seq(elems ...Value) Value {
	return Value{kind: KindSequence, seq: elems}
}

// Strings builds a sequence of string scalars.
func Strings(ss ...string) Value {
	elems := make([]Value, len(ss))
	for i, s := range ss {
		elems[i] = String(s)
	}
	return Seq(elems...)
}

// Map builds a mapping Value. The map is used as-is, not copied.
func Map(fields map[string]Value) Value {
	if fields == nil {
		fields = map[string]Value{}
	}
	return Value{kind: KindMapping, fields: fields}
}

// FromAny converts arbitrary decoder output (map[string]any, []any, scalars
// of any width, json.Number) into a Value. It fails on types that have no
// place in configuration data, such as channels or structs.
func FromAny(raw any) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return Null(), nil
	case Value:
		return v, nil
	case bool:
		return Bool(v), nil
	case string:
		return String(v), nil
	case int:
		return Int(int64(v)), nil
	case int8:
		return Int(int64(v)), nil
	case int16:
		return Int(int64(v)), nil
	case int32:
		return Int(int64(v)), nil
	case int64:
		return Int(v), nil
	case uint:
		return Int(int64(v)), nil
	case uint8:
		return Int(int64(v)), nil
	case uint16:
		return Int(int64(v)), nil
	case uint32:
		return Int(int64(v)), nil
	case uint64:
		return Int(int64(v)), nil
	case float32:
		return Float(float64(v)), nil
	case float64:
		return Float(v), nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return Int(i), nil
		}
		f, err := v.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("invalid number %q: %w", v.String(), err)
		}
		return Float(f), nil
	case []any:
		elems := make([]Value, len(v))
		for i, e := range v {
			ev, err := FromAny(e)
			if err != nil {
				return Value{}, err
			}
			elems[i] = ev
		}
		return Seq(elems...), nil
	case []string:
		return Strings(v...), nil
	case map[string]any:
		fields := make(map[string]Value, len(v))
		for k, e := range v {
			ev, err := FromAny(e)
			if err != nil {
				return Value{}, err
			}
			fields[k] = ev
		}
		return Map(fields), nil
	case map[any]any:
		// Some YAML decoders key mappings with non-string scalars.
		fields := make(map[string]Value, len(v))
		for k, e := range v {
			ev, err := FromAny(e)
			if err != nil {
				return Value{}, err
			}
			fields[fmt.Sprint(k)] = ev
		}
		return Map(fields), nil
	default:
		return Value{}, fmt.Errorf("unsupported value type %T", raw)
	}
}

// MustFromAny is FromAny for literal tables known to be well-formed.
func MustFromAny(raw any) Value {
	v, err := FromAny(raw)
	if err != nil {
		panic(err)
	}
	return v
}

// Kind returns the shape discriminator.
func (v Value) Kind() Kind { return v.kind }

// IsScalar reports whether v is a scalar.
func (v Value) IsScalar() bool { return v.kind == KindScalar }

// IsMapping reports whether v is a mapping.
func (v Value) IsMapping() bool { return v.kind == KindMapping }

// Raw returns the underlying scalar. It is nil for collections.
func (v Value) Raw() any {
	if v.kind != KindScalar {
		return nil
	}
	return v.scalar
}

// Items returns the elements of a sequence, nil otherwise.
func (v Value) Items() []Value {
	if v.kind != KindSequence {
		return nil
	}
	return v.seq
}

// Fields returns the underlying mapping, nil otherwise.
func (v Value) Fields() map[string]Value {
	if v.kind != KindMapping {
		return nil
	}
	return v.fields
}

// Get looks up a key in a mapping.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindMapping {
		return Value{}, false
	}
	e, ok := v.fields[key]
	return e, ok
}

// Len returns the number of elements or fields; 0 for scalars.
func (v Value) Len() int {
	switch v.kind {
	case KindSequence:
		return len(v.seq)
	case KindMapping:
		return len(v.fields)
	}
	return 0
}

// Keys returns the sorted keys of a mapping, nil otherwise.
func (v Value) Keys() []string {
	if v.kind != KindMapping {
		return nil
	}
	keys := make([]string, 0, len(v.fields))
	for k := range v.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Equal reports exact, order-sensitive structural equality.
// For order-insensitive comparison use Freeze.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindScalar:
		return v.scalar == o.scalar
	case KindSequence:
		if len(v.seq) != len(o.seq) {
			return false
		}
		for i := range v.seq {
			if !v.seq[i].Equal(o.seq[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		if len(v.fields) != len(o.fields) {
			return false
		}
		for k, e := range v.fields {
			oe, ok := o.fields[k]
			if !ok || !e.Equal(oe) {
				return false
			}
		}
		return true
	}
	return false
}

// Interface converts back to plain Go data (map[string]any, []any, scalars),
// the inverse of FromAny.
func (v Value) Interface() any {
	switch v.kind {
	case KindScalar:
		return v.scalar
	case KindSequence:
		out := make([]any, len(v.seq))
		for i, e := range v.seq {
			out[i] = e.Interface()
		}
		return out
	case KindMapping:
		out := make(map[string]any, len(v.fields))
		for k, e := range v.fields {
			out[k] = e.Interface()
		}
		return out
	}
	return nil
}

// String renders the value for error messages and warnings. Mappings render
// with sorted keys so messages are stable.
func (v Value) String() string {
	switch v.kind {
	case KindScalar:
		if v.scalar == nil {
			return "null"
		}
		if s, ok := v.scalar.(string); ok {
			return s
		}
		return fmt.Sprint(v.scalar)
	case KindSequence:
		out := "["
		for i, e := range v.seq {
			if i > 0 {
				out += ", "
			}
			out += e.String()
		}
		return out + "]"
	case KindMapping:
		out := "{"
		for i, k := range v.Keys() {
			if i > 0 {
				out += ", "
			}
			out += k + ": " + v.fields[k].String()
		}
		return out + "}"
	}
	return ""
}
