package core

import (
	"sort"
	"strconv"
	"strings"
)

// Frozen is the canonical, order-insensitive projection of a Value.
//
// Two Values freeze equal iff they hold the same multiset of elements
// recursively, regardless of sequence order or mapping iteration order.
// Equality and set membership go through the canonical key, an unambiguous
// string encoding of the whole structure; the representative Value is kept
// so diffs can report the offending element in its original shape.
type Frozen struct {
	key string
	val Value
}

// Freeze canonicalizes a Value. It never mutates its input; sequences in the
// representative are re-ordered by canonical key so freezing is idempotent.
func Freeze(v Value) Frozen {
	switch v.Kind() {
	case KindSequence:
		elems := make([]Frozen, len(v.Items()))
		for i, e := range v.Items() {
			elems[i] = Freeze(e)
		}
		sort.Slice(elems, func(i, j int) bool { return elems[i].key < elems[j].key })

		var b strings.Builder
		canon := make([]Value, len(elems))
		b.WriteString("l:")
		for i, e := range elems {
			writeDelimited(&b, e.key)
			canon[i] = e.val
		}
		return Frozen{key: b.String(), val: Seq(canon...)}

	case KindMapping:
		keys := v.Keys()
		fields := make(map[string]Value, len(keys))
		var b strings.Builder
		b.WriteString("m:")
		for _, k := range keys {
			fv := Freeze(v.fields[k])
			writeDelimited(&b, k)
			writeDelimited(&b, fv.key)
			fields[k] = fv.val
		}
		return Frozen{key: b.String(), val: Map(fields)}

	default:
		return Frozen{key: scalarKey(v.Raw()), val: v}
	}
}

// Key returns the canonical key. Equal keys mean structurally equal
// multisets.
func (f Frozen) Key() string { return f.key }

// Value returns the canonical representative.
func (f Frozen) Value() Value { return f.val }

// Equal reports order-insensitive structural equality.
func (f Frozen) Equal(g Frozen) bool { return f.key == g.key }

// writeDelimited writes a length-prefixed segment so composite keys cannot
// collide across element boundaries.
func writeDelimited(b *strings.Builder, s string) {
	b.WriteString(strconv.Itoa(len(s)))
	b.WriteByte(':')
	b.WriteString(s)
}

// scalarKey encodes a scalar with a type tag. int64(1) and float64(1) encode
// differently, matching Value.Equal.
func scalarKey(raw any) string {
	switch s := raw.(type) {
	case nil:
		return "z"
	case bool:
		if s {
			return "b:t"
		}
		return "b:f"
	case int64:
		return "i:" + strconv.FormatInt(s, 10)
	case float64:
		return "f:" + strconv.FormatFloat(s, 'g', -1, 64)
	case string:
		return "s:" + s
	default:
		// FromAny never produces these; fall back to a tagged literal.
		return "x:" + Scalar(raw).String()
	}
}
