package core

import (
	"fmt"
	"sort"
)

// FailureKind discriminates the fatal outcomes of a match.
type FailureKind uint8

const (
	// MissingKey: expected mapping key absent from the actual mapping.
	MissingKey FailureKind = iota
	// MissingValue: expected element absent from the actual collection.
	MissingValue
	// ValueMismatch: scalar or shape disagreement.
	ValueMismatch
)

func (k FailureKind) String() string {
	switch k {
	case MissingKey:
		return "missing key"
	case MissingValue:
		return "missing value"
	case ValueMismatch:
		return "value mismatch"
	}
	return fmt.Sprintf("failure(%d)", uint8(k))
}

// MatchError is the first fatal violation found by Match.
type MatchError struct {
	Kind FailureKind

	// Key is set for MissingKey.
	Key string
	// Missing is set for MissingValue.
	Missing Value
	// Actual and Expected are set for ValueMismatch.
	Actual   Value
	Expected Value
}

func (e *MatchError) Error() string {
	switch e.Kind {
	case MissingKey:
		return fmt.Sprintf("missing key: %s", e.Key)
	case MissingValue:
		return fmt.Sprintf("missing value: %s", e.Missing)
	default:
		return fmt.Sprintf("differing values found: %s != %s", e.Actual, e.Expected)
	}
}

// WarningKind discriminates the non-fatal surplus findings.
type WarningKind uint8

const (
	ExtraKey WarningKind = iota
	ExtraValue
)

// Warning records surplus content in the actual value: a mapping key the
// expected side does not require, or a collection element it does not name.
type Warning struct {
	Kind  WarningKind
	Key   string // set for ExtraKey
	Value Value  // set for ExtraValue
}

func (w Warning) String() string {
	if w.Kind == ExtraKey {
		return fmt.Sprintf("extra key found: %s", w.Key)
	}
	return fmt.Sprintf("extra value found: %s", w.Value)
}

// Report is the outcome of one Match call: an optional fatal error plus any
// surplus-content warnings gathered along the way. Warnings never fail a
// check.
type Report struct {
	Err      *MatchError
	Warnings []Warning
}

// OK reports whether the actual value satisfied the expected one.
func (r Report) OK() bool { return r.Err == nil }

// Match decides whether actual satisfies expected under a subset-with-warnings
// policy:
//
//   - mapping vs mapping: every expected key must exist and its value must
//     match recursively; surplus actual keys warn.
//   - expected is a sequence and actual is any collection: every expected
//     element must be a member of actual (order- and duplicate-insensitive,
//     a mapping contributing its key set); surplus members warn.
//   - anything else, including an expected mapping against a sequence:
//     exact equality, which fails across shapes.
//
// Match is pure and fails fast on the first violation. Expected keys are
// visited in sorted order so the reported violation is stable.
func Match(actual, expected Value) Report {
	var r Report
	r.Err = matchValue(actual, expected, &r.Warnings)
	return r
}

func matchValue(actual, expected Value, warnings *[]Warning) *MatchError {
	switch {
	case actual.IsMapping() && expected.IsMapping():
		return matchMapping(actual, expected, warnings)
	case !actual.IsScalar() && expected.Kind() == KindSequence:
		return matchMembers(actual, expected, warnings)
	default:
		if !actual.Equal(expected) {
			return &MatchError{Kind: ValueMismatch, Actual: actual, Expected: expected}
		}
		return nil
	}
}

func matchMapping(actual, expected Value, warnings *[]Warning) *MatchError {
	for _, key := range expected.Keys() {
		got, ok := actual.Get(key)
		if !ok {
			return &MatchError{Kind: MissingKey, Key: key}
		}
		if err := matchValue(got, expected.fields[key], warnings); err != nil {
			return err
		}
	}
	for _, key := range actual.Keys() {
		if _, ok := expected.Get(key); !ok {
			*warnings = append(*warnings, Warning{Kind: ExtraKey, Key: key})
		}
	}
	return nil
}

func matchMembers(actual, expected Value, warnings *[]Warning) *MatchError {
	have := memberSet(actual)
	for _, want := range members(expected) {
		if _, ok := have[Freeze(want).Key()]; !ok {
			return &MatchError{Kind: MissingValue, Missing: want}
		}
	}

	wanted := memberSet(expected)
	surplus := make([]string, 0)
	for key := range have {
		if _, ok := wanted[key]; !ok {
			surplus = append(surplus, key)
		}
	}
	sort.Strings(surplus)
	for _, key := range surplus {
		*warnings = append(*warnings, Warning{Kind: ExtraValue, Value: have[key]})
	}
	return nil
}

// members is the iterable view of a collection: a sequence yields its
// elements, a mapping its keys.
func members(v Value) []Value {
	if v.IsMapping() {
		keys := v.Keys()
		out := make([]Value, len(keys))
		for i, k := range keys {
			out[i] = String(k)
		}
		return out
	}
	return v.Items()
}

// memberSet indexes the iterable view by canonical key, keeping one
// representative per distinct member.
func memberSet(v Value) map[string]Value {
	set := make(map[string]Value)
	for _, m := range members(v) {
		f := Freeze(m)
		set[f.Key()] = f.Value()
	}
	return set
}
