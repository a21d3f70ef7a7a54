package core

import "testing"

func TestFromAnyNormalizesNumbers(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"int", int(3), int64(3)},
		{"int32", int32(3), int64(3)},
		{"uint16", uint16(3), int64(3)},
		{"float32", float32(1.5), float64(1.5)},
		{"bool", true, true},
		{"string", "x", "x"},
		{"nil", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := FromAny(tt.in)
			if err != nil {
				t.Fatalf("FromAny(%v) failed: %v", tt.in, err)
			}
			if v.Raw() != tt.want {
				t.Errorf("Raw() = %v (%T), want %v (%T)", v.Raw(), v.Raw(), tt.want, tt.want)
			}
		})
	}

	if _, err := FromAny(make(chan int)); err == nil {
		t.Error("FromAny(chan) should fail")
	}
}

func TestFromAnyInterfaceRoundTrip(t *testing.T) {
	raw := map[string]any{
		"name": "ci",
		"jobs": []any{
			map[string]any{"id": "pre-commit", "fast": true},
		},
		"count": int64(2),
	}

	v, err := FromAny(raw)
	if err != nil {
		t.Fatal(err)
	}

	back, err := FromAny(v.Interface())
	if err != nil {
		t.Fatal(err)
	}
	if !v.Equal(back) {
		t.Errorf("round trip changed the value: %s vs %s", v, back)
	}
}

func TestValueEqualIsOrderSensitive(t *testing.T) {
	a := Seq(Int(1), Int(2))
	b := Seq(Int(2), Int(1))
	if a.Equal(b) {
		t.Error("Equal ignored sequence order")
	}
	if !Freeze(a).Equal(Freeze(b)) {
		t.Error("Freeze should ignore sequence order")
	}
}
