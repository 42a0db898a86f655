package fixed

import (
	"math"
	"testing"
)

func TestFromFloatRoundTrip(t *testing.T) {
	cases := []float64{0, 1, -1, 1.5, -1.5, 3.5, 127, -128}
	for _, c := range cases {
		q := FromFloat(c)
		got := q.ToFloat()
		if math.Abs(got-c) > 1.0/256 {
			t.Errorf("FromFloat(%v).ToFloat() = %v, want ~%v", c, got, c)
		}
	}
}

func TestMul(t *testing.T) {
	a := FromFloat(2.0)
	b := FromFloat(0.5)
	got := Mul(a, b).ToFloat()
	if math.Abs(got-1.0) > 1.0/256 {
		t.Errorf("Mul(2.0, 0.5) = %v, want ~1.0", got)
	}
}

func TestClamp(t *testing.T) {
	limit := FromFloat(3.5)
	over := FromFloat(10)
	under := FromFloat(-10)
	if Clamp(over, limit) != limit {
		t.Errorf("expected clamp to +limit")
	}
	if Clamp(under, limit) != -limit {
		t.Errorf("expected clamp to -limit")
	}
}

func TestToCells(t *testing.T) {
	v := FromFloat(3.2)
	if n := ToCells(v); n != 3 {
		t.Errorf("ToCells(3.2) = %d, want 3", n)
	}
	v = FromFloat(0.9)
	if n := ToCells(v); n != 0 {
		t.Errorf("ToCells(0.9) = %d, want 0", n)
	}
}
