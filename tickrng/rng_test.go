package tickrng

import "testing"

func TestDeterministicSequence(t *testing.T) {
	a := New(1)
	b := New(1)
	for i := 0; i < 100; i++ {
		if a.Next() != b.Next() {
			t.Fatalf("sequences diverged at step %d", i)
		}
	}
}

func TestZeroSeedCoerced(t *testing.T) {
	r := New(0)
	if r.state != 1 {
		t.Errorf("expected zero seed coerced to 1, got %d", r.state)
	}
}

func TestFloatRange(t *testing.T) {
	r := New(12345)
	for i := 0; i < 1000; i++ {
		v := r.Float32()
		if v < 0 || v > 1 {
			t.Fatalf("Float32 out of range: %v", v)
		}
	}
}

func TestRangeBounds(t *testing.T) {
	r := New(42)
	for i := 0; i < 1000; i++ {
		v := r.Range(3, 7)
		if v < 3 || v > 7 {
			t.Fatalf("Range(3,7) returned %d", v)
		}
	}
}

func TestChanceClamped(t *testing.T) {
	r := New(7)
	for i := 0; i < 50; i++ {
		if r.Chance(0) {
			t.Fatal("Chance(0) should never fire")
		}
	}
	for i := 0; i < 50; i++ {
		if !r.Chance(1) {
			t.Fatal("Chance(1) should always fire")
		}
	}
}
