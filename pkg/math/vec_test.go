package math

import (
	"math"
	"testing"
)

func TestVec2Sub(t *testing.T) {
	got := Vec2{3, 4}.Sub(Vec2{1, 1})
	want := Vec2{2, 3}
	if got != want {
		t.Errorf("Vec2.Sub() = %v, want %v", got, want)
	}
}

func TestVec3Cross(t *testing.T) {
	got := Vec3{1, 0, 0}.Cross(Vec3{0, 1, 0})
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3NormalizeZero(t *testing.T) {
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("Normalize of zero = %v, want zero", got)
	}
}

func TestVec3Lerp(t *testing.T) {
	a := Vec3{0, 0.5, 0}
	b := Vec3{2, 2.5, -2}
	tests := []struct {
		t    float64
		want Vec3
	}{
		{0, a},
		{1, b},
		{0.5, Vec3{1, 1.5, -1}},
	}
	for _, tt := range tests {
		if got := a.Lerp(b, tt.t); got != tt.want {
			t.Errorf("Lerp(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{2.5, 3},
		{-2.5, -2},
		{-2.6, -3},
		{359.6, 360},
		{0.4, 0},
	}
	for _, tt := range tests {
		if got := Round(tt.in); got != tt.want {
			t.Errorf("Round(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRoundTo(t *testing.T) {
	if got := RoundTo(3.14159, 1); math.Abs(got-3.1) > 1e-12 {
		t.Errorf("RoundTo(3.14159, 1) = %v, want 3.1", got)
	}
	if got := RoundTo(7.25, 1); math.Abs(got-7.3) > 1e-12 {
		t.Errorf("RoundTo(7.25, 1) = %v, want 7.3", got)
	}
}

func TestClamp(t *testing.T) {
	if Clamp(-5, 0, 10) != 0 || Clamp(15, 0, 10) != 10 || Clamp(4, 0, 10) != 4 {
		t.Error("Clamp returned value outside range")
	}
}
