package geom

import (
	"math"
	"testing"
)

func TestRectCenterAndContains(t *testing.T) {
	r := R(10, 20, 100, 50)
	if got, want := r.Center(), (Pt{60, 45}); got != want {
		t.Fatalf("Center() = %v, want %v", got, want)
	}
	if !r.Contains(Pt{10, 20}) || !r.Contains(Pt{110, 70}) {
		t.Fatalf("corners must be contained")
	}
	if r.Contains(Pt{9.9, 20}) {
		t.Fatalf("point left of rect reported contained")
	}
}

func TestRectInset(t *testing.T) {
	r := R(0, 0, 100, 100).Inset(10, 20)
	if r != (Rect{10, 20, 80, 60}) {
		t.Fatalf("Inset = %v", r)
	}
}

func TestInscribedSquare(t *testing.T) {
	c := Circle{Center: Pt{100, 100}, R: 50}
	sq := c.InscribedSquare(1)
	if math.Abs(sq.W-50*math.Sqrt2) > 1e-9 {
		t.Fatalf("side = %v, want %v", sq.W, 50*math.Sqrt2)
	}
	// The square's corner must lie on the circle (factor 1).
	dx := sq.X - c.Center.X
	dy := sq.Y - c.Center.Y
	if d := math.Hypot(dx, dy); math.Abs(d-c.R) > 1e-9 {
		t.Fatalf("corner distance = %v, want %v", d, c.R)
	}
	// A safety factor shrinks strictly inside.
	small := c.InscribedSquare(0.98)
	if small.W >= sq.W {
		t.Fatalf("factor 0.98 did not shrink the square")
	}
}

func TestFloatRound(t *testing.T) {
	if got := FloatRound(1.23456, 2); got != 1.23 {
		t.Fatalf("FloatRound = %v", got)
	}
	if got := FloatRound(2.5, 0); got != 3 {
		t.Fatalf("FloatRound half away from zero = %v", got)
	}
	if got := FloatRound(5.5, -1); got != 5.5 {
		t.Fatalf("negative places must be identity, got %v", got)
	}
}
