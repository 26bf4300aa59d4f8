package core

import (
	"math"
	"testing"
)

func TestClosestPointOnBox(t *testing.T) {
	b := Box{X: 10, Y: 10, W: 20, H: 10}

	p := ClosestPointOnBox(Vec2{0, 0}, b)
	if p.X != 10 || p.Y != 10 {
		t.Errorf("Expected corner (10,10), got (%v,%v)", p.X, p.Y)
	}

	p = ClosestPointOnBox(Vec2{15, 25}, b)
	if p.X != 15 || p.Y != 20 {
		t.Errorf("Expected edge point (15,20), got (%v,%v)", p.X, p.Y)
	}

	inside := Vec2{12, 14}
	p = ClosestPointOnBox(inside, b)
	if p != inside {
		t.Errorf("Interior point should clamp to itself, got (%v,%v)", p.X, p.Y)
	}
}

func TestResolveCircleBoxNoOverlap(t *testing.T) {
	b := Box{X: 10, Y: 10, W: 20, H: 10}
	c := Vec2{50, 50}

	if ResolveCircleBox(&c, 5, b) {
		t.Error("Non-overlapping circle should not be corrected")
	}
	if c.X != 50 || c.Y != 50 {
		t.Errorf("Center moved without overlap: (%v,%v)", c.X, c.Y)
	}
}

func TestResolveCircleBoxPushOut(t *testing.T) {
	b := Box{X: 10, Y: 10, W: 20, H: 10}

	// Circle overlapping the left edge from outside.
	c := Vec2{7, 15}
	if !ResolveCircleBox(&c, 5, b) {
		t.Fatal("Expected correction for overlapping circle")
	}
	if math.Abs(c.X-5) > 1e-9 || c.Y != 15 {
		t.Errorf("Expected push to (5,15), got (%v,%v)", c.X, c.Y)
	}
	if CircleOverlapsBox(c, 4.999, b) {
		t.Error("Circle still overlaps after resolution")
	}
}

func TestResolveCircleBoxCenterInside(t *testing.T) {
	b := Box{X: 0, Y: 0, W: 100, H: 100}

	// Nearest face is the left one.
	c := Vec2{10, 50}
	if !ResolveCircleBox(&c, 5, b) {
		t.Fatal("Expected correction for center inside the box")
	}
	if c.X != -5 || c.Y != 50 {
		t.Errorf("Expected push out the left face to (-5,50), got (%v,%v)", c.X, c.Y)
	}

	// Equidistant from all faces: tie breaks to the left.
	c = Vec2{50, 50}
	ResolveCircleBox(&c, 5, b)
	if c.X != -5 || c.Y != 50 {
		t.Errorf("Tie should break toward left face, got (%v,%v)", c.X, c.Y)
	}
}

func TestCircleOverlapsBox(t *testing.T) {
	b := Box{X: 10, Y: 10, W: 20, H: 10}

	if !CircleOverlapsBox(Vec2{5, 15}, 6, b) {
		t.Error("Circle touching left edge should overlap")
	}
	if CircleOverlapsBox(Vec2{5, 15}, 4, b) {
		t.Error("Circle clear of left edge should not overlap")
	}
	if !CircleOverlapsBox(Vec2{15, 12}, 1, b) {
		t.Error("Circle inside the box should overlap")
	}
}

func TestRayBox(t *testing.T) {
	b := Box{X: 10, Y: -5, W: 10, H: 10}

	// Straight shot along +X.
	tHit := RayBox(Vec2{0, 0}, Vec2{1, 0}, b)
	if math.Abs(tHit-10) > 1e-9 {
		t.Errorf("Expected hit at t=10, got %v", tHit)
	}

	// Pointing away.
	if !math.IsInf(RayBox(Vec2{0, 0}, Vec2{-1, 0}, b), 1) {
		t.Error("Ray pointing away should miss")
	}

	// Parallel to X axis but outside the Y slab.
	if !math.IsInf(RayBox(Vec2{0, 20}, Vec2{1, 0}, b), 1) {
		t.Error("Axis-parallel ray outside the slab should miss")
	}

	// Origin inside the box: first boundary crossing is still non-negative.
	tHit = RayBox(Vec2{15, 0}, Vec2{1, 0}, b)
	if tHit < 0 || math.IsInf(tHit, 1) {
		t.Errorf("Ray from inside should report a finite non-negative hit, got %v", tHit)
	}
}

func TestRayCircle(t *testing.T) {
	center := Vec2{10, 0}

	tHit := RayCircle(Vec2{0, 0}, Vec2{1, 0}, center, 2)
	if math.Abs(tHit-8) > 1e-9 {
		t.Errorf("Expected hit at t=8, got %v", tHit)
	}

	if got := RayCircle(Vec2{10, 1}, Vec2{1, 0}, center, 2); got != 0 {
		t.Errorf("Origin inside circle should return 0, got %v", got)
	}

	if !math.IsInf(RayCircle(Vec2{0, 10}, Vec2{1, 0}, center, 2), 1) {
		t.Error("Ray passing above the circle should miss")
	}

	if !math.IsInf(RayCircle(Vec2{20, 0}, Vec2{1, 0}, center, 2), 1) {
		t.Error("Circle behind the origin should miss")
	}
}

func TestHashAngle(t *testing.T) {
	a := HashAngle(3, 7)
	if math.Abs(a.Length()-1) > 1e-9 {
		t.Errorf("HashAngle should be unit length, got %v", a.Length())
	}

	b := HashAngle(3, 7)
	if a != b {
		t.Error("HashAngle must be deterministic for the same pair")
	}

	c := HashAngle(7, 3)
	if a == c {
		t.Error("Swapped indices should produce a different direction")
	}
}

func TestSanitizeF(t *testing.T) {
	if got := SanitizeF(math.NaN(), 42); got != 42 {
		t.Errorf("NaN should fall back to 42, got %v", got)
	}
	if got := SanitizeF(math.Inf(1), 42); got != 42 {
		t.Errorf("+Inf should fall back to 42, got %v", got)
	}
	if got := SanitizeF(1.5, 42); got != 1.5 {
		t.Errorf("Finite value should pass through, got %v", got)
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 0, 10) != 5 {
		t.Error("Clamp(5, 0, 10) should be 5")
	}
	if Clamp(-5, 0, 10) != 0 {
		t.Error("Clamp(-5, 0, 10) should be 0")
	}
	if ClampF(1.5, 0, 1) != 1 {
		t.Error("ClampF(1.5, 0, 1) should be 1")
	}
}
