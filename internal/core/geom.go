// Package core provides fundamental geometry types and collision routines for
// the simulation engine. It contains no external dependencies (especially no
// Bubble Tea) to keep engine logic pure and testable.
package core

import "math"

// epsilon below which a length or direction component is treated as zero.
const epsilon = 1e-6

// Vec2 is a 2D vector. Pure value type.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Length returns the Euclidean length of v.
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// LengthSq returns the squared length of v.
func (v Vec2) LengthSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize returns v scaled to unit length, or the zero vector when v is
// too short to carry a direction.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l <= epsilon {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Box is an axis-aligned rectangle used for static obstacles.
type Box struct {
	X, Y, W, H float64
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 {
	return b.X + b.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 {
	return b.Y + b.H
}

// ContainsPoint reports whether p lies inside the box, edges included.
func (b Box) ContainsPoint(p Vec2) bool {
	return p.X >= b.X && p.X <= b.Right() && p.Y >= b.Y && p.Y <= b.Bottom()
}

// ClosestPointOnBox clamps p into the box's extent on each axis.
func ClosestPointOnBox(p Vec2, b Box) Vec2 {
	return Vec2{
		X: ClampF(p.X, b.X, b.Right()),
		Y: ClampF(p.Y, b.Y, b.Bottom()),
	}
}

// ResolveCircleBox pushes the circle at *center fully outside the box if the
// two overlap, mutating *center. Returns whether a correction occurred.
//
// When the center is outside the box the push is along the vector from the
// closest boundary point to the center, scaled by the penetration depth. When
// the center is inside (distance to the boundary point is ~0) the push is
// along the axis of minimum penetration, ties broken in left, right, top,
// bottom order.
func ResolveCircleBox(center *Vec2, radius float64, b Box) bool {
	closest := ClosestPointOnBox(*center, b)
	d := center.Sub(closest)
	distSq := d.LengthSq()

	if distSq >= radius*radius {
		return false
	}

	if distSq > epsilon {
		dist := math.Sqrt(distSq)
		push := (radius - dist) / dist
		center.X += d.X * push
		center.Y += d.Y * push
		return true
	}

	// Center inside the box: exit through the cheapest face.
	left := center.X - b.X
	right := b.Right() - center.X
	top := center.Y - b.Y
	bottom := b.Bottom() - center.Y

	minPen := left
	axis := 0
	if right < minPen {
		minPen = right
		axis = 1
	}
	if top < minPen {
		minPen = top
		axis = 2
	}
	if bottom < minPen {
		axis = 3
	}

	switch axis {
	case 0:
		center.X = b.X - radius
	case 1:
		center.X = b.Right() + radius
	case 2:
		center.Y = b.Y - radius
	case 3:
		center.Y = b.Bottom() + radius
	}
	return true
}

// CircleOverlapsBox reports whether the circle touches the box. No mutation.
func CircleOverlapsBox(center Vec2, radius float64, b Box) bool {
	d := center.Sub(ClosestPointOnBox(center, b))
	return d.LengthSq() <= radius*radius
}

// RayBox returns the smallest non-negative parametric distance along dir at
// which the ray from origin hits the box, or +Inf on a miss. Slab method;
// direction components near zero are treated as parallel to the axis.
func RayBox(origin, dir Vec2, b Box) float64 {
	tmin := math.Inf(-1)
	tmax := math.Inf(1)

	if math.Abs(dir.X) < epsilon {
		if origin.X < b.X || origin.X > b.Right() {
			return math.Inf(1)
		}
	} else {
		tx1 := (b.X - origin.X) / dir.X
		tx2 := (b.Right() - origin.X) / dir.X
		if tx1 > tx2 {
			tx1, tx2 = tx2, tx1
		}
		tmin = math.Max(tmin, tx1)
		tmax = math.Min(tmax, tx2)
	}

	if math.Abs(dir.Y) < epsilon {
		if origin.Y < b.Y || origin.Y > b.Bottom() {
			return math.Inf(1)
		}
	} else {
		ty1 := (b.Y - origin.Y) / dir.Y
		ty2 := (b.Bottom() - origin.Y) / dir.Y
		if ty1 > ty2 {
			ty1, ty2 = ty2, ty1
		}
		tmin = math.Max(tmin, ty1)
		tmax = math.Min(tmax, ty2)
	}

	if tmax < 0 || tmin > tmax {
		return math.Inf(1)
	}
	if tmin >= 0 {
		return tmin
	}
	if tmax >= 0 {
		return tmax
	}
	return math.Inf(1)
}

// RayCircle returns 0 when origin is already inside the circle, else the
// nearest non-negative root of the quadratic intersection, or +Inf on a miss.
// dir is assumed to be unit length.
func RayCircle(origin, dir, center Vec2, radius float64) float64 {
	m := origin.Sub(center)
	bCoef := m.X*dir.X + m.Y*dir.Y
	c := m.LengthSq() - radius*radius

	if c <= 0 {
		return 0
	}
	disc := bCoef*bCoef - c
	if disc < 0 {
		return math.Inf(1)
	}

	sqrtDisc := math.Sqrt(disc)
	if t := -bCoef - sqrtDisc; t >= 0 {
		return t
	}
	if t := -bCoef + sqrtDisc; t >= 0 {
		return t
	}
	return math.Inf(1)
}

// HashAngle derives a deterministic unit vector from a pair of entity
// indices. Used to break ties when two entities occupy the exact same point
// without consuming the main RNG stream.
func HashAngle(i, j int) Vec2 {
	h := uint64(i+1)*0x9E3779B97F4A7C15 ^ uint64(j+1)*0xBF58476D1CE4E5B9
	h ^= h >> 31
	h *= 0x94D049BB133111EB
	h ^= h >> 29
	theta := float64(h%3600) / 3600.0 * 2 * math.Pi
	return Vec2{math.Cos(theta), math.Sin(theta)}
}

// Clamp restricts an integer to [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 to [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// SanitizeF replaces a non-finite value with fallback. Non-finite coordinates
// are defects neutralized at the point of detection rather than propagated.
func SanitizeF(val, fallback float64) float64 {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return fallback
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
