package goku

import (
	"math"
	"math/rand/v2"
)

// Vec2 is a 2D float vector used for velocities, accelerations and forces.
type Vec2 struct {
	X, Y float32
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float32) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float32 {
	return float32(math.Hypot(float64(v.X), float64(v.Y)))
}

// IsZero reports whether both components are exactly zero.
func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

// Normalized returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vec2) Normalized() Vec2 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return Vec2{v.X / l, v.Y / l}
}

// Point is an integer 2D position in world space.
type Point struct {
	X, Y int
}

// Add returns p + o.
func (p Point) Add(o Point) Point { return Point{p.X + o.X, p.Y + o.Y} }

// Sub returns p - o.
func (p Point) Sub(o Point) Point { return Point{p.X - o.X, p.Y - o.Y} }

// Div divides both components by n, truncating toward zero.
func (p Point) Div(n int) Point { return Point{p.X / n, p.Y / n} }

// Rect is an integer axis-aligned rectangle. The coordinate system has its
// origin at the top-left, with Y increasing downward. All fields are settable.
type Rect struct {
	X, Y, Width, Height int
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Min returns the top-left corner.
func (r Rect) Min() Point { return Point{r.X, r.Y} }

// Max returns the bottom-right corner (exclusive).
func (r Rect) Max() Point { return Point{r.X + r.Width, r.Y + r.Height} }

// Size returns the width and height as a Point.
func (r Rect) Size() Point { return Point{r.Width, r.Height} }

// Contains reports whether the point (x, y) lies inside the rectangle.
// The right and bottom edges are exclusive.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width &&
		y >= r.Y && y < r.Y+r.Height
}

// Intersects reports whether r and other overlap with a non-zero area.
// Empty rectangles never intersect, and rectangles that only share an edge
// are not considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return false
	}
	return r.X < other.X+other.Width &&
		other.X < r.X+r.Width &&
		r.Y < other.Y+other.Height &&
		other.Y < r.Y+r.Height
}

// Offset moves the rectangle in place by (dx, dy).
func (r *Rect) Offset(dx, dy int) {
	r.X += dx
	r.Y += dy
}

// Translate returns a copy of r moved by p.
func (r Rect) Translate(p Point) Rect {
	return Rect{r.X + p.X, r.Y + p.Y, r.Width, r.Height}
}

// Range is a half-open [Min, Max) float range sampled by the particle
// spawners.
type Range struct {
	Min, Max float64
}

// Sample returns a value in [Min, Max) drawn from rng. A nil rng uses the
// package-level generator.
func (r Range) Sample(rng *rand.Rand) float64 {
	if r.Min >= r.Max {
		return r.Min
	}
	return r.Min + float64Of(rng)*(r.Max-r.Min)
}

// IntRange is a half-open [Min, Max) integer range.
type IntRange struct {
	Min, Max int
}

// Sample returns a value in [Min, Max) drawn from rng.
func (r IntRange) Sample(rng *rand.Rand) int {
	if r.Min >= r.Max {
		return r.Min
	}
	return r.Min + intNOf(rng, r.Max-r.Min)
}

func float64Of(rng *rand.Rand) float64 {
	if rng == nil {
		return rand.Float64()
	}
	return rng.Float64()
}

func intNOf(rng *rand.Rand, n int) int {
	if rng == nil {
		return rand.IntN(n)
	}
	return rng.IntN(n)
}

// clamp restricts v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
