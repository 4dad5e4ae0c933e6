package goku

import "fmt"

// Obstacles answers whether a rectangle overlaps existing geometry. Static
// tile colliders, other entities and placed shapes all implement it so both
// collision policies consume the same predicate.
type Obstacles interface {
	Intersects(r Rect) bool
}

// Colliders is a flat list of rectangles tested with a linear scan.
type Colliders []Rect

// Intersects reports whether r overlaps any collider.
func (c Colliders) Intersects(r Rect) bool {
	for _, o := range c {
		if o.Intersects(r) {
			return true
		}
	}
	return false
}

// ObstacleSet is the union of several obstacle sources. Nil members are
// skipped.
type ObstacleSet []Obstacles

// Intersects reports whether any member intersects r.
func (s ObstacleSet) Intersects(r Rect) bool {
	for _, o := range s {
		if o != nil && o.Intersects(r) {
			return true
		}
	}
	return false
}

// ObstacleFunc adapts a function to Obstacles.
type ObstacleFunc func(r Rect) bool

func (f ObstacleFunc) Intersects(r Rect) bool { return f(r) }

// noObstacles is used when a caller passes nil.
type noObstacles struct{}

func (noObstacles) Intersects(Rect) bool { return false }

// Resolution is the outcome of one collision-resolved move.
type Resolution struct {
	// Blocks are the committed block positions. They equal the input blocks
	// when the move was rejected.
	Blocks []Rect
	// Moved is true when at least part of the offset was committed.
	Moved bool
	// Collided is true when any check failed.
	Collided bool
	// Landed is true when downward motion was stopped.
	Landed bool
}

// CollisionPolicy decides how a group of blocks moving by offset reacts to
// obstacles. Policies may modify body, for example to zero a velocity axis.
// The input blocks are never modified.
type CollisionPolicy interface {
	Resolve(blocks []Rect, offset Point, body *RigidBody, obs Obstacles) Resolution
}

// RejectAll discards the whole move if any block would overlap an obstacle.
type RejectAll struct{}

// Resolve implements CollisionPolicy.
func (RejectAll) Resolve(blocks []Rect, offset Point, _ *RigidBody, obs Obstacles) Resolution {
	if obs == nil {
		obs = noObstacles{}
	}
	moved := translateBlocks(blocks, offset)
	for _, b := range moved {
		if obs.Intersects(b) {
			return Resolution{Blocks: cloneBlocks(blocks), Collided: true}
		}
	}
	return Resolution{Blocks: moved, Moved: offset != Point{}}
}

// AxisSeparated moves blocks by the full offset and then handles the vertical
// and horizontal axes independently, so a piece blocked sideways keeps
// falling on later frames.
//
// A zero Bounds disables the bounds checks. Step is the probe distance used
// for the validity checks and defaults to 1.
type AxisSeparated struct {
	Bounds Rect
	Step   int
}

func (p AxisSeparated) step() int {
	if p.Step <= 0 {
		return 1
	}
	return p.Step
}

// Resolve implements CollisionPolicy.
func (p AxisSeparated) Resolve(blocks []Rect, offset Point, body *RigidBody, obs Obstacles) Resolution {
	if obs == nil {
		obs = noObstacles{}
	}
	step := p.step()
	res := Resolution{Blocks: translateBlocks(blocks, offset), Moved: offset != Point{}}

	// Vertical: the next row down must be inside the bounds and free.
	if !p.inBounds(res.Blocks, Point{0, step}) || intersectsAny(res.Blocks, Point{0, step}, obs) {
		if body != nil {
			body.Velocity.Y = 0
			body.ResetAcceleration()
		}
		res.Collided = true
		res.Landed = true
	}

	// Horizontal: probe one step further in the direction of travel.
	if offset.X != 0 {
		dx := step
		if offset.X < 0 {
			dx = -step
		}
		if !p.inBoundsX(res.Blocks, dx) {
			res.Blocks = cloneBlocks(blocks)
			res.Moved = false
			if body != nil {
				body.Velocity.X = 0
			}
			res.Collided = true
		}
	}

	// Whatever survived must not overlap anything or leave the bounds.
	if intersectsAny(res.Blocks, Point{}, obs) || !p.inBounds(res.Blocks, Point{}) {
		res.Blocks = cloneBlocks(blocks)
		res.Moved = false
		if body != nil {
			body.Velocity.Y = 0
			body.ResetAcceleration()
		}
		res.Collided = true
		res.Landed = true
	}
	return res
}

func (p AxisSeparated) inBounds(blocks []Rect, d Point) bool {
	if p.Bounds.IsEmpty() {
		return true
	}
	for _, b := range blocks {
		x, y := b.X+d.X, b.Y+d.Y
		if x < p.Bounds.X || y < p.Bounds.Y ||
			x+b.Width > p.Bounds.X+p.Bounds.Width ||
			y+b.Height > p.Bounds.Y+p.Bounds.Height {
			return false
		}
	}
	return true
}

func (p AxisSeparated) inBoundsX(blocks []Rect, dx int) bool {
	if p.Bounds.IsEmpty() {
		return true
	}
	for _, b := range blocks {
		x := b.X + dx
		if x < p.Bounds.X || x+b.Width > p.Bounds.X+p.Bounds.Width {
			return false
		}
	}
	return true
}

func intersectsAny(blocks []Rect, d Point, obs Obstacles) bool {
	for _, b := range blocks {
		if obs.Intersects(b.Translate(d)) {
			return true
		}
	}
	return false
}

func translateBlocks(blocks []Rect, d Point) []Rect {
	out := make([]Rect, len(blocks))
	for i, b := range blocks {
		out[i] = b.Translate(d)
	}
	return out
}

func cloneBlocks(blocks []Rect) []Rect {
	out := make([]Rect, len(blocks))
	copy(out, blocks)
	return out
}

// PolicyByName returns the policy registered under name. It is used by
// scene specs.
func PolicyByName(name string) (CollisionPolicy, error) {
	switch name {
	case "", "reject_all":
		return RejectAll{}, nil
	case "axis_separated":
		return AxisSeparated{}, nil
	}
	return nil, fmt.Errorf("goku: unknown collision policy %q", name)
}
