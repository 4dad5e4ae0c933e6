package goku

import "image/color"

// EntityID identifies an entity within a Scene. Zero is never assigned.
type EntityID uint32

// Default entity collider size.
const (
	DefaultEntityWidth  = 30
	DefaultEntityHeight = 30
)

// Entity is a moving game object: a position with a collider anchored at it,
// a rigid body, a set of animations and optionally a behaviour tree.
type Entity struct {
	ID   EntityID
	Name string
	// Position is the top-left corner of Collider in world pixels.
	Position Point
	Collider Rect
	Body     RigidBody
	// Animations may be nil for entities drawn as plain rectangles.
	Animations *AnimationSet
	// Policy resolves moves; nil means RejectAll.
	Policy CollisionPolicy
	// Brain, when set, is ticked once per frame by the scene.
	Brain *BehaviourTree
	Flip  bool
	// Scale multiplies the frame size when drawing. Values below 1 act as 1.
	Scale int
	// Color fills the entity when it has no animation frame to draw.
	Color color.RGBA

	// frame is the last frame produced by the scene's animation pass.
	frame    Frame
	hasFrame bool
}

// NewEntity creates an entity with a w×h collider at pos. Non-positive sizes
// fall back to 30×30.
func NewEntity(name string, pos Point, w, h int) *Entity {
	if w <= 0 {
		w = DefaultEntityWidth
	}
	if h <= 0 {
		h = DefaultEntityHeight
	}
	return &Entity{
		Name:     name,
		Position: pos,
		Collider: Rect{pos.X, pos.Y, w, h},
		Body:     NewRigidBody(1),
		Policy:   RejectAll{},
		Scale:    1,
	}
}

// ApplyKey applies a unit force in the direction of a movement key. Other
// keys are ignored. Left and right also update Flip.
func (e *Entity) ApplyKey(k Key) {
	switch k {
	case KeyLeft:
		e.Body.ApplyForce(Vec2{-1, 0})
		e.Flip = true
	case KeyRight:
		e.Body.ApplyForce(Vec2{1, 0})
		e.Flip = false
	case KeyUp:
		e.Body.ApplyForce(Vec2{0, -1})
	case KeyDown:
		e.Body.ApplyForce(Vec2{0, 1})
	}
}

// Advance integrates the body over dt seconds and tries to move by the
// resulting velocity, truncated to whole pixels. Position and collider are
// committed together or not at all. Acceleration is reset afterwards.
func (e *Entity) Advance(dt float32, obs Obstacles) Resolution {
	policy := e.Policy
	if policy == nil {
		policy = RejectAll{}
	}
	e.Body.Update(dt)
	offset := Point{int(e.Body.Velocity.X), int(e.Body.Velocity.Y)}
	res := policy.Resolve([]Rect{e.Collider}, offset, &e.Body, obs)
	if res.Moved && len(res.Blocks) == 1 {
		e.Collider = res.Blocks[0]
		e.Position = e.Collider.Min()
	}
	e.Body.ResetAcceleration()
	return res
}

// MoveTo places the entity at p without any collision checks.
func (e *Entity) MoveTo(p Point) {
	e.Position = p
	e.Collider.X, e.Collider.Y = p.X, p.Y
}

// Center returns the collider's center point.
func (e *Entity) Center() Point {
	return Point{e.Collider.X + e.Collider.Width/2, e.Collider.Y + e.Collider.Height/2}
}

// Intersects lets an entity act as an obstacle for other entities.
func (e *Entity) Intersects(r Rect) bool {
	return e.Collider.Intersects(r)
}

// AdvanceAnimation steps the current animation to now. The returned frame's
// Flip combines the animation and entity flags.
func (e *Entity) AdvanceAnimation(now int64) (Frame, error) {
	if e.Animations == nil {
		return Frame{}, &StateError{Err: ErrNoAnimation}
	}
	f, err := e.Animations.Advance(now)
	if err != nil {
		return Frame{}, err
	}
	f.Flip = f.Flip != e.Flip
	return f, nil
}

// SetAnimation selects an animation tag and reports whether it exists.
func (e *Entity) SetAnimation(tag string) bool {
	if e.Animations == nil {
		return false
	}
	return e.Animations.SetAnimation(tag)
}

// DestRect returns the world rectangle the entity is drawn into: its position
// with the current frame size times Scale, or the collider when no animation
// is available.
func (e *Entity) DestRect() Rect {
	scale := max(e.Scale, 1)
	if e.Animations != nil {
		if w, h, err := e.Animations.FrameSize(); err == nil {
			return Rect{e.Position.X, e.Position.Y, w * scale, h * scale}
		}
	}
	return Rect{e.Position.X, e.Position.Y, e.Collider.Width, e.Collider.Height}
}
