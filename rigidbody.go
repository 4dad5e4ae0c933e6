package goku

// DefaultSpeed is the terminal speed given to new rigid bodies.
const DefaultSpeed float32 = 10

// RigidBody integrates forces into a constant-speed velocity. Forces only
// steer: once any net force has been applied the body moves at exactly Speed
// in the direction of the accumulated velocity.
type RigidBody struct {
	Velocity     Vec2
	Acceleration Vec2
	// Mass must be positive. NewRigidBody replaces non-positive values with 1.
	Mass float32
	// Speed is the magnitude of Velocity after every non-zero Update.
	Speed float32
}

// NewRigidBody returns a body at rest with the given mass and DefaultSpeed.
func NewRigidBody(mass float32) RigidBody {
	if mass <= 0 {
		mass = 1
	}
	return RigidBody{Mass: mass, Speed: DefaultSpeed}
}

// ApplyForce accumulates f/Mass into the acceleration. Call ResetAcceleration
// once per frame after Update.
func (b *RigidBody) ApplyForce(f Vec2) {
	m := b.Mass
	if m <= 0 {
		m = 1
	}
	b.Acceleration = b.Acceleration.Add(f.Scale(1 / m))
}

// ApplyGravity accumulates g directly, independent of mass.
func (b *RigidBody) ApplyGravity(g Vec2) {
	b.Acceleration = b.Acceleration.Add(g)
}

// Update integrates the acceleration over dt seconds, then rescales the
// velocity to Speed. A zero velocity stays zero.
func (b *RigidBody) Update(dt float32) {
	b.Velocity = b.Velocity.Add(b.Acceleration.Scale(dt))
	b.Velocity = b.Velocity.Normalized().Scale(b.Speed)
}

// ResetAcceleration clears accumulated acceleration. Velocity is untouched.
func (b *RigidBody) ResetAcceleration() {
	b.Acceleration = Vec2{}
}

// Stop zeroes velocity and acceleration.
func (b *RigidBody) Stop() {
	b.Velocity = Vec2{}
	b.Acceleration = Vec2{}
}
