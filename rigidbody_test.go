package goku

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRigidBody(t *testing.T) {
	b := NewRigidBody(0)
	assert.Equal(t, float32(1), b.Mass, "non-positive mass falls back to 1")
	assert.Equal(t, DefaultSpeed, b.Speed)
	assert.True(t, b.Velocity.IsZero())
}

func TestRigidBodyConstantSpeed(t *testing.T) {
	b := NewRigidBody(2)
	b.ApplyForce(Vec2{3, 4})
	b.Update(1.0 / 60)
	assert.InDelta(t, b.Speed, b.Velocity.Len(), 1e-4)
	assert.InDelta(t, 6, b.Velocity.X, 1e-4)
	assert.InDelta(t, 8, b.Velocity.Y, 1e-4)

	// Without further force the body keeps moving at Speed.
	b.ResetAcceleration()
	b.Update(1.0 / 60)
	assert.InDelta(t, b.Speed, b.Velocity.Len(), 1e-4)
}

func TestRigidBodyAtRestStaysAtRest(t *testing.T) {
	b := NewRigidBody(1)
	b.Update(1)
	assert.True(t, b.Velocity.IsZero())
}

func TestRigidBodyMassScalesForce(t *testing.T) {
	b := NewRigidBody(4)
	b.ApplyForce(Vec2{8, 0})
	assert.Equal(t, Vec2{2, 0}, b.Acceleration)

	b.ApplyGravity(Vec2{0, 1})
	assert.Equal(t, Vec2{2, 1}, b.Acceleration, "gravity ignores mass")
}

func TestRigidBodyStop(t *testing.T) {
	b := NewRigidBody(1)
	b.ApplyForce(Vec2{1, 0})
	b.Update(1)
	b.Stop()
	assert.True(t, b.Velocity.IsZero())
	assert.True(t, b.Acceleration.IsZero())
}
