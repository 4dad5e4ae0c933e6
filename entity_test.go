package goku

import (
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntityDefaults(t *testing.T) {
	e := NewEntity("hero", Point{5, 6}, 0, -1)
	assert.Equal(t, Rect{5, 6, DefaultEntityWidth, DefaultEntityHeight}, e.Collider)
	assert.Equal(t, Point{5, 6}, e.Position)
	assert.Equal(t, float32(1), e.Body.Mass)
	assert.Equal(t, 1, e.Scale)
	assert.IsType(t, RejectAll{}, e.Policy)
}

func TestEntityApplyKey(t *testing.T) {
	e := NewEntity("hero", Point{}, 10, 10)
	e.ApplyKey(KeyLeft)
	assert.True(t, e.Flip)
	assert.Equal(t, Vec2{-1, 0}, e.Body.Acceleration)

	e.ApplyKey(KeyRight)
	assert.False(t, e.Flip)

	e.Body.Stop()
	e.ApplyKey(KeyEscape)
	assert.True(t, e.Body.Acceleration.IsZero())
}

func TestEntityAdvanceCommits(t *testing.T) {
	e := NewEntity("hero", Point{0, 0}, 30, 30)
	e.ApplyKey(KeyRight)

	res := e.Advance(1.0/60, nil)
	assert.True(t, res.Moved)
	assert.Equal(t, Point{10, 0}, e.Position)
	assert.Equal(t, Rect{10, 0, 30, 30}, e.Collider)
	assert.True(t, e.Body.Acceleration.IsZero(), "acceleration resets every frame")
}

func TestEntityRejectedMoveLeavesPosition(t *testing.T) {
	e := NewEntity("hero", Point{0, 0}, 30, 30)
	e.ApplyKey(KeyRight)

	res := e.Advance(1.0/60, Colliders{{35, 0, 10, 10}})
	assert.False(t, res.Moved)
	assert.True(t, res.Collided)
	assert.Equal(t, Point{0, 0}, e.Position)
	assert.Equal(t, Rect{0, 0, 30, 30}, e.Collider)
}

func TestEntityNilPolicy(t *testing.T) {
	e := NewEntity("hero", Point{0, 0}, 30, 30)
	e.Policy = nil
	e.ApplyKey(KeyDown)
	res := e.Advance(1.0/60, nil)
	assert.True(t, res.Moved)
	assert.Equal(t, Point{0, 10}, e.Position)
}

func TestEntityMoveToAndCenter(t *testing.T) {
	e := NewEntity("hero", Point{}, 30, 20)
	e.MoveTo(Point{100, 50})
	assert.Equal(t, Rect{100, 50, 30, 20}, e.Collider)
	assert.Equal(t, Point{115, 60}, e.Center())
	assert.True(t, e.Intersects(Rect{120, 55, 5, 5}))
}

func TestEntityAdvanceAnimationWithoutSet(t *testing.T) {
	e := NewEntity("ghost", Point{}, 0, 0)
	_, err := e.AdvanceAnimation(0)
	var se *StateError
	require.True(t, errors.As(err, &se))
	assert.ErrorIs(t, err, ErrNoAnimation)
	assert.False(t, e.SetAnimation("idle"))
}

func TestEntityAnimationFlipAndDestRect(t *testing.T) {
	e := NewEntity("hero", Point{10, 20}, 30, 30)
	e.Scale = 2
	e.Animations = NewAnimationSet(nil)
	sheet := SpriteSheet{Texture: image.NewRGBA(image.Rect(0, 0, 64, 16)), FrameWidth: 16, FrameHeight: 16}
	e.Animations.Add("walk", NewAnimatedTexture(sheet, 100))

	e.ApplyKey(KeyLeft)
	f, err := e.AdvanceAnimation(0)
	require.NoError(t, err)
	assert.True(t, f.Flip)
	assert.Equal(t, Rect{10, 20, 32, 32}, e.DestRect())

	e.Animations.Remove("walk")
	assert.Equal(t, Rect{10, 20, 30, 30}, e.DestRect(), "falls back to the collider")
}
