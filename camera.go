package goku

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera frames a view of the world. Position is the world coordinate of the
// top-left of the view and Size its extent in pixels.
type Camera struct {
	Position Point
	Size     Point

	// BoundsEnabled clamps the camera position so the visible area stays
	// within Bounds.
	BoundsEnabled bool
	// Bounds is the world-space rectangle the camera is clamped to when
	// BoundsEnabled is true.
	Bounds Rect

	scrollTween *scrollAnim
}

// NewCamera creates a camera at pos with a w×h view.
func NewCamera(pos Point, w, h int) *Camera {
	return &Camera{Position: pos, Size: Point{w, h}}
}

// Update centers the camera on target. While a ScrollTo is running the
// follow is suspended.
func (c *Camera) Update(target Point) {
	if c.scrollTween != nil {
		return
	}
	c.Position = target.Sub(c.Size.Div(2))
	if c.BoundsEnabled {
		c.clampToBounds()
	}
}

// TransformRect converts a world rectangle to screen space. It is a pure
// translation by the camera position.
func (c *Camera) TransformRect(r Rect) Rect {
	return Rect{r.X - c.Position.X, r.Y - c.Position.Y, r.Width, r.Height}
}

// ScrollTo animates the camera so that it ends centered on target after
// duration seconds. Tick drives the animation.
func (c *Camera) ScrollTo(target Point, duration float32, easeFn ease.TweenFunc) {
	if easeFn == nil {
		easeFn = ease.Linear
	}
	end := target.Sub(c.Size.Div(2))
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.Position.X), float32(end.X), duration, easeFn),
		tweenY: gween.New(float32(c.Position.Y), float32(end.Y), duration, easeFn),
	}
}

// Scrolling reports whether a ScrollTo animation is in progress.
func (c *Camera) Scrolling() bool {
	return c.scrollTween != nil
}

// Tick advances a running scroll animation by dt seconds.
func (c *Camera) Tick(dt float32) {
	if c.scrollTween == nil {
		return
	}
	if !c.scrollTween.doneX {
		val, done := c.scrollTween.tweenX.Update(dt)
		c.Position.X = int(math.Round(float64(val)))
		c.scrollTween.doneX = done
	}
	if !c.scrollTween.doneY {
		val, done := c.scrollTween.tweenY.Update(dt)
		c.Position.Y = int(math.Round(float64(val)))
		c.scrollTween.doneY = done
	}
	if c.scrollTween.doneX && c.scrollTween.doneY {
		c.scrollTween = nil
	}
	if c.BoundsEnabled {
		c.clampToBounds()
	}
}

// SetBounds enables camera bounds clamping.
func (c *Camera) SetBounds(bounds Rect) {
	c.BoundsEnabled = true
	c.Bounds = bounds
}

// ClearBounds disables camera bounds clamping.
func (c *Camera) ClearBounds() {
	c.BoundsEnabled = false
}

// clampToBounds restricts the camera so the visible area stays within
// Bounds. If Bounds is smaller than the view on an axis the camera is
// centered on that axis.
func (c *Camera) clampToBounds() {
	b := c.Bounds
	if b.Width <= c.Size.X {
		c.Position.X = b.X + (b.Width-c.Size.X)/2
	} else {
		c.Position.X = min(max(c.Position.X, b.X), b.X+b.Width-c.Size.X)
	}
	if b.Height <= c.Size.Y {
		c.Position.Y = b.Y + (b.Height-c.Size.Y)/2
	} else {
		c.Position.Y = min(max(c.Position.Y, b.Y), b.Y+b.Height-c.Size.Y)
	}
}

// VisibleBounds returns the world rectangle currently in view.
func (c *Camera) VisibleBounds() Rect {
	return Rect{c.Position.X, c.Position.Y, c.Size.X, c.Size.Y}
}

// Visible reports whether any part of the world rectangle r is in view.
func (c *Camera) Visible(r Rect) bool {
	return c.VisibleBounds().Intersects(r)
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(p Point) Point {
	return p.Sub(c.Position)
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(p Point) Point {
	return p.Add(c.Position)
}
