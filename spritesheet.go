package goku

import "image"

// Texture is the pixel source behind a sprite sheet. The core only needs its
// size; *ebiten.Image and image.Image both satisfy it.
type Texture interface {
	Bounds() image.Rectangle
}

// SpriteSheet describes one animation strip within a texture. Frames are laid
// out left-to-right on row Row.
type SpriteSheet struct {
	Texture     Texture
	FrameWidth  int
	FrameHeight int
	Row         int
}

// Frame returns the source rectangle of frame index.
func (s SpriteSheet) Frame(index int) Rect {
	return Rect{
		X:      index * s.FrameWidth,
		Y:      s.Row * s.FrameHeight,
		Width:  s.FrameWidth,
		Height: s.FrameHeight,
	}
}

// FrameCount returns the number of frames across the sheet, or 0 if the
// texture or frame width cannot produce any.
func (s SpriteSheet) FrameCount() int {
	if s.Texture == nil || s.FrameWidth <= 0 {
		return 0
	}
	return s.Texture.Bounds().Dx() / s.FrameWidth
}

// validate reports geometry that would make FrameCount zero.
func (s SpriteSheet) validate() error {
	if s.Texture == nil || s.FrameWidth <= 0 || s.FrameHeight <= 0 {
		return ErrInvalidFrame
	}
	if s.FrameCount() == 0 {
		return ErrInvalidFrame
	}
	return nil
}

// AnimatedTexture plays a SpriteSheet at a fixed frame delay.
type AnimatedTexture struct {
	Sheet SpriteSheet
	// FrameDelay is the minimum time between frame changes, in milliseconds.
	FrameDelay int
	// CurrentFrame is always in [0, Sheet.FrameCount()).
	CurrentFrame int
	// LastFrameTime is the clock reading of the last frame change, in ms.
	LastFrameTime int64
	Flip          bool
}

// NewAnimatedTexture creates an animation positioned on frame 0.
func NewAnimatedTexture(sheet SpriteSheet, frameDelay int) *AnimatedTexture {
	return &AnimatedTexture{Sheet: sheet, FrameDelay: frameDelay}
}

// Advance moves to the next frame, wrapping around, if at least FrameDelay ms
// have passed since the last change. It returns the current source rect.
func (a *AnimatedTexture) Advance(now int64) Rect {
	count := a.Sheet.FrameCount()
	if count == 0 {
		a.CurrentFrame = 0
		return a.Sheet.Frame(0)
	}
	if now-a.LastFrameTime >= int64(a.FrameDelay) {
		a.CurrentFrame = (a.CurrentFrame + 1) % count
		a.LastFrameTime = now
	}
	return a.Sheet.Frame(a.CurrentFrame)
}

// Source returns the current frame's source rect without advancing.
func (a *AnimatedTexture) Source() Rect {
	return a.Sheet.Frame(a.CurrentFrame)
}

// Reset rewinds to frame 0 and restarts timing from now.
func (a *AnimatedTexture) Reset(now int64) {
	a.CurrentFrame = 0
	a.LastFrameTime = now
}
