package goku

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type drawnFrame struct {
	src, dst Rect
	flip     bool
}

type drawnTile struct {
	code uint32
	dst  Rect
}

// recordingSink remembers every draw call in order.
type recordingSink struct {
	frames    []drawnFrame
	tiles     []drawnTile
	fills     []Rect
	colors    []color.Color
	particles []Rect
	shapes    []ParticleShape
	order     []string
}

func (r *recordingSink) DrawFrame(_ Texture, src, dst Rect, flip bool) {
	r.frames = append(r.frames, drawnFrame{src, dst, flip})
	r.order = append(r.order, "frame")
}

func (r *recordingSink) DrawTile(code uint32, dst Rect) {
	r.tiles = append(r.tiles, drawnTile{code, dst})
	r.order = append(r.order, "tile")
}

func (r *recordingSink) FillRect(dst Rect, c color.Color) {
	r.fills = append(r.fills, dst)
	r.colors = append(r.colors, c)
	r.order = append(r.order, "fill")
}

func (r *recordingSink) DrawParticle(dst Rect, _ color.Color, shape ParticleShape) {
	r.particles = append(r.particles, dst)
	r.shapes = append(r.shapes, shape)
	r.order = append(r.order, "particle")
}

func TestRenderTilesAreCameraRelative(t *testing.T) {
	s := NewScene(SceneConfig{ScreenWidth: 20, ScreenHeight: 20})
	w, err := NewWorldFromGrid([][]uint32{{0, 2}, {2, 0}}, WorldConfig{TileSize: 10})
	require.NoError(t, err)
	s.World = w
	s.Camera.Position = Point{5, 5}

	sink := &recordingSink{}
	s.Render(sink)

	assert.Equal(t, []drawnTile{
		{0, Rect{-5, -5, 10, 10}},
		{2, Rect{5, -5, 10, 10}},
		{2, Rect{-5, 5, 10, 10}},
		{0, Rect{5, 5, 10, 10}},
	}, sink.tiles)
}

func TestRenderEntityFallsBackToFill(t *testing.T) {
	s := NewScene(SceneConfig{ScreenWidth: 100, ScreenHeight: 100})
	e := NewEntity("box", Point{10, 20}, 8, 8)
	e.Color = color.RGBA{1, 2, 3, 255}
	s.AddEntity(e)

	sink := &recordingSink{}
	s.Render(sink)

	require.Len(t, sink.fills, 1)
	assert.Equal(t, Rect{10, 20, 8, 8}, sink.fills[0])
	assert.Equal(t, color.RGBA{1, 2, 3, 255}, sink.colors[0])
	assert.Empty(t, sink.frames)
}

func TestRenderAnimatedEntity(t *testing.T) {
	s := NewScene(SceneConfig{ScreenWidth: 200, ScreenHeight: 200, FixedStep: 1.0 / 60})
	clock := &ManualClock{}
	s.SetClock(clock)

	e := NewEntity("hero", Point{100, 100}, 0, 0)
	e.Scale = 2
	e.Animations = NewAnimationSet(nil)
	sheet := SpriteSheet{Texture: image.NewRGBA(image.Rect(0, 0, 64, 16)), FrameWidth: 16, FrameHeight: 16}
	e.Animations.Add("walk", NewAnimatedTexture(sheet, 100))
	e.Flip = true
	s.AddEntity(e)

	require.NoError(t, s.Update())
	sink := &recordingSink{}
	s.Render(sink)

	require.Len(t, sink.frames, 1)
	f := sink.frames[0]
	assert.Equal(t, 16, f.src.Width)
	assert.True(t, f.flip)
	// The camera centers on the player, so the 32×32 drawing starts at the
	// middle of the screen.
	assert.Equal(t, Rect{100, 100, 32, 32}, f.dst)
}

func TestRenderCullsOffscreen(t *testing.T) {
	s := NewScene(SceneConfig{ScreenWidth: 100, ScreenHeight: 100})
	s.AddEntity(NewEntity("far", Point{1000, 1000}, 10, 10))
	s.Particles = []Particle{
		NewParticle(50, 50, 0, 0, 1, color.RGBA{255, 255, 255, 255}, ParticleCircle),
		NewParticle(-500, 50, 0, 0, 1, color.RGBA{255, 255, 255, 255}, ParticleRect),
	}

	sink := &recordingSink{}
	s.Render(sink)

	assert.Empty(t, sink.fills)
	assert.Equal(t, []Rect{{50, 50, 2, 2}}, sink.particles)
	assert.Equal(t, []ParticleShape{ParticleCircle}, sink.shapes)
}

func TestRenderOrder(t *testing.T) {
	s := NewScene(SceneConfig{ScreenWidth: 100, ScreenHeight: 100})
	s.Background.Layers = []*ParallaxLayer{NewParallaxLayer(image.NewRGBA(image.Rect(0, 0, 100, 100)), 0)}
	w, err := NewWorldFromGrid([][]uint32{{0}}, WorldConfig{TileSize: 100})
	require.NoError(t, err)
	s.World = w
	s.Board = NewBoard(Rect{0, 0, 100, 100}, 10)
	s.Board.Placed = []*Shape{NewShape([]Rect{{0, 90, 10, 10}}, color.RGBA{}, 1)}
	s.AddEntity(NewEntity("e", Point{0, 0}, 10, 10))
	s.Particles = []Particle{NewParticle(1, 1, 0, 0, 1, color.RGBA{}, ParticleRect)}
	s.UI.Buttons = []*Button{{Rect: Rect{0, 0, 5, 5}}}

	sink := &recordingSink{}
	s.Render(sink)

	assert.Equal(t, []string{"frame", "tile", "fill", "fill", "particle", "fill"}, sink.order)
}

func TestRenderDebugLogsStats(t *testing.T) {
	s := NewScene(SceneConfig{})
	logs := captureLogs(s)
	s.SetDebugMode(true)
	s.AddEntity(NewEntity("e", Point{0, 0}, 10, 10))
	s.Render(&recordingSink{})
	assert.Contains(t, logs.String(), "draw_calls=1")
	assert.Contains(t, logs.String(), "entities=1")
}
