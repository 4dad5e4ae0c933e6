package goku

import (
	"bytes"
	"errors"
	"image/color"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLogs routes the scene logger into a buffer at debug level.
func captureLogs(s *Scene) *bytes.Buffer {
	var buf bytes.Buffer
	s.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return &buf
}

type eventLog struct {
	events []FrameEvent
}

func (l *eventLog) EmitEvent(ev FrameEvent) { l.events = append(l.events, ev) }

func (l *eventLog) ofType(t FrameEventType) []FrameEvent {
	var out []FrameEvent
	for _, ev := range l.events {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

func newTestScene() (*Scene, *InputQueue) {
	s := NewScene(SceneConfig{FixedStep: 1.0 / 60, ScreenWidth: 200, ScreenHeight: 200})
	s.SetClock(&ManualClock{})
	q := NewInputQueue()
	s.SetInput(q)
	return s, q
}

func TestSceneDefaults(t *testing.T) {
	s := NewScene(SceneConfig{})
	cfg := s.Config()
	assert.Equal(t, 800, cfg.ScreenWidth)
	assert.Equal(t, 600, cfg.ScreenHeight)
	assert.Equal(t, uint32(600), cfg.ParticleBound)
	assert.Equal(t, Point{800, 600}, s.Camera.Size)
	assert.Nil(t, s.Player())
	assert.NotNil(t, s.Logger())
}

func TestSceneEntities(t *testing.T) {
	s := NewScene(SceneConfig{})
	a := s.AddEntity(NewEntity("a", Point{}, 0, 0))
	b := s.AddEntity(NewEntity("b", Point{}, 0, 0))
	c := s.AddEntity(NewEntity("c", Point{}, 0, 0))

	assert.NotZero(t, a)
	assert.Equal(t, 3, s.EntityCount())
	assert.Equal(t, a, s.Player().ID, "first entity is the player")

	s.SetPlayer(b)
	assert.Equal(t, "b", s.Player().Name)

	require.True(t, s.RemoveEntity(a))
	assert.False(t, s.RemoveEntity(a))
	e, ok := s.Entity(c)
	require.True(t, ok)
	assert.Equal(t, "c", e.Name, "index survives removal")
	_, ok = s.EntityByName("a")
	assert.False(t, ok)

	require.True(t, s.RemoveEntity(b))
	assert.Nil(t, s.Player())
}

func TestScenePlayerMovesWhileKeyHeld(t *testing.T) {
	s, q := newTestScene()
	p := NewEntity("hero", Point{0, 0}, 10, 10)
	s.AddEntity(p)

	q.InjectKeyDown(KeyRight)
	require.NoError(t, s.Update())
	assert.Equal(t, Point{10, 0}, p.Position)

	require.NoError(t, s.Update())
	assert.Equal(t, Point{20, 0}, p.Position, "held key keeps moving")

	q.InjectKeyUp(KeyRight)
	require.NoError(t, s.Update())
	assert.Equal(t, Point{20, 0}, p.Position)
	assert.Equal(t, Point{20, 0}, p.Collider.Min())
	assert.Equal(t, uint64(3), s.Frame())
}

func TestSceneDiagonalMoveUsesSpeed(t *testing.T) {
	s, q := newTestScene()
	p := NewEntity("hero", Point{0, 0}, 10, 10)
	s.AddEntity(p)

	q.InjectKeyDown(KeyRight)
	q.InjectKeyDown(KeyDown)
	require.NoError(t, s.Update())
	// 10/sqrt(2) truncates to 7 on both axes.
	assert.Equal(t, Point{7, 7}, p.Position)
}

func TestSceneQuit(t *testing.T) {
	s, q := newTestScene()
	q.InjectQuit()
	assert.ErrorIs(t, s.Update(), ErrQuit)
	assert.ErrorIs(t, s.Update(), ErrQuit, "quit sticks")

	s, q = newTestScene()
	q.InjectKeyDown(KeyEscape)
	assert.True(t, errors.Is(s.Update(), ErrQuit))
}

func TestSceneMoveRejected(t *testing.T) {
	s, q := newTestScene()
	log := &eventLog{}
	s.SetEntityStore(log)
	p := NewEntity("hero", Point{0, 0}, 10, 10)
	s.AddEntity(p)
	s.AddEntity(NewEntity("rock", Point{15, 0}, 10, 10))

	q.InjectKeyDown(KeyRight)
	require.NoError(t, s.Update())

	assert.Equal(t, Point{0, 0}, p.Position)
	rejected := log.ofType(FrameMoveRejected)
	require.Len(t, rejected, 1)
	assert.Equal(t, p.ID, rejected[0].EntityID)
	assert.Empty(t, log.ofType(FrameMoveCommitted))
}

func TestSceneWorldBlocksPlayer(t *testing.T) {
	s, q := newTestScene()
	w, err := NewWorldFromGrid([][]uint32{{0, 2}}, WorldConfig{TileSize: 20})
	require.NoError(t, err)
	s.World = w
	p := NewEntity("hero", Point{5, 0}, 10, 10)
	s.AddEntity(p)

	q.InjectKeyDown(KeyRight)
	require.NoError(t, s.Update())
	assert.Equal(t, Point{5, 0}, p.Position, "moving to x=15 would overlap the wall at 20")
}

func TestSceneCameraFollowsPlayer(t *testing.T) {
	s, q := newTestScene()
	p := NewEntity("hero", Point{300, 300}, 10, 10)
	s.AddEntity(p)
	q.InjectKeyDown(KeyDown)
	require.NoError(t, s.Update())
	assert.Equal(t, Point{200, 210}, s.Camera.Position)
}

func TestSceneBoardLanding(t *testing.T) {
	s, _ := newTestScene()
	log := &eventLog{}
	s.SetEntityStore(log)
	s.Board = NewBoard(Rect{0, 0, 40, 40}, 10)
	s.Board.Active = NewShape([]Rect{{0, 20, 10, 10}}, color.RGBA{}, 1)

	require.NoError(t, s.Update())

	require.Len(t, s.Board.Placed, 1)
	assert.Nil(t, s.Board.Active)
	landed := log.ofType(FrameShapeLanded)
	require.Len(t, landed, 1)
	assert.Equal(t, Point{0, 30}, landed[0].Position)
}

func TestSceneTicksBrains(t *testing.T) {
	s, _ := newTestScene()
	log := &eventLog{}
	s.SetEntityStore(log)
	calls := 0
	e := NewEntity("slime", Point{}, 0, 0)
	e.Brain = NewBehaviourTree(Action(func() Status { calls++; return Running }))
	s.AddEntity(e)

	require.NoError(t, s.Update())
	require.NoError(t, s.Update())

	assert.Equal(t, 2, calls)
	ticks := log.ofType(FrameBehaviourTicked)
	require.Len(t, ticks, 2)
	assert.Equal(t, Running, ticks[1].Status)
	assert.Equal(t, uint64(1), ticks[1].Frame)
}

func TestSceneUIClick(t *testing.T) {
	s, q := newTestScene()
	clicked := 0
	s.UI.Buttons = []*Button{{Rect: Rect{10, 10, 20, 20}, OnClick: func() { clicked++ }}}

	q.InjectClick(15, 15)
	require.NoError(t, s.Update())
	require.NoError(t, s.Update())
	assert.Equal(t, 1, clicked, "a click is delivered once")
}

func TestSceneParticles(t *testing.T) {
	s := NewScene(SceneConfig{FixedStep: 0.5, ScreenHeight: 100, RecycleParticles: true})
	s.SetClock(&ManualClock{})
	white := color.RGBA{255, 255, 255, 255}
	s.Particles = []Particle{
		NewParticle(0, 90, 0, 40, 10, white, ParticleRect),
		NewParticle(0, 0, 0, 0, 0.4, white, ParticleRect),
	}

	require.NoError(t, s.Update())

	require.Len(t, s.Particles, 1, "expired particle pruned")
	assert.Equal(t, float32(0), s.Particles[0].Y, "wrapped past the bound")
	assert.Equal(t, RecycleLife, s.Particles[0].Life)
}

func TestSceneEmitters(t *testing.T) {
	s := NewScene(SceneConfig{FixedStep: 1, Seed: 7})
	s.SetClock(&ManualClock{})
	spawn, err := SpawnFuncFor(EffectConfig{Effect: "glowing_orbs"})
	require.NoError(t, err)
	em := &ParticleEmitter{EmitRate: 5, MaxParticles: 8, Spawn: spawn}
	em.Start()
	s.Emitters = []*ParticleEmitter{em}

	require.NoError(t, s.Update())
	assert.Len(t, s.Particles, 5)
	require.NoError(t, s.Update())
	assert.Len(t, s.Particles, 8, "capped")
}

func TestSceneReloads(t *testing.T) {
	s, _ := newTestScene()
	logs := captureLogs(s)
	var order []int
	s.QueueReload(func(*Scene) error { order = append(order, 1); return nil })
	s.QueueReload(func(*Scene) error { return errors.New("bad map") })
	s.QueueReload(func(*Scene) error { order = append(order, 3); return nil })

	assert.Empty(t, order, "reloads wait for Update")
	require.NoError(t, s.Update())
	assert.Equal(t, []int{1, 3}, order)
	assert.Contains(t, logs.String(), "bad map")

	require.NoError(t, s.Update())
	assert.Equal(t, []int{1, 3}, order, "reloads run once")
}

func TestSceneCustomController(t *testing.T) {
	s, q := newTestScene()
	var seen []Event
	s.SetController(ControllerFunc(func(_ *Scene, ev Event) { seen = append(seen, ev) }))
	q.InjectKeyDown(KeyOther)
	require.NoError(t, s.Update())
	assert.Equal(t, []Event{{Type: EventKeyDown, Key: KeyOther}}, seen)

	s.SetController(nil)
	q.InjectKeyDown(KeyLeft)
	require.NoError(t, s.Update())
	assert.Len(t, seen, 1)
}

func TestFrameEventTypeString(t *testing.T) {
	assert.Equal(t, "move_committed", FrameMoveCommitted.String())
	assert.Equal(t, "shape_landed", FrameShapeLanded.String())
	assert.Equal(t, "unknown", FrameEventType(99).String())
}
