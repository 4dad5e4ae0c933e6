package goku

import (
	"errors"
	"log/slog"
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/kamstrup/intmap"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, frame events are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event FrameEvent)
}

// FrameEventType identifies what happened during a frame.
type FrameEventType uint8

const (
	FrameMoveCommitted   FrameEventType = iota // an entity moved
	FrameMoveRejected                          // an entity's move was blocked
	FrameShapeLanded                           // the board's active shape came to rest
	FrameBehaviourTicked                       // an entity's behaviour tree was ticked
)

func (t FrameEventType) String() string {
	switch t {
	case FrameMoveCommitted:
		return "move_committed"
	case FrameMoveRejected:
		return "move_rejected"
	case FrameShapeLanded:
		return "shape_landed"
	case FrameBehaviourTicked:
		return "behaviour_ticked"
	}
	return "unknown"
}

// FrameEvent carries per-frame simulation results for the ECS bridge.
type FrameEvent struct {
	Type     FrameEventType
	Frame    uint64
	EntityID EntityID
	// Position is the entity position after the move, or the top-left of
	// the landed shape.
	Position Point
	// Status is set for FrameBehaviourTicked.
	Status Status
}

// Controller turns input events into entity forces.
type Controller interface {
	HandleEvent(s *Scene, ev Event)
}

// ControllerFunc adapts a function to Controller.
type ControllerFunc func(s *Scene, ev Event)

func (f ControllerFunc) HandleEvent(s *Scene, ev Event) { f(s, ev) }

// KeyboardController steers the player with the held movement keys and
// stops it when they are all released. Board pieces are nudged with left
// and right and rotated with up.
type KeyboardController struct{}

// HandleEvent implements Controller.
func (KeyboardController) HandleEvent(s *Scene, ev Event) {
	s.keys.Apply(ev)
	if s.Board != nil && ev.Type == EventKeyDown {
		switch ev.Key {
		case KeyLeft:
			s.Board.Nudge(-1)
		case KeyRight:
			s.Board.Nudge(1)
		case KeyUp:
			s.Board.Rotate()
		}
	}
	p := s.Player()
	if p == nil {
		return
	}
	held := s.keys.HeldMovement()
	p.Body.Stop()
	for _, k := range held {
		p.ApplyKey(k)
	}
}

// SceneConfig configures a Scene. Zero fields take sensible defaults.
type SceneConfig struct {
	// ScreenWidth and ScreenHeight size the camera. Default 800×600.
	ScreenWidth  int `yaml:"screen_width"`
	ScreenHeight int `yaml:"screen_height"`
	// FixedStep, when positive, is used as the frame delta in seconds instead
	// of the measured clock delta.
	FixedStep float32 `yaml:"fixed_step"`
	// Seed seeds the particle random source.
	Seed uint64 `yaml:"seed"`
	// ParticleBound is the recycle line for recycling particles. Defaults to
	// ScreenHeight.
	ParticleBound uint32 `yaml:"particle_bound"`
	// RecycleParticles wraps particles that fall past ParticleBound back to
	// the top instead of letting them drift away.
	RecycleParticles bool `yaml:"recycle_particles"`
}

func (c SceneConfig) withDefaults() SceneConfig {
	if c.ScreenWidth <= 0 {
		c.ScreenWidth = 800
	}
	if c.ScreenHeight <= 0 {
		c.ScreenHeight = 600
	}
	if c.ParticleBound == 0 {
		c.ParticleBound = uint32(c.ScreenHeight)
	}
	return c
}

// ReloadFunc applies a change to the scene, typically after a file changed
// on disk. It runs on the frame loop.
type ReloadFunc func(s *Scene) error

// Scene owns the world, entities and effects, and runs one frame per
// Update in a fixed order.
type Scene struct {
	cfg SceneConfig

	World      *StaticWorld
	Camera     *Camera
	Board      *Board
	Particles  []Particle
	Emitters   []*ParticleEmitter
	Background ParallaxBackground
	UI         UILayer

	entities []*Entity
	index    *intmap.Map[EntityID, int]
	nextID   EntityID
	player   EntityID

	input      InputSource
	controller Controller
	keys       KeyState
	clock      Clock
	timer      *Timer
	rng        *rand.Rand
	profiler   *Profiler
	replay     *Replay
	store      EntityStore
	logger     *slog.Logger
	debug      bool

	frame uint64
	quit  bool
	shots []string

	reloadMu sync.Mutex
	reloads  []ReloadFunc
}

// NewScene creates an empty scene with a camera at the origin, an empty
// input queue and a system clock.
func NewScene(cfg SceneConfig) *Scene {
	cfg = cfg.withDefaults()
	clock := NewSystemClock()
	return &Scene{
		cfg:        cfg,
		Camera:     NewCamera(Point{}, cfg.ScreenWidth, cfg.ScreenHeight),
		index:      intmap.New[EntityID, int](64),
		input:      NewInputQueue(),
		controller: KeyboardController{},
		clock:      clock,
		timer:      NewTimer(clock),
		rng:        rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
		logger:     slog.Default(),
	}
}

// Config returns the scene configuration with defaults applied.
func (s *Scene) Config() SceneConfig { return s.cfg }

// SetInput replaces the input source.
func (s *Scene) SetInput(in InputSource) { s.input = in }

// Input returns the current input source.
func (s *Scene) Input() InputSource { return s.input }

// SetClock replaces the clock and restarts frame timing.
func (s *Scene) SetClock(c Clock) {
	s.clock = c
	s.timer = NewTimer(c)
}

// Clock returns the scene clock.
func (s *Scene) Clock() Clock { return s.clock }

// SetController replaces the input controller. nil disables it.
func (s *Scene) SetController(c Controller) { s.controller = c }

// SetLogger sets the scene logger. nil restores slog.Default.
func (s *Scene) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	s.logger = l
	if s.profiler != nil {
		s.profiler.SetLogger(l)
	}
}

// Logger returns the scene logger.
func (s *Scene) Logger() *slog.Logger { return s.logger }

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) { s.store = store }

// SetDebugMode enables per-frame render stats and threshold warnings at
// debug level.
func (s *Scene) SetDebugMode(enabled bool) { s.debug = enabled }

// EnableProfiler attaches a profiler that reports through the scene logger.
func (s *Scene) EnableProfiler(cfg ProfilerConfig) *Profiler {
	s.profiler = NewProfiler(s.clock.Millis(), cfg)
	s.profiler.SetLogger(s.logger)
	return s.profiler
}

// Rand returns the scene's seeded random source.
func (s *Scene) Rand() *rand.Rand { return s.rng }

// Frame returns the number of completed updates.
func (s *Scene) Frame() uint64 { return s.frame }

// AddEntity assigns e an id, appends it and returns the id. The first entity
// added becomes the player unless SetPlayer is called.
func (s *Scene) AddEntity(e *Entity) EntityID {
	s.nextID++
	e.ID = s.nextID
	s.index.Put(e.ID, len(s.entities))
	s.entities = append(s.entities, e)
	if s.player == 0 {
		s.player = e.ID
	}
	return e.ID
}

// RemoveEntity drops the entity with id and reports whether it existed.
func (s *Scene) RemoveEntity(id EntityID) bool {
	i, ok := s.index.Get(id)
	if !ok {
		return false
	}
	s.entities = slices.Delete(s.entities, i, i+1)
	s.index.Del(id)
	for j := i; j < len(s.entities); j++ {
		s.index.Put(s.entities[j].ID, j)
	}
	if s.player == id {
		s.player = 0
	}
	return true
}

// Entity returns the entity with id.
func (s *Scene) Entity(id EntityID) (*Entity, bool) {
	i, ok := s.index.Get(id)
	if !ok {
		return nil, false
	}
	return s.entities[i], true
}

// EntityByName returns the first entity called name.
func (s *Scene) EntityByName(name string) (*Entity, bool) {
	for _, e := range s.entities {
		if e.Name == name {
			return e, true
		}
	}
	return nil, false
}

// Entities returns the scene's entities in insertion order. The returned
// slice MUST NOT be mutated.
func (s *Scene) Entities() []*Entity { return s.entities }

// EntityCount returns the number of entities.
func (s *Scene) EntityCount() int { return s.index.Len() }

// SetPlayer selects the entity the camera follows and the controller moves.
func (s *Scene) SetPlayer(id EntityID) { s.player = id }

// Player returns the player entity, or nil.
func (s *Scene) Player() *Entity {
	e, _ := s.Entity(s.player)
	return e
}

// QueueReload schedules fn to run at the end of the next Update. It is safe
// to call from any goroutine.
func (s *Scene) QueueReload(fn ReloadFunc) {
	s.reloadMu.Lock()
	s.reloads = append(s.reloads, fn)
	s.reloadMu.Unlock()
}

// obstaclesFor returns everything e can collide with.
func (s *Scene) obstaclesFor(e *Entity) Obstacles {
	others := ObstacleFunc(func(r Rect) bool {
		for _, o := range s.entities {
			if o != e && o.Collider.Intersects(r) {
				return true
			}
		}
		return false
	})
	set := ObstacleSet{others}
	if s.World != nil {
		set = append(set, s.World)
	}
	if s.Board != nil {
		set = append(set, s.Board)
	}
	return set
}

func (s *Scene) emit(ev FrameEvent) {
	if s.store != nil {
		ev.Frame = s.frame
		s.store.EmitEvent(ev)
	}
}

// Update runs one frame: input, entity motion, board, camera, animation,
// particles, behaviour trees, background and profiler, then queued reloads.
// It returns ErrQuit once a quit event or Escape has been seen.
func (s *Scene) Update() error {
	if s.quit {
		return ErrQuit
	}
	s.timer.Step()
	now := s.clock.Millis()
	dt := s.cfg.FixedStep
	if dt <= 0 {
		dt = float32(s.timer.Delta().Seconds())
	}

	if s.replay != nil {
		s.replay.step(s)
	}
	if s.processInput() {
		s.quit = true
		return ErrQuit
	}

	for _, e := range s.entities {
		res := e.Advance(dt, s.obstaclesFor(e))
		switch {
		case res.Moved:
			s.emit(FrameEvent{Type: FrameMoveCommitted, EntityID: e.ID, Position: e.Position})
		case res.Collided:
			s.logger.Debug("move rejected", "entity", e.Name, "pos", e.Position)
			s.emit(FrameEvent{Type: FrameMoveRejected, EntityID: e.ID, Position: e.Position})
		}
	}

	if s.Board != nil {
		var static Obstacles
		if s.World != nil {
			static = s.World
		}
		if s.Board.Step(dt, static) {
			last := s.Board.Placed[len(s.Board.Placed)-1]
			s.emit(FrameEvent{Type: FrameShapeLanded, Position: last.Bounds().Min()})
		}
	}

	if p := s.Player(); p != nil {
		s.Camera.Update(p.Position)
	}
	s.Camera.Tick(dt)

	for _, e := range s.entities {
		if e.Animations == nil {
			continue
		}
		f, err := e.AdvanceAnimation(now)
		if err != nil {
			var se *StateError
			if errors.As(err, &se) {
				s.logger.Debug("animation skipped", "entity", e.Name, "err", err)
			}
			e.hasFrame = false
			continue
		}
		e.frame, e.hasFrame = f, true
	}

	s.updateParticles(dt)

	for _, e := range s.entities {
		if e.Brain == nil {
			continue
		}
		st := e.Brain.Tick()
		s.emit(FrameEvent{Type: FrameBehaviourTicked, EntityID: e.ID, Position: e.Position, Status: st})
	}

	s.Background.Update(dt)
	if s.profiler != nil {
		s.profiler.Update(now)
	}

	s.applyReloads()
	s.frame++
	return nil
}

// processInput drains the input source and reports whether quit was
// requested.
func (s *Scene) processInput() bool {
	if s.input == nil {
		return false
	}
	events := s.input.Poll()
	if s.input.MouseButtonPressed() {
		x, y := s.input.MousePosition()
		s.UI.HandleMouseClick(x, y)
	}
	for _, ev := range events {
		if ev.Type == EventQuit || (ev.Type == EventKeyDown && ev.Key == KeyEscape) {
			return true
		}
		if s.controller != nil {
			s.controller.HandleEvent(s, ev)
		}
	}
	return false
}

func (s *Scene) updateParticles(dt float32) {
	for _, em := range s.Emitters {
		s.Particles = em.Emit(s.Particles, s.rng, dt)
	}
	for i := range s.Particles {
		if s.cfg.RecycleParticles {
			s.Particles[i].Update(dt, s.cfg.ParticleBound)
		} else {
			s.Particles[i].Drift(dt)
		}
	}
	s.Particles = PruneDead(s.Particles)
	s.debugCheckParticles()
}

func (s *Scene) applyReloads() {
	s.reloadMu.Lock()
	pending := s.reloads
	s.reloads = nil
	s.reloadMu.Unlock()
	for _, fn := range pending {
		if err := fn(s); err != nil {
			s.logger.Error("reload failed", "err", err)
			continue
		}
		s.logger.Info("reload applied")
	}
}
