package goku

import (
	"fmt"
	"image/color"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tanema/gween/ease"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// LoadSpec reads a YAML file into a value of type T.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := os.ReadFile(filename)
	if err != nil {
		return zero, &LoadError{Op: "spec", Path: filename, Err: err}
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, &LoadError{Op: "spec", Path: filename, Err: err}
	}

	return spec, nil
}

// SceneSpec describes a whole scene.
type SceneSpec struct {
	Scene    SceneConfig       `yaml:"scene"`
	TileMap  string            `yaml:"tile_map"`
	World    WorldConfig       `yaml:"world"`
	Player   string            `yaml:"player"`
	Entities []EntitySpec      `yaml:"entities"`
	Board    *BoardSpec        `yaml:"board"`
	Emitters []EmitterSpec     `yaml:"emitters"`
	Parallax []ParallaxSpec    `yaml:"parallax"`
	Camera   CameraSpec        `yaml:"camera"`
	Profiler *ProfilerConfig   `yaml:"profiler"`
	UI       []WidgetSpec      `yaml:"ui"`
	Replay   string            `yaml:"replay"`
	Vars     map[string]string `yaml:"vars"`
}

// EntitySpec describes one entity.
type EntitySpec struct {
	Name     string  `yaml:"name"`
	Position Point   `yaml:"position"`
	Size     Point   `yaml:"size"`
	Mass     float32 `yaml:"mass"`
	// Speed overrides DefaultSpeed when positive.
	Speed      float32         `yaml:"speed"`
	Scale      int             `yaml:"scale"`
	Policy     string          `yaml:"policy"`
	Color      YAMLColor       `yaml:"color"`
	Animations []AnimationSpec `yaml:"animations"`
	// Animation selects the initial tag. Defaults to the first listed.
	Animation string         `yaml:"animation"`
	Behaviour *BehaviourSpec `yaml:"behaviour"`
}

// AnimationSpec describes one sprite-sheet animation.
type AnimationSpec struct {
	Tag         string `yaml:"tag"`
	Path        string `yaml:"path"`
	FrameWidth  int    `yaml:"frame_width"`
	FrameHeight int    `yaml:"frame_height"`
	FrameDelay  int    `yaml:"frame_delay"`
	Row         int    `yaml:"row"`
}

// BehaviourSpec describes a behaviour tree node. Type is one of selector,
// sequence, action or script.
type BehaviourSpec struct {
	Type     string             `yaml:"type"`
	Action   string             `yaml:"action"`
	Script   string             `yaml:"script"`
	Params   map[string]float64 `yaml:"params"`
	Children []BehaviourSpec    `yaml:"children"`
}

// BoardSpec describes a falling-piece board.
type BoardSpec struct {
	Bounds    Rect        `yaml:"bounds"`
	BlockSize int         `yaml:"block_size"`
	Pieces    []string    `yaml:"pieces"`
	Colors    []YAMLColor `yaml:"colors"`
	Speed     float32     `yaml:"speed"`
}

// EmitterSpec describes a particle emitter or a one-off burst.
type EmitterSpec struct {
	EffectConfig `yaml:",inline"`
	Rate         float64 `yaml:"rate"`
	Max          int     `yaml:"max"`
	// Burst spawns this many particles once at load.
	Burst int `yaml:"burst"`
}

// ParallaxSpec describes one background layer.
type ParallaxSpec struct {
	Path  string  `yaml:"path"`
	Speed float32 `yaml:"speed"`
}

// CameraSpec configures the camera.
type CameraSpec struct {
	// ClampToWorld keeps the view inside the tile map.
	ClampToWorld bool `yaml:"clamp_to_world"`
	// IntroFrom, when set, pans from this point to the player over
	// IntroSeconds.
	IntroFrom    *Point  `yaml:"intro_from"`
	IntroSeconds float32 `yaml:"intro_seconds"`
}

// WidgetSpec describes a UI widget. Kind is button, checkbox or slider.
// Handle sizes the slider handle. Clicks are reported through the scene
// logger under Name.
type WidgetSpec struct {
	Kind   string    `yaml:"kind"`
	Name   string    `yaml:"name"`
	Rect   Rect      `yaml:"rect"`
	Handle Point     `yaml:"handle"`
	Color  YAMLColor `yaml:"color"`
}

// YAMLColor decodes "#rrggbb", "#rrggbbaa" or an SVG color name.
type YAMLColor struct {
	color.RGBA
	set bool
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	if named, ok := colornames.Map[strings.ToLower(value.Value)]; ok {
		c.RGBA, c.set = named, true
		return nil
	}

	s := strings.TrimPrefix(value.Value, "#")
	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	var rgba [4]uint8
	rgba[3] = 255
	for i := 0; i < len(s)/2; i++ {
		v, err := parse(i * 2)
		if err != nil {
			return fmt.Errorf("invalid color format: %s", value.Value)
		}
		rgba[i] = v
	}
	c.RGBA, c.set = color.RGBA{rgba[0], rgba[1], rgba[2], rgba[3]}, true
	return nil
}

// Or returns the decoded color, or def if none was given.
func (c YAMLColor) Or(def color.RGBA) color.RGBA {
	if !c.set {
		return def
	}
	return c.RGBA
}

// ScriptSource provides compiled behaviour scripts by path.
type ScriptSource interface {
	Script(path string) (*Script, error)
}

// ScriptCache compiles behaviour scripts from disk once and hands out the
// compiled script on later requests. Relative paths resolve against BaseDir.
type ScriptCache struct {
	BaseDir string
	scripts map[string]*Script
}

// NewScriptCache creates an empty cache rooted at baseDir.
func NewScriptCache(baseDir string) *ScriptCache {
	return &ScriptCache{BaseDir: baseDir, scripts: make(map[string]*Script)}
}

// Script implements ScriptSource. Scripts are compiled with the entity
// globals listed in EntityScriptGlobals.
func (c *ScriptCache) Script(path string) (*Script, error) {
	if s, ok := c.scripts[path]; ok {
		return s, nil
	}
	full := resolvePath(c.BaseDir, path)
	src, err := os.ReadFile(full)
	if err != nil {
		return nil, &LoadError{Op: "script", Path: full, Err: err}
	}
	s, err := CompileScript(full, src, EntityScriptGlobals())
	if err != nil {
		return nil, err
	}
	c.scripts[path] = s
	return s, nil
}

// Forget drops a cached script so the next request recompiles it. It
// reports whether anything was dropped.
func (c *ScriptCache) Forget(path string) bool {
	for k := range c.scripts {
		if k == path || resolvePath(c.BaseDir, k) == path {
			delete(c.scripts, k)
			return true
		}
	}
	return false
}

func resolvePath(base, path string) string {
	if base == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// BuildEnv holds what BuildScene needs besides the spec itself.
type BuildEnv struct {
	// BaseDir resolves relative paths in the spec.
	BaseDir string
	Loader  TextureLoader
	Actions ActionRegistry
	Scripts ScriptSource
	Logger  *slog.Logger
}

func (env BuildEnv) withDefaults() BuildEnv {
	if env.Actions == nil {
		env.Actions = DefaultActions()
	}
	if env.Scripts == nil {
		env.Scripts = NewScriptCache(env.BaseDir)
	}
	if env.Logger == nil {
		env.Logger = slog.Default()
	}
	return env
}

// BuildEntity constructs an entity from spec. Animations are loaded through
// env.Loader.
func BuildEntity(spec EntitySpec, env BuildEnv) (*Entity, error) {
	env = env.withDefaults()
	e := NewEntity(spec.Name, spec.Position, spec.Size.X, spec.Size.Y)
	e.Body = NewRigidBody(spec.Mass)
	if spec.Speed > 0 {
		e.Body.Speed = spec.Speed
	}
	if spec.Scale > 0 {
		e.Scale = spec.Scale
	}
	e.Color = spec.Color.Or(colornames.White)
	policy, err := PolicyByName(spec.Policy)
	if err != nil {
		return nil, fmt.Errorf("goku: entity %q: %w", spec.Name, err)
	}
	e.Policy = policy

	if len(spec.Animations) > 0 {
		e.Animations = NewAnimationSet(env.Loader)
		for _, a := range spec.Animations {
			path := resolvePath(env.BaseDir, a.Path)
			if err := e.Animations.Load(a.Tag, path, a.FrameWidth, a.FrameHeight, a.FrameDelay, a.Row); err != nil {
				return nil, fmt.Errorf("goku: entity %q: %w", spec.Name, err)
			}
		}
		if spec.Animation != "" && !e.Animations.SetAnimation(spec.Animation) {
			return nil, fmt.Errorf("goku: entity %q: unknown initial animation %q", spec.Name, spec.Animation)
		}
	}
	return e, nil
}

// BuildScene constructs a ready-to-run scene from spec.
func BuildScene(spec SceneSpec, env BuildEnv) (*Scene, error) {
	env = env.withDefaults()
	s := NewScene(spec.Scene)
	s.SetLogger(env.Logger)

	if spec.TileMap != "" {
		w, err := LoadWorldFile(resolvePath(env.BaseDir, spec.TileMap), spec.World)
		if err != nil {
			return nil, err
		}
		s.World = w
	}

	for _, es := range spec.Entities {
		e, err := BuildEntity(es, env)
		if err != nil {
			return nil, err
		}
		s.AddEntity(e)
	}
	if spec.Player != "" {
		p, ok := s.EntityByName(spec.Player)
		if !ok {
			return nil, fmt.Errorf("goku: player %q is not an entity", spec.Player)
		}
		s.SetPlayer(p.ID)
	}
	if err := s.buildBrains(spec, env); err != nil {
		return nil, err
	}

	if spec.Board != nil {
		b, err := buildBoard(*spec.Board, s.Rand())
		if err != nil {
			return nil, err
		}
		s.Board = b
	}

	if err := s.buildEmitters(spec.Emitters); err != nil {
		return nil, err
	}

	for _, ps := range spec.Parallax {
		if env.Loader == nil {
			return nil, &LoadError{Op: "texture", Path: ps.Path, Err: fmt.Errorf("no texture loader")}
		}
		path := resolvePath(env.BaseDir, ps.Path)
		tex, err := env.Loader.LoadTexture(path)
		if err != nil {
			return nil, &LoadError{Op: "texture", Path: path, Err: err}
		}
		s.Background.Layers = append(s.Background.Layers, NewParallaxLayer(tex, ps.Speed))
	}

	if spec.Camera.ClampToWorld && s.World != nil {
		s.Camera.SetBounds(s.World.Bounds())
	}
	if p := s.Player(); p != nil {
		s.Camera.Update(p.Position)
		if from := spec.Camera.IntroFrom; from != nil && spec.Camera.IntroSeconds > 0 {
			target := p.Position
			s.Camera.Position = from.Sub(s.Camera.Size.Div(2))
			s.Camera.ScrollTo(target, spec.Camera.IntroSeconds, ease.InOutQuad)
		}
	}

	if spec.Profiler != nil {
		s.EnableProfiler(*spec.Profiler)
	}

	for _, ws := range spec.UI {
		if err := s.addWidget(ws); err != nil {
			return nil, err
		}
	}

	if spec.Replay != "" {
		data, err := os.ReadFile(resolvePath(env.BaseDir, spec.Replay))
		if err != nil {
			return nil, &LoadError{Op: "replay", Path: spec.Replay, Err: err}
		}
		r, err := LoadReplay(data)
		if err != nil {
			return nil, err
		}
		s.SetReplay(r)
	}
	return s, nil
}

// buildBrains (re)creates behaviour trees for every entity spec that has
// one.
func (s *Scene) buildBrains(spec SceneSpec, env BuildEnv) error {
	for _, es := range spec.Entities {
		if es.Behaviour == nil {
			continue
		}
		e, ok := s.EntityByName(es.Name)
		if !ok {
			continue
		}
		root, err := BuildTree(*es.Behaviour, ActionContext{Scene: s, Entity: e}, env.Actions, env.Scripts)
		if err != nil {
			return fmt.Errorf("goku: entity %q behaviour: %w", es.Name, err)
		}
		e.Brain = NewBehaviourTree(root)
	}
	return nil
}

func (s *Scene) buildEmitters(specs []EmitterSpec) error {
	s.Emitters = s.Emitters[:0]
	for _, es := range specs {
		cfg := es.EffectConfig
		if cfg.Area == (Point{}) {
			cfg.Area = Point{s.cfg.ScreenWidth, s.cfg.ScreenHeight}
		}
		spawn, err := SpawnFuncFor(cfg)
		if err != nil {
			return err
		}
		if es.Burst > 0 {
			s.Particles = spawn(s.Particles, s.rng, es.Burst)
		}
		if es.Rate > 0 {
			em := &ParticleEmitter{EmitRate: es.Rate, MaxParticles: es.Max, Spawn: spawn}
			em.Start()
			s.Emitters = append(s.Emitters, em)
		}
	}
	return nil
}

func (s *Scene) addWidget(ws WidgetSpec) error {
	name := ws.Name
	c := ws.Color.Or(colornames.Gray)
	switch ws.Kind {
	case "button":
		s.UI.Buttons = append(s.UI.Buttons, &Button{Rect: ws.Rect, Color: c, OnClick: func() {
			s.logger.Info("button clicked", "name", name)
		}})
	case "checkbox":
		cb := &Checkbox{Button: Button{Rect: ws.Rect, Color: c}}
		cb.OnClick = func() {
			s.logger.Info("checkbox toggled", "name", name, "checked", cb.Checked)
		}
		s.UI.Checkboxes = append(s.UI.Checkboxes, cb)
	case "slider":
		hw, hh := ws.Handle.X, ws.Handle.Y
		if hw <= 0 {
			hw = 10
		}
		if hh <= 0 {
			hh = ws.Rect.Height
		}
		s.UI.Sliders = append(s.UI.Sliders, &Slider{
			Track:       ws.Rect,
			Handle:      Rect{ws.Rect.X, ws.Rect.Y, hw, hh},
			TrackColor:  c,
			HandleColor: colornames.White,
			OnChange: func(v float32) {
				s.logger.Info("slider changed", "name", name, "value", v)
			},
		})
	default:
		return fmt.Errorf("goku: unknown widget kind %q", ws.Kind)
	}
	return nil
}

func buildBoard(spec BoardSpec, rng *rand.Rand) (*Board, error) {
	size := spec.BlockSize
	if size <= 0 {
		size = 20
	}
	kinds := make([]TetrominoKind, 0, len(spec.Pieces))
	for _, p := range spec.Pieces {
		k, err := ParseTetromino(p)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	if len(kinds) == 0 {
		for k := range tetrominoCells {
			kinds = append(kinds, TetrominoKind(k))
		}
	}
	colors := make([]color.RGBA, 0, len(spec.Colors))
	for _, c := range spec.Colors {
		colors = append(colors, c.Or(colornames.Orange))
	}
	if len(colors) == 0 {
		colors = leafPalette
	}

	b := NewBoard(spec.Bounds, size)
	origin := Point{spec.Bounds.X + (spec.Bounds.Width/2/size)*size - size, spec.Bounds.Y}
	b.Spawn = func() *Shape {
		sh := Tetromino(kinds[intNOf(rng, len(kinds))], origin, size, colors[intNOf(rng, len(colors))])
		if spec.Speed > 0 {
			sh.Body.Speed = spec.Speed
		}
		if b.Intersects(sh.Bounds()) {
			return nil
		}
		return sh
	}
	return b, nil
}

// SceneReloader returns a reload hook for Scene.Watch. Changes to the tile
// map replace the world; changes to scripts or to the scene spec rebuild
// the behaviour trees.
func SceneReloader(specPath string, spec SceneSpec, env BuildEnv) func(path string) ReloadFunc {
	env = env.withDefaults()
	mapPath := ""
	if spec.TileMap != "" {
		mapPath = filepath.Clean(resolvePath(env.BaseDir, spec.TileMap))
	}
	return func(path string) ReloadFunc {
		path = filepath.Clean(path)
		switch {
		case path == mapPath:
			return func(s *Scene) error {
				w, err := LoadWorldFile(mapPath, spec.World)
				if err != nil {
					return err
				}
				s.World = w
				return nil
			}
		case strings.EqualFold(filepath.Ext(path), ".tengo"):
			return func(s *Scene) error {
				if c, ok := env.Scripts.(*ScriptCache); ok {
					c.Forget(path)
				}
				return s.buildBrains(spec, env)
			}
		case path == filepath.Clean(specPath):
			return func(s *Scene) error {
				next, err := LoadSpec[SceneSpec](specPath)
				if err != nil {
					return err
				}
				spec = next
				if err := s.buildEmitters(spec.Emitters); err != nil {
					return err
				}
				return s.buildBrains(spec, env)
			}
		}
		return nil
	}
}
