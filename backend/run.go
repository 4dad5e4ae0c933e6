package backend

import (
	"errors"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/goku"
)

// RunConfig configures Run.
type RunConfig struct {
	// Title is the window title.
	Title string `yaml:"title"`
	// Width and Height size the window. Zero uses the scene's screen size.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	// ShowFPS draws an FPS/TPS overlay in the top-left corner.
	ShowFPS bool `yaml:"show_fps"`
	// Background clears the screen each frame. Nil means black.
	Background color.Color `yaml:"-"`
	// Sink, when set, replaces the default sink. Use it to register tile
	// textures.
	Sink *Sink `yaml:"-"`
	// ScreenshotDir receives PNGs requested with Scene.Screenshot.
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// Game adapts a goku scene to ebiten.Game.
type Game struct {
	scene *goku.Scene
	cfg   RunConfig
	sink  *Sink
	clock *TickClock
	fps   *fpsOverlay
}

// NewGame wires scene to ebiten: the scene reads input from an Input, keeps
// time with a TickClock and draws through a Sink.
func NewGame(scene *goku.Scene, cfg RunConfig) *Game {
	sc := scene.Config()
	if cfg.Width <= 0 {
		cfg.Width = sc.ScreenWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = sc.ScreenHeight
	}
	if cfg.Background == nil {
		cfg.Background = color.Black
	}
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = DefaultScreenshotDir
	}
	sink := cfg.Sink
	if sink == nil {
		code := uint32(goku.DefaultSolidCode)
		if scene.World != nil {
			code = scene.World.SolidCode()
		}
		sink = NewSink(code)
	}

	g := &Game{scene: scene, cfg: cfg, sink: sink, clock: NewTickClock(0)}
	scene.SetClock(g.clock)
	// A replay already owns the input.
	if scene.Replay() == nil {
		scene.SetInput(NewInput())
	}
	if cfg.ShowFPS {
		g.fps = newFPSOverlay()
	}
	return g
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	g.clock.Tick()
	if err := g.scene.Update(); err != nil {
		if errors.Is(err, goku.ErrQuit) {
			return ebiten.Termination
		}
		return err
	}
	if g.fps != nil {
		g.fps.update(1 / float64(g.clock.rate()))
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.cfg.Background)
	g.sink.Target = screen
	g.scene.Render(g.sink)
	if g.fps != nil {
		g.fps.draw(screen)
	}
	flushScreenshots(screen, g.cfg.ScreenshotDir, g.scene.TakeScreenshots(), g.scene.Logger())
}

// Layout implements ebiten.Game.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Run opens a window and runs scene until it quits or the window closes.
func Run(scene *goku.Scene, cfg RunConfig) error {
	g := NewGame(scene, cfg)
	ebiten.SetWindowTitle(g.cfg.Title)
	ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	ebiten.SetWindowClosingHandled(true)
	return ebiten.RunGame(g)
}
