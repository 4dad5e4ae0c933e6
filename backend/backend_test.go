package backend

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/goku"
)

func TestMapKey(t *testing.T) {
	tests := []struct {
		in   ebiten.Key
		want goku.Key
	}{
		{ebiten.KeyArrowLeft, goku.KeyLeft},
		{ebiten.KeyArrowRight, goku.KeyRight},
		{ebiten.KeyArrowUp, goku.KeyUp},
		{ebiten.KeyArrowDown, goku.KeyDown},
		{ebiten.KeyEscape, goku.KeyEscape},
		{ebiten.KeyA, goku.KeyOther},
		{ebiten.KeySpace, goku.KeyOther},
	}
	for _, tt := range tests {
		if got := MapKey(tt.in); got != tt.want {
			t.Errorf("MapKey(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTickClock(t *testing.T) {
	c := NewTickClock(60)
	if c.Millis() != 0 {
		t.Errorf("Millis = %d, want 0", c.Millis())
	}
	for range 30 {
		c.Tick()
	}
	if c.Ticks() != 30 {
		t.Errorf("Ticks = %d, want 30", c.Ticks())
	}
	if c.Millis() != 500 {
		t.Errorf("Millis = %d, want 500", c.Millis())
	}
	if c.Seconds() != 0.5 {
		t.Errorf("Seconds = %v, want 0.5", c.Seconds())
	}
}

func TestFrameGeoM(t *testing.T) {
	src := goku.Rect{X: 32, Y: 0, Width: 16, Height: 16}
	dst := goku.Rect{X: 100, Y: 50, Width: 32, Height: 32}

	m := frameGeoM(src, dst, false)
	if x, y := m.Apply(0, 0); x != 100 || y != 50 {
		t.Errorf("origin -> (%v,%v), want (100,50)", x, y)
	}
	if x, y := m.Apply(16, 16); x != 132 || y != 82 {
		t.Errorf("corner -> (%v,%v), want (132,82)", x, y)
	}

	flipped := frameGeoM(src, dst, true)
	if x, _ := flipped.Apply(0, 0); x != 132 {
		t.Errorf("flipped origin x = %v, want 132", x)
	}
	if x, _ := flipped.Apply(16, 0); x != 100 {
		t.Errorf("flipped right edge x = %v, want 100", x)
	}
}

func TestFrameGeoMEmptySource(t *testing.T) {
	m := frameGeoM(goku.Rect{}, goku.Rect{X: 5, Y: 5, Width: 10, Height: 10}, false)
	if x, y := m.Apply(1, 1); x != 1 || y != 1 {
		t.Errorf("empty source should give identity, got (%v,%v)", x, y)
	}
}

func TestSinkWithoutTargetIgnoresDraws(t *testing.T) {
	s := NewSink(2)
	// Must not panic.
	s.FillRect(goku.Rect{Width: 10, Height: 10}, nil)
	s.DrawTile(2, goku.Rect{Width: 10, Height: 10})
	s.DrawParticle(goku.Rect{Width: 2, Height: 2}, nil, goku.ParticleCircle)
	s.DrawFrame(nil, goku.Rect{}, goku.Rect{}, false)
}

func TestNewGameDefaults(t *testing.T) {
	scene := goku.NewScene(goku.SceneConfig{ScreenWidth: 320, ScreenHeight: 240})
	g := NewGame(scene, RunConfig{})
	if w, h := g.Layout(0, 0); w != 320 || h != 240 {
		t.Errorf("Layout = %dx%d, want 320x240", w, h)
	}
	if _, ok := scene.Input().(*Input); !ok {
		t.Errorf("scene input = %T, want *Input", scene.Input())
	}
	if scene.Clock() != goku.Clock(g.clock) {
		t.Error("scene clock should be the game's tick clock")
	}
	if g.cfg.ScreenshotDir != DefaultScreenshotDir {
		t.Errorf("ScreenshotDir = %q, want %q", g.cfg.ScreenshotDir, DefaultScreenshotDir)
	}
}

func TestNewGameKeepsReplayInput(t *testing.T) {
	scene := goku.NewScene(goku.SceneConfig{})
	r, err := goku.LoadReplay([]byte("steps:\n  - action: quit\n"))
	if err != nil {
		t.Fatal(err)
	}
	scene.SetReplay(r)
	NewGame(scene, RunConfig{})
	if _, ok := scene.Input().(*goku.InputQueue); !ok {
		t.Errorf("scene input = %T, want the replay queue", scene.Input())
	}
}

func TestSanitizeLabel(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", "unlabeled"},
		{"  ", "unlabeled"},
		{"after-jump.1", "after-jump.1"},
		{"hero hits wall/left", "hero_hits_wall_left"},
	}
	for _, tt := range tests {
		if got := sanitizeLabel(tt.in); got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUnpremultiply(t *testing.T) {
	img := unpremultiply([]byte{50, 25, 0, 128, 10, 20, 30, 255}, 2, 1)
	got := img.NRGBAAt(0, 0)
	if got.R != 99 || got.G != 49 || got.B != 0 || got.A != 128 {
		t.Errorf("half-transparent pixel = %v, want {99 49 0 128}", got)
	}
	if got := img.NRGBAAt(1, 0); got.R != 10 || got.A != 255 {
		t.Errorf("opaque pixel = %v, want unchanged", got)
	}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.png")
	if err := writePNG(path, unpremultiply(make([]byte, 16), 2, 2)); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("png not written: %v", err)
	}
	if err := writePNG(filepath.Join(t.TempDir(), "missing", "shot.png"), image.NewNRGBA(image.Rect(0, 0, 1, 1))); err == nil {
		t.Error("expected error for missing directory")
	}
}
