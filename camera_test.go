package goku

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func TestCameraDefaults(t *testing.T) {
	cam := NewCamera(Point{}, 800, 600)
	if cam.Size != (Point{800, 600}) {
		t.Errorf("Size = %v, want 800x600", cam.Size)
	}
	if cam.BoundsEnabled {
		t.Error("BoundsEnabled = true, want false")
	}
	if cam.Scrolling() {
		t.Error("new camera should not be scrolling")
	}
}

func TestCameraUpdateCentersTarget(t *testing.T) {
	cam := NewCamera(Point{}, 800, 600)
	target := Point{1000, 700}
	cam.Update(target)
	if cam.Position != (Point{600, 400}) {
		t.Errorf("Position = %v, want (600,400)", cam.Position)
	}
	// The target lands in the middle of the screen.
	if got := cam.WorldToScreen(target); got != (Point{400, 300}) {
		t.Errorf("WorldToScreen(target) = %v, want (400,300)", got)
	}
}

func TestCameraCenteringInvariant(t *testing.T) {
	cam := NewCamera(Point{}, 640, 480)
	for _, p := range []Point{{0, 0}, {13, -7}, {5000, 123}, {-300, -300}} {
		cam.Update(p)
		if cam.Position.X+cam.Size.X/2 != p.X || cam.Position.Y+cam.Size.Y/2 != p.Y {
			t.Errorf("after Update(%v): Position + Size/2 = (%d,%d)", p,
				cam.Position.X+cam.Size.X/2, cam.Position.Y+cam.Size.Y/2)
		}
	}
}

func TestCameraTransformRect(t *testing.T) {
	cam := NewCamera(Point{100, 50}, 800, 600)
	got := cam.TransformRect(Rect{150, 80, 10, 20})
	want := Rect{50, 30, 10, 20}
	if got != want {
		t.Errorf("TransformRect = %v, want %v", got, want)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := NewCamera(Point{-40, 77}, 800, 600)
	for _, p := range []Point{{0, 0}, {400, 300}, {-12, 999}} {
		if got := cam.ScreenToWorld(cam.WorldToScreen(p)); got != p {
			t.Errorf("roundtrip %v = %v", p, got)
		}
	}
}

func TestVisibleBounds(t *testing.T) {
	cam := NewCamera(Point{10, 20}, 800, 600)
	vb := cam.VisibleBounds()
	if vb != (Rect{10, 20, 800, 600}) {
		t.Errorf("VisibleBounds = %v", vb)
	}
	if !cam.Visible(Rect{0, 0, 11, 21}) {
		t.Error("rect overlapping the corner should be visible")
	}
	if cam.Visible(Rect{0, 0, 10, 20}) {
		t.Error("rect touching only the corner should not be visible")
	}
	if cam.Visible(Rect{810, 0, 5, 5}) {
		t.Error("rect right of the view should not be visible")
	}
}

func TestCameraScrollTo(t *testing.T) {
	cam := NewCamera(Point{}, 800, 600)
	cam.ScrollTo(Point{1400, 1300}, 1.0, ease.Linear)
	if !cam.Scrolling() {
		t.Fatal("expected scrolling after ScrollTo")
	}

	cam.Tick(0.5)
	if cam.Position != (Point{500, 500}) {
		t.Errorf("halfway Position = %v, want (500,500)", cam.Position)
	}

	cam.Tick(0.5)
	if cam.Position != (Point{1000, 1000}) {
		t.Errorf("final Position = %v, want (1000,1000)", cam.Position)
	}
	if cam.Scrolling() {
		t.Error("scroll should have finished")
	}
}

func TestCameraScrollSuspendsFollow(t *testing.T) {
	cam := NewCamera(Point{}, 800, 600)
	cam.ScrollTo(Point{1400, 1300}, 2.0, nil)
	cam.Update(Point{0, 0})
	if cam.Position != (Point{}) {
		t.Errorf("Update during scroll moved camera to %v", cam.Position)
	}
	cam.Tick(2.0)
	cam.Update(Point{400, 300})
	if cam.Position != (Point{}) {
		t.Errorf("Update after scroll = %v, want (0,0)", cam.Position)
	}
}

func TestCameraBounds(t *testing.T) {
	cam := NewCamera(Point{}, 800, 600)
	cam.SetBounds(Rect{0, 0, 2000, 1500})

	cam.Update(Point{100, 100})
	if cam.Position != (Point{0, 0}) {
		t.Errorf("clamped to top-left = %v, want (0,0)", cam.Position)
	}

	cam.Update(Point{1990, 1490})
	if cam.Position != (Point{1200, 900}) {
		t.Errorf("clamped to bottom-right = %v, want (1200,900)", cam.Position)
	}
}

func TestCameraClearBounds(t *testing.T) {
	cam := NewCamera(Point{}, 800, 600)
	cam.SetBounds(Rect{0, 0, 2000, 1500})
	cam.ClearBounds()
	cam.Update(Point{0, 0})
	if cam.Position != (Point{-400, -300}) {
		t.Errorf("Position = %v, want (-400,-300)", cam.Position)
	}
}

func TestCameraBoundsSmallWorld(t *testing.T) {
	cam := NewCamera(Point{}, 800, 600)
	cam.SetBounds(Rect{0, 0, 400, 300})
	cam.Update(Point{390, 10})
	// A world smaller than the view is centered.
	if cam.Position != (Point{-200, -150}) {
		t.Errorf("Position = %v, want (-200,-150)", cam.Position)
	}
}
