package backend

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/goku"
)

// Input reads ebiten's keyboard and mouse state once per Poll. Arrow keys
// and Escape map to goku keys; every other key is reported as KeyOther.
type Input struct {
	keys    []ebiten.Key
	pressed bool
}

// NewInput returns an Input for the running ebiten game.
func NewInput() *Input {
	return &Input{}
}

// MapKey converts an ebiten key to a goku key.
func MapKey(k ebiten.Key) goku.Key {
	switch k {
	case ebiten.KeyArrowLeft:
		return goku.KeyLeft
	case ebiten.KeyArrowRight:
		return goku.KeyRight
	case ebiten.KeyArrowUp:
		return goku.KeyUp
	case ebiten.KeyArrowDown:
		return goku.KeyDown
	case ebiten.KeyEscape:
		return goku.KeyEscape
	}
	return goku.KeyOther
}

// Poll implements goku.InputSource.
func (in *Input) Poll() []goku.Event {
	var events []goku.Event
	if ebiten.IsWindowBeingClosed() {
		events = append(events, goku.Event{Type: goku.EventQuit})
	}

	in.keys = inpututil.AppendJustPressedKeys(in.keys[:0])
	for _, k := range in.keys {
		events = append(events, goku.Event{Type: goku.EventKeyDown, Key: MapKey(k)})
	}
	in.keys = inpututil.AppendJustReleasedKeys(in.keys[:0])
	for _, k := range in.keys {
		events = append(events, goku.Event{Type: goku.EventKeyUp, Key: MapKey(k)})
	}

	in.pressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	return events
}

// MouseButtonPressed implements goku.InputSource. It is true only on the
// poll during which the left button went down.
func (in *Input) MouseButtonPressed() bool { return in.pressed }

// MousePosition implements goku.InputSource.
func (in *Input) MousePosition() (int, int) { return ebiten.CursorPosition() }
