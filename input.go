package goku

import "fmt"

// Key is an abstract key. Backends map platform keys onto it.
type Key int

const (
	KeyOther Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyEscape
)

var keyNames = [...]string{
	KeyOther:  "other",
	KeyLeft:   "left",
	KeyRight:  "right",
	KeyUp:     "up",
	KeyDown:   "down",
	KeyEscape: "escape",
}

func (k Key) String() string {
	if k >= 0 && int(k) < len(keyNames) {
		return keyNames[k]
	}
	return fmt.Sprintf("Key(%d)", int(k))
}

// movementKeys lists the keys that move an entity, in a fixed order.
var movementKeys = [...]Key{KeyLeft, KeyRight, KeyUp, KeyDown}

// EventType distinguishes input events.
type EventType int

const (
	EventQuit EventType = iota
	EventKeyDown
	EventKeyUp
)

// Event is one input event. Key is meaningful for key events only.
type Event struct {
	Type EventType
	Key  Key
}

// InputSource is what the frame loop reads input from. The core never talks
// to the platform directly.
type InputSource interface {
	// Poll returns the events observed since the previous call.
	Poll() []Event
	// MouseButtonPressed reports whether the primary button was pressed
	// during the last poll.
	MouseButtonPressed() bool
	// MousePosition returns the cursor in screen pixels.
	MousePosition() (x, y int)
}

// InputQueue is an InputSource fed by hand. Tests and replays queue events
// that are delivered on the next Poll.
type InputQueue struct {
	events      []Event
	mouseX      int
	mouseY      int
	clickQueued bool
	pressed     bool
}

// NewInputQueue returns an empty queue.
func NewInputQueue() *InputQueue {
	return &InputQueue{}
}

// Push queues events for the next Poll.
func (q *InputQueue) Push(events ...Event) {
	q.events = append(q.events, events...)
}

// InjectKeyDown queues a key press.
func (q *InputQueue) InjectKeyDown(k Key) {
	q.Push(Event{Type: EventKeyDown, Key: k})
}

// InjectKeyUp queues a key release.
func (q *InputQueue) InjectKeyUp(k Key) {
	q.Push(Event{Type: EventKeyUp, Key: k})
}

// InjectQuit queues a quit request.
func (q *InputQueue) InjectQuit() {
	q.Push(Event{Type: EventQuit})
}

// InjectClick moves the cursor to (x, y) and presses the button for the
// next poll only.
func (q *InputQueue) InjectClick(x, y int) {
	q.mouseX, q.mouseY = x, y
	q.clickQueued = true
}

// MoveMouse moves the cursor without clicking.
func (q *InputQueue) MoveMouse(x, y int) {
	q.mouseX, q.mouseY = x, y
}

// Poll implements InputSource.
func (q *InputQueue) Poll() []Event {
	q.pressed = q.clickQueued
	q.clickQueued = false
	ev := q.events
	q.events = nil
	return ev
}

// MouseButtonPressed implements InputSource.
func (q *InputQueue) MouseButtonPressed() bool { return q.pressed }

// MousePosition implements InputSource.
func (q *InputQueue) MousePosition() (int, int) { return q.mouseX, q.mouseY }

// KeyState tracks which keys are held from a stream of events.
type KeyState struct {
	held map[Key]bool
}

// Apply records a key event. Other events are ignored.
func (s *KeyState) Apply(ev Event) {
	if s.held == nil {
		s.held = make(map[Key]bool)
	}
	switch ev.Type {
	case EventKeyDown:
		s.held[ev.Key] = true
	case EventKeyUp:
		delete(s.held, ev.Key)
	}
}

// Held reports whether k is down.
func (s *KeyState) Held(k Key) bool { return s.held[k] }

// HeldMovement returns the held movement keys in the order left, right, up,
// down.
func (s *KeyState) HeldMovement() []Key {
	var out []Key
	for _, k := range movementKeys {
		if s.held[k] {
			out = append(out, k)
		}
	}
	return out
}

// Reset releases every key.
func (s *KeyState) Reset() { clear(s.held) }
