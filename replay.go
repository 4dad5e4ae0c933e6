package goku

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// replayStep represents a single action in a replay script.
type replayStep struct {
	Action string `yaml:"action"`
	Key    string `yaml:"key,omitempty"`
	Label  string `yaml:"label,omitempty"`
	X      int    `yaml:"x,omitempty"`
	Y      int    `yaml:"y,omitempty"`
	Frames int    `yaml:"frames,omitempty"`
}

// replayScript is the top-level structure of a replay script.
type replayScript struct {
	Steps []replayStep `yaml:"steps"`
}

// Replay feeds scripted input into a scene one step per frame, for
// automated runs and regression tests. Attach it with Scene.SetReplay.
//
// Actions: key_down, key_up, click, screenshot, quit and wait.
type Replay struct {
	steps     []replayStep
	cursor    int
	waitCount int
	done      bool
	queue     *InputQueue
}

var replayKeys = map[string]Key{
	"left": KeyLeft, "right": KeyRight, "up": KeyUp, "down": KeyDown,
	"escape": KeyEscape, "other": KeyOther,
}

// LoadReplay parses a replay script. YAML and JSON are both accepted.
func LoadReplay(data []byte) (*Replay, error) {
	var script replayScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("goku: parse replay: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("goku: parse replay: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "key_down", "key_up":
			if _, ok := replayKeys[st.Key]; !ok {
				return nil, fmt.Errorf("goku: parse replay: step %d: unknown key %q", i+1, st.Key)
			}
		case "click", "screenshot", "quit", "wait":
		default:
			return nil, fmt.Errorf("goku: parse replay: step %d: unknown action %q", i+1, st.Action)
		}
	}
	return &Replay{steps: script.Steps, queue: NewInputQueue()}, nil
}

// SetReplay attaches a replay. Its queue becomes the scene's input source.
func (s *Scene) SetReplay(r *Replay) {
	s.replay = r
	if r != nil {
		s.input = r.queue
	}
}

// Replay returns the attached replay, or nil.
func (s *Scene) Replay() *Replay { return s.replay }

// Done reports whether all steps have been executed.
func (r *Replay) Done() bool {
	return r.done
}

// step advances the replay by one frame. Called from Scene.Update before
// input is polled.
func (r *Replay) step(s *Scene) {
	if r.done {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "key_down":
		r.queue.InjectKeyDown(replayKeys[st.Key])
	case "key_up":
		r.queue.InjectKeyUp(replayKeys[st.Key])
	case "click":
		r.queue.InjectClick(st.X, st.Y)
	case "screenshot":
		s.Screenshot(st.Label)
	case "quit":
		r.queue.InjectQuit()
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}
