package goku

import (
	"errors"
	"fmt"
)

// Sentinel errors. Match them with errors.Is.
var (
	// ErrEmptyMap is returned when a tile map contains no rows.
	ErrEmptyMap = errors.New("empty tile map")
	// ErrRaggedRow is returned when a tile map row has a different number of
	// cells than the first row.
	ErrRaggedRow = errors.New("ragged tile map row")
	// ErrInvalidTile is returned when a tile map cell is not an unsigned integer.
	ErrInvalidTile = errors.New("invalid tile code")
	// ErrInvalidFrame is returned when sprite sheet geometry cannot produce frames.
	ErrInvalidFrame = errors.New("invalid frame geometry")

	// ErrNoAnimation is returned when no animation tag has been selected.
	ErrNoAnimation = errors.New("no animation set")
	// ErrAnimationNotLoaded is returned when the current tag has no animation.
	ErrAnimationNotLoaded = errors.New("animation not loaded for current tag")

	// ErrQuit is returned from Scene.Update once a quit signal was observed.
	ErrQuit = errors.New("quit requested")
)

// LoadError reports a failure to load a tile map, texture or spec. It is fatal
// to the subsystem being loaded.
type LoadError struct {
	Op   string // "tilemap", "texture", "spec", ...
	Path string // source path, empty for in-memory sources
	Line int    // 1-based line, 0 when not applicable
	Col  int    // 1-based cell column, 0 when not applicable
	Err  error
}

func (e *LoadError) Error() string {
	where := e.Path
	if where == "" {
		where = "<input>"
	}
	if e.Line > 0 {
		if e.Col > 0 {
			where = fmt.Sprintf("%s:%d:%d", where, e.Line, e.Col)
		} else {
			where = fmt.Sprintf("%s:%d", where, e.Line)
		}
	}
	return fmt.Sprintf("goku: load %s %s: %v", e.Op, where, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// StateError reports a recoverable per-frame condition, such as rendering an
// entity whose animation tag is missing. Callers may ignore it for the frame.
type StateError struct {
	Tag string
	Err error
}

func (e *StateError) Error() string {
	if e.Tag == "" {
		return "goku: " + e.Err.Error()
	}
	return fmt.Sprintf("goku: %v (tag %q)", e.Err, e.Tag)
}

func (e *StateError) Unwrap() error { return e.Err }
