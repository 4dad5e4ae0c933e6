package goku

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// statusVar is the script global a behaviour script assigns its result to.
const statusVar = "status"

// Script is a compiled tengo behaviour script. Scripts read input globals
// and report their result by assigning "success", "failure" or "running" to
// the global status:
//
//	if dist < 100 { status = "success" } else { status = "failure" }
//
// One Script can back many actions; each action runs its own clone.
type Script struct {
	Name     string
	compiled *tengo.Compiled
}

// CompileScript compiles src. globals declares the input and output
// variables the script may use, with their initial values.
func CompileScript(name string, src []byte, globals map[string]any) (*Script, error) {
	s := tengo.NewScript(src)
	if err := s.Add(statusVar, Failure.String()); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(globals))
	for k := range globals {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		if err := s.Add(k, globals[k]); err != nil {
			return nil, fmt.Errorf("goku: script %s: global %q: %w", name, k, err)
		}
	}
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	compiled, err := s.Compile()
	if err != nil {
		return nil, &LoadError{Op: "script", Path: name, Err: err}
	}
	return &Script{Name: name, compiled: compiled}, nil
}

// ScriptAction is a behaviour leaf that runs a Script on every tick.
type ScriptAction struct {
	script   *Script
	compiled *tengo.Compiled

	// Before sets inputs ahead of each run. An error fails the tick.
	Before func(a *ScriptAction) error
	// After reads outputs once a run has finished.
	After func(a *ScriptAction, st Status)

	logger *slog.Logger
}

// NewAction returns a leaf backed by a private copy of the script's
// globals. logger may be nil.
func (s *Script) NewAction(logger *slog.Logger) *ScriptAction {
	if logger == nil {
		logger = slog.Default()
	}
	return &ScriptAction{script: s, compiled: s.compiled.Clone(), logger: logger}
}

// Set assigns a declared global.
func (a *ScriptAction) Set(name string, value any) error {
	return a.compiled.Set(name, value)
}

// Float returns a global as a float64, or 0 if it is not defined.
func (a *ScriptAction) Float(name string) float64 {
	if !a.compiled.IsDefined(name) {
		return 0
	}
	return a.compiled.Get(name).Float()
}

// Value returns a global converted to a Go value.
func (a *ScriptAction) Value(name string) any {
	if !a.compiled.IsDefined(name) {
		return nil
	}
	return a.compiled.Get(name).Value()
}

// Tick runs the script and returns the status it assigned. Errors and
// unknown status strings are logged and reported as Failure.
func (a *ScriptAction) Tick() Status {
	if err := a.compiled.Set(statusVar, Failure.String()); err != nil {
		a.logger.Error("script status reset failed", "script", a.script.Name, "err", err)
		return Failure
	}
	if a.Before != nil {
		if err := a.Before(a); err != nil {
			a.logger.Error("script inputs failed", "script", a.script.Name, "err", err)
			return Failure
		}
	}
	if err := a.compiled.Run(); err != nil {
		a.logger.Error("script run failed", "script", a.script.Name, "err", err)
		return Failure
	}
	st, err := ParseStatus(a.compiled.Get(statusVar).String())
	if err != nil {
		a.logger.Error("script returned bad status", "script", a.script.Name, "err", err)
		st = Failure
	}
	if a.After != nil {
		a.After(a, st)
	}
	return st
}
