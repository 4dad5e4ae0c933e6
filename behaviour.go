package goku

import "fmt"

// Status is the result of ticking a behaviour node.
type Status int

const (
	Success Status = iota
	Failure
	Running
)

func (s Status) String() string {
	switch s {
	case Success:
		return "success"
	case Failure:
		return "failure"
	case Running:
		return "running"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// ParseStatus maps "success", "failure" or "running" to a Status.
func ParseStatus(s string) (Status, error) {
	switch s {
	case "success":
		return Success, nil
	case "failure":
		return Failure, nil
	case "running":
		return Running, nil
	}
	return Failure, fmt.Errorf("goku: unknown status %q", s)
}

// Node is one element of a behaviour tree.
type Node interface {
	Tick() Status
}

// ActionFunc is a leaf node backed by a callback. Side effects are the
// callback's business.
type ActionFunc func() Status

// Tick calls f. A nil ActionFunc fails.
func (f ActionFunc) Tick() Status {
	if f == nil {
		return Failure
	}
	return f()
}

// Action wraps fn as a leaf node.
func Action(fn func() Status) Node { return ActionFunc(fn) }

// Selector ticks its children in order and returns the first Success or
// Running. It fails when every child fails, including when it has none.
type Selector struct {
	Children []Node
}

// NewSelector creates a selector over children.
func NewSelector(children ...Node) *Selector {
	return &Selector{Children: children}
}

func (s *Selector) Tick() Status {
	for _, c := range s.Children {
		if st := c.Tick(); st != Failure {
			return st
		}
	}
	return Failure
}

// Sequence ticks its children in order and returns the first Failure or
// Running. It succeeds when every child succeeds, including when it has
// none.
type Sequence struct {
	Children []Node
}

// NewSequence creates a sequence over children.
func NewSequence(children ...Node) *Sequence {
	return &Sequence{Children: children}
}

func (s *Sequence) Tick() Status {
	for _, c := range s.Children {
		if st := c.Tick(); st != Success {
			return st
		}
	}
	return Success
}

// BehaviourTree evaluates Root from scratch on every Tick. Nodes keep no
// memory between ticks, so a Running leaf is simply called again next time.
type BehaviourTree struct {
	Root Node
}

// NewBehaviourTree wraps root.
func NewBehaviourTree(root Node) *BehaviourTree {
	return &BehaviourTree{Root: root}
}

// Tick evaluates the tree. A tree without a root fails.
func (t *BehaviourTree) Tick() Status {
	if t == nil || t.Root == nil {
		return Failure
	}
	return t.Root.Tick()
}
