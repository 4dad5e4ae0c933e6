package goku

import (
	"fmt"
	"log/slog"
	"math"
)

// ActionContext is what an action factory gets to build a leaf for one
// entity.
type ActionContext struct {
	Scene  *Scene
	Entity *Entity
	Params map[string]float64
}

// Param returns a numeric parameter, or def when it is not set.
func (c ActionContext) Param(name string, def float64) float64 {
	if v, ok := c.Params[name]; ok {
		return v
	}
	return def
}

// target returns the player, or nil when the entity is the player.
func (c ActionContext) target() *Entity {
	if c.Scene == nil {
		return nil
	}
	p := c.Scene.Player()
	if p == c.Entity {
		return nil
	}
	return p
}

// ActionFactory builds a behaviour leaf for one entity.
type ActionFactory func(ctx ActionContext) Node

// ActionRegistry maps action names used in scene files to factories.
type ActionRegistry map[string]ActionFactory

// DefaultActions returns the built-in actions:
//
//	idle          stop moving; succeeds
//	chase_player  steer toward the player; running until within "radius"
//	flee_player   steer away from the player; running
//	player_near   succeeds if the player is within "radius" (default 150)
//	player_far    the inverse of player_near
func DefaultActions() ActionRegistry {
	return ActionRegistry{
		"idle": func(ctx ActionContext) Node {
			return Action(func() Status {
				ctx.Entity.Body.Stop()
				return Success
			})
		},
		"chase_player": func(ctx ActionContext) Node {
			radius := ctx.Param("radius", 0)
			return Action(func() Status {
				t := ctx.target()
				if t == nil {
					return Failure
				}
				if radius > 0 && distance(ctx.Entity.Center(), t.Center()) <= radius {
					ctx.Entity.Body.Stop()
					return Success
				}
				steer(ctx.Entity, t.Center().Sub(ctx.Entity.Center()))
				return Running
			})
		},
		"flee_player": func(ctx ActionContext) Node {
			return Action(func() Status {
				t := ctx.target()
				if t == nil {
					return Failure
				}
				steer(ctx.Entity, ctx.Entity.Center().Sub(t.Center()))
				return Running
			})
		},
		"player_near": func(ctx ActionContext) Node {
			radius := ctx.Param("radius", 150)
			return Action(func() Status {
				t := ctx.target()
				if t == nil || distance(ctx.Entity.Center(), t.Center()) > radius {
					return Failure
				}
				return Success
			})
		},
		"player_far": func(ctx ActionContext) Node {
			radius := ctx.Param("radius", 150)
			return Action(func() Status {
				t := ctx.target()
				if t == nil || distance(ctx.Entity.Center(), t.Center()) <= radius {
					return Failure
				}
				return Success
			})
		},
	}
}

// steer replaces the entity's motion with a unit force along d.
func steer(e *Entity, d Point) {
	e.Body.Stop()
	v := Vec2{float32(d.X), float32(d.Y)}.Normalized()
	if v.IsZero() {
		return
	}
	e.Body.ApplyForce(v)
	if v.X != 0 {
		e.Flip = v.X < 0
	}
}

func distance(a, b Point) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}

// Script globals bound for every entity script. Scripts read the self and
// target values and may write force and animation.
const (
	scriptSelfX     = "self_x"
	scriptSelfY     = "self_y"
	scriptTargetX   = "target_x"
	scriptTargetY   = "target_y"
	scriptHasTarget = "has_target"
	scriptForceX    = "force_x"
	scriptForceY    = "force_y"
	scriptAnimation = "animation"
)

// EntityScriptGlobals returns the globals entity behaviour scripts are
// compiled with, at their initial values.
func EntityScriptGlobals() map[string]any {
	return map[string]any{
		scriptSelfX:     0.0,
		scriptSelfY:     0.0,
		scriptTargetX:   0.0,
		scriptTargetY:   0.0,
		scriptHasTarget: false,
		scriptForceX:    0.0,
		scriptForceY:    0.0,
		scriptAnimation: "",
	}
}

// bindScript wires a script leaf to an entity. Before each run the entity
// and player centers are published; afterwards a non-zero force replaces
// the entity's motion and a non-empty animation is selected.
func bindScript(a *ScriptAction, ctx ActionContext) {
	a.Before = func(a *ScriptAction) error {
		c := ctx.Entity.Center()
		if err := a.Set(scriptSelfX, float64(c.X)); err != nil {
			return err
		}
		if err := a.Set(scriptSelfY, float64(c.Y)); err != nil {
			return err
		}
		var tx, ty float64
		t := ctx.target()
		if t != nil {
			tc := t.Center()
			tx, ty = float64(tc.X), float64(tc.Y)
		}
		if err := a.Set(scriptHasTarget, t != nil); err != nil {
			return err
		}
		if err := a.Set(scriptTargetX, tx); err != nil {
			return err
		}
		if err := a.Set(scriptTargetY, ty); err != nil {
			return err
		}
		if err := a.Set(scriptForceX, 0.0); err != nil {
			return err
		}
		if err := a.Set(scriptForceY, 0.0); err != nil {
			return err
		}
		return a.Set(scriptAnimation, "")
	}
	a.After = func(a *ScriptAction, _ Status) {
		f := Vec2{float32(a.Float(scriptForceX)), float32(a.Float(scriptForceY))}
		if !f.IsZero() {
			ctx.Entity.Body.Stop()
			ctx.Entity.Body.ApplyForce(f)
		}
		if tag, ok := a.Value(scriptAnimation).(string); ok && tag != "" {
			ctx.Entity.SetAnimation(tag)
		}
	}
}

// BuildTree builds a behaviour tree node from spec. Action leaves come from
// actions and script leaves from scripts.
func BuildTree(spec BehaviourSpec, ctx ActionContext, actions ActionRegistry, scripts ScriptSource) (Node, error) {
	switch spec.Type {
	case "selector", "sequence":
		children := make([]Node, 0, len(spec.Children))
		for i, c := range spec.Children {
			n, err := BuildTree(c, ctx, actions, scripts)
			if err != nil {
				return nil, fmt.Errorf("%s child %d: %w", spec.Type, i, err)
			}
			children = append(children, n)
		}
		if spec.Type == "selector" {
			return NewSelector(children...), nil
		}
		return NewSequence(children...), nil
	case "action":
		f, ok := actions[spec.Action]
		if !ok {
			return nil, fmt.Errorf("unknown action %q", spec.Action)
		}
		actx := ctx
		actx.Params = spec.Params
		return f(actx), nil
	case "script":
		if scripts == nil {
			return nil, fmt.Errorf("script %q: no script source", spec.Script)
		}
		s, err := scripts.Script(spec.Script)
		if err != nil {
			return nil, err
		}
		var logger *slog.Logger
		if ctx.Scene != nil {
			logger = ctx.Scene.Logger()
		}
		a := s.NewAction(logger)
		bindScript(a, ctx)
		return a, nil
	}
	return nil, fmt.Errorf("unknown behaviour node type %q", spec.Type)
}
