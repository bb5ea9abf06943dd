// Package hats implements Hat Triggering & Event Intake (spec.md §4.3):
// mapping ScreenEvents (and the green-flag/broadcast triggers) to hat
// activations, which create or replace Threads in the Scheduler.
package hats

import (
	"skipvm/internal/bounds"
	"skipvm/internal/dispatch"
	"skipvm/internal/geom"
	"skipvm/internal/model"
	"skipvm/internal/sched"
)

const (
	CmdGreenFlag   = "whenGreenFlag"
	CmdKeyPressed  = "whenKeyPressed"
	CmdClicked     = "whenClicked"
	CmdReceive     = "whenIReceive"
)

// firstArgText reads a hat's first literal argument (always a menu
// selection, never an expression, so it is read directly off the
// Block's Arg rather than run through the full evaluator).
func firstArgText(b *model.Block) string {
	if len(b.Args) == 0 {
		return ""
	}
	if s, ok := b.Args[0].Leaf.(string); ok {
		return s
	}
	return ""
}

func forEachHat(proj *model.Project, command string, fn func(s model.Scriptable, script *model.Script, hat *model.Block)) {
	for _, s := range proj.AllScriptables() {
		for _, script := range s.Scripts() {
			if len(script.Blocks) == 0 {
				continue
			}
			hat := script.Blocks[0]
			if hat.Type.ShapeOf != model.ShapeHat {
				continue
			}
			if !hat.Type.HasCommand(command) {
				continue
			}
			fn(s, script, hat)
		}
	}
}

// TriggerGreenFlag fires every whenGreenFlag hat (spec.md §4.3, §3
// start()).
func TriggerGreenFlag(proj *model.Project, scheduler *sched.Scheduler) {
	forEachHat(proj, CmdGreenFlag, func(s model.Scriptable, script *model.Script, hat *model.Block) {
		scheduler.Trigger(s, script, nil)
	})
}

// TriggerKeyPressed fires every whenKeyPressed hat whose key name arg
// matches key (spec.md §4.3).
func TriggerKeyPressed(proj *model.Project, scheduler *sched.Scheduler, key string) {
	forEachHat(proj, CmdKeyPressed, func(s model.Scriptable, script *model.Script, hat *model.Block) {
		if firstArgText(hat) == key {
			scheduler.Trigger(s, script, nil)
		}
	})
}

// TriggerClicked fires whenClicked hats on the given scriptable (spec.md
// §4.3: used both for the non-draggable click case and for the
// drag-released-without-moving case).
func TriggerClicked(proj *model.Project, scheduler *sched.Scheduler, target model.Scriptable) {
	forEachHat(proj, CmdClicked, func(s model.Scriptable, script *model.Script, hat *model.Block) {
		if s == target {
			scheduler.Trigger(s, script, nil)
		}
	})
}

// TriggerReceive fires every whenIReceive hat whose message matches,
// returning a PendingGroup the caller can poll (used by both the
// fire-and-forget `broadcast` and the blocking `broadcast and wait`).
func TriggerReceive(proj *model.Project, scheduler *sched.Scheduler, message string) *sched.PendingGroup {
	var matches []struct {
		s      model.Scriptable
		script *model.Script
	}
	forEachHat(proj, CmdReceive, func(s model.Scriptable, script *model.Script, hat *model.Block) {
		if firstArgText(hat) == message {
			matches = append(matches, struct {
				s      model.Scriptable
				script *model.Script
			}{s, script})
		}
	})
	group := sched.NewPendingGroup(len(matches))
	for _, m := range matches {
		scheduler.Trigger(m.s, m.script, group.Finished)
	}
	return group
}

// FindClickTarget selects the topmost visible sprite whose bounding box
// contains the mouse and which passes the screen backend's precise-
// touch test (spec.md §4.3 whenClicked). Iterates the actor order
// back-to-front so later (frontmost) actors win ties.
func FindClickTarget(proj *model.Project, screen dispatch.Screen, mouseX, mouseY float64) *model.Sprite {
	for i := len(proj.Actors) - 1; i >= 0; i-- {
		sp, ok := proj.Actors[i].(*model.Sprite)
		if !ok || !sp.IsVisible() {
			continue
		}
		r := bounds.Of(sp)
		if r.ContainsPoint(geom.Point{X: mouseX, Y: mouseY}) && screen.TouchingMouse(sp) {
			return sp
		}
	}
	return nil
}
