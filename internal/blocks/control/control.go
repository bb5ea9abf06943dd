// Package control implements the Control handlers of spec.md §4.4: the
// C-shape loop/conditional family, wait/wait-until, stop, and broadcast.
// Grounded on the teacher's internal/cpu branch/loop instruction style
// (conditional PC rewrites), generalized here to driving
// Context.RunBody/Context.Yield instead of a program counter, since a
// Block's body is walked recursively rather than jumped to.
package control

import (
	"math"

	"skipvm/internal/blocks/support"
	"skipvm/internal/dispatch"
	"skipvm/internal/model"
	"skipvm/internal/value"
)

// Register binds every control command into table.
func Register(table *dispatch.Table) {
	table.Register(model.WaitSecs.Command, waitSecs)
	table.Register(model.Forever.Command, forever)
	table.Register(model.Repeat.Command, repeat)
	table.Register(model.If.Command, ifBlock)
	table.Register(model.IfElse.Command, ifElse)
	table.Register(model.WaitUntil.Command, waitUntil)
	table.Register(model.RepeatUntil.Command, repeatUntil)
	table.Register(model.Stop.Command, stop)
	table.Register(model.Broadcast.Command, broadcast)
	table.Register(model.BroadcastAndWait.Command, broadcastAndWait)
}

func waitSecs(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	secs := support.Num(ctx, s, b, 0)
	deadline := ctx.Now() + secs
	for ctx.Now() < deadline {
		ctx.Yield()
	}
	return value.None()
}

// forever never returns on its own; only cancellation ends the Thread
// (spec.md §4.4: "forever never terminates naturally").
func forever(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	body := support.Body(b, 0)
	for {
		ctx.RunBody(s, body)
		ctx.Yield()
	}
}

// repeat(n) runs ceil(n) iterations (spec.md §4.4/§8: repeat(0.4) runs
// once), matching operators.computeFunction's rounding conventions.
func repeat(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	n := int(math.Ceil(support.Num(ctx, s, b, 0)))
	body := support.Body(b, 1)
	for i := 0; i < n; i++ {
		ctx.RunBody(s, body)
		ctx.Yield()
	}
	return value.None()
}

func ifBlock(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	if support.Bool(ctx, s, b, 0) {
		ctx.RunBody(s, support.Body(b, 1))
	}
	return value.None()
}

func ifElse(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	if support.Bool(ctx, s, b, 0) {
		ctx.RunBody(s, support.Body(b, 1))
	} else {
		ctx.RunBody(s, support.Body(b, 2))
	}
	return value.None()
}

func waitUntil(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	for !support.Bool(ctx, s, b, 0) {
		ctx.Yield()
	}
	return value.None()
}

func repeatUntil(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	body := support.Body(b, 1)
	for !support.Bool(ctx, s, b, 0) {
		ctx.RunBody(s, body)
		ctx.Yield()
	}
	return value.None()
}

// stop maps the menu selection directly onto event.ScriptEvent's
// StopValue: "all" and "other scripts in sprite" match event.StopAll
// and event.StopOtherInSprite verbatim, and any other selection (only
// "this script" in practice) falls through the scheduler's default
// single-Thread-stop case (spec.md §4.1/§5).
func stop(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	choice := support.Str(ctx, s, b, 0)
	ctx.Emit(dispatch.EventStop, "", false, choice)
	return value.None()
}

func broadcast(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	message := support.Str(ctx, s, b, 0)
	ctx.Broadcast(message)
	return value.None()
}

func broadcastAndWait(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	message := support.Str(ctx, s, b, 0)
	wg := ctx.Broadcast(message)
	for wg != nil && !wg.Done() {
		ctx.Yield()
	}
	return value.None()
}
