// Package sched implements the Thread & Scheduler component (spec.md
// §4.1): one cooperative goroutine per running Script, driven one
// frame-step at a time by Scheduler.Tick. Each Thread is a stackful
// coroutine over a single execution context — the design note in
// spec.md §9 option (b) — chosen because Go has no first-class
// generators; a goroutine synchronized by a pair of unbuffered channels
// gives the exact "advance until next yield point" contract spec.md
// §4.1 describes, including automatic flattening of nested block
// evaluation (it is simply nested Go calls within the same goroutine).
package sched

import (
	"skipvm/internal/dispatch"
	"skipvm/internal/eval"
	"skipvm/internal/event"
	"skipvm/internal/model"
	"skipvm/internal/value"
)

// StepResult is what a Thread produces at each cooperative suspension
// point: a pure frame-yield (None), a surfaced ScriptEvent, or natural
// generator termination.
type StepResult struct {
	FrameYield bool
	Event      *event.ScriptEvent
	Terminated bool
}

type resumeSignal struct{ cancel bool }

// cancelledPanic unwinds a Thread's goroutine when the scheduler cancels
// it between suspension points (spec.md §5 "Cancellation semantics").
type cancelledPanic struct{}

// Thread is the runtime record spec.md §3 describes:
// {generator, scriptable, callback}, identified externally by its
// Script (the scheduler's map key).
type Thread struct {
	Scriptable model.Scriptable
	Script     *model.Script
	OnFinish   func()

	started  bool
	finished bool
	lastErr  error

	yieldCh  chan StepResult
	resumeCh chan resumeSignal
}

// NewThread constructs a Thread; it does not start running until the
// scheduler's first Step call.
func NewThread(s model.Scriptable, script *model.Script, onFinish func()) *Thread {
	return &Thread{
		Scriptable: s,
		Script:     script,
		OnFinish:   onFinish,
		yieldCh:    make(chan StepResult),
		resumeCh:   make(chan resumeSignal),
	}
}

// Step advances the Thread to its next suspension point, launching its
// goroutine on the first call.
func (t *Thread) Step(rt dispatch.Runtime, table *dispatch.Table) StepResult {
	if t.finished {
		return StepResult{Terminated: true}
	}
	if !t.started {
		t.started = true
		go t.run(rt, table)
	} else {
		t.resumeCh <- resumeSignal{}
	}
	res := <-t.yieldCh
	if res.Terminated {
		t.finished = true
	}
	return res
}

// Cancel terminates the Thread without waiting for it to reach another
// suspension point on its own — spec.md §5's cancellation semantics.
// Safe to call whether or not the Thread has ever been stepped.
func (t *Thread) Cancel() {
	if t.finished {
		return
	}
	if !t.started {
		t.finished = true
		return
	}
	t.finished = true
	t.resumeCh <- resumeSignal{cancel: true}
}

// Err returns the fatal evaluator error that ended this Thread, if any
// (spec.md §7: UnknownBlockType and friends are fatal to the Thread,
// not to the scheduler).
func (t *Thread) Err() error { return t.lastErr }

func (t *Thread) run(rt dispatch.Runtime, table *dispatch.Table) {
	defer func() {
		if r := recover(); r != nil {
			switch v := r.(type) {
			case cancelledPanic:
				return
			case eval.Abort:
				t.lastErr = v.Err
				t.yieldCh <- StepResult{Terminated: true}
				return
			default:
				panic(r)
			}
		}
	}()

	ctx := &execContext{Runtime: rt, thread: t, table: table}
	eval.RunScript(ctx, table, t.Scriptable, t.Script.Blocks)
	t.yieldCh <- StepResult{Terminated: true}
}

// yield is the single suspension primitive every cooperative point in
// the evaluator (frame-yields and emitted ScriptEvents alike) goes
// through.
func (t *Thread) yield(res StepResult) {
	t.yieldCh <- res
	sig := <-t.resumeCh
	if sig.cancel {
		panic(cancelledPanic{})
	}
}

// execContext composes a Thread's suspension primitives with the
// Interpreter-level Runtime and the Evaluator's recursive tree-walk
// into the single dispatch.Context block handlers see.
type execContext struct {
	dispatch.Runtime
	thread *Thread
	table  *dispatch.Table
}

func (c *execContext) Eval(s model.Scriptable, arg model.Arg, insert *model.Insert) value.Value {
	return eval.Evaluate(c, c.table, s, arg, insert)
}

func (c *execContext) RunBody(s model.Scriptable, body []*model.Block) {
	eval.RunBody(c, c.table, s, body)
}

func (c *execContext) Yield() {
	c.thread.yield(StepResult{FrameYield: true})
}

func (c *execContext) Emit(kind dispatch.EventKind, text string, hasText bool, stopValue string) {
	ev := buildEvent(c.thread.Scriptable, kind, text, hasText, stopValue)
	c.thread.yield(StepResult{Event: &ev})
}

func buildEvent(s model.Scriptable, kind dispatch.EventKind, text string, hasText bool, stopValue string) event.ScriptEvent {
	src := scriptableSource{s}
	switch kind {
	case dispatch.EventSay:
		return event.NewSay(src, text, hasText)
	case dispatch.EventThink:
		return event.NewThink(src, text, hasText)
	case dispatch.EventClear:
		return event.NewClear(src)
	case dispatch.EventStamp:
		return event.NewStamp(src)
	case dispatch.EventStop:
		return event.NewStop(src, stopValue)
	default:
		return event.ScriptEvent{Source: src}
	}
}

// scriptableSource adapts model.Scriptable to event.Scriptable (just a
// Name() method) without an import cycle between model and event.
type scriptableSource struct{ model.Scriptable }
