// Package dispatch is the Block Dispatch Table (spec.md §4 component
// list item "Block Dispatch Table"): a registry mapping a BlockType's
// command name to a Handler, with _workaround fallback when a command
// has no direct handler. Grounded on nitro-core-dx's CPU opcode
// dispatch (internal/cpu/instructions.go switches on an opcode field);
// here the switch becomes a map because BlockType commands are an open,
// data-driven set rather than a fixed instruction encoding.
package dispatch

import (
	"skipvm/internal/ierrors"
	"skipvm/internal/model"
	"skipvm/internal/value"
)

// Context is the callback surface a Handler uses to recurse into the
// evaluator, yield control, emit ScriptEvents, and reach interpreter-
// level state (timer, ask lock, broadcast, project, screen). Defined
// here (not in eval) so blocks/* can depend on dispatch without
// importing eval, and eval can depend on dispatch without a cycle.
type Context interface {
	// Eval evaluates one argument in lockstep with its Insert
	// descriptor (spec.md §4.2): sub-blocks recurse, unevaluated
	// (C-shape body) args pass through untouched, scalars coerce.
	Eval(s model.Scriptable, arg model.Arg, insert *model.Insert) value.Value

	// RunBody runs a block sequence (a C-shape body) to completion,
	// frame-yielding and emitting ScriptEvents exactly as a top-level
	// script would. Used by forever/repeat/if/wait-until handlers.
	RunBody(s model.Scriptable, body []*model.Block)

	// Yield is a pure cooperative frame-yield (the `None` the source
	// generator yields between frames).
	Yield()

	// Emit surfaces a ScriptEvent to the scheduler/screen. For a Stop
	// event this also triggers the scheduler's stop-semantics (spec.md
	// §4.1); the call only returns once the scheduler has decided
	// whether this Thread continues.
	Emit(kind EventKind, text string, hasText bool, stopValue string)

	Runtime
}

// Runtime is the subset of Interpreter-level state block handlers need:
// ask/answer/timer, broadcast plumbing, drag state, the Project, and
// the Screen backend. A narrow interface (not *interp.Interpreter
// itself) so blocks/* never imports internal/interp, keeping the
// dependency graph acyclic.
type Runtime interface {
	Project() *model.Project
	Screen() Screen
	Now() float64 // seconds, monotonic within one run

	TimerStart() float64
	ResetTimer()

	Answer() string
	SetAnswer(string)
	TryAcquireAskLock(owner any) bool
	ReleaseAskLock(owner any)
	AskLockHeldBy(owner any) bool

	Broadcast(message string) (waitGroup WaitGroup)

	DragSprite() *model.Sprite
	SetDragSprite(sp *model.Sprite, dx, dy float64)
	ClearDragSprite()
	HasDragged() bool
	SetHasDragged(bool)
}

// WaitGroup lets `broadcast and wait` block until every hat it
// triggered has finished, without dispatch depending on sched's Thread
// type directly.
type WaitGroup interface {
	Done() bool
}

// EventKind mirrors event.ScriptEventKind without importing event,
// which would otherwise cycle back through Runtime's Screen type. The
// eval package translates between the two at the boundary.
type EventKind int

const (
	EventSay EventKind = iota
	EventThink
	EventClear
	EventStamp
	EventStop
)

// Screen is the subset of the screen-backend contract (spec.md §6.3)
// block handlers call directly (sensing, sound, pen line-drawing).
type Screen interface {
	MousePos() (x, y float64)
	IsMouseDown() bool
	IsKeyPressed(name string) bool
	TouchingMouse(s *model.Sprite) bool
	TouchingSprite(s, other *model.Sprite) bool
	TouchingColor(s *model.Sprite, color float64) bool
	TouchingColorOver(s *model.Sprite, color, over float64) bool
	Ask(s model.Scriptable, prompt string) (answer string, ready bool)
	PlaySound(snd *model.Sound)
	PlaySoundUntilDone(snd *model.Sound) (done bool)
	StopSounds()
	DrawLine(x0, y0, x1, y1, color, size float64)
	PlayDrum(drum int, secs float64)
	PlayNote(note int, secs float64)
}

// Handler is a block's concrete behavior (spec.md §4.4). It returns the
// block's reporter value; stack/command/hat blocks return value.None().
type Handler func(ctx Context, s model.Scriptable, block *model.Block) value.Value

// Table is an immutable-after-construction command->Handler registry
// (spec.md §9 design note: "must be an immutable table built at
// Interpreter construction, not mutable shared state").
type Table struct {
	handlers map[string]Handler
}

// NewTable builds an empty Table; call Register for each command before
// treating it as immutable.
func NewTable() *Table {
	return &Table{handlers: make(map[string]Handler)}
}

// Register binds a command name to its Handler. Intended to be called
// only during table construction.
func (t *Table) Register(command string, h Handler) {
	t.handlers[command] = h
}

// Lookup resolves a BlockType to its Handler by its command name, then
// by its aliases; it does not consult the type's _workaround rewriter
// (Resolve adds that fallback). Returns ierrors.UnknownBlockType when
// no handler matches.
func (t *Table) Lookup(bt *model.BlockType) (Handler, *model.Block, error) {
	if h, ok := t.handlers[bt.Command]; ok {
		return h, nil, nil
	}
	for _, alias := range bt.Aliases {
		if h, ok := t.handlers[alias]; ok {
			return h, nil, nil
		}
	}
	return nil, nil, &ierrors.UnknownBlockType{Command: bt.Command}
}

// Resolve looks up a handler for block, following one level of
// _workaround rewriting when there is no direct handler (spec.md §4.2:
// "substitute and recurse"). The caller (eval.Evaluate) is responsible
// for the "recurse" part since a rewritten block may itself need a
// second workaround pass; Resolve exposes the rewritten block so the
// evaluator can loop.
func (t *Table) Resolve(block *model.Block) (Handler, *model.Block, error) {
	if h, ok := t.handlers[block.Type.Command]; ok {
		return h, block, nil
	}
	for _, alias := range block.Type.Aliases {
		if h, ok := t.handlers[alias]; ok {
			return h, block, nil
		}
	}
	if w := block.Type.Workaround(); w != nil {
		rewritten := w(block)
		return nil, rewritten, nil
	}
	return nil, nil, &ierrors.UnknownBlockType{Command: block.Type.Command}
}
