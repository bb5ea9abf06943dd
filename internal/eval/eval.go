// Package eval implements the recursive expression/command evaluator
// (spec.md §4.2): argument evaluation in lockstep with BlockType
// inserts, insert-driven coercion and rebinding, and _workaround
// recursion. It depends only on dispatch.Context/dispatch.Table, model,
// and value — the scheduler (internal/sched) supplies the Context that
// actually drives yielding and emission, so eval stays pure recursive
// tree-walking code with no goroutines of its own, grounded on the
// teacher's instruction-dispatch style (internal/cpu/instructions.go)
// generalized from a fixed opcode switch to a data-driven BlockType
// table.
package eval

import (
	"skipvm/internal/dispatch"
	"skipvm/internal/ierrors"
	"skipvm/internal/model"
	"skipvm/internal/value"
)

// Abort is panicked to unwind a Thread's goroutine on a fatal
// evaluator error (spec.md §7: "fatal to the offending Thread"). The
// scheduler recovers it at the goroutine root, alongside the cancel
// signal, and treats the Thread as finished.
type Abort struct{ Err error }

func abortf(err error) { panic(Abort{Err: err}) }

// Evaluate is spec.md §4.2's `evaluate(scriptable, value, insert)`.
func Evaluate(ctx dispatch.Context, table *dispatch.Table, s model.Scriptable, arg model.Arg, insert *model.Insert) value.Value {
	if insert != nil && insert.Unevaluated {
		// C-shape bodies pass through untouched; the handler receives
		// the raw block sequence via arg.Sequence and runs it itself
		// through ctx.RunBody.
		return value.None()
	}

	var raw value.Value
	switch {
	case arg.Block != nil:
		raw = evaluateBlock(ctx, table, s, arg.Block)
	case arg.Sequence != nil:
		// A sequence reached here without an unevaluated insert is a
		// caller error in the project model; treat as no value.
		raw = value.None()
	default:
		raw = leafToValue(arg.Leaf)
	}

	if insert == nil {
		return raw
	}
	return postprocess(ctx, raw, insert)
}

func leafToValue(v any) value.Value {
	switch t := v.(type) {
	case value.Value:
		return t
	case float64:
		return value.Number(t)
	case int:
		return value.Number(float64(t))
	case string:
		return value.Text(t)
	case bool:
		return value.Bool(t)
	case nil:
		return value.None()
	default:
		return value.None()
	}
}

// evaluateBlock resolves and runs a single Block, following one level
// of _workaround rewriting at a time until a handler is found (spec.md
// §4.2: "substitute and recurse").
func evaluateBlock(ctx dispatch.Context, table *dispatch.Table, s model.Scriptable, block *model.Block) value.Value {
	if block.Type.ShapeOf == model.ShapeHat {
		return value.None()
	}

	current := block
	for {
		h, rewritten, err := table.Resolve(current)
		if err != nil {
			abortf(err)
		}
		if h != nil {
			return h(ctx, s, current)
		}
		if rewritten == current {
			abortf(&ierrors.UnknownBlockType{Command: current.Type.Command})
		}
		current = rewritten
	}
}

// EvalArg evaluates one of a block's arguments against its BlockType's
// i'th Insert descriptor — the lockstep iteration spec.md §4.2
// describes. Handlers call this (via Context.Eval, which forwards
// here) to fetch an already-coerced argument Value.
func EvalArg(ctx dispatch.Context, table *dispatch.Table, s model.Scriptable, block *model.Block, i int) value.Value {
	var insert *model.Insert
	if i < len(block.Type.Inserts) {
		insert = &block.Type.Inserts[i]
	}
	if i >= len(block.Args) {
		return value.None()
	}
	return Evaluate(ctx, table, s, block.Args[i], insert)
}

// postprocess applies spec.md §4.2's insert-driven coercion and
// rebinding, steps 1-5, in order.
func postprocess(ctx dispatch.Context, v value.Value, insert *model.Insert) value.Value {
	// Step 1: textual values that parse as numbers convert.
	v = value.Normalize(v)

	// Step 2: string/readonly-menu inserts coerce to text.
	if insert.ShapeOf == model.ShapeInsertString || insert.ShapeOf == model.ShapeInsertMenu {
		v = value.CoerceText(v)
	}

	switch insert.Kind {
	case model.InsertSpriteOrStage, model.InsertSpriteOrMouse, model.InsertStageOrThis, model.InsertSpriteOnly, model.InsertTouching:
		v = rebindSpriteMenu(ctx, v)
	case model.InsertVar:
		v = rebindVar(ctx, v)
	case model.InsertList:
		v = rebindList(ctx, v)
	case model.InsertSound:
		v = rebindSound(ctx, v)
	}
	return v
}

func rebindSpriteMenu(ctx dispatch.Context, v value.Value) value.Value {
	if !v.IsText() {
		return v
	}
	text := v.AsText()
	if text == value.MousePointer || text == value.Edge {
		return v
	}
	proj := ctx.Project()
	if text == value.StageName {
		return value.FromHandle(value.KindStage, stageHandle{proj.Stage})
	}
	if sp := proj.GetSprite(text); sp != nil {
		return value.FromHandle(value.KindSprite, spriteHandle{sp})
	}
	// MissingEntity: leave unbound (as text), surfaced later as an
	// operator error by whichever handler dereferences it.
	return v
}

func rebindVar(ctx dispatch.Context, v value.Value) value.Value {
	if !v.IsText() {
		return v
	}
	name := v.AsText()
	// scriptable-local scope isn't known here (postprocess has no
	// scriptable handle); ctx callers that need local scope call
	// RebindVarFor directly instead. This path only resolves globals.
	if gv, ok := ctx.Project().VariablesMap[name]; ok {
		return value.FromHandle(value.KindVariable, gv)
	}
	return v
}

func rebindList(ctx dispatch.Context, v value.Value) value.Value {
	if !v.IsText() {
		return v
	}
	name := v.AsText()
	if gl, ok := ctx.Project().ListsMap[name]; ok {
		return value.FromHandle(value.KindList, gl)
	}
	return v
}

func rebindSound(ctx dispatch.Context, v value.Value) value.Value {
	return v
}

// RebindVarFor resolves a variable name against scriptable-local scope
// first, then project-global (spec.md §4.2 step 4, §3: "lookup resolves
// local first, global second"). Exported for block handlers (variables,
// lists) that must apply this with the correct scriptable in hand,
// since the generic Evaluate postprocessing path above only sees the
// globals table.
func RebindVarFor(s model.Scriptable, proj *model.Project, name string) *model.Variable {
	if lv, ok := s.Variables()[name]; ok {
		return lv
	}
	if gv, ok := proj.VariablesMap[name]; ok {
		return gv
	}
	return nil
}

// RebindListFor is RebindVarFor's List counterpart.
func RebindListFor(s model.Scriptable, proj *model.Project, name string) *model.List {
	if ll, ok := s.Lists()[name]; ok {
		return ll
	}
	if gl, ok := proj.ListsMap[name]; ok {
		return gl
	}
	return nil
}

// RebindSoundFor resolves a sound name against the scriptable's own
// Sounds (spec.md §4.2 step 5).
func RebindSoundFor(s model.Scriptable, name string) *model.Sound {
	for _, snd := range s.Sounds() {
		if snd.Name() == name {
			return snd
		}
	}
	return nil
}

type spriteHandle struct{ s *model.Sprite }

func (h spriteHandle) Name() string { return h.s.Name() }

type stageHandle struct{ s *model.Stage }

func (h stageHandle) Name() string { return h.s.Name() }

// SpriteFromValue extracts the *model.Sprite a rebound sprite-menu
// Value carries, or nil if v isn't one (mouse-pointer/edge/unbound
// text/other sprite target).
func SpriteFromValue(v value.Value) *model.Sprite {
	if h, ok := v.Handle().(spriteHandle); ok {
		return h.s
	}
	return nil
}

// StageFromValue extracts the *model.Stage a rebound Value carries.
func StageFromValue(v value.Value) *model.Stage {
	if h, ok := v.Handle().(stageHandle); ok {
		return h.s
	}
	return nil
}

// VarFromValue extracts a rebound *model.Variable.
func VarFromValue(v value.Value) *model.Variable {
	if v.KindTag() != value.KindVariable {
		return nil
	}
	vr, _ := v.Handle().(*model.Variable)
	return vr
}

// ListFromValue extracts a rebound *model.List.
func ListFromValue(v value.Value) *model.List {
	if v.KindTag() != value.KindList {
		return nil
	}
	l, _ := v.Handle().(*model.List)
	return l
}

// RunBody runs a block sequence to completion: every block is executed
// as a command (its return value discarded) in order, frame-yielding
// and emitting exactly as a top-level script would. Hats inside a body
// are never expected (bodies are command sequences) and are skipped if
// present, matching Evaluate's hat handling.
func RunBody(ctx dispatch.Context, table *dispatch.Table, s model.Scriptable, body []*model.Block) {
	for _, b := range body {
		if b.Type.ShapeOf == model.ShapeHat {
			continue
		}
		evaluateBlock(ctx, table, s, b)
	}
}

// RunScript drives a whole Script's command sequence, skipping a
// leading hat (scripts triggered by a hat keep it as Blocks[0]; scripts
// pushed from the REPL start directly at a stack block — spec.md §3).
func RunScript(ctx dispatch.Context, table *dispatch.Table, s model.Scriptable, blocks []*model.Block) {
	start := 0
	if len(blocks) > 0 && blocks[0].Type.ShapeOf == model.ShapeHat {
		start = 1
	}
	RunBody(ctx, table, s, blocks[start:])
}
