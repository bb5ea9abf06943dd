// Package support holds the small argument-fetching helpers every
// internal/blocks/* handler package shares, so each category package
// doesn't re-derive the same insert-index bookkeeping (spec.md §4.2's
// per-argument lockstep is already implemented in internal/eval; this
// package just wires a Block's i'th argument to it).
package support

import (
	"skipvm/internal/dispatch"
	"skipvm/internal/model"
	"skipvm/internal/value"
)

// Arg evaluates the block's i'th argument against its BlockType's i'th
// Insert descriptor, returning value.None() if either is out of range
// (a malformed Block from the project loader, never expected in
// practice but harmless to no-op).
func Arg(ctx dispatch.Context, s model.Scriptable, b *model.Block, i int) value.Value {
	var insert *model.Insert
	if i < len(b.Type.Inserts) {
		insert = &b.Type.Inserts[i]
	}
	var a model.Arg
	if i < len(b.Args) {
		a = b.Args[i]
	}
	return ctx.Eval(s, a, insert)
}

// Num, Str, Bool fetch a coerced argument directly.
func Num(ctx dispatch.Context, s model.Scriptable, b *model.Block, i int) float64 {
	return Arg(ctx, s, b, i).AsNumber()
}

func Str(ctx dispatch.Context, s model.Scriptable, b *model.Block, i int) string {
	return Arg(ctx, s, b, i).AsText()
}

func Bool(ctx dispatch.Context, s model.Scriptable, b *model.Block, i int) bool {
	return Arg(ctx, s, b, i).AsBool()
}

// Body returns the i'th argument's unevaluated C-shape body, or nil.
func Body(b *model.Block, i int) []*model.Block {
	if i < len(b.Args) {
		return b.Args[i].Sequence
	}
	return nil
}

// AsSprite type-asserts a Scriptable to *model.Sprite, for the motion
// and pen handlers that are only meaningful on a Sprite. Returns
// (nil, false) when called on the Stage, which the caller treats as a
// silent no-op — matching how the source's stage-attached scripts
// simply never carry motion/pen blocks.
func AsSprite(s model.Scriptable) (*model.Sprite, bool) {
	sp, ok := s.(*model.Sprite)
	return sp, ok
}
