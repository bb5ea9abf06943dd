// Package sensing implements the Sensing handlers of spec.md §4.4:
// touching tests delegated to the Screen backend, mouse/key state,
// timer, ask-and-wait, distance, and generic attribute lookup.
package sensing

import (
	"skipvm/internal/blocks/support"
	"skipvm/internal/bounds"
	"skipvm/internal/dispatch"
	"skipvm/internal/eval"
	"skipvm/internal/geom"
	"skipvm/internal/model"
	"skipvm/internal/value"
)

// Register binds every sensing command into table.
func Register(table *dispatch.Table) {
	table.Register(model.Touching.Command, touching)
	table.Register(model.TouchingColor.Command, touchingColor)
	table.Register(model.ColorIsTouchingColor.Command, colorIsTouchingColor)
	table.Register(model.AskAndWait.Command, askAndWait)
	table.Register(model.AnswerReporter.Command, answerReporter)
	table.Register(model.KeyPressedReporter.Command, keyPressedReporter)
	table.Register(model.MouseDownReporter.Command, mouseDownReporter)
	table.Register(model.MouseXReporter.Command, mouseXReporter)
	table.Register(model.MouseYReporter.Command, mouseYReporter)
	table.Register(model.ResetTimer.Command, resetTimer)
	table.Register(model.TimerReporter.Command, timerReporter)
	table.Register(model.DistanceTo.Command, distanceTo)
	table.Register(model.AttributeOf.Command, attributeOf)
}

func touching(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	sp, ok := support.AsSprite(s)
	if !ok {
		return value.Bool(false)
	}
	v := support.Arg(ctx, s, b, 0)
	if v.AsText() == value.Edge {
		return value.Bool(touchesEdge(sp))
	}
	if other := eval.SpriteFromValue(v); other != nil {
		return value.Bool(ctx.Screen().TouchingSprite(sp, other))
	}
	return value.Bool(ctx.Screen().TouchingMouse(sp))
}

// touchesEdge reports whether a sprite's bounding box extends past the
// fixed stage rectangle (spec.md §4.5's AABB feeding the `touching
// edge` variant of the touching block).
func touchesEdge(sp *model.Sprite) bool {
	r := bounds.Of(sp)
	stage := bounds.StageRect()
	return r.Left < stage.Left || r.Right() > stage.Right() || r.Top > stage.Top || r.Bottom() < stage.Bottom()
}

func touchingColor(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	sp, ok := support.AsSprite(s)
	if !ok {
		return value.Bool(false)
	}
	color := support.Num(ctx, s, b, 0)
	return value.Bool(ctx.Screen().TouchingColor(sp, color))
}

func colorIsTouchingColor(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	sp, ok := support.AsSprite(s)
	if !ok {
		return value.Bool(false)
	}
	color := support.Num(ctx, s, b, 0)
	over := support.Num(ctx, s, b, 1)
	return value.Bool(ctx.Screen().TouchingColorOver(sp, color, over))
}

// askAndWait serializes concurrent asks through the single ask lock
// (spec.md §4.4/§6.3: only one Thread may have an outstanding question
// at a time); a Thread that can't acquire the lock yields until it can.
func askAndWait(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	prompt := support.Str(ctx, s, b, 0)
	for !ctx.AskLockHeldBy(s) && !ctx.TryAcquireAskLock(s) {
		ctx.Yield()
	}
	defer ctx.ReleaseAskLock(s)
	for {
		answer, ready := ctx.Screen().Ask(s, prompt)
		if ready {
			ctx.SetAnswer(answer)
			return value.None()
		}
		ctx.Yield()
	}
}

func answerReporter(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	return value.Text(ctx.Answer())
}

func keyPressedReporter(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	key := support.Str(ctx, s, b, 0)
	return value.Bool(ctx.Screen().IsKeyPressed(key))
}

func mouseDownReporter(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	return value.Bool(ctx.Screen().IsMouseDown())
}

func mouseXReporter(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	x, _ := ctx.Screen().MousePos()
	return value.Number(x)
}

func mouseYReporter(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	_, y := ctx.Screen().MousePos()
	return value.Number(y)
}

func resetTimer(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	ctx.ResetTimer()
	return value.None()
}

func timerReporter(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	return value.Number(ctx.Now() - ctx.TimerStart())
}

func distanceTo(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	sp, ok := support.AsSprite(s)
	if !ok {
		return value.Number(0)
	}
	v := support.Arg(ctx, s, b, 0)
	x, y := sp.Position()
	var tx, ty float64
	if other := eval.SpriteFromValue(v); other != nil {
		tx, ty = other.Position()
	} else {
		tx, ty = ctx.Screen().MousePos()
	}
	return value.Number(geom.Distance(geom.Point{X: x, Y: y}, geom.Point{X: tx, Y: ty}))
}

// attributeOf reads a named attribute off a sprite (x position,
// y position, direction, costume #, size, volume) or the stage
// (backdrop #, backdrop name) through a fixed switch over those names;
// any other name reads the target's own variable of that name
// (spec.md §4.4 `of`).
func attributeOf(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	attr := support.Str(ctx, s, b, 0)
	v := support.Arg(ctx, s, b, 1)

	var target model.Scriptable
	if sp := eval.SpriteFromValue(v); sp != nil {
		target = sp
	} else if st := eval.StageFromValue(v); st != nil {
		target = st
	} else {
		return value.None()
	}

	// The Stage has no x/y/direction attributes; it exposes "backdrop #"
	// and "backdrop name" (its costume list doubles as backdrops) where a
	// Sprite exposes position and heading instead (recovered from
	// original_source/elda's ATTRIBUTE_FNS split between sprite and stage
	// attribute tables).
	if st, ok := target.(*model.Stage); ok {
		switch attr {
		case "backdrop #":
			return value.Number(float64(st.CostumeIndex() + 1))
		case "backdrop name":
			if c := st.CurrentCostume(); c != nil {
				return value.Text(c.Name())
			}
			return value.Text("")
		}
		return variableFallback(st, attr)
	}

	sp, _ := support.AsSprite(target)
	switch attr {
	case "x position":
		x, _ := sp.Position()
		return value.Number(x)
	case "y position":
		_, y := sp.Position()
		return value.Number(y)
	case "direction":
		return value.Number(sp.DirectionDeg)
	case "costume #":
		return value.Number(float64(sp.CostumeIndex() + 1))
	case "size":
		return value.Number(sp.Size())
	case "volume":
		return value.Number(sp.Volume())
	default:
		return variableFallback(sp, attr)
	}
}

func variableFallback(s model.Scriptable, name string) value.Value {
	if vr, ok := s.Variables()[name]; ok {
		if vv, ok := vr.Value.(value.Value); ok {
			return vv
		}
	}
	return value.None()
}
