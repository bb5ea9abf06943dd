// Package looks implements the Looks handlers of spec.md §4.4: costumes,
// say/think bubbles, graphic effects, size, visibility, and layering.
// Grounded on the teacher's per-opcode handler style, generalized from
// register mutation to Scriptable field mutation plus Context.Emit for
// the two blocks (say, think) that surface a ScriptEvent.
package looks

import (
	"skipvm/internal/blocks/support"
	"skipvm/internal/dispatch"
	"skipvm/internal/model"
	"skipvm/internal/value"
)

// Register binds every looks command into table.
func Register(table *dispatch.Table) {
	table.Register(model.SwitchCostumeTo.Command, switchCostumeTo)
	table.Register(model.NextCostume.Command, nextCostume)
	table.Register(model.Say.Command, say)
	table.Register(model.SayForSecs.Command, sayForSecs)
	table.Register(model.Think.Command, think)
	table.Register(model.ThinkForSecs.Command, thinkForSecs)
	table.Register(model.ChangeEffectBy.Command, changeEffectBy)
	table.Register(model.SetEffectTo.Command, setEffectTo)
	table.Register(model.ClearGraphicEffects.Command, clearGraphicEffects)
	table.Register(model.ChangeSizeBy.Command, changeSizeBy)
	table.Register(model.SetSizeTo.Command, setSizeTo)
	table.Register(model.Show.Command, show)
	table.Register(model.Hide.Command, hide)
	table.Register(model.GoToFront.Command, goToFront)
	table.Register(model.GoBackLayers.Command, goBackLayers)
	table.Register(model.CostumeNumber.Command, costumeNumber)
	table.Register(model.SizeReporter.Command, sizeReporter)
}

func switchCostumeTo(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	name := support.Str(ctx, s, b, 0)
	for i, c := range s.Costumes() {
		if c.Name() == name {
			s.SetCostumeIndex(i)
			return value.None()
		}
	}
	return value.None()
}

func nextCostume(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	n := len(s.Costumes())
	if n == 0 {
		return value.None()
	}
	s.SetCostumeIndex((s.CostumeIndex() + 1) % n)
	return value.None()
}

func say(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	ctx.Emit(dispatch.EventSay, support.Str(ctx, s, b, 0), true, "")
	return value.None()
}

func sayForSecs(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	text := support.Str(ctx, s, b, 0)
	secs := support.Num(ctx, s, b, 1)
	ctx.Emit(dispatch.EventSay, text, true, "")
	deadline := ctx.Now() + secs
	for ctx.Now() < deadline {
		ctx.Yield()
	}
	ctx.Emit(dispatch.EventSay, "", false, "")
	return value.None()
}

func think(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	ctx.Emit(dispatch.EventThink, support.Str(ctx, s, b, 0), true, "")
	return value.None()
}

func thinkForSecs(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	text := support.Str(ctx, s, b, 0)
	secs := support.Num(ctx, s, b, 1)
	ctx.Emit(dispatch.EventThink, text, true, "")
	deadline := ctx.Now() + secs
	for ctx.Now() < deadline {
		ctx.Yield()
	}
	ctx.Emit(dispatch.EventThink, "", false, "")
	return value.None()
}

func effectField(s model.Scriptable, name string) *float64 {
	base, ok := effectsOf(s)
	if !ok {
		return nil
	}
	switch name {
	case "color":
		return &base.Color
	case "fisheye":
		return &base.Fisheye
	case "whirl":
		return &base.Whirl
	case "pixelate":
		return &base.Pixelate
	case "mosaic":
		return &base.Mosaic
	case "brightness":
		return &base.Brightness
	case "ghost":
		return &base.Ghost
	default:
		return nil
	}
}

func changeEffectBy(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	name := support.Str(ctx, s, b, 0)
	amount := support.Num(ctx, s, b, 1)
	if f := effectField(s, name); f != nil {
		*f += amount
	}
	return value.None()
}

func setEffectTo(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	name := support.Str(ctx, s, b, 0)
	amount := support.Num(ctx, s, b, 1)
	if f := effectField(s, name); f != nil {
		*f = amount
	}
	return value.None()
}

func clearGraphicEffects(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	if base, ok := effectsOf(s); ok {
		base.Clear()
	}
	return value.None()
}

func changeSizeBy(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	s.SetSize(s.Size() + support.Num(ctx, s, b, 0))
	return value.None()
}

func setSizeTo(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	s.SetSize(support.Num(ctx, s, b, 0))
	return value.None()
}

func show(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	s.SetVisible(true)
	return value.None()
}

func hide(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	s.SetVisible(false)
	return value.None()
}

func goToFront(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	ctx.Project().BringToFront(s)
	return value.None()
}

func goBackLayers(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	n := int(support.Num(ctx, s, b, 0))
	ctx.Project().SendBackLayers(s, n)
	return value.None()
}

func costumeNumber(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	return value.Number(float64(s.CostumeIndex() + 1))
}

func sizeReporter(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	return value.Number(s.Size())
}

// effectsOf returns the Scriptable's GraphicEffects accumulator. Both
// Sprite and Stage embed Base (which carries Effects), but Scriptable
// doesn't expose it directly, so this type-switches over the two
// concrete types rather than widening the interface for one field.
func effectsOf(s model.Scriptable) (*model.GraphicEffects, bool) {
	switch t := s.(type) {
	case *model.Sprite:
		return &t.Effects, true
	case *model.Stage:
		return &t.Effects, true
	default:
		return nil, false
	}
}
