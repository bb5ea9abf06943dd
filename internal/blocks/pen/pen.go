// Package pen implements the Pen handlers of spec.md §4.4: pen
// up/down, color/shade/hue/size state on a Sprite, and the clear/stamp
// operations that surface ScriptEvents for the screen backend to
// render (actual line drawing happens in internal/blocks/motion, which
// calls Screen.DrawLine whenever a sprite's position changes while its
// pen is down; no handler in this package draws lines itself).
package pen

import (
	"skipvm/internal/blocks/support"
	"skipvm/internal/dispatch"
	"skipvm/internal/model"
	"skipvm/internal/value"
)

// Register binds every pen command into table.
func Register(table *dispatch.Table) {
	table.Register(model.PenClear.Command, penClear)
	table.Register(model.PenDown.Command, penDown)
	table.Register(model.PenUp.Command, penUp)
	table.Register(model.Stamp.Command, stamp)
	table.Register(model.SetPenColorTo.Command, setPenColorTo)
	table.Register(model.ChangePenColorBy.Command, changePenColorBy)
	table.Register(model.SetPenShadeTo.Command, setPenShadeTo)
	table.Register(model.ChangePenShadeBy.Command, changePenShadeBy)
	table.Register(model.SetPenHueTo.Command, setPenHueTo)
	table.Register(model.ChangePenHueBy.Command, changePenHueBy)
	table.Register(model.SetPenSizeTo.Command, setPenSizeTo)
	table.Register(model.ChangePenSizeBy.Command, changePenSizeBy)
}

func penClear(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	ctx.Emit(dispatch.EventClear, "", false, "")
	return value.None()
}

func penDown(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	if sp, ok := support.AsSprite(s); ok {
		sp.PenDown = true
	}
	return value.None()
}

func penUp(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	if sp, ok := support.AsSprite(s); ok {
		sp.PenDown = false
	}
	return value.None()
}

func stamp(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	ctx.Emit(dispatch.EventStamp, "", false, "")
	return value.None()
}

func setPenColorTo(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	if sp, ok := support.AsSprite(s); ok {
		sp.PenColor = support.Num(ctx, s, b, 0)
	}
	return value.None()
}

func changePenColorBy(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	if sp, ok := support.AsSprite(s); ok {
		sp.PenColor += support.Num(ctx, s, b, 0)
	}
	return value.None()
}

func setPenShadeTo(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	if sp, ok := support.AsSprite(s); ok {
		sp.PenShade = support.Num(ctx, s, b, 0)
	}
	return value.None()
}

func changePenShadeBy(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	if sp, ok := support.AsSprite(s); ok {
		sp.PenShade += support.Num(ctx, s, b, 0)
	}
	return value.None()
}

func setPenHueTo(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	if sp, ok := support.AsSprite(s); ok {
		sp.PenHue = support.Num(ctx, s, b, 0)
	}
	return value.None()
}

func changePenHueBy(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	if sp, ok := support.AsSprite(s); ok {
		sp.PenHue += support.Num(ctx, s, b, 0)
	}
	return value.None()
}

func setPenSizeTo(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	if sp, ok := support.AsSprite(s); ok {
		sp.PenSize = support.Num(ctx, s, b, 0)
	}
	return value.None()
}

func changePenSizeBy(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	if sp, ok := support.AsSprite(s); ok {
		sp.PenSize += support.Num(ctx, s, b, 0)
	}
	return value.None()
}
