// Package variables implements the Variables handlers of spec.md §4.4:
// reading, setting, and changing a local-or-global Variable cell, and
// toggling its stage watcher.
package variables

import (
	"skipvm/internal/blocks/support"
	"skipvm/internal/dispatch"
	"skipvm/internal/eval"
	"skipvm/internal/model"
	"skipvm/internal/value"
)

// Register binds every variables command into table.
func Register(table *dispatch.Table) {
	table.Register(model.VariableReporter.Command, variableReporter)
	table.Register(model.SetVarTo.Command, setVarTo)
	table.Register(model.ChangeVarBy.Command, changeVarBy)
	table.Register(model.ShowVariable.Command, showVariable)
	table.Register(model.HideVariable.Command, hideVariable)
}

func resolve(ctx dispatch.Context, s model.Scriptable, b *model.Block, i int) *model.Variable {
	name := support.Str(ctx, s, b, i)
	return eval.RebindVarFor(s, ctx.Project(), name)
}

func variableReporter(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	v := resolve(ctx, s, b, 0)
	if v == nil {
		return value.None()
	}
	if vv, ok := v.Value.(value.Value); ok {
		return vv
	}
	return value.None()
}

func setVarTo(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	v := resolve(ctx, s, b, 0)
	if v == nil {
		return value.None()
	}
	v.Value = support.Arg(ctx, s, b, 1)
	return value.None()
}

func changeVarBy(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	v := resolve(ctx, s, b, 0)
	if v == nil {
		return value.None()
	}
	amount := support.Num(ctx, s, b, 1)
	current := 0.0
	if cv, ok := v.Value.(value.Value); ok {
		current = cv.AsNumber()
	}
	v.Value = value.Number(current + amount)
	return value.None()
}

func showVariable(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	if v := resolve(ctx, s, b, 0); v != nil {
		v.WatcherShown = true
	}
	return value.None()
}

func hideVariable(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	if v := resolve(ctx, s, b, 0); v != nil {
		v.WatcherShown = false
	}
	return value.None()
}
