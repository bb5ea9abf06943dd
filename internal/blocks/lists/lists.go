// Package lists implements the Lists handlers of spec.md §4.4 plus the
// countOfItemInList reporter recovered from original_source/elda (see
// SPEC_FULL.md's supplemented-features section) — every other Scratch
// list block's source counterpart already existed in the distilled
// spec, but the original also exposes an occurrence-count reporter the
// distillation dropped.
package lists

import (
	"math/rand"
	"strconv"
	"strings"

	"skipvm/internal/blocks/support"
	"skipvm/internal/dispatch"
	"skipvm/internal/eval"
	"skipvm/internal/model"
	"skipvm/internal/value"
)

// Register binds every lists command into table.
func Register(table *dispatch.Table) {
	table.Register(model.GetList.Command, getList)
	table.Register(model.AddToList.Command, addToList)
	table.Register(model.DeleteOfList.Command, deleteOfList)
	table.Register(model.InsertAtOfList.Command, insertAtOfList)
	table.Register(model.ReplaceItemOfList.Command, replaceItemOfList)
	table.Register(model.ItemOfList.Command, itemOfList)
	table.Register(model.LengthOfList.Command, lengthOfList)
	table.Register(model.ListContainsItem.Command, listContainsItem)
	table.Register(model.CountOfItemInList.Command, countOfItemInList)
}

func resolve(ctx dispatch.Context, s model.Scriptable, b *model.Block, i int) *model.List {
	name := support.Str(ctx, s, b, i)
	return eval.RebindListFor(s, ctx.Project(), name)
}

func itemText(item any) string {
	if v, ok := item.(value.Value); ok {
		return v.AsText()
	}
	return ""
}

// index parses a 1-based list index, accepting the "last" and "random"
// menu words the source's list-index argument allows (recovered from
// original_source/elda).
func index(text string, n int) (int, bool) {
	switch strings.ToLower(text) {
	case "last":
		if n == 0 {
			return 0, false
		}
		return n, true
	case "random", "any":
		if n == 0 {
			return 0, false
		}
		return 1 + rand.Intn(n), true
	default:
		i, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil || i < 1 || i > n {
			return 0, false
		}
		return i, true
	}
}

func getList(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	l := resolve(ctx, s, b, 0)
	if l == nil {
		return value.Text("")
	}
	parts := make([]string, len(l.Items))
	for i, item := range l.Items {
		parts[i] = itemText(item)
	}
	return value.Text(strings.Join(parts, " "))
}

func addToList(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	item := support.Arg(ctx, s, b, 0)
	l := resolve(ctx, s, b, 1)
	if l == nil {
		return value.None()
	}
	l.Items = append(l.Items, item)
	return value.None()
}

func deleteOfList(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	text := support.Str(ctx, s, b, 0)
	l := resolve(ctx, s, b, 1)
	if l == nil {
		return value.None()
	}
	if strings.EqualFold(text, "all") {
		l.Items = nil
		return value.None()
	}
	i, ok := index(text, len(l.Items))
	if !ok {
		return value.None()
	}
	l.Items = append(l.Items[:i-1], l.Items[i:]...)
	return value.None()
}

func insertAtOfList(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	item := support.Arg(ctx, s, b, 0)
	idxText := support.Str(ctx, s, b, 1)
	l := resolve(ctx, s, b, 2)
	if l == nil {
		return value.None()
	}
	i, ok := index(idxText, len(l.Items)+1)
	if !ok {
		return value.None()
	}
	l.Items = append(l.Items, nil)
	copy(l.Items[i:], l.Items[i-1:])
	l.Items[i-1] = item
	return value.None()
}

func replaceItemOfList(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	idxText := support.Str(ctx, s, b, 0)
	l := resolve(ctx, s, b, 1)
	if l == nil {
		return value.None()
	}
	i, ok := index(idxText, len(l.Items))
	if !ok {
		return value.None()
	}
	l.Items[i-1] = support.Arg(ctx, s, b, 2)
	return value.None()
}

func itemOfList(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	idxText := support.Str(ctx, s, b, 0)
	l := resolve(ctx, s, b, 1)
	if l == nil {
		return value.Text("")
	}
	i, ok := index(idxText, len(l.Items))
	if !ok {
		return value.Text("")
	}
	if v, ok := l.Items[i-1].(value.Value); ok {
		return v
	}
	return value.Text("")
}

func lengthOfList(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	l := resolve(ctx, s, b, 0)
	if l == nil {
		return value.Number(0)
	}
	return value.Number(float64(len(l.Items)))
}

func listContainsItem(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	l := resolve(ctx, s, b, 0)
	if l == nil {
		return value.Bool(false)
	}
	needle := strings.ToLower(support.Str(ctx, s, b, 1))
	for _, item := range l.Items {
		if strings.ToLower(itemText(item)) == needle {
			return value.Bool(true)
		}
	}
	return value.Bool(false)
}

func countOfItemInList(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	l := resolve(ctx, s, b, 0)
	if l == nil {
		return value.Number(0)
	}
	needle := strings.ToLower(support.Str(ctx, s, b, 1))
	count := 0
	for _, item := range l.Items {
		if strings.ToLower(itemText(item)) == needle {
			count++
		}
	}
	return value.Number(float64(count))
}
