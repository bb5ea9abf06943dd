// Package operators implements the Operators handlers of spec.md §4.4:
// arithmetic, comparison, boolean, string, and math-function reporters.
// None of these touch Scriptable state; grounded on the teacher's ALU
// opcode handlers (internal/cpu/instructions.go's arithmetic group),
// generalized from fixed-width register math to value.Value's loose
// numeric coercion.
package operators

import (
	"math"
	"math/rand"
	"strings"

	"skipvm/internal/blocks/support"
	"skipvm/internal/dispatch"
	"skipvm/internal/model"
	"skipvm/internal/value"
)

// Register binds every operators command into table.
func Register(table *dispatch.Table) {
	table.Register(model.Add.Command, add)
	table.Register(model.Subtract.Command, subtract)
	table.Register(model.Multiply.Command, multiply)
	table.Register(model.Divide.Command, divide)
	table.Register(model.Mod.Command, mod)
	table.Register(model.Round.Command, round)
	table.Register(model.LessThan.Command, lessThan)
	table.Register(model.Equals.Command, equals)
	table.Register(model.GreaterThan.Command, greaterThan)
	table.Register(model.And.Command, and)
	table.Register(model.Or.Command, or)
	table.Register(model.Not.Command, not)
	table.Register(model.PickRandom.Command, pickRandom)
	table.Register(model.Join.Command, join)
	table.Register(model.LetterOf.Command, letterOf)
	table.Register(model.StringLength.Command, stringLength)
	table.Register(model.ComputeFunction.Command, computeFunction)
}

func add(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	return value.Number(support.Num(ctx, s, b, 0) + support.Num(ctx, s, b, 1))
}

func subtract(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	return value.Number(support.Num(ctx, s, b, 0) - support.Num(ctx, s, b, 1))
}

func multiply(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	return value.Number(support.Num(ctx, s, b, 0) * support.Num(ctx, s, b, 1))
}

func divide(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	denom := support.Num(ctx, s, b, 1)
	if denom == 0 {
		return value.Number(math.Inf(1))
	}
	return value.Number(support.Num(ctx, s, b, 0) / denom)
}

// mod follows the source's floored-modulo convention (result always
// shares the divisor's sign), not Go's truncated %.
func mod(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	a, n := support.Num(ctx, s, b, 0), support.Num(ctx, s, b, 1)
	if n == 0 {
		return value.Number(math.NaN())
	}
	r := math.Mod(a, n)
	if r != 0 && (r < 0) != (n < 0) {
		r += n
	}
	return value.Number(r)
}

func round(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	return value.Number(math.Round(support.Num(ctx, s, b, 0)))
}

func lessThan(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	return value.Bool(compare(ctx, s, b) < 0)
}

func equals(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	return value.Bool(compare(ctx, s, b) == 0)
}

func greaterThan(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	return value.Bool(compare(ctx, s, b) > 0)
}

// compare follows the source's loose comparison: if both sides parse as
// numbers, compare numerically; otherwise compare case-insensitive text.
func compare(ctx dispatch.Context, s model.Scriptable, b *model.Block) int {
	av := support.Arg(ctx, s, b, 0)
	bv := support.Arg(ctx, s, b, 1)
	if av.IsNumber() && bv.IsNumber() {
		return numCompare(av.AsNumber(), bv.AsNumber())
	}
	at, bt := strings.ToLower(av.AsText()), strings.ToLower(bv.AsText())
	switch {
	case at < bt:
		return -1
	case at > bt:
		return 1
	default:
		return 0
	}
}

func numCompare(a, bN float64) int {
	switch {
	case a < bN:
		return -1
	case a > bN:
		return 1
	default:
		return 0
	}
}

func and(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	return value.Bool(support.Bool(ctx, s, b, 0) && support.Bool(ctx, s, b, 1))
}

func or(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	return value.Bool(support.Bool(ctx, s, b, 0) || support.Bool(ctx, s, b, 1))
}

func not(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	return value.Bool(!support.Bool(ctx, s, b, 0))
}

// pickRandom mirrors the source's random.randint(int(a), int(b)):
// truncate both ends to int and pick inclusive-both-ends, not a
// continuous float draw (recovered from original_source/elda's
// operator_random).
func pickRandom(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	lo := int(support.Num(ctx, s, b, 0))
	hi := int(support.Num(ctx, s, b, 1))
	if lo > hi {
		lo, hi = hi, lo
	}
	return value.Number(float64(lo + rand.Intn(hi-lo+1)))
}

func join(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	return value.Text(support.Str(ctx, s, b, 0) + support.Str(ctx, s, b, 1))
}

func letterOf(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	idx := int(support.Num(ctx, s, b, 0))
	text := support.Str(ctx, s, b, 1)
	runes := []rune(text)
	if idx < 1 || idx > len(runes) {
		return value.Text("")
	}
	return value.Text(string(runes[idx-1]))
}

func stringLength(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	return value.Number(float64(len([]rune(support.Str(ctx, s, b, 0)))))
}

func computeFunction(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	name := support.Str(ctx, s, b, 0)
	x := support.Num(ctx, s, b, 1)
	switch name {
	case "abs":
		return value.Number(math.Abs(x))
	case "floor":
		return value.Number(math.Floor(x))
	case "ceiling":
		return value.Number(math.Ceil(x))
	case "sqrt":
		return value.Number(math.Sqrt(x))
	case "sin":
		return value.Number(math.Sin(x * math.Pi / 180))
	case "cos":
		return value.Number(math.Cos(x * math.Pi / 180))
	case "tan":
		return value.Number(math.Tan(x * math.Pi / 180))
	case "asin":
		return value.Number(math.Asin(x) * 180 / math.Pi)
	case "acos":
		return value.Number(math.Acos(x) * 180 / math.Pi)
	case "atan":
		return value.Number(math.Atan(x) * 180 / math.Pi)
	case "ln":
		return value.Number(math.Log(x))
	case "log":
		return value.Number(math.Log10(x))
	case "e ^":
		return value.Number(math.Exp(x))
	case "10 ^":
		return value.Number(math.Pow(10, x))
	default:
		return value.Number(0)
	}
}
