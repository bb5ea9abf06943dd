// Package motion implements the Motion handlers of spec.md §4.4: moving,
// turning, and pointing a Sprite, grounded on the teacher's per-opcode
// instruction handlers (internal/cpu/instructions.go) generalized from a
// fixed register file to a Sprite's position/direction fields. Every
// handler here is a no-op when called on the Stage, since motion blocks
// are never attached to stage scripts by the project loader.
package motion

import (
	"math"

	"skipvm/internal/blocks/support"
	"skipvm/internal/dispatch"
	"skipvm/internal/eval"
	"skipvm/internal/geom"
	"skipvm/internal/model"
	"skipvm/internal/value"
)

// Register binds every motion command into table.
func Register(table *dispatch.Table) {
	table.Register(model.Move.Command, move)
	table.Register(model.TurnRight.Command, turnRight)
	table.Register(model.TurnLeft.Command, turnLeft)
	table.Register(model.PointInDirection.Command, pointInDirection)
	table.Register(model.PointTowards.Command, pointTowards)
	table.Register(model.GoToXY.Command, goToXY)
	table.Register(model.GoTo.Command, goTo)
	table.Register(model.GlideSecsToXY.Command, glideSecsToXY)
	table.Register(model.ChangeXBy.Command, changeXBy)
	table.Register(model.ChangeYBy.Command, changeYBy)
	table.Register(model.SetX.Command, setX)
	table.Register(model.SetY.Command, setY)
	table.Register(model.DirectionReporter.Command, directionReporter)
	table.Register(model.XPosition.Command, xPosition)
	table.Register(model.YPosition.Command, yPosition)
}

// moveTo relocates sp and, if its pen is down, draws a trail segment
// from its prior position through the screen backend (spec.md §4.4 Pen:
// "every position change while the pen is down draws a line").
func moveTo(ctx dispatch.Context, sp *model.Sprite, x, y float64) {
	x0, y0 := sp.Position()
	sp.SetPosition(x, y)
	if sp.PenDown {
		ctx.Screen().DrawLine(x0, y0, x, y, sp.PenColor, sp.PenSize)
	}
}

func move(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	sp, ok := support.AsSprite(s)
	if !ok {
		return value.None()
	}
	steps := support.Num(ctx, s, b, 0)
	theta := (90 - sp.DirectionDeg) * math.Pi / 180
	x, y := sp.Position()
	moveTo(ctx, sp, x+steps*math.Cos(theta), y+steps*math.Sin(theta))
	return value.None()
}

func turnRight(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	sp, ok := support.AsSprite(s)
	if !ok {
		return value.None()
	}
	sp.DirectionDeg = geom.NormalizeDirection(sp.DirectionDeg + support.Num(ctx, s, b, 0))
	return value.None()
}

func turnLeft(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	sp, ok := support.AsSprite(s)
	if !ok {
		return value.None()
	}
	sp.DirectionDeg = geom.NormalizeDirection(sp.DirectionDeg - support.Num(ctx, s, b, 0))
	return value.None()
}

func pointInDirection(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	sp, ok := support.AsSprite(s)
	if !ok {
		return value.None()
	}
	sp.DirectionDeg = geom.NormalizeDirection(support.Num(ctx, s, b, 0))
	return value.None()
}

func pointTowards(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	sp, ok := support.AsSprite(s)
	if !ok {
		return value.None()
	}
	v := support.Arg(ctx, s, b, 0)
	tx, ty := targetXY(ctx, v)
	x, y := sp.Position()
	sp.DirectionDeg = geom.DirectionTo(geom.Point{X: x, Y: y}, geom.Point{X: tx, Y: ty})
	return value.None()
}

func goToXY(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	sp, ok := support.AsSprite(s)
	if !ok {
		return value.None()
	}
	moveTo(ctx, sp, support.Num(ctx, s, b, 0), support.Num(ctx, s, b, 1))
	return value.None()
}

func goTo(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	sp, ok := support.AsSprite(s)
	if !ok {
		return value.None()
	}
	v := support.Arg(ctx, s, b, 0)
	tx, ty := targetXY(ctx, v)
	moveTo(ctx, sp, tx, ty)
	return value.None()
}

// glideSecsToXY moves the sprite in a straight line to (x, y) over secs
// seconds of frame time. Its arguments are evaluated once; each frame
// the sprite is placed at the fraction elapsed/secs of the path,
// yielding between frames, and it lands exactly on (x, y) once secs
// have passed (at once when secs <= 0).
func glideSecsToXY(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	sp, ok := support.AsSprite(s)
	if !ok {
		return value.None()
	}
	secs := support.Num(ctx, s, b, 0)
	x1, y1 := support.Num(ctx, s, b, 1), support.Num(ctx, s, b, 2)
	x0, y0 := sp.Position()
	start := ctx.Now()
	for ctx.Now()-start < secs {
		ctx.Yield()
		if t := (ctx.Now() - start) / secs; t < 1 {
			moveTo(ctx, sp, x0+(x1-x0)*t, y0+(y1-y0)*t)
		}
	}
	moveTo(ctx, sp, x1, y1)
	return value.None()
}

func changeXBy(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	sp, ok := support.AsSprite(s)
	if !ok {
		return value.None()
	}
	x, y := sp.Position()
	moveTo(ctx, sp, x+support.Num(ctx, s, b, 0), y)
	return value.None()
}

func changeYBy(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	sp, ok := support.AsSprite(s)
	if !ok {
		return value.None()
	}
	x, y := sp.Position()
	moveTo(ctx, sp, x, y+support.Num(ctx, s, b, 0))
	return value.None()
}

func setX(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	sp, ok := support.AsSprite(s)
	if !ok {
		return value.None()
	}
	_, y := sp.Position()
	moveTo(ctx, sp, support.Num(ctx, s, b, 0), y)
	return value.None()
}

func setY(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	sp, ok := support.AsSprite(s)
	if !ok {
		return value.None()
	}
	x, _ := sp.Position()
	moveTo(ctx, sp, x, support.Num(ctx, s, b, 0))
	return value.None()
}

func directionReporter(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	sp, ok := support.AsSprite(s)
	if !ok {
		return value.Number(0)
	}
	return value.Number(sp.DirectionDeg)
}

func xPosition(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	sp, ok := support.AsSprite(s)
	if !ok {
		return value.Number(0)
	}
	x, _ := sp.Position()
	return value.Number(x)
}

func yPosition(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	sp, ok := support.AsSprite(s)
	if !ok {
		return value.Number(0)
	}
	_, y := sp.Position()
	return value.Number(y)
}

// targetXY resolves a spriteOrMouse-rebound Value to stage coordinates:
// a rebound sprite's own position, or the screen's current mouse
// position for the mouse-pointer sentinel (spec.md §4.2 sprite-menu
// rebinding, §6.3 Screen.MousePos).
func targetXY(ctx dispatch.Context, v value.Value) (float64, float64) {
	if sp := eval.SpriteFromValue(v); sp != nil {
		return sp.Position()
	}
	return ctx.Screen().MousePos()
}
