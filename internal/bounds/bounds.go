// Package bounds wires a Sprite's current costume, size, direction, and
// position into the pure geom.Bounds AABB math (spec.md §4.5), shared
// by sensing (touching/color) and hat triggering (click targeting).
package bounds

import (
	"skipvm/internal/geom"
	"skipvm/internal/model"
)

// Of computes a Sprite's current axis-aligned bounding box.
func Of(s *model.Sprite) geom.Rect {
	c := s.CurrentCostume()
	cr := geom.CostumeRect{}
	if c != nil {
		cr = geom.CostumeRect{
			RotationCenterX: c.RotationCenterX,
			RotationCenterY: c.RotationCenterY,
			ImageWidth:      c.ImageWidth,
			ImageHeight:     c.ImageHeight,
		}
	}
	x, y := s.Position()
	return geom.Bounds(cr, s.Size(), s.DirectionDeg, s.RotationStyle, geom.Point{X: x, Y: y})
}

// StageRect is the fixed stage rectangle centered at the origin, used
// by the `touching edge` sensing block (spec.md §4.4).
func StageRect() geom.Rect {
	return geom.Rect{
		Left:   -model.StageWidth / 2,
		Top:    model.StageHeight / 2,
		Width:  model.StageWidth,
		Height: model.StageHeight,
	}
}
