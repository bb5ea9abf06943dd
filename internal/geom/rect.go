// Package geom implements the axis-aligned rectangle geometry spec.md
// §4.5 requires for sensing: costume bounding boxes, scaling, rotation
// about a costume's rotation centre, and point/rect overlap tests.
package geom

import "math"

// Point is a stage-coordinate point: origin at stage centre, +y up.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle: Left/Top is one corner, Width and
// Height extend right/down in stage-coordinate terms (Top is the larger
// y, since +y is up — see NewFromCorners).
type Rect struct {
	Left, Top     float64
	Width, Height float64
}

// Bottom and Right are derived since +y is up: Bottom = Top - Height.
func (r Rect) Bottom() float64 { return r.Top - r.Height }
func (r Rect) Right() float64  { return r.Left + r.Width }

// Move translates the rectangle in place.
func (r *Rect) Move(dx, dy float64) {
	r.Left += dx
	r.Top += dy
}

// Scale grows/shrinks the rectangle around its own Left/Top corner.
func (r *Rect) Scale(factor float64) {
	r.Left *= factor
	r.Top *= factor
	r.Width *= factor
	r.Height *= factor
}

// ContainsPoint reports whether p lies strictly inside r (strict
// inequality on all sides per spec.md §4.5).
func (r Rect) ContainsPoint(p Point) bool {
	return p.X > r.Left && p.X < r.Right() && p.Y < r.Top && p.Y > r.Bottom()
}

// Overlaps reports whether r and o share any interior area.
func (r Rect) Overlaps(o Rect) bool {
	if r.Right() <= o.Left || o.Right() <= r.Left {
		return false
	}
	if r.Top <= o.Bottom() || o.Top <= r.Bottom() {
		return false
	}
	return true
}

// CostumeRect is the input to Bounds: a costume's raw (unscaled,
// unrotated) rectangle anchored at its rotation centre, per spec.md
// §4.5 step 1: "top equals rotation_center.y, left equals
// -rotation_center.x, width/height from the costume image".
type CostumeRect struct {
	RotationCenterX, RotationCenterY float64
	ImageWidth, ImageHeight          float64
}

// Bounds implements spec.md §4.5: scale by size/100, rotate the four
// corners by the sprite's direction (in degrees, 0 = up, clockwise
// positive, per the evaluator's atan2(dx,dy) convention), take the AABB
// of the rotated corners, then translate to the sprite's position.
//
// rotationStyle "leftRight" and "none" force theta to zero before the
// rotation step (recovered from original_source/elda's sprite-draw
// code — see SPEC_FULL.md's supplemented-features section); only
// "normal" uses the full direction.
func Bounds(c CostumeRect, sizePercent, directionDeg float64, rotationStyle string, position Point) Rect {
	left := -c.RotationCenterX
	top := c.RotationCenterY
	width := c.ImageWidth
	height := c.ImageHeight

	scale := sizePercent / 100
	left *= scale
	top *= scale
	width *= scale
	height *= scale

	theta := 0.0
	if rotationStyle == "" || rotationStyle == "normal" {
		theta = directionDeg * math.Pi / 180
	}

	corners := [4]Point{
		{X: left, Y: top},
		{X: left + width, Y: top},
		{X: left, Y: top - height},
		{X: left + width, Y: top - height},
	}

	sinT, cosT := math.Sin(theta), math.Cos(theta)
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range corners {
		rx := p.X*sinT - p.Y*cosT
		ry := p.X*cosT + p.Y*sinT
		if rx < minX {
			minX = rx
		}
		if rx > maxX {
			maxX = rx
		}
		if ry < minY {
			minY = ry
		}
		if ry > maxY {
			maxY = ry
		}
	}

	r := Rect{Left: minX, Top: maxY, Width: maxX - minX, Height: maxY - minY}
	r.Move(position.X, position.Y)
	return r
}

// Distance is the Euclidean distance between two points, used by the
// `distance to` sensing block.
func Distance(a, b Point) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// DirectionTo computes the heading from a to b using the block
// language's atan2(dx, dy) convention, so 0° is "up" and angles increase
// clockwise (spec.md §4.4 Motion note on `point towards`).
func DirectionTo(a, b Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	if dx == 0 && dy == 0 {
		return 0
	}
	deg := math.Atan2(dx, dy) * 180 / math.Pi
	return NormalizeDirection(deg)
}

// NormalizeDirection folds any angle into (-179, 180], per spec.md §4.4's
// `direction` reporter invariant (also §8 invariant 5).
func NormalizeDirection(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg > 180 {
		deg -= 360
	} else if deg <= -180 {
		deg += 360
	}
	return deg
}
