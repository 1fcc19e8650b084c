package bench

import "math"

type Vec2 struct {
	X, Y float64
}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

func (v Vec2) Scale(f float64) Vec2 { return Vec2{X: v.X * f, Y: v.Y * f} }

func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

func (v Vec2) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// AABB is an axis-aligned box. A box whose Max does not strictly exceed Min
// on both axes is empty.
type AABB struct {
	Min, Max Vec2
}

func Box(minX, minY, maxX, maxY float64) AABB {
	return AABB{Min: Vec2{X: minX, Y: minY}, Max: Vec2{X: maxX, Y: maxY}}
}

func (b AABB) Width() float64  { return b.Max.X - b.Min.X }
func (b AABB) Height() float64 { return b.Max.Y - b.Min.Y }

func (b AABB) Area() float64 {
	if b.Empty() {
		return 0
	}
	return b.Width() * b.Height()
}

// Empty reports whether the box covers no usable area. NaN or infinite
// corners count as empty.
func (b AABB) Empty() bool {
	if !b.Min.IsValid() || !b.Max.IsValid() {
		return true
	}
	return !(b.Max.X > b.Min.X) || !(b.Max.Y > b.Min.Y)
}

func (b AABB) Contains(p Vec2) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

func (b AABB) Overlaps(o AABB) bool {
	return b.Min.X <= o.Max.X && o.Min.X <= b.Max.X && b.Min.Y <= o.Max.Y && o.Min.Y <= b.Max.Y
}

type Color struct {
	R, G, B, A uint8
}

func (c Color) Opaque() bool { return c.A == 255 }

// BodyID is the back-reference the harness attaches to engine bodies.
// Zero means untagged.
type BodyID uint32
