// Package camera holds the pannable, zoomable 2D view over the arena.
//
// The transform mirrors the renderer's 2D camera with rotation pinned to
// zero: a world point p appears on screen at (p-Target)*Zoom + Offset.
package camera

import "github.com/san-kum/cullbench/internal/bench"

type Camera struct {
	Target   bench.Vec2 // world point under Offset
	Offset   bench.Vec2 // screen point, usually the screen center
	Zoom     float64
	Rotation float64
}

func New(target, offset bench.Vec2, zoom float64) Camera {
	return Camera{Target: target, Offset: offset, Zoom: zoom}
}

func (c *Camera) Pan(delta bench.Vec2) {
	c.Target = c.Target.Add(delta)
}

// ZoomBy scales zoom by (1+factor). Zoom is not clamped.
func (c *Camera) ZoomBy(factor float64) {
	c.Zoom *= 1 + factor
}

func (c Camera) ScreenToWorld(p bench.Vec2) bench.Vec2 {
	return p.Sub(c.Offset).Scale(1 / c.Zoom).Add(c.Target)
}

func (c Camera) WorldToScreen(p bench.Vec2) bench.Vec2 {
	return p.Sub(c.Target).Scale(c.Zoom).Add(c.Offset)
}

// WorldAABB returns the world-space box covered by a screen of the given size.
func (c Camera) WorldAABB(screenW, screenH float64) bench.AABB {
	return bench.AABB{
		Min: c.ScreenToWorld(bench.V(0, 0)),
		Max: c.ScreenToWorld(bench.V(screenW, screenH)),
	}
}
