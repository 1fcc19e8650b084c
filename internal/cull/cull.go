// Package cull turns the camera's view into the set of bodies worth drawing.
//
// Containment is delegated to the engine's broad-phase range query; this
// package only derives the query box and maps returned handles back to
// harness Bodies. Handles without a registered Body (walls, stale tags) are
// dropped and counted.
package cull

import (
	"github.com/san-kum/cullbench/internal/bench"
	"github.com/san-kum/cullbench/internal/bodies"
	"github.com/san-kum/cullbench/internal/camera"
)

// Lookup resolves a BodyID to its Body. *bodies.Registry satisfies it.
type Lookup interface {
	Lookup(id bench.BodyID) (*bodies.Body, bool)
}

// Culler reuses its buffers across frames; the slice returned by Cull is
// only valid until the next call.
type Culler struct {
	world   bench.World
	lookup  Lookup
	handles []bench.Handle
	visible []*bodies.Body
	misses  int
}

func New(world bench.World, lookup Lookup) *Culler {
	return &Culler{world: world, lookup: lookup}
}

// Cull returns the bodies overlapping box. An empty box yields an empty
// result without querying the engine.
func (c *Culler) Cull(box bench.AABB) []*bodies.Body {
	c.visible = c.visible[:0]
	if box.Empty() {
		return c.visible
	}

	c.handles = c.world.QueryRange(box, c.handles[:0])
	for _, h := range c.handles {
		id, ok := c.world.Tag(h)
		if !ok {
			c.misses++
			continue
		}
		b, ok := c.lookup.Lookup(id)
		if !ok {
			c.misses++
			continue
		}
		c.visible = append(c.visible, b)
	}
	clear(c.handles)
	return c.visible
}

// Visible culls against the box the camera covers on a screenW x screenH
// viewport.
func (c *Culler) Visible(cam camera.Camera, screenW, screenH float64) []*bodies.Body {
	return c.Cull(cam.WorldAABB(screenW, screenH))
}

// Misses is the number of handles dropped so far for lack of a Body.
func (c *Culler) Misses() int { return c.misses }
