package engine

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"

	"github.com/san-kum/cullbench/internal/bench"
)

// Chipmunk has a single solver iteration count; it takes the velocity
// iterations and ignores the position ones.
type Chipmunk struct {
	space *cp.Space
}

func NewChipmunk() *Chipmunk {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{})
	return &Chipmunk{space: space}
}

func (c *Chipmunk) Name() string { return "chipmunk" }

func (c *Chipmunk) CreateCircle(def bench.CircleDef) (h bench.Handle, err error) {
	defer recoverAs(&err, "chipmunk: create circle")
	if c.space == nil {
		return nil, fmt.Errorf("chipmunk: space closed")
	}

	mass := def.Material.Density * math.Pi * def.Radius * def.Radius
	if mass <= 0 {
		return nil, fmt.Errorf("chipmunk: non-positive mass %f", mass)
	}

	body := c.space.AddBody(cp.NewBody(mass, cp.INFINITY))
	body.SetPosition(cp.Vector{X: def.Position.X, Y: def.Position.Y})
	body.SetVelocity(def.Velocity.X, def.Velocity.Y)

	shape := c.space.AddShape(cp.NewCircle(body, def.Radius, cp.Vector{}))
	shape.SetElasticity(def.Material.Restitution)
	shape.SetFriction(def.Material.Friction)

	return body, nil
}

func (c *Chipmunk) CreateWall(def bench.WallDef) (h bench.Handle, err error) {
	defer recoverAs(&err, "chipmunk: create wall")
	if c.space == nil {
		return nil, fmt.Errorf("chipmunk: space closed")
	}

	body := cp.NewStaticBody()
	body.SetPosition(cp.Vector{X: def.Center.X, Y: def.Center.Y})
	c.space.AddBody(body)

	shape := c.space.AddShape(cp.NewBox(body, 2*def.HalfWidth, 2*def.HalfHeight, 0))
	shape.SetElasticity(1)
	shape.SetFriction(1)

	return body, nil
}

func (c *Chipmunk) SetTag(h bench.Handle, id bench.BodyID) {
	if body, ok := h.(*cp.Body); ok {
		body.UserData = id
	}
}

func (c *Chipmunk) Tag(h bench.Handle) (bench.BodyID, bool) {
	body, ok := h.(*cp.Body)
	if !ok {
		return 0, false
	}
	id, ok := body.UserData.(bench.BodyID)
	return id, ok
}

func (c *Chipmunk) Position(h bench.Handle) bench.Vec2 {
	body, ok := h.(*cp.Body)
	if !ok {
		return bench.Vec2{X: math.NaN(), Y: math.NaN()}
	}
	p := body.Position()
	return bench.V(p.X, p.Y)
}

func (c *Chipmunk) Step(dt float64, it bench.Iterations) (err error) {
	defer recoverAs(&err, "chipmunk: step")
	if c.space == nil {
		return fmt.Errorf("%w: chipmunk: step on closed space", bench.ErrCollaborator)
	}
	if it.Velocity > 0 {
		c.space.Iterations = uint(it.Velocity)
	}
	c.space.Step(dt)
	return nil
}

func (c *Chipmunk) QueryRange(box bench.AABB, dst []bench.Handle) []bench.Handle {
	if c.space == nil {
		return dst
	}
	bb := cp.BB{L: box.Min.X, B: box.Min.Y, R: box.Max.X, T: box.Max.Y}
	c.space.BBQuery(bb, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, _ interface{}) {
		dst = append(dst, shape.Body())
	}, nil)
	return dst
}

// Close drops the space; Chipmunk holds no resources beyond memory.
func (c *Chipmunk) Close() error {
	c.space = nil
	return nil
}
