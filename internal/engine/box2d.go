package engine

import (
	"fmt"
	"math"

	"github.com/ByteArena/box2d"

	"github.com/san-kum/cullbench/internal/bench"
)

type Box2D struct {
	world  *box2d.B2World
	closed bool
}

func NewBox2D() *Box2D {
	w := box2d.MakeB2World(box2d.MakeB2Vec2(0, 0))
	return &Box2D{world: &w}
}

func (b *Box2D) Name() string { return "box2d" }

func (b *Box2D) CreateCircle(def bench.CircleDef) (h bench.Handle, err error) {
	defer recoverAs(&err, "box2d: create circle")

	bd := box2d.MakeB2BodyDef()
	bd.Type = box2d.B2BodyType.B2_dynamicBody
	bd.Position = box2d.MakeB2Vec2(def.Position.X, def.Position.Y)
	bd.LinearVelocity = box2d.MakeB2Vec2(def.Velocity.X, def.Velocity.Y)
	bd.FixedRotation = true

	body := b.world.CreateBody(&bd)
	if body == nil {
		return nil, fmt.Errorf("box2d: world locked")
	}

	shape := box2d.MakeB2CircleShape()
	shape.M_radius = def.Radius

	fd := box2d.MakeB2FixtureDef()
	fd.Shape = &shape
	fd.Density = def.Material.Density
	fd.Friction = def.Material.Friction
	fd.Restitution = def.Material.Restitution
	if body.CreateFixtureFromDef(&fd) == nil {
		return nil, fmt.Errorf("box2d: fixture rejected")
	}

	return body, nil
}

func (b *Box2D) CreateWall(def bench.WallDef) (h bench.Handle, err error) {
	defer recoverAs(&err, "box2d: create wall")

	bd := box2d.MakeB2BodyDef()
	bd.Position = box2d.MakeB2Vec2(def.Center.X, def.Center.Y)

	body := b.world.CreateBody(&bd)
	if body == nil {
		return nil, fmt.Errorf("box2d: world locked")
	}

	shape := box2d.MakeB2PolygonShape()
	shape.SetAsBox(def.HalfWidth, def.HalfHeight)
	body.CreateFixture(&shape, 0)

	return body, nil
}

func (b *Box2D) SetTag(h bench.Handle, id bench.BodyID) {
	if body, ok := h.(*box2d.B2Body); ok {
		body.SetUserData(id)
	}
}

func (b *Box2D) Tag(h bench.Handle) (bench.BodyID, bool) {
	body, ok := h.(*box2d.B2Body)
	if !ok {
		return 0, false
	}
	id, ok := body.GetUserData().(bench.BodyID)
	return id, ok
}

func (b *Box2D) Position(h bench.Handle) bench.Vec2 {
	body, ok := h.(*box2d.B2Body)
	if !ok {
		return bench.Vec2{X: math.NaN(), Y: math.NaN()}
	}
	p := body.GetPosition()
	return bench.V(p.X, p.Y)
}

func (b *Box2D) Step(dt float64, it bench.Iterations) (err error) {
	defer recoverAs(&err, "box2d: step")
	if b.closed {
		return fmt.Errorf("%w: box2d: step on closed world", bench.ErrCollaborator)
	}
	b.world.Step(dt, it.Velocity, it.Position)
	return nil
}

func (b *Box2D) QueryRange(box bench.AABB, dst []bench.Handle) []bench.Handle {
	aabb := box2d.B2AABB{
		LowerBound: box2d.MakeB2Vec2(box.Min.X, box.Min.Y),
		UpperBound: box2d.MakeB2Vec2(box.Max.X, box.Max.Y),
	}

	b.world.QueryAABB(func(f *box2d.B2Fixture) bool {
		dst = append(dst, f.GetBody())
		return true
	}, aabb)
	return dst
}

// Close destroys every body in the world.
func (b *Box2D) Close() (err error) {
	if b.closed {
		return nil
	}
	b.closed = true
	defer recoverAs(&err, "box2d: close")

	for body := b.world.GetBodyList(); body != nil; {
		next := body.GetNext()
		b.world.DestroyBody(body)
		body = next
	}
	return nil
}

// recoverAs turns an engine panic into an ErrCollaborator on *err.
func recoverAs(err *error, op string) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: %s: %v", bench.ErrCollaborator, op, r)
	}
}
