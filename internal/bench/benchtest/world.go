// Package benchtest provides an in-memory bench.World for tests.
package benchtest

import (
	"errors"

	"github.com/san-kum/cullbench/internal/bench"
)

// Ref is the handle type issued by World. Circles get positive refs, walls
// negative ones.
type Ref int

// World records every call and answers range queries by brute force over
// the bodies it created. Bodies never move.
type World struct {
	Circles []bench.CircleDef
	Walls   []bench.WallDef
	Tags    map[Ref]bench.BodyID

	Steps   int
	Queries []bench.AABB
	Closed  int

	// FailCircleAt makes the n-th CreateCircle call (zero-based) fail.
	// Negative disables it.
	FailCircleAt int
	StepErr      error
	CloseErr     error

	// QueryFunc, when set, replaces the brute-force range query.
	QueryFunc func(box bench.AABB) []bench.Handle

	// OnClose runs inside Close, for ordering assertions.
	OnClose func()
}

var ErrInjected = errors.New("benchtest: injected failure")

func NewWorld() *World {
	return &World{Tags: make(map[Ref]bench.BodyID), FailCircleAt: -1}
}

func (w *World) Name() string { return "fake" }

func (w *World) CreateCircle(def bench.CircleDef) (bench.Handle, error) {
	if w.FailCircleAt >= 0 && len(w.Circles) == w.FailCircleAt {
		return nil, ErrInjected
	}
	w.Circles = append(w.Circles, def)
	return Ref(len(w.Circles)), nil
}

func (w *World) CreateWall(def bench.WallDef) (bench.Handle, error) {
	w.Walls = append(w.Walls, def)
	return Ref(-len(w.Walls)), nil
}

func (w *World) SetTag(h bench.Handle, id bench.BodyID) { w.Tags[h.(Ref)] = id }

func (w *World) Tag(h bench.Handle) (bench.BodyID, bool) {
	id, ok := w.Tags[h.(Ref)]
	return id, ok
}

func (w *World) Position(h bench.Handle) bench.Vec2 {
	r := h.(Ref)
	if r > 0 {
		return w.Circles[r-1].Position
	}
	return w.Walls[-r-1].Center
}

func (w *World) Step(dt float64, it bench.Iterations) error {
	w.Steps++
	return w.StepErr
}

func (w *World) QueryRange(box bench.AABB, dst []bench.Handle) []bench.Handle {
	w.Queries = append(w.Queries, box)
	if w.QueryFunc != nil {
		return append(dst, w.QueryFunc(box)...)
	}
	for i, c := range w.Circles {
		r := bench.V(c.Radius, c.Radius)
		if box.Overlaps(bench.AABB{Min: c.Position.Sub(r), Max: c.Position.Add(r)}) {
			dst = append(dst, Ref(i+1))
		}
	}
	for i, wall := range w.Walls {
		half := bench.V(wall.HalfWidth, wall.HalfHeight)
		if box.Overlaps(bench.AABB{Min: wall.Center.Sub(half), Max: wall.Center.Add(half)}) {
			dst = append(dst, Ref(-(i + 1)))
		}
	}
	return dst
}

func (w *World) Close() error {
	w.Closed++
	if w.OnClose != nil {
		w.OnClose()
	}
	return w.CloseErr
}
