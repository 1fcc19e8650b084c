package bodies

import "github.com/san-kum/cullbench/internal/bench"

// Body is the harness-side record of one engine body. The engine owns its
// dynamics; the harness owns Radius and Color.
type Body struct {
	ID     bench.BodyID
	Handle bench.Handle
	Radius float64
	Color  bench.Color
}

// Registry is the bidirectional lookup between BodyIDs and Bodies. The
// engine carries the BodyID as each handle's tag.
type Registry struct {
	byID   map[bench.BodyID]*Body
	bodies []*Body
	nextID bench.BodyID
}

func NewRegistry(capacity int) *Registry {
	return &Registry{
		byID:   make(map[bench.BodyID]*Body, capacity),
		bodies: make([]*Body, 0, capacity),
		nextID: 1,
	}
}

// Add assigns the next BodyID to b and records it.
func (r *Registry) Add(b *Body) bench.BodyID {
	b.ID = r.nextID
	r.nextID++
	r.byID[b.ID] = b
	r.bodies = append(r.bodies, b)
	return b.ID
}

func (r *Registry) Lookup(id bench.BodyID) (*Body, bool) {
	b, ok := r.byID[id]
	return b, ok
}

// All returns bodies in spawn order. The slice must not be modified.
func (r *Registry) All() []*Body { return r.bodies }

func (r *Registry) Len() int { return len(r.bodies) }

// Release forgets every body. The engine bodies themselves are torn down
// with their World.
func (r *Registry) Release() {
	clear(r.byID)
	r.bodies = nil
}
