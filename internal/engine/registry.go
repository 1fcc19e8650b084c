package engine

import (
	"fmt"
	"sort"

	"github.com/san-kum/cullbench/internal/bench"
)

type Registry struct {
	engines map[string]func() bench.World
}

func NewRegistry() *Registry {
	r := &Registry{engines: make(map[string]func() bench.World)}

	r.engines["box2d"] = func() bench.World { return NewBox2D() }
	r.engines["chipmunk"] = func() bench.World { return NewChipmunk() }

	return r
}

// Register adds or replaces an engine factory.
func (r *Registry) Register(name string, fn func() bench.World) {
	r.engines[name] = fn
}

// Open creates a fresh world for the named engine.
func (r *Registry) Open(name string) (bench.World, error) {
	fn, ok := r.engines[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown engine %q (available: %v)", bench.ErrConfiguration, name, r.List())
	}
	return fn(), nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.engines))
	for name := range r.engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
