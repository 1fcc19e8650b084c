package bodies

import (
	"fmt"
	"math/rand"

	"github.com/san-kum/cullbench/internal/arena"
	"github.com/san-kum/cullbench/internal/bench"
)

const WallThickness = 0.1

// Spec describes one population request.
type Spec struct {
	Count    int
	Arena    arena.Arena
	Radius   float64
	Speed    float64 // velocity components are drawn from [-Speed, Speed)
	Material bench.Material
}

// Populate creates the arena walls and Count tagged dynamic circles in world.
// Any engine failure aborts the population.
func Populate(world bench.World, spec Spec, rng *rand.Rand) (*Registry, error) {
	if spec.Count <= 0 {
		return nil, fmt.Errorf("%w: body count must be positive, got %d", bench.ErrConfiguration, spec.Count)
	}
	if !(spec.Radius > 0) {
		return nil, fmt.Errorf("%w: radius must be positive, got %f", bench.ErrConfiguration, spec.Radius)
	}

	for i, wall := range Walls(spec.Arena, WallThickness) {
		if _, err := world.CreateWall(wall); err != nil {
			return nil, fmt.Errorf("%w: wall %d: %v", bench.ErrResourceAcquisition, i, err)
		}
	}

	reg := NewRegistry(spec.Count)
	for i := 0; i < spec.Count; i++ {
		def := bench.CircleDef{
			Position: randomPosition(rng, spec.Arena, spec.Radius),
			Velocity: bench.V(uniform(rng, spec.Speed), uniform(rng, spec.Speed)),
			Radius:   spec.Radius,
			Material: spec.Material,
		}
		h, err := world.CreateCircle(def)
		if err != nil {
			return nil, fmt.Errorf("%w: body %d: %v", bench.ErrResourceAcquisition, i, err)
		}

		b := &Body{Handle: h, Radius: spec.Radius, Color: randomColor(rng)}
		world.SetTag(h, reg.Add(b))
	}

	return reg, nil
}

// Walls returns the four static boundary boxes, placed just outside the arena.
func Walls(a arena.Arena, thickness float64) []bench.WallDef {
	half := thickness / 2
	return []bench.WallDef{
		{Center: bench.V(a.Width/2, -half), HalfWidth: a.Width/2 + thickness, HalfHeight: half},
		{Center: bench.V(a.Width/2, a.Height+half), HalfWidth: a.Width/2 + thickness, HalfHeight: half},
		{Center: bench.V(-half, a.Height/2), HalfWidth: half, HalfHeight: a.Height/2 + thickness},
		{Center: bench.V(a.Width+half, a.Height/2), HalfWidth: half, HalfHeight: a.Height/2 + thickness},
	}
}

func randomPosition(rng *rand.Rand, a arena.Arena, radius float64) bench.Vec2 {
	return bench.V(inset(rng, a.Width, radius), inset(rng, a.Height, radius))
}

// inset draws from [r, extent-r), falling back to the midpoint when the
// arena is narrower than the body.
func inset(rng *rand.Rand, extent, r float64) float64 {
	span := extent - 2*r
	if span <= 0 {
		return extent / 2
	}
	return r + rng.Float64()*span
}

func uniform(rng *rand.Rand, limit float64) float64 {
	return (rng.Float64()*2 - 1) * limit
}

func randomColor(rng *rand.Rand) bench.Color {
	return bench.Color{
		R: uint8(rng.Intn(256)),
		G: uint8(rng.Intn(256)),
		B: uint8(rng.Intn(256)),
		A: 255,
	}
}
