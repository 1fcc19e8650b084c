// Package arena sizes the simulated region so that body density stays
// constant across scenario sizes.
package arena

import (
	"fmt"
	"math"

	"github.com/san-kum/cullbench/internal/bench"
)

type Arena struct {
	Width  float64
	Height float64
}

// Compute returns the arena holding bodyCount bodies at areaPerBody each,
// with the given width/height ratio.
func Compute(bodyCount int, areaPerBody, aspectRatio float64) (Arena, error) {
	if bodyCount <= 0 {
		return Arena{}, fmt.Errorf("%w: body count must be positive, got %d", bench.ErrConfiguration, bodyCount)
	}
	if !(areaPerBody > 0) || math.IsInf(areaPerBody, 0) {
		return Arena{}, fmt.Errorf("%w: area per body must be positive, got %f", bench.ErrConfiguration, areaPerBody)
	}
	if !(aspectRatio > 0) || math.IsInf(aspectRatio, 0) {
		return Arena{}, fmt.Errorf("%w: aspect ratio must be positive, got %f", bench.ErrConfiguration, aspectRatio)
	}

	area := float64(bodyCount) * areaPerBody
	width := math.Sqrt(area * aspectRatio)
	return Arena{Width: width, Height: width / aspectRatio}, nil
}

func (a Arena) Area() float64 { return a.Width * a.Height }

func (a Arena) Center() bench.Vec2 { return bench.V(a.Width/2, a.Height/2) }

func (a Arena) Bounds() bench.AABB { return bench.Box(0, 0, a.Width, a.Height) }
