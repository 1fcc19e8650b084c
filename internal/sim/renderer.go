package sim

import (
	"github.com/san-kum/cullbench/internal/bench"
	"github.com/san-kum/cullbench/internal/camera"
)

// Input is one frame's worth of operator intent.
type Input struct {
	Pan       bench.Vec2 // screen pixels
	Zoom      float64    // passed to Camera.ZoomBy
	ResetView bool
}

// HUD is the text overlay drawn every frame. Frame rate is left to the
// renderer.
type HUD struct {
	Engine        string
	Bodies        int
	Visible       int
	PhysicsMillis float64
	PhysicsAvg    float64
	RenderAvg     float64
	Zoom          float64
	Hints         string
}

const Hints = "ARROWS/WASD: PAN  Q/E/WHEEL: ZOOM  R: RESET VIEW"

// Renderer is the 2D rendering engine contract. DrawCircle is only called
// between BeginCamera and EndCamera, with world-space arguments.
type Renderer interface {
	ShouldClose() bool
	Input() Input
	ScreenSize() (w, h float64)

	BeginFrame() error
	BeginCamera(cam camera.Camera)
	DrawCircle(center bench.Vec2, radius float64, color bench.Color)
	EndCamera()
	DrawHUD(hud HUD)
	EndFrame() error

	Close() error
}

type FrameTiming struct {
	Frame         int
	PhysicsMillis float64
	RenderMillis  float64
	Visible       int
}

type Observer interface {
	OnFrame(f FrameTiming)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(FrameTiming)

func (fn ObserverFunc) OnFrame(f FrameTiming) { fn(f) }
