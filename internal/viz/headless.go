package viz

import (
	"errors"

	"github.com/san-kum/cullbench/internal/bench"
	"github.com/san-kum/cullbench/internal/camera"
	"github.com/san-kum/cullbench/internal/config"
	"github.com/san-kum/cullbench/internal/sim"
)

var errNotOpen = errors.New("headless renderer closed")

// Headless is a sim.Renderer that draws nothing. It asks the loop to stop
// after a fixed frame budget and remembers where the last frame's circles
// would have gone.
type Headless struct {
	width, height float64
	budget        int

	frames   int
	draws    int
	last     []bench.Vec2
	next     []bench.Vec2
	pending  sim.Input
	inCamera bool
	closed   bool
}

// NewHeadless sizes the virtual screen from cfg. A budget of zero or less
// never closes on its own.
func NewHeadless(cfg config.Scenario) *Headless {
	return &Headless{
		width:  float64(cfg.Screen.Width),
		height: float64(cfg.Screen.Height),
		budget: cfg.Frames,
	}
}

func (h *Headless) ShouldClose() bool {
	return h.closed || (h.budget > 0 && h.frames >= h.budget)
}

func (h *Headless) ScreenSize() (float64, float64) { return h.width, h.height }

// Input hands over whatever was queued since the previous frame.
func (h *Headless) Input() sim.Input {
	in := h.pending
	h.pending = sim.Input{}
	return in
}

// Queue merges in into the input for the next frame. Zoom factors compound
// the same way they would over consecutive frames.
func (h *Headless) Queue(in sim.Input) {
	h.pending.Pan = h.pending.Pan.Add(in.Pan)
	h.pending.Zoom = (1+h.pending.Zoom)*(1+in.Zoom) - 1
	h.pending.ResetView = h.pending.ResetView || in.ResetView
}

func (h *Headless) BeginFrame() error {
	if h.closed {
		return errNotOpen
	}
	h.next = h.next[:0]
	return nil
}

func (h *Headless) BeginCamera(camera.Camera) { h.inCamera = true }

func (h *Headless) DrawCircle(center bench.Vec2, _ float64, _ bench.Color) {
	if !h.inCamera {
		return
	}
	h.draws++
	h.next = append(h.next, center)
}

func (h *Headless) EndCamera()      { h.inCamera = false }
func (h *Headless) DrawHUD(sim.HUD) {}

func (h *Headless) EndFrame() error {
	if h.closed {
		return errNotOpen
	}
	h.frames++
	h.last, h.next = h.next, h.last
	return nil
}

func (h *Headless) Close() error {
	h.closed = true
	return nil
}

func (h *Headless) Frames() int { return h.frames }
func (h *Headless) Draws() int  { return h.draws }

// LastFrame returns the circle centers drawn in the most recent completed
// frame. The slice is reused by the next frame.
func (h *Headless) LastFrame() []bench.Vec2 { return h.last }
