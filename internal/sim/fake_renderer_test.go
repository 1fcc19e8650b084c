package sim_test

import (
	"github.com/san-kum/cullbench/internal/bench"
	"github.com/san-kum/cullbench/internal/camera"
	"github.com/san-kum/cullbench/internal/sim"
)

type drawnCircle struct {
	center bench.Vec2
	radius float64
	color  bench.Color
}

// recordingRenderer closes after a fixed number of frames and records every
// draw call of the most recent frame.
type recordingRenderer struct {
	width, height float64
	closeAfter    int
	inputs        []sim.Input

	frames     int
	inCamera   bool
	cameras    []camera.Camera
	circles    []drawnCircle
	huds       []sim.HUD
	strayDraws int

	endErr error
	closed int
	events *[]string
}

func newRecordingRenderer(closeAfter int, events *[]string) *recordingRenderer {
	return &recordingRenderer{width: 800, height: 600, closeAfter: closeAfter, events: events}
}

func (r *recordingRenderer) ShouldClose() bool { return r.frames >= r.closeAfter }

func (r *recordingRenderer) Input() sim.Input {
	if r.frames < len(r.inputs) {
		return r.inputs[r.frames]
	}
	return sim.Input{}
}

func (r *recordingRenderer) ScreenSize() (float64, float64) { return r.width, r.height }

func (r *recordingRenderer) BeginFrame() error {
	r.circles = r.circles[:0]
	return nil
}

func (r *recordingRenderer) BeginCamera(cam camera.Camera) {
	r.inCamera = true
	r.cameras = append(r.cameras, cam)
}

func (r *recordingRenderer) DrawCircle(center bench.Vec2, radius float64, color bench.Color) {
	if !r.inCamera {
		r.strayDraws++
	}
	r.circles = append(r.circles, drawnCircle{center, radius, color})
}

func (r *recordingRenderer) EndCamera() { r.inCamera = false }

func (r *recordingRenderer) DrawHUD(hud sim.HUD) { r.huds = append(r.huds, hud) }

func (r *recordingRenderer) EndFrame() error {
	r.frames++
	return r.endErr
}

func (r *recordingRenderer) Close() error {
	r.closed++
	if r.events != nil {
		*r.events = append(*r.events, "renderer")
	}
	return nil
}
