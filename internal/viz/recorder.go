package viz

import "github.com/san-kum/cullbench/internal/sim"

// Recorder is a sim.Observer that keeps per-frame series. With a positive
// Limit only the most recent Limit frames are kept.
type Recorder struct {
	Limit int

	Physics []float64
	Render  []float64
	Visible []float64
}

func NewRecorder(limit int) *Recorder { return &Recorder{Limit: limit} }

func (r *Recorder) OnFrame(f sim.FrameTiming) {
	r.Physics = r.push(r.Physics, f.PhysicsMillis)
	r.Render = r.push(r.Render, f.RenderMillis)
	r.Visible = r.push(r.Visible, float64(f.Visible))
}

func (r *Recorder) Len() int { return len(r.Physics) }

func (r *Recorder) push(s []float64, v float64) []float64 {
	s = append(s, v)
	if r.Limit > 0 && len(s) > r.Limit {
		n := copy(s, s[len(s)-r.Limit:])
		s = s[:n]
	}
	return s
}
