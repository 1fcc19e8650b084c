package metrics

import "fmt"

type Phase int

const (
	Physics Phase = iota
	Render
	numPhases
)

func (p Phase) String() string {
	switch p {
	case Physics:
		return "physics"
	case Render:
		return "render"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// RunningAverage is an unbounded cumulative mean.
type RunningAverage struct {
	Value   float64
	Samples int
}

// fold adds sample as the n-th observation.
func (r *RunningAverage) fold(sample float64, n int) {
	r.Value = (r.Value*float64(n-1) + sample) / float64(n)
	r.Samples = n
}

// Telemetry keeps one RunningAverage per phase, weighted by a single frame
// counter shared across phases. A new frame starts when a phase already
// sampled in the current frame is sampled again, so a Physics/Render pair
// lands on the same counter value.
type Telemetry struct {
	frame int
	seen  [numPhases]bool
	avg   [numPhases]RunningAverage
	last  [numPhases]float64
}

func NewTelemetry() *Telemetry { return &Telemetry{} }

// Update folds a latency sample in milliseconds into phase's average.
// Negative samples are treated as zero.
func (t *Telemetry) Update(phase Phase, sample float64) {
	if phase < 0 || phase >= numPhases {
		return
	}
	if sample < 0 {
		sample = 0
	}
	if t.frame == 0 || t.seen[phase] {
		t.frame++
		t.seen = [numPhases]bool{}
	}
	t.seen[phase] = true
	t.avg[phase].fold(sample, t.frame)
	t.last[phase] = sample
}

func (t *Telemetry) Average(phase Phase) float64 { return t.avg[phase].Value }

func (t *Telemetry) Last(phase Phase) float64 { return t.last[phase] }

// Frame is the shared sample counter; zero before the first Update.
func (t *Telemetry) Frame() int { return t.frame }

type Snapshot struct {
	Frame       int
	PhysicsAvg  float64
	RenderAvg   float64
	PhysicsLast float64
	RenderLast  float64
}

func (t *Telemetry) Snapshot() Snapshot {
	return Snapshot{
		Frame:       t.frame,
		PhysicsAvg:  t.avg[Physics].Value,
		RenderAvg:   t.avg[Render].Value,
		PhysicsLast: t.last[Physics],
		RenderLast:  t.last[Render],
	}
}
