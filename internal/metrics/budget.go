package metrics

// FrameBudget counts frames whose physics and render time together overran
// the frame period.
type FrameBudget struct {
	name     string
	millis   float64
	overruns int
	samples  int
	worst    float64
}

// NewFrameBudget takes the frame period in seconds.
func NewFrameBudget(period float64) *FrameBudget {
	return &FrameBudget{name: "frame_budget", millis: period * 1000}
}

func (b *FrameBudget) Name() string { return b.name }

func (b *FrameBudget) Observe(physicsMillis, renderMillis float64) {
	b.samples++
	total := physicsMillis + renderMillis
	if total > b.millis {
		b.overruns++
	}
	b.worst = max(b.worst, total)
}

// Value is the fraction of frames that fit the budget. No frames counts as
// a perfect score.
func (b *FrameBudget) Value() float64 {
	if b.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(b.overruns)/float64(b.samples)
}

func (b *FrameBudget) Overruns() int         { return b.overruns }
func (b *FrameBudget) BudgetMillis() float64 { return b.millis }
func (b *FrameBudget) WorstMillis() float64  { return b.worst }

func (b *FrameBudget) Reset() {
	b.overruns = 0
	b.samples = 0
	b.worst = 0
}
