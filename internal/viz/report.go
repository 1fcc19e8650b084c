package viz

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/cullbench/internal/metrics"
	"github.com/san-kum/cullbench/internal/sim"
)

// Result is what one benchmark run leaves behind once the loop is closed.
type Result struct {
	Engine      string
	Bodies      int
	Frames      int
	Misses      int
	ArenaW      float64
	ArenaH      float64
	Telemetry   metrics.Snapshot
	Recorder    *Recorder
	Draws       int
	FinalZoom   float64
	Interrupted bool

	PhysicsStats metrics.Stats
	RenderStats  metrics.Stats
	Budget       *metrics.FrameBudget
}

// Summarize captures a run's figures. Call it before closing the loop: the
// registry is emptied on close.
func Summarize(l *sim.Loop, rec *Recorder, h *Headless) Result {
	a := l.Arena()
	r := Result{
		Engine:    l.EngineName(),
		Bodies:    l.Registry().Len(),
		Frames:    l.Frame(),
		Misses:    l.CullMisses(),
		ArenaW:    a.Width,
		ArenaH:    a.Height,
		Telemetry: l.Telemetry().Snapshot(),
		Recorder:  rec,
		FinalZoom: l.Camera().Zoom,
	}
	if h != nil {
		r.Draws = h.Draws()
	}
	r.Budget = metrics.NewFrameBudget(l.Scenario().FramePeriod())
	if rec != nil {
		r.PhysicsStats = metrics.Summarize(rec.Physics)
		r.RenderStats = metrics.Summarize(rec.Render)
		for i := range rec.Physics {
			r.Budget.Observe(rec.Physics[i], rec.Render[i])
		}
	}
	return r
}

// MeanVisible is the average number of bodies drawn per frame.
func (r Result) MeanVisible() float64 {
	if r.Recorder == nil || len(r.Recorder.Visible) == 0 {
		return 0
	}
	var sum float64
	for _, v := range r.Recorder.Visible {
		sum += v
	}
	return sum / float64(len(r.Recorder.Visible))
}

// Report writes a styled summary of r followed by plots of the per-frame
// timings.
func Report(w io.Writer, r Result) error {
	var s strings.Builder
	s.WriteString(Title.Render(fmt.Sprintf("cullbench · %s", r.Engine)) + "\n")
	s.WriteString(metric("bodies", fmt.Sprintf("%d", r.Bodies)) + "\n")
	s.WriteString(metric("arena", fmt.Sprintf("%.2f x %.2f m", r.ArenaW, r.ArenaH)) + "\n")
	s.WriteString(metric("frames", fmt.Sprintf("%d", r.Frames)) + "\n")
	s.WriteString(metric("physics avg", fmt.Sprintf("%.3f ms", r.Telemetry.PhysicsAvg)) + "\n")
	s.WriteString(metric("render avg", fmt.Sprintf("%.3f ms", r.Telemetry.RenderAvg)) + "\n")
	s.WriteString(metric("physics p50/p95", fmt.Sprintf("%.3f / %.3f ms", r.PhysicsStats.P50, r.PhysicsStats.P95)) + "\n")
	s.WriteString(metric("render p50/p95", fmt.Sprintf("%.3f / %.3f ms", r.RenderStats.P50, r.RenderStats.P95)) + "\n")
	if r.Budget != nil {
		s.WriteString(metric("within budget", fmt.Sprintf("%.1f%% of %.2f ms frames", r.Budget.Value()*100, r.Budget.BudgetMillis())) + "\n")
	}
	s.WriteString(metric("visible avg", fmt.Sprintf("%.1f", r.MeanVisible())) + "\n")
	s.WriteString(metric("cull misses", fmt.Sprintf("%d", r.Misses)))
	if r.Interrupted {
		s.WriteString("\n" + Failure.Render("interrupted"))
	}

	if _, err := fmt.Fprintln(w, Panel.Render(s.String())); err != nil {
		return err
	}

	if r.Recorder == nil || r.Recorder.Len() < 2 {
		return nil
	}
	for _, p := range []struct {
		data    []float64
		caption string
	}{
		{r.Recorder.Physics, "physics step (ms/frame)"},
		{r.Recorder.Render, "render (ms/frame)"},
	} {
		graph := asciigraph.Plot(p.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Precision(3),
			asciigraph.Caption(p.caption),
		)
		if _, err := fmt.Fprintf(w, "\n%s\n", graph); err != nil {
			return err
		}
	}
	return nil
}

// Compare writes one table row per result.
func Compare(w io.Writer, results []Result) error {
	if len(results) == 0 {
		return nil
	}

	best := 0
	for i, r := range results {
		if r.Telemetry.PhysicsAvg < results[best].Telemetry.PhysicsAvg {
			best = i
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(Subtle).
		Headers("ENGINE", "BODIES", "FRAMES", "PHYSICS MS", "P95", "RENDER MS", "VISIBLE", "MISSES").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return Title.Padding(0, 1)
			case row == best:
				return MetricValue.Padding(0, 1)
			default:
				return lipgloss.NewStyle().Padding(0, 1)
			}
		})
	for _, r := range results {
		t.Row(
			r.Engine,
			fmt.Sprintf("%d", r.Bodies),
			fmt.Sprintf("%d", r.Frames),
			fmt.Sprintf("%.3f", r.Telemetry.PhysicsAvg),
			fmt.Sprintf("%.3f", r.PhysicsStats.P95),
			fmt.Sprintf("%.3f", r.Telemetry.RenderAvg),
			fmt.Sprintf("%.1f", r.MeanVisible()),
			fmt.Sprintf("%d", r.Misses),
		)
	}

	_, err := fmt.Fprintln(w, t.String())
	return err
}
