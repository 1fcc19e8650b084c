package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/cullbench/internal/bench"
	"github.com/san-kum/cullbench/internal/sim"
)

const (
	watchPan   = 40.0 // screen pixels per key press
	watchZoom  = 0.1
	sparkWidth = 48
)

type TickMsg time.Time

// Model drives a headless loop from bubbletea, one Step per tick.
type Model struct {
	loop     *sim.Loop
	screen   *Headless
	rec      *Recorder
	minimap  *Minimap
	interval time.Duration
	err      error
	quitting bool
}

// NewModel wires rec into l as an observer. screen must be the renderer l
// was set up with.
func NewModel(l *sim.Loop, screen *Headless, rec *Recorder) Model {
	l.AddObserver(rec)
	return Model{
		loop:     l,
		screen:   screen,
		rec:      rec,
		minimap:  NewMinimap(40, 12, l.Arena().Bounds()),
		interval: time.Duration(l.Scenario().FramePeriod() * float64(time.Second)),
	}
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "left", "a":
			m.screen.Queue(sim.Input{Pan: bench.V(-watchPan, 0)})
		case "right", "d":
			m.screen.Queue(sim.Input{Pan: bench.V(watchPan, 0)})
		case "up", "w":
			m.screen.Queue(sim.Input{Pan: bench.V(0, -watchPan)})
		case "down", "s":
			m.screen.Queue(sim.Input{Pan: bench.V(0, watchPan)})
		case "e", "+", "=":
			m.screen.Queue(sim.Input{Zoom: watchZoom})
		case "x", "-":
			m.screen.Queue(sim.Input{Zoom: -watchZoom})
		case "r":
			m.screen.Queue(sim.Input{ResetView: true})
		}
		return m, nil

	case TickMsg:
		if m.loop.Done() {
			m.quitting = true
			return m, tea.Quit
		}
		if _, err := m.loop.Step(); err != nil {
			m.err = err
			m.quitting = true
			return m, tea.Quit
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) View() string {
	snap := m.loop.Telemetry().Snapshot()

	var s strings.Builder
	s.WriteString(Title.Render(fmt.Sprintf("cullbench · %s · %d bodies", m.loop.EngineName(), m.loop.Registry().Len())) + "\n\n")
	s.WriteString(metric("frame", fmt.Sprintf("%d", snap.Frame)) + "\n")
	s.WriteString(metric("physics", fmt.Sprintf("%.3f ms (avg %.3f)", snap.PhysicsLast, snap.PhysicsAvg)) + "\n")
	s.WriteString(metric("render", fmt.Sprintf("%.3f ms (avg %.3f)", snap.RenderLast, snap.RenderAvg)) + "\n")
	s.WriteString(metric("visible", fmt.Sprintf("%d", len(m.screen.LastFrame()))) + "\n")
	s.WriteString(metric("zoom", fmt.Sprintf("%.1f px/m", m.loop.Camera().Zoom)) + "\n\n")
	s.WriteString(MetricLabel.Render("physics ms") + Sparkline(m.rec.Physics, sparkWidth) + "\n")
	s.WriteString(MetricLabel.Render("render ms") + Sparkline(m.rec.Render, sparkWidth) + "\n")
	if m.err != nil {
		s.WriteString("\n" + Failure.Render(m.err.Error()) + "\n")
	}
	s.WriteString("\n" + KeyHint.Render("arrows/wasd pan · e/x zoom · r reset · q quit"))

	w, h := m.screen.ScreenSize()
	m.minimap.Clear()
	for _, p := range m.screen.LastFrame() {
		m.minimap.Plot(p)
	}
	m.minimap.Frame(m.loop.Camera().WorldAABB(w, h))

	return lipgloss.JoinHorizontal(lipgloss.Top,
		Panel.Render(s.String()),
		Panel.Render(m.minimap.String()),
	) + "\n"
}

// Err is the frame error that stopped the model, if any.
func (m Model) Err() error { return m.err }

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}
