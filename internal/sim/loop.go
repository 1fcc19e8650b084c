package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/san-kum/cullbench/internal/arena"
	"github.com/san-kum/cullbench/internal/bench"
	"github.com/san-kum/cullbench/internal/bodies"
	"github.com/san-kum/cullbench/internal/camera"
	"github.com/san-kum/cullbench/internal/config"
	"github.com/san-kum/cullbench/internal/cull"
	"github.com/san-kum/cullbench/internal/metrics"
)

// Deps are the collaborators Setup acquires, in order.
type Deps struct {
	OpenRenderer func(cfg config.Scenario) (Renderer, error)
	OpenWorld    func(cfg config.Scenario) (bench.World, error)

	Clock  func() time.Time // defaults to time.Now
	Logger *log.Logger      // defaults to a discarding logger
}

// Loop owns every piece of per-run state. It is driven from a single
// goroutine.
type Loop struct {
	cfg       config.Scenario
	arena     arena.Arena
	world     bench.World
	renderer  Renderer
	registry  *bodies.Registry
	camera    camera.Camera
	home      camera.Camera
	culler    *cull.Culler
	telemetry *metrics.Telemetry
	observers []Observer

	now    func() time.Time
	log    *log.Logger
	frame  int
	closed bool
}

// Setup validates cfg, then opens the renderer, the physics world and the
// body population. Configuration errors are reported before any
// collaborator is opened; a later failure releases what was acquired.
func Setup(cfg config.Scenario, deps Deps) (*Loop, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a, err := arena.Compute(cfg.Bodies, cfg.AreaPerBody, cfg.AspectRatio)
	if err != nil {
		return nil, err
	}

	l := &Loop{
		cfg:       cfg,
		arena:     a,
		telemetry: metrics.NewTelemetry(),
		now:       deps.Clock,
		log:       deps.Logger,
	}
	if l.now == nil {
		l.now = time.Now
	}
	if l.log == nil {
		l.log = log.New(io.Discard)
	}

	l.renderer, err = deps.OpenRenderer(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: renderer: %w", bench.ErrResourceAcquisition, err)
	}

	l.world, err = deps.OpenWorld(cfg)
	if err != nil {
		l.renderer.Close()
		return nil, fmt.Errorf("%w: physics world: %w", bench.ErrResourceAcquisition, err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	l.registry, err = bodies.Populate(l.world, bodies.Spec{
		Count:    cfg.Bodies,
		Arena:    a,
		Radius:   cfg.Radius,
		Speed:    cfg.Speed,
		Material: cfg.BodyMaterial(),
	}, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, errors.Join(err, l.world.Close(), l.renderer.Close())
	}

	w, h := l.renderer.ScreenSize()
	l.home = camera.New(a.Center(), bench.V(w/2, h/2), cfg.Screen.PixelsPerMeter)
	l.camera = l.home
	l.culler = cull.New(l.world, l.registry)

	l.log.Info("arena ready",
		"engine", l.world.Name(),
		"bodies", l.registry.Len(),
		"width", fmt.Sprintf("%.2fm", a.Width),
		"height", fmt.Sprintf("%.2fm", a.Height),
		"seed", seed,
	)
	return l, nil
}

func (l *Loop) AddObserver(o Observer) { l.observers = append(l.observers, o) }

// Run steps frames until the renderer asks to close or ctx is done. Both
// are only checked between frames. A graceful stop returns nil.
func (l *Loop) Run(ctx context.Context) error {
	for !l.Done() {
		select {
		case <-ctx.Done():
			l.log.Info("shutdown requested", "frame", l.frame)
			return nil
		default:
		}

		if _, err := l.Step(); err != nil {
			return err
		}
	}
	l.log.Info("renderer closed", "frames", l.frame)
	return nil
}

func (l *Loop) Done() bool { return l.closed || l.renderer.ShouldClose() }

// Step runs one frame: input, physics, render, telemetry.
func (l *Loop) Step() (FrameTiming, error) {
	if l.closed {
		return FrameTiming{}, fmt.Errorf("%w: step after close", bench.ErrCollaborator)
	}
	l.frame++
	l.applyInput(l.renderer.Input())

	start := l.now()
	if err := l.world.Step(l.cfg.FramePeriod(), l.cfg.Iterations()); err != nil {
		return FrameTiming{}, collaboratorFailure(l.frame, metrics.Physics, err)
	}
	physics := millis(l.now().Sub(start))
	l.telemetry.Update(metrics.Physics, physics)

	start = l.now()
	visible, err := l.render(physics)
	if err != nil {
		return FrameTiming{}, collaboratorFailure(l.frame, metrics.Render, err)
	}
	render := millis(l.now().Sub(start))
	l.telemetry.Update(metrics.Render, render)

	ft := FrameTiming{Frame: l.frame, PhysicsMillis: physics, RenderMillis: render, Visible: visible}
	for _, o := range l.observers {
		o.OnFrame(ft)
	}
	return ft, nil
}

func (l *Loop) applyInput(in Input) {
	if in.ResetView {
		l.camera = l.home
	}
	// At zero zoom a screen-space pan has no world-space size.
	if !in.Pan.IsZero() && l.camera.Zoom != 0 {
		l.camera.Pan(in.Pan.Scale(1 / l.camera.Zoom))
	}
	if in.Zoom != 0 {
		l.camera.ZoomBy(in.Zoom)
	}
}

func (l *Loop) render(physics float64) (int, error) {
	if err := l.renderer.BeginFrame(); err != nil {
		return 0, err
	}

	w, h := l.renderer.ScreenSize()
	visible := l.culler.Visible(l.camera, w, h)

	l.renderer.BeginCamera(l.camera)
	for _, b := range visible {
		l.renderer.DrawCircle(l.world.Position(b.Handle), b.Radius, b.Color)
	}
	l.renderer.EndCamera()

	l.renderer.DrawHUD(HUD{
		Engine:        l.world.Name(),
		Bodies:        l.registry.Len(),
		Visible:       len(visible),
		PhysicsMillis: physics,
		PhysicsAvg:    l.telemetry.Average(metrics.Physics),
		RenderAvg:     l.telemetry.Average(metrics.Render),
		Zoom:          l.camera.Zoom,
		Hints:         Hints,
	})

	return len(visible), l.renderer.EndFrame()
}

// Close releases the body registry, the world and the renderer, in that
// order and at most once.
func (l *Loop) Close() error {
	if l.closed {
		return nil
	}
	l.closed = true

	s := l.telemetry.Snapshot()
	l.log.Info("benchmark finished",
		"frames", s.Frame,
		"physics_avg_ms", fmt.Sprintf("%.3f", s.PhysicsAvg),
		"render_avg_ms", fmt.Sprintf("%.3f", s.RenderAvg),
		"cull_misses", l.culler.Misses(),
	)

	l.registry.Release()
	return errors.Join(l.world.Close(), l.renderer.Close())
}

func (l *Loop) Telemetry() *metrics.Telemetry { return l.telemetry }
func (l *Loop) Camera() camera.Camera         { return l.camera }
func (l *Loop) Arena() arena.Arena            { return l.arena }
func (l *Loop) Registry() *bodies.Registry    { return l.registry }
func (l *Loop) Scenario() config.Scenario     { return l.cfg }
func (l *Loop) EngineName() string            { return l.world.Name() }
func (l *Loop) Frame() int                    { return l.frame }
func (l *Loop) CullMisses() int               { return l.culler.Misses() }

func millis(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}
