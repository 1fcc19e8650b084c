package sim_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/cullbench/internal/bench"
	"github.com/san-kum/cullbench/internal/bench/benchtest"
	"github.com/san-kum/cullbench/internal/config"
	"github.com/san-kum/cullbench/internal/metrics"
	"github.com/san-kum/cullbench/internal/sim"
)

// tickingClock advances by step on every reading.
func tickingClock(step time.Duration) func() time.Time {
	t := time.Unix(0, 0)
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}

var _ = Describe("Loop", func() {
	var (
		cfg      config.Scenario
		world    *benchtest.World
		renderer *recordingRenderer
		events   []string
		opened   []string
		deps     sim.Deps
	)

	BeforeEach(func() {
		cfg = config.Default().WithBodies(400)
		cfg.Seed = 5
		events = nil
		opened = nil
		world = benchtest.NewWorld()
		renderer = newRecordingRenderer(3, &events)

		deps = sim.Deps{
			OpenRenderer: func(config.Scenario) (sim.Renderer, error) {
				opened = append(opened, "renderer")
				return renderer, nil
			},
			OpenWorld: func(config.Scenario) (bench.World, error) {
				opened = append(opened, "world")
				return world, nil
			},
			Clock: tickingClock(2 * time.Millisecond),
		}
	})

	Describe("Setup", func() {
		DescribeTable("rejects non-positive body counts before opening anything",
			func(n int) {
				_, err := sim.Setup(cfg.WithBodies(n), deps)
				Expect(err).To(MatchError(bench.ErrConfiguration))
				Expect(opened).To(BeEmpty())
			},
			Entry("zero", 0),
			Entry("negative", -10),
		)

		It("opens the renderer before the world and populates it", func() {
			loop, err := sim.Setup(cfg, deps)
			Expect(err).NotTo(HaveOccurred())
			Expect(opened).To(Equal([]string{"renderer", "world"}))
			Expect(world.Circles).To(HaveLen(400))
			Expect(world.Walls).To(HaveLen(4))
			Expect(loop.Registry().Len()).To(Equal(400))
		})

		It("centres the camera on the arena at the configured scale", func() {
			loop, err := sim.Setup(cfg, deps)
			Expect(err).NotTo(HaveOccurred())

			cam := loop.Camera()
			Expect(cam.Target).To(Equal(loop.Arena().Center()))
			Expect(cam.Offset).To(Equal(bench.V(400, 300)))
			Expect(cam.Zoom).To(Equal(cfg.Screen.PixelsPerMeter))
		})

		It("releases the renderer when the world cannot be opened", func() {
			deps.OpenWorld = func(config.Scenario) (bench.World, error) {
				return nil, errors.New("no world")
			}
			_, err := sim.Setup(cfg, deps)
			Expect(err).To(MatchError(bench.ErrResourceAcquisition))
			Expect(renderer.closed).To(Equal(1))
		})

		It("releases everything when population fails", func() {
			world.FailCircleAt = 10
			_, err := sim.Setup(cfg, deps)
			Expect(err).To(MatchError(bench.ErrResourceAcquisition))
			Expect(world.Closed).To(Equal(1))
			Expect(renderer.closed).To(Equal(1))
		})

		It("reports release failures alongside the population failure", func() {
			stuck := errors.New("world stuck")
			world.FailCircleAt = 10
			world.CloseErr = stuck
			_, err := sim.Setup(cfg, deps)
			Expect(err).To(MatchError(bench.ErrResourceAcquisition))
			Expect(err).To(MatchError(stuck))
			Expect(renderer.closed).To(Equal(1))
		})
	})

	Describe("Run", func() {
		var loop *sim.Loop

		BeforeEach(func() {
			var err error
			loop, err = sim.Setup(cfg, deps)
			Expect(err).NotTo(HaveOccurred())
		})

		It("runs until the renderer asks to close", func() {
			Expect(loop.Run(context.Background())).To(Succeed())
			Expect(renderer.frames).To(Equal(3))
			Expect(world.Steps).To(Equal(3))
			Expect(loop.Telemetry().Frame()).To(Equal(3))
		})

		It("draws exactly the culled set inside the camera bracket", func() {
			Expect(loop.Run(context.Background())).To(Succeed())

			box := loop.Camera().WorldAABB(800, 600)
			want := 0
			for _, c := range world.Circles {
				r := bench.V(c.Radius, c.Radius)
				if box.Overlaps(bench.AABB{Min: c.Position.Sub(r), Max: c.Position.Add(r)}) {
					want++
				}
			}

			Expect(want).To(BeNumerically(">", 0))
			Expect(want).To(BeNumerically("<", 400))
			Expect(renderer.circles).To(HaveLen(want))
			Expect(renderer.strayDraws).To(BeZero())
			Expect(world.Queries).To(HaveLen(3))
			Expect(world.Queries[2]).To(Equal(box))
		})

		It("feeds both phases once per frame", func() {
			var timings []sim.FrameTiming
			loop.AddObserver(sim.ObserverFunc(func(f sim.FrameTiming) {
				timings = append(timings, f)
			}))

			Expect(loop.Run(context.Background())).To(Succeed())
			Expect(timings).To(HaveLen(3))
			for i, f := range timings {
				Expect(f.Frame).To(Equal(i + 1))
				Expect(f.PhysicsMillis).To(BeNumerically("~", 2, 1e-9))
				Expect(f.RenderMillis).To(BeNumerically("~", 2, 1e-9))
			}

			tel := loop.Telemetry()
			Expect(tel.Average(metrics.Physics)).To(BeNumerically("~", 2, 1e-9))
			Expect(tel.Average(metrics.Render)).To(BeNumerically("~", 2, 1e-9))
		})

		It("reports the previous render average on the HUD", func() {
			Expect(loop.Run(context.Background())).To(Succeed())
			Expect(renderer.huds).To(HaveLen(3))
			Expect(renderer.huds[0].RenderAvg).To(BeZero())
			Expect(renderer.huds[2].RenderAvg).To(BeNumerically("~", 2, 1e-9))
			Expect(renderer.huds[2].Bodies).To(Equal(400))
			Expect(renderer.huds[2].Engine).To(Equal("fake"))
			Expect(renderer.huds[2].Hints).To(Equal(sim.Hints))
		})

		It("forwards pan and zoom input to the camera", func() {
			renderer.inputs = []sim.Input{
				{Pan: bench.V(100, 0)},
				{Zoom: 1},
				{},
			}
			start := loop.Camera()
			Expect(loop.Run(context.Background())).To(Succeed())

			cam := loop.Camera()
			Expect(cam.Target.X).To(BeNumerically("~", start.Target.X+100/start.Zoom, 1e-9))
			Expect(cam.Zoom).To(BeNumerically("~", start.Zoom*2, 1e-9))
			Expect(renderer.cameras[0].Target).To(Equal(cam.Target))
		})

		It("ignores pans while zoomed out to nothing", func() {
			renderer.inputs = []sim.Input{{Zoom: -1}, {Pan: bench.V(50, 50)}, {}}
			start := loop.Camera()
			Expect(loop.Run(context.Background())).To(Succeed())

			cam := loop.Camera()
			Expect(cam.Zoom).To(BeZero())
			Expect(cam.Target).To(Equal(start.Target))
			Expect(renderer.circles).To(BeEmpty())
		})

		It("restores the home view on reset", func() {
			renderer.inputs = []sim.Input{{Pan: bench.V(500, 500), Zoom: 3}, {ResetView: true}}
			home := loop.Camera()
			Expect(loop.Run(context.Background())).To(Succeed())
			Expect(loop.Camera()).To(Equal(home))
		})

		It("stops between frames once the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			loop.AddObserver(sim.ObserverFunc(func(f sim.FrameTiming) {
				if f.Frame == 1 {
					cancel()
				}
			}))
			Expect(loop.Run(ctx)).To(Succeed())
			Expect(world.Steps).To(Equal(1))
		})

		It("fails the frame on a physics error without retrying", func() {
			world.StepErr = errors.New("solver exploded")
			err := loop.Run(context.Background())

			var fe *sim.FrameError
			Expect(errors.As(err, &fe)).To(BeTrue())
			Expect(fe.Frame).To(Equal(1))
			Expect(fe.Phase).To(Equal(metrics.Physics))
			Expect(err).To(MatchError(bench.ErrCollaborator))
			Expect(world.Steps).To(Equal(1))
		})

		It("fails the frame on a render error", func() {
			renderer.endErr = errors.New("swap failed")
			err := loop.Run(context.Background())

			var fe *sim.FrameError
			Expect(errors.As(err, &fe)).To(BeTrue())
			Expect(fe.Phase).To(Equal(metrics.Render))
		})
	})

	Describe("Close", func() {
		It("releases bodies, then the world, then the renderer, once", func() {
			loop, err := sim.Setup(cfg, deps)
			Expect(err).NotTo(HaveOccurred())

			world.OnClose = func() {
				Expect(loop.Registry().Len()).To(BeZero())
				events = append(events, "world")
			}

			Expect(loop.Close()).To(Succeed())
			Expect(loop.Close()).To(Succeed())
			Expect(events).To(Equal([]string{"world", "renderer"}))
			Expect(world.Closed).To(Equal(1))
			Expect(renderer.closed).To(Equal(1))
			Expect(loop.Done()).To(BeTrue())

			_, err = loop.Step()
			Expect(err).To(MatchError(bench.ErrCollaborator))
		})
	})
})
