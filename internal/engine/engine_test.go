package engine_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/cullbench/internal/arena"
	"github.com/san-kum/cullbench/internal/bench"
	"github.com/san-kum/cullbench/internal/bodies"
	"github.com/san-kum/cullbench/internal/cull"
	"github.com/san-kum/cullbench/internal/engine"
)

var material = bench.Material{Density: 1, Friction: 0.3, Restitution: 0.7}

func circleAt(x, y float64) bench.CircleDef {
	return bench.CircleDef{Position: bench.V(x, y), Radius: 0.5, Material: material}
}

var _ = DescribeTableSubtree("World adapters",
	func(open func() bench.World) {
		var world bench.World

		BeforeEach(func() {
			world = open()
			DeferCleanup(func() {
				Expect(world.Close()).To(Succeed())
			})
		})

		It("returns bodies overlapping the query box", func() {
			near, err := world.CreateCircle(circleAt(5, 5))
			Expect(err).NotTo(HaveOccurred())
			_, err = world.CreateCircle(circleAt(50, 50))
			Expect(err).NotTo(HaveOccurred())

			got := world.QueryRange(bench.Box(4, 4, 6, 6), nil)
			Expect(got).To(ConsistOf(near))
		})

		It("returns nothing for a box away from every body", func() {
			_, err := world.CreateCircle(circleAt(5, 5))
			Expect(err).NotTo(HaveOccurred())
			Expect(world.QueryRange(bench.Box(100, 100, 101, 101), nil)).To(BeEmpty())
		})

		It("appends to the destination slice", func() {
			_, err := world.CreateCircle(circleAt(1, 1))
			Expect(err).NotTo(HaveOccurred())

			dst := []bench.Handle{"sentinel"}
			got := world.QueryRange(bench.Box(0, 0, 2, 2), dst)
			Expect(got).To(HaveLen(2))
			Expect(got[0]).To(Equal(bench.Handle("sentinel")))
		})

		It("round-trips tags and leaves walls untagged", func() {
			h, err := world.CreateCircle(circleAt(2, 2))
			Expect(err).NotTo(HaveOccurred())
			wall, err := world.CreateWall(bench.WallDef{Center: bench.V(0, -1), HalfWidth: 10, HalfHeight: 0.05})
			Expect(err).NotTo(HaveOccurred())

			_, ok := world.Tag(h)
			Expect(ok).To(BeFalse())

			world.SetTag(h, 42)
			id, ok := world.Tag(h)
			Expect(ok).To(BeTrue())
			Expect(id).To(Equal(bench.BodyID(42)))

			_, ok = world.Tag(wall)
			Expect(ok).To(BeFalse())
		})

		It("advances bodies along their velocity", func() {
			def := circleAt(3, 3)
			def.Velocity = bench.V(1, 0)
			h, err := world.CreateCircle(def)
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < 60; i++ {
				Expect(world.Step(1.0/60.0, bench.Iterations{Velocity: 6, Position: 2})).To(Succeed())
			}
			p := world.Position(h)
			Expect(p.X).To(BeNumerically("~", 4, 0.05))
			Expect(p.Y).To(BeNumerically("~", 3, 0.05))
		})

		It("keeps a populated arena closed and cullable", func() {
			a, err := arena.Compute(300, 0.25, 4.0/3.0)
			Expect(err).NotTo(HaveOccurred())
			reg, err := bodies.Populate(world, bodies.Spec{
				Count: 300, Arena: a, Radius: 0.1, Speed: 5, Material: material,
			}, rand.New(rand.NewSource(11)))
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < 120; i++ {
				Expect(world.Step(1.0/60.0, bench.Iterations{Velocity: 6, Position: 2})).To(Succeed())
			}

			margin := bench.V(1, 1)
			outer := bench.AABB{Min: bench.V(0, 0).Sub(margin), Max: bench.V(a.Width, a.Height).Add(margin)}
			for _, b := range reg.All() {
				Expect(outer.Contains(world.Position(b.Handle))).To(BeTrue())
			}

			c := cull.New(world, reg)
			Expect(c.Cull(outer)).To(HaveLen(300))
			Expect(c.Misses()).To(Equal(4))
		})
	},
	Entry("box2d", func() bench.World { return engine.NewBox2D() }),
	Entry("chipmunk", func() bench.World { return engine.NewChipmunk() }),
)

var _ = Describe("Registry", func() {
	It("opens registered engines", func() {
		reg := engine.NewRegistry()
		Expect(reg.List()).To(Equal([]string{"box2d", "chipmunk"}))

		w, err := reg.Open("box2d")
		Expect(err).NotTo(HaveOccurred())
		Expect(w.Name()).To(Equal("box2d"))
	})

	It("rejects unknown engines as configuration errors", func() {
		_, err := engine.NewRegistry().Open("havok")
		Expect(err).To(MatchError(bench.ErrConfiguration))
	})
})
