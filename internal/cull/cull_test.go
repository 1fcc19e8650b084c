package cull_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/cullbench/internal/arena"
	"github.com/san-kum/cullbench/internal/bench"
	"github.com/san-kum/cullbench/internal/bench/benchtest"
	"github.com/san-kum/cullbench/internal/bodies"
	"github.com/san-kum/cullbench/internal/camera"
	"github.com/san-kum/cullbench/internal/cull"
)

var _ = Describe("Culler", func() {
	var (
		world *benchtest.World
		reg   *bodies.Registry
	)

	BeforeEach(func() {
		world = benchtest.NewWorld()
		reg = bodies.NewRegistry(4)
	})

	Context("with a mocked range query", func() {
		var a, b, c *bodies.Body

		BeforeEach(func() {
			a = &bodies.Body{Handle: benchtest.Ref(1), Radius: 1}
			b = &bodies.Body{Handle: benchtest.Ref(2), Radius: 1}
			c = &bodies.Body{Handle: benchtest.Ref(3), Radius: 1}

			world.SetTag(a.Handle, reg.Add(a))
			world.SetTag(c.Handle, reg.Add(c))
			// b carries a tag the registry never issued
			world.SetTag(b.Handle, 99)

			world.QueryFunc = func(bench.AABB) []bench.Handle {
				return []bench.Handle{a.Handle, b.Handle, c.Handle}
			}
		})

		It("keeps only handles with a known body", func() {
			got := cull.New(world, reg).Cull(bench.Box(0, 0, 10, 10))
			Expect(got).To(ConsistOf(a, c))
		})

		It("counts dropped handles as misses", func() {
			cl := cull.New(world, reg)
			cl.Cull(bench.Box(0, 0, 10, 10))
			cl.Cull(bench.Box(0, 0, 10, 10))
			Expect(cl.Misses()).To(Equal(2))
		})

		It("drops untagged handles", func() {
			world.QueryFunc = func(bench.AABB) []bench.Handle {
				return []bench.Handle{benchtest.Ref(-1), a.Handle}
			}
			Expect(cull.New(world, reg).Cull(bench.Box(0, 0, 1, 1))).To(ConsistOf(a))
		})
	})

	DescribeTable("degenerate boxes yield nothing and skip the query",
		func(box bench.AABB) {
			world.QueryFunc = func(bench.AABB) []bench.Handle {
				Fail("engine queried for an empty box")
				return nil
			}
			got := cull.New(world, reg).Cull(box)
			Expect(got).To(BeEmpty())
			Expect(world.Queries).To(BeEmpty())
		},
		Entry("zero area", bench.Box(1, 1, 1, 1)),
		Entry("zero height", bench.Box(0, 2, 5, 2)),
		Entry("inverted", bench.Box(5, 5, 0, 0)),
		Entry("nan", bench.Box(math.NaN(), 0, 1, 1)),
		Entry("zero zoom", zeroZoomView()),
	)

	Context("with a populated world", func() {
		var (
			spec bodies.Spec
			cl   *cull.Culler
		)

		BeforeEach(func() {
			a, err := arena.Compute(2000, 0.25, 4.0/3.0)
			Expect(err).NotTo(HaveOccurred())
			spec = bodies.Spec{Count: 2000, Arena: a, Radius: 0.1, Speed: 5}

			reg, err = bodies.Populate(world, spec, rand.New(rand.NewSource(3)))
			Expect(err).NotTo(HaveOccurred())
			cl = cull.New(world, reg)
		})

		It("returns every body when the view covers the arena", func() {
			got := cl.Cull(spec.Arena.Bounds())
			Expect(got).To(HaveLen(2000))
			Expect(cl.Misses()).To(Equal(4), "the four walls touch the arena bounds")
		})

		It("returns exactly the bodies overlapping the camera view", func() {
			cam := camera.New(spec.Arena.Center(), bench.V(400, 300), 100)
			box := cam.WorldAABB(800, 600)

			want := 0
			for _, b := range reg.All() {
				p := world.Position(b.Handle)
				r := bench.V(b.Radius, b.Radius)
				if box.Overlaps(bench.AABB{Min: p.Sub(r), Max: p.Add(r)}) {
					want++
				}
			}

			got := cl.Visible(cam, 800, 600)
			Expect(got).To(HaveLen(want))
			Expect(len(got)).To(BeNumerically("<", reg.Len()))
			for _, b := range got {
				Expect(b.Radius).To(Equal(0.1))
			}
		})

		It("shrinks the visible set as the camera zooms in", func() {
			cam := camera.New(spec.Arena.Center(), bench.V(400, 300), 50)
			wide := len(cl.Visible(cam, 800, 600))

			cam.ZoomBy(1)
			narrow := len(cl.Visible(cam, 800, 600))
			Expect(narrow).To(BeNumerically("<", wide))
		})

		It("finds nothing once panned far away", func() {
			cam := camera.New(spec.Arena.Center(), bench.V(400, 300), 100)
			cam.Pan(bench.V(1e4, 1e4))
			Expect(cl.Visible(cam, 800, 600)).To(BeEmpty())
		})
	})
})

// zeroZoomView is what a camera zoomed all the way out to 0 covers.
func zeroZoomView() bench.AABB {
	cam := camera.New(bench.V(4, 3), bench.V(400, 300), 100)
	cam.ZoomBy(-1)
	return cam.WorldAABB(800, 600)
}
