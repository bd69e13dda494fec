package mpc_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/renegade-fi/mpc-stark/algebra"
	"github.com/renegade-fi/mpc-stark/fabric"
	"github.com/renegade-fi/mpc-stark/mpc"
)

func shareScalar(v algebra.Scalar) (s0, s1 algebra.Scalar) {
	s0 = algebra.RandomScalar()
	s1 = v.Sub(s0)
	return s0, s1
}

func sharePoint(v algebra.Point) (p0, p1 algebra.Point) {
	p0 = algebra.Generator().ScalarMul(algebra.RandomScalar())
	p1 = v.Sub(p0)
	return p0, p1
}

var _ = Describe("Scalar", func() {
	var fab0, fab1 *fabric.Fabric

	BeforeEach(func() {
		fab0, fab1, _, _ = fabric.NewPairedTestFabrics(0)
	})

	AfterEach(func() {
		fab0.Shutdown()
		fab1.Shutdown()
	})

	It("adds two shared scalars and opens the sum", func() {
		x0, x1 := shareScalar(algebra.NewScalarFromUint64(10))
		y0, y1 := shareScalar(algebra.NewScalarFromUint64(32))

		sx0 := mpc.NewSharedScalar(fab0, fab0.AllocateScalar(x0))
		sy0 := mpc.NewSharedScalar(fab0, fab0.AllocateScalar(y0))
		sx1 := mpc.NewSharedScalar(fab1, fab1.AllocateScalar(x1))
		sy1 := mpc.NewSharedScalar(fab1, fab1.AllocateScalar(y1))

		// Both sides' Open() calls must be issued before either side blocks
		// on Await: the peer's matching network exchange is only scheduled
		// once its own Open() runs, not when the Await is called.
		h0 := sx0.Add(sy0).Open()
		h1 := sx1.Add(sy1).Open()
		sum0 := h0.Await()
		sum1 := h1.Await()

		Expect(sum0.Eq(algebra.NewScalarFromUint64(42))).To(BeTrue())
		Expect(sum1.Eq(algebra.NewScalarFromUint64(42))).To(BeTrue())
	})

	It("only folds a public addend into the king's share", func() {
		x0, x1 := shareScalar(algebra.NewScalarFromUint64(10))
		c := algebra.NewScalarFromUint64(5)

		sx0 := mpc.NewSharedScalar(fab0, fab0.AllocateScalar(x0))
		sx1 := mpc.NewSharedScalar(fab1, fab1.AllocateScalar(x1))

		h0 := sx0.AddPublic(c).Open()
		h1 := sx1.AddPublic(c).Open()
		got0 := h0.Await()
		got1 := h1.Await()

		Expect(got0.Eq(algebra.NewScalarFromUint64(15))).To(BeTrue())
		Expect(got1.Eq(algebra.NewScalarFromUint64(15))).To(BeTrue())
	})

	It("multiplies by a public constant", func() {
		x0, x1 := shareScalar(algebra.NewScalarFromUint64(6))
		c := algebra.NewScalarFromUint64(7)

		sx0 := mpc.NewSharedScalar(fab0, fab0.AllocateScalar(x0))
		sx1 := mpc.NewSharedScalar(fab1, fab1.AllocateScalar(x1))

		h0 := sx0.MulPublic(c).Open()
		h1 := sx1.MulPublic(c).Open()
		got0 := h0.Await()
		got1 := h1.Await()

		Expect(got0.Eq(algebra.NewScalarFromUint64(42))).To(BeTrue())
		Expect(got1.Eq(algebra.NewScalarFromUint64(42))).To(BeTrue())
	})
})

var _ = Describe("Point", func() {
	var fab0, fab1 *fabric.Fabric

	BeforeEach(func() {
		fab0, fab1, _, _ = fabric.NewPairedTestFabrics(0)
	})

	AfterEach(func() {
		fab0.Shutdown()
		fab1.Shutdown()
	})

	It("adds two shared points and opens the sum", func() {
		g := algebra.Generator()
		two := g.ScalarMul(algebra.NewScalarFromUint64(2))
		three := g.ScalarMul(algebra.NewScalarFromUint64(3))

		a0, a1 := sharePoint(two)
		b0, b1 := sharePoint(three)

		sa0 := mpc.NewSharedPoint(fab0, fab0.AllocatePoint(a0))
		sb0 := mpc.NewSharedPoint(fab0, fab0.AllocatePoint(b0))
		sa1 := mpc.NewSharedPoint(fab1, fab1.AllocatePoint(a1))
		sb1 := mpc.NewSharedPoint(fab1, fab1.AllocatePoint(b1))

		want := g.ScalarMul(algebra.NewScalarFromUint64(5))
		h0 := sa0.Add(sb0).Open()
		h1 := sa1.Add(sb1).Open()
		got0 := h0.Await()
		got1 := h1.Await()

		Expect(got0.Eq(want)).To(BeTrue())
		Expect(got1.Eq(want)).To(BeTrue())
	})

	It("scales a shared point by a public scalar", func() {
		g := algebra.Generator()
		p0, p1 := sharePoint(g)
		c := algebra.NewScalarFromUint64(10)

		sp0 := mpc.NewSharedPoint(fab0, fab0.AllocatePoint(p0))
		sp1 := mpc.NewSharedPoint(fab1, fab1.AllocatePoint(p1))

		want := g.ScalarMul(c)
		h0 := sp0.MulPublicScalar(c).Open()
		h1 := sp1.MulPublicScalar(c).Open()
		got0 := h0.Await()
		got1 := h1.Await()

		Expect(got0.Eq(want)).To(BeTrue())
		Expect(got1.Eq(want)).To(BeTrue())
	})
})
