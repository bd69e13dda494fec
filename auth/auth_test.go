package auth_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/renegade-fi/mpc-stark/algebra"
	"github.com/renegade-fi/mpc-stark/auth"
	"github.com/renegade-fi/mpc-stark/beaver"
	"github.com/renegade-fi/mpc-stark/fabric"
	"github.com/renegade-fi/mpc-stark/mpc"
)

func shareAuthScalar(fab0, fab1 *fabric.Fabric, value, alpha0, alpha1 algebra.Scalar) (x0, x1 auth.AuthenticatedScalar) {
	share0, mac0, share1, mac1 := auth.SplitAuthenticatedScalar(value, alpha0, alpha1)
	x0 = auth.NewAuthenticatedScalar(
		mpc.NewSharedScalar(fab0, fab0.AllocateScalar(share0)),
		mpc.NewSharedScalar(fab0, fab0.AllocateScalar(mac0)),
	)
	x1 = auth.NewAuthenticatedScalar(
		mpc.NewSharedScalar(fab1, fab1.AllocateScalar(share1)),
		mpc.NewSharedScalar(fab1, fab1.AllocateScalar(mac1)),
	)
	return x0, x1
}

func shareAuthPoint(fab0, fab1 *fabric.Fabric, value algebra.Point, alpha0, alpha1 algebra.Scalar) (p0, p1 auth.AuthenticatedPoint) {
	share0, mac0, share1, mac1 := auth.SplitAuthenticatedPoint(value, alpha0, alpha1)
	p0 = auth.NewAuthenticatedPoint(
		mpc.NewSharedPoint(fab0, fab0.AllocatePoint(share0)),
		mpc.NewSharedPoint(fab0, fab0.AllocatePoint(mac0)),
	)
	p1 = auth.NewAuthenticatedPoint(
		mpc.NewSharedPoint(fab1, fab1.AllocatePoint(share1)),
		mpc.NewSharedPoint(fab1, fab1.AllocatePoint(mac1)),
	)
	return p0, p1
}

// runPaired calls fn once per party concurrently, since protocol steps like
// MultiplyScalars block on Await internally: the peer's matching side must
// already be running, not merely enqueued, before either call can resolve.
func runPaired(fn0, fn1 func()) {
	done := make(chan struct{}, 2)
	go func() { defer GinkgoRecover(); fn0(); done <- struct{}{} }()
	go func() { defer GinkgoRecover(); fn1(); done <- struct{}{} }()
	<-done
	<-done
}

var _ = Describe("Authenticated scalars", func() {
	var fab0, fab1 *fabric.Fabric
	var alpha0, alpha1 algebra.Scalar

	BeforeEach(func() {
		fab0, fab1, alpha0, alpha1 = fabric.NewPairedTestFabrics(4)
	})

	AfterEach(func() {
		fab0.Shutdown()
		fab1.Shutdown()
	})

	It("opens a zero value with a passing mac check", func() {
		x0, x1 := shareAuthScalar(fab0, fab1, algebra.ScalarZero(), alpha0, alpha1)

		// OpenScalar only builds the dataflow graph; both sides must be
		// built before either Await blocks on the peer's exchange.
		o0 := auth.OpenScalar(x0)
		o1 := auth.OpenScalar(x1)
		got0, err0 := o0.Await()
		got1, err1 := o1.Await()

		Expect(err0).NotTo(HaveOccurred())
		Expect(err1).NotTo(HaveOccurred())
		Expect(got0.IsZero()).To(BeTrue())
		Expect(got1.IsZero()).To(BeTrue())
	})

	It("opens the sum after a public addition", func() {
		x0, x1 := shareAuthScalar(fab0, fab1, algebra.NewScalarFromUint64(10), alpha0, alpha1)
		c := algebra.NewScalarFromUint64(32)

		o0 := auth.OpenScalar(x0.AddPublic(c))
		o1 := auth.OpenScalar(x1.AddPublic(c))
		got0, err0 := o0.Await()
		got1, err1 := o1.Await()

		Expect(err0).NotTo(HaveOccurred())
		Expect(err1).NotTo(HaveOccurred())
		Expect(got0.Eq(algebra.NewScalarFromUint64(42))).To(BeTrue())
		Expect(got1.Eq(algebra.NewScalarFromUint64(42))).To(BeTrue())
	})

	It("opens the sum of two authenticated shares", func() {
		x0, x1 := shareAuthScalar(fab0, fab1, algebra.NewScalarFromUint64(18), alpha0, alpha1)
		y0, y1 := shareAuthScalar(fab0, fab1, algebra.NewScalarFromUint64(24), alpha0, alpha1)

		o0 := auth.OpenScalar(x0.Add(y0))
		o1 := auth.OpenScalar(x1.Add(y1))
		got0, err0 := o0.Await()
		got1, err1 := o1.Await()

		Expect(err0).NotTo(HaveOccurred())
		Expect(err1).NotTo(HaveOccurred())
		Expect(got0.Eq(algebra.NewScalarFromUint64(42))).To(BeTrue())
		Expect(got1.Eq(algebra.NewScalarFromUint64(42))).To(BeTrue())
	})

	It("multiplies two authenticated shares via a beaver triple", func() {
		x0, x1 := shareAuthScalar(fab0, fab1, algebra.NewScalarFromUint64(6), alpha0, alpha1)
		y0, y1 := shareAuthScalar(fab0, fab1, algebra.NewScalarFromUint64(7), alpha0, alpha1)

		var product0, product1 auth.AuthenticatedScalar
		var mulErr0, mulErr1 error
		runPaired(
			func() { product0, mulErr0 = auth.MultiplyScalars(fab0, x0, y0) },
			func() { product1, mulErr1 = auth.MultiplyScalars(fab1, x1, y1) },
		)
		Expect(mulErr0).NotTo(HaveOccurred())
		Expect(mulErr1).NotTo(HaveOccurred())

		o0 := auth.OpenScalar(product0)
		o1 := auth.OpenScalar(product1)
		got0, err0 := o0.Await()
		got1, err1 := o1.Await()

		Expect(err0).NotTo(HaveOccurred())
		Expect(err1).NotTo(HaveOccurred())
		Expect(got0.Eq(algebra.NewScalarFromUint64(42))).To(BeTrue())
		Expect(got1.Eq(algebra.NewScalarFromUint64(42))).To(BeTrue())
	})

	It("rejects an open whose mac was tampered with in transit", func() {
		fab0.Shutdown()
		fab1.Shutdown()

		tamperAlpha0 := algebra.RandomScalar()
		tamperAlpha1 := algebra.RandomScalar()
		source0, source1 := beaver.NewPairedDummySource(0, tamperAlpha0, tamperAlpha1)

		clean0, tamperedPeer := fabric.NewInMemoryTransportPair(64)
		faulty1 := fabric.NewFaultyTransport(tamperedPeer, func(msg []byte) []byte {
			if len(msg) > 0 {
				msg[len(msg)-1] ^= 0xFF
			}
			return msg
		}, nil)

		tamperedFab0 := fabric.New(fabric.Config{PartyId: fabric.Party0, MacKeyShare: tamperAlpha0, ValueSource: source0, Transport: clean0})
		tamperedFab1 := fabric.New(fabric.Config{PartyId: fabric.Party1, MacKeyShare: tamperAlpha1, ValueSource: source1, Transport: faulty1})
		defer tamperedFab0.Shutdown()
		defer tamperedFab1.Shutdown()

		x0, x1 := shareAuthScalar(tamperedFab0, tamperedFab1, algebra.NewScalarFromUint64(99), tamperAlpha0, tamperAlpha1)

		// Both opens must be constructed before either Await blocks, and
		// party 1's open must run even though its result is unused, since
		// it is what produces the corrupted exchange party 0 is waiting on.
		o0 := auth.OpenScalar(x0)
		o1 := auth.OpenScalar(x1)
		_, _ = o1.Await()
		_, err := o0.Await()

		Expect(err).To(HaveOccurred())

		var authErr *fabric.AuthenticationError
		Expect(errors.As(err, &authErr)).To(BeTrue())
	})
})

var _ = Describe("Authenticated points", func() {
	var fab0, fab1 *fabric.Fabric
	var alpha0, alpha1 algebra.Scalar

	BeforeEach(func() {
		fab0, fab1, alpha0, alpha1 = fabric.NewPairedTestFabrics(4)
	})

	AfterEach(func() {
		fab0.Shutdown()
		fab1.Shutdown()
	})

	It("opens a shared point with a passing mac check", func() {
		g := algebra.Generator()
		want := g.ScalarMul(algebra.NewScalarFromUint64(2))
		p0, p1 := shareAuthPoint(fab0, fab1, want, alpha0, alpha1)

		o0 := auth.OpenPoint(p0)
		o1 := auth.OpenPoint(p1)
		got0, err0 := o0.Await()
		got1, err1 := o1.Await()

		Expect(err0).NotTo(HaveOccurred())
		Expect(err1).NotTo(HaveOccurred())
		Expect(got0.Eq(want)).To(BeTrue())
		Expect(got1.Eq(want)).To(BeTrue())
	})

	It("multiplies an authenticated scalar by an authenticated point", func() {
		g := algebra.Generator()
		s0, s1 := shareAuthScalar(fab0, fab1, algebra.NewScalarFromUint64(5), alpha0, alpha1)
		p0, p1 := shareAuthPoint(fab0, fab1, g.ScalarMul(algebra.NewScalarFromUint64(2)), alpha0, alpha1)

		var product0, product1 auth.AuthenticatedPoint
		var mulErr0, mulErr1 error
		runPaired(
			func() { product0, mulErr0 = auth.MultiplyScalarPoint(fab0, s0, p0) },
			func() { product1, mulErr1 = auth.MultiplyScalarPoint(fab1, s1, p1) },
		)
		Expect(mulErr0).NotTo(HaveOccurred())
		Expect(mulErr1).NotTo(HaveOccurred())

		want := g.ScalarMul(algebra.NewScalarFromUint64(10))
		o0 := auth.OpenPoint(product0)
		o1 := auth.OpenPoint(product1)
		got0, err0 := o0.Await()
		got1, err1 := o1.Await()

		Expect(err0).NotTo(HaveOccurred())
		Expect(err1).NotTo(HaveOccurred())
		Expect(got0.Eq(want)).To(BeTrue())
		Expect(got1.Eq(want)).To(BeTrue())
	})
})
