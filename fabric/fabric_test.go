package fabric_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/renegade-fi/mpc-stark/algebra"
	"github.com/renegade-fi/mpc-stark/fabric"
)

var _ = Describe("Fabric", func() {
	var fab0, fab1 *fabric.Fabric

	AfterEach(func() {
		fab0.Shutdown()
		fab1.Shutdown()
	})

	It("resolves a local gate without touching the network", func() {
		fab0, fab1, _, _ = fabric.NewPairedTestFabrics(0)

		h := fab0.NewGateOp(
			[]fabric.ResultHandle{fab0.AllocateScalar(algebra.NewScalarFromUint64(2)).ResultHandle},
			func(args []fabric.ResultValue) fabric.ResultValue {
				v, _ := args[0].AsScalar()
				return fabric.ValueFromScalar(v.Add(algebra.NewScalarFromUint64(3)))
			},
		)
		got := fabric.ScalarHandle{ResultHandle: h}.Await()
		Expect(got.Eq(algebra.NewScalarFromUint64(5))).To(BeTrue())
	})

	It("exchanges a value across the wire", func() {
		fab0, fab1, _, _ = fabric.NewPairedTestFabrics(0)

		sent := fab0.AllocateScalar(algebra.NewScalarFromUint64(7))
		received := fab1.ExchangeValue(fab1.AllocateScalar(algebra.NewScalarFromUint64(9)).ResultHandle)

		got0 := fabric.ScalarHandle{ResultHandle: fab0.ExchangeValue(sent.ResultHandle)}.Await()
		got1 := fabric.ScalarHandle{ResultHandle: received}.Await()

		Expect(got0.Eq(algebra.NewScalarFromUint64(9))).To(BeTrue())
		Expect(got1.Eq(algebra.NewScalarFromUint64(7))).To(BeTrue())
	})

	It("resolves a handle awaited from another goroutine", func() {
		fab0, fab1, _, _ = fabric.NewPairedTestFabrics(0)

		results := make(chan algebra.Scalar, 1)
		h := fab0.NewGateOp(nil, func([]fabric.ResultValue) fabric.ResultValue {
			return fabric.ValueFromScalar(algebra.NewScalarFromUint64(42))
		})
		go func() {
			results <- fabric.ScalarHandle{ResultHandle: h}.Await()
		}()

		Eventually(results).Should(Receive(Equal(algebra.NewScalarFromUint64(42))))
	})
})
