package auth

import "github.com/renegade-fi/mpc-stark/algebra"

// SplitAuthenticatedScalar splits value into the two parties' shares and
// matching MAC shares under alpha = alpha0+alpha1. It stands in for the
// interactive input-sharing protocol, which is out of scope here, so tests
// can construct known authenticated inputs directly.
func SplitAuthenticatedScalar(value, alpha0, alpha1 algebra.Scalar) (share0, mac0, share1, mac1 algebra.Scalar) {
	share0 = algebra.RandomScalar()
	share1 = value.Sub(share0)

	mac := alpha0.Add(alpha1).Mul(value)
	mac0 = algebra.RandomScalar()
	mac1 = mac.Sub(mac0)
	return share0, mac0, share1, mac1
}

// SplitAuthenticatedPoint is the point-valued analogue of
// SplitAuthenticatedScalar.
func SplitAuthenticatedPoint(value algebra.Point, alpha0, alpha1 algebra.Scalar) (share0, mac0, share1, mac1 algebra.Point) {
	share0 = algebra.Generator().ScalarMul(algebra.RandomScalar())
	share1 = value.Sub(share0)

	mac := value.ScalarMul(alpha0.Add(alpha1))
	mac0 = algebra.Generator().ScalarMul(algebra.RandomScalar())
	mac1 = mac.Sub(mac0)
	return share0, mac0, share1, mac1
}
