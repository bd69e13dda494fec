// Package mpc implements the single-layer (unauthenticated) additive
// sharing algebra: plain additive shares of scalars and curve points, with
// arithmetic and an unauthenticated open. The authenticated (SPDZ) layer in
// package auth is built on top of these types.
package mpc

import (
	"github.com/renegade-fi/mpc-stark/algebra"
	"github.com/renegade-fi/mpc-stark/fabric"
)

// MulPoint multiplies a public curve point by this shared scalar, scaling
// the point by each party's own share locally: the shares sum to the
// correctly-scaled point because scalar multiplication distributes over
// addition in the exponent.
func (s Scalar) MulPoint(q algebra.Point) Point {
	h := s.Fab.NewGateOp(
		[]fabric.ResultHandle{s.Share.ResultHandle},
		func(args []fabric.ResultValue) fabric.ResultValue {
			share, _ := args[0].AsScalar()
			return fabric.ValueFromPoint(q.ScalarMul(share))
		},
	)
	return NewSharedPoint(s.Fab, fabric.PointHandle{ResultHandle: h})
}

// Scalar wraps a single additively-shared field element: this party holds
// Share, and the peer holds a complementary share summing to the secret
// value.
type Scalar struct {
	Fab   *fabric.Fabric
	Share fabric.ScalarHandle
}

// NewSharedScalar wraps an existing share handle.
func NewSharedScalar(fab *fabric.Fabric, share fabric.ScalarHandle) Scalar {
	return Scalar{Fab: fab, Share: share}
}

// AllocatePublicScalar allocates a "share" that both parties initialize to
// the same plaintext value, useful for constants that enter the circuit as
// Scalar-typed operands (the value is visible to both parties; it is not
// secret-shared).
func AllocatePublicScalar(fab *fabric.Fabric, v algebra.Scalar) Scalar {
	return NewSharedScalar(fab, fab.AllocateScalar(v))
}

// Add returns the sum of two shares: each party locally adds its own share
//.
func (s Scalar) Add(other Scalar) Scalar {
	h := s.Fab.NewGateOp(
		[]fabric.ResultHandle{s.Share.ResultHandle, other.Share.ResultHandle},
		func(args []fabric.ResultValue) fabric.ResultValue {
			a, _ := args[0].AsScalar()
			b, _ := args[1].AsScalar()
			return fabric.ValueFromScalar(a.Add(b))
		},
	)
	return NewSharedScalar(s.Fab, fabric.ScalarHandle{ResultHandle: h})
}

// AddPublic adds a public constant to the shared value. Party 0 (the king)
// adds the constant to its own share; party 1 schedules a matching
// identity gate so that both parties allocate the same number of ids in
// the same order.
func (s Scalar) AddPublic(c algebra.Scalar) Scalar {
	isKing := s.Fab.PartyId().King()
	h := s.Fab.NewGateOp(
		[]fabric.ResultHandle{s.Share.ResultHandle},
		func(args []fabric.ResultValue) fabric.ResultValue {
			share, _ := args[0].AsScalar()
			if isKing {
				return fabric.ValueFromScalar(share.Add(c))
			}
			return fabric.ValueFromScalar(share)
		},
	)
	return NewSharedScalar(s.Fab, fabric.ScalarHandle{ResultHandle: h})
}

// SubPublic subtracts a public constant from the shared value, symmetric to
// AddPublic.
func (s Scalar) SubPublic(c algebra.Scalar) Scalar {
	isKing := s.Fab.PartyId().King()
	h := s.Fab.NewGateOp(
		[]fabric.ResultHandle{s.Share.ResultHandle},
		func(args []fabric.ResultValue) fabric.ResultValue {
			share, _ := args[0].AsScalar()
			if isKing {
				return fabric.ValueFromScalar(share.Sub(c))
			}
			return fabric.ValueFromScalar(share)
		},
	)
	return NewSharedScalar(s.Fab, fabric.ScalarHandle{ResultHandle: h})
}

// Sub returns the difference of two shares.
func (s Scalar) Sub(other Scalar) Scalar {
	h := s.Fab.NewGateOp(
		[]fabric.ResultHandle{s.Share.ResultHandle, other.Share.ResultHandle},
		func(args []fabric.ResultValue) fabric.ResultValue {
			a, _ := args[0].AsScalar()
			b, _ := args[1].AsScalar()
			return fabric.ValueFromScalar(a.Sub(b))
		},
	)
	return NewSharedScalar(s.Fab, fabric.ScalarHandle{ResultHandle: h})
}

// Neg negates both parties' shares.
func (s Scalar) Neg() Scalar {
	h := s.Fab.NewGateOp(
		[]fabric.ResultHandle{s.Share.ResultHandle},
		func(args []fabric.ResultValue) fabric.ResultValue {
			a, _ := args[0].AsScalar()
			return fabric.ValueFromScalar(a.Neg())
		},
	)
	return NewSharedScalar(s.Fab, fabric.ScalarHandle{ResultHandle: h})
}

// MulPublic multiplies the shared value by a public constant: both parties
// multiply their own share.
func (s Scalar) MulPublic(c algebra.Scalar) Scalar {
	h := s.Fab.NewGateOp(
		[]fabric.ResultHandle{s.Share.ResultHandle},
		func(args []fabric.ResultValue) fabric.ResultValue {
			a, _ := args[0].AsScalar()
			return fabric.ValueFromScalar(a.Mul(c))
		},
	)
	return NewSharedScalar(s.Fab, fabric.ScalarHandle{ResultHandle: h})
}

// Open reconstructs the plaintext by exchanging shares with the peer and
// summing them locally. This performs no MAC check; see package auth for
// the authenticated variant.
func (s Scalar) Open() fabric.ScalarHandle {
	peerShare := s.Fab.ExchangeValue(s.Share.ResultHandle)
	sum := s.Fab.NewGateOp(
		[]fabric.ResultHandle{s.Share.ResultHandle, peerShare},
		func(args []fabric.ResultValue) fabric.ResultValue {
			a, _ := args[0].AsScalar()
			b, _ := args[1].AsScalar()
			return fabric.ValueFromScalar(a.Add(b))
		},
	)
	return fabric.ScalarHandle{ResultHandle: sum}
}
