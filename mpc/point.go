package mpc

import (
	"github.com/renegade-fi/mpc-stark/algebra"
	"github.com/renegade-fi/mpc-stark/fabric"
)

// Point wraps a single additively-shared curve point, the group analogue
// of Scalar.
type Point struct {
	Fab   *fabric.Fabric
	Share fabric.PointHandle
}

// NewSharedPoint wraps an existing share handle.
func NewSharedPoint(fab *fabric.Fabric, share fabric.PointHandle) Point {
	return Point{Fab: fab, Share: share}
}

// AllocatePublicPoint allocates a non-secret point both parties see the
// same plaintext value for.
func AllocatePublicPoint(fab *fabric.Fabric, p algebra.Point) Point {
	return NewSharedPoint(fab, fab.AllocatePoint(p))
}

// Add returns the sum of two point shares.
func (p Point) Add(other Point) Point {
	h := p.Fab.NewGateOp(
		[]fabric.ResultHandle{p.Share.ResultHandle, other.Share.ResultHandle},
		func(args []fabric.ResultValue) fabric.ResultValue {
			a, _ := args[0].AsPoint()
			b, _ := args[1].AsPoint()
			return fabric.ValueFromPoint(a.Add(b))
		},
	)
	return NewSharedPoint(p.Fab, fabric.PointHandle{ResultHandle: h})
}

// AddPublic adds a public point to the shared value; party 0 absorbs it
// into its own share, party 1 schedules a matching identity gate so both
// parties' result id sequences stay in lockstep.
func (p Point) AddPublic(c algebra.Point) Point {
	isKing := p.Fab.PartyId().King()
	h := p.Fab.NewGateOp(
		[]fabric.ResultHandle{p.Share.ResultHandle},
		func(args []fabric.ResultValue) fabric.ResultValue {
			share, _ := args[0].AsPoint()
			if isKing {
				return fabric.ValueFromPoint(share.Add(c))
			}
			return fabric.ValueFromPoint(share)
		},
	)
	return NewSharedPoint(p.Fab, fabric.PointHandle{ResultHandle: h})
}

// SubPublic subtracts a public point from the shared value, symmetric to
// AddPublic.
func (p Point) SubPublic(c algebra.Point) Point {
	isKing := p.Fab.PartyId().King()
	h := p.Fab.NewGateOp(
		[]fabric.ResultHandle{p.Share.ResultHandle},
		func(args []fabric.ResultValue) fabric.ResultValue {
			share, _ := args[0].AsPoint()
			if isKing {
				return fabric.ValueFromPoint(share.Sub(c))
			}
			return fabric.ValueFromPoint(share)
		},
	)
	return NewSharedPoint(p.Fab, fabric.PointHandle{ResultHandle: h})
}

// Sub returns the difference of two point shares.
func (p Point) Sub(other Point) Point {
	h := p.Fab.NewGateOp(
		[]fabric.ResultHandle{p.Share.ResultHandle, other.Share.ResultHandle},
		func(args []fabric.ResultValue) fabric.ResultValue {
			a, _ := args[0].AsPoint()
			b, _ := args[1].AsPoint()
			return fabric.ValueFromPoint(a.Sub(b))
		},
	)
	return NewSharedPoint(p.Fab, fabric.PointHandle{ResultHandle: h})
}

// Neg negates both parties' shares.
func (p Point) Neg() Point {
	h := p.Fab.NewGateOp(
		[]fabric.ResultHandle{p.Share.ResultHandle},
		func(args []fabric.ResultValue) fabric.ResultValue {
			a, _ := args[0].AsPoint()
			return fabric.ValueFromPoint(a.Neg())
		},
	)
	return NewSharedPoint(p.Fab, fabric.PointHandle{ResultHandle: h})
}

// MulPublicScalar multiplies the shared point by a public scalar: both
// parties scalar-multiply their own share.
func (p Point) MulPublicScalar(c algebra.Scalar) Point {
	h := p.Fab.NewGateOp(
		[]fabric.ResultHandle{p.Share.ResultHandle},
		func(args []fabric.ResultValue) fabric.ResultValue {
			a, _ := args[0].AsPoint()
			return fabric.ValueFromPoint(a.ScalarMul(c))
		},
	)
	return NewSharedPoint(p.Fab, fabric.PointHandle{ResultHandle: h})
}

// Open reconstructs the plaintext point by exchanging shares and summing
// locally, with no MAC check.
func (p Point) Open() fabric.PointHandle {
	peerShare := p.Fab.ExchangeValue(p.Share.ResultHandle)
	sum := p.Fab.NewGateOp(
		[]fabric.ResultHandle{p.Share.ResultHandle, peerShare},
		func(args []fabric.ResultValue) fabric.ResultValue {
			a, _ := args[0].AsPoint()
			b, _ := args[1].AsPoint()
			return fabric.ValueFromPoint(a.Add(b))
		},
	)
	return fabric.PointHandle{ResultHandle: sum}
}
