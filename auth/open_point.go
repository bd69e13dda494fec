package auth

import (
	"github.com/renegade-fi/mpc-stark/algebra"
	"github.com/renegade-fi/mpc-stark/commitment"
	"github.com/renegade-fi/mpc-stark/fabric"
	"github.com/renegade-fi/mpc-stark/mpc"
)

// OpenedPoint is the point-valued analogue of OpenedScalar.
type OpenedPoint struct {
	value fabric.PointHandle
	flag  fabric.ScalarHandle
}

// Await blocks until the opened point and its MAC check both resolve,
// returning an AuthenticationError if the check failed.
func (o OpenedPoint) Await() (algebra.Point, error) {
	flag := o.flag.Await()
	if flag.IsZero() {
		return algebra.Point{}, &fabric.AuthenticationError{Reason: "mac check failed on authenticated point open"}
	}
	return o.value.Await(), nil
}

// OpenPoint is the point-valued analogue of OpenScalar: the MAC residual is
// itself a curve point, mac_i - alpha_i*(P - modifier), committed to and
// checked via the same commit-then-reveal structure.
func OpenPoint(p AuthenticatedPoint) OpenedPoint {
	fab := p.Fab()
	alpha := mpc.NewSharedScalar(fab, fab.BorrowMacKey())

	valueHandle := p.Share.Open()

	residualHandle := fab.NewGateOp(
		[]fabric.ResultHandle{p.Mac.Share.ResultHandle, alpha.Share.ResultHandle, valueHandle.ResultHandle},
		func(args []fabric.ResultValue) fabric.ResultValue {
			macShare, _ := args[0].AsPoint()
			alphaShare, _ := args[1].AsScalar()
			openedPoint, _ := args[2].AsPoint()
			corrected := openedPoint.Sub(p.PublicModifier)
			residual := macShare.Sub(corrected.ScalarMul(alphaShare))
			return fabric.ValueFromPoint(residual)
		},
	)

	blinder := algebra.RandomScalar()
	commitHandle := fab.NewGateOp(
		[]fabric.ResultHandle{residualHandle},
		func(args []fabric.ResultValue) fabric.ResultValue {
			residual, _ := args[0].AsPoint()
			c := commitment.CommitPointWithBlinder(residual, blinder)
			return fabric.ValueFromBytes(c.Digest[:])
		},
	)
	peerCommit := fab.ExchangeValue(commitHandle)

	revealHandle := fab.NewGateOp(
		[]fabric.ResultHandle{residualHandle, peerCommit},
		func(args []fabric.ResultValue) fabric.ResultValue {
			residual, _ := args[0].AsPoint()
			return fabric.ValueFromPoint(residual)
		},
	)
	peerResidual := fab.ExchangeValue(revealHandle)

	blinderHandle := fab.NewGateOp(
		[]fabric.ResultHandle{peerCommit},
		func([]fabric.ResultValue) fabric.ResultValue {
			return fabric.ValueFromScalar(blinder)
		},
	)
	peerBlinder := fab.ExchangeValue(blinderHandle)

	flagHandle := fab.NewGateOp(
		[]fabric.ResultHandle{peerCommit, peerResidual, peerBlinder, residualHandle},
		func(args []fabric.ResultValue) fabric.ResultValue {
			digestBytes, _ := args[0].AsBytes()
			peerResidualVal, _ := args[1].AsPoint()
			peerBlinderVal, _ := args[2].AsScalar()
			myResidual, _ := args[3].AsPoint()

			var digest [commitment.DigestSize]byte
			copy(digest[:], digestBytes)

			ok := commitment.VerifyPoint(peerResidualVal, peerBlinderVal, digest) &&
				myResidual.Add(peerResidualVal).IsIdentity()
			if ok {
				return fabric.ValueFromScalar(algebra.ScalarOne())
			}
			return fabric.ValueFromScalar(algebra.ScalarZero())
		},
	)

	return OpenedPoint{
		value: fabric.PointHandle{ResultHandle: valueHandle.ResultHandle},
		flag:  fabric.ScalarHandle{ResultHandle: flagHandle},
	}
}

// OpenPointBatch opens each authenticated point independently, mirroring
// OpenScalarBatch.
func OpenPointBatch(ps []AuthenticatedPoint) []OpenedPoint {
	out := make([]OpenedPoint, len(ps))
	for i, p := range ps {
		out[i] = OpenPoint(p)
	}
	return out
}
