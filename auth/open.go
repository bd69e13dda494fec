package auth

import (
	"github.com/renegade-fi/mpc-stark/algebra"
	"github.com/renegade-fi/mpc-stark/commitment"
	"github.com/renegade-fi/mpc-stark/fabric"
	"github.com/renegade-fi/mpc-stark/mpc"
)

// OpenedScalar is the composite handle returned by OpenScalar: awaiting it
// blocks until both the opened value and its MAC check have resolved.
type OpenedScalar struct {
	value fabric.ScalarHandle
	flag  fabric.ScalarHandle
}

// Await blocks until the opened value and its MAC check both resolve,
// returning an AuthenticationError if the check failed.
func (o OpenedScalar) Await() (algebra.Scalar, error) {
	flag := o.flag.Await()
	if flag.IsZero() {
		return algebra.Scalar{}, &fabric.AuthenticationError{Reason: "mac check failed on authenticated scalar open"}
	}
	return o.value.Await(), nil
}

// OpenScalar reconstructs the plaintext behind s and verifies its MAC via
// commit-then-reveal: each party computes a residual
// mac_i - alpha_i*(x - modifier), commits to it, exchanges commitments,
// then exchanges the residuals and blinders, checking that each commitment
// opens correctly and that the residuals sum to zero.
func OpenScalar(s AuthenticatedScalar) OpenedScalar {
	fab := s.Fab()
	alpha := mpc.NewSharedScalar(fab, fab.BorrowMacKey())

	valueHandle := s.Share.Open()

	residualHandle := fab.NewGateOp(
		[]fabric.ResultHandle{s.Mac.Share.ResultHandle, alpha.Share.ResultHandle, valueHandle.ResultHandle},
		func(args []fabric.ResultValue) fabric.ResultValue {
			macShare, _ := args[0].AsScalar()
			alphaShare, _ := args[1].AsScalar()
			openedX, _ := args[2].AsScalar()
			corrected := openedX.Sub(s.PublicModifier)
			residual := macShare.Sub(alphaShare.Mul(corrected))
			return fabric.ValueFromScalar(residual)
		},
	)

	blinder := algebra.RandomScalar()
	commitHandle := fab.NewGateOp(
		[]fabric.ResultHandle{residualHandle},
		func(args []fabric.ResultValue) fabric.ResultValue {
			residual, _ := args[0].AsScalar()
			c := commitment.CommitWithBlinder(residual, blinder)
			return fabric.ValueFromBytes(c.Digest[:])
		},
	)
	peerCommit := fab.ExchangeValue(commitHandle)

	// revealHandle depends on peerCommit purely to order the reveal after
	// both commitments have been exchanged.
	revealHandle := fab.NewGateOp(
		[]fabric.ResultHandle{residualHandle, peerCommit},
		func(args []fabric.ResultValue) fabric.ResultValue {
			residual, _ := args[0].AsScalar()
			return fabric.ValueFromScalar(residual)
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
			peerResidualVal, _ := args[1].AsScalar()
			peerBlinderVal, _ := args[2].AsScalar()
			myResidual, _ := args[3].AsScalar()

			var digest [commitment.DigestSize]byte
			copy(digest[:], digestBytes)

			ok := commitment.Verify(peerResidualVal, peerBlinderVal, digest) &&
				myResidual.Add(peerResidualVal).IsZero()
			if ok {
				return fabric.ValueFromScalar(algebra.ScalarOne())
			}
			return fabric.ValueFromScalar(algebra.ScalarZero())
		},
	)

	return OpenedScalar{
		value: fabric.ScalarHandle{ResultHandle: valueHandle.ResultHandle},
		flag:  fabric.ScalarHandle{ResultHandle: flagHandle},
	}
}

// OpenScalarBatch opens each authenticated scalar independently. The MAC
// check for each value runs its own commit-then-reveal round; batching the
// check itself into a single round-trip across values is a possible
// optimization this does not implement.
func OpenScalarBatch(ss []AuthenticatedScalar) []OpenedScalar {
	out := make([]OpenedScalar, len(ss))
	for i, s := range ss {
		out[i] = OpenScalar(s)
	}
	return out
}
