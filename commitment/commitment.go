// Package commitment implements the hash commitment used in the SPDZ MAC
// check's commit-then-reveal final round. A party commits to a
// value before learning the peer's corresponding value, so a malicious peer
// cannot choose its own opening to cancel out the honest party's MAC check.
package commitment

import (
	"github.com/zeebo/blake3"

	"github.com/renegade-fi/mpc-stark/algebra"
)

// DigestSize is the length in bytes of a commitment digest.
const DigestSize = 32

// Commitment is the result of committing to a scalar value: the value
// itself, the blinder used to hide it, and the digest binding both.
type Commitment struct {
	Value   algebra.Scalar
	Blinder algebra.Scalar
	Digest  [DigestSize]byte
}

// Commit computes a commitment to value using a freshly-sampled blinder.
func Commit(value algebra.Scalar) Commitment {
	blinder := algebra.RandomScalar()
	return Commitment{
		Value:   value,
		Blinder: blinder,
		Digest:  digest(value, blinder),
	}
}

// CommitWithBlinder computes a commitment to value using a caller-supplied
// blinder, for use when reconstructing a commitment received from a peer.
func CommitWithBlinder(value, blinder algebra.Scalar) Commitment {
	return Commitment{
		Value:   value,
		Blinder: blinder,
		Digest:  digest(value, blinder),
	}
}

// Verify recomputes the digest over (value, blinder) and compares it
// against digest, returning true iff they match.
func Verify(value, blinder algebra.Scalar, wantDigest [DigestSize]byte) bool {
	return digest(value, blinder) == wantDigest
}

func digest(value, blinder algebra.Scalar) [DigestSize]byte {
	valueBytes := value.ToBytes()
	blinderBytes := blinder.ToBytes()
	return digestBytes(valueBytes[:], blinderBytes[:])
}

func digestBytes(value, blinder []byte) [DigestSize]byte {
	h := blake3.New()
	h.Write(value)
	h.Write(blinder)

	var out [DigestSize]byte
	copy(out[:], h.Sum(nil))
	return out
}

// PointCommitment is the point-valued analogue of Commitment, used to
// commit to a curve point (e.g. a point-valued MAC residual) before
// learning the peer's opening.
type PointCommitment struct {
	Value   algebra.Point
	Blinder algebra.Scalar
	Digest  [DigestSize]byte
}

// CommitPoint computes a commitment to a curve point using a
// freshly-sampled blinder.
func CommitPoint(value algebra.Point) PointCommitment {
	blinder := algebra.RandomScalar()
	return CommitPointWithBlinder(value, blinder)
}

// CommitPointWithBlinder computes a commitment to value using a
// caller-supplied blinder.
func CommitPointWithBlinder(value algebra.Point, blinder algebra.Scalar) PointCommitment {
	valueBytes := value.ToBytes()
	blinderBytes := blinder.ToBytes()
	return PointCommitment{
		Value:   value,
		Blinder: blinder,
		Digest:  digestBytes(valueBytes[:], blinderBytes[:]),
	}
}

// VerifyPoint recomputes the digest over (value, blinder) and compares it
// against wantDigest.
func VerifyPoint(value algebra.Point, blinder algebra.Scalar, wantDigest [DigestSize]byte) bool {
	return CommitPointWithBlinder(value, blinder).Digest == wantDigest
}
