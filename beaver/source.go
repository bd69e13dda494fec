// Package beaver defines the interface to the Beaver-preprocessing source
// the fabric draws correlated randomness from, and an in-memory
// implementation suitable for tests and end-to-end scenarios. The
// production preprocessing source itself is out of scope here: it is
// treated as an abstract producer.
package beaver

import "github.com/renegade-fi/mpc-stark/algebra"

// SharedValueSource produces additively-shared correlated randomness for
// one party: single shared values, shared bits, multiplicative inverse
// pairs, and Beaver triples. MAC consistency across the pair of sources
// handed to the two parties is the source's responsibility.
//
// A SharedValueSource is single-consumer: only the executor that owns a
// fabric may call it.
type SharedValueSource interface {
	NextSharedBit() algebra.Scalar
	NextSharedBitBatch(n int) []algebra.Scalar

	NextSharedValue() algebra.Scalar
	NextSharedValueBatch(n int) []algebra.Scalar

	NextSharedInversePair() (algebra.Scalar, algebra.Scalar)
	NextSharedInversePairBatch(n int) []InversePair

	NextTriplet() Triplet
	NextTripletBatch(n int) []Triplet

	NextScalarPointTriplet() ScalarPointTriplet
	NextScalarPointTripletBatch(n int) []ScalarPointTriplet
}

// Triplet is a Beaver triple (a, b, c) with a*b = c, each component an
// additive share held by one party, together with that party's share of
// each component's MAC under the session's alpha key. The authenticated
// multiplication in package auth consumes AMac/BMac/CMac to keep the
// product's MAC consistent without an extra round trip.
type Triplet struct {
	A, B, C          algebra.Scalar
	AMac, BMac, CMac algebra.Scalar
}

// InversePair is a pair of additive shares (x, xInv) such that the
// reconstructed values are multiplicative inverses of one another.
type InversePair struct {
	Value, Inverse algebra.Scalar
}

// ScalarPointTriplet is the mixed-type analogue of Triplet used for
// authenticated scalar-by-point multiplication: A is a scalar, B and C are
// curve points with A*B = C, each carrying a MAC share matching its own
// type.
type ScalarPointTriplet struct {
	A    algebra.Scalar
	AMac algebra.Scalar
	B    algebra.Point
	BMac algebra.Point
	C    algebra.Point
	CMac algebra.Point
}
