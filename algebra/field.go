// Package algebra implements scalar field and curve group arithmetic for the
// Stark curve used by the fabric's authenticated sharing algebra. The
// concrete curve arithmetic primitives are treated by the rest of this
// module as a black box; this package is their one home.
package algebra

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// scalarOrder is the order of the Stark curve's scalar field, i.e. the
// number of points on the curve. See
// https://docs.starkware.co/starkex/crypto/stark-curve.html
var scalarOrder, _ = new(big.Int).SetString(
	"3618502788666131213697322783095070105526743751716087489154079457884512865583", 10,
)

// Scalar is an element of the Stark curve's scalar field, represented as a
// canonical residue modulo the field order.
type Scalar struct {
	val big.Int
}

// ScalarZero is the additive identity of the scalar field.
func ScalarZero() Scalar { return Scalar{} }

// ScalarOne is the multiplicative identity of the scalar field.
func ScalarOne() Scalar { return NewScalarFromUint64(1) }

// NewScalarFromUint64 builds a scalar from a small unsigned integer.
func NewScalarFromUint64(v uint64) Scalar {
	var s Scalar
	s.val.SetUint64(v)
	return s
}

// NewScalarFromBigInt reduces an arbitrary big.Int into the scalar field.
func NewScalarFromBigInt(v *big.Int) Scalar {
	var s Scalar
	s.val.Mod(v, scalarOrder)
	return s
}

// RandomScalar draws a uniformly random field element.
func RandomScalar() Scalar {
	v, err := rand.Int(rand.Reader, scalarOrder)
	if err != nil {
		// crypto/rand.Int only errors on a misconfigured reader; this is
		// unrecoverable in a cryptographic context.
		panic(fmt.Sprintf("algebra: failed to sample random scalar: %v", err))
	}
	return Scalar{val: *v}
}

// Add returns s + other mod p.
func (s Scalar) Add(other Scalar) Scalar {
	var out Scalar
	out.val.Add(&s.val, &other.val)
	out.val.Mod(&out.val, scalarOrder)
	return out
}

// Sub returns s - other mod p.
func (s Scalar) Sub(other Scalar) Scalar {
	var out Scalar
	out.val.Sub(&s.val, &other.val)
	out.val.Mod(&out.val, scalarOrder)
	return out
}

// Mul returns s * other mod p.
func (s Scalar) Mul(other Scalar) Scalar {
	var out Scalar
	out.val.Mul(&s.val, &other.val)
	out.val.Mod(&out.val, scalarOrder)
	return out
}

// Neg returns -s mod p.
func (s Scalar) Neg() Scalar {
	var out Scalar
	out.val.Neg(&s.val)
	out.val.Mod(&out.val, scalarOrder)
	return out
}

// Inverse returns the multiplicative inverse of s. Panics if s is zero: a
// fatal precondition violation rather than a recoverable error, since
// callers are expected to never invert a proven-nonzero field element.
func (s Scalar) Inverse() Scalar {
	if s.IsZero() {
		panic("algebra: cannot invert the zero scalar")
	}
	var out Scalar
	out.val.ModInverse(&s.val, scalarOrder)
	return out
}

// IsZero reports whether s is the additive identity.
func (s Scalar) IsZero() bool {
	return s.val.Sign() == 0
}

// Eq reports whether two scalars represent the same field element.
func (s Scalar) Eq(other Scalar) bool {
	return s.val.Cmp(&other.val) == 0
}

// ScalarNumBytes is the canonical encoded length of a scalar field element.
const ScalarNumBytes = 32

// ToBytes encodes the scalar as 32 bytes, little-endian.
func (s Scalar) ToBytes() [ScalarNumBytes]byte {
	var out [ScalarNumBytes]byte
	b := s.val.Bytes() // big-endian, no leading zeros
	for i := 0; i < len(b); i++ {
		out[i] = b[len(b)-1-i]
	}
	return out
}

// ScalarFromBytes decodes a canonical little-endian scalar encoding.
func ScalarFromBytes(b []byte) (Scalar, error) {
	if len(b) != ScalarNumBytes {
		return Scalar{}, fmt.Errorf("algebra: scalar encoding must be %d bytes, got %d", ScalarNumBytes, len(b))
	}
	be := make([]byte, ScalarNumBytes)
	for i, bb := range b {
		be[ScalarNumBytes-1-i] = bb
	}
	var s Scalar
	s.val.SetBytes(be)
	s.val.Mod(&s.val, scalarOrder)
	return s, nil
}

// String implements fmt.Stringer for debugging and logging.
func (s Scalar) String() string {
	return s.val.String()
}
