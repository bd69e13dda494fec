package algebra

import (
	"fmt"
	"math/big"
)

// baseFieldOrder is the order p of the Stark curve's base field, i.e. the
// modulus over which the curve equation y^2 = x^3 + A*x + B is evaluated.
// See https://docs.starkware.co/starkex/crypto/stark-curve.html
var baseFieldOrder, _ = new(big.Int).SetString(
	"3618502788666131213697322783095070105623107215331596699973092056135872020481", 10,
)

// curveA and curveB are the short Weierstrass coefficients of the Stark
// curve: y^2 = x^3 + A*x + B (mod p).
var (
	curveA = big.NewInt(1)
	curveB, _ = new(big.Int).SetString(
		"3141592653589793238462643383279502884197169399375105820974944592307816406665", 10,
	)
	generatorX, _ = new(big.Int).SetString(
		"874739451078007766457464989774322083649278607533249481151382481072868806602", 10,
	)
	generatorY, _ = new(big.Int).SetString(
		"152666792071518830868575557812948353041420400780739481342941381225525861407", 10,
	)
)

// Point is an affine point on the Stark curve, or the point at infinity
// (the group identity) when infinity is true. The curve has cofactor 1, so
// every point other than infinity generates the full prime-order group.
type Point struct {
	x, y      big.Int
	infinity  bool
}

// Identity returns the group's additive identity (point at infinity).
func Identity() Point {
	return Point{infinity: true}
}

// Generator returns the Stark curve's published base point.
func Generator() Point {
	return Point{x: *new(big.Int).Set(generatorX), y: *new(big.Int).Set(generatorY)}
}

// IsIdentity reports whether p is the point at infinity.
func (p Point) IsIdentity() bool {
	return p.infinity
}

// Eq reports whether two points are the same group element.
func (p Point) Eq(other Point) bool {
	if p.infinity || other.infinity {
		return p.infinity == other.infinity
	}
	return p.x.Cmp(&other.x) == 0 && p.y.Cmp(&other.y) == 0
}

// Add returns p + other using the standard short-Weierstrass affine addition
// formulas.
func (p Point) Add(other Point) Point {
	if p.infinity {
		return other
	}
	if other.infinity {
		return p
	}
	if p.x.Cmp(&other.x) == 0 {
		if p.y.Cmp(&other.y) != 0 || p.y.Sign() == 0 {
			// p == -other (or a 2-torsion point, impossible with cofactor 1
			// and y != 0): the sum is the identity.
			return Identity()
		}
		return p.double()
	}

	// lambda = (y2 - y1) / (x2 - x1)
	lambda := slopeBetween(&p.x, &p.y, &other.x, &other.y)
	return affineFromSlope(lambda, &p.x, &other.x, &p.y)
}

func (p Point) double() Point {
	if p.infinity || p.y.Sign() == 0 {
		return Identity()
	}
	// lambda = (3*x^2 + A) / (2*y)
	num := new(big.Int).Mul(&p.x, &p.x)
	num.Mul(num, big.NewInt(3))
	num.Add(num, curveA)
	num.Mod(num, baseFieldOrder)

	den := new(big.Int).Lsh(&p.y, 1)
	den.Mod(den, baseFieldOrder)
	denInv := new(big.Int).ModInverse(den, baseFieldOrder)
	if denInv == nil {
		return Identity()
	}
	lambda := new(big.Int).Mul(num, denInv)
	lambda.Mod(lambda, baseFieldOrder)

	return affineFromSlope(lambda, &p.x, &p.x, &p.y)
}

func slopeBetween(x1, y1, x2, y2 *big.Int) *big.Int {
	num := new(big.Int).Sub(y2, y1)
	num.Mod(num, baseFieldOrder)
	den := new(big.Int).Sub(x2, x1)
	den.Mod(den, baseFieldOrder)
	denInv := new(big.Int).ModInverse(den, baseFieldOrder)
	lambda := new(big.Int).Mul(num, denInv)
	lambda.Mod(lambda, baseFieldOrder)
	return lambda
}

// affineFromSlope completes a point addition given the slope lambda and the
// two input x-coordinates and the first input's y-coordinate.
func affineFromSlope(lambda, x1, x2, y1 *big.Int) Point {
	x3 := new(big.Int).Mul(lambda, lambda)
	x3.Sub(x3, x1)
	x3.Sub(x3, x2)
	x3.Mod(x3, baseFieldOrder)

	y3 := new(big.Int).Sub(x1, x3)
	y3.Mul(y3, lambda)
	y3.Sub(y3, y1)
	y3.Mod(y3, baseFieldOrder)

	return Point{x: *x3, y: *y3}
}

// Neg returns the additive inverse of p.
func (p Point) Neg() Point {
	if p.infinity {
		return p
	}
	negY := new(big.Int).Neg(&p.y)
	negY.Mod(negY, baseFieldOrder)
	return Point{x: *new(big.Int).Set(&p.x), y: *negY}
}

// Sub returns p - other.
func (p Point) Sub(other Point) Point {
	return p.Add(other.Neg())
}

// ScalarMul returns s*p via double-and-add.
func (p Point) ScalarMul(s Scalar) Point {
	result := Identity()
	addend := p
	k := new(big.Int).Set(&s.val)
	for k.Sign() > 0 {
		if k.Bit(0) == 1 {
			result = result.Add(addend)
		}
		addend = addend.double()
		k.Rsh(k, 1)
	}
	return result
}

// MSMChunkSize bounds the number of (scalar, point) pairs combined per
// inner accumulation pass, for cache locality.
const MSMChunkSize = 1 << 16

// MSM computes the multi-scalar multiplication sum(scalars[i] * points[i]),
// chunked at MSMChunkSize pairs per batch.
func MSM(scalars []Scalar, points []Point) (Point, error) {
	if len(scalars) != len(points) {
		return Point{}, fmt.Errorf("algebra: msm requires equal-length scalar and point sequences, got %d and %d", len(scalars), len(points))
	}
	acc := Identity()
	for start := 0; start < len(scalars); start += MSMChunkSize {
		end := start + MSMChunkSize
		if end > len(scalars) {
			end = len(scalars)
		}
		for i := start; i < end; i++ {
			acc = acc.Add(points[i].ScalarMul(scalars[i]))
		}
	}
	return acc, nil
}

// PointNumBytes is the length of the affine encoding used on the wire:
// a one-byte identity flag followed by big-endian x and y coordinates each
// padded to the base field's byte length.
const PointNumBytes = 1 + 32 + 32

// ToBytes encodes p as an uncompressed affine point with a leading identity
// flag byte.
func (p Point) ToBytes() [PointNumBytes]byte {
	var out [PointNumBytes]byte
	if p.infinity {
		out[0] = 1
		return out
	}
	writeBigIntBE(out[1:33], &p.x)
	writeBigIntBE(out[33:65], &p.y)
	return out
}

// PointFromBytes decodes the wire encoding produced by ToBytes.
func PointFromBytes(b []byte) (Point, error) {
	if len(b) != PointNumBytes {
		return Point{}, fmt.Errorf("algebra: point encoding must be %d bytes, got %d", PointNumBytes, len(b))
	}
	if b[0] == 1 {
		return Identity(), nil
	}
	var x, y big.Int
	x.SetBytes(b[1:33])
	y.SetBytes(b[33:65])
	return Point{x: x, y: y}, nil
}

func writeBigIntBE(dst []byte, v *big.Int) {
	b := v.Bytes()
	copy(dst[len(dst)-len(b):], b)
}

// String implements fmt.Stringer for debugging and logging.
func (p Point) String() string {
	if p.infinity {
		return "Point(infinity)"
	}
	return fmt.Sprintf("Point(%s, %s)", p.x.String(), p.y.String())
}
