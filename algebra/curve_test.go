package algebra

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPointAddWithIdentity(t *testing.T) {
	g := Generator()
	require.True(t, g.Add(Identity()).Eq(g))
}

func TestPointDoubleMatchesScalarMulByTwo(t *testing.T) {
	g := Generator()
	doubled := g.Add(g)
	scaled := g.ScalarMul(NewScalarFromUint64(2))
	require.True(t, doubled.Eq(scaled))
}

func TestPointNegCancels(t *testing.T) {
	g := Generator()
	require.True(t, g.Add(g.Neg()).Eq(Identity()))
}

func TestScalarMulDistributesOverAddition(t *testing.T) {
	g := Generator()
	three := g.ScalarMul(NewScalarFromUint64(3))
	oneAndTwo := g.ScalarMul(NewScalarFromUint64(1)).Add(g.ScalarMul(NewScalarFromUint64(2)))
	require.True(t, three.Eq(oneAndTwo))
}

func TestMSMMatchesManualSum(t *testing.T) {
	g := Generator()
	scalars := []Scalar{NewScalarFromUint64(2), NewScalarFromUint64(5)}
	points := []Point{g, g.ScalarMul(NewScalarFromUint64(7))}

	got, err := MSM(scalars, points)
	require.NoError(t, err)

	want := g.ScalarMul(NewScalarFromUint64(2)).Add(points[1].ScalarMul(NewScalarFromUint64(5)))
	require.True(t, got.Eq(want))
}

func TestMSMRejectsMismatchedLengths(t *testing.T) {
	_, err := MSM([]Scalar{ScalarOne()}, nil)
	require.Error(t, err)
}

func TestPointBytesRoundTrip(t *testing.T) {
	g := Generator().ScalarMul(NewScalarFromUint64(11))
	b := g.ToBytes()
	got, err := PointFromBytes(b[:])
	require.NoError(t, err)
	require.True(t, g.Eq(got))
}

func TestIdentityBytesRoundTrip(t *testing.T) {
	b := Identity().ToBytes()
	got, err := PointFromBytes(b[:])
	require.NoError(t, err)
	require.True(t, got.IsIdentity())
}
