package algebra

import "testing"

import "github.com/stretchr/testify/require"

func TestScalarAddSubRoundTrip(t *testing.T) {
	a := NewScalarFromUint64(7)
	b := NewScalarFromUint64(3)
	sum := a.Add(b)
	require.True(t, sum.Sub(b).Eq(a))
}

func TestScalarNegIsInverseOfAdd(t *testing.T) {
	a := RandomScalar()
	require.True(t, a.Add(a.Neg()).IsZero())
}

func TestScalarMulInverse(t *testing.T) {
	a := NewScalarFromUint64(42)
	inv := a.Inverse()
	require.True(t, a.Mul(inv).Eq(ScalarOne()))
}

func TestScalarInverseOfZeroPanics(t *testing.T) {
	require.Panics(t, func() {
		ScalarZero().Inverse()
	})
}

func TestScalarBytesRoundTrip(t *testing.T) {
	a := RandomScalar()
	b := a.ToBytes()
	got, err := ScalarFromBytes(b[:])
	require.NoError(t, err)
	require.True(t, a.Eq(got))
}

func TestScalarFromBytesRejectsWrongLength(t *testing.T) {
	_, err := ScalarFromBytes([]byte{1, 2, 3})
	require.Error(t, err)
}
