package buffer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInsertAndGet(t *testing.T) {
	b := New[string](0)
	_, had := b.Insert(5, "hello")
	require.False(t, had)

	v, ok := b.Get(5)
	require.True(t, ok)
	require.Equal(t, "hello", v)
}

func TestGetAbsentReturnsFalse(t *testing.T) {
	b := New[int](0)
	_, ok := b.Get(100)
	require.False(t, ok)
}

func TestInsertGrowsAndPreservesEarlierEntries(t *testing.T) {
	b := New[int](0)
	b.Insert(0, 1)
	b.Insert(1000, 2)

	v, ok := b.Get(0)
	require.True(t, ok)
	require.Equal(t, 1, v)

	v, ok = b.Get(1000)
	require.True(t, ok)
	require.Equal(t, 2, v)
}

func TestTakeRemoves(t *testing.T) {
	b := New[int](0)
	b.Insert(3, 42)
	v, ok := b.Take(3)
	require.True(t, ok)
	require.Equal(t, 42, v)

	_, ok = b.Get(3)
	require.False(t, ok)
}

func TestEntryMutCreatesZeroValue(t *testing.T) {
	b := New[[]int](0)
	entry := b.EntryMut(7)
	require.Nil(t, *entry)
	*entry = append(*entry, 1)

	v, ok := b.Get(7)
	require.True(t, ok)
	require.Equal(t, []int{1}, v)
}

func TestGetMutAllowsInPlaceMutation(t *testing.T) {
	b := New[int](0)
	b.Insert(2, 10)
	ptr := b.GetMut(2)
	require.NotNil(t, ptr)
	*ptr = 20

	v, _ := b.Get(2)
	require.Equal(t, 20, v)
}

func TestGetMutAbsentReturnsNil(t *testing.T) {
	b := New[int](0)
	require.Nil(t, b.GetMut(9))
}
