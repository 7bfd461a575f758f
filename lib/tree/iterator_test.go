package tree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIteratorEmptySet(t *testing.T) {
	set := NewTreeSet[int]()
	require.True(t, set.Begin().Equal(set.End()))
	require.False(t, set.Begin().Valid())
	require.Panics(t, func() {
		_ = set.End().Item()
	})
	// Stepping back from End on an empty set stays at End.
	require.True(t, set.End().Prev().Equal(set.End()))
}

func TestIteratorForwardWalk(t *testing.T) {
	set := NewTreeSetFromSlice[int]([]int{5, 3, 8, 1, 4, 7, 9})
	expected := []int{1, 3, 4, 5, 7, 8, 9}

	out := make([]int, 0, len(expected))
	for it := set.Begin(); !it.Equal(set.End()); it.Next() {
		require.True(t, it.Valid())
		out = append(out, it.Item())
	}
	require.Equal(t, expected, out)

	// Advancing an end iterator stays put.
	end := set.End()
	require.True(t, end.Next().Equal(set.End()))
}

func TestIteratorBackwardWalk(t *testing.T) {
	set := NewTreeSetFromSlice[int]([]int{5, 3, 8, 1, 4, 7, 9})
	expected := []int{9, 8, 7, 5, 4, 3, 1}

	out := make([]int, 0, len(expected))
	for it := set.End().Prev(); ; it.Prev() {
		out = append(out, it.Item())
		if it.Equal(set.Begin()) {
			break
		}
	}
	require.Equal(t, expected, out)
	require.Equal(t, 9, set.End().Prev().Item())
}

func TestIteratorBidirectionalSymmetry(t *testing.T) {
	set := NewTreeSetFromSlice[uint64]([]uint64{13, 8, 17, 1, 11, 15, 25, 6, 22, 27})

	// --(++it) == it holds on every position, end excluded by the loop.
	for it := set.Begin(); !it.Equal(set.End()); it.Next() {
		roundTrip := it.Clone().Next().Prev()
		require.True(t, roundTrip.Equal(it))
		require.Equal(t, it.Item(), roundTrip.Item())
	}

	// ++(--it) == it for every position that is not Begin.
	for it := set.End(); !it.Equal(set.Begin()); {
		it.Prev()
		if !it.Equal(set.Begin()) {
			require.True(t, it.Clone().Prev().Next().Equal(it))
		}
	}
}

func TestIteratorEquality(t *testing.T) {
	set := NewTreeSetFromSlice[int]([]int{1, 2, 3})
	require.True(t, set.Find(2).Equal(set.Find(2)))
	require.False(t, set.Find(1).Equal(set.Find(2)))

	// Same elements, different set: never equal, identity is per set.
	other := NewTreeSetFromSlice[int]([]int{1, 2, 3})
	require.False(t, set.Begin().Equal(other.Begin()))
	require.False(t, set.End().Equal(other.End()))
}

func TestIteratorStableAcrossOtherMutations(t *testing.T) {
	set := NewTreeSetFromSlice[int]([]int{10, 20, 30, 40, 50})
	it := set.Find(30)

	// Inserting and erasing elsewhere must not disturb a live iterator,
	// including erasures that trigger the two-child pointer surgery.
	set.Insert(35)
	set.Erase(10)
	set.Erase(40)
	require.True(t, it.Valid())
	require.Equal(t, 30, it.Item())

	require.Equal(t, 35, it.Clone().Next().Item())
	require.Equal(t, 20, it.Clone().Prev().Item())
}

func TestIteratorInvalidationOnErase(t *testing.T) {
	set := NewTreeSetFromSlice[int]([]int{1, 2, 3})
	it := set.Find(2)
	require.True(t, it.Valid())

	set.Erase(2)
	require.False(t, it.Valid())
	require.Panics(t, func() {
		_ = it.Item()
	})
	require.Panics(t, func() {
		it.Clone().Next()
	})

	// EraseAt on an invalidated iterator is a no-op.
	before := set.Len()
	set.EraseAt(it)
	require.Equal(t, before, set.Len())
}

func TestIteratorEraseAt(t *testing.T) {
	set := NewTreeSetFromSlice[int]([]int{5, 3, 8, 1})

	it := set.Find(3)
	set.EraseAt(it)
	require.False(t, it.Valid())
	require.Equal(t, []int{1, 5, 8}, collect(set))
	requireNoViolation(t, set)

	// End iterator: no-op.
	set.EraseAt(set.End())
	require.Equal(t, int64(3), set.Len())

	// Iterator owned by another set: no-op on this one.
	other := NewTreeSetFromSlice[int]([]int{1, 5})
	set.EraseAt(other.Find(5))
	require.Equal(t, int64(3), set.Len())
	require.Equal(t, int64(2), other.Len())
}

func TestIteratorEraseAtWhileWalking(t *testing.T) {
	set := NewTreeSetFromSlice[int]([]int{1, 2, 3, 4, 5, 6})

	// Drop the even elements: step first, then erase behind.
	for it := set.Begin(); !it.Equal(set.End()); {
		victim := it.Clone()
		it.Next()
		if victim.Item()%2 == 0 {
			set.EraseAt(victim)
			requireNoViolation(t, set)
		}
	}
	require.Equal(t, []int{1, 3, 5}, collect(set))
}
