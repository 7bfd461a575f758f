package tree

import (
	"iter"

	"github.com/benz9527/xset/lib/infra"
)

// go install golang.org/x/tools/cmd/stringer@latest

//go:generate stringer -type=RBColor
type RBColor uint8

const (
	Black RBColor = iota
	Red
)

//go:generate stringer -type=RBDirection
type RBDirection int8

const (
	Left RBDirection = -1 + iota
	Root
	Right
)

// TreeSet is an ordered collection of unique elements backed by a
// red-black tree. Elements are kept in comparator order; duplicate
// inserts and absent erasures are silent no-ops, so every mutation
// is idempotent. Not safe for concurrent use.
type TreeSet[E infra.OrderedKey] interface {
	Len() int64
	Empty() bool
	// Insert links item at its ordered position. No-op if present.
	Insert(item E)
	// Erase removes item. No-op if absent.
	Erase(item E)
	// EraseAt removes the element the iterator references. No-op on an
	// end or invalidated iterator. The iterator is invalidated.
	EraseAt(it *Iterator[E])
	// Find returns an iterator on item, or End() if absent.
	Find(item E) *Iterator[E]
	// LowerBound returns an iterator on the first element that does not
	// order before item, or End() if every element orders before it.
	LowerBound(item E) *Iterator[E]
	Begin() *Iterator[E]
	End() *Iterator[E]
	// Swap exchanges the whole content of two sets in O(1).
	Swap(other TreeSet[E])
	// Clone rebuilds an independent deep copy by reinserting every
	// element in sorted order.
	Clone() TreeSet[E]
	// Foreach runs action over the elements in sorted order until it
	// returns false.
	Foreach(action func(idx int64, color RBColor, item E) bool)
	All() iter.Seq[E]
	Backward() iter.Seq[E]
	// Release tears the whole tree down and leaves an empty, reusable set.
	Release()
}

type TreeSetOpt[E infra.OrderedKey] func(*treeSet[E])

func WithTreeSetDesc[E infra.OrderedKey]() TreeSetOpt[E] {
	return func(set *treeSet[E]) {
		set.isDesc = true
	}
}
