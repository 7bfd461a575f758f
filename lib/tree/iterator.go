package tree

import (
	"iter"

	"github.com/benz9527/xset/lib/infra"
)

// Iterator is a cursor over one TreeSet: a concrete (set, node) pair.
// The unique end state references the set's sentinel. Stepping reuses
// the tree's own links through succ and pred, so a full traversal costs
// O(n) without re-descending from the root.
//
// An iterator is invalidated by the erasure of the node it references;
// iterators elsewhere in the set stay valid across inserts and erasures.
type Iterator[E infra.OrderedKey] struct {
	set     *treeSet[E]
	current *rbNode[E]
}

// Valid reports whether the iterator references a live element, i.e. it
// is not at End and the node has not been erased underneath it.
func (it *Iterator[E]) Valid() bool {
	return it != nil && it.set != nil && it.current != it.set.sentinel && it.current.hasItem
}

// Item returns the referenced element. Dereferencing an end or
// invalidated iterator is a caller contract violation.
func (it *Iterator[E]) Item() E {
	if !it.Valid() {
		panic( /* debug assertion */ "[treeset] dereference an end or invalidated iterator")
	}
	return it.current.item
}

// Next advances to the in-order successor; advancing past the maximum
// reaches the end state, where further calls stay put.
func (it *Iterator[E]) Next() *Iterator[E] {
	if it.current == it.set.sentinel {
		return it
	}
	if !it.current.hasItem {
		panic( /* debug assertion */ "[treeset] advance an invalidated iterator")
	}
	it.current = it.current.succ(it.set.sentinel)
	return it
}

// Prev retreats to the in-order predecessor. From the end state it moves
// to the cached maximum, so stepping back from End yields the largest
// element without a separate reverse-end concept.
func (it *Iterator[E]) Prev() *Iterator[E] {
	if it.current == it.set.sentinel {
		it.current = it.set.tail
		return it
	}
	if !it.current.hasItem {
		panic( /* debug assertion */ "[treeset] retreat an invalidated iterator")
	}
	it.current = it.current.pred(it.set.sentinel)
	return it
}

// Equal reports whether both iterators reference the same node of the
// same set. Node identity, not element equality: an erased element is
// no longer queryable by value.
func (it *Iterator[E]) Equal(other *Iterator[E]) bool {
	return it != nil && other != nil && it.set == other.set && it.current == other.current
}

func (it *Iterator[E]) Clone() *Iterator[E] {
	return &Iterator[E]{set: it.set, current: it.current}
}

// All yields the elements in ascending comparator order.
func (set *treeSet[E]) All() iter.Seq[E] {
	return func(yield func(E) bool) {
		for aux := set.head; aux != set.sentinel; aux = aux.succ(set.sentinel) {
			if !yield(aux.item) {
				return
			}
		}
	}
}

// Backward yields the elements in descending comparator order.
func (set *treeSet[E]) Backward() iter.Seq[E] {
	return func(yield func(E) bool) {
		for aux := set.tail; aux != set.sentinel; aux = aux.pred(set.sentinel) {
			if !yield(aux.item) {
				return
			}
		}
	}
}
