package tree

import (
	"github.com/benz9527/xset/lib/infra"
)

// rbNode carries one stored element. Every navigation method takes the
// owning set's sentinel explicitly, so a node never needs a back-pointer
// to its set. The sentinel stands in for all leaf children and for the
// parent of the root; it is permanently black and its links point to
// itself, which keeps children dereferenceable everywhere and removes
// the nil checks from the rotation and rebalance paths.
type rbNode[E infra.OrderedKey] struct {
	parent  *rbNode[E]
	left    *rbNode[E]
	right   *rbNode[E]
	item    E
	color   RBColor
	hasItem bool
}

func (node *rbNode[E]) direction(sentinel *rbNode[E]) RBDirection {
	if node.parent == sentinel {
		return Root
	}
	if node == node.parent.left {
		return Left
	}
	return Right
}

func (node *rbNode[E]) sibling(sentinel *rbNode[E]) *rbNode[E] {
	switch node.direction(sentinel) {
	case Left:
		return node.parent.right
	case Right:
		return node.parent.left
	default:
	}
	return sentinel
}

func (node *rbNode[E]) grandpa() *rbNode[E] {
	return node.parent.parent
}

func (node *rbNode[E]) fixLink(sentinel *rbNode[E]) {
	if node.left != sentinel {
		node.left.parent = node
	}
	if node.right != sentinel {
		node.right.parent = node
	}
}

func (node *rbNode[E]) minimum(sentinel *rbNode[E]) *rbNode[E] {
	aux := node
	for ; aux.left != sentinel; aux = aux.left {
	}
	return aux
}

func (node *rbNode[E]) maximum(sentinel *rbNode[E]) *rbNode[E] {
	aux := node
	for ; aux.right != sentinel; aux = aux.right {
	}
	return aux
}

// The succ node of the current node is its next node in sorted order.
// Returns the sentinel when called on the maximum.
func (node *rbNode[E]) succ(sentinel *rbNode[E]) *rbNode[E] {
	if node.right != sentinel {
		return node.right.minimum(sentinel)
	}

	x, aux := node, node.parent
	// Backtrack to the first ancestor reached through a left-child step.
	for aux != sentinel && x == aux.right {
		x = aux
		aux = aux.parent
	}
	return aux
}

// The pred node of the current node is its previous node in sorted order.
// Returns the sentinel when called on the minimum.
func (node *rbNode[E]) pred(sentinel *rbNode[E]) *rbNode[E] {
	if node.left != sentinel {
		return node.left.maximum(sentinel)
	}

	x, aux := node, node.parent
	for aux != sentinel && x == aux.left {
		x = aux
		aux = aux.parent
	}
	return aux
}
