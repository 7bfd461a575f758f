package tree

import (
	"errors"

	"github.com/benz9527/xset/lib/infra"
)

// rbtree rule validation utilities. Exported so that embedders can
// assert tree health in their own tests, the same way the test files
// of this package do after every mutation storm.

func asTreeSet[E infra.OrderedKey](ts TreeSet[E]) *treeSet[E] {
	set, ok := ts.(*treeSet[E])
	if !ok {
		return nil
	}
	return set
}

// RedViolationValidate walks the tree in sorted order and reports the
// first violation of the red rules: a red root, a red node with a red
// parent or a red child, or a non-black sentinel.
func RedViolationValidate[E infra.OrderedKey](ts TreeSet[E]) error {
	set := asTreeSet[E](ts)
	if set == nil || set.root == set.sentinel {
		return nil
	}

	if set.sentinel.color != Black {
		return errors.New("rbtree red violation: sentinel is not black")
	}
	if set.root.color != Black {
		return errors.New("rbtree red violation: root is not black")
	}

	for aux := set.head; aux != set.sentinel; aux = aux.succ(set.sentinel) {
		if aux.color != Red {
			continue
		}
		if aux.parent != set.sentinel && aux.parent.color == Red {
			return errors.New("rbtree red violation: red parent of a red node")
		}
		if aux.left.color == Red || aux.right.color == Red {
			return errors.New("rbtree red violation: red child of a red node")
		}
	}
	return nil
}

func blackDepthTo[E infra.OrderedKey](target, to *rbNode[E]) int {
	depth := 0
	for aux := target; aux != to; aux = aux.parent {
		if aux.color == Black {
			depth++
		}
	}
	return depth
}

// BFS traversal to load all nodes owning at least one sentinel child.
func bfsLeaves[E infra.OrderedKey](set *treeSet[E]) []*rbNode[E] {
	if set.root == set.sentinel {
		return nil
	}

	leaves := make([]*rbNode[E], 0, set.count>>1+1)
	queue := make([]*rbNode[E], 0, set.count>>1+1)
	queue = append(queue, set.root)

	for len(queue) > 0 {
		aux := queue[0]
		queue = queue[1:]
		if /* a sentinel-terminated path ends here */ aux.left == set.sentinel || aux.right == set.sentinel {
			leaves = append(leaves, aux)
		}
		if aux.left != set.sentinel {
			queue = append(queue, aux.left)
		}
		if aux.right != set.sentinel {
			queue = append(queue, aux.right)
		}
	}
	return leaves
}

// BlackViolationValidate checks black-height uniformity: every
// sentinel-terminated path from the root passes through the same number
// of black nodes.
func BlackViolationValidate[E infra.OrderedKey](ts TreeSet[E]) error {
	set := asTreeSet[E](ts)
	if set == nil {
		return nil
	}
	leaves := bfsLeaves(set)
	if leaves == nil {
		return nil
	}

	blackDepth := blackDepthTo(leaves[0], set.root)
	for i := 1; i < len(leaves); i++ {
		if blackDepthTo(leaves[i], set.root) != blackDepth {
			return errors.New("rbtree black violation")
		}
	}
	return nil
}

// OrderViolationValidate checks the BST property through a full sorted
// walk (strictly ascending in comparator order), that the walk length
// matches Len, and that the cached head and tail are the true bounds.
func OrderViolationValidate[E infra.OrderedKey](ts TreeSet[E]) error {
	set := asTreeSet[E](ts)
	if set == nil {
		return nil
	}
	if set.root == set.sentinel {
		if set.count != 0 || set.head != set.sentinel || set.tail != set.sentinel {
			return errors.New("rbtree order violation: empty tree with stale state")
		}
		return nil
	}

	if set.head != set.root.minimum(set.sentinel) {
		return errors.New("rbtree order violation: stale head cache")
	}
	if set.tail != set.root.maximum(set.sentinel) {
		return errors.New("rbtree order violation: stale tail cache")
	}

	walked := int64(0)
	prev := set.sentinel
	for aux := set.head; aux != set.sentinel; aux = aux.succ(set.sentinel) {
		if prev != set.sentinel && set.itemCompare(prev.item, aux.item) >= 0 {
			return errors.New("rbtree order violation: not strictly ascending")
		}
		prev = aux
		walked++
	}
	if walked != set.count {
		return errors.New("rbtree order violation: count mismatch")
	}
	return nil
}
