package tree

import (
	"github.com/benz9527/xset/lib/infra"
)

// References:
// https://elixir.bootlin.com/linux/latest/source/lib/rbtree.c
// https://en.wikipedia.org/wiki/Red%E2%80%93black_tree#Properties
// rbtree properties:
// p1. Every node is either red or black.
// p2. The sentinel (every leaf position) is black.
// p3. A red node does not have a red child. (red-violation)
// p4. Every path from a given node down to the sentinel goes through
//   the same number of black nodes. (black-violation)
// p5. The root is black.
// (Conclusion) If a node X has exactly one real child, that child must
//   be red, otherwise the sentinel below X would sit at a different
//   black depth than the child's sentinel, violating p4.
// So the shortest path holds black nodes only and the longest path is
// at most twice the shortest one.
type treeSet[E infra.OrderedKey] struct {
	sentinel *rbNode[E]
	root     *rbNode[E]
	// head and tail cache the minimum and maximum nodes. They are
	// maintained on every insert and erase so Begin and the backward
	// step from End stay O(1).
	head   *rbNode[E]
	tail   *rbNode[E]
	count  int64
	isDesc bool
}

var _ TreeSet[int] = (*treeSet[int])(nil)

func (set *treeSet[E]) itemCompare(i1, i2 E) int64 {
	if i1 == i2 {
		return 0
	} else if i1 < i2 {
		if !set.isDesc {
			return -1
		}
		return 1
	} else {
		if !set.isDesc {
			return 1
		}
		return -1
	}
}

func (set *treeSet[E]) Len() int64 {
	return set.count
}

func (set *treeSet[E]) Empty() bool {
	return set.count == 0
}

func (set *treeSet[E]) Begin() *Iterator[E] {
	return &Iterator[E]{set: set, current: set.head}
}

func (set *treeSet[E]) End() *Iterator[E] {
	return &Iterator[E]{set: set, current: set.sentinel}
}

/*
		 |                         |
		 X                         S
		/ \     leftRotate(X)     / \
	   L   S    ============>    X   Sd
		  / \                   / \
		Sc   Sd                L   Sc
*/
func (set *treeSet[E]) leftRotate(x *rbNode[E]) {
	if x == set.sentinel || x.right == set.sentinel {
		// impossible run to here
		panic( /* debug assertion */ "[treeset] left rotate node x or x.right is the sentinel")
	}

	p, y := x.parent, x.right
	dir := x.direction(set.sentinel)
	x.right, y.left = y.left, x

	x.fixLink(set.sentinel)
	y.fixLink(set.sentinel)

	switch dir {
	case Root:
		set.root = y
	case Left:
		p.left = y
	case Right:
		p.right = y
	}
	y.parent = p
}

/*
		 |                         |
		 X                         S
		/ \     rightRotate(X)    / \
	   S   R    ============>    Sc  X
	  / \                           / \
	Sc   Sd                       Sd   R
*/
func (set *treeSet[E]) rightRotate(x *rbNode[E]) {
	if x == set.sentinel || x.left == set.sentinel {
		// impossible run to here
		panic( /* debug assertion */ "[treeset] right rotate node x or x.left is the sentinel")
	}

	p, y := x.parent, x.left
	dir := x.direction(set.sentinel)
	x.left, y.right = y.right, x

	x.fixLink(set.sentinel)
	y.fixLink(set.sentinel)

	switch dir {
	case Root:
		set.root = y
	case Left:
		p.left = y
	case Right:
		p.right = y
	}
	y.parent = p
}

// transplant replaces u's position in the tree with v. The shared splice
// primitive of both erase cases. v may be the sentinel; its parent link
// is still set, which is what lets the double-black fix-up climb from a
// spliced-out position.
func (set *treeSet[E]) transplant(u, v *rbNode[E]) {
	switch u.direction(set.sentinel) {
	case Root:
		set.root = v
	case Left:
		u.parent.left = v
	case Right:
		u.parent.right = v
	}
	v.parent = u.parent
}

// Insert links item at its BST position as a red node and restores the
// rbtree properties. Inserting a present item is a no-op, so the set
// never stores duplicates.
func (set *treeSet[E]) Insert(item E) {
	x, y := set.root, set.sentinel
	for x != set.sentinel {
		y = x
		res := set.itemCompare(item, x.item)
		if /* equal */ res == 0 {
			return
		} else /* less */ if res < 0 {
			x = x.left
		} else /* greater */ {
			x = x.right
		}
	}

	z := &rbNode[E]{
		item:    item,
		color:   Red,
		parent:  y,
		left:    set.sentinel,
		right:   set.sentinel,
		hasItem: true,
	}

	if set.head == set.sentinel || set.itemCompare(item, set.head.item) < 0 {
		set.head = z
	}
	if set.tail == set.sentinel || set.itemCompare(set.tail.item, item) < 0 {
		set.tail = z
	}

	if y == set.sentinel {
		set.root = z
	} else if set.itemCompare(item, y.item) < 0 {
		y.left = z
	} else {
		y.right = z
	}

	set.count++
	set.insertRebalance(z)
}

/*
New node X is red by default.

<X> is a RED node.
[X] is a BLACK node (or the sentinel).

im1: Parent P and uncle U are both red. (red-violation)
Repaint P and U black, grandpa G red, then recurse on G.

	    [G]             <G>
	    / \             / \
	  <P> <U>  ====>  [P] [U]
	  /               /
	<X>             <X>

im2: Uncle U is black and X is the inner child, opposite direction to P.
Rotate P toward its own side so X becomes an outer child, then enter im3.

	  [G]                 [G]
	  / \    rotate(P)    / \
	<P> [U]  ========>  <X> [U]
	  \                 /
	  <X>             <P>

im3: Uncle U is black and X is the outer child. Repaint P black, G red,
rotate G away from P. The subtree root is black again, loop ends.

	    [G]                 <P>               [P]
	    / \    rotate(G)    / \    repaint    / \
	  <P> [U]  ========>  <X> [G]  ======>  <X> <G>
	  /                         \                 \
	<X>                         [U]               [U]
*/
func (set *treeSet[E]) insertRebalance(x *rbNode[E]) {
	for x.parent.color == Red {
		// A red parent is never the root, so the grandpa is real.
		uncle := x.parent.sibling(set.sentinel)
		if /* im1 */ uncle.color == Red {
			x.parent.color = Black
			uncle.color = Black
			gp := x.grandpa()
			gp.color = Red
			x = gp
			continue
		}

		dir := x.parent.direction(set.sentinel)
		if /* im2 */ x.direction(set.sentinel) != dir {
			p := x.parent
			switch dir {
			case Left:
				set.leftRotate(p)
			case Right:
				set.rightRotate(p)
			default:
				// impossible run to here
				panic( /* debug assertion */ "[treeset] insert rebalance violate (im2)")
			}
			x = p // enter im3 as the outer child
		}

		p, gp := x.parent, x.grandpa()
		p.color = Black
		gp.color = Red
		switch /* im3 */ dir {
		case Left:
			set.rightRotate(gp)
		case Right:
			set.leftRotate(gp)
		default:
			// impossible run to here
			panic( /* debug assertion */ "[treeset] insert rebalance violate (im3)")
		}
	}
	// Idempotent, covers the empty-rebalance path as well.
	set.root.color = Black
}

// Find returns an iterator on the node holding item, or End() if absent.
func (set *treeSet[E]) Find(item E) *Iterator[E] {
	aux := set.root
	for aux != set.sentinel {
		res := set.itemCompare(item, aux.item)
		if /* equal */ res == 0 {
			break
		} else /* less */ if res < 0 {
			aux = aux.left
		} else /* greater */ {
			aux = aux.right
		}
	}
	return &Iterator[E]{set: set, current: aux}
}

// LowerBound returns an iterator on the smallest element that does not
// order before item, tracking the best node seen while descending.
func (set *treeSet[E]) LowerBound(item E) *Iterator[E] {
	best := set.sentinel
	aux := set.root
	for aux != set.sentinel {
		res := set.itemCompare(item, aux.item)
		if /* equal */ res == 0 {
			best = aux
			break
		} else /* less */ if res < 0 {
			// aux orders after item and before every earlier candidate.
			best = aux
			aux = aux.left
		} else /* greater */ {
			aux = aux.right
		}
	}
	return &Iterator[E]{set: set, current: best}
}

// Erase removes item from the set. No-op if absent.
func (set *treeSet[E]) Erase(item E) {
	set.EraseAt(set.Find(item))
}

// EraseAt removes the node the iterator references. No-op on an end
// iterator, an iterator of another set, or one already invalidated.
func (set *treeSet[E]) EraseAt(it *Iterator[E]) {
	if it == nil || it.set != set || it.current == set.sentinel || !it.current.hasItem {
		return
	}
	set.removeNode(it.current)
}

func (set *treeSet[E]) removeNode(z *rbNode[E]) {
	if set.head == z {
		set.head = z.succ(set.sentinel)
	}
	if set.tail == z {
		set.tail = z.pred(set.sentinel)
	}

	y, originalColor := z, z.color
	var x *rbNode[E]
	if z.left == set.sentinel {
		x = z.right
		set.transplant(z, z.right)
	} else if z.right == set.sentinel {
		x = z.left
		set.transplant(z, z.left)
	} else {
		// Two real children: the in-order successor y is detached from
		// its position and moved into z's by pointer surgery, not by a
		// payload copy, so every other live node keeps its identity.
		y = z.right.minimum(set.sentinel)
		originalColor = y.color
		x = y.right
		if y.parent == z {
			x.parent = y
		} else {
			set.transplant(y, y.right)
			y.right = z.right
			y.right.parent = y
		}
		set.transplant(z, y)
		y.left = z.left
		y.left.parent = y
		y.color = z.color
	}

	if /* black-violation at x */ originalColor == Black {
		set.removeRebalance(x)
	}
	set.count--

	z.parent, z.left, z.right = nil, nil, nil
	z.hasItem = false
	// The fix-up may leave the sentinel's parent pointing into the tree;
	// the sentinel must stay self-linked.
	set.sentinel.parent = set.sentinel
}

/*
An extra black token conceptually sits on X after a black node left the
tree on X's path. Sc is the sibling's child on X's side (near), Sd the
one on the far side.

<X> is a RED node.
[X] is a BLACK node (or the sentinel).
{X} is either.

rm1: Sibling S is red, so P, Sc and Sd must be black. Rotate P toward
X's side and swap the colors of P and S. Converts to a black-sibling
case below.

	  [P]                   <S>               [S]
	  / \    l-rotate(P)    / \    repaint    / \
	[X] <S>  ==========>  [P] [Sd]  ======>  <P> [Sd]
	    / \               / \               / \
	 [Sc] [Sd]          [X] [Sc]          [X] [Sc]

rm2: S, Sc and Sd are all black. Repaint S red; the missing black moves
up to P, recurse (the loop exits right away when P is red, absorbing the
token by painting P black after the loop).

	  {P}             {P}
	  / \             / \
	[X] [S]  ====>  [X] <S>
	    / \             / \
	 [Sc] [Sd]       [Sc] [Sd]

rm3: S black, near child Sc red, far child Sd black. Rotate S away from
X's side and swap the colors of S and Sc. Brings a red child into the
far position, enter rm4.

	                        {P}                {P}
	  {P}                   / \                / \
	  / \    r-rotate(S)  [X] <Sc>   repaint  [X] [Sc]
	[X] [S]  ==========>        \    ======>       \
	    / \                     [S]                <S>
	  <Sc> [Sd]                   \                  \
	                              [Sd]               [Sd]

rm4: S black, far child Sd red. Rotate P toward X's side, give S the
color of P, paint P and Sd black. The token is consumed, loop ends.

	  {P}                   [S]                {S}
	  / \    l-rotate(P)    / \     repaint    / \
	[X] [S]  ==========>  {P} <Sd>  ======>  [P] [Sd]
	    / \               / \                / \
	 [Sc] <Sd>          [X] [Sc]           [X] [Sc]
*/
func (set *treeSet[E]) removeRebalance(x *rbNode[E]) {
	for x != set.root && x.color == Black {
		dir := x.direction(set.sentinel)
		sibling := x.sibling(set.sentinel)
		if /* rm1 */ sibling.color == Red {
			sibling.color = Black
			x.parent.color = Red
			switch dir {
			case Left:
				set.leftRotate(x.parent)
			case Right:
				set.rightRotate(x.parent)
			default:
				// impossible run to here
				panic( /* debug assertion */ "[treeset] remove rebalance violate (rm1)")
			}
			sibling = x.sibling(set.sentinel)
		}

		var sc, sd *rbNode[E]
		switch dir {
		case Left:
			sc, sd = sibling.left, sibling.right
		case Right:
			sc, sd = sibling.right, sibling.left
		default:
			// impossible run to here
			panic( /* debug assertion */ "[treeset] remove rebalance violate (rm2)")
		}

		if /* rm2 */ sc.color == Black && sd.color == Black {
			sibling.color = Red
			x = x.parent
			continue
		}

		if /* rm3 */ sd.color == Black {
			sc.color = Black
			sibling.color = Red
			switch dir {
			case Left:
				set.rightRotate(sibling)
			case Right:
				set.leftRotate(sibling)
			default:
				// impossible run to here
				panic( /* debug assertion */ "[treeset] remove rebalance violate (rm3)")
			}
			sibling = x.sibling(set.sentinel)
			if dir == Left {
				sd = sibling.right
			} else {
				sd = sibling.left
			}
		}

		/* rm4 */
		sibling.color = x.parent.color
		x.parent.color = Black
		sd.color = Black
		switch dir {
		case Left:
			set.leftRotate(x.parent)
		case Right:
			set.rightRotate(x.parent)
		default:
			// impossible run to here
			panic( /* debug assertion */ "[treeset] remove rebalance violate (rm4)")
		}
		x = set.root
	}
	// Absorb the token. Also covers the red spliced-in child case.
	x.color = Black
}

// Swap exchanges the whole internal state of two sets in O(1). Live
// iterators keep referencing the nodes they were on, which now belong
// to the other set object.
func (set *treeSet[E]) Swap(other TreeSet[E]) {
	o, ok := other.(*treeSet[E])
	if !ok || o == nil {
		// impossible run to here with the provided constructors
		panic( /* debug assertion */ "[treeset] swap with a foreign TreeSet implementation")
	}
	set.sentinel, o.sentinel = o.sentinel, set.sentinel
	set.root, o.root = o.root, set.root
	set.head, o.head = o.head, set.head
	set.tail, o.tail = o.tail, set.tail
	set.count, o.count = o.count, set.count
	set.isDesc, o.isDesc = o.isDesc, set.isDesc
}

func (set *treeSet[E]) Clone() TreeSet[E] {
	var opts []TreeSetOpt[E]
	if set.isDesc {
		opts = append(opts, WithTreeSetDesc[E]())
	}
	cp := NewTreeSet[E](opts...)
	// Reinsert in sorted order: the copy shares no node with the source.
	set.Foreach(func(_ int64, _ RBColor, item E) bool {
		cp.Insert(item)
		return true
	})
	return cp
}

// Foreach walks the elements in sorted order through the successor links
// instead of a traversal stack.
func (set *treeSet[E]) Foreach(action func(idx int64, color RBColor, item E) bool) {
	idx := int64(0)
	for aux := set.head; aux != set.sentinel; aux = aux.succ(set.sentinel) {
		if !action(idx, aux.color, aux.item) {
			return
		}
		idx++
	}
}

// Release unlinks every node and resets the set to empty. The sentinel
// is released last conceptually: no node may keep a leaf link to it
// once torn down, so all links are cleared node by node. The set stays
// usable afterwards.
func (set *treeSet[E]) Release() {
	aux := set.root
	set.root, set.head, set.tail = set.sentinel, set.sentinel, set.sentinel
	set.count = 0

	stack := make([]*rbNode[E], 0, 32)
	for ; aux != set.sentinel; aux = aux.left {
		stack = append(stack, aux)
	}

	for size := len(stack); size > 0; size = len(stack) {
		aux = stack[size-1]
		stack = stack[:size-1]
		r := aux.right
		aux.parent, aux.left, aux.right = nil, nil, nil
		aux.hasItem = false
		for ; r != set.sentinel; r = r.left {
			stack = append(stack, r)
		}
	}
}

func NewTreeSet[E infra.OrderedKey](opts ...TreeSetOpt[E]) TreeSet[E] {
	set := &treeSet[E]{}
	for _, o := range opts {
		o(set)
	}

	sentinel := &rbNode[E]{color: Black}
	sentinel.parent, sentinel.left, sentinel.right = sentinel, sentinel, sentinel
	set.sentinel = sentinel
	set.root, set.head, set.tail = sentinel, sentinel, sentinel
	return set
}

// NewTreeSetFromSlice builds a set holding the distinct elements of
// items; duplicates collapse silently.
func NewTreeSetFromSlice[E infra.OrderedKey](items []E, opts ...TreeSetOpt[E]) TreeSet[E] {
	set := NewTreeSet[E](opts...)
	for _, item := range items {
		set.Insert(item)
	}
	return set
}
