package suggest

// node is the atomic storage unit of the trie: a character-indexed child map
// plus a terminal weight. A zero weight means no stored query ends here.
// Every node is exclusively owned by its parent, so the structure is a strict
// tree with no sharing and no cycles.
type node struct {
	children map[rune]*node
	weight   float64
}

// child returns the child for r, creating it on first access.
func (n *node) child(r rune) *node {
	c, ok := n.children[r]
	if !ok {
		if n.children == nil {
			n.children = make(map[rune]*node)
		}
		c = &node{}
		n.children[r] = c
	}
	return c
}

// walk descends along key and returns the node it ends on, or nil if the
// path is incomplete.
func (n *node) walk(key []rune) *node {
	cur := n
	for _, r := range key {
		cur = cur.children[r]
		if cur == nil {
			return nil
		}
	}
	return cur
}

// prunable reports whether this node can be detached from its parent.
func (n *node) prunable() bool {
	return len(n.children) == 0 && n.weight <= 0
}

// countTerminals counts stored queries reachable from this node.
func (n *node) countTerminals() int {
	count := 0
	if n.weight > 0 {
		count++
	}
	for _, c := range n.children {
		count += c.countTerminals()
	}
	return count
}
