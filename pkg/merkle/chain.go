package merkle

// Chain links each item to the one before it, first item first.
// Two conversations share a node exactly when they share the prefix up to it.
func Chain[T any](items []T) []*Node {
	nodes := make([]*Node, 0, len(items))

	var parent *Node
	for _, item := range items {
		parent = NewNode(item, parent)
		nodes = append(nodes, parent)
	}

	return nodes
}

// Tip returns the last node of the chain over items, or nil when items is
// empty.
func Tip[T any](items []T) *Node {
	nodes := Chain(items)
	if len(nodes) == 0 {
		return nil
	}
	return nodes[len(nodes)-1]
}

// Head returns the hash of Tip, or "" when items is empty.
func Head[T any](items []T) string {
	if tip := Tip(items); tip != nil {
		return tip.Hash
	}
	return ""
}
