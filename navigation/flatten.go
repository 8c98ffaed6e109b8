package navigation

import "github.com/poiesic/omnisearch/core"

// Flatten returns the leaves below root, each paired with its ancestors.
// The root and its direct children are only traversed; a childless root
// yields no documents. Leaves appear in document order.
func Flatten(root *core.NavigationNode) []core.FlattenedNode {
	if root == nil {
		return nil
	}
	var out []core.FlattenedNode
	for _, child := range root.Children {
		out = flattenNode(child, []*core.NavigationNode{root}, out)
	}
	return out
}

func flattenNode(node *core.NavigationNode, ancestors []*core.NavigationNode, out []core.FlattenedNode) []core.FlattenedNode {
	if node == nil {
		return out
	}
	if node.IsLeaf() {
		parents := make([]*core.NavigationNode, len(ancestors))
		copy(parents, ancestors)
		return append(out, core.FlattenedNode{Node: node, Parents: parents})
	}
	// Full slice expression forces a copy on append so siblings never share a tail.
	next := append(ancestors[:len(ancestors):len(ancestors)], node)
	for _, child := range node.Children {
		out = flattenNode(child, next, out)
	}
	return out
}
