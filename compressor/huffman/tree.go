package huffman

import (
	"fmt"

	"github.com/chronos-tachyon/assert"
)

// Tree is either a *Leaf or an *Internal node.
type Tree interface {
	Weight() uint64
}

// Leaf holds one byte value of the alphabet.
type Leaf struct {
	weight uint64
	Symbol byte
}

// Internal owns exactly two children. Its weight is the sum of theirs.
type Internal struct {
	weight      uint64
	Left, Right Tree
}

func NewLeaf(symbol byte, weight uint64) *Leaf {
	return &Leaf{weight: weight, Symbol: symbol}
}

func NewInternal(left, right Tree) *Internal {
	return &Internal{
		weight: left.Weight() + right.Weight(),
		Left:   left,
		Right:  right,
	}
}

func (leaf *Leaf) Weight() uint64 {
	return leaf.weight
}

func (node *Internal) Weight() uint64 {
	return node.weight
}

func (leaf *Leaf) String() string {
	return fmt.Sprintf("Leaf(%#02x:%d)", leaf.Symbol, leaf.weight)
}

func (node *Internal) String() string {
	return fmt.Sprintf("Internal(%v, %v):%d", node.Left, node.Right, node.weight)
}

// BuildTree merges the two lightest nodes of the list until one remains.
// The first node removed becomes the left child. The list is consumed.
func BuildTree(list *PriorityList) (Tree, error) {
	if list == nil || list.Len() == 0 {
		return nil, fmt.Errorf("cannot build a tree from an empty list: %w", ErrEmptyInput)
	}
	for list.Len() > 1 {
		left, right := list.popPair()
		list.Insert(NewInternal(left, right))
	}
	root := list.nodes[0]
	list.nodes = list.nodes[:0]
	return root, nil
}

// Height is the length of the longest root-to-leaf path. A lone leaf has
// height 0.
func Height(tree Tree) int {
	switch node := tree.(type) {
	case *Internal:
		return 1 + max(Height(node.Left), Height(node.Right))
	case *Leaf:
		return 0
	}
	return -1
}

// TreeSize is the number of bytes WriteTree emits for tree.
func TreeSize(tree Tree) int {
	switch node := tree.(type) {
	case *Internal:
		return 1 + TreeSize(node.Left) + TreeSize(node.Right)
	case *Leaf:
		if needsEscape(node.Symbol) {
			return 2
		}
		return 1
	}
	return 0
}

func countLeaves(tree Tree) int {
	switch node := tree.(type) {
	case *Internal:
		return countLeaves(node.Left) + countLeaves(node.Right)
	case *Leaf:
		return 1
	}
	return 0
}

func assertFullTree(tree Tree) {
	if node, ok := tree.(*Internal); ok {
		assert.Assertf(node.Left != nil && node.Right != nil, "internal node %v is missing a child", node)
		assertFullTree(node.Left)
		assertFullTree(node.Right)
	}
}
