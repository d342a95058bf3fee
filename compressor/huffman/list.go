package huffman

import (
	"github.com/chronos-tachyon/assert"
)

// PriorityList keeps tree nodes in ascending weight order. The two
// lightest nodes are always at the front.
type PriorityList struct {
	nodes []Tree
}

// NewPriorityList inserts one leaf per occurring byte value, visiting the
// values from 0 to 255.
func NewPriorityList(table FrequencyTable) *PriorityList {
	list := &PriorityList{nodes: make([]Tree, 0, table.Distinct())}
	for symbol, freq := range table {
		if freq > 0 {
			list.Insert(NewLeaf(byte(symbol), freq))
		}
	}
	return list
}

// Insert places node before the first node that is not strictly lighter,
// scanning from the second position. The head is only displaced by a
// strictly lighter node, so a node equal in weight to the head lands
// right behind it.
func (list *PriorityList) Insert(node Tree) {
	weight := node.Weight()
	if len(list.nodes) == 0 || list.nodes[0].Weight() > weight {
		list.nodes = append([]Tree{node}, list.nodes...)
		return
	}
	i := 1
	for i < len(list.nodes) && list.nodes[i].Weight() < weight {
		i++
	}
	list.nodes = append(list.nodes, nil)
	copy(list.nodes[i+1:], list.nodes[i:])
	list.nodes[i] = node
}

func (list *PriorityList) Len() int {
	return len(list.nodes)
}

// Nodes returns a copy of the list in order.
func (list *PriorityList) Nodes() []Tree {
	out := make([]Tree, len(list.nodes))
	copy(out, list.nodes)
	return out
}

func (list *PriorityList) popPair() (Tree, Tree) {
	assert.Assertf(len(list.nodes) >= 2, "popPair on a list of %d nodes", len(list.nodes))
	first, second := list.nodes[0], list.nodes[1]
	list.nodes = list.nodes[2:]
	return first, second
}
