// Copyright (C) 2025 Treeloom Authors. All Rights Reserved.

package model

import "fmt"

// An Operator is the comparison applied at a numerical split. A feature
// vector follows the left branch when "fvalue <op> threshold" holds.
type Operator byte

// The comparison operators a split may use.
const (
	OpNone Operator = iota // no comparison (leaf nodes)
	OpEQ                   // ==
	OpLT                   // <
	OpLE                   // <=
	OpGT                   // >
	OpGE                   // >=
)

var opStr = [...]string{OpNone: "none", OpEQ: "==", OpLT: "<", OpLE: "<=", OpGT: ">", OpGE: ">="}

func (o Operator) String() string {
	if int(o) >= len(opStr) {
		return fmt.Sprintf("operator(%d)", byte(o))
	}
	return opStr[o]
}

// The split feature index is stored with the default-direction flag packed
// into its high bit, so indices must fit in 31 bits.
const (
	defaultLeftBit = 1 << 31
	maxSplitIndex  = 1<<31 - 1
)

// A node is a single tree node. A node is a leaf exactly when left < 0.
type node struct {
	left, right int32 // child node IDs, -1 when the node is a leaf

	sindex    uint32 // split feature index; high bit set when missing values go left
	threshold float32
	cmp       Operator

	leafValue float32

	gain       float64
	sumHess    float64
	hasGain    bool
	hasSumHess bool
}

// A Tree is a binary decision tree. Node IDs are assigned by the tree at
// allocation time: the root is always ID 0, and [Tree.AddChildren] assigns
// the next two free IDs to the new children. Every node is either a leaf
// carrying an output value, or an internal node carrying a numerical split.
//
// The zero Tree is not ready for use; call [New].
type Tree struct {
	nodes []node
}

// New constructs a tree consisting of a single leaf node, ID 0, with leaf
// value zero.
func New() *Tree {
	t := new(Tree)
	root := t.allocNode()
	t.SetLeaf(root, 0)
	return t
}

func (t *Tree) allocNode() int {
	t.nodes = append(t.nodes, node{left: -1, right: -1})
	return len(t.nodes) - 1
}

// node returns the addressed node, or panics if id is not a valid node ID.
// Node IDs are never exposed except by allocation, so an invalid ID is a
// programming error on the caller's part rather than a data error.
func (t *Tree) node(id int) *node {
	if id < 0 || id >= len(t.nodes) {
		panic(fmt.Sprintf("model: node ID %d out of range [0, %d)", id, len(t.nodes)))
	}
	return &t.nodes[id]
}

// Root reports the node ID of the root of the tree. It is always 0.
func (t *Tree) Root() int { return 0 }

// NumNodes reports the total number of nodes in the tree.
func (t *Tree) NumNodes() int { return len(t.nodes) }

// NumLeaves reports the number of leaf nodes in the tree.
func (t *Tree) NumLeaves() int {
	var n int
	for i := range t.nodes {
		if t.nodes[i].left < 0 {
			n++
		}
	}
	return n
}

// Depth reports the number of edges on the longest root-to-leaf path.
// A single-leaf tree has depth 0.
func (t *Tree) Depth() int {
	type entry struct{ id, depth int }
	var max int
	stack := []entry{{t.Root(), 0}}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		nd := t.node(e.id)
		if nd.left < 0 {
			if e.depth > max {
				max = e.depth
			}
			continue
		}
		stack = append(stack,
			entry{int(nd.left), e.depth + 1}, entry{int(nd.right), e.depth + 1})
	}
	return max
}

// AddChildren allocates two fresh nodes and attaches them as the left and
// right children of id, returning their IDs. The new nodes are leaves with
// value zero until configured.
func (t *Tree) AddChildren(id int) (left, right int) {
	t.node(id) // validate id before the allocations below extend the range
	left = t.allocNode()
	right = t.allocNode()
	nd := t.node(id)
	nd.left, nd.right = int32(left), int32(right)
	return left, right
}

// SetLeaf marks id as a leaf node with the given output value, detaching any
// children it may have had.
func (t *Tree) SetLeaf(id int, value float32) {
	nd := t.node(id)
	nd.left, nd.right = -1, -1
	nd.sindex = 0
	nd.cmp = OpNone
	nd.leafValue = value
}

// SetNumericalSplit configures id as an internal node splitting on the given
// feature: inputs where "fvalue cmp threshold" holds follow the left branch,
// and inputs with the feature missing follow the left branch when
// defaultLeft is true.
func (t *Tree) SetNumericalSplit(id int, feature uint32, threshold float32, defaultLeft bool, cmp Operator) error {
	if feature >= maxSplitIndex {
		return fmt.Errorf("split feature index %d out of range", feature)
	}
	nd := t.node(id)
	if defaultLeft {
		feature |= defaultLeftBit
	}
	nd.sindex = feature
	nd.threshold = threshold
	nd.cmp = cmp
	return nil
}

// SetGain records the split quality score of node id.
func (t *Tree) SetGain(id int, gain float64) {
	nd := t.node(id)
	nd.gain, nd.hasGain = gain, true
}

// SetSumHess records the sum of second-order gradient statistics of node id.
func (t *Tree) SetSumHess(id int, sum float64) {
	nd := t.node(id)
	nd.sumHess, nd.hasSumHess = sum, true
}

// IsLeaf reports whether id is a leaf node.
func (t *Tree) IsLeaf(id int) bool { return t.node(id).left < 0 }

// LeftChild reports the node ID of the left child of id, or -1 for a leaf.
func (t *Tree) LeftChild(id int) int { return int(t.node(id).left) }

// RightChild reports the node ID of the right child of id, or -1 for a leaf.
func (t *Tree) RightChild(id int) int { return int(t.node(id).right) }

// LeafValue reports the output value of leaf node id.
func (t *Tree) LeafValue(id int) float32 { return t.node(id).leafValue }

// SplitIndex reports the feature index an internal node id splits on.
func (t *Tree) SplitIndex(id int) uint32 { return t.node(id).sindex &^ defaultLeftBit }

// Threshold reports the split threshold of internal node id.
func (t *Tree) Threshold(id int) float32 { return t.node(id).threshold }

// DefaultLeft reports whether inputs missing the split feature follow the
// left branch at node id.
func (t *Tree) DefaultLeft(id int) bool { return t.node(id).sindex&defaultLeftBit != 0 }

// Comparison reports the comparison operator of node id, or OpNone for a
// leaf.
func (t *Tree) Comparison(id int) Operator { return t.node(id).cmp }

// Gain reports the split quality score of node id, if one was recorded.
func (t *Tree) Gain(id int) (float64, bool) {
	nd := t.node(id)
	return nd.gain, nd.hasGain
}

// SumHess reports the sum of second-order gradient statistics of node id, if
// one was recorded.
func (t *Tree) SumHess(id int) (float64, bool) {
	nd := t.node(id)
	return nd.sumHess, nd.hasSumHess
}
