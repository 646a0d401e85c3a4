// Copyright (C) 2025 Treeloom Authors. All Rights Reserved.

package xgbjson

import (
	"strconv"

	"github.com/treeloom/xgbjson/model"
)

// treeSeqState consumes the "trees" array of a gbtree model. Each element
// object is handed to a fresh regTreeState bound to a newly allocated output
// tree.
type treeSeqState struct {
	baseState
	out *[]*model.Tree
}

func (s *treeSeqState) StartObject() (state, error) {
	t := model.New()
	*s.out = append(*s.out, t)
	return &regTreeState{out: t}, nil
}

// treeParamState consumes a "tree_param" object. Its numeric fields are
// encoded as JSON strings. Only num_nodes is used; the remaining keys are
// recognized and discarded, including ones that older exporters still emit.
type treeParamState struct {
	baseState
	numNodes *int
}

func (s *treeParamState) String(v string) error {
	switch s.curKey {
	case "num_nodes":
		n, err := strconv.Atoi(v)
		if err != nil {
			return schemaErrf(s.curKey, "invalid node count %q", v)
		}
		*s.numNodes = n
		return nil
	case "num_feature", "size_leaf_vector", "num_deleted":
		// num_deleted is deprecated but still present in some output.
		return nil
	}
	return s.unknownKey()
}

// regTreeState reconstructs one decision tree from its parallel-array
// encoding. The arrays index nodes by their position ("old" node IDs, root
// first); the output tree assigns its own IDs at allocation time, so the
// EndObject step remaps between the two spaces.
type regTreeState struct {
	baseState
	out *model.Tree

	numNodes        int
	lossChanges     []float64
	sumHessian      []float64
	baseWeights     []float64
	splitConditions []float64
	leafChildCounts []int32
	leftChildren    []int32
	rightChildren   []int32
	parents         []int32
	splitIndices    []int32
	defaultLeft     []bool
}

func (s *regTreeState) StartObject() (state, error) {
	if s.curKey == "tree_param" {
		return &treeParamState{numNodes: &s.numNodes}, nil
	}
	return nil, s.unknownKey()
}

func (s *regTreeState) Uint(v uint64) error {
	if s.curKey == "id" {
		return nil
	}
	return s.unknownKey()
}

func (s *regTreeState) StartArray() (state, error) {
	switch s.curKey {
	case "loss_changes":
		return numbersInto(&s.lossChanges), nil
	case "sum_hessian":
		return numbersInto(&s.sumHessian), nil
	case "base_weights":
		return numbersInto(&s.baseWeights), nil
	case "split_conditions":
		return numbersInto(&s.splitConditions), nil
	case "leaf_child_counts":
		return numbersInto(&s.leafChildCounts), nil
	case "left_children":
		return numbersInto(&s.leftChildren), nil
	case "right_children":
		return numbersInto(&s.rightChildren), nil
	case "parents":
		return numbersInto(&s.parents), nil
	case "split_indices":
		return numbersInto(&s.splitIndices), nil
	case "default_left":
		return &boolsInto{out: &s.defaultLeft}, nil
	case "categories", "split_type":
		// Categorical split metadata, present in the schema but not yet
		// supported by the output model.
		return new(ignoreState), nil
	}
	return nil, s.unknownKey()
}

func (s *regTreeState) EndObject(int) (bool, error) {
	if err := s.checkLengths(); err != nil {
		return false, err
	}
	if err := s.build(); err != nil {
		return false, err
	}
	return true, nil
}

// checkLengths verifies that every parallel array has exactly one entry per
// declared node. A tree has at least its root.
func (s *regTreeState) checkLengths() error {
	if s.numNodes < 1 {
		return schemaErrf("tree_param", "tree declares %d nodes", s.numNodes)
	}
	for _, a := range []struct {
		key string
		len int
	}{
		{"loss_changes", len(s.lossChanges)},
		{"sum_hessian", len(s.sumHessian)},
		{"base_weights", len(s.baseWeights)},
		{"leaf_child_counts", len(s.leafChildCounts)},
		{"left_children", len(s.leftChildren)},
		{"right_children", len(s.rightChildren)},
		{"parents", len(s.parents)},
		{"split_indices", len(s.splitIndices)},
		{"split_conditions", len(s.splitConditions)},
		{"default_left", len(s.defaultLeft)},
	} {
		if a.len != s.numNodes {
			return schemaErrf(a.key, "has %d entries, want %d nodes", a.len, s.numNodes)
		}
	}
	return nil
}

// build rebuilds the tree structure breadth-first over (old ID, new ID)
// pairs, seeded at the root. Visiting parents before children guarantees a
// node exists before its children are attached, and the visit count check
// rejects encodings whose child pointers form a cycle or alias a node.
func (s *regTreeState) build() error {
	type remap struct{ oldID, newID int }

	t := s.out
	seen := make([]bool, s.numNodes)
	queue := []remap{{0, t.Root()}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur.oldID < 0 || cur.oldID >= s.numNodes {
			return schemaErrf("", "child index %d out of range of %d nodes", cur.oldID, s.numNodes)
		}
		if seen[cur.oldID] {
			return schemaErrf("", "node %d reached twice", cur.oldID)
		}
		seen[cur.oldID] = true

		if s.leftChildren[cur.oldID] == -1 {
			t.SetLeaf(cur.newID, float32(s.splitConditions[cur.oldID]))
		} else {
			left, right := t.AddChildren(cur.newID)
			feature := s.splitIndices[cur.oldID]
			if feature < 0 {
				return schemaErrf("split_indices", "negative feature index %d", feature)
			}
			err := t.SetNumericalSplit(cur.newID, uint32(feature),
				float32(s.splitConditions[cur.oldID]), s.defaultLeft[cur.oldID], model.OpLT)
			if err != nil {
				return schemaErrf("split_indices", "%v", err)
			}
			t.SetGain(cur.newID, s.lossChanges[cur.oldID])
			queue = append(queue,
				remap{int(s.leftChildren[cur.oldID]), left},
				remap{int(s.rightChildren[cur.oldID]), right})
		}
		t.SetSumHess(cur.newID, s.sumHessian[cur.oldID])
	}
	return nil
}
