// Copyright (C) 2025 Treeloom Authors. All Rights Reserved.

package model_test

import (
	"testing"

	"github.com/creachadair/mds/mtest"
	"github.com/treeloom/xgbjson/model"
)

func TestNewTree(t *testing.T) {
	tr := model.New()

	if got := tr.NumNodes(); got != 1 {
		t.Errorf("NumNodes: got %d, want 1", got)
	}
	if got := tr.Root(); got != 0 {
		t.Errorf("Root: got %d, want 0", got)
	}
	if !tr.IsLeaf(tr.Root()) {
		t.Error("Root: got internal node, want leaf")
	}
	if got := tr.LeafValue(tr.Root()); got != 0 {
		t.Errorf("LeafValue(root): got %v, want 0", got)
	}
	if got := tr.Depth(); got != 0 {
		t.Errorf("Depth: got %d, want 0", got)
	}
}

func TestAddChildren(t *testing.T) {
	tr := model.New()

	left, right := tr.AddChildren(tr.Root())
	if left != 1 || right != 2 {
		t.Errorf("AddChildren: got (%d, %d), want (1, 2)", left, right)
	}
	if got := tr.NumNodes(); got != 3 {
		t.Errorf("NumNodes: got %d, want 3", got)
	}
	if got := tr.LeftChild(tr.Root()); got != left {
		t.Errorf("LeftChild(root): got %d, want %d", got, left)
	}
	if got := tr.RightChild(tr.Root()); got != right {
		t.Errorf("RightChild(root): got %d, want %d", got, right)
	}
	if tr.IsLeaf(tr.Root()) {
		t.Error("Root: got leaf, want internal node")
	}
	if !tr.IsLeaf(left) || !tr.IsLeaf(right) {
		t.Error("New children should be leaves")
	}
	if got := tr.NumLeaves(); got != 2 {
		t.Errorf("NumLeaves: got %d, want 2", got)
	}
	if got := tr.Depth(); got != 1 {
		t.Errorf("Depth: got %d, want 1", got)
	}
}

func TestNumericalSplit(t *testing.T) {
	tr := model.New()
	tr.AddChildren(tr.Root())

	if err := tr.SetNumericalSplit(0, 7, 1.5, true, model.OpLT); err != nil {
		t.Fatalf("SetNumericalSplit: unexpected error: %v", err)
	}
	if got := tr.SplitIndex(0); got != 7 {
		t.Errorf("SplitIndex: got %d, want 7", got)
	}
	if got := tr.Threshold(0); got != 1.5 {
		t.Errorf("Threshold: got %v, want 1.5", got)
	}
	if !tr.DefaultLeft(0) {
		t.Error("DefaultLeft: got false, want true")
	}
	if got := tr.Comparison(0); got != model.OpLT {
		t.Errorf("Comparison: got %v, want %v", got, model.OpLT)
	}

	// The default direction flag must not leak into the feature index.
	if err := tr.SetNumericalSplit(0, 7, 1.5, false, model.OpLT); err != nil {
		t.Fatalf("SetNumericalSplit: unexpected error: %v", err)
	}
	if tr.DefaultLeft(0) {
		t.Error("DefaultLeft: got true, want false")
	}
	if got := tr.SplitIndex(0); got != 7 {
		t.Errorf("SplitIndex: got %d, want 7", got)
	}
}

func TestSplitIndexRange(t *testing.T) {
	tr := model.New()
	tr.AddChildren(tr.Root())

	if err := tr.SetNumericalSplit(0, 1<<31-1, 0, false, model.OpLT); err == nil {
		t.Error("SetNumericalSplit: got nil, want error for oversized feature index")
	}
}

func TestSetLeafDetaches(t *testing.T) {
	tr := model.New()
	tr.AddChildren(tr.Root())
	if err := tr.SetNumericalSplit(0, 3, 2.5, true, model.OpLT); err != nil {
		t.Fatalf("SetNumericalSplit: unexpected error: %v", err)
	}

	tr.SetLeaf(0, -0.25)
	if !tr.IsLeaf(0) {
		t.Error("IsLeaf: got false, want true after SetLeaf")
	}
	if got := tr.LeafValue(0); got != -0.25 {
		t.Errorf("LeafValue: got %v, want -0.25", got)
	}
	if tr.DefaultLeft(0) {
		t.Error("DefaultLeft: got true, want false after SetLeaf")
	}
	if got := tr.Comparison(0); got != model.OpNone {
		t.Errorf("Comparison: got %v, want %v", got, model.OpNone)
	}
}

func TestStatistics(t *testing.T) {
	tr := model.New()

	if _, ok := tr.Gain(0); ok {
		t.Error("Gain: reported present before SetGain")
	}
	if _, ok := tr.SumHess(0); ok {
		t.Error("SumHess: reported present before SetSumHess")
	}

	tr.SetGain(0, 12.5)
	tr.SetSumHess(0, 30)

	if got, ok := tr.Gain(0); !ok || got != 12.5 {
		t.Errorf("Gain: got (%v, %v), want (12.5, true)", got, ok)
	}
	if got, ok := tr.SumHess(0); !ok || got != 30 {
		t.Errorf("SumHess: got (%v, %v), want (30, true)", got, ok)
	}
}

func TestInvalidNodeID(t *testing.T) {
	tr := model.New()

	mtest.MustPanic(t, func() { tr.IsLeaf(1) })
	mtest.MustPanic(t, func() { tr.IsLeaf(-1) })
	mtest.MustPanic(t, func() { tr.SetLeaf(5, 0) })
	mtest.MustPanic(t, func() { tr.AddChildren(3) })
}

func TestOperatorString(t *testing.T) {
	tests := []struct {
		op   model.Operator
		want string
	}{
		{model.OpNone, "none"},
		{model.OpEQ, "=="},
		{model.OpLT, "<"},
		{model.OpLE, "<="},
		{model.OpGT, ">"},
		{model.OpGE, ">="},
		{model.Operator(99), "operator(99)"},
	}
	for _, test := range tests {
		if got := test.op.String(); got != test.want {
			t.Errorf("String(%d): got %q, want %q", byte(test.op), got, test.want)
		}
	}
}
