// Copyright (C) 2025 Treeloom Authors. All Rights Reserved.

package xgbjson

import (
	"strings"
	"testing"

	"github.com/creachadair/jtree"
	"github.com/google/go-cmp/cmp"
)

func TestNumberAccumulator(t *testing.T) {
	t.Run("Floats", func(t *testing.T) {
		var got []float64
		s := numbersInto(&got)
		for _, step := range []error{
			s.Int(-1), s.Uint(2), s.Double(0.25), s.Double(-6.5),
		} {
			if step != nil {
				t.Fatalf("Accumulate: unexpected error: %v", step)
			}
		}
		if diff := cmp.Diff([]float64{-1, 2, 0.25, -6.5}, got); diff != "" {
			t.Errorf("Accumulated values (-want, +got):\n%s", diff)
		}
	})

	t.Run("Ints", func(t *testing.T) {
		var got []int32
		s := numbersInto(&got)
		if err := s.Int(-1); err != nil {
			t.Errorf("Int(-1): unexpected error: %v", err)
		}
		if err := s.Double(3); err != nil {
			t.Errorf("Double(3): unexpected error: %v", err)
		}
		if err := s.Double(2.5); err == nil {
			t.Error("Double(2.5): got nil, want error in integer array")
		}
		if err := s.Int(1 << 40); err == nil {
			t.Error("Int(1<<40): got nil, want range error")
		}
		if err := s.Uint(1 << 40); err == nil {
			t.Error("Uint(1<<40): got nil, want range error")
		}
		if diff := cmp.Diff([]int32{-1, 3}, got); diff != "" {
			t.Errorf("Accumulated values (-want, +got):\n%s", diff)
		}
	})

	t.Run("Uints", func(t *testing.T) {
		var got []uint32
		s := numbersInto(&got)
		if err := s.Uint(7); err != nil {
			t.Errorf("Uint(7): unexpected error: %v", err)
		}
		if err := s.Int(-1); err == nil {
			t.Error("Int(-1): got nil, want range error in unsigned array")
		}
		if diff := cmp.Diff([]uint32{7}, got); diff != "" {
			t.Errorf("Accumulated values (-want, +got):\n%s", diff)
		}
	})

	t.Run("Nested", func(t *testing.T) {
		var got []float64
		s := numbersInto(&got)
		if _, err := s.StartObject(); err == nil {
			t.Error("StartObject: got nil, want error in scalar array")
		}
		if err := s.Null(); err == nil {
			t.Error("Null: got nil, want error in scalar array")
		}
	})
}

func TestBoolAccumulator(t *testing.T) {
	var got []bool
	s := &boolsInto{out: &got}
	for _, step := range []error{
		s.Bool(true), s.Bool(false), s.Int(1), s.Uint(0),
	} {
		if step != nil {
			t.Fatalf("Accumulate: unexpected error: %v", step)
		}
	}
	if err := s.Int(2); err == nil {
		t.Error("Int(2): got nil, want error in boolean array")
	}
	if err := s.Double(1); err == nil {
		t.Error("Double(1): got nil, want error in boolean array")
	}
	if diff := cmp.Diff([]bool{true, false, true, false}, got); diff != "" {
		t.Errorf("Accumulated values (-want, +got):\n%s", diff)
	}
}

// TestIgnoreNesting drives an ignore state through the delegate with real
// input to verify it consumes exactly one value of arbitrary shape.
func TestIgnoreNesting(t *testing.T) {
	tests := []string{
		`{}`,
		`{"a": 1, "b": [true, null, "s"]}`,
		`{"deep": {"deeper": {"deepest": [[[0]]]}}}`,
		`[{"x": {}}, [], [[{"y": [null]}]]]`,
	}
	for _, input := range tests {
		d := newDelegate()
		d.stack = append(d.stack, new(ignoreState))

		st := jtree.NewStream(strings.NewReader(input))
		if err := st.ParseOne(d); err != nil {
			t.Errorf("Input %#q: unexpected error: %v", input, err)
			continue
		}
		// Nested values must have fully unwound, leaving only the root and
		// the hand-pushed ignore state.
		if got := len(d.stack); got != 2 {
			t.Errorf("Input %#q: %d states left on stack, want 2", input, got)
		}
	}
}

func TestDepthLimit(t *testing.T) {
	input := strings.Repeat("[", maxDepth+1) + strings.Repeat("]", maxDepth+1)

	d := newDelegate()
	d.stack = append(d.stack, new(ignoreState))

	st := jtree.NewStream(strings.NewReader(input))
	err := st.ParseOne(d)
	if err == nil {
		t.Fatal("ParseOne: got nil, want nesting depth error")
	}
	if !strings.Contains(err.Error(), "nesting") {
		t.Errorf("ParseOne: got error %v, want nesting depth error", err)
	}
}
