// Copyright (C) 2025 Treeloom Authors. All Rights Reserved.

package xgbjson

// arrayOf accumulates a homogeneous JSON array of numbers into a slice owned
// by the parent state. Elements must be exactly representable in T: an
// integer array rejects fractional values, and values outside the range of T
// are rejected rather than wrapped.
type arrayOf[T int32 | uint32 | float64] struct {
	baseState
	out *[]T
}

func numbersInto[T int32 | uint32 | float64](out *[]T) *arrayOf[T] {
	return &arrayOf[T]{out: out}
}

func (s *arrayOf[T]) Int(v int64) error {
	t := T(v)
	if int64(t) != v {
		return schemaErrf(s.curKey, "value %d out of range", v)
	}
	*s.out = append(*s.out, t)
	return nil
}

func (s *arrayOf[T]) Uint(v uint64) error {
	t := T(v)
	if uint64(t) != v {
		return schemaErrf(s.curKey, "value %d out of range", v)
	}
	*s.out = append(*s.out, t)
	return nil
}

func (s *arrayOf[T]) Double(v float64) error {
	t := T(v)
	if float64(t) != v {
		return schemaErrf(s.curKey, "value %v not representable", v)
	}
	*s.out = append(*s.out, t)
	return nil
}

// boolsInto accumulates a JSON array of booleans. Some exporters encode the
// flags as 0/1 integers instead of true/false; both spellings are accepted.
type boolsInto struct {
	baseState
	out *[]bool
}

func (s *boolsInto) Bool(v bool) error {
	*s.out = append(*s.out, v)
	return nil
}

func (s *boolsInto) Int(v int64) error {
	if v != 0 && v != 1 {
		return schemaErrf(s.curKey, "value %d is not a boolean", v)
	}
	*s.out = append(*s.out, v == 1)
	return nil
}

func (s *boolsInto) Uint(v uint64) error {
	if v > 1 {
		return schemaErrf(s.curKey, "value %d is not a boolean", v)
	}
	*s.out = append(*s.out, v == 1)
	return nil
}
