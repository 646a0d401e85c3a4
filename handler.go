// Copyright (C) 2025 Treeloom Authors. All Rights Reserved.

package xgbjson

// A state handles the parse events for one node of the model schema. States
// are managed as a push-down stack by the delegate: a state that accepts a
// nested object or array returns the child state that will handle the events
// inside it, and a state whose EndObject or EndArray reports done is removed
// from the stack, returning control to its parent.
//
// Typed scalar events (Null through String) apply to the value of the object
// member most recently announced by Key, or to the next array element. A
// method reporting an error aborts the entire parse (there is no recovery
// within a load attempt).
type state interface {
	Null() error
	Bool(v bool) error
	Int(v int64) error
	Uint(v uint64) error
	Double(v float64) error
	String(v string) error

	Key(key string) error

	// StartObject and StartArray report the state that handles the events
	// inside the nested value. An accepted start always pushes: no state
	// processes the interior of a value it did not itself open.
	StartObject() (state, error)
	StartArray() (state, error)

	// EndObject and EndArray report done when the state has consumed its
	// whole schema node and should be popped. memberCount and elementCount
	// are the number of members or elements the closing value contained.
	EndObject(memberCount int) (done bool, err error)
	EndArray(elementCount int) (done bool, err error)
}

// baseState implements the state interface with the strictest defaults:
// every event is rejected except Key, which records the current key, and
// End events, which pop. Concrete states embed it and override the events
// their schema node accepts.
type baseState struct {
	curKey string
}

func (s *baseState) Key(key string) error { s.curKey = key; return nil }

func (s *baseState) Null() error          { return s.reject("null") }
func (s *baseState) Bool(bool) error      { return s.reject("bool") }
func (s *baseState) Int(int64) error      { return s.reject("integer") }
func (s *baseState) Uint(uint64) error    { return s.reject("integer") }
func (s *baseState) Double(float64) error { return s.reject("number") }
func (s *baseState) String(string) error  { return s.reject("string") }

func (s *baseState) StartObject() (state, error) { return nil, s.reject("object") }
func (s *baseState) StartArray() (state, error)  { return nil, s.reject("array") }

func (s *baseState) EndObject(int) (bool, error) { return true, nil }
func (s *baseState) EndArray(int) (bool, error)  { return true, nil }

func (s *baseState) reject(kind string) error {
	return schemaErrf(s.curKey, "unexpected %s value", kind)
}

func (s *baseState) unknownKey() error {
	return schemaErrf(s.curKey, "unrecognized key")
}

// ignoreState consumes exactly one JSON value of arbitrary shape and
// discards it. Nested objects and arrays are swallowed by pushing a fresh
// ignoreState per nesting level, so an ignored subtree costs stack
// proportional to its depth and no retained memory.
type ignoreState struct {
	baseState
}

func (s *ignoreState) Null() error          { return nil }
func (s *ignoreState) Bool(bool) error      { return nil }
func (s *ignoreState) Int(int64) error      { return nil }
func (s *ignoreState) Uint(uint64) error    { return nil }
func (s *ignoreState) Double(float64) error { return nil }
func (s *ignoreState) String(string) error  { return nil }

func (s *ignoreState) StartObject() (state, error) { return new(ignoreState), nil }
func (s *ignoreState) StartArray() (state, error)  { return new(ignoreState), nil }
