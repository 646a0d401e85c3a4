// Copyright (C) 2025 Treeloom Authors. All Rights Reserved.

package xgbjson

import (
	"errors"
	"fmt"
)

// ErrUnsupportedBooster is reported when the document names a booster type
// other than "gbtree". Use [errors.Is] to test for it.
var ErrUnsupportedBooster = errors.New("unsupported booster type")

// ErrIncomplete is reported when the input ends before the model document is
// complete.
var ErrIncomplete = errors.New("model document incomplete")

// A SchemaError reports well-formed JSON that does not satisfy the model
// schema: an unrecognized key, a value of the wrong kind, or a structural
// invariant violation such as disagreeing array lengths.
type SchemaError struct {
	Key    string // the object key under consideration, if any
	Reason string
}

// Error satisfies the error interface.
func (e *SchemaError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("key %q: %s", e.Key, e.Reason)
	}
	return e.Reason
}

func schemaErrf(key, msg string, args ...any) error {
	return &SchemaError{Key: key, Reason: fmt.Sprintf(msg, args...)}
}
