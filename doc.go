// Copyright (C) 2025 Treeloom Authors. All Rights Reserved.

// Package xgbjson loads the JSON model dump written by XGBoost into an
// in-memory decision tree ensemble.
//
// # Loading
//
// The Load functions decode one model document and return a *model.Model:
//
//	m, err := xgbjson.LoadFile("model.json")
//	if err != nil {
//	   log.Fatalf("Load failed: %v", err)
//	}
//	fmt.Println(m.NumTree(), "trees")
//
// Load accepts an io.Reader, LoadBytes an in-memory buffer, and LoadFile a
// named file. Loading is all-or-nothing: any error discards the partial
// model, and there is no recovery within a load attempt.
//
// # Translation
//
// The loader is an event-driven translator. A jtree.Stream tokenizes the
// input, and a push-down stack of schema states consumes its events: each
// state handles one node of the model schema, pushing a child state when a
// nested object or array opens and popping itself when its own value closes.
// Trees arrive as parallel arrays indexed by position; as each tree object
// closes, the loader validates that the arrays agree in length and rebuilds
// the explicit binary tree breadth-first in the output's own node ID space.
//
// The schema is matched strictly. Unrecognized keys fail the load, except
// for a fixed set of fields real exports are known to carry (deprecated
// tree parameters, learner attributes, categorical split metadata), which
// are recognized and discarded.
//
// # Errors
//
// Malformed JSON is reported as *jtree.SyntaxError with its source
// location. Well-formed JSON that does not satisfy the schema is reported
// as *SchemaError. A model using a booster other than "gbtree" fails with
// an error satisfying errors.Is against ErrUnsupportedBooster.
package xgbjson
