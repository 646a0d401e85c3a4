// Copyright (C) 2025 Treeloom Authors. All Rights Reserved.

// Package model defines the in-memory representation of a gradient-boosted
// decision tree ensemble: a sequence of binary trees ([Tree]) together with
// the global parameters of the model ([Model]).
//
// Values of these types are usually constructed by a model loader such as
// the xgbjson package, and consumed by a downstream compiler or inference
// engine. The representation is loader-agnostic: nothing here depends on the
// serialization the ensemble was read from.
package model

// A Transform identifies the prediction transform that maps the raw additive
// margin of the ensemble to a user-facing score.
type Transform string

// The prediction transforms an ensemble may declare.
const (
	Identity    Transform = "identity"    // score is the raw margin
	Sigmoid     Transform = "sigmoid"     // 1/(1+exp(-x))
	Exponential Transform = "exponential" // exp(x)
	Hinge       Transform = "hinge"       // 1 if x > 0, else 0
	MaxIndex    Transform = "max_index"   // argmax over output groups
	Softmax     Transform = "softmax"     // normalized exp over output groups
)

// A Model is a complete decision tree ensemble: an ordered sequence of trees
// plus the global parameters needed to turn their summed output into a
// prediction.
type Model struct {
	// NumFeature is the number of input features the trees may reference.
	NumFeature int

	// NumOutputGroup is the number of output groups (classes). It is 1 for
	// regression and binary classification, and the class count for
	// multi-class models. Always at least 1.
	NumOutputGroup int

	// RandomForest reports whether the trees form a bagged ensemble whose
	// outputs are averaged, rather than a boosted ensemble whose outputs are
	// summed.
	RandomForest bool

	// GlobalBias is the raw margin every prediction starts from, before any
	// tree output is added.
	GlobalBias float32

	// PredTransform maps the summed margin to a user-facing score.
	PredTransform Transform

	// Trees is the ordered sequence of trees in the ensemble.
	Trees []*Tree
}

// NumTree reports the number of trees in the ensemble.
func (m *Model) NumTree() int { return len(m.Trees) }
