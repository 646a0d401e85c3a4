// Copyright (C) 2025 Treeloom Authors. All Rights Reserved.

package xgbjson

import (
	"fmt"
	"strconv"

	"github.com/treeloom/xgbjson/model"
)

// learnerParamState consumes a "learner_model_param" object. All three
// fields arrive as JSON strings and are parsed strictly: non-numeric content
// is a schema error, not a silent zero.
type learnerParamState struct {
	baseState
	out *model.Model
}

func (s *learnerParamState) String(v string) error {
	switch s.curKey {
	case "base_score":
		f, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return schemaErrf(s.curKey, "invalid base score %q", v)
		}
		s.out.GlobalBias = float32(f)
	case "num_class":
		n, err := strconv.Atoi(v)
		if err != nil {
			return schemaErrf(s.curKey, "invalid class count %q", v)
		}
		s.out.NumOutputGroup = max(n, 1)
	case "num_feature":
		n, err := strconv.Atoi(v)
		if err != nil {
			return schemaErrf(s.curKey, "invalid feature count %q", v)
		}
		s.out.NumFeature = n
	default:
		return s.unknownKey()
	}
	return nil
}

// objectiveState consumes an "objective" object, capturing only the
// objective name. The per-family hyperparameter objects are recognized and
// discarded; none of them affect the loaded model.
type objectiveState struct {
	baseState
	name *string
}

func (s *objectiveState) String(v string) error {
	if s.curKey == "name" {
		*s.name = v
		return nil
	}
	return s.unknownKey()
}

func (s *objectiveState) StartObject() (state, error) {
	switch s.curKey {
	case "reg_loss_param", "poisson_regression_param", "tweedie_regression_param",
		"softmax_multiclass_param", "lambda_rank_param", "aft_loss_param":
		return new(ignoreState), nil
	}
	return nil, s.unknownKey()
}

// boosterState consumes a "gradient_booster" object. Only the tree-ensemble
// booster is supported; any other name fails the whole load.
type boosterState struct {
	baseState
	out *model.Model
}

func (s *boosterState) String(v string) error {
	if s.curKey != "name" {
		return s.unknownKey()
	}
	if v != "gbtree" {
		return fmt.Errorf("%w %q: only gbtree boosters are supported", ErrUnsupportedBooster, v)
	}
	return nil
}

func (s *boosterState) StartObject() (state, error) {
	if s.curKey == "model" {
		return &gbTreeModelState{out: s.out}, nil
	}
	return nil, schemaErrf(s.curKey, "unrecognized key: is this a gbtree booster?")
}

// gbTreeModelState consumes the "model" object of a gbtree booster: the tree
// sequence, plus per-tree metadata the output model has no use for.
type gbTreeModelState struct {
	baseState
	out *model.Model
}

func (s *gbTreeModelState) StartArray() (state, error) {
	switch s.curKey {
	case "trees":
		return &treeSeqState{out: &s.out.Trees}, nil
	case "tree_info":
		return new(ignoreState), nil
	}
	return nil, s.unknownKey()
}

func (s *gbTreeModelState) StartObject() (state, error) {
	if s.curKey == "gbtree_model_param" {
		return new(ignoreState), nil
	}
	return nil, s.unknownKey()
}

// learnerState consumes the "learner" object: model parameters, the
// gradient booster, and the objective. The "attributes" member is not in the
// documented schema but appears in real exports; it is tolerated and
// discarded. On close, the captured objective name fixes the model's
// prediction transform.
type learnerState struct {
	baseState
	out       *model.Model
	objective string
}

func (s *learnerState) StartObject() (state, error) {
	switch s.curKey {
	case "learner_model_param":
		return &learnerParamState{out: s.out}, nil
	case "gradient_booster":
		return &boosterState{out: s.out}, nil
	case "objective":
		return &objectiveState{name: &s.objective}, nil
	case "attributes":
		return new(ignoreState), nil
	}
	return nil, s.unknownKey()
}

func (s *learnerState) EndObject(int) (bool, error) {
	s.out.PredTransform = transformForObjective(s.objective)
	return true, nil
}

// modelState consumes the top-level model object, which has exactly two
// members: the format version and the learner.
type modelState struct {
	baseState
	out     *model.Model
	version []uint32
}

func (s *modelState) StartArray() (state, error) {
	if s.curKey == "version" {
		return numbersInto(&s.version), nil
	}
	return nil, s.unknownKey()
}

func (s *modelState) StartObject() (state, error) {
	if s.curKey == "learner" {
		return &learnerState{out: s.out}, nil
	}
	return nil, s.unknownKey()
}

func (s *modelState) EndObject(memberCount int) (bool, error) {
	if memberCount != 2 {
		return false, schemaErrf("", "model object has %d members, want 2 (version, learner)", memberCount)
	}
	if len(s.version) == 0 {
		return false, schemaErrf("version", "missing or empty")
	}

	// The format always encodes an additive boosted ensemble.
	s.out.RandomForest = false

	// Before 1.0 the stored global bias is already a margin; from 1.0 on it
	// is the user-facing score and must be mapped back to a margin.
	if s.version[0] >= 1 {
		s.out.GlobalBias = biasToMargin(s.out.PredTransform, s.out.GlobalBias)
	}
	return true, nil
}

// rootState is the entry point of the schema: it accepts a single top-level
// object and rejects any other document shape.
type rootState struct {
	baseState
	out     *model.Model
	started bool
}

func (s *rootState) StartObject() (state, error) {
	if s.started {
		return nil, schemaErrf("", "multiple top-level values")
	}
	s.started = true
	return &modelState{out: s.out}, nil
}
