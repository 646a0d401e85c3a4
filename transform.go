// Copyright (C) 2025 Treeloom Authors. All Rights Reserved.

package xgbjson

import (
	"math"

	"github.com/treeloom/xgbjson/model"
)

// transformForObjective maps an XGBoost objective name to the prediction
// transform the loaded model declares. Objectives with no special transform,
// including the ranking family, predict the raw margin.
func transformForObjective(name string) model.Transform {
	switch name {
	case "multi:softmax":
		return model.MaxIndex
	case "multi:softprob":
		return model.Softmax
	case "reg:logistic", "binary:logistic":
		return model.Sigmoid
	case "binary:hinge":
		return model.Hinge
	case "count:poisson", "reg:gamma", "reg:tweedie", "survival:cox", "survival:aft":
		return model.Exponential
	}
	return model.Identity
}

// biasToMargin converts a user-facing base score back to the raw margin the
// additive ensemble starts from, by inverting the model's prediction
// transform.
func biasToMargin(t model.Transform, bias float32) float32 {
	switch t {
	case model.Sigmoid:
		return float32(math.Log(float64(bias) / (1.0 - float64(bias))))
	case model.Exponential:
		return float32(math.Log(float64(bias)))
	}
	return bias
}
