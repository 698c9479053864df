// Copyright 2025 The seqtag Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package model exposes the weight vector container trained by the
// seqtag optimizers.
package model

import (
	"github.com/seqtag-ml/seqtag/internal/model"
)

// Model owns the dense weight vector of a linear sequence model.
type Model = model.Model

// New creates a model with nftr features, all weights zero.
func New(nftr int) *Model {
	return model.New(nftr)
}

// FromWeights creates a model that takes ownership of theta.
func FromWeights(theta []float64) *Model {
	return model.FromWeights(theta)
}
