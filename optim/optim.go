// Copyright 2025 The seqtag Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/seqtag-ml/seqtag/internal/optim"
)

// Optimizer is the common interface for all optimizers.
type Optimizer = optim.Optimizer

// Status reports why an optimization run ended.
type Status = optim.Status

// Run termination statuses.
const (
	Converged      = optim.Converged
	Cancelled      = optim.Cancelled
	MaxIterReached = optim.MaxIterReached
)

// Oracle computes the objective value and gradient for the current
// weights.
type Oracle = optim.Oracle

// OracleFunc adapts a function to the Oracle interface.
type OracleFunc = optim.OracleFunc

// GradBuffers is the pool of per-worker gradient buffers handed to the
// oracle.
type GradBuffers = optim.GradBuffers

// NewGradBuffers builds a buffer pool with main as buffer 0.
func NewGradBuffers(main []float64, workers int) *GradBuffers {
	return optim.NewGradBuffers(main, workers)
}

// Reporter receives progress after each completed iteration.
type Reporter = optim.Reporter

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc = optim.ReporterFunc

// StopFlag is the cooperative cancellation flag.
type StopFlag = optim.StopFlag

// RProp (Resilient propagation with L1 orthant projection)

// RProp is the RPROP optimizer.
type RProp = optim.RProp

// Config contains the RProp hyperparameters.
type Config = optim.Config

// NewRProp creates a new RProp optimizer.
//
// Example:
//
//	opt := optim.NewRProp(oracle, optim.Config{
//	    Rho1:    0.5,
//	    MaxIter: 200,
//	})
func NewRProp(oracle Oracle, cfg Config) *RProp {
	return optim.NewRProp(oracle, cfg)
}
