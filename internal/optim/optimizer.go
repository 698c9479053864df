// Package optim implements the weight optimizers used to train seqtag
// models.
//
// This package provides:
//   - Optimizer interface: base interface for all optimizers
//   - RProp: resilient propagation with L1 orthant projection
//   - Oracle / Reporter: the collaborator interfaces the training loop
//     consumes
//
// Example usage:
//
//	oracle := objective.NewLeastSquares(xs, ys)
//	opt := optim.NewRProp(oracle, optim.Config{
//	    Rho1:    0.5,
//	    MaxIter: 100,
//	})
//	status := opt.Optimize(m)
package optim

import (
	"sync/atomic"

	"github.com/seqtag-ml/seqtag/internal/model"
)

// Optimizer is the base interface for all optimization algorithms.
//
// An optimizer mutates the model's weight vector in place and reports
// why its loop ended.
type Optimizer interface {
	// Optimize runs the training loop to completion or early
	// termination, mutating m's weights in place.
	Optimize(m *model.Model) Status
}

// Status reports why an optimization run ended.
type Status int

const (
	// Converged means the progress reporter asked to stop.
	Converged Status = iota
	// Cancelled means the stop flag was set mid-run.
	Cancelled
	// MaxIterReached means the iteration budget ran out.
	MaxIterReached
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case Converged:
		return "converged"
	case Cancelled:
		return "cancelled"
	case MaxIterReached:
		return "max iterations reached"
	}
	return "unknown"
}

// Oracle computes the objective value and raw gradient for the current
// weights.
//
// The oracle receives exactly one gradient buffer per worker and must
// leave the merged gradient in bufs.Main(); how it splits work across
// the buffers, if at all, is its own concern. The call must be
// deterministic in the weights and training data.
type Oracle interface {
	Gradient(m *model.Model, bufs *GradBuffers) (fx float64)
}

// OracleFunc adapts a function to the Oracle interface.
type OracleFunc func(m *model.Model, bufs *GradBuffers) float64

// Gradient calls f.
func (f OracleFunc) Gradient(m *model.Model, bufs *GradBuffers) float64 {
	return f(m, bufs)
}

// Reporter receives progress after each completed iteration, in
// iteration order and never concurrently with the next iteration's
// work. Returning false stops the run.
type Reporter interface {
	Report(m *model.Model, iter int, fx float64) bool
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(m *model.Model, iter int, fx float64) bool

// Report calls f.
func (f ReporterFunc) Report(m *model.Model, iter int, fx float64) bool {
	return f(m, iter, fx)
}

// StopFlag is the cooperative cancellation flag polled at iteration
// boundaries. It is safe to set from any goroutine at any time; the
// optimizer never interrupts a feature update mid-flight.
type StopFlag = atomic.Bool

// sign returns -1, 0 or +1 following the sign of v.
func sign(v float64) float64 {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
