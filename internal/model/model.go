// Package model holds the dense weight vector trained by the optimizers.
package model

import "math"

// Model owns the weight vector of a linear sequence model.
//
// The vector has one float64 entry per feature. Its length is fixed when
// the model is created and never changes during a training run; the
// optimizer mutates the entries in place.
//
// Example:
//
//	m := model.New(nftr)
//	opt.Optimize(m)
//	w := m.Weights()
type Model struct {
	theta []float64
}

// New creates a model with nftr features, all weights zero.
func New(nftr int) *Model {
	return &Model{theta: make([]float64, nftr)}
}

// FromWeights creates a model that takes ownership of theta.
func FromWeights(theta []float64) *Model {
	return &Model{theta: theta}
}

// NumFeatures returns the number of features F.
func (m *Model) NumFeatures() int {
	return len(m.theta)
}

// Weights returns the live weight vector, not a copy.
//
// The optimizer updates this slice in place; callers that need a snapshot
// must copy it themselves.
func (m *Model) Weights() []float64 {
	return m.theta
}

// Norms returns the L1 norm of the weights and the number of non-zero
// entries. Used by progress reporters to track sparsity under L1.
func (m *Model) Norms() (l1 float64, active int) {
	for _, w := range m.theta {
		if w != 0 {
			l1 += math.Abs(w)
			active++
		}
	}
	return l1, active
}
