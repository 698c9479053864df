package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_ZeroWeights(t *testing.T) {
	m := New(5)
	assert.Equal(t, 5, m.NumFeatures())
	for f, w := range m.Weights() {
		assert.Zero(t, w, "feature %d", f)
	}
}

func TestWeights_IsLiveView(t *testing.T) {
	m := New(3)
	m.Weights()[1] = 2.5
	assert.Equal(t, 2.5, m.Weights()[1])
}

func TestFromWeights_TakesOwnership(t *testing.T) {
	theta := []float64{1, -2, 0}
	m := FromWeights(theta)
	theta[0] = 9
	assert.Equal(t, 9.0, m.Weights()[0])
}

func TestNorms(t *testing.T) {
	m := FromWeights([]float64{1.5, 0, -2, 0, 0.25})
	l1, active := m.Norms()
	assert.InDelta(t, 3.75, l1, 1e-12)
	assert.Equal(t, 3, active)
}
