package objective

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seqtag-ml/seqtag/internal/model"
	"github.com/seqtag-ml/seqtag/internal/optim"
)

func gradientAt(o *LeastSquares, w []float64, workers int) (float64, []float64) {
	theta := make([]float64, len(w))
	copy(theta, w)
	m := model.FromWeights(theta)
	bufs := optim.NewGradBuffers(make([]float64, len(w)), workers)
	fx := o.Gradient(m, bufs)
	return fx, bufs.Main()
}

func TestLeastSquares_GradientMatchesFiniteDifference(t *testing.T) {
	o := FromRows(
		[][]float64{{1, 2}, {3, -1}, {0.5, 0.5}},
		[]float64{1, 0, 2},
	)
	w := []float64{0.3, -0.2}

	_, grad := gradientAt(o, w, 1)

	const h = 1e-6
	for f := range w {
		wp := append([]float64(nil), w...)
		wm := append([]float64(nil), w...)
		wp[f] += h
		wm[f] -= h
		fp, _ := gradientAt(o, wp, 1)
		fm, _ := gradientAt(o, wm, 1)
		numeric := (fp - fm) / (2 * h)
		assert.InDelta(t, numeric, grad[f], 1e-6, "gradient component %d", f)
	}
}

func TestLeastSquares_ZeroResidualHasZeroGradient(t *testing.T) {
	// y = 2*x0 - x1 exactly, evaluated at the true weights.
	o := FromRows(
		[][]float64{{1, 0}, {0, 1}, {1, 1}},
		[]float64{2, -1, 1},
	)
	fx, grad := gradientAt(o, []float64{2, -1}, 1)
	assert.InDelta(t, 0, fx, 1e-12)
	for f, g := range grad {
		assert.InDelta(t, 0, g, 1e-12, "gradient component %d", f)
	}
}

func TestLeastSquares_WorkerCountInvariance(t *testing.T) {
	o, _ := Synthetic(33, 7, 11)
	w := []float64{0.5, -1, 0, 2, 0.1, -0.3, 1}

	fx1, g1 := gradientAt(o, w, 1)
	for _, workers := range []int{2, 3, 5, 8} {
		fx, g := gradientAt(o, w, workers)
		assert.InDelta(t, fx1, fx, 1e-9, "objective with %d workers", workers)
		require.Len(t, g, len(g1))
		for f := range g1 {
			assert.InDelta(t, g1[f], g[f], 1e-9, "gradient component %d with %d workers", f, workers)
		}
	}
}

func TestSynthetic_Deterministic(t *testing.T) {
	a, truthA := Synthetic(20, 6, 42)
	b, truthB := Synthetic(20, 6, 42)
	assert.Equal(t, truthA, truthB)

	w := make([]float64, 6)
	fxA, gA := gradientAt(a, w, 1)
	fxB, gB := gradientAt(b, w, 1)
	assert.Equal(t, fxA, fxB)
	assert.Equal(t, gA, gB)
}

// End-to-end: RPROP driving the least-squares oracle must reduce the
// objective by orders of magnitude, and the L1 penalty must keep
// irrelevant features at exactly zero.
func TestRPropConvergence_LeastSquares(t *testing.T) {
	o, _ := Synthetic(200, 20, 3)

	var first, last float64
	opt := optim.NewRProp(o, optim.Config{MaxIter: 150, Workers: 4})
	opt.Reporter = optim.ReporterFunc(func(m *model.Model, iter int, fx float64) bool {
		if iter == 1 {
			first = fx
		}
		last = fx
		return true
	})
	m := model.New(o.NumFeatures())
	status := opt.Optimize(m)

	require.Equal(t, optim.MaxIterReached, status)
	assert.Less(t, last, first/10, "objective should drop substantially")

	optL1 := optim.NewRProp(o, optim.Config{Rho1: 0.5, MaxIter: 150, Workers: 4})
	mL1 := model.New(o.NumFeatures())
	optL1.Optimize(mL1)
	_, active := mL1.Norms()
	assert.Less(t, active, mL1.NumFeatures(), "L1 training should leave some weights at exactly zero")
}
