// Package objective provides concrete gradient oracles for the seqtag
// optimizers.
//
// Oracles fill the per-worker gradient buffers handed to them and merge
// the result into buffer 0; the optimizer only ever reads the merged
// buffer. The heavyweight sequence oracles live in their own subsystem;
// this package holds the simple dense ones used by the CLI and tests.
package objective

import (
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/seqtag-ml/seqtag/internal/model"
	"github.com/seqtag-ml/seqtag/internal/optim"
	"github.com/seqtag-ml/seqtag/internal/parallel"
)

// LeastSquares is the mean squared error objective
//
//	f(w) = 1/(2n) * ||Xw - y||^2
//
// with gradient X^T(Xw - y)/n. Rows are partitioned across the worker
// buffers, each worker accumulates the gradient of its own rows, and
// the partials are merged into the main buffer before returning.
type LeastSquares struct {
	x *mat.Dense // n x F design matrix
	y []float64  // n targets
}

// NewLeastSquares creates the oracle for design matrix x and targets y.
// x must have len(y) rows; the column count is the model's feature
// count.
func NewLeastSquares(x *mat.Dense, y []float64) *LeastSquares {
	return &LeastSquares{x: x, y: y}
}

// FromRows builds the oracle from row slices, one observation per row.
func FromRows(rows [][]float64, y []float64) *LeastSquares {
	nftr := len(rows[0])
	x := mat.NewDense(len(rows), nftr, nil)
	for i, row := range rows {
		x.SetRow(i, row)
	}
	return NewLeastSquares(x, y)
}

// NumFeatures returns the column count of the design matrix.
func (o *LeastSquares) NumFeatures() int {
	_, c := o.x.Dims()
	return c
}

// Gradient implements optim.Oracle. It is deterministic in the weights:
// the same model always produces the same objective and merged
// gradient, regardless of worker count.
func (o *LeastSquares) Gradient(m *model.Model, bufs *optim.GradBuffers) float64 {
	w := m.Weights()
	workers := bufs.Workers()
	n, _ := o.x.Dims()
	ranges := parallel.Split(n, workers)
	sse := make([]float64, workers)
	parallel.Run(workers, func(id int) {
		buf := bufs.Buf(id)
		for f := range buf {
			buf[f] = 0
		}
		for i := ranges[id].From; i < ranges[id].To; i++ {
			row := o.x.RawRowView(i)
			r := floats.Dot(row, w) - o.y[i]
			floats.AddScaled(buf, r, row)
			sse[id] += r * r
		}
	})
	main := bufs.Main()
	total := sse[0]
	for id := 1; id < workers; id++ {
		floats.Add(main, bufs.Buf(id))
		total += sse[id]
	}
	inv := 1 / float64(n)
	floats.Scale(inv, main)
	return 0.5 * total * inv
}

// Synthetic generates a random least-squares problem with n rows and
// nftr features whose true weight vector is sparse: roughly one feature
// in four carries a non-zero weight. Returns the oracle and the true
// weights. Deterministic in seed.
func Synthetic(n, nftr int, seed int64) (*LeastSquares, []float64) {
	rng := rand.New(rand.NewSource(seed))
	truth := make([]float64, nftr)
	for f := range truth {
		if rng.Intn(4) == 0 {
			truth[f] = rng.NormFloat64()
		}
	}
	x := mat.NewDense(n, nftr, nil)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		for f := 0; f < nftr; f++ {
			v := rng.NormFloat64()
			x.Set(i, f, v)
			y[i] += v * truth[f]
		}
		y[i] += 0.01 * rng.NormFloat64()
	}
	return NewLeastSquares(x, y), truth
}
