package optim

import (
	"github.com/seqtag-ml/seqtag/internal/ioline"
	"github.com/seqtag-ml/seqtag/internal/model"
)

// NewConsoleReporter returns a Reporter that prints one progress line
// per iteration through out and never asks to stop.
//
// Each line carries the iteration number, the objective value, the
// number of active (non-zero) weights and their L1 norm, so sparsity
// under L1 training is visible as it develops.
func NewConsoleReporter(out *ioline.Lines) Reporter {
	return ReporterFunc(func(m *model.Model, iter int, fx float64) bool {
		l1, active := m.Norms()
		out.Printf("  [%4d] obj=%-14.6f act=%d/%d l1=%.6f\n",
			iter, fx, active, m.NumFeatures(), l1)
		return true
	})
}
