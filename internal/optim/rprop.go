package optim

import (
	"math"

	"github.com/seqtag-ml/seqtag/internal/model"
	"github.com/seqtag-ml/seqtag/internal/parallel"
)

// RProp implements the RPROP algorithm (resilient propagation) described
// by Riedmiller and Braun, adapted to be usable with L1 regularization.
//
// The adaptation uses a pseudo-gradient similar to the one used in
// OWL-QN to choose an orthant at each step and projects the update into
// that orthant before applying it, so weights can be driven exactly to
// zero instead of oscillating around it.
//
// Each feature carries its own adaptive step size: the step grows by
// StepInc while the gradient keeps its sign and shrinks by StepDec when
// the sign flips (an overshoot, which also reverts the previous move).
// Only gradient signs matter, never magnitudes, which makes the method
// robust to badly scaled objectives.
//
// Reference: "A direct adaptive method for faster backpropagation
// learning: The RPROP algorithm", Riedmiller & Braun, IEEE ICNN 1993.
//
// Example:
//
//	opt := optim.NewRProp(oracle, optim.Config{
//	    Rho1:    0.5,
//	    MaxIter: 200,
//	    Workers: 4,
//	})
//	opt.Reporter = optim.NewConsoleReporter(out)
//	status := opt.Optimize(m)
type RProp struct {
	// Reporter, when non-nil, receives (iteration, objective) after
	// every completed iteration and can stop the run by returning
	// false.
	Reporter Reporter

	// Stop, when non-nil, is polled before each iteration and again
	// after each oracle call; setting it cancels the run at the next
	// boundary.
	Stop *StopFlag

	cfg    Config
	oracle Oracle

	// Optimizer state, allocated for one run and released at its end.
	// All four vectors are co-indexed with the weight vector.
	g   []float64 // current raw gradient
	gp  []float64 // raw gradient saved after the previous update
	stp []float64 // per-feature adaptive step, in [StepMin, StepMax]
	dlt []float64 // last applied signed update, used to revert
}

// Config holds the RProp hyperparameters. They are read-only for the
// duration of a run; the optimizer performs no range validation beyond
// filling in defaults for zero values.
type Config struct {
	StepMin     float64 // Lower bound on the per-feature step (default: 1e-8)
	StepMax     float64 // Upper bound on the per-feature step (default: 50)
	StepInc     float64 // Step growth factor, > 1 (default: 1.2)
	StepDec     float64 // Step shrink factor, < 1 (default: 0.5)
	InitialStep float64 // Step every feature starts with (default: 0.1)
	Rho1        float64 // L1 penalty coefficient, 0 disables L1 (default: 0)
	MaxIter     int     // Iteration budget (default: 100)
	Workers     int     // Parallel update workers (default: runtime.NumCPU())
}

// NewRProp creates a new RProp optimizer driven by oracle.
//
// Zero-valued config fields are replaced by the defaults documented on
// Config. Rho1 keeps its zero value: no L1 penalty.
func NewRProp(oracle Oracle, cfg Config) *RProp {
	if cfg.StepMin == 0 {
		cfg.StepMin = 1e-8
	}
	if cfg.StepMax == 0 {
		cfg.StepMax = 50.0
	}
	if cfg.StepInc == 0 {
		cfg.StepInc = 1.2
	}
	if cfg.StepDec == 0 {
		cfg.StepDec = 0.5
	}
	if cfg.InitialStep == 0 {
		cfg.InitialStep = 0.1
	}
	if cfg.MaxIter == 0 {
		cfg.MaxIter = 100
	}
	if cfg.Workers == 0 {
		cfg.Workers = parallel.DefaultConfig().Workers
	}
	return &RProp{cfg: cfg, oracle: oracle}
}

// Config returns the effective hyperparameters, defaults applied.
func (r *RProp) Config() Config {
	return r.cfg
}

// Optimize runs the gradient computation / weight update loop until the
// reporter asks to stop, the stop flag is set, or MaxIter iterations
// have completed. The model's weight vector is mutated in place.
//
// The optimizer state and the private gradient buffers live exactly as
// long as this call, whichever exit path is taken.
func (r *RProp) Optimize(m *model.Model) Status {
	nftr := m.NumFeatures()
	workers := r.cfg.Workers

	r.g = make([]float64, nftr)
	r.gp = make([]float64, nftr)
	r.stp = make([]float64, nftr)
	r.dlt = make([]float64, nftr)
	for f := range r.stp {
		r.stp[f] = r.cfg.InitialStep
	}

	// Worker 0 shares the main gradient vector; the remaining buffers
	// belong to this run.
	bufs := NewGradBuffers(r.g, workers)
	defer func() {
		bufs.release()
		r.g, r.gp, r.stp, r.dlt = nil, nil, nil, nil
	}()

	ranges := parallel.Split(nftr, workers)
	for k := 0; k < r.cfg.MaxIter; k++ {
		if r.stopped() {
			return Cancelled
		}
		fx := r.oracle.Gradient(m, bufs)
		// The oracle may run for a long time; give a pending stop
		// request a chance to abandon the iteration before any
		// weight is touched.
		if r.stopped() {
			return Cancelled
		}
		parallel.Run(workers, func(id int) {
			r.update(m, ranges[id])
		})
		if r.Reporter != nil && !r.Reporter.Report(m, k+1, fx) {
			return Converged
		}
	}
	return MaxIterReached
}

// update applies the per-feature RPROP/L1 rule over one worker's range.
//
// Side effects are confined to indices in rng; concurrent calls on
// disjoint ranges need no synchronization.
func (r *RProp) update(m *model.Model, rng parallel.Range) {
	stpmin := r.cfg.StepMin
	stpmax := r.cfg.StepMax
	stpinc := r.cfg.StepInc
	stpdec := r.cfg.StepDec
	rho1 := r.cfg.Rho1
	l1 := rho1 != 0.0
	x := m.Weights()
	g, gp := r.g, r.gp
	stp, dlt := r.stp, r.dlt
	for f := rng.From; f < rng.To; f++ {
		// If there is an l1 component in the regularization, project
		// the gradient into the current orthant.
		pg := g[f]
		if l1 {
			switch {
			case x[f] < 0.0:
				pg -= rho1
			case x[f] > 0.0:
				pg += rho1
			case g[f] < -rho1:
				pg += rho1
			case g[f] > rho1:
				pg -= rho1
			default:
				pg = 0.0
			}
		}
		// Next adjust the step depending on the new and previous
		// gradient values and update the weight. With an l1 penalty
		// the update is projected back into the chosen orthant.
		switch {
		case gp[f]*pg > 0.0:
			stp[f] = math.Min(stp[f]*stpinc, stpmax)
			dlt[f] = stp[f] * -sign(g[f])
			if l1 && dlt[f]*pg >= 0.0 {
				dlt[f] = 0.0
			}
			x[f] += dlt[f]
		case gp[f]*pg < 0.0:
			stp[f] = math.Max(stp[f]*stpdec, stpmin)
			x[f] -= dlt[f]
			g[f] = 0.0
		default:
			dlt[f] = stp[f] * -sign(pg)
			if l1 && dlt[f]*pg >= 0.0 {
				dlt[f] = 0.0
			}
			x[f] += dlt[f]
		}
		// The raw gradient, not the projected one. The next sign test
		// compares this against the next projected gradient, which is
		// what keeps the orthant tracking stable.
		gp[f] = g[f]
	}
}

func (r *RProp) stopped() bool {
	return r.Stop != nil && r.Stop.Load()
}
