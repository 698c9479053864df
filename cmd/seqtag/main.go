// Package main provides the seqtag trainer CLI.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/seqtag-ml/seqtag/internal/ioline"
	"github.com/seqtag-ml/seqtag/internal/model"
	"github.com/seqtag-ml/seqtag/internal/objective"
	"github.com/seqtag-ml/seqtag/internal/optim"
)

const version = "v0.1.0-dev"

func main() {
	root := &cobra.Command{
		Use:           "seqtag",
		Short:         "seqtag - sparse linear sequence-model trainer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newVersionCmd(), newTrainCmd())
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("seqtag %s\n", version)
		},
	}
}

type trainFlags struct {
	data    string
	iters   int
	workers int
	rho1    float64
	stepMin float64
	stepMax float64
	stepInc float64
	stepDec float64
	rows    int
	nftr    int
	seed    int64
}

func newTrainCmd() *cobra.Command {
	var f trainFlags
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a sparse linear model with RPROP",
		Long: "Train a least-squares linear model with resilient propagation.\n" +
			"Without --data a synthetic sparse problem is generated, which is\n" +
			"handy for trying out the L1 penalty. With --data, each input line\n" +
			"is one observation: the target followed by the feature values,\n" +
			"whitespace separated.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrain(&f)
		},
	}
	cmd.Flags().StringVar(&f.data, "data", "", "training data file (default: synthetic problem)")
	cmd.Flags().IntVar(&f.iters, "iters", 100, "maximum number of iterations")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "worker threads (default: all CPUs)")
	cmd.Flags().Float64Var(&f.rho1, "rho1", 0, "L1 penalty coefficient, 0 disables")
	cmd.Flags().Float64Var(&f.stepMin, "step-min", 1e-8, "minimum per-feature step")
	cmd.Flags().Float64Var(&f.stepMax, "step-max", 50, "maximum per-feature step")
	cmd.Flags().Float64Var(&f.stepInc, "step-inc", 1.2, "step growth factor")
	cmd.Flags().Float64Var(&f.stepDec, "step-dec", 0.5, "step shrink factor")
	cmd.Flags().IntVar(&f.rows, "rows", 512, "synthetic problem: observation count")
	cmd.Flags().IntVar(&f.nftr, "features", 64, "synthetic problem: feature count")
	cmd.Flags().Int64Var(&f.seed, "seed", 1, "synthetic problem: random seed")
	return cmd
}

func runTrain(f *trainFlags) error {
	var oracle *objective.LeastSquares
	if f.data != "" {
		var err error
		if oracle, err = loadDataset(f.data); err != nil {
			return err
		}
	} else {
		oracle, _ = objective.Synthetic(f.rows, f.nftr, f.seed)
	}

	m := model.New(oracle.NumFeatures())
	opt := optim.NewRProp(oracle, optim.Config{
		StepMin: f.stepMin,
		StepMax: f.stepMax,
		StepInc: f.stepInc,
		StepDec: f.stepDec,
		Rho1:    f.rho1,
		MaxIter: f.iters,
		Workers: f.workers,
	})
	out := ioline.New(nil, os.Stdout)
	opt.Reporter = optim.NewConsoleReporter(out)

	// Mirror the trainer's interactive behavior: the first interrupt
	// requests a clean stop at the next iteration boundary.
	var stop optim.StopFlag
	opt.Stop = &stop
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)
	go func() {
		<-sig
		stop.Store(true)
	}()

	out.Printf("* Train the model with rprop\n")
	status := opt.Optimize(m)
	l1, active := m.Norms()
	out.Printf("* Done: %s (active %d/%d, |w|_1 = %.6f)\n",
		status, active, m.NumFeatures(), l1)
	return out.Err()
}

// loadDataset reads whitespace-separated observations, one per line:
// the target value followed by the feature values. Every line must
// carry the same number of features.
func loadDataset(path string) (*objective.LeastSquares, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open training data")
	}
	defer file.Close()

	in := ioline.New(file, nil)
	var rows [][]float64
	var ys []float64
	for lno := 1; ; lno++ {
		line, ok := in.Gets()
		if !ok {
			break
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		vals := make([]float64, len(fields))
		for i, s := range fields {
			if vals[i], err = strconv.ParseFloat(s, 64); err != nil {
				return nil, errors.Wrapf(err, "%s:%d: bad value %q", path, lno, s)
			}
		}
		if len(rows) > 0 && len(vals)-1 != len(rows[0]) {
			return nil, errors.Errorf("%s:%d: expected %d features, got %d",
				path, lno, len(rows[0]), len(vals)-1)
		}
		ys = append(ys, vals[0])
		rows = append(rows, vals[1:])
	}
	if err := in.Err(); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.Errorf("%s: no observations", path)
	}
	return objective.FromRows(rows, ys), nil
}
