// Copyright 2025 The seqtag Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the weight optimizers used to train seqtag
// models.
//
// # Overview
//
// This package contains:
//   - RProp: resilient propagation with OWL-QN style L1 orthant
//     projection, the trainer for sparse regularized linear models
//   - Oracle and Reporter, the collaborator interfaces the training
//     loop consumes
//   - Optimizer interface for custom optimizers
//
// # Basic Usage
//
//	import (
//	    "github.com/seqtag-ml/seqtag/model"
//	    "github.com/seqtag-ml/seqtag/optim"
//	)
//
//	func main() {
//	    m := model.New(nftr)
//	    opt := optim.NewRProp(oracle, optim.Config{
//	        Rho1:    0.5,
//	        MaxIter: 200,
//	        Workers: 4,
//	    })
//	    status := opt.Optimize(m)
//	    fmt.Println(status, m.Weights())
//	}
//
// # Cancellation
//
// A run is cancelled cooperatively through a shared flag:
//
//	var stop optim.StopFlag
//	opt.Stop = &stop
//	go func() {
//	    <-ctx.Done()
//	    stop.Store(true)
//	}()
//	opt.Optimize(m) // returns optim.Cancelled at the next boundary
package optim
