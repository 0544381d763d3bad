// SPDX-License-Identifier: MIT

// Package engine: functional configuration.
//   - Option / options with documented defaults,
//   - WithX constructors that panic only on nonsensical values (programmer error).
package engine

import (
	"io"
	"log/slog"
	"runtime"

	"github.com/katalvlaran/dlcq/multinomial"
)

const (
	// DefaultWorkers is the number of concurrent element workers used by the
	// whole-matrix builders when WithWorkers is not given.
	DefaultWorkers = 0 // 0 ⇒ runtime.GOMAXPROCS(0)
)

const (
	panicWorkersInvalid   = "engine: WithWorkers: workers must be >= 0"
	panicDiscretizerNil   = "engine: WithDiscretizer: discretizer must not be nil"
	panicCombinatoricsNil = "engine: WithCombinatorics: table must not be nil"
)

// Option configures an Engine.
type Option func(*options)

type options struct {
	logger  *slog.Logger
	workers int
	disc    Discretizer
	comb    *multinomial.Table
}

// WithLogger sets the structured logger (default: discard).
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithWorkers bounds the number of concurrent element computations in the
// whole-matrix builders; 0 selects GOMAXPROCS, 1 builds sequentially.
func WithWorkers(n int) Option {
	if n < 0 {
		panic(panicWorkersInvalid)
	}

	return func(o *options) { o.workers = n }
}

// WithDiscretizer sets the Mu-block provider used for discretized kinds.
func WithDiscretizer(d Discretizer) Option {
	if d == nil {
		panic(panicDiscretizerNil)
	}

	return func(o *options) { o.disc = d }
}

// WithCombinatorics shares a multinomial table between engines.
func WithCombinatorics(t *multinomial.Table) Option {
	if t == nil {
		panic(panicCombinatoricsNil)
	}

	return func(o *options) { o.comb = t }
}

func gatherOptions(opts ...Option) options {
	o := options{
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		workers: DefaultWorkers,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.workers == 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}
	if o.comb == nil {
		o.comb = multinomial.NewTable()
	}

	return o
}
