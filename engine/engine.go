// SPDX-License-Identifier: MIT

package engine

import (
	"log/slog"

	"github.com/katalvlaran/dlcq/discretize"
	"github.com/katalvlaran/dlcq/matrix"
	"github.com/katalvlaran/dlcq/multinomial"
)

// Discretizer supplies the partitions×partitions Mu blocks that turn
// continuum elements into discretized matrices.
type Discretizer interface {
	// Identity is the block for the inner product and mass operators.
	Identity(partitions int) (*matrix.Dense, error)
	// Kinetic is the block for the kinetic operator.
	Kinetic(partitions int) (*matrix.Dense, error)
	// NtoN is the same-N interaction block for a ratio exponent alpha and a
	// radial exponent r.
	NtoN(alpha, r, partitions int) (*matrix.Dense, error)
	// NPlus2 is the n→n+2 interaction block for a radial exponent r.
	NPlus2(r, partitions int) (*matrix.Dense, error)
}

// Engine owns the term-shape and numeric caches of the matrix element
// pipeline. The zero value is not usable; construct with New.
type Engine struct {
	log     *slog.Logger
	workers int
	disc    Discretizer
	comb    *multinomial.Table

	intermediate *termCache[[]IntermediateTerm] // Key → x,y expansion
	final        *termCache[[]FinalTerm]        // Key → direct (u, θ) expansion
	sameN        *termCache[[]InteractionTerm]  // (Key A, Key B) → pruned same-N terms
	nPlus2       *termCache[[]NPlus2Term]       // (Key A, Key B) → pruned n→n+2 terms

	uInt     *pairCache
	thetaInt *pairCache
	rExpand  *rExpansionCache
	prefac   *prefactorCache
}

// New returns an Engine with empty caches.
func New(opts ...Option) *Engine {
	o := gatherOptions(opts...)
	if o.disc == nil {
		o.disc = discretize.New()
	}

	return &Engine{
		log:          o.logger,
		workers:      o.workers,
		disc:         o.disc,
		comb:         o.comb,
		intermediate: newTermCache[[]IntermediateTerm]("intermediate"),
		final:        newTermCache[[]FinalTerm]("final"),
		sameN:        newTermCache[[]InteractionTerm]("same_n"),
		nPlus2:       newTermCache[[]NPlus2Term]("n_plus_2"),
		uInt:         newPairCache("u_integral"),
		thetaInt:     newPairCache("theta_integral"),
		rExpand:      newRExpansionCache(),
		prefac:       newPrefactorCache(),
	}
}

// CacheStats reports the number of entries per cache.
type CacheStats struct {
	Intermediate int `json:"intermediate"`
	Final        int `json:"final"`
	SameN        int `json:"sameN"`
	NPlus2       int `json:"nPlus2"`
	UIntegral    int `json:"uIntegral"`
	Theta        int `json:"theta"`
	RExpansion   int `json:"rExpansion"`
}

// Stats returns a snapshot of cache sizes.
func (e *Engine) Stats() CacheStats {
	return CacheStats{
		Intermediate: e.intermediate.len(),
		Final:        e.final.len(),
		SameN:        e.sameN.len(),
		NPlus2:       e.nPlus2.len(),
		UIntegral:    e.uInt.len(),
		Theta:        e.thetaInt.len(),
		RExpansion:   e.rExpand.len(),
	}
}
