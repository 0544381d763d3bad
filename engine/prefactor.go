// SPDX-License-Identifier: MIT

package engine

import (
	"math"
	"sync"

	"github.com/katalvlaran/dlcq/multinomial"
)

type prefactorKey struct {
	kind Kind
	n    int
}

// prefactorCache memoizes kind prefactors per particle count.
type prefactorCache struct {
	mu    sync.RWMutex
	items map[prefactorKey]float64
}

func newPrefactorCache() *prefactorCache {
	return &prefactorCache{items: make(map[prefactorKey]float64)}
}

// innerPrefactor is 1/(n!·8^{n-1}·π^{2n-3}).
func innerPrefactor(n int) float64 {
	den := multinomial.Factorial(n)
	den *= math.Pow(8, float64(n-1))
	den *= math.Pow(math.Pi, float64(2*n-3))

	return 1 / den
}

// normalizationN is 2/(n!·8^{n-1}·π^{2n-3}).
func normalizationN(n int) float64 { return 2 * innerPrefactor(n) }

func computePrefactor(kind Kind, n int) float64 {
	switch kind {
	case KindInner, KindKinetic:
		return innerPrefactor(n)
	case KindMass:
		return float64(n) * innerPrefactor(n)
	case KindSameN:
		return normalizationN(n) * float64(n*(n-1)) / (64 * math.Pi)
	case KindNPlus2:
		// n is the smaller particle count
		return math.Sqrt(normalizationN(n)*normalizationN(n+2)) * float64((n+2)*(n+1)) / (64 * math.Pi)
	}

	return math.NaN()
}

// Prefactor returns the kind-specific numeric prefactor for particle count n
// (for KindNPlus2, n is the smaller count). Unknown kinds yield NaN.
func (e *Engine) Prefactor(kind Kind, n int) float64 {
	key := prefactorKey{kind, n}
	e.prefac.mu.RLock()
	v, ok := e.prefac.items[key]
	e.prefac.mu.RUnlock()
	if ok {
		return v
	}
	v = computePrefactor(kind, n)
	e.prefac.mu.Lock()
	e.prefac.items[key] = v
	e.prefac.mu.Unlock()

	return v
}
