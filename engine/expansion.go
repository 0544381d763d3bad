// SPDX-License-Identifier: MIT

package engine

import (
	"fmt"
	"sync"

	"github.com/katalvlaran/dlcq/multinomial"
)

// AlphaR indexes a discretization block by ratio exponent α and radial exponent r.
type AlphaR struct {
	Alpha int
	R     int
}

type rCoef struct {
	key  AlphaR
	coef float64
}

// rExpansionCache memoizes the double binomial expansion per r-triple.
type rExpansionCache struct {
	mu    sync.RWMutex
	items map[[3]int][]rCoef
}

func newRExpansionCache() *rExpansionCache {
	return &rExpansionCache{items: make(map[[3]int][]rCoef)}
}

func (c *rExpansionCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.items)
}

// expandR returns the expansion of r^{r0}·(1-r²)^{r1/2}·(1-α²r²)^{r2/2}
// as (α-exponent, r-exponent) → signed coefficient:
//
//	Σ_{k1≤r1/2} Σ_{k2≤r2/2} (-1)^{k1+k2} C(r1/2,k1) C(r2/2,k2) · α^{2k2} r^{r0+2k1+2k2}
//
// r1 and r2 must be non-negative and even; anything else is ErrOddRadial.
func (e *Engine) expandR(r [3]int) ([]rCoef, error) {
	if r[1] < 0 || r[2] < 0 || r[1]%2 != 0 || r[2]%2 != 0 {
		return nil, fmt.Errorf("expandR(%d, %d, %d): %w", r[0], r[1], r[2], ErrOddRadial)
	}
	c := e.rExpand
	c.mu.RLock()
	v, ok := c.items[r]
	c.mu.RUnlock()
	if ok {
		return v, nil
	}

	h1, h2 := r[1]/2, r[2]/2
	out := make([]rCoef, 0, (h1+1)*(h2+1))
	for k1 := 0; k1 <= h1; k1++ {
		for k2 := 0; k2 <= h2; k2++ {
			coef := multinomial.Binomial(h1, k1) * multinomial.Binomial(h2, k2)
			if (k1+k2)%2 == 1 {
				coef = -coef
			}
			out = append(out, rCoef{key: AlphaR{Alpha: 2 * k2, R: r[0] + 2*k1 + 2*k2}, coef: coef})
		}
	}

	c.mu.Lock()
	if prev, ok := c.items[r]; ok {
		out = prev
	} else {
		c.items[r] = out
	}
	c.mu.Unlock()

	return out, nil
}
