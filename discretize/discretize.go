// SPDX-License-Identifier: MIT

package discretize

import (
	"fmt"
	"math"
	"sync"

	"golang.org/x/sync/singleflight"
	"gonum.org/v1/gonum/integrate/quad"

	"github.com/katalvlaran/dlcq/matrix"
)

type blockKind uint8

const (
	kindIdentity blockKind = iota
	kindKinetic
	kindNtoN
	kindNPlus2
)

type blockKey struct {
	kind       blockKind
	alpha, r   int
	partitions int
}

func (k blockKey) String() string {
	return fmt.Sprintf("%d/%d/%d/%d", k.kind, k.alpha, k.r, k.partitions)
}

// Discretizer computes and memoizes Mu blocks. Safe for concurrent use.
type Discretizer struct {
	order int

	mu     sync.RWMutex
	blocks map[blockKey]*matrix.Dense
	group  singleflight.Group
}

// New returns an empty Discretizer.
func New(opts ...Option) *Discretizer {
	o := gatherOptions(opts...)

	return &Discretizer{
		order:  o.order,
		blocks: make(map[blockKey]*matrix.Dense),
	}
}

// Len returns the number of memoized blocks.
func (d *Discretizer) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return len(d.blocks)
}

// Identity returns the k×k identity block used by the inner product and
// mass operators.
func (d *Discretizer) Identity(partitions int) (*matrix.Dense, error) {
	return d.block("Identity", blockKey{kind: kindIdentity, partitions: partitions}, func() (*matrix.Dense, error) {
		return matrix.NewIdentity(partitions)
	})
}

// Kinetic returns diag((i+½)·w), the bin-averaged μ².
func (d *Discretizer) Kinetic(partitions int) (*matrix.Dense, error) {
	return d.block("Kinetic", blockKey{kind: kindKinetic, partitions: partitions}, func() (*matrix.Dense, error) {
		w := 1 / float64(partitions)
		diag := make([]float64, partitions)
		for i := range diag {
			diag[i] = (float64(i) + 0.5) * w
		}
		return matrix.NewDiagonal(diag)
	})
}

// NtoN returns the same-N interaction block for ratio exponent alpha and
// radial exponent r ≥ -1. Swapping μ₁ and μ₂ negates alpha, so a negative
// alpha yields the transpose of the block for -alpha.
func (d *Discretizer) NtoN(alpha, r, partitions int) (*matrix.Dense, error) {
	const tag = "NtoN"
	if r < -1 {
		return nil, discretizeErrorf(tag, fmt.Errorf("alpha=%d r=%d: %w", alpha, r, ErrBadExponent))
	}
	if alpha < 0 {
		m, err := d.NtoN(-alpha, r, partitions)
		if err != nil {
			return nil, err
		}
		t, err := matrix.Transpose(m)
		if err != nil {
			return nil, discretizeErrorf(tag, err)
		}
		return t, nil
	}
	a, p := float64(alpha), float64(r+1)
	f := func(s1, s2 float64) float64 {
		m1, m2 := math.Sqrt(s1), math.Sqrt(s2)
		return math.Pow(m2/m1, a) * math.Pow(math.Min(m1, m2)/math.Max(m1, m2), p)
	}

	return d.block(tag, blockKey{kind: kindNtoN, alpha: alpha, r: r, partitions: partitions}, func() (*matrix.Dense, error) {
		return d.windows(partitions, f)
	})
}

// NPlus2 returns the n→n+2 interaction block for radial exponent r ≥ -1.
func (d *Discretizer) NPlus2(r, partitions int) (*matrix.Dense, error) {
	const tag = "NPlus2"
	if r < -1 {
		return nil, discretizeErrorf(tag, fmt.Errorf("r=%d: %w", r, ErrBadExponent))
	}
	p := float64(r+1) / 2
	f := func(s1, s2 float64) float64 {
		return math.Pow(math.Sqrt(math.Min(s1, s2)/math.Max(s1, s2)), p)
	}

	return d.block(tag, blockKey{kind: kindNPlus2, r: r, partitions: partitions}, func() (*matrix.Dense, error) {
		return d.windows(partitions, f)
	})
}

// block returns a copy of the memoized block for key, computing it once.
func (d *Discretizer) block(tag string, key blockKey, compute func() (*matrix.Dense, error)) (*matrix.Dense, error) {
	if key.partitions <= 0 {
		return nil, discretizeErrorf(tag, ErrBadPartitions)
	}
	d.mu.RLock()
	m, ok := d.blocks[key]
	d.mu.RUnlock()
	if ok {
		return m.Clone().(*matrix.Dense), nil
	}

	res, err, _ := d.group.Do(key.String(), func() (any, error) {
		d.mu.RLock()
		m, ok := d.blocks[key]
		d.mu.RUnlock()
		if ok {
			return m, nil
		}
		m, err := compute()
		if err != nil {
			return nil, err
		}
		d.mu.Lock()
		d.blocks[key] = m
		d.mu.Unlock()

		return m, nil
	})
	if err != nil {
		return nil, discretizeErrorf(tag, err)
	}

	return res.(*matrix.Dense).Clone().(*matrix.Dense), nil
}

// windows fills a k×k block with (1/w)·∫∫ f over each pair of bins.
func (d *Discretizer) windows(partitions int, f func(s1, s2 float64) float64) (*matrix.Dense, error) {
	out, err := matrix.NewDense(partitions, partitions)
	if err != nil {
		return nil, err
	}
	w := 1 / float64(partitions)
	for i := 0; i < partitions; i++ {
		lo1, hi1 := float64(i)*w, float64(i+1)*w
		for j := 0; j < partitions; j++ {
			lo2, hi2 := float64(j)*w, float64(j+1)*w
			var v float64
			if i == j {
				v = d.diagonalWindow(lo1, hi1, f)
			} else {
				v = d.window(lo1, hi1, lo2, hi2, f)
			}
			if err = out.Set(i, j, v/w); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

// window integrates f over [lo1,hi1]×[lo2,hi2].
func (d *Discretizer) window(lo1, hi1, lo2, hi2 float64, f func(s1, s2 float64) float64) float64 {
	return quad.Fixed(func(s1 float64) float64 {
		return quad.Fixed(func(s2 float64) float64 { return f(s1, s2) }, lo2, hi2, d.order, quad.Legendre{}, 0)
	}, lo1, hi1, d.order, quad.Legendre{}, 0)
}

// diagonalWindow integrates f over [lo,hi]² with the inner integral split at s2 = s1.
func (d *Discretizer) diagonalWindow(lo, hi float64, f func(s1, s2 float64) float64) float64 {
	return quad.Fixed(func(s1 float64) float64 {
		g := func(s2 float64) float64 { return f(s1, s2) }
		below := quad.Fixed(g, lo, s1, d.order, quad.Legendre{}, 0)
		above := quad.Fixed(g, s1, hi, d.order, quad.Legendre{}, 0)
		return below + above
	}, lo, hi, d.order, quad.Legendre{}, 0)
}
