// SPDX-License-Identifier: MIT

package multinomial

import (
	"fmt"
	"sync"
)

// MVector is a partition in the layout [order, m1, ..., mk], parts non-increasing.
type MVector []int

// Order returns mv[0].
func (mv MVector) Order() int { return mv[0] }

// Parts returns the tail mv[1:] (shared storage).
func (mv MVector) Parts() []int { return mv[1:] }

// Composition is one ordered split of an order into k non-negative parts
// together with its multinomial coefficient order!/Π parts!.
type Composition struct {
	Parts []int
	Coef  float64
}

type shape struct{ parts, order int }

// Table memoizes m-vector and composition enumerations per (parts, order).
// The zero value is not usable; construct with NewTable.
type Table struct {
	mu    sync.RWMutex
	mvecs map[shape][]MVector
	comps map[shape][]Composition
}

// NewTable returns an empty, concurrency-safe Table.
func NewTable() *Table {
	return &Table{
		mvecs: make(map[shape][]MVector),
		comps: make(map[shape][]Composition),
	}
}

// GetMVectors returns every partition of order into at most parts parts as
// m-vectors, zero-padded to parts entries, in descending lexicographic order
// of their tails. The returned slices are shared; callers must copy before
// mutating (e.g. before PrevPermutation).
//
// Errors: ErrNegative for negative arguments.
func (t *Table) GetMVectors(parts, order int) ([]MVector, error) {
	if parts < 0 || order < 0 {
		return nil, multinomialErrorf("GetMVectors", ErrNegative)
	}
	key := shape{parts, order}
	t.mu.RLock()
	cached, ok := t.mvecs[key]
	t.mu.RUnlock()
	if ok {
		return cached, nil
	}

	var out []MVector
	cur := make([]int, parts)
	var rec func(pos, remaining, maxPart int)
	rec = func(pos, remaining, maxPart int) {
		if pos == parts {
			if remaining == 0 {
				mv := make(MVector, parts+1)
				mv[0] = order
				copy(mv[1:], cur)
				out = append(out, mv)
			}
			return
		}
		hi := min(remaining, maxPart)
		for v := hi; v >= 0; v-- {
			// the remaining positions can hold at most v each
			if v*(parts-pos) < remaining {
				break
			}
			cur[pos] = v
			rec(pos+1, remaining-v, v)
		}
		cur[pos] = 0
	}
	rec(0, order, order)

	t.mu.Lock()
	if prev, ok := t.mvecs[key]; ok {
		out = prev
	} else {
		t.mvecs[key] = out
	}
	t.mu.Unlock()

	return out, nil
}

// Lookup returns the multinomial coefficient order!/Π m_i! of an m-vector
// with exactly parts parts.
//
// Errors: ErrPartition when len(mv) != parts+1 or the parts do not sum to
// mv[0]; ErrNegative for negative entries.
func (t *Table) Lookup(parts int, mv MVector) (float64, error) {
	if len(mv) != parts+1 {
		return 0, multinomialErrorf("Lookup", fmt.Errorf("len %d for %d parts: %w", len(mv), parts, ErrPartition))
	}

	return t.Choose(parts, mv[0], mv[1:])
}

// Choose returns order!/Π partition[i]! for a partition of order into at
// most parts parts (missing trailing parts are zero).
func (t *Table) Choose(parts, order int, partition []int) (float64, error) {
	if parts < 0 || order < 0 {
		return 0, multinomialErrorf("Choose", ErrNegative)
	}
	if len(partition) > parts {
		return 0, multinomialErrorf("Choose", ErrPartition)
	}
	sum := 0
	for _, p := range partition {
		sum += p
	}
	if sum != order {
		return 0, multinomialErrorf("Choose", fmt.Errorf("parts sum %d != order %d: %w", sum, order, ErrPartition))
	}
	coef, err := Multinomial(partition)
	if err != nil {
		return 0, multinomialErrorf("Choose", err)
	}

	return coef, nil
}

// Compositions returns every distinct ordered split of order into parts
// non-negative parts with its coefficient. Enumeration walks the m-vectors
// in GetMVectors order and, for each, its tail arrangements through
// PrevPermutation. Returned values are shared and must not be mutated.
func (t *Table) Compositions(parts, order int) ([]Composition, error) {
	key := shape{parts, order}
	t.mu.RLock()
	cached, ok := t.comps[key]
	t.mu.RUnlock()
	if ok {
		return cached, nil
	}

	mvs, err := t.GetMVectors(parts, order)
	if err != nil {
		return nil, multinomialErrorf("Compositions", err)
	}
	var out []Composition
	for _, mv := range mvs {
		coef, err := t.Lookup(parts, mv)
		if err != nil {
			return nil, multinomialErrorf("Compositions", err)
		}
		perm := append([]int(nil), mv[1:]...)
		for {
			out = append(out, Composition{Parts: append([]int(nil), perm...), Coef: coef})
			if !PrevPermutation(perm) {
				break
			}
		}
	}

	t.mu.Lock()
	if prev, ok := t.comps[key]; ok {
		out = prev
	} else {
		t.comps[key] = out
	}
	t.mu.Unlock()

	return out, nil
}
