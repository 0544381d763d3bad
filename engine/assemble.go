// SPDX-License-Identifier: MIT

// Package engine - whole-basis matrix builders.
//
// Purpose:
//   - Fan element computations out over a bounded worker pool (errgroup with
//     SetLimit(workers)); each worker writes a disjoint cell or tile of the
//     preallocated result, so no result-level locking is needed.
//   - Square builders compute the upper triangle only: scalars are mirrored,
//     interaction tiles are transposed into the lower triangle. Diagonal
//     interaction tiles are checked against their transpose and replaced by
//     the symmetric part, and every square result is validated symmetric.
//   - The first failing element cancels the build; its error is returned.
//
// Observability:
//   - One span per build ("engine.<Builder>") with kind and shape attributes.
//   - Start/finish/failure logs carry a short build_id.
//   - buildDuration is observed for every finished or failed build.

package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/dlcq/matrix"
	"github.com/katalvlaran/dlcq/mono"
)

var tracer = otel.Tracer("dlcq.engine")

// buildSpec describes one whole-matrix build.
type buildSpec struct {
	op         string
	kind       Kind
	rows, cols int  // basis sizes, not matrix dimensions
	partitions int  // 0 for scalar builds
	upper      bool // visit j ≥ i only
}

// build runs cell(i, j) for every requested basis pair on the worker pool.
func (e *Engine) build(ctx context.Context, s buildSpec, cell func(i, j int) error) error {
	ctx, span := tracer.Start(ctx, "engine."+s.op,
		trace.WithAttributes(
			attribute.String("dlcq.kind", s.kind.String()),
			attribute.Int("dlcq.rows", s.rows),
			attribute.Int("dlcq.cols", s.cols),
			attribute.Int("dlcq.partitions", s.partitions),
		),
	)
	defer span.End()

	start := time.Now()
	buildID := uuid.NewString()[:12]
	e.log.Info("matrix build started",
		slog.String("build_id", buildID),
		slog.String("op", s.op),
		slog.String("kind", s.kind.String()),
		slog.Int("rows", s.rows),
		slog.Int("cols", s.cols),
		slog.Int("partitions", s.partitions),
		slog.Int("workers", e.workers),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
outer:
	for i := 0; i < s.rows; i++ {
		j0 := 0
		if s.upper {
			j0 = i
		}
		for j := j0; j < s.cols; j++ {
			if gctx.Err() != nil {
				break outer
			}
			i, j := i, j
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				return cell(i, j)
			})
		}
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	elapsed := time.Since(start)
	buildDuration.WithLabelValues(s.kind.String()).Observe(elapsed.Seconds())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		e.log.Error("matrix build failed",
			slog.String("build_id", buildID),
			slog.String("op", s.op),
			slog.Duration("duration", elapsed),
			slog.String("error", err.Error()),
		)
		return err
	}
	span.SetStatus(codes.Ok, "")
	e.log.Info("matrix build finished",
		slog.String("build_id", buildID),
		slog.String("op", s.op),
		slog.Duration("duration", elapsed),
		slog.Any("cache", e.Stats()),
	)

	return nil
}

func checkBasis(tag string, b *mono.Basis) error {
	if b == nil || b.Len() == 0 {
		return engineErrorf(tag, ErrEmptyBasis)
	}

	return nil
}

// Matrix returns the symmetric len×len continuum matrix of a direct kind
// (inner, mass or kinetic) over basis.
//
// Errors: ErrEmptyBasis, ErrUnknownKind (interaction kinds), any element
// error, or ctx's error when the build is cancelled.
func (e *Engine) Matrix(ctx context.Context, basis *mono.Basis, kind Kind) (*matrix.Dense, error) {
	const tag = "Matrix"
	if err := checkBasis(tag, basis); err != nil {
		return nil, err
	}
	if !kind.direct() {
		return nil, engineErrorf(tag, fmt.Errorf("%s: %w", kind, ErrUnknownKind))
	}
	size := basis.Len()
	out, err := matrix.NewDense(size, size)
	if err != nil {
		return nil, engineErrorf(tag, err)
	}
	err = e.build(ctx, buildSpec{op: tag, kind: kind, rows: size, cols: size, upper: true},
		func(i, j int) error {
			v, err := e.directElement(kind, basis.At(i), basis.At(j))
			if err != nil {
				return err
			}
			return out.Set(i, j, v)
		})
	if err != nil {
		return nil, err
	}
	if err = matrix.MirrorUpper(out); err != nil {
		return nil, engineErrorf(tag, err)
	}
	if err = matrix.ValidateSymmetric(out, matrix.DefaultEpsilon); err != nil {
		return nil, engineErrorf(tag, err)
	}

	return out, nil
}

// GramMatrix returns the inner-product matrix of basis.
func (e *Engine) GramMatrix(ctx context.Context, basis *mono.Basis) (*matrix.Dense, error) {
	return e.Matrix(ctx, basis, KindInner)
}

// MassMatrix returns the invariant-mass matrix of basis.
func (e *Engine) MassMatrix(ctx context.Context, basis *mono.Basis) (*matrix.Dense, error) {
	return e.Matrix(ctx, basis, KindMass)
}

// KineticMatrix returns the continuum kinetic matrix of basis.
func (e *Engine) KineticMatrix(ctx context.Context, basis *mono.Basis) (*matrix.Dense, error) {
	return e.Matrix(ctx, basis, KindKinetic)
}

// DiscretizedMatrix returns the (len·p)×(len·p) discretized matrix of kind
// over basis, tile (i, j) holding the p×p block of the pair (A_i, A_j).
// Direct kinds scale the Identity/Kinetic block; KindSameN uses
// ComputeInteractionBlock. KindNPlus2 needs two bases: use NPlus2Matrix.
func (e *Engine) DiscretizedMatrix(ctx context.Context, basis *mono.Basis, kind Kind, partitions int) (*matrix.Dense, error) {
	const tag = "DiscretizedMatrix"
	if err := checkBasis(tag, basis); err != nil {
		return nil, err
	}
	if partitions <= 0 {
		return nil, engineErrorf(tag, ErrBadPartitions)
	}
	if kind == KindNPlus2 || !kind.valid() {
		return nil, engineErrorf(tag, fmt.Errorf("%s: %w", kind, ErrUnknownKind))
	}
	size := basis.Len()
	out, err := matrix.NewDense(size*partitions, size*partitions)
	if err != nil {
		return nil, engineErrorf(tag, err)
	}
	err = e.build(ctx, buildSpec{op: tag, kind: kind, rows: size, cols: size, partitions: partitions, upper: true},
		func(i, j int) error {
			var blk *matrix.Dense
			var err error
			if kind == KindSameN {
				blk, err = e.ComputeInteractionBlock(basis.At(i), basis.At(j), partitions)
			} else {
				blk, err = e.ComputeDirectBlock(kind, basis.At(i), basis.At(j), partitions)
			}
			if err != nil {
				return err
			}
			if i == j {
				if blk, err = symmetricPart(blk); err != nil {
					return engineErrorf(tag, fmt.Errorf("%s: %w", basis.At(i), err))
				}
				return matrix.SetBlock(out, i*partitions, j*partitions, blk)
			}
			if err = matrix.SetBlock(out, i*partitions, j*partitions, blk); err != nil {
				return err
			}
			tr, err := matrix.Transpose(blk)
			if err != nil {
				return err
			}
			return matrix.SetBlock(out, j*partitions, i*partitions, tr)
		})
	if err != nil {
		return nil, err
	}
	if err = matrix.ValidateSymmetric(out, matrix.DefaultEpsilon); err != nil {
		return nil, engineErrorf(tag, err)
	}

	return out, nil
}

// symmetricPart returns (m + mᵀ)/2 after checking that m already equals
// its transpose up to rounding: relative DefaultEpsilon, absolute
// DefaultEpsilon times the largest entry.
func symmetricPart(m *matrix.Dense) (*matrix.Dense, error) {
	tr, err := matrix.Transpose(m)
	if err != nil {
		return nil, err
	}
	peak := 0.0
	for i := 0; i < m.Rows(); i++ {
		for _, v := range m.RawRow(i) {
			peak = math.Max(peak, math.Abs(v))
		}
	}
	ok, err := matrix.AllClose(m, tr, matrix.DefaultEpsilon, matrix.DefaultEpsilon*peak)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, matrix.ErrAsymmetry
	}
	sum, err := matrix.Add(m, tr)
	if err != nil {
		return nil, err
	}

	return matrix.Scale(sum, 0.5)
}

// NPlus2Matrix returns the (lenA·p)×(lenB·p) matrix coupling basisA (n
// particles) to basisB (n+2 particles).
//
// Errors: ErrEmptyBasis, ErrBadPartitions, ErrParticleMismatch.
func (e *Engine) NPlus2Matrix(ctx context.Context, basisA, basisB *mono.Basis, partitions int) (*matrix.Dense, error) {
	const tag = "NPlus2Matrix"
	if err := checkBasis(tag, basisA); err != nil {
		return nil, err
	}
	if err := checkBasis(tag, basisB); err != nil {
		return nil, err
	}
	if partitions <= 0 {
		return nil, engineErrorf(tag, ErrBadPartitions)
	}
	if basisB.N() != basisA.N()+2 {
		return nil, engineErrorf(tag, fmt.Errorf("bases of %d and %d particles: %w",
			basisA.N(), basisB.N(), ErrParticleMismatch))
	}
	out, err := matrix.NewDense(basisA.Len()*partitions, basisB.Len()*partitions)
	if err != nil {
		return nil, engineErrorf(tag, err)
	}
	err = e.build(ctx, buildSpec{op: tag, kind: KindNPlus2, rows: basisA.Len(), cols: basisB.Len(), partitions: partitions},
		func(i, j int) error {
			blk, err := e.ComputeNPlus2Block(basisA.At(i), basisB.At(j), partitions)
			if err != nil {
				return err
			}
			return matrix.SetBlock(out, i*partitions, j*partitions, blk)
		})
	if err != nil {
		return nil, err
	}

	return out, nil
}
