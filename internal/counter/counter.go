// Package counter holds the vote bucket abstraction and the double write
// performed for every ballot.
//
// A vote touches two buckets: the aggregate "all" bucket and the bucket of
// the chosen reason, both at the chosen school. By default the two
// increments are independent writes issued in that order. Each one is
// atomic on its own field, but nothing spans the pair: if the second write
// fails the first stays applied and the buckets diverge by one. Backends
// implementing PairStore can close that gap when Tally is built with
// atomic set.
package counter

import (
	"SchoolPick/entity"
	"SchoolPick/internal/lib/sl"
	"context"
	"errors"
	"fmt"
	"log/slog"
)

var ErrPartialWrite = errors.New("aggregate bucket written, reason bucket not")

// Store is a set of named buckets, each mapping school code to a count.
type Store interface {
	// Increment adds delta to one field of one bucket, creating either
	// when missing.
	Increment(ctx context.Context, bucket, school string, delta int64) error
	// Read returns the bucket's counts, or an empty map for a bucket that
	// was never written.
	Read(ctx context.Context, bucket string) (map[string]int64, error)
}

// PairStore applies the same delta to one school in two buckets as a
// single atomic unit.
type PairStore interface {
	IncrementPair(ctx context.Context, first, second, school string, delta int64) error
}

type Tally struct {
	store  Store
	atomic bool
	log    *slog.Logger
}

func NewTally(store Store, atomic bool, log *slog.Logger) *Tally {
	if atomic {
		if _, ok := store.(PairStore); !ok {
			log.Warn("store has no atomic pair support, falling back to sequential writes")
			atomic = false
		}
	}
	return &Tally{
		store:  store,
		atomic: atomic,
		log:    log.With(sl.Module("counter.tally")),
	}
}

// Cast records one vote for school under reason.
func (t *Tally) Cast(ctx context.Context, reason, school string) error {
	return t.apply(ctx, reason, school, 1)
}

// Retract undoes a vote previously cast with the same reason and school.
func (t *Tally) Retract(ctx context.Context, reason, school string) error {
	return t.apply(ctx, reason, school, -1)
}

func (t *Tally) Read(ctx context.Context, bucket string) (map[string]int64, error) {
	counts, err := t.store.Read(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("read bucket %s: %w", bucket, err)
	}
	if counts == nil {
		counts = map[string]int64{}
	}
	return counts, nil
}

func (t *Tally) apply(ctx context.Context, reason, school string, delta int64) error {
	if t.atomic {
		if err := t.store.(PairStore).IncrementPair(ctx, entity.ReasonAll, reason, school, delta); err != nil {
			return fmt.Errorf("increment pair %s/%s: %w", entity.ReasonAll, reason, err)
		}
		return nil
	}

	if err := t.store.Increment(ctx, entity.ReasonAll, school, delta); err != nil {
		return fmt.Errorf("increment bucket %s: %w", entity.ReasonAll, err)
	}
	if err := t.store.Increment(ctx, reason, school, delta); err != nil {
		t.log.With(
			slog.String("school", school),
			slog.String("reason", reason),
			slog.Int64("delta", delta),
			sl.Err(err),
		).Error("buckets diverged")
		return fmt.Errorf("%w: bucket %s: %w", ErrPartialWrite, reason, err)
	}
	return nil
}
