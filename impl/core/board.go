package core

import (
	"SchoolPick/entity"
	"SchoolPick/internal/ranking"
	"context"
	"fmt"
)

func (c *Core) Schools() []entity.School {
	return c.catalog.Schools()
}

func (c *Core) School(code string) (*entity.School, error) {
	school, ok := c.catalog.School(code)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSchool, code)
	}
	return &school, nil
}

// Reasons lists the vote buckets, the aggregate one first.
func (c *Core) Reasons() []entity.Reason {
	return c.catalog.Buckets()
}

// Counts returns one bucket with an entry for every catalog school.
func (c *Core) Counts(ctx context.Context, bucket string) (map[string]int64, error) {
	if !c.catalog.HasBucket(bucket) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBucket, bucket)
	}
	if c.tally == nil {
		return nil, ErrNotReady
	}
	raw, err := c.tally.Read(ctx, bucket)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(raw))
	for _, school := range c.catalog.Schools() {
		counts[school.Code] = raw[school.Code]
	}
	return counts, nil
}

// Leaderboard parses the view parameters and ranks the schools.
func (c *Core) Leaderboard(ctx context.Context, mode string, origin *entity.Location, source string) (*entity.Leaderboard, error) {
	if c.ranking == nil {
		return nil, ErrNotReady
	}
	sortMode, err := ranking.ParseMode(mode, c.catalog)
	if err != nil {
		return nil, err
	}
	src, err := ranking.ParseSource(source)
	if err != nil {
		return nil, err
	}
	return c.ranking.Leaderboard(ctx, ranking.Request{Mode: sortMode, Origin: origin, Source: src})
}
