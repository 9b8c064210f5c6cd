package core

import (
	"SchoolPick/internal/lib/sl"
	"context"
	"fmt"
	"log/slog"
	"sort"
)

// AuditCounters reports counter fields that name no catalog school, per
// bucket. Those votes are never shown on any leaderboard.
func (c *Core) AuditCounters(ctx context.Context) (map[string][]string, error) {
	if c.tally == nil {
		return nil, ErrNotReady
	}
	orphans := make(map[string][]string)
	for _, bucket := range c.catalog.Buckets() {
		counts, err := c.tally.Read(ctx, bucket.Code)
		if err != nil {
			return nil, err
		}
		for code, n := range counts {
			if c.catalog.HasSchool(code) {
				continue
			}
			orphans[bucket.Code] = append(orphans[bucket.Code], code)
			c.log.With(
				slog.String("bucket", bucket.Code),
				slog.String("school", code),
				slog.Int64("count", n),
			).Warn("counter for unknown school")
		}
		sort.Strings(orphans[bucket.Code])
	}
	if len(orphans) == 0 {
		c.log.Debug("counters match catalog", sl.Module("audit"))
	}
	return orphans, nil
}

// SyncCatalog pushes the catalog to the mirror, when there is one, and
// reads it back to check every school landed at its catalog position.
func (c *Core) SyncCatalog(ctx context.Context) error {
	if c.mirror == nil {
		return nil
	}
	schools := c.catalog.Schools()
	if err := c.mirror.SyncSchools(ctx, schools); err != nil {
		return err
	}

	mirrored, err := c.mirror.GetAllSchools(ctx)
	if err != nil {
		return fmt.Errorf("read mirror: %w", err)
	}
	if len(mirrored) != len(schools) {
		return fmt.Errorf("%w: %d schools mirrored, %d in catalog", ErrMirrorDrift, len(mirrored), len(schools))
	}
	for i, school := range mirrored {
		if c.catalog.Order(school.Code) != i {
			return fmt.Errorf("%w: %q at position %d", ErrMirrorDrift, school.Code, i)
		}
	}

	c.log.Debug("catalog mirrored", slog.Int("schools", len(schools)))
	return nil
}
