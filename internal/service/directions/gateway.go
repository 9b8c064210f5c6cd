// Package directions proxies travel distance and time requests for a batch
// of schools to the external routing provider.
package directions

import (
	"SchoolPick/entity"
	"SchoolPick/internal/geo"
	"SchoolPick/internal/lib/sl"
	"context"
	"errors"
	"fmt"
	"golang.org/x/sync/errgroup"
	"log/slog"
)

var (
	ErrInvalidRequest = errors.New("origin and destinations are required")
	ErrNoCredential   = errors.New("directions api key is not configured")
	ErrProvider       = errors.New("directions provider error")
	ErrMalformed      = errors.New("malformed directions response")
)

type Provider interface {
	Directions(ctx context.Context, origin, destination entity.Location) (Summary, error)
}

type Destination struct {
	SchoolCode string          `json:"schoolCode"`
	Location   entity.Location `json:"location"`
}

type Result struct {
	SchoolCode string `json:"schoolCode"`
	Distance   int    `json:"distance"`
	Duration   int    `json:"duration"`
	Route      string `json:"route"`
}

type Gateway struct {
	provider Provider
	log      *slog.Logger
}

func NewGateway(provider Provider, logger *slog.Logger) *Gateway {
	return &Gateway{
		provider: provider,
		log:      logger.With(sl.Module("directions gateway")),
	}
}

// Route requests every destination concurrently and returns the results in
// input order. A single failed leg fails the whole batch and cancels the
// legs still in flight; partial results are never returned.
func (g *Gateway) Route(ctx context.Context, origin entity.Location, destinations []Destination) ([]Result, error) {
	if err := checkRequest(origin, destinations); err != nil {
		return nil, err
	}

	results := make([]Result, len(destinations))
	group, gctx := errgroup.WithContext(ctx)
	for i, dst := range destinations {
		group.Go(func() error {
			summary, err := g.provider.Directions(gctx, origin, dst.Location)
			if err != nil {
				return fmt.Errorf("route to %s: %w", dst.SchoolCode, err)
			}
			results[i] = Result{
				SchoolCode: dst.SchoolCode,
				Distance:   summary.Distance,
				Duration:   summary.Duration,
				Route:      RouteSummary(summary.Duration),
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		g.log.With(
			slog.Int("destinations", len(destinations)),
			sl.Err(err),
		).Error("directions batch failed")
		return nil, err
	}

	g.log.With(
		slog.Int("destinations", len(destinations)),
	).Debug("directions batch")
	return results, nil
}

// RouteSummary renders "approx. N minutes by car" with N rounded down.
func RouteSummary(durationSeconds int) string {
	return fmt.Sprintf("자동차 %d분 소요 예상", durationSeconds/60)
}

func checkRequest(origin entity.Location, destinations []Destination) error {
	if !geo.Valid(origin) {
		return fmt.Errorf("%w: invalid origin", ErrInvalidRequest)
	}
	if len(destinations) == 0 {
		return fmt.Errorf("%w: no destinations", ErrInvalidRequest)
	}
	for i, d := range destinations {
		if d.SchoolCode == "" {
			return fmt.Errorf("%w: destination %d has no school code", ErrInvalidRequest, i)
		}
		if !geo.Valid(d.Location) {
			return fmt.Errorf("%w: destination %s has an invalid location", ErrInvalidRequest, d.SchoolCode)
		}
	}
	return nil
}
