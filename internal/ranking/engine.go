// Package ranking turns vote counts or distances into the leaderboard.
package ranking

import (
	"SchoolPick/entity"
	"SchoolPick/internal/geo"
	"SchoolPick/internal/lib/sl"
	"SchoolPick/internal/service/directions"
	"context"
	"fmt"
	"github.com/dustin/go-humanize"
	"log/slog"
)

type Counts interface {
	Read(ctx context.Context, bucket string) (map[string]int64, error)
}

type Router interface {
	Route(ctx context.Context, origin entity.Location, destinations []directions.Destination) ([]directions.Result, error)
}

type Catalog interface {
	Schools() []entity.School
}

type Request struct {
	Mode SortMode
	// Origin is the visitor location, nil when it could not be obtained.
	Origin *entity.Location
	Source Source
}

// Engine builds leaderboards. Nothing is cached: every call reads the
// selected data source again.
type Engine struct {
	catalog Catalog
	counts  Counts
	router  Router
	log     *slog.Logger
}

func NewEngine(catalog Catalog, counts Counts, router Router, logger *slog.Logger) *Engine {
	return &Engine{
		catalog: catalog,
		counts:  counts,
		router:  router,
		log:     logger.With(sl.Module("ranking")),
	}
}

// Leaderboard ranks every catalog school for req.Mode.
//
// In count modes distances are attached for display when the origin is
// known, always from the local calculator. In distance mode the counter
// store is not read; without an origin every school is unresolved and the
// board keeps catalog order. An origin out of coordinate range counts as
// no origin.
func (e *Engine) Leaderboard(ctx context.Context, req Request) (*entity.Leaderboard, error) {
	if req.Origin != nil && !geo.Valid(*req.Origin) {
		e.log.Debug("origin out of range", slog.Float64("lat", req.Origin.Lat), slog.Float64("lng", req.Origin.Lng))
		req.Origin = nil
	}

	schools := e.catalog.Schools()
	board := &entity.Leaderboard{
		Mode:             req.Mode.String(),
		LocationResolved: req.Origin != nil,
	}

	var counts map[string]int64
	var distances map[string]entity.DistanceRecord
	var err error

	switch mode := req.Mode.(type) {
	case ByReason:
		counts, err = e.counts.Read(ctx, mode.Code)
		if err != nil {
			return nil, fmt.Errorf("read counts: %w", err)
		}
		if req.Origin != nil {
			board.Source = string(SourceHaversine)
			distances = haversineDistances(*req.Origin, schools)
		}
	case ByDistance:
		if req.Origin != nil {
			board.Source = string(req.Source)
			distances, err = e.distances(ctx, *req.Origin, req.Source, schools)
			if err != nil {
				return nil, err
			}
		}
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownMode, req.Mode)
	}

	board.Entries = Rank(req.Mode, schools, counts, distances)

	e.log.With(
		slog.String("mode", board.Mode),
		slog.Bool("location", board.LocationResolved),
		slog.String("source", board.Source),
	).Debug("leaderboard ranked")
	return board, nil
}

func (e *Engine) distances(ctx context.Context, origin entity.Location, source Source, schools []entity.School) (map[string]entity.DistanceRecord, error) {
	if source != SourceRouting {
		return haversineDistances(origin, schools), nil
	}
	if e.router == nil {
		return nil, fmt.Errorf("routing source is not available")
	}

	destinations := make([]directions.Destination, len(schools))
	for i, s := range schools {
		destinations[i] = directions.Destination{SchoolCode: s.Code, Location: s.Location}
	}
	results, err := e.router.Route(ctx, origin, destinations)
	if err != nil {
		return nil, fmt.Errorf("route distances: %w", err)
	}

	out := make(map[string]entity.DistanceRecord, len(results))
	for _, r := range results {
		duration := r.Duration
		meters := float64(r.Distance)
		out[r.SchoolCode] = entity.DistanceRecord{
			SchoolCode:      r.SchoolCode,
			Meters:          meters,
			DurationSeconds: &duration,
			Route:           r.Route,
			Label:           DistanceLabel(meters),
			Resolved:        true,
		}
	}
	return out, nil
}

func haversineDistances(origin entity.Location, schools []entity.School) map[string]entity.DistanceRecord {
	out := make(map[string]entity.DistanceRecord, len(schools))
	if !geo.Valid(origin) {
		return out
	}
	for _, s := range schools {
		meters := geo.Meters(origin, s.Location)
		out[s.Code] = entity.DistanceRecord{
			SchoolCode: s.Code,
			Meters:     meters,
			Label:      DistanceLabel(meters),
			Resolved:   true,
		}
	}
	return out
}

// DistanceLabel renders meters with an SI prefix, e.g. "2.34 km".
func DistanceLabel(meters float64) string {
	return humanize.SIWithDigits(meters, 2, "m")
}
