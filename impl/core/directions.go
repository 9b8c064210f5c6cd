package core

import (
	"SchoolPick/entity"
	"SchoolPick/internal/service/directions"
	"context"
	"fmt"
)

// Directions routes the visitor to each requested school. Codes outside
// the catalog are refused before anything is sent upstream.
func (c *Core) Directions(ctx context.Context, query *entity.DirectionsQuery) ([]directions.Result, error) {
	if c.router == nil {
		return nil, ErrNotReady
	}
	destinations := make([]directions.Destination, len(query.Destinations))
	for i, d := range query.Destinations {
		if !c.catalog.HasSchool(d.SchoolCode) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSchool, d.SchoolCode)
		}
		destinations[i] = directions.Destination{SchoolCode: d.SchoolCode, Location: d.Location.Location()}
	}
	return c.router.Route(ctx, query.Origin.Location(), destinations)
}
