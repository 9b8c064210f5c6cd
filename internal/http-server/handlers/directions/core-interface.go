package directions

import (
	"SchoolPick/entity"
	"SchoolPick/internal/service/directions"
	"context"
)

type Core interface {
	Directions(ctx context.Context, query *entity.DirectionsQuery) ([]directions.Result, error)
}
