package leaderboard

import (
	"SchoolPick/entity"
	"context"
)

type Core interface {
	Leaderboard(ctx context.Context, mode string, origin *entity.Location, source string) (*entity.Leaderboard, error)
}
