package ballot

import (
	"SchoolPick/entity"
	"context"
)

type Core interface {
	BallotStatus(ctx context.Context, visitorID string) (*entity.Ballot, error)
	BallotForm(ctx context.Context, visitorID string) (*entity.BallotForm, bool, error)
	SubmitBallot(ctx context.Context, visitorID, school, reason string) (*entity.Ballot, error)
	ResetBallot(ctx context.Context, visitorID string) (*entity.Ballot, error)
}
