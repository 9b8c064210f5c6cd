package core

import (
	"SchoolPick/entity"
	"SchoolPick/internal/ballot"
	"SchoolPick/internal/counter"
	"SchoolPick/internal/lib/sl"
	"context"
	"errors"
	"fmt"
	"log/slog"
)

func (c *Core) machine(ctx context.Context, visitorID string) (*ballot.Machine, error) {
	if c.ballots == nil || c.tally == nil {
		return nil, ErrNotReady
	}
	if visitorID == "" {
		return nil, fmt.Errorf("no visitor id")
	}
	return ballot.Load(ctx, c.ballots.Scope(visitorID), c.tally, c.catalog)
}

func (c *Core) BallotStatus(ctx context.Context, visitorID string) (*entity.Ballot, error) {
	m, err := c.machine(ctx, visitorID)
	if err != nil {
		return nil, err
	}
	b := m.Ballot()
	return &b, nil
}

// BallotForm returns the form data, or redirect=true when the visitor has
// already voted and must be sent to the results.
func (c *Core) BallotForm(ctx context.Context, visitorID string) (*entity.BallotForm, bool, error) {
	unlock := c.visitors.lock(visitorID)
	defer unlock()

	m, err := c.machine(ctx, visitorID)
	if err != nil {
		return nil, false, err
	}
	if m.ShouldRedirect() {
		return nil, true, nil
	}
	if err = m.Begin(); err != nil {
		return nil, false, err
	}
	return &entity.BallotForm{
		Schools: c.catalog.Schools(),
		Reasons: c.catalog.Reasons(),
		Ballot:  m.Ballot(),
	}, false, nil
}

func (c *Core) SubmitBallot(ctx context.Context, visitorID, school, reason string) (*entity.Ballot, error) {
	unlock := c.visitors.lock(visitorID)
	defer unlock()

	log := c.log.With(
		slog.String("visitor", visitorID),
		slog.String("school", school),
		slog.String("reason", reason),
	)

	m, err := c.machine(ctx, visitorID)
	if err != nil {
		return nil, err
	}
	if err = m.Submit(ctx, school, reason); err != nil {
		switch {
		case errors.Is(err, counter.ErrPartialWrite):
			log.With(
				slog.String("first_bucket", entity.ReasonAll),
				slog.String("second_bucket", reason),
				sl.Err(err),
			).Error("vote counted in aggregate bucket only")
			c.notify()
		case errors.Is(err, ballot.ErrIncomplete), errors.Is(err, ballot.ErrUnknownCode), errors.Is(err, ballot.ErrAlreadyVoted):
			log.With(sl.Err(err)).Debug("ballot rejected")
		default:
			log.With(sl.Err(err)).Error("submit ballot")
		}
		return nil, err
	}

	log.Info("vote cast")
	c.notify()
	b := m.Ballot()
	return &b, nil
}

func (c *Core) ResetBallot(ctx context.Context, visitorID string) (*entity.Ballot, error) {
	unlock := c.visitors.lock(visitorID)
	defer unlock()

	log := c.log.With(slog.String("visitor", visitorID))

	m, err := c.machine(ctx, visitorID)
	if err != nil {
		return nil, err
	}
	previous := m.Ballot()
	if err = m.Reset(ctx); err != nil {
		if errors.Is(err, ballot.ErrNotVoted) {
			return nil, err
		}
		if errors.Is(err, counter.ErrPartialWrite) {
			log.With(
				slog.String("first_bucket", entity.ReasonAll),
				slog.String("second_bucket", previous.Reason),
				sl.Err(err),
			).Error("vote retracted from aggregate bucket only")
			c.notify()
		} else {
			log.With(sl.Err(err)).Error("reset ballot")
		}
		return nil, err
	}

	log.With(
		slog.String("school", previous.School),
		slog.String("reason", previous.Reason),
	).Info("vote retracted")
	c.notify()
	b := m.Ballot()
	return &b, nil
}
