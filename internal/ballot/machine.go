// Package ballot tracks whether a visitor may vote, has voted, or is
// taking the vote back. The state lives in visitor-scoped storage; the
// machine itself is rebuilt from it on every request.
package ballot

import (
	"SchoolPick/entity"
	"context"
	"errors"
	"fmt"
)

var (
	ErrIncomplete        = errors.New("school and reason are both required")
	ErrUnknownCode       = errors.New("unknown school or reason")
	ErrAlreadyVoted      = errors.New("visitor has already voted")
	ErrNotVoted          = errors.New("visitor has not voted")
	ErrInvalidTransition = errors.New("invalid ballot transition")
)

// Tally is the double write a ballot triggers.
type Tally interface {
	Cast(ctx context.Context, reason, school string) error
	Retract(ctx context.Context, reason, school string) error
}

type Catalog interface {
	HasSchool(code string) bool
	HasReason(code string) bool
}

type Machine struct {
	storage Storage
	tally   Tally
	catalog Catalog

	state  State
	school string
	reason string
}

// Load restores the machine from storage. A voted flag without both codes
// cannot be reset and is treated as not voted.
func Load(ctx context.Context, storage Storage, tally Tally, catalog Catalog) (*Machine, error) {
	m := &Machine{
		storage: storage,
		tally:   tally,
		catalog: catalog,
		state:   NotVoted,
	}

	voted, _, err := storage.Get(ctx, KeyVoted)
	if err != nil {
		return nil, fmt.Errorf("load voted flag: %w", err)
	}
	if voted != votedTrue {
		return m, nil
	}

	school, _, err := storage.Get(ctx, KeySchool)
	if err != nil {
		return nil, fmt.Errorf("load school: %w", err)
	}
	reason, _, err := storage.Get(ctx, KeyReason)
	if err != nil {
		return nil, fmt.Errorf("load reason: %w", err)
	}
	if school == "" || reason == "" {
		return m, nil
	}

	m.state = Voted
	m.school = school
	m.reason = reason
	return m, nil
}

func (m *Machine) State() State {
	return m.state
}

func (m *Machine) Ballot() entity.Ballot {
	return entity.Ballot{
		State:    m.state.String(),
		HasVoted: m.state == Voted,
		School:   m.school,
		Reason:   m.reason,
	}
}

// ShouldRedirect is true when the ballot form must not be shown again.
func (m *Machine) ShouldRedirect() bool {
	return m.state == Voted
}

// Begin marks interaction with the ballot form.
func (m *Machine) Begin() error {
	return m.fire(evBegin)
}

// Submit casts the visitor's single vote. Incomplete or unknown input is
// rejected without any state change.
func (m *Machine) Submit(ctx context.Context, school, reason string) error {
	if m.state == Voted {
		return ErrAlreadyVoted
	}
	if school == "" || reason == "" {
		return ErrIncomplete
	}
	if !m.catalog.HasSchool(school) || !m.catalog.HasReason(reason) {
		return ErrUnknownCode
	}
	if err := m.fire(evBegin); err != nil {
		return err
	}

	if err := m.tally.Cast(ctx, reason, school); err != nil {
		_ = m.fire(evCastFailed)
		return fmt.Errorf("cast vote: %w", err)
	}

	if err := m.persist(ctx, school, reason); err != nil {
		// Without the flag the visitor could vote again; take the vote back.
		_ = m.tally.Retract(ctx, reason, school)
		_ = m.fire(evCastFailed)
		return fmt.Errorf("persist ballot: %w", err)
	}

	m.school = school
	m.reason = reason
	return m.fire(evCast)
}

// Reset takes the vote back. On failure the visitor stays voted so the
// reset can be retried.
func (m *Machine) Reset(ctx context.Context) error {
	if m.state != Voted {
		return ErrNotVoted
	}
	if err := m.fire(evReset); err != nil {
		return err
	}

	if err := m.tally.Retract(ctx, m.reason, m.school); err != nil {
		_ = m.fire(evResetFailed)
		return fmt.Errorf("retract vote: %w", err)
	}

	if err := m.storage.Remove(ctx, KeyVoted); err != nil {
		_ = m.tally.Cast(ctx, m.reason, m.school)
		_ = m.fire(evResetFailed)
		return fmt.Errorf("clear voted flag: %w", err)
	}
	// The flag is gone, so leftovers below do not block a new ballot.
	_ = m.storage.Remove(ctx, KeySchool)
	_ = m.storage.Remove(ctx, KeyReason)

	m.school = ""
	m.reason = ""
	return m.fire(evCleared)
}

// persist writes the codes before the flag, so a set flag always has both.
func (m *Machine) persist(ctx context.Context, school, reason string) error {
	if err := m.storage.Set(ctx, KeySchool, school); err != nil {
		return err
	}
	if err := m.storage.Set(ctx, KeyReason, reason); err != nil {
		return err
	}
	return m.storage.Set(ctx, KeyVoted, votedTrue)
}

func (m *Machine) fire(e event) error {
	to, err := next(m.state, e)
	if err != nil {
		return err
	}
	m.state = to
	return nil
}
