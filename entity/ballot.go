package entity

import (
	"SchoolPick/internal/lib/validate"
	"net/http"
)

type Ballot struct {
	State    string `json:"state"`
	HasVoted bool   `json:"has_voted"`
	School   string `json:"school,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// BallotForm is what the ballot form needs to render.
type BallotForm struct {
	Schools []School `json:"schools"`
	Reasons []Reason `json:"reasons"`
	Ballot  Ballot   `json:"ballot"`
}

// BallotRequest is the submitted form.
type BallotRequest struct {
	School string `json:"school" validate:"required"`
	Reason string `json:"reason" validate:"required"`
}

func (b *BallotRequest) Bind(_ *http.Request) error {
	return validate.Struct(b)
}
