package ballot

import (
	machine "SchoolPick/internal/ballot"
	"errors"
	"net/http"
)

const (
	msgIncomplete = "Please choose both a school and a reason"
	msgUnknown    = "Unknown school or reason"
	msgVoted      = "You have already voted"
	msgNotVoted   = "There is no vote to reset"
	msgRetry      = "Something went wrong, please try again"
)

// status maps a ballot error to the response code and the prompt shown to
// the visitor.
func status(err error) (int, string) {
	switch {
	case errors.Is(err, machine.ErrIncomplete):
		return http.StatusBadRequest, msgIncomplete
	case errors.Is(err, machine.ErrUnknownCode):
		return http.StatusBadRequest, msgUnknown
	case errors.Is(err, machine.ErrAlreadyVoted):
		return http.StatusConflict, msgVoted
	case errors.Is(err, machine.ErrNotVoted):
		return http.StatusConflict, msgNotVoted
	default:
		return http.StatusInternalServerError, msgRetry
	}
}
