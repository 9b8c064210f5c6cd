package ballot

import "fmt"

type State int

const (
	NotVoted State = iota
	Voting
	Voted
	Resetting
)

func (s State) String() string {
	switch s {
	case NotVoted:
		return "not_voted"
	case Voting:
		return "voting"
	case Voted:
		return "voted"
	case Resetting:
		return "resetting"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

type event int

const (
	evBegin event = iota
	evCast
	evCastFailed
	evReset
	evCleared
	evResetFailed
)

var eventNames = map[event]string{
	evBegin:       "begin",
	evCast:        "cast",
	evCastFailed:  "cast_failed",
	evReset:       "reset",
	evCleared:     "cleared",
	evResetFailed: "reset_failed",
}

// transitions is the complete table; anything missing is rejected.
var transitions = map[State]map[event]State{
	NotVoted: {
		evBegin: Voting,
	},
	Voting: {
		evBegin:      Voting,
		evCast:       Voted,
		evCastFailed: NotVoted,
	},
	Voted: {
		evReset: Resetting,
	},
	Resetting: {
		evCleared:     NotVoted,
		evResetFailed: Voted,
	},
}

func next(s State, e event) (State, error) {
	if to, ok := transitions[s][e]; ok {
		return to, nil
	}
	return s, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, eventNames[e], s)
}
