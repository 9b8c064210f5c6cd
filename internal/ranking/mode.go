package ranking

import (
	"SchoolPick/entity"
	"errors"
	"fmt"
)

const ModeDistance = "distance"

var (
	ErrUnknownMode   = errors.New("unknown sort mode")
	ErrUnknownSource = errors.New("unknown distance source")
)

// SortMode is either ByReason or ByDistance.
type SortMode interface {
	String() string
	sortMode()
}

// ByReason ranks by the vote count of one bucket. Code may be the
// aggregate bucket.
type ByReason struct {
	Code string
}

func (m ByReason) String() string { return m.Code }
func (ByReason) sortMode()        {}

// ByDistance ranks by distance from the visitor.
type ByDistance struct{}

func (ByDistance) String() string { return ModeDistance }
func (ByDistance) sortMode()      {}

type BucketSet interface {
	HasBucket(code string) bool
}

// ParseMode maps a query value to a mode. Empty selects the aggregate bucket.
func ParseMode(s string, buckets BucketSet) (SortMode, error) {
	switch {
	case s == "":
		return ByReason{Code: entity.ReasonAll}, nil
	case s == ModeDistance:
		return ByDistance{}, nil
	case buckets.HasBucket(s):
		return ByReason{Code: s}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Source says where distances come from.
type Source string

const (
	SourceHaversine Source = "haversine"
	SourceRouting   Source = "routing"
)

func ParseSource(s string) (Source, error) {
	switch Source(s) {
	case "", SourceHaversine:
		return SourceHaversine, nil
	case SourceRouting:
		return SourceRouting, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSource, s)
}
