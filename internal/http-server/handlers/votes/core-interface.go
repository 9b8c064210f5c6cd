package votes

import "context"

type Core interface {
	Counts(ctx context.Context, bucket string) (map[string]int64, error)
}
