package cont

import (
	"context"
)

type ctxKey string

const visitorKey ctxKey = "visitor"

func PutVisitor(c context.Context, visitorID string) context.Context {
	return context.WithValue(c, visitorKey, visitorID)
}

func GetVisitor(c context.Context) string {
	id, _ := c.Value(visitorKey).(string)
	return id
}
