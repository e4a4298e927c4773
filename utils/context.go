package utils

import (
	"context"

	"github.com/google/uuid"
)

type rqIDKey struct{}

func GetRequestIDFromCtx(ctx context.Context) string {
	rqID, ok := ctx.Value(rqIDKey{}).(string)
	if !ok {
		return ""
	}
	return rqID
}

// CreateCtxWithRqID tags a run so every log line of it can be correlated.
func CreateCtxWithRqID(parent context.Context) context.Context {
	return context.WithValue(parent, rqIDKey{}, uuid.NewString())
}
