package httpx

import "context"

type ctxKey string

const CtxKeyUserID ctxKey = "user_id"

// UserIDFromContext returns the authenticated caller's user ID, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(CtxKeyUserID).(string)
	return id, ok && id != ""
}
