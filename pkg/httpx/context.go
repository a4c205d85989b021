package httpx

import "context"

type ctxKey string

const (
	// CtxKeyUserID carries the authenticated username.
	CtxKeyUserID ctxKey = "user_id"
	// CtxKeyAuthMethod carries how the request authenticated ("bearer", "session").
	CtxKeyAuthMethod ctxKey = "auth_method"
)

// WithUser attaches the authenticated user and method to the context.
func WithUser(ctx context.Context, userID, method string) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, userID)
	return context.WithValue(ctx, CtxKeyAuthMethod, method)
}

// UserFromContext returns the authenticated username, if any.
func UserFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(CtxKeyUserID).(string)
	return id, ok && id != ""
}
