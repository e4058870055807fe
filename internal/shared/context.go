package shared

import "context"

type sessionContextKey struct{}

// ContextWithSession attaches the loaded session to the request context.
// The session middleware is the only writer; everything downstream reads.
func ContextWithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sess)
}

// SessionFromContext returns the request's session, or nil outside the
// session middleware.
func SessionFromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(sessionContextKey{}).(*Session)
	return sess
}
