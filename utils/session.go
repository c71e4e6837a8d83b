package utils

import "context"

// Session is the request-scoped identity of a caller. Anonymous callers have
// an ID but no UserID.
type Session struct {
	ID     string
	UserID uint
	Email  string
}

func (s Session) LoggedIn() bool {
	return s.UserID != 0
}

type sessionKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFrom returns the session stored by the session middleware.
func SessionFrom(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	return s, ok
}

// CurrentUserEmail returns the logged-in caller's email.
func CurrentUserEmail(ctx context.Context) (string, bool) {
	s, ok := SessionFrom(ctx)
	if !ok || !s.LoggedIn() {
		return "", false
	}
	return s.Email, true
}

// CurrentUserID returns the logged-in caller's user id.
func CurrentUserID(ctx context.Context) (uint, bool) {
	s, ok := SessionFrom(ctx)
	if !ok || !s.LoggedIn() {
		return 0, false
	}
	return s.UserID, true
}
