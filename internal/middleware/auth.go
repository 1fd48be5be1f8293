package middleware

import (
	"context"
	"strings"

	"connectrpc.com/connect"
	"github.com/splitstuff/splitstuff/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey struct{}

var sessionKey contextKey

// TokenValidator turns a bearer token into a session.
type TokenValidator interface {
	Validate(token string) (auth.Session, error)
}

// WithSession returns a copy of ctx carrying session.
func WithSession(ctx context.Context, session auth.Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// SessionFrom extracts the caller's session from the context.
func SessionFrom(ctx context.Context) (auth.Session, bool) {
	session, ok := ctx.Value(sessionKey).(auth.Session)
	return session, ok && session.ProfileID != ""
}

// GetProfileID returns the caller's profile ID, or "" before authentication.
func GetProfileID(ctx context.Context) string {
	session, _ := SessionFrom(ctx)
	return session.ProfileID
}

// RequireAuth returns an interceptor that validates the bearer token and puts
// the caller's session into the request context.
func RequireAuth(validator TokenValidator) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			authHeader := req.Header().Get("Authorization")
			if authHeader == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
			}

			tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || tokenString == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
			}

			session, err := validator.Validate(tokenString)
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			return next(WithSession(ctx, session), req)
		}
	}
}
