package middleware

import (
	"context"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
)

// context key
type contextKey string

const UIDKey contextKey = "uid"

// DefaultUserID is the single-tenant demo fallback used when no identity
// reaches the request. It must not survive into a multi-tenant deployment;
// configure a Firebase verifier there.
const DefaultUserID = "default-user"

// UserIDHeader carries the opaque caller identity in demo mode.
const UserIDHeader = "X-User-ID"

type Middleware struct {
	AuthClient *auth.Client
}

func NewMiddleware(client *auth.Client) *Middleware {
	return &Middleware{AuthClient: client}
}

// Identity resolves the caller and stores the uid in the request context.
// A verified Firebase token wins; otherwise the X-User-ID header is
// trusted as-is, and an absent header falls back to the demo identity.
func (m *Middleware) Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid := DefaultUserID

		if header := r.Header.Get(UserIDHeader); header != "" {
			uid = header
		}

		if m.AuthClient != nil {
			if tokenStr, ok := bearerToken(r); ok {
				token, err := m.AuthClient.VerifyIDToken(r.Context(), tokenStr)
				if err != nil {
					http.Error(w, "invalid or expired token", http.StatusUnauthorized)
					return
				}
				uid = token.UID
			}
		}

		ctx := context.WithValue(r.Context(), UIDKey, uid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// UID extracts the resolved caller identity.
func UID(ctx context.Context) string {
	uid, _ := ctx.Value(UIDKey).(string)
	return uid
}
