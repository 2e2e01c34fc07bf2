package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"society-ledger/internal/domain/session"
	"society-ledger/pkg/logger"
)

type contextKey int

const principalKey contextKey = iota

// Principal identifies the resident behind a request, resolved from the
// bearer session token.
type Principal struct {
	Token       string
	UserID      string
	ApartmentID string
}

type SessionAuth struct {
	sessions session.Store
	log      logger.Logger
}

func NewSessionAuth(sessions session.Store, log logger.Logger) *SessionAuth {
	return &SessionAuth{sessions: sessions, log: log}
}

func (a *SessionAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			unauthorized(w)
			return
		}

		sess, err := a.sessions.Get(r.Context(), token)
		if err != nil {
			if !errors.Is(err, session.ErrSessionNotFound) {
				a.log.InternalError("auth: session lookup failed", err)
			}
			unauthorized(w)
			return
		}

		principal := Principal{
			Token:       sess.Token,
			UserID:      sess.UserID,
			ApartmentID: sess.ApartmentID,
		}
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
	})
}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	if !ok || p.UserID == "" {
		return Principal{}, false
	}
	return p, true
}

func bearerToken(value string) (string, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": "invalid_session", "message": "invalid or expired session"},
	})
}
