// Package session replaces the original ambient current-user/current-apartment
// globals with an explicit session object carried through every service call.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

// Session binds an opaque bearer token to a resident and their apartment.
type Session struct {
	Token       string    `json:"token"`
	UserID      string    `json:"userId"`
	ApartmentID string    `json:"apartmentId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Store keeps active sessions. Implementations: in-process map (default) and
// redis (survives restarts).
type Store interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}

// New mints a session for the given resident.
func New(userID, apartmentID string) Session {
	return Session{
		Token:       uuid.NewString(),
		UserID:      userID,
		ApartmentID: apartmentID,
		CreatedAt:   time.Now().UTC(),
	}
}
