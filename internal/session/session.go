// Package session holds the logged-in identity. Absence of a login is a
// first-class state, not a missing map key.
package session

import (
	"errors"

	"github.com/gofrs/uuid"
)

// ErrNotLoggedIn is returned when an action requiring an identity is
// attempted without one.
var ErrNotLoggedIn = errors.New("not logged in")

type Session struct {
	UserID   uuid.UUID `json:"user_id"`
	LoggedIn bool      `json:"logged_in"`
}

func Anonymous() Session {
	return Session{}
}

func ForUser(userID uuid.UUID) Session {
	return Session{UserID: userID, LoggedIn: true}
}
