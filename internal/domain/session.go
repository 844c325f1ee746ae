// Package domain contains entity without logic, just meta-data
package domain

import (
	"errors"

	"github.com/google/uuid"
)

var ErrSameClient = errors.New("session members must be distinct")

type (
	// ClientID identifies one live connection. Assigned by the transport
	// adapter at upgrade time, never reused after disconnect.
	ClientID string

	SessionID string
)

// Session is an active two-party pairing. Members[0] is the initiator:
// it was dequeued first, so it opens the call (FIFO rule, no randomness).
type Session struct {
	ID      SessionID
	Members [2]ClientID
}

// NewSession avoids raw literals in the matchmaker and keeps the
// distinct-members invariant in one place.
func NewSession(first, second ClientID) (*Session, error) {
	if first == second {
		return nil, ErrSameClient
	}
	return &Session{
		ID:      SessionID(uuid.NewString()),
		Members: [2]ClientID{first, second},
	}, nil
}

func (s *Session) Initiator() ClientID { return s.Members[0] }

// Partner returns the other member of the session.
func (s *Session) Partner(id ClientID) (ClientID, bool) {
	switch id {
	case s.Members[0]:
		return s.Members[1], true
	case s.Members[1]:
		return s.Members[0], true
	}
	return "", false
}
