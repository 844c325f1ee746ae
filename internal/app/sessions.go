package app

import (
	"errors"

	"github.com/osokin/roulette/internal/domain"
)

var ErrAlreadyMatched = errors.New("client already in a session")

// SessionTable maps clients to their active two-party session. Absence of
// an entry is the only "no session" state; there is no sentinel value.
// Like the queue, it relies on the orchestrator for serialization.
type SessionTable struct {
	byClient map[domain.ClientID]domain.SessionID
	sessions map[domain.SessionID]*domain.Session
}

func NewSessionTable() *SessionTable {
	return &SessionTable{
		byClient: make(map[domain.ClientID]domain.SessionID),
		sessions: make(map[domain.SessionID]*domain.Session),
	}
}

// Create pairs two clients into a fresh session; first becomes the
// initiator. Both must be unmatched.
func (t *SessionTable) Create(first, second domain.ClientID) (*domain.Session, error) {
	if _, ok := t.byClient[first]; ok {
		return nil, ErrAlreadyMatched
	}
	if _, ok := t.byClient[second]; ok {
		return nil, ErrAlreadyMatched
	}
	sess, err := domain.NewSession(first, second)
	if err != nil {
		return nil, err
	}
	t.byClient[first] = sess.ID
	t.byClient[second] = sess.ID
	t.sessions[sess.ID] = sess
	return sess, nil
}

func (t *SessionTable) Lookup(id domain.ClientID) (*domain.Session, bool) {
	sid, ok := t.byClient[id]
	if !ok {
		return nil, false
	}
	sess, ok := t.sessions[sid]
	return sess, ok
}

// PartnerOf returns the other member of id's session, but only while that
// member still belongs to the same session. After a one-sided skip the
// remaining member has no recipient.
func (t *SessionTable) PartnerOf(id domain.ClientID) (domain.ClientID, bool) {
	sess, ok := t.Lookup(id)
	if !ok {
		return "", false
	}
	partner, ok := sess.Partner(id)
	if !ok {
		return "", false
	}
	if t.byClient[partner] != sess.ID {
		return "", false
	}
	return partner, true
}

// Leave removes one member's mapping. The session object itself is
// destroyed once no member maps to it anymore.
func (t *SessionTable) Leave(id domain.ClientID) {
	sid, ok := t.byClient[id]
	if !ok {
		return
	}
	delete(t.byClient, id)
	sess, ok := t.sessions[sid]
	if !ok {
		return
	}
	for _, m := range sess.Members {
		if t.byClient[m] == sid {
			return
		}
	}
	delete(t.sessions, sid)
}

// Purge removes every identifier mapped to the session plus the session
// itself, and reports which clients were evicted. Scanning the whole
// table instead of deleting the two known members means an inconsistent
// extra mapping can never survive a teardown.
func (t *SessionTable) Purge(sid domain.SessionID) []domain.ClientID {
	var evicted []domain.ClientID
	for cid, mapped := range t.byClient {
		if mapped == sid {
			evicted = append(evicted, cid)
			delete(t.byClient, cid)
		}
	}
	delete(t.sessions, sid)
	return evicted
}

func (t *SessionTable) Count() int { return len(t.sessions) }
