package app

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/osokin/roulette/internal/core"
	"github.com/osokin/roulette/internal/domain"
)

// Orchestrator owns the matchmaking queue and the session table. Every
// mutation of either goes through its mutex, which keeps the per-client
// invariants (one queue entry, one session) under concurrent match
// requests. Outbound notifications are non-blocking channel sends, so
// holding the lock across them is safe.
type Orchestrator struct {
	Registry *Registry

	mu       sync.Mutex
	queue    *Queue
	sessions *SessionTable
	metrics  *Metrics
}

func NewOrchestrator(reg *Registry, m *Metrics) *Orchestrator {
	return &Orchestrator{
		Registry: reg,
		queue:    NewQueue(),
		sessions: NewSessionTable(),
		metrics:  m,
	}
}

func (o *Orchestrator) QueueLen() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.queue.Len()
}

func (o *Orchestrator) ActiveSessions() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.sessions.Count()
}

// RequestMatch enqueues the client and tries to pair it with the first
// live waiter. With fewer than two queued clients, or when the scan finds
// fewer than two live ones, the requester is told how many are online.
func (o *Orchestrator) RequestMatch(id domain.ClientID) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if _, ok := o.sessions.Lookup(id); ok {
		log.Warn().Str("module", "app.match").Str("client", string(id)).Msg("match request while already in a session")
		return
	}

	o.queue.Enqueue(id)
	if o.queue.Len() < 2 {
		o.notify(id, core.Notice{Type: core.EventNotEnoughUsers, Message: core.MsgOnline(o.queue.Len())})
		return
	}

	first, second, ok := o.queue.TryFormPair(o.Registry.Alive)
	if !ok {
		o.notify(id, core.Notice{Type: core.EventNotEnoughUsers, Message: core.MsgOnline(o.queue.Len())})
		return
	}

	sess, err := o.sessions.Create(first, second)
	if err != nil {
		// Both clients were live a moment ago; put them back so they
		// are not lost and let the requester retry.
		o.queue.Enqueue(first)
		o.queue.Enqueue(second)
		log.Error().Err(err).Str("module", "app.match").
			Str("first", string(first)).Str("second", string(second)).Msg("session create failed")
		o.notify(id, core.Notice{Type: core.EventError, Message: core.MsgMatchFailed})
		return
	}

	if o.metrics != nil {
		o.metrics.MatchesFormed.Inc()
	}
	log.Info().Str("module", "app.match").Str("session", string(sess.ID)).
		Str("initiator", string(first)).Str("responder", string(second)).Msg("session formed")

	o.notify(first, core.Notice{Type: core.EventMatchFound, Message: core.MsgMatched})
	o.notify(second, core.Notice{Type: core.EventMatchFound, Message: core.MsgMatched})
	o.notify(first, core.InitiatorNotice{Type: core.EventInitiator, Initiator: true})
	o.notify(second, core.InitiatorNotice{Type: core.EventInitiator, Initiator: false})
}

// Relay forwards a raw frame to the other member of the sender's session,
// byte for byte. A sender without a session is logged and dropped; this
// usually follows a teardown race and is not surfaced to the client.
func (o *Orchestrator) Relay(id domain.ClientID, frame core.Frame) {
	o.mu.Lock()
	partner, ok := o.sessions.PartnerOf(id)
	o.mu.Unlock()
	if !ok {
		if o.metrics != nil {
			o.metrics.RelayDrops.Inc()
		}
		log.Warn().Str("module", "app.relay").Str("client", string(id)).Msg("relay without a session, dropped")
		return
	}
	if o.metrics != nil {
		o.metrics.FramesRelayed.Inc()
	}
	o.send(partner, frame)
}

// OnNext skips the current partner and immediately re-enters matchmaking.
// The partner sees the same notice as a real disconnect. If the skipper
// is instantly re-paired, the former partner hears nothing about it.
func (o *Orchestrator) OnNext(id domain.ClientID) {
	o.mu.Lock()
	partner, hadPartner := o.sessions.PartnerOf(id)
	o.sessions.Leave(id)
	o.mu.Unlock()

	if hadPartner {
		log.Info().Str("module", "app.lifecycle").Str("client", string(id)).Str("partner", string(partner)).Msg("skipped partner")
		o.notify(partner, core.Notice{Type: core.EventUserDisconnected, Message: core.MsgPartnerGone})
	}
	o.RequestMatch(id)
}

// OnDisconnect is terminal for the identifier: the client leaves the
// queue, its session (if any) is fully purged and the former partner
// notified. No re-queue happens.
func (o *Orchestrator) OnDisconnect(id domain.ClientID) {
	o.mu.Lock()
	o.queue.Remove(id)
	var partner domain.ClientID
	var hadPartner bool
	if sess, ok := o.sessions.Lookup(id); ok {
		partner, hadPartner = o.sessions.PartnerOf(id)
		o.sessions.Purge(sess.ID)
	}
	o.mu.Unlock()

	if hadPartner {
		o.notify(partner, core.Notice{Type: core.EventUserDisconnected, Message: core.MsgPartnerGone})
	}
	o.Registry.Unbind(id)
	log.Info().Str("module", "app.lifecycle").Str("client", string(id)).Msg("client disconnected")
}

// NotifyError surfaces a generic error event to one client. Used by the
// adapter's panic boundary.
func (o *Orchestrator) NotifyError(id domain.ClientID, msg string) {
	o.notify(id, core.Notice{Type: core.EventError, Message: msg})
}

func (o *Orchestrator) notify(id domain.ClientID, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "app").Str("client", string(id)).Msg("notify marshal")
		return
	}
	o.send(id, core.Frame(b))
}

func (o *Orchestrator) send(id domain.ClientID, frame core.Frame) {
	conn, ok := o.Registry.Get(id)
	if !ok {
		log.Warn().Str("module", "app").Str("client", string(id)).Msg("send to unbound client")
		return
	}
	if err := conn.TrySend(frame); err != nil {
		log.Warn().Err(err).Str("module", "app").Str("client", string(id)).Msg("send dropped")
	}
}
