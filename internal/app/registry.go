package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/osokin/roulette/internal/core"
	"github.com/osokin/roulette/internal/domain"
)

type connEntry struct {
	Conn   core.SignalConn
	Cancel context.CancelFunc
}

// Registry tracks which client identifiers currently have a live
// transport binding. Liveness is asked of the connection itself at
// decision time, never cached here.
type Registry struct {
	mu    sync.RWMutex
	conns map[domain.ClientID]*connEntry
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[domain.ClientID]*connEntry)}
}

func (r *Registry) Bind(id domain.ClientID, conn core.SignalConn, cancel context.CancelFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[id] = &connEntry{Conn: conn, Cancel: cancel}
	log.Info().Str("module", "app.registry").Str("client", string(id)).Msg("bound connection")
}

func (r *Registry) Unbind(id domain.ClientID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conns, id)
	log.Info().Str("module", "app.registry").Str("client", string(id)).Msg("unbound connection")
}

func (r *Registry) Get(id domain.ClientID) (core.SignalConn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.conns[id]; ok {
		return e.Conn, true
	}
	return nil, false
}

// Alive reports whether the client is still reachable over its transport.
func (r *Registry) Alive(id domain.ClientID) bool {
	r.mu.RLock()
	e, ok := r.conns[id]
	r.mu.RUnlock()
	return ok && e.Conn.Alive()
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

func (r *Registry) Cancel(id domain.ClientID) bool {
	r.mu.RLock()
	e, ok := r.conns[id]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	if e.Cancel != nil {
		e.Cancel()
	}
	log.Info().Str("module", "app.registry").Str("client", string(id)).Msg("canceled connection")
	return true
}
