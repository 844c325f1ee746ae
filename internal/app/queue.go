package app

import "github.com/osokin/roulette/internal/domain"

// Queue is the FIFO waiting list of clients seeking a partner. A client
// appears at most once. The queue does not lock itself: the orchestrator
// serializes every mutation behind its own mutex.
type Queue struct {
	order  []domain.ClientID
	queued map[domain.ClientID]struct{}
}

func NewQueue() *Queue {
	return &Queue{queued: make(map[domain.ClientID]struct{})}
}

// Enqueue appends id unless it is already waiting.
func (q *Queue) Enqueue(id domain.ClientID) {
	if _, ok := q.queued[id]; ok {
		return
	}
	q.order = append(q.order, id)
	q.queued[id] = struct{}{}
}

// Remove drops id from the queue if present.
func (q *Queue) Remove(id domain.ClientID) {
	if _, ok := q.queued[id]; !ok {
		return
	}
	delete(q.queued, id)
	for i, queued := range q.order {
		if queued == id {
			q.order = append(q.order[:i], q.order[i+1:]...)
			return
		}
	}
}

func (q *Queue) Len() int { return len(q.order) }

// TryFormPair scans from the front, discarding entries whose transport is
// gone, until two live clients are collected. A lone live survivor is
// pushed back so it is not lost.
func (q *Queue) TryFormPair(alive func(domain.ClientID) bool) (first, second domain.ClientID, ok bool) {
	var live []domain.ClientID
	for len(q.order) > 0 && len(live) < 2 {
		id := q.order[0]
		q.order = q.order[1:]
		delete(q.queued, id)
		if alive(id) {
			live = append(live, id)
		}
	}
	if len(live) == 2 {
		return live[0], live[1], true
	}
	for _, id := range live {
		q.Enqueue(id)
	}
	return "", "", false
}
