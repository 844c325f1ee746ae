package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osokin/roulette/internal/app"
	"github.com/osokin/roulette/internal/domain"
)

func alwaysAlive(domain.ClientID) bool { return true }

func TestQueue_EnqueueIdempotent(t *testing.T) {
	q := app.NewQueue()
	q.Enqueue("a")
	q.Enqueue("a")
	assert.Equal(t, 1, q.Len())

	q.Enqueue("b")
	assert.Equal(t, 2, q.Len())
}

func TestQueue_Remove(t *testing.T) {
	q := app.NewQueue()
	q.Enqueue("a")
	q.Enqueue("b")
	q.Enqueue("c")

	q.Remove("b")
	assert.Equal(t, 2, q.Len())

	// removing an absent id is a no-op
	q.Remove("b")
	assert.Equal(t, 2, q.Len())

	first, second, ok := q.TryFormPair(alwaysAlive)
	assert.True(t, ok)
	assert.Equal(t, domain.ClientID("a"), first)
	assert.Equal(t, domain.ClientID("c"), second)
}

func TestQueue_TryFormPair(t *testing.T) {
	tests := []struct {
		name       string
		queued     []domain.ClientID
		dead       map[domain.ClientID]bool
		wantFirst  domain.ClientID
		wantSecond domain.ClientID
		wantOK     bool
		wantLen    int
	}{
		{
			name:       "two live clients pair in FIFO order",
			queued:     []domain.ClientID{"a", "b"},
			wantFirst:  "a",
			wantSecond: "b",
			wantOK:     true,
			wantLen:    0,
		},
		{
			name:       "dead entries are skipped and discarded",
			queued:     []domain.ClientID{"dead1", "a", "dead2", "b"},
			dead:       map[domain.ClientID]bool{"dead1": true, "dead2": true},
			wantFirst:  "a",
			wantSecond: "b",
			wantOK:     true,
			wantLen:    0,
		},
		{
			name:    "lone live survivor is pushed back",
			queued:  []domain.ClientID{"dead1", "a"},
			dead:    map[domain.ClientID]bool{"dead1": true},
			wantOK:  false,
			wantLen: 1,
		},
		{
			name:    "all dead leaves queue empty",
			queued:  []domain.ClientID{"dead1", "dead2"},
			dead:    map[domain.ClientID]bool{"dead1": true, "dead2": true},
			wantOK:  false,
			wantLen: 0,
		},
		{
			name:    "empty queue",
			wantOK:  false,
			wantLen: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := app.NewQueue()
			for _, id := range tt.queued {
				q.Enqueue(id)
			}

			first, second, ok := q.TryFormPair(func(id domain.ClientID) bool {
				return !tt.dead[id]
			})

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantFirst, first)
			assert.Equal(t, tt.wantSecond, second)
			assert.Equal(t, tt.wantLen, q.Len())
		})
	}
}

func TestQueue_SurvivorStaysEnqueued(t *testing.T) {
	q := app.NewQueue()
	q.Enqueue("dead")
	q.Enqueue("a")

	_, _, ok := q.TryFormPair(func(id domain.ClientID) bool { return id != "dead" })
	assert.False(t, ok)

	// the survivor must still be pairable afterwards
	q.Enqueue("b")
	first, second, ok := q.TryFormPair(alwaysAlive)
	assert.True(t, ok)
	assert.Equal(t, domain.ClientID("a"), first)
	assert.Equal(t, domain.ClientID("b"), second)
}
