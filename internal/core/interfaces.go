package core

// Frame is a raw signaling payload as it came off the wire.
type Frame []byte

// SignalConn abstracts a system messaging transport endpoint.
// Owned by the adapter; the adapter must Close() it.
type SignalConn interface {
	// TrySend queues a frame without blocking. An error means the frame
	// was dropped; delivery is best-effort by contract.
	TrySend(Frame) error
	// Alive reports the transport's connectivity state right now. The
	// matchmaker asks this at decision time because the queue can hold
	// entries for connections that dropped without a disconnect event.
	Alive() bool
	Close()
}
