package wifi

import "sync"

// EventKind tags a ConnectionEvent.
type EventKind int

const (
	EventConnected EventKind = iota
	EventDisconnected
	EventFailed
)

// ConnectionEvent is a connection-lifecycle notification pushed by the OS.
// Events are advisory: the authoritative connection state always comes from
// re-querying the backend.
type ConnectionEvent struct {
	Kind       EventKind
	SSID       string
	ReasonCode uint32 // EventFailed only
	ReasonText string // EventFailed only
}

// Connected builds an EventConnected event.
func Connected(ssid string) ConnectionEvent {
	return ConnectionEvent{Kind: EventConnected, SSID: ssid}
}

// Disconnected builds an EventDisconnected event.
func Disconnected(ssid string) ConnectionEvent {
	return ConnectionEvent{Kind: EventDisconnected, SSID: ssid}
}

// Failed builds an EventFailed event, decoding the reason code.
func Failed(ssid string, reasonCode uint32) ConnectionEvent {
	return ConnectionEvent{
		Kind:       EventFailed,
		SSID:       ssid,
		ReasonCode: reasonCode,
		ReasonText: ReasonString(reasonCode),
	}
}

// EventQueue is an unbounded multi-producer, single-consumer inbox for
// connection events. Push never blocks, which lets a native callback running
// on an arbitrary OS thread hand events off without synchronizing with the
// consumer. Once closed, pushes are silently dropped.
type EventQueue struct {
	mu     sync.Mutex
	events []ConnectionEvent
	closed bool
}

// NewEventQueue returns an empty queue.
func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push appends an event. It never blocks; after Close it is a no-op.
func (q *EventQueue) Push(ev ConnectionEvent) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.events = append(q.events, ev)
}

// Drain removes and returns all queued events in delivery order.
func (q *EventQueue) Drain() []ConnectionEvent {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = nil
	return out
}

// Close stops accepting events and discards anything still queued.
func (q *EventQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.events = nil
}
