package wifi

import (
	"sync"
	"testing"
)

func TestEventQueueOrder(t *testing.T) {
	q := NewEventQueue()
	q.Push(Connected("a"))
	q.Push(Disconnected("b"))
	q.Push(Failed("c", 0x00050004))

	events := q.Drain()
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	if events[0].Kind != EventConnected || events[0].SSID != "a" {
		t.Errorf("unexpected first event: %+v", events[0])
	}
	if events[2].Kind != EventFailed || events[2].ReasonText != "Incorrect Password" {
		t.Errorf("unexpected failure event: %+v", events[2])
	}

	if again := q.Drain(); again != nil {
		t.Errorf("second drain should be empty, got %+v", again)
	}
}

func TestEventQueueDropsAfterClose(t *testing.T) {
	q := NewEventQueue()
	q.Push(Connected("a"))
	q.Close()
	q.Push(Connected("b")) // must not panic, must not be delivered

	if events := q.Drain(); events != nil {
		t.Errorf("expected no events after close, got %+v", events)
	}
}

func TestEventQueueConcurrentPush(t *testing.T) {
	q := NewEventQueue()
	var wg sync.WaitGroup
	const producers, perProducer = 8, 100
	for i := 0; i < producers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perProducer; j++ {
				q.Push(Connected("x"))
			}
		}()
	}
	wg.Wait()

	if got := len(q.Drain()); got != producers*perProducer {
		t.Errorf("expected %d events, got %d", producers*perProducer, got)
	}
}
