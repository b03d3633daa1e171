package events

import (
	"sync"
	"testing"

	"github.com/lixenwraith/rigid2d/constants"
)

func TestQueuePushConsume(t *testing.T) {
	q := NewQueue()

	if got := q.Consume(); got != nil {
		t.Errorf("Consume() on empty queue = %v, want nil", got)
	}

	for i := uint64(1); i <= 3; i++ {
		q.Push(ContactEvent{Type: ContactEnter, ShapeA: i, Step: i})
	}

	drained := q.Consume()
	if len(drained) != 3 {
		t.Fatalf("drained %d events, want 3", len(drained))
	}
	for i, ev := range drained {
		if ev.ShapeA != uint64(i+1) {
			t.Errorf("event %d ShapeA = %d, want %d (FIFO order)", i, ev.ShapeA, i+1)
		}
	}

	if got := q.Consume(); got != nil {
		t.Errorf("second Consume() = %v, want nil", got)
	}
}

func TestQueueOverflowDropsOldest(t *testing.T) {
	q := NewQueue()

	const extra = 10
	total := uint64(constants.EventQueueSize + extra)
	for i := uint64(0); i < total; i++ {
		q.Push(ContactEvent{ShapeA: i})
	}

	drained := q.Consume()
	if len(drained) != constants.EventQueueSize {
		t.Fatalf("drained %d events, want %d", len(drained), constants.EventQueueSize)
	}
	if drained[0].ShapeA != extra {
		t.Errorf("first event ShapeA = %d, want %d (oldest overwritten)", drained[0].ShapeA, extra)
	}
	if last := drained[len(drained)-1].ShapeA; last != total-1 {
		t.Errorf("last event ShapeA = %d, want %d", last, total-1)
	}
}

func TestQueueConcurrentProducers(t *testing.T) {
	q := NewQueue()

	const producers = 8
	const perProducer = 16 // Stays under capacity so nothing is dropped

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(id uint64) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Push(ContactEvent{ShapeA: id})
			}
		}(uint64(p))
	}
	wg.Wait()

	counts := make(map[uint64]int)
	for _, ev := range q.Consume() {
		counts[ev.ShapeA]++
	}
	for p := uint64(0); p < producers; p++ {
		if counts[p] != perProducer {
			t.Errorf("producer %d delivered %d events, want %d", p, counts[p], perProducer)
		}
	}
}

func TestContactEventTypeString(t *testing.T) {
	tests := []struct {
		typ  ContactEventType
		want string
	}{
		{ContactEnter, "ContactEnter"},
		{ContactStay, "ContactStay"},
		{ContactExit, "ContactExit"},
		{TriggerEnter, "TriggerEnter"},
		{TriggerStay, "TriggerStay"},
		{TriggerExit, "TriggerExit"},
	}

	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}
