package reactive

import (
	"sync"
	"testing"
)

func TestStreamPublishSubscribe(t *testing.T) {
	stream := NewStream[string]()

	var got []string
	stream.Subscribe(func(s string) {
		got = append(got, s)
	})

	stream.Publish("a")
	stream.Publish("b")

	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("expected [a b], got %v", got)
	}
}

func TestStreamNoValueBeforeSubscribe(t *testing.T) {
	stream := NewStream[int]()
	stream.Publish(1)

	var got []int
	stream.Subscribe(func(n int) {
		got = append(got, n)
	})

	// Only values published after subscribing are delivered
	stream.Publish(2)
	if len(got) != 1 || got[0] != 2 {
		t.Errorf("expected [2], got %v", got)
	}
}

func TestStreamDeliveryOrder(t *testing.T) {
	stream := NewStream[int]()

	var order []string
	stream.Subscribe(func(int) { order = append(order, "first") })
	stream.Subscribe(func(int) { order = append(order, "second") })
	stream.Subscribe(func(int) { order = append(order, "third") })

	stream.Publish(0)

	want := []string{"first", "second", "third"}
	if len(order) != len(want) {
		t.Fatalf("expected %d deliveries, got %d", len(want), len(order))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("delivery %d = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestStreamCancel(t *testing.T) {
	stream := NewStream[int]()

	var count int
	cancel := stream.Subscribe(func(int) { count++ })

	stream.Publish(1)
	cancel()
	stream.Publish(2)

	if count != 1 {
		t.Errorf("expected 1 delivery after cancel, got %d", count)
	}

	// Double cancel is harmless
	cancel()

	if stream.Len() != 0 {
		t.Errorf("expected 0 subscribers, got %d", stream.Len())
	}
}

func TestStreamCancelPreservesOrder(t *testing.T) {
	stream := NewStream[int]()

	var order []string
	stream.Subscribe(func(int) { order = append(order, "a") })
	cancelB := stream.Subscribe(func(int) { order = append(order, "b") })
	stream.Subscribe(func(int) { order = append(order, "c") })

	cancelB()
	stream.Publish(0)

	if len(order) != 2 || order[0] != "a" || order[1] != "c" {
		t.Errorf("expected [a c], got %v", order)
	}
}

func TestStreamNilHandler(t *testing.T) {
	stream := NewStream[int]()
	cancel := stream.Subscribe(nil)
	cancel()

	// Must not panic
	stream.Publish(1)

	if stream.Len() != 0 {
		t.Errorf("nil handler should not be registered, got %d subscribers", stream.Len())
	}
}

func TestStreamSubscribeDuringPublish(t *testing.T) {
	stream := NewStream[int]()

	var nested int
	stream.Subscribe(func(int) {
		// Subscribing from inside a handler must not deadlock.
		stream.Subscribe(func(int) { nested++ })
	})

	stream.Publish(1)
	if nested != 0 {
		t.Errorf("late subscriber should not see the in-flight value, got %d", nested)
	}

	stream.Publish(2)
	if nested != 1 {
		t.Errorf("late subscriber expected 1 delivery, got %d", nested)
	}
}

func TestStreamConcurrentPublish(t *testing.T) {
	stream := NewStream[int]()

	var mu sync.Mutex
	var count int
	stream.Subscribe(func(int) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	const numGoroutines = 50
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(i int) {
			defer wg.Done()
			stream.Publish(i)
		}(i)
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if count != numGoroutines {
		t.Errorf("expected %d deliveries, got %d", numGoroutines, count)
	}
}
