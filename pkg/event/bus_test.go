package event

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestNewInMemoryBus(t *testing.T) {
	bus := NewInMemoryBus()
	if bus == nil {
		t.Fatal("NewInMemoryBus returned nil")
	}

	if bus.subscriptions == nil {
		t.Error("Subscriptions map should be initialized")
	}

	if bus.bufferSize != 64 {
		t.Errorf("Expected default buffer size 64, got %d", bus.bufferSize)
	}

	if bus.dropSlow {
		t.Error("Expected default dropSlow to be false")
	}
}

func TestNewInMemoryBus_WithOptions(t *testing.T) {
	bus := NewInMemoryBus(
		WithBufferSize(128),
		WithDropSlow(true),
		WithBusName("slider"),
	)

	if bus.bufferSize != 128 {
		t.Errorf("Expected buffer size 128, got %d", bus.bufferSize)
	}

	if !bus.dropSlow {
		t.Error("Expected dropSlow to be true")
	}

	if bus.name != "slider" {
		t.Errorf("Expected bus name slider, got %q", bus.name)
	}
}

func TestBus_Subscribe(t *testing.T) {
	bus := NewInMemoryBus()
	defer bus.Close()

	ctx := context.Background()
	filter := Filter{Types: []string{"slider.*"}}

	sub, err := bus.Subscribe(ctx, filter)
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	if sub == nil {
		t.Fatal("Subscribe returned nil subscription")
	}

	if sub.Events() == nil {
		t.Error("Subscription events channel is nil")
	}
}

func TestBus_Subscribe_AfterClose(t *testing.T) {
	bus := NewInMemoryBus()
	bus.Close()

	ctx := context.Background()

	_, err := bus.Subscribe(ctx, Filter{})
	if err == nil {
		t.Error("Expected error when subscribing to closed bus")
	}
}

func TestBus_PublishAndReceive(t *testing.T) {
	bus := NewInMemoryBus()
	defer bus.Close()

	ctx := context.Background()

	sub, err := bus.Subscribe(ctx, Filter{})
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer sub.Close()

	evt := Event{
		ID:        "evt-1",
		Type:      TopicNumberOfSteps,
		Source:    "controller:TimeSlider",
		Timestamp: time.Now(),
	}

	if err := bus.Publish(ctx, evt); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	select {
	case got := <-sub.Events():
		if got.ID != evt.ID {
			t.Errorf("Received event ID %q, want %q", got.ID, evt.ID)
		}
		if got.Type != TopicNumberOfSteps {
			t.Errorf("Received event type %q, want %q", got.Type, TopicNumberOfSteps)
		}
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for event")
	}
}

func TestBus_TopicWildcardFilter(t *testing.T) {
	bus := NewInMemoryBus()
	defer bus.Close()

	ctx := context.Background()

	sub, err := bus.Subscribe(ctx, Filter{Types: []string{"slider.*"}})
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer sub.Close()

	matching := Event{ID: "evt-1", Type: TopicFullTimeExtent, Timestamp: time.Now()}
	other := Event{ID: "evt-2", Type: "layer.done_loading", Timestamp: time.Now()}

	if err := bus.Publish(ctx, matching); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if err := bus.Publish(ctx, other); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	select {
	case got := <-sub.Events():
		if got.ID != "evt-1" {
			t.Errorf("Received event %q, want evt-1", got.ID)
		}
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for matching event")
	}

	select {
	case got := <-sub.Events():
		t.Errorf("Received unexpected event %q", got.ID)
	case <-time.After(50 * time.Millisecond):
		// Non-matching topic correctly filtered out.
	}
}

func TestBus_SourceFilter(t *testing.T) {
	bus := NewInMemoryBus()
	defer bus.Close()

	ctx := context.Background()

	sub, err := bus.Subscribe(ctx, Filter{Sources: []string{"controller:TimeSlider"}})
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer sub.Close()

	if err := bus.Publish(ctx, Event{ID: "evt-1", Type: TopicStartStep, Source: "controller:TimeSlider"}); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if err := bus.Publish(ctx, Event{ID: "evt-2", Type: TopicStartStep, Source: "other"}); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	select {
	case got := <-sub.Events():
		if got.ID != "evt-1" {
			t.Errorf("Received event %q, want evt-1", got.ID)
		}
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for event")
	}
}

func TestBus_FanOut(t *testing.T) {
	bus := NewInMemoryBus()
	defer bus.Close()

	ctx := context.Background()

	const subscribers = 3
	subs := make([]Subscription, subscribers)
	for i := range subs {
		sub, err := bus.Subscribe(ctx, Filter{})
		if err != nil {
			t.Fatalf("Subscribe %d failed: %v", i, err)
		}
		defer sub.Close()
		subs[i] = sub
	}

	if err := bus.Publish(ctx, Event{ID: "evt-1", Type: TopicStepTimes}); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	for i, sub := range subs {
		select {
		case got := <-sub.Events():
			if got.ID != "evt-1" {
				t.Errorf("Subscriber %d received %q, want evt-1", i, got.ID)
			}
		case <-time.After(time.Second):
			t.Fatalf("Subscriber %d timed out", i)
		}
	}
}

func TestBus_DropSlow(t *testing.T) {
	bus := NewInMemoryBus(WithBufferSize(1), WithDropSlow(true))
	defer bus.Close()

	ctx := context.Background()

	sub, err := bus.Subscribe(ctx, Filter{})
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer sub.Close()

	// Fill the buffer, then publish more; with dropSlow the extra
	// events are dropped instead of blocking.
	for i := 0; i < 5; i++ {
		evt := Event{ID: fmt.Sprintf("evt-%d", i), Type: TopicEndStep}
		if err := bus.Publish(ctx, evt); err != nil {
			t.Fatalf("Publish %d failed: %v", i, err)
		}
	}

	received := 0
	for {
		select {
		case <-sub.Events():
			received++
		case <-time.After(50 * time.Millisecond):
			if received != 1 {
				t.Errorf("Received %d events, want 1 (buffer size)", received)
			}
			return
		}
	}
}

func TestBus_PublishAfterClose(t *testing.T) {
	bus := NewInMemoryBus()
	bus.Close()

	err := bus.Publish(context.Background(), Event{ID: "evt-1"})
	if err == nil {
		t.Error("Expected error when publishing to closed bus")
	}
}

func TestBus_SubscriptionClose(t *testing.T) {
	bus := NewInMemoryBus()
	defer bus.Close()

	ctx := context.Background()

	sub, err := bus.Subscribe(ctx, Filter{})
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	sub.Close()

	// Publishing after the subscription closed must not panic.
	if err := bus.Publish(ctx, Event{ID: "evt-1", Type: TopicStartStep}); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	if _, ok := <-sub.Events(); ok {
		t.Error("Expected closed events channel")
	}
}
