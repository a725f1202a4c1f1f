package events

import (
	"context"
	"errors"
	"testing"
)

func TestDispatcherFanOut(t *testing.T) {
	t.Parallel()

	dispatcher := NewInMemoryDispatcher()

	handlerErr := errors.New("webhook unreachable")
	var firstRan, secondRan bool
	dispatcher.Subscribe(EventMemberRegistered, func(context.Context, Event) error {
		firstRan = true
		return handlerErr
	})
	dispatcher.Subscribe(EventMemberRegistered, func(context.Context, Event) error {
		secondRan = true
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventMemberRegistered})

	// A failing handler neither stops the fan-out nor goes unreported.
	if !firstRan || !secondRan {
		t.Fatalf("handlers ran = (%v, %v), want both", firstRan, secondRan)
	}
	if !errors.Is(err, handlerErr) {
		t.Errorf("Publish() error = %v, want wrapped %v", err, handlerErr)
	}
}

func TestDispatcherIgnoresOtherEventTypes(t *testing.T) {
	t.Parallel()

	dispatcher := NewInMemoryDispatcher()

	called := false
	dispatcher.Subscribe(EventMemberDeleted, func(context.Context, Event) error {
		called = true
		return nil
	})

	if err := dispatcher.Publish(context.Background(), Event{Type: EventMemberLoggedIn}); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if called {
		t.Error("handler invoked for an event type it never subscribed to")
	}
}
