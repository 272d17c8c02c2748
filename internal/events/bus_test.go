/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package events

import (
	"testing"
	"time"
)

func TestPublishDeliversToSubscribers(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe(EventBookingCreated)

	bus.Publish(EventBookingCreated, Payload{"booking_id": "b1"})

	select {
	case payload := <-sub:
		if payload["booking_id"] != "b1" {
			t.Errorf("payload = %v", payload)
		}
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}
}

func TestPublishSkipsOtherEventTypes(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe(EventBookingCancelled)

	bus.Publish(EventBookingCreated, Payload{})

	select {
	case <-sub:
		t.Fatal("received event of the wrong type")
	default:
	}
}

func TestPublishDropsWhenSubscriberFull(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe(EventSearchCompleted)

	// Channel capacity is 8; the extra publishes must not block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 20; i++ {
			bus.Publish(EventSearchCompleted, Payload{"n": i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full subscriber")
	}

	if len(sub) != 8 {
		t.Errorf("buffered %d events, want 8", len(sub))
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe(EventInviteIssued)
	bus.Unsubscribe(EventInviteIssued, sub)

	if _, open := <-sub; open {
		t.Error("channel still open after unsubscribe")
	}

	// Publishing after unsubscribe must not panic.
	bus.Publish(EventInviteIssued, Payload{})
}
