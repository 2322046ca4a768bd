package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_LocalDelivery(t *testing.T) {
	bus := New(nil)
	defer func() { _ = bus.Close() }()

	received := make(chan Event, 2)
	require.NoError(t, bus.Subscribe(JOBS_CHANNEL, func(event Event) error {
		received <- event
		return nil
	}))

	require.NoError(t, bus.Publish(JOBS_CHANNEL, Event{
		Type: JOBS_CHANGED,
		Data: map[string]any{"version": 3},
	}))

	select {
	case event := <-received:
		assert.NotEmpty(t, event.ID)
		assert.False(t, event.Timestamp.IsZero())
		assert.Equal(t, JOBS_CHANNEL, event.Channel)
		assert.Equal(t, JOBS_CHANGED, event.Type)
		assert.Equal(t, 3, event.Data["version"])
	case <-time.After(time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestEventBus_OtherChannelsAreIsolated(t *testing.T) {
	bus := New(nil)
	defer func() { _ = bus.Close() }()

	received := make(chan Event, 1)
	require.NoError(t, bus.Subscribe(NOTIFICATIONS_CHANNEL, func(event Event) error {
		received <- event
		return nil
	}))

	require.NoError(t, bus.Publish(JOBS_CHANNEL, Event{Type: JOBS_CHANGED}))

	select {
	case event := <-received:
		t.Fatalf("unexpected event %s", event.Type)
	case <-time.After(50 * time.Millisecond):
	}
}
