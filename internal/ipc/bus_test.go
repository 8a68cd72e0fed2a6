package ipc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBus_PublishReachesSubscribers(t *testing.T) {
	bus := NewBus()

	first := 0
	second := 0
	bus.Subscribe(SignalOpenSettings, func() { first++ })
	bus.Subscribe(SignalOpenSettings, func() { second++ })

	bus.Publish(SignalOpenSettings)
	bus.Publish(SignalOpenSettings)

	require.Equal(t, 2, first)
	require.Equal(t, 2, second)
}

func TestBus_SignalsAreIndependent(t *testing.T) {
	bus := NewBus()

	opened := 0
	cleared := 0
	bus.Subscribe(SignalOpenSettings, func() { opened++ })
	bus.Subscribe(SignalClearConsole, func() { cleared++ })

	bus.Publish(SignalClearConsole)

	require.Equal(t, 0, opened)
	require.Equal(t, 1, cleared)
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus()

	kept := 0
	dropped := 0
	bus.Subscribe(SignalOpenSettings, func() { kept++ })
	id := bus.Subscribe(SignalOpenSettings, func() { dropped++ })

	bus.Unsubscribe(id)
	bus.Publish(SignalOpenSettings)

	require.Equal(t, 1, kept)
	require.Equal(t, 0, dropped)

	// Unknown ids are ignored
	bus.Unsubscribe("no-such-id")
}

func TestBus_PublishWithoutSubscribers(t *testing.T) {
	bus := NewBus()
	bus.Publish(SignalOpenSettings)
}

func TestBus_SubscriptionIDsAreUnique(t *testing.T) {
	bus := NewBus()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := bus.Subscribe(SignalOpenSettings, func() {})
		require.False(t, seen[id], "duplicate subscription id %q", id)
		seen[id] = true
	}
}
