package ipc

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Signal identifies an app-level event delivered over the bus.
type Signal string

const (
	// SignalOpenSettings asks the app to open the settings panel
	SignalOpenSettings Signal = "open-settings"

	// SignalClearConsole asks the app to clear the console output
	SignalClearConsole Signal = "clear-console"
)

// Bus is an in-process signal dispatcher standing in for the desktop IPC
// layer: state consumers subscribe, command surfaces publish. Handlers run
// on the publishing goroutine, outside the bus lock.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[Signal]map[string]func()
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		subscribers: make(map[Signal]map[string]func()),
	}
}

// Subscribe registers fn for signal and returns a subscription id.
func (b *Bus) Subscribe(signal Signal, fn func()) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := generateSubscriptionID()
	if b.subscribers[signal] == nil {
		b.subscribers[signal] = make(map[string]func())
	}
	b.subscribers[signal][id] = fn
	return id
}

// Unsubscribe removes a subscription by id. Unknown ids are ignored.
func (b *Bus) Unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for signal, handlers := range b.subscribers {
		if _, exists := handlers[id]; exists {
			delete(handlers, id)
			if len(handlers) == 0 {
				delete(b.subscribers, signal)
			}
			return
		}
	}
}

// Publish invokes every subscriber of signal.
func (b *Bus) Publish(signal Signal) {
	b.mu.RLock()
	handlers := make([]func(), 0, len(b.subscribers[signal]))
	for _, fn := range b.subscribers[signal] {
		handlers = append(handlers, fn)
	}
	b.mu.RUnlock()

	for _, fn := range handlers {
		fn()
	}
}

// generateSubscriptionID generates a unique subscription ID using UUID v7 for
// better uniqueness and time ordering
func generateSubscriptionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf("sub-%d", time.Now().UnixNano())
	}
	return id.String()
}
