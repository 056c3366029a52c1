package livetest

import (
	"sync"

	"github.com/google/uuid"

	"github.com/gabrielmiguelok/livefolio/pkg/core"
)

// MockTransport implements core.Transport and records every message the
// component pushes.
type MockTransport struct {
	ID        string
	Connected bool
	Sent      []core.Message
	Closed    bool
	sendErr   error

	mu sync.Mutex
}

// NewMockTransport creates a connected mock transport.
func NewMockTransport() *MockTransport {
	return &MockTransport{
		ID:        "test-socket-" + uuid.New().String()[:8],
		Connected: true,
	}
}

// Send records a sent message.
func (mt *MockTransport) Send(msg core.Message) error {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	if mt.sendErr != nil {
		return mt.sendErr
	}
	if mt.Closed {
		return core.ErrSocketClosed
	}

	mt.Sent = append(mt.Sent, msg)
	return nil
}

// Close marks the transport as closed.
func (mt *MockTransport) Close() error {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	mt.Closed = true
	mt.Connected = false
	return nil
}

// IsConnected returns the connection status.
func (mt *MockTransport) IsConnected() bool {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	return mt.Connected && !mt.Closed
}

// SetError makes every following Send fail with err. nil clears it.
func (mt *MockTransport) SetError(err error) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.sendErr = err
}

// SentMessages returns all sent messages.
func (mt *MockTransport) SentMessages() []core.Message {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	result := make([]core.Message, len(mt.Sent))
	copy(result, mt.Sent)
	return result
}

// SentCount returns the number of sent messages.
func (mt *MockTransport) SentCount() int {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	return len(mt.Sent)
}

// Reset forgets recorded messages.
func (mt *MockTransport) Reset() {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.Sent = nil
}

// Commands returns every client command pushed so far, in order.
func (mt *MockTransport) Commands() []map[string]any {
	var out []map[string]any
	for _, msg := range mt.SentMessages() {
		if msg.Event != "js" {
			continue
		}
		if cmds, ok := msg.Payload["cmds"].([]map[string]any); ok {
			out = append(out, cmds...)
		}
	}
	return out
}
