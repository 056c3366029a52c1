package router

import (
	"time"

	"github.com/gabrielmiguelok/livefolio/pkg/core"
	"github.com/gabrielmiguelok/livefolio/pkg/protocol"
	"github.com/gabrielmiguelok/livefolio/pkg/transport"
)

// TransportAdapter lets a core.Socket push through a transport.Transport.
type TransportAdapter struct {
	t transport.Transport
}

// NewTransportAdapter wraps t.
func NewTransportAdapter(t transport.Transport) *TransportAdapter {
	return &TransportAdapter{t: t}
}

// Send converts the socket message to a protocol message and queues it.
func (a *TransportAdapter) Send(msg core.Message) error {
	return a.t.Send(&protocol.Message{
		Type:      protocol.EventType(msg.Event),
		Ref:       msg.Ref,
		Topic:     msg.Topic,
		Event:     msg.Event,
		Payload:   msg.Payload,
		Timestamp: time.Now().UnixMilli(),
	})
}

// Close closes the transport.
func (a *TransportAdapter) Close() error {
	return a.t.Close()
}

// IsConnected reports whether the transport is connected.
func (a *TransportAdapter) IsConnected() bool {
	return a.t.IsConnected()
}

// Transport returns the wrapped transport.
func (a *TransportAdapter) Transport() transport.Transport {
	return a.t
}
