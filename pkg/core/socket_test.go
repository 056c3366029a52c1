package core

import (
	"context"
	"sync"
	"testing"
	"time"
)

// MockTransport implements Transport for testing.
type MockTransport struct {
	connected bool
	messages  []Message
	mu        sync.Mutex
}

func NewMockTransport() *MockTransport {
	return &MockTransport{connected: true}
}

func (m *MockTransport) Send(msg Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.connected {
		return ErrSocketClosed
	}
	m.messages = append(m.messages, msg)
	return nil
}

func (m *MockTransport) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connected = false
	return nil
}

func (m *MockTransport) IsConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connected
}

func (m *MockTransport) Messages() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]Message, len(m.messages))
	copy(result, m.messages)
	return result
}

func TestNewSocket(t *testing.T) {
	socket := NewSocket("test-id", NewMockTransport())

	if socket.ID() != "test-id" {
		t.Errorf("expected ID 'test-id', got '%s'", socket.ID())
	}
	if socket.Topic() != "lv:test-id" {
		t.Errorf("expected topic 'lv:test-id', got '%s'", socket.Topic())
	}
	if !socket.IsConnected() {
		t.Error("expected socket to be connected")
	}
	if socket.Assigns() == nil {
		t.Error("expected assigns to be initialized")
	}
}

func TestSocket_Send(t *testing.T) {
	transport := NewMockTransport()
	socket := NewSocket("test-id", transport)

	if err := socket.Push("test-event", map[string]any{"key": "value"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	messages := transport.Messages()
	if len(messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(messages))
	}
	if messages[0].Event != "test-event" {
		t.Errorf("expected event 'test-event', got '%s'", messages[0].Event)
	}
	if messages[0].Topic != "lv:test-id" {
		t.Errorf("expected topic 'lv:test-id', got '%s'", messages[0].Topic)
	}
}

func TestSocket_Send_Closed(t *testing.T) {
	socket := NewSocket("test-id", NewMockTransport())
	socket.Close()

	if err := socket.Send(Message{Event: "test"}); err != ErrSocketClosed {
		t.Errorf("expected ErrSocketClosed, got %v", err)
	}
}

func TestSocket_Send_Concurrent(t *testing.T) {
	transport := NewMockTransport()
	socket := NewSocket("test-id", transport)

	const goroutines = 50
	const perGoroutine = 20

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				socket.Push("test", map[string]any{"id": id, "msg": j})
			}
		}(i)
	}
	wg.Wait()

	if got := len(transport.Messages()); got != goroutines*perGoroutine {
		t.Errorf("expected %d messages, got %d", goroutines*perGoroutine, got)
	}
}

func TestSocket_LastActivity(t *testing.T) {
	socket := NewSocket("test-id", NewMockTransport())
	initial := socket.LastActivity()

	time.Sleep(10 * time.Millisecond)
	socket.Push("test", nil)

	if !socket.LastActivity().After(initial) {
		t.Error("expected LastActivity to be updated after Send")
	}
}

func TestSocket_PushCommands(t *testing.T) {
	transport := NewMockTransport()
	socket := NewSocket("test-id", transport)

	if err := socket.PushCommands(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(transport.Messages()) != 0 {
		t.Fatal("expected no message for empty command list")
	}

	cmds := []map[string]any{{"op": "focus", "target": "#modalClose"}}
	if err := socket.PushCommands(cmds); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	messages := transport.Messages()
	if len(messages) != 1 || messages[0].Event != "js" {
		t.Fatalf("expected one js message, got %+v", messages)
	}
	got, ok := messages[0].Payload["cmds"].([]map[string]any)
	if !ok || len(got) != 1 || got[0]["target"] != "#modalClose" {
		t.Errorf("unexpected payload: %+v", messages[0].Payload)
	}
}

func TestSocket_QueueCommands(t *testing.T) {
	transport := NewMockTransport()
	socket := NewSocket("test-id", transport)

	socket.QueueCommands(map[string]any{"op": "store_local", "key": "site-theme", "value": "dark"})
	socket.QueueCommands(map[string]any{"op": "focus", "target": "#modalClose"})
	if len(transport.Messages()) != 0 {
		t.Fatal("queued commands must not be sent before flush")
	}

	if err := socket.FlushCommands(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	messages := transport.Messages()
	if len(messages) != 1 {
		t.Fatalf("expected one js message, got %d", len(messages))
	}
	cmds := messages[0].Payload["cmds"].([]map[string]any)
	if len(cmds) != 2 || cmds[0]["op"] != "store_local" || cmds[1]["op"] != "focus" {
		t.Errorf("unexpected command order: %v", cmds)
	}

	if err := socket.FlushCommands(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(transport.Messages()) != 1 {
		t.Error("second flush should send nothing")
	}
}

func TestSocket_SendDiff(t *testing.T) {
	transport := NewMockTransport()
	socket := NewSocket("test-id", transport)

	if err := socket.SendDiff(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := socket.SendDiff(&DiffPayload{Version: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(transport.Messages()) != 0 {
		t.Fatal("expected nil and empty diffs to be dropped")
	}

	payload := &DiffPayload{
		Version: socket.NextVersion(),
		Slots:   map[string]string{"theme-glyph": "☀️"},
		Attrs:   map[string]map[string]string{"body": {"class": "dark"}},
	}
	if err := socket.SendDiff(payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	messages := transport.Messages()
	if len(messages) != 1 || messages[0].Event != "diff" {
		t.Fatalf("expected one diff message, got %+v", messages)
	}
	p := messages[0].Payload
	if p["v"] != uint64(1) {
		t.Errorf("expected version 1, got %v", p["v"])
	}
	if _, ok := p["h"]; ok {
		t.Error("expected empty html slots to be omitted")
	}
	if p["s"].(map[string]string)["theme-glyph"] != "☀️" {
		t.Errorf("unexpected text slots: %v", p["s"])
	}
}

func TestDiffPayload_Size(t *testing.T) {
	d := &DiffPayload{
		Slots:     map[string]string{"a": "12345"},
		HTMLSlots: map[string]string{"b": "<p>"},
		Attrs:     map[string]map[string]string{"c": {"id": "x"}},
		Full:      "ab",
	}
	if d.Size() != 5+3+3+2 {
		t.Errorf("expected size 13, got %d", d.Size())
	}
	if d.IsEmpty() {
		t.Error("expected non-empty payload")
	}
}

func TestSocketManager(t *testing.T) {
	sm := NewSocketManager()
	s1 := NewSocket("one", NewMockTransport())
	s2 := NewSocket("two", NewMockTransport())

	sm.Add(s1)
	sm.Add(s2)
	if sm.Count() != 2 {
		t.Fatalf("expected 2 sockets, got %d", sm.Count())
	}

	if got, ok := sm.Get("one"); !ok || got != s1 {
		t.Error("expected to find socket one")
	}

	sm.Remove("one")
	if _, ok := sm.Get("one"); ok {
		t.Error("expected socket one to be removed")
	}

	if err := sm.Shutdown(context.Background()); err != nil {
		t.Fatalf("unexpected shutdown error: %v", err)
	}
	if !sm.IsShutdown() {
		t.Error("expected manager to be shut down")
	}
	if s2.IsConnected() {
		t.Error("expected remaining sockets to be closed on shutdown")
	}
}

func TestSocketManager_CleanupInactive(t *testing.T) {
	sm := NewSocketManager()
	idle := NewSocket("idle", NewMockTransport())
	sm.Add(idle)

	time.Sleep(20 * time.Millisecond)
	active := NewSocket("active", NewMockTransport())
	sm.Add(active)

	if removed := sm.CleanupInactive(10 * time.Millisecond); removed != 1 {
		t.Errorf("expected 1 removed socket, got %d", removed)
	}
	if _, ok := sm.Get("active"); !ok {
		t.Error("expected active socket to survive cleanup")
	}
}

func TestChangeTracker(t *testing.T) {
	a := NewAssigns()
	a.Set("theme", "light")
	a.Set("open", false)

	if fields := a.Tracker().Flush(); len(fields) != 2 || fields[0] != "open" || fields[1] != "theme" {
		t.Fatalf("unexpected first flush: %v", fields)
	}

	a.Set("theme", "light")
	if a.Tracker().HasChanges() {
		t.Error("writing an equal value should not be a change")
	}

	a.Set("theme", "dark")
	if fields := a.Tracker().Flush(); len(fields) != 1 || fields[0] != "theme" {
		t.Errorf("unexpected second flush: %v", fields)
	}
	if a.Tracker().Version() != 2 {
		t.Errorf("expected version 2, got %d", a.Tracker().Version())
	}
	if a.GetString("theme") != "dark" || a.GetBool("open") {
		t.Error("unexpected assign values")
	}
}

func TestBuildContext(t *testing.T) {
	socket := NewSocket("sock-1", NewMockTransport())
	session := Session{SessionVisitorKey: "visitor-1"}
	ctx := BuildContext(context.Background(), socket, session, Params{"tab": "dev"})

	if SocketFromContext(ctx) != socket {
		t.Error("socket not carried")
	}
	if got := VisitorFromContext(ctx); got != "visitor-1" {
		t.Errorf("visitor: %q", got)
	}
	if got := ParamsFromContext(ctx).Get("tab"); got != "dev" {
		t.Errorf("params: %q", got)
	}

	bare := context.Background()
	if SocketFromContext(bare) != nil || VisitorFromContext(bare) != "" || ParamsFromContext(bare) != nil {
		t.Error("bare context should carry nothing")
	}
}
