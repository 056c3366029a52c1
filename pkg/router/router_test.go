package router

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gabrielmiguelok/livefolio/pkg/core"
	"github.com/gabrielmiguelok/livefolio/pkg/protocol"
	"github.com/gabrielmiguelok/livefolio/pkg/transport"
)

// counterComponent is a small live component used to drive the router.
type counterComponent struct {
	core.BaseComponent

	count   int
	visitor string

	mu         sync.Mutex
	terminated []core.TerminateReason
}

func (c *counterComponent) Name() string { return "counter" }

func (c *counterComponent) Mount(ctx context.Context, params core.Params, session core.Session) error {
	c.visitor = session.Visitor()
	if params.Get("fail") == "mount" {
		return fmt.Errorf("mount refused")
	}
	return nil
}

func (c *counterComponent) Render(ctx context.Context) core.Renderer {
	return core.RendererFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<main data-bind="root" data-visitor="%s"><span data-slot="count">%d</span></main>`,
			c.visitor, c.count)
		return err
	})
}

func (c *counterComponent) HandleEvent(ctx context.Context, event string, payload map[string]any) error {
	switch event {
	case "inc":
		c.count++
	case "cmd":
		c.Socket().QueueCommands(map[string]any{"op": "focus", "target": "#count"})
	case "boom":
		panic("boom")
	case "fail":
		return fmt.Errorf("bad event")
	}
	return nil
}

func (c *counterComponent) Terminate(ctx context.Context, reason core.TerminateReason) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.terminated = append(c.terminated, reason)
	return nil
}

func (c *counterComponent) reasons() []core.TerminateReason {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]core.TerminateReason(nil), c.terminated...)
}

type fixture struct {
	router *Router
	server *httptest.Server

	mu         sync.Mutex
	components []*counterComponent
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()

	f := &fixture{}
	f.router = New(opts...)
	f.router.Live("/", func() core.Component {
		c := &counterComponent{}
		f.mu.Lock()
		f.components = append(f.components, c)
		f.mu.Unlock()
		return c
	})
	f.router.Handle("/_live/websocket", f.router.SocketHandler())

	f.server = httptest.NewServer(f.router)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fixture) last() *counterComponent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.components[len(f.components)-1]
}

func (f *fixture) dial(t *testing.T, query string) *transport.WebSocketTransport {
	t.Helper()

	client := transport.NewWebSocketTransport(nil, nil, protocol.NewPhoenixCodec())
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(f.server.URL, "http") + "/_live/websocket?" + query
	if err := client.Dial(ctx, url, nil); err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func next(t *testing.T, c *transport.WebSocketTransport) *protocol.Message {
	t.Helper()

	select {
	case msg, ok := <-c.Receive():
		if !ok {
			t.Fatal("connection closed")
		}
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
	}
	return nil
}

func send(t *testing.T, c *transport.WebSocketTransport, ref, event string, payload map[string]any) {
	t.Helper()

	msg := protocol.NewMessage(protocol.EventType(event), "lv:page", event).WithRef(ref).WithPayload(payload)
	if err := c.Send(msg); err != nil {
		t.Fatalf("send %s: %v", event, err)
	}
}

func join(t *testing.T, c *transport.WebSocketTransport) {
	t.Helper()

	send(t, c, "1", "phx_join", nil)
	reply := next(t, c)
	if reply.Event != "phx_reply" || reply.Payload["status"] != "ok" {
		t.Fatalf("expected ok join reply, got %+v", reply)
	}
	diff := next(t, c)
	if diff.Event != "diff" {
		t.Fatalf("expected initial diff, got %+v", diff)
	}
	if s, _ := diff.Payload["s"].(map[string]any); s["count"] != "0" {
		t.Fatalf("initial diff should carry every slot: %+v", diff.Payload)
	}
}

func TestRouter_HTTPRender(t *testing.T) {
	f := newFixture(t)

	resp, err := http.Get(f.server.URL + "/")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("unexpected content type %q", ct)
	}
	if !strings.Contains(string(body), `<span data-slot="count">0</span>`) {
		t.Errorf("unexpected body: %s", body)
	}
	if got := f.last().reasons(); len(got) != 1 || got[0] != core.TerminateNormal {
		t.Errorf("HTTP render should terminate its component, got %v", got)
	}
}

func TestRouter_HTTPRender_Errors(t *testing.T) {
	f := newFixture(t)

	resp, err := http.Post(f.server.URL+"/", "text/plain", nil)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", resp.StatusCode)
	}

	resp, err = http.Get(f.server.URL + "/?fail=mount")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected 500 on mount failure, got %d", resp.StatusCode)
	}

	resp, err = http.Get(f.server.URL + "/elsewhere")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}

func TestRouter_VisitorFromContext(t *testing.T) {
	f := newFixture(t)
	f.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(WithVisitor(r.Context(), "visitor-1")))
		})
	})

	resp, err := http.Get(f.server.URL + "/")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if !strings.Contains(string(body), `data-visitor="visitor-1"`) {
		t.Errorf("visitor id not passed to Mount: %s", body)
	}
}

func TestRouter_EventRoundTrip(t *testing.T) {
	f := newFixture(t)
	c := f.dial(t, "vsn=phoenix")
	join(t, c)

	send(t, c, "2", "inc", nil)

	diff := next(t, c)
	if diff.Event != "diff" {
		t.Fatalf("expected diff, got %+v", diff)
	}
	if s, _ := diff.Payload["s"].(map[string]any); s["count"] != "1" || len(s) != 1 {
		t.Errorf("expected only the count slot, got %+v", diff.Payload)
	}
	if _, ok := diff.Payload["a"]; ok {
		t.Error("unchanged attributes should not be patched")
	}

	reply := next(t, c)
	if reply.Event != "phx_reply" || reply.Ref != "2" || reply.Payload["status"] != "ok" {
		t.Errorf("expected ok reply for ref 2, got %+v", reply)
	}
}

func TestRouter_CommandsFollowDiff(t *testing.T) {
	f := newFixture(t)
	c := f.dial(t, "")
	join(t, c)

	send(t, c, "2", "cmd", nil)

	js := next(t, c)
	if js.Event != "js" {
		t.Fatalf("expected js commands, got %+v", js)
	}
	cmds, _ := js.Payload["cmds"].([]any)
	if len(cmds) != 1 || cmds[0].(map[string]any)["target"] != "#count" {
		t.Errorf("unexpected commands: %+v", js.Payload)
	}
	if reply := next(t, c); reply.Event != "phx_reply" {
		t.Errorf("expected reply, got %+v", reply)
	}
}

func TestRouter_EventErrors(t *testing.T) {
	f := newFixture(t)
	c := f.dial(t, "")

	send(t, c, "1", "inc", nil)
	if reply := next(t, c); reply.Payload["status"] != "error" {
		t.Errorf("events before join must be refused, got %+v", reply)
	}

	join(t, c)

	send(t, c, "2", "boom", nil)
	reply := next(t, c)
	if reply.Payload["status"] != "error" {
		t.Fatalf("panic should produce an error reply, got %+v", reply)
	}
	reason := reply.Payload["response"].(map[string]any)["reason"].(string)
	if !strings.Contains(reason, "panicked") {
		t.Errorf("unexpected reason %q", reason)
	}

	send(t, c, "3", "fail", nil)
	if reply := next(t, c); reply.Payload["status"] != "error" {
		t.Errorf("expected error reply, got %+v", reply)
	}

	// The connection survives both failures.
	send(t, c, "4", "inc", nil)
	if diff := next(t, c); diff.Event != "diff" {
		t.Errorf("expected diff after recovery, got %+v", diff)
	}
}

func TestRouter_EventRate(t *testing.T) {
	f := newFixture(t, WithEventRate(0.001, 2))
	c := f.dial(t, "")
	join(t, c)

	for i, ref := range []string{"2", "3"} {
		send(t, c, ref, "inc", nil)
		if diff := next(t, c); diff.Event != "diff" {
			t.Fatalf("event %d within burst: %+v", i, diff)
		}
		next(t, c)
	}

	// A handled inc would push a diff before its reply.
	send(t, c, "4", "inc", nil)
	reply := next(t, c)
	if reply.Event != "phx_reply" || reply.Payload["status"] != "error" {
		t.Fatalf("event over the limit should be refused, got %+v", reply)
	}
	if reason := reply.Payload["response"].(map[string]any)["reason"]; reason != "rate limit exceeded" {
		t.Errorf("reason: %v", reason)
	}
}

func TestRouter_Heartbeat(t *testing.T) {
	f := newFixture(t)
	c := f.dial(t, "")

	msg := protocol.NewMessage(protocol.MsgHeartbeat, "phoenix", "heartbeat").WithRef("9")
	if err := c.Send(msg); err != nil {
		t.Fatalf("send: %v", err)
	}
	reply := next(t, c)
	if reply.Ref != "9" || reply.Payload["status"] != "ok" {
		t.Errorf("unexpected heartbeat reply %+v", reply)
	}
}

func TestRouter_MsgPack(t *testing.T) {
	f := newFixture(t)

	client := transport.NewWebSocketTransport(nil, nil, protocol.NewMsgPackCodec())
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	url := "ws" + strings.TrimPrefix(f.server.URL, "http") + "/_live/websocket?vsn=msgpack"
	if err := client.Dial(ctx, url, nil); err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer client.Close()

	send(t, client, "1", "phx_join", nil)
	if reply := next(t, client); reply.Payload["status"] != "ok" {
		t.Fatalf("expected ok join reply over msgpack, got %+v", reply)
	}
	if diff := next(t, client); diff.Event != "diff" {
		t.Errorf("expected diff over msgpack, got %+v", diff)
	}
}

func TestRouter_LeaveAndShutdown(t *testing.T) {
	f := newFixture(t)

	c := f.dial(t, "")
	join(t, c)
	leaving := f.last()

	send(t, c, "2", "phx_leave", nil)

	waitFor(t, func() bool { return len(leaving.reasons()) == 1 })
	if leaving.reasons()[0] != core.TerminateNormal {
		t.Errorf("leave should terminate normally, got %v", leaving.reasons())
	}

	c2 := f.dial(t, "")
	join(t, c2)
	staying := f.last()
	if f.router.Sessions().Count() != 1 {
		t.Fatalf("expected 1 session, got %d", f.router.Sessions().Count())
	}

	if err := f.router.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	waitFor(t, func() bool { return len(staying.reasons()) == 1 })
	if staying.reasons()[0] != core.TerminateShutdown {
		t.Errorf("shutdown should terminate with shutdown, got %v", staying.reasons())
	}
	waitFor(t, func() bool { return f.router.Sessions().Count() == 0 })
}

func TestRouter_SessionLimit(t *testing.T) {
	f := newFixture(t, WithMaxSessions(1))

	c := f.dial(t, "")
	join(t, c)

	refused := f.dial(t, "")
	select {
	case _, ok := <-refused.Receive():
		if ok {
			t.Error("expected refused connection to close without messages")
		}
	case <-time.After(2 * time.Second):
		t.Error("refused connection was not closed")
	}
}

func TestSocketHandler_RequiresUpgrade(t *testing.T) {
	f := newFixture(t)

	resp, err := http.Get(f.server.URL + "/_live/websocket")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}

	resp, err = http.Get(f.server.URL + "/_live/websocket?path=/nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}

func TestSecureHeaders(t *testing.T) {
	var nonce string
	h := SecureHeaders()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nonce = GetCSPNonce(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if nonce == "" {
		t.Fatal("expected a nonce in the request context")
	}
	csp := rec.Header().Get("Content-Security-Policy")
	if !strings.Contains(csp, "'nonce-"+nonce+"'") {
		t.Errorf("CSP does not carry the nonce: %s", csp)
	}
	if rec.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("expected X-Frame-Options DENY")
	}
	if rec.Header().Get("Strict-Transport-Security") != "" {
		t.Error("HSTS must not be sent over plain HTTP")
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}
