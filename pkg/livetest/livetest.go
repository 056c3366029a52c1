// Package livetest provides a harness for testing live components without
// a browser or WebSocket connection.
package livetest

import (
	"bytes"
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/gabrielmiguelok/livefolio/pkg/core"
)

// LiveViewTest drives a component through mount, events and renders.
type LiveViewTest struct {
	component core.Component
	transport *MockTransport
	socket    *core.Socket
	params    core.Params
	session   core.Session
	rendered  string
	events    []string
	t         *testing.T
}

// MountOption configures the test mount.
type MountOption func(*LiveViewTest)

// WithParams sets mount parameters.
func WithParams(params core.Params) MountOption {
	return func(lvt *LiveViewTest) {
		lvt.params = params
	}
}

// WithSession sets session data.
func WithSession(session core.Session) MountOption {
	return func(lvt *LiveViewTest) {
		lvt.session = session
	}
}

// WithVisitor sets the visitor id in the session.
func WithVisitor(id string) MountOption {
	return func(lvt *LiveViewTest) {
		if lvt.session == nil {
			lvt.session = core.Session{}
		}
		lvt.session[core.SessionVisitorKey] = id
	}
}

// Mount creates and mounts a component for testing. Components embedding
// core.BaseComponent get a socket backed by a MockTransport.
func Mount(t *testing.T, comp core.Component, opts ...MountOption) *LiveViewTest {
	t.Helper()

	lvt := &LiveViewTest{
		component: comp,
		transport: NewMockTransport(),
		params:    core.Params{},
		session:   core.Session{},
		t:         t,
	}

	for _, opt := range opts {
		opt(lvt)
	}

	lvt.socket = core.NewSocket(lvt.transport.ID, lvt.transport)
	if setter, ok := comp.(interface{ SetSocket(*core.Socket) }); ok {
		setter.SetSocket(lvt.socket)
	}

	if err := comp.Mount(lvt.ctx(), lvt.params, lvt.session); err != nil {
		t.Fatalf("Mount failed: %v", err)
	}

	lvt.render()
	if err := lvt.socket.FlushCommands(); err != nil {
		t.Errorf("flush commands after mount: %v", err)
	}
	return lvt
}

func (lvt *LiveViewTest) ctx() context.Context {
	return core.BuildContext(context.Background(), lvt.socket, lvt.session, lvt.params)
}

// Push sends an arbitrary event with payload and re-renders.
func (lvt *LiveViewTest) Push(event string, payload map[string]any) *LiveViewTest {
	lvt.t.Helper()

	lvt.events = append(lvt.events, event)
	if payload == nil {
		payload = map[string]any{}
	}

	if err := lvt.component.HandleEvent(lvt.ctx(), event, payload); err != nil {
		lvt.t.Errorf("HandleEvent(%s) failed: %v", event, err)
		return lvt
	}

	lvt.render()
	if err := lvt.socket.FlushCommands(); err != nil {
		lvt.t.Errorf("flush commands after %s: %v", event, err)
	}
	return lvt
}

// Click sends a click-bound event. kv alternates payload keys and values.
func (lvt *LiveViewTest) Click(event string, kv ...string) *LiveViewTest {
	lvt.t.Helper()

	payload := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		payload[kv[i]] = kv[i+1]
	}
	return lvt.Push(event, payload)
}

// Submit sends a form submission with string fields.
func (lvt *LiveViewTest) Submit(event string, data map[string]string) *LiveViewTest {
	lvt.t.Helper()

	payload := make(map[string]any, len(data))
	for k, v := range data {
		payload[k] = v
	}
	return lvt.Push(event, payload)
}

// Keydown sends a document keydown event.
func (lvt *LiveViewTest) Keydown(key string) *LiveViewTest {
	lvt.t.Helper()
	return lvt.Push("keydown", map[string]any{"key": key})
}

// Terminate ends the component's life.
func (lvt *LiveViewTest) Terminate(reason core.TerminateReason) {
	lvt.t.Helper()
	if err := lvt.component.Terminate(lvt.ctx(), reason); err != nil {
		lvt.t.Errorf("Terminate failed: %v", err)
	}
}

func (lvt *LiveViewTest) render() {
	ctx := lvt.ctx()

	var buf bytes.Buffer
	if err := lvt.component.Render(ctx).Render(ctx, &buf); err != nil {
		lvt.t.Fatalf("Render failed: %v", err)
	}

	lvt.rendered = buf.String()
}

// Rendered returns the current rendered HTML.
func (lvt *LiveViewTest) Rendered() string {
	return lvt.rendered
}

// Transport returns the mock transport behind the socket.
func (lvt *LiveViewTest) Transport() *MockTransport {
	return lvt.transport
}

// Socket returns the socket given to the component.
func (lvt *LiveViewTest) Socket() *core.Socket {
	return lvt.socket
}

// Component returns the component under test.
func (lvt *LiveViewTest) Component() core.Component {
	return lvt.component
}

// Events returns the names of all events pushed so far.
func (lvt *LiveViewTest) Events() []string {
	return lvt.events
}

// Commands returns every client command the component pushed.
func (lvt *LiveViewTest) Commands() []map[string]any {
	return lvt.transport.Commands()
}

// ByID returns the element with the given id in the current render.
func (lvt *LiveViewTest) ByID(id string) (Element, bool) {
	lvt.t.Helper()

	root, err := parseFragment(lvt.rendered)
	if err != nil {
		lvt.t.Fatalf("parse rendered HTML: %v", err)
	}
	found := findAll(root, attrEquals("id", id))
	if len(found) == 0 {
		return Element{}, false
	}
	return found[0], true
}

// All returns every element carrying attr=value in the current render.
func (lvt *LiveViewTest) All(attr, value string) []Element {
	lvt.t.Helper()

	root, err := parseFragment(lvt.rendered)
	if err != nil {
		lvt.t.Fatalf("parse rendered HTML: %v", err)
	}
	return findAll(root, attrEquals(attr, value))
}

// MustID is ByID that fails the test when the element is missing.
func (lvt *LiveViewTest) MustID(id string) Element {
	lvt.t.Helper()

	el, ok := lvt.ByID(id)
	if !ok {
		lvt.t.Fatalf("element #%s not found\nRendered HTML:\n%s", id, lvt.rendered)
	}
	return el
}

// AssertText verifies the rendered output contains text.
func (lvt *LiveViewTest) AssertText(text string) *LiveViewTest {
	lvt.t.Helper()

	if !strings.Contains(lvt.rendered, text) {
		lvt.t.Errorf("Text not found: %q\nRendered HTML:\n%s", text, lvt.rendered)
	}
	return lvt
}

// AssertNoText verifies the rendered output does not contain text.
func (lvt *LiveViewTest) AssertNoText(text string) *LiveViewTest {
	lvt.t.Helper()

	if strings.Contains(lvt.rendered, text) {
		lvt.t.Errorf("Text should not exist: %q", text)
	}
	return lvt
}

// AssertClass verifies whether element #id carries class.
func (lvt *LiveViewTest) AssertClass(id, class string, want bool) *LiveViewTest {
	lvt.t.Helper()

	if got := lvt.MustID(id).HasClass(class); got != want {
		lvt.t.Errorf("#%s class %q: got %v, want %v", id, class, got, want)
	}
	return lvt
}

// AssertAttr verifies an attribute value on element #id.
func (lvt *LiveViewTest) AssertAttr(id, attr, want string) *LiveViewTest {
	lvt.t.Helper()

	got, ok := lvt.MustID(id).Attr(attr)
	if !ok || got != want {
		lvt.t.Errorf("#%s[%s]: got %q (present=%v), want %q", id, attr, got, ok, want)
	}
	return lvt
}

// AssertAssign verifies an assign value on components exposing Assigns().
func (lvt *LiveViewTest) AssertAssign(key string, expected any) *LiveViewTest {
	lvt.t.Helper()

	getter, ok := lvt.component.(interface{ Assigns() *core.Assigns })
	if !ok {
		lvt.t.Fatalf("component %T does not expose assigns", lvt.component)
	}

	actual := getter.Assigns().Get(key)
	if !reflect.DeepEqual(actual, expected) {
		lvt.t.Errorf("Assign %s mismatch:\n  Expected: %v (%T)\n  Actual:   %v (%T)",
			key, expected, expected, actual, actual)
	}
	return lvt
}

// AssertCommand verifies that some pushed command has op and, when
// non-empty, the given value or target.
func (lvt *LiveViewTest) AssertCommand(op, valueOrTarget string) *LiveViewTest {
	lvt.t.Helper()

	for _, c := range lvt.Commands() {
		if c["op"] != op {
			continue
		}
		if valueOrTarget == "" || c["value"] == valueOrTarget || c["target"] == valueOrTarget {
			return lvt
		}
	}
	lvt.t.Errorf("command %s(%q) not pushed; got %v", op, valueOrTarget, lvt.Commands())
	return lvt
}
