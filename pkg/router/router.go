// Package router serves live components over HTTP and WebSocket.
//
// A GET renders the component once as a plain page. The page script then
// opens a WebSocket, joins, and from there every client event goes to a
// fresh server-side instance of the same component. After each event the
// router re-renders and pushes only the data-slot and data-bind regions
// that changed.
package router

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gabrielmiguelok/livefolio/pkg/core"
	"github.com/gabrielmiguelok/livefolio/pkg/limits"
	"github.com/gabrielmiguelok/livefolio/pkg/logging"
	"github.com/gabrielmiguelok/livefolio/pkg/pool"
	"github.com/gabrielmiguelok/livefolio/pkg/protocol"
	"github.com/gabrielmiguelok/livefolio/pkg/transport"
)

// Common router errors.
var (
	ErrNilRenderer      = errors.New("component returned nil renderer")
	ErrNotJoined        = errors.New("channel not joined")
	ErrAlreadyJoined    = errors.New("channel already joined")
	ErrComponentPanic   = errors.New("component panicked")
	ErrShuttingDown     = errors.New("server shutting down")
	ErrUnknownLiveRoute = errors.New("unknown live route")
)

// ErrorHandler writes an error response for a failed HTTP render.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Observer receives connection lifecycle notifications. Used for metrics.
type Observer interface {
	ConnectionOpened(codec string)
	ConnectionClosed(reason core.TerminateReason, lifetime time.Duration)
	EventHandled(event string, duration time.Duration, err error)
	DiffSent(bytes int)
}

type nopObserver struct{}

func (nopObserver) ConnectionOpened(string)                              {}
func (nopObserver) ConnectionClosed(core.TerminateReason, time.Duration) {}
func (nopObserver) EventHandled(string, time.Duration, error)            {}
func (nopObserver) DiffSent(int)                                         {}

// LiveRoute is a path served by a live component.
type LiveRoute struct {
	// Path is the URL path.
	Path string

	// Component creates a fresh component for every render and connection.
	Component func() core.Component
}

// Router handles HTTP routing for live components.
type Router struct {
	mux          *http.ServeMux
	liveRoutes   map[string]*LiveRoute
	middleware   []Middleware
	errorHandler ErrorHandler

	sessions *LiveViewSessionManager
	sockets  *core.SocketManager
	codecs   *protocol.CodecRegistry

	transportConfig *transport.TransportConfig
	wsConfig        *transport.WebSocketConfig
	timeouts        core.TimeoutConfig

	eventRate  float64
	eventBurst int

	logger   logging.Logger
	observer Observer

	mu sync.RWMutex
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(r *Router) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithCodecs sets the codec registry used to negotiate the wire format.
func WithCodecs(reg *protocol.CodecRegistry) Option {
	return func(r *Router) {
		if reg != nil {
			r.codecs = reg
		}
	}
}

// WithWebSocketConfig sets origin checking.
func WithWebSocketConfig(cfg *transport.WebSocketConfig) Option {
	return func(r *Router) {
		if cfg != nil {
			r.wsConfig = cfg
		}
	}
}

// WithTransportConfig sets connection buffers and ping interval. Read and
// write deadlines always come from the router's timeouts.
func WithTransportConfig(cfg *transport.TransportConfig) Option {
	return func(r *Router) {
		if cfg != nil {
			r.transportConfig = cfg
		}
	}
}

// WithTimeouts sets component timeouts. Zero values keep the defaults.
func WithTimeouts(tc core.TimeoutConfig) Option {
	return func(r *Router) {
		tc.Validate()
		r.timeouts = tc
	}
}

// WithMaxSessions limits concurrent live sessions. <= 0 means unlimited.
func WithMaxSessions(n int) Option {
	return func(r *Router) {
		r.sessions = NewLiveViewSessionManager(n)
	}
}

// WithEventRate limits each connection to rate events per second with
// bursts of up to burst events. Events over the limit are answered with an
// error reply and never reach the component. rate <= 0 disables the limit.
func WithEventRate(rate float64, burst int) Option {
	return func(r *Router) {
		r.eventRate = rate
		r.eventBurst = burst
	}
}

// WithObserver registers a lifecycle observer.
func WithObserver(o Observer) Option {
	return func(r *Router) {
		if o != nil {
			r.observer = o
		}
	}
}

// WithErrorHandler overrides the HTTP error handler.
func WithErrorHandler(h ErrorHandler) Option {
	return func(r *Router) {
		if h != nil {
			r.errorHandler = h
		}
	}
}

// New creates a new router.
func New(opts ...Option) *Router {
	r := &Router{
		mux:             http.NewServeMux(),
		liveRoutes:      make(map[string]*LiveRoute),
		sessions:        NewLiveViewSessionManager(0),
		sockets:         core.NewSocketManager(),
		codecs:          protocol.DefaultCodecRegistry,
		transportConfig: transport.DefaultTransportConfig(),
		wsConfig:        transport.DefaultWebSocketConfig(),
		timeouts:        core.DefaultTimeoutConfig(),
		logger:          logging.NopLogger{},
		observer:        nopObserver{},
	}
	r.errorHandler = r.defaultErrorHandler

	for _, opt := range opts {
		opt(r)
	}

	r.transportConfig.ReadTimeout = r.timeouts.WebSocketRead
	r.transportConfig.WriteTimeout = r.timeouts.WebSocketWrite
	return r
}

func (r *Router) defaultErrorHandler(w http.ResponseWriter, req *http.Request, err error) {
	logging.L(req.Context()).Error("live render failed", logging.Err(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// Use adds middleware applied to live routes.
func (r *Router) Use(mw ...Middleware) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.middleware = append(r.middleware, mw...)
}

// Live registers a live component at path.
func (r *Router) Live(path string, factory func() core.Component) {
	route := &LiveRoute{Path: path, Component: factory}

	r.mu.Lock()
	r.liveRoutes[path] = route
	r.mu.Unlock()

	r.mux.Handle(path, r.handleLive(route))
}

// Handle registers a plain HTTP handler.
func (r *Router) Handle(pattern string, handler http.Handler) {
	r.mux.Handle(pattern, handler)
}

// HandleFunc registers a plain HTTP handler function.
func (r *Router) HandleFunc(pattern string, handler http.HandlerFunc) {
	r.Handle(pattern, handler)
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Sessions returns the live session manager.
func (r *Router) Sessions() *LiveViewSessionManager {
	return r.sessions
}

// Sockets returns the socket manager.
func (r *Router) Sockets() *core.SocketManager {
	return r.sockets
}

// Shutdown closes every live connection. Components see TerminateShutdown.
func (r *Router) Shutdown(ctx context.Context) error {
	return r.sockets.Shutdown(ctx)
}

// SocketHandler returns the handler for a dedicated WebSocket endpoint.
// The live route is picked by the "path" query parameter, default "/".
func (r *Router) SocketHandler() http.Handler {
	inner := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path := req.URL.Query().Get("path")
		if path == "" {
			path = "/"
		}

		r.mu.RLock()
		route, ok := r.liveRoutes[path]
		r.mu.RUnlock()

		if !ok {
			http.Error(w, ErrUnknownLiveRoute.Error(), http.StatusNotFound)
			return
		}
		if !isWebSocketRequest(req) {
			http.Error(w, "websocket upgrade required", http.StatusBadRequest)
			return
		}
		r.handleWebSocket(w, req, route)
	})
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		r.wrap(inner).ServeHTTP(w, req)
	})
}

func (r *Router) wrap(h http.Handler) http.Handler {
	r.mu.RLock()
	middleware := make([]Middleware, len(r.middleware))
	copy(middleware, r.middleware)
	r.mu.RUnlock()

	for i := len(middleware) - 1; i >= 0; i-- {
		h = middleware[i](h)
	}
	return h
}

// handleLive creates the HTTP handler for a live route.
func (r *Router) handleLive(route *LiveRoute) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != route.Path {
			http.NotFound(w, req)
			return
		}
		r.wrap(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			r.renderLive(w, req, route)
		})).ServeHTTP(w, req)
	}
}

// renderLive renders a component as a full page, or upgrades when the
// request asks for a WebSocket.
func (r *Router) renderLive(w http.ResponseWriter, req *http.Request, route *LiveRoute) {
	if isWebSocketRequest(req) {
		r.handleWebSocket(w, req, route)
		return
	}

	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	component := route.Component()
	params := extractParams(req)
	session := extractSession(req)
	ctx := core.BuildContext(req.Context(), nil, session, params)

	if err := r.safely(ctx, r.timeouts.ComponentMount, func(ctx context.Context) error {
		return component.Mount(ctx, params, session)
	}); err != nil {
		r.errorHandler(w, req, err)
		return
	}
	defer component.Terminate(ctx, core.TerminateNormal)

	buf := pool.GetBuffer()
	defer pool.PutBuffer(buf)

	if err := r.render(ctx, component, buf); err != nil {
		r.errorHandler(w, req, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())
}

func (r *Router) render(ctx context.Context, component core.Component, w io.Writer) error {
	return r.safely(ctx, r.timeouts.ComponentEvent, func(ctx context.Context) error {
		renderer := component.Render(ctx)
		if renderer == nil {
			return ErrNilRenderer
		}
		return renderer.Render(ctx, w)
	})
}

// safely runs fn under a timeout and turns panics into errors.
func (r *Router) safely(ctx context.Context, timeout time.Duration, fn func(context.Context) error) (err error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	defer func() {
		if rec := recover(); rec != nil {
			logging.L(ctx).Error("component panic",
				logging.Any("panic", rec),
				logging.String("stack", string(debug.Stack())),
			)
			err = fmt.Errorf("%w: %v", ErrComponentPanic, rec)
		}
	}()

	return fn(ctx)
}

// handleWebSocket upgrades the request and serves the connection until it
// closes. Events from one connection are handled strictly in order.
func (r *Router) handleWebSocket(w http.ResponseWriter, req *http.Request, route *LiveRoute) {
	if r.sockets.IsShutdown() {
		http.Error(w, ErrShuttingDown.Error(), http.StatusServiceUnavailable)
		return
	}

	codec := r.codecs.Negotiate(req.URL.Query().Get("vsn"))
	ws := transport.NewWebSocketTransport(r.transportConfig, r.wsConfig, codec)
	ws.SetLogger(r.logger)

	if err := ws.Upgrade(w, req); err != nil {
		r.logger.Warn("websocket upgrade failed",
			logging.String("origin", req.Header.Get("Origin")),
			logging.Err(err),
		)
		return
	}

	socket := core.NewSocket(uuid.NewString(), NewTransportAdapter(ws))
	component := route.Component()
	if setter, ok := component.(interface{ SetSocket(*core.Socket) }); ok {
		setter.SetSocket(socket)
	}

	params := extractParams(req)
	session := extractSession(req)
	lv := NewLiveViewSession(socket, component, params, session)
	lv.Transport = ws
	if r.eventRate > 0 {
		lv.limiter = limits.NewTokenBucket(r.eventRate, r.eventBurst)
	}

	if err := r.sessions.Add(lv); err != nil {
		r.logger.Warn("refusing live session", logging.Err(err))
		ws.Close()
		return
	}
	r.sockets.Add(socket)
	r.observer.ConnectionOpened(codec.Name())

	logger := r.logger.With(
		logging.String("socket_id", socket.ID()),
		logging.String("codec", codec.Name()),
	)
	logger.Debug("live connection opened")

	// The connection outlives the upgrade request, so its context does not
	// derive from req.Context().
	ctx := core.BuildContext(context.Background(), socket, session, params)
	ctx = logging.ContextWithLogger(ctx, logger)

	reason := r.messageLoop(ctx, lv)
	r.handleDisconnect(ctx, lv, reason)
}

// messageLoop processes client messages until the connection ends.
func (r *Router) messageLoop(ctx context.Context, lv *LiveViewSession) core.TerminateReason {
	for msg := range lv.Transport.Receive() {
		lv.Socket.UpdateActivity()

		switch msg.Event {
		case "heartbeat", "phx_heartbeat":
			r.reply(lv, protocol.OkReply(msg.Ref, msg.Topic, nil))

		case "phx_join":
			r.handleJoin(ctx, lv, msg)

		case "phx_leave":
			r.reply(lv, protocol.OkReply(msg.Ref, msg.Topic, nil))
			return core.TerminateNormal

		default:
			r.handleEvent(ctx, lv, msg)
		}
	}

	if r.sockets.IsShutdown() {
		return core.TerminateShutdown
	}
	return core.TerminateNormal
}

// handleJoin mounts the component and sends the first diff. With no
// previous render every region counts as changed, so the client ends up
// in sync with the server whatever the HTTP render showed.
func (r *Router) handleJoin(ctx context.Context, lv *LiveViewSession, msg *protocol.Message) {
	if !lv.MarkJoined(msg.JoinRef) {
		r.reply(lv, protocol.ErrorReply(msg.Ref, msg.Topic, ErrAlreadyJoined.Error()))
		return
	}

	if err := r.safely(ctx, r.timeouts.ComponentMount, func(ctx context.Context) error {
		return lv.Component.Mount(ctx, lv.Params, lv.Session)
	}); err != nil {
		logging.L(ctx).Error("mount failed", logging.Err(err))
		r.reply(lv, protocol.ErrorReply(msg.Ref, msg.Topic, err.Error()))
		return
	}

	r.reply(lv, protocol.OkReply(msg.Ref, msg.Topic, map[string]any{
		"socket_id": lv.SocketID(),
	}))
	r.renderAndSendDiff(ctx, lv)
	r.flushCommands(ctx, lv)
}

// handleEvent runs one client event through the component, then pushes
// the resulting diff and any queued client commands.
func (r *Router) handleEvent(ctx context.Context, lv *LiveViewSession, msg *protocol.Message) {
	if !lv.IsJoined() {
		r.reply(lv, protocol.ErrorReply(msg.Ref, msg.Topic, ErrNotJoined.Error()))
		return
	}

	if lv.limiter != nil && !lv.limiter.Allow() {
		r.observer.EventHandled(msg.Event, 0, limits.ErrRateLimitExceeded)
		logging.L(ctx).Debug("event dropped", logging.String("event", msg.Event))
		r.reply(lv, protocol.ErrorReply(msg.Ref, msg.Topic, limits.ErrRateLimitExceeded.Error()))
		return
	}

	payload := msg.Payload
	if payload == nil {
		payload = make(map[string]any)
	}

	start := time.Now()
	err := r.safely(ctx, r.timeouts.ComponentEvent, func(ctx context.Context) error {
		return lv.Component.HandleEvent(ctx, msg.Event, payload)
	})
	r.observer.EventHandled(msg.Event, time.Since(start), err)

	if err != nil {
		logging.L(ctx).Warn("event failed",
			logging.String("event", msg.Event),
			logging.Err(err),
		)
		r.reply(lv, protocol.ErrorReply(msg.Ref, msg.Topic, err.Error()))
		return
	}

	version := r.renderAndSendDiff(ctx, lv)
	r.flushCommands(ctx, lv)
	r.reply(lv, protocol.OkReply(msg.Ref, msg.Topic, map[string]any{"v": version}))
}

// renderAndSendDiff renders the component and sends the changed regions.
// It returns the version of the sent diff, or 0 when nothing changed.
func (r *Router) renderAndSendDiff(ctx context.Context, lv *LiveViewSession) uint64 {
	buf := pool.GetBuffer()
	defer pool.PutBuffer(buf)

	if err := r.render(ctx, lv.Component, buf); err != nil {
		logging.L(ctx).Error("render failed", logging.Err(err))
		return 0
	}

	payload := lv.slots.diff(buf.String())
	if payload.IsEmpty() {
		return 0
	}
	payload.Version = lv.Socket.NextVersion()

	if err := lv.Socket.SendDiff(payload); err != nil {
		logging.L(ctx).Debug("diff not sent", logging.Err(err))
		return 0
	}
	r.observer.DiffSent(payload.Size())
	return payload.Version
}

func (r *Router) flushCommands(ctx context.Context, lv *LiveViewSession) {
	if err := lv.Socket.FlushCommands(); err != nil {
		logging.L(ctx).Debug("commands not sent", logging.Err(err))
	}
}

// handleDisconnect terminates the component and releases the connection.
func (r *Router) handleDisconnect(ctx context.Context, lv *LiveViewSession, reason core.TerminateReason) {
	lv.closeOnce.Do(func() {
		if err := r.safely(ctx, r.timeouts.ComponentEvent, func(ctx context.Context) error {
			return lv.Component.Terminate(ctx, reason)
		}); err != nil {
			logging.L(ctx).Warn("terminate failed", logging.Err(err))
		}

		r.sessions.Remove(lv.SocketID())
		r.sockets.Remove(lv.SocketID())
		lv.Socket.Close()

		lifetime := time.Since(lv.CreatedAt)
		r.observer.ConnectionClosed(reason, lifetime)
		logging.L(ctx).Debug("live connection closed",
			logging.String("reason", reason.String()),
			logging.Duration("lifetime", lifetime),
		)
	})
}

func (r *Router) reply(lv *LiveViewSession, msg *protocol.Message) {
	if msg.Payload != nil && msg.Payload["response"] == nil {
		msg.Payload["response"] = map[string]any{}
	}
	msg.JoinRef = lv.JoinRef()
	if err := lv.Transport.Send(msg); err != nil {
		r.logger.Debug("reply not sent",
			logging.String("socket_id", lv.SocketID()),
			logging.Err(err),
		)
	}
}

// visitorKey carries the visitor id minted by the server for this request.
type visitorKey struct{}

// WithVisitor stores the visitor id for extractSession.
func WithVisitor(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, visitorKey{}, id)
}

// VisitorFromContext returns the visitor id stored by WithVisitor.
func VisitorFromContext(ctx context.Context) string {
	id, _ := ctx.Value(visitorKey{}).(string)
	return id
}

// extractSession captures cookies and the visitor id.
func extractSession(req *http.Request) core.Session {
	session := make(core.Session)

	for _, cookie := range req.Cookies() {
		session["cookie:"+cookie.Name] = cookie.Value
	}
	if id := VisitorFromContext(req.Context()); id != "" {
		session[core.SessionVisitorKey] = id
	}

	return session
}

// extractParams extracts query parameters. The first value wins.
func extractParams(req *http.Request) core.Params {
	params := make(core.Params)

	for key, values := range req.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}

	return params
}

// isWebSocketRequest checks if this is a WebSocket upgrade request.
func isWebSocketRequest(req *http.Request) bool {
	return strings.Contains(strings.ToLower(req.Header.Get("Upgrade")), "websocket")
}
