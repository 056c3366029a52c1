package core

import (
	"context"
)

type liveContextKey struct{}

// liveContext is what a component can reach from the context it is handed
// while mounting or handling an event. The socket is nil during the HTTP
// render.
type liveContext struct {
	socket  *Socket
	session Session
	params  Params
}

func fromContext(ctx context.Context) liveContext {
	lc, _ := ctx.Value(liveContextKey{}).(liveContext)
	return lc
}

// BuildContext attaches the live socket, the session and the query
// parameters to ctx.
func BuildContext(ctx context.Context, socket *Socket, session Session, params Params) context.Context {
	return context.WithValue(ctx, liveContextKey{}, liveContext{
		socket:  socket,
		session: session,
		params:  params,
	})
}

// SocketFromContext returns the live socket, or nil outside a connection.
func SocketFromContext(ctx context.Context) *Socket {
	return fromContext(ctx).socket
}

// SessionFromContext returns the session the page was requested with.
func SessionFromContext(ctx context.Context) Session {
	return fromContext(ctx).session
}

// ParamsFromContext returns the query parameters of the page request.
func ParamsFromContext(ctx context.Context) Params {
	return fromContext(ctx).params
}

// VisitorFromContext is shorthand for SessionFromContext(ctx).Visitor().
func VisitorFromContext(ctx context.Context) string {
	return SessionFromContext(ctx).Visitor()
}
