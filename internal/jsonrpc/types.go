package jsonrpc

import (
	"context"
	"encoding/json"
	"io"
)

// Handler registers method handlers and mints connections that share them.
// T is the per-connection context type (see MethodContext).
type Handler[T any] interface {
	Def(method string, handler MethodHandler[T])
	DefAsync(method string, handler AsyncMethodHandler[T])
	NewConn(stream ObjectStream, v *T) Conn[T]
}

// Conn is a single bidirectional JSON-RPC 2.0 connection.
type Conn[T any] interface {
	Open(ctx context.Context) error
	Call(ctx context.Context, method string, params, result any) error
	Notify(ctx context.Context, method string, params any) error
	Context() MethodContext[T]
	io.Closer
}

// MethodHandler handles a JSON-RPC method synchronously. The method context
// is shared across all calls on the same connection.
type MethodHandler[T any] func(mctx MethodContext[T], params *json.RawMessage) (any, error)

// AsyncMethodHandler handles a method without blocking the read loop; it
// must invoke reply exactly once.
type AsyncMethodHandler[T any] func(mctx MethodContext[T], params *json.RawMessage, reply Reply)

type Reply func(result any, err error)

// ObjectStream is a framed JSON object transport underneath a Conn.
type ObjectStream interface {
	Open(ctx context.Context) error
	Read(ctx context.Context, v any) error
	Write(ctx context.Context, obj any) error
	io.Closer
}
