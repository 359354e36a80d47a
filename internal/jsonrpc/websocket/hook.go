package websocket

import (
	"net/http"

	"github.com/vineetsharma9252/Babel-The-Speech-translator/internal/jsonrpc"
)

// ConnectionHooks customizes the lifecycle of a WebSocket RPC connection.
type ConnectionHooks[T any] interface {
	// OnVerify runs before the upgrade. Return false to reject.
	OnVerify(r *http.Request) (*T, bool, error)

	// OnConnect runs after the WebSocket connection is established.
	OnConnect(mctx jsonrpc.MethodContext[T])

	// OnDisconnect runs when the connection is closed.
	OnDisconnect(mctx jsonrpc.MethodContext[T], closeCode int)
}

// defaultHooks accepts every connection and does nothing else.
type defaultHooks[T any] struct{}

func (h *defaultHooks[T]) OnVerify(*http.Request) (*T, bool, error) {
	return new(T), true, nil
}

func (h *defaultHooks[T]) OnConnect(jsonrpc.MethodContext[T]) {}

func (h *defaultHooks[T]) OnDisconnect(jsonrpc.MethodContext[T], int) {}
