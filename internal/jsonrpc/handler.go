package jsonrpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vineetsharma9252/Babel-The-Speech-translator/internal/errors"
	"github.com/vineetsharma9252/Babel-The-Speech-translator/internal/log"
)

// NewHandler returns a Handler whose method table is shared by every
// connection it mints.
func NewHandler[T any](logger *log.Logger) Handler[T] {
	return &handlerImpl[T]{
		methods: map[string]AsyncMethodHandler[T]{},
		logger:  logger.Module("jsonrpc"),
	}
}

type handlerImpl[T any] struct {
	methods map[string]AsyncMethodHandler[T]
	logger  *log.Logger
}

// Def registers a synchronous handler. It runs on the read loop, so
// messages from one connection dispatch in arrival order.
func (h *handlerImpl[T]) Def(method string, handler MethodHandler[T]) {
	if _, ok := h.methods[method]; ok {
		panic(fmt.Sprintf("method already defined: %s", method))
	}
	h.methods[method] = func(mctx MethodContext[T], params *json.RawMessage, reply Reply) {
		reply(handler(mctx, params))
	}
}

func (h *handlerImpl[T]) DefAsync(method string, handler AsyncMethodHandler[T]) {
	if _, ok := h.methods[method]; ok {
		panic(fmt.Sprintf("method already defined: %s", method))
	}
	// run on its own goroutine so the handler never blocks the read loop
	h.methods[method] = func(mctx MethodContext[T], params *json.RawMessage, reply Reply) {
		go handler(mctx, params, reply)
	}
}

func (h *handlerImpl[T]) NewConn(stream ObjectStream, v *T) Conn[T] {
	return newConn(stream, v, h.handle, h.logger)
}

func (h *handlerImpl[T]) handle(ctx context.Context, conn *connImpl[T], req *Request) {
	method, ok := h.methods[req.Method]
	if !ok {
		h.logger.Warn("method not found", log.String("method", req.Method))
		if err := conn.replyError(ctx, req.ID, ErrMethodNotFound(req.Method)); err != nil {
			h.logger.Error("failed to reply", log.Error(err))
		}
		return
	}

	method(conn.mctx, req.Params, func(result any, err error) {
		h.reply(ctx, conn, req, result, err)
	})
}

func (h *handlerImpl[T]) reply(ctx context.Context, conn *connImpl[T], req *Request, result any, err error) {
	if err != nil {
		var respErr *Error
		if e, ok := errors.As[*Error](err); ok {
			respErr = *e
		} else {
			h.logger.Error("method failed with unexpected error",
				log.String("method", req.Method),
				log.Error(err))
			respErr = ErrInternal("unknown error")
		}
		if err := conn.replyError(ctx, req.ID, respErr); err != nil {
			h.logger.Error("failed to reply error", log.Error(err))
		}
		return
	}

	if err := conn.reply(ctx, req.ID, result); err != nil {
		h.logger.Error("failed to reply", log.Error(err))
	}
}
