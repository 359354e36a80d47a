package websocket

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/vineetsharma9252/Babel-The-Speech-translator/internal/errors"
	"github.com/vineetsharma9252/Babel-The-Speech-translator/internal/log"
)

const (
	ErrBufferFull errors.Code = "buffer_full"
)

const (
	pingInterval = 10 * time.Second
	pingTimeout  = 3 * time.Second
	writeTimeout = 3 * time.Second
	bufMessages  = 32
)

func newStream(conn *websocket.Conn, logger *log.Logger) *wsStream {
	return &wsStream{
		conn:   conn,
		chBuf:  make(chan func() error, bufMessages),
		logger: logger,
	}
}

// wsStream adapts a WebSocket connection to jsonrpc.ObjectStream. Writes go
// through a buffered pump so slow peers cannot block RPC handlers.
type wsStream struct {
	conn  *websocket.Conn
	chBuf chan func() error

	connCtx   context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
	logger    *log.Logger
}

func (ws *wsStream) Open(ctx context.Context) error {
	ws.connCtx, ws.cancel = context.WithCancel(ctx)

	go func() {
		err := ws.writePump(ws.connCtx)
		ws.close(err)
	}()

	return nil
}

func (ws *wsStream) Read(ctx context.Context, v any) error {
	// the read loop owns the connection: read failure closes it
	if err := wsjson.Read(ctx, ws.conn, v); err != nil {
		ws.close(err)
		return err
	}
	return nil
}

// Write enqueues the object for the write pump. A full buffer closes the
// connection, it never blocks the caller.
func (ws *wsStream) Write(ctx context.Context, obj any) error {
	select {
	case <-ctx.Done():
		return net.ErrClosed
	default:
	}

	action := func() error {
		ctx, cancel := context.WithTimeout(ctx, writeTimeout)
		defer cancel()
		return wsjson.Write(ctx, ws.conn, obj)
	}

	select {
	case ws.chBuf <- action:
		return nil
	default:
		ws.close(ErrBufferFull)
		return ErrBufferFull
	}
}

func (ws *wsStream) Close() error {
	ws.close(nil)
	return nil
}

// wait blocks until the connection is fully closed.
func (ws *wsStream) wait() {
	<-ws.connCtx.Done()
}

func (ws *wsStream) close(err error) {
	ws.closeOnce.Do(func() {
		peerClosed := false
		code := websocket.StatusNormalClosure

		switch {
		case err == nil:
			ws.logger.Info("connection closed normally")
		case func() bool { _, ok := errors.As[websocket.CloseError](err); return ok }():
			closeErr, _ := errors.As[websocket.CloseError](err)
			ws.logger.Info("connection closed by peer", log.Any("code", closeErr.Code))
			peerClosed = true
		case errors.Is(err, net.ErrClosed):
			ws.logger.Info("connection already closed")
			peerClosed = true
		case errors.Is(err, ErrBufferFull):
			ws.logger.Warn("connection closed, write buffer full")
			code = websocket.StatusPolicyViolation
		default:
			ws.logger.Error("connection closed unexpectedly", log.Error(err))
			code = websocket.StatusInternalError
		}

		if peerClosed {
			_ = ws.conn.CloseNow()
		} else {
			_ = ws.conn.Close(code, "bye")
		}
		ws.cancel()
	})
}

func (ws *wsStream) writePump(ctx context.Context) error {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := ws.ping(ctx); err != nil {
				return err
			}
		case action, ok := <-ws.chBuf:
			if !ok {
				return net.ErrClosed
			}
			if err := action(); err != nil {
				return err
			}
		}
	}
}

func (ws *wsStream) ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	return ws.conn.Ping(ctx)
}
