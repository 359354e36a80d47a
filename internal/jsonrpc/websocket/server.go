package websocket

import (
	"net/http"

	"github.com/coder/websocket"

	"github.com/vineetsharma9252/Babel-The-Speech-translator/internal/jsonrpc"
	"github.com/vineetsharma9252/Babel-The-Speech-translator/internal/log"
)

// Server upgrades HTTP requests to WebSocket JSON-RPC connections sharing a
// single method table.
type Server[T any] struct {
	jsonrpc.Handler[T]
	hooks          ConnectionHooks[T]
	allowedOrigins []string
	logger         *log.Logger
}

func NewServer[T any](
	hooks ConnectionHooks[T],
	allowedOrigins []string,
	logger *log.Logger,
) *Server[T] {
	if hooks == nil {
		hooks = &defaultHooks[T]{}
	}
	return &Server[T]{
		Handler:        jsonrpc.NewHandler[T](logger),
		hooks:          hooks,
		allowedOrigins: allowedOrigins,
		logger:         logger.Module("ws"),
	}
}

// HandleWebSocket upgrades the request and serves JSON-RPC until the
// connection closes.
func (s *Server[T]) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	initValue, passed, err := s.hooks.OnVerify(r)
	if err != nil {
		s.logger.Warn("connection verification error",
			log.String("remote_addr", r.RemoteAddr),
			log.Error(err))
		http.Error(w, "fail to verify", http.StatusInternalServerError)
		return
	} else if !passed {
		s.logger.Info("connection rejected",
			log.String("remote_addr", r.RemoteAddr))
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.allowedOrigins,
	})
	if err != nil {
		s.logger.Error("websocket accept failed",
			log.String("remote_addr", r.RemoteAddr),
			log.Error(err))
		return
	}

	stream := newStream(wsConn, s.logger)
	rpcConn := s.Handler.NewConn(stream, initValue)

	s.logger.Info("websocket connection established",
		log.String("remote_addr", r.RemoteAddr),
		log.String("user_agent", r.UserAgent()))

	s.hooks.OnConnect(rpcConn.Context())
	if err := rpcConn.Open(r.Context()); err != nil {
		s.logger.Error("failed to open rpc connection",
			log.String("remote_addr", r.RemoteAddr),
			log.Error(err))
		return
	}

	stream.wait()

	s.hooks.OnDisconnect(rpcConn.Context(), int(websocket.StatusAbnormalClosure))
}
