package signaling

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/vineetsharma9252/Babel-The-Speech-translator/internal/jsonrpc"
	"github.com/vineetsharma9252/Babel-The-Speech-translator/internal/log"
)

// ConnHooks mints a participant identity per WebSocket connection and tears
// the session down when the socket goes away, so a dropped client cannot
// hold a seat.
type ConnHooks struct {
	lifecycle *Lifecycle
	connMgr   *ConnManager
	cfg       *Config
	logger    *log.Logger
}

func NewConnHooks(lifecycle *Lifecycle, connMgr *ConnManager, cfg *Config, logger *log.Logger) *ConnHooks {
	return &ConnHooks{
		lifecycle: lifecycle,
		connMgr:   connMgr,
		cfg:       cfg,
		logger:    logger.Module("ws_hooks"),
	}
}

func (h *ConnHooks) OnVerify(r *http.Request) (*callContext, bool, error) {
	return &callContext{
		participantID: uuid.New().String(),
		reqCtx:        r.Context(),
		limiter:       rate.NewLimiter(rate.Limit(h.cfg.IngestRate), h.cfg.IngestBurst),
	}, true, nil
}

func (h *ConnHooks) OnConnect(mctx jsonrpc.MethodContext[callContext]) {
	cctx := mctx.Get()
	h.connMgr.Add(cctx.participantID, mctx.Peer())
	h.logger.Info("participant connected",
		log.String("participant_id", cctx.participantID))
}

func (h *ConnHooks) OnDisconnect(mctx jsonrpc.MethodContext[callContext], closeCode int) {
	cctx := mctx.Get()

	// the request context is gone at this point; cleanup gets its own
	h.lifecycle.Leave(context.Background(), cctx.roomID, cctx.participantID)
	h.connMgr.Remove(cctx.participantID, cctx.roomID)

	h.logger.Info("participant disconnected",
		log.String("participant_id", cctx.participantID),
		log.Int("close_code", closeCode))
}
