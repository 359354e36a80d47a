package signaling

import (
	"context"
	"net/http"

	"github.com/vineetsharma9252/Babel-The-Speech-translator/internal/jsonrpc/websocket"
	"github.com/vineetsharma9252/Babel-The-Speech-translator/internal/log"
	"github.com/vineetsharma9252/Babel-The-Speech-translator/rooms"
	"github.com/vineetsharma9252/Babel-The-Speech-translator/rooms/store"
	"github.com/vineetsharma9252/Babel-The-Speech-translator/sfu"
	"github.com/vineetsharma9252/Babel-The-Speech-translator/speech"
)

// Gateway assembles the whole signaling stack behind a single WebSocket
// endpoint: connection hooks, the JSON-RPC method table, relay strategies
// and the audio coordinator.
type Gateway struct {
	ws          *websocket.Server[callContext]
	server      *Server
	coordinator *Coordinator
	connMgr     *ConnManager
}

func NewGateway(
	registry store.Registry,
	api sfu.API,
	routers sfu.RouterProvider,
	pipeline speech.Pipeline,
	cfg *Config,
	logger *log.Logger,
) *Gateway {
	connMgr := NewConnManager(logger)
	coordinator := NewCoordinator(registry, pipeline, connMgr, cfg, logger)

	relays := map[rooms.Strategy]Relay{
		rooms.StrategyP2P: NewP2PRelay(connMgr, logger),
		rooms.StrategySFU: NewSFURelay(api, routers, connMgr, logger),
	}
	lifecycle := NewLifecycle(registry, relays, coordinator, connMgr, logger)
	hooks := NewConnHooks(lifecycle, connMgr, cfg, logger)

	ws := websocket.NewServer[callContext](hooks, cfg.AllowedOrigins, logger)
	server := NewServer(ws, registry, relays, coordinator, lifecycle, connMgr, pipeline, logger)

	return &Gateway{
		ws:          ws,
		server:      server,
		coordinator: coordinator,
		connMgr:     connMgr,
	}
}

func (g *Gateway) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	g.ws.HandleWebSocket(w, r)
}

// Run drives the flush scheduler until ctx is done.
func (g *Gateway) Run(ctx context.Context) {
	g.coordinator.Run(ctx)
}

func (g *Gateway) Shutdown() {
	g.coordinator.Shutdown()
}

// Connections is the number of live WebSocket sessions.
func (g *Gateway) Connections() int {
	return g.connMgr.Count()
}
