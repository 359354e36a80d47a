package transport

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/vineetsharma9252/Babel-The-Speech-translator/internal/log"
	"github.com/vineetsharma9252/Babel-The-Speech-translator/rooms/store"
	"github.com/vineetsharma9252/Babel-The-Speech-translator/signaling"
)

type Router struct {
	gateway  *signaling.Gateway
	registry store.Registry
	engine   *gin.Engine
	logger   *log.Logger
}

func NewRouter(gateway *signaling.Gateway, registry store.Registry, allowedOrigins []string, logger *log.Logger) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(allowedOrigins) == 1 && allowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = allowedOrigins
	}
	engine.Use(cors.New(corsCfg))

	r := &Router{
		gateway:  gateway,
		registry: registry,
		engine:   engine,
		logger:   logger.Module("transport"),
	}

	r.setupRoutes()
	return r
}

func (r *Router) Handler() http.Handler {
	return r.engine
}

func (r *Router) setupRoutes() {
	// Signaling endpoint
	r.engine.GET("/ws", gin.WrapF(r.gateway.HandleWebSocket))

	// Stats
	r.engine.GET("/api/stats", r.getStats)

	// Health check
	r.engine.GET("/health", r.healthCheck)
}

func (r *Router) getStats(c *gin.Context) {
	stats := r.registry.Stats()

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats": gin.H{
			"rooms":        stats.Rooms,
			"participants": stats.Participants,
			"connections":  r.gateway.Connections(),
		},
	})
}

func (r *Router) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   "signaling",
		"timestamp": time.Now().Unix(),
	})
}
