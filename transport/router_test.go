package transport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/vineetsharma9252/Babel-The-Speech-translator/internal/log"
	"github.com/vineetsharma9252/Babel-The-Speech-translator/rooms"
	"github.com/vineetsharma9252/Babel-The-Speech-translator/rooms/store"
	sfumocks "github.com/vineetsharma9252/Babel-The-Speech-translator/sfu/mocks"
	"github.com/vineetsharma9252/Babel-The-Speech-translator/signaling"
	speechmocks "github.com/vineetsharma9252/Babel-The-Speech-translator/speech/mocks"
)

func setupRouter(t *testing.T) (*Router, store.Registry) {
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	logger := log.NewTest(t)
	registry := store.NewRegistry(logger)

	gateway := signaling.NewGateway(
		registry,
		sfumocks.NewMockAPI(ctrl),
		sfumocks.NewMockRouterProvider(ctrl),
		speechmocks.NewMockPipeline(ctrl),
		&signaling.Config{
			AllowedOrigins: []string{"*"},
			FlushInterval:  time.Second,
			FlushThreshold: 3 * time.Second,
			MinFlushBytes:  4096,
			IngestRate:     20,
			IngestBurst:    40,
		},
		logger,
	)
	t.Cleanup(gateway.Shutdown)

	return NewRouter(gateway, registry, []string{"*"}, logger), registry
}

func TestHealthCheck(t *testing.T) {
	router, _ := setupRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	router.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "ok", response["status"])
	assert.Equal(t, "signaling", response["service"])
}

func TestGetStats(t *testing.T) {
	router, registry := setupRouter(t)

	room, _ := registry.CreateOrGetRoom("room-1", rooms.StrategyP2P)
	_, _, err := room.Join("alice", "en", "es")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/stats", nil)
	router.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Success bool `json:"success"`
		Stats   struct {
			Rooms        int `json:"rooms"`
			Participants int `json:"participants"`
			Connections  int `json:"connections"`
		} `json:"stats"`
	}
	err = json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.True(t, response.Success)
	assert.Equal(t, 1, response.Stats.Rooms)
	assert.Equal(t, 1, response.Stats.Participants)
	assert.Equal(t, 0, response.Stats.Connections)
}

func TestWebSocketUpgradeRequired(t *testing.T) {
	router, _ := setupRouter(t)

	// a plain GET without upgrade headers must not crash the endpoint
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/ws", nil)
	router.Handler().ServeHTTP(w, req)

	assert.NotEqual(t, http.StatusOK, w.Code)
}
