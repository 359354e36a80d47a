package main

import (
	"context"
	"time"

	"github.com/spf13/viper"

	"github.com/vineetsharma9252/Babel-The-Speech-translator/internal/config"
	"github.com/vineetsharma9252/Babel-The-Speech-translator/internal/httputil"
	"github.com/vineetsharma9252/Babel-The-Speech-translator/internal/log"
	"github.com/vineetsharma9252/Babel-The-Speech-translator/internal/network"
	"github.com/vineetsharma9252/Babel-The-Speech-translator/internal/retry"
	"github.com/vineetsharma9252/Babel-The-Speech-translator/internal/workflow"
	"github.com/vineetsharma9252/Babel-The-Speech-translator/rooms/store"
	"github.com/vineetsharma9252/Babel-The-Speech-translator/sfu"
	"github.com/vineetsharma9252/Babel-The-Speech-translator/signaling"
	"github.com/vineetsharma9252/Babel-The-Speech-translator/speech"
	"github.com/vineetsharma9252/Babel-The-Speech-translator/transport"
)

type Config struct {
	App       config.App       `mapstructure:"app"`
	HTTP      httputil.Config  `mapstructure:"http"`
	Signaling signaling.Config `mapstructure:"signaling"`
	SFU       sfu.Config       `mapstructure:"sfu"`
	Speech    speech.Config    `mapstructure:"speech"`
}

func loadConfig() (*Config, error) {
	return config.Load(&Config{}, func(v *viper.Viper) {
		config.Setup(v, "app")
		httputil.Setup(v, "http")
		signaling.Setup(v, "signaling")
		sfu.Setup(v, "sfu")
		speech.Setup(v, "speech")

		v.SetDefault("http.addr", "0.0.0.0:8080")
	})
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal("Failed to load configuration", err)
	}

	logger := log.NewLogger()
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger.Info("Starting signaling server...")

	sfuAPI := sfu.New(cfg.SFU.BridgeURL, logger)

	// the SFU bridge usually comes up alongside this process
	probe := retry.New(logger.Module("SFUProbe"), 500*time.Millisecond, 5*time.Second, 30*time.Second)
	if err := probe.Do(ctx, func() error { return sfuAPI.Health(ctx) }); err != nil {
		logger.Warn("SFU bridge not reachable, sfu rooms will fail until it is",
			log.String("bridge_url", cfg.SFU.BridgeURL),
			log.Error(err))
	}

	routers, err := sfu.NewRouterProvider(sfuAPI, cfg.SFU.RouterCacheSize, logger)
	if err != nil {
		logger.Fatal("Failed to create router provider", log.Error(err))
	}

	pipeline := speech.NewOpenAI(&cfg.Speech, logger)
	registry := store.NewRegistry(logger)

	gateway := signaling.NewGateway(
		registry,
		sfuAPI,
		routers,
		pipeline,
		&cfg.Signaling,
		logger,
	)
	go gateway.Run(ctx)

	router := transport.NewRouter(gateway, registry, cfg.Signaling.AllowedOrigins, logger)
	server := httputil.NewServer(&cfg.HTTP, router.Handler())

	go func() {
		logger.Info("Listening",
			log.String("addr", cfg.HTTP.Addr),
			log.String("host_ip", network.HostIP().String()))
		if err := server.Listen(); err != nil {
			logger.Fatal("Failed to start HTTP server", log.Error(err))
		}
	}()

	cleanup := func(ctx context.Context) {
		_ = server.Shutdown(ctx)
		cancel()
		gateway.Shutdown()
	}
	workflow.WaitGracefulShutdown(ctx, logger.Module("CleanUp"), cleanup, cfg.App.ShutdownTimeout)
}
