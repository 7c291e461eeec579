package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"redirector/internal/cache"
	"redirector/internal/config"
	"redirector/internal/handler"
	"redirector/internal/metrics"
	"redirector/internal/mq"
	"redirector/internal/repository"
	"redirector/internal/service"

	"github.com/bsm/redislock"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// @title Redirector API
// @version 1.0
// @description Link redirection service with click analytics

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	configPath := flag.String("config", defaultConfigPath(), "path to the YAML config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	setupLogger(&cfg.Log, cfg.Server.Release())

	// Initialize repositories
	sqlRepo, err := repository.NewSQLRepository(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer sqlRepo.Close()

	redisRepo := repository.NewRedisRepository(&cfg.Database.Redis)
	defer redisRepo.Close()

	// Initialize services
	redisCache := cache.New(redisRepo.GetClient())
	bloomSvc := service.NewBloomService(redisRepo.GetClient(), &cfg.Bloom)
	linkSvc := service.NewLinkService(sqlRepo, redisCache, bloomSvc, &cfg.Cache, cfg.Server.Release())
	geoSvc := service.NewGeoResolver(&cfg.Geo, redisCache)
	limiter := service.NewRateLimiter(redisRepo)

	apiKeySvc := service.NewAPIKeyService(sqlRepo)
	if err := apiKeySvc.EnsureKeys(context.Background(), cfg.Auth.BootstrapKeys); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed API keys")
	}

	// Initialize MQ (optional)
	var publisher service.ClickPublisher
	var mqProducer *mq.Producer
	if cfg.RocketMQ.NameServer != "" {
		mqProducer, err = mq.NewProducer(&cfg.RocketMQ)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to initialize RocketMQ producer, writing clicks directly")
			mqProducer = nil
		} else {
			publisher = mqProducer
		}
	}

	recorder := service.NewClickRecorder(redisRepo, sqlRepo, publisher, cfg.Cache.UniqueTTL)

	// Apply queued clicks
	var mqConsumer *mq.Consumer
	if mqProducer != nil {
		mqConsumer, err = mq.NewConsumer(&cfg.RocketMQ, recorder.Apply)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to initialize RocketMQ consumer")
		} else if err := mqConsumer.Subscribe(); err != nil {
			log.Error().Err(err).Msg("Failed to subscribe to RocketMQ")
		}
	}

	reconciler := service.NewReconciler(sqlRepo, redisRepo, redislock.New(redisRepo.GetClient()), &cfg.Reconciler)
	if err := reconciler.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to schedule reconciler")
	}

	// Setup Gin
	gin.SetMode(cfg.Server.Mode)
	router := handler.NewRouter(cfg, handler.Services{
		Links:      linkSvc,
		Recorder:   recorder,
		Geo:        geoSvc,
		Limiter:    limiter,
		Reconciler: reconciler,
		APIKeys:    apiKeySvc,
		Bloom:      bloomSvc,
		DB:         sqlRepo,
		Redis:      redisRepo,
		Metrics:    metrics.Handler(),
	})

	// Start server
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().Msgf("Starting server on port %d", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	reconciler.Stop()

	if mqConsumer != nil {
		mqConsumer.Close()
	}
	if mqProducer != nil {
		mqProducer.Close()
	}

	log.Info().Msg("Server exited")
}

func defaultConfigPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return "configs/config.yaml"
}

// setupLogger configures the logger
func setupLogger(cfg *config.LogConfig, release bool) {
	level := zerolog.DebugLevel
	if release {
		level = zerolog.InfoLevel
	}
	if cfg.Level != "" {
		if parsed, err := zerolog.ParseLevel(cfg.Level); err == nil {
			level = parsed
		}
	}
	zerolog.SetGlobalLevel(level)

	var out io.Writer = os.Stdout
	if !release {
		// Use console writer for pretty output
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	if cfg.File != "" {
		out = zerolog.MultiLevelWriter(out, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		})
	}

	log.Logger = zerolog.New(out).With().Timestamp().Logger()
}
