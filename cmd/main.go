package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RaikyD/tailor-calendar/internal/application"
	"github.com/RaikyD/tailor-calendar/internal/config"
	"github.com/RaikyD/tailor-calendar/internal/kafka"
	"github.com/RaikyD/tailor-calendar/internal/logger"
	"github.com/RaikyD/tailor-calendar/internal/migrate"
	"github.com/RaikyD/tailor-calendar/internal/presentation"
	"github.com/RaikyD/tailor-calendar/internal/repository"
	"github.com/RaikyD/tailor-calendar/internal/schedule"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Init(false)
		logger.Error("config load failed", err)
		os.Exit(1)
	}
	logger.Init(cfg.DEBUG)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := schedule.NewClient(schedule.Options{
		BaseURL:     cfg.SCHEDULE_API_URL,
		Credentials: schedule.StaticToken(cfg.SCHEDULE_API_TOKEN),
		Timeout:     cfg.SCHEDULE_API_TIMEOUT,
	})
	if err != nil {
		logger.Error("schedule client init failed", err)
		os.Exit(1)
	}

	// Journal (optional)
	var journal repository.JournalRepo
	if cfg.JournalEnabled() {
		if err := migrate.Up(cfg.DB_STRING); err != nil {
			logger.Error("migrations failed", err)
			os.Exit(1)
		}
		pool, err := pgxpool.New(ctx, cfg.DB_STRING)
		if err != nil {
			logger.Error("pgxpool new failed", err)
			os.Exit(1)
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			logger.Error("db ping failed", err)
			os.Exit(1)
		}
		logger.Info("db connected")
		journal = repository.NewJournalRepository(pool)
	}

	// Kafka producer for outcomes (optional)
	var events application.OutcomePublisher
	if cfg.KafkaEnabled() {
		prod := kafka.NewProducer(cfg.KAFKA_BROKERS, cfg.KAFKA_EVENTS_TOPIC)
		defer prod.Close()
		events = prod
	}

	svc := application.NewCalendarService(client, journal, events)

	if cfg.KafkaEnabled() {
		kafka.StartConsumer(ctx, svc, kafka.ConsumerConfig{
			Brokers: cfg.KAFKA_BROKERS,
			Topic:   cfg.KAFKA_SCHEDULE_TOPIC,
			GroupID: cfg.KAFKA_GROUP_ID,
		})
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	presentation.NewCalendarHandler(svc).Register(r)
	presentation.MountStatic(r)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTP_PORT,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("http shutdown failed", "err", err)
		}
	}()

	logger.Info("starting http", "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server crashed", err)
		os.Exit(1)
	}
	logger.Info("http server stopped")
}
