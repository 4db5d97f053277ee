package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/vedran77/liveboard/internal/config"
	"github.com/vedran77/liveboard/internal/observability"
	"github.com/vedran77/liveboard/internal/repository/memory"
	"github.com/vedran77/liveboard/internal/service"
	"github.com/vedran77/liveboard/internal/transport/http/handlers"
	"github.com/vedran77/liveboard/internal/transport/http/middleware"
	"github.com/vedran77/liveboard/internal/transport/ws"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := observability.NewLogger(cfg.ServiceName, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Board state lives for the whole process and starts fresh on every boot.
	var repoOpts []memory.Option
	if !cfg.SeedMessages {
		repoOpts = append(repoOpts, memory.WithoutSeed())
	}
	board := service.NewBoardService(
		memory.NewMessageRepo(repoOpts...),
		memory.NewPresenceRepo(),
		log.Named("board"),
	)
	board.SetStrictContent(cfg.StrictContent)

	hub := ws.NewHub(board, log.Named("hub"))
	go hub.Run(ctx)

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: newRouter(cfg, log, hub, board),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		stop()
		<-hub.Done()
		return fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("error during server shutdown", zap.Error(err))
	}
	<-hub.Done()
	log.Info("shutdown complete")
	return nil
}

func newRouter(cfg *config.Config, log *zap.Logger, hub *ws.Hub, board handlers.BoardReader) http.Handler {
	messages := handlers.NewMessageHandler(board, log)
	presence := handlers.NewPresenceHandler(board)
	wsHandler := ws.ServeWS(hub, ws.HandlerConfig{
		SendBufSize:    cfg.SendBufferSize,
		MaxMessageSize: cfg.MaxMessageSize,
	})

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics(cfg.ServiceName))
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS)

	r.Get("/health", handlers.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/ws", wsHandler)
	r.Get("/api/socket.io", wsHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/messages", messages.List)
		r.Get("/messages/{id}", messages.Get)
		r.Get("/presence", presence.Get)
	})

	return r
}
