package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	logger   *slog.Logger
	handlers Handlers
}

func New(logger *slog.Logger, handlers Handlers) *Server {
	return &Server{
		logger:   logger.With("component", "rest"),
		handlers: handlers,
	}
}

func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", that.handlers.PingHandler)
	mux.HandleFunc("GET /rooms", that.handlers.RoomsHandler)
	mux.HandleFunc("GET /summaries", that.handlers.SummariesHandler)
	mux.HandleFunc("GET /leaderboard", that.handlers.LeaderboardHandler)

	return mux
}

// Start - starts HTTP server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
