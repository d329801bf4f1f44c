package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/fishing-backend/internal/config"
	"github.com/rocketscienceinc/fishing-backend/internal/dispatcher"
	"github.com/rocketscienceinc/fishing-backend/internal/fishing"
	"github.com/rocketscienceinc/fishing-backend/internal/repository"
	"github.com/rocketscienceinc/fishing-backend/internal/repository/storage"
	"github.com/rocketscienceinc/fishing-backend/internal/service"
	"github.com/rocketscienceinc/fishing-backend/internal/transport/websocket"
	"github.com/rocketscienceinc/fishing-backend/internal/usecase"
	"github.com/rocketscienceinc/fishing-backend/transport/rest"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	archive, closeArchive, err := initArchive(ctx, logger, conf)
	if err != nil {
		return err
	}
	defer closeArchive()

	engine := fishing.New(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))) //nolint:gosec // game dice
	connections := dispatcher.New(logger)

	rooms := usecase.NewRoomManager(logger, engine, connections, archive)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		httpServer := rest.New(logger, rest.NewHandlers(logger, rooms, archive))
		if httpErr := httpServer.Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, conf.Transport, rooms, connections)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// initArchive - connects the finished game archive when redis is enabled. The
// returned func stops the worker, flushing queued summaries, and closes redis.
func initArchive(ctx context.Context, logger *slog.Logger, conf *config.Config) (service.ArchiveService, func(), error) {
	log := logger.With("component", "app")

	if !conf.Redis.Enabled {
		log.Info("Redis disabled, finished games are not archived")
		return nil, func() {}, nil
	}

	if conf.Redis.Host == "" {
		return nil, nil, ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	summaryRepo := repository.NewSummaryRepository(redisStorage.Connection, conf.Archive.History)
	archive := service.NewArchiveService(logger, summaryRepo, conf.Archive.Buffer)

	runCtx, stop := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		archive.Run(runCtx)
	}()

	return archive, func() {
		stop()
		<-done

		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}, nil
}
