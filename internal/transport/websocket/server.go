package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/fishing-backend/internal/config"
	"github.com/rocketscienceinc/fishing-backend/internal/dispatcher"
	"github.com/rocketscienceinc/fishing-backend/internal/entity"
	"github.com/rocketscienceinc/fishing-backend/internal/protocol"
)

const (
	shutdownTimeout   = 5 * time.Second
	defaultPongWait   = 60 * time.Second
	defaultSendBuffer = 64
)

type roomManager interface {
	JoinRoom(connID, roomID, playerName string) error
	StartGame(connID string) error
	MakeTurn(connID string, action entity.Action) error
	Disconnect(connID string)
	Reject(connID string, err error)
}

type connRegistry interface {
	Register(connID string, sender dispatcher.Sender)
	Unregister(connID string)
}

type Server struct {
	logger   *slog.Logger
	conf     config.Transport
	rooms    roomManager
	registry connRegistry
	upgrader websocket.Upgrader

	handlers map[protocol.MessageType]func(connID string, payload json.RawMessage) error
}

func New(logger *slog.Logger, conf config.Transport, rooms roomManager, registry connRegistry) *Server {
	if conf.PongWait <= 0 {
		conf.PongWait = defaultPongWait
	}

	if conf.SendBuffer <= 0 {
		conf.SendBuffer = defaultSendBuffer
	}

	server := &Server{
		logger:   logger.With("component", "websocket"),
		conf:     conf,
		rooms:    rooms,
		registry: registry,

		handlers: make(map[protocol.MessageType]func(string, json.RawMessage) error),
	}

	server.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     server.checkOrigin,
	}

	server.handlers[protocol.JoinRoom] = server.handleJoinRoom
	server.handlers[protocol.StartGame] = server.handleStartGame
	server.handlers[protocol.MakeTurn] = server.handleMakeTurn

	return server
}

func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.serveWS)

	return mux
}

// Start - starts WebSocket server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
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

// serveWS - upgrades the connection and serves it until it closes.
func (that *Server) serveWS(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "serveWS")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	c := newClient(uuid.NewString(), conn, that.conf.SendBuffer)
	that.registry.Register(c.id, c)

	log.Info("WebSocket connection established", "connID", c.id, "remoteAddr", req.RemoteAddr)

	go c.writePump(that.pingPeriod())

	that.readPump(c)

	that.registry.Unregister(c.id)
	that.rooms.Disconnect(c.id)
	c.close()

	log.Info("WebSocket connection closed", "connID", c.id)
}

// readPump - processes messages from the client until the connection fails.
func (that *Server) readPump(c *client) {
	log := that.logger.With("method", "readPump", "connID", c.id)

	c.conn.SetReadLimit(that.conf.MaxMessageBytes)
	_ = c.conn.SetReadDeadline(time.Now().Add(that.conf.PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(that.conf.PongWait))
	})

	for {
		msgType, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("unexpected close", "error", err)
			}

			return
		}

		if msgType != websocket.TextMessage {
			that.rooms.Reject(c.id, errInvalidFrame)
			continue
		}

		if err = that.handleMessage(c.id, data); err != nil {
			log.Debug("message not processed", "error", err)
		}
	}
}

func (that *Server) pingPeriod() time.Duration {
	return that.conf.PongWait * 9 / 10
}

func (that *Server) checkOrigin(req *http.Request) bool {
	if len(that.conf.AllowedOrigins) == 0 {
		return true
	}

	origin := req.Header.Get("Origin")

	return origin == "" || slices.Contains(that.conf.AllowedOrigins, origin)
}
