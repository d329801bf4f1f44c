package dispatcher

import (
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/fishing-backend/internal/entity"
	"github.com/rocketscienceinc/fishing-backend/internal/protocol"
)

// Sender is a connection that accepts encoded messages without blocking.
// Send reports false when the message could not be queued.
type Sender interface {
	Send(data []byte) bool
}

// Dispatcher delivers server messages to the connections registered under a player id.
type Dispatcher struct {
	logger *slog.Logger

	mu          sync.RWMutex
	connections map[string]Sender
}

func New(logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		logger:      logger.With("component", "dispatcher"),
		connections: make(map[string]Sender),
	}
}

func (that *Dispatcher) Register(connID string, sender Sender) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.connections[connID] = sender
}

func (that *Dispatcher) Unregister(connID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.connections, connID)
}

// SendToOne - unicast to one connection.
func (that *Dispatcher) SendToOne(connID string, msg protocol.ServerMessage) {
	data, ok := that.encode(msg)
	if !ok {
		return
	}

	that.deliver(connID, msg.Type, data)
}

// BroadcastToRoom - delivers msg to every member of room.
// Members that are not connected or cannot take the message are skipped.
func (that *Dispatcher) BroadcastToRoom(room *entity.Room, msg protocol.ServerMessage) {
	data, ok := that.encode(msg)
	if !ok {
		return
	}

	for _, playerID := range room.PlayerIDs() {
		that.deliver(playerID, msg.Type, data)
	}
}

func (that *Dispatcher) encode(msg protocol.ServerMessage) ([]byte, bool) {
	data, err := protocol.Encode(msg)
	if err != nil {
		that.logger.Error("failed to encode message", "type", msg.Type, "error", err)
		return nil, false
	}

	return data, true
}

func (that *Dispatcher) deliver(connID string, msgType protocol.MessageType, data []byte) {
	that.mu.RLock()
	sender, ok := that.connections[connID]
	that.mu.RUnlock()

	if !ok {
		that.logger.Debug("connection not found, message skipped", "connID", connID, "type", msgType)
		return
	}

	if !sender.Send(data) {
		that.logger.Warn("connection not ready, message skipped", "connID", connID, "type", msgType)
	}
}
