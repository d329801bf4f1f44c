package usecase

import (
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/rocketscienceinc/fishing-backend/internal/apperror"
	"github.com/rocketscienceinc/fishing-backend/internal/entity"
	"github.com/rocketscienceinc/fishing-backend/internal/fishing"
	"github.com/rocketscienceinc/fishing-backend/internal/protocol"
)

type dispatcher interface {
	SendToOne(connID string, msg protocol.ServerMessage)
	BroadcastToRoom(room *entity.Room, msg protocol.ServerMessage)
}

type gameEngine interface {
	NewGame(playerOrder []string) *entity.Game
	Apply(game *entity.Game, playerID string, action entity.Action) (*entity.Game, error)
}

type summaryRecorder interface {
	Record(summary *entity.GameSummary)
}

// RoomManager owns the room table. Every request and every disconnect runs
// validation, mutation and broadcast under one lock, so exactly one of them
// resolves at a time and broadcasts always see the state they produced.
type RoomManager struct {
	logger     *slog.Logger
	engine     gameEngine
	dispatcher dispatcher
	recorder   summaryRecorder
	now        func() time.Time

	mu       sync.Mutex
	rooms    map[string]*entity.Room
	bindings map[string]string // connID -> roomID
}

// NewRoomManager - recorder may be nil when finished games are not archived.
func NewRoomManager(logger *slog.Logger, engine gameEngine, dispatcher dispatcher, recorder summaryRecorder) *RoomManager {
	return &RoomManager{
		logger:     logger.With("component", "room_manager"),
		engine:     engine,
		dispatcher: dispatcher,
		recorder:   recorder,
		now:        time.Now,

		rooms:    make(map[string]*entity.Room),
		bindings: make(map[string]string),
	}
}

// JoinRoom - adds the connection's player to roomID, creating the room on first use.
func (that *RoomManager) JoinRoom(connID, roomID, playerName string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	log := that.logger.With("method", "JoinRoom", "roomID", roomID, "playerID", connID)

	if _, bound := that.bindings[connID]; bound {
		return that.fail(connID, apperror.ErrAlreadyInRoom)
	}

	room, exists := that.rooms[roomID]
	if !exists {
		room = entity.NewRoom(roomID)
	}

	if !room.IsOpen() {
		return that.fail(connID, apperror.ErrRoomNotOpen)
	}

	if room.HasPlayer(connID) {
		return that.fail(connID, apperror.ErrAlreadyInRoom)
	}

	if !exists {
		that.rooms[roomID] = room
		log.Info("room created")
	}

	room.AddProfile(entity.PlayerProfile{PlayerID: connID, PlayerName: playerName})
	that.bindings[connID] = roomID

	that.dispatcher.SendToOne(connID, protocol.NewCreateRoom(connID, room))
	that.dispatcher.BroadcastToRoom(room, protocol.NewUpdateRoom(room))

	log.Info("player joined room", "playerName", playerName, "players", len(room.Profiles))

	return nil
}

// StartGame - starts a game in the connection's room with the players currently in it.
func (that *RoomManager) StartGame(connID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	roomID, bound := that.bindings[connID]
	if !bound {
		return that.fail(connID, apperror.ErrNotInRoom)
	}

	room, ok := that.rooms[roomID]
	if !ok {
		return that.fail(connID, apperror.ErrRoomNotFound)
	}

	if !room.IsOpen() {
		return that.fail(connID, apperror.ErrRoomNotOpen)
	}

	if !room.HasPlayer(connID) {
		return that.fail(connID, apperror.ErrNotInRoom)
	}

	if count := len(room.Profiles); count < entity.MinPlayers || count > entity.MaxPlayers {
		return that.fail(connID, apperror.ErrPlayerCountOutOfRange)
	}

	room.Game = that.engine.NewGame(room.PlayerIDs())
	room.Status = entity.RoomInProgress

	that.dispatcher.BroadcastToRoom(room, protocol.NewCreateGame(room.Game))

	that.logger.Info("game started", "method", "StartGame", "roomID", roomID, "players", len(room.Profiles))

	return nil
}

// MakeTurn - applies action for the connection's player in its room's game.
func (that *RoomManager) MakeTurn(connID string, action entity.Action) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	log := that.logger.With("method", "MakeTurn", "playerID", connID, "action", action.Type())

	roomID, bound := that.bindings[connID]
	if !bound {
		return that.fail(connID, apperror.ErrNotInRoom)
	}

	room, ok := that.rooms[roomID]
	if !ok {
		return that.fail(connID, apperror.ErrRoomNotFound)
	}

	if !room.IsInProgress() {
		return that.fail(connID, apperror.ErrGameNotInProgress)
	}

	if room.Game == nil {
		log.Error("room in progress without a game", "roomID", roomID)
		that.teardown(room, apperror.ErrGameCorrupted)
		return apperror.ErrGameCorrupted
	}

	game, err := that.engine.Apply(room.Game, connID, action)
	if errors.Is(err, fishing.ErrUnknownPlayer) {
		log.Error("game lost track of a player", "roomID", roomID, "error", err)
		that.teardown(room, apperror.ErrGameCorrupted)
		return apperror.ErrGameCorrupted
	}

	if err != nil {
		return that.fail(connID, err)
	}

	room.Game = game

	if winnerID, won := fishing.Winner(game); won {
		that.finishGame(room, winnerID)
		return nil
	}

	that.dispatcher.BroadcastToRoom(room, protocol.NewUpdateGame(game))

	log.Debug("turn applied", "roomID", roomID, "turnIdx", game.TurnIdx)

	return nil
}

// Disconnect - reacts to a lost connection according to the phase of its room.
func (that *RoomManager) Disconnect(connID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	roomID, bound := that.bindings[connID]
	if !bound {
		return
	}

	delete(that.bindings, connID)

	room, ok := that.rooms[roomID]
	if !ok {
		return
	}

	log := that.logger.With("method", "Disconnect", "roomID", roomID, "playerID", connID)

	room.RemoveProfile(connID)

	switch room.Status {
	case entity.RoomOpen:
		if room.IsEmpty() {
			delete(that.rooms, roomID)
			log.Info("no more players, room deleted")
			return
		}

		that.dispatcher.BroadcastToRoom(room, protocol.NewUpdateRoom(room))
		log.Info("player left room")
	case entity.RoomInProgress:
		that.teardown(room, apperror.ErrPlayerLeft)
		log.Info("player left game in progress, room deleted")
	}
}

// Reject - reports a request that never reached the room table, such as a malformed message.
func (that *RoomManager) Reject(connID string, err error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	_ = that.fail(connID, err)
}

// OpenRooms - lists every room, sorted by id.
func (that *RoomManager) OpenRooms() []entity.RoomListing {
	that.mu.Lock()
	defer that.mu.Unlock()

	listings := make([]entity.RoomListing, 0, len(that.rooms))
	for _, room := range that.rooms {
		listings = append(listings, room.Listing())
	}

	sort.Slice(listings, func(i, j int) bool {
		return listings[i].ID < listings[j].ID
	})

	return listings
}

func (that *RoomManager) finishGame(room *entity.Room, winnerID string) {
	summary := entity.NewGameSummary(room, room.Game, winnerID, that.now())

	room.Game = nil
	room.Status = entity.RoomOpen

	that.dispatcher.BroadcastToRoom(room, protocol.NewDeleteGame(summary))

	if that.recorder != nil {
		that.recorder.Record(summary)
	}

	that.logger.Info("game finished", "roomID", room.ID, "winnerID", winnerID, "winnerName", summary.WinnerName)
}

// teardown deletes room, releases its members and tells them why.
func (that *RoomManager) teardown(room *entity.Room, reason error) {
	delete(that.rooms, room.ID)

	for _, playerID := range room.PlayerIDs() {
		delete(that.bindings, playerID)
	}

	that.dispatcher.BroadcastToRoom(room, protocol.NewDeleteRoom(reason))
}

func (that *RoomManager) fail(connID string, err error) error {
	that.logger.Debug("request rejected", "playerID", connID, "error", err)
	that.dispatcher.SendToOne(connID, protocol.NewFail(err))

	return err
}
