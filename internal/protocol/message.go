// Package protocol defines the JSON messages exchanged over a websocket connection.
package protocol

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rocketscienceinc/fishing-backend/internal/apperror"
	"github.com/rocketscienceinc/fishing-backend/internal/entity"
)

type MessageType string

// client -> server
const (
	JoinRoom  MessageType = "JoinRoom"
	StartGame MessageType = "StartGame"
	MakeTurn  MessageType = "MakeTurn"
)

// server -> client
const (
	Fail       MessageType = "Fail"
	CreateRoom MessageType = "CreateRoom"
	UpdateRoom MessageType = "UpdateRoom"
	DeleteRoom MessageType = "DeleteRoom"
	CreateGame MessageType = "CreateGame"
	UpdateGame MessageType = "UpdateGame"
	DeleteGame MessageType = "DeleteGame"
)

// Message is the envelope of every text message on the wire.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Payload carries the fields of every server message; each type fills only its own.
type Payload struct {
	PlayerID    string              `json:"playerId,omitempty"`
	Room        *entity.Room        `json:"room,omitempty"`
	Game        *entity.Game        `json:"game,omitempty"`
	GameSummary *entity.GameSummary `json:"gameSummary,omitempty"`
	Error       string              `json:"error,omitempty"`
}

type ServerMessage struct {
	Type    MessageType
	Payload Payload
}

type JoinRoomRequest struct {
	PlayerName string `json:"playerName"`
	RoomID     string `json:"roomId"`
}

func DecodeMessage(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrInvalidMessage, err)
	}

	if msg.Type == "" {
		return nil, fmt.Errorf("%w: missing type", apperror.ErrInvalidMessage)
	}

	return &msg, nil
}

func DecodeJoinRoom(payload json.RawMessage) (*JoinRoomRequest, error) {
	var req JoinRoomRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrInvalidMessage, err)
	}

	req.PlayerName = strings.TrimSpace(req.PlayerName)
	req.RoomID = strings.TrimSpace(req.RoomID)

	if req.PlayerName == "" || req.RoomID == "" {
		return nil, fmt.Errorf("%w: player name and room id are required", apperror.ErrInvalidMessage)
	}

	return &req, nil
}

// DecodeMakeTurn extracts the action of a MakeTurn payload: {"action": {...}}.
func DecodeMakeTurn(payload json.RawMessage) (entity.Action, error) {
	var req struct {
		Action json.RawMessage `json:"action"`
	}
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrInvalidMessage, err)
	}

	if len(req.Action) == 0 {
		return nil, fmt.Errorf("%w: missing action", apperror.ErrInvalidMessage)
	}

	return DecodeAction(req.Action)
}

// Encode renders msg as it is sent on the wire.
func Encode(msg ServerMessage) ([]byte, error) {
	payload, err := json.Marshal(msg.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	data, err := json.Marshal(Message{Type: msg.Type, Payload: payload})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message: %w", err)
	}

	return data, nil
}

func NewFail(err error) ServerMessage {
	return ServerMessage{Type: Fail, Payload: Payload{Error: apperror.Public(err).Error()}}
}

func NewCreateRoom(playerID string, room *entity.Room) ServerMessage {
	return ServerMessage{Type: CreateRoom, Payload: Payload{PlayerID: playerID, Room: room.Snapshot()}}
}

func NewUpdateRoom(room *entity.Room) ServerMessage {
	return ServerMessage{Type: UpdateRoom, Payload: Payload{Room: room.Snapshot()}}
}

func NewDeleteRoom(err error) ServerMessage {
	return ServerMessage{Type: DeleteRoom, Payload: Payload{Error: apperror.Public(err).Error()}}
}

func NewCreateGame(game *entity.Game) ServerMessage {
	return ServerMessage{Type: CreateGame, Payload: Payload{Game: game.Clone()}}
}

func NewUpdateGame(game *entity.Game) ServerMessage {
	return ServerMessage{Type: UpdateGame, Payload: Payload{Game: game.Clone()}}
}

func NewDeleteGame(summary *entity.GameSummary) ServerMessage {
	return ServerMessage{Type: DeleteGame, Payload: Payload{GameSummary: summary}}
}
