package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/fishing-backend/internal/apperror"
	"github.com/rocketscienceinc/fishing-backend/internal/protocol"
)

var errInvalidFrame = fmt.Errorf("%w: binary frame", apperror.ErrInvalidMessage)

// handleMessage - decodes the envelope and routes it to its handler. Anything
// that cannot be decoded is answered with a Fail to the sender only.
func (that *Server) handleMessage(connID string, data []byte) error {
	msg, err := protocol.DecodeMessage(data)
	if err != nil {
		that.rooms.Reject(connID, err)
		return err
	}

	handler, ok := that.handlers[msg.Type]
	if !ok {
		err = fmt.Errorf("%w: unknown type %q", apperror.ErrInvalidMessage, msg.Type)
		that.rooms.Reject(connID, err)

		return err
	}

	return handler(connID, msg.Payload)
}

func (that *Server) handleJoinRoom(connID string, payload json.RawMessage) error {
	req, err := protocol.DecodeJoinRoom(payload)
	if err != nil {
		that.rooms.Reject(connID, err)
		return err
	}

	return that.rooms.JoinRoom(connID, req.RoomID, req.PlayerName)
}

func (that *Server) handleStartGame(connID string, _ json.RawMessage) error {
	return that.rooms.StartGame(connID)
}

func (that *Server) handleMakeTurn(connID string, payload json.RawMessage) error {
	action, err := protocol.DecodeMakeTurn(payload)
	if err != nil {
		that.rooms.Reject(connID, err)
		return err
	}

	return that.rooms.MakeTurn(connID, action)
}
