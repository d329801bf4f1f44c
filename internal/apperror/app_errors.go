package apperror

import "errors"

// Texts are sent to clients as-is inside a Fail message.
//
//nolint:stylecheck // player-facing sentences
var (
	ErrRoomNotOpen             = errors.New("The room is not open.")
	ErrAlreadyInRoom           = errors.New("You are already in the room.")
	ErrRoomNotFound            = errors.New("The room was not found.")
	ErrNotInRoom               = errors.New("You are not in a room.")
	ErrPlayerCountOutOfRange   = errors.New("The game needs between 2 and 8 players.")
	ErrGameNotInProgress       = errors.New("The game is not in progress.")
	ErrNotYourTurn             = errors.New("It's not your turn.")
	ErrInvalidSelection        = errors.New("Invalid selection.")
	ErrInsufficientFunds       = errors.New("Not enough money.")
	ErrLocationAlreadySet      = errors.New("The location was already set this turn.")
	ErrInvalidLocation         = errors.New("Invalid location.")
	ErrNoActionsLeft           = errors.New("No fishing attempts left this turn.")
	ErrInvalidActionCardTarget = errors.New("Invalid action card target.")
	ErrInvalidMessage          = errors.New("Invalid message.")
)

// ErrPlayerLeft is the notice sent to the remaining members when a game is torn down.
//
//nolint:stylecheck // player-facing sentence
var ErrPlayerLeft = errors.New("Another player left while the game was in progress.")

//nolint:stylecheck // player-facing sentence
var ErrGameCorrupted = errors.New("The game could not continue and the room was closed.")

// TargetError is returned by action card validators. It matches
// ErrInvalidActionCardTarget and carries the reason shown to the player.
type TargetError struct {
	Reason string
}

func InvalidTarget(reason string) error {
	return &TargetError{Reason: reason}
}

func (that *TargetError) Error() string {
	return that.Reason
}

func (that *TargetError) Is(target error) bool {
	return target == ErrInvalidActionCardTarget
}

//nolint:stylecheck // player-facing sentence
var ErrInternal = errors.New("Something went wrong.")

var public = []error{
	ErrRoomNotOpen,
	ErrAlreadyInRoom,
	ErrRoomNotFound,
	ErrNotInRoom,
	ErrPlayerCountOutOfRange,
	ErrGameNotInProgress,
	ErrNotYourTurn,
	ErrInvalidSelection,
	ErrInsufficientFunds,
	ErrLocationAlreadySet,
	ErrInvalidLocation,
	ErrNoActionsLeft,
	ErrInvalidActionCardTarget,
	ErrInvalidMessage,
	ErrPlayerLeft,
	ErrGameCorrupted,
}

// Public strips internal context from err and returns what may be shown to a player.
func Public(err error) error {
	var target *TargetError
	if errors.As(err, &target) {
		return target
	}

	for _, known := range public {
		if errors.Is(err, known) {
			return known
		}
	}

	return ErrInternal
}
