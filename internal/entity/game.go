package entity

import (
	"slices"

	"github.com/rocketscienceinc/fishing-backend/internal/catalog"
)

const (
	WinReputation = 10
	MarketSize    = 3
	RefreshCost   = 1

	StartingActionCards = 2
)

// TurnConfig holds the limits of the current turn derived from the current player's gear.
type TurnConfig struct {
	AllowedLocations       []catalog.Location `json:"allowedLocations"`
	AllowedFishingAttempts int                `json:"allowedFishingAttempts"`
}

type GamePlayer struct {
	FishList    []catalog.Fish       `json:"fishList"`
	GearList    []catalog.Gear       `json:"gearList"`
	ActionCards []catalog.ActionCard `json:"actionCards"`
	Money       int                  `json:"money"`
	Reputation  int                  `json:"reputation"`
}

type Game struct {
	PlayerOrder     []string               `json:"playerOrder"`
	Players         map[string]*GamePlayer `json:"players"`
	TurnIdx         int                    `json:"turnIdx"`
	CurrentPlayerID string                 `json:"currentPlayerId"`
	Market          []catalog.Gear         `json:"market"`
	TurnConfig      TurnConfig             `json:"turnConfig"`

	// reset on every EndTurn
	Location        catalog.Location `json:"location,omitempty"`
	FishingAttempts int              `json:"fishingAttempts"`
}

func NewGamePlayer(actionCards []catalog.ActionCard) *GamePlayer {
	return &GamePlayer{
		FishList:    []catalog.Fish{},
		GearList:    []catalog.Gear{},
		ActionCards: actionCards,
	}
}

func (that *TurnConfig) AllowsLocation(location catalog.Location) bool {
	return slices.Contains(that.AllowedLocations, location)
}

func (that *TurnConfig) Clone() TurnConfig {
	return TurnConfig{
		AllowedLocations:       slices.Clone(that.AllowedLocations),
		AllowedFishingAttempts: that.AllowedFishingAttempts,
	}
}

func (that *GamePlayer) Clone() *GamePlayer {
	return &GamePlayer{
		FishList:    slices.Clone(that.FishList),
		GearList:    slices.Clone(that.GearList),
		ActionCards: slices.Clone(that.ActionCards),
		Money:       that.Money,
		Reputation:  that.Reputation,
	}
}

// Clone returns a deep copy sharing no slices or maps with the original.
func (that *Game) Clone() *Game {
	players := make(map[string]*GamePlayer, len(that.Players))
	for id, player := range that.Players {
		players[id] = player.Clone()
	}

	return &Game{
		PlayerOrder:     slices.Clone(that.PlayerOrder),
		Players:         players,
		TurnIdx:         that.TurnIdx,
		CurrentPlayerID: that.CurrentPlayerID,
		Market:          slices.Clone(that.Market),
		TurnConfig:      that.TurnConfig.Clone(),
		Location:        that.Location,
		FishingAttempts: that.FishingAttempts,
	}
}

func (that *Game) CurrentPlayer() *GamePlayer {
	return that.Players[that.CurrentPlayerID]
}

func (that *Game) HasLocation() bool {
	return that.Location != ""
}

func (that *Game) AttemptsLeft() int {
	return that.TurnConfig.AllowedFishingAttempts - that.FishingAttempts
}

// PlayerAtTurn resolves the player whose turn index is turnIdx.
func (that *Game) PlayerAtTurn(turnIdx int) string {
	return that.PlayerOrder[turnIdx%len(that.PlayerOrder)]
}
