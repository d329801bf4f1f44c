package entity

import "github.com/rocketscienceinc/fishing-backend/internal/catalog"

type ActionType string

const (
	ActionBuyGear        ActionType = "buyGear"
	ActionCatchFish      ActionType = "catchFish"
	ActionSetLocation    ActionType = "setLocation"
	ActionSellFish       ActionType = "sellFish"
	ActionDonateFish     ActionType = "donateFish"
	ActionDonateGear     ActionType = "donateGear"
	ActionPlayActionCard ActionType = "playActionCard"
	ActionRefreshMarket  ActionType = "refreshMarket"
	ActionEndTurn        ActionType = "endTurn"
)

// Action is one game move. The set of implementations is closed.
type Action interface {
	Type() ActionType
}

type BuyGear struct {
	GearIdx int `json:"gearIdx"`
}

// CatchFish fishes at Location when set, otherwise at the location chosen this turn.
type CatchFish struct {
	Location catalog.Location `json:"location,omitempty"`
}

type SetLocation struct {
	Location catalog.Location `json:"location"`
}

type SellFish struct {
	FishIdx int `json:"fishIdx"`
}

type DonateFish struct {
	FishIdx int `json:"fishIdx"`
}

type DonateGear struct {
	GearIdx int `json:"gearIdx"`
}

type PlayActionCard struct {
	ActionCardIdx   int             `json:"actionCardIdx"`
	ActionCardInput ActionCardInput `json:"actionCardInput"`
}

// ActionCardInput names the card being played and its target. PlayerID and
// GearIdx are only meaningful for the card kinds that need them.
type ActionCardInput struct {
	ActionCard catalog.ActionCard `json:"actionCard"`
	PlayerID   string             `json:"playerId,omitempty"`
	GearIdx    int                `json:"gearIdx,omitempty"`
}

type RefreshMarket struct{}

type EndTurn struct{}

func (BuyGear) Type() ActionType        { return ActionBuyGear }
func (CatchFish) Type() ActionType      { return ActionCatchFish }
func (SetLocation) Type() ActionType    { return ActionSetLocation }
func (SellFish) Type() ActionType       { return ActionSellFish }
func (DonateFish) Type() ActionType     { return ActionDonateFish }
func (DonateGear) Type() ActionType     { return ActionDonateGear }
func (PlayActionCard) Type() ActionType { return ActionPlayActionCard }
func (RefreshMarket) Type() ActionType  { return ActionRefreshMarket }
func (EndTurn) Type() ActionType        { return ActionEndTurn }
