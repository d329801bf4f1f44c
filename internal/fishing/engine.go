package fishing

import (
	"errors"
	"fmt"
	"slices"

	"github.com/rocketscienceinc/fishing-backend/internal/apperror"
	"github.com/rocketscienceinc/fishing-backend/internal/catalog"
	"github.com/rocketscienceinc/fishing-backend/internal/entity"
)

// ErrUnknownPlayer means the game refers to a player it has no state for.
var ErrUnknownPlayer = errors.New("player is not part of the game")

type Engine struct {
	rng Random
}

func New(rng Random) *Engine {
	return &Engine{rng: rng}
}

// NewGame deals the starting state for the players in turn order.
func (that *Engine) NewGame(playerOrder []string) *entity.Game {
	players := make(map[string]*entity.GamePlayer, len(playerOrder))
	for _, playerID := range playerOrder {
		players[playerID] = entity.NewGamePlayer(DrawActionCards(that.rng, entity.StartingActionCards))
	}

	game := &entity.Game{
		PlayerOrder:     slices.Clone(playerOrder),
		Players:         players,
		TurnIdx:         0,
		CurrentPlayerID: playerOrder[0],
		Market:          DrawMarket(that.rng, entity.MarketSize),
	}
	game.TurnConfig = ComputeTurnConfig(game.CurrentPlayer().GearList)

	return game
}

// Apply resolves action on behalf of playerID and returns the game that
// replaces the input. On error the input game is left exactly as it was.
func (that *Engine) Apply(game *entity.Game, playerID string, action entity.Action) (*entity.Game, error) {
	if game.CurrentPlayerID != playerID {
		return game, apperror.ErrNotYourTurn
	}

	player := game.CurrentPlayer()
	if player == nil {
		return game, fmt.Errorf("%w: %s", ErrUnknownPlayer, playerID)
	}

	switch act := action.(type) {
	case entity.SetLocation:
		return game, setLocation(game, act)
	case entity.CatchFish:
		return game, that.catchFish(game, player, act)
	case entity.BuyGear:
		return game, that.buyGear(game, player, act)
	case entity.SellFish:
		return game, sellFish(player, act)
	case entity.DonateFish:
		return game, donateFish(player, act)
	case entity.DonateGear:
		return game, donateGear(player, act)
	case entity.RefreshMarket:
		return game, that.refreshMarket(game, player)
	case entity.PlayActionCard:
		return playActionCard(game, player, act)
	case entity.EndTurn:
		return game, endTurn(game)
	default:
		return game, fmt.Errorf("%w: unsupported action %T", apperror.ErrInvalidMessage, action)
	}
}

// Winner returns the first player in turn order whose reputation reached the threshold.
func Winner(game *entity.Game) (string, bool) {
	for _, playerID := range game.PlayerOrder {
		if player, ok := game.Players[playerID]; ok && player.Reputation >= entity.WinReputation {
			return playerID, true
		}
	}

	return "", false
}

func setLocation(game *entity.Game, act entity.SetLocation) error {
	if game.HasLocation() {
		return apperror.ErrLocationAlreadySet
	}

	if !game.TurnConfig.AllowsLocation(act.Location) {
		return apperror.ErrInvalidLocation
	}

	game.Location = act.Location

	return nil
}

// catchFish uses the location named in the action, which also fixes it for
// the rest of the turn, or falls back to the location already chosen.
func (that *Engine) catchFish(game *entity.Game, player *entity.GamePlayer, act entity.CatchFish) error {
	if game.AttemptsLeft() <= 0 {
		return apperror.ErrNoActionsLeft
	}

	location := game.Location
	if act.Location != "" {
		if game.HasLocation() && act.Location != game.Location {
			return apperror.ErrLocationAlreadySet
		}

		if !game.TurnConfig.AllowsLocation(act.Location) {
			return apperror.ErrInvalidLocation
		}

		location = act.Location
	}

	if location == "" {
		return apperror.ErrInvalidLocation
	}

	fish, err := DrawFish(that.rng, location)
	if err != nil {
		return err
	}

	game.Location = location
	game.FishingAttempts++
	player.FishList = append(player.FishList, fish)

	return nil
}

func (that *Engine) buyGear(game *entity.Game, player *entity.GamePlayer, act entity.BuyGear) error {
	if act.GearIdx < 0 || act.GearIdx >= len(game.Market) {
		return apperror.ErrInvalidSelection
	}

	gear := game.Market[act.GearIdx]
	data, ok := catalog.GearInfo(gear)
	if !ok {
		return apperror.ErrInvalidSelection
	}

	if player.Money < data.Cost {
		return apperror.ErrInsufficientFunds
	}

	player.Money -= data.Cost
	player.GearList = append(player.GearList, gear)
	game.Market[act.GearIdx] = DrawGear(that.rng)

	return nil
}

func sellFish(player *entity.GamePlayer, act entity.SellFish) error {
	data, err := takeFish(player, act.FishIdx)
	if err != nil {
		return err
	}

	player.Money += data.Money

	return nil
}

func donateFish(player *entity.GamePlayer, act entity.DonateFish) error {
	data, err := takeFish(player, act.FishIdx)
	if err != nil {
		return err
	}

	player.Reputation += data.Reputation

	return nil
}

// takeFish removes the fish at idx after checking it against the current list.
func takeFish(player *entity.GamePlayer, idx int) (catalog.FishData, error) {
	if idx < 0 || idx >= len(player.FishList) {
		return catalog.FishData{}, apperror.ErrInvalidSelection
	}

	data, ok := catalog.FishInfo(player.FishList[idx])
	if !ok {
		return catalog.FishData{}, apperror.ErrInvalidSelection
	}

	player.FishList = slices.Delete(player.FishList, idx, idx+1)

	return data, nil
}

func donateGear(player *entity.GamePlayer, act entity.DonateGear) error {
	if act.GearIdx < 0 || act.GearIdx >= len(player.GearList) {
		return apperror.ErrInvalidSelection
	}

	data, ok := catalog.GearInfo(player.GearList[act.GearIdx])
	if !ok {
		return apperror.ErrInvalidSelection
	}

	player.GearList = slices.Delete(player.GearList, act.GearIdx, act.GearIdx+1)
	player.Reputation += data.Reputation

	return nil
}

func (that *Engine) refreshMarket(game *entity.Game, player *entity.GamePlayer) error {
	if player.Money < entity.RefreshCost {
		return apperror.ErrInsufficientFunds
	}

	player.Money -= entity.RefreshCost
	game.Market = DrawMarket(that.rng, entity.MarketSize)

	return nil
}

func playActionCard(game *entity.Game, player *entity.GamePlayer, act entity.PlayActionCard) (*entity.Game, error) {
	idx := act.ActionCardIdx
	if idx < 0 || idx >= len(player.ActionCards) || player.ActionCards[idx] != act.ActionCardInput.ActionCard {
		return game, apperror.ErrInvalidSelection
	}

	rule, ok := cardRuleFor(act.ActionCardInput.ActionCard)
	if !ok {
		return game, apperror.ErrInvalidSelection
	}

	if err := rule.validate(game, act.ActionCardInput); err != nil {
		return game, err
	}

	next := rule.apply(game, act.ActionCardInput)

	current := next.CurrentPlayer()
	current.ActionCards = slices.Delete(current.ActionCards, idx, idx+1)

	return next, nil
}

func endTurn(game *entity.Game) error {
	nextIdx := game.TurnIdx + 1
	nextPlayerID := game.PlayerAtTurn(nextIdx)

	player, ok := game.Players[nextPlayerID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPlayer, nextPlayerID)
	}

	game.TurnIdx = nextIdx
	game.CurrentPlayerID = nextPlayerID
	game.Location = ""
	game.FishingAttempts = 0
	game.TurnConfig = ComputeTurnConfig(player.GearList)

	return nil
}
