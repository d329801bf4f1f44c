package fishing

import (
	"slices"

	"github.com/rocketscienceinc/fishing-backend/internal/apperror"
	"github.com/rocketscienceinc/fishing-backend/internal/catalog"
	"github.com/rocketscienceinc/fishing-backend/internal/entity"
)

// cardRule pairs the validator and the effect of one action card kind.
// Both are pure: validate never mutates, apply returns a new game.
type cardRule struct {
	validate func(game *entity.Game, input entity.ActionCardInput) error
	apply    func(game *entity.Game, input entity.ActionCardInput) *entity.Game
}

func cardRuleFor(card catalog.ActionCard) (cardRule, bool) {
	switch card {
	case catalog.BorrowGear:
		return cardRule{validate: validateBorrowGear, apply: applyBorrowGear}, true
	case catalog.BorrowMoney:
		return cardRule{validate: validateBorrowMoney, apply: applyBorrowMoney}, true
	case catalog.BorrowMoneyFromAll:
		return cardRule{validate: validateBorrowMoneyFromAll, apply: applyBorrowMoneyFromAll}, true
	default:
		return cardRule{}, false
	}
}

func validateTarget(game *entity.Game, playerID string) (*entity.GamePlayer, error) {
	target, ok := game.Players[playerID]
	if !ok {
		return nil, apperror.InvalidTarget("Invalid player selected.")
	}

	if playerID == game.CurrentPlayerID {
		return nil, apperror.InvalidTarget("You can't select yourself.")
	}

	return target, nil
}

func validateBorrowGear(game *entity.Game, input entity.ActionCardInput) error {
	target, err := validateTarget(game, input.PlayerID)
	if err != nil {
		return err
	}

	if input.GearIdx < 0 || input.GearIdx >= len(target.GearList) {
		return apperror.InvalidTarget("Invalid gear selected.")
	}

	return nil
}

func applyBorrowGear(game *entity.Game, input entity.ActionCardInput) *entity.Game {
	next := game.Clone()

	target := next.Players[input.PlayerID]
	gear := target.GearList[input.GearIdx]
	target.GearList = slices.Delete(target.GearList, input.GearIdx, input.GearIdx+1)

	current := next.CurrentPlayer()
	current.GearList = append(current.GearList, gear)

	return next
}

func validateBorrowMoney(game *entity.Game, input entity.ActionCardInput) error {
	target, err := validateTarget(game, input.PlayerID)
	if err != nil {
		return err
	}

	if target.Money == 0 {
		return apperror.InvalidTarget("That player has no money.")
	}

	return nil
}

func applyBorrowMoney(game *entity.Game, input entity.ActionCardInput) *entity.Game {
	next := game.Clone()

	target := next.Players[input.PlayerID]
	amount := min(target.Money, catalog.BorrowMoneyAmount)
	target.Money -= amount
	next.CurrentPlayer().Money += amount

	return next
}

func validateBorrowMoneyFromAll(_ *entity.Game, _ entity.ActionCardInput) error {
	return nil
}

func applyBorrowMoneyFromAll(game *entity.Game, _ entity.ActionCardInput) *entity.Game {
	next := game.Clone()

	sum := 0
	for _, playerID := range next.PlayerOrder {
		if playerID == next.CurrentPlayerID {
			continue
		}

		player := next.Players[playerID]
		amount := min(player.Money, catalog.BorrowMoneyFromAllAmount)
		player.Money -= amount
		sum += amount
	}

	next.CurrentPlayer().Money += sum

	return next
}
