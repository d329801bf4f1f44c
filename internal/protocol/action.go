package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/fishing-backend/internal/apperror"
	"github.com/rocketscienceinc/fishing-backend/internal/catalog"
	"github.com/rocketscienceinc/fishing-backend/internal/entity"
)

// actionBody is the union of every action field. Indexes are pointers so a
// missing index is rejected instead of silently meaning slot 0.
type actionBody struct {
	ActionType      entity.ActionType       `json:"actionType"`
	GearIdx         *int                    `json:"gearIdx"`
	FishIdx         *int                    `json:"fishIdx"`
	Location        catalog.Location        `json:"location"`
	ActionCardIdx   *int                    `json:"actionCardIdx"`
	ActionCardInput *entity.ActionCardInput `json:"actionCardInput"`
}

// DecodeAction turns {"actionType": "...", ...} into the matching entity.Action.
func DecodeAction(raw json.RawMessage) (entity.Action, error) {
	var body actionBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrInvalidMessage, err)
	}

	switch body.ActionType {
	case entity.ActionBuyGear:
		idx, err := requireIndex("gearIdx", body.GearIdx)
		if err != nil {
			return nil, err
		}
		return entity.BuyGear{GearIdx: idx}, nil
	case entity.ActionCatchFish:
		return entity.CatchFish{Location: body.Location}, nil
	case entity.ActionSetLocation:
		if body.Location == "" {
			return nil, fmt.Errorf("%w: missing location", apperror.ErrInvalidMessage)
		}
		return entity.SetLocation{Location: body.Location}, nil
	case entity.ActionSellFish:
		idx, err := requireIndex("fishIdx", body.FishIdx)
		if err != nil {
			return nil, err
		}
		return entity.SellFish{FishIdx: idx}, nil
	case entity.ActionDonateFish:
		idx, err := requireIndex("fishIdx", body.FishIdx)
		if err != nil {
			return nil, err
		}
		return entity.DonateFish{FishIdx: idx}, nil
	case entity.ActionDonateGear:
		idx, err := requireIndex("gearIdx", body.GearIdx)
		if err != nil {
			return nil, err
		}
		return entity.DonateGear{GearIdx: idx}, nil
	case entity.ActionPlayActionCard:
		idx, err := requireIndex("actionCardIdx", body.ActionCardIdx)
		if err != nil {
			return nil, err
		}
		if body.ActionCardInput == nil {
			return nil, fmt.Errorf("%w: missing actionCardInput", apperror.ErrInvalidMessage)
		}
		return entity.PlayActionCard{ActionCardIdx: idx, ActionCardInput: *body.ActionCardInput}, nil
	case entity.ActionRefreshMarket:
		return entity.RefreshMarket{}, nil
	case entity.ActionEndTurn:
		return entity.EndTurn{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown action type %q", apperror.ErrInvalidMessage, body.ActionType)
	}
}

func requireIndex(field string, value *int) (int, error) {
	if value == nil {
		return 0, fmt.Errorf("%w: missing %s", apperror.ErrInvalidMessage, field)
	}

	return *value, nil
}
