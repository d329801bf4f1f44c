package fishing

import (
	"slices"

	"github.com/rocketscienceinc/fishing-backend/internal/catalog"
	"github.com/rocketscienceinc/fishing-backend/internal/entity"
)

// DefaultTurnConfig is the turn config of a player without gear.
func DefaultTurnConfig() entity.TurnConfig {
	return entity.TurnConfig{
		AllowedLocations:       []catalog.Location{catalog.Pier, catalog.Lake},
		AllowedFishingAttempts: 1,
	}
}

// ComputeTurnConfig folds every gear effect over the default config, in gear list order.
func ComputeTurnConfig(gearList []catalog.Gear) entity.TurnConfig {
	config := DefaultTurnConfig()

	for _, gear := range gearList {
		data, ok := catalog.GearInfo(gear)
		if !ok {
			continue
		}

		config = ApplyGearEffect(config, data.Effect)
	}

	return config
}

// ApplyGearEffect returns a new config with effect applied; config is not modified.
func ApplyGearEffect(config entity.TurnConfig, effect catalog.GearEffect) entity.TurnConfig {
	next := config.Clone()

	switch effect.Kind {
	case catalog.EffectExtraAttempts:
		next.AllowedFishingAttempts += effect.Magnitude
	case catalog.EffectUnlockLocation:
		if !slices.Contains(next.AllowedLocations, effect.Location) {
			next.AllowedLocations = append(next.AllowedLocations, effect.Location)
		}
	}

	return next
}
