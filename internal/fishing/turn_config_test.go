package fishing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/fishing-backend/internal/apperror"
	"github.com/rocketscienceinc/fishing-backend/internal/catalog"
	"github.com/rocketscienceinc/fishing-backend/internal/entity"
)

func TestComputeTurnConfig(t *testing.T) {
	t.Run("No gear gives the default config", func(t *testing.T) {
		assert.Equal(t, DefaultTurnConfig(), ComputeTurnConfig(nil))
	})

	t.Run("Rods add up", func(t *testing.T) {
		config := ComputeTurnConfig([]catalog.Gear{catalog.OldRod, catalog.GoodRod, catalog.SuperRod})

		assert.Equal(t, 7, config.AllowedFishingAttempts)
		assert.Equal(t, []catalog.Location{catalog.Pier, catalog.Lake}, config.AllowedLocations)
	})

	t.Run("A location is unlocked once", func(t *testing.T) {
		config := ComputeTurnConfig([]catalog.Gear{catalog.FishingBoat, catalog.FishingBoat})

		assert.Equal(t, []catalog.Location{catalog.Pier, catalog.Lake, catalog.DeepSea}, config.AllowedLocations)
		assert.Equal(t, 1, config.AllowedFishingAttempts)
	})
}

func TestApplyGearEffect_DoesNotModifyInput(t *testing.T) {
	// Given: the default config
	config := DefaultTurnConfig()

	// When: a location unlocking effect is applied
	next := ApplyGearEffect(config, catalog.GearEffect{Kind: catalog.EffectUnlockLocation, Location: catalog.DeepSea})

	// Then: only the result holds the new location
	assert.Len(t, config.AllowedLocations, 2)
	assert.Len(t, next.AllowedLocations, 3)
}

func TestDrawFish(t *testing.T) {
	t.Run("Cumulative draw follows table order", func(t *testing.T) {
		expected := map[int]catalog.Fish{
			0: catalog.Trout,
			1: catalog.Trout,
			2: catalog.Bass,
			3: catalog.Bass,
			4: catalog.Catfish,
		}

		for roll, fish := range expected {
			actual, err := DrawFish(&scriptedRandom{values: []int{roll}}, catalog.Lake)

			require.NoError(t, err)
			assert.Equal(t, fish, actual, "roll %d", roll)
		}
	})

	t.Run("Unknown location fails", func(t *testing.T) {
		_, err := DrawFish(&scriptedRandom{}, "moon")

		require.ErrorIs(t, err, apperror.ErrInvalidLocation)
	})
}

func TestDrawMarket(t *testing.T) {
	market := DrawMarket(&scriptedRandom{values: []int{0, 1, 2}}, entity.MarketSize)

	assert.Equal(t, []catalog.Gear{catalog.OldRod, catalog.GoodRod, catalog.SuperRod}, market)
}
