package fishing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/fishing-backend/internal/apperror"
	"github.com/rocketscienceinc/fishing-backend/internal/catalog"
	"github.com/rocketscienceinc/fishing-backend/internal/entity"
)

// scriptedRandom replays values in a loop, reduced modulo n.
type scriptedRandom struct {
	values []int
	next   int
}

func (that *scriptedRandom) IntN(n int) int {
	if len(that.values) == 0 {
		return 0
	}

	value := that.values[that.next%len(that.values)]
	that.next++

	return value % n
}

func newTestGame(t *testing.T, playerIDs ...string) (*Engine, *entity.Game) {
	t.Helper()

	engine := New(&scriptedRandom{})
	return engine, engine.NewGame(playerIDs)
}

func TestEngine_NewGame(t *testing.T) {
	// Given: an engine and three players in join order
	engine := New(&scriptedRandom{})

	// When: a new game is dealt
	game := engine.NewGame([]string{"alice", "bob", "carol"})

	// Then: the first player in order starts with zeroed stats
	assert.Equal(t, []string{"alice", "bob", "carol"}, game.PlayerOrder)
	assert.Equal(t, 0, game.TurnIdx)
	assert.Equal(t, "alice", game.CurrentPlayerID)
	assert.Len(t, game.Market, entity.MarketSize)
	assert.Equal(t, DefaultTurnConfig(), game.TurnConfig)

	for _, playerID := range game.PlayerOrder {
		player := game.Players[playerID]
		require.NotNil(t, player)
		assert.Zero(t, player.Money)
		assert.Zero(t, player.Reputation)
		assert.Empty(t, player.FishList)
		assert.Empty(t, player.GearList)
		assert.Len(t, player.ActionCards, entity.StartingActionCards)
	}
}

func TestEngine_Apply_NotYourTurn(t *testing.T) {
	// Given: a game where it is alice's turn
	engine, game := newTestGame(t, "alice", "bob")
	before := game.Clone()

	// When: bob tries to catch a fish
	_, err := engine.Apply(game, "bob", entity.CatchFish{Location: catalog.Lake})

	// Then: the move is rejected and nothing changes
	require.ErrorIs(t, err, apperror.ErrNotYourTurn)
	assert.Equal(t, before, game)
}

func TestEngine_Apply_SetLocation(t *testing.T) {
	t.Run("Records an allowed location", func(t *testing.T) {
		engine, game := newTestGame(t, "alice", "bob")

		_, err := engine.Apply(game, "alice", entity.SetLocation{Location: catalog.Pier})

		require.NoError(t, err)
		assert.Equal(t, catalog.Pier, game.Location)
	})

	t.Run("Rejects a second location in the same turn", func(t *testing.T) {
		engine, game := newTestGame(t, "alice", "bob")
		_, err := engine.Apply(game, "alice", entity.SetLocation{Location: catalog.Pier})
		require.NoError(t, err)

		_, err = engine.Apply(game, "alice", entity.SetLocation{Location: catalog.Lake})

		require.ErrorIs(t, err, apperror.ErrLocationAlreadySet)
		assert.Equal(t, catalog.Pier, game.Location)
	})

	t.Run("Rejects a location the turn config does not allow", func(t *testing.T) {
		engine, game := newTestGame(t, "alice", "bob")

		_, err := engine.Apply(game, "alice", entity.SetLocation{Location: catalog.DeepSea})

		require.ErrorIs(t, err, apperror.ErrInvalidLocation)
		assert.False(t, game.HasLocation())
	})
}

func TestEngine_Apply_CatchFish(t *testing.T) {
	t.Run("Fails without a location", func(t *testing.T) {
		engine, game := newTestGame(t, "alice", "bob")
		before := game.Clone()

		_, err := engine.Apply(game, "alice", entity.CatchFish{})

		require.ErrorIs(t, err, apperror.ErrInvalidLocation)
		assert.Equal(t, before, game)
	})

	t.Run("Catches at the chosen location and uses one attempt", func(t *testing.T) {
		// Given: alice chose the lake and the draw lands on the last row
		engine := New(&scriptedRandom{values: []int{4}})
		game := engine.NewGame([]string{"alice", "bob"})
		_, err := engine.Apply(game, "alice", entity.SetLocation{Location: catalog.Lake})
		require.NoError(t, err)
		left := game.AttemptsLeft()

		// When: alice catches a fish
		_, err = engine.Apply(game, "alice", entity.CatchFish{})

		// Then: the fish is a catfish and one attempt is used
		require.NoError(t, err)
		assert.Equal(t, []catalog.Fish{catalog.Catfish}, game.Players["alice"].FishList)
		assert.Equal(t, left-1, game.AttemptsLeft())
	})

	t.Run("Location in the action fixes the turn location", func(t *testing.T) {
		engine, game := newTestGame(t, "alice", "bob")

		_, err := engine.Apply(game, "alice", entity.CatchFish{Location: catalog.Pier})

		require.NoError(t, err)
		assert.Equal(t, catalog.Pier, game.Location)
		assert.Equal(t, []catalog.Fish{catalog.Perch}, game.Players["alice"].FishList)
	})

	t.Run("Location in the action must match the chosen one", func(t *testing.T) {
		engine, game := newTestGame(t, "alice", "bob")
		_, err := engine.Apply(game, "alice", entity.SetLocation{Location: catalog.Pier})
		require.NoError(t, err)

		_, err = engine.Apply(game, "alice", entity.CatchFish{Location: catalog.Lake})

		require.ErrorIs(t, err, apperror.ErrLocationAlreadySet)
		assert.Empty(t, game.Players["alice"].FishList)
	})

	t.Run("Never succeeds once attempts are used up", func(t *testing.T) {
		// Given: alice has two attempts this turn
		engine, game := newTestGame(t, "alice", "bob")
		game.TurnConfig.AllowedFishingAttempts = 2

		// When: she fishes until the attempts run out
		for range 2 {
			_, err := engine.Apply(game, "alice", entity.CatchFish{Location: catalog.Lake})
			require.NoError(t, err)
		}
		before := game.Clone()
		_, err := engine.Apply(game, "alice", entity.CatchFish{})

		// Then: the third attempt fails without any change
		require.ErrorIs(t, err, apperror.ErrNoActionsLeft)
		assert.Equal(t, before, game)
		assert.Len(t, game.Players["alice"].FishList, 2)
	})
}

func TestEngine_Apply_BuyGear(t *testing.T) {
	t.Run("Rejects an index outside the market", func(t *testing.T) {
		engine, game := newTestGame(t, "alice", "bob")
		game.Players["alice"].Money = 10

		_, err := engine.Apply(game, "alice", entity.BuyGear{GearIdx: entity.MarketSize})

		require.ErrorIs(t, err, apperror.ErrInvalidSelection)
		assert.Equal(t, 10, game.Players["alice"].Money)
	})

	t.Run("Rejects a purchase the player cannot afford", func(t *testing.T) {
		engine, game := newTestGame(t, "alice", "bob")
		game.Market[0] = catalog.SuperRod
		game.Players["alice"].Money = 2
		before := game.Clone()

		_, err := engine.Apply(game, "alice", entity.BuyGear{GearIdx: 0})

		require.ErrorIs(t, err, apperror.ErrInsufficientFunds)
		assert.Equal(t, before, game)
	})

	t.Run("Pays, takes the gear and refills the slot", func(t *testing.T) {
		// Given: a good rod in the first market slot
		engine, game := newTestGame(t, "alice", "bob")
		game.Market[0] = catalog.GoodRod
		game.Players["alice"].Money = 5
		config := game.TurnConfig.Clone()

		// When: alice buys it
		_, err := engine.Apply(game, "alice", entity.BuyGear{GearIdx: 0})

		// Then: money is deducted and the slot holds a fresh draw
		require.NoError(t, err)
		assert.Equal(t, 3, game.Players["alice"].Money)
		assert.Equal(t, []catalog.Gear{catalog.GoodRod}, game.Players["alice"].GearList)
		assert.Equal(t, catalog.OldRod, game.Market[0])
		assert.Equal(t, config, game.TurnConfig)
	})
}

func TestEngine_Apply_SellAndDonate(t *testing.T) {
	t.Run("Selling a fish credits money", func(t *testing.T) {
		engine, game := newTestGame(t, "alice", "bob")
		game.Players["alice"].FishList = []catalog.Fish{catalog.Trout, catalog.Halibut}

		_, err := engine.Apply(game, "alice", entity.SellFish{FishIdx: 1})

		require.NoError(t, err)
		assert.Equal(t, 4, game.Players["alice"].Money)
		assert.Equal(t, []catalog.Fish{catalog.Trout}, game.Players["alice"].FishList)
	})

	t.Run("Donating a fish credits reputation", func(t *testing.T) {
		engine, game := newTestGame(t, "alice", "bob")
		game.Players["alice"].FishList = []catalog.Fish{catalog.Perch}

		_, err := engine.Apply(game, "alice", entity.DonateFish{FishIdx: 0})

		require.NoError(t, err)
		assert.Equal(t, 2, game.Players["alice"].Reputation)
		assert.Zero(t, game.Players["alice"].Money)
		assert.Empty(t, game.Players["alice"].FishList)
	})

	t.Run("Fish index is checked against the current list", func(t *testing.T) {
		engine, game := newTestGame(t, "alice", "bob")
		game.Players["alice"].FishList = []catalog.Fish{catalog.Perch}
		_, err := engine.Apply(game, "alice", entity.SellFish{FishIdx: 0})
		require.NoError(t, err)

		_, err = engine.Apply(game, "alice", entity.DonateFish{FishIdx: 0})

		require.ErrorIs(t, err, apperror.ErrInvalidSelection)
		assert.Zero(t, game.Players["alice"].Reputation)
	})

	t.Run("Donating gear credits reputation", func(t *testing.T) {
		engine, game := newTestGame(t, "alice", "bob")
		game.Players["alice"].GearList = []catalog.Gear{catalog.OldRod, catalog.FishingBoat}

		_, err := engine.Apply(game, "alice", entity.DonateGear{GearIdx: 1})

		require.NoError(t, err)
		assert.Equal(t, 3, game.Players["alice"].Reputation)
		assert.Equal(t, []catalog.Gear{catalog.OldRod}, game.Players["alice"].GearList)
	})

	t.Run("Donating missing gear fails", func(t *testing.T) {
		engine, game := newTestGame(t, "alice", "bob")

		_, err := engine.Apply(game, "alice", entity.DonateGear{GearIdx: -1})

		require.ErrorIs(t, err, apperror.ErrInvalidSelection)
	})
}

func TestEngine_Apply_RefreshMarket(t *testing.T) {
	t.Run("Fails without money", func(t *testing.T) {
		engine, game := newTestGame(t, "alice", "bob")
		before := game.Clone()

		_, err := engine.Apply(game, "alice", entity.RefreshMarket{})

		require.ErrorIs(t, err, apperror.ErrInsufficientFunds)
		assert.Equal(t, before, game)
	})

	t.Run("Redraws every slot", func(t *testing.T) {
		engine := New(&scriptedRandom{values: []int{3}})
		game := engine.NewGame([]string{"alice", "bob"})
		game.Market = []catalog.Gear{catalog.OldRod, catalog.OldRod, catalog.OldRod}
		game.Players["alice"].Money = 1

		_, err := engine.Apply(game, "alice", entity.RefreshMarket{})

		require.NoError(t, err)
		assert.Zero(t, game.Players["alice"].Money)
		assert.Equal(t, []catalog.Gear{catalog.FishingBoat, catalog.FishingBoat, catalog.FishingBoat}, game.Market)
	})
}

func TestEngine_Apply_EndTurn(t *testing.T) {
	t.Run("Turn passes around the fixed order", func(t *testing.T) {
		engine, game := newTestGame(t, "alice", "bob", "carol")

		for k := 1; k <= 7; k++ {
			_, err := engine.Apply(game, game.CurrentPlayerID, entity.EndTurn{})
			require.NoError(t, err)

			assert.Equal(t, k, game.TurnIdx)
			assert.Equal(t, game.PlayerOrder[k%3], game.CurrentPlayerID)
		}
	})

	t.Run("Clears the turn and folds the next player's gear", func(t *testing.T) {
		// Given: alice has fished at the pier and bob owns a rod and a boat
		engine, game := newTestGame(t, "alice", "bob")
		_, err := engine.Apply(game, "alice", entity.CatchFish{Location: catalog.Pier})
		require.NoError(t, err)
		game.Players["bob"].GearList = []catalog.Gear{catalog.SuperRod, catalog.FishingBoat}

		// When: alice ends her turn
		_, err = engine.Apply(game, "alice", entity.EndTurn{})

		// Then: bob's turn starts clean with his gear applied
		require.NoError(t, err)
		assert.Equal(t, "bob", game.CurrentPlayerID)
		assert.False(t, game.HasLocation())
		assert.Zero(t, game.FishingAttempts)
		assert.Equal(t, 4, game.TurnConfig.AllowedFishingAttempts)
		assert.True(t, game.TurnConfig.AllowsLocation(catalog.DeepSea))
	})
}

func TestEngine_Apply_PlayActionCard(t *testing.T) {
	t.Run("Card kind must match the card in the slot", func(t *testing.T) {
		engine, game := newTestGame(t, "alice", "bob")
		game.Players["alice"].ActionCards = []catalog.ActionCard{catalog.BorrowGear}
		before := game.Clone()

		_, err := engine.Apply(game, "alice", entity.PlayActionCard{
			ActionCardIdx:   0,
			ActionCardInput: entity.ActionCardInput{ActionCard: catalog.BorrowMoney, PlayerID: "bob"},
		})

		require.ErrorIs(t, err, apperror.ErrInvalidSelection)
		assert.Equal(t, before, game)
	})

	t.Run("Validator error leaves both players untouched", func(t *testing.T) {
		// Given: bob has no gear to borrow
		engine, game := newTestGame(t, "alice", "bob")
		game.Players["alice"].ActionCards = []catalog.ActionCard{catalog.BorrowGear}
		before := game.Clone()

		// When: alice plays borrow gear against bob
		_, err := engine.Apply(game, "alice", entity.PlayActionCard{
			ActionCardIdx:   0,
			ActionCardInput: entity.ActionCardInput{ActionCard: catalog.BorrowGear, PlayerID: "bob", GearIdx: 0},
		})

		// Then: the target is rejected
		require.ErrorIs(t, err, apperror.ErrInvalidActionCardTarget)
		assert.Equal(t, "Invalid gear selected.", err.Error())
		assert.Equal(t, before, game)
	})

	t.Run("Self targeting is rejected", func(t *testing.T) {
		engine, game := newTestGame(t, "alice", "bob")
		game.Players["alice"].ActionCards = []catalog.ActionCard{catalog.BorrowMoney}
		game.Players["alice"].Money = 3

		_, err := engine.Apply(game, "alice", entity.PlayActionCard{
			ActionCardIdx:   0,
			ActionCardInput: entity.ActionCardInput{ActionCard: catalog.BorrowMoney, PlayerID: "alice"},
		})

		require.ErrorIs(t, err, apperror.ErrInvalidActionCardTarget)
		assert.Equal(t, 3, game.Players["alice"].Money)
	})

	t.Run("Borrow gear moves the gear and consumes the card", func(t *testing.T) {
		engine, game := newTestGame(t, "alice", "bob")
		game.Players["alice"].ActionCards = []catalog.ActionCard{catalog.BorrowMoney, catalog.BorrowGear}
		game.Players["bob"].GearList = []catalog.Gear{catalog.OldRod, catalog.FishingBoat}

		next, err := engine.Apply(game, "alice", entity.PlayActionCard{
			ActionCardIdx:   1,
			ActionCardInput: entity.ActionCardInput{ActionCard: catalog.BorrowGear, PlayerID: "bob", GearIdx: 1},
		})

		require.NoError(t, err)
		assert.Equal(t, []catalog.Gear{catalog.FishingBoat}, next.Players["alice"].GearList)
		assert.Equal(t, []catalog.Gear{catalog.OldRod}, next.Players["bob"].GearList)
		assert.Equal(t, []catalog.ActionCard{catalog.BorrowMoney}, next.Players["alice"].ActionCards)

		// the input game is never partially updated
		assert.Len(t, game.Players["bob"].GearList, 2)
	})

	t.Run("Borrow money takes at most the fixed amount", func(t *testing.T) {
		engine, game := newTestGame(t, "alice", "bob")
		game.Players["alice"].ActionCards = []catalog.ActionCard{catalog.BorrowMoney}
		game.Players["bob"].Money = 7

		next, err := engine.Apply(game, "alice", entity.PlayActionCard{
			ActionCardIdx:   0,
			ActionCardInput: entity.ActionCardInput{ActionCard: catalog.BorrowMoney, PlayerID: "bob"},
		})

		require.NoError(t, err)
		assert.Equal(t, catalog.BorrowMoneyAmount, next.Players["alice"].Money)
		assert.Equal(t, 3, next.Players["bob"].Money)
	})

	t.Run("Borrow money from all collects from every other player", func(t *testing.T) {
		engine, game := newTestGame(t, "alice", "bob", "carol")
		game.Players["alice"].ActionCards = []catalog.ActionCard{catalog.BorrowMoneyFromAll}
		game.Players["alice"].Money = 1
		game.Players["bob"].Money = 5
		game.Players["carol"].Money = 1

		next, err := engine.Apply(game, "alice", entity.PlayActionCard{
			ActionCardIdx:   0,
			ActionCardInput: entity.ActionCardInput{ActionCard: catalog.BorrowMoneyFromAll},
		})

		require.NoError(t, err)
		assert.Equal(t, 4, next.Players["alice"].Money)
		assert.Equal(t, 3, next.Players["bob"].Money)
		assert.Zero(t, next.Players["carol"].Money)
		assert.Empty(t, next.Players["alice"].ActionCards)
	})
}

func TestWinner(t *testing.T) {
	t.Run("No winner below the threshold", func(t *testing.T) {
		_, game := newTestGame(t, "alice", "bob")
		game.Players["alice"].Reputation = entity.WinReputation - 1

		_, ok := Winner(game)

		assert.False(t, ok)
	})

	t.Run("First player in turn order wins ties", func(t *testing.T) {
		_, game := newTestGame(t, "alice", "bob", "carol")
		game.Players["bob"].Reputation = entity.WinReputation
		game.Players["carol"].Reputation = entity.WinReputation + 2

		winner, ok := Winner(game)

		require.True(t, ok)
		assert.Equal(t, "bob", winner)
	})
}
