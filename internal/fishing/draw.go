package fishing

import (
	"github.com/rocketscienceinc/fishing-backend/internal/apperror"
	"github.com/rocketscienceinc/fishing-backend/internal/catalog"
)

// Random is the source of every draw in a game. *rand.Rand from math/rand/v2 satisfies it.
type Random interface {
	IntN(n int) int
}

// DrawFish picks a fish from the location's catch table with probability
// proportional to its weight. Rows are walked in table order.
func DrawFish(rng Random, location catalog.Location) (catalog.Fish, error) {
	table, ok := catalog.CatchTable(location)
	if !ok || len(table) == 0 {
		return "", apperror.ErrInvalidLocation
	}

	total := 0
	for _, row := range table {
		total += row.Weight
	}

	roll := rng.IntN(total)
	for _, row := range table {
		if roll < row.Weight {
			return row.Fish, nil
		}
		roll -= row.Weight
	}

	return table[len(table)-1].Fish, nil
}

// DrawGear picks a gear uniformly at random.
func DrawGear(rng Random) catalog.Gear {
	gear := catalog.AllGear()
	return gear[rng.IntN(len(gear))]
}

func DrawMarket(rng Random, size int) []catalog.Gear {
	market := make([]catalog.Gear, 0, size)
	for range size {
		market = append(market, DrawGear(rng))
	}

	return market
}

func DrawActionCards(rng Random, count int) []catalog.ActionCard {
	cards := catalog.AllActionCards()

	hand := make([]catalog.ActionCard, 0, count)
	for range count {
		hand = append(hand, cards[rng.IntN(len(cards))])
	}

	return hand
}
