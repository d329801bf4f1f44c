// Package catalog holds the static game content: fish, fishing locations,
// gear and action cards. Everything here is read-only lookup data.
package catalog

type (
	Fish       string
	Location   string
	Gear       string
	ActionCard string
	EffectKind string
)

const (
	Trout    Fish = "trout"
	Bass     Fish = "bass"
	Catfish  Fish = "catfish"
	Perch    Fish = "perch"
	Sardine  Fish = "sardine"
	Mackerel Fish = "mackerel"
	Rockfish Fish = "rockfish"
	Lingcod  Fish = "lingcod"
	Halibut  Fish = "halibut"
	Trash    Fish = "trash"
)

const (
	Pier    Location = "pier"
	Lake    Location = "lake"
	DeepSea Location = "deepSea"
)

const (
	OldRod      Gear = "oldRod"
	GoodRod     Gear = "goodRod"
	SuperRod    Gear = "superRod"
	FishingBoat Gear = "fishingBoat"
)

const (
	BorrowGear         ActionCard = "borrowGear"
	BorrowMoney        ActionCard = "borrowMoney"
	BorrowMoneyFromAll ActionCard = "borrowMoneyFromAll"
)

const (
	// EffectExtraAttempts adds Magnitude fishing attempts per turn.
	EffectExtraAttempts EffectKind = "extraAttempts"
	// EffectUnlockLocation makes Location available for fishing.
	EffectUnlockLocation EffectKind = "unlockLocation"
)

const (
	BorrowMoneyAmount        = 4
	BorrowMoneyFromAllAmount = 2
)

type FishData struct {
	Reputation int
	Money      int
}

// FishWeight is one row of a location's catch table.
type FishWeight struct {
	Fish   Fish
	Weight int
}

// GearEffect is a declarative description of how a gear changes the turn config.
type GearEffect struct {
	Kind      EffectKind
	Magnitude int
	Location  Location
}

type GearData struct {
	Cost       int
	Reputation int
	Effect     GearEffect
}

var fishData = map[Fish]FishData{
	Trout:    {Reputation: 1, Money: 1},
	Bass:     {Reputation: 2, Money: 2},
	Catfish:  {Reputation: 3, Money: 3},
	Perch:    {Reputation: 2, Money: 1},
	Sardine:  {Reputation: 1, Money: 2},
	Mackerel: {Reputation: 3, Money: 3},
	Rockfish: {Reputation: 2, Money: 2},
	Lingcod:  {Reputation: 2, Money: 2},
	Halibut:  {Reputation: 4, Money: 4},
	Trash:    {Reputation: 0, Money: 0},
}

// locationData keeps catch tables as ordered slices so draws are reproducible.
var locationData = map[Location][]FishWeight{
	Pier: {
		{Fish: Perch, Weight: 2},
		{Fish: Sardine, Weight: 2},
		{Fish: Mackerel, Weight: 1},
	},
	Lake: {
		{Fish: Trout, Weight: 2},
		{Fish: Bass, Weight: 2},
		{Fish: Catfish, Weight: 1},
	},
	DeepSea: {
		{Fish: Rockfish, Weight: 3},
		{Fish: Lingcod, Weight: 3},
		{Fish: Halibut, Weight: 2},
	},
}

var gearData = map[Gear]GearData{
	OldRod:      {Cost: 1, Reputation: 1, Effect: GearEffect{Kind: EffectExtraAttempts, Magnitude: 1}},
	GoodRod:     {Cost: 2, Reputation: 2, Effect: GearEffect{Kind: EffectExtraAttempts, Magnitude: 2}},
	SuperRod:    {Cost: 3, Reputation: 3, Effect: GearEffect{Kind: EffectExtraAttempts, Magnitude: 3}},
	FishingBoat: {Cost: 3, Reputation: 3, Effect: GearEffect{Kind: EffectUnlockLocation, Location: DeepSea}},
}

var (
	allGear        = []Gear{OldRod, GoodRod, SuperRod, FishingBoat}
	allActionCards = []ActionCard{BorrowGear, BorrowMoney, BorrowMoneyFromAll}
)

func FishInfo(fish Fish) (FishData, bool) {
	data, ok := fishData[fish]
	return data, ok
}

func GearInfo(gear Gear) (GearData, bool) {
	data, ok := gearData[gear]
	return data, ok
}

// CatchTable returns the weighted fish table of a location in table order.
func CatchTable(location Location) ([]FishWeight, bool) {
	table, ok := locationData[location]
	return table, ok
}

// AllGear returns every purchasable gear in catalog order.
func AllGear() []Gear {
	return append([]Gear(nil), allGear...)
}

// AllActionCards returns every action card kind in catalog order.
func AllActionCards() []ActionCard {
	return append([]ActionCard(nil), allActionCards...)
}
