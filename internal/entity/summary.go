package entity

import "time"

type PlayerStats struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Money      int    `json:"money"`
	Reputation int    `json:"reputation"`
	FishCount  int    `json:"fishCount"`
	GearCount  int    `json:"gearCount"`
}

// GameSummary is the final snapshot of a finished game. It is never modified after creation.
type GameSummary struct {
	RoomID     string        `json:"roomId"`
	WinnerID   string        `json:"winnerId"`
	WinnerName string        `json:"winnerName"`
	Players    []PlayerStats `json:"players"`
	FinishedAt time.Time     `json:"finishedAt"`
}

type LeaderboardEntry struct {
	PlayerName string `json:"playerName"`
	Wins       int64  `json:"wins"`
}

// NewGameSummary builds the summary of game in turn order, naming players from room.
func NewGameSummary(room *Room, game *Game, winnerID string, finishedAt time.Time) *GameSummary {
	stats := make([]PlayerStats, 0, len(game.PlayerOrder))
	for _, playerID := range game.PlayerOrder {
		player, ok := game.Players[playerID]
		if !ok {
			continue
		}

		stats = append(stats, PlayerStats{
			PlayerID:   playerID,
			PlayerName: room.PlayerName(playerID),
			Money:      player.Money,
			Reputation: player.Reputation,
			FishCount:  len(player.FishList),
			GearCount:  len(player.GearList),
		})
	}

	return &GameSummary{
		RoomID:     room.ID,
		WinnerID:   winnerID,
		WinnerName: room.PlayerName(winnerID),
		Players:    stats,
		FinishedAt: finishedAt,
	}
}
