package entity

// PlayerProfile is a room member. PlayerID is the id of the member's connection.
type PlayerProfile struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
}
