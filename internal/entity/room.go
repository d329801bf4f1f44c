package entity

type RoomStatus string

const (
	RoomOpen       RoomStatus = "open"
	RoomInProgress RoomStatus = "inProgress"
)

const (
	MinPlayers = 2
	MaxPlayers = 8
)

// Room is a named session. Profiles keep join order, which becomes the turn
// order when a game starts.
type Room struct {
	ID       string          `json:"roomId"`
	Status   RoomStatus      `json:"status"`
	Profiles []PlayerProfile `json:"playerProfiles"`
	Game     *Game           `json:"-"`
}

// RoomListing is the public summary of a room, used by the HTTP surface.
type RoomListing struct {
	ID          string     `json:"roomId"`
	Status      RoomStatus `json:"status"`
	PlayerCount int        `json:"playerCount"`
}

func NewRoom(id string) *Room {
	return &Room{
		ID:       id,
		Status:   RoomOpen,
		Profiles: []PlayerProfile{},
	}
}

func (that *Room) IsOpen() bool {
	return that.Status == RoomOpen
}

func (that *Room) IsInProgress() bool {
	return that.Status == RoomInProgress
}

func (that *Room) IsEmpty() bool {
	return len(that.Profiles) == 0
}

func (that *Room) HasPlayer(playerID string) bool {
	_, ok := that.Profile(playerID)
	return ok
}

func (that *Room) Profile(playerID string) (PlayerProfile, bool) {
	for _, profile := range that.Profiles {
		if profile.PlayerID == playerID {
			return profile, true
		}
	}

	return PlayerProfile{}, false
}

func (that *Room) AddProfile(profile PlayerProfile) {
	that.Profiles = append(that.Profiles, profile)
}

// RemoveProfile drops the player's profile and reports whether it existed.
func (that *Room) RemoveProfile(playerID string) bool {
	for idx, profile := range that.Profiles {
		if profile.PlayerID == playerID {
			that.Profiles = append(that.Profiles[:idx], that.Profiles[idx+1:]...)
			return true
		}
	}

	return false
}

// PlayerIDs returns the member ids in join order.
func (that *Room) PlayerIDs() []string {
	ids := make([]string, 0, len(that.Profiles))
	for _, profile := range that.Profiles {
		ids = append(ids, profile.PlayerID)
	}

	return ids
}

func (that *Room) PlayerName(playerID string) string {
	profile, _ := that.Profile(playerID)
	return profile.PlayerName
}

// Snapshot returns a copy that is safe to encode after the lock is released.
func (that *Room) Snapshot() *Room {
	return &Room{
		ID:       that.ID,
		Status:   that.Status,
		Profiles: append([]PlayerProfile{}, that.Profiles...),
	}
}

func (that *Room) Listing() RoomListing {
	return RoomListing{
		ID:          that.ID,
		Status:      that.Status,
		PlayerCount: len(that.Profiles),
	}
}
