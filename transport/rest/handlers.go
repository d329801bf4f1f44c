package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/rocketscienceinc/fishing-backend/internal/entity"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

type Handlers interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)

	RoomsHandler(w http.ResponseWriter, _ *http.Request)
	SummariesHandler(w http.ResponseWriter, r *http.Request)
	LeaderboardHandler(w http.ResponseWriter, r *http.Request)
}

type roomLister interface {
	OpenRooms() []entity.RoomListing
}

type archive interface {
	Recent(ctx context.Context, limit int64) ([]*entity.GameSummary, error)
	Leaderboard(ctx context.Context, limit int64) ([]entity.LeaderboardEntry, error)
}

type handlers struct {
	logger  *slog.Logger
	rooms   roomLister
	archive archive
}

// NewHandlers - archive may be nil, then the archive endpoints answer 503.
func NewHandlers(logger *slog.Logger, rooms roomLister, archive archive) Handlers {
	return &handlers{
		logger:  logger.With("component", "rest"),
		rooms:   rooms,
		archive: archive,
	}
}

func (that *handlers) RoomsHandler(w http.ResponseWriter, _ *http.Request) {
	that.writeJSON(w, http.StatusOK, that.rooms.OpenRooms())
}

func (that *handlers) SummariesHandler(w http.ResponseWriter, r *http.Request) {
	if that.archive == nil {
		http.Error(w, "archive is disabled", http.StatusServiceUnavailable)
		return
	}

	summaries, err := that.archive.Recent(r.Context(), parseLimit(r))
	if err != nil {
		that.logger.Error("failed to get summaries", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)

		return
	}

	that.writeJSON(w, http.StatusOK, summaries)
}

func (that *handlers) LeaderboardHandler(w http.ResponseWriter, r *http.Request) {
	if that.archive == nil {
		http.Error(w, "archive is disabled", http.StatusServiceUnavailable)
		return
	}

	entries, err := that.archive.Leaderboard(r.Context(), parseLimit(r))
	if err != nil {
		that.logger.Error("failed to get leaderboard", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)

		return
	}

	that.writeJSON(w, http.StatusOK, entries)
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}

// parseLimit reads ?limit=, clamped to [1, maxLimit].
func parseLimit(r *http.Request) int64 {
	limit, err := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	if err != nil || limit <= 0 {
		return defaultLimit
	}

	return min(limit, maxLimit)
}
