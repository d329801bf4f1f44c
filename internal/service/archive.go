package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/fishing-backend/internal/entity"
)

const saveTimeout = 3 * time.Second

// ArchiveService stores finished games off the request path. Record never
// blocks: summaries that do not fit in the queue are dropped and logged.
type ArchiveService interface {
	Record(summary *entity.GameSummary)
	Run(ctx context.Context)

	Recent(ctx context.Context, limit int64) ([]*entity.GameSummary, error)
	Leaderboard(ctx context.Context, limit int64) ([]entity.LeaderboardEntry, error)
}

type summaryRepo interface {
	Save(ctx context.Context, summary *entity.GameSummary) error
	Recent(ctx context.Context, limit int64) ([]*entity.GameSummary, error)
	Leaderboard(ctx context.Context, limit int64) ([]entity.LeaderboardEntry, error)
}

type archiveService struct {
	logger      *slog.Logger
	summaryRepo summaryRepo
	queue       chan *entity.GameSummary
}

func NewArchiveService(logger *slog.Logger, summaryRepo summaryRepo, buffer int) ArchiveService {
	return &archiveService{
		logger:      logger.With("component", "archive"),
		summaryRepo: summaryRepo,
		queue:       make(chan *entity.GameSummary, buffer),
	}
}

func (that *archiveService) Record(summary *entity.GameSummary) {
	select {
	case that.queue <- summary:
	default:
		that.logger.Warn("archive queue is full, summary dropped", "roomID", summary.RoomID)
	}
}

// Run - saves queued summaries until ctx is done, then flushes what is left.
func (that *archiveService) Run(ctx context.Context) {
	for {
		select {
		case summary := <-that.queue:
			that.save(summary)
		case <-ctx.Done():
			that.flush()
			return
		}
	}
}

func (that *archiveService) Recent(ctx context.Context, limit int64) ([]*entity.GameSummary, error) {
	return that.summaryRepo.Recent(ctx, limit)
}

func (that *archiveService) Leaderboard(ctx context.Context, limit int64) ([]entity.LeaderboardEntry, error) {
	return that.summaryRepo.Leaderboard(ctx, limit)
}

func (that *archiveService) flush() {
	for {
		select {
		case summary := <-that.queue:
			that.save(summary)
		default:
			return
		}
	}
}

func (that *archiveService) save(summary *entity.GameSummary) {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	if err := that.summaryRepo.Save(ctx, summary); err != nil {
		that.logger.Error("failed to archive summary", "roomID", summary.RoomID, "error", err)
		return
	}

	that.logger.Debug("summary archived", "roomID", summary.RoomID, "winner", summary.WinnerName)
}
