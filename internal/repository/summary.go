package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/fishing-backend/internal/entity"
)

const (
	summariesKey   = "summaries"
	leaderboardKey = "leaderboard"
)

type SummaryRepository interface {
	Save(ctx context.Context, summary *entity.GameSummary) error
	Recent(ctx context.Context, limit int64) ([]*entity.GameSummary, error)
	Leaderboard(ctx context.Context, limit int64) ([]entity.LeaderboardEntry, error)
}

type dbSummary struct {
	client  *redis.Client
	history int64
}

// NewSummaryRepository - keeps the latest history summaries and a win count per player name.
func NewSummaryRepository(client *redis.Client, history int64) SummaryRepository {
	return &dbSummary{
		client:  client,
		history: history,
	}
}

func (that *dbSummary) Save(ctx context.Context, summary *entity.GameSummary) error {
	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("could not marshal summary: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, summariesKey, summaryJSON)
		pipe.LTrim(ctx, summariesKey, 0, that.history-1)
		pipe.ZIncrBy(ctx, leaderboardKey, 1, summary.WinnerName)

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save summary: %w", err)
	}

	return nil
}

// Recent - newest first.
func (that *dbSummary) Recent(ctx context.Context, limit int64) ([]*entity.GameSummary, error) {
	if limit <= 0 {
		return []*entity.GameSummary{}, nil
	}

	response, err := that.client.LRange(ctx, summariesKey, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get summaries: %w", err)
	}

	summaries := make([]*entity.GameSummary, 0, len(response))
	for _, item := range response {
		var summary entity.GameSummary
		if err = json.Unmarshal([]byte(item), &summary); err != nil {
			return nil, fmt.Errorf("failed to unmarshal summary: %w", err)
		}

		summaries = append(summaries, &summary)
	}

	return summaries, nil
}

func (that *dbSummary) Leaderboard(ctx context.Context, limit int64) ([]entity.LeaderboardEntry, error) {
	if limit <= 0 {
		return []entity.LeaderboardEntry{}, nil
	}

	response, err := that.client.ZRevRangeWithScores(ctx, leaderboardKey, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	entries := make([]entity.LeaderboardEntry, 0, len(response))
	for _, item := range response {
		name, ok := item.Member.(string)
		if !ok {
			continue
		}

		entries = append(entries, entity.LeaderboardEntry{PlayerName: name, Wins: int64(item.Score)})
	}

	return entries, nil
}
