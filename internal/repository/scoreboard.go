package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/fractal-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/fractal-tictactoe/internal/entity"
)

const (
	fieldFirst     = "first"
	fieldSecond    = "second"
	fieldStalemate = "stalemate"
)

var ErrInvalidScore = errors.New("invalid score value")

// ScoreboardRepository keeps per-depth tallies of finished games.
type ScoreboardRepository interface {
	RecordOutcome(ctx context.Context, depth int, winner entity.Player) error
	GetByDepth(ctx context.Context, depth int) (*entity.Score, error)
	DeleteByDepth(ctx context.Context, depth int) error
}

type dbScoreboard struct {
	client *redis.Client
}

func NewScoreboardRepository(client *redis.Client) ScoreboardRepository {
	return &dbScoreboard{
		client: client,
	}
}

func scoreKey(depth int) string {
	return "scoreboard:" + strconv.Itoa(depth)
}

// RecordOutcome - counts one finished game; NoPlayer as winner records a stalemate.
func (that *dbScoreboard) RecordOutcome(ctx context.Context, depth int, winner entity.Player) error {
	if depth < 1 {
		return fmt.Errorf("%w: got %d", apperror.ErrInvalidDepth, depth)
	}

	field := fieldStalemate
	switch winner {
	case entity.PlayerFirst:
		field = fieldFirst
	case entity.PlayerSecond:
		field = fieldSecond
	case entity.NoPlayer:
	}

	if err := that.client.HIncrBy(ctx, scoreKey(depth), field, 1).Err(); err != nil {
		return fmt.Errorf("failed to record outcome: %w", err)
	}

	return nil
}

func (that *dbScoreboard) GetByDepth(ctx context.Context, depth int) (*entity.Score, error) {
	if depth < 1 {
		return nil, fmt.Errorf("%w: got %d", apperror.ErrInvalidDepth, depth)
	}

	values, err := that.client.HGetAll(ctx, scoreKey(depth)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get score by depth: %w", err)
	}

	score := &entity.Score{Depth: depth}
	targets := map[string]*int64{
		fieldFirst:     &score.FirstWins,
		fieldSecond:    &score.SecondWins,
		fieldStalemate: &score.Stalemates,
	}

	for field, target := range targets {
		raw, ok := values[field]
		if !ok {
			continue
		}

		if *target, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return nil, fmt.Errorf("%w: field %s: %w", ErrInvalidScore, field, err)
		}
	}

	return score, nil
}

func (that *dbScoreboard) DeleteByDepth(ctx context.Context, depth int) error {
	if depth < 1 {
		return fmt.Errorf("%w: got %d", apperror.ErrInvalidDepth, depth)
	}

	if err := that.client.Del(ctx, scoreKey(depth)).Err(); err != nil {
		return fmt.Errorf("failed to delete score by depth: %w", err)
	}

	return nil
}
