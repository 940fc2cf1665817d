package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/fractal-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/fractal-tictactoe/internal/entity"
	"github.com/rocketscienceinc/fractal-tictactoe/internal/tictactoe"
)

var ErrScoreboardDisabled = errors.New("scoreboard is disabled")

type scoreboardRepo interface {
	RecordOutcome(ctx context.Context, depth int, winner entity.Player) error
	GetByDepth(ctx context.Context, depth int) (*entity.Score, error)
	DeleteByDepth(ctx context.Context, depth int) error
}

// Snapshot is the session panel: everything a front-end shows besides the board.
type Snapshot struct {
	GameID    string           `json:"game_id"`
	Depth     int              `json:"depth"`
	Turn      entity.Player    `json:"turn"`
	Status    tictactoe.Status `json:"status"`
	Moves     int              `json:"moves"`
	Remaining int              `json:"remaining"`
}

// GameManager serializes access to a single game and reports finished games to the scoreboard.
type GameManager struct {
	logger     *slog.Logger
	scoreboard scoreboardRepo

	maxDepth int

	mu     sync.Mutex
	gameID string
	game   *tictactoe.Game
}

// NewGameManager - starts a game at depth; no game may go deeper than maxDepth.
// A nil scoreboard disables outcome recording.
func NewGameManager(logger *slog.Logger, scoreboard scoreboardRepo, depth, maxDepth int) (*GameManager, error) {
	if err := checkDepthLimit(depth, maxDepth); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	game, err := tictactoe.NewGame(depth)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	manager := &GameManager{
		logger:     logger,
		scoreboard: scoreboard,
		maxDepth:   maxDepth,
		gameID:     uuid.NewString(),
		game:       game,
	}

	logger.Info("game started", "game_id", manager.gameID, "depth", depth)

	return manager, nil
}

func (that *GameManager) MakeTurn(ctx context.Context, path entity.Path) (Snapshot, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	log := that.logger.With("method", "MakeTurn", "game_id", that.gameID)

	player := that.game.Turn()

	status, err := that.game.MakeTurn(path)
	if err != nil {
		log.Debug("move rejected", "path", path.String(), "error", err)
		return that.snapshot(), fmt.Errorf("failed make turn: %w", err)
	}

	log.Debug("move accepted", "player", player.String(), "path", path.String())

	if status.IsOver() {
		log.Info("game finished", "state", status.State, "winner", status.Winner.String(), "moves", that.game.Moves())
		that.recordOutcome(ctx, status)
	}

	return that.snapshot(), nil
}

// NewGame - discards the current game and starts a fresh one at depth.
func (that *GameManager) NewGame(depth int) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.restart(depth)
}

func (that *GameManager) Reset() error {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.restart(that.game.Depth())
}

func (that *GameManager) AddLayer() error {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.restart(that.game.Depth() + 1)
}

func (that *GameManager) RemoveLayer() error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.game.Depth() <= 1 {
		return fmt.Errorf("%w: cannot remove the last layer", apperror.ErrInvalidDepth)
	}

	return that.restart(that.game.Depth() - 1)
}

func (that *GameManager) Snapshot() Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.snapshot()
}

// Board returns a copy of the current board tree together with its depth.
func (that *GameManager) Board() (*entity.Node, int) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.game.Board().Clone(), that.game.Depth()
}

// Score - returns the tally of finished games at the current depth.
func (that *GameManager) Score(ctx context.Context) (*entity.Score, error) {
	if that.scoreboard == nil {
		return nil, ErrScoreboardDisabled
	}

	depth := that.Snapshot().Depth

	score, err := that.scoreboard.GetByDepth(ctx, depth)
	if err != nil {
		return nil, fmt.Errorf("failed to get score: %w", err)
	}

	return score, nil
}

// ResetScore - clears the tally of finished games at the current depth.
func (that *GameManager) ResetScore(ctx context.Context) error {
	if that.scoreboard == nil {
		return ErrScoreboardDisabled
	}

	depth := that.Snapshot().Depth

	if err := that.scoreboard.DeleteByDepth(ctx, depth); err != nil {
		return fmt.Errorf("failed to reset score: %w", err)
	}

	that.logger.Info("score reset", "depth", depth)

	return nil
}

func (that *GameManager) restart(depth int) error {
	if err := checkDepthLimit(depth, that.maxDepth); err != nil {
		return fmt.Errorf("failed restart game: %w", err)
	}

	if err := that.game.Restart(depth); err != nil {
		return fmt.Errorf("failed restart game: %w", err)
	}

	that.gameID = uuid.NewString()
	that.logger.Info("game started", "game_id", that.gameID, "depth", depth)

	return nil
}

func (that *GameManager) snapshot() Snapshot {
	return Snapshot{
		GameID:    that.gameID,
		Depth:     that.game.Depth(),
		Turn:      that.game.Turn(),
		Status:    that.game.Status(),
		Moves:     that.game.Moves(),
		Remaining: that.game.RemainingMoves(),
	}
}

func (that *GameManager) recordOutcome(ctx context.Context, status tictactoe.Status) {
	if that.scoreboard == nil {
		return
	}

	log := that.logger.With("method", "recordOutcome", "game_id", that.gameID)

	if err := that.scoreboard.RecordOutcome(ctx, that.game.Depth(), status.Winner); err != nil {
		log.Error("failed to record outcome", "error", err)
	}
}

func checkDepthLimit(depth, maxDepth int) error {
	if depth > maxDepth {
		return fmt.Errorf("%w: %d exceeds the maximum of %d", apperror.ErrInvalidDepth, depth, maxDepth)
	}

	return nil
}
