package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/fractal-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/fractal-tictactoe/internal/entity"
)

// Game owns one board tree and the turn, counters and status played on it.
// It is not safe for concurrent use; callers serialize access.
type Game struct {
	depth     int
	board     *entity.Node
	turn      entity.Player
	status    Status
	moves     int
	remaining int
}

func NewGame(depth int) (*Game, error) {
	game := &Game{}
	if err := game.Restart(depth); err != nil {
		return nil, err
	}

	return game, nil
}

// Restart replaces the board with a fresh one of the given depth and resets turn, counters and status.
// On error the game is left as it was.
func (that *Game) Restart(depth int) error {
	board, err := entity.Build(depth)
	if err != nil {
		return fmt.Errorf("failed to build board: %w", err)
	}

	that.depth = depth
	that.board = board
	that.turn = entity.PlayerFirst
	that.status = Ongoing()
	that.moves = 0
	that.remaining = board.CountRemaining()

	return nil
}

// MakeTurn places the current player's mark on the leaf addressed by path.
func (that *Game) MakeTurn(path entity.Path) (Status, error) {
	if that.status.IsOver() {
		return that.status, apperror.ErrGameFinished
	}

	if err := that.validateMove(path); err != nil {
		return that.status, fmt.Errorf("invalid turn: %w", err)
	}

	if err := that.board.Place(path, that.turn); err != nil {
		return that.status, fmt.Errorf("invalid turn: %w", err)
	}

	that.board.Collapse()
	that.updateGameStatus()

	// the turn flips even when the move ends the game
	that.turn = that.turn.Other()
	that.moves++
	that.remaining = that.board.CountRemaining()

	return that.status, nil
}

// validateMove - checks the path shape before the board is touched.
func (that *Game) validateMove(path entity.Path) error {
	if len(path) != that.depth {
		return fmt.Errorf("%w: expected %d coordinates, got %d", apperror.ErrInvalidPath, that.depth, len(path))
	}

	for i, pos := range path {
		if !pos.IsValid() {
			return fmt.Errorf("%w: coordinate %s at step %d is out of range", apperror.ErrInvalidPath, pos, i)
		}
	}

	return nil
}

// updateGameStatus - checks the root board after a move.
func (that *Game) updateGameStatus() {
	switch winner := that.board.Winner(); {
	case winner != entity.NoPlayer:
		that.status = Won(winner)
	case that.board.IsStalemate():
		that.status = Stalemate()
	default:
		that.status = Ongoing()
	}
}

func (that *Game) Depth() int {
	return that.depth
}

func (that *Game) Turn() entity.Player {
	return that.turn
}

func (that *Game) Status() Status {
	return that.status
}

func (that *Game) Moves() int {
	return that.moves
}

func (that *Game) RemainingMoves() int {
	return that.remaining
}

// Board returns the root of the board tree for read-only traversal.
func (that *Game) Board() *entity.Node {
	return that.board
}
