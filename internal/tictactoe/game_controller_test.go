package tictactoe

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/fractal-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/fractal-tictactoe/internal/entity"
)

func at(coords ...uint8) entity.Path {
	path := make(entity.Path, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		path = append(path, entity.Position{X: coords[i], Y: coords[i+1]})
	}

	return path
}

func playMoves(t *testing.T, game *Game, paths ...entity.Path) Status {
	t.Helper()

	var status Status
	for i, path := range paths {
		var err error
		status, err = game.MakeTurn(path)
		require.NoError(t, err, "move %d (%s)", i, path)
	}

	return status
}

func TestNewGame(t *testing.T) {
	t.Run("Starts an ongoing game with First to move", func(t *testing.T) {
		// When: a depth 2 game is created
		game, err := NewGame(2)
		require.NoError(t, err)

		// Then: the game state is the initial one
		assert.Equal(t, 2, game.Depth())
		assert.Equal(t, entity.PlayerFirst, game.Turn())
		assert.Equal(t, Ongoing(), game.Status())
		assert.Zero(t, game.Moves())
		assert.Equal(t, 81, game.RemainingMoves())
	})

	t.Run("Returns ErrInvalidDepth for depth 0", func(t *testing.T) {
		game, err := NewGame(0)

		require.ErrorIs(t, err, apperror.ErrInvalidDepth)
		assert.Nil(t, game)
	})
}

func TestGame_Restart(t *testing.T) {
	t.Run("Replaces the board and resets counters", func(t *testing.T) {
		// Given: a game with moves played
		game, err := NewGame(1)
		require.NoError(t, err)
		playMoves(t, game, at(0, 0), at(1, 1))
		oldBoard := game.Board()

		// When: restarting at depth 3
		err = game.Restart(3)
		require.NoError(t, err)

		// Then: the game starts over on a new board
		assert.NotSame(t, oldBoard, game.Board())
		assert.Equal(t, 3, game.Depth())
		assert.Equal(t, entity.PlayerFirst, game.Turn())
		assert.Equal(t, Ongoing(), game.Status())
		assert.Zero(t, game.Moves())
		assert.Equal(t, 729, game.RemainingMoves())
	})

	t.Run("Invalid depth leaves the game unchanged", func(t *testing.T) {
		// Given: a game with one move played
		game, err := NewGame(2)
		require.NoError(t, err)
		playMoves(t, game, at(1, 1, 1, 1))
		before := *game
		boardBefore := game.Board().Clone()

		// When: restarting at depth 0
		err = game.Restart(0)

		// Then: ErrInvalidDepth is returned and nothing changes
		require.ErrorIs(t, err, apperror.ErrInvalidDepth)
		assert.Equal(t, before, *game)
		assert.Equal(t, boardBefore, game.Board())
	})
}

func TestGame_MakeTurn(t *testing.T) {
	t.Run("MakeTurn", func(t *testing.T) {
		// Given: a new depth 1 game
		game, err := NewGame(1)
		require.NoError(t, err)

		// When: First plays the centre
		status, err := game.MakeTurn(at(1, 1))
		require.NoError(t, err)

		// Then: the cell is marked and the turn passes to Second
		assert.Equal(t, Ongoing(), status)
		assert.Equal(t, entity.PlayerFirst, game.Board().Child(entity.Position{X: 1, Y: 1}).Owner())
		assert.Equal(t, entity.PlayerSecond, game.Turn())
		assert.Equal(t, 1, game.Moves())
		assert.Equal(t, 8, game.RemainingMoves())
	})

	t.Run("First wins column 0 at depth 1", func(t *testing.T) {
		// Given: a new depth 1 game
		game, err := NewGame(1)
		require.NoError(t, err)

		// When: First completes column x=0
		status := playMoves(t, game, at(0, 0), at(1, 1), at(0, 1), at(1, 0), at(0, 2))

		// Then: First has won and the counters reflect five plain moves
		assert.Equal(t, Won(entity.PlayerFirst), status)
		assert.Equal(t, status, game.Status())
		assert.Equal(t, 5, game.Moves())
		assert.Equal(t, 4, game.RemainingMoves())
		assert.Equal(t, entity.PlayerSecond, game.Turn())
	})

	t.Run("Full board without a line is a stalemate", func(t *testing.T) {
		// Given: a new depth 1 game
		game, err := NewGame(1)
		require.NoError(t, err)

		// When: the players fill the board in a drawn pattern
		//   O X O
		//   O X X
		//   X O O
		status := playMoves(t, game,
			at(0, 0), at(1, 0),
			at(2, 0), at(1, 1),
			at(0, 1), at(2, 1),
			at(1, 2), at(0, 2),
			at(2, 2),
		)

		// Then: the game ends in a stalemate
		assert.Equal(t, Stalemate(), status)
		assert.Zero(t, game.RemainingMoves())
		assert.Equal(t, 9, game.Moves())
	})

	t.Run("Error on cell already occupied", func(t *testing.T) {
		// Given: First has played (0,0)
		game, err := NewGame(1)
		require.NoError(t, err)
		playMoves(t, game, at(0, 0))
		before := *game
		boardBefore := game.Board().Clone()

		// When: Second plays the same cell
		_, err = game.MakeTurn(at(0, 0))

		// Then: ErrInvalidPath is returned and nothing changes
		require.ErrorIs(t, err, apperror.ErrInvalidPath)
		assert.Equal(t, before, *game)
		assert.Equal(t, boardBefore, game.Board())
		assert.Equal(t, entity.PlayerSecond, game.Turn())
	})

	invalidPaths := []struct {
		name string
		path entity.Path
	}{
		{name: "Path too short", path: at(0, 0)},
		{name: "Path too long", path: at(0, 0, 0, 0, 0, 0)},
		{name: "Coordinate out of range", path: at(0, 3, 0, 0)},
		{name: "Decided sub-board", path: at(0, 0, 2, 2)},
		{name: "Nil path", path: nil},
	}

	for _, tt := range invalidPaths {
		t.Run("Error on invalid path: "+tt.name, func(t *testing.T) {
			// Given: a depth 2 game where sub-board (0,0) is won by First
			game, err := NewGame(2)
			require.NoError(t, err)
			playMoves(t, game,
				at(0, 0, 0, 0), at(2, 2, 0, 0),
				at(0, 0, 0, 1), at(2, 2, 0, 1),
				at(0, 0, 0, 2),
			)
			require.True(t, game.Board().Child(entity.Position{}).IsResolved())
			before := *game
			boardBefore := game.Board().Clone()

			// When: Second plays the invalid path
			_, err = game.MakeTurn(tt.path)

			// Then: ErrInvalidPath is returned and nothing changes
			require.ErrorIs(t, err, apperror.ErrInvalidPath)
			assert.Equal(t, before, *game)
			assert.Equal(t, boardBefore, game.Board())
		})
	}

	t.Run("Error on move into a stalemated sub-board", func(t *testing.T) {
		// Given: sub-board (1,1) filled as O X O / O X X / X O O with no line
		game, err := NewGame(2)
		require.NoError(t, err)
		status := playMoves(t, game,
			at(1, 1, 0, 0), at(1, 1, 1, 0),
			at(1, 1, 2, 0), at(1, 1, 1, 1),
			at(1, 1, 0, 1), at(1, 1, 2, 1),
			at(1, 1, 1, 2), at(1, 1, 0, 2),
			at(1, 1, 2, 2),
		)

		sub := game.Board().Child(entity.Position{X: 1, Y: 1})
		require.True(t, sub.IsStalemate())
		require.False(t, sub.IsResolved())
		assert.Equal(t, Ongoing(), status)
		assert.Equal(t, 72, game.RemainingMoves())

		before := *game
		boardBefore := game.Board().Clone()

		// When: Second plays into the drawn sub-board
		status, err = game.MakeTurn(at(1, 1, 0, 0))

		// Then: ErrInvalidPath is returned, nothing changes and the game goes on
		require.ErrorIs(t, err, apperror.ErrInvalidPath)
		assert.Equal(t, Ongoing(), status)
		assert.Equal(t, before, *game)
		assert.Equal(t, boardBefore, game.Board())
		assert.Equal(t, entity.PlayerSecond, game.Turn())
	})

	t.Run("Move after game finished", func(t *testing.T) {
		// Given: a depth 1 game First has won
		game, err := NewGame(1)
		require.NoError(t, err)
		playMoves(t, game, at(0, 0), at(1, 1), at(0, 1), at(1, 0), at(0, 2))
		before := *game

		// When: Second tries another move
		status, err := game.MakeTurn(at(2, 2))

		// Then: ErrGameFinished is returned and nothing changes
		require.ErrorIs(t, err, apperror.ErrGameFinished)
		assert.Equal(t, Won(entity.PlayerFirst), status)
		assert.Equal(t, before, *game)
	})

	t.Run("Move after stalemate", func(t *testing.T) {
		game, err := NewGame(1)
		require.NoError(t, err)
		playMoves(t, game,
			at(0, 0), at(1, 0), at(2, 0), at(1, 1), at(0, 1),
			at(2, 1), at(1, 2), at(0, 2), at(2, 2),
		)

		_, err = game.MakeTurn(at(0, 0))

		assert.ErrorIs(t, err, apperror.ErrGameFinished)
	})

	t.Run("Collapse at depth 2 absorbs the empty cells of the sub-board", func(t *testing.T) {
		// Given: a depth 2 game where First is one move from winning sub-board (0,0)
		game, err := NewGame(2)
		require.NoError(t, err)
		playMoves(t, game,
			at(0, 0, 0, 0), at(1, 1, 1, 1),
			at(0, 0, 0, 1), at(1, 1, 2, 2),
		)
		require.Equal(t, 77, game.RemainingMoves())

		// When: First completes column 0 of the sub-board
		status, err := game.MakeTurn(at(0, 0, 0, 2))
		require.NoError(t, err)

		// Then: the sub-board is a resolved cell and its six empty cells are gone with the move
		sub := game.Board().Child(entity.Position{X: 0, Y: 0})
		assert.True(t, sub.IsResolved())
		assert.Equal(t, entity.PlayerFirst, sub.Owner())
		assert.Equal(t, Ongoing(), status)
		assert.Equal(t, 77-1-6, game.RemainingMoves())
		assert.Equal(t, 5, game.Moves())
	})

	t.Run("Winning three sub-boards wins the game", func(t *testing.T) {
		// Given: a new depth 2 game
		game, err := NewGame(2)
		require.NoError(t, err)

		// When: First wins sub-boards (0,0), (0,1) and (0,2) while Second scatters marks elsewhere
		var moves []entity.Path
		second := []entity.Path{
			at(1, 0, 1, 1), at(1, 1, 1, 1), at(1, 2, 1, 1),
			at(2, 0, 1, 1), at(2, 1, 1, 1), at(2, 2, 1, 1),
			at(1, 0, 0, 0), at(1, 1, 0, 0),
		}
		for board := uint8(0); board < 3; board++ {
			for cell := uint8(0); cell < 3; cell++ {
				moves = append(moves, at(0, board, 0, cell))
				if next := len(moves) / 2; next < len(second) && len(moves)%2 == 1 {
					moves = append(moves, second[next])
				}
			}
		}
		status := playMoves(t, game, moves...)

		// Then: First wins the whole game
		assert.Equal(t, Won(entity.PlayerFirst), status)
		assert.True(t, game.Status().IsOver())
	})
}

type resolvedCell struct {
	path  entity.Path
	owner entity.Player
}

// resolvedCells lists every reachable resolved node with its owner.
func resolvedCells(node *entity.Node, prefix entity.Path, out *[]resolvedCell) {
	node.VisitChildren(func(pos entity.Position, child *entity.Node) {
		path := append(append(entity.Path{}, prefix...), pos)
		if child.IsResolved() {
			*out = append(*out, resolvedCell{path: path, owner: child.Owner()})
			return
		}
		resolvedCells(child, path, out)
	})
}

// lookup walks path from root. It reports false when an ancestor on the path is already resolved.
func lookup(root *entity.Node, path entity.Path) (*entity.Node, bool) {
	node := root
	for _, pos := range path {
		if node.IsResolved() {
			return nil, false
		}
		node = node.Child(pos)
	}

	return node, true
}

// absorbedCells counts the empty cells, other than the played leaf, inside
// sub-boards that were nested before the move and resolved after it.
func absorbedCells(before, after *entity.Node, path entity.Path) int {
	absorbed := 0
	before.VisitChildren(func(pos entity.Position, was *entity.Node) {
		now := after.Child(pos)
		onPath := len(path) > 0 && path[0] == pos

		switch {
		case was.IsResolved():
		case now.IsResolved():
			absorbed += was.CountRemaining()
			if onPath {
				absorbed--
			}
		case onPath:
			absorbed += absorbedCells(was, now, path[1:])
		default:
			absorbed += absorbedCells(was, now, nil)
		}
	})

	return absorbed
}

func hasLine(marks entity.Marks, player entity.Player) bool {
	for _, combo := range entity.WinCombos {
		held := 0
		for _, pos := range combo {
			if marks[pos.X][pos.Y] == player {
				held++
			}
		}
		if held == len(combo) {
			return true
		}
	}

	return false
}

func emptyLeaves(node *entity.Node, prefix entity.Path, out *[]entity.Path) {
	node.VisitChildren(func(pos entity.Position, child *entity.Node) {
		path := append(append(entity.Path{}, prefix...), pos)
		if child.IsResolved() {
			if child.Owner() == entity.NoPlayer {
				*out = append(*out, path)
			}
			return
		}
		emptyLeaves(child, path, out)
	})
}

func TestGame_RandomPlaythroughs(t *testing.T) {
	for _, depth := range []int{1, 2, 3} {
		for seed := int64(1); seed <= 5; seed++ {
			rnd := rand.New(rand.NewSource(seed)) //nolint: gosec // deterministic test data

			game, err := NewGame(depth)
			require.NoError(t, err)

			for game.Status().IsOngoing() {
				var candidates []entity.Path
				emptyLeaves(game.Board(), nil, &candidates)
				require.NotEmpty(t, candidates, "ongoing game without free cells")

				path := candidates[rnd.Intn(len(candidates))]

				before := game.Board().Clone()
				var resolvedBefore []resolvedCell
				resolvedCells(before, nil, &resolvedBefore)
				remainingBefore := game.RemainingMoves()

				_, err = game.MakeTurn(path)
				require.NoError(t, err)

				// remaining moves drop by one plus every empty cell absorbed by a collapse
				absorbed := absorbedCells(before, game.Board(), path)
				assert.GreaterOrEqual(t, remainingBefore-game.RemainingMoves(), 1)
				assert.Equal(t, remainingBefore-1-absorbed, game.RemainingMoves())

				// resolved nodes never reopen and marks never change
				for _, cell := range resolvedBefore {
					node, ok := lookup(game.Board(), cell.path)
					if !ok {
						continue // swallowed by a collapsed ancestor
					}
					require.True(t, node.IsResolved(), "cell %s reopened", cell.path)
					if cell.owner != entity.NoPlayer {
						assert.Equal(t, cell.owner, node.Owner(), "cell %s", cell.path)
					}
				}

				// at most one player holds a line on the root
				marks := game.Board().DerivedGrid()
				assert.False(t, hasLine(marks, entity.PlayerFirst) && hasLine(marks, entity.PlayerSecond))

				// collapsing again changes nothing
				again := game.Board().Clone()
				again.Collapse()
				assert.Equal(t, game.Board(), again)
			}

			assert.True(t, game.Status().IsOver(), "depth %d seed %d", depth, seed)
		}
	}
}
