package entity

import (
	"fmt"

	"github.com/rocketscienceinc/fractal-tictactoe/internal/apperror"
)

// Grid holds the nine children of a nested board, indexed [column][row].
type Grid [GridSize][GridSize]Node

// Node is either a resolved cell or a nested 3x3 board.
// A resolved node has a nil grid; its owner is NoPlayer while the cell is empty.
// Each nested node exclusively owns its grid.
type Node struct {
	owner Player
	grid  *Grid
}

// Build returns a nested board whose leaves all lie exactly depth levels below the root.
func Build(depth int) (*Node, error) {
	if depth < 1 {
		return nil, fmt.Errorf("%w: got %d", apperror.ErrInvalidDepth, depth)
	}

	root := newNested(depth)

	return &root, nil
}

func newNested(depth int) Node {
	grid := &Grid{}

	if depth > 1 {
		for x := range grid {
			for y := range grid[x] {
				grid[x][y] = newNested(depth - 1)
			}
		}
	}

	return Node{grid: grid}
}

func (that *Node) IsResolved() bool {
	return that.grid == nil
}

// Owner returns the mark of a resolved node, or NoPlayer for empty cells and nested boards.
func (that *Node) Owner() Player {
	if !that.IsResolved() {
		return NoPlayer
	}

	return that.owner
}

// Child returns the child at pos, or nil for resolved nodes and invalid positions.
func (that *Node) Child(pos Position) *Node {
	if that.IsResolved() || !pos.IsValid() {
		return nil
	}

	return &that.grid[pos.X][pos.Y]
}

// VisitChildren calls fn for each child of a nested board, column by column.
// It is meant for read-only traversal such as rendering; fn must not keep the child.
func (that *Node) VisitChildren(fn func(pos Position, child *Node)) {
	if that.IsResolved() {
		return
	}

	for x := range that.grid {
		for y := range that.grid[x] {
			fn(Position{X: uint8(x), Y: uint8(y)}, &that.grid[x][y])
		}
	}
}

// Clone returns a deep copy of the node that shares no storage with the original.
func (that *Node) Clone() *Node {
	clone := that.clone()
	return &clone
}

func (that *Node) clone() Node {
	if that.IsResolved() {
		return Node{owner: that.owner}
	}

	grid := &Grid{}
	for x := range that.grid {
		for y := range that.grid[x] {
			grid[x][y] = that.grid[x][y].clone()
		}
	}

	return Node{grid: grid}
}

// Place marks the empty leaf addressed by path for player.
// The whole path is checked before anything is written, so a failed call leaves the tree untouched.
func (that *Node) Place(path Path, player Player) error {
	leaf, err := that.locate(path)
	if err != nil {
		return err
	}

	leaf.owner = player

	return nil
}

func (that *Node) locate(path Path) (*Node, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("%w: path is empty", apperror.ErrInvalidPath)
	}

	node := that
	for i, pos := range path {
		if !pos.IsValid() {
			return nil, fmt.Errorf("%w: coordinate %s at step %d is out of range", apperror.ErrInvalidPath, pos, i)
		}

		if node.IsResolved() {
			return nil, fmt.Errorf("%w: board at step %d is already decided", apperror.ErrInvalidPath, i)
		}

		node = &node.grid[pos.X][pos.Y]
	}

	if !node.IsResolved() {
		return nil, fmt.Errorf("%w: path %s stops at a nested board", apperror.ErrInvalidPath, path)
	}

	if node.owner != NoPlayer {
		return nil, fmt.Errorf("%w: cell %s is already occupied", apperror.ErrInvalidPath, path)
	}

	return node, nil
}
