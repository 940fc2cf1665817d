package console

import (
	"strings"

	"github.com/rocketscienceinc/fractal-tictactoe/internal/entity"
)

// Render draws a board of the given depth as a square of 3^depth cells per side.
// A collapsed sub-board fills its whole block with the winner's symbol.
func Render(board *entity.Node, depth int) string {
	side := 1
	for range depth {
		side *= entity.GridSize
	}

	cells := make([][]rune, side)
	for x := range cells {
		cells[x] = make([]rune, side)
	}

	paint(cells, board, 0, 0, side)

	var sb strings.Builder
	for y := range side {
		if y > 0 && boundaryLevel(y, side) > 0 {
			sb.WriteByte('\n')
		}

		for x := range side {
			if x > 0 {
				sb.WriteString(strings.Repeat(" ", boundaryLevel(x, side)))
			}

			sb.WriteRune(cells[x][y])
		}

		sb.WriteByte('\n')
	}

	return sb.String()
}

// paint - fills the size x size block at (left, top) with node's content.
func paint(cells [][]rune, node *entity.Node, left, top, size int) {
	if node.IsResolved() {
		symbol := node.Owner().Symbol()
		for x := left; x < left+size; x++ {
			for y := top; y < top+size; y++ {
				cells[x][y] = symbol
			}
		}

		return
	}

	step := size / entity.GridSize
	node.VisitChildren(func(pos entity.Position, child *entity.Node) {
		paint(cells, child, left+int(pos.X)*step, top+int(pos.Y)*step, step)
	})
}

// boundaryLevel - how many nested block edges meet at index i.
func boundaryLevel(i, side int) int {
	level := 0
	for span := entity.GridSize; span < side && i%span == 0; span *= entity.GridSize {
		level++
	}

	return level
}
