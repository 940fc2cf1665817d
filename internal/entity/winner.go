package entity

// Marks is a 3x3 grid of effective marks, indexed [column][row].
type Marks [GridSize][GridSize]Player

// WinCombos lists every line that wins a grid: columns, rows, then both diagonals.
var WinCombos = [][3]Position{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{2, 0}, {1, 1}, {0, 2}},
}

// DetectWinner returns the player holding a complete line, or NoPlayer.
// Lines for PlayerFirst are checked before lines for PlayerSecond.
func DetectWinner(marks Marks) Player {
	for _, player := range [...]Player{PlayerFirst, PlayerSecond} {
		if holdsLine(marks, player) {
			return player
		}
	}

	return NoPlayer
}

func holdsLine(marks Marks, player Player) bool {
	for _, combo := range WinCombos {
		a, b, c := combo[0], combo[1], combo[2]
		if marks[a.X][a.Y] == player && marks[b.X][b.Y] == player && marks[c.X][c.Y] == player {
			return true
		}
	}

	return false
}

// DerivedGrid returns the effective mark of each child: the owner of a resolved
// child, or whoever has already won a nested one.
func (that *Node) DerivedGrid() Marks {
	var marks Marks

	that.VisitChildren(func(pos Position, child *Node) {
		marks[pos.X][pos.Y] = child.Winner()
	})

	return marks
}

// Winner reports who owns the node: the mark of a resolved node, or the winner of a nested board's derived grid.
func (that *Node) Winner() Player {
	if that.IsResolved() {
		return that.owner
	}

	return DetectWinner(that.DerivedGrid())
}

// IsStalemate reports whether every child of a nested board is terminal while nobody has won it.
// Resolved nodes are never stalemated.
func (that *Node) IsStalemate() bool {
	if that.IsResolved() {
		return false
	}

	for x := range that.grid {
		for y := range that.grid[x] {
			if !that.grid[x][y].isTerminal() {
				return false
			}
		}
	}

	return that.Winner() == NoPlayer
}

// isTerminal is true for occupied leaves and for nested boards that are won or stalemated.
func (that *Node) isTerminal() bool {
	if that.IsResolved() {
		return that.owner != NoPlayer
	}

	return that.Winner() != NoPlayer || that.IsStalemate()
}
