package entity

// Collapse rewrites every decided board below the node into a resolved cell owned by its winner.
// Children are collapsed before their parent is checked. The node itself is never rewritten,
// and stalemated boards stay nested.
func (that *Node) Collapse() {
	if that.IsResolved() {
		return
	}

	for x := range that.grid {
		for y := range that.grid[x] {
			child := &that.grid[x][y]
			if child.IsResolved() {
				continue
			}

			child.Collapse()

			if winner := child.Winner(); winner != NoPlayer {
				*child = Node{owner: winner}
			}
		}
	}
}

// CountRemaining returns the number of empty leaves still reachable below the node.
func (that *Node) CountRemaining() int {
	if that.IsResolved() {
		if that.owner == NoPlayer {
			return 1
		}

		return 0
	}

	remaining := 0
	for x := range that.grid {
		for y := range that.grid[x] {
			remaining += that.grid[x][y].CountRemaining()
		}
	}

	return remaining
}
