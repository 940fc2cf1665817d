package entity

import (
	"fmt"
	"strings"
)

const GridSize = 3

// Position addresses a child inside a 3x3 grid by column (X) and row (Y).
type Position struct {
	X uint8 `json:"x"`
	Y uint8 `json:"y"`
}

// Path is the ordered list of positions from the root board down to a leaf.
type Path []Position

func (that Position) IsValid() bool {
	return that.X < GridSize && that.Y < GridSize
}

func (that Position) String() string {
	return fmt.Sprintf("%d,%d", that.X, that.Y)
}

func (that Path) String() string {
	parts := make([]string, 0, len(that))
	for _, pos := range that {
		parts = append(parts, pos.String())
	}

	return strings.Join(parts, " ")
}
