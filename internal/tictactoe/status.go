package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/fractal-tictactoe/internal/entity"
)

type State string

const (
	StateOngoing   State = "ongoing"
	StateWon       State = "won"
	StateStalemate State = "stalemate"
)

// Status is the game-level state; Winner is set only when State is StateWon.
type Status struct {
	State  State         `json:"state"`
	Winner entity.Player `json:"winner,omitempty"`
}

func Ongoing() Status {
	return Status{State: StateOngoing}
}

func Won(winner entity.Player) Status {
	return Status{State: StateWon, Winner: winner}
}

func Stalemate() Status {
	return Status{State: StateStalemate}
}

func (that Status) IsOngoing() bool {
	return that.State == StateOngoing
}

func (that Status) IsOver() bool {
	return that.State == StateWon || that.State == StateStalemate
}

func (that Status) String() string {
	switch that.State {
	case StateWon:
		return fmt.Sprintf("%s won the game!", that.Winner)
	case StateStalemate:
		return "A stalemate has occurred, nobody wins"
	default:
		return string(that.State)
	}
}
