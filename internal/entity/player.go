package entity

// Player identifies who owns a mark. NoPlayer doubles as the "unmarked" cell state.
type Player uint8

const (
	NoPlayer Player = iota
	PlayerFirst
	PlayerSecond
)

// Other returns the opponent of the player.
func (that Player) Other() Player {
	switch that {
	case PlayerFirst:
		return PlayerSecond
	case PlayerSecond:
		return PlayerFirst
	default:
		return NoPlayer
	}
}

// Symbol returns the glyph used to draw the player's mark.
func (that Player) Symbol() rune {
	switch that {
	case PlayerFirst:
		return 'O'
	case PlayerSecond:
		return 'X'
	default:
		return '.'
	}
}

func (that Player) String() string {
	switch that {
	case PlayerFirst:
		return "Circle"
	case PlayerSecond:
		return "Cross"
	default:
		return "Nobody"
	}
}
