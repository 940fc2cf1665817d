package entity

// Score is the running tally of finished games played at one depth.
type Score struct {
	Depth      int   `json:"depth"`
	FirstWins  int64 `json:"first_wins"`
	SecondWins int64 `json:"second_wins"`
	Stalemates int64 `json:"stalemates"`
}

func (that *Score) Total() int64 {
	return that.FirstWins + that.SecondWins + that.Stalemates
}
