package console

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/fractal-tictactoe/internal/entity"
)

var ErrMalformedCoordinate = errors.New("coordinate must look like x,y")

// ParsePath reads one "x,y" token per board level, outermost first.
// Range checks are left to the game; only the token shape is checked here.
func ParsePath(tokens []string) (entity.Path, error) {
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: no coordinates given", ErrMalformedCoordinate)
	}

	path := make(entity.Path, 0, len(tokens))
	for _, token := range tokens {
		pos, err := parsePosition(token)
		if err != nil {
			return nil, err
		}

		path = append(path, pos)
	}

	return path, nil
}

func parsePosition(token string) (entity.Position, error) {
	rawX, rawY, ok := strings.Cut(token, ",")
	if !ok {
		return entity.Position{}, fmt.Errorf("%w: %q", ErrMalformedCoordinate, token)
	}

	x, err := strconv.ParseUint(strings.TrimSpace(rawX), 10, 8)
	if err != nil {
		return entity.Position{}, fmt.Errorf("%w: %q: %w", ErrMalformedCoordinate, token, err)
	}

	y, err := strconv.ParseUint(strings.TrimSpace(rawY), 10, 8)
	if err != nil {
		return entity.Position{}, fmt.Errorf("%w: %q: %w", ErrMalformedCoordinate, token, err)
	}

	return entity.Position{X: uint8(x), Y: uint8(y)}, nil //nolint: gosec // parsed with bitSize 8
}
