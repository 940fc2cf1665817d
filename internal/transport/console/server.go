package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/fractal-tictactoe/internal/entity"
	"github.com/rocketscienceinc/fractal-tictactoe/internal/usecase"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrMissingArgs    = errors.New("missing arguments")

	errQuit = errors.New("quit")
)

const prompt = "> "

type gameManager interface {
	MakeTurn(ctx context.Context, path entity.Path) (usecase.Snapshot, error)
	NewGame(depth int) error
	Reset() error
	AddLayer() error
	RemoveLayer() error
	Snapshot() usecase.Snapshot
	Board() (*entity.Node, int)
	Score(ctx context.Context) (*entity.Score, error)
	ResetScore(ctx context.Context) error
}

type handler func(ctx context.Context, args []string) error

// Server plays the game over a line-oriented text stream.
type Server struct {
	logger   *slog.Logger
	manager  gameManager
	in       io.Reader
	out      io.Writer
	handlers map[string]handler
}

func New(logger *slog.Logger, manager gameManager, in io.Reader, out io.Writer) *Server {
	server := &Server{
		logger:   logger.With("component", "console"),
		manager:  manager,
		in:       in,
		out:      out,
		handlers: make(map[string]handler),
	}

	server.handlers["move"] = server.handleMove
	server.handlers["m"] = server.handleMove
	server.handlers["new"] = server.handleNewGame
	server.handlers["reset"] = server.handleReset
	server.handlers["add-layer"] = server.handleAddLayer
	server.handlers["remove-layer"] = server.handleRemoveLayer
	server.handlers["board"] = server.handleBoard
	server.handlers["status"] = server.handleStatus
	server.handlers["score"] = server.handleScore
	server.handlers["help"] = server.handleHelp
	server.handlers["quit"] = server.handleQuit
	server.handlers["exit"] = server.handleQuit

	return server
}

// Run - reads commands until input ends, quit is entered or ctx is cancelled.
func (that *Server) Run(ctx context.Context) error {
	log := that.logger.With("method", "Run")

	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(that.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}

		readErr <- scanner.Err()
	}()

	that.printBoard()
	that.printf("%s", prompt)

	for {
		select {
		case <-ctx.Done():
			log.Info("console stopped")
			return nil
		case line, ok := <-lines:
			if !ok {
				return that.inputClosed(readErr)
			}

			err := that.handle(ctx, line)
			if errors.Is(err, errQuit) {
				log.Info("console closed by user")
				return nil
			}

			if err != nil {
				log.Debug("command failed", "line", line, "error", err)
				that.printf("error: %v\n", err)
			}

			that.printf("%s", prompt)
		}
	}
}

func (that *Server) inputClosed(readErr <-chan error) error {
	select {
	case err := <-readErr:
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
	default:
	}

	return nil
}

func (that *Server) handle(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	command := strings.ToLower(fields[0])

	commandHandler, ok := that.handlers[command]
	if !ok {
		return fmt.Errorf("%w: %s (try help)", ErrUnknownCommand, fields[0])
	}

	return commandHandler(ctx, fields[1:])
}

func (that *Server) handleMove(ctx context.Context, args []string) error {
	path, err := ParsePath(args)
	if err != nil {
		return err
	}

	snapshot, err := that.manager.MakeTurn(ctx, path)
	if err != nil {
		return err
	}

	that.printBoard()

	if snapshot.Status.IsOver() {
		that.printf("%s\n", snapshot.Status)
		return nil
	}

	that.printf("%s to move, %d moves left\n", snapshot.Turn, snapshot.Remaining)

	return nil
}

func (that *Server) handleNewGame(_ context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: new <depth>", ErrMissingArgs)
	}

	depth, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("depth must be a number: %w", err)
	}

	return that.restartWith(func() error { return that.manager.NewGame(depth) })
}

func (that *Server) handleReset(_ context.Context, _ []string) error {
	return that.restartWith(that.manager.Reset)
}

func (that *Server) handleAddLayer(_ context.Context, _ []string) error {
	return that.restartWith(that.manager.AddLayer)
}

func (that *Server) handleRemoveLayer(_ context.Context, _ []string) error {
	return that.restartWith(that.manager.RemoveLayer)
}

func (that *Server) restartWith(restart func() error) error {
	if err := restart(); err != nil {
		return err
	}

	that.printBoard()

	return nil
}

func (that *Server) handleBoard(_ context.Context, _ []string) error {
	that.printBoard()
	return nil
}

func (that *Server) handleStatus(_ context.Context, _ []string) error {
	snapshot := that.manager.Snapshot()

	that.printf("game:      %s\n", snapshot.GameID)
	that.printf("depth:     %d\n", snapshot.Depth)
	that.printf("turn:      %s (%c)\n", snapshot.Turn, snapshot.Turn.Symbol())
	that.printf("status:    %s\n", snapshot.Status)
	that.printf("moves:     %d\n", snapshot.Moves)
	that.printf("remaining: %d\n", snapshot.Remaining)

	return nil
}

func (that *Server) handleScore(ctx context.Context, args []string) error {
	if len(args) > 0 {
		if !strings.EqualFold(args[0], "reset") {
			return fmt.Errorf("%w: score %s (try score or score reset)", ErrUnknownCommand, args[0])
		}

		if err := that.manager.ResetScore(ctx); err != nil {
			return err
		}

		that.printf("score cleared\n")

		return nil
	}

	score, err := that.manager.Score(ctx)
	if err != nil {
		return err
	}

	that.printf("depth %d: %s %d, %s %d, stalemates %d (%d games)\n",
		score.Depth,
		entity.PlayerFirst, score.FirstWins,
		entity.PlayerSecond, score.SecondWins,
		score.Stalemates, score.Total())

	return nil
}

func (that *Server) handleHelp(_ context.Context, _ []string) error {
	that.printf("%s", helpText)
	return nil
}

func (that *Server) handleQuit(_ context.Context, _ []string) error {
	return errQuit
}

func (that *Server) printBoard() {
	board, depth := that.manager.Board()
	that.printf("%s", Render(board, depth))
}

func (that *Server) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(that.out, format, args...); err != nil {
		that.logger.Error("failed to write output", "error", err)
	}
}

const helpText = `commands:
  move x,y [x,y ...]  place a mark; one x,y per level from the outer board in (alias: m)
  new <depth>         start a new game with the given number of levels
  reset               restart at the current depth
  add-layer           restart one level deeper
  remove-layer        restart one level shallower
  board               show the board
  status              show game id, turn, status and counters
  score               show finished games at the current depth
  score reset         clear finished games at the current depth
  help                show this text
  quit                leave
`
