package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/fractal-tictactoe/internal/config"
	"github.com/rocketscienceinc/fractal-tictactoe/internal/repository"
	"github.com/rocketscienceinc/fractal-tictactoe/internal/repository/storage"
	"github.com/rocketscienceinc/fractal-tictactoe/internal/transport/console"
	"github.com/rocketscienceinc/fractal-tictactoe/internal/usecase"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	var scoreboard repository.ScoreboardRepository
	if conf.Scoreboard.Enabled {
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return ErrAddrNotFound
		}

		redisStorage, err := storage.New(ctx, redisAddrString)
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		scoreboard = repository.NewScoreboardRepository(redisStorage)
		log.Info("Scoreboard enabled", "redis", redisAddrString)
	}

	gameManager, err := usecase.NewGameManager(logger, scoreboard, conf.Depth, conf.MaxDepth)
	if err != nil {
		return fmt.Errorf("could not start game: %w", err)
	}

	consoleErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting console", "depth", conf.Depth, "max_depth", conf.MaxDepth)
		consoleErrCh <- console.New(logger, gameManager, os.Stdin, os.Stdout).Run(ctx)
	}()

	select {
	case err = <-consoleErrCh:
		if err != nil {
			return fmt.Errorf("console error: %w", err)
		}

		log.Info("Console finished, shutting down")
		return nil
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
