package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/lmittmann/tint"
	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/console"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/screen"
	"github.com/vancomm/minesweeper-engine/internal/session"
	"golang.org/x/sync/errgroup"
)

// frontend owns the terminal for the lifetime of a session.
type frontend interface {
	Run() error
	Stop()
}

var (
	configPath string
	board      string
	ui         string
	logPath    string
)

func init() {
	const usage = "config file path"
	flag.StringVar(&configPath, "config", "", usage)
	flag.StringVar(&configPath, "c", "", usage+" (shorthand)")
	flag.StringVar(&board, "board", "", `board params, "rows:cols:mines" or "rows=9&cols=9&mine_count=10"`)
	flag.StringVar(&ui, "ui", "", "front-end: line or screen")
	flag.StringVar(&logPath, "log", "", "log file path")
}

func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		if err := config.ReadConfig(configPath, cfg); err != nil {
			return nil, fmt.Errorf("unable to read config %s: %w", configPath, err)
		}
	}

	params, err := config.Board(cfg.Board)
	if err != nil {
		return nil, fmt.Errorf("unable to read board from env: %w", err)
	}
	cfg.Board = params

	if board != "" {
		if cfg.Board, err = config.ParseBoard(board); err != nil {
			return nil, err
		}
	}
	if ui != "" {
		cfg.Frontend = ui
	}
	if logPath != "" {
		cfg.LogFile = logPath
	}
	return cfg, nil
}

func setupLogging(cfg *config.Config) (*slog.Logger, func() error, error) {
	var (
		w     io.Writer = os.Stderr
		closeFn         = func() error { return nil }
	)
	switch {
	case cfg.LogFile != "":
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to open log file: %w", err)
		}
		w, closeFn = f, f.Close
	case cfg.Frontend == "screen":
		w = io.Discard
	}

	var handler slog.Handler = slog.NewJSONHandler(w, nil)
	if config.Development() || cfg.Development() {
		handler = tint.NewHandler(w, &tint.Options{
			Level:   slog.LevelDebug,
			NoColor: cfg.LogFile != "",
		})
	}
	return slog.New(handler), closeFn, nil
}

func newFrontend(cfg *config.Config, logger *slog.Logger, s *session.Session) (frontend, error) {
	switch cfg.Frontend {
	case "", "line":
		return console.New(logger, s, os.Stdin, os.Stdout), nil
	case "screen":
		scr, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("unable to create screen: %w", err)
		}
		return screen.New(logger, s, scr), nil
	default:
		return nil, fmt.Errorf("unknown front-end %q", cfg.Frontend)
	}
}

func run() error {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	mines.Log = logger

	logger.Info("starting up", slog.String("mode", cfg.Mode))
	logger.Debug("config", slog.Any("config", cfg))

	s, err := session.New(logger, cfg.Board, createRand())
	if err != nil {
		return err
	}

	fe, err := newFrontend(cfg, logger, s)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer stop()
		return fe.Run()
	})
	g.Go(func() error {
		<-gCtx.Done()
		fe.Stop()
		return nil
	})

	err = g.Wait()
	logger.Info("shutting down", slog.String("session", s.ID()))
	return err
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "mines:", err)
		os.Exit(1)
	}
}
