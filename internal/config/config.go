package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"strings"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

type Config struct {
	Mode     string           `json:"mode"`
	Frontend string           `json:"frontend"`
	LogFile  string           `json:"log_file"`
	Board    mines.GameParams `json:"board"`
}

// Development reports whether the DEVELOPMENT env variable asks for
// development mode.
func Development() bool {
	development, ok := os.LookupEnv("DEVELOPMENT")
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(development)) {
	case "", "0", "false":
		return false
	}
	return true
}

func Default() *Config {
	return &Config{
		Mode:     "production",
		Frontend: "line",
		Board:    DefaultBoard,
	}
}

func (c Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("mode", c.Mode),
		slog.String("frontend", c.Frontend),
		slog.String("log_file", c.LogFile),
		slog.String("board", c.Board.Seed()),
	)
}

func (c Config) Production() bool {
	return c.Mode == "production"
}

func (c Config) Development() bool {
	return c.Mode != "production"
}

// ReadConfig fills config from the JSON file at path. Keys missing from the
// file keep their current values.
func ReadConfig(path string, config *Config) error {
	if b, err := os.ReadFile(path); err != nil {
		return err
	} else {
		return json.Unmarshal(b, config)
	}
}
