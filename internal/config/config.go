// Package config loads the TOML configuration the tilemmr CLI reads
// its storage backend and tile geometry from.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the on-disk shape of a tilemmr config file.
type Config struct {
	Backend    string `toml:"backend"`
	SQLitePath string `toml:"sqlite_path"`
	BoltPath   string `toml:"bolt_path"`
	TileHeight uint64 `toml:"tile_height"`
	LogLevel   string `toml:"log_level"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		Backend:    "memory",
		SQLitePath: "tilemmr.sqlite3",
		BoltPath:   "tilemmr.bolt",
		TileHeight: 8,
		LogLevel:   "info",
	}
}

// Load reads and parses a TOML config file at path, falling back to
// Default for any field left unset.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return cfg, nil
}
