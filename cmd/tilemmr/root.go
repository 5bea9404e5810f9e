package main

import (
	"crypto/sha256"
	"fmt"
	"hash"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/robinbryce/tilemmr/internal/config"
	"github.com/robinbryce/tilemmr/storage"
	"github.com/robinbryce/tilemmr/tiles"
)

var (
	cfgPath    string
	backendOpt string
	cfg        config.Config
	sugar      *zap.SugaredLogger
)

var rootCmd = &cobra.Command{
	Use:   "tilemmr",
	Short: "tilemmr is a tamper-evident, tile-backed Merkle Mountain Range log",
	Long:  "tilemmr appends leaves to a tile-organized MMR and produces inclusion / consistency proofs against it.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		if backendOpt != "" {
			cfg.Backend = backendOpt
		}
		logger, err := newLogger(cfg.LogLevel)
		if err != nil {
			return err
		}
		sugar = logger.Sugar()
		return nil
	},
}

func newLogger(level string) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if err := zcfg.Level.UnmarshalText([]byte(level)); err != nil {
		zcfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return zcfg.Build()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a TOML config file")
	rootCmd.PersistentFlags().StringVar(&backendOpt, "backend", "", "storage backend: memory, sqlite, bolt (overrides config)")

	rootCmd.AddCommand(appendCmd)
	rootCmd.AddCommand(proveCmd)
	rootCmd.AddCommand(consistencyCmd)
	rootCmd.AddCommand(verifyInclusionCmd)
	rootCmd.AddCommand(verifyConsistencyCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(exportCmd)
}

// Execute runs the command tree, mapping any core error to exit code 1.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func hasherFactory() func() hash.Hash {
	return func() hash.Hash { return sha256.New() }
}

// openProvider opens the configured storage backend. The returned
// io.Closer is nil for backends with nothing to close (memory).
func openProvider() (tiles.Provider, io.Closer, error) {
	switch cfg.Backend {
	case "", "memory":
		return storage.NewMemory(), nil, nil
	case "sqlite":
		db, err := storage.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return db, db, nil
	case "bolt":
		db, err := storage.OpenBolt(cfg.BoltPath)
		if err != nil {
			return nil, nil, err
		}
		return db, db, nil
	default:
		return nil, nil, fmt.Errorf("tilemmr: unknown backend %q", cfg.Backend)
	}
}

func openLog(logIDArg string) (*tiles.TileLog, io.Closer, error) {
	logID, err := tiles.ParseLogID(logIDArg)
	if err != nil {
		return nil, nil, fmt.Errorf("tilemmr: invalid log id %q: %w", logIDArg, err)
	}
	provider, closer, err := openProvider()
	if err != nil {
		return nil, nil, err
	}
	tileCfg := tiles.Config{TileHeight: cfg.TileHeight, FieldWidth: tiles.DefaultFieldWidth}
	store := tiles.NewTileStore(tileCfg, logID, provider, hasherFactory())
	return tiles.NewTileLog(tileCfg, store, sugar), closer, nil
}
