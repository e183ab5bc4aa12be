package main

import (
	"errors"
	"fmt"
	"os"

	"stocksphere/internal/config"
	"stocksphere/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const version = "1.0.0"

var configFile string

var rootCmd = &cobra.Command{
	Use:           "stocksphere",
	Short:         "Inventory and supplier store with an HTTP API",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to a TOML config file")
	rootCmd.AddCommand(serveCmd, initCmd, exportCmd, backupCmd, restoreCmd, hashPasswordCmd)
}

var errVolatileBackend = errors.New("store commands need a persistent backend: the memory backend is discarded when the command exits, set STORAGE_BACKEND to redis, postgres or mysql")

// setup loads configuration and builds the shared services for a command.
func setup(cmd *cobra.Command) (*app, error) {
	return setupWith(cmd, false)
}

// setupPersistent is setup for commands whose effect must outlive the
// process.
func setupPersistent(cmd *cobra.Command) (*app, error) {
	return setupWith(cmd, true)
}

func setupWith(cmd *cobra.Command, persistent bool) (*app, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	if persistent && cfg.Storage.Backend == config.BackendMemory {
		return nil, errVolatileBackend
	}

	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	log = log.With(zap.String("command", cmd.Name()))

	return newApp(cmd.Context(), cfg, log)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
