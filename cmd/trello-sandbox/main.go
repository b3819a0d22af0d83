// Command trello-sandbox serves a local, SQLite-backed emulation of the
// Trello REST API for trying out clients without a real account.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/airyra/trello/internal/config"
	"github.com/airyra/trello/internal/logging"
	"github.com/airyra/trello/internal/sandbox"
)

// DefaultDBFile is the database file created under the global config directory.
const DefaultDBFile = "sandbox.db"

var rootCmd = &cobra.Command{
	Use:   "trello-sandbox",
	Short: "Local Trello API sandbox",
	Long: `Serve a local emulation of the Trello REST API under /1.

Any non-empty key is accepted. Point a client at it with
--base-url http://localhost:7433/1 or TRELLO_BASE_URL.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		dbPath, _ := cmd.Flags().GetString("db")
		level, _ := cmd.Flags().GetString("log-level")
		return run(addr, dbPath, level)
	},
}

func init() {
	rootCmd.Flags().String("addr", sandbox.DefaultAddress, "Address to listen on")
	rootCmd.Flags().String("db", "", `SQLite database path, or ":memory:" (default ~/.trello/sandbox.db)`)
	rootCmd.Flags().String("log-level", "", "Log level (debug, info, warn, error); defaults to LOG_LEVEL or info")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(addr, dbPath, level string) error {
	logger, err := logging.New(level, "info")
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	if dbPath == "" {
		dbPath, err = defaultDBPath()
		if err != nil {
			return err
		}
	}

	store, err := sandbox.NewStore(dbPath)
	if err != nil {
		logger.Error("failed to open store", zap.String("db", dbPath), zap.Error(err))
		return err
	}
	defer store.Close()

	logger.Info("store ready", zap.String("db", dbPath))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := sandbox.New(addr, store, logger)
	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", zap.Error(err))
		return err
	}
	return nil
}

// defaultDBPath returns ~/.trello/sandbox.db, creating the directory.
func defaultDBPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	dir := filepath.Join(homeDir, config.GlobalConfigDir)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return filepath.Join(dir, DefaultDBFile), nil
}
