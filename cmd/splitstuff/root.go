package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/splitstuff/splitstuff/internal/config"
	"github.com/splitstuff/splitstuff/internal/storage"
	"github.com/splitstuff/splitstuff/internal/storage/postgres"
	"github.com/splitstuff/splitstuff/internal/storage/sqlite"
	"github.com/splitstuff/splitstuff/pkg/logging"
)

var flagConfig string

var rootCmd = &cobra.Command{
	Use:          "splitstuff",
	Short:        "Shared expense ledger",
	Long:         "Track group expenses, compute balances and plan who pays whom.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "YAML config file (optional)")
	rootCmd.AddCommand(serveCmd, migrateCmd, settleCmd)
}

// loadConfig reads configuration and sets up logging from it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	logging.SetupWithLevel(logging.ParseLevel(cfg.Log.Level))
	return cfg, nil
}

// openStore opens the store selected by storage.driver. migrate also creates
// the schema on PostgreSQL; SQLite always migrates on open.
func openStore(ctx context.Context, cfg *config.Config, migrate bool) (storage.Store, error) {
	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		store, err := sqlite.New(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		slog.Info("Storage initialized", "driver", cfg.Storage.Driver, "database", cfg.Storage.SQLitePath)
		return store, nil

	case config.DriverPostgres:
		store, err := postgres.New(ctx, cfg.Storage.PostgresURL, postgres.Options{
			MaxConns: cfg.Storage.PoolMaxConns,
		})
		if err != nil {
			return nil, err
		}
		if migrate {
			if err := store.Migrate(ctx); err != nil {
				store.Close()
				return nil, err
			}
		}
		slog.Info("Storage initialized", "driver", cfg.Storage.Driver)
		return store, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
