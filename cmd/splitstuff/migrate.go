package main

import (
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		store, err := openStore(cmd.Context(), cfg, true)
		if err != nil {
			return err
		}
		defer store.Close()

		cmd.Printf("Schema ready (%s)\n", cfg.Storage.Driver)
		return nil
	},
}
