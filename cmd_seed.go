package main

import (
	"github.com/spf13/cobra"

	database "easypeasy_backend/internals/databases"
	"easypeasy_backend/internals/seeds"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load lab types and venues from a YAML catalog (existing codes are skipped)",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := seedFile
		if path == "" {
			path = cfg.SeedFile
		}

		database.ConnectDB(cfg)
		defer database.Close()
		return seeds.RunAllSeeds(database.DB, path)
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "catalog file (default SEED_FILE)")
}
