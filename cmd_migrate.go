package main

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	database "easypeasy_backend/internals/databases"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the lab_types, venues, labs and lab_meetings tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		database.ConnectDB(cfg)
		defer database.Close()

		if err := database.AutoMigrate(database.DB); err != nil {
			return err
		}
		log.Println("✅ Migration done")
		return nil
	},
}
