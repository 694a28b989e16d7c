package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"easypeasy_backend/internals/configs"
)

var cfg configs.Config

var rootCmd = &cobra.Command{
	Use:   "easypeasy",
	Short: "EasyPeasy Labs backend: lab catalog, weekly schedules and rescheduling",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = configs.LoadEnv()
	},
	// serve is the default
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
