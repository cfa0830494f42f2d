package commands

import (
	"github.com/spf13/cobra"

	"github.com/Mostafalol1233/resturant/app/server"
	"github.com/Mostafalol1233/resturant/config"
	"github.com/Mostafalol1233/resturant/database"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the HTTP API server. The schema is migrated on startup and the
periodic backup scheduler runs alongside the server until shutdown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		db, err := database.Open(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		if err := database.Migrate(db); err != nil {
			return err
		}

		return server.New(cfg, db).Run()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
