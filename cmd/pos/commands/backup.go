package commands

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/Mostafalol1233/resturant/backup"
	"github.com/Mostafalol1233/resturant/config"
	"github.com/Mostafalol1233/resturant/database"
	"github.com/Mostafalol1233/resturant/models"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Create a one-off backup artifact",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		db, err := database.Open(cfg.DatabaseURL)
		if err != nil {
			return err
		}

		blobs, err := backup.NewLocalBlobStore(cfg.BackupDir)
		if err != nil {
			return err
		}

		service := backup.NewService(backup.Repos{
			Restaurant: models.NewRestaurantRepository(db),
			Categories: models.NewCategoriesRepository(db),
			Products:   models.NewProductsRepository(db),
			Orders:     models.NewOrdersRepository(db),
			Inventory:  models.NewInventoryRepository(db),
		}, blobs)

		name, err := service.Create()
		if err != nil {
			return err
		}

		log.Printf("backup created: %s", name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
}
