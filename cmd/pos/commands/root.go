package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "pos",
	Short: "Restaurant POS backend",
	Long: `Restaurant POS backend serves the admin dashboard API: orders with an
atomic stock ledger, products and categories, daily analytics, session
authentication and JSON backups.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
