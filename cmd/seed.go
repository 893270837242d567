package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tillpoint/config"
	"tillpoint/service/seed"
)

var seedCmd = &cobra.Command{
	Use:   "db:seed",
	Short: "Load the demo locations, products and warehouse stock",
	Run: func(cmd *cobra.Command, args []string) {
		db, err := config.NewDB()
		if err != nil {
			fmt.Printf("Database connection failed: %v\n", err)
			os.Exit(1)
		}
		if err := seed.Run(db); err != nil {
			fmt.Printf("Seed failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
