package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tillpoint/config"
	locationRepo "tillpoint/model/repository/location"
	inventoryService "tillpoint/service/inventory"
)

var (
	importFile     string
	importLocation uint
	importBatch    int
)

var stockImportCmd = &cobra.Command{
	Use:   "stock:import",
	Short: "Apply stock receipts from a CSV of sku,quantity rows",
	Run: func(cmd *cobra.Command, args []string) {
		f, err := os.Open(importFile)
		if err != nil {
			fmt.Printf("Failed to open CSV: %v\n", err)
			return
		}
		defer f.Close()

		db, err := config.NewDB()
		if err != nil {
			fmt.Printf("Database connection failed: %v\n", err)
			return
		}

		locationID := importLocation
		if locationID == 0 {
			config.LoadAppConfig()
			warehouse, err := locationRepo.NewLocationRepository(db).FindByName(config.AppConfig.DefaultWarehouse)
			if err != nil {
				fmt.Printf("Default warehouse %q not found: %v\n", config.AppConfig.DefaultWarehouse, err)
				return
			}
			locationID = warehouse.LocationID
		}

		res, err := inventoryService.ImportStockCSV(db, f, inventoryService.ImportOptions{
			LocationID: locationID,
			BatchSize:  importBatch,
		})
		if err != nil {
			fmt.Printf("Import failed: %v\n", err)
			return
		}

		for _, w := range res.Warnings {
			fmt.Printf("  [warn] %s\n", w)
		}

		fmt.Printf(`
=== Import Report ===
CSV rows:       %d
Applied:        %d
Skipped:        %d
Total time:     %s
`, res.TotalRows, res.Applied, res.Skipped, res.TotalTime)
	},
}

func init() {
	stockImportCmd.Flags().StringVarP(&importFile, "file", "f", "stock.csv", "CSV file with sku,quantity rows")
	stockImportCmd.Flags().UintVarP(&importLocation, "location", "l", 0, "Location ID to receive into (default: configured warehouse)")
	stockImportCmd.Flags().IntVarP(&importBatch, "batch", "b", 500, "Rows per transaction")
	rootCmd.AddCommand(stockImportCmd)
}
