package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"

	"tillpoint/config"
)

var (
	migrateDir  string
	migrateDown bool
	migrateStep int
)

var migrateCmd = &cobra.Command{
	Use:   "db:migrate",
	Short: "Apply schema migrations",
	Run: func(cmd *cobra.Command, args []string) {
		m, err := migrate.New("file://"+migrateDir, "mysql://"+config.MySQLDSN())
		if err != nil {
			fmt.Printf("Migrate init failed: %v\n", err)
			os.Exit(1)
		}
		defer m.Close()

		if migrateDown {
			if migrateStep <= 0 {
				migrateStep = 1
			}
			err = m.Steps(-migrateStep)
		} else if migrateStep > 0 {
			err = m.Steps(migrateStep)
		} else {
			err = m.Up()
		}
		if err != nil {
			if errors.Is(err, migrate.ErrNoChange) {
				fmt.Println("No pending migrations.")
				return
			}
			fmt.Printf("Migration failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Migrations applied.")
	},
}

func init() {
	migrateCmd.Flags().StringVarP(&migrateDir, "dir", "d", "migrations", "Directory with migration files")
	migrateCmd.Flags().BoolVar(&migrateDown, "down", false, "Roll back instead of applying")
	migrateCmd.Flags().IntVarP(&migrateStep, "step", "s", 0, "Number of migrations to apply (0 = all pending)")
	rootCmd.AddCommand(migrateCmd)
}
