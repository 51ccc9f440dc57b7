package gym

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Gavin-Dsouza/gymApp/internal/app"
	"github.com/Gavin-Dsouza/gymApp/internal/catalog"
	"github.com/Gavin-Dsouza/gymApp/internal/db"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize local gym database and seed built-in catalogs",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveDBPath()
		if err != nil {
			return err
		}
		if err := app.EnsureDBDir(path); err != nil {
			return err
		}

		sqldb, err := db.Open(path)
		if err != nil {
			return err
		}
		defer sqldb.Close()

		if err := db.ApplyMigrations(sqldb); err != nil {
			return err
		}

		exercises, err := catalog.EnsureExercises(sqldb)
		if err != nil {
			return err
		}
		foods, err := catalog.EnsureFoods(sqldb)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Initialized gym database at %s\n", path)
		if exercises > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d exercises\n", exercises)
		}
		if foods > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d foods\n", foods)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
