package gym

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Gavin-Dsouza/gymApp/internal/catalog"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the built-in exercise and food catalogs if empty",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			exercises, err := catalog.EnsureExercises(sqldb)
			if err != nil {
				return err
			}
			foods, err := catalog.EnsureFoods(sqldb)
			if err != nil {
				return err
			}
			if exercises == 0 && foods == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Catalogs already seeded")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d exercises, %d foods\n", exercises, foods)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
