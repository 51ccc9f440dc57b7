package gym

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Gavin-Dsouza/gymApp/internal/model"
	"github.com/Gavin-Dsouza/gymApp/internal/store"
)

var foodCmd = &cobra.Command{
	Use:   "food",
	Short: "Browse the food catalog",
}

var foodCategory string

var foodListCmd = &cobra.Command{
	Use:   "list",
	Short: "List foods, optionally by category",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			var (
				items []model.Food
				err   error
			)
			if foodCategory != "" {
				items, err = store.ListFoodsByCategory(sqldb, foodCategory)
			} else {
				items, err = store.ListFoods(sqldb)
			}
			if err != nil {
				return err
			}
			printFoods(cmd, items)
			return nil
		})
	},
}

var foodSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search foods by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			items, err := store.SearchFoods(sqldb, args[0])
			if err != nil {
				return err
			}
			printFoods(cmd, items)
			return nil
		})
	},
}

func printFoods(cmd *cobra.Command, items []model.Food) {
	fmt.Fprintln(cmd.OutOrStdout(), "ID\tNAME\tSERVING\tCAL\tPROTEIN\tCARBS\tFAT\tCATEGORY")
	for _, f := range items {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%.0f%s\t%.0f\t%.1f\t%.1f\t%.1f\t%s\n",
			f.ID, f.Name, f.ServingSize, f.ServingUnit, f.CaloriesPerServing, f.ProteinPerServing, f.CarbsPerServing, f.FatPerServing, f.Category)
	}
}

func init() {
	rootCmd.AddCommand(foodCmd)
	foodCmd.AddCommand(foodListCmd, foodSearchCmd)
	foodListCmd.Flags().StringVar(&foodCategory, "category", "", "Filter by category")
}
