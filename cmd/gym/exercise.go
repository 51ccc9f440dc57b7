package gym

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Gavin-Dsouza/gymApp/internal/model"
	"github.com/Gavin-Dsouza/gymApp/internal/store"
)

var exerciseCmd = &cobra.Command{
	Use:   "exercise",
	Short: "Browse the exercise catalog",
}

var exerciseMuscle string

var exerciseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List exercises, optionally by primary muscle",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			var (
				items []model.Exercise
				err   error
			)
			if exerciseMuscle != "" {
				items, err = store.ListExercisesByMuscle(sqldb, exerciseMuscle)
			} else {
				items, err = store.ListExercises(sqldb)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tNAME\tCATEGORY\tPRIMARY\tDIFFICULTY")
			for _, ex := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\t%s\n", ex.ID, ex.Name, ex.Category, strings.Join(ex.PrimaryMuscles, ","), ex.Difficulty)
			}
			return nil
		})
	},
}

var exerciseSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search exercises by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			items, err := store.SearchExercises(sqldb, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tNAME\tCATEGORY\tPRIMARY\tDIFFICULTY")
			for _, ex := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\t%s\n", ex.ID, ex.Name, ex.Category, strings.Join(ex.PrimaryMuscles, ","), ex.Difficulty)
			}
			return nil
		})
	},
}

var exerciseShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one exercise in detail",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			ex, err := store.GetExercise(sqldb, args[0])
			if err != nil {
				return err
			}
			if ex == nil {
				return fmt.Errorf("exercise %q not found", args[0])
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", ex.Name, ex.Category)
			fmt.Fprintf(out, "Primary:    %s\n", strings.Join(ex.PrimaryMuscles, ", "))
			fmt.Fprintf(out, "Secondary:  %s\n", strings.Join(ex.SecondaryMuscles, ", "))
			fmt.Fprintf(out, "Equipment:  %s\n", strings.Join(ex.Equipment, ", "))
			fmt.Fprintf(out, "Difficulty: %s\n", ex.Difficulty)
			fmt.Fprintf(out, "Compound:   %t\n", ex.IsCompound)
			for i, step := range ex.Instructions {
				fmt.Fprintf(out, "  %d. %s\n", i+1, step)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exerciseCmd)
	exerciseCmd.AddCommand(exerciseListCmd, exerciseSearchCmd, exerciseShowCmd)
	exerciseListCmd.Flags().StringVar(&exerciseMuscle, "muscle", "", "Filter by primary muscle")
}
