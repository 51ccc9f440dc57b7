package gym

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Gavin-Dsouza/gymApp/internal/store"
)

var resetTable string

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear a data table (destructive)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if resetTable == "" {
			tables := store.ClearableTables()
			sort.Strings(tables)
			return fmt.Errorf("--table is required (one of: %s)", strings.Join(tables, ", "))
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := store.Clear(sqldb, resetTable); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s\n", resetTable)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
	resetCmd.Flags().StringVar(&resetTable, "table", "", "Table to clear")
}
