package gym

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	dbPath   string
	userFlag string
)

var rootCmd = &cobra.Command{
	Use:   "gym",
	Short: "gym tracks workouts and nutrition from your terminal",
	Long:  "gym is a local-first workout and nutrition tracking CLI with personal records, streaks, goals, and daily macro roll-ups.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
	rootCmd.PersistentFlags().StringVar(&userFlag, "user", "", "Acting user id (defaults to configured profile)")
}
