package gym

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Gavin-Dsouza/gymApp/internal/service"
	"github.com/Gavin-Dsouza/gymApp/internal/store"
)

var bodyCmd = &cobra.Command{
	Use:   "body",
	Short: "Track body weight measurements",
}

var (
	bodyWeight  float64
	bodyUnit    string
	bodyFat     float64
	bodyMuscle  float64
	bodyDate    string
	bodyTime    string
	bodyNotes   string
	bodyLimit   int
	bodyOutUnit string
)

var bodyLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Log a body weight measurement",
	RunE: func(cmd *cobra.Command, args []string) error {
		measuredAt, err := parseDateTimeOrNow(bodyDate, bodyTime)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			user, err := resolveUser(sqldb)
			if err != nil {
				return err
			}
			in := service.BodyWeightInput{
				Weight:       bodyWeight,
				Unit:         bodyUnit,
				BodyFatPct:   optionalFloat(bodyFat),
				MuscleMassKg: optionalFloat(bodyMuscle),
				MeasuredAt:   measuredAt,
				Notes:        bodyNotes,
			}
			bw, err := service.LogBodyWeight(sqldb, user, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %.2f kg (%s)\n", bw.WeightKg, bw.ID)
			return nil
		})
	},
}

var bodyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List body weight measurements",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			user, err := resolveUser(sqldb)
			if err != nil {
				return err
			}
			items, err := service.BodyWeightHistory(sqldb, user, store.BodyWeightFilter{Limit: bodyLimit})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "DATE\tWEIGHT\tUNIT\tBODY_FAT%\tNOTES")
			for _, m := range items {
				w, err := service.WeightFromKg(m.WeightKg, bodyOutUnit)
				if err != nil {
					return err
				}
				bf := ""
				if m.BodyFatPct != nil {
					bf = fmt.Sprintf("%.2f", *m.BodyFatPct)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.2f\t%s\t%s\t%s\n", m.MeasuredAt.Local().Format("2006-01-02 15:04"), w, bodyOutUnit, bf, m.Notes)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(bodyCmd)
	bodyCmd.AddCommand(bodyLogCmd, bodyListCmd)

	bodyLogCmd.Flags().Float64Var(&bodyWeight, "weight", 0, "Weight value")
	bodyLogCmd.Flags().StringVar(&bodyUnit, "unit", "kg", "Weight unit: kg or lb")
	bodyLogCmd.Flags().Float64Var(&bodyFat, "body-fat", -1, "Body fat percentage (optional)")
	bodyLogCmd.Flags().Float64Var(&bodyMuscle, "muscle-mass", -1, "Muscle mass in kg (optional)")
	bodyLogCmd.Flags().StringVar(&bodyDate, "date", "", "Date YYYY-MM-DD")
	bodyLogCmd.Flags().StringVar(&bodyTime, "time", "", "Time HH:MM")
	bodyLogCmd.Flags().StringVar(&bodyNotes, "notes", "", "Optional notes")
	_ = bodyLogCmd.MarkFlagRequired("weight")

	bodyListCmd.Flags().IntVar(&bodyLimit, "limit", 50, "Result limit")
	bodyListCmd.Flags().StringVar(&bodyOutUnit, "unit", "kg", "Output unit: kg or lb")
}
