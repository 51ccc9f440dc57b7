package gym

import (
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/Gavin-Dsouza/gymApp/internal/model"
	"github.com/Gavin-Dsouza/gymApp/internal/service"
)

var workoutCmd = &cobra.Command{
	Use:   "workout",
	Short: "Manage workout sessions, sets, and records",
}

var workoutName string

var workoutStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a workout session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			user, err := resolveUser(sqldb)
			if err != nil {
				return err
			}
			session, err := service.StartWorkout(sqldb, user, workoutName, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Started %q (%s)\n", session.Name, session.ID)
			return nil
		})
	},
}

var (
	setExercise string
	setWeight   float64
	setUnit     string
	setReps     int
	setDuration int
	setRest     int
	setRPE      int
	setNotes    string
	setSession  string
)

var workoutSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Manage sets inside a session",
}

var workoutSetAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a set against the active session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			user, err := resolveUser(sqldb)
			if err != nil {
				return err
			}
			sessionID, err := targetSession(sqldb, user)
			if err != nil {
				return err
			}
			in, err := setInputFromFlags()
			if err != nil {
				return err
			}
			set, err := service.AddSetToWorkout(sqldb, user, sessionID, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added set %s\n", set.ID)
			return nil
		})
	},
}

var workoutSetUpdateCmd = &cobra.Command{
	Use:   "update <set-id>",
	Short: "Replace a recorded set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			user, err := resolveUser(sqldb)
			if err != nil {
				return err
			}
			sessionID, err := targetSession(sqldb, user)
			if err != nil {
				return err
			}
			in, err := setInputFromFlags()
			if err != nil {
				return err
			}
			if err := service.UpdateSet(sqldb, user, sessionID, args[0], in); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated set %s\n", args[0])
			return nil
		})
	},
}

var workoutSetDeleteCmd = &cobra.Command{
	Use:   "delete <set-id>",
	Short: "Remove a recorded set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			user, err := resolveUser(sqldb)
			if err != nil {
				return err
			}
			sessionID, err := targetSession(sqldb, user)
			if err != nil {
				return err
			}
			if err := service.DeleteSet(sqldb, user, sessionID, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted set %s\n", args[0])
			return nil
		})
	},
}

var (
	finishNotes  string
	finishMood   string
	finishEnergy string
)

var workoutFinishCmd = &cobra.Command{
	Use:   "finish",
	Short: "Finish the active workout session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			user, err := resolveUser(sqldb)
			if err != nil {
				return err
			}
			sessionID, err := targetSession(sqldb, user)
			if err != nil {
				return err
			}
			session, err := service.FinishWorkout(sqldb, user, sessionID, time.Now(), service.FinishInput{
				Notes:  finishNotes,
				Mood:   finishMood,
				Energy: finishEnergy,
			})
			if err != nil {
				return err
			}
			duration := session.EndTime.Sub(session.StartTime).Round(time.Minute)
			fmt.Fprintf(cmd.OutOrStdout(), "Finished %q after %s (%d sets)\n", session.Name, duration, len(session.Sets))
			return nil
		})
	},
}

var workoutActiveCmd = &cobra.Command{
	Use:   "active",
	Short: "Show the in-progress session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			user, err := resolveUser(sqldb)
			if err != nil {
				return err
			}
			session, err := service.ActiveWorkout(sqldb, user)
			if err != nil {
				return err
			}
			if session == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No workout in progress")
				return nil
			}
			printSession(cmd, *session)
			return nil
		})
	},
}

var historyLimit int

var workoutHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List past workout sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			user, err := resolveUser(sqldb)
			if err != nil {
				return err
			}
			sessions, err := service.WorkoutHistory(sqldb, user, historyLimit)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tDATE\tNAME\tSETS\tSTATE")
			for _, s := range sessions {
				state := "active"
				if s.EndTime != nil {
					state = "finished"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%d\t%s\n", s.ID, s.Date.Format("2006-01-02"), s.Name, len(s.Sets), state)
			}
			return nil
		})
	},
}

var prExercise string

var workoutPRCmd = &cobra.Command{
	Use:   "prs",
	Short: "List personal records",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			user, err := resolveUser(sqldb)
			if err != nil {
				return err
			}
			records, err := service.PersonalRecords(sqldb, user, prExercise)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "DATE\tEXERCISE\tWEIGHT_KG\tREPS\tEST_1RM")
			for _, pr := range records {
				oneRM := service.EstimateOneRM(pr.WeightKg, pr.Reps)
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%.1f\t%d\t%.1f\n", pr.RecordedAt.Local().Format("2006-01-02"), pr.ExerciseID, pr.WeightKg, pr.Reps, oneRM)
			}
			return nil
		})
	},
}

var workoutStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show training totals and current streak",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			user, err := resolveUser(sqldb)
			if err != nil {
				return err
			}
			stats, err := service.GetWorkoutStats(sqldb, user)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Workouts:      %d\n", stats.TotalWorkouts)
			fmt.Fprintf(out, "Sets:          %d\n", stats.TotalSets)
			fmt.Fprintf(out, "Volume (kg):   %d\n", stats.TotalWeightKg)
			fmt.Fprintf(out, "Avg duration:  %d min\n", stats.AvgDurationMin)
			fmt.Fprintf(out, "Streak:        %d days\n", stats.CurrentStreak)
			return nil
		})
	},
}

var workoutVolumeCmd = &cobra.Command{
	Use:   "volume",
	Short: "Show lifted volume per muscle group over the last 30 days",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			user, err := resolveUser(sqldb)
			if err != nil {
				return err
			}
			volume, err := service.VolumeByMuscleGroup(sqldb, user, time.Now())
			if err != nil {
				return err
			}
			muscles := make([]string, 0, len(volume))
			for muscle := range volume {
				muscles = append(muscles, muscle)
			}
			sort.Slice(muscles, func(i, j int) bool { return volume[muscles[i]] > volume[muscles[j]] })
			fmt.Fprintln(cmd.OutOrStdout(), "MUSCLE\tVOLUME_KG")
			for _, muscle := range muscles {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.1f\n", muscle, volume[muscle])
			}
			return nil
		})
	},
}

func setInputFromFlags() (service.SetInput, error) {
	in := service.SetInput{
		ExerciseID: setExercise,
		Reps:       setReps,
		DurationS:  optionalInt(setDuration),
		RestS:      optionalInt(setRest),
		RPE:        optionalInt(setRPE),
		Notes:      setNotes,
	}
	if setWeight >= 0 {
		kg, err := service.ToKg(setWeight, setUnit)
		if err != nil {
			return service.SetInput{}, err
		}
		in.WeightKg = &kg
	}
	return in, nil
}

// targetSession picks --session when given, otherwise the active session.
func targetSession(sqldb *sql.DB, user string) (string, error) {
	if setSession != "" {
		return setSession, nil
	}
	session, err := service.ActiveWorkout(sqldb, user)
	if err != nil {
		return "", err
	}
	if session == nil {
		return "", fmt.Errorf("no workout in progress (start one or pass --session)")
	}
	return session.ID, nil
}

func printSession(cmd *cobra.Command, s model.WorkoutSession) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s) started %s\n", s.Name, s.ID, s.StartTime.Local().Format("2006-01-02 15:04"))
	for i, set := range s.Sets {
		weight := "-"
		if set.WeightKg != nil {
			weight = fmt.Sprintf("%.1fkg", *set.WeightKg)
		}
		fmt.Fprintf(out, "  %d. %s %s x %d (%s)\n", i+1, set.ExerciseID, weight, set.Reps, set.ID)
	}
}

func init() {
	rootCmd.AddCommand(workoutCmd)
	workoutCmd.AddCommand(workoutStartCmd, workoutSetCmd, workoutFinishCmd, workoutActiveCmd, workoutHistoryCmd, workoutPRCmd, workoutStatsCmd, workoutVolumeCmd)
	workoutSetCmd.AddCommand(workoutSetAddCmd, workoutSetUpdateCmd, workoutSetDeleteCmd)

	workoutStartCmd.Flags().StringVar(&workoutName, "name", "", "Session name")

	for _, c := range []*cobra.Command{workoutSetAddCmd, workoutSetUpdateCmd} {
		c.Flags().StringVar(&setExercise, "exercise", "", "Exercise id")
		c.Flags().Float64Var(&setWeight, "weight", -1, "Weight value (optional)")
		c.Flags().StringVar(&setUnit, "unit", "kg", "Weight unit: kg or lb")
		c.Flags().IntVar(&setReps, "reps", 0, "Repetitions")
		c.Flags().IntVar(&setDuration, "duration", -1, "Duration in seconds (optional)")
		c.Flags().IntVar(&setRest, "rest", -1, "Rest in seconds (optional)")
		c.Flags().IntVar(&setRPE, "rpe", -1, "Perceived exertion 1-10 (optional)")
		c.Flags().StringVar(&setNotes, "notes", "", "Optional notes")
		_ = c.MarkFlagRequired("exercise")
	}
	for _, c := range []*cobra.Command{workoutSetAddCmd, workoutSetUpdateCmd, workoutSetDeleteCmd, workoutFinishCmd} {
		c.Flags().StringVar(&setSession, "session", "", "Session id (defaults to the active session)")
	}

	workoutFinishCmd.Flags().StringVar(&finishNotes, "notes", "", "Session notes")
	workoutFinishCmd.Flags().StringVar(&finishMood, "mood", "", "Mood: great, good, okay, tired, or poor")
	workoutFinishCmd.Flags().StringVar(&finishEnergy, "energy", "", "Energy level: high, medium, or low")

	workoutHistoryCmd.Flags().IntVar(&historyLimit, "limit", 20, "Result limit")
	workoutPRCmd.Flags().StringVar(&prExercise, "exercise", "", "Filter by exercise id")
}
