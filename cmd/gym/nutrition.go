package gym

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Gavin-Dsouza/gymApp/internal/model"
	"github.com/Gavin-Dsouza/gymApp/internal/service"
)

var nutritionCmd = &cobra.Command{
	Use:   "nutrition",
	Short: "Track meals, macros, water, and goals",
}

var (
	goalCalories int
	goalProtein  float64
	goalCarbs    float64
	goalFat      float64
	goalWater    float64
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage the daily nutrition goal",
}

var goalSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the daily nutrition goal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			user, err := resolveUser(sqldb)
			if err != nil {
				return err
			}
			in := service.GoalInput{
				DailyCalories: goalCalories,
				ProteinG:      goalProtein,
				CarbG:         goalCarbs,
				FatG:          goalFat,
				WaterL:        optionalFloat(goalWater),
			}
			goal, err := service.CreateNutritionGoal(sqldb, user, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Goal set: %d kcal, %.0fg protein, %.0fg carbs, %.0fg fat\n",
				goal.DailyCalories, goal.ProteinG, goal.CarbG, goal.FatG)
			return nil
		})
	},
}

var (
	updCalories int
	updProtein  float64
	updCarbs    float64
	updFat      float64
	updWater    float64
)

var goalUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Change parts of the daily nutrition goal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			user, err := resolveUser(sqldb)
			if err != nil {
				return err
			}
			var in service.GoalUpdate
			flags := cmd.Flags()
			if flags.Changed("calories") {
				in.DailyCalories = &updCalories
			}
			if flags.Changed("protein") {
				in.ProteinG = &updProtein
			}
			if flags.Changed("carbs") {
				in.CarbG = &updCarbs
			}
			if flags.Changed("fat") {
				in.FatG = &updFat
			}
			if flags.Changed("water") {
				in.WaterL = &updWater
			}
			goal, err := service.UpdateNutritionGoal(sqldb, user, in)
			if err != nil {
				return err
			}
			if goal == nil {
				return fmt.Errorf("no nutrition goal set (use goal set first)")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Goal updated: %d kcal, %.0fg protein, %.0fg carbs, %.0fg fat\n",
				goal.DailyCalories, goal.ProteinG, goal.CarbG, goal.FatG)
			return nil
		})
	},
}

var goalShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current nutrition goal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			user, err := resolveUser(sqldb)
			if err != nil {
				return err
			}
			goal, err := service.GetNutritionGoal(sqldb, user)
			if err != nil {
				return err
			}
			if goal == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No nutrition goal set")
				return nil
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Calories: %d kcal\n", goal.DailyCalories)
			fmt.Fprintf(out, "Protein:  %.1f g\n", goal.ProteinG)
			fmt.Fprintf(out, "Carbs:    %.1f g\n", goal.CarbG)
			fmt.Fprintf(out, "Fat:      %.1f g\n", goal.FatG)
			if goal.WaterL != nil {
				fmt.Fprintf(out, "Water:    %.1f L\n", *goal.WaterL)
			}
			return nil
		})
	},
}

var (
	logFoodID   string
	logQuantity float64
	logMeal     string
	logDate     string
)

var nutritionLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Log a catalog food against a meal",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateOrToday(logDate)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			user, err := resolveUser(sqldb)
			if err != nil {
				return err
			}
			entry, err := service.AddFoodToMeal(sqldb, user, logFoodID, logQuantity, logMeal, date)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged. Day total: %d kcal, %.1fg protein\n", entry.TotalCalories, entry.TotalProteinG)
			return nil
		})
	},
}

var (
	mealType  string
	mealName  string
	mealDate  string
	mealItems []string
)

var nutritionMealCmd = &cobra.Command{
	Use:   "meal",
	Short: "Log several catalog foods as one meal",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateOrToday(mealDate)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			user, err := resolveUser(sqldb)
			if err != nil {
				return err
			}
			meal := model.Meal{Type: mealType, Name: mealName}
			for _, item := range mealItems {
				foodID, quantity, err := parseMealItem(item)
				if err != nil {
					return err
				}
				entry, err := service.ScaleFood(sqldb, foodID, quantity)
				if err != nil {
					return err
				}
				meal.Foods = append(meal.Foods, *entry)
			}
			entry, err := service.LogFood(sqldb, user, meal, date)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %d foods. Day total: %d kcal, %.1fg protein\n",
				len(meal.Foods), entry.TotalCalories, entry.TotalProteinG)
			return nil
		})
	},
}

// parseMealItem splits a --item value of the form foodID=quantity.
func parseMealItem(item string) (string, float64, error) {
	parts := strings.SplitN(item, "=", 2)
	if len(parts) != 2 || parts[0] == "" {
		return "", 0, fmt.Errorf("invalid --item %q (expected food-id=quantity)", item)
	}
	quantity, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return "", 0, fmt.Errorf("invalid quantity in --item %q", item)
	}
	return parts[0], quantity, nil
}

var dayDate string

var nutritionDayCmd = &cobra.Command{
	Use:   "day",
	Short: "Show one day's meals and totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateOrToday(dayDate)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			user, err := resolveUser(sqldb)
			if err != nil {
				return err
			}
			entry, err := service.DailyNutrition(sqldb, user, date)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if entry == nil {
				fmt.Fprintf(out, "Nothing logged on %s\n", date.Format("2006-01-02"))
				return nil
			}
			fmt.Fprintf(out, "%s: %d kcal, %.1fp / %.1fc / %.1ff, %.1fg fiber\n",
				entry.Date, entry.TotalCalories, entry.TotalProteinG, entry.TotalCarbsG, entry.TotalFatG, entry.TotalFiberG)
			for _, meal := range entry.Meals {
				fmt.Fprintf(out, "%s (%d kcal)\n", meal.Name, meal.TotalCalories)
				for _, f := range meal.Foods {
					fmt.Fprintf(out, "  %s %.0f%s: %d kcal\n", f.Name, f.Quantity, f.Unit, f.Calories)
				}
			}
			return nil
		})
	},
}

var (
	waterAmount float64
	waterDate   string
)

var waterCmd = &cobra.Command{
	Use:   "water",
	Short: "Log and review water intake",
}

var waterLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Log water in milliliters",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateOrToday(waterDate)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			user, err := resolveUser(sqldb)
			if err != nil {
				return err
			}
			if _, err := service.LogWater(sqldb, user, waterAmount, date); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %.0f ml\n", waterAmount)
			return nil
		})
	},
}

var waterShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the day's water entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateOrToday(waterDate)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			user, err := resolveUser(sqldb)
			if err != nil {
				return err
			}
			entries, err := service.WaterEntries(sqldb, user, date)
			if err != nil {
				return err
			}
			var total float64
			for _, e := range entries {
				total += e.AmountMl
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.0f ml\n", e.LoggedAt.Local().Format("15:04"), e.AmountMl)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Total: %.0f ml\n", total)
			return nil
		})
	},
}

var statsDays int

var nutritionStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show averages, consistency, and goal adherence",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			user, err := resolveUser(sqldb)
			if err != nil {
				return err
			}
			stats, err := service.GetNutritionStats(sqldb, user, statsDays, time.Now())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Avg calories:   %d kcal\n", stats.AvgCalories)
			fmt.Fprintf(out, "Avg protein:    %.1f g\n", stats.AvgProteinG)
			fmt.Fprintf(out, "Avg carbs:      %.1f g\n", stats.AvgCarbsG)
			fmt.Fprintf(out, "Avg fat:        %.1f g\n", stats.AvgFatG)
			fmt.Fprintf(out, "Consistency:    %d%%\n", stats.Consistency)
			fmt.Fprintf(out, "Goal adherence: %d%%\n", stats.GoalAdherence)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(nutritionCmd)
	nutritionCmd.AddCommand(goalCmd, nutritionLogCmd, nutritionMealCmd, nutritionDayCmd, waterCmd, nutritionStatsCmd)
	goalCmd.AddCommand(goalSetCmd, goalUpdateCmd, goalShowCmd)
	waterCmd.AddCommand(waterLogCmd, waterShowCmd)

	goalSetCmd.Flags().IntVar(&goalCalories, "calories", 0, "Daily calorie target")
	goalSetCmd.Flags().Float64Var(&goalProtein, "protein", 0, "Daily protein target in grams")
	goalSetCmd.Flags().Float64Var(&goalCarbs, "carbs", 0, "Daily carb target in grams")
	goalSetCmd.Flags().Float64Var(&goalFat, "fat", 0, "Daily fat target in grams")
	goalSetCmd.Flags().Float64Var(&goalWater, "water", -1, "Daily water target in liters (optional)")
	_ = goalSetCmd.MarkFlagRequired("calories")

	goalUpdateCmd.Flags().IntVar(&updCalories, "calories", 0, "Daily calorie target")
	goalUpdateCmd.Flags().Float64Var(&updProtein, "protein", 0, "Daily protein target in grams")
	goalUpdateCmd.Flags().Float64Var(&updCarbs, "carbs", 0, "Daily carb target in grams")
	goalUpdateCmd.Flags().Float64Var(&updFat, "fat", 0, "Daily fat target in grams")
	goalUpdateCmd.Flags().Float64Var(&updWater, "water", 0, "Daily water target in liters")

	nutritionMealCmd.Flags().StringVar(&mealType, "type", "", "Meal type: breakfast, lunch, dinner, or snack")
	nutritionMealCmd.Flags().StringVar(&mealName, "name", "", "Meal name (defaults to the type)")
	nutritionMealCmd.Flags().StringArrayVar(&mealItems, "item", nil, "Food and quantity as food-id=quantity (repeatable)")
	nutritionMealCmd.Flags().StringVar(&mealDate, "date", "", "Date YYYY-MM-DD (defaults to today)")
	_ = nutritionMealCmd.MarkFlagRequired("type")
	_ = nutritionMealCmd.MarkFlagRequired("item")

	nutritionLogCmd.Flags().StringVar(&logFoodID, "food", "", "Food id from the catalog")
	nutritionLogCmd.Flags().Float64Var(&logQuantity, "quantity", 0, "Quantity in the food's serving unit")
	nutritionLogCmd.Flags().StringVar(&logMeal, "meal", "", "Meal type: breakfast, lunch, dinner, or snack")
	nutritionLogCmd.Flags().StringVar(&logDate, "date", "", "Date YYYY-MM-DD (defaults to today)")
	_ = nutritionLogCmd.MarkFlagRequired("food")
	_ = nutritionLogCmd.MarkFlagRequired("quantity")
	_ = nutritionLogCmd.MarkFlagRequired("meal")

	nutritionDayCmd.Flags().StringVar(&dayDate, "date", "", "Date YYYY-MM-DD (defaults to today)")

	waterLogCmd.Flags().Float64Var(&waterAmount, "amount", 0, "Amount in milliliters")
	waterLogCmd.Flags().StringVar(&waterDate, "date", "", "Date YYYY-MM-DD (defaults to today)")
	_ = waterLogCmd.MarkFlagRequired("amount")
	waterShowCmd.Flags().StringVar(&waterDate, "date", "", "Date YYYY-MM-DD (defaults to today)")

	nutritionStatsCmd.Flags().IntVar(&statsDays, "days", 7, "Window size in days")
}
