package service

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/Gavin-Dsouza/gymApp/internal/model"
	"github.com/Gavin-Dsouza/gymApp/internal/store"
)

var ErrFoodNotFound = errors.New("food not found")

var mealNames = map[string]string{
	"breakfast": "Breakfast",
	"lunch":     "Lunch",
	"dinner":    "Dinner",
	"snack":     "Snack",
}

// GoalInput carries the targets for a new nutrition goal.
type GoalInput struct {
	DailyCalories int
	ProteinG      float64
	CarbG         float64
	FatG          float64
	WaterL        *float64
}

// GoalUpdate is a partial update; nil fields keep their stored value.
type GoalUpdate struct {
	DailyCalories *int
	ProteinG      *float64
	CarbG         *float64
	FatG          *float64
	WaterL        *float64
}

// NutritionStats averages the days that actually have an entry inside the
// window. Consistency is the share of window days with an entry; adherence
// compares average calories and protein against the goal.
type NutritionStats struct {
	AvgCalories   int
	AvgProteinG   float64
	AvgCarbsG     float64
	AvgFatG       float64
	Consistency   int
	GoalAdherence int
}

// CreateNutritionGoal sets the owner's goal, replacing any previous one.
func CreateNutritionGoal(db *sql.DB, userID string, in GoalInput) (*model.NutritionGoal, error) {
	userID, err := requireUser(userID)
	if err != nil {
		return nil, err
	}
	if err := validatePositiveInt("daily calories", in.DailyCalories); err != nil {
		return nil, err
	}
	if err := validateNonNegativeFloat("protein goal", in.ProteinG); err != nil {
		return nil, err
	}
	if err := validateNonNegativeFloat("carb goal", in.CarbG); err != nil {
		return nil, err
	}
	if err := validateNonNegativeFloat("fat goal", in.FatG); err != nil {
		return nil, err
	}
	now := time.Now()
	goal := model.NutritionGoal{
		ID:            uuid.NewString(),
		UserID:        userID,
		DailyCalories: in.DailyCalories,
		ProteinG:      in.ProteinG,
		CarbG:         in.CarbG,
		FatG:          in.FatG,
		WaterL:        in.WaterL,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := store.PutNutritionGoal(db, goal); err != nil {
		return nil, err
	}
	return &goal, nil
}

// GetNutritionGoal returns nil without error when no goal is set.
func GetNutritionGoal(db *sql.DB, userID string) (*model.NutritionGoal, error) {
	userID, err := requireUser(userID)
	if err != nil {
		return nil, err
	}
	return store.GetNutritionGoal(db, userID)
}

// UpdateNutritionGoal applies a partial update to the stored goal and
// returns nil when the owner has no goal to update.
func UpdateNutritionGoal(db *sql.DB, userID string, in GoalUpdate) (*model.NutritionGoal, error) {
	goal, err := GetNutritionGoal(db, userID)
	if err != nil {
		return nil, err
	}
	if goal == nil {
		return nil, nil
	}
	if in.DailyCalories != nil {
		goal.DailyCalories = *in.DailyCalories
	}
	if in.ProteinG != nil {
		goal.ProteinG = *in.ProteinG
	}
	if in.CarbG != nil {
		goal.CarbG = *in.CarbG
	}
	if in.FatG != nil {
		goal.FatG = *in.FatG
	}
	if in.WaterL != nil {
		goal.WaterL = in.WaterL
	}
	goal.UpdatedAt = time.Now()
	if err := store.PutNutritionGoal(db, *goal); err != nil {
		return nil, err
	}
	return goal, nil
}

// AddFoodToMeal scales a catalog food to the given quantity, files it under
// the day's meal of the given type (creating entry and meal as needed), and
// recomputes the roll-ups.
func AddFoodToMeal(db *sql.DB, userID, foodID string, quantity float64, mealType string, date time.Time) (*model.NutritionEntry, error) {
	userID, err := requireUser(userID)
	if err != nil {
		return nil, err
	}
	if _, ok := mealNames[mealType]; !ok {
		return nil, fmt.Errorf("unknown meal type %q", mealType)
	}
	foodEntry, err := ScaleFood(db, foodID, quantity)
	if err != nil {
		return nil, err
	}

	entry, err := entryForDay(db, userID, date)
	if err != nil {
		return nil, err
	}
	meal := mealOfType(entry, mealType)
	meal.Foods = append(meal.Foods, *foodEntry)

	recalculateMealTotals(meal)
	recalculateEntryTotals(entry)
	if err := store.PutNutritionEntry(db, *entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// ScaleFood converts a catalog food and a quantity in its serving unit
// into a logged food entry with the standard rounding applied.
func ScaleFood(db *sql.DB, foodID string, quantity float64) (*model.FoodEntry, error) {
	if err := validatePositiveFloat("quantity", quantity); err != nil {
		return nil, err
	}
	food, err := store.GetFood(db, foodID)
	if err != nil {
		return nil, err
	}
	if food == nil {
		return nil, fmt.Errorf("%w: %s", ErrFoodNotFound, foodID)
	}

	multiplier := quantity / food.ServingSize
	foodEntry := model.FoodEntry{
		ID:       uuid.NewString(),
		FoodID:   food.ID,
		Name:     food.Name,
		Quantity: quantity,
		Unit:     food.ServingUnit,
		Calories: roundCalories(food.CaloriesPerServing * multiplier),
		ProteinG: roundGrams(food.ProteinPerServing * multiplier),
		CarbsG:   roundGrams(food.CarbsPerServing * multiplier),
		FatG:     roundGrams(food.FatPerServing * multiplier),
	}
	if food.FiberPerServing > 0 {
		fiber := roundGrams(food.FiberPerServing * multiplier)
		foodEntry.FiberG = &fiber
	}
	return &foodEntry, nil
}

// LogFood merges a pre-built meal into the day's entry. Foods land in the
// existing meal of the same type when one exists, so a day never carries
// two meals of one type.
func LogFood(db *sql.DB, userID string, meal model.Meal, date time.Time) (*model.NutritionEntry, error) {
	userID, err := requireUser(userID)
	if err != nil {
		return nil, err
	}
	if _, ok := mealNames[meal.Type]; !ok {
		return nil, fmt.Errorf("unknown meal type %q", meal.Type)
	}
	entry, err := entryForDay(db, userID, date)
	if err != nil {
		return nil, err
	}
	target := mealOfType(entry, meal.Type)
	if meal.Name != "" {
		target.Name = meal.Name
	}
	for _, f := range meal.Foods {
		if f.ID == "" {
			f.ID = uuid.NewString()
		}
		target.Foods = append(target.Foods, f)
	}

	recalculateMealTotals(target)
	recalculateEntryTotals(entry)
	if err := store.PutNutritionEntry(db, *entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// DailyNutrition returns the entry for one day, or nil when nothing was
// logged.
func DailyNutrition(db *sql.DB, userID string, date time.Time) (*model.NutritionEntry, error) {
	userID, err := requireUser(userID)
	if err != nil {
		return nil, err
	}
	return store.GetNutritionEntry(db, userID, dayKey(date))
}

// NutritionEntries returns entries in the inclusive range, newest first.
func NutritionEntries(db *sql.DB, userID string, from, to time.Time) ([]model.NutritionEntry, error) {
	userID, err := requireUser(userID)
	if err != nil {
		return nil, err
	}
	return store.ListNutritionEntries(db, userID, dayKey(from), dayKey(to))
}

// LogWater appends one water entry for the day.
func LogWater(db *sql.DB, userID string, amountMl float64, date time.Time) (*model.WaterEntry, error) {
	userID, err := requireUser(userID)
	if err != nil {
		return nil, err
	}
	if err := validatePositiveFloat("amount", amountMl); err != nil {
		return nil, err
	}
	entry := model.WaterEntry{
		ID:       uuid.NewString(),
		UserID:   userID,
		Date:     dayKey(date),
		AmountMl: amountMl,
		LoggedAt: time.Now(),
	}
	if err := store.AddWaterEntry(db, entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// WaterEntries returns the day's water log in logged order.
func WaterEntries(db *sql.DB, userID string, date time.Time) ([]model.WaterEntry, error) {
	userID, err := requireUser(userID)
	if err != nil {
		return nil, err
	}
	return store.ListWaterEntries(db, userID, dayKey(date))
}

// GetNutritionStats aggregates the trailing window ending now. Days without
// entries lower consistency but do not drag the averages down. An empty
// window yields a zero value.
func GetNutritionStats(db *sql.DB, userID string, days int, now time.Time) (NutritionStats, error) {
	userID, err := requireUser(userID)
	if err != nil {
		return NutritionStats{}, err
	}
	if err := validatePositiveInt("days", days); err != nil {
		return NutritionStats{}, err
	}
	from := now.AddDate(0, 0, -days)
	entries, err := store.ListNutritionEntries(db, userID, dayKey(from), dayKey(now))
	if err != nil {
		return NutritionStats{}, err
	}
	if len(entries) == 0 {
		return NutritionStats{}, nil
	}

	var calories, protein, carbs, fat float64
	for _, e := range entries {
		calories += float64(e.TotalCalories)
		protein += e.TotalProteinG
		carbs += e.TotalCarbsG
		fat += e.TotalFatG
	}
	n := float64(len(entries))
	avgCalories := calories / n
	avgProtein := protein / n

	adherence := 0.0
	goal, err := store.GetNutritionGoal(db, userID)
	if err != nil {
		return NutritionStats{}, err
	}
	if goal != nil {
		calorieAccuracy := math.Max(0, 100-math.Abs(avgCalories-float64(goal.DailyCalories))/float64(goal.DailyCalories)*100)
		proteinAccuracy := math.Max(0, 100-math.Abs(avgProtein-goal.ProteinG)/goal.ProteinG*100)
		adherence = (calorieAccuracy + proteinAccuracy) / 2
	}

	return NutritionStats{
		AvgCalories:   roundCalories(avgCalories),
		AvgProteinG:   roundGrams(avgProtein),
		AvgCarbsG:     roundGrams(carbs / n),
		AvgFatG:       roundGrams(fat / n),
		Consistency:   int(math.Round(n / float64(days) * 100)),
		GoalAdherence: int(math.Round(adherence)),
	}, nil
}

func entryForDay(db *sql.DB, userID string, date time.Time) (*model.NutritionEntry, error) {
	entry, err := store.GetNutritionEntry(db, userID, dayKey(date))
	if err != nil {
		return nil, err
	}
	if entry == nil {
		entry = &model.NutritionEntry{
			ID:     uuid.NewString(),
			UserID: userID,
			Date:   dayKey(date),
			Meals:  []model.Meal{},
		}
	}
	return entry, nil
}

// mealOfType returns the day's meal of the given type, creating it in
// place when missing. The pointer aliases entry.Meals.
func mealOfType(entry *model.NutritionEntry, mealType string) *model.Meal {
	for i := range entry.Meals {
		if entry.Meals[i].Type == mealType {
			return &entry.Meals[i]
		}
	}
	entry.Meals = append(entry.Meals, model.Meal{
		ID:       uuid.NewString(),
		Type:     mealType,
		Name:     mealNames[mealType],
		Foods:    []model.FoodEntry{},
		LoggedAt: time.Now(),
	})
	return &entry.Meals[len(entry.Meals)-1]
}

func recalculateMealTotals(meal *model.Meal) {
	var calories int
	var protein, carbs, fat float64
	for _, f := range meal.Foods {
		calories += f.Calories
		protein += f.ProteinG
		carbs += f.CarbsG
		fat += f.FatG
	}
	meal.TotalCalories = calories
	meal.TotalProteinG = roundGrams(protein)
	meal.TotalCarbsG = roundGrams(carbs)
	meal.TotalFatG = roundGrams(fat)
}

func recalculateEntryTotals(entry *model.NutritionEntry) {
	var calories int
	var protein, carbs, fat, fiber float64
	for _, m := range entry.Meals {
		calories += m.TotalCalories
		protein += m.TotalProteinG
		carbs += m.TotalCarbsG
		fat += m.TotalFatG
		for _, f := range m.Foods {
			if f.FiberG != nil {
				fiber += *f.FiberG
			}
		}
	}
	entry.TotalCalories = calories
	entry.TotalProteinG = roundGrams(protein)
	entry.TotalCarbsG = roundGrams(carbs)
	entry.TotalFatG = roundGrams(fat)
	entry.TotalFiberG = roundGrams(fiber)
}
