package service_test

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/Gavin-Dsouza/gymApp/internal/model"
	"github.com/Gavin-Dsouza/gymApp/internal/service"
	"github.com/Gavin-Dsouza/gymApp/internal/store"
)

func seedFoods(t *testing.T, db *sql.DB) {
	t.Helper()
	foods := []model.Food{
		{ID: "food-chicken", Name: "Chicken Breast", ServingSize: 100, ServingUnit: "g", CaloriesPerServing: 165, ProteinPerServing: 31, FatPerServing: 3.6, Category: "protein"},
		{ID: "food-banana", Name: "Banana", ServingSize: 100, ServingUnit: "g", CaloriesPerServing: 89, ProteinPerServing: 1.1, CarbsPerServing: 23, FatPerServing: 0.3, FiberPerServing: 2.6, Category: "fruits"},
	}
	for _, f := range foods {
		if err := store.AddFood(db, f); err != nil {
			t.Fatalf("seed food %s: %v", f.Name, err)
		}
	}
}

func TestAddFoodToMealScalesAndRollsUp(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()
	seedFoods(t, db)

	date := time.Date(2026, 8, 15, 12, 0, 0, 0, time.Local)

	// 150g chicken: 1.5 servings -> 248 kcal, 46.5p, 0c, 5.4f.
	entry, err := service.AddFoodToMeal(db, "alice", "food-chicken", 150, "lunch", date)
	if err != nil {
		t.Fatalf("add chicken: %v", err)
	}
	if entry.TotalCalories != 248 {
		t.Fatalf("expected 248 kcal, got %d", entry.TotalCalories)
	}
	if entry.TotalProteinG != 46.5 {
		t.Fatalf("expected 46.5g protein, got %v", entry.TotalProteinG)
	}

	// 118g banana: 1.18 servings -> 105 kcal, 1.3p, 27.1c, 0.4f, 3.1 fiber.
	entry, err = service.AddFoodToMeal(db, "alice", "food-banana", 118, "lunch", date)
	if err != nil {
		t.Fatalf("add banana: %v", err)
	}
	if len(entry.Meals) != 1 {
		t.Fatalf("expected both foods in one lunch meal, got %d meals", len(entry.Meals))
	}
	lunch := entry.Meals[0]
	if len(lunch.Foods) != 2 {
		t.Fatalf("expected 2 foods in lunch, got %d", len(lunch.Foods))
	}
	if lunch.TotalCalories != 353 {
		t.Fatalf("expected lunch 353 kcal, got %d", lunch.TotalCalories)
	}
	if entry.TotalCalories != 353 || entry.TotalProteinG != 47.8 || entry.TotalCarbsG != 27.1 || entry.TotalFatG != 5.8 {
		t.Fatalf("unexpected entry totals: %+v", entry)
	}
	if entry.TotalFiberG != 3.1 {
		t.Fatalf("expected fiber 3.1, got %v", entry.TotalFiberG)
	}

	// Chicken has no fiber per serving, so its food entry carries none.
	if lunch.Foods[0].FiberG != nil {
		t.Fatalf("expected no fiber on chicken, got %v", *lunch.Foods[0].FiberG)
	}
	if lunch.Foods[1].FiberG == nil || *lunch.Foods[1].FiberG != 3.1 {
		t.Fatalf("expected banana fiber 3.1, got %+v", lunch.Foods[1].FiberG)
	}

	// A second meal type creates a separate meal on the same day.
	entry, err = service.AddFoodToMeal(db, "alice", "food-chicken", 100, "dinner", date)
	if err != nil {
		t.Fatalf("add dinner chicken: %v", err)
	}
	if len(entry.Meals) != 2 {
		t.Fatalf("expected 2 meals, got %d", len(entry.Meals))
	}
	if entry.TotalCalories != 518 {
		t.Fatalf("expected day total 518 kcal, got %d", entry.TotalCalories)
	}

	// The persisted entry matches what the call returned.
	stored, err := service.DailyNutrition(db, "alice", date)
	if err != nil {
		t.Fatalf("daily nutrition: %v", err)
	}
	if stored == nil || stored.TotalCalories != 518 {
		t.Fatalf("expected stored day total 518, got %+v", stored)
	}
}

func TestAddFoodToMealUnknownFoodAndType(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()
	seedFoods(t, db)

	_, err := service.AddFoodToMeal(db, "alice", "nope", 100, "lunch", time.Now())
	if !errors.Is(err, service.ErrFoodNotFound) {
		t.Fatalf("expected ErrFoodNotFound, got %v", err)
	}

	_, err = service.AddFoodToMeal(db, "alice", "food-chicken", 100, "brunch", time.Now())
	if err == nil {
		t.Fatalf("expected invalid meal type to fail")
	}
}

func TestLogFoodMergesIntoExistingMealType(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	date := time.Date(2026, 8, 15, 8, 0, 0, 0, time.Local)
	first := model.Meal{
		Type: "breakfast",
		Foods: []model.FoodEntry{
			{Name: "Oats", Quantity: 100, Unit: "g", Calories: 389, ProteinG: 17, CarbsG: 66, FatG: 7, FiberG: floatPtr(11)},
		},
	}
	if _, err := service.LogFood(db, "alice", first, date); err != nil {
		t.Fatalf("log first meal: %v", err)
	}

	second := model.Meal{
		Type: "breakfast",
		Foods: []model.FoodEntry{
			{Name: "Whole Milk", Quantity: 240, Unit: "ml", Calories: 146, ProteinG: 8, CarbsG: 11, FatG: 8},
		},
	}
	entry, err := service.LogFood(db, "alice", second, date)
	if err != nil {
		t.Fatalf("log second meal: %v", err)
	}
	if len(entry.Meals) != 1 {
		t.Fatalf("expected one breakfast meal, got %d", len(entry.Meals))
	}
	if len(entry.Meals[0].Foods) != 2 {
		t.Fatalf("expected merged foods, got %d", len(entry.Meals[0].Foods))
	}
	if entry.TotalCalories != 535 {
		t.Fatalf("expected 535 kcal, got %d", entry.TotalCalories)
	}
	if entry.TotalFiberG != 11 {
		t.Fatalf("expected fiber 11, got %v", entry.TotalFiberG)
	}
}

func TestNutritionGoalLifecycle(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	// Updating before any goal exists reports nothing to update.
	updated, err := service.UpdateNutritionGoal(db, "alice", service.GoalUpdate{DailyCalories: intPtr(1800)})
	if err != nil {
		t.Fatalf("update absent goal: %v", err)
	}
	if updated != nil {
		t.Fatalf("expected nil when no goal exists, got %+v", updated)
	}

	goal, err := service.CreateNutritionGoal(db, "alice", service.GoalInput{
		DailyCalories: 2200, ProteinG: 160, CarbG: 220, FatG: 70, WaterL: floatPtr(3),
	})
	if err != nil {
		t.Fatalf("create goal: %v", err)
	}
	if goal.DailyCalories != 2200 {
		t.Fatalf("expected 2200 kcal goal, got %d", goal.DailyCalories)
	}

	updated, err = service.UpdateNutritionGoal(db, "alice", service.GoalUpdate{DailyCalories: intPtr(2000)})
	if err != nil {
		t.Fatalf("update goal: %v", err)
	}
	if updated.DailyCalories != 2000 || updated.ProteinG != 160 {
		t.Fatalf("expected partial update to keep protein, got %+v", updated)
	}

	got, err := service.GetNutritionGoal(db, "alice")
	if err != nil {
		t.Fatalf("get goal: %v", err)
	}
	if got.DailyCalories != 2000 {
		t.Fatalf("expected stored goal 2000 kcal, got %d", got.DailyCalories)
	}

	// One goal per owner: a second create replaces the first.
	if _, err := service.CreateNutritionGoal(db, "alice", service.GoalInput{DailyCalories: 2500, ProteinG: 180, CarbG: 250, FatG: 80}); err != nil {
		t.Fatalf("recreate goal: %v", err)
	}
	got, err = service.GetNutritionGoal(db, "alice")
	if err != nil {
		t.Fatalf("get replaced goal: %v", err)
	}
	if got.DailyCalories != 2500 {
		t.Fatalf("expected replaced goal 2500 kcal, got %d", got.DailyCalories)
	}
}

func TestNutritionStats(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.Local)

	empty, err := service.GetNutritionStats(db, "alice", 7, now)
	if err != nil {
		t.Fatalf("empty stats: %v", err)
	}
	if empty != (service.NutritionStats{}) {
		t.Fatalf("expected zero stats with no entries, got %+v", empty)
	}

	if _, err := service.CreateNutritionGoal(db, "alice", service.GoalInput{
		DailyCalories: 2000, ProteinG: 150, CarbG: 200, FatG: 60,
	}); err != nil {
		t.Fatalf("create goal: %v", err)
	}

	entries := []model.NutritionEntry{
		{ID: "ne-1", UserID: "alice", Date: "2026-08-18", TotalCalories: 1900, TotalProteinG: 140, TotalCarbsG: 190, TotalFatG: 55},
		{ID: "ne-2", UserID: "alice", Date: "2026-08-19", TotalCalories: 2100, TotalProteinG: 160, TotalCarbsG: 210, TotalFatG: 65},
	}
	for _, e := range entries {
		if err := store.PutNutritionEntry(db, e); err != nil {
			t.Fatalf("put entry %s: %v", e.Date, err)
		}
	}

	stats, err := service.GetNutritionStats(db, "alice", 7, now)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.AvgCalories != 2000 {
		t.Fatalf("expected avg 2000 kcal, got %d", stats.AvgCalories)
	}
	if stats.AvgProteinG != 150 {
		t.Fatalf("expected avg 150g protein, got %v", stats.AvgProteinG)
	}
	if stats.AvgCarbsG != 200 || stats.AvgFatG != 60 {
		t.Fatalf("unexpected macro averages: %+v", stats)
	}
	// 2 logged days over a 7 day window.
	if stats.Consistency != 29 {
		t.Fatalf("expected consistency 29, got %d", stats.Consistency)
	}
	// Averages hit the goal exactly.
	if stats.GoalAdherence != 100 {
		t.Fatalf("expected adherence 100, got %d", stats.GoalAdherence)
	}
}

func TestLogWaterAndDailyTotal(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	date := time.Date(2026, 8, 15, 0, 0, 0, 0, time.Local)
	for _, amount := range []float64{250, 500} {
		if _, err := service.LogWater(db, "alice", amount, date); err != nil {
			t.Fatalf("log water %v: %v", amount, err)
		}
	}
	if _, err := service.LogWater(db, "alice", 300, date.AddDate(0, 0, 1)); err != nil {
		t.Fatalf("log next-day water: %v", err)
	}

	entries, err := service.WaterEntries(db, "alice", date)
	if err != nil {
		t.Fatalf("water entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries for the day, got %d", len(entries))
	}
	if entries[0].AmountMl != 250 || entries[1].AmountMl != 500 {
		t.Fatalf("expected logged order, got %+v", entries)
	}

	if _, err := service.LogWater(db, "alice", 0, date); err == nil {
		t.Fatalf("expected zero amount to fail")
	}
}
