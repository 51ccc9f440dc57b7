package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Gavin-Dsouza/gymApp/internal/model"
)

// PutNutritionGoal upserts the single goal row per owner.
func PutNutritionGoal(db *sql.DB, g model.NutritionGoal) error {
	if _, err := db.Exec(`
INSERT INTO nutrition_goals(id, user_id, daily_calories, protein_g, carb_g, fat_g, water_l, created_at, updated_at)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(user_id) DO UPDATE SET
  daily_calories=excluded.daily_calories,
  protein_g=excluded.protein_g,
  carb_g=excluded.carb_g,
  fat_g=excluded.fat_g,
  water_l=excluded.water_l,
  updated_at=excluded.updated_at
`, g.ID, g.UserID, g.DailyCalories, g.ProteinG, g.CarbG, g.FatG, g.WaterL, g.CreatedAt.Format(time.RFC3339), g.UpdatedAt.Format(time.RFC3339)); err != nil {
		return fmt.Errorf("upsert nutrition goal: %w", err)
	}
	return nil
}

// GetNutritionGoal returns nil without error when the owner has no goal.
func GetNutritionGoal(db *sql.DB, userID string) (*model.NutritionGoal, error) {
	var g model.NutritionGoal
	var waterL sql.NullFloat64
	var createdRaw, updatedRaw string
	err := db.QueryRow(`
SELECT id, user_id, daily_calories, protein_g, carb_g, fat_g, water_l, created_at, updated_at
FROM nutrition_goals
WHERE user_id = ?
`, userID).Scan(&g.ID, &g.UserID, &g.DailyCalories, &g.ProteinG, &g.CarbG, &g.FatG, &waterL, &createdRaw, &updatedRaw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get nutrition goal: %w", err)
	}
	if waterL.Valid {
		v := waterL.Float64
		g.WaterL = &v
	}
	if g.CreatedAt, err = time.Parse(time.RFC3339, createdRaw); err != nil {
		return nil, fmt.Errorf("parse goal created_at: %w", err)
	}
	if g.UpdatedAt, err = time.Parse(time.RFC3339, updatedRaw); err != nil {
		return nil, fmt.Errorf("parse goal updated_at: %w", err)
	}
	return &g, nil
}

// PutNutritionEntry persists the full day aggregate: the entry row is
// upserted and all meal/food rows rewritten in one transaction.
func PutNutritionEntry(db *sql.DB, e model.NutritionEntry) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin put nutrition entry tx: %w", err)
	}
	if _, err := tx.Exec(`
INSERT INTO nutrition_entries(id, user_id, entry_date, total_calories, total_protein_g, total_carbs_g, total_fat_g, total_fiber_g)
VALUES(?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  total_calories=excluded.total_calories,
  total_protein_g=excluded.total_protein_g,
  total_carbs_g=excluded.total_carbs_g,
  total_fat_g=excluded.total_fat_g,
  total_fiber_g=excluded.total_fiber_g
`, e.ID, e.UserID, e.Date, e.TotalCalories, e.TotalProteinG, e.TotalCarbsG, e.TotalFatG, e.TotalFiberG); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("upsert nutrition entry: %w", translateErr(err))
	}
	if _, err := tx.Exec(`DELETE FROM meals WHERE entry_id = ?`, e.ID); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("rewrite meals for entry %s: %w", e.ID, err)
	}
	for i, meal := range e.Meals {
		if _, err := tx.Exec(`
INSERT INTO meals(id, entry_id, meal_type, name, position, logged_at, total_calories, total_protein_g, total_carbs_g, total_fat_g)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, meal.ID, e.ID, meal.Type, meal.Name, i, meal.LoggedAt.Format(time.RFC3339), meal.TotalCalories, meal.TotalProteinG, meal.TotalCarbsG, meal.TotalFatG); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert meal %s: %w", meal.ID, translateErr(err))
		}
		for j, food := range meal.Foods {
			if _, err := tx.Exec(`
INSERT INTO food_entries(id, meal_id, food_id, name, position, quantity, unit, calories, protein_g, carbs_g, fat_g, fiber_g)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, food.ID, meal.ID, food.FoodID, food.Name, j, food.Quantity, food.Unit, food.Calories, food.ProteinG, food.CarbsG, food.FatG, food.FiberG); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("insert food entry %s: %w", food.ID, translateErr(err))
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit put nutrition entry: %w", err)
	}
	return nil
}

// GetNutritionEntry returns the single entry for (owner, exact date), or nil
// without error when the day has no entry. Date is a YYYY-MM-DD key.
func GetNutritionEntry(db *sql.DB, userID, date string) (*model.NutritionEntry, error) {
	row := db.QueryRow(`
SELECT id, user_id, entry_date, total_calories, total_protein_g, total_carbs_g, total_fat_g, total_fiber_g
FROM nutrition_entries
WHERE user_id = ? AND entry_date = ?
`, userID, date)
	e, err := scanNutritionEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get nutrition entry %s/%s: %w", userID, date, err)
	}
	if e.Meals, err = loadMeals(db, e.ID); err != nil {
		return nil, err
	}
	return e, nil
}

// ListNutritionEntries returns entries in the inclusive date range,
// descending by date.
func ListNutritionEntries(db *sql.DB, userID, fromDate, toDate string) ([]model.NutritionEntry, error) {
	rows, err := db.Query(`
SELECT id, user_id, entry_date, total_calories, total_protein_g, total_carbs_g, total_fat_g, total_fiber_g
FROM nutrition_entries
WHERE user_id = ? AND entry_date >= ? AND entry_date <= ?
ORDER BY entry_date DESC
`, userID, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("list nutrition entries: %w", err)
	}
	defer rows.Close()

	entries := make([]model.NutritionEntry, 0)
	for rows.Next() {
		e, err := scanNutritionEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan nutrition entry: %w", err)
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate nutrition entries: %w", err)
	}
	for i := range entries {
		if entries[i].Meals, err = loadMeals(db, entries[i].ID); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

func scanNutritionEntry(row rowScanner) (*model.NutritionEntry, error) {
	var e model.NutritionEntry
	if err := row.Scan(&e.ID, &e.UserID, &e.Date, &e.TotalCalories, &e.TotalProteinG, &e.TotalCarbsG, &e.TotalFatG, &e.TotalFiberG); err != nil {
		return nil, err
	}
	return &e, nil
}

func loadMeals(db *sql.DB, entryID string) ([]model.Meal, error) {
	rows, err := db.Query(`
SELECT id, meal_type, name, logged_at, total_calories, total_protein_g, total_carbs_g, total_fat_g
FROM meals
WHERE entry_id = ?
ORDER BY position ASC
`, entryID)
	if err != nil {
		return nil, fmt.Errorf("load meals for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	meals := make([]model.Meal, 0)
	for rows.Next() {
		var m model.Meal
		var loggedRaw string
		if err := rows.Scan(&m.ID, &m.Type, &m.Name, &loggedRaw, &m.TotalCalories, &m.TotalProteinG, &m.TotalCarbsG, &m.TotalFatG); err != nil {
			return nil, fmt.Errorf("scan meal: %w", err)
		}
		if m.LoggedAt, err = time.Parse(time.RFC3339, loggedRaw); err != nil {
			return nil, fmt.Errorf("parse meal logged_at: %w", err)
		}
		meals = append(meals, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meals: %w", err)
	}
	for i := range meals {
		if meals[i].Foods, err = loadFoodEntries(db, meals[i].ID); err != nil {
			return nil, err
		}
	}
	return meals, nil
}

func loadFoodEntries(db *sql.DB, mealID string) ([]model.FoodEntry, error) {
	rows, err := db.Query(`
SELECT id, food_id, name, quantity, unit, calories, protein_g, carbs_g, fat_g, fiber_g
FROM food_entries
WHERE meal_id = ?
ORDER BY position ASC
`, mealID)
	if err != nil {
		return nil, fmt.Errorf("load food entries for meal %s: %w", mealID, err)
	}
	defer rows.Close()

	foods := make([]model.FoodEntry, 0)
	for rows.Next() {
		var f model.FoodEntry
		var fiber sql.NullFloat64
		if err := rows.Scan(&f.ID, &f.FoodID, &f.Name, &f.Quantity, &f.Unit, &f.Calories, &f.ProteinG, &f.CarbsG, &f.FatG, &fiber); err != nil {
			return nil, fmt.Errorf("scan food entry: %w", err)
		}
		if fiber.Valid {
			v := fiber.Float64
			f.FiberG = &v
		}
		foods = append(foods, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate food entries: %w", err)
	}
	return foods, nil
}
