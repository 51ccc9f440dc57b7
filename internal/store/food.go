package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/Gavin-Dsouza/gymApp/internal/model"
)

const foodColumns = `id, name, brand, serving_size, serving_unit, calories_per_serving, protein_per_serving, carbs_per_serving, fat_per_serving, fiber_per_serving, category`

func AddFood(db *sql.DB, f model.Food) error {
	if _, err := db.Exec(`
INSERT INTO foods(id, name, brand, serving_size, serving_unit, calories_per_serving, protein_per_serving, carbs_per_serving, fat_per_serving, fiber_per_serving, category)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, f.ID, f.Name, f.Brand, f.ServingSize, f.ServingUnit, f.CaloriesPerServing, f.ProteinPerServing, f.CarbsPerServing, f.FatPerServing, f.FiberPerServing, f.Category); err != nil {
		return fmt.Errorf("insert food: %w", translateErr(err))
	}
	return nil
}

// GetFood returns nil without error when the id does not resolve.
func GetFood(db *sql.DB, id string) (*model.Food, error) {
	row := db.QueryRow(`SELECT `+foodColumns+` FROM foods WHERE id = ?`, id)
	f, err := scanFood(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get food %s: %w", id, err)
	}
	return f, nil
}

func ListFoods(db *sql.DB) ([]model.Food, error) {
	rows, err := db.Query(`SELECT ` + foodColumns + ` FROM foods ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list foods: %w", err)
	}
	return collectFoods(rows)
}

func ListFoodsByCategory(db *sql.DB, category string) ([]model.Food, error) {
	rows, err := db.Query(`SELECT `+foodColumns+` FROM foods WHERE category = ? ORDER BY name ASC`, category)
	if err != nil {
		return nil, fmt.Errorf("list foods by category %q: %w", category, err)
	}
	return collectFoods(rows)
}

// SearchFoods matches by case-insensitive substring over the name.
func SearchFoods(db *sql.DB, query string) ([]model.Food, error) {
	needle := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	rows, err := db.Query(`SELECT `+foodColumns+` FROM foods WHERE LOWER(name) LIKE ? ORDER BY name ASC`, needle)
	if err != nil {
		return nil, fmt.Errorf("search foods %q: %w", query, err)
	}
	return collectFoods(rows)
}

func CountFoods(db *sql.DB) (int, error) {
	var count int
	if err := db.QueryRow(`SELECT COUNT(1) FROM foods`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count foods: %w", err)
	}
	return count, nil
}

func scanFood(row rowScanner) (*model.Food, error) {
	var f model.Food
	if err := row.Scan(&f.ID, &f.Name, &f.Brand, &f.ServingSize, &f.ServingUnit, &f.CaloriesPerServing, &f.ProteinPerServing, &f.CarbsPerServing, &f.FatPerServing, &f.FiberPerServing, &f.Category); err != nil {
		return nil, err
	}
	return &f, nil
}

func collectFoods(rows *sql.Rows) ([]model.Food, error) {
	defer rows.Close()
	items := make([]model.Food, 0)
	for rows.Next() {
		f, err := scanFood(rows)
		if err != nil {
			return nil, fmt.Errorf("scan food: %w", err)
		}
		items = append(items, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate foods: %w", err)
	}
	return items, nil
}
