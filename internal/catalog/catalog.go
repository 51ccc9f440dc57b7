// Package catalog seeds the built-in exercise and food reference data.
// Seeding is idempotent: each catalog is written only when its table is
// empty, so user-added rows are never touched.
package catalog

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/Gavin-Dsouza/gymApp/internal/model"
	"github.com/Gavin-Dsouza/gymApp/internal/store"
)

//go:embed exercises.json
var exercisesJSON []byte

//go:embed foods.json
var foodsJSON []byte

type seedExercise struct {
	Name             string   `json:"name"`
	Category         string   `json:"category"`
	PrimaryMuscles   []string `json:"primaryMuscles"`
	SecondaryMuscles []string `json:"secondaryMuscles"`
	Equipment        []string `json:"equipment"`
	Difficulty       string   `json:"difficulty"`
	IsCompound       bool     `json:"isCompound"`
	Instructions     []string `json:"instructions"`
}

type seedFood struct {
	Name               string  `json:"name"`
	Brand              string  `json:"brand"`
	ServingSize        float64 `json:"servingSize"`
	ServingUnit        string  `json:"servingUnit"`
	CaloriesPerServing float64 `json:"caloriesPerServing"`
	ProteinPerServing  float64 `json:"proteinPerServing"`
	CarbsPerServing    float64 `json:"carbsPerServing"`
	FatPerServing      float64 `json:"fatPerServing"`
	FiberPerServing    float64 `json:"fiberPerServing"`
	Category           string  `json:"category"`
}

// EnsureExercises seeds the exercise catalog when the table is empty.
// It returns the number of rows inserted.
func EnsureExercises(db *sql.DB) (int, error) {
	count, err := store.CountExercises(db)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	var seeds []seedExercise
	if err := json.Unmarshal(exercisesJSON, &seeds); err != nil {
		return 0, fmt.Errorf("decode exercise catalog: %w", err)
	}
	for _, s := range seeds {
		ex := model.Exercise{
			ID:               uuid.NewString(),
			Name:             s.Name,
			Category:         s.Category,
			PrimaryMuscles:   s.PrimaryMuscles,
			SecondaryMuscles: s.SecondaryMuscles,
			Equipment:        s.Equipment,
			Difficulty:       s.Difficulty,
			IsCompound:       s.IsCompound,
			Instructions:     s.Instructions,
		}
		if err := store.AddExercise(db, ex); err != nil {
			return 0, fmt.Errorf("seed exercise %q: %w", s.Name, err)
		}
	}
	return len(seeds), nil
}

// EnsureFoods seeds the food catalog when the table is empty.
// It returns the number of rows inserted.
func EnsureFoods(db *sql.DB) (int, error) {
	count, err := store.CountFoods(db)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	var seeds []seedFood
	if err := json.Unmarshal(foodsJSON, &seeds); err != nil {
		return 0, fmt.Errorf("decode food catalog: %w", err)
	}
	for _, s := range seeds {
		f := model.Food{
			ID:                 uuid.NewString(),
			Name:               s.Name,
			Brand:              s.Brand,
			ServingSize:        s.ServingSize,
			ServingUnit:        s.ServingUnit,
			CaloriesPerServing: s.CaloriesPerServing,
			ProteinPerServing:  s.ProteinPerServing,
			CarbsPerServing:    s.CarbsPerServing,
			FatPerServing:      s.FatPerServing,
			FiberPerServing:    s.FiberPerServing,
			Category:           s.Category,
		}
		if err := store.AddFood(db, f); err != nil {
			return 0, fmt.Errorf("seed food %q: %w", s.Name, err)
		}
	}
	return len(seeds), nil
}
