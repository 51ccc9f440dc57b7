package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Gavin-Dsouza/gymApp/internal/model"
	"github.com/Gavin-Dsouza/gymApp/internal/store"
)

type BodyWeightInput struct {
	Weight       float64
	Unit         string
	BodyFatPct   *float64
	MuscleMassKg *float64
	MeasuredAt   time.Time
	Notes        string
}

// LogBodyWeight records a body weight measurement, converting the input
// unit to kilograms for storage.
func LogBodyWeight(db *sql.DB, userID string, in BodyWeightInput) (*model.BodyWeight, error) {
	userID, err := requireUser(userID)
	if err != nil {
		return nil, err
	}
	weightKg, err := ToKg(in.Weight, in.Unit)
	if err != nil {
		return nil, err
	}
	if in.BodyFatPct != nil {
		if *in.BodyFatPct < 0 || *in.BodyFatPct > 100 {
			return nil, fmt.Errorf("body-fat must be between 0 and 100")
		}
	}
	if in.MuscleMassKg != nil {
		if err := validatePositiveFloat("muscle mass", *in.MuscleMassKg); err != nil {
			return nil, err
		}
	}
	if in.MeasuredAt.IsZero() {
		in.MeasuredAt = time.Now()
	}
	bw := model.BodyWeight{
		ID:           uuid.NewString(),
		UserID:       userID,
		WeightKg:     weightKg,
		BodyFatPct:   in.BodyFatPct,
		MuscleMassKg: in.MuscleMassKg,
		MeasuredAt:   in.MeasuredAt,
		Notes:        strings.TrimSpace(in.Notes),
	}
	if err := store.AddBodyWeight(db, bw); err != nil {
		return nil, err
	}
	return &bw, nil
}

// BodyWeightHistory returns measurements newest first.
func BodyWeightHistory(db *sql.DB, userID string, f store.BodyWeightFilter) ([]model.BodyWeight, error) {
	userID, err := requireUser(userID)
	if err != nil {
		return nil, err
	}
	return store.ListBodyWeights(db, userID, f)
}

func ToKg(weight float64, unit string) (float64, error) {
	if weight <= 0 {
		return 0, fmt.Errorf("weight must be > 0")
	}
	u := strings.ToLower(strings.TrimSpace(unit))
	if u == "" {
		u = "kg"
	}
	switch u {
	case "kg":
		return weight, nil
	case "lb", "lbs":
		return weight * 0.45359237, nil
	default:
		return 0, fmt.Errorf("invalid weight unit %q (use kg or lb)", unit)
	}
}

func WeightFromKg(weightKg float64, unit string) (float64, error) {
	u := strings.ToLower(strings.TrimSpace(unit))
	if u == "" {
		u = "kg"
	}
	switch u {
	case "kg":
		return weightKg, nil
	case "lb", "lbs":
		return weightKg / 0.45359237, nil
	default:
		return 0, fmt.Errorf("invalid weight unit %q (use kg or lb)", unit)
	}
}
