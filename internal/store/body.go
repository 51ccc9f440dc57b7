package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Gavin-Dsouza/gymApp/internal/model"
)

type BodyWeightFilter struct {
	From  time.Time
	To    time.Time
	Limit int
}

func AddBodyWeight(db *sql.DB, w model.BodyWeight) error {
	if _, err := db.Exec(`
INSERT INTO body_weights(id, user_id, weight_kg, body_fat_pct, muscle_mass_kg, measured_at, notes)
VALUES(?, ?, ?, ?, ?, ?, ?)
`, w.ID, w.UserID, w.WeightKg, w.BodyFatPct, w.MuscleMassKg, w.MeasuredAt.Format(time.RFC3339), w.Notes); err != nil {
		return fmt.Errorf("insert body weight: %w", translateErr(err))
	}
	return nil
}

// ListBodyWeights returns entries for the owner in descending date order,
// optionally bounded and capped ("most recent N").
func ListBodyWeights(db *sql.DB, userID string, f BodyWeightFilter) ([]model.BodyWeight, error) {
	query := `
SELECT id, user_id, weight_kg, body_fat_pct, muscle_mass_kg, measured_at, IFNULL(notes, '')
FROM body_weights
WHERE user_id = ?`
	args := []any{userID}

	if !f.From.IsZero() {
		query += ` AND measured_at >= ?`
		args = append(args, f.From.Format(time.RFC3339))
	}
	if !f.To.IsZero() {
		query += ` AND measured_at <= ?`
		args = append(args, f.To.Format(time.RFC3339))
	}
	query += ` ORDER BY measured_at DESC`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list body weights: %w", err)
	}
	defer rows.Close()

	items := make([]model.BodyWeight, 0)
	for rows.Next() {
		var w model.BodyWeight
		var measuredRaw string
		var bodyFat, muscleMass sql.NullFloat64
		if err := rows.Scan(&w.ID, &w.UserID, &w.WeightKg, &bodyFat, &muscleMass, &measuredRaw, &w.Notes); err != nil {
			return nil, fmt.Errorf("scan body weight: %w", err)
		}
		measured, err := time.Parse(time.RFC3339, measuredRaw)
		if err != nil {
			return nil, fmt.Errorf("parse measured_at: %w", err)
		}
		w.MeasuredAt = measured
		if bodyFat.Valid {
			v := bodyFat.Float64
			w.BodyFatPct = &v
		}
		if muscleMass.Valid {
			v := muscleMass.Float64
			w.MuscleMassKg = &v
		}
		items = append(items, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate body weights: %w", err)
	}
	return items, nil
}
