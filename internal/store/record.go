package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Gavin-Dsouza/gymApp/internal/model"
)

// AddPersonalRecord appends a PR row. Rows are never updated or deleted;
// the current best is derived by scanning the history.
func AddPersonalRecord(db *sql.DB, pr model.PersonalRecord) error {
	if _, err := db.Exec(`
INSERT INTO personal_records(id, user_id, exercise_id, weight_kg, reps, recorded_at, session_id)
VALUES(?, ?, ?, ?, ?, ?, ?)
`, pr.ID, pr.UserID, pr.ExerciseID, pr.WeightKg, pr.Reps, pr.RecordedAt.Format(time.RFC3339), pr.SessionID); err != nil {
		return fmt.Errorf("insert personal record: %w", translateErr(err))
	}
	return nil
}

// ListPersonalRecords returns all PR rows for the owner, optionally filtered
// to one exercise when exerciseID is non-empty.
func ListPersonalRecords(db *sql.DB, userID, exerciseID string) ([]model.PersonalRecord, error) {
	query := `
SELECT id, user_id, exercise_id, weight_kg, reps, recorded_at, session_id
FROM personal_records
WHERE user_id = ?`
	args := []any{userID}
	if exerciseID != "" {
		query += ` AND exercise_id = ?`
		args = append(args, exerciseID)
	}
	query += ` ORDER BY recorded_at ASC`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list personal records: %w", err)
	}
	defer rows.Close()

	records := make([]model.PersonalRecord, 0)
	for rows.Next() {
		var pr model.PersonalRecord
		var recordedRaw string
		if err := rows.Scan(&pr.ID, &pr.UserID, &pr.ExerciseID, &pr.WeightKg, &pr.Reps, &recordedRaw, &pr.SessionID); err != nil {
			return nil, fmt.Errorf("scan personal record: %w", err)
		}
		recorded, err := time.Parse(time.RFC3339, recordedRaw)
		if err != nil {
			return nil, fmt.Errorf("parse recorded_at: %w", err)
		}
		pr.RecordedAt = recorded
		records = append(records, pr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate personal records: %w", err)
	}
	return records, nil
}
