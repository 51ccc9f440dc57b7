package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Gavin-Dsouza/gymApp/internal/model"
)

func AddWaterEntry(db *sql.DB, w model.WaterEntry) error {
	if _, err := db.Exec(`
INSERT INTO water_entries(id, user_id, entry_date, amount_ml, logged_at)
VALUES(?, ?, ?, ?, ?)
`, w.ID, w.UserID, w.Date, w.AmountMl, w.LoggedAt.Format(time.RFC3339)); err != nil {
		return fmt.Errorf("insert water entry: %w", translateErr(err))
	}
	return nil
}

// ListWaterEntries returns the owner's water log for one date in the order
// it was written.
func ListWaterEntries(db *sql.DB, userID, date string) ([]model.WaterEntry, error) {
	rows, err := db.Query(`
SELECT id, user_id, entry_date, amount_ml, logged_at
FROM water_entries
WHERE user_id = ? AND entry_date = ?
ORDER BY logged_at ASC
`, userID, date)
	if err != nil {
		return nil, fmt.Errorf("list water entries: %w", err)
	}
	defer rows.Close()

	items := make([]model.WaterEntry, 0)
	for rows.Next() {
		var w model.WaterEntry
		var loggedRaw string
		if err := rows.Scan(&w.ID, &w.UserID, &w.Date, &w.AmountMl, &loggedRaw); err != nil {
			return nil, fmt.Errorf("scan water entry: %w", err)
		}
		if w.LoggedAt, err = time.Parse(time.RFC3339, loggedRaw); err != nil {
			return nil, fmt.Errorf("parse water logged_at: %w", err)
		}
		items = append(items, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate water entries: %w", err)
	}
	return items, nil
}
