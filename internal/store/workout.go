package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Gavin-Dsouza/gymApp/internal/model"
)

// SessionFilter narrows ListWorkoutSessions. Zero From/To mean unbounded;
// Limit <= 0 means no cap.
type SessionFilter struct {
	From  time.Time
	To    time.Time
	Limit int
}

const dayFormat = "2006-01-02"

// AddWorkoutSession inserts a session with its sets as one transaction.
func AddWorkoutSession(db *sql.DB, s model.WorkoutSession) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin add session tx: %w", err)
	}
	if err := insertSession(tx, s); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := insertSets(tx, s.ID, s.Sets); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit add session: %w", err)
	}
	return nil
}

// PutWorkoutSession upserts the whole session aggregate: the session row is
// replaced and the set list rewritten, so the stored state always matches
// the in-memory record last-write-wins.
func PutWorkoutSession(db *sql.DB, s model.WorkoutSession) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin put session tx: %w", err)
	}
	if _, err := tx.Exec(`
INSERT INTO workout_sessions(id, user_id, name, session_date, start_time, end_time, notes, mood, energy)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  user_id=excluded.user_id,
  name=excluded.name,
  session_date=excluded.session_date,
  start_time=excluded.start_time,
  end_time=excluded.end_time,
  notes=excluded.notes,
  mood=excluded.mood,
  energy=excluded.energy
`, s.ID, s.UserID, s.Name, s.Date.Format(dayFormat), s.StartTime.Format(time.RFC3339), formatOptionalTime(s.EndTime), s.Notes, nullableString(s.Mood), nullableString(s.Energy)); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("upsert session %s: %w", s.ID, err)
	}
	if _, err := tx.Exec(`DELETE FROM workout_sets WHERE session_id = ?`, s.ID); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("rewrite sets for session %s: %w", s.ID, err)
	}
	if err := insertSets(tx, s.ID, s.Sets); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit put session: %w", err)
	}
	return nil
}

// GetWorkoutSession returns nil without error when the id does not resolve.
func GetWorkoutSession(db *sql.DB, id string) (*model.WorkoutSession, error) {
	row := db.QueryRow(`
SELECT id, user_id, name, session_date, start_time, end_time, IFNULL(notes, ''), IFNULL(mood, ''), IFNULL(energy, '')
FROM workout_sessions
WHERE id = ?
`, id)
	s, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}
	sets, err := loadSets(db, s.ID)
	if err != nil {
		return nil, err
	}
	s.Sets = sets
	return s, nil
}

// ListWorkoutSessions returns sessions for the owner in descending date
// order, sets included.
func ListWorkoutSessions(db *sql.DB, userID string, f SessionFilter) ([]model.WorkoutSession, error) {
	query := `
SELECT id, user_id, name, session_date, start_time, end_time, IFNULL(notes, ''), IFNULL(mood, ''), IFNULL(energy, '')
FROM workout_sessions
WHERE user_id = ?`
	args := []any{userID}

	if !f.From.IsZero() {
		query += ` AND session_date >= ?`
		args = append(args, f.From.Format(dayFormat))
	}
	if !f.To.IsZero() {
		query += ` AND session_date <= ?`
		args = append(args, f.To.Format(dayFormat))
	}
	query += ` ORDER BY session_date DESC, start_time DESC`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]model.WorkoutSession, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	for i := range sessions {
		sets, err := loadSets(db, sessions[i].ID)
		if err != nil {
			return nil, err
		}
		sessions[i].Sets = sets
	}
	return sessions, nil
}

func insertSession(tx *sql.Tx, s model.WorkoutSession) error {
	if _, err := tx.Exec(`
INSERT INTO workout_sessions(id, user_id, name, session_date, start_time, end_time, notes, mood, energy)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)
`, s.ID, s.UserID, s.Name, s.Date.Format(dayFormat), s.StartTime.Format(time.RFC3339), formatOptionalTime(s.EndTime), s.Notes, nullableString(s.Mood), nullableString(s.Energy)); err != nil {
		return fmt.Errorf("insert session: %w", translateErr(err))
	}
	return nil
}

func insertSets(tx *sql.Tx, sessionID string, sets []model.WorkoutSet) error {
	for i, set := range sets {
		if _, err := tx.Exec(`
INSERT INTO workout_sets(id, session_id, exercise_id, position, weight_kg, reps, duration_s, rest_s, rpe, notes)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, set.ID, sessionID, set.ExerciseID, i, set.WeightKg, set.Reps, set.DurationS, set.RestS, set.RPE, set.Notes); err != nil {
			return fmt.Errorf("insert set %s: %w", set.ID, translateErr(err))
		}
	}
	return nil
}

func loadSets(db *sql.DB, sessionID string) ([]model.WorkoutSet, error) {
	rows, err := db.Query(`
SELECT id, exercise_id, weight_kg, reps, duration_s, rest_s, rpe, IFNULL(notes, '')
FROM workout_sets
WHERE session_id = ?
ORDER BY position ASC
`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load sets for session %s: %w", sessionID, err)
	}
	defer rows.Close()

	sets := make([]model.WorkoutSet, 0)
	for rows.Next() {
		var set model.WorkoutSet
		var weight sql.NullFloat64
		var duration, rest, rpe sql.NullInt64
		if err := rows.Scan(&set.ID, &set.ExerciseID, &weight, &set.Reps, &duration, &rest, &rpe, &set.Notes); err != nil {
			return nil, fmt.Errorf("scan set: %w", err)
		}
		if weight.Valid {
			v := weight.Float64
			set.WeightKg = &v
		}
		if duration.Valid {
			v := int(duration.Int64)
			set.DurationS = &v
		}
		if rest.Valid {
			v := int(rest.Int64)
			set.RestS = &v
		}
		if rpe.Valid {
			v := int(rpe.Int64)
			set.RPE = &v
		}
		sets = append(sets, set)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sets: %w", err)
	}
	return sets, nil
}

func scanSession(row rowScanner) (*model.WorkoutSession, error) {
	var s model.WorkoutSession
	var dateRaw, startRaw string
	var endRaw sql.NullString
	if err := row.Scan(&s.ID, &s.UserID, &s.Name, &dateRaw, &startRaw, &endRaw, &s.Notes, &s.Mood, &s.Energy); err != nil {
		return nil, err
	}
	date, err := time.ParseInLocation(dayFormat, dateRaw, time.Local)
	if err != nil {
		return nil, fmt.Errorf("parse session_date %q: %w", dateRaw, err)
	}
	s.Date = date
	start, err := time.Parse(time.RFC3339, startRaw)
	if err != nil {
		return nil, fmt.Errorf("parse start_time %q: %w", startRaw, err)
	}
	s.StartTime = start
	if endRaw.Valid && endRaw.String != "" {
		end, err := time.Parse(time.RFC3339, endRaw.String)
		if err != nil {
			return nil, fmt.Errorf("parse end_time %q: %w", endRaw.String, err)
		}
		s.EndTime = &end
	}
	return &s, nil
}

func formatOptionalTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339)
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
