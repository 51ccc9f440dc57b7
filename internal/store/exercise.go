package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/Gavin-Dsouza/gymApp/internal/model"
)

const exerciseColumns = `id, name, category, primary_muscles, secondary_muscles, equipment, difficulty, is_compound, instructions`

// AddExercise inserts a catalog exercise together with its muscle index rows.
func AddExercise(db *sql.DB, ex model.Exercise) error {
	primary, err := marshalStrings(ex.PrimaryMuscles)
	if err != nil {
		return err
	}
	secondary, err := marshalStrings(ex.SecondaryMuscles)
	if err != nil {
		return err
	}
	equipment, err := marshalStrings(ex.Equipment)
	if err != nil {
		return err
	}
	instructions, err := marshalStrings(ex.Instructions)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin add exercise tx: %w", err)
	}
	if _, err := tx.Exec(`
INSERT INTO exercises(id, name, category, primary_muscles, secondary_muscles, equipment, difficulty, is_compound, instructions)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)
`, ex.ID, ex.Name, ex.Category, primary, secondary, equipment, ex.Difficulty, ex.IsCompound, instructions); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("insert exercise: %w", translateErr(err))
	}
	for _, muscle := range ex.PrimaryMuscles {
		if _, err := tx.Exec(`INSERT OR IGNORE INTO exercise_muscles(exercise_id, muscle, role) VALUES(?, ?, 'primary')`, ex.ID, muscle); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("index primary muscle %q: %w", muscle, err)
		}
	}
	for _, muscle := range ex.SecondaryMuscles {
		if _, err := tx.Exec(`INSERT OR IGNORE INTO exercise_muscles(exercise_id, muscle, role) VALUES(?, ?, 'secondary')`, ex.ID, muscle); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("index secondary muscle %q: %w", muscle, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit add exercise: %w", err)
	}
	return nil
}

// GetExercise returns nil without error when the id does not resolve.
func GetExercise(db *sql.DB, id string) (*model.Exercise, error) {
	row := db.QueryRow(`SELECT `+exerciseColumns+` FROM exercises WHERE id = ?`, id)
	ex, err := scanExercise(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get exercise %s: %w", id, err)
	}
	return ex, nil
}

func ListExercises(db *sql.DB) ([]model.Exercise, error) {
	rows, err := db.Query(`SELECT ` + exerciseColumns + ` FROM exercises ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	return collectExercises(rows)
}

// ListExercisesByMuscle returns exercises whose primary-muscle set contains
// the given muscle, via the exercise_muscles index table.
func ListExercisesByMuscle(db *sql.DB, muscle string) ([]model.Exercise, error) {
	rows, err := db.Query(`
SELECT e.id, e.name, e.category, e.primary_muscles, e.secondary_muscles, e.equipment, e.difficulty, e.is_compound, e.instructions
FROM exercises e
JOIN exercise_muscles m ON m.exercise_id = e.id
WHERE m.muscle = ? AND m.role = 'primary'
ORDER BY e.name ASC
`, muscle)
	if err != nil {
		return nil, fmt.Errorf("list exercises by muscle %q: %w", muscle, err)
	}
	return collectExercises(rows)
}

// SearchExercises matches by case-insensitive substring over the name,
// category, or any primary muscle.
func SearchExercises(db *sql.DB, query string) ([]model.Exercise, error) {
	needle := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	rows, err := db.Query(`
SELECT `+exerciseColumns+`
FROM exercises
WHERE LOWER(name) LIKE ?
   OR LOWER(category) LIKE ?
   OR EXISTS (
        SELECT 1 FROM exercise_muscles m
        WHERE m.exercise_id = exercises.id AND m.role = 'primary' AND LOWER(m.muscle) LIKE ?
   )
ORDER BY name ASC
`, needle, needle, needle)
	if err != nil {
		return nil, fmt.Errorf("search exercises %q: %w", query, err)
	}
	return collectExercises(rows)
}

func CountExercises(db *sql.DB) (int, error) {
	var count int
	if err := db.QueryRow(`SELECT COUNT(1) FROM exercises`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count exercises: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExercise(row rowScanner) (*model.Exercise, error) {
	var ex model.Exercise
	var primary, secondary, equipment, instructions string
	if err := row.Scan(&ex.ID, &ex.Name, &ex.Category, &primary, &secondary, &equipment, &ex.Difficulty, &ex.IsCompound, &instructions); err != nil {
		return nil, err
	}
	var err error
	if ex.PrimaryMuscles, err = unmarshalStrings(primary); err != nil {
		return nil, err
	}
	if ex.SecondaryMuscles, err = unmarshalStrings(secondary); err != nil {
		return nil, err
	}
	if ex.Equipment, err = unmarshalStrings(equipment); err != nil {
		return nil, err
	}
	if ex.Instructions, err = unmarshalStrings(instructions); err != nil {
		return nil, err
	}
	return &ex, nil
}

func collectExercises(rows *sql.Rows) ([]model.Exercise, error) {
	defer rows.Close()
	items := make([]model.Exercise, 0)
	for rows.Next() {
		ex, err := scanExercise(rows)
		if err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		items = append(items, *ex)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exercises: %w", err)
	}
	return items, nil
}
