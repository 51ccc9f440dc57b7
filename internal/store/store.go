// Package store is the persistence layer: one logical table per entity,
// keyed by opaque ids, with the secondary indexes the aggregation services
// query through. All functions operate on an initialized *sql.DB from
// internal/db.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"modernc.org/sqlite"
)

// ErrDuplicateKey reports an insert that collided with an existing
// identifier. Ids are generated, so hitting this indicates a caller bug.
var ErrDuplicateKey = errors.New("duplicate key")

const (
	sqliteConstraintPrimaryKey = 1555
	sqliteConstraintUnique     = 2067
)

func translateErr(err error) error {
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqliteConstraintPrimaryKey, sqliteConstraintUnique:
			return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
		}
	}
	return err
}

func marshalStrings(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("marshal string list: %w", err)
	}
	return string(raw), nil
}

func unmarshalStrings(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, fmt.Errorf("unmarshal string list: %w", err)
	}
	return values, nil
}

var clearableTables = map[string]bool{
	"exercises":        true,
	"workout_sessions": true,
	"personal_records": true,
	"body_weights":     true,
	"foods":            true,
	"nutrition_goals":  true,
	"nutrition_entries": true,
	"water_entries":    true,
}

// Clear empties a single entity table. Diagnostic/reset use only.
func Clear(db *sql.DB, table string) error {
	if !clearableTables[table] {
		return fmt.Errorf("unknown table %q", table)
	}
	if _, err := db.Exec(`DELETE FROM ` + table); err != nil {
		return fmt.Errorf("clear table %s: %w", table, err)
	}
	return nil
}

// ClearableTables lists the tables Clear accepts.
func ClearableTables() []string {
	out := make([]string, 0, len(clearableTables))
	for name := range clearableTables {
		out = append(out, name)
	}
	return out
}
