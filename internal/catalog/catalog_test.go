package catalog_test

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/Gavin-Dsouza/gymApp/internal/catalog"
	"github.com/Gavin-Dsouza/gymApp/internal/db"
	"github.com/Gavin-Dsouza/gymApp/internal/store"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gymapp.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return sqldb
}

func TestEnsureExercisesSeedsOnceOnly(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()

	seeded, err := catalog.EnsureExercises(sqldb)
	if err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if seeded != 19 {
		t.Fatalf("expected 19 seeded exercises, got %d", seeded)
	}

	again, err := catalog.EnsureExercises(sqldb)
	if err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if again != 0 {
		t.Fatalf("expected no reseed, got %d", again)
	}

	count, err := store.CountExercises(sqldb)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 19 {
		t.Fatalf("expected 19 exercises, got %d", count)
	}

	chest, err := store.ListExercisesByMuscle(sqldb, "chest")
	if err != nil {
		t.Fatalf("list chest exercises: %v", err)
	}
	if len(chest) != 3 {
		t.Fatalf("expected 3 primary chest exercises, got %d", len(chest))
	}
}

func TestEnsureFoodsSeedsCatalog(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()

	seeded, err := catalog.EnsureFoods(sqldb)
	if err != nil {
		t.Fatalf("seed foods: %v", err)
	}
	if seeded != 21 {
		t.Fatalf("expected 21 seeded foods, got %d", seeded)
	}

	again, err := catalog.EnsureFoods(sqldb)
	if err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if again != 0 {
		t.Fatalf("expected no reseed, got %d", again)
	}

	matches, err := store.SearchFoods(sqldb, "chicken")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 chicken match, got %d", len(matches))
	}
	chicken := matches[0]
	if chicken.CaloriesPerServing != 165 || chicken.ProteinPerServing != 31 || chicken.ServingSize != 100 {
		t.Fatalf("unexpected chicken macros: %+v", chicken)
	}
}
