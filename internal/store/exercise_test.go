package store_test

import (
	"errors"
	"testing"

	"github.com/Gavin-Dsouza/gymApp/internal/model"
	"github.com/Gavin-Dsouza/gymApp/internal/store"
)

func TestExerciseRoundTripAndMuscleIndex(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	bench := model.Exercise{
		ID:               "ex-bench",
		Name:             "Bench Press",
		Category:         "strength",
		PrimaryMuscles:   []string{"chest"},
		SecondaryMuscles: []string{"shoulders", "triceps"},
		Equipment:        []string{"barbell"},
		Difficulty:       "intermediate",
		IsCompound:       true,
		Instructions:     []string{"Lower bar to chest", "Press up"},
	}
	curl := model.Exercise{
		ID:             "ex-curl",
		Name:           "Bicep Curls",
		Category:       "strength",
		PrimaryMuscles: []string{"biceps"},
		Equipment:      []string{"dumbbell"},
		Difficulty:     "beginner",
	}
	if err := store.AddExercise(db, bench); err != nil {
		t.Fatalf("add bench: %v", err)
	}
	if err := store.AddExercise(db, curl); err != nil {
		t.Fatalf("add curl: %v", err)
	}

	got, err := store.GetExercise(db, "ex-bench")
	if err != nil {
		t.Fatalf("get exercise: %v", err)
	}
	if got == nil || got.Name != "Bench Press" {
		t.Fatalf("expected bench press, got %+v", got)
	}
	if len(got.SecondaryMuscles) != 2 || got.SecondaryMuscles[0] != "shoulders" {
		t.Fatalf("expected secondary muscles preserved, got %v", got.SecondaryMuscles)
	}
	if len(got.Instructions) != 2 {
		t.Fatalf("expected 2 instructions, got %v", got.Instructions)
	}

	chest, err := store.ListExercisesByMuscle(db, "chest")
	if err != nil {
		t.Fatalf("list by muscle: %v", err)
	}
	if len(chest) != 1 || chest[0].ID != "ex-bench" {
		t.Fatalf("expected only bench for chest, got %+v", chest)
	}

	// Secondary muscles must not match a primary-muscle query.
	shoulders, err := store.ListExercisesByMuscle(db, "shoulders")
	if err != nil {
		t.Fatalf("list by secondary muscle: %v", err)
	}
	if len(shoulders) != 0 {
		t.Fatalf("expected no primary shoulder exercises, got %+v", shoulders)
	}

	matches, err := store.SearchExercises(db, "bench")
	if err != nil {
		t.Fatalf("search exercises: %v", err)
	}
	if len(matches) != 1 || matches[0].ID != "ex-bench" {
		t.Fatalf("expected bench match by name, got %+v", matches)
	}
	matches, err = store.SearchExercises(db, "chest")
	if err != nil {
		t.Fatalf("search by muscle: %v", err)
	}
	if len(matches) != 1 || matches[0].ID != "ex-bench" {
		t.Fatalf("expected bench match by primary muscle, got %+v", matches)
	}
	matches, err = store.SearchExercises(db, "strength")
	if err != nil {
		t.Fatalf("search by category: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected both strength exercises, got %+v", matches)
	}
	// Secondary muscles do not match free-text search.
	none, err := store.SearchExercises(db, "triceps")
	if err != nil {
		t.Fatalf("search secondary muscle: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no matches for a secondary muscle, got %+v", none)
	}

	count, err := store.CountExercises(db)
	if err != nil {
		t.Fatalf("count exercises: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 exercises, got %d", count)
	}
}

func TestGetExerciseMissingReturnsNil(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	got, err := store.GetExercise(db, "nope")
	if err != nil {
		t.Fatalf("get missing exercise: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing exercise, got %+v", got)
	}
}

func TestAddExerciseDuplicateID(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	ex := model.Exercise{ID: "ex-1", Name: "Squats", Category: "strength", PrimaryMuscles: []string{"quadriceps"}, Difficulty: "intermediate"}
	if err := store.AddExercise(db, ex); err != nil {
		t.Fatalf("first add: %v", err)
	}
	err := store.AddExercise(db, ex)
	if !errors.Is(err, store.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
}
