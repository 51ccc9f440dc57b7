package store_test

import (
	"testing"
	"time"

	"github.com/Gavin-Dsouza/gymApp/internal/model"
	"github.com/Gavin-Dsouza/gymApp/internal/store"
)

func TestWorkoutSessionAggregateRoundTrip(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	start := time.Date(2026, 8, 20, 18, 0, 0, 0, time.Local)
	session := model.WorkoutSession{
		ID:        "ws-1",
		UserID:    "alice",
		Name:      "Push Day",
		Date:      time.Date(2026, 8, 20, 0, 0, 0, 0, time.Local),
		StartTime: start,
		Sets: []model.WorkoutSet{
			{ID: "set-1", ExerciseID: "ex-bench", WeightKg: floatPtr(100), Reps: 5, RPE: intPtr(8)},
			{ID: "set-2", ExerciseID: "ex-bench", WeightKg: floatPtr(90), Reps: 8},
		},
	}
	if err := store.AddWorkoutSession(db, session); err != nil {
		t.Fatalf("add session: %v", err)
	}

	got, err := store.GetWorkoutSession(db, "ws-1")
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if got == nil {
		t.Fatalf("expected session, got nil")
	}
	if got.EndTime != nil {
		t.Fatalf("expected in-progress session, got end time %v", got.EndTime)
	}
	if len(got.Sets) != 2 {
		t.Fatalf("expected 2 sets, got %d", len(got.Sets))
	}
	if got.Sets[0].ID != "set-1" || got.Sets[1].ID != "set-2" {
		t.Fatalf("expected set order preserved, got %+v", got.Sets)
	}
	if got.Sets[0].WeightKg == nil || *got.Sets[0].WeightKg != 100 {
		t.Fatalf("expected 100kg on first set, got %+v", got.Sets[0].WeightKg)
	}
	if got.Sets[0].RPE == nil || *got.Sets[0].RPE != 8 {
		t.Fatalf("expected rpe 8 on first set, got %+v", got.Sets[0].RPE)
	}

	// Replacing the aggregate rewrites the set list.
	end := start.Add(45 * time.Minute)
	got.EndTime = &end
	got.Sets = got.Sets[:1]
	if err := store.PutWorkoutSession(db, *got); err != nil {
		t.Fatalf("put session: %v", err)
	}

	updated, err := store.GetWorkoutSession(db, "ws-1")
	if err != nil {
		t.Fatalf("get updated session: %v", err)
	}
	if updated.EndTime == nil || !updated.EndTime.Equal(end) {
		t.Fatalf("expected end time %v, got %v", end, updated.EndTime)
	}
	if len(updated.Sets) != 1 {
		t.Fatalf("expected 1 set after rewrite, got %d", len(updated.Sets))
	}
}

func TestListWorkoutSessionsOrderFilterAndOwner(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	day := func(offset int) time.Time {
		return time.Date(2026, 8, 10+offset, 0, 0, 0, 0, time.Local)
	}
	for i, id := range []string{"ws-a", "ws-b", "ws-c"} {
		s := model.WorkoutSession{
			ID:        id,
			UserID:    "alice",
			Name:      "Workout",
			Date:      day(i),
			StartTime: day(i).Add(18 * time.Hour),
		}
		if err := store.AddWorkoutSession(db, s); err != nil {
			t.Fatalf("add session %s: %v", id, err)
		}
	}
	other := model.WorkoutSession{ID: "ws-bob", UserID: "bob", Name: "Workout", Date: day(1), StartTime: day(1)}
	if err := store.AddWorkoutSession(db, other); err != nil {
		t.Fatalf("add bob session: %v", err)
	}

	all, err := store.ListWorkoutSessions(db, "alice", store.SessionFilter{})
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 sessions for alice, got %d", len(all))
	}
	if all[0].ID != "ws-c" || all[2].ID != "ws-a" {
		t.Fatalf("expected newest first, got %s..%s", all[0].ID, all[2].ID)
	}

	limited, err := store.ListWorkoutSessions(db, "alice", store.SessionFilter{Limit: 1})
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 1 || limited[0].ID != "ws-c" {
		t.Fatalf("expected only newest session, got %+v", limited)
	}

	ranged, err := store.ListWorkoutSessions(db, "alice", store.SessionFilter{From: day(1), To: day(1)})
	if err != nil {
		t.Fatalf("list ranged: %v", err)
	}
	if len(ranged) != 1 || ranged[0].ID != "ws-b" {
		t.Fatalf("expected ws-b in range, got %+v", ranged)
	}
}

func TestPersonalRecordsAppendOnlyOrder(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.Local)
	for i, id := range []string{"pr-1", "pr-2"} {
		pr := model.PersonalRecord{
			ID:         id,
			UserID:     "alice",
			ExerciseID: "ex-bench",
			WeightKg:   100 + float64(i*5),
			Reps:       5,
			RecordedAt: base.AddDate(0, 0, i),
			SessionID:  "ws-1",
		}
		if err := store.AddPersonalRecord(db, pr); err != nil {
			t.Fatalf("add pr %s: %v", id, err)
		}
	}
	squatPR := model.PersonalRecord{ID: "pr-squat", UserID: "alice", ExerciseID: "ex-squat", WeightKg: 140, Reps: 3, RecordedAt: base, SessionID: "ws-1"}
	if err := store.AddPersonalRecord(db, squatPR); err != nil {
		t.Fatalf("add squat pr: %v", err)
	}

	bench, err := store.ListPersonalRecords(db, "alice", "ex-bench")
	if err != nil {
		t.Fatalf("list bench prs: %v", err)
	}
	if len(bench) != 2 || bench[0].ID != "pr-1" || bench[1].ID != "pr-2" {
		t.Fatalf("expected bench prs oldest first, got %+v", bench)
	}

	all, err := store.ListPersonalRecords(db, "alice", "")
	if err != nil {
		t.Fatalf("list all prs: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 prs, got %d", len(all))
	}
}
