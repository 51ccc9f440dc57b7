package service_test

import (
	"testing"
	"time"

	"github.com/Gavin-Dsouza/gymApp/internal/service"
	"github.com/Gavin-Dsouza/gymApp/internal/store"
)

func TestLogBodyWeightConvertsUnits(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	bw, err := service.LogBodyWeight(db, "alice", service.BodyWeightInput{
		Weight:     180,
		Unit:       "lb",
		BodyFatPct: floatPtr(22.5),
		MeasuredAt: time.Date(2026, 8, 20, 8, 0, 0, 0, time.Local),
	})
	if err != nil {
		t.Fatalf("log body weight: %v", err)
	}
	if bw.WeightKg < 81 || bw.WeightKg > 82 {
		t.Fatalf("expected converted weight around 81.6kg, got %.4f", bw.WeightKg)
	}

	items, err := service.BodyWeightHistory(db, "alice", store.BodyWeightFilter{})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(items) != 1 || items[0].ID != bw.ID {
		t.Fatalf("expected one measurement, got %+v", items)
	}
}

func TestLogBodyWeightRejectsInvalidInput(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if _, err := service.LogBodyWeight(db, "alice", service.BodyWeightInput{Weight: 80, Unit: "stone"}); err == nil {
		t.Fatalf("expected invalid unit to fail")
	}
	if _, err := service.LogBodyWeight(db, "alice", service.BodyWeightInput{Weight: 80, BodyFatPct: floatPtr(101)}); err == nil {
		t.Fatalf("expected invalid body-fat to fail")
	}
}
