// Package service implements the aggregation logic on top of the store:
// workout lifecycle with record promotion and streaks, nutrition day
// roll-ups, and app configuration. Every operation takes the owning user
// id explicitly.
package service

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const dayFormat = "2006-01-02"

// roundGrams keeps macro gram totals at one decimal place.
func roundGrams(v float64) float64 {
	return math.Round(v*10) / 10
}

func roundCalories(v float64) int {
	return int(math.Round(v))
}

func dayKey(t time.Time) string {
	return t.Format(dayFormat)
}

func beginningOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func validatePositiveInt(name string, value int) error {
	if value <= 0 {
		return fmt.Errorf("%s must be > 0", name)
	}
	return nil
}

func validatePositiveFloat(name string, value float64) error {
	if value <= 0 {
		return fmt.Errorf("%s must be > 0", name)
	}
	return nil
}

func validateNonNegativeFloat(name string, value float64) error {
	if value < 0 {
		return fmt.Errorf("%s must be >= 0", name)
	}
	return nil
}

func requireUser(userID string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", fmt.Errorf("user id is required")
	}
	return userID, nil
}
