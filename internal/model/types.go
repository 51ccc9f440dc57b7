package model

import "time"

// Exercise is reference catalog data, immutable after seeding.
type Exercise struct {
	ID               string
	Name             string
	Category         string
	PrimaryMuscles   []string
	SecondaryMuscles []string
	Equipment        []string
	Difficulty       string
	IsCompound       bool
	Instructions     []string
}

type WorkoutSet struct {
	ID         string
	ExerciseID string
	WeightKg   *float64
	Reps       int
	DurationS  *int
	RestS      *int
	RPE        *int
	Notes      string
}

// WorkoutSession is in progress while EndTime is nil.
type WorkoutSession struct {
	ID        string
	UserID    string
	Name      string
	Date      time.Time
	StartTime time.Time
	EndTime   *time.Time
	Sets      []WorkoutSet
	Notes     string
	Mood      string
	Energy    string
}

type PersonalRecord struct {
	ID         string
	UserID     string
	ExerciseID string
	WeightKg   float64
	Reps       int
	RecordedAt time.Time
	SessionID  string
}

type BodyWeight struct {
	ID           string
	UserID       string
	WeightKg     float64
	BodyFatPct   *float64
	MuscleMassKg *float64
	MeasuredAt   time.Time
	Notes        string
}

type NutritionGoal struct {
	ID            string
	UserID        string
	DailyCalories int
	ProteinG      float64
	CarbG         float64
	FatG          float64
	WaterL        *float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NutritionEntry holds one day of meals for one user. Totals are roll-ups
// recomputed from the meals, never set directly.
type NutritionEntry struct {
	ID            string
	UserID        string
	Date          string
	TotalCalories int
	TotalProteinG float64
	TotalCarbsG   float64
	TotalFatG     float64
	TotalFiberG   float64
	Meals         []Meal
}

type Meal struct {
	ID            string
	Type          string
	Name          string
	Foods         []FoodEntry
	TotalCalories int
	TotalProteinG float64
	TotalCarbsG   float64
	TotalFatG     float64
	LoggedAt      time.Time
}

type FoodEntry struct {
	ID       string
	FoodID   string
	Name     string
	Quantity float64
	Unit     string
	Calories int
	ProteinG float64
	CarbsG   float64
	FatG     float64
	FiberG   *float64
}

// Food is reference catalog data, immutable after seeding.
type Food struct {
	ID                 string
	Name               string
	Brand              string
	ServingSize        float64
	ServingUnit        string
	CaloriesPerServing float64
	ProteinPerServing  float64
	CarbsPerServing    float64
	FatPerServing      float64
	FiberPerServing    float64
	Category           string
}

type WaterEntry struct {
	ID       string
	UserID   string
	Date     string
	AmountMl float64
	LoggedAt time.Time
}
