package service

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/Gavin-Dsouza/gymApp/internal/model"
	"github.com/Gavin-Dsouza/gymApp/internal/store"
)

var (
	ErrSessionNotFound = errors.New("workout session not found")
	ErrSetNotFound     = errors.New("set not found")
)

// SetInput describes one set to record against a session. WeightKg is nil
// for bodyweight or cardio work.
type SetInput struct {
	ExerciseID string
	WeightKg   *float64
	Reps       int
	DurationS  *int
	RestS      *int
	RPE        *int
	Notes      string
}

// FinishInput carries the optional wrap-up fields recorded when a session
// ends. Empty fields leave the stored values alone.
type FinishInput struct {
	Notes  string
	Mood   string
	Energy string
}

var moods = map[string]bool{
	"great": true, "good": true, "okay": true, "tired": true, "poor": true,
}

var energyLevels = map[string]bool{
	"high": true, "medium": true, "low": true,
}

// WorkoutStats summarizes finished sessions. Weight is the lifted volume
// (weight x reps summed over every set), duration is in minutes.
type WorkoutStats struct {
	TotalWorkouts  int
	TotalSets      int
	TotalWeightKg  int
	AvgDurationMin int
	CurrentStreak  int
}

// EstimateOneRM applies the Epley formula.
func EstimateOneRM(weightKg float64, reps int) float64 {
	return weightKg * (1 + float64(reps)/30)
}

// StartWorkout opens a new session for the owner starting now.
func StartWorkout(db *sql.DB, userID, name string, startedAt time.Time) (*model.WorkoutSession, error) {
	userID, err := requireUser(userID)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = "Workout"
	}
	session := model.WorkoutSession{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		Date:      beginningOfDay(startedAt),
		StartTime: startedAt,
		Sets:      []model.WorkoutSet{},
	}
	if err := store.AddWorkoutSession(db, session); err != nil {
		return nil, err
	}
	return &session, nil
}

// AddSetToWorkout appends a set to the session and checks it for a new
// personal record when it carries weight and reps.
func AddSetToWorkout(db *sql.DB, userID, sessionID string, in SetInput) (*model.WorkoutSet, error) {
	session, err := ownedSession(db, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if in.ExerciseID == "" {
		return nil, fmt.Errorf("exercise id is required")
	}
	if in.Reps < 0 {
		return nil, fmt.Errorf("reps must be >= 0")
	}
	if in.WeightKg != nil {
		if err := validateNonNegativeFloat("weight", *in.WeightKg); err != nil {
			return nil, err
		}
	}
	if in.RPE != nil && (*in.RPE < 1 || *in.RPE > 10) {
		return nil, fmt.Errorf("rpe must be between 1 and 10")
	}

	set := model.WorkoutSet{
		ID:         uuid.NewString(),
		ExerciseID: in.ExerciseID,
		WeightKg:   in.WeightKg,
		Reps:       in.Reps,
		DurationS:  in.DurationS,
		RestS:      in.RestS,
		RPE:        in.RPE,
		Notes:      in.Notes,
	}
	session.Sets = append(session.Sets, set)
	if err := store.PutWorkoutSession(db, *session); err != nil {
		return nil, err
	}

	if set.WeightKg != nil && set.Reps > 0 {
		if err := maybePromoteRecord(db, userID, set.ExerciseID, *set.WeightKg, set.Reps, session.ID, time.Now()); err != nil {
			return nil, err
		}
	}
	return &set, nil
}

// FinishWorkout stamps the end time and records the wrap-up details.
// Finishing an already finished session just moves the end time, matching
// a re-tap of the finish action.
func FinishWorkout(db *sql.DB, userID, sessionID string, finishedAt time.Time, in FinishInput) (*model.WorkoutSession, error) {
	if in.Mood != "" && !moods[in.Mood] {
		return nil, fmt.Errorf("unknown mood %q", in.Mood)
	}
	if in.Energy != "" && !energyLevels[in.Energy] {
		return nil, fmt.Errorf("unknown energy level %q", in.Energy)
	}
	session, err := ownedSession(db, userID, sessionID)
	if err != nil {
		return nil, err
	}
	session.EndTime = &finishedAt
	if in.Notes != "" {
		session.Notes = in.Notes
	}
	if in.Mood != "" {
		session.Mood = in.Mood
	}
	if in.Energy != "" {
		session.Energy = in.Energy
	}
	if err := store.PutWorkoutSession(db, *session); err != nil {
		return nil, err
	}
	return session, nil
}

// DeleteSet removes one set from the session.
func DeleteSet(db *sql.DB, userID, sessionID, setID string) error {
	session, err := ownedSession(db, userID, sessionID)
	if err != nil {
		return err
	}
	kept := session.Sets[:0]
	found := false
	for _, set := range session.Sets {
		if set.ID == setID {
			found = true
			continue
		}
		kept = append(kept, set)
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrSetNotFound, setID)
	}
	session.Sets = kept
	return store.PutWorkoutSession(db, *session)
}

// UpdateSet replaces the stored fields of one set and re-runs record
// detection with the new weight and reps.
func UpdateSet(db *sql.DB, userID, sessionID, setID string, in SetInput) error {
	session, err := ownedSession(db, userID, sessionID)
	if err != nil {
		return err
	}
	idx := -1
	for i, set := range session.Sets {
		if set.ID == setID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return fmt.Errorf("%w: %s", ErrSetNotFound, setID)
	}
	if in.ExerciseID == "" {
		in.ExerciseID = session.Sets[idx].ExerciseID
	}
	session.Sets[idx] = model.WorkoutSet{
		ID:         setID,
		ExerciseID: in.ExerciseID,
		WeightKg:   in.WeightKg,
		Reps:       in.Reps,
		DurationS:  in.DurationS,
		RestS:      in.RestS,
		RPE:        in.RPE,
		Notes:      in.Notes,
	}
	if err := store.PutWorkoutSession(db, *session); err != nil {
		return err
	}
	updated := session.Sets[idx]
	if updated.WeightKg != nil && updated.Reps > 0 {
		return maybePromoteRecord(db, userID, updated.ExerciseID, *updated.WeightKg, updated.Reps, session.ID, time.Now())
	}
	return nil
}

// ActiveWorkout returns the most recent session when it has no end time
// yet, or nil when nothing is in progress.
func ActiveWorkout(db *sql.DB, userID string) (*model.WorkoutSession, error) {
	userID, err := requireUser(userID)
	if err != nil {
		return nil, err
	}
	sessions, err := store.ListWorkoutSessions(db, userID, store.SessionFilter{Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 || sessions[0].EndTime != nil {
		return nil, nil
	}
	return &sessions[0], nil
}

// WorkoutHistory returns the owner's sessions, newest first. limit <= 0
// returns everything.
func WorkoutHistory(db *sql.DB, userID string, limit int) ([]model.WorkoutSession, error) {
	userID, err := requireUser(userID)
	if err != nil {
		return nil, err
	}
	return store.ListWorkoutSessions(db, userID, store.SessionFilter{Limit: limit})
}

// PersonalRecords returns the owner's record history, oldest first.
// exerciseID narrows to one exercise when non-empty.
func PersonalRecords(db *sql.DB, userID, exerciseID string) ([]model.PersonalRecord, error) {
	userID, err := requireUser(userID)
	if err != nil {
		return nil, err
	}
	return store.ListPersonalRecords(db, userID, exerciseID)
}

// GetWorkoutStats aggregates all finished sessions for the owner. An owner
// with no finished sessions gets a zero value back.
func GetWorkoutStats(db *sql.DB, userID string) (WorkoutStats, error) {
	userID, err := requireUser(userID)
	if err != nil {
		return WorkoutStats{}, err
	}
	sessions, err := store.ListWorkoutSessions(db, userID, store.SessionFilter{})
	if err != nil {
		return WorkoutStats{}, err
	}

	finished := make([]model.WorkoutSession, 0, len(sessions))
	for _, s := range sessions {
		if s.EndTime != nil {
			finished = append(finished, s)
		}
	}
	if len(finished) == 0 {
		return WorkoutStats{}, nil
	}

	stats := WorkoutStats{TotalWorkouts: len(finished)}
	var totalWeight float64
	var totalDuration time.Duration
	for _, s := range finished {
		stats.TotalSets += len(s.Sets)
		for _, set := range s.Sets {
			if set.WeightKg != nil {
				totalWeight += *set.WeightKg * float64(set.Reps)
			}
		}
		totalDuration += s.EndTime.Sub(s.StartTime)
	}
	stats.TotalWeightKg = int(math.Round(totalWeight))
	stats.AvgDurationMin = int(math.Round(totalDuration.Minutes() / float64(len(finished))))
	stats.CurrentStreak = currentStreak(finished)
	return stats, nil
}

// currentStreak counts consecutive training days walking back from the
// most recent finished session. Multiple sessions on one day count once;
// a gap of more than one day ends the streak. Sessions arrive newest first.
func currentStreak(finished []model.WorkoutSession) int {
	streak := 0
	var last time.Time
	for _, s := range finished {
		day := beginningOfDay(s.Date)
		if streak == 0 {
			last = day
			streak = 1
			continue
		}
		gap := last.Sub(day).Hours() / 24
		if gap == 1 {
			streak++
			last = day
		} else if gap > 1 {
			break
		}
	}
	return streak
}

// VolumeByMuscleGroup sums lifted volume over the trailing 30 days per
// muscle group. Primary muscles take the full set volume, secondary
// muscles half. Sets without weight contribute nothing.
func VolumeByMuscleGroup(db *sql.DB, userID string, now time.Time) (map[string]float64, error) {
	userID, err := requireUser(userID)
	if err != nil {
		return nil, err
	}
	from := beginningOfDay(now.AddDate(0, 0, -30))
	sessions, err := store.ListWorkoutSessions(db, userID, store.SessionFilter{From: from})
	if err != nil {
		return nil, err
	}
	exercises, err := store.ListExercises(db)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]model.Exercise, len(exercises))
	for _, ex := range exercises {
		byID[ex.ID] = ex
	}

	volume := map[string]float64{}
	for _, s := range sessions {
		for _, set := range s.Sets {
			ex, ok := byID[set.ExerciseID]
			if !ok || set.WeightKg == nil {
				continue
			}
			v := *set.WeightKg * float64(set.Reps)
			for _, muscle := range ex.PrimaryMuscles {
				volume[muscle] += v
			}
			for _, muscle := range ex.SecondaryMuscles {
				volume[muscle] += v * 0.5
			}
		}
	}
	return volume, nil
}

// maybePromoteRecord appends a record row when the set's estimated one rep
// max strictly beats every stored record for the exercise.
func maybePromoteRecord(db *sql.DB, userID, exerciseID string, weightKg float64, reps int, sessionID string, at time.Time) error {
	records, err := store.ListPersonalRecords(db, userID, exerciseID)
	if err != nil {
		return err
	}
	best := 0.0
	for _, pr := range records {
		if oneRM := EstimateOneRM(pr.WeightKg, pr.Reps); oneRM > best {
			best = oneRM
		}
	}
	if EstimateOneRM(weightKg, reps) <= best {
		return nil
	}
	return store.AddPersonalRecord(db, model.PersonalRecord{
		ID:         uuid.NewString(),
		UserID:     userID,
		ExerciseID: exerciseID,
		WeightKg:   weightKg,
		Reps:       reps,
		RecordedAt: at,
		SessionID:  sessionID,
	})
}

func ownedSession(db *sql.DB, userID, sessionID string) (*model.WorkoutSession, error) {
	userID, err := requireUser(userID)
	if err != nil {
		return nil, err
	}
	session, err := store.GetWorkoutSession(db, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil || session.UserID != userID {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	return session, nil
}
