package training

import "time"

const DefaultDurationWeeks = 6

type Exercise struct {
	ID              int       `json:"id"`
	Name            string    `json:"name"`
	WeightIncrement float64   `json:"weightIncrement"`
	IsCustom        bool      `json:"isCustom"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Plan is the template a Mesocycle is generated from.
// DurationWeeks counts regular weeks only, the deload week comes on top.
type Plan struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	DurationWeeks int       `json:"durationWeeks"`
	CreatedAt     time.Time `json:"createdAt"`
}

// DeloadWeek returns the week number of the final, reduced volume week.
func (p Plan) DeloadWeek() int {
	return p.DurationWeeks + 1
}

type PlanDay struct {
	ID        int    `json:"id"`
	PlanID    int    `json:"planId"`
	DayOfWeek int    `json:"dayOfWeek"` // 0 = Sunday
	Name      string `json:"name"`
	SortOrder int    `json:"sortOrder"`
}

// PlanDayExercise is the base configuration the progression is computed from.
type PlanDayExercise struct {
	ID          int     `json:"id"`
	PlanDayID   int     `json:"planDayId"`
	ExerciseID  int     `json:"exerciseId"`
	Sets        int     `json:"sets"`
	Reps        int     `json:"reps"`
	Weight      float64 `json:"weight"`
	RestSeconds int     `json:"restSeconds"`
	MinReps     int     `json:"minReps"`
	MaxReps     int     `json:"maxReps"`
	SortOrder   int     `json:"sortOrder"`
}

type Mesocycle struct {
	ID          int             `json:"id"`
	PlanID      int             `json:"planId"`
	StartDate   time.Time       `json:"startDate"`
	CurrentWeek int             `json:"currentWeek"`
	Status      MesocycleStatus `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type Workout struct {
	ID            int           `json:"id"`
	MesocycleID   int           `json:"mesocycleId"`
	PlanDayID     int           `json:"planDayId"`
	WeekNumber    int           `json:"weekNumber"`
	ScheduledDate time.Time     `json:"scheduledDate"`
	Status        WorkoutStatus `json:"status"`
	StartedAt     *time.Time    `json:"startedAt,omitempty"`
	CompletedAt   *time.Time    `json:"completedAt,omitempty"`
}

type WorkoutSet struct {
	ID           int       `json:"id"`
	WorkoutID    int       `json:"workoutId"`
	ExerciseID   int       `json:"exerciseId"`
	SetNumber    int       `json:"setNumber"`
	TargetReps   int       `json:"targetReps"`
	TargetWeight float64   `json:"targetWeight"`
	ActualReps   *int      `json:"actualReps,omitempty"`
	ActualWeight *float64  `json:"actualWeight,omitempty"`
	Status       SetStatus `json:"status"`
}

// IsLogged reports whether the set carries recorded performance.
// Logged sets are only ever touched by explicit set logging.
func (s WorkoutSet) IsLogged() bool {
	return s.Status == SetStatusCompleted || s.ActualReps != nil
}

// MesocycleUpdate, WorkoutUpdate and WorkoutSetUpdate are partial updates,
// nil fields are left untouched.
type MesocycleUpdate struct {
	CurrentWeek *int
	Status      *MesocycleStatus
}

type WorkoutUpdate struct {
	Status      *WorkoutStatus
	StartedAt   *time.Time
	CompletedAt *time.Time
}

type WorkoutSetUpdate struct {
	TargetReps   *int
	TargetWeight *float64
	Status       *SetStatus
	ActualReps   *int
	ActualWeight *float64
	// ClearActuals resets both actual values to NULL, it wins over ActualReps/ActualWeight.
	ClearActuals bool
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func IntPtr(v int) *int {
	return &v
}

func FloatPtr(v float64) *float64 {
	return &v
}

func TimePtr(v time.Time) *time.Time {
	return &v
}
