package training

// MesocycleStatus can be one of:
//   - active
//   - completed
//   - cancelled
type MesocycleStatus string

const (
	MesocycleStatusActive    MesocycleStatus = "active"
	MesocycleStatusCompleted MesocycleStatus = "completed"
	MesocycleStatusCancelled MesocycleStatus = "cancelled"
)

func (s MesocycleStatus) String() string {
	return string(s)
}

func (s MesocycleStatus) IsValid() bool {
	switch s {
	case MesocycleStatusActive,
		MesocycleStatusCompleted,
		MesocycleStatusCancelled:
		return true
	default:
		return false
	}
}

// WorkoutStatus can be one of:
//   - pending
//   - in_progress
//   - completed
//   - skipped
type WorkoutStatus string

const (
	WorkoutStatusPending    WorkoutStatus = "pending"
	WorkoutStatusInProgress WorkoutStatus = "in_progress"
	WorkoutStatusCompleted  WorkoutStatus = "completed"
	WorkoutStatusSkipped    WorkoutStatus = "skipped"
)

func (s WorkoutStatus) String() string {
	return string(s)
}

func (s WorkoutStatus) IsValid() bool {
	switch s {
	case WorkoutStatusPending,
		WorkoutStatusInProgress,
		WorkoutStatusCompleted,
		WorkoutStatusSkipped:
		return true
	default:
		return false
	}
}

// IsTerminal is true for completed and skipped workouts.
func (s WorkoutStatus) IsTerminal() bool {
	return s == WorkoutStatusCompleted || s == WorkoutStatusSkipped
}

// SetStatus can be one of:
//   - pending
//   - completed
//   - skipped
type SetStatus string

const (
	SetStatusPending   SetStatus = "pending"
	SetStatusCompleted SetStatus = "completed"
	SetStatusSkipped   SetStatus = "skipped"
)

func (s SetStatus) String() string {
	return string(s)
}

func (s SetStatus) IsValid() bool {
	switch s {
	case SetStatusPending,
		SetStatusCompleted,
		SetStatusSkipped:
		return true
	default:
		return false
	}
}

func StatusPtr[T MesocycleStatus | WorkoutStatus | SetStatus](s T) *T {
	return &s
}
