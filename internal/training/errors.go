package training

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidTransition   = errors.New("invalid state transition")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrValidation          = errors.New("validation failed")
)

var (
	ErrActiveMesocycleExists = fmt.Errorf("an active mesocycle already exists: %w", ErrConstraintViolation)
	ErrPlanHasNoDays         = fmt.Errorf("plan has no days: %w", ErrConstraintViolation)
	ErrMesocycleNotActive    = fmt.Errorf("mesocycle is not active: %w", ErrConstraintViolation)
)

// NotFound returns an error for a missing entity that matches ErrNotFound.
func NotFound(entity string, id int) error {
	return fmt.Errorf("%s [%d]: %w", entity, id, ErrNotFound)
}

// InvalidTransition returns an error matching ErrInvalidTransition.
func InvalidTransition(entity string, id int, action string, from fmt.Stringer) error {
	return fmt.Errorf("cannot %s %s [%d] in status [%s]: %w", action, entity, id, from, ErrInvalidTransition)
}
