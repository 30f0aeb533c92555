package booking

import (
	"errors"
	"fmt"
)

var (
	ErrValidation        = errors.New("validation error")
	ErrStudioNotFound    = errors.New("studio not found")
	ErrStudioNotApproved = errors.New("studio not approved")
	ErrInvalidPackage    = errors.New("invalid package")
	ErrInvalidAddon      = errors.New("invalid addon")
	ErrNotFound          = errors.New("booking not found")
	ErrForbidden         = errors.New("forbidden")

	// ErrSlotUnavailable: pre-commit availability check failed.
	ErrSlotUnavailable = errors.New("slot unavailable")
	// ErrConflict: another commit won the race for an overlapping hour.
	ErrConflict = errors.New("booking conflict")
	// ErrPersistence: the store failed twice; nothing was committed.
	ErrPersistence = errors.New("persistence error")
)

// SlotUnavailableError names the hours that are not free so the client can
// show which ones to drop. It matches ErrSlotUnavailable under errors.Is.
type SlotUnavailableError struct {
	Hours []int
}

func (e *SlotUnavailableError) Error() string {
	return fmt.Sprintf("slot unavailable: hours %v", e.Hours)
}

func (e *SlotUnavailableError) Is(target error) bool {
	return target == ErrSlotUnavailable
}
