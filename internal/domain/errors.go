package domain

import (
	"errors"
	"fmt"
)

var (
	ErrPermissionDenied        = errors.New("notification permission not granted")
	ErrCollaboratorUnavailable = errors.New("collaborator unavailable")
	ErrUnknownCountry          = errors.New("unknown country")
	ErrItemNotFound            = errors.New("item not found")
	ErrInvalidTime             = errors.New("invalid time")
	ErrInvalidTimezone         = errors.New("invalid timezone")
)

// PermissionStatus is the state reported by the notification collaborator
type PermissionStatus string

const (
	PermissionGranted             PermissionStatus = "granted"
	PermissionDenied              PermissionStatus = "denied"
	PermissionPrompt              PermissionStatus = "prompt"
	PermissionPromptWithRationale PermissionStatus = "prompt-with-rationale"
)

// PermissionError is returned when notifications cannot be scheduled.
// It matches ErrPermissionDenied with errors.Is.
type PermissionError struct {
	Status PermissionStatus
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("%s (status: %s)", ErrPermissionDenied.Error(), e.Status)
}

func (e *PermissionError) Is(target error) bool {
	return target == ErrPermissionDenied
}
