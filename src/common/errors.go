package common

import (
	"errors"
	"fmt"
	"lrs/src/models"
)

var (
	ErrInvalidRange      = errors.New("start time must be before end time")
	ErrIllegalTransition = errors.New("status transition not allowed")
	ErrNotFound          = errors.New("booking not found")
	ErrForbidden         = errors.New("not enough permissions to perform this action")
	ErrNotPending        = errors.New("booking is no longer pending")
	ErrRoomUnavailable   = errors.New("room is not available for booking")
	ErrCapacityExceeded  = errors.New("guest count exceeds room capacity")
)

// ConflictError reports the approved bookings that overlap a requested
// interval so callers can tell the client why the slot is taken.
type ConflictError struct {
	Conflicts []models.Booking
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("requested time overlaps %d approved booking(s)", len(e.Conflicts))
}
