package common

import "time"

// ValidateRange rejects any interval whose end is not strictly after its
// start. Runs before persistence; a failure here stops the conflict check.
func ValidateRange(start, end time.Time) error {
	if !start.Before(end) {
		return ErrInvalidRange
	}
	return nil
}
