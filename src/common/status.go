package common

import (
	"errors"
	"log"
	"lrs/src/models"
	"lrs/src/types"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// legalTransitions is the whole lifecycle: pending is the initial state,
// rejected/cancelled/completed are terminal. approved -> rejected/cancelled
// is the admin override path.
var legalTransitions = map[types.BookingStatus][]types.BookingStatus{
	types.BOOKING_PENDING: {
		types.BOOKING_APPROVED,
		types.BOOKING_REJECTED,
		types.BOOKING_CANCELLED,
	},
	types.BOOKING_APPROVED: {
		types.BOOKING_COMPLETED,
		types.BOOKING_REJECTED,
		types.BOOKING_CANCELLED,
	},
}

func CheckTransition(from, to types.BookingStatus) error {
	for _, allowed := range legalTransitions[from] {
		if allowed == to {
			return nil
		}
	}
	return ErrIllegalTransition
}

func IsTerminal(s types.BookingStatus) bool {
	return len(legalTransitions[s]) == 0
}

// ApplyTransition moves a booking to target inside the caller's transaction.
// The row is locked for the duration, the transition is re-checked against the
// current status (not whatever the caller last saw), and an approval re-runs
// the conflict scan with the booking excluding itself. The caller dispatches
// notifications after commit; dispatch never rolls back the status write.
func ApplyTransition(tx *gorm.DB, bookingId uint, target types.BookingStatus) (*models.Booking, error) {
	var booking models.Booking
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(&models.Booking{ID: bookingId}).
		First(&booking).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := CheckTransition(booking.Status, target); err != nil {
		log.Printf("Illegal transition for Booking [%d]: %s -> %s\n", bookingId, booking.Status, target)
		return nil, err
	}
	if target == types.BOOKING_APPROVED {
		conflicts, err := FindConflicts(tx, booking.RoomID, booking.StartTime, booking.EndTime, booking.ID)
		if err != nil {
			return nil, err
		}
		if len(conflicts) > 0 {
			return nil, &ConflictError{Conflicts: conflicts}
		}
	}
	if err := tx.
		Model(&models.Booking{}).
		Where(&models.Booking{ID: bookingId}).
		Update("status", target).
		Error; err != nil {
		return nil, err
	}
	booking.Status = target
	return &booking, nil
}
