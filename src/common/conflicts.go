package common

import (
	"lrs/src/models"
	"lrs/src/types"
	"time"

	"gorm.io/gorm"
)

// Overlaps reports whether [s1, e1) and [s2, e2) intersect. Half-open
// semantics: a booking ending at T and one starting at T do not conflict.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && e1.After(s2)
}

// FindConflicts returns the approved bookings of a room that overlap the
// candidate interval. Only approved bookings count: a room may hold any
// number of overlapping pending requests, of which at most one can ever be
// approved. Pass excludeId > 0 to skip a booking being re-validated against
// its own approved row.
//
// This read and the status write that usually follows are separate
// operations; the btree_gist exclusion constraint installed at boot is the
// authoritative guard against two racing approvals.
func FindConflicts(tx *gorm.DB, roomId uint, start, end time.Time, excludeId uint) ([]models.Booking, error) {
	var conflicts []models.Booking
	q := tx.
		Model(&models.Booking{}).
		Where(&models.Booking{RoomID: roomId, Status: types.BOOKING_APPROVED}).
		Where("start_time < ? AND end_time > ?", end, start)
	if excludeId > 0 {
		q = q.Where("id <> ?", excludeId)
	}
	if err := q.Order("start_time asc").Find(&conflicts).Error; err != nil {
		return nil, err
	}
	return conflicts, nil
}

// ConflictResponses flattens conflicting bookings into the payload returned
// with a 409 so the client can explain which reservation blocks the slot.
func ConflictResponses(conflicts []models.Booking) []types.APIResponseConflict {
	out := make([]types.APIResponseConflict, 0, len(conflicts))
	for _, c := range conflicts {
		out = append(out, types.APIResponseConflict{
			ID:        c.ID,
			RoomID:    c.RoomID,
			StartTime: c.StartTime,
			EndTime:   c.EndTime,
		})
	}
	return out
}
