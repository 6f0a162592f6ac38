package common

import (
	"lrs/src/models"
	"lrs/src/types"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExpiredBookingIDs(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	bookings := []models.Booking{
		{ID: 1, Status: types.BOOKING_APPROVED, EndTime: now.Add(-time.Hour)},
		{ID: 2, Status: types.BOOKING_APPROVED, EndTime: now.Add(time.Hour)},
		{ID: 3, Status: types.BOOKING_PENDING, EndTime: now.Add(-time.Hour)},
		{ID: 4, Status: types.BOOKING_COMPLETED, EndTime: now.Add(-time.Hour)},
		{ID: 5, Status: types.BOOKING_APPROVED, EndTime: now},
	}

	ids := ExpiredBookingIDs(bookings, now)
	assert.Equal(t, []uint{1}, ids)

	t.Run("completed bookings are not swept again", func(t *testing.T) {
		bookings[0].Status = types.BOOKING_COMPLETED
		assert.Empty(t, ExpiredBookingIDs(bookings, now))
	})

	t.Run("empty batch", func(t *testing.T) {
		assert.Empty(t, ExpiredBookingIDs(nil, now))
	})
}
