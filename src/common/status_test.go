package common

import (
	"errors"
	"lrs/src/types"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestCheckTransition(t *testing.T) {
	t.Run("legal transitions", func(t *testing.T) {
		assert.Nil(t, CheckTransition(types.BOOKING_PENDING, types.BOOKING_APPROVED))
		assert.Nil(t, CheckTransition(types.BOOKING_PENDING, types.BOOKING_REJECTED))
		assert.Nil(t, CheckTransition(types.BOOKING_PENDING, types.BOOKING_CANCELLED))
		assert.Nil(t, CheckTransition(types.BOOKING_APPROVED, types.BOOKING_COMPLETED))
		assert.Nil(t, CheckTransition(types.BOOKING_APPROVED, types.BOOKING_REJECTED))
		assert.Nil(t, CheckTransition(types.BOOKING_APPROVED, types.BOOKING_CANCELLED))
	})

	t.Run("terminal states accept nothing", func(t *testing.T) {
		terminals := []types.BookingStatus{
			types.BOOKING_REJECTED,
			types.BOOKING_CANCELLED,
			types.BOOKING_COMPLETED,
		}
		targets := []types.BookingStatus{
			types.BOOKING_PENDING,
			types.BOOKING_APPROVED,
			types.BOOKING_REJECTED,
			types.BOOKING_CANCELLED,
			types.BOOKING_COMPLETED,
		}
		for _, from := range terminals {
			for _, to := range targets {
				assert.ErrorIs(t, CheckTransition(from, to), ErrIllegalTransition)
			}
		}
	})

	t.Run("no way back to pending", func(t *testing.T) {
		assert.ErrorIs(t, CheckTransition(types.BOOKING_APPROVED, types.BOOKING_PENDING), ErrIllegalTransition)
	})

	t.Run("pending cannot complete directly", func(t *testing.T) {
		assert.ErrorIs(t, CheckTransition(types.BOOKING_PENDING, types.BOOKING_COMPLETED), ErrIllegalTransition)
	})
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(types.BOOKING_PENDING))
	assert.False(t, IsTerminal(types.BOOKING_APPROVED))
	assert.True(t, IsTerminal(types.BOOKING_REJECTED))
	assert.True(t, IsTerminal(types.BOOKING_CANCELLED))
	assert.True(t, IsTerminal(types.BOOKING_COMPLETED))
}

func TestApplyTransitionLoadErrors(t *testing.T) {
	gdb, mock := newMockDB()

	t.Run("missing booking maps to not found", func(t *testing.T) {
		mock.
			ExpectQuery(`SELECT \* FROM "bookings" WHERE .*"id" = \$1.*FOR UPDATE`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "status"}))

		_, err := ApplyTransition(gdb, 42, types.BOOKING_APPROVED)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("transient failures are not swallowed as not found", func(t *testing.T) {
		dbErr := errors.New("connection reset by peer")
		mock.
			ExpectQuery(`SELECT \* FROM "bookings" WHERE .*"id" = \$1.*FOR UPDATE`).
			WillReturnError(dbErr)

		_, err := ApplyTransition(gdb, 42, types.BOOKING_APPROVED)
		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}
