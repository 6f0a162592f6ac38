package common

import (
	"log"
	"lrs/src/models"
	"lrs/src/types"
	"time"

	"gorm.io/gorm"
)

// ExpiredBookingIDs filters a batch down to the bookings the sweep should
// complete: approved, with an end time already in the past. Pure; re-running
// over already-completed rows yields nothing.
func ExpiredBookingIDs(bookings []models.Booking, now time.Time) []uint {
	ids := []uint{}
	for _, b := range bookings {
		if b.Status == types.BOOKING_APPROVED && b.EndTime.Before(now) {
			ids = append(ids, b.ID)
		}
	}
	return ids
}

// SweepBatch transitions every expired approved booking in the batch to
// completed and returns the ids actually changed. Each booking gets its own
// transaction so one failure cannot abort the rest of the sweep.
func SweepBatch(db *gorm.DB, bookings []models.Booking, now time.Time) []uint {
	swept := []uint{}
	for _, id := range ExpiredBookingIDs(bookings, now) {
		err := db.Transaction(func(tx *gorm.DB) error {
			_, err := ApplyTransition(tx, id, types.BOOKING_COMPLETED)
			return err
		})
		if err != nil {
			log.Printf("Sweep skipped Booking [%d]: %s\n", id, err.Error())
			continue
		}
		swept = append(swept, id)
	}
	return swept
}

// SweepExpired is the expiry auto-completer: it scans the approved set for
// bookings whose end time has passed, completes them, and records the run.
// source tags who triggered the pass (dashboard fetch, cron, manual).
func SweepExpired(db *gorm.DB, source string) ([]uint, error) {
	now := time.Now()
	var stale []models.Booking
	if err := db.
		Model(&models.Booking{}).
		Where(&models.Booking{Status: types.BOOKING_APPROVED}).
		Where("end_time < ?", now).
		Find(&stale).
		Error; err != nil {
		log.Printf("Error scanning for expired bookings: %s\n", err.Error())
		return nil, err
	}
	swept := SweepBatch(db, stale, now)
	if len(swept) == 0 {
		return swept, nil
	}
	ids := types.JSONBArray{}
	for _, id := range swept {
		ids = append(ids, id)
	}
	run := models.SweepRun{
		Source:     source,
		SweptCount: uint(len(swept)),
		SweptIDs:   &ids,
		RanAt:      now,
	}
	if err := db.Create(&run).Error; err != nil {
		log.Printf("Error recording sweep run: %s\n", err.Error())
	}
	log.Printf("Sweep [%s] completed %d booking(s)\n", source, len(swept))
	return swept, nil
}
