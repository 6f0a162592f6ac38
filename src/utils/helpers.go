package utils

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"lrs/src/common"
	"lrs/src/config"
	"lrs/src/db"
	"lrs/src/lib"
	"lrs/src/models"
	"lrs/src/types"
	"os"
	"time"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func IsProd() bool {
	return os.Getenv("API_ENV") == "production"
}

// CreateNewBooking validates the requested interval, checks the room and the
// approved set, and persists the request as pending. The created event is
// dispatched after commit.
func CreateNewBooking(params *types.CreateBookingRequestBody, userId uint) (*models.Booking, error) {
	startTime, err := time.Parse(config.TIME_PARSE_FORMAT, params.StartTime)
	if err != nil {
		log.Printf("Error parsing start_time: %s\n", err.Error())
		return nil, common.ErrInvalidRange
	}
	endTime, err := time.Parse(config.TIME_PARSE_FORMAT, params.EndTime)
	if err != nil {
		log.Printf("Error parsing end_time: %s\n", err.Error())
		return nil, common.ErrInvalidRange
	}
	if err := common.ValidateRange(startTime, endTime); err != nil {
		return nil, err
	}

	guestCount := uint(1)
	if params.GuestCount != nil {
		guestCount = *params.GuestCount
	}
	booking := models.Booking{
		RoomID:      params.RoomID,
		UserID:      userId,
		StartTime:   startTime,
		EndTime:     endTime,
		Status:      types.BOOKING_PENDING,
		GuestCount:  guestCount,
		IsTour:      params.IsTour,
		Description: params.Description,
		Notes:       params.Notes,
		ProposalRef: params.ProposalRef,
	}

	db := db.GetDb()
	err = db.Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.
			Where(&models.Room{ID: params.RoomID}).
			First(&room).
			Error; err != nil {
			return common.ErrNotFound
		}
		if !room.IsActive {
			return common.ErrRoomUnavailable
		}
		if room.Capacity > 0 && guestCount > room.Capacity {
			return common.ErrCapacityExceeded
		}
		if room.Kind == types.ROOM_KIND_TOUR {
			booking.IsTour = true
		}
		conflicts, err := common.FindConflicts(tx, params.RoomID, startTime, endTime, 0)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return &common.ConflictError{Conflicts: conflicts}
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	common.NotifyBookingEvent(types.BOOKING_EVENT_CREATED, &booking)
	return &booking, nil
}

// SetBookingStatus applies an admin decision. The status write commits on its
// own; notification dispatch, cache invalidation and the completion job all
// run after and cannot fail the decision.
func SetBookingStatus(bookingId uint, target types.BookingStatus) (*models.Booking, error) {
	var booking *models.Booking
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		// Cancelling a pending request belongs to its owner; the admin
		// override only covers approved bookings.
		if target == types.BOOKING_CANCELLED {
			var current models.Booking
			if err := tx.
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Where(&models.Booking{ID: bookingId}).
				First(&current).
				Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return common.ErrNotFound
				}
				return err
			}
			if current.Status == types.BOOKING_PENDING {
				return common.ErrForbidden
			}
		}
		updated, err := common.ApplyTransition(tx, bookingId, target)
		if err != nil {
			return err
		}
		booking = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	switch target {
	case types.BOOKING_APPROVED:
		common.NotifyBookingEvent(types.BOOKING_EVENT_APPROVED, booking)
		scheduleCompletion(booking)
	case types.BOOKING_REJECTED:
		common.NotifyBookingEvent(types.BOOKING_EVENT_REJECTED, booking)
	}
	go lib.InvalidateRoomAvailability(booking.RoomID)
	return booking, nil
}

// scheduleCompletion queues a one-time sweep right after the booking's end
// time so completion does not have to wait for the next periodic pass.
func scheduleCompletion(booking *models.Booking) {
	runsAt := booking.EndTime.Add(time.Minute)
	jid, err := lib.CreateOneTimeJob(runsAt, func(roomId uint) {
		db := db.GetDb()
		if _, err := common.SweepExpired(db, "schedule"); err != nil {
			log.Printf("Scheduled sweep failed: %s\n", err.Error())
			return
		}
		go lib.InvalidateRoomAvailability(roomId)
	}, booking.RoomID)
	if err != nil {
		log.Printf("Error creating completion job for Booking [%d]: %s\n", booking.ID, err.Error())
		return
	}
	log.Printf("Created completion job for Booking [%d] with ID %s\n", booking.ID, jid.String())
}

// CancelBooking lets the owning requester withdraw a request that is still
// pending. Ownership and the pending state are re-checked under lock, not
// trusted from the client.
func CancelBooking(bookingId uint, requesterId uint) (*models.Booking, error) {
	var booking *models.Booking
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		var current models.Booking
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(&models.Booking{ID: bookingId}).
			First(&current).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.ErrNotFound
			}
			return err
		}
		if current.UserID != requesterId {
			return common.ErrForbidden
		}
		if current.Status != types.BOOKING_PENDING {
			return common.ErrNotPending
		}
		updated, err := common.ApplyTransition(tx, bookingId, types.BOOKING_CANCELLED)
		if err != nil {
			return err
		}
		booking = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func GetOwnBookings(userId uint, filters *types.BookingsQueryFilters) ([]models.Booking, error) {
	cond := models.Booking{UserID: userId}
	if filters != nil {
		if filters.Status != "" {
			cond.Status = types.BookingStatus(filters.Status)
		}
		if filters.RoomID > 0 {
			cond.RoomID = filters.RoomID
		}
	}
	db := db.GetDb()
	var bookings []models.Booking
	err := db.
		Model(&models.Booking{}).
		Where(&cond).
		Preload("Room").
		Order("created_at DESC").
		Limit(50).
		Find(&bookings).
		Error
	return bookings, err
}

// GetRoomAvailability returns the approved bookings of a room inside a
// window. Results are cached per window; mutations invalidate through
// lib.InvalidateRoomAvailability.
func GetRoomAvailability(roomId uint, from, to time.Time, rawFrom, rawTo string) ([]models.Booking, error) {
	cacheKey := lib.RoomAvailabilityKey(roomId, rawFrom, rawTo)
	rd := lib.GetRedisClient()
	if rd != nil {
		val := rd.JSONGet(context.Background(), cacheKey).Val()
		if val != "" {
			var cached []models.Booking
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached, nil
			}
		}
	}
	db := db.GetDb()
	var bookings []models.Booking
	ss := db.Session(&gorm.Session{PrepareStmt: true})
	err := ss.
		Model(&models.Booking{}).
		Where(&models.Booking{RoomID: roomId, Status: types.BOOKING_APPROVED}).
		Where("start_time < ? AND end_time > ?", to, from).
		Order("start_time asc").
		Find(&bookings).
		Error
	if err != nil {
		return nil, err
	}
	if rd != nil {
		go func() {
			if _, err := rd.JSONSet(context.Background(), cacheKey, "$", &bookings).Result(); err != nil {
				log.Printf("[redis] Error caching availability for room %d: %s\n", roomId, err.Error())
				return
			}
			rd.Expire(context.Background(), cacheKey, 5*time.Minute)
		}()
	}
	return bookings, nil
}

func CreateNewRoom(params *types.CreateRoomRequestBody) (uint, error) {
	kind := types.ROOM_KIND_ROOM
	if params.Kind != "" {
		kind = types.RoomKind(params.Kind)
	}
	room := models.Room{
		Name:     params.Name,
		Slug:     slug.Make(params.Name),
		Kind:     kind,
		Capacity: params.Capacity,
		PhotoRef: params.PhotoRef,
		IsActive: true,
	}
	if len(params.Facilities) > 0 {
		room.Facilities = &params.Facilities
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&room).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return room.ID, nil
}

func GetBookingStats() (*types.BookingStats, error) {
	db := db.GetDb()
	var rows []struct {
		Status string
		Count  int64
	}
	if err := db.
		Model(&models.Booking{}).
		Select("status, COUNT(id) as count").
		Group("status").
		Scan(&rows).
		Error; err != nil {
		return nil, err
	}
	stats := types.BookingStats{}
	for _, r := range rows {
		switch types.BookingStatus(r.Status) {
		case types.BOOKING_PENDING:
			stats.Pending = r.Count
		case types.BOOKING_APPROVED:
			stats.Approved = r.Count
		case types.BOOKING_REJECTED:
			stats.Rejected = r.Count
		case types.BOOKING_CANCELLED:
			stats.Cancelled = r.Count
		case types.BOOKING_COMPLETED:
			stats.Completed = r.Count
		}
	}
	return &stats, nil
}

func GetRoomUsage() ([]types.RoomUsage, error) {
	db := db.GetDb()
	var usage []types.RoomUsage
	err := db.
		Model(&models.Room{}).
		Select("rooms.id as room_id, rooms.name as room_name, COUNT(bookings.id) as total, COUNT(CASE WHEN bookings.status = 'approved' THEN 1 END) as approved").
		Joins("LEFT JOIN bookings ON bookings.room_id = rooms.id AND bookings.deleted_at IS NULL").
		Group("rooms.id, rooms.name").
		Order("total DESC").
		Scan(&usage).
		Error
	return usage, err
}
