package common

import (
	"fmt"
	"log"
	"lrs/src/db"
	"lrs/src/lib"
	"lrs/src/lib/mailer"
	"lrs/src/models"
	"lrs/src/types"
	"os"

	"github.com/tidwall/gjson"
	"gorm.io/gorm"
)

const notificationsClientId = "booking_notifications_producer"

func topicForEvent(event types.BookingEvent) string {
	return fmt.Sprintf("bookings-%s", event)
}

// NotifyBookingEvent emits a booking domain event for the notification
// consumer. Fire and forget: the caller's response never waits on this, and
// a dead broker only costs a log line, never a failed booking operation.
func NotifyBookingEvent(event types.BookingEvent, booking *models.Booking) {
	payload := map[string]any{
		"id":         booking.ID,
		"room_id":    booking.RoomID,
		"user_id":    booking.UserID,
		"status":     string(booking.Status),
		"start_time": booking.StartTime,
		"end_time":   booking.EndTime,
		"event":      string(event),
	}
	go func() {
		if err := lib.KafkaProduceMessage(notificationsClientId, topicForEvent(event), payload); err != nil {
			log.Printf("Notification dispatch failed for Booking [%d]: %s\n", booking.ID, err.Error())
		}
	}()
}

// BookingNotificationsConsumer persists a Notification row for every booking
// event and mails the requester on approve/reject. Errors are logged and the
// consumer moves on; delivery is decoupled from the status change that
// produced the event.
func BookingNotificationsConsumer() {
	topics := []string{
		topicForEvent(types.BOOKING_EVENT_CREATED),
		topicForEvent(types.BOOKING_EVENT_APPROVED),
		topicForEvent(types.BOOKING_EVENT_REJECTED),
	}
	lib.KafkaConsumeTopics("booking_notifications", topics, func(body string) {
		if !gjson.Valid(body) {
			log.Println("[booking_notifications]: Received invalid json body. Aborting")
			return
		}
		bookingId := uint(gjson.Get(body, "id").Uint())
		userId := uint(gjson.Get(body, "user_id").Uint())
		event := gjson.Get(body, "event").String()
		log.Printf("[booking_notifications]: %s for Booking [%d]\n", event, bookingId)

		db := db.GetDb()
		var user models.User
		if err := db.
			Model(&models.User{}).
			Where(&models.User{ID: userId}).
			First(&user).
			Error; err != nil {
			log.Printf("Could not load user [%d] for notification: %s\n", userId, err.Error())
			return
		}
		refBody := types.JSONB{
			"start_time": gjson.Get(body, "start_time").String(),
			"end_time":   gjson.Get(body, "end_time").String(),
			"room_id":    gjson.Get(body, "room_id").Uint(),
		}
		notification := models.Notification{
			BookingID: bookingId,
			UserID:    userId,
			Event:     event,
			Title:     notificationTitle(types.BookingEvent(event), bookingId),
			Body:      &refBody,
		}
		if err := db.Transaction(func(tx *gorm.DB) error {
			return tx.Create(&notification).Error
		}); err != nil {
			log.Printf("Error saving notification for Booking [%d]: %s\n", bookingId, err.Error())
		}

		if event == string(types.BOOKING_EVENT_CREATED) {
			return
		}
		input := &lib.SendMailInput{
			From:     os.Getenv("MAIL_FROM"),
			FromName: os.Getenv("MAIL_FROM_NAME"),
			To:       []string{user.Email},
			Subject:  notification.Title,
			Body: fmt.Sprintf(
				"Hi %s,\n\nYour reservation [%d] has been %s.\nScheduled from %s to %s.\n",
				user.Name,
				bookingId,
				event,
				gjson.Get(body, "start_time").String(),
				gjson.Get(body, "end_time").String(),
			),
		}
		if err := mailer.NewMailerMessage(input); err != nil {
			log.Printf("Error mailing notification for Booking [%d]: %s\n", bookingId, err.Error())
			return
		}
		if err := db.
			Model(&models.Notification{}).
			Where(&models.Notification{ID: notification.ID}).
			Update("delivered", true).
			Error; err != nil {
			log.Printf("Error updating notification status: %s\n", err.Error())
		}
	})
}

func notificationTitle(event types.BookingEvent, bookingId uint) string {
	switch event {
	case types.BOOKING_EVENT_APPROVED:
		return fmt.Sprintf("Reservation [%d] approved", bookingId)
	case types.BOOKING_EVENT_REJECTED:
		return fmt.Sprintf("Reservation [%d] rejected", bookingId)
	default:
		return fmt.Sprintf("Reservation [%d] received", bookingId)
	}
}
