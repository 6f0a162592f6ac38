package models

import (
	"lrs/src/types"

	"github.com/google/uuid"
)

type Notification struct {
	ID        uuid.UUID    `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`
	BookingID uint         `json:"booking_id"`
	UserID    uint         `json:"user_id"`
	Event     string       `json:"event"`
	Title     string       `json:"title"`
	Body      *types.JSONB `gorm:"type:jsonb" json:"body"`
	Delivered bool         `json:"delivered"`

	types.Timestamps
}
