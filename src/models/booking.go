package models

import (
	"lrs/src/types"
	"time"
)

type Booking struct {
	ID          uint                `gorm:"primarykey" json:"id"`
	RoomID      uint                `json:"room_id,omitempty"`
	UserID      uint                `json:"user_id,omitempty"`
	StartTime   time.Time           `json:"start_time,omitempty"`
	EndTime     time.Time           `json:"end_time,omitempty"`
	Status      types.BookingStatus `gorm:"default:'pending'" json:"status,omitempty"`
	GuestCount  uint                `gorm:"default:1" json:"guest_count,omitempty"`
	IsTour      bool                `json:"is_tour,omitempty"`
	Description string              `json:"description,omitempty"`
	Notes       string              `json:"notes,omitempty"`
	ProposalRef string              `json:"proposal_file_ref,omitempty"`

	Room *Room `gorm:"foreignKey:room_id" json:"room,omitempty"`
	User *User `gorm:"foreignKey:user_id" json:"user,omitempty"`

	types.Timestamps
}
