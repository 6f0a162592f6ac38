package models

import "lrs/src/types"

type Room struct {
	ID         uint              `gorm:"primarykey" json:"id"`
	Name       string            `json:"name,omitempty"`
	Slug       string            `gorm:"uniqueIndex" json:"slug,omitempty"`
	Kind       types.RoomKind    `gorm:"default:'room'" json:"kind,omitempty"`
	Capacity   uint              `json:"capacity,omitempty"`
	Facilities *types.JSONBArray `gorm:"type:jsonb" json:"facilities,omitempty"`
	PhotoRef   string            `json:"photo_ref,omitempty"`
	IsActive   bool              `gorm:"default:true" json:"is_active"`

	Bookings []Booking `gorm:"foreignKey:room_id" json:"bookings,omitempty"`

	types.Timestamps
}
