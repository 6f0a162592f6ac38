package models

import (
	"lrs/src/types"
	"time"
)

type User struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	Name       string         `json:"name,omitempty"`
	Email      string         `gorm:"uniqueIndex" json:"email,omitempty"`
	Role       types.UserRole `gorm:"default:'user'" json:"role,omitempty"`
	LastActive time.Time      `json:"last_active,omitempty"`

	Bookings []Booking `gorm:"foreignKey:user_id" json:"bookings,omitempty"`

	types.Timestamps
}
