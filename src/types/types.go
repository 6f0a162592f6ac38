package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type JSONB map[string]any
type JSONBArray []any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

func (a JSONBArray) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONBArray) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

type BookingStatus string

const (
	BOOKING_PENDING   BookingStatus = "pending"
	BOOKING_APPROVED  BookingStatus = "approved"
	BOOKING_REJECTED  BookingStatus = "rejected"
	BOOKING_CANCELLED BookingStatus = "cancelled"
	BOOKING_COMPLETED BookingStatus = "completed"
)

type RoomKind string

const (
	ROOM_KIND_ROOM RoomKind = "room"
	ROOM_KIND_TOUR RoomKind = "tour"
)

type BookingEvent string

const (
	BOOKING_EVENT_CREATED  BookingEvent = "created"
	BOOKING_EVENT_APPROVED BookingEvent = "approved"
	BOOKING_EVENT_REJECTED BookingEvent = "rejected"
)

type UserRole string

const (
	ROLE_USER  UserRole = "user"
	ROLE_ADMIN UserRole = "admin"
)

type CreateBookingRequestBody struct {
	RoomID      uint   `json:"room_id" binding:"required"`
	StartTime   string `json:"start_time" binding:"required,bookabledate" time_format:"2006-01-02 15:04:05 -07:00"`
	EndTime     string `json:"end_time" binding:"required,gtdate=StartTime" time_format:"2006-01-02 15:04:05 -07:00"`
	GuestCount  *uint  `json:"guest_count,omitempty"`
	IsTour      bool   `json:"is_tour,omitempty"`
	Description string `json:"description,omitempty"`
	Notes       string `json:"notes,omitempty"`
	ProposalRef string `json:"proposal_file_ref,omitempty"`
}

type UpdateBookingStatusRequestBody struct {
	Status string `json:"status" binding:"required,oneof=approved rejected cancelled"`
}

type CreateRoomRequestBody struct {
	Name       string     `json:"name" binding:"required"`
	Kind       string     `json:"kind,omitempty" binding:"omitempty,oneof=room tour"`
	Capacity   uint       `json:"capacity,omitempty"`
	Facilities JSONBArray `json:"facilities,omitempty"`
	PhotoRef   string     `json:"photo_ref,omitempty"`
}

type UpdateRoomStatusRequestBody struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

type AvailabilityQueryParams struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
}

type BookingsQueryFilters struct {
	Status string `form:"status,omitempty" binding:"omitempty,oneof=pending approved rejected cancelled completed"`
	RoomID uint   `form:"room,omitempty"`
	Mine   bool   `form:"mine,omitempty"`
}

type RegisterUserRequestBody struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

type LoginRequestBody struct {
	Email string `json:"email" binding:"required,email"`
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type APIResponseConflict struct {
	ID        uint      `json:"id"`
	RoomID    uint      `json:"room_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type BookingStats struct {
	Pending   int64 `json:"pending"`
	Approved  int64 `json:"approved"`
	Rejected  int64 `json:"rejected"`
	Cancelled int64 `json:"cancelled"`
	Completed int64 `json:"completed"`
}

type RoomUsage struct {
	RoomID   uint   `json:"room_id"`
	RoomName string `json:"room_name"`
	Total    int64  `json:"total"`
	Approved int64  `json:"approved"`
}
