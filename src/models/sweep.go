package models

import (
	"lrs/src/types"
	"time"

	"github.com/google/uuid"
)

// SweepRun records one pass of the expiry auto-completer so the admin
// dashboard can show when stale approvals were last reaped.
type SweepRun struct {
	ID         uuid.UUID         `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`
	Source     string            `json:"source"`
	SweptCount uint              `json:"swept_count"`
	SweptIDs   *types.JSONBArray `gorm:"type:jsonb" json:"swept_ids"`
	RanAt      time.Time         `json:"ran_at"`

	types.Timestamps
}
