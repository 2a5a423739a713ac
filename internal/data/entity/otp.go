package entity

import (
	"time"

	"github.com/google/uuid"
)

// OTPCode is one issued code. OwnerID is either a pending-registration id
// (new signup) or a profile id (existing login). The code itself is stored
// hashed; at most one unused, unexpired code exists per owner.
type OTPCode struct {
	BaseSimple
	OwnerID   uuid.UUID `db:"owner_id"`
	CodeHash  string    `db:"code_hash"`
	ExpiresAt time.Time `db:"expires_at"`
	IsUsed    bool      `db:"is_used"`
}
