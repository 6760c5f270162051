package entity

import (
	"time"

	"github.com/google/uuid"
)

// OneTimeCode is the single mutable OTP slot for an account. user_id carries
// a unique constraint: signup verification, account reset and password reset
// all share the slot, and a new request overwrites the previous code.
type OneTimeCode struct {
	ID     uuid.UUID `db:"id"`
	UserID uuid.UUID `db:"user_id"`
	Code   string    `db:"code"`
	SentAt time.Time `db:"sent_at"`
}
