package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is a server-side session. The id doubles as the bearer token
// mirrored in the auth cookie. Expiry is absolute; there is no sliding
// renewal. Rows are deleted on sign-out and lazily on expired reads.
type Session struct {
	BaseSimple
	UserID    uuid.UUID `db:"user_id"`
	ExpiresAt time.Time `db:"expires_at"`
}
