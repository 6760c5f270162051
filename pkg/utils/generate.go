package utils

import (
	"math/rand"
	"strings"

	"github.com/google/uuid"
)

// ==================== UUID & TOKEN ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

// GenerateSessionToken mints an unguessable session token. uuid.New reads
// from crypto/rand, so the value is safe to use as a bearer credential.
func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}

// ==================== OTP ====================

// GenerateOTP creates a numeric OTP of the given length, each digit drawn
// independently. Brute force within one OTP window is bounded by the 5 minute
// expiry, not by code entropy.
func GenerateOTP(length int) string {
	if length <= 0 {
		length = 6
	}

	var sb strings.Builder
	for i := 0; i < length; i++ {
		sb.WriteByte(byte('0' + rand.Intn(10)))
	}

	return sb.String()
}
