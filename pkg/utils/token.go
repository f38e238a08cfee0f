package utils

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
)

// GenerateResetToken returns an opaque single-use token for the
// forgot-password flow. 256 bits of entropy, hex-encoded.
func GenerateResetToken() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing is effectively unreachable; degrade to uuids
		// rather than handing out a predictable token.
		return uuid.NewString() + uuid.NewString()
	}
	return hex.EncodeToString(buf)
}
