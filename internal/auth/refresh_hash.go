package auth

import (
	"crypto/sha256"
	"encoding/base64"
)

// HashRefreshToken returns the 44-character base64 SHA-256 digest of raw.
// The digest is unsalted so stored tokens can be found by equality.
func HashRefreshToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return base64.StdEncoding.EncodeToString(sum[:])
}
