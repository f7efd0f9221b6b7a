package models

import "time"

// RefreshToken stores only the digest of the raw token handed to the client.
type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"type:uuid;not null;index"`
	TokenHash string    `gorm:"size:64;not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null;index"`
}

// IsActive reports whether the token is still usable at now.
func (t *RefreshToken) IsActive(now time.Time) bool {
	return t.ExpiresAt.After(now)
}
