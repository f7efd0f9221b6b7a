package models

import "time"

type SubscriptionTier string

const (
	SubscriptionTierFree    SubscriptionTier = "FREE"
	SubscriptionTierPremium SubscriptionTier = "PREMIUM"
)

const DefaultStayLoggedInDays = 30

// User is a registered account. PasswordHash is nil for accounts created
// through an external identity provider.
type User struct {
	BaseModelWithDeleted
	Username              *string `gorm:"size:50;uniqueIndex"`
	Email                 string  `gorm:"size:254;not null;uniqueIndex"`
	PasswordHash          *string
	ExternalAuthID        *string `gorm:"column:external_auth_id;size:255"`
	LastLoginAt           *time.Time
	StayLoggedInDays      int              `gorm:"not null"`
	NotificationsPush     bool             `gorm:"not null"`
	NotificationsEmail    bool             `gorm:"not null"`
	SubscriptionTier      SubscriptionTier `gorm:"type:varchar(20);not null"`
	SubscriptionStartDate *time.Time
	NumberOfAIPrompts     int        `gorm:"column:number_of_ai_prompts;not null"`
	LastAIPromptAt        *time.Time `gorm:"column:last_ai_prompt_at"`

	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID"`
}

func (User) TableName() string {
	return "app_users"
}

// UsernameValue returns the username or "" when unset.
func (u *User) UsernameValue() string {
	if u.Username == nil {
		return ""
	}
	return *u.Username
}

// HasPassword reports whether the account can sign in with a password.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}
