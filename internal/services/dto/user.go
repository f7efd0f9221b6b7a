package dto

import (
	"time"

	"disccount_backend/internal/models"
)

type UserResponse struct {
	ID                    string     `json:"id"`
	Username              *string    `json:"username"`
	Email                 string     `json:"email"`
	LastLoginAt           *time.Time `json:"last_login_at"`
	StayLoggedInDays      int        `json:"stay_logged_in_days"`
	NotificationsPush     bool       `json:"notifications_push"`
	NotificationsEmail    bool       `json:"notifications_email"`
	SubscriptionTier      string     `json:"subscription_tier"`
	SubscriptionStartDate *time.Time `json:"subscription_start_date"`
	NumberOfAIPrompts     int        `json:"number_of_ai_prompts"`
	LastAIPromptAt        *time.Time `json:"last_ai_prompt_at"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// PublicUserResponse is what other users may see.
type PublicUserResponse struct {
	ID        string    `json:"id"`
	Username  *string   `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

type UpdateProfileRequest struct {
	Username           *string `json:"username,omitempty" validate:"omitempty,min=3,max=50"`
	StayLoggedInDays   *int    `json:"stay_logged_in_days,omitempty" validate:"omitempty,min=1,max=365"`
	NotificationsPush  *bool   `json:"notifications_push,omitempty"`
	NotificationsEmail *bool   `json:"notifications_email,omitempty"`
}

type ExistsResponse struct {
	Exists bool `json:"exists"`
}

func NewUserResponse(u *models.User) *UserResponse {
	return &UserResponse{
		ID:                    u.ID,
		Username:              u.Username,
		Email:                 u.Email,
		LastLoginAt:           u.LastLoginAt,
		StayLoggedInDays:      u.StayLoggedInDays,
		NotificationsPush:     u.NotificationsPush,
		NotificationsEmail:    u.NotificationsEmail,
		SubscriptionTier:      string(u.SubscriptionTier),
		SubscriptionStartDate: u.SubscriptionStartDate,
		NumberOfAIPrompts:     u.NumberOfAIPrompts,
		LastAIPromptAt:        u.LastAIPromptAt,
		CreatedAt:             u.CreatedAt,
		UpdatedAt:             u.UpdatedAt,
	}
}

func NewPublicUserResponse(u *models.User) *PublicUserResponse {
	return &PublicUserResponse{ID: u.ID, Username: u.Username, CreatedAt: u.CreatedAt}
}
