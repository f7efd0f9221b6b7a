package dto

// RegisterRequest is the sign-up payload. Password strength is checked by the
// password policy, not by tags, so every violated rule is reported at once.
type RegisterRequest struct {
	Email              string  `json:"email" validate:"strict_email"`
	Password           string  `json:"password"`
	Username           *string `json:"username,omitempty" validate:"omitempty,min=3,max=50"`
	StayLoggedInDays   *int    `json:"stay_logged_in_days,omitempty" validate:"omitempty,min=1,max=365"`
	NotificationsPush  *bool   `json:"notifications_push,omitempty"`
	NotificationsEmail *bool   `json:"notifications_email,omitempty"`
}

// LoginRequest accepts either the username or the e-mail in one field.
type LoginRequest struct {
	UsernameOrEmail string `json:"username_or_email" validate:"required,max=254"`
	Password        string `json:"password" validate:"required"`
}

// AuthResponse is returned by register and login. RefreshToken travels in a
// cookie and is never serialised.
type AuthResponse struct {
	AccessToken  string        `json:"access_token"`
	TokenType    string        `json:"token_type"`
	ExpiresIn    int64         `json:"expires_in"`
	User         *UserResponse `json:"user"`
	RefreshToken string        `json:"-"`
}

type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
