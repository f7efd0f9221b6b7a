package apperrors

import (
	"net/http"
	"strings"
)

// ErrNotFound wraps a repository miss into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// NotFound builds a 404 with a domain specific message.
func NotFound(domain, message string) *AppError {
	return New(CodeNotFound, domain, message, http.StatusNotFound)
}

// ErrAlreadyExists wraps a uniqueness violation into a 409.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict is the general 409 factory.
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrWeakPassword lists every unmet password rule.
func ErrWeakPassword(violations []string) *AppError {
	return New(
		CodeWeakPassword,
		"validation",
		"Weak password: "+strings.Join(violations, "; "),
		http.StatusBadRequest,
	).WithDetails(violations)
}

// --- Auth ---

// ErrEmailAlreadyExists is returned when an active account already owns the email.
var ErrEmailAlreadyExists = New(
	CodeConflict,
	"auth",
	"Email already exists",
	http.StatusConflict,
)

// ErrUsernameAlreadyExists is returned when an active account already owns the username.
var ErrUsernameAlreadyExists = New(
	CodeConflict,
	"user",
	"Username already exists",
	http.StatusConflict,
)

// ErrInvalidCredentials never says which factor failed.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid credentials",
	http.StatusUnauthorized,
)

// ErrInvalidRefreshToken covers unknown, expired and missing refresh tokens.
var ErrInvalidRefreshToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid refresh token",
	http.StatusUnauthorized,
)

// ErrInvalidToken is returned by the bearer middleware.
var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

// ErrUnknownUser is returned by logout-all when the id no longer resolves.
var ErrUnknownUser = New(
	CodeUnauthorized,
	"auth",
	"User not found",
	http.StatusUnauthorized,
)

// ErrNotAuthenticated is returned when no identity was established for the request.
var ErrNotAuthenticated = New(
	CodeUnauthorized,
	"auth",
	"User not authenticated",
	http.StatusUnauthorized,
)

// --- Resources ---

var ErrUserNotFound = NotFound("user", "User not found")

var ErrShoppingListNotFound = NotFound("shopping_list", "Shopping list not found")

var ErrShoppingListItemNotFound = NotFound("shopping_list_item", "Shopping list item not found")

var ErrCardNotFound = NotFound("digital_card", "Card not found")

var ErrNotificationNotFound = NotFound("notification", "Notification not found")

var ErrWatchlistItemNotFound = NotFound("watchlist", "Watchlist item not found")

// ErrWatchlistDuplicate is returned when the product is already watched.
var ErrWatchlistDuplicate = New(
	CodeConflict,
	"watchlist",
	"Product is already in your watchlist",
	http.StatusConflict,
)
