package apperrors

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the JSON envelope for every error.
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// GinErrorHandler renders errors for gin.
type GinErrorHandler struct {
	Debug bool
}

// debugErrors controls whether internal error messages reach clients.
var debugErrors = false

// SetDebug toggles exposure of internal error text; enabled in development.
func SetDebug(debug bool) {
	debugErrors = debug
}

func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}

	if appErr.HTTPCode >= 500 {
		slog.ErrorContext(c.Request.Context(), "server error", "error", appErr.Unwrap())
		if h.Debug && appErr.Err != nil {
			appErr = appErr.WithDetails(appErr.Err.Error())
		}
	}

	c.AbortWithStatusJSON(appErr.HTTPCode, ErrorResponse{Error: appErr})
}

// HandleError writes err as a JSON error response and aborts the chain.
func HandleError(c *gin.Context, err error) {
	handler := &GinErrorHandler{Debug: debugErrors}
	handler.HandleGinError(c, err)
}

// AsAppError extracts an *AppError from the chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
