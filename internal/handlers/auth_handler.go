package handlers

import (
	"net/http"
	"time"

	"disccount_backend/internal/services"
	"disccount_backend/internal/services/dto"
	"disccount_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

const DefaultRefreshCookieName = "refreshToken"

// RefreshCookie describes the cookie carrying the raw refresh token.
type RefreshCookie struct {
	Name string
	TTL  time.Duration
}

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
	cookie      RefreshCookie
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService, cookie RefreshCookie) *AuthHandler {
	if cookie.Name == "" {
		cookie.Name = DefaultRefreshCookieName
	}
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
		cookie:      cookie,
	}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", h.Logout)
		auth.POST("/logout-all", h.RequireAuth(), h.LogoutAll)
	}
}

// Register godoc
// @Summary      Register a new account
// @Description  Creates the user, starts a session and sets the refresh token cookie.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "Sign-up data"
// @Success      200 {object} dto.AuthResponse
// @Failure      400 {object} apperrors.ErrorResponse "validation failed or weak password"
// @Failure      409 {object} apperrors.ErrorResponse "email or username taken"
// @Router       /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setRefreshCookie(c, resp.RefreshToken)
	c.JSON(http.StatusOK, resp)
}

// Login godoc
// @Summary      Log in
// @Description  Accepts a username or an e-mail address. Sets the refresh token cookie.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "Credentials"
// @Success      200 {object} dto.AuthResponse
// @Failure      401 {object} apperrors.ErrorResponse "invalid credentials"
// @Router       /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setRefreshCookie(c, resp.RefreshToken)
	c.JSON(http.StatusOK, resp)
}

// Refresh godoc
// @Summary      Issue a new access token
// @Description  Reads the refresh token cookie. The refresh token itself is not rotated.
// @Tags         auth
// @Produce      json
// @Success      200 {object} dto.RefreshResponse
// @Failure      401 {object} apperrors.ErrorResponse "missing, unknown or expired refresh token"
// @Router       /api/v1/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	raw, ok := h.refreshCookie(c)
	if !ok {
		return
	}

	resp, err := h.authService.Refresh(c.Request.Context(), h.GetDB(c), raw)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Logout godoc
// @Summary      End the current session
// @Tags         auth
// @Produce      json
// @Success      200 {object} dto.MessageResponse
// @Failure      401 {object} apperrors.ErrorResponse "missing or unknown refresh token"
// @Router       /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	raw, ok := h.refreshCookie(c)
	if !ok {
		return
	}

	if err := h.authService.Logout(c.Request.Context(), h.GetDB(c), raw); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.clearRefreshCookie(c)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out"})
}

// LogoutAll godoc
// @Summary      End every session of the caller
// @Description  Revokes all refresh tokens. Access tokens already issued stay valid until they expire.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.MessageResponse
// @Failure      401 {object} apperrors.ErrorResponse "not authenticated or unknown user"
// @Router       /api/v1/auth/logout-all [post]
func (h *AuthHandler) LogoutAll(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.authService.LogoutAll(c.Request.Context(), h.GetDB(c), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.clearRefreshCookie(c)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out from all devices"})
}

func (h *AuthHandler) refreshCookie(c *gin.Context) (string, bool) {
	raw, err := c.Cookie(h.cookie.Name)
	if err != nil || raw == "" {
		h.HandleServiceError(c, apperrors.ErrInvalidRefreshToken)
		return "", false
	}
	return raw, true
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, raw string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    raw,
		Path:     "/",
		MaxAge:   int(h.cookie.TTL.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

func (h *AuthHandler) clearRefreshCookie(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}
