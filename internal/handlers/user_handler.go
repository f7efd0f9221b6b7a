package handlers

import (
	"net/http"

	"disccount_backend/internal/services"
	"disccount_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewUserHandler(base *BaseHandler, userService services.UserService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
	}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.GET("", h.ListUsers)
		users.GET("/exists/email/:email", h.EmailExists)
		users.GET("/exists/username/:username", h.UsernameExists)
	}

	me := rg.Group("/users/me")
	me.Use(h.RequireAuth())
	{
		me.GET("", h.GetMe)
		me.PATCH("", h.UpdateMe)
		me.DELETE("", h.DeleteMe)
	}
}

// ListUsers godoc
// @Summary      List active users
// @Tags         users
// @Produce      json
// @Success      200 {array} dto.PublicUserResponse
// @Router       /api/v1/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListActive(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetMe godoc
// @Summary      Current user's profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.UserResponse
// @Failure      404 {object} apperrors.ErrorResponse "deleted or unknown user"
// @Router       /api/v1/users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetProfile(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateMe godoc
// @Summary      Update the current user's profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.UpdateProfileRequest true "Fields to change"
// @Success      200 {object} dto.UserResponse
// @Failure      404 {object} apperrors.ErrorResponse
// @Failure      409 {object} apperrors.ErrorResponse "username taken"
// @Router       /api/v1/users/me [patch]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteMe godoc
// @Summary      Delete the current account
// @Description  Soft-deletes the user and revokes every refresh token.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.MessageResponse
// @Failure      404 {object} apperrors.ErrorResponse
// @Router       /api/v1/users/me [delete]
func (h *UserHandler) DeleteMe(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.userService.SoftDelete(c.Request.Context(), h.GetDB(c), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Account deleted"})
}

// EmailExists godoc
// @Summary      Check whether an active account owns the e-mail
// @Tags         users
// @Produce      json
// @Param        email path string true "E-mail address"
// @Success      200 {object} dto.ExistsResponse
// @Router       /api/v1/users/exists/email/{email} [get]
func (h *UserHandler) EmailExists(c *gin.Context) {
	exists, err := h.userService.ExistsByEmail(c.Request.Context(), h.GetDB(c), c.Param("email"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ExistsResponse{Exists: exists})
}

// UsernameExists godoc
// @Summary      Check whether an active account owns the username
// @Tags         users
// @Produce      json
// @Param        username path string true "Username"
// @Success      200 {object} dto.ExistsResponse
// @Router       /api/v1/users/exists/username/{username} [get]
func (h *UserHandler) UsernameExists(c *gin.Context) {
	exists, err := h.userService.ExistsByUsername(c.Request.Context(), h.GetDB(c), c.Param("username"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ExistsResponse{Exists: exists})
}
