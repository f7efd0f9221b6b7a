package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"disccount_backend/internal/auth"
	"disccount_backend/internal/logger"
	"disccount_backend/internal/validator"
	"disccount_backend/pkg/apperrors"
	"disccount_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BaseHandler struct {
	validator   *validator.Validator
	requireAuth gin.HandlerFunc
}

// NewBaseHandler takes the bearer middleware that protected route groups use.
func NewBaseHandler(v *validator.Validator, requireAuth gin.HandlerFunc) *BaseHandler {
	return &BaseHandler{
		validator:   v,
		requireAuth: requireAuth,
	}
}

func (h *BaseHandler) RequireAuth() gin.HandlerFunc {
	return h.requireAuth
}

// GetDB returns the *gorm.DB (pool or transaction) set by DBMiddleware.
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	dbKey := string(contextkeys.DBContextKey)

	val, ok := c.Get(dbKey)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db key not found in context", "key", dbKey)
		panic("critical error: DBMiddleware did not set the db key")
	}

	db, ok := val.(*gorm.DB)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db in context is not *gorm.DB", "key", dbKey, "type", fmt.Sprintf("%T", val))
		panic("critical error: db in context has incorrect type")
	}

	return db
}

func (h *BaseHandler) BindAndValidate_JSON(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindJSON(obj); err != nil {
		logger.CtxWithError(ctx, "Failed to bind JSON body", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return false
	}

	return h.validate(c, obj)
}

func (h *BaseHandler) validate(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	err := h.validator.Validate(obj)
	if err == nil {
		return true
	}

	var vErr *validator.ValidationError
	if errors.As(err, &vErr) {
		logger.CtxWarn(ctx, "Validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
	} else {
		logger.CtxWithError(ctx, "Internal validator error", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.InternalError(err))
	}
	return false
}

func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		logger.CtxWarn(ctx, "Service error",
			"error", appErr.Message,
			"details", appErr.Details,
			"path", c.Request.URL.Path,
		)
		apperrors.HandleError(c, appErr)
	} else {
		logger.CtxWithError(ctx, "Internal server error", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.InternalError(err))
	}
}

// GetAndAuthorizeUserID resolves the caller through auth.CurrentUserID and
// writes a 401 when no identity was established.
func (h *BaseHandler) GetAndAuthorizeUserID(c *gin.Context) (string, bool) {
	userID, err := auth.CurrentUserID(c.Request.Context())
	if err != nil {
		logger.CtxWarn(c.Request.Context(), "Unauthorized access: no user id in context",
			"path", c.Request.URL.Path,
			"ip", c.ClientIP(),
		)
		apperrors.HandleError(c, err)
		return "", false
	}
	return userID, true
}

// ParseIDParam reads a UUID path parameter. A malformed id cannot name any
// row, so it is answered with notFound before the database is queried.
func (h *BaseHandler) ParseIDParam(c *gin.Context, name string, notFound *apperrors.AppError) (string, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		logger.CtxDebug(c.Request.Context(), "Malformed id in path", "param", name, "value", c.Param(name))
		apperrors.HandleError(c, notFound)
		return "", false
	}
	return id.String(), true
}

func ParseQueryInt(c *gin.Context, key string, defaultValue int) int {
	valueStr := c.Query(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// ParsePagination reads page and page_size. Out-of-range values are left to
// the service, which clamps them.
func ParsePagination(c *gin.Context) (page int, pageSize int) {
	return ParseQueryInt(c, "page", 1), ParseQueryInt(c, "page_size", 0)
}
