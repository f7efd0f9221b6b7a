package middleware

import (
	"strings"

	"disccount_backend/internal/auth"
	"disccount_backend/internal/logger"
	"disccount_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// AccessTokenParser is satisfied by *auth.TokenIssuer.
type AccessTokenParser interface {
	ParseAccessToken(token string) (*auth.Claims, error)
}

// AuthMiddleware requires a valid bearer access token and stores the caller's
// id in the request context for auth.CurrentUserID.
func AuthMiddleware(tokens AccessTokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authorization header missing or invalid"))
			return
		}

		claims, err := tokens.ParseAccessToken(tokenStr)
		if err != nil {
			logger.CtxDebug(c.Request.Context(), "Rejected access token", "error", err)
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			return
		}

		ctx := auth.WithUserID(c.Request.Context(), claims.UserID)
		ctx = logger.WithUserID(ctx, claims.UserID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
