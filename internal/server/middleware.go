package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"commerce/internal/auctionerrors"
	"commerce/internal/metrics"
	"commerce/services/auction/handler"
	"commerce/services/auction/helpers"
	"commerce/utils"

	"github.com/gin-gonic/gin"
)

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	metrics.ObserveRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), start)
	utils.Info("HTTP Request", map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"status":  c.Writer.Status(),
		"user_id": helpers.CurrentUserID(c),
		"latency": time.Since(start).String(),
	})
}

// IdentityMiddleware resolves the X-User-ID header to a registered user.
// Requests without the header continue anonymously; a malformed or unknown ID
// is rejected.
func IdentityMiddleware(users handler.UserServiceInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(helpers.UserHeader)
		if userID == "" {
			c.Next()
			return
		}
		if !utils.IsValidID(userID) {
			utils.JSONError(c, http.StatusUnauthorized, fmt.Errorf("malformed user id %q: %w", userID, auctionerrors.ErrUnauthenticated), "authentication required")
			return
		}

		user, err := users.GetUser(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, auctionerrors.ErrNotFound) || errors.Is(err, auctionerrors.ErrValidation) {
				utils.JSONError(c, http.StatusUnauthorized, fmt.Errorf("unknown user %q: %w", userID, auctionerrors.ErrUnauthenticated), "authentication required")
				return
			}
			utils.JSONError(c, http.StatusInternalServerError, err, "internal server error")
			utils.Error("IdentityMiddleware: user lookup failed", map[string]any{"user_id": userID, "error": err.Error()})
			return
		}

		c.Set(helpers.UserIDKey, user.ID)
		c.Next()
	}
}
