package response

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"teamnexus.com/collegeportal/internal/entity"
	"teamnexus.com/collegeportal/pkg/apperror"
	"teamnexus.com/collegeportal/pkg/ratelimiter"
)

const (
	UserIDKey = "user_id"
	UserKey   = "user"
)

// GetUserID retrieves the authenticated user ID from the context
func GetUserID(c *gin.Context) (uuid.UUID, error) {
	userIDStr, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	return userID, nil
}

// GetUser retrieves the user loaded by the auth middleware.
func GetUser(c *gin.Context) (*entity.User, error) {
	v, exists := c.Get(UserKey)
	if !exists {
		return nil, apperror.ErrUnauthorized
	}
	user, ok := v.(*entity.User)
	if !ok || user == nil {
		return nil, apperror.ErrUnauthorized
	}
	return user, nil
}

// ResponseError standardized error response
func ResponseError(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	var rateLimitErr *ratelimiter.RateLimitError
	if errors.As(err, &rateLimitErr) {
		c.Header("Retry-After", fmt.Sprintf("%.0f", rateLimitErr.RetryAfter.Seconds()))
	}

	// Log internal errors
	if code == http.StatusInternalServerError {
		log.Printf("[Internal Error]: %v", err)
		c.JSON(code, gin.H{"error": apperror.ErrInternal.Error()})
		return
	}

	c.JSON(code, gin.H{"error": err.Error()})
}

// ResponseForbidden answers a failed permission check with the message and
// the listing page the client should fall back to.
func ResponseForbidden(c *gin.Context, err error, redirect string) {
	if errors.Is(err, apperror.ErrForbidden) {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error(), "redirect": redirect})
		return
	}
	ResponseError(c, err)
}
