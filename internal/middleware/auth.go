package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yukikurage/student-task-tracker/internal/constants"
	apierrors "github.com/yukikurage/student-task-tracker/internal/errors"
)

// RequireAuth rejects requests whose session carries no user ID and
// exposes the ID to handlers through GetUserID.
func RequireAuth(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID, ok := toUserID(session.Get(constants.ContextKeyUserID))
		if !ok {
			log.Debug("unauthenticated request", zap.String("path", c.FullPath()))
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	return toUserID(userID)
}

// toUserID normalizes a session value; sessions decoded by some stores
// come back as a different integer type than was stored.
func toUserID(value any) (uint64, bool) {
	switch v := value.(type) {
	case uint64:
		return v, v != 0
	case uint:
		return uint64(v), v != 0
	case int64:
		return uint64(v), v > 0
	case int:
		return uint64(v), v > 0
	default:
		return 0, false
	}
}
