package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apierrors "github.com/yukikurage/student-task-tracker/internal/errors"
	"github.com/yukikurage/student-task-tracker/internal/models"
	"github.com/yukikurage/student-task-tracker/internal/services"
)

// ContextKeyTask holds the task loaded by RequireTaskAccess.
const ContextKeyTask = "task"

// RequireTaskAccess loads the task named by the :kind and :id parameters
// and checks that it belongs to the current user.
func RequireTaskAccess(tasks *services.TaskService) gin.HandlerFunc {
	return func(c *gin.Context) {
		kind, err := models.ParseTaskKind(c.Param("kind"))
		if err != nil {
			apierrors.BadRequest(c, "Task kind must be academic or personal")
			c.Abort()
			return
		}

		taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid task ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		task, err := tasks.GetTask(c.Request.Context(), kind, taskID)
		if err != nil {
			apierrors.OperationFailed(c, "Failed to load task")
			c.Abort()
			return
		}

		// Return 404 instead of 403 to avoid leaking task existence
		if task == nil || task.OwnerUserID != userID {
			apierrors.NotFound(c, "Task not found")
			c.Abort()
			return
		}

		c.Set(ContextKeyTask, *task)
		c.Next()
	}
}

// GetTask retrieves the task set by RequireTaskAccess
func GetTask(c *gin.Context) (models.Task, bool) {
	value, exists := c.Get(ContextKeyTask)
	if !exists {
		return models.Task{}, false
	}
	task, ok := value.(models.Task)
	return task, ok
}
