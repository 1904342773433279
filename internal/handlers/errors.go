package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/yukikurage/student-task-tracker/internal/errors"
	"github.com/yukikurage/student-task-tracker/internal/services"
)

// respondServiceError maps a service failure onto an HTTP error response.
func respondServiceError(c *gin.Context, err error) {
	var apiErr *apierrors.APIError
	switch {
	case apierrors.IsValidation(err) && errors.As(err, &apiErr):
		apierrors.RespondWithError(c, http.StatusBadRequest, apiErr)
	case errors.Is(err, services.ErrUsernameTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrPersistence):
		apierrors.OperationFailed(c, "")
	default:
		_ = c.Error(err)
		apierrors.InternalError(c, "")
	}
}
