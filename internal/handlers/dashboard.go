package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/student-task-tracker/internal/dto"
	apierrors "github.com/yukikurage/student-task-tracker/internal/errors"
	"github.com/yukikurage/student-task-tracker/internal/middleware"
	"github.com/yukikurage/student-task-tracker/internal/services"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
	courseService    *services.CourseService
}

func NewDashboardHandler(dashboardService *services.DashboardService, courseService *services.CourseService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		courseService:    courseService,
	}
}

// Dashboard returns upcoming deadlines grouped by date, with reminders
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	dashboard, err := h.dashboardService.Dashboard(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	names, err := courseNames(c.Request.Context(), h.courseService, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardDTO(*dashboard, names, h.dashboardService.DefaultDeadline()))
}
