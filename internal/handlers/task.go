package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/student-task-tracker/internal/constants"
	"github.com/yukikurage/student-task-tracker/internal/dto"
	apierrors "github.com/yukikurage/student-task-tracker/internal/errors"
	"github.com/yukikurage/student-task-tracker/internal/middleware"
	"github.com/yukikurage/student-task-tracker/internal/models"
	"github.com/yukikurage/student-task-tracker/internal/services"
)

type TaskHandler struct {
	taskService   *services.TaskService
	courseService *services.CourseService
}

func NewTaskHandler(taskService *services.TaskService, courseService *services.CourseService) *TaskHandler {
	return &TaskHandler{
		taskService:   taskService,
		courseService: courseService,
	}
}

// ListTasks returns all tasks of the current user, academic first
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.respondTasks(c, userID, tasks)
}

// UpcomingDeadlines returns tasks due within ?days= days (default 14)
func (h *TaskHandler) UpcomingDeadlines(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	days := constants.DashboardWindowDays
	if daysStr := c.Query("days"); daysStr != "" {
		parsed, err := strconv.Atoi(daysStr)
		if err != nil {
			apierrors.InvalidFormat(c, "days", "Invalid days")
			return
		}
		days = parsed
	}

	tasks, err := h.taskService.UpcomingDeadlines(c.Request.Context(), userID, days)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.respondTasks(c, userID, tasks)
}

func (h *TaskHandler) respondTasks(c *gin.Context, userID uint64, tasks []models.Task) {
	names, err := courseNames(c.Request.Context(), h.courseService, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": dto.ToTaskDTOs(tasks, names)})
}

// AddAcademicTask creates a task under one of the user's courses
func (h *TaskHandler) AddAcademicTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req struct {
		Title       string      `json:"title"`
		Description string      `json:"description"`
		Deadline    models.Date `json:"deadline"`
		Status      string      `json:"status"`
		CourseID    uint64      `json:"course_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	status, ok := parseOptionalStatus(c, req.Status)
	if !ok {
		return
	}

	task, err := h.taskService.AddAcademicTask(c.Request.Context(), services.AddAcademicTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
		Status:      status,
		CourseID:    req.CourseID,
		UserID:      userID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task, h.courseName(c, *task)))
}

// AddPersonalTask creates a personal task owned by the user
func (h *TaskHandler) AddPersonalTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req struct {
		Title       string      `json:"title"`
		Description string      `json:"description"`
		Category    string      `json:"category"`
		Deadline    models.Date `json:"deadline"`
		Status      string      `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	status, ok := parseOptionalStatus(c, req.Status)
	if !ok {
		return
	}

	task, err := h.taskService.AddPersonalTask(c.Request.Context(), services.AddPersonalTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Deadline:    req.Deadline,
		Status:      status,
		UserID:      userID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task, ""))
}

// GetTask returns the task loaded by RequireTaskAccess
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(task, h.courseName(c, task)))
}

// UpdateTask changes the fields present in the request body
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	var req struct {
		Title       *string      `json:"title"`
		Description *string      `json:"description"`
		Deadline    *models.Date `json:"deadline"`
		Status      *string      `json:"status"`
		Category    *string      `json:"category"`
		CourseID    *uint64      `json:"course_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
		Category:    req.Category,
		CourseID:    req.CourseID,
	}
	if req.Status != nil {
		status, err := models.ParseTaskStatus(*req.Status)
		if err != nil {
			apierrors.InvalidFormat(c, "status", "Invalid status")
			return
		}
		input.Status = &status
	}

	updated, err := h.taskService.UpdateTask(c.Request.Context(), task.Kind, task.ID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*updated, h.courseName(c, *updated)))
}

// UpdateTaskStatus sets the status; any transition is allowed
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	status, err := models.ParseTaskStatus(req.Status)
	if err != nil {
		apierrors.InvalidFormat(c, "status", "Invalid status")
		return
	}

	updated, err := h.taskService.UpdateTaskStatus(c.Request.Context(), task.Kind, task.ID, status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !updated {
		apierrors.NotFound(c, "Task not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": task.ID, "status": status})
}

// DeleteTask deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	deleted, err := h.taskService.DeleteTask(c.Request.Context(), task.Kind, task.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !deleted {
		apierrors.NotFound(c, "Task not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

func (h *TaskHandler) courseName(c *gin.Context, task models.Task) string {
	if task.Kind != models.KindAcademic {
		return ""
	}
	return h.courseService.CourseName(c.Request.Context(), task.CourseID)
}

// parseOptionalStatus accepts an empty status, leaving the default to the
// service. It writes the error response itself.
func parseOptionalStatus(c *gin.Context, raw string) (models.TaskStatus, bool) {
	if raw == "" {
		return "", true
	}
	status, err := models.ParseTaskStatus(raw)
	if err != nil {
		apierrors.InvalidFormat(c, "status", "Invalid status")
		return "", false
	}
	return status, true
}

// courseNames maps the user's course IDs to names
func courseNames(ctx context.Context, courses *services.CourseService, userID uint64) (map[uint64]string, error) {
	list, err := courses.ListCourses(ctx, userID)
	if err != nil {
		return nil, err
	}
	names := make(map[uint64]string, len(list))
	for _, course := range list {
		names[course.ID] = course.Name
	}
	return names, nil
}
