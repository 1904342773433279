package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/student-task-tracker/internal/dto"
	apierrors "github.com/yukikurage/student-task-tracker/internal/errors"
	"github.com/yukikurage/student-task-tracker/internal/middleware"
	"github.com/yukikurage/student-task-tracker/internal/services"
)

type CourseHandler struct {
	courseService *services.CourseService
}

func NewCourseHandler(courseService *services.CourseService) *CourseHandler {
	return &CourseHandler{
		courseService: courseService,
	}
}

// ListCourses returns the current user's courses
func (h *CourseHandler) ListCourses(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	courses, err := h.courseService.ListCourses(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"courses": dto.ToCourseDTOs(courses)})
}

// CourseOptions returns the course picker entries, with a placeholder
// when the user has no courses yet
func (h *CourseHandler) CourseOptions(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	options, err := h.courseService.CourseOptions(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"courses": dto.ToCourseDTOs(options)})
}

// AddCourse creates a course for the current user
func (h *CourseHandler) AddCourse(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	course, err := h.courseService.AddCourse(c.Request.Context(), services.AddCourseInput{
		Name:   req.Name,
		UserID: userID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCourseDTO(*course))
}

// DeleteCourse deletes a course and its academic tasks
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	courseID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid course ID")
		return
	}

	deleted, err := h.courseService.DeleteCourse(c.Request.Context(), userID, courseID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !deleted {
		apierrors.NotFound(c, "Course not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Course deleted successfully"})
}

// CourseName returns the display name of one of the user's courses,
// or "" when there is no such course
func (h *CourseHandler) CourseName(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	courseID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid course ID")
		return
	}

	course, err := h.courseService.GetCourse(c.Request.Context(), courseID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	name := ""
	if course != nil && course.UserID == userID {
		name = course.Name
	}
	c.JSON(http.StatusOK, gin.H{"id": courseID, "name": name})
}
