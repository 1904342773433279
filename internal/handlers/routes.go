package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yukikurage/student-task-tracker/internal/middleware"
	"github.com/yukikurage/student-task-tracker/internal/services"
)

// Services bundles the controllers behind the API.
type Services struct {
	Auth      *services.AuthService
	Courses   *services.CourseService
	Tasks     *services.TaskService
	Dashboard *services.DashboardService
}

// RegisterRoutes mounts the health check and the /api routes. The session
// middleware must already be installed on r.
func RegisterRoutes(r *gin.Engine, svc Services, log *zap.Logger) {
	authHandler := NewAuthHandler(svc.Auth)
	courseHandler := NewCourseHandler(svc.Courses)
	taskHandler := NewTaskHandler(svc.Tasks, svc.Courses)
	dashboardHandler := NewDashboardHandler(svc.Dashboard, svc.Courses)

	requireAuth := middleware.RequireAuth(log)
	requireTask := middleware.RequireTaskAccess(svc.Tasks)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Student Task Tracker API is running",
		})
	})

	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", requireAuth, authHandler.GetCurrentUser)
		}

		// Course routes (protected)
		courses := api.Group("/courses")
		courses.Use(requireAuth)
		{
			courses.GET("", courseHandler.ListCourses)
			courses.GET("/options", courseHandler.CourseOptions)
			courses.POST("", courseHandler.AddCourse)
			courses.DELETE("/:id", courseHandler.DeleteCourse)
			courses.GET("/:id/name", courseHandler.CourseName)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(requireAuth)
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.GET("/upcoming", taskHandler.UpcomingDeadlines)
			tasks.POST("/academic", taskHandler.AddAcademicTask)
			tasks.POST("/personal", taskHandler.AddPersonalTask)
			tasks.GET("/:kind/:id", requireTask, taskHandler.GetTask)
			tasks.PATCH("/:kind/:id", requireTask, taskHandler.UpdateTask)
			tasks.PATCH("/:kind/:id/status", requireTask, taskHandler.UpdateTaskStatus)
			tasks.DELETE("/:kind/:id", requireTask, taskHandler.DeleteTask)
		}

		api.GET("/dashboard", requireAuth, dashboardHandler.Dashboard)
	}
}
