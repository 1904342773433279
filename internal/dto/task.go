package dto

import (
	"strings"

	"github.com/yukikurage/student-task-tracker/internal/models"
	"github.com/yukikurage/student-task-tracker/internal/services"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

// CourseDTO represents a course in API responses
type CourseDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// TaskDTO represents a task of either kind in API responses
type TaskDTO struct {
	Kind            string            `json:"kind"`
	ID              uint64            `json:"id"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	Deadline        models.Date       `json:"deadline"`
	DeadlineDisplay string            `json:"deadline_display"`
	Status          models.TaskStatus `json:"status"`
	CourseID        *uint64           `json:"course_id,omitempty"`
	Category        string            `json:"category,omitempty"`
	// CourseOrCategory is the course name of an academic task or the
	// category of a personal one.
	CourseOrCategory string `json:"course_or_category"`
}

// DashboardEntryDTO is one task on the dashboard
type DashboardEntryDTO struct {
	Task  TaskDTO `json:"task"`
	Label string  `json:"label"`
}

// DashboardDayDTO groups the dashboard entries due on one date
type DashboardDayDTO struct {
	Deadline        models.Date         `json:"deadline"`
	DeadlineDisplay string              `json:"deadline_display"`
	Entries         []DashboardEntryDTO `json:"entries"`
}

// DashboardDTO represents the dashboard response
type DashboardDTO struct {
	Today           models.Date       `json:"today"`
	WindowDays      int               `json:"window_days"`
	Days            []DashboardDayDTO `json:"days"`
	Reminders       []TaskDTO         `json:"reminders"`
	ReminderMessage string            `json:"reminder_message,omitempty"`
	DefaultDeadline models.Date       `json:"default_deadline"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Name,
	}
}

// ToCourseDTO converts a Course model to CourseDTO
func ToCourseDTO(course models.Course) CourseDTO {
	return CourseDTO{
		ID:   course.ID,
		Name: course.Name,
	}
}

// ToCourseDTOs converts a slice of courses
func ToCourseDTOs(courses []models.Course) []CourseDTO {
	items := make([]CourseDTO, len(courses))
	for i, course := range courses {
		items[i] = ToCourseDTO(course)
	}
	return items
}

// ToTaskDTO converts a Task to TaskDTO. courseName is only used for
// academic tasks.
func ToTaskDTO(task models.Task, courseName string) TaskDTO {
	dto := TaskDTO{
		Kind:            strings.ToLower(string(task.Kind)),
		ID:              task.ID,
		Title:           task.Title,
		Description:     task.Description,
		Deadline:        task.Deadline,
		DeadlineDisplay: task.Deadline.Display(),
		Status:          task.Status,
	}

	switch task.Kind {
	case models.KindAcademic:
		courseID := task.CourseID
		dto.CourseID = &courseID
		dto.CourseOrCategory = courseName
	case models.KindPersonal:
		dto.Category = task.Category
		dto.CourseOrCategory = task.Category
	}

	return dto
}

// ToTaskDTOs converts tasks, resolving course names through names
func ToTaskDTOs(tasks []models.Task, names map[uint64]string) []TaskDTO {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task, names[task.CourseID])
	}
	return items
}

// ToDashboardDTO converts a Dashboard to DashboardDTO
func ToDashboardDTO(dashboard services.Dashboard, names map[uint64]string, defaultDeadline models.Date) DashboardDTO {
	dto := DashboardDTO{
		Today:           dashboard.Today,
		WindowDays:      dashboard.WindowDays,
		Days:            make([]DashboardDayDTO, len(dashboard.Days)),
		Reminders:       ToTaskDTOs(dashboard.Reminders, names),
		ReminderMessage: services.ReminderMessage(dashboard.Reminders),
		DefaultDeadline: defaultDeadline,
	}

	for i, day := range dashboard.Days {
		entries := make([]DashboardEntryDTO, len(day.Entries))
		for j, entry := range day.Entries {
			entries[j] = DashboardEntryDTO{
				Task:  ToTaskDTO(entry.Task, names[entry.Task.CourseID]),
				Label: entry.Label,
			}
		}
		dto.Days[i] = DashboardDayDTO{
			Deadline:        day.Deadline,
			DeadlineDisplay: day.Deadline.Display(),
			Entries:         entries,
		}
	}

	return dto
}
