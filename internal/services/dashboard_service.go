package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yukikurage/student-task-tracker/internal/constants"
	"github.com/yukikurage/student-task-tracker/internal/models"
)

// DashboardService assembles the upcoming-deadline overview and reminders.
type DashboardService struct {
	tasks        *TaskService
	courses      *CourseService
	windowDays   int
	reminderDays int
}

// NewDashboardService creates a new DashboardService with the default windows.
func NewDashboardService(tasks *TaskService, courses *CourseService) *DashboardService {
	return &DashboardService{
		tasks:        tasks,
		courses:      courses,
		windowDays:   constants.DashboardWindowDays,
		reminderDays: constants.ReminderWindowDays,
	}
}

// WithWindows overrides the dashboard and reminder windows, in days.
// Non-positive values keep the defaults and larger ones are capped at
// constants.MaxWindowDays.
func (s *DashboardService) WithWindows(dashboardDays, reminderDays int) *DashboardService {
	if dashboardDays > 0 {
		s.windowDays = min(dashboardDays, constants.MaxWindowDays)
	}
	if reminderDays > 0 {
		s.reminderDays = min(reminderDays, constants.MaxWindowDays)
	}
	return s
}

// DashboardEntry is a task with its course name, or "Personal".
type DashboardEntry struct {
	Task  models.Task
	Label string
}

// DashboardDay lists the entries due on one date.
type DashboardDay struct {
	Deadline models.Date
	Entries  []DashboardEntry
}

// Dashboard is the overview for one user.
type Dashboard struct {
	Today      models.Date
	WindowDays int
	Days       []DashboardDay
	Reminders  []models.Task
}

// Dashboard returns the user's upcoming tasks grouped by deadline, plus
// the tasks due soon enough to remind about.
func (s *DashboardService) Dashboard(ctx context.Context, userID uint64) (*Dashboard, error) {
	upcoming, err := s.tasks.UpcomingDeadlines(ctx, userID, s.windowDays)
	if err != nil {
		return nil, err
	}
	reminders, err := s.Reminders(ctx, userID)
	if err != nil {
		return nil, err
	}

	names := make(map[uint64]string)
	dashboard := &Dashboard{
		Today:      s.tasks.Today(),
		WindowDays: s.windowDays,
		Reminders:  reminders,
	}
	for _, group := range GroupByDeadline(upcoming) {
		day := DashboardDay{Deadline: group.Deadline}
		for _, task := range group.Tasks {
			day.Entries = append(day.Entries, DashboardEntry{
				Task:  task,
				Label: s.label(ctx, task, names),
			})
		}
		dashboard.Days = append(dashboard.Days, day)
	}
	return dashboard, nil
}

func (s *DashboardService) label(ctx context.Context, task models.Task, names map[uint64]string) string {
	if task.Kind == models.KindPersonal {
		return constants.PersonalTaskLabel
	}
	name, ok := names[task.CourseID]
	if !ok {
		name = s.courses.CourseName(ctx, task.CourseID)
		names[task.CourseID] = name
	}
	return name
}

// Reminders returns the tasks due within the reminder window.
func (s *DashboardService) Reminders(ctx context.Context, userID uint64) ([]models.Task, error) {
	return s.tasks.UpcomingDeadlines(ctx, userID, s.reminderDays)
}

// ReminderMessage renders one "title (dd/mm/yyyy)" line per task.
func ReminderMessage(tasks []models.Task) string {
	lines := make([]string, 0, len(tasks))
	for _, task := range tasks {
		lines = append(lines, fmt.Sprintf("%s (%s)", task.Title, task.Deadline.Display()))
	}
	return strings.Join(lines, "\n")
}

// DefaultDeadline is the deadline suggested for a new task.
func (s *DashboardService) DefaultDeadline() models.Date {
	return s.tasks.Today().AddDays(constants.DefaultDeadlineOffsetDays)
}
