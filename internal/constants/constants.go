package constants

const (
	// Registration thresholds
	MinUsernameLength = 3
	MinPasswordLength = 6

	// Session
	ContextKeyUserID  = "user_id"
	SessionCookieName = "task_session"

	// Deadline windows, in days
	DashboardWindowDays       = 14
	ReminderWindowDays        = 3
	DefaultDeadlineOffsetDays = 7
	MaxWindowDays             = 36500

	// PersonalTaskLabel replaces the course name for personal tasks on the dashboard
	PersonalTaskLabel = "Personal"
)
