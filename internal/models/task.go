package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

type TaskStatus string

// Statuses persist as their display strings.
const (
	TaskStatusNotStarted TaskStatus = "Not Started"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusDone       TaskStatus = "Done"
)

// AllTaskStatuses lists the statuses in form order.
var AllTaskStatuses = []TaskStatus{TaskStatusNotStarted, TaskStatusInProgress, TaskStatusDone}

// Name returns the enum name (NOT_STARTED, IN_PROGRESS, DONE).
func (s TaskStatus) Name() string {
	switch s {
	case TaskStatusNotStarted:
		return "NOT_STARTED"
	case TaskStatusInProgress:
		return "IN_PROGRESS"
	case TaskStatusDone:
		return "DONE"
	}
	return ""
}

func (s TaskStatus) Valid() bool {
	return s.Name() != ""
}

// legacyStatuses maps the Indonesian labels and enum names found in
// databases written by the desktop tracker.
var legacyStatuses = map[string]TaskStatus{
	"belum mulai":       TaskStatusNotStarted,
	"belum_mulai":       TaskStatusNotStarted,
	"sedang dikerjakan": TaskStatusInProgress,
	"sedang_dikerjakan": TaskStatusInProgress,
	"selesai":           TaskStatusDone,
}

// ParseTaskStatus accepts a display string or an enum name, case-insensitively.
// Legacy desktop labels are accepted too.
func ParseTaskStatus(s string) (TaskStatus, error) {
	s = strings.TrimSpace(s)
	for _, status := range AllTaskStatuses {
		if strings.EqualFold(s, string(status)) || strings.EqualFold(s, status.Name()) {
			return status, nil
		}
	}
	if status, ok := legacyStatuses[strings.ToLower(s)]; ok {
		return status, nil
	}
	return "", fmt.Errorf("invalid status %q", s)
}

// Scan implements sql.Scanner. Known spellings are normalized to the
// display strings; anything else is kept as stored.
func (s *TaskStatus) Scan(value any) error {
	var raw string
	switch v := value.(type) {
	case nil:
		*s = ""
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into TaskStatus", value)
	}

	if status, err := ParseTaskStatus(raw); err == nil {
		*s = status
		return nil
	}
	*s = TaskStatus(raw)
	return nil
}

// Value implements driver.Valuer.
func (s TaskStatus) Value() (driver.Value, error) {
	return string(s), nil
}

type TaskKind string

const (
	KindAcademic TaskKind = "ACADEMIC"
	KindPersonal TaskKind = "PERSONAL"
)

// ParseTaskKind accepts "academic" or "personal" in any case.
func ParseTaskKind(s string) (TaskKind, error) {
	switch TaskKind(strings.ToUpper(strings.TrimSpace(s))) {
	case KindAcademic:
		return KindAcademic, nil
	case KindPersonal:
		return KindPersonal, nil
	}
	return "", fmt.Errorf("invalid task kind %q", s)
}

// Task is the kind-tagged view shared by academic and personal tasks.
// CourseID is set only for KindAcademic, Category only for KindPersonal.
type Task struct {
	Kind        TaskKind   `json:"kind"`
	ID          uint64     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Deadline    Date       `json:"deadline"`
	Status      TaskStatus `json:"status"`
	CourseID    uint64     `json:"course_id,omitempty"`
	Category    string     `json:"category,omitempty"`
	OwnerUserID uint64     `json:"owner_user_id"`
}

type AcademicTask struct {
	ID          uint64     `gorm:"column:task_id;primaryKey;autoIncrement" json:"id"`
	Title       string     `gorm:"column:title;type:text;not null" json:"title"`
	Description string     `gorm:"column:description;type:text" json:"description"`
	Deadline    Date       `gorm:"column:deadline;type:date;index" json:"deadline"`
	Status      TaskStatus `gorm:"column:status;type:varchar(20)" json:"status"`
	CourseID    uint64     `gorm:"column:course_id;not null;index" json:"course_id"`

	// Relations
	Course *Course `gorm:"foreignKey:CourseID;references:ID" json:"course,omitempty"`
}

func (AcademicTask) TableName() string {
	return "AcademicTasks"
}

// ToTask converts to the shared view. OwnerUserID is only known when Course is preloaded.
func (t AcademicTask) ToTask() Task {
	task := Task{
		Kind:        KindAcademic,
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Deadline:    t.Deadline,
		Status:      t.Status,
		CourseID:    t.CourseID,
	}
	if t.Course != nil {
		task.OwnerUserID = t.Course.UserID
	}
	return task
}

type PersonalTask struct {
	ID          uint64     `gorm:"column:personal_task_id;primaryKey;autoIncrement" json:"id"`
	Title       string     `gorm:"column:title;type:text;not null" json:"title"`
	Description string     `gorm:"column:description;type:text" json:"description"`
	Category    string     `gorm:"column:category;type:text" json:"category"`
	Deadline    Date       `gorm:"column:deadline;type:date;index" json:"deadline"`
	Status      TaskStatus `gorm:"column:status;type:varchar(20)" json:"status"`
	UserID      uint64     `gorm:"column:user_id;not null;index" json:"user_id"`

	// Relations
	User *User `gorm:"foreignKey:UserID;references:ID" json:"-"`
}

func (PersonalTask) TableName() string {
	return "PersonalTasks"
}

func (t PersonalTask) ToTask() Task {
	return Task{
		Kind:        KindPersonal,
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Deadline:    t.Deadline,
		Status:      t.Status,
		Category:    t.Category,
		OwnerUserID: t.UserID,
	}
}
