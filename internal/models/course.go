package models

// NoCourseName labels the placeholder shown when a user has no courses.
const NoCourseName = "no course available"

// NoCourse stands in for "no courses exist yet". It is never persisted
// and is not a valid course for an academic task.
var NoCourse = Course{ID: 0, Name: NoCourseName}

type Course struct {
	ID     uint64 `gorm:"column:course_id;primaryKey;autoIncrement" json:"id"`
	Name   string `gorm:"column:course_name;type:text;not null" json:"name"`
	UserID uint64 `gorm:"column:user_id;not null;index" json:"user_id"`

	// Relations
	User  *User          `gorm:"foreignKey:UserID;references:ID" json:"-"`
	Tasks []AcademicTask `gorm:"foreignKey:CourseID" json:"-"`
}

func (Course) TableName() string {
	return "Courses"
}

// IsSentinel reports whether c is the NoCourse placeholder.
func (c Course) IsSentinel() bool {
	return c.ID == 0
}
