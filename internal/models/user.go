package models

type User struct {
	ID       uint64 `gorm:"column:user_id;primaryKey;autoIncrement" json:"id"`
	Name     string `gorm:"column:name;type:varchar(255);uniqueIndex;not null" json:"name"`
	Password string `gorm:"column:password;type:text;not null" json:"-"`

	// Relations
	Courses       []Course       `gorm:"foreignKey:UserID" json:"-"`
	PersonalTasks []PersonalTask `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string {
	return "Users"
}
