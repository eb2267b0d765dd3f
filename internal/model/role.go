package model

type RoleName string

const (
	RoleStudent           RoleName = "student"
	RoleTeacher           RoleName = "editingteacher"
	RoleNonEditingTeacher RoleName = "teacher"
	RoleManager           RoleName = "manager"
)

// RoleAssignment grants a role to a user inside one course.
type RoleAssignment struct {
	BaseModel
	UserID       uint     `gorm:"column:userid;index;not null" json:"userid"`
	CourseID     uint     `gorm:"column:courseid;index;not null" json:"courseid"`
	Role         RoleName `gorm:"size:30;not null" json:"role"`
	TimeModified int64    `gorm:"column:timemodified;default:0" json:"timemodified"`
}

func (RoleAssignment) TableName() string {
	return "role_assignments"
}
