package model

// swagger:model Group
type Group struct {
	BaseModel
	CourseID uint   `gorm:"column:courseid;index;not null" json:"courseid"`
	Name     string `gorm:"size:254;not null" json:"name"`
	IDNumber string `gorm:"column:idnumber;size:100" json:"idnumber"`
}

func (Group) TableName() string {
	return "course_groups"
}

type GroupMember struct {
	BaseModel
	GroupID   uint  `gorm:"column:groupid;index;not null" json:"groupid"`
	UserID    uint  `gorm:"column:userid;index;not null" json:"userid"`
	TimeAdded int64 `gorm:"column:timeadded;default:0" json:"timeadded"`
}

func (GroupMember) TableName() string {
	return "groups_members"
}

type GroupingGroup struct {
	BaseModel
	GroupingID uint `gorm:"column:groupingid;index;not null" json:"groupingid"`
	GroupID    uint `gorm:"column:groupid;index;not null" json:"groupid"`
}

func (GroupingGroup) TableName() string {
	return "groupings_groups"
}
