package model

// Group modes for courses and course modules.
const (
	NoGroups       = 0
	SeparateGroups = 1
	VisibleGroups  = 2
)

// Course formats that change how the index page is laid out.
const (
	FormatWeeks  = "weeks"
	FormatTopics = "topics"
	FormatSocial = "social"
)

// swagger:model Course
type Course struct {
	BaseModel
	FullName          string `gorm:"column:fullname;size:255;not null" json:"fullname"`
	ShortName         string `gorm:"column:shortname;size:100" json:"shortname"`
	Format            string `gorm:"size:21;default:'topics'" json:"format"`
	GroupMode         int    `gorm:"column:groupmode;default:0" json:"groupmode"`
	GroupModeForce    bool   `gorm:"column:groupmodeforce;default:false" json:"groupmodeforce"`
	DefaultGroupingID uint   `gorm:"column:defaultgroupingid;default:0" json:"defaultgroupingid"`
}

func (Course) TableName() string {
	return "course"
}

// CourseModule binds an activity instance into a course section.
type CourseModule struct {
	BaseModel
	Course     uint   `gorm:"column:course;index;not null" json:"course"`
	ModName    string `gorm:"column:modname;size:50;index;not null" json:"modname"`
	Instance   uint   `gorm:"column:instance;index;not null" json:"instance"`
	Section    uint   `gorm:"column:section;default:0" json:"section"`
	SectionNum int    `gorm:"column:sectionnum;default:0" json:"sectionnum"`
	GroupMode  int    `gorm:"column:groupmode;default:0" json:"groupmode"`
	GroupingID uint   `gorm:"column:groupingid;default:0" json:"groupingid"`
	Visible    bool   `gorm:"not null" json:"visible"`
	Deleted    bool   `gorm:"column:deletioninprogress;default:false" json:"-"`
	Added      int64  `gorm:"column:added;default:0" json:"added"`
}

func (CourseModule) TableName() string {
	return "course_modules"
}
