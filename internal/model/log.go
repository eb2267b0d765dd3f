package model

// LogEntry is one row of the legacy course log.
type LogEntry struct {
	BaseModel
	Time   int64  `gorm:"index;not null" json:"time"`
	UserID uint   `gorm:"column:userid;index;not null" json:"userid"`
	IP     string `gorm:"size:45" json:"ip"`
	Course uint   `gorm:"index;not null" json:"course"`
	Module string `gorm:"size:20;not null" json:"module"`
	CMID   uint   `gorm:"column:cmid;default:0" json:"cmid"`
	Action string `gorm:"size:40;not null" json:"action"`
	URL    string `gorm:"size:100" json:"url"`
	Info   string `gorm:"size:255" json:"info"`
}

func (LogEntry) TableName() string {
	return "log"
}
