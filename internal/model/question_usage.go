package model

// QuestionUsage tracks question-level state for one attempt. Rows are
// owned by the question engine; this module only removes them.
type QuestionUsage struct {
	BaseModel
	ContextID          uint   `gorm:"column:contextid;index" json:"contextid"`
	Component          string `gorm:"size:255;not null" json:"component"`
	PreferredBehaviour string `gorm:"column:preferredbehaviour;size:32" json:"preferredbehaviour"`
}

func (QuestionUsage) TableName() string {
	return "question_usages"
}

type QuestionAttempt struct {
	BaseModel
	QuestionUsageID uint `gorm:"column:questionusageid;index;not null" json:"questionusageid"`
	Slot            int  `gorm:"not null" json:"slot"`
	QuestionID      uint `gorm:"column:questionid;not null" json:"questionid"`
}

func (QuestionAttempt) TableName() string {
	return "question_attempts"
}
