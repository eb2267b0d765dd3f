package model

const (
	AttemptInProgress = "inprogress"
	AttemptComplete   = "complete"
)

// swagger:model Attempt
type Attempt struct {
	BaseModel

	Instance            uint    `gorm:"column:instance;index;not null" json:"instance"`
	UserID              uint    `gorm:"column:userid;index;not null" json:"userid"`
	UniqueID            uint    `gorm:"column:uniqueid;not null;default:0" json:"uniqueid"`
	AttemptState        string  `gorm:"column:attemptstate;size:30;not null" json:"attemptstate"`
	AttemptStopCriteria string  `gorm:"column:attemptstopcriteria;type:text" json:"attemptstopcriteria"`
	QuestionsAttempted  int     `gorm:"column:questionsattempted;default:0" json:"questionsattempted"`
	DifficultySum       float64 `gorm:"column:difficultysum;default:0" json:"difficultysum"`
	StandardError       float64 `gorm:"column:standarderror;default:0" json:"standarderror"`
	Measure             float64 `gorm:"column:measure;default:0" json:"measure"`
	TimeCreated         int64   `gorm:"column:timecreated;default:0" json:"timecreated"`
	TimeModified        int64   `gorm:"column:timemodified;index;default:0" json:"timemodified"`
}

func (Attempt) TableName() string {
	return "adaptivequiz_attempt"
}
