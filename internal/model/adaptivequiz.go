package model

const (
	// ModuleName is the component name the host uses for this activity type.
	ModuleName = "adaptivequiz"

	// MaxAttempts bounds the attempts option offered on the settings form.
	MaxAttempts = 10
)

// swagger:model AdaptiveQuiz
type AdaptiveQuiz struct {
	BaseModel

	Course                uint    `gorm:"column:course;index;not null" json:"course"`
	Name                  string  `gorm:"size:255;not null" json:"name" binding:"required"`
	Intro                 string  `gorm:"type:text" json:"intro"`
	IntroFormat           int     `gorm:"column:introformat;default:0" json:"introformat"`
	AttemptsAllowed       int     `gorm:"column:attempts;default:0" json:"attempts"`
	Password              string  `gorm:"size:255" json:"password,omitempty"`
	BrowserSecurity       int     `gorm:"column:browsersecurity;default:0" json:"browsersecurity"`
	AttemptFeedback       string  `gorm:"column:attemptfeedback;type:text" json:"attemptfeedback"`
	AttemptFeedbackFormat int     `gorm:"column:attemptfeedbackformat;default:0" json:"attemptfeedbackformat"`
	HighestLevel          int     `gorm:"column:highestlevel;default:0" json:"highestlevel"`
	LowestLevel           int     `gorm:"column:lowestlevel;default:0" json:"lowestlevel"`
	MinimumQuestions      int     `gorm:"column:minimumquestions;default:0" json:"minimumquestions"`
	MaximumQuestions      int     `gorm:"column:maximumquestions;default:0" json:"maximumquestions"`
	StandardError         float64 `gorm:"column:standarderror;default:0" json:"standarderror"`
	StartingLevel         int     `gorm:"column:startinglevel;default:0" json:"startinglevel"`
	TimeCreated           int64   `gorm:"column:timecreated;default:0" json:"timecreated"`
	TimeModified          int64   `gorm:"column:timemodified;default:0" json:"timemodified"`

	// Settings form fields, never stored on this table.
	Instance     uint   `gorm:"-" json:"instance,omitempty"`
	QuestionPool []uint `gorm:"-" json:"questionpool,omitempty"`
}

func (AdaptiveQuiz) TableName() string {
	return "adaptivequiz"
}

// QuestionCategoryAssociation links a question category to the
// instance that draws questions from it.
type QuestionCategoryAssociation struct {
	BaseModel
	Instance         uint `gorm:"column:instance;index;not null" json:"instance"`
	QuestionCategory uint `gorm:"column:questioncategory;not null" json:"questioncategory"`
}

func (QuestionCategoryAssociation) TableName() string {
	return "adaptivequiz_question"
}
