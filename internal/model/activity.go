package model

// ActivitySummary is one recent-activity entry prepared for a report.
// It only lives for the duration of a request.
type ActivitySummary struct {
	Type       string          `json:"type"`
	CMID       uint            `json:"cmid"`
	Name       string          `json:"name"`
	SectionNum int             `json:"sectionnum"`
	Timestamp  int64           `json:"timestamp"`
	Content    ActivityContent `json:"content"`
	User       ActivityUser    `json:"user"`
}

type ActivityContent struct {
	AttemptID          uint   `json:"attemptid"`
	AttemptState       string `json:"attemptstate"`
	QuestionsAttempted int    `json:"questionsattempted"`
}

type ActivityUser struct {
	ID        uint   `json:"id"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Picture   uint   `json:"picture"`
	ImageAlt  string `json:"imagealt"`
	Email     string `json:"email"`
}

// UserOutline is the short summary shown in user activity reports.
type UserOutline struct {
	Time int64  `json:"time"`
	Info string `json:"info"`
}
