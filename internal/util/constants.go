package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"

	// DayDateTimeFormat renders dates in activity reports,
	// e.g. "Friday, 16 October 2026, 3:04 PM".
	DayDateTimeFormat = "Monday, 2 January 2006, 3:04 PM"
)

// Context keys set by middleware.
const (
	ContextUserKey      = "user"
	ContextRequestIDKey = "request_id"
)
