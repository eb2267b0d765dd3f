package util

import "errors"

var (
	ErrPermissionDenied     = errors.New("permission denied")
	ErrNotEnrolled          = errors.New("user is not enrolled in the course")
	ErrUserNotFound         = errors.New("user not found")
	ErrCourseNotFound       = errors.New("course not found")
	ErrCourseModuleNotFound = errors.New("course module not found")
	ErrInstanceNotFound     = errors.New("adaptive quiz instance not found")
)
