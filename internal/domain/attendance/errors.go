package attendance

import "errors"

// Attendance analytics errors
var (
	ErrInvalidPolicy  = errors.New("invalid analytics policy")
	ErrRecordNotFound = errors.New("attendance record not found")
)
