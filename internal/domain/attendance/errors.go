package attendance

import "errors"

var (
	ErrInvalidAttendance = errors.New("invalid attendance record")
	ErrInvalidRange      = errors.New("attendance range start must not be after end")
)
