package training

import "errors"

var (
	ErrSessionNotFound    = errors.New("training session not found")
	ErrSessionFull        = errors.New("training session is full")
	ErrAlreadyEnrolled    = errors.New("employee already enrolled")
	ErrNotEnrolled        = errors.New("employee is not enrolled")
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmployeeInactive   = errors.New("employee account is inactive")
	ErrCapacityBelowCount = errors.New("capacity is below the current number of participants")
)
