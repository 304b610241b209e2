package leave

import "errors"

var (
	ErrLeaveRequestNotFound         = errors.New("leave request not found")
	ErrLeaveRequestAlreadyProcessed = errors.New("leave request already processed")
	ErrInvalidDateRange             = errors.New("end date precedes start date")
	ErrOverlappingRequest           = errors.New("an active leave request already covers these dates")
	ErrNotOwner                     = errors.New("leave request belongs to another employee")
	ErrEmployeeNotFound             = errors.New("employee not found")
)
