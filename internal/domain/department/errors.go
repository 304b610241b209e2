package department

import "errors"

var (
	ErrDepartmentNotFound    = errors.New("department not found")
	ErrDepartmentCodeExists  = errors.New("department code already exists")
	ErrDepartmentHasEmployee = errors.New("department still has employees attached")
	ErrResponsableNotFound   = errors.New("department head not found")
)
