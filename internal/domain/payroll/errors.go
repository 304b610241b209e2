package payroll

import "errors"

var (
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrPaymentAlreadyExists = errors.New("payment already exists for this employee and month")
	ErrPaymentAlreadyPaid   = errors.New("payment already paid, cannot modify")
	ErrEmployeeNotFound     = errors.New("employee not found")
)
