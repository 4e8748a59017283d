package payroll

import "github.com/cmlabs-hris/construction-backoffice-go/internal/pkg/apperror"

var (
	ErrPayrollRecordNotFound       = apperror.NotFound("payroll record not found")
	ErrOfficePayrollRecordNotFound = apperror.NotFound("office payroll record not found")
)
