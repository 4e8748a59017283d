package advance

import "github.com/cmlabs-hris/construction-backoffice-go/internal/pkg/apperror"

var (
	ErrActiveAdvanceExists   = apperror.Conflict("employee already has an active emergency cash advance")
	ErrActiveDeductionExists = apperror.Conflict("employee already has an active emergency deduction")
	ErrAdvanceNotFound       = apperror.NotFound("emergency cash advance not found")
	ErrDeductionNotFound     = apperror.NotFound("emergency deduction not found")
)
