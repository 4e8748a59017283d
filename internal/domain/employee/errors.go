package employee

import "github.com/cmlabs-hris/construction-backoffice-go/internal/pkg/apperror"

var (
	ErrEmployeeNotFound   = apperror.NotFound("employee not found")
	ErrEmployeeCodeExists = apperror.Conflict("employee code already exists")
)
