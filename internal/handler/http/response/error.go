package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/construction-backoffice-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/construction-backoffice-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
		return
	}

	switch appErr.Kind {
	case apperror.KindNotFound:
		NotFound(w, appErr.Message)
	case apperror.KindConflict:
		Conflict(w, appErr.Message)
	default:
		slog.Error("Internal error", "message", appErr.Message, "error", appErr.Err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
