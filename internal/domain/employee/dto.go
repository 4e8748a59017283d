package employee

import (
	"github.com/cmlabs-hris/construction-backoffice-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	EmployeeCode string          `json:"employee_code"`
	FullName     string          `json:"full_name"`
	Position     string          `json:"position"`
	Group        string          `json:"group"`
	Status       string          `json:"status"`
	DailyRate    decimal.Decimal `json:"daily_rate"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeCode) {
		errs.Add("employee_code", "is required")
	} else if !validator.IsValidEmployeeCode(r.EmployeeCode) {
		errs.Add("employee_code", "must be upper-case letters, digits or dashes")
	}
	if validator.IsEmpty(r.FullName) {
		errs.Add("full_name", "is required")
	}
	if !Status(r.Status).IsValid() {
		errs.Add("status", "must be 'Site' or 'Office'")
	}
	if r.DailyRate.IsNegative() {
		errs.Add("daily_rate", "must be non-negative")
	}

	return errs.OrNil()
}

type RecalculateRatesRequest struct {
	ID        string          `json:"-"`
	DailyRate decimal.Decimal `json:"daily_rate"`
}

func (r *RecalculateRatesRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "must be a valid UUID")
	}
	if r.DailyRate.IsNegative() {
		errs.Add("daily_rate", "must be non-negative")
	}

	return errs.OrNil()
}

type EmployeeResponse struct {
	ID           string          `json:"id"`
	EmployeeCode string          `json:"employee_code"`
	FullName     string          `json:"full_name"`
	Position     string          `json:"position"`
	Group        string          `json:"group"`
	Status       string          `json:"status"`
	DailyRate    decimal.Decimal `json:"daily_rate"`
	HourlyRate   decimal.Decimal `json:"hourly_rate"`
	CreatedAt    string          `json:"created_at"`
	UpdatedAt    string          `json:"updated_at"`
}

// EmployeeSummary is the row shape of the payroll employee picker.
type EmployeeSummary struct {
	ID           string          `json:"id"`
	EmployeeCode string          `json:"employee_code"`
	FullName     string          `json:"full_name"`
	Position     string          `json:"position"`
	Group        string          `json:"group"`
	Status       string          `json:"status"`
	DailyRate    decimal.Decimal `json:"daily_rate"`
	HourlyRate   decimal.Decimal `json:"hourly_rate"`
}
