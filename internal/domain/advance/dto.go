package advance

import (
	"github.com/cmlabs-hris/construction-backoffice-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreatePairRequest struct {
	EmployeeID      string          `json:"-"`
	PrincipalAmount decimal.Decimal `json:"principal_amount"`
	DeductionAmount decimal.Decimal `json:"deduction_amount"`
}

func (r *CreatePairRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs.Add("employee_id", "must be a valid UUID")
	}
	if !r.PrincipalAmount.IsPositive() {
		errs.Add("principal_amount", "must be greater than zero")
	}
	if r.DeductionAmount.IsNegative() {
		errs.Add("deduction_amount", "must be non-negative")
	}

	return errs.OrNil()
}

type AdvanceResponse struct {
	ID               string          `json:"id"`
	EmployeeID       string          `json:"employee_id"`
	PrincipalAmount  decimal.Decimal `json:"principal_amount"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	Status           string          `json:"status"`
	CreatedAt        string          `json:"created_at"`
	CompletedAt      *string         `json:"completed_at,omitempty"`
}

type DeductionResponse struct {
	ID          string          `json:"id"`
	EmployeeID  string          `json:"employee_id"`
	Amount      decimal.Decimal `json:"amount"`
	Status      string          `json:"status"`
	CreatedAt   string          `json:"created_at"`
	CompletedAt *string         `json:"completed_at,omitempty"`
}

type PairResponse struct {
	Advance   AdvanceResponse   `json:"emergency_cash_advance"`
	Deduction DeductionResponse `json:"emergency_deduction"`
}

// ActivePairView answers "what is this employee still repaying".
// IsReadonly is true while the advance still has an outstanding balance.
type ActivePairView struct {
	Advance      *AdvanceResponse   `json:"emergency_cash_advance"`
	Deduction    *DeductionResponse `json:"emergency_deduction"`
	HasActiveECA bool               `json:"has_active_eca"`
	HasActiveED  bool               `json:"has_active_ed"`
	IsReadonly   bool               `json:"is_readonly"`
}
