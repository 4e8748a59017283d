package advance

import (
	"context"

	"github.com/shopspring/decimal"
)

type AdvanceRepository interface {
	// GetActiveAdvance returns ErrAdvanceNotFound when the employee has no
	// active advance.
	GetActiveAdvance(ctx context.Context, employeeID string) (EmergencyCashAdvance, error)
	// GetActiveDeduction returns ErrDeductionNotFound when the employee has
	// no active deduction.
	GetActiveDeduction(ctx context.Context, employeeID string) (EmergencyDeduction, error)
	ListAdvancesByEmployee(ctx context.Context, employeeID string) ([]EmergencyCashAdvance, error)

	CreateAdvance(ctx context.Context, eca EmergencyCashAdvance) (EmergencyCashAdvance, error)
	CreateDeduction(ctx context.Context, ed EmergencyDeduction) (EmergencyDeduction, error)
	UpdateAdvanceBalance(ctx context.Context, id string, balance decimal.Decimal) error
	CompleteAdvance(ctx context.Context, id string) error
	// CompleteActiveDeduction flips the employee's active deduction, if any.
	CompleteActiveDeduction(ctx context.Context, employeeID string) error
}
