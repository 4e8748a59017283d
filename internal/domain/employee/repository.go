package employee

import (
	"context"

	"github.com/shopspring/decimal"
)

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	ListByStatus(ctx context.Context, status Status) ([]Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	UpdateRates(ctx context.Context, id string, dailyRate, hourlyRate decimal.Decimal) (Employee, error)
	// LockForUpdate serialises writers on one employee for the rest of the
	// surrounding transaction.
	LockForUpdate(ctx context.Context, id string) error
}
