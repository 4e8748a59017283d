package payroll

import "context"

// PayrollRepository persists Site payroll rows.
type PayrollRepository interface {
	Create(ctx context.Context, record PayrollRecord) (PayrollRecord, error)
	GetByID(ctx context.Context, id string) (PayrollRecord, error)
	// GetByIDForUpdate row-locks the record until the surrounding
	// transaction ends. It must be called with a transactional context.
	GetByIDForUpdate(ctx context.Context, id string) (PayrollRecord, error)
	List(ctx context.Context, filter PayrollFilter) ([]PayrollRecord, int64, error)
	// Update rewrites every mutable column of the record and bumps updated_at.
	Update(ctx context.Context, record PayrollRecord) (PayrollRecord, error)
	UpdateStatus(ctx context.Context, id string, status PayrollStatus) (PayrollRecord, error)
	Delete(ctx context.Context, id string) error
}

// OfficePayrollRepository persists Office payroll rows.
type OfficePayrollRepository interface {
	Create(ctx context.Context, record OfficePayrollRecord) (OfficePayrollRecord, error)
	GetByID(ctx context.Context, id string) (OfficePayrollRecord, error)
	List(ctx context.Context, filter PayrollFilter) ([]OfficePayrollRecord, int64, error)
	Update(ctx context.Context, record OfficePayrollRecord) (OfficePayrollRecord, error)
	UpdateStatus(ctx context.Context, id string, status PayrollStatus) (OfficePayrollRecord, error)
	Delete(ctx context.Context, id string) error
}
