package payroll

import (
	"context"
	"io"
)

// PayrollService is the Site payroll record store.
//
// CreatePayroll and UpdatePayroll may move the employee's emergency advance
// ledger. The ledger change and the record write commit together; on any
// error neither is applied. Deleting a record never reverses a settlement.
type PayrollService interface {
	CreatePayroll(ctx context.Context, req CreatePayrollRequest) (PayrollRecordResponse, error)
	GetPayroll(ctx context.Context, id string) (PayrollRecordResponse, error)
	ListPayrolls(ctx context.Context, filter PayrollFilter) (ListPayrollRecordResponse, error)
	UpdatePayroll(ctx context.Context, req UpdatePayrollRequest) (PayrollRecordResponse, error)
	UpdatePayrollStatus(ctx context.Context, req UpdateStatusRequest) (PayrollRecordResponse, error)
	DeletePayroll(ctx context.Context, id string) error

	WritePayslip(ctx context.Context, id string, w io.Writer) error
	WritePayrollRegister(ctx context.Context, filter PayrollFilter, w io.Writer) error
}

// OfficePayrollService is the Office payroll record store. It never touches
// the advance ledger.
type OfficePayrollService interface {
	CreateOfficePayroll(ctx context.Context, req CreateOfficePayrollRequest) (OfficePayrollRecordResponse, error)
	GetOfficePayroll(ctx context.Context, id string) (OfficePayrollRecordResponse, error)
	ListOfficePayrolls(ctx context.Context, filter PayrollFilter) (ListOfficePayrollRecordResponse, error)
	// UpdateOfficePayroll recalculates on every call, from stored values
	// merged with the supplied ones.
	UpdateOfficePayroll(ctx context.Context, req UpdateOfficePayrollRequest) (OfficePayrollRecordResponse, error)
	UpdateOfficePayrollStatus(ctx context.Context, req UpdateOfficeStatusRequest) (OfficePayrollRecordResponse, error)
	DeleteOfficePayroll(ctx context.Context, id string) error
}
