package employee

import "context"

// EmployeeService is the employee directory consumed by payroll.
type EmployeeService interface {
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)
	GetEmployeesByStatus(ctx context.Context, status string) ([]EmployeeSummary, error)
	// RecalculateRates is the only path that changes an employee's rates.
	// Payroll rows keep the rates they were computed with.
	RecalculateRates(ctx context.Context, req RecalculateRatesRequest) (EmployeeResponse, error)
}
