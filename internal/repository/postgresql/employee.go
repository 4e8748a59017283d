package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/construction-backoffice-go/internal/domain/employee"
	"github.com/cmlabs-hris/construction-backoffice-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

const employeeColumns = `id, employee_code, full_name, position, employee_group, status,
	daily_rate, hourly_rate, created_at, updated_at`

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.EmployeeCode, &emp.FullName, &emp.Position, &emp.Group, &emp.Status,
		&emp.DailyRate, &emp.HourlyRate, &emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee with id %s: %w", id, err)
	}
	return emp, nil
}

// ListByStatus implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListByStatus(ctx context.Context, status employee.Status) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE status = $1 ORDER BY full_name ASC`

	rows, err := q.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees by status: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	id, err := uuid.NewV7()
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to generate employee id: %w", err)
	}

	query := `
		INSERT INTO employees (id, employee_code, full_name, position, employee_group, status, daily_rate, hourly_rate)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query,
		id.String(), newEmployee.EmployeeCode, newEmployee.FullName, newEmployee.Position,
		newEmployee.Group, newEmployee.Status, newEmployee.DailyRate, newEmployee.HourlyRate,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return created, nil
}

// UpdateRates implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) UpdateRates(ctx context.Context, id string, dailyRate, hourlyRate decimal.Decimal) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET daily_rate = $1, hourly_rate = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING ` + employeeColumns

	updated, err := scanEmployee(q.QueryRow(ctx, query, dailyRate, hourlyRate, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to update rates for employee with id %s: %w", id, err)
	}
	return updated, nil
}

// LockForUpdate takes a transaction-scoped advisory lock keyed on the
// employee id. It must run inside a transaction.
func (e *employeeRepositoryImpl) LockForUpdate(ctx context.Context, id string) error {
	if _, ok := txFromContext(ctx); !ok {
		return fmt.Errorf("lock employee %s: no transaction in context", id)
	}
	q := GetQuerier(ctx, e.db)

	if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, id); err != nil {
		return fmt.Errorf("failed to lock employee %s: %w", id, err)
	}
	return nil
}
