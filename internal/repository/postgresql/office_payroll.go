package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/construction-backoffice-go/internal/domain/payroll"
	"github.com/cmlabs-hris/construction-backoffice-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const officePayrollColumns = `id, employee_id, employee_name, employee_code, position,
	pay_period_start, pay_period_end, daily_rate, hourly_rate,
	working_days, late_minutes, overtime_hours,
	sss, philhealth, pagibig, gbond, others,
	basic_salary, overtime_pay, late_deduction, gross_pay, total_deductions, net_pay,
	status, created_at, updated_at`

type officePayrollRepository struct {
	db *database.DB
}

func NewOfficePayrollRepository(db *database.DB) payroll.OfficePayrollRepository {
	return &officePayrollRepository{db: db}
}

func scanOfficePayroll(row pgx.Row) (payroll.OfficePayrollRecord, error) {
	var rec payroll.OfficePayrollRecord
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.EmployeeName, &rec.EmployeeCode, &rec.Position,
		&rec.PayPeriodStart, &rec.PayPeriodEnd, &rec.DailyRate, &rec.HourlyRate,
		&rec.WorkingDays, &rec.LateMinutes, &rec.OvertimeHours,
		&rec.SSS, &rec.PhilHealth, &rec.PagIBIG, &rec.GBond, &rec.Others,
		&rec.BasicSalary, &rec.OvertimePay, &rec.LateDeduction, &rec.GrossPay, &rec.TotalDeductions, &rec.NetPay,
		&rec.Status, &rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

func (r *officePayrollRepository) Create(ctx context.Context, rec payroll.OfficePayrollRecord) (payroll.OfficePayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return payroll.OfficePayrollRecord{}, fmt.Errorf("failed to generate office payroll id: %w", err)
	}

	query := `
		INSERT INTO office_payrolls (
			id, employee_id, employee_name, employee_code, position,
			pay_period_start, pay_period_end, daily_rate, hourly_rate,
			working_days, late_minutes, overtime_hours,
			sss, philhealth, pagibig, gbond, others,
			basic_salary, overtime_pay, late_deduction, gross_pay, total_deductions, net_pay,
			status
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9,
			$10, $11, $12,
			$13, $14, $15, $16, $17,
			$18, $19, $20, $21, $22, $23,
			$24
		)
		RETURNING ` + officePayrollColumns

	created, err := scanOfficePayroll(q.QueryRow(ctx, query,
		id.String(), rec.EmployeeID, rec.EmployeeName, rec.EmployeeCode, rec.Position,
		rec.PayPeriodStart, rec.PayPeriodEnd, rec.DailyRate, rec.HourlyRate,
		rec.WorkingDays, rec.LateMinutes, rec.OvertimeHours,
		rec.SSS, rec.PhilHealth, rec.PagIBIG, rec.GBond, rec.Others,
		rec.BasicSalary, rec.OvertimePay, rec.LateDeduction, rec.GrossPay, rec.TotalDeductions, rec.NetPay,
		rec.Status,
	))
	if err != nil {
		return payroll.OfficePayrollRecord{}, fmt.Errorf("failed to create office payroll: %w", err)
	}
	return created, nil
}

func (r *officePayrollRepository) GetByID(ctx context.Context, id string) (payroll.OfficePayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + officePayrollColumns + ` FROM office_payrolls WHERE id = $1`

	rec, err := scanOfficePayroll(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.OfficePayrollRecord{}, payroll.ErrOfficePayrollRecordNotFound
		}
		return payroll.OfficePayrollRecord{}, fmt.Errorf("failed to get office payroll: %w", err)
	}
	return rec, nil
}

func (r *officePayrollRepository) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.OfficePayrollRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	where, args := buildPayrollFilter(filter)

	var totalCount int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM office_payrolls"+where, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count office payrolls: %w", err)
	}

	orderBy, limit, offset := payrollOrderAndPage(filter)
	selectQuery := fmt.Sprintf(`SELECT %s FROM office_payrolls%s ORDER BY %s LIMIT $%d OFFSET $%d`,
		officePayrollColumns, where, orderBy, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list office payrolls: %w", err)
	}
	defer rows.Close()

	var records []payroll.OfficePayrollRecord
	for rows.Next() {
		rec, err := scanOfficePayroll(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan office payroll: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return records, totalCount, nil
}

func (r *officePayrollRepository) Update(ctx context.Context, rec payroll.OfficePayrollRecord) (payroll.OfficePayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE office_payrolls SET
			pay_period_start = $1, pay_period_end = $2,
			working_days = $3, late_minutes = $4, overtime_hours = $5,
			sss = $6, philhealth = $7, pagibig = $8, gbond = $9, others = $10,
			basic_salary = $11, overtime_pay = $12, late_deduction = $13,
			gross_pay = $14, total_deductions = $15, net_pay = $16,
			updated_at = NOW()
		WHERE id = $17
		RETURNING ` + officePayrollColumns

	updated, err := scanOfficePayroll(q.QueryRow(ctx, query,
		rec.PayPeriodStart, rec.PayPeriodEnd,
		rec.WorkingDays, rec.LateMinutes, rec.OvertimeHours,
		rec.SSS, rec.PhilHealth, rec.PagIBIG, rec.GBond, rec.Others,
		rec.BasicSalary, rec.OvertimePay, rec.LateDeduction,
		rec.GrossPay, rec.TotalDeductions, rec.NetPay,
		rec.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.OfficePayrollRecord{}, payroll.ErrOfficePayrollRecordNotFound
		}
		return payroll.OfficePayrollRecord{}, fmt.Errorf("failed to update office payroll: %w", err)
	}
	return updated, nil
}

func (r *officePayrollRepository) UpdateStatus(ctx context.Context, id string, status payroll.PayrollStatus) (payroll.OfficePayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE office_payrolls SET status = $1, updated_at = NOW() WHERE id = $2 RETURNING ` + officePayrollColumns

	updated, err := scanOfficePayroll(q.QueryRow(ctx, query, status, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.OfficePayrollRecord{}, payroll.ErrOfficePayrollRecordNotFound
		}
		return payroll.OfficePayrollRecord{}, fmt.Errorf("failed to update office payroll status: %w", err)
	}
	return updated, nil
}

func (r *officePayrollRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM office_payrolls WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete office payroll: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrOfficePayrollRecordNotFound
	}
	return nil
}
