package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/construction-backoffice-go/internal/domain/payroll"
	"github.com/cmlabs-hris/construction-backoffice-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const payrollColumns = `id, employee_id, employee_name, employee_code, employee_group, position,
	pay_period_start, pay_period_end, daily_rate, hourly_rate,
	working_days, overtime_hours, late_minutes,
	daily_attendance, daily_overtime, daily_late, daily_site_address,
	basic_salary, overtime_pay, late_deduction, gross_pay, total_deductions, net_pay,
	cash_advance, others_deduction, status, created_at, updated_at`

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// weekColumns holds the JSONB encodings of the four weekly containers.
type weekColumns struct {
	attendance, overtime, late, siteAddress []byte
}

func encodeWeeks(rec payroll.PayrollRecord) (weekColumns, error) {
	var (
		cols weekColumns
		err  error
	)
	if cols.attendance, err = json.Marshal(rec.DailyAttendance); err != nil {
		return cols, fmt.Errorf("failed to marshal daily_attendance: %w", err)
	}
	if cols.overtime, err = json.Marshal(rec.DailyOvertime); err != nil {
		return cols, fmt.Errorf("failed to marshal daily_overtime: %w", err)
	}
	if cols.late, err = json.Marshal(rec.DailyLate); err != nil {
		return cols, fmt.Errorf("failed to marshal daily_late: %w", err)
	}
	if cols.siteAddress, err = json.Marshal(rec.DailySiteAddress); err != nil {
		return cols, fmt.Errorf("failed to marshal daily_site_address: %w", err)
	}
	return cols, nil
}

func scanPayroll(row pgx.Row) (payroll.PayrollRecord, error) {
	var (
		rec  payroll.PayrollRecord
		cols weekColumns
	)
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.EmployeeName, &rec.EmployeeCode, &rec.EmployeeGroup, &rec.Position,
		&rec.PayPeriodStart, &rec.PayPeriodEnd, &rec.DailyRate, &rec.HourlyRate,
		&rec.WorkingDays, &rec.OvertimeHours, &rec.LateMinutes,
		&cols.attendance, &cols.overtime, &cols.late, &cols.siteAddress,
		&rec.BasicSalary, &rec.OvertimePay, &rec.LateDeduction, &rec.GrossPay, &rec.TotalDeductions, &rec.NetPay,
		&rec.CashAdvance, &rec.OthersDeduction, &rec.Status, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}

	if err := json.Unmarshal(cols.attendance, &rec.DailyAttendance); err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to unmarshal daily_attendance: %w", err)
	}
	if err := json.Unmarshal(cols.overtime, &rec.DailyOvertime); err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to unmarshal daily_overtime: %w", err)
	}
	if err := json.Unmarshal(cols.late, &rec.DailyLate); err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to unmarshal daily_late: %w", err)
	}
	if err := json.Unmarshal(cols.siteAddress, &rec.DailySiteAddress); err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to unmarshal daily_site_address: %w", err)
	}
	return rec, nil
}

func (r *payrollRepository) Create(ctx context.Context, rec payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to generate payroll id: %w", err)
	}
	weeks, err := encodeWeeks(rec)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}

	query := `
		INSERT INTO payrolls (
			id, employee_id, employee_name, employee_code, employee_group, position,
			pay_period_start, pay_period_end, daily_rate, hourly_rate,
			working_days, overtime_hours, late_minutes,
			daily_attendance, daily_overtime, daily_late, daily_site_address,
			basic_salary, overtime_pay, late_deduction, gross_pay, total_deductions, net_pay,
			cash_advance, others_deduction, status
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10,
			$11, $12, $13,
			$14, $15, $16, $17,
			$18, $19, $20, $21, $22, $23,
			$24, $25, $26
		)
		RETURNING ` + payrollColumns

	created, err := scanPayroll(q.QueryRow(ctx, query,
		id.String(), rec.EmployeeID, rec.EmployeeName, rec.EmployeeCode, rec.EmployeeGroup, rec.Position,
		rec.PayPeriodStart, rec.PayPeriodEnd, rec.DailyRate, rec.HourlyRate,
		rec.WorkingDays, rec.OvertimeHours, rec.LateMinutes,
		weeks.attendance, weeks.overtime, weeks.late, weeks.siteAddress,
		rec.BasicSalary, rec.OvertimePay, rec.LateDeduction, rec.GrossPay, rec.TotalDeductions, rec.NetPay,
		rec.CashAdvance, rec.OthersDeduction, rec.Status,
	))
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to create payroll: %w", err)
	}
	return created, nil
}

func (r *payrollRepository) GetByID(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payrollColumns + ` FROM payrolls WHERE id = $1`

	rec, err := scanPayroll(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll: %w", err)
	}
	return rec, nil
}

func (r *payrollRepository) GetByIDForUpdate(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	tx, ok := txFromContext(ctx)
	if !ok {
		return payroll.PayrollRecord{}, fmt.Errorf("lock payroll %s: no transaction in context", id)
	}

	query := `SELECT ` + payrollColumns + ` FROM payrolls WHERE id = $1 FOR UPDATE`

	rec, err := scanPayroll(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to lock payroll: %w", err)
	}
	return rec, nil
}

func (r *payrollRepository) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	where, args := buildPayrollFilter(filter)

	var totalCount int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM payrolls"+where, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count payrolls: %w", err)
	}

	orderBy, limit, offset := payrollOrderAndPage(filter)
	selectQuery := fmt.Sprintf(`SELECT %s FROM payrolls%s ORDER BY %s LIMIT $%d OFFSET $%d`,
		payrollColumns, where, orderBy, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payrolls: %w", err)
	}
	defer rows.Close()

	var records []payroll.PayrollRecord
	for rows.Next() {
		rec, err := scanPayroll(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return records, totalCount, nil
}

func (r *payrollRepository) Update(ctx context.Context, rec payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	weeks, err := encodeWeeks(rec)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}

	query := `
		UPDATE payrolls SET
			pay_period_start = $1, pay_period_end = $2,
			working_days = $3, overtime_hours = $4, late_minutes = $5,
			daily_attendance = $6, daily_overtime = $7, daily_late = $8, daily_site_address = $9,
			basic_salary = $10, overtime_pay = $11, late_deduction = $12,
			gross_pay = $13, total_deductions = $14, net_pay = $15,
			cash_advance = $16, others_deduction = $17,
			updated_at = NOW()
		WHERE id = $18
		RETURNING ` + payrollColumns

	updated, err := scanPayroll(q.QueryRow(ctx, query,
		rec.PayPeriodStart, rec.PayPeriodEnd,
		rec.WorkingDays, rec.OvertimeHours, rec.LateMinutes,
		weeks.attendance, weeks.overtime, weeks.late, weeks.siteAddress,
		rec.BasicSalary, rec.OvertimePay, rec.LateDeduction,
		rec.GrossPay, rec.TotalDeductions, rec.NetPay,
		rec.CashAdvance, rec.OthersDeduction,
		rec.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to update payroll: %w", err)
	}
	return updated, nil
}

func (r *payrollRepository) UpdateStatus(ctx context.Context, id string, status payroll.PayrollStatus) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE payrolls SET status = $1, updated_at = NOW() WHERE id = $2 RETURNING ` + payrollColumns

	updated, err := scanPayroll(q.QueryRow(ctx, query, status, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to update payroll status: %w", err)
	}
	return updated, nil
}

func (r *payrollRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM payrolls WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payroll: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayrollRecordNotFound
	}
	return nil
}

// buildPayrollFilter returns a WHERE clause (with leading space, or empty)
// shared by both payroll tables.
func buildPayrollFilter(filter payroll.PayrollFilter) (string, []interface{}) {
	where := ""
	var args []interface{}
	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		if where == "" {
			where = " WHERE "
		} else {
			where += " AND "
		}
		where += fmt.Sprintf(cond, len(args))
	}

	if filter.Status != nil {
		add("status = $%d", *filter.Status)
	}
	if filter.EmployeeID != nil {
		add("employee_id = $%d", *filter.EmployeeID)
	}
	if filter.PeriodFrom != nil {
		add("pay_period_start >= $%d::date", *filter.PeriodFrom)
	}
	if filter.PeriodTo != nil {
		add("pay_period_start <= $%d::date", *filter.PeriodTo)
	}
	return where, args
}

func payrollOrderAndPage(filter payroll.PayrollFilter) (orderBy string, limit, offset int) {
	allowedColumns := map[string]string{
		"pay_period_start": "pay_period_start",
		"employee_name":    "employee_name",
		"net_pay":          "net_pay",
		"created_at":       "created_at",
	}
	column, ok := allowedColumns[filter.SortBy]
	if !ok {
		column = "pay_period_start"
	}
	direction := "DESC"
	if filter.SortOrder == "asc" {
		direction = "ASC"
	}

	limit = filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	return column + " " + direction + ", id " + direction, limit, (page - 1) * limit
}
