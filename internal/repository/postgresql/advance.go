package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/construction-backoffice-go/internal/domain/advance"
	"github.com/cmlabs-hris/construction-backoffice-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

const (
	advanceColumns   = `id, employee_id, principal_amount, remaining_balance, status, created_at, updated_at, completed_at`
	deductionColumns = `id, employee_id, amount, status, created_at, updated_at, completed_at`
)

type advanceRepository struct {
	db *database.DB
}

func NewAdvanceRepository(db *database.DB) advance.AdvanceRepository {
	return &advanceRepository{db: db}
}

func scanAdvance(row pgx.Row) (advance.EmergencyCashAdvance, error) {
	var eca advance.EmergencyCashAdvance
	err := row.Scan(
		&eca.ID, &eca.EmployeeID, &eca.PrincipalAmount, &eca.RemainingBalance,
		&eca.Status, &eca.CreatedAt, &eca.UpdatedAt, &eca.CompletedAt,
	)
	return eca, err
}

func scanDeduction(row pgx.Row) (advance.EmergencyDeduction, error) {
	var ed advance.EmergencyDeduction
	err := row.Scan(&ed.ID, &ed.EmployeeID, &ed.Amount, &ed.Status, &ed.CreatedAt, &ed.UpdatedAt, &ed.CompletedAt)
	return ed, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *advanceRepository) GetActiveAdvance(ctx context.Context, employeeID string) (advance.EmergencyCashAdvance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + advanceColumns + ` FROM emergency_cash_advances WHERE employee_id = $1 AND status = $2`

	eca, err := scanAdvance(q.QueryRow(ctx, query, employeeID, advance.StatusActive))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return advance.EmergencyCashAdvance{}, advance.ErrAdvanceNotFound
		}
		return advance.EmergencyCashAdvance{}, fmt.Errorf("failed to get active advance: %w", err)
	}
	return eca, nil
}

func (r *advanceRepository) GetActiveDeduction(ctx context.Context, employeeID string) (advance.EmergencyDeduction, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + deductionColumns + ` FROM emergency_deductions WHERE employee_id = $1 AND status = $2`

	ed, err := scanDeduction(q.QueryRow(ctx, query, employeeID, advance.StatusActive))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return advance.EmergencyDeduction{}, advance.ErrDeductionNotFound
		}
		return advance.EmergencyDeduction{}, fmt.Errorf("failed to get active deduction: %w", err)
	}
	return ed, nil
}

func (r *advanceRepository) ListAdvancesByEmployee(ctx context.Context, employeeID string) ([]advance.EmergencyCashAdvance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + advanceColumns + ` FROM emergency_cash_advances WHERE employee_id = $1 ORDER BY created_at DESC, id DESC`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list advances: %w", err)
	}
	defer rows.Close()

	var advances []advance.EmergencyCashAdvance
	for rows.Next() {
		eca, err := scanAdvance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan advance: %w", err)
		}
		advances = append(advances, eca)
	}
	return advances, rows.Err()
}

func (r *advanceRepository) CreateAdvance(ctx context.Context, eca advance.EmergencyCashAdvance) (advance.EmergencyCashAdvance, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return advance.EmergencyCashAdvance{}, fmt.Errorf("failed to generate advance id: %w", err)
	}

	query := `
		INSERT INTO emergency_cash_advances (id, employee_id, principal_amount, remaining_balance, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + advanceColumns

	created, err := scanAdvance(q.QueryRow(ctx, query,
		id.String(), eca.EmployeeID, eca.PrincipalAmount, eca.RemainingBalance, eca.Status,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return advance.EmergencyCashAdvance{}, advance.ErrActiveAdvanceExists
		}
		return advance.EmergencyCashAdvance{}, fmt.Errorf("failed to create advance: %w", err)
	}
	return created, nil
}

func (r *advanceRepository) CreateDeduction(ctx context.Context, ed advance.EmergencyDeduction) (advance.EmergencyDeduction, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return advance.EmergencyDeduction{}, fmt.Errorf("failed to generate deduction id: %w", err)
	}

	query := `
		INSERT INTO emergency_deductions (id, employee_id, amount, status)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + deductionColumns

	created, err := scanDeduction(q.QueryRow(ctx, query, id.String(), ed.EmployeeID, ed.Amount, ed.Status))
	if err != nil {
		if isUniqueViolation(err) {
			return advance.EmergencyDeduction{}, advance.ErrActiveDeductionExists
		}
		return advance.EmergencyDeduction{}, fmt.Errorf("failed to create deduction: %w", err)
	}
	return created, nil
}

func (r *advanceRepository) UpdateAdvanceBalance(ctx context.Context, id string, balance decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE emergency_cash_advances
		SET remaining_balance = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
	`

	tag, err := q.Exec(ctx, query, balance, id, advance.StatusActive)
	if err != nil {
		return fmt.Errorf("failed to update advance balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return advance.ErrAdvanceNotFound
	}
	return nil
}

func (r *advanceRepository) CompleteAdvance(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE emergency_cash_advances
		SET remaining_balance = 0, status = $1, completed_at = NOW(), updated_at = NOW()
		WHERE id = $2 AND status = $3
	`

	tag, err := q.Exec(ctx, query, advance.StatusCompleted, id, advance.StatusActive)
	if err != nil {
		return fmt.Errorf("failed to complete advance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return advance.ErrAdvanceNotFound
	}
	return nil
}

func (r *advanceRepository) CompleteActiveDeduction(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE emergency_deductions
		SET status = $1, completed_at = NOW(), updated_at = NOW()
		WHERE employee_id = $2 AND status = $3
	`

	if _, err := q.Exec(ctx, query, advance.StatusCompleted, employeeID, advance.StatusActive); err != nil {
		return fmt.Errorf("failed to complete deduction: %w", err)
	}
	return nil
}
