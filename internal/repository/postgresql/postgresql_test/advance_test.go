package postgresql_test

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/construction-backoffice-go/internal/domain/advance"
	"github.com/cmlabs-hris/construction-backoffice-go/internal/domain/employee"
	"github.com/cmlabs-hris/construction-backoffice-go/internal/repository/postgresql"
	advancesvc "github.com/cmlabs-hris/construction-backoffice-go/internal/service/advance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvanceRepository_OneActiveAdvancePerEmployee(t *testing.T) {
	db := NewTestDatabase(t)
	repo := postgresql.NewAdvanceRepository(db)
	ctx := context.Background()
	emp := createTestEmployee(t, db, "SITE-001", employee.StatusSite)

	eca := advance.EmergencyCashAdvance{
		EmployeeID:       emp.ID,
		PrincipalAmount:  decimal.NewFromInt(1000),
		RemainingBalance: decimal.NewFromInt(1000),
		Status:           advance.StatusActive,
	}
	created, err := repo.CreateAdvance(ctx, eca)
	require.NoError(t, err)

	_, err = repo.CreateAdvance(ctx, eca)
	assert.ErrorIs(t, err, advance.ErrActiveAdvanceExists)

	require.NoError(t, repo.CompleteAdvance(ctx, created.ID))
	_, err = repo.CreateAdvance(ctx, eca)
	assert.NoError(t, err, "a completed advance does not block a new one")
}

func TestAdvanceRepository_OneActiveDeductionPerEmployee(t *testing.T) {
	db := NewTestDatabase(t)
	repo := postgresql.NewAdvanceRepository(db)
	ctx := context.Background()
	emp := createTestEmployee(t, db, "SITE-001", employee.StatusSite)

	ed := advance.EmergencyDeduction{EmployeeID: emp.ID, Amount: decimal.NewFromInt(200), Status: advance.StatusActive}
	_, err := repo.CreateDeduction(ctx, ed)
	require.NoError(t, err)

	_, err = repo.CreateDeduction(ctx, ed)
	assert.ErrorIs(t, err, advance.ErrActiveDeductionExists)

	require.NoError(t, repo.CompleteActiveDeduction(ctx, emp.ID))
	_, err = repo.GetActiveDeduction(ctx, emp.ID)
	assert.ErrorIs(t, err, advance.ErrDeductionNotFound)
}

func TestAdvanceRepository_BalanceUpdatesOnlyWhileActive(t *testing.T) {
	db := NewTestDatabase(t)
	repo := postgresql.NewAdvanceRepository(db)
	ctx := context.Background()
	emp := createTestEmployee(t, db, "SITE-001", employee.StatusSite)

	created, err := repo.CreateAdvance(ctx, advance.EmergencyCashAdvance{
		EmployeeID:       emp.ID,
		PrincipalAmount:  decimal.NewFromInt(1000),
		RemainingBalance: decimal.NewFromInt(1000),
		Status:           advance.StatusActive,
	})
	require.NoError(t, err)

	require.NoError(t, repo.UpdateAdvanceBalance(ctx, created.ID, decimal.NewFromInt(400)))
	active, err := repo.GetActiveAdvance(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, "400.00", active.RemainingBalance.StringFixed(2))

	require.NoError(t, repo.CompleteAdvance(ctx, created.ID))
	assert.ErrorIs(t, repo.UpdateAdvanceBalance(ctx, created.ID, decimal.NewFromInt(10)), advance.ErrAdvanceNotFound)
	assert.ErrorIs(t, repo.CompleteAdvance(ctx, created.ID), advance.ErrAdvanceNotFound)

	history, err := repo.ListAdvancesByEmployee(ctx, emp.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, advance.StatusCompleted, history[0].Status)
	assert.True(t, history[0].RemainingBalance.IsZero())
	assert.NotNil(t, history[0].CompletedAt)
}

func TestLedgerService_AgainstPostgres(t *testing.T) {
	db := NewTestDatabase(t)
	ctx := context.Background()
	emp := createTestEmployee(t, db, "SITE-001", employee.StatusSite)

	ledger := advancesvc.NewLedgerService(
		postgresql.NewTxManager(db),
		postgresql.NewAdvanceRepository(db),
		postgresql.NewEmployeeRepository(db),
	)

	_, err := ledger.CreatePair(ctx, advance.CreatePairRequest{
		EmployeeID:      emp.ID,
		PrincipalAmount: decimal.NewFromInt(1000),
		DeductionAmount: decimal.NewFromInt(200),
	})
	require.NoError(t, err)

	for _, amount := range []int64{300, 300} {
		_, err := ledger.ApplyDeduction(ctx, emp.ID, decimal.NewFromInt(amount))
		require.NoError(t, err)
	}
	view, err := ledger.GetActivePair(ctx, emp.ID)
	require.NoError(t, err)
	require.NotNil(t, view.Advance)
	assert.Equal(t, "400.00", view.Advance.RemainingBalance.StringFixed(2))

	res, err := ledger.ApplyDeduction(ctx, emp.ID, decimal.NewFromInt(500))
	require.NoError(t, err)
	assert.True(t, res.Completed)

	view, err = ledger.GetActivePair(ctx, emp.ID)
	require.NoError(t, err)
	assert.False(t, view.HasActiveECA)
	assert.False(t, view.HasActiveED)
}
