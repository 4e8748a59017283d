package advance

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/construction-backoffice-go/internal/domain/advance"
	"github.com/cmlabs-hris/construction-backoffice-go/internal/domain/employee"
	"github.com/cmlabs-hris/construction-backoffice-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/construction-backoffice-go/internal/pkg/validator"
	"github.com/cmlabs-hris/construction-backoffice-go/internal/service/servicetest"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func setupLedger(t *testing.T) (*servicetest.Store, advance.LedgerService, string) {
	t.Helper()
	store := servicetest.NewStore()
	emp := store.SeedEmployee(employee.Employee{
		EmployeeCode: "SITE-001",
		FullName:     "Ramon Dela Cruz",
		Status:       employee.StatusSite,
		DailyRate:    dec("1000"),
		HourlyRate:   dec("125"),
	})
	svc := NewLedgerService(store, store.Advances(), store.Employees())
	return store, svc, emp.ID
}

func issue(t *testing.T, svc advance.LedgerService, employeeID, principal, deduction string) advance.PairResponse {
	t.Helper()
	pair, err := svc.CreatePair(context.Background(), advance.CreatePairRequest{
		EmployeeID:      employeeID,
		PrincipalAmount: dec(principal),
		DeductionAmount: dec(deduction),
	})
	require.NoError(t, err)
	return pair
}

func TestLedgerService_CreatePair_Success(t *testing.T) {
	store, svc, employeeID := setupLedger(t)

	pair := issue(t, svc, employeeID, "1000", "200")

	assert.Equal(t, "active", pair.Advance.Status)
	assert.True(t, pair.Advance.RemainingBalance.Equal(dec("1000")))
	assert.True(t, pair.Advance.PrincipalAmount.Equal(dec("1000")))
	assert.Equal(t, "active", pair.Deduction.Status)
	assert.True(t, pair.Deduction.Amount.Equal(dec("200")))
	assert.Contains(t, store.Locks, employeeID)
}

func TestLedgerService_CreatePair_ConflictWhenAdvanceActive(t *testing.T) {
	_, svc, employeeID := setupLedger(t)
	issue(t, svc, employeeID, "1000", "200")

	_, err := svc.CreatePair(context.Background(), advance.CreatePairRequest{
		EmployeeID:      employeeID,
		PrincipalAmount: dec("500"),
		DeductionAmount: dec("100"),
	})

	assert.ErrorIs(t, err, advance.ErrActiveAdvanceExists)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
}

func TestLedgerService_CreatePair_ConflictWhenOnlyDeductionActive(t *testing.T) {
	store, svc, employeeID := setupLedger(t)
	_, err := store.Advances().CreateDeduction(context.Background(), advance.EmergencyDeduction{
		EmployeeID: employeeID,
		Amount:     dec("100"),
		Status:     advance.StatusActive,
	})
	require.NoError(t, err)

	_, err = svc.CreatePair(context.Background(), advance.CreatePairRequest{
		EmployeeID:      employeeID,
		PrincipalAmount: dec("500"),
		DeductionAmount: dec("100"),
	})

	assert.ErrorIs(t, err, advance.ErrActiveDeductionExists)
}

func TestLedgerService_CreatePair_IsAtomic(t *testing.T) {
	store, svc, employeeID := setupLedger(t)
	store.FailOn("advance.CreateDeduction", servicetest.ErrInjected)

	_, err := svc.CreatePair(context.Background(), advance.CreatePairRequest{
		EmployeeID:      employeeID,
		PrincipalAmount: dec("1000"),
		DeductionAmount: dec("200"),
	})

	require.Error(t, err)
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
	assert.ErrorIs(t, err, servicetest.ErrInjected)

	view, err := svc.GetActivePair(context.Background(), employeeID)
	require.NoError(t, err)
	assert.False(t, view.HasActiveECA)
	assert.False(t, view.HasActiveED)
	assert.Equal(t, 1, store.Rollbacks)
}

func TestLedgerService_CreatePair_ValidationListsEveryField(t *testing.T) {
	_, svc, _ := setupLedger(t)

	_, err := svc.CreatePair(context.Background(), advance.CreatePairRequest{
		EmployeeID:      "not-a-uuid",
		PrincipalAmount: dec("0"),
		DeductionAmount: dec("-1"),
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 3)
}

func TestLedgerService_CreatePair_UnknownEmployee(t *testing.T) {
	_, svc, _ := setupLedger(t)

	_, err := svc.CreatePair(context.Background(), advance.CreatePairRequest{
		EmployeeID:      uuid.NewString(),
		PrincipalAmount: dec("1000"),
		DeductionAmount: dec("200"),
	})

	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestLedgerService_ApplyDeduction_SettlesToCompletion(t *testing.T) {
	store, svc, employeeID := setupLedger(t)
	pair := issue(t, svc, employeeID, "1000", "200")
	ctx := context.Background()

	res, err := svc.ApplyDeduction(ctx, employeeID, dec("300"))
	require.NoError(t, err)
	assert.True(t, res.NewBalance.Equal(dec("700")))
	assert.False(t, res.Completed)

	res, err = svc.ApplyDeduction(ctx, employeeID, dec("300"))
	require.NoError(t, err)
	assert.True(t, res.NewBalance.Equal(dec("400")))
	assert.False(t, res.Completed)

	eca, _ := store.Advance(pair.Advance.ID)
	assert.Equal(t, advance.StatusActive, eca.Status)
	assert.True(t, eca.RemainingBalance.Equal(dec("400")))

	res, err = svc.ApplyDeduction(ctx, employeeID, dec("500"))
	require.NoError(t, err)
	assert.True(t, res.Completed)
	assert.True(t, res.NewBalance.IsZero())

	eca, _ = store.Advance(pair.Advance.ID)
	assert.Equal(t, advance.StatusCompleted, eca.Status)
	assert.True(t, eca.RemainingBalance.IsZero())
	assert.NotNil(t, eca.CompletedAt)

	deductions := store.Deductions(employeeID)
	require.Len(t, deductions, 1)
	assert.Equal(t, advance.StatusCompleted, deductions[0].Status)
}

func TestLedgerService_ApplyDeduction_ExactBalanceCompletes(t *testing.T) {
	_, svc, employeeID := setupLedger(t)
	issue(t, svc, employeeID, "150", "50")

	res, err := svc.ApplyDeduction(context.Background(), employeeID, dec("150"))

	require.NoError(t, err)
	assert.True(t, res.Completed)
}

func TestLedgerService_ApplyDeduction_NoOps(t *testing.T) {
	store, svc, employeeID := setupLedger(t)
	ctx := context.Background()

	res, err := svc.ApplyDeduction(ctx, employeeID, dec("100"))
	require.NoError(t, err)
	assert.False(t, res.Applied, "no active advance")

	pair := issue(t, svc, employeeID, "1000", "200")

	for _, amount := range []string{"0", "-50"} {
		res, err = svc.ApplyDeduction(ctx, employeeID, dec(amount))
		require.NoError(t, err)
		assert.False(t, res.Applied, amount)
	}

	eca, _ := store.Advance(pair.Advance.ID)
	assert.True(t, eca.RemainingBalance.Equal(dec("1000")))
}

func TestLedgerService_ApplyDeduction_CompletedAdvanceIsTerminal(t *testing.T) {
	store, svc, employeeID := setupLedger(t)
	pair := issue(t, svc, employeeID, "100", "100")
	ctx := context.Background()

	_, err := svc.ApplyDeduction(ctx, employeeID, dec("100"))
	require.NoError(t, err)

	res, err := svc.ReverseDeltaDeduction(ctx, employeeID, dec("100"), dec("0"))
	require.NoError(t, err)
	assert.False(t, res.Applied)

	eca, _ := store.Advance(pair.Advance.ID)
	assert.Equal(t, advance.StatusCompleted, eca.Status)
	assert.True(t, eca.RemainingBalance.IsZero())
}

func TestLedgerService_ReverseDeltaDeduction(t *testing.T) {
	store, svc, employeeID := setupLedger(t)
	pair := issue(t, svc, employeeID, "1000", "200")
	ctx := context.Background()

	res, err := svc.ReverseDeltaDeduction(ctx, employeeID, dec("200"), dec("200"))
	require.NoError(t, err)
	assert.False(t, res.Applied, "unchanged amount")

	res, err = svc.ReverseDeltaDeduction(ctx, employeeID, dec("0"), dec("300"))
	require.NoError(t, err)
	assert.True(t, res.NewBalance.Equal(dec("700")))

	res, err = svc.ReverseDeltaDeduction(ctx, employeeID, dec("300"), dec("100"))
	require.NoError(t, err)
	assert.True(t, res.NewBalance.Equal(dec("900")))

	eca, _ := store.Advance(pair.Advance.ID)
	assert.True(t, eca.RemainingBalance.Equal(dec("900")))
}

func TestLedgerService_ReverseDeltaDeduction_NegativeDeltaIsNotCapped(t *testing.T) {
	_, svc, employeeID := setupLedger(t)
	issue(t, svc, employeeID, "1000", "200")

	res, err := svc.ReverseDeltaDeduction(context.Background(), employeeID, dec("500"), dec("0"))

	require.NoError(t, err)
	assert.True(t, res.NewBalance.Equal(dec("1500")))
}

func TestLedgerService_GetActivePair(t *testing.T) {
	_, svc, employeeID := setupLedger(t)
	ctx := context.Background()

	view, err := svc.GetActivePair(ctx, employeeID)
	require.NoError(t, err)
	assert.False(t, view.HasActiveECA)
	assert.False(t, view.IsReadonly)
	assert.Nil(t, view.Advance)

	issue(t, svc, employeeID, "1000", "200")

	first, err := svc.GetActivePair(ctx, employeeID)
	require.NoError(t, err)
	second, err := svc.GetActivePair(ctx, employeeID)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.True(t, first.HasActiveECA)
	assert.True(t, first.HasActiveED)
	assert.True(t, first.IsReadonly)
}

func TestLedgerService_GetActivePair_UnknownEmployee(t *testing.T) {
	_, svc, _ := setupLedger(t)

	_, err := svc.GetActivePair(context.Background(), uuid.NewString())

	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestLedgerService_ListAdvances_NewestFirst(t *testing.T) {
	_, svc, employeeID := setupLedger(t)
	ctx := context.Background()

	first := issue(t, svc, employeeID, "100", "100")
	_, err := svc.ApplyDeduction(ctx, employeeID, dec("100"))
	require.NoError(t, err)
	second := issue(t, svc, employeeID, "500", "250")

	list, err := svc.ListAdvances(ctx, employeeID)

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.Advance.ID, list[0].ID)
	assert.Equal(t, first.Advance.ID, list[1].ID)
	assert.Equal(t, "completed", list[1].Status)
	assert.NotNil(t, list[1].CompletedAt)
}
