package payroll

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/construction-backoffice-go/internal/domain/employee"
	"github.com/cmlabs-hris/construction-backoffice-go/internal/domain/payroll"
	"github.com/cmlabs-hris/construction-backoffice-go/internal/pkg/validator"
	"github.com/cmlabs-hris/construction-backoffice-go/internal/service/servicetest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupOffice(t *testing.T) (*servicetest.Store, payroll.OfficePayrollService, employee.Employee) {
	t.Helper()
	store := servicetest.NewStore()
	emp := store.SeedEmployee(employee.Employee{
		EmployeeCode: "OFF-001",
		FullName:     "Maria Clara Reyes",
		Position:     "Timekeeper",
		Status:       employee.StatusOffice,
		DailyRate:    dec("800"),
		HourlyRate:   dec("100"),
	})
	return store, NewOfficePayrollService(store.OfficePayrolls(), store.Employees()), emp
}

func officeRequest(employeeID string) payroll.CreateOfficePayrollRequest {
	return payroll.CreateOfficePayrollRequest{
		EmployeeID:     employeeID,
		PayPeriodStart: "2026-03-01",
		PayPeriodEnd:   "2026-03-15",
		WorkingDays:    11,
		LateMinutes:    15,
		OvertimeHours:  dec("2"),
		SSS:            dec("450"),
		PhilHealth:     dec("200"),
		PagIBIG:        dec("100"),
		GBond:          dec("50"),
	}
}

func TestOfficePayrollService_Create(t *testing.T) {
	store, svc, emp := setupOffice(t)

	resp, err := svc.CreateOfficePayroll(context.Background(), officeRequest(emp.ID))

	require.NoError(t, err)
	assertMoney(t, "8800.00", resp.BasicSalary, "basic_salary")
	assertMoney(t, "250.00", resp.OvertimePay, "overtime_pay")
	assertMoney(t, "25.00", resp.LateDeduction, "late_deduction")
	assertMoney(t, "825.00", resp.TotalDeductions, "total_deductions")
	assertMoney(t, "8225.00", resp.NetPay, "net_pay")
	assert.Equal(t, "Pending", resp.Status)
	assert.Equal(t, "Maria Clara Reyes", resp.EmployeeName)
	assert.Equal(t, 0, store.Transactions, "office payroll never opens a ledger transaction")
}

func TestOfficePayrollService_Create_UnknownEmployee(t *testing.T) {
	_, svc, _ := setupOffice(t)

	_, err := svc.CreateOfficePayroll(context.Background(), officeRequest(uuid.NewString()))

	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestOfficePayrollService_Create_Validation(t *testing.T) {
	_, svc, emp := setupOffice(t)
	req := officeRequest(emp.ID)
	req.SSS = dec("-1")
	req.GBond = dec("-1")
	req.WorkingDays = -2

	_, err := svc.CreateOfficePayroll(context.Background(), req)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 3)
}

func TestOfficePayrollService_Update_AlwaysRecalculates(t *testing.T) {
	store, svc, emp := setupOffice(t)
	ctx := context.Background()
	created, err := svc.CreateOfficePayroll(ctx, officeRequest(emp.ID))
	require.NoError(t, err)

	_, err = store.Employees().UpdateRates(ctx, emp.ID, dec("1600"), dec("200"))
	require.NoError(t, err)

	updated, err := svc.UpdateOfficePayroll(ctx, payroll.UpdateOfficePayrollRequest{
		ID:     created.ID,
		Others: decPtr("75"),
	})

	require.NoError(t, err)
	assertMoney(t, "8800.00", updated.BasicSalary, "basic_salary")
	assertMoney(t, "900.00", updated.TotalDeductions, "total_deductions")
	assertMoney(t, "8150.00", updated.NetPay, "net_pay")

	updated, err = svc.UpdateOfficePayroll(ctx, payroll.UpdateOfficePayrollRequest{
		ID:            created.ID,
		OvertimeHours: decPtr("4"),
	})
	require.NoError(t, err)
	assertMoney(t, "500.00", updated.OvertimePay, "overtime_pay")
	assertMoney(t, "75.00", updated.Others, "others")
}

func TestOfficePayrollService_Update_ReportsFieldAndPeriodErrorsTogether(t *testing.T) {
	_, svc, emp := setupOffice(t)
	ctx := context.Background()
	created, err := svc.CreateOfficePayroll(ctx, officeRequest(emp.ID))
	require.NoError(t, err)

	_, err = svc.UpdateOfficePayroll(ctx, payroll.UpdateOfficePayrollRequest{
		ID:           created.ID,
		WorkingDays:  intPtr(-1),
		PayPeriodEnd: strPtr("2000-01-01"),
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "working_days")
	assert.Contains(t, verrs.ToMap(), "pay_period_end")
}

func TestOfficePayrollService_UpdateStatus_AllowsReleased(t *testing.T) {
	_, svc, emp := setupOffice(t)
	ctx := context.Background()
	created, err := svc.CreateOfficePayroll(ctx, officeRequest(emp.ID))
	require.NoError(t, err)

	updated, err := svc.UpdateOfficePayrollStatus(ctx, payroll.UpdateOfficeStatusRequest{ID: created.ID, Status: "Released"})

	require.NoError(t, err)
	assert.Equal(t, "Released", updated.Status)
}

func TestOfficePayrollService_GetListDelete(t *testing.T) {
	_, svc, emp := setupOffice(t)
	ctx := context.Background()
	created, err := svc.CreateOfficePayroll(ctx, officeRequest(emp.ID))
	require.NoError(t, err)

	got, err := svc.GetOfficePayroll(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	list, err := svc.ListOfficePayrolls(ctx, payroll.PayrollFilter{EmployeeID: &emp.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.TotalCount)

	require.NoError(t, svc.DeleteOfficePayroll(ctx, created.ID))
	_, err = svc.GetOfficePayroll(ctx, created.ID)
	assert.ErrorIs(t, err, payroll.ErrOfficePayrollRecordNotFound)
}
