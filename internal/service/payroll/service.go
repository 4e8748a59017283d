package payroll

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/construction-backoffice-go/internal/domain/advance"
	"github.com/cmlabs-hris/construction-backoffice-go/internal/domain/employee"
	"github.com/cmlabs-hris/construction-backoffice-go/internal/domain/payroll"
	"github.com/cmlabs-hris/construction-backoffice-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/construction-backoffice-go/internal/pkg/database"
	"github.com/cmlabs-hris/construction-backoffice-go/internal/pkg/document"
	"github.com/cmlabs-hris/construction-backoffice-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const timestampLayout = "2006-01-02 15:04:05"

type PayrollServiceImpl struct {
	txManager    database.TxManager
	payrollRepo  payroll.PayrollRepository
	employeeRepo employee.EmployeeRepository
	ledger       advance.LedgerService
}

func NewPayrollService(
	txManager database.TxManager,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	ledger advance.LedgerService,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		txManager:    txManager,
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
		ledger:       ledger,
	}
}

func (s *PayrollServiceImpl) CreatePayroll(ctx context.Context, req payroll.CreatePayrollRequest) (payroll.PayrollRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	start, _ := time.Parse(payroll.DateLayout, req.PayPeriodStart)
	end, _ := time.Parse(payroll.DateLayout, req.PayPeriodEnd)

	var created payroll.PayrollRecord
	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		emp, err := s.employeeRepo.GetByID(txCtx, req.EmployeeID)
		if err != nil {
			return err
		}

		// A new advance needs a clean slate; CreatePair enforces that.
		if req.EmergencyAdvance != nil {
			if _, err := s.ledger.CreatePair(txCtx, advance.CreatePairRequest{
				EmployeeID:      emp.ID,
				PrincipalAmount: req.EmergencyAdvance.PrincipalAmount,
				DeductionAmount: req.EmergencyAdvance.DeductionAmount,
			}); err != nil {
				return err
			}
		}

		record := payroll.PayrollRecord{
			EmployeeID:      emp.ID,
			EmployeeName:    emp.FullName,
			EmployeeCode:    emp.EmployeeCode,
			EmployeeGroup:   emp.Group,
			Position:        emp.Position,
			PayPeriodStart:  start,
			PayPeriodEnd:    end,
			DailyRate:       emp.DailyRate,
			HourlyRate:      emp.HourlyRate,
			CashAdvance:     req.CashAdvance.Round(2),
			OthersDeduction: req.OthersDeduction.Round(2),
			Status:          payroll.PayrollStatusPending,
		}
		if req.DailyAttendance != nil {
			record.DailyAttendance = *req.DailyAttendance
		}
		if req.DailyOvertime != nil {
			record.DailyOvertime = *req.DailyOvertime
		}
		if req.DailyLate != nil {
			record.DailyLate = *req.DailyLate
		}
		if req.DailySiteAddress != nil {
			record.DailySiteAddress = *req.DailySiteAddress
		}

		var totals siteTotals
		totals.apply(req.WorkingDays, req.OvertimeHours, req.LateMinutes, req.DailyAttendance, req.DailyOvertime, req.DailyLate)
		record.WorkingDays = totals.WorkingDays
		record.OvertimeHours = totals.OvertimeHours
		record.LateMinutes = totals.LateMinutes
		record.PayBreakdown = calculateSite(record)

		// Ledger first, then the row.
		if record.CashAdvance.IsPositive() {
			if _, err := s.ledger.ApplyDeduction(txCtx, emp.ID, record.CashAdvance); err != nil {
				return err
			}
		}

		created, err = s.payrollRepo.Create(txCtx, record)
		return err
	})
	if err != nil {
		return payroll.PayrollRecordResponse{}, apperror.WrapUnexpected("create payroll", err)
	}

	slog.Info("Payroll created", "payroll_id", created.ID, "employee_id", created.EmployeeID, "net_pay", created.NetPay.StringFixed(2))
	return mapPayrollToResponse(created), nil
}

func (s *PayrollServiceImpl) GetPayroll(ctx context.Context, id string) (payroll.PayrollRecordResponse, error) {
	if !validator.IsValidUUID(id) {
		return payroll.PayrollRecordResponse{}, payroll.ErrPayrollRecordNotFound
	}

	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.PayrollRecordResponse{}, apperror.WrapUnexpected("get payroll", err)
	}
	return mapPayrollToResponse(record), nil
}

func (s *PayrollServiceImpl) ListPayrolls(ctx context.Context, filter payroll.PayrollFilter) (payroll.ListPayrollRecordResponse, error) {
	if err := filter.Validate(); err != nil {
		return payroll.ListPayrollRecordResponse{}, err
	}

	records, total, err := s.payrollRepo.List(ctx, filter)
	if err != nil {
		return payroll.ListPayrollRecordResponse{}, apperror.Internal("list payrolls", err)
	}

	data := make([]payroll.PayrollRecordResponse, 0, len(records))
	for _, r := range records {
		data = append(data, mapPayrollToResponse(r))
	}
	return payroll.ListPayrollRecordResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *PayrollServiceImpl) UpdatePayroll(ctx context.Context, req payroll.UpdatePayrollRequest) (payroll.PayrollRecordResponse, error) {
	fieldErrs := validator.Collect(req.Validate())
	if fieldErrs.Has("id") {
		return payroll.PayrollRecordResponse{}, fieldErrs
	}

	var updated payroll.PayrollRecord
	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		// The row lock keeps the stored cash advance stable until the
		// delta below is settled and the row rewritten.
		existing, err := s.payrollRepo.GetByIDForUpdate(txCtx, req.ID)
		if err != nil {
			return err
		}

		record := existing
		errs := append(validator.ValidationErrors(nil), fieldErrs...)
		record.PayPeriodStart, record.PayPeriodEnd = payroll.MergePeriod(&errs, existing.PayPeriodStart, existing.PayPeriodEnd, req.PayPeriodStart, req.PayPeriodEnd)
		if err := errs.OrNil(); err != nil {
			return err
		}

		if req.DailyAttendance != nil {
			record.DailyAttendance = *req.DailyAttendance
		}
		if req.DailyOvertime != nil {
			record.DailyOvertime = *req.DailyOvertime
		}
		if req.DailyLate != nil {
			record.DailyLate = *req.DailyLate
		}
		if req.DailySiteAddress != nil {
			record.DailySiteAddress = *req.DailySiteAddress
		}
		if req.CashAdvance != nil {
			record.CashAdvance = req.CashAdvance.Round(2)
		}
		if req.OthersDeduction != nil {
			record.OthersDeduction = req.OthersDeduction.Round(2)
		}

		if req.NeedsRecalculation() {
			totals := siteTotals{
				WorkingDays:   record.WorkingDays,
				OvertimeHours: record.OvertimeHours,
				LateMinutes:   record.LateMinutes,
			}
			totals.apply(req.WorkingDays, req.OvertimeHours, req.LateMinutes, req.DailyAttendance, req.DailyOvertime, req.DailyLate)
			record.WorkingDays = totals.WorkingDays
			record.OvertimeHours = totals.OvertimeHours
			record.LateMinutes = totals.LateMinutes
			record.PayBreakdown = calculateSite(record)
		}

		if req.CashAdvance != nil && !record.CashAdvance.Equal(existing.CashAdvance) {
			if _, err := s.ledger.ReverseDeltaDeduction(txCtx, record.EmployeeID, existing.CashAdvance, record.CashAdvance); err != nil {
				return err
			}
		}

		updated, err = s.payrollRepo.Update(txCtx, record)
		return err
	})
	if err != nil {
		return payroll.PayrollRecordResponse{}, apperror.WrapUnexpected("update payroll", err)
	}

	return mapPayrollToResponse(updated), nil
}

func (s *PayrollServiceImpl) UpdatePayrollStatus(ctx context.Context, req payroll.UpdateStatusRequest) (payroll.PayrollRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	record, err := s.payrollRepo.UpdateStatus(ctx, req.ID, payroll.PayrollStatus(req.Status))
	if err != nil {
		return payroll.PayrollRecordResponse{}, apperror.WrapUnexpected("update payroll status", err)
	}
	return mapPayrollToResponse(record), nil
}

// DeletePayroll removes the row only. Any settlement it caused stays.
func (s *PayrollServiceImpl) DeletePayroll(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return payroll.ErrPayrollRecordNotFound
	}
	if err := s.payrollRepo.Delete(ctx, id); err != nil {
		return apperror.WrapUnexpected("delete payroll", err)
	}
	return nil
}

func (s *PayrollServiceImpl) WritePayslip(ctx context.Context, id string, w io.Writer) error {
	if !validator.IsValidUUID(id) {
		return payroll.ErrPayrollRecordNotFound
	}

	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return apperror.WrapUnexpected("get payroll", err)
	}
	if err := document.RenderPayslipPDF(w, record); err != nil {
		return apperror.Internal("render payslip", err)
	}
	return nil
}

// WritePayrollRegister exports every row matching the filter, ignoring its
// paging.
func (s *PayrollServiceImpl) WritePayrollRegister(ctx context.Context, filter payroll.PayrollFilter, w io.Writer) error {
	filter.Page = 1
	filter.Limit = 100
	if err := filter.Validate(); err != nil {
		return err
	}

	var records []payroll.PayrollRecord
	for {
		batch, total, err := s.payrollRepo.List(ctx, filter)
		if err != nil {
			return apperror.Internal("list payrolls", err)
		}
		records = append(records, batch...)
		if len(batch) == 0 || int64(len(records)) >= total {
			break
		}
		filter.Page++
	}

	if err := document.RenderPayrollRegister(w, records); err != nil {
		return apperror.Internal("render payroll register", err)
	}
	return nil
}

func calculateSite(r payroll.PayrollRecord) payroll.PayBreakdown {
	return Calculate(CalculationInput{
		DailyRate:          r.DailyRate,
		HourlyRate:         r.HourlyRate,
		WorkingDays:        r.WorkingDays,
		OvertimeHours:      r.OvertimeHours,
		LateMinutes:        r.LateMinutes,
		OvertimeMultiplier: SiteOvertimeMultiplier,
		Deductions:         []decimal.Decimal{r.CashAdvance, r.OthersDeduction},
	})
}

func mapPayrollToResponse(r payroll.PayrollRecord) payroll.PayrollRecordResponse {
	return payroll.PayrollRecordResponse{
		ID:               r.ID,
		EmployeeID:       r.EmployeeID,
		EmployeeName:     r.EmployeeName,
		EmployeeCode:     r.EmployeeCode,
		EmployeeGroup:    r.EmployeeGroup,
		Position:         r.Position,
		PayPeriodStart:   r.PayPeriodStart.Format(payroll.DateLayout),
		PayPeriodEnd:     r.PayPeriodEnd.Format(payroll.DateLayout),
		DailyRate:        r.DailyRate,
		HourlyRate:       r.HourlyRate,
		WorkingDays:      r.WorkingDays,
		OvertimeHours:    r.OvertimeHours,
		LateMinutes:      r.LateMinutes,
		DailyAttendance:  r.DailyAttendance,
		DailyOvertime:    r.DailyOvertime,
		DailyLate:        r.DailyLate,
		DailySiteAddress: r.DailySiteAddress,
		BasicSalary:      r.BasicSalary,
		OvertimePay:      r.OvertimePay,
		LateDeduction:    r.LateDeduction,
		GrossPay:         r.GrossPay,
		CashAdvance:      r.CashAdvance,
		OthersDeduction:  r.OthersDeduction,
		TotalDeductions:  r.TotalDeductions,
		NetPay:           r.NetPay,
		Status:           string(r.Status),
		CreatedAt:        r.CreatedAt.Format(timestampLayout),
		UpdatedAt:        r.UpdatedAt.Format(timestampLayout),
	}
}
