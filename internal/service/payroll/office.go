package payroll

import (
	"context"
	"time"

	"github.com/cmlabs-hris/construction-backoffice-go/internal/domain/employee"
	"github.com/cmlabs-hris/construction-backoffice-go/internal/domain/payroll"
	"github.com/cmlabs-hris/construction-backoffice-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/construction-backoffice-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type OfficePayrollServiceImpl struct {
	officeRepo   payroll.OfficePayrollRepository
	employeeRepo employee.EmployeeRepository
}

func NewOfficePayrollService(
	officeRepo payroll.OfficePayrollRepository,
	employeeRepo employee.EmployeeRepository,
) payroll.OfficePayrollService {
	return &OfficePayrollServiceImpl{
		officeRepo:   officeRepo,
		employeeRepo: employeeRepo,
	}
}

func (s *OfficePayrollServiceImpl) CreateOfficePayroll(ctx context.Context, req payroll.CreateOfficePayrollRequest) (payroll.OfficePayrollRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.OfficePayrollRecordResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return payroll.OfficePayrollRecordResponse{}, apperror.WrapUnexpected("get employee", err)
	}

	start, _ := time.Parse(payroll.DateLayout, req.PayPeriodStart)
	end, _ := time.Parse(payroll.DateLayout, req.PayPeriodEnd)

	record := payroll.OfficePayrollRecord{
		EmployeeID:     emp.ID,
		EmployeeName:   emp.FullName,
		EmployeeCode:   emp.EmployeeCode,
		Position:       emp.Position,
		PayPeriodStart: start,
		PayPeriodEnd:   end,
		DailyRate:      emp.DailyRate,
		HourlyRate:     emp.HourlyRate,
		WorkingDays:    req.WorkingDays,
		LateMinutes:    req.LateMinutes,
		OvertimeHours:  req.OvertimeHours,
		SSS:            req.SSS.Round(2),
		PhilHealth:     req.PhilHealth.Round(2),
		PagIBIG:        req.PagIBIG.Round(2),
		GBond:          req.GBond.Round(2),
		Others:         req.Others.Round(2),
		Status:         payroll.PayrollStatusPending,
	}
	record.PayBreakdown = calculateOffice(record)

	created, err := s.officeRepo.Create(ctx, record)
	if err != nil {
		return payroll.OfficePayrollRecordResponse{}, apperror.WrapUnexpected("create office payroll", err)
	}
	return mapOfficePayrollToResponse(created), nil
}

func (s *OfficePayrollServiceImpl) GetOfficePayroll(ctx context.Context, id string) (payroll.OfficePayrollRecordResponse, error) {
	if !validator.IsValidUUID(id) {
		return payroll.OfficePayrollRecordResponse{}, payroll.ErrOfficePayrollRecordNotFound
	}

	record, err := s.officeRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.OfficePayrollRecordResponse{}, apperror.WrapUnexpected("get office payroll", err)
	}
	return mapOfficePayrollToResponse(record), nil
}

func (s *OfficePayrollServiceImpl) ListOfficePayrolls(ctx context.Context, filter payroll.PayrollFilter) (payroll.ListOfficePayrollRecordResponse, error) {
	if err := filter.Validate(); err != nil {
		return payroll.ListOfficePayrollRecordResponse{}, err
	}

	records, total, err := s.officeRepo.List(ctx, filter)
	if err != nil {
		return payroll.ListOfficePayrollRecordResponse{}, apperror.Internal("list office payrolls", err)
	}

	data := make([]payroll.OfficePayrollRecordResponse, 0, len(records))
	for _, r := range records {
		data = append(data, mapOfficePayrollToResponse(r))
	}
	return payroll.ListOfficePayrollRecordResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *OfficePayrollServiceImpl) UpdateOfficePayroll(ctx context.Context, req payroll.UpdateOfficePayrollRequest) (payroll.OfficePayrollRecordResponse, error) {
	errs := validator.Collect(req.Validate())
	if errs.Has("id") {
		return payroll.OfficePayrollRecordResponse{}, errs
	}

	record, err := s.officeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return payroll.OfficePayrollRecordResponse{}, apperror.WrapUnexpected("get office payroll", err)
	}

	record.PayPeriodStart, record.PayPeriodEnd = payroll.MergePeriod(&errs, record.PayPeriodStart, record.PayPeriodEnd, req.PayPeriodStart, req.PayPeriodEnd)
	if err := errs.OrNil(); err != nil {
		return payroll.OfficePayrollRecordResponse{}, err
	}
	if req.WorkingDays != nil {
		record.WorkingDays = *req.WorkingDays
	}
	if req.LateMinutes != nil {
		record.LateMinutes = *req.LateMinutes
	}
	if req.OvertimeHours != nil {
		record.OvertimeHours = *req.OvertimeHours
	}
	mergeMoney(&record.SSS, req.SSS)
	mergeMoney(&record.PhilHealth, req.PhilHealth)
	mergeMoney(&record.PagIBIG, req.PagIBIG)
	mergeMoney(&record.GBond, req.GBond)
	mergeMoney(&record.Others, req.Others)

	record.PayBreakdown = calculateOffice(record)

	updated, err := s.officeRepo.Update(ctx, record)
	if err != nil {
		return payroll.OfficePayrollRecordResponse{}, apperror.WrapUnexpected("update office payroll", err)
	}
	return mapOfficePayrollToResponse(updated), nil
}

func (s *OfficePayrollServiceImpl) UpdateOfficePayrollStatus(ctx context.Context, req payroll.UpdateOfficeStatusRequest) (payroll.OfficePayrollRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.OfficePayrollRecordResponse{}, err
	}

	record, err := s.officeRepo.UpdateStatus(ctx, req.ID, payroll.PayrollStatus(req.Status))
	if err != nil {
		return payroll.OfficePayrollRecordResponse{}, apperror.WrapUnexpected("update office payroll status", err)
	}
	return mapOfficePayrollToResponse(record), nil
}

func (s *OfficePayrollServiceImpl) DeleteOfficePayroll(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return payroll.ErrOfficePayrollRecordNotFound
	}
	if err := s.officeRepo.Delete(ctx, id); err != nil {
		return apperror.WrapUnexpected("delete office payroll", err)
	}
	return nil
}

func mergeMoney(dst *decimal.Decimal, src *decimal.Decimal) {
	if src != nil {
		*dst = src.Round(2)
	}
}

func calculateOffice(r payroll.OfficePayrollRecord) payroll.PayBreakdown {
	return Calculate(CalculationInput{
		DailyRate:          r.DailyRate,
		HourlyRate:         r.HourlyRate,
		WorkingDays:        r.WorkingDays,
		OvertimeHours:      r.OvertimeHours,
		LateMinutes:        r.LateMinutes,
		OvertimeMultiplier: OfficeOvertimeMultiplier,
		Deductions:         []decimal.Decimal{r.SSS, r.PhilHealth, r.PagIBIG, r.GBond, r.Others},
	})
}

func mapOfficePayrollToResponse(r payroll.OfficePayrollRecord) payroll.OfficePayrollRecordResponse {
	return payroll.OfficePayrollRecordResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		EmployeeName:    r.EmployeeName,
		EmployeeCode:    r.EmployeeCode,
		Position:        r.Position,
		PayPeriodStart:  r.PayPeriodStart.Format(payroll.DateLayout),
		PayPeriodEnd:    r.PayPeriodEnd.Format(payroll.DateLayout),
		DailyRate:       r.DailyRate,
		HourlyRate:      r.HourlyRate,
		WorkingDays:     r.WorkingDays,
		LateMinutes:     r.LateMinutes,
		OvertimeHours:   r.OvertimeHours,
		SSS:             r.SSS,
		PhilHealth:      r.PhilHealth,
		PagIBIG:         r.PagIBIG,
		GBond:           r.GBond,
		Others:          r.Others,
		BasicSalary:     r.BasicSalary,
		OvertimePay:     r.OvertimePay,
		LateDeduction:   r.LateDeduction,
		GrossPay:        r.GrossPay,
		TotalDeductions: r.TotalDeductions,
		NetPay:          r.NetPay,
		Status:          string(r.Status),
		CreatedAt:       r.CreatedAt.Format(timestampLayout),
		UpdatedAt:       r.UpdatedAt.Format(timestampLayout),
	}
}
