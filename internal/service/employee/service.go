package employee

import (
	"context"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/construction-backoffice-go/internal/domain/employee"
	"github.com/cmlabs-hris/construction-backoffice-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/construction-backoffice-go/internal/pkg/validator"
)

const timestampLayout = "2006-01-02 15:04:05"

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
	}
}

// Helper function to map Employee to EmployeeResponse
func mapEmployeeToResponse(emp employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:           emp.ID,
		EmployeeCode: emp.EmployeeCode,
		FullName:     emp.FullName,
		Position:     emp.Position,
		Group:        emp.Group,
		Status:       string(emp.Status),
		DailyRate:    emp.DailyRate,
		HourlyRate:   emp.HourlyRate,
		CreatedAt:    emp.CreatedAt.Format(timestampLayout),
		UpdatedAt:    emp.UpdatedAt.Format(timestampLayout),
	}
}

func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	newEmployee := employee.Employee{
		EmployeeCode: strings.TrimSpace(req.EmployeeCode),
		FullName:     strings.TrimSpace(req.FullName),
		Position:     strings.TrimSpace(req.Position),
		Group:        strings.TrimSpace(req.Group),
		Status:       employee.Status(req.Status),
		DailyRate:    req.DailyRate.Round(2),
		HourlyRate:   employee.HourlyRateFor(req.DailyRate.Round(2)),
	}

	created, err := s.employeeRepo.Create(ctx, newEmployee)
	if err != nil {
		return employee.EmployeeResponse{}, apperror.WrapUnexpected("create employee", err)
	}

	slog.Info("Employee created", "employee_id", created.ID, "employee_code", created.EmployeeCode, "status", created.Status)
	return mapEmployeeToResponse(created), nil
}

func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	if !validator.IsValidUUID(id) {
		return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
	}

	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, apperror.WrapUnexpected("get employee", err)
	}
	return mapEmployeeToResponse(emp), nil
}

func (s *EmployeeServiceImpl) GetEmployeesByStatus(ctx context.Context, status string) ([]employee.EmployeeSummary, error) {
	if !employee.Status(status).IsValid() {
		return nil, validator.ValidationErrors{{Field: "status", Message: "must be 'Site' or 'Office'"}}
	}

	employees, err := s.employeeRepo.ListByStatus(ctx, employee.Status(status))
	if err != nil {
		return nil, apperror.Internal("list employees", err)
	}

	summaries := make([]employee.EmployeeSummary, 0, len(employees))
	for _, emp := range employees {
		summaries = append(summaries, employee.EmployeeSummary{
			ID:           emp.ID,
			EmployeeCode: emp.EmployeeCode,
			FullName:     emp.FullName,
			Position:     emp.Position,
			Group:        emp.Group,
			Status:       string(emp.Status),
			DailyRate:    emp.DailyRate,
			HourlyRate:   emp.HourlyRate,
		})
	}
	return summaries, nil
}

func (s *EmployeeServiceImpl) RecalculateRates(ctx context.Context, req employee.RecalculateRatesRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	daily := req.DailyRate.Round(2)
	updated, err := s.employeeRepo.UpdateRates(ctx, req.ID, daily, employee.HourlyRateFor(daily))
	if err != nil {
		return employee.EmployeeResponse{}, apperror.WrapUnexpected("recalculate rates", err)
	}

	slog.Info("Employee rates recalculated", "employee_id", updated.ID, "daily_rate", updated.DailyRate.StringFixed(2), "hourly_rate", updated.HourlyRate.StringFixed(2))
	return mapEmployeeToResponse(updated), nil
}
