package servicetest

import (
	"cmp"
	"context"
	"slices"

	"github.com/cmlabs-hris/construction-backoffice-go/internal/domain/advance"
	"github.com/cmlabs-hris/construction-backoffice-go/internal/domain/employee"
	"github.com/cmlabs-hris/construction-backoffice-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// ========== EMPLOYEES ==========

type employeeRepo struct{ s *Store }

func (r employeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("employee.GetByID"); err != nil {
		return employee.Employee{}, err
	}
	e, ok := r.s.data.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r employeeRepo) ListByStatus(ctx context.Context, status employee.Status) ([]employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []employee.Employee
	for _, e := range r.s.data.employees {
		if e.Status == status {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, func(a, b employee.Employee) int { return cmp.Compare(a.FullName, b.FullName) })
	return out, nil
}

func (r employeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("employee.Create"); err != nil {
		return employee.Employee{}, err
	}
	for _, existing := range r.s.data.employees {
		if existing.EmployeeCode == e.EmployeeCode {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
	}
	e.ID = newID()
	e.CreatedAt = r.s.now()
	e.UpdatedAt = e.CreatedAt
	r.s.data.employees[e.ID] = e
	return e, nil
}

func (r employeeRepo) UpdateRates(ctx context.Context, id string, dailyRate, hourlyRate decimal.Decimal) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.data.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	e.DailyRate = dailyRate
	e.HourlyRate = hourlyRate
	e.UpdatedAt = r.s.now()
	r.s.data.employees[id] = e
	return e, nil
}

func (r employeeRepo) LockForUpdate(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.Locks = append(r.s.Locks, id)
	return nil
}

// ========== ADVANCES ==========

type advanceRepo struct{ s *Store }

func (r advanceRepo) GetActiveAdvance(ctx context.Context, employeeID string) (advance.EmergencyCashAdvance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, eca := range r.s.data.advances {
		if eca.EmployeeID == employeeID && eca.Status == advance.StatusActive {
			return eca, nil
		}
	}
	return advance.EmergencyCashAdvance{}, advance.ErrAdvanceNotFound
}

func (r advanceRepo) GetActiveDeduction(ctx context.Context, employeeID string) (advance.EmergencyDeduction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, ed := range r.s.data.deductions {
		if ed.EmployeeID == employeeID && ed.Status == advance.StatusActive {
			return ed, nil
		}
	}
	return advance.EmergencyDeduction{}, advance.ErrDeductionNotFound
}

func (r advanceRepo) ListAdvancesByEmployee(ctx context.Context, employeeID string) ([]advance.EmergencyCashAdvance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []advance.EmergencyCashAdvance
	for _, eca := range r.s.data.advances {
		if eca.EmployeeID == employeeID {
			out = append(out, eca)
		}
	}
	slices.SortFunc(out, func(a, b advance.EmergencyCashAdvance) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out, nil
}

func (r advanceRepo) CreateAdvance(ctx context.Context, eca advance.EmergencyCashAdvance) (advance.EmergencyCashAdvance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("advance.CreateAdvance"); err != nil {
		return advance.EmergencyCashAdvance{}, err
	}
	eca.ID = newID()
	eca.CreatedAt = r.s.now()
	eca.UpdatedAt = eca.CreatedAt
	r.s.data.advances[eca.ID] = eca
	return eca, nil
}

func (r advanceRepo) CreateDeduction(ctx context.Context, ed advance.EmergencyDeduction) (advance.EmergencyDeduction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("advance.CreateDeduction"); err != nil {
		return advance.EmergencyDeduction{}, err
	}
	ed.ID = newID()
	ed.CreatedAt = r.s.now()
	ed.UpdatedAt = ed.CreatedAt
	r.s.data.deductions[ed.ID] = ed
	return ed, nil
}

func (r advanceRepo) UpdateAdvanceBalance(ctx context.Context, id string, balance decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("advance.UpdateAdvanceBalance"); err != nil {
		return err
	}
	eca, ok := r.s.data.advances[id]
	if !ok || eca.Status != advance.StatusActive {
		return advance.ErrAdvanceNotFound
	}
	eca.RemainingBalance = balance
	eca.UpdatedAt = r.s.now()
	r.s.data.advances[id] = eca
	return nil
}

func (r advanceRepo) CompleteAdvance(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	eca, ok := r.s.data.advances[id]
	if !ok || eca.Status != advance.StatusActive {
		return advance.ErrAdvanceNotFound
	}
	now := r.s.now()
	eca.RemainingBalance = decimal.Zero
	eca.Status = advance.StatusCompleted
	eca.UpdatedAt = now
	eca.CompletedAt = &now
	r.s.data.advances[id] = eca
	return nil
}

func (r advanceRepo) CompleteActiveDeduction(ctx context.Context, employeeID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, ed := range r.s.data.deductions {
		if ed.EmployeeID == employeeID && ed.Status == advance.StatusActive {
			now := r.s.now()
			ed.Status = advance.StatusCompleted
			ed.UpdatedAt = now
			ed.CompletedAt = &now
			r.s.data.deductions[id] = ed
		}
	}
	return nil
}

// ========== PAYROLLS ==========

type payrollRepo struct{ s *Store }

func (r payrollRepo) Create(ctx context.Context, rec payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("payroll.Create"); err != nil {
		return payroll.PayrollRecord{}, err
	}
	rec.ID = newID()
	rec.CreatedAt = r.s.now()
	rec.UpdatedAt = rec.CreatedAt
	r.s.data.payrolls[rec.ID] = rec
	return rec, nil
}

func (r payrollRepo) GetByID(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.data.payrolls[id]
	if !ok {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	return rec, nil
}

func (r payrollRepo) GetByIDForUpdate(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	rec, err := r.GetByID(ctx, id)
	if err != nil {
		return rec, err
	}
	r.s.mu.Lock()
	r.s.RowLocks = append(r.s.RowLocks, id)
	r.s.mu.Unlock()
	return rec, nil
}

func (r payrollRepo) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []payroll.PayrollRecord
	for _, rec := range r.s.data.payrolls {
		if matches(filter, rec.EmployeeID, string(rec.Status), rec.PayPeriodStart.Format(payroll.DateLayout)) {
			all = append(all, rec)
		}
	}
	slices.SortFunc(all, func(a, b payroll.PayrollRecord) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return page(all, filter), int64(len(all)), nil
}

func (r payrollRepo) Update(ctx context.Context, rec payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("payroll.Update"); err != nil {
		return payroll.PayrollRecord{}, err
	}
	if _, ok := r.s.data.payrolls[rec.ID]; !ok {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	rec.UpdatedAt = r.s.now()
	r.s.data.payrolls[rec.ID] = rec
	return rec, nil
}

func (r payrollRepo) UpdateStatus(ctx context.Context, id string, status payroll.PayrollStatus) (payroll.PayrollRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.data.payrolls[id]
	if !ok {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	rec.Status = status
	rec.UpdatedAt = r.s.now()
	r.s.data.payrolls[id] = rec
	return rec, nil
}

func (r payrollRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.payrolls[id]; !ok {
		return payroll.ErrPayrollRecordNotFound
	}
	delete(r.s.data.payrolls, id)
	return nil
}

// ========== OFFICE PAYROLLS ==========

type officePayrollRepo struct{ s *Store }

func (r officePayrollRepo) Create(ctx context.Context, rec payroll.OfficePayrollRecord) (payroll.OfficePayrollRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("office.Create"); err != nil {
		return payroll.OfficePayrollRecord{}, err
	}
	rec.ID = newID()
	rec.CreatedAt = r.s.now()
	rec.UpdatedAt = rec.CreatedAt
	r.s.data.officePayrolls[rec.ID] = rec
	return rec, nil
}

func (r officePayrollRepo) GetByID(ctx context.Context, id string) (payroll.OfficePayrollRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.data.officePayrolls[id]
	if !ok {
		return payroll.OfficePayrollRecord{}, payroll.ErrOfficePayrollRecordNotFound
	}
	return rec, nil
}

func (r officePayrollRepo) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.OfficePayrollRecord, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []payroll.OfficePayrollRecord
	for _, rec := range r.s.data.officePayrolls {
		if matches(filter, rec.EmployeeID, string(rec.Status), rec.PayPeriodStart.Format(payroll.DateLayout)) {
			all = append(all, rec)
		}
	}
	slices.SortFunc(all, func(a, b payroll.OfficePayrollRecord) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return page(all, filter), int64(len(all)), nil
}

func (r officePayrollRepo) Update(ctx context.Context, rec payroll.OfficePayrollRecord) (payroll.OfficePayrollRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.officePayrolls[rec.ID]; !ok {
		return payroll.OfficePayrollRecord{}, payroll.ErrOfficePayrollRecordNotFound
	}
	rec.UpdatedAt = r.s.now()
	r.s.data.officePayrolls[rec.ID] = rec
	return rec, nil
}

func (r officePayrollRepo) UpdateStatus(ctx context.Context, id string, status payroll.PayrollStatus) (payroll.OfficePayrollRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.data.officePayrolls[id]
	if !ok {
		return payroll.OfficePayrollRecord{}, payroll.ErrOfficePayrollRecordNotFound
	}
	rec.Status = status
	rec.UpdatedAt = r.s.now()
	r.s.data.officePayrolls[id] = rec
	return rec, nil
}

func (r officePayrollRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.officePayrolls[id]; !ok {
		return payroll.ErrOfficePayrollRecordNotFound
	}
	delete(r.s.data.officePayrolls, id)
	return nil
}

func matches(f payroll.PayrollFilter, employeeID, status, periodStart string) bool {
	if f.EmployeeID != nil && *f.EmployeeID != employeeID {
		return false
	}
	if f.Status != nil && *f.Status != status {
		return false
	}
	if f.PeriodFrom != nil && periodStart < *f.PeriodFrom {
		return false
	}
	if f.PeriodTo != nil && periodStart > *f.PeriodTo {
		return false
	}
	return true
}

func page[T any](all []T, f payroll.PayrollFilter) []T {
	if f.Limit <= 0 {
		return all
	}
	start := (max(f.Page, 1) - 1) * f.Limit
	if start >= len(all) {
		return []T{}
	}
	return all[start:min(start+f.Limit, len(all))]
}
