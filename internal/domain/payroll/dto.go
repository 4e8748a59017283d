package payroll

import (
	"time"

	"github.com/cmlabs-hris/construction-backoffice-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

// NewAdvanceInput issues an emergency advance together with a payroll
// submission.
type NewAdvanceInput struct {
	PrincipalAmount decimal.Decimal `json:"principal_amount"`
	DeductionAmount decimal.Decimal `json:"deduction_amount"`
}

// ========== SITE PAYROLL DTOs ==========

// CreatePayrollRequest is a Site payroll submission. Totals are optional:
// when a weekly container is supplied the matching total is derived from it.
type CreatePayrollRequest struct {
	EmployeeID     string `json:"employee_id"`
	PayPeriodStart string `json:"pay_period_start"`
	PayPeriodEnd   string `json:"pay_period_end"`

	WorkingDays   *int             `json:"working_days,omitempty"`
	OvertimeHours *decimal.Decimal `json:"overtime_hours,omitempty"`
	LateMinutes   *int             `json:"late_minutes,omitempty"`

	DailyAttendance  *Week[bool]            `json:"daily_attendance,omitempty"`
	DailyOvertime    *Week[decimal.Decimal] `json:"daily_overtime,omitempty"`
	DailyLate        *Week[int]             `json:"daily_late,omitempty"`
	DailySiteAddress *Week[string]          `json:"daily_site_address,omitempty"`

	CashAdvance     decimal.Decimal `json:"cash_advance"`
	OthersDeduction decimal.Decimal `json:"others_deduction"`

	EmergencyAdvance *NewAdvanceInput `json:"emergency_advance,omitempty"`
}

func (r *CreatePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "is required")
	} else if !validator.IsValidUUID(r.EmployeeID) {
		errs.Add("employee_id", "must be a valid UUID")
	}
	validatePeriod(&errs, r.PayPeriodStart, r.PayPeriodEnd)
	validateTotals(&errs, r.WorkingDays, r.OvertimeHours, r.LateMinutes)
	validateWeeks(&errs, r.DailyOvertime, r.DailyLate)

	if r.CashAdvance.IsNegative() {
		errs.Add("cash_advance", "must be non-negative")
	}
	if r.OthersDeduction.IsNegative() {
		errs.Add("others_deduction", "must be non-negative")
	}
	if r.EmergencyAdvance != nil {
		if !r.EmergencyAdvance.PrincipalAmount.IsPositive() {
			errs.Add("emergency_advance.principal_amount", "must be greater than zero")
		}
		if r.EmergencyAdvance.DeductionAmount.IsNegative() {
			errs.Add("emergency_advance.deduction_amount", "must be non-negative")
		}
	}

	return errs.OrNil()
}

// UpdatePayrollRequest is a partial update; nil fields keep their stored
// value.
type UpdatePayrollRequest struct {
	ID             string  `json:"-"`
	PayPeriodStart *string `json:"pay_period_start,omitempty"`
	PayPeriodEnd   *string `json:"pay_period_end,omitempty"`

	WorkingDays   *int             `json:"working_days,omitempty"`
	OvertimeHours *decimal.Decimal `json:"overtime_hours,omitempty"`
	LateMinutes   *int             `json:"late_minutes,omitempty"`

	DailyAttendance  *Week[bool]            `json:"daily_attendance,omitempty"`
	DailyOvertime    *Week[decimal.Decimal] `json:"daily_overtime,omitempty"`
	DailyLate        *Week[int]             `json:"daily_late,omitempty"`
	DailySiteAddress *Week[string]          `json:"daily_site_address,omitempty"`

	CashAdvance     *decimal.Decimal `json:"cash_advance,omitempty"`
	OthersDeduction *decimal.Decimal `json:"others_deduction,omitempty"`
}

func (r *UpdatePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "must be a valid UUID")
	}
	if r.PayPeriodStart != nil && !isDate(*r.PayPeriodStart) {
		errs.Add("pay_period_start", "must be in YYYY-MM-DD format")
	}
	if r.PayPeriodEnd != nil && !isDate(*r.PayPeriodEnd) {
		errs.Add("pay_period_end", "must be in YYYY-MM-DD format")
	}
	validateTotals(&errs, r.WorkingDays, r.OvertimeHours, r.LateMinutes)
	validateWeeks(&errs, r.DailyOvertime, r.DailyLate)

	if r.CashAdvance != nil && r.CashAdvance.IsNegative() {
		errs.Add("cash_advance", "must be non-negative")
	}
	if r.OthersDeduction != nil && r.OthersDeduction.IsNegative() {
		errs.Add("others_deduction", "must be non-negative")
	}

	return errs.OrNil()
}

// NeedsRecalculation reports whether any calculator input is present.
// Period and site address edits alone never move money.
func (r *UpdatePayrollRequest) NeedsRecalculation() bool {
	return r.WorkingDays != nil || r.OvertimeHours != nil || r.LateMinutes != nil ||
		r.CashAdvance != nil || r.OthersDeduction != nil ||
		r.DailyAttendance != nil || r.DailyOvertime != nil || r.DailyLate != nil
}

type UpdateStatusRequest struct {
	ID     string `json:"-"`
	Status string `json:"status"`
}

func (r *UpdateStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "must be a valid UUID")
	}
	if !PayrollStatus(r.Status).IsValidSite() {
		errs.Add("status", "must be one of Pending, Processing, Paid, On Hold")
	}

	return errs.OrNil()
}

type PayrollRecordResponse struct {
	ID             string `json:"id"`
	EmployeeID     string `json:"employee_id"`
	EmployeeName   string `json:"employee_name"`
	EmployeeCode   string `json:"employee_code"`
	EmployeeGroup  string `json:"employee_group"`
	Position       string `json:"position"`
	PayPeriodStart string `json:"pay_period_start"`
	PayPeriodEnd   string `json:"pay_period_end"`

	DailyRate     decimal.Decimal `json:"daily_rate"`
	HourlyRate    decimal.Decimal `json:"hourly_rate"`
	WorkingDays   int             `json:"working_days"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	LateMinutes   int             `json:"late_minutes"`

	DailyAttendance  Week[bool]            `json:"daily_attendance"`
	DailyOvertime    Week[decimal.Decimal] `json:"daily_overtime"`
	DailyLate        Week[int]             `json:"daily_late"`
	DailySiteAddress Week[string]          `json:"daily_site_address"`

	BasicSalary     decimal.Decimal `json:"basic_salary"`
	OvertimePay     decimal.Decimal `json:"overtime_pay"`
	LateDeduction   decimal.Decimal `json:"late_deduction"`
	GrossPay        decimal.Decimal `json:"gross_pay"`
	CashAdvance     decimal.Decimal `json:"cash_advance"`
	OthersDeduction decimal.Decimal `json:"others_deduction"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetPay          decimal.Decimal `json:"net_pay"`

	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type PayrollFilter struct {
	Status     *string `json:"status,omitempty"`
	EmployeeID *string `json:"employee_id,omitempty"`
	PeriodFrom *string `json:"period_from,omitempty"`
	PeriodTo   *string `json:"period_to,omitempty"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	SortBy     string  `json:"sort_by"`
	SortOrder  string  `json:"sort_order"`
}

var payrollSortColumns = []string{"pay_period_start", "employee_name", "net_pay", "created_at"}

// Validate also fills paging and sort defaults.
func (f *PayrollFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.EmployeeID != nil && !validator.IsValidUUID(*f.EmployeeID) {
		errs.Add("employee_id", "must be a valid UUID")
	}
	if f.PeriodFrom != nil && !isDate(*f.PeriodFrom) {
		errs.Add("period_from", "must be in YYYY-MM-DD format")
	}
	if f.PeriodTo != nil && !isDate(*f.PeriodTo) {
		errs.Add("period_to", "must be in YYYY-MM-DD format")
	}
	if f.SortBy != "" && !validator.IsInSlice(f.SortBy, payrollSortColumns) {
		errs.Add("sort_by", "is not a sortable column")
	}
	if f.SortOrder != "" && f.SortOrder != "asc" && f.SortOrder != "desc" {
		errs.Add("sort_order", "must be 'asc' or 'desc'")
	}

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	if f.SortBy == "" {
		f.SortBy = "pay_period_start"
	}
	if f.SortOrder == "" {
		f.SortOrder = "desc"
	}

	return errs.OrNil()
}

type ListPayrollRecordResponse struct {
	Data       []PayrollRecordResponse `json:"data"`
	TotalCount int64                   `json:"total_count"`
	Page       int                     `json:"page"`
	Limit      int                     `json:"limit"`
}

// ========== OFFICE PAYROLL DTOs ==========

type CreateOfficePayrollRequest struct {
	EmployeeID     string `json:"employee_id"`
	PayPeriodStart string `json:"pay_period_start"`
	PayPeriodEnd   string `json:"pay_period_end"`

	WorkingDays   int             `json:"working_days"`
	LateMinutes   int             `json:"late_minutes"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`

	SSS        decimal.Decimal `json:"sss"`
	PhilHealth decimal.Decimal `json:"philhealth"`
	PagIBIG    decimal.Decimal `json:"pagibig"`
	GBond      decimal.Decimal `json:"gbond"`
	Others     decimal.Decimal `json:"others"`
}

func (r *CreateOfficePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "is required")
	} else if !validator.IsValidUUID(r.EmployeeID) {
		errs.Add("employee_id", "must be a valid UUID")
	}
	validatePeriod(&errs, r.PayPeriodStart, r.PayPeriodEnd)
	validateTotals(&errs, &r.WorkingDays, &r.OvertimeHours, &r.LateMinutes)
	validateStatutory(&errs, map[string]*decimal.Decimal{
		"sss": &r.SSS, "philhealth": &r.PhilHealth, "pagibig": &r.PagIBIG, "gbond": &r.GBond, "others": &r.Others,
	})

	return errs.OrNil()
}

type UpdateOfficePayrollRequest struct {
	ID             string  `json:"-"`
	PayPeriodStart *string `json:"pay_period_start,omitempty"`
	PayPeriodEnd   *string `json:"pay_period_end,omitempty"`

	WorkingDays   *int             `json:"working_days,omitempty"`
	LateMinutes   *int             `json:"late_minutes,omitempty"`
	OvertimeHours *decimal.Decimal `json:"overtime_hours,omitempty"`

	SSS        *decimal.Decimal `json:"sss,omitempty"`
	PhilHealth *decimal.Decimal `json:"philhealth,omitempty"`
	PagIBIG    *decimal.Decimal `json:"pagibig,omitempty"`
	GBond      *decimal.Decimal `json:"gbond,omitempty"`
	Others     *decimal.Decimal `json:"others,omitempty"`
}

func (r *UpdateOfficePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "must be a valid UUID")
	}
	if r.PayPeriodStart != nil && !isDate(*r.PayPeriodStart) {
		errs.Add("pay_period_start", "must be in YYYY-MM-DD format")
	}
	if r.PayPeriodEnd != nil && !isDate(*r.PayPeriodEnd) {
		errs.Add("pay_period_end", "must be in YYYY-MM-DD format")
	}
	validateTotals(&errs, r.WorkingDays, r.OvertimeHours, r.LateMinutes)
	validateStatutory(&errs, map[string]*decimal.Decimal{
		"sss": r.SSS, "philhealth": r.PhilHealth, "pagibig": r.PagIBIG, "gbond": r.GBond, "others": r.Others,
	})

	return errs.OrNil()
}

type UpdateOfficeStatusRequest struct {
	ID     string `json:"-"`
	Status string `json:"status"`
}

func (r *UpdateOfficeStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "must be a valid UUID")
	}
	if !PayrollStatus(r.Status).IsValidOffice() {
		errs.Add("status", "must be one of Pending, Processing, Paid, On Hold, Released")
	}

	return errs.OrNil()
}

type OfficePayrollRecordResponse struct {
	ID             string `json:"id"`
	EmployeeID     string `json:"employee_id"`
	EmployeeName   string `json:"employee_name"`
	EmployeeCode   string `json:"employee_code"`
	Position       string `json:"position"`
	PayPeriodStart string `json:"pay_period_start"`
	PayPeriodEnd   string `json:"pay_period_end"`

	DailyRate     decimal.Decimal `json:"daily_rate"`
	HourlyRate    decimal.Decimal `json:"hourly_rate"`
	WorkingDays   int             `json:"working_days"`
	LateMinutes   int             `json:"late_minutes"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`

	SSS        decimal.Decimal `json:"sss"`
	PhilHealth decimal.Decimal `json:"philhealth"`
	PagIBIG    decimal.Decimal `json:"pagibig"`
	GBond      decimal.Decimal `json:"gbond"`
	Others     decimal.Decimal `json:"others"`

	BasicSalary     decimal.Decimal `json:"basic_salary"`
	OvertimePay     decimal.Decimal `json:"overtime_pay"`
	LateDeduction   decimal.Decimal `json:"late_deduction"`
	GrossPay        decimal.Decimal `json:"gross_pay"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetPay          decimal.Decimal `json:"net_pay"`

	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type ListOfficePayrollRecordResponse struct {
	Data       []OfficePayrollRecordResponse `json:"data"`
	TotalCount int64                         `json:"total_count"`
	Page       int                           `json:"page"`
	Limit      int                           `json:"limit"`
}

// ========== VALIDATION HELPERS ==========

func validatePeriod(errs *validator.ValidationErrors, start, end string) {
	var s, e time.Time
	startOK, endOK := false, false
	if validator.IsEmpty(start) {
		errs.Add("pay_period_start", "is required")
	} else if s, startOK = validator.IsValidDate(start); !startOK {
		errs.Add("pay_period_start", "must be in YYYY-MM-DD format")
	}
	if validator.IsEmpty(end) {
		errs.Add("pay_period_end", "is required")
	} else if e, endOK = validator.IsValidDate(end); !endOK {
		errs.Add("pay_period_end", "must be in YYYY-MM-DD format")
	}
	if startOK && endOK && e.Before(s) {
		errs.Add("pay_period_end", "must not be before pay_period_start")
	}
}

// MergePeriod applies optional period edits to a stored period and reports an
// inverted result. Dates Validate already rejected leave the stored value in
// place and are not reported twice.
func MergePeriod(errs *validator.ValidationErrors, start, end time.Time, newStart, newEnd *string) (time.Time, time.Time) {
	if newStart != nil {
		if t, ok := validator.IsValidDate(*newStart); ok {
			start = t
		}
	}
	if newEnd != nil {
		if t, ok := validator.IsValidDate(*newEnd); ok {
			end = t
		}
	}
	if end.Before(start) && !errs.Has("pay_period_start") && !errs.Has("pay_period_end") {
		errs.Add("pay_period_end", "must not be before pay_period_start")
	}
	return start, end
}

func isDate(s string) bool {
	_, ok := validator.IsValidDate(s)
	return ok
}

func validateTotals(errs *validator.ValidationErrors, workingDays *int, overtimeHours *decimal.Decimal, lateMinutes *int) {
	if workingDays != nil && *workingDays < 0 {
		errs.Add("working_days", "must be non-negative")
	}
	if overtimeHours != nil && overtimeHours.IsNegative() {
		errs.Add("overtime_hours", "must be non-negative")
	}
	if lateMinutes != nil && *lateMinutes < 0 {
		errs.Add("late_minutes", "must be non-negative")
	}
}

func validateWeeks(errs *validator.ValidationErrors, overtime *Week[decimal.Decimal], late *Week[int]) {
	if overtime != nil {
		for i, h := range overtime {
			if h.IsNegative() {
				errs.Add("daily_overtime."+Weekday(i).String(), "must be non-negative")
			}
		}
	}
	if late != nil {
		for i, m := range late {
			if m < 0 {
				errs.Add("daily_late."+Weekday(i).String(), "must be non-negative")
			}
		}
	}
}

func validateStatutory(errs *validator.ValidationErrors, fields map[string]*decimal.Decimal) {
	for _, name := range []string{"sss", "philhealth", "pagibig", "gbond", "others"} {
		if v := fields[name]; v != nil && v.IsNegative() {
			errs.Add(name, "must be non-negative")
		}
	}
}
