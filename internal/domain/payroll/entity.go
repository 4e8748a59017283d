package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollStatus enum
type PayrollStatus string

const (
	PayrollStatusPending    PayrollStatus = "Pending"
	PayrollStatusProcessing PayrollStatus = "Processing"
	PayrollStatusPaid       PayrollStatus = "Paid"
	PayrollStatusOnHold     PayrollStatus = "On Hold"
	// Released exists only on office payroll.
	PayrollStatusReleased PayrollStatus = "Released"
)

var sitePayrollStatuses = []PayrollStatus{
	PayrollStatusPending, PayrollStatusProcessing, PayrollStatusPaid, PayrollStatusOnHold,
}

var officePayrollStatuses = []PayrollStatus{
	PayrollStatusPending, PayrollStatusProcessing, PayrollStatusPaid, PayrollStatusOnHold, PayrollStatusReleased,
}

func (s PayrollStatus) IsValidSite() bool {
	for _, v := range sitePayrollStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func (s PayrollStatus) IsValidOffice() bool {
	for _, v := range officePayrollStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// PayBreakdown is the calculator output stored on every payroll row. All
// values are already rounded to two decimals.
type PayBreakdown struct {
	BasicSalary     decimal.Decimal
	OvertimePay     decimal.Decimal
	LateDeduction   decimal.Decimal
	GrossPay        decimal.Decimal
	TotalDeductions decimal.Decimal
	NetPay          decimal.Decimal
}

// PayrollRecord - Site payroll, one employee and one pay period.
// Employee fields and rates are copied at creation so history does not
// move when the employee record changes.
type PayrollRecord struct {
	ID             string
	EmployeeID     string
	EmployeeName   string
	EmployeeCode   string
	EmployeeGroup  string
	Position       string
	PayPeriodStart time.Time
	PayPeriodEnd   time.Time
	DailyRate      decimal.Decimal
	HourlyRate     decimal.Decimal

	WorkingDays   int
	OvertimeHours decimal.Decimal
	LateMinutes   int

	DailyAttendance  Week[bool]
	DailyOvertime    Week[decimal.Decimal]
	DailyLate        Week[int]
	DailySiteAddress Week[string]

	PayBreakdown

	CashAdvance     decimal.Decimal
	OthersDeduction decimal.Decimal
	Status          PayrollStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OfficePayrollRecord - biweekly office payroll, aggregate totals only.
// Statutory deductions are flat inputs.
type OfficePayrollRecord struct {
	ID             string
	EmployeeID     string
	EmployeeName   string
	EmployeeCode   string
	Position       string
	PayPeriodStart time.Time
	PayPeriodEnd   time.Time
	DailyRate      decimal.Decimal
	HourlyRate     decimal.Decimal

	WorkingDays   int
	LateMinutes   int
	OvertimeHours decimal.Decimal

	SSS        decimal.Decimal
	PhilHealth decimal.Decimal
	PagIBIG    decimal.Decimal
	GBond      decimal.Decimal
	Others     decimal.Decimal

	PayBreakdown

	Status    PayrollStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
