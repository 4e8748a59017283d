package payroll

import (
	"github.com/cmlabs-hris/construction-backoffice-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// Overtime multipliers of the two payroll flavours. They differ on purpose
// and must not be merged.
var (
	SiteOvertimeMultiplier   = decimal.NewFromInt(1)
	OfficeOvertimeMultiplier = decimal.RequireFromString("1.25")
)

const moneyPlaces = 2

var minutesPerHour = decimal.NewFromInt(60)

// CalculationInput feeds Calculate. Deductions are flat amounts added to
// total deductions as given (cash advance and others for Site payroll,
// statutory items for Office payroll).
type CalculationInput struct {
	DailyRate          decimal.Decimal
	HourlyRate         decimal.Decimal
	WorkingDays        int
	OvertimeHours      decimal.Decimal
	LateMinutes        int
	OvertimeMultiplier decimal.Decimal
	Deductions         []decimal.Decimal
}

// Calculate turns attendance totals and rates into a pay breakdown. Each
// figure is rounded half-up to two places as it is produced, and later
// figures are built from the rounded ones.
func Calculate(in CalculationInput) payroll.PayBreakdown {
	basic := in.DailyRate.Mul(decimal.NewFromInt(int64(in.WorkingDays))).Round(moneyPlaces)
	overtime := in.HourlyRate.Mul(in.OvertimeMultiplier).Mul(in.OvertimeHours).Round(moneyPlaces)
	late := in.HourlyRate.Mul(decimal.NewFromInt(int64(in.LateMinutes))).Div(minutesPerHour).Round(moneyPlaces)
	gross := basic.Add(overtime).Round(moneyPlaces)

	deductions := late
	for _, d := range in.Deductions {
		deductions = deductions.Add(d)
	}
	deductions = deductions.Round(moneyPlaces)

	return payroll.PayBreakdown{
		BasicSalary:     basic,
		OvertimePay:     overtime,
		LateDeduction:   late,
		GrossPay:        gross,
		TotalDeductions: deductions,
		NetPay:          gross.Sub(deductions).Round(moneyPlaces),
	}
}

// siteTotals resolves the Site calculator totals. A supplied weekly
// container wins over the matching direct total.
type siteTotals struct {
	WorkingDays   int
	OvertimeHours decimal.Decimal
	LateMinutes   int
}

func (t *siteTotals) apply(
	workingDays *int, overtimeHours *decimal.Decimal, lateMinutes *int,
	attendance *payroll.Week[bool], overtime *payroll.Week[decimal.Decimal], late *payroll.Week[int],
) {
	switch {
	case attendance != nil:
		t.WorkingDays = payroll.DaysPresent(*attendance)
	case workingDays != nil:
		t.WorkingDays = *workingDays
	}
	switch {
	case overtime != nil:
		t.OvertimeHours = payroll.TotalHours(*overtime)
	case overtimeHours != nil:
		t.OvertimeHours = *overtimeHours
	}
	switch {
	case late != nil:
		t.LateMinutes = payroll.TotalMinutes(*late)
	case lateMinutes != nil:
		t.LateMinutes = *lateMinutes
	}
}
