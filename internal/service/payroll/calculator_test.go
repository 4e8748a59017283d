package payroll

import (
	"testing"

	"github.com/cmlabs-hris/construction-backoffice-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertMoney(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.Truef(t, got.Equal(dec(want)), "%s: want %s, got %s", field, want, got.String())
}

func TestCalculate_SiteScenario(t *testing.T) {
	got := Calculate(CalculationInput{
		DailyRate:          dec("1000"),
		HourlyRate:         dec("125"),
		WorkingDays:        10,
		OvertimeHours:      dec("4"),
		LateMinutes:        30,
		OvertimeMultiplier: SiteOvertimeMultiplier,
		Deductions:         []decimal.Decimal{decimal.Zero, decimal.Zero},
	})

	assertMoney(t, "10000.00", got.BasicSalary, "basic_salary")
	assertMoney(t, "500.00", got.OvertimePay, "overtime_pay")
	assertMoney(t, "62.50", got.LateDeduction, "late_deduction")
	assertMoney(t, "10500.00", got.GrossPay, "gross_pay")
	assertMoney(t, "62.50", got.TotalDeductions, "total_deductions")
	assertMoney(t, "10437.50", got.NetPay, "net_pay")
}

func TestCalculate_OvertimeMultipliersStayDistinct(t *testing.T) {
	assert.True(t, SiteOvertimeMultiplier.Equal(dec("1.0")))
	assert.True(t, OfficeOvertimeMultiplier.Equal(dec("1.25")))

	in := CalculationInput{HourlyRate: dec("100"), OvertimeHours: dec("2")}

	in.OvertimeMultiplier = SiteOvertimeMultiplier
	assertMoney(t, "200.00", Calculate(in).OvertimePay, "site overtime_pay")

	in.OvertimeMultiplier = OfficeOvertimeMultiplier
	assertMoney(t, "250.00", Calculate(in).OvertimePay, "office overtime_pay")
}

func TestCalculate_BasicSalaryIsRateTimesDays(t *testing.T) {
	cases := []struct {
		rate string
		days int
		want string
	}{
		{"0", 6, "0.00"},
		{"537.25", 0, "0.00"},
		{"537.25", 6, "3223.50"},
		{"612.345", 3, "1837.04"},
		{"999.99", 13, "12999.87"},
	}
	for _, tc := range cases {
		got := Calculate(CalculationInput{DailyRate: dec(tc.rate), WorkingDays: tc.days, OvertimeMultiplier: SiteOvertimeMultiplier})
		assertMoney(t, tc.want, got.BasicSalary, tc.rate)
	}
}

func TestCalculate_RoundsHalfUp(t *testing.T) {
	// 70.25 * 7 / 60 = 8.195833..
	got := Calculate(CalculationInput{HourlyRate: dec("70.25"), LateMinutes: 7, OvertimeMultiplier: SiteOvertimeMultiplier})
	assertMoney(t, "8.20", got.LateDeduction, "late_deduction")

	// 0.125 * 1 * 1 = 0.125 rounds to 0.13
	got = Calculate(CalculationInput{HourlyRate: dec("0.125"), OvertimeHours: dec("1"), OvertimeMultiplier: SiteOvertimeMultiplier})
	assertMoney(t, "0.13", got.OvertimePay, "overtime_pay")
}

func TestCalculate_NetPayCanGoNegative(t *testing.T) {
	got := Calculate(CalculationInput{
		DailyRate:          dec("500"),
		HourlyRate:         dec("62.5"),
		WorkingDays:        1,
		OvertimeMultiplier: SiteOvertimeMultiplier,
		Deductions:         []decimal.Decimal{dec("800")},
	})

	assertMoney(t, "800.00", got.TotalDeductions, "total_deductions")
	assertMoney(t, "-300.00", got.NetPay, "net_pay")
}

func TestCalculate_OfficeItemisedDeductions(t *testing.T) {
	got := Calculate(CalculationInput{
		DailyRate:          dec("800"),
		HourlyRate:         dec("100"),
		WorkingDays:        11,
		OvertimeHours:      dec("2"),
		LateMinutes:        15,
		OvertimeMultiplier: OfficeOvertimeMultiplier,
		Deductions:         []decimal.Decimal{dec("450"), dec("200"), dec("100"), dec("50"), dec("0")},
	})

	assertMoney(t, "8800.00", got.BasicSalary, "basic_salary")
	assertMoney(t, "250.00", got.OvertimePay, "overtime_pay")
	assertMoney(t, "25.00", got.LateDeduction, "late_deduction")
	assertMoney(t, "9050.00", got.GrossPay, "gross_pay")
	assertMoney(t, "825.00", got.TotalDeductions, "total_deductions")
	assertMoney(t, "8225.00", got.NetPay, "net_pay")
}

func TestSiteTotals_WeeklyContainersWin(t *testing.T) {
	days := 5
	hours := dec("9")
	minutes := 40

	var attendance payroll.Week[bool]
	attendance.Set(payroll.Monday, true)
	attendance.Set(payroll.Tuesday, true)
	var overtime payroll.Week[decimal.Decimal]
	overtime.Set(payroll.Monday, dec("1.5"))

	var totals siteTotals
	totals.apply(&days, &hours, &minutes, &attendance, &overtime, nil)

	assert.Equal(t, 2, totals.WorkingDays)
	assert.True(t, totals.OvertimeHours.Equal(dec("1.5")))
	assert.Equal(t, 40, totals.LateMinutes)
}

func TestSiteTotals_KeepsExistingWhenNothingSupplied(t *testing.T) {
	totals := siteTotals{WorkingDays: 6, OvertimeHours: dec("3"), LateMinutes: 12}
	totals.apply(nil, nil, nil, nil, nil, nil)

	assert.Equal(t, 6, totals.WorkingDays)
	assert.True(t, totals.OvertimeHours.Equal(dec("3")))
	assert.Equal(t, 12, totals.LateMinutes)
}
