// Package document renders payroll rows into files handed to people:
// PDF payslips and the XLSX payroll register.
package document

import (
	"fmt"
	"io"

	"github.com/cmlabs-hris/construction-backoffice-go/internal/domain/payroll"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// RenderPayslipPDF writes a one-page A4 payslip for a Site payroll row.
func RenderPayslipPDF(w io.Writer, r payroll.PayrollRecord) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Payslip "+r.EmployeeCode, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, tr(fmt.Sprintf("Employee: %s (%s)", r.EmployeeName, r.EmployeeCode)))
	pdf.Ln(6)
	pdf.Cell(0, 7, tr(fmt.Sprintf("Position: %s   Group: %s", r.Position, r.EmployeeGroup)))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Period: %s to %s", r.PayPeriodStart.Format(dateLayout), r.PayPeriodEnd.Format(dateLayout)))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Status: %s", r.Status))
	pdf.Ln(10)

	// Daily attendance grid.
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(34, 7, "Day", "1", 0, "L", false, 0, "")
	pdf.CellFormat(20, 7, "Present", "1", 0, "C", false, 0, "")
	pdf.CellFormat(22, 7, "OT hours", "1", 0, "R", false, 0, "")
	pdf.CellFormat(22, 7, "Late min", "1", 0, "R", false, 0, "")
	pdf.CellFormat(92, 7, "Site", "1", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for d := payroll.Monday; d <= payroll.Saturday; d++ {
		present := ""
		if r.DailyAttendance.Get(d) {
			present = "Yes"
		}
		pdf.CellFormat(34, 6, d.String(), "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, present, "1", 0, "C", false, 0, "")
		pdf.CellFormat(22, 6, r.DailyOvertime.Get(d).String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(22, 6, fmt.Sprintf("%d", r.DailyLate.Get(d)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(92, 6, tr(r.DailySiteAddress.Get(d)), "1", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 11)
	lines := []struct {
		label string
		value string
	}{
		{"Daily rate", money(r.DailyRate)},
		{"Hourly rate", money(r.HourlyRate)},
		{"Working days", fmt.Sprintf("%d", r.WorkingDays)},
		{"Overtime hours", r.OvertimeHours.String()},
		{"Late minutes", fmt.Sprintf("%d", r.LateMinutes)},
		{"Basic salary", money(r.BasicSalary)},
		{"Overtime pay", money(r.OvertimePay)},
		{"Gross pay", money(r.GrossPay)},
		{"Late deduction", money(r.LateDeduction)},
		{"Cash advance", money(r.CashAdvance)},
		{"Other deductions", money(r.OthersDeduction)},
		{"Total deductions", money(r.TotalDeductions)},
	}
	for _, l := range lines {
		pdf.CellFormat(60, 7, l.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, l.value, "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(60, 9, "Net pay", "T", 0, "L", false, 0, "")
	pdf.CellFormat(40, 9, money(r.NetPay), "T", 1, "R", false, 0, "")

	return pdf.Output(w)
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
