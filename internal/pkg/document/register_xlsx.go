package document

import (
	"io"
	"strconv"

	"github.com/cmlabs-hris/construction-backoffice-go/internal/domain/payroll"
	"github.com/xuri/excelize/v2"
)

const registerSheet = "Payroll Register"

var registerHeader = []interface{}{
	"Employee Code", "Employee Name", "Group", "Position", "Period Start", "Period End",
	"Working Days", "OT Hours", "Late Minutes", "Basic Salary", "Overtime Pay", "Late Deduction",
	"Gross Pay", "Cash Advance", "Others", "Total Deductions", "Net Pay", "Status",
}

// RenderPayrollRegister writes one row per Site payroll record plus a totals
// row.
func RenderPayrollRegister(w io.Writer, records []payroll.PayrollRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", registerSheet); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return err
	}

	if err := f.SetSheetRow(registerSheet, "A1", &registerHeader); err != nil {
		return err
	}
	if err := f.SetCellStyle(registerSheet, "A1", "R1", headerStyle); err != nil {
		return err
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			r.EmployeeCode, r.EmployeeName, r.EmployeeGroup, r.Position,
			r.PayPeriodStart.Format(dateLayout), r.PayPeriodEnd.Format(dateLayout),
			r.WorkingDays, r.OvertimeHours.InexactFloat64(), r.LateMinutes,
			r.BasicSalary.InexactFloat64(), r.OvertimePay.InexactFloat64(), r.LateDeduction.InexactFloat64(),
			r.GrossPay.InexactFloat64(), r.CashAdvance.InexactFloat64(), r.OthersDeduction.InexactFloat64(),
			r.TotalDeductions.InexactFloat64(), r.NetPay.InexactFloat64(), string(r.Status),
		}
		if err := f.SetSheetRow(registerSheet, cell, &row); err != nil {
			return err
		}
	}

	if len(records) > 0 {
		last := len(records) + 1
		totalRow := last + 1
		label, _ := excelize.CoordinatesToCellName(1, totalRow)
		if err := f.SetCellValue(registerSheet, label, "TOTAL"); err != nil {
			return err
		}
		// Columns J..Q hold money.
		for col := 10; col <= 17; col++ {
			colName, _ := excelize.ColumnNumberToName(col)
			cell, _ := excelize.CoordinatesToCellName(col, totalRow)
			formula := "SUM(" + colName + "2:" + colName + strconv.Itoa(last) + ")"
			if err := f.SetCellFormula(registerSheet, cell, formula); err != nil {
				return err
			}
		}
		if err := f.SetCellStyle(registerSheet, "J2", "Q"+strconv.Itoa(totalRow), moneyStyle); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(registerSheet, "A", "R", 16); err != nil {
		return err
	}

	return f.Write(w)
}
