package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// HoursPerDay converts a daily rate into an hourly rate.
var HoursPerDay = decimal.NewFromInt(8)

type Employee struct {
	ID           string
	EmployeeCode string
	FullName     string
	Position     string
	Group        string
	Status       Status
	DailyRate    decimal.Decimal
	HourlyRate   decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Status string

const (
	StatusSite   Status = "Site"
	StatusOffice Status = "Office"
)

func (s Status) IsValid() bool {
	return s == StatusSite || s == StatusOffice
}

// HourlyRateFor derives the hourly rate from a daily rate. The result is
// rounded half up to centavos on purpose: it is stored and printed on
// payslips, and overtime and late pay are computed from the stored value.
func HourlyRateFor(dailyRate decimal.Decimal) decimal.Decimal {
	return dailyRate.Div(HoursPerDay).Round(2)
}
