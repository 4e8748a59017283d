package advance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is shared by advances and their paired deductions. A pair only
// ever moves active -> completed, and both halves move together.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// EmergencyCashAdvance is money lent to an employee, repaid through payroll.
type EmergencyCashAdvance struct {
	ID               string
	EmployeeID       string
	PrincipalAmount  decimal.Decimal
	RemainingBalance decimal.Decimal
	Status           Status
	CreatedAt        time.Time
	UpdatedAt        time.Time
	CompletedAt      *time.Time
}

// EmergencyDeduction records the intended per-period repayment of the
// advance it was created with. The amount is informational; only its status
// is ever changed by settlement.
type EmergencyDeduction struct {
	ID          string
	EmployeeID  string
	Amount      decimal.Decimal
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
}

type Pair struct {
	Advance   EmergencyCashAdvance
	Deduction EmergencyDeduction
}

// SettlementResult is the outcome of moving an advance balance.
// Applied is false when nothing was touched (no active advance, or a
// non-positive deduction).
type SettlementResult struct {
	AdvanceID  string
	NewBalance decimal.Decimal
	Completed  bool
	Applied    bool
}
