package advance

import (
	"context"

	"github.com/shopspring/decimal"
)

// LedgerService owns the one-active-pair-per-employee rule and balance
// settlement. Every mutating call runs in a transaction that holds the
// employee's lock for its whole read-check-write sequence; called with a
// transactional context it joins the caller's transaction instead.
type LedgerService interface {
	CreatePair(ctx context.Context, req CreatePairRequest) (PairResponse, error)
	ApplyDeduction(ctx context.Context, employeeID string, amount decimal.Decimal) (SettlementResult, error)
	// ReverseDeltaDeduction settles new-old. A negative delta raises the
	// balance and is not capped at the principal.
	ReverseDeltaDeduction(ctx context.Context, employeeID string, oldAmount, newAmount decimal.Decimal) (SettlementResult, error)
	GetActivePair(ctx context.Context, employeeID string) (ActivePairView, error)
	ListAdvances(ctx context.Context, employeeID string) ([]AdvanceResponse, error)
}
