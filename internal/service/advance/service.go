package advance

import (
	"context"
	"errors"
	"log/slog"

	"github.com/cmlabs-hris/construction-backoffice-go/internal/domain/advance"
	"github.com/cmlabs-hris/construction-backoffice-go/internal/domain/employee"
	"github.com/cmlabs-hris/construction-backoffice-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/construction-backoffice-go/internal/pkg/database"
	"github.com/cmlabs-hris/construction-backoffice-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const timestampLayout = "2006-01-02 15:04:05"

type LedgerServiceImpl struct {
	txManager    database.TxManager
	advanceRepo  advance.AdvanceRepository
	employeeRepo employee.EmployeeRepository
}

func NewLedgerService(
	txManager database.TxManager,
	advanceRepo advance.AdvanceRepository,
	employeeRepo employee.EmployeeRepository,
) advance.LedgerService {
	return &LedgerServiceImpl{
		txManager:    txManager,
		advanceRepo:  advanceRepo,
		employeeRepo: employeeRepo,
	}
}

func (s *LedgerServiceImpl) CreatePair(ctx context.Context, req advance.CreatePairRequest) (advance.PairResponse, error) {
	if err := req.Validate(); err != nil {
		return advance.PairResponse{}, err
	}

	var pair advance.Pair
	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.lockEmployee(txCtx, req.EmployeeID); err != nil {
			return err
		}

		// Both halves are checked on their own; a stray active deduction
		// blocks a new pair just like an active advance does.
		if _, err := s.advanceRepo.GetActiveAdvance(txCtx, req.EmployeeID); err == nil {
			return advance.ErrActiveAdvanceExists
		} else if !errors.Is(err, advance.ErrAdvanceNotFound) {
			return err
		}
		if _, err := s.advanceRepo.GetActiveDeduction(txCtx, req.EmployeeID); err == nil {
			return advance.ErrActiveDeductionExists
		} else if !errors.Is(err, advance.ErrDeductionNotFound) {
			return err
		}

		eca, err := s.advanceRepo.CreateAdvance(txCtx, advance.EmergencyCashAdvance{
			EmployeeID:       req.EmployeeID,
			PrincipalAmount:  req.PrincipalAmount,
			RemainingBalance: req.PrincipalAmount,
			Status:           advance.StatusActive,
		})
		if err != nil {
			return err
		}
		ed, err := s.advanceRepo.CreateDeduction(txCtx, advance.EmergencyDeduction{
			EmployeeID: req.EmployeeID,
			Amount:     req.DeductionAmount,
			Status:     advance.StatusActive,
		})
		if err != nil {
			return err
		}

		pair = advance.Pair{Advance: eca, Deduction: ed}
		return nil
	})
	if err != nil {
		return advance.PairResponse{}, apperror.WrapUnexpected("create advance pair", err)
	}

	slog.Info("Emergency advance issued",
		"employee_id", req.EmployeeID,
		"advance_id", pair.Advance.ID,
		"principal", pair.Advance.PrincipalAmount.StringFixed(2),
		"deduction", pair.Deduction.Amount.StringFixed(2),
	)

	return advance.PairResponse{
		Advance:   mapAdvanceToResponse(pair.Advance),
		Deduction: mapDeductionToResponse(pair.Deduction),
	}, nil
}

// ApplyDeduction is a no-op for non-positive amounts and for employees
// without an active advance.
func (s *LedgerServiceImpl) ApplyDeduction(ctx context.Context, employeeID string, amount decimal.Decimal) (advance.SettlementResult, error) {
	if err := validateEmployeeID(employeeID); err != nil {
		return advance.SettlementResult{}, err
	}
	if !amount.IsPositive() {
		return advance.SettlementResult{}, nil
	}
	return s.settle(ctx, employeeID, amount)
}

func (s *LedgerServiceImpl) ReverseDeltaDeduction(ctx context.Context, employeeID string, oldAmount, newAmount decimal.Decimal) (advance.SettlementResult, error) {
	if err := validateEmployeeID(employeeID); err != nil {
		return advance.SettlementResult{}, err
	}
	difference := newAmount.Sub(oldAmount)
	if difference.IsZero() {
		return advance.SettlementResult{}, nil
	}
	return s.settle(ctx, employeeID, difference)
}

// settle subtracts amount from the active balance. A balance that reaches
// zero or below is clamped to zero and retires the pair; a negative amount
// raises the balance.
func (s *LedgerServiceImpl) settle(ctx context.Context, employeeID string, amount decimal.Decimal) (advance.SettlementResult, error) {
	var result advance.SettlementResult
	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.employeeRepo.LockForUpdate(txCtx, employeeID); err != nil {
			return err
		}

		eca, err := s.advanceRepo.GetActiveAdvance(txCtx, employeeID)
		if err != nil {
			if errors.Is(err, advance.ErrAdvanceNotFound) {
				return nil
			}
			return err
		}

		newBalance := eca.RemainingBalance.Sub(amount)
		result = advance.SettlementResult{AdvanceID: eca.ID, Applied: true}

		if !newBalance.IsPositive() {
			if err := s.advanceRepo.CompleteAdvance(txCtx, eca.ID); err != nil {
				return err
			}
			if err := s.advanceRepo.CompleteActiveDeduction(txCtx, employeeID); err != nil {
				return err
			}
			result.NewBalance = decimal.Zero
			result.Completed = true
			return nil
		}

		if err := s.advanceRepo.UpdateAdvanceBalance(txCtx, eca.ID, newBalance); err != nil {
			return err
		}
		result.NewBalance = newBalance
		return nil
	})
	if err != nil {
		return advance.SettlementResult{}, apperror.WrapUnexpected("settle emergency advance", err)
	}

	if result.Completed {
		slog.Info("Emergency advance completed", "employee_id", employeeID, "advance_id", result.AdvanceID)
	}
	return result, nil
}

func (s *LedgerServiceImpl) GetActivePair(ctx context.Context, employeeID string) (advance.ActivePairView, error) {
	if err := validateEmployeeID(employeeID); err != nil {
		return advance.ActivePairView{}, err
	}
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return advance.ActivePairView{}, apperror.WrapUnexpected("get employee", err)
	}

	var view advance.ActivePairView

	eca, err := s.advanceRepo.GetActiveAdvance(ctx, employeeID)
	switch {
	case err == nil:
		resp := mapAdvanceToResponse(eca)
		view.Advance = &resp
		view.HasActiveECA = true
		view.IsReadonly = eca.RemainingBalance.IsPositive()
	case !errors.Is(err, advance.ErrAdvanceNotFound):
		return advance.ActivePairView{}, apperror.Internal("get active advance", err)
	}

	ed, err := s.advanceRepo.GetActiveDeduction(ctx, employeeID)
	switch {
	case err == nil:
		resp := mapDeductionToResponse(ed)
		view.Deduction = &resp
		view.HasActiveED = true
	case !errors.Is(err, advance.ErrDeductionNotFound):
		return advance.ActivePairView{}, apperror.Internal("get active deduction", err)
	}

	return view, nil
}

func (s *LedgerServiceImpl) ListAdvances(ctx context.Context, employeeID string) ([]advance.AdvanceResponse, error) {
	if err := validateEmployeeID(employeeID); err != nil {
		return nil, err
	}
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, apperror.WrapUnexpected("get employee", err)
	}

	advances, err := s.advanceRepo.ListAdvancesByEmployee(ctx, employeeID)
	if err != nil {
		return nil, apperror.Internal("list advances", err)
	}

	responses := make([]advance.AdvanceResponse, 0, len(advances))
	for _, eca := range advances {
		responses = append(responses, mapAdvanceToResponse(eca))
	}
	return responses, nil
}

// lockEmployee confirms the employee exists, then takes the per-employee
// ledger lock for the rest of the transaction.
func (s *LedgerServiceImpl) lockEmployee(ctx context.Context, employeeID string) error {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return err
	}
	return s.employeeRepo.LockForUpdate(ctx, employeeID)
}

func validateEmployeeID(id string) error {
	var errs validator.ValidationErrors
	if !validator.IsValidUUID(id) {
		errs.Add("employee_id", "must be a valid UUID")
	}
	return errs.OrNil()
}

func mapAdvanceToResponse(eca advance.EmergencyCashAdvance) advance.AdvanceResponse {
	resp := advance.AdvanceResponse{
		ID:               eca.ID,
		EmployeeID:       eca.EmployeeID,
		PrincipalAmount:  eca.PrincipalAmount,
		RemainingBalance: eca.RemainingBalance,
		Status:           string(eca.Status),
		CreatedAt:        eca.CreatedAt.Format(timestampLayout),
	}
	if eca.CompletedAt != nil {
		s := eca.CompletedAt.Format(timestampLayout)
		resp.CompletedAt = &s
	}
	return resp
}

func mapDeductionToResponse(ed advance.EmergencyDeduction) advance.DeductionResponse {
	resp := advance.DeductionResponse{
		ID:         ed.ID,
		EmployeeID: ed.EmployeeID,
		Amount:     ed.Amount,
		Status:     string(ed.Status),
		CreatedAt:  ed.CreatedAt.Format(timestampLayout),
	}
	if ed.CompletedAt != nil {
		s := ed.CompletedAt.Format(timestampLayout)
		resp.CompletedAt = &s
	}
	return resp
}
