// Package servicetest provides an in-memory backing store for service tests.
// It implements every repository interface plus database.TxManager, and
// rolls all tables back when a transaction function fails.
package servicetest

import (
	"context"
	"errors"
	"maps"
	"sync"
	"time"

	"github.com/cmlabs-hris/construction-backoffice-go/internal/domain/advance"
	"github.com/cmlabs-hris/construction-backoffice-go/internal/domain/employee"
	"github.com/cmlabs-hris/construction-backoffice-go/internal/domain/payroll"
	"github.com/google/uuid"
)

// ErrInjected is a convenient error for FailOn.
var ErrInjected = errors.New("injected failure")

type txMarker struct{}

type tables struct {
	employees      map[string]employee.Employee
	advances       map[string]advance.EmergencyCashAdvance
	deductions     map[string]advance.EmergencyDeduction
	payrolls       map[string]payroll.PayrollRecord
	officePayrolls map[string]payroll.OfficePayrollRecord
}

func (t tables) clone() tables {
	return tables{
		employees:      maps.Clone(t.employees),
		advances:       maps.Clone(t.advances),
		deductions:     maps.Clone(t.deductions),
		payrolls:       maps.Clone(t.payrolls),
		officePayrolls: maps.Clone(t.officePayrolls),
	}
}

type Store struct {
	mu       sync.Mutex
	data     tables
	failures map[string]error
	clock    time.Time

	Transactions int
	Rollbacks    int
	Locks        []string
	RowLocks     []string
}

func NewStore() *Store {
	return &Store{
		data: tables{
			employees:      map[string]employee.Employee{},
			advances:       map[string]advance.EmergencyCashAdvance{},
			deductions:     map[string]advance.EmergencyDeduction{},
			payrolls:       map[string]payroll.PayrollRecord{},
			officePayrolls: map[string]payroll.OfficePayrollRecord{},
		},
		failures: map[string]error{},
		clock:    time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
	}
}

// FailOn makes the next call of the named operation (for example
// "payroll.Create") return err.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = err
}

func (s *Store) fail(op string) error {
	if err, ok := s.failures[op]; ok {
		delete(s.failures, op)
		return err
	}
	return nil
}

// now advances a fake clock so created/updated timestamps are ordered.
func (s *Store) now() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func (s *Store) WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	if ctx.Value(txMarker{}) != nil {
		return fn(ctx)
	}

	s.mu.Lock()
	s.Transactions++
	snapshot := s.data.clone()
	s.mu.Unlock()

	if err := fn(context.WithValue(ctx, txMarker{}, true)); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.Rollbacks++
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) Employees() employee.EmployeeRepository          { return employeeRepo{s} }
func (s *Store) Advances() advance.AdvanceRepository             { return advanceRepo{s} }
func (s *Store) Payrolls() payroll.PayrollRepository             { return payrollRepo{s} }
func (s *Store) OfficePayrolls() payroll.OfficePayrollRepository { return officePayrollRepo{s} }

// SeedEmployee inserts an employee directly and returns it with its id.
func (s *Store) SeedEmployee(e employee.Employee) employee.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == "" {
		e.ID = newID()
	}
	e.CreatedAt = s.now()
	e.UpdatedAt = e.CreatedAt
	s.data.employees[e.ID] = e
	return e
}

func (s *Store) Advance(id string) (advance.EmergencyCashAdvance, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	eca, ok := s.data.advances[id]
	return eca, ok
}

// Deductions returns every deduction of the employee, any status.
func (s *Store) Deductions(employeeID string) []advance.EmergencyDeduction {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []advance.EmergencyDeduction
	for _, ed := range s.data.deductions {
		if ed.EmployeeID == employeeID {
			out = append(out, ed)
		}
	}
	return out
}

func (s *Store) PayrollCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.payrolls)
}
