package postgresql_test

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/construction-backoffice-go/internal/domain/employee"
	"github.com/cmlabs-hris/construction-backoffice-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTxManager_RollsBackOnError(t *testing.T) {
	db := NewTestDatabase(t)
	repo := postgresql.NewEmployeeRepository(db)
	tm := postgresql.NewTxManager(db)
	ctx := context.Background()
	boom := errors.New("boom")

	var createdID string
	err := tm.WithinTransaction(ctx, func(txCtx context.Context) error {
		emp, err := repo.Create(txCtx, employee.Employee{EmployeeCode: "SITE-009", FullName: "Temp", Status: employee.StatusSite})
		if err != nil {
			return err
		}
		createdID = emp.ID
		return boom
	})

	assert.ErrorIs(t, err, boom)
	require.NotEmpty(t, createdID)
	_, err = repo.GetByID(ctx, createdID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestTxManager_NestedCallsJoinOuterTransaction(t *testing.T) {
	db := NewTestDatabase(t)
	repo := postgresql.NewEmployeeRepository(db)
	tm := postgresql.NewTxManager(db)
	ctx := context.Background()

	var innerID string
	err := tm.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := tm.WithinTransaction(txCtx, func(inner context.Context) error {
			emp, err := repo.Create(inner, employee.Employee{EmployeeCode: "SITE-010", FullName: "Inner", Status: employee.StatusSite})
			innerID = emp.ID
			return err
		}); err != nil {
			return err
		}
		return errors.New("outer fails")
	})

	require.Error(t, err)
	_, err = repo.GetByID(ctx, innerID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound, "inner work rolls back with the outer transaction")
}
