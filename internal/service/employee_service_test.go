package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskflow-labs/taskflow-backend/internal/types"
	"golang.org/x/crypto/bcrypt"
)

func newEmployeeServiceForTest() (EmployeeService, *fakeEmployeeRepo) {
	employeeRepo := &fakeEmployeeRepo{}
	taskRepo := &fakeTaskRepo{}
	svc := NewEmployeeService(employeeRepo, taskRepo, nil)
	return svc, employeeRepo
}

func TestEmployeeCreateIssuesTemporaryCredentials(t *testing.T) {
	svc, repo := newEmployeeServiceForTest()

	employee, err := svc.Create(context.Background(), &CreateEmployeeInput{
		Name:  "Asha Rana",
		Email: "asha@taskflow.dev",
	})
	require.NoError(t, err)

	assert.Equal(t, types.EmployeeActive, employee.Status)
	assert.True(t, employee.ForcePasswordChange)
	assert.NotEmpty(t, employee.ID)

	// The stored credential is a bcrypt hash, never the raw password.
	stored, err := repo.FindByID(context.Background(), employee.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	_, err = bcrypt.Cost([]byte(stored.Password))
	assert.NoError(t, err)
}

func TestEmployeeCreateRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newEmployeeServiceForTest()
	ctx := context.Background()

	_, err := svc.Create(ctx, &CreateEmployeeInput{Name: "Asha Rana", Email: "asha@taskflow.dev"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &CreateEmployeeInput{Name: "Impostor", Email: "asha@taskflow.dev"})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestEmployeeUpdateEmailConflict(t *testing.T) {
	svc, _ := newEmployeeServiceForTest()
	ctx := context.Background()

	first, err := svc.Create(ctx, &CreateEmployeeInput{Name: "Asha Rana", Email: "asha@taskflow.dev"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &CreateEmployeeInput{Name: "Nikhil Shrestha", Email: "nikhil@taskflow.dev"})
	require.NoError(t, err)

	taken := "nikhil@taskflow.dev"
	_, err = svc.Update(ctx, first.ID, &UpdateEmployeeInput{Email: &taken})
	assert.ErrorIs(t, err, ErrEmailExists)

	// Re-submitting the current address is not a conflict.
	same := "asha@taskflow.dev"
	_, err = svc.Update(ctx, first.ID, &UpdateEmployeeInput{Email: &same})
	assert.NoError(t, err)
}

func TestEmployeeDeleteNotFound(t *testing.T) {
	svc, _ := newEmployeeServiceForTest()
	err := svc.Delete(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRandomPasswordLengthAndCharset(t *testing.T) {
	password, err := randomPassword(10)
	require.NoError(t, err)
	require.Len(t, password, 10)
	for _, c := range password {
		assert.Contains(t, passwordCharset, string(c))
	}
}
