// internal/service/employee_service.go
package service

import (
	"context"
	"crypto/rand"
	"log"
	"math/big"
	"time"

	"github.com/taskflow-labs/taskflow-backend/internal/email"
	"github.com/taskflow-labs/taskflow-backend/internal/numbering"
	"github.com/taskflow-labs/taskflow-backend/internal/repository"
	"github.com/taskflow-labs/taskflow-backend/internal/types"
	"golang.org/x/crypto/bcrypt"
)

type CreateEmployeeInput struct {
	Name        string
	Email       string
	Phone       *string
	Role        *string
	Department  *string
	Status      string
	JoiningDate *time.Time
	IsAdmin     bool
}

type UpdateEmployeeInput struct {
	Name        *string
	Email       *string
	Phone       *string
	Role        *string
	Department  *string
	Status      *string
	JoiningDate *time.Time
	IsAdmin     *bool
}

type EmployeeService interface {
	Create(ctx context.Context, in *CreateEmployeeInput) (*repository.Employee, error)
	Get(ctx context.Context, employeeID string) (*repository.Employee, error)
	List(ctx context.Context) ([]*repository.Employee, error)
	Update(ctx context.Context, employeeID string, in *UpdateEmployeeInput) (*repository.Employee, error)
	Delete(ctx context.Context, employeeID string) error
	Exists(ctx context.Context, employeeID string) (bool, error)
}

type employeeService struct {
	employeeRepo repository.EmployeeRepository
	taskRepo     repository.TaskRepository
	emailSvc     *email.Service
}

func NewEmployeeService(
	employeeRepo repository.EmployeeRepository,
	taskRepo repository.TaskRepository,
	emailSvc *email.Service,
) EmployeeService {
	return &employeeService{
		employeeRepo: employeeRepo,
		taskRepo:     taskRepo,
		emailSvc:     emailSvc,
	}
}

// Create registers an employee with a generated temporary password and fires
// the welcome email. Email failure never rolls back the employee record.
func (s *employeeService) Create(ctx context.Context, in *CreateEmployeeInput) (*repository.Employee, error) {
	if in.Name == "" {
		return nil, validationErr("name", "name is required")
	}
	if in.Email == "" {
		return nil, validationErr("email", "email is required")
	}
	status := in.Status
	if status == "" {
		status = types.EmployeeActive
	}
	if !types.IsValidEmployeeStatus(status) {
		return nil, validationErr("status", "invalid employee status")
	}

	existing, err := s.employeeRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	tempPassword, err := randomPassword(10)
	if err != nil {
		return nil, err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	employee := &repository.Employee{
		ID:                  numbering.NewID(),
		Name:                in.Name,
		Email:               in.Email,
		Phone:               in.Phone,
		Role:                in.Role,
		Department:          in.Department,
		Status:              status,
		JoiningDate:         in.JoiningDate,
		Password:            string(hashed),
		IsAdmin:             in.IsAdmin,
		ForcePasswordChange: true,
	}
	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return nil, err
	}

	if s.emailSvc != nil {
		go func(to, name, password string) {
			if err := s.emailSvc.SendWelcomeEmail(to, name, password); err != nil {
				log.Printf("⚠️ [Employee Create] Welcome email failed - Email: %s, Error: %v", to, err)
			}
		}(employee.Email, employee.Name, tempPassword)
	}

	return employee, nil
}

func (s *employeeService) Get(ctx context.Context, employeeID string) (*repository.Employee, error) {
	employee, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, ErrNotFound
	}
	return employee, nil
}

func (s *employeeService) List(ctx context.Context) ([]*repository.Employee, error) {
	return s.employeeRepo.FindAll(ctx)
}

func (s *employeeService) Update(ctx context.Context, employeeID string, in *UpdateEmployeeInput) (*repository.Employee, error) {
	existing, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, validationErr("name", "name is required")
		}
		existing.Name = *in.Name
	}
	if in.Email != nil && *in.Email != existing.Email {
		if *in.Email == "" {
			return nil, validationErr("email", "email is required")
		}
		other, err := s.employeeRepo.FindByEmail(ctx, *in.Email)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, ErrEmailExists
		}
		existing.Email = *in.Email
	}
	if in.Phone != nil {
		existing.Phone = in.Phone
	}
	if in.Role != nil {
		existing.Role = in.Role
	}
	if in.Department != nil {
		existing.Department = in.Department
	}
	if in.Status != nil {
		if !types.IsValidEmployeeStatus(*in.Status) {
			return nil, validationErr("status", "invalid employee status")
		}
		existing.Status = *in.Status
	}
	if in.JoiningDate != nil {
		existing.JoiningDate = in.JoiningDate
	}
	if in.IsAdmin != nil {
		existing.IsAdmin = *in.IsAdmin
	}

	if err := s.employeeRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete removes the employee; task assignee/QA references are cleared by
// the schema (ON DELETE SET NULL), tasks themselves are untouched.
func (s *employeeService) Delete(ctx context.Context, employeeID string) error {
	employee, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		return err
	}
	if employee == nil {
		return ErrNotFound
	}
	return s.employeeRepo.Delete(ctx, employeeID)
}

func (s *employeeService) Exists(ctx context.Context, employeeID string) (bool, error) {
	return s.employeeRepo.Exists(ctx, employeeID)
}

const passwordCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randomPassword(length int) (string, error) {
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(passwordCharset))))
		if err != nil {
			return "", err
		}
		out[i] = passwordCharset[n.Int64()]
	}
	return string(out), nil
}
