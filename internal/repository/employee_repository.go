package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Employee struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Email               string     `json:"email"`
	Phone               *string    `json:"phone,omitempty"`
	Role                *string    `json:"role,omitempty"`
	Department          *string    `json:"department,omitempty"`
	Status              string     `json:"status"`
	JoiningDate         *time.Time `json:"joiningDate,omitempty"`
	Password            string     `json:"-"`
	IsAdmin             bool       `json:"isAdmin"`
	ForcePasswordChange bool       `json:"forcePasswordChange"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

type EmployeeRepository interface {
	Create(ctx context.Context, e *Employee) error
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	FindAll(ctx context.Context) ([]*Employee, error)
	Update(ctx context.Context, e *Employee) error
	UpdatePassword(ctx context.Context, id, hashed string, forceChange bool) error
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
}

type pgEmployeeRepository struct {
	pool *pgxpool.Pool
}

func NewEmployeeRepository(pool *pgxpool.Pool) EmployeeRepository {
	return &pgEmployeeRepository{pool: pool}
}

const employeeColumns = `id, name, email, phone, role, department, status, joining_date,
	password, is_admin, force_password_change, created_at, updated_at`

func scanEmployee(row pgx.Row) (*Employee, error) {
	e := &Employee{}
	err := row.Scan(
		&e.ID, &e.Name, &e.Email, &e.Phone, &e.Role, &e.Department, &e.Status,
		&e.JoiningDate, &e.Password, &e.IsAdmin, &e.ForcePasswordChange,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *pgEmployeeRepository) Create(ctx context.Context, e *Employee) error {
	query := `
		INSERT INTO employees (id, name, email, phone, role, department, status,
			joining_date, password, is_admin, force_password_change)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`
	return r.pool.QueryRow(ctx, query,
		e.ID, e.Name, e.Email, e.Phone, e.Role, e.Department, e.Status,
		e.JoiningDate, e.Password, e.IsAdmin, e.ForcePasswordChange,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
}

func (r *pgEmployeeRepository) FindByID(ctx context.Context, id string) (*Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	return scanEmployee(r.pool.QueryRow(ctx, query, id))
}

func (r *pgEmployeeRepository) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE email = $1`
	return scanEmployee(r.pool.QueryRow(ctx, query, email))
}

func (r *pgEmployeeRepository) FindAll(ctx context.Context) ([]*Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []*Employee
	for rows.Next() {
		e := &Employee{}
		if err := rows.Scan(
			&e.ID, &e.Name, &e.Email, &e.Phone, &e.Role, &e.Department, &e.Status,
			&e.JoiningDate, &e.Password, &e.IsAdmin, &e.ForcePasswordChange,
			&e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (r *pgEmployeeRepository) Update(ctx context.Context, e *Employee) error {
	query := `
		UPDATE employees SET name = $2, email = $3, phone = $4, role = $5,
			department = $6, status = $7, joining_date = $8, is_admin = $9,
			updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query,
		e.ID, e.Name, e.Email, e.Phone, e.Role, e.Department, e.Status,
		e.JoiningDate, e.IsAdmin,
	)
	return err
}

func (r *pgEmployeeRepository) UpdatePassword(ctx context.Context, id, hashed string, forceChange bool) error {
	query := `UPDATE employees SET password = $2, force_password_change = $3, updated_at = NOW() WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id, hashed, forceChange)
	return err
}

func (r *pgEmployeeRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	return err
}

func (r *pgEmployeeRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM employees WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}
