package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
)

type Sprint struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	Status      string    `json:"status" db:"status"`
	StartDate   time.Time `json:"startDate" db:"start_date"`
	EndDate     time.Time `json:"endDate" db:"end_date"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

type SprintRepository interface {
	Create(ctx context.Context, sprint *Sprint) error
	FindByID(ctx context.Context, id string) (*Sprint, error)
	FindAll(ctx context.Context) ([]*Sprint, error)
	FindByStatuses(ctx context.Context, statuses []string) ([]*Sprint, error)
	FindEndingSoon(ctx context.Context, within time.Duration) ([]*Sprint, error)
	FindExpired(ctx context.Context) ([]*Sprint, error)
	Update(ctx context.Context, sprint *Sprint) error
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

type pgSprintRepository struct {
	db *sqlx.DB
}

func NewSprintRepository(db *sqlx.DB) SprintRepository {
	return &pgSprintRepository{db: db}
}

const sprintColumns = `id, name, description, status, start_date, end_date, created_at, updated_at`

func (r *pgSprintRepository) Create(ctx context.Context, sprint *Sprint) error {
	query := `
		INSERT INTO sprints (id, name, description, status, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`
	return r.db.QueryRowxContext(ctx, query,
		sprint.ID, sprint.Name, sprint.Description, sprint.Status,
		sprint.StartDate, sprint.EndDate,
	).Scan(&sprint.CreatedAt, &sprint.UpdatedAt)
}

func (r *pgSprintRepository) FindByID(ctx context.Context, id string) (*Sprint, error) {
	s := &Sprint{}
	query := `SELECT ` + sprintColumns + ` FROM sprints WHERE id = $1`
	err := r.db.GetContext(ctx, s, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *pgSprintRepository) FindAll(ctx context.Context) ([]*Sprint, error) {
	var sprints []*Sprint
	query := `SELECT ` + sprintColumns + ` FROM sprints ORDER BY start_date DESC`
	if err := r.db.SelectContext(ctx, &sprints, query); err != nil {
		return nil, err
	}
	return sprints, nil
}

func (r *pgSprintRepository) FindByStatuses(ctx context.Context, statuses []string) ([]*Sprint, error) {
	query, args, err := sqlx.In(
		`SELECT `+sprintColumns+` FROM sprints WHERE status IN (?) ORDER BY start_date DESC`,
		statuses,
	)
	if err != nil {
		return nil, err
	}
	query = r.db.Rebind(query)

	var sprints []*Sprint
	if err := r.db.SelectContext(ctx, &sprints, query, args...); err != nil {
		return nil, err
	}
	return sprints, nil
}

func (r *pgSprintRepository) FindEndingSoon(ctx context.Context, within time.Duration) ([]*Sprint, error) {
	query := `
		SELECT ` + sprintColumns + ` FROM sprints
		WHERE status = 'in_progress' AND end_date >= NOW() AND end_date < $1
	`
	var sprints []*Sprint
	if err := r.db.SelectContext(ctx, &sprints, query, time.Now().Add(within)); err != nil {
		return nil, err
	}
	return sprints, nil
}

func (r *pgSprintRepository) FindExpired(ctx context.Context) ([]*Sprint, error) {
	query := `
		SELECT ` + sprintColumns + ` FROM sprints
		WHERE status = 'in_progress' AND end_date < NOW()
	`
	var sprints []*Sprint
	if err := r.db.SelectContext(ctx, &sprints, query); err != nil {
		return nil, err
	}
	return sprints, nil
}

func (r *pgSprintRepository) Update(ctx context.Context, sprint *Sprint) error {
	query := `
		UPDATE sprints SET name = $2, description = $3, status = $4,
			start_date = $5, end_date = $6, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		sprint.ID, sprint.Name, sprint.Description, sprint.Status,
		sprint.StartDate, sprint.EndDate,
	)
	return err
}

func (r *pgSprintRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE sprints SET status = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, status)
	return err
}

func (r *pgSprintRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sprints WHERE id = $1`, id)
	return err
}
