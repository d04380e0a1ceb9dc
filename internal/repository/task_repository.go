package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
)

type Task struct {
	ID          string    `json:"id" db:"id"`
	TaskNo      string    `json:"taskNo" db:"task_no"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description,omitempty" db:"description"`
	Status      string    `json:"status" db:"status"`
	Priority    string    `json:"priority" db:"priority"`
	Points      int       `json:"points" db:"points"`
	SprintID    *string   `json:"sprintId,omitempty" db:"sprint_id"`
	AssigneeID  *string   `json:"assigneeId,omitempty" db:"assignee_id"`
	QAOwnerID   *string   `json:"qaOwnerId,omitempty" db:"qa_owner_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

type TaskRepository interface {
	Create(ctx context.Context, task *Task) error
	FindByID(ctx context.Context, id string) (*Task, error)
	FindAll(ctx context.Context) ([]*Task, error)
	FindBySprintID(ctx context.Context, sprintID string) ([]*Task, error)
	FindByAssigneeID(ctx context.Context, assigneeID string) ([]*Task, error)
	AllTaskNumbers(ctx context.Context) ([]string, error)
	Update(ctx context.Context, task *Task) error
	UpdateStatus(ctx context.Context, id, status string) error
	UpdateSprint(ctx context.Context, id string, sprintID *string) error
	ClearSprint(ctx context.Context, sprintID string) error
	Delete(ctx context.Context, id string) error
}

type pgTaskRepository struct {
	db *sqlx.DB
}

func NewTaskRepository(db *sqlx.DB) TaskRepository {
	return &pgTaskRepository{db: db}
}

const taskColumns = `id, task_no, title, description, status, priority, points,
	sprint_id, assignee_id, qa_owner_id, created_at, updated_at`

func (r *pgTaskRepository) Create(ctx context.Context, task *Task) error {
	query := `
		INSERT INTO tasks (id, task_no, title, description, status, priority,
			points, sprint_id, assignee_id, qa_owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`
	return r.db.QueryRowxContext(ctx, query,
		task.ID, task.TaskNo, task.Title, task.Description, task.Status,
		task.Priority, task.Points, task.SprintID, task.AssigneeID, task.QAOwnerID,
	).Scan(&task.CreatedAt, &task.UpdatedAt)
}

func (r *pgTaskRepository) FindByID(ctx context.Context, id string) (*Task, error) {
	t := &Task{}
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	err := r.db.GetContext(ctx, t, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *pgTaskRepository) FindAll(ctx context.Context) ([]*Task, error) {
	var tasks []*Task
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY created_at`
	if err := r.db.SelectContext(ctx, &tasks, query); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *pgTaskRepository) FindBySprintID(ctx context.Context, sprintID string) ([]*Task, error) {
	var tasks []*Task
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE sprint_id = $1 ORDER BY created_at`
	if err := r.db.SelectContext(ctx, &tasks, query, sprintID); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *pgTaskRepository) FindByAssigneeID(ctx context.Context, assigneeID string) ([]*Task, error) {
	var tasks []*Task
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE assignee_id = $1 ORDER BY created_at`
	if err := r.db.SelectContext(ctx, &tasks, query, assigneeID); err != nil {
		return nil, err
	}
	return tasks, nil
}

// AllTaskNumbers returns every task number currently stored. The numbering
// allocator recomputes its high-water mark from this set on each allocation.
func (r *pgTaskRepository) AllTaskNumbers(ctx context.Context) ([]string, error) {
	var numbers []string
	if err := r.db.SelectContext(ctx, &numbers, `SELECT task_no FROM tasks`); err != nil {
		return nil, err
	}
	return numbers, nil
}

func (r *pgTaskRepository) Update(ctx context.Context, task *Task) error {
	query := `
		UPDATE tasks SET title = $2, description = $3, status = $4, priority = $5,
			points = $6, assignee_id = $7, qa_owner_id = $8, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		task.ID, task.Title, task.Description, task.Status, task.Priority,
		task.Points, task.AssigneeID, task.QAOwnerID,
	)
	return err
}

func (r *pgTaskRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE tasks SET status = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, status)
	return err
}

func (r *pgTaskRepository) UpdateSprint(ctx context.Context, id string, sprintID *string) error {
	query := `UPDATE tasks SET sprint_id = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, sprintID)
	return err
}

// ClearSprint detaches every task from the given sprint. Used on sprint
// deletion so tasks survive with their history intact.
func (r *pgTaskRepository) ClearSprint(ctx context.Context, sprintID string) error {
	query := `UPDATE tasks SET sprint_id = NULL, updated_at = NOW() WHERE sprint_id = $1`
	_, err := r.db.ExecContext(ctx, query, sprintID)
	return err
}

func (r *pgTaskRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	return err
}
