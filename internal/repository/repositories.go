package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	// pgxpool repositories
	EmployeeRepo EmployeeRepository

	// sqlx repositories (sprint/task)
	SprintRepo SprintRepository
	TaskRepo   TaskRepository
}

func NewRepositories(pool *pgxpool.Pool, db *sqlx.DB) *Repositories {
	return &Repositories{
		EmployeeRepo: NewEmployeeRepository(pool),
		SprintRepo:   NewSprintRepository(db),
		TaskRepo:     NewTaskRepository(db),
	}
}
