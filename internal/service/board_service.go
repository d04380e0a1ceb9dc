// internal/service/board_service.go
package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/taskflow-labs/taskflow-backend/internal/db"
	"github.com/taskflow-labs/taskflow-backend/internal/repository"
	"github.com/taskflow-labs/taskflow-backend/internal/types"
)

// BoardFilters narrows the board projection. Zero values mean "no filter";
// Assignee additionally understands "all" and "unassigned".
type BoardFilters struct {
	Search   string
	Assignee string
	Priority string
}

func (f BoardFilters) isZero() bool {
	return f.Search == "" &&
		(f.Assignee == "" || f.Assignee == "all") &&
		(f.Priority == "" || f.Priority == "all")
}

// TaskSummary is the per-employee aggregate shown on the employee detail
// page. InProgress folds three workflow statuses into one bucket and Done
// folds two; the asymmetry is deliberate and mirrored by the UI.
type TaskSummary struct {
	ToDo        int `json:"toDo"`
	InProgress  int `json:"inProgress"`
	Done        int `json:"done"`
	Total       int `json:"total"`
	TotalPoints int `json:"totalPoints"`
}

type MonthlyPoints struct {
	Month  string `json:"month"` // YYYY-MM
	Points int    `json:"points"`
}

type BoardService interface {
	ProjectBoard(ctx context.Context, sprintID string, filters BoardFilters) (map[string][]*repository.Task, error)
	EmployeeTaskSummary(ctx context.Context, employeeID string) (*TaskSummary, error)
	MonthlyCompletedPoints(ctx context.Context, employeeID string) ([]MonthlyPoints, error)
}

type boardService struct {
	taskRepo     repository.TaskRepository
	sprintRepo   repository.SprintRepository
	employeeRepo repository.EmployeeRepository
	cache        *db.RedisDB
}

func NewBoardService(
	taskRepo repository.TaskRepository,
	sprintRepo repository.SprintRepository,
	employeeRepo repository.EmployeeRepository,
	cache *db.RedisDB,
) BoardService {
	return &boardService{
		taskRepo:     taskRepo,
		sprintRepo:   sprintRepo,
		employeeRepo: employeeRepo,
		cache:        cache,
	}
}

const boardCacheTTL = 30 * time.Second

// ProjectBoard derives the grouped board view for one sprint: text search,
// assignee filter and priority filter applied in that order, then stable
// grouping into the six status buckets. Unfiltered projections are served
// from the cache when available.
func (s *boardService) ProjectBoard(ctx context.Context, sprintID string, filters BoardFilters) (map[string][]*repository.Task, error) {
	cacheKey := fmt.Sprintf("board:%s", sprintID)
	if s.cache != nil && filters.isZero() {
		var cached map[string][]*repository.Task
		if err := s.cache.GetCache(ctx, cacheKey, &cached); err == nil && cached != nil {
			return cached, nil
		}
	}

	tasks, err := s.taskRepo.FindBySprintID(ctx, sprintID)
	if err != nil {
		return nil, err
	}

	board := groupByStatus(filterTasks(tasks, filters))

	if s.cache != nil && filters.isZero() {
		_ = s.cache.SetCache(ctx, cacheKey, board, boardCacheTTL)
	}
	return board, nil
}

func (s *boardService) EmployeeTaskSummary(ctx context.Context, employeeID string) (*TaskSummary, error) {
	exists, err := s.employeeRepo.Exists(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}

	tasks, err := s.taskRepo.FindByAssigneeID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return summarizeTasks(tasks), nil
}

func (s *boardService) MonthlyCompletedPoints(ctx context.Context, employeeID string) ([]MonthlyPoints, error) {
	exists, err := s.employeeRepo.Exists(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}

	tasks, err := s.taskRepo.FindByAssigneeID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	sprints, err := s.sprintRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return monthlyCompletedPoints(tasks, sprints), nil
}

// ============================================
// Pure projection helpers
// ============================================

func filterTasks(tasks []*repository.Task, f BoardFilters) []*repository.Task {
	q := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]*repository.Task, 0, len(tasks))
	for _, t := range tasks {
		if q != "" && !matchesSearch(t, q) {
			continue
		}
		if !matchesAssignee(t, f.Assignee) {
			continue
		}
		if f.Priority != "" && f.Priority != "all" && t.Priority != f.Priority {
			continue
		}
		out = append(out, t)
	}
	return out
}

// matchesSearch matches when any of title, description or task number
// contains the query, case-insensitively.
func matchesSearch(t *repository.Task, q string) bool {
	if strings.Contains(strings.ToLower(t.Title), q) {
		return true
	}
	if t.Description != nil && strings.Contains(strings.ToLower(*t.Description), q) {
		return true
	}
	return strings.Contains(strings.ToLower(t.TaskNo), q)
}

func matchesAssignee(t *repository.Task, filter string) bool {
	switch filter {
	case "", "all":
		return true
	case "unassigned":
		return t.AssigneeID == nil
	default:
		return t.AssigneeID != nil && *t.AssigneeID == filter
	}
}

// groupByStatus buckets tasks by status, preserving input order within each
// bucket. All six buckets are always present, empty slices included.
func groupByStatus(tasks []*repository.Task) map[string][]*repository.Task {
	board := make(map[string][]*repository.Task, len(types.TaskStatusOrder))
	for _, status := range types.TaskStatusOrder {
		board[status] = []*repository.Task{}
	}
	for _, t := range tasks {
		if _, ok := board[t.Status]; ok {
			board[t.Status] = append(board[t.Status], t)
		}
	}
	return board
}

func summarizeTasks(tasks []*repository.Task) *TaskSummary {
	summary := &TaskSummary{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case types.StatusToDo:
			summary.ToDo++
		case types.StatusInProgress, types.StatusInCodeReview, types.StatusInQA:
			summary.InProgress++
		case types.StatusDone, types.StatusReadyToDeployment:
			summary.Done++
		}
		summary.TotalPoints += t.Points
	}
	return summary
}

func isCompletedStatus(status string) bool {
	return status == types.StatusDone || status == types.StatusReadyToDeployment
}

// monthlyCompletedPoints buckets an employee's completed story points by the
// calendar month of the owning sprint's end date (start date when the end
// date is zero), then densifies the range: one entry per month from the
// earliest to the latest month with activity, zeros in between. No synthetic
// range is produced for an empty input.
func monthlyCompletedPoints(tasks []*repository.Task, sprints []*repository.Sprint) []MonthlyPoints {
	sprintByID := make(map[string]*repository.Sprint, len(sprints))
	for _, s := range sprints {
		sprintByID[s.ID] = s
	}

	pointsByMonth := map[string]int{}
	for _, t := range tasks {
		if !isCompletedStatus(t.Status) || t.SprintID == nil {
			continue
		}
		sprint, ok := sprintByID[*t.SprintID]
		if !ok {
			continue
		}
		date := sprint.EndDate
		if date.IsZero() {
			date = sprint.StartDate
		}
		if date.IsZero() {
			continue
		}
		pointsByMonth[date.Format("2006-01")] += t.Points
	}

	if len(pointsByMonth) == 0 {
		return []MonthlyPoints{}
	}

	keys := make([]string, 0, len(pointsByMonth))
	for k := range pointsByMonth {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	first, _ := time.Parse("2006-01", keys[0])
	last, _ := time.Parse("2006-01", keys[len(keys)-1])

	var out []MonthlyPoints
	for cursor := first; !cursor.After(last); cursor = cursor.AddDate(0, 1, 0) {
		key := cursor.Format("2006-01")
		out = append(out, MonthlyPoints{Month: key, Points: pointsByMonth[key]})
	}
	return out
}
