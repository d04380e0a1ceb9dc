package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskflow-labs/taskflow-backend/internal/repository"
	"github.com/taskflow-labs/taskflow-backend/internal/types"
)

func newSprintServiceForTest() (SprintService, *fakeSprintRepo, *fakeTaskRepo, *fakeEmployeeRepo) {
	sprintRepo := &fakeSprintRepo{}
	taskRepo := &fakeTaskRepo{}
	employeeRepo := &fakeEmployeeRepo{}
	svc := NewSprintService(sprintRepo, taskRepo, employeeRepo, nil)
	return svc, sprintRepo, taskRepo, employeeRepo
}

func sprintDates() (time.Time, time.Time) {
	start := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 14)
}

func TestSprintCreateDefaultsToNotStarted(t *testing.T) {
	svc, _, _, _ := newSprintServiceForTest()
	start, end := sprintDates()

	sprint, err := svc.Create(context.Background(), &CreateSprintInput{
		Name:      "Sprint 1",
		StartDate: start,
		EndDate:   end,
	})
	require.NoError(t, err)
	require.NotNil(t, sprint)

	assert.Equal(t, types.SprintToBeStarted, sprint.Status)
	assert.NotEmpty(t, sprint.ID)
}

func TestSprintCreateValidation(t *testing.T) {
	svc, _, _, _ := newSprintServiceForTest()
	start, end := sprintDates()

	_, err := svc.Create(context.Background(), &CreateSprintInput{StartDate: start, EndDate: end})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "name", ve.Field)

	// End date before start date is rejected.
	_, err = svc.Create(context.Background(), &CreateSprintInput{
		Name:      "Backwards",
		StartDate: end,
		EndDate:   start,
	})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "endDate", ve.Field)

	// Single-day sprint (start == end) is allowed.
	_, err = svc.Create(context.Background(), &CreateSprintInput{
		Name:      "One day",
		StartDate: start,
		EndDate:   start,
	})
	assert.NoError(t, err)

	_, err = svc.Create(context.Background(), &CreateSprintInput{
		Name:      "Bad status",
		Status:    "archived",
		StartDate: start,
		EndDate:   end,
	})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "status", ve.Field)
}

func TestSprintLifecycle(t *testing.T) {
	svc, _, _, _ := newSprintServiceForTest()
	start, end := sprintDates()
	ctx := context.Background()

	sprint, err := svc.Create(ctx, &CreateSprintInput{Name: "Sprint 1", StartDate: start, EndDate: end})
	require.NoError(t, err)

	started, err := svc.Start(ctx, sprint.ID)
	require.NoError(t, err)
	assert.Equal(t, types.SprintInProgress, started.Status)

	// Starting twice is rejected.
	_, err = svc.Start(ctx, sprint.ID)
	assert.ErrorIs(t, err, ErrInvalidState)

	completed, err := svc.Complete(ctx, sprint.ID)
	require.NoError(t, err)
	assert.Equal(t, types.SprintCompleted, completed.Status)

	// Completing twice is rejected.
	_, err = svc.Complete(ctx, sprint.ID)
	assert.ErrorIs(t, err, ErrInvalidState)

	// A completed sprint can no longer be started or updated.
	_, err = svc.Start(ctx, sprint.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
	name := "renamed"
	_, err = svc.Update(ctx, sprint.ID, &UpdateSprintInput{Name: &name})
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestSprintCompleteFromNotStarted(t *testing.T) {
	svc, _, _, _ := newSprintServiceForTest()
	start, end := sprintDates()
	ctx := context.Background()

	sprint, err := svc.Create(ctx, &CreateSprintInput{Name: "Abandoned", StartDate: start, EndDate: end})
	require.NoError(t, err)

	// Completing without starting is allowed.
	completed, err := svc.Complete(ctx, sprint.ID)
	require.NoError(t, err)
	assert.Equal(t, types.SprintCompleted, completed.Status)
}

func TestSprintUpdateRecheckDates(t *testing.T) {
	svc, _, _, _ := newSprintServiceForTest()
	start, end := sprintDates()
	ctx := context.Background()

	sprint, err := svc.Create(ctx, &CreateSprintInput{Name: "Sprint 1", StartDate: start, EndDate: end})
	require.NoError(t, err)

	// Moving the end date before the start date is rejected even when only
	// one side changes.
	badEnd := start.AddDate(0, 0, -1)
	_, err = svc.Update(ctx, sprint.ID, &UpdateSprintInput{EndDate: &badEnd})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "endDate", ve.Field)

	newEnd := end.AddDate(0, 0, 7)
	updated, err := svc.Update(ctx, sprint.ID, &UpdateSprintInput{EndDate: &newEnd})
	require.NoError(t, err)
	assert.Equal(t, newEnd, updated.EndDate)
}

func TestSprintDeleteDetachesTasks(t *testing.T) {
	svc, sprintRepo, taskRepo, _ := newSprintServiceForTest()
	start, end := sprintDates()
	ctx := context.Background()

	sprint, err := svc.Create(ctx, &CreateSprintInput{Name: "Doomed", StartDate: start, EndDate: end})
	require.NoError(t, err)

	taskRepo.tasks = []*repository.Task{
		{ID: "t1", TaskNo: "ST-001", Title: "Survivor", Status: types.StatusToDo, SprintID: &sprint.ID},
		{ID: "t2", TaskNo: "ST-002", Title: "Also survives", Status: types.StatusDone, SprintID: &sprint.ID},
	}

	require.NoError(t, svc.Delete(ctx, sprint.ID))

	assert.Empty(t, sprintRepo.sprints)
	// Tasks survive with the sprint reference cleared.
	require.Len(t, taskRepo.tasks, 2)
	for _, task := range taskRepo.tasks {
		assert.Nil(t, task.SprintID)
	}
}

func TestSprintListActiveAndCompleted(t *testing.T) {
	svc, _, _, _ := newSprintServiceForTest()
	start, end := sprintDates()
	ctx := context.Background()

	pending, err := svc.Create(ctx, &CreateSprintInput{Name: "Pending", StartDate: start, EndDate: end})
	require.NoError(t, err)
	running, err := svc.Create(ctx, &CreateSprintInput{Name: "Running", StartDate: start, EndDate: end})
	require.NoError(t, err)
	done, err := svc.Create(ctx, &CreateSprintInput{Name: "Done", StartDate: start, EndDate: end})
	require.NoError(t, err)

	_, err = svc.Start(ctx, running.ID)
	require.NoError(t, err)
	_, err = svc.Complete(ctx, done.ID)
	require.NoError(t, err)

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	ids := []string{active[0].ID, active[1].ID}
	assert.Contains(t, ids, pending.ID)
	assert.Contains(t, ids, running.ID)

	completed, err := svc.ListCompleted(ctx)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, done.ID, completed[0].ID)
}

func TestSprintHistoryOnlyForCompleted(t *testing.T) {
	svc, _, taskRepo, employeeRepo := newSprintServiceForTest()
	start, end := sprintDates()
	ctx := context.Background()

	sprint, err := svc.Create(ctx, &CreateSprintInput{Name: "Sprint 1", StartDate: start, EndDate: end})
	require.NoError(t, err)

	// History is a view over completed sprints only.
	_, err = svc.History(ctx, sprint.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	employeeRepo.employees = []*repository.Employee{
		{ID: "emp-1", Name: "Asha Rana", Email: "asha@taskflow.dev"},
	}
	assignee := "emp-1"
	ghost := "emp-gone"
	taskRepo.tasks = []*repository.Task{
		{ID: "t1", TaskNo: "ST-001", Title: "Shipped", Status: types.StatusDone, Points: 5, SprintID: &sprint.ID, AssigneeID: &assignee},
		{ID: "t2", TaskNo: "ST-002", Title: "Orphaned", Status: types.StatusToDo, Points: 3, SprintID: &sprint.ID, AssigneeID: &ghost},
	}

	_, err = svc.Complete(ctx, sprint.ID)
	require.NoError(t, err)

	history, err := svc.History(ctx, sprint.ID)
	require.NoError(t, err)
	require.Len(t, history.Tasks, 2)

	require.NotNil(t, history.Tasks[0].AssigneeName)
	assert.Equal(t, "Asha Rana", *history.Tasks[0].AssigneeName)
	// A reference to a deleted employee resolves to no name, not an error.
	assert.Nil(t, history.Tasks[1].AssigneeName)
}

func TestSprintGetNotFound(t *testing.T) {
	svc, _, _, _ := newSprintServiceForTest()
	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
