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

func newTaskServiceForTest() (TaskService, *fakeTaskRepo, *fakeSprintRepo, *fakeEmployeeRepo) {
	taskRepo := &fakeTaskRepo{}
	sprintRepo := &fakeSprintRepo{
		sprints: []*repository.Sprint{{
			ID:        "sprint-1",
			Name:      "Sprint 1",
			Status:    types.SprintInProgress,
			StartDate: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC),
		}},
	}
	employeeRepo := &fakeEmployeeRepo{
		employees: []*repository.Employee{
			{ID: "emp-1", Name: "Asha Rana", Email: "asha@taskflow.dev"},
		},
	}
	svc := NewTaskService(taskRepo, sprintRepo, employeeRepo, nil)
	return svc, taskRepo, sprintRepo, employeeRepo
}

func TestTaskCreateAllocatesSequentialNumbers(t *testing.T) {
	svc, _, _, _ := newTaskServiceForTest()
	ctx := context.Background()

	first, err := svc.Create(ctx, &CreateTaskInput{
		Title: "First", Priority: types.PriorityMedium, Points: 3, SprintID: "sprint-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "ST-001", first.TaskNo)
	assert.Equal(t, types.StatusToDo, first.Status)

	second, err := svc.Create(ctx, &CreateTaskInput{
		Title: "Second", Priority: types.PriorityHigh, Points: 5, SprintID: "sprint-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "ST-002", second.TaskNo)
}

func TestTaskNumberFollowsHighWaterMark(t *testing.T) {
	svc, _, _, _ := newTaskServiceForTest()
	ctx := context.Background()

	first, err := svc.Create(ctx, &CreateTaskInput{
		Title: "First", Priority: types.PriorityMedium, Points: 2, SprintID: "sprint-1",
	})
	require.NoError(t, err)

	second, err := svc.Create(ctx, &CreateTaskInput{
		Title: "Second", Priority: types.PriorityMedium, Points: 2, SprintID: "sprint-1",
	})
	require.NoError(t, err)
	require.Equal(t, "ST-002", second.TaskNo)

	// Deleting a lower-numbered task leaves a permanent gap; allocation
	// continues from the surviving maximum.
	require.NoError(t, svc.Delete(ctx, first.ID))

	third, err := svc.Create(ctx, &CreateTaskInput{
		Title: "Third", Priority: types.PriorityMedium, Points: 2, SprintID: "sprint-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "ST-003", third.TaskNo)

	// Deleting the current maximum rolls the mark back, so its number is
	// handed out again.
	require.NoError(t, svc.Delete(ctx, third.ID))

	fourth, err := svc.Create(ctx, &CreateTaskInput{
		Title: "Fourth", Priority: types.PriorityMedium, Points: 2, SprintID: "sprint-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "ST-003", fourth.TaskNo)
}

func TestTaskCreateValidation(t *testing.T) {
	svc, _, _, _ := newTaskServiceForTest()
	ctx := context.Background()
	var ve *ValidationError

	_, err := svc.Create(ctx, &CreateTaskInput{Priority: types.PriorityMedium, Points: 3, SprintID: "sprint-1"})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "title", ve.Field)

	_, err = svc.Create(ctx, &CreateTaskInput{Title: "T", Priority: "urgent", Points: 3, SprintID: "sprint-1"})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "priority", ve.Field)

	for _, points := range []int{0, -1, 21} {
		_, err = svc.Create(ctx, &CreateTaskInput{Title: "T", Priority: types.PriorityMedium, Points: points, SprintID: "sprint-1"})
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "points", ve.Field)
	}

	_, err = svc.Create(ctx, &CreateTaskInput{Title: "T", Status: "blocked", Priority: types.PriorityMedium, Points: 3, SprintID: "sprint-1"})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "status", ve.Field)

	// Unknown sprint and unknown employee references are rejected.
	_, err = svc.Create(ctx, &CreateTaskInput{Title: "T", Priority: types.PriorityMedium, Points: 3, SprintID: "missing"})
	assert.ErrorIs(t, err, ErrNotFound)

	ghost := "emp-gone"
	_, err = svc.Create(ctx, &CreateTaskInput{
		Title: "T", Priority: types.PriorityMedium, Points: 3, SprintID: "sprint-1", AssigneeID: &ghost,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTaskSetStatusAllowsAnyJump(t *testing.T) {
	svc, _, _, _ := newTaskServiceForTest()
	ctx := context.Background()

	task, err := svc.Create(ctx, &CreateTaskInput{
		Title: "Jumper", Priority: types.PriorityMedium, Points: 3, SprintID: "sprint-1",
	})
	require.NoError(t, err)

	// Straight from the first column to the last; no transition rules.
	updated, err := svc.SetStatus(ctx, task.ID, types.StatusDone)
	require.NoError(t, err)
	assert.Equal(t, types.StatusDone, updated.Status)

	// And backwards again.
	updated, err = svc.SetStatus(ctx, task.ID, types.StatusInQA)
	require.NoError(t, err)
	assert.Equal(t, types.StatusInQA, updated.Status)

	_, err = svc.SetStatus(ctx, task.ID, "parked")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "status", ve.Field)
}

func TestTaskUpdateDoesNotTouchSprintOrNumber(t *testing.T) {
	svc, _, _, _ := newTaskServiceForTest()
	ctx := context.Background()

	task, err := svc.Create(ctx, &CreateTaskInput{
		Title: "Stable", Priority: types.PriorityMedium, Points: 3, SprintID: "sprint-1",
	})
	require.NoError(t, err)
	originalNo := task.TaskNo

	title := "Renamed"
	points := 8
	updated, err := svc.Update(ctx, task.ID, &UpdateTaskInput{Title: &title, Points: &points})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, 8, updated.Points)
	assert.Equal(t, originalNo, updated.TaskNo)
	require.NotNil(t, updated.SprintID)
	assert.Equal(t, "sprint-1", *updated.SprintID)
}

func TestTaskUpdateClearsAssigneeWithEmptyString(t *testing.T) {
	svc, _, _, _ := newTaskServiceForTest()
	ctx := context.Background()

	assignee := "emp-1"
	task, err := svc.Create(ctx, &CreateTaskInput{
		Title: "Owned", Priority: types.PriorityMedium, Points: 3, SprintID: "sprint-1", AssigneeID: &assignee,
	})
	require.NoError(t, err)
	require.NotNil(t, task.AssigneeID)

	empty := ""
	updated, err := svc.Update(ctx, task.ID, &UpdateTaskInput{AssigneeID: &empty})
	require.NoError(t, err)
	assert.Nil(t, updated.AssigneeID)
}

func TestTaskMoveToSprint(t *testing.T) {
	svc, _, sprintRepo, _ := newTaskServiceForTest()
	ctx := context.Background()

	sprintRepo.sprints = append(sprintRepo.sprints, &repository.Sprint{
		ID: "sprint-2", Name: "Sprint 2", Status: types.SprintToBeStarted,
		StartDate: time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	})

	task, err := svc.Create(ctx, &CreateTaskInput{
		Title: "Mover", Priority: types.PriorityMedium, Points: 3, SprintID: "sprint-1",
	})
	require.NoError(t, err)

	target := "sprint-2"
	moved, err := svc.MoveToSprint(ctx, task.ID, &target)
	require.NoError(t, err)
	require.NotNil(t, moved.SprintID)
	assert.Equal(t, "sprint-2", *moved.SprintID)

	// Moving to an unknown sprint fails and leaves the task untouched.
	missing := "sprint-missing"
	_, err = svc.MoveToSprint(ctx, task.ID, &missing)
	assert.ErrorIs(t, err, ErrNotFound)
	current, err := svc.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "sprint-2", *current.SprintID)

	// Nil detaches the task to the backlog.
	detached, err := svc.MoveToSprint(ctx, task.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, detached.SprintID)
}

func TestTaskListByStatusGroup(t *testing.T) {
	svc, _, _, _ := newTaskServiceForTest()
	ctx := context.Background()

	for _, in := range []struct {
		title  string
		status string
	}{
		{"A", types.StatusToDo},
		{"B", types.StatusDone},
		{"C", types.StatusToDo},
	} {
		_, err := svc.Create(ctx, &CreateTaskInput{
			Title: in.title, Status: in.status, Priority: types.PriorityMedium, Points: 2, SprintID: "sprint-1",
		})
		require.NoError(t, err)
	}

	board, err := svc.ListByStatusGroup(ctx, "sprint-1")
	require.NoError(t, err)

	// All six buckets present, empty ones included.
	require.Len(t, board, len(types.TaskStatusOrder))
	for _, status := range types.TaskStatusOrder {
		require.Contains(t, board, status)
	}

	require.Len(t, board[types.StatusToDo], 2)
	assert.Equal(t, "A", board[types.StatusToDo][0].Title)
	assert.Equal(t, "C", board[types.StatusToDo][1].Title)
	assert.Len(t, board[types.StatusDone], 1)
	assert.Empty(t, board[types.StatusInProgress])
}

func TestTaskDeleteNotFound(t *testing.T) {
	svc, _, _, _ := newTaskServiceForTest()
	err := svc.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
