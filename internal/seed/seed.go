// internal/seed/seed.go
package seed

import (
	"context"
	"log"
	"time"

	"github.com/taskflow-labs/taskflow-backend/internal/numbering"
	"github.com/taskflow-labs/taskflow-backend/internal/repository"
	"github.com/taskflow-labs/taskflow-backend/internal/types"
	"golang.org/x/crypto/bcrypt"
)

// SeedData creates a small but realistic development data set: an admin, a
// few employees, one running sprint and a handful of tasks spread across the
// board columns. Skipped when any employee already exists.
func SeedData(repos *repository.Repositories) {
	ctx := context.Background()

	existing, err := repos.EmployeeRepo.FindAll(ctx)
	if err != nil {
		log.Printf("[Seed] ⚠️ Could not check existing data: %v", err)
		return
	}
	if len(existing) > 0 {
		log.Println("[Seed] Data already exists, skipping...")
		return
	}

	log.Println("[Seed] 🌱 Creating initial data...")

	// ============================================
	// EMPLOYEES
	// ============================================
	password, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	admin := &repository.Employee{
		ID:       numbering.NewID(),
		Name:     "Asha Rana",
		Email:    "asha.rana@taskflow.dev",
		Password: string(password),
		Role:     stringPtr("Engineering Manager"),
		Status:   types.EmployeeActive,
		IsAdmin:  true,
	}
	repos.EmployeeRepo.Create(ctx, admin)

	dev := &repository.Employee{
		ID:         numbering.NewID(),
		Name:       "Nikhil Shrestha",
		Email:      "nikhil.shrestha@taskflow.dev",
		Password:   string(password),
		Role:       stringPtr("Backend Developer"),
		Department: stringPtr("Engineering"),
		Status:     types.EmployeeActive,
	}
	repos.EmployeeRepo.Create(ctx, dev)

	qa := &repository.Employee{
		ID:         numbering.NewID(),
		Name:       "Sita Gurung",
		Email:      "sita.gurung@taskflow.dev",
		Password:   string(password),
		Role:       stringPtr("QA Engineer"),
		Department: stringPtr("Engineering"),
		Status:     types.EmployeeActive,
	}
	repos.EmployeeRepo.Create(ctx, qa)

	log.Println("[Seed] ✅ Created 3 employees (asha.rana@taskflow.dev is admin, password123)")

	// ============================================
	// SPRINT
	// ============================================
	now := time.Now()
	sprint := &repository.Sprint{
		ID:          numbering.NewID(),
		Name:        "Sprint 1",
		Description: stringPtr("First development sprint"),
		Status:      types.SprintInProgress,
		StartDate:   now.AddDate(0, 0, -3),
		EndDate:     now.AddDate(0, 0, 11),
	}
	repos.SprintRepo.Create(ctx, sprint)

	log.Printf("[Seed] ✅ Created sprint %q (running)", sprint.Name)

	// ============================================
	// TASKS
	// ============================================
	seedTasks := []struct {
		title    string
		status   string
		priority string
		points   int
		assignee *string
		qaOwner  *string
	}{
		{"Set up project scaffolding", types.StatusDone, types.PriorityHigh, 3, &dev.ID, nil},
		{"Implement login flow", types.StatusInQA, types.PriorityVeryHigh, 5, &dev.ID, &qa.ID},
		{"Sprint board drag and drop", types.StatusInProgress, types.PriorityHigh, 8, &dev.ID, nil},
		{"Employee detail charts", types.StatusToDo, types.PriorityMedium, 5, nil, nil},
		{"Fix date formatting in reports", types.StatusToDo, types.PriorityLeast, 1, nil, nil},
	}

	for _, st := range seedTasks {
		numbers, err := repos.TaskRepo.AllTaskNumbers(ctx)
		if err != nil {
			log.Printf("[Seed] ⚠️ Could not load task numbers: %v", err)
			return
		}
		task := &repository.Task{
			ID:         numbering.NewID(),
			TaskNo:     numbering.NextTaskNumber(numbers),
			Title:      st.title,
			Status:     st.status,
			Priority:   st.priority,
			Points:     st.points,
			SprintID:   &sprint.ID,
			AssigneeID: st.assignee,
			QAOwnerID:  st.qaOwner,
		}
		repos.TaskRepo.Create(ctx, task)
	}

	log.Printf("[Seed] ✅ Created %d tasks on the board", len(seedTasks))
	log.Println("[Seed] 🎉 Seeding complete")
}

func stringPtr(s string) *string {
	return &s
}
