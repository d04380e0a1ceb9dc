package models

import "time"

// ============================================
// AUTH REQUESTS & RESPONSES
// ============================================

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token              string           `json:"token"`
	Employee           EmployeeResponse `json:"employee"`
	MustChangePassword bool             `json:"mustChangePassword"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

// ============================================
// EMPLOYEE REQUESTS & RESPONSES
// ============================================

type CreateEmployeeRequest struct {
	Name        string  `json:"name" binding:"required"`
	Email       string  `json:"email" binding:"required,email"`
	Phone       *string `json:"phone"`
	Role        *string `json:"role"`
	Department  *string `json:"department"`
	Status      string  `json:"status"`
	JoiningDate *string `json:"joiningDate"` // YYYY-MM-DD
	IsAdmin     bool    `json:"isAdmin"`
}

type UpdateEmployeeRequest struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Role        *string `json:"role"`
	Department  *string `json:"department"`
	Status      *string `json:"status"`
	JoiningDate *string `json:"joiningDate"`
	IsAdmin     *bool   `json:"isAdmin"`
}

type EmployeeResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       *string    `json:"phone,omitempty"`
	Role        *string    `json:"role,omitempty"`
	Department  *string    `json:"department,omitempty"`
	Status      string     `json:"status"`
	JoiningDate *time.Time `json:"joiningDate,omitempty"`
	IsAdmin     bool       `json:"isAdmin"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// ============================================
// SPRINT REQUESTS
// ============================================

type CreateSprintRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	StartDate   string  `json:"startDate" binding:"required"` // YYYY-MM-DD
	EndDate     string  `json:"endDate" binding:"required"`
}

type UpdateSprintRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	StartDate   *string `json:"startDate"`
	EndDate     *string `json:"endDate"`
}

// ============================================
// TASK REQUESTS
// ============================================

type CreateTaskRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority" binding:"required"`
	Points      int     `json:"points" binding:"required"`
	SprintID    string  `json:"sprintId" binding:"required"`
	AssigneeID  *string `json:"assigneeId"`
	QAOwnerID   *string `json:"qaOwnerId"`
}

type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	Points      *int    `json:"points"`
	AssigneeID  *string `json:"assigneeId"`
	QAOwnerID   *string `json:"qaOwnerId"`
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type MoveTaskRequest struct {
	SprintID *string `json:"sprintId"`
}

// ============================================
// HISTORY RESPONSES
// ============================================

type SprintHistoryResponse struct {
	Sprint SprintSummary       `json:"sprint"`
	Tasks  []HistoryTaskDetail `json:"tasks"`
}

type SprintSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Status    string    `json:"status"`
}

type HistoryTaskDetail struct {
	ID           string  `json:"id"`
	TaskNo       string  `json:"taskNo"`
	Title        string  `json:"title"`
	Description  *string `json:"description,omitempty"`
	Status       string  `json:"status"`
	Priority     string  `json:"priority"`
	Points       int     `json:"points"`
	AssigneeName *string `json:"assigneeName,omitempty"`
	QAOwnerName  *string `json:"qaOwnerName,omitempty"`
}
