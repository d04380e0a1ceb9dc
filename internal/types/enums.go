package types

// Task Status values (board column order)
const (
	StatusToDo              = "to_do"
	StatusInProgress        = "in_progress"
	StatusInCodeReview      = "in_code_review"
	StatusInQA              = "in_qa"
	StatusReadyToDeployment = "ready_to_deployment"
	StatusDone              = "done"
)

// Task Priority values
const (
	PriorityLeast    = "least"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityVeryHigh = "very_high"
)

// Sprint Status values
const (
	SprintToBeStarted = "to_be_started"
	SprintInProgress  = "in_progress"
	SprintCompleted   = "completed"
)

// Employee Status values
const (
	EmployeeActive   = "active"
	EmployeeInactive = "inactive"
)

// Story point bounds
const (
	MinStoryPoints = 1
	MaxStoryPoints = 20
)

// TaskStatusOrder is the single source of truth for the workflow order and
// the board column order. The server does not enforce transitions; any
// status may be set directly.
var TaskStatusOrder = []string{
	StatusToDo, StatusInProgress, StatusInCodeReview,
	StatusInQA, StatusReadyToDeployment, StatusDone,
}

var ValidPriorities = []string{
	PriorityLeast, PriorityMedium, PriorityHigh, PriorityVeryHigh,
}

var ValidSprintStatuses = []string{
	SprintToBeStarted, SprintInProgress, SprintCompleted,
}

var ValidEmployeeStatuses = []string{
	EmployeeActive, EmployeeInactive,
}

// Helper functions for validation
func IsValidTaskStatus(status string) bool {
	for _, s := range TaskStatusOrder {
		if s == status {
			return true
		}
	}
	return false
}

func IsValidPriority(priority string) bool {
	for _, p := range ValidPriorities {
		if p == priority {
			return true
		}
	}
	return false
}

func IsValidSprintStatus(status string) bool {
	for _, s := range ValidSprintStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func IsValidEmployeeStatus(status string) bool {
	for _, s := range ValidEmployeeStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func IsValidStoryPoints(points int) bool {
	return points >= MinStoryPoints && points <= MaxStoryPoints
}
