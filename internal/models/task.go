package models

import "time"

// TaskCategory groups operation tasks on worker dashboards
type TaskCategory string

const (
	TaskCategorySanitation  TaskCategory = "sanitation"
	TaskCategoryMaintenance TaskCategory = "maintenance"
	TaskCategoryInspection  TaskCategory = "inspection"
)

// SkillLevel is the minimum skill a task needs
type SkillLevel string

const (
	SkillBasic        SkillLevel = "basic"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
)

// TaskKind distinguishes the two bin-management actions
type TaskKind string

const (
	TaskKindBinSetOut    TaskKind = "bin_set_out"
	TaskKindBinRetrieval TaskKind = "bin_retrieval"
)

// OperationTask is handed to the task consumer; the consumer owns persistence
// and de-duplicates by ID
type OperationTask struct {
	ID                string        `json:"id"`
	Name              string        `json:"name"`
	Kind              TaskKind      `json:"kind"`
	Category          TaskCategory  `json:"category"`
	Location          string        `json:"location"`
	BuildingID        string        `json:"building_id"`
	WorkerID          string        `json:"worker_id"`
	CollectionDay     CollectionDay `json:"collection_day"`
	ScheduledTime     TimeOfDay     `json:"scheduled_time"`
	EstimatedDuration time.Duration `json:"-"`
	SkillLevel        SkillLevel    `json:"skill_level"`
	Instructions      string        `json:"instructions"`
}

// EstimatedMinutes is what clients see in place of the raw duration
func (t OperationTask) EstimatedMinutes() int {
	return int(t.EstimatedDuration / time.Minute)
}

// DispatchedTask is a persisted task row for a concrete service date
type DispatchedTask struct {
	ID               string    `json:"id" db:"id"`
	ServiceDate      time.Time `json:"service_date" db:"service_date"`
	DispatchID       string    `json:"dispatch_id" db:"dispatch_id"`
	WorkerID         string    `json:"worker_id" db:"worker_id"`
	BuildingID       string    `json:"building_id" db:"building_id"`
	Kind             string    `json:"kind" db:"kind"`
	Name             string    `json:"name" db:"name"`
	Category         string    `json:"category" db:"category"`
	Location         string    `json:"location" db:"location"`
	CollectionDay    string    `json:"collection_day" db:"collection_day"`
	ScheduledAt      int64     `json:"scheduled_at" db:"scheduled_at"` // Unix timestamp
	EstimatedMinutes int       `json:"estimated_minutes" db:"estimated_minutes"`
	SkillLevel       string    `json:"skill_level" db:"skill_level"`
	Instructions     string    `json:"instructions" db:"instructions"`
	IsCompleted      bool      `json:"is_completed" db:"is_completed"`
	CreatedAt        int64     `json:"created_at" db:"created_at"`
}

// DispatchedReminder is a persisted reminder row for a concrete service date
type DispatchedReminder struct {
	ID            string    `json:"id" db:"id"`
	ServiceDate   time.Time `json:"service_date" db:"service_date"`
	DispatchID    string    `json:"dispatch_id" db:"dispatch_id"`
	BuildingID    string    `json:"building_id" db:"building_id"`
	BuildingName  string    `json:"building_name" db:"building_name"`
	Action        string    `json:"action" db:"action"`
	CollectionDay string    `json:"collection_day" db:"collection_day"`
	ScheduledAt   int64     `json:"scheduled_at" db:"scheduled_at"`
	Instructions  string    `json:"instructions" db:"instructions"`
	CreatedAt     int64     `json:"created_at" db:"created_at"`
}

// DispatchRun records one materialization of a day's tasks and reminders
type DispatchRun struct {
	ID                string    `json:"id" db:"id"`
	ServiceDate       time.Time `json:"service_date" db:"service_date"`
	Day               string    `json:"day" db:"day"`
	TasksGenerated    int       `json:"tasks_generated" db:"tasks_generated"`
	TasksInserted     int       `json:"tasks_inserted" db:"tasks_inserted"`
	RemindersInserted int       `json:"reminders_inserted" db:"reminders_inserted"`
	IssueCount        int       `json:"issue_count" db:"issue_count"`
	TriggeredBy       *string   `json:"triggered_by,omitempty" db:"triggered_by"`
	CreatedAt         int64     `json:"created_at" db:"created_at"`
}

// TaskResponse is the JSON shape clients receive for a generated task
type TaskResponse struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	Kind             TaskKind     `json:"kind"`
	Category         TaskCategory `json:"category"`
	Location         string       `json:"location"`
	BuildingID       string       `json:"building_id"`
	WorkerID         string       `json:"worker_id"`
	CollectionDay    string       `json:"collection_day"`
	ScheduledTime    string       `json:"scheduled_time"`
	EstimatedMinutes int          `json:"estimated_minutes"`
	SkillLevel       SkillLevel   `json:"skill_level"`
	Instructions     string       `json:"instructions"`
}

// ToTaskResponse converts an OperationTask to TaskResponse
func (t *OperationTask) ToTaskResponse() TaskResponse {
	return TaskResponse{
		ID:               t.ID,
		Name:             t.Name,
		Kind:             t.Kind,
		Category:         t.Category,
		Location:         t.Location,
		BuildingID:       t.BuildingID,
		WorkerID:         t.WorkerID,
		CollectionDay:    t.CollectionDay.Key(),
		ScheduledTime:    t.ScheduledTime.String(),
		EstimatedMinutes: t.EstimatedMinutes(),
		SkillLevel:       t.SkillLevel,
		Instructions:     t.Instructions,
	}
}
