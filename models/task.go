package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task stage constants
const (
	TaskStageBacklog    = "Backlog"
	TaskStageTodo       = "Todo"
	TaskStageInProgress = "In Progress"
	TaskStageReview     = "Review"
	TaskStageDone       = "Done"
	TaskStageDropped    = "Dropped"
)

// TaskStages lists the valid stages in board order.
var TaskStages = []string{
	TaskStageBacklog, TaskStageTodo, TaskStageInProgress,
	TaskStageReview, TaskStageDone, TaskStageDropped,
}

// ChecklistItem is a single entry in a task checklist
type ChecklistItem struct {
	Item string `json:"item"`
	Done bool   `json:"done"`
}

// Task represents a unit of work assigned to an attorney
type Task struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Title   string `gorm:"not null" json:"title"`
	Details string `gorm:"type:text" json:"details"`

	CaseID *string `gorm:"type:uuid;index" json:"caseId,omitempty"`
	Case   *Case   `gorm:"foreignKey:CaseID" json:"case,omitempty"`

	// Free-text owner/creator names, same identity convention as
	// Case.LeadAttorney.
	Owner     string `gorm:"index" json:"owner"`
	CreatedBy string `json:"createdBy"`

	Urgency string `gorm:"not null;default:Standard" json:"urgency"`
	Stage   string `gorm:"not null;default:Todo;index" json:"stage"`

	Deadline   *time.Time `gorm:"index" json:"deadline,omitempty"`
	ResolvedAt *time.Time `json:"resolvedAt,omitempty"`

	PlannedHours float64 `gorm:"not null;default:0" json:"plannedHours"`
	LoggedHours  float64 `gorm:"not null;default:0" json:"loggedHours"`

	// Percentage, clamped to [0,100] on save.
	Progress int `gorm:"not null;default:0" json:"progress"`

	Checklist []ChecklistItem `gorm:"serializer:json" json:"checklist"`
}

// BeforeCreate hook to generate UUID
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

// BeforeSave hook to clamp progress to [0,100]
func (t *Task) BeforeSave(tx *gorm.DB) error {
	if t.Progress < 0 {
		t.Progress = 0
	}
	if t.Progress > 100 {
		t.Progress = 100
	}
	return nil
}

// TableName specifies the table name for Task model
func (Task) TableName() string {
	return "tasks"
}

// IsDone checks if the task is completed
func (t *Task) IsDone() bool {
	return t.Stage == TaskStageDone
}

// IsValidTaskStage checks if the stage is valid
func IsValidTaskStage(stage string) bool {
	for _, s := range TaskStages {
		if s == stage {
			return true
		}
	}
	return false
}
