package entities

import "time"

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// Rank orders priorities LOW < MEDIUM < HIGH.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	}
	return 0
}

type Task struct {
	ID          string     `json:"id" gorm:"primaryKey;type:text"`
	Title       string     `json:"title" gorm:"not null"`
	Description *string    `json:"description"`
	Completed   bool       `json:"completed" gorm:"not null;default:false"`
	DueDate     *time.Time `json:"dueDate"`
	Priority    Priority   `json:"priority" gorm:"type:text;not null;default:MEDIUM"`
	ProjectID   string     `json:"projectId" gorm:"index;not null"`
	UserID      string     `json:"userId" gorm:"index;not null"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	Project *ProjectRef `json:"project,omitempty" gorm:"-"`
}

func (Task) TableName() string { return "tasks" }

// ProjectRef is the slice of a project embedded in task responses.
type ProjectRef struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Color *string `json:"color"`
}
