package entities

import "time"

type Project struct {
	ID          string    `json:"id" gorm:"primaryKey;type:text"`
	Name        string    `json:"name" gorm:"not null"`
	Description *string   `json:"description"`
	Color       *string   `json:"color"`
	UserID      string    `json:"userId" gorm:"index;not null"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// TaskCount is derived, never stored.
	TaskCount int `json:"taskCount" gorm:"->;-:migration"`
}

func (Project) TableName() string { return "projects" }
