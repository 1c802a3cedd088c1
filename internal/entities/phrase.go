package entities

import "time"

type Phrase struct {
	ID        string    `json:"id" gorm:"primaryKey;type:text"`
	Phrase    string    `json:"phrase" gorm:"not null"`
	Author    string    `json:"author" gorm:"index;not null"`
	Tags      []string  `json:"tags" gorm:"serializer:json;type:text;not null"`
	UserID    string    `json:"userId" gorm:"index;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Phrase) TableName() string { return "phrases" }
