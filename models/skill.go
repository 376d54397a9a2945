package models

import "time"

// Skill represents a capability shown in the skills section
type Skill struct {
	ID          string     `json:"id" gorm:"type:text;primaryKey;not null"`
	Title       string     `json:"title" gorm:"type:text;not null"`
	Description string     `json:"description" gorm:"type:text;not null"`
	Icon        string     `json:"icon" gorm:"type:text;not null"`
	Order       int        `json:"order" gorm:"column:order;type:integer;not null;default:0"`
	CreatedAt   *time.Time `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt   *time.Time `json:"updatedAt" gorm:"column:updated_at"`
}
