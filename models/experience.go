package models

import "time"

// Experience represents a single position in the work history
type Experience struct {
	ID          string     `json:"id" gorm:"type:text;primaryKey;not null"`
	Company     string     `json:"company" gorm:"type:text;not null"`
	Role        string     `json:"role" gorm:"type:text;not null"`
	Period      string     `json:"period" gorm:"type:text;not null"`
	Description string     `json:"description" gorm:"type:text;not null"`
	Order       int        `json:"order" gorm:"column:order;type:integer;not null;default:0"`
	CreatedAt   *time.Time `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt   *time.Time `json:"updatedAt" gorm:"column:updated_at"`
}
