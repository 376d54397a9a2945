package models

import "time"

// Project represents a portfolio project. Tags is always a plain list here;
// the persisted JSON text form never leaves the database package.
type Project struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	ProjectBrief *string    `json:"project_brief"`
	Client       *string    `json:"client"`
	Location     *string    `json:"location"`
	Tags         []string   `json:"tags"`
	Featured     bool       `json:"featured"`
	Order        int        `json:"order"`
	CreatedAt    *time.Time `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt"`
}

// ProjectWithImages is a project together with its gallery, sorted by image order
type ProjectWithImages struct {
	Project
	Images []ProjectImage `json:"images"`
}
