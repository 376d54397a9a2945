package models

import "time"

// ProjectImage is one gallery entry of a project
type ProjectImage struct {
	ID         string     `json:"id" gorm:"type:text;primaryKey;not null"`
	ProjectID  string     `json:"projectId" gorm:"column:project_id;type:text;not null;index:idx_project_images_project_id"`
	ImageURL   *string    `json:"imageUrl" gorm:"column:image_url;type:text"`
	ImageData  *string    `json:"imageData" gorm:"column:image_data;type:text"`
	Caption    *string    `json:"caption" gorm:"type:text"`
	ImageOrder *int       `json:"imageOrder" gorm:"column:image_order;type:integer;default:0"`
	CreatedAt  *time.Time `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt  *time.Time `json:"updatedAt" gorm:"column:updated_at"`
}

// Src resolves the image to something an <img> tag can use.
func (i ProjectImage) Src() string {
	return ImageSrc(i.ImageURL, i.ImageData)
}

// SortKey treats a missing image order as 0.
func (i ProjectImage) SortKey() int {
	if i.ImageOrder == nil {
		return 0
	}
	return *i.ImageOrder
}
