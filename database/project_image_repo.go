package database

import (
	"context"
	"fmt"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"gorm.io/gorm"
)

type ProjectImageRepo struct {
	db *gorm.DB
}

func NewProjectImageRepo(db *gorm.DB) *ProjectImageRepo {
	return &ProjectImageRepo{db}
}

// FindByProjectID returns one project's gallery in image order
func (r *ProjectImageRepo) FindByProjectID(ctx context.Context, projectID string) ([]models.ProjectImage, error) {
	images := []models.ProjectImage{}
	err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order(imageOrdering).Find(&images).Error
	return images, err
}

// Add inserts an image after checking that its project exists
func (r *ProjectImageRepo) Add(ctx context.Context, image *models.ProjectImage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&ProjectRecord{}).Where("id = ?", image.ProjectID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("project %q: %w", image.ProjectID, errs.ErrNotFound)
		}
		return tx.Create(image).Error
	})
}
