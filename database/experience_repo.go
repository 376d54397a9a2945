package database

import (
	"context"

	"github.com/rpupo63/portfolio-site-backend/models"
	"gorm.io/gorm"
)

type ExperienceRepo struct {
	db *gorm.DB
}

func NewExperienceRepo(db *gorm.DB) *ExperienceRepo {
	return &ExperienceRepo{db}
}

// FindAll returns the work history in display order
func (r *ExperienceRepo) FindAll(ctx context.Context) ([]models.Experience, error) {
	experiences := []models.Experience{}
	err := r.db.WithContext(ctx).Order(entityOrdering).Find(&experiences).Error
	return experiences, err
}

// Add inserts a new experience into the database
func (r *ExperienceRepo) Add(ctx context.Context, experience *models.Experience) error {
	return r.db.WithContext(ctx).Create(experience).Error
}
