package database

import (
	"context"

	"github.com/rpupo63/portfolio-site-backend/models"
	"gorm.io/gorm"
)

type SkillRepo struct {
	db *gorm.DB
}

func NewSkillRepo(db *gorm.DB) *SkillRepo {
	return &SkillRepo{db}
}

// FindAll returns all skills in display order
func (r *SkillRepo) FindAll(ctx context.Context) ([]models.Skill, error) {
	skills := []models.Skill{}
	err := r.db.WithContext(ctx).Order(entityOrdering).Find(&skills).Error
	return skills, err
}

// Add inserts a new skill into the database
func (r *SkillRepo) Add(ctx context.Context, skill *models.Skill) error {
	return r.db.WithContext(ctx).Create(skill).Error
}
