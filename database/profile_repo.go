package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"gorm.io/gorm"
)

type ProfileRepo struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) *ProfileRepo {
	return &ProfileRepo{db}
}

// Find returns the profile row. If several exist the oldest one wins.
func (r *ProfileRepo) Find(ctx context.Context) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Take(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("profile: %w", errs.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Add inserts the profile row
func (r *ProfileRepo) Add(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}
