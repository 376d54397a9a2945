package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"gorm.io/gorm"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db}
}

// FindByID returns a user by its ID
func (r *UserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	return r.findBy(ctx, "id = ?", id)
}

// FindByUsername returns the user with the given username
func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findBy(ctx, "username = ?", username)
}

func (r *UserRepo) findBy(ctx context.Context, cond string, value string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where(cond, value).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user %q: %w", value, errs.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Add inserts a user unless the username is already taken
func (r *UserRepo) Add(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("username %q: %w", user.Username, errs.ErrDuplicate)
		}
		return tx.Create(user).Error
	})
}
