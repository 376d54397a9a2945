package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProjectRecord is the projects table as gorm sees it. Tags holds the JSON
// text column and is decoded before anything leaves this package.
type ProjectRecord struct {
	ID           string                `gorm:"type:text;primaryKey;not null"`
	Title        string                `gorm:"type:text;not null"`
	Description  string                `gorm:"type:text;not null"`
	ProjectBrief *string               `gorm:"column:project_brief;type:text"`
	Client       *string               `gorm:"type:text"`
	Location     *string               `gorm:"type:text"`
	Tags         datatypes.JSON        `gorm:"type:text"`
	Featured     bool                  `gorm:"not null;default:false"`
	Order        int                   `gorm:"column:order;type:integer;not null;default:0"`
	CreatedAt    *time.Time            `gorm:"column:created_at"`
	UpdatedAt    *time.Time            `gorm:"column:updated_at"`
	Images       []models.ProjectImage `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
}

func (ProjectRecord) TableName() string {
	return "projects"
}

// toProject decodes the tags column into the domain shape
func (r ProjectRecord) toProject() models.Project {
	return models.Project{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		ProjectBrief: r.ProjectBrief,
		Client:       r.Client,
		Location:     r.Location,
		Tags:         decodeTags(r.Tags),
		Featured:     r.Featured,
		Order:        r.Order,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

func preloadImages(db *gorm.DB) *gorm.DB {
	return db.Order(imageOrdering)
}

// FindAll returns all projects in display order with their galleries
func (r *ProjectRepo) FindAll(ctx context.Context) ([]ProjectRecord, error) {
	records := []ProjectRecord{}
	err := r.db.WithContext(ctx).Preload("Images", preloadImages).Order(entityOrdering).Find(&records).Error
	return records, err
}

// FindByID returns a project by its ID without its gallery
func (r *ProjectRepo) FindByID(ctx context.Context, id string) (*ProjectRecord, error) {
	var record ProjectRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("project %q: %w", id, errs.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Add inserts a new project into the database
func (r *ProjectRepo) Add(ctx context.Context, record *ProjectRecord) error {
	return r.db.WithContext(ctx).Omit("Images").Create(record).Error
}

// Delete removes a project and its images in one transaction. The image
// delete is explicit so the cascade holds even where foreign keys are off.
func (r *ProjectRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectImage{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&ProjectRecord{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("project %q: %w", id, errs.ErrNotFound)
		}
		return nil
	})
}
