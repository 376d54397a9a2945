package database

import (
	"context"

	"github.com/rpupo63/portfolio-site-backend/models"
)

// Reader is the read side used by the HTTP API. A missing profile,
// project or user is reported as an error wrapping errs.ErrNotFound; anything else
// is a backend fault.
type Reader interface {
	GetSkills(ctx context.Context) ([]models.Skill, error)
	GetExperiences(ctx context.Context) ([]models.Experience, error)
	GetProjects(ctx context.Context) ([]models.ProjectWithImages, error)
	GetProjectByID(ctx context.Context, id string) (*models.ProjectWithImages, error)
	GetProfile(ctx context.Context) (*models.Profile, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Writer is only used by offline seeding and administrative tooling
type Writer interface {
	CreateSkill(ctx context.Context, in models.NewSkill) (*models.Skill, error)
	CreateExperience(ctx context.Context, in models.NewExperience) (*models.Experience, error)
	CreateProject(ctx context.Context, in models.NewProject) (*models.Project, error)
	CreateProjectImage(ctx context.Context, in models.NewProjectImage) (*models.ProjectImage, error)
	CreateProfile(ctx context.Context, in models.NewProfile) (*models.Profile, error)
	CreateUser(ctx context.Context, in models.NewUser) (*models.User, error)
	DeleteProject(ctx context.Context, id string) error
}

// Storage is implemented by Database (gorm, camelCase native) and
// SupabaseStorage (sqlx over the hosted snake_case schema).
type Storage interface {
	Reader
	Writer
	Ping(ctx context.Context) error
	Close() error
}

var (
	_ Storage = Database{}
	_ Storage = (*SupabaseStorage)(nil)
)
