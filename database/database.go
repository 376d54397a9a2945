package database

import (
	"context"
	"fmt"

	"github.com/rpupo63/portfolio-site-backend/models"
	"gorm.io/gorm"
)

// Database is the gorm-backed Storage. gorm maps columns onto the camelCase
// domain structs directly, so only the projects table needs converting.
type Database struct {
	db               *gorm.DB
	skillRepo        *SkillRepo
	experienceRepo   *ExperienceRepo
	projectRepo      *ProjectRepo
	projectImageRepo *ProjectImageRepo
	profileRepo      *ProfileRepo
	userRepo         *UserRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:               db,
		skillRepo:        NewSkillRepo(db),
		experienceRepo:   NewExperienceRepo(db),
		projectRepo:      NewProjectRepo(db),
		projectImageRepo: NewProjectImageRepo(db),
		profileRepo:      NewProfileRepo(db),
		userRepo:         NewUserRepo(db),
	}
}

// Migrate creates or updates the portfolio tables
func (d Database) Migrate() error {
	return d.db.AutoMigrate(portfolioModels()...)
}

func (d Database) GetSkills(ctx context.Context) ([]models.Skill, error) {
	skills, err := d.skillRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("skill repo: find all: %w", err)
	}
	return skills, nil
}

func (d Database) GetExperiences(ctx context.Context) ([]models.Experience, error) {
	experiences, err := d.experienceRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("experience repo: find all: %w", err)
	}
	return experiences, nil
}

func (d Database) GetProjects(ctx context.Context) ([]models.ProjectWithImages, error) {
	records, err := d.projectRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("project repo: find all: %w", err)
	}

	projects := make([]models.ProjectWithImages, 0, len(records))
	for _, record := range records {
		projects = append(projects, withImages(record.toProject(), record.Images))
	}
	return projects, nil
}

func (d Database) GetProjectByID(ctx context.Context, id string) (*models.ProjectWithImages, error) {
	record, err := d.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("project repo: find by id: %w", err)
	}

	images, err := d.projectImageRepo.FindByProjectID(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("project image repo: find by project id: %w", err)
	}

	project := withImages(record.toProject(), images)
	return &project, nil
}

func (d Database) GetProfile(ctx context.Context) (*models.Profile, error) {
	profile, err := d.profileRepo.Find(ctx)
	if err != nil {
		return nil, fmt.Errorf("profile repo: find: %w", err)
	}
	return profile, nil
}

func (d Database) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := d.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user repo: find by id: %w", err)
	}
	return user, nil
}

func (d Database) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := d.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("user repo: find by username: %w", err)
	}
	return user, nil
}

func (d Database) CreateSkill(ctx context.Context, in models.NewSkill) (*models.Skill, error) {
	if err := models.Validate(in); err != nil {
		return nil, err
	}

	id, now := stamp()
	skill := &models.Skill{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Icon:        in.Icon,
		Order:       in.Order,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := d.skillRepo.Add(ctx, skill); err != nil {
		return nil, fmt.Errorf("skill repo: add: %w", err)
	}
	return skill, nil
}

func (d Database) CreateExperience(ctx context.Context, in models.NewExperience) (*models.Experience, error) {
	if err := models.Validate(in); err != nil {
		return nil, err
	}

	id, now := stamp()
	experience := &models.Experience{
		ID:          id,
		Company:     in.Company,
		Role:        in.Role,
		Period:      in.Period,
		Description: in.Description,
		Order:       in.Order,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := d.experienceRepo.Add(ctx, experience); err != nil {
		return nil, fmt.Errorf("experience repo: add: %w", err)
	}
	return experience, nil
}

func (d Database) CreateProject(ctx context.Context, in models.NewProject) (*models.Project, error) {
	if err := models.Validate(in); err != nil {
		return nil, err
	}

	id, now := stamp()
	record := &ProjectRecord{
		ID:           id,
		Title:        in.Title,
		Description:  in.Description,
		ProjectBrief: in.ProjectBrief,
		Client:       in.Client,
		Location:     in.Location,
		Tags:         encodeTags(in.Tags),
		Featured:     in.Featured,
		Order:        in.Order,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := d.projectRepo.Add(ctx, record); err != nil {
		return nil, fmt.Errorf("project repo: add: %w", err)
	}

	project := record.toProject()
	return &project, nil
}

func (d Database) CreateProjectImage(ctx context.Context, in models.NewProjectImage) (*models.ProjectImage, error) {
	if err := models.Validate(in); err != nil {
		return nil, err
	}

	id, now := stamp()
	image := &models.ProjectImage{
		ID:         id,
		ProjectID:  in.ProjectID,
		ImageURL:   in.ImageURL,
		ImageData:  in.ImageData,
		Caption:    in.Caption,
		ImageOrder: imageOrderOrDefault(in.ImageOrder),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := d.projectImageRepo.Add(ctx, image); err != nil {
		return nil, fmt.Errorf("project image repo: add: %w", err)
	}
	return image, nil
}

func (d Database) CreateProfile(ctx context.Context, in models.NewProfile) (*models.Profile, error) {
	if err := models.Validate(in); err != nil {
		return nil, err
	}

	id, now := stamp()
	profile := profileFromInsert(id, now, in)
	if err := d.profileRepo.Add(ctx, profile); err != nil {
		return nil, fmt.Errorf("profile repo: add: %w", err)
	}
	return profile, nil
}

func (d Database) CreateUser(ctx context.Context, in models.NewUser) (*models.User, error) {
	id, _ := stamp()
	user, err := models.UserFromInsert(id, in)
	if err != nil {
		return nil, err
	}
	if err := d.userRepo.Add(ctx, user); err != nil {
		return nil, fmt.Errorf("user repo: add: %w", err)
	}
	return user, nil
}

func (d Database) DeleteProject(ctx context.Context, id string) error {
	if err := d.projectRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("project repo: delete: %w", err)
	}
	return nil
}

func (d Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
