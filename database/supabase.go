package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
)

// Queries are written with ? placeholders and rebound for the driver in use
// (lib/pq in production, sqlite3 in tests).
const (
	skillColumns      = `id, title, description, icon, "order", created_at, updated_at`
	experienceColumns = `id, company, role, period, description, "order", created_at, updated_at`
	projectColumns    = `id, title, description, project_brief, client, location, tags, featured, "order", created_at, updated_at`
	imageColumns      = `id, project_id, image_url, image_data, caption, image_order, created_at, updated_at`
	profileColumns    = `id, name, title, bio, email, phone, location, linkedin_url, twitter_url, instagram_url,
		avatar_url, avatar_data, resume_url, resume_data, created_at, updated_at`
	userColumns = `id, username, password`
)

// SupabaseStorage reads the hosted Supabase Postgres schema, whose columns
// are snake_case, and hands back the same camelCase domain types as Database.
type SupabaseStorage struct {
	db *sqlx.DB
}

func NewSupabaseStorage(db *sqlx.DB) *SupabaseStorage {
	return &SupabaseStorage{db: db}
}

func (s *SupabaseStorage) GetSkills(ctx context.Context) ([]models.Skill, error) {
	var rows []skillRow
	query := s.db.Rebind(`SELECT ` + skillColumns + ` FROM skills ORDER BY ` + entityOrdering)
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("supabase storage: select skills: %w", err)
	}

	skills := make([]models.Skill, 0, len(rows))
	for _, row := range rows {
		skills = append(skills, skillFromRow(row))
	}
	return skills, nil
}

func (s *SupabaseStorage) GetExperiences(ctx context.Context) ([]models.Experience, error) {
	var rows []experienceRow
	query := s.db.Rebind(`SELECT ` + experienceColumns + ` FROM experiences ORDER BY ` + entityOrdering)
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("supabase storage: select experiences: %w", err)
	}

	experiences := make([]models.Experience, 0, len(rows))
	for _, row := range rows {
		experiences = append(experiences, experienceFromRow(row))
	}
	return experiences, nil
}

func (s *SupabaseStorage) GetProjects(ctx context.Context) ([]models.ProjectWithImages, error) {
	var projectRows []projectRow
	query := s.db.Rebind(`SELECT ` + projectColumns + ` FROM projects ORDER BY ` + entityOrdering)
	if err := s.db.SelectContext(ctx, &projectRows, query); err != nil {
		return nil, fmt.Errorf("supabase storage: select projects: %w", err)
	}

	// One query for every gallery instead of one per project
	var imageRows []projectImageRow
	query = s.db.Rebind(`SELECT ` + imageColumns + ` FROM project_images ORDER BY ` + imageOrdering)
	if err := s.db.SelectContext(ctx, &imageRows, query); err != nil {
		return nil, fmt.Errorf("supabase storage: select project images: %w", err)
	}
	imagesByProject := groupImages(imageRows)

	projects := make([]models.ProjectWithImages, 0, len(projectRows))
	for _, row := range projectRows {
		projects = append(projects, withImages(projectFromRow(row), imagesByProject[row.ID]))
	}
	return projects, nil
}

func (s *SupabaseStorage) GetProjectByID(ctx context.Context, id string) (*models.ProjectWithImages, error) {
	var row projectRow
	query := s.db.Rebind(`SELECT ` + projectColumns + ` FROM projects WHERE id = ?`)
	if err := s.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("supabase storage: project %q: %w", id, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("supabase storage: select project: %w", err)
	}

	var imageRows []projectImageRow
	query = s.db.Rebind(`SELECT ` + imageColumns + ` FROM project_images WHERE project_id = ? ORDER BY ` + imageOrdering)
	if err := s.db.SelectContext(ctx, &imageRows, query, id); err != nil {
		return nil, fmt.Errorf("supabase storage: select project images: %w", err)
	}

	project := withImages(projectFromRow(row), groupImages(imageRows)[id])
	return &project, nil
}

func (s *SupabaseStorage) GetProfile(ctx context.Context) (*models.Profile, error) {
	var row profileRow
	query := s.db.Rebind(`SELECT ` + profileColumns + ` FROM profile ORDER BY created_at ASC, id ASC LIMIT 1`)
	if err := s.db.GetContext(ctx, &row, query); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("supabase storage: profile: %w", errs.ErrNotFound)
		}
		return nil, fmt.Errorf("supabase storage: select profile: %w", err)
	}

	profile := profileFromRow(row)
	return &profile, nil
}

func (s *SupabaseStorage) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.getUser(ctx, "id", id)
}

func (s *SupabaseStorage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getUser(ctx, "username", username)
}

// users columns match models.User, so no row struct is needed
func (s *SupabaseStorage) getUser(ctx context.Context, column, value string) (*models.User, error) {
	var user models.User
	query := s.db.Rebind(`SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = ?`)
	if err := s.db.GetContext(ctx, &user, query, value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("supabase storage: user %q: %w", value, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("supabase storage: select user: %w", err)
	}
	return &user, nil
}

func (s *SupabaseStorage) CreateSkill(ctx context.Context, in models.NewSkill) (*models.Skill, error) {
	if err := models.Validate(in); err != nil {
		return nil, err
	}

	id, now := stamp()
	row := skillRow{ID: id, Title: in.Title, Description: in.Description, Icon: in.Icon, Order: in.Order, CreatedAt: now, UpdatedAt: now}
	query := `INSERT INTO skills (` + skillColumns + `)
		VALUES (:id, :title, :description, :icon, :order, :created_at, :updated_at)`
	if _, err := s.db.NamedExecContext(ctx, query, row); err != nil {
		return nil, fmt.Errorf("supabase storage: insert skill: %w", err)
	}

	skill := skillFromRow(row)
	return &skill, nil
}

func (s *SupabaseStorage) CreateExperience(ctx context.Context, in models.NewExperience) (*models.Experience, error) {
	if err := models.Validate(in); err != nil {
		return nil, err
	}

	id, now := stamp()
	row := experienceRow{
		ID:          id,
		Company:     in.Company,
		Role:        in.Role,
		Period:      in.Period,
		Description: in.Description,
		Order:       in.Order,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	query := `INSERT INTO experiences (` + experienceColumns + `)
		VALUES (:id, :company, :role, :period, :description, :order, :created_at, :updated_at)`
	if _, err := s.db.NamedExecContext(ctx, query, row); err != nil {
		return nil, fmt.Errorf("supabase storage: insert experience: %w", err)
	}

	experience := experienceFromRow(row)
	return &experience, nil
}

func (s *SupabaseStorage) CreateProject(ctx context.Context, in models.NewProject) (*models.Project, error) {
	if err := models.Validate(in); err != nil {
		return nil, err
	}

	id, now := stamp()
	row := projectRow{
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
	query := `INSERT INTO projects (` + projectColumns + `)
		VALUES (:id, :title, :description, :project_brief, :client, :location, :tags, :featured, :order, :created_at, :updated_at)`
	if _, err := s.db.NamedExecContext(ctx, query, row); err != nil {
		return nil, fmt.Errorf("supabase storage: insert project: %w", err)
	}

	project := projectFromRow(row)
	return &project, nil
}

func (s *SupabaseStorage) CreateProjectImage(ctx context.Context, in models.NewProjectImage) (*models.ProjectImage, error) {
	if err := models.Validate(in); err != nil {
		return nil, err
	}

	id, now := stamp()
	row := projectImageRow{
		ID:         id,
		ProjectID:  in.ProjectID,
		ImageURL:   in.ImageURL,
		ImageData:  in.ImageData,
		Caption:    in.Caption,
		ImageOrder: imageOrderOrDefault(in.ImageOrder),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("supabase storage: begin tx: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.GetContext(ctx, &count, tx.Rebind(`SELECT COUNT(*) FROM projects WHERE id = ?`), in.ProjectID); err != nil {
		return nil, fmt.Errorf("supabase storage: check project: %w", err)
	}
	if count == 0 {
		return nil, fmt.Errorf("supabase storage: project %q: %w", in.ProjectID, errs.ErrNotFound)
	}

	query := `INSERT INTO project_images (` + imageColumns + `)
		VALUES (:id, :project_id, :image_url, :image_data, :caption, :image_order, :created_at, :updated_at)`
	if _, err := tx.NamedExecContext(ctx, query, row); err != nil {
		return nil, fmt.Errorf("supabase storage: insert project image: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("supabase storage: commit project image: %w", err)
	}

	image := imageFromRow(row)
	return &image, nil
}

func (s *SupabaseStorage) CreateProfile(ctx context.Context, in models.NewProfile) (*models.Profile, error) {
	if err := models.Validate(in); err != nil {
		return nil, err
	}

	id, now := stamp()
	profile := profileFromInsert(id, now, in)
	row := profileRow{
		ID:           profile.ID,
		Name:         profile.Name,
		Title:        profile.Title,
		Bio:          profile.Bio,
		Email:        profile.Email,
		Phone:        profile.Phone,
		Location:     profile.Location,
		LinkedinURL:  profile.LinkedinURL,
		TwitterURL:   profile.TwitterURL,
		InstagramURL: profile.InstagramURL,
		AvatarURL:    profile.AvatarURL,
		AvatarData:   profile.AvatarData,
		ResumeURL:    profile.ResumeURL,
		ResumeData:   profile.ResumeData,
		CreatedAt:    profile.CreatedAt,
		UpdatedAt:    profile.UpdatedAt,
	}
	query := `INSERT INTO profile (` + profileColumns + `)
		VALUES (:id, :name, :title, :bio, :email, :phone, :location, :linkedin_url, :twitter_url, :instagram_url,
		:avatar_url, :avatar_data, :resume_url, :resume_data, :created_at, :updated_at)`
	if _, err := s.db.NamedExecContext(ctx, query, row); err != nil {
		return nil, fmt.Errorf("supabase storage: insert profile: %w", err)
	}
	return profile, nil
}

func (s *SupabaseStorage) CreateUser(ctx context.Context, in models.NewUser) (*models.User, error) {
	id, _ := stamp()
	user, err := models.UserFromInsert(id, in)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("supabase storage: begin tx: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.GetContext(ctx, &count, tx.Rebind(`SELECT COUNT(*) FROM users WHERE username = ?`), in.Username); err != nil {
		return nil, fmt.Errorf("supabase storage: check username: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("supabase storage: username %q: %w", in.Username, errs.ErrDuplicate)
	}

	query := `INSERT INTO users (` + userColumns + `) VALUES (:id, :username, :password)`
	if _, err := tx.NamedExecContext(ctx, query, user); err != nil {
		return nil, fmt.Errorf("supabase storage: insert user: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("supabase storage: commit user: %w", err)
	}
	return user, nil
}

func (s *SupabaseStorage) DeleteProject(ctx context.Context, id string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("supabase storage: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM project_images WHERE project_id = ?`), id); err != nil {
		return fmt.Errorf("supabase storage: delete project images: %w", err)
	}
	res, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM projects WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("supabase storage: delete project: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("supabase storage: project %q: %w", id, errs.ErrNotFound)
	}
	return tx.Commit()
}

func (s *SupabaseStorage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SupabaseStorage) Close() error {
	return s.db.Close()
}
