package database

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/rpupo63/portfolio-site-backend/models"
)

// Ordering shared by both adapters. Equal "order" values fall back to
// creation time and then id so results are stable on every backend.
const (
	entityOrdering = `"order" ASC, created_at ASC, id ASC`
	imageOrdering  = `COALESCE(image_order, 0) ASC, created_at ASC, id ASC`
)

// encodeTags produces the persisted JSON text form. nil stays NULL, since an
// empty datatypes.JSON is written as NULL.
func encodeTags(tags []string) datatypes.JSON {
	if tags == nil {
		return nil
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}

// decodeTags never fails: NULL (scanned as "null"), empty and malformed
// values all decode to an empty list.
func decodeTags(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var tags []string
	if err := json.Unmarshal(raw, &tags); err != nil || tags == nil {
		return []string{}
	}
	return tags
}

// sortImages orders a gallery by image order, missing order counting as 0
func sortImages(images []models.ProjectImage) []models.ProjectImage {
	if images == nil {
		return []models.ProjectImage{}
	}
	sort.SliceStable(images, func(i, j int) bool {
		return images[i].SortKey() < images[j].SortKey()
	})
	return images
}

// stamp returns a fresh id and the creation/update timestamp for an insert
func stamp() (string, *time.Time) {
	now := time.Now().UTC()
	return uuid.NewString(), &now
}

// Rows as they come back from the hosted snake_case schema. Every rename to
// the camelCase domain shape happens in the *FromRow helpers below.

type skillRow struct {
	ID          string     `db:"id"`
	Title       string     `db:"title"`
	Description string     `db:"description"`
	Icon        string     `db:"icon"`
	Order       int        `db:"order"`
	CreatedAt   *time.Time `db:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at"`
}

type experienceRow struct {
	ID          string     `db:"id"`
	Company     string     `db:"company"`
	Role        string     `db:"role"`
	Period      string     `db:"period"`
	Description string     `db:"description"`
	Order       int        `db:"order"`
	CreatedAt   *time.Time `db:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at"`
}

type projectRow struct {
	ID           string         `db:"id"`
	Title        string         `db:"title"`
	Description  string         `db:"description"`
	ProjectBrief *string        `db:"project_brief"`
	Client       *string        `db:"client"`
	Location     *string        `db:"location"`
	Tags         datatypes.JSON `db:"tags"`
	Featured     bool           `db:"featured"`
	Order        int            `db:"order"`
	CreatedAt    *time.Time     `db:"created_at"`
	UpdatedAt    *time.Time     `db:"updated_at"`
}

type projectImageRow struct {
	ID         string     `db:"id"`
	ProjectID  string     `db:"project_id"`
	ImageURL   *string    `db:"image_url"`
	ImageData  *string    `db:"image_data"`
	Caption    *string    `db:"caption"`
	ImageOrder *int       `db:"image_order"`
	CreatedAt  *time.Time `db:"created_at"`
	UpdatedAt  *time.Time `db:"updated_at"`
}

type profileRow struct {
	ID           string     `db:"id"`
	Name         string     `db:"name"`
	Title        string     `db:"title"`
	Bio          string     `db:"bio"`
	Email        string     `db:"email"`
	Phone        *string    `db:"phone"`
	Location     *string    `db:"location"`
	LinkedinURL  *string    `db:"linkedin_url"`
	TwitterURL   *string    `db:"twitter_url"`
	InstagramURL *string    `db:"instagram_url"`
	AvatarURL    *string    `db:"avatar_url"`
	AvatarData   *string    `db:"avatar_data"`
	ResumeURL    *string    `db:"resume_url"`
	ResumeData   *string    `db:"resume_data"`
	CreatedAt    *time.Time `db:"created_at"`
	UpdatedAt    *time.Time `db:"updated_at"`
}

func skillFromRow(r skillRow) models.Skill {
	return models.Skill{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Icon:        r.Icon,
		Order:       r.Order,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func experienceFromRow(r experienceRow) models.Experience {
	return models.Experience{
		ID:          r.ID,
		Company:     r.Company,
		Role:        r.Role,
		Period:      r.Period,
		Description: r.Description,
		Order:       r.Order,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func projectFromRow(r projectRow) models.Project {
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

// imageFromRow: project_id, image_url, image_data, image_order, created_at
// and updated_at become projectId, imageUrl, imageData, imageOrder,
// createdAt and updatedAt.
func imageFromRow(r projectImageRow) models.ProjectImage {
	return models.ProjectImage{
		ID:         r.ID,
		ProjectID:  r.ProjectID,
		ImageURL:   r.ImageURL,
		ImageData:  r.ImageData,
		Caption:    r.Caption,
		ImageOrder: r.ImageOrder,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func profileFromRow(r profileRow) models.Profile {
	return models.Profile{
		ID:           r.ID,
		Name:         r.Name,
		Title:        r.Title,
		Bio:          r.Bio,
		Email:        r.Email,
		Phone:        r.Phone,
		Location:     r.Location,
		LinkedinURL:  r.LinkedinURL,
		TwitterURL:   r.TwitterURL,
		InstagramURL: r.InstagramURL,
		AvatarURL:    r.AvatarURL,
		AvatarData:   r.AvatarData,
		ResumeURL:    r.ResumeURL,
		ResumeData:   r.ResumeData,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// groupImages buckets already ordered image rows by owning project
func groupImages(rows []projectImageRow) map[string][]models.ProjectImage {
	byProject := make(map[string][]models.ProjectImage)
	for _, row := range rows {
		byProject[row.ProjectID] = append(byProject[row.ProjectID], imageFromRow(row))
	}
	return byProject
}

// withImages attaches a gallery, guaranteeing non-nil tags and images
func withImages(p models.Project, images []models.ProjectImage) models.ProjectWithImages {
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return models.ProjectWithImages{Project: p, Images: sortImages(images)}
}

func imageOrderOrDefault(order *int) *int {
	if order != nil {
		return order
	}
	zero := 0
	return &zero
}

func profileFromInsert(id string, now *time.Time, in models.NewProfile) *models.Profile {
	return &models.Profile{
		ID:           id,
		Name:         in.Name,
		Title:        in.Title,
		Bio:          in.Bio,
		Email:        in.Email,
		Phone:        in.Phone,
		Location:     in.Location,
		LinkedinURL:  in.LinkedinURL,
		TwitterURL:   in.TwitterURL,
		InstagramURL: in.InstagramURL,
		AvatarURL:    in.AvatarURL,
		AvatarData:   in.AvatarData,
		ResumeURL:    in.ResumeURL,
		ResumeData:   in.ResumeData,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
