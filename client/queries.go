package client

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
)

// Fetcher is the uncached source behind Queries; *API implements it.
type Fetcher interface {
	Skills(ctx context.Context) ([]models.Skill, error)
	Experiences(ctx context.Context) ([]models.Experience, error)
	Projects(ctx context.Context) ([]models.ProjectWithImages, error)
	Profile(ctx context.Context) (*models.Profile, error)
}

var (
	SkillsKey      = Key{"skills"}
	ExperiencesKey = Key{"experiences"}
	ProjectsKey    = Key{"projects"}
	ProfileKey     = Key{"profile"}
)

// Queries exposes the cached views the site renders. Project detail and
// project images are selections over the cached ["projects"] result, so
// they never issue a request of their own.
type Queries struct {
	fetcher Fetcher
	cache   *QueryCache
	logger  zerolog.Logger
}

func NewQueries(fetcher Fetcher, cache *QueryCache) *Queries {
	if cache == nil {
		cache = NewQueryCache()
	}
	return &Queries{
		fetcher: fetcher,
		cache:   cache,
		logger:  log.With().Str("component", "queries").Logger(),
	}
}

func (q *Queries) Cache() *QueryCache {
	return q.cache
}

// fetch is Fetch with the result asserted back to T
func fetch[T any](ctx context.Context, c *QueryCache, key Key, load func(context.Context) (T, error)) (T, error) {
	v, err := c.Fetch(ctx, key, func(ctx context.Context) (any, error) {
		return load(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

func (q *Queries) Skills(ctx context.Context) ([]models.Skill, error) {
	return fetch(ctx, q.cache, SkillsKey, q.fetcher.Skills)
}

func (q *Queries) Experiences(ctx context.Context) ([]models.Experience, error) {
	return fetch(ctx, q.cache, ExperiencesKey, q.fetcher.Experiences)
}

func (q *Queries) Projects(ctx context.Context) ([]models.ProjectWithImages, error) {
	return fetch(ctx, q.cache, ProjectsKey, q.fetcher.Projects)
}

func (q *Queries) Profile(ctx context.Context) (*models.Profile, error) {
	return fetch(ctx, q.cache, ProfileKey, q.fetcher.Profile)
}

// ProjectDetail resolves id against project ids and slugified titles. An
// unknown id falls back to the first project; only an empty collection is
// reported as not found.
func (q *Queries) ProjectDetail(ctx context.Context, id string) (*models.ProjectWithImages, error) {
	if id == "" {
		return nil, fmt.Errorf("project detail: %w", errs.ErrBadRequest)
	}

	projects, err := q.Projects(ctx)
	if err != nil {
		return nil, err
	}

	project, matched := SelectProject(projects, id)
	if project == nil {
		return nil, fmt.Errorf("project %q: %w", id, errs.ErrNotFound)
	}
	if !matched {
		q.logger.Warn().Str("requested", id).Str("fallback", project.ID).Msg("no project matched, showing the first one")
	}
	return project, nil
}

// ProjectImages returns the gallery of the project with exactly this id,
// or an empty list when there is none.
func (q *Queries) ProjectImages(ctx context.Context, projectID string) ([]models.ProjectImage, error) {
	if projectID == "" {
		return []models.ProjectImage{}, nil
	}

	projects, err := q.Projects(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range projects {
		if p.ID == projectID {
			if p.Images == nil {
				return []models.ProjectImage{}, nil
			}
			return p.Images, nil
		}
	}
	return []models.ProjectImage{}, nil
}

// whitespace covers Unicode separators (NBSP, U+2028 and friends) and the
// BOM, not just ASCII spaces
var whitespace = regexp.MustCompile(`[\s\v\p{Z}\x{FEFF}]+`)

// Slugify lowercases title and turns each whitespace run into one hyphen
func Slugify(title string) string {
	return whitespace.ReplaceAllString(strings.ToLower(title), "-")
}

// SelectProject finds the project whose id or slugified title equals id.
// When nothing matches it returns the first project with matched=false,
// and nil for an empty list.
func SelectProject(projects []models.ProjectWithImages, id string) (project *models.ProjectWithImages, matched bool) {
	for i := range projects {
		if projects[i].ID == id || Slugify(projects[i].Title) == id {
			return &projects[i], true
		}
	}
	if len(projects) == 0 {
		return nil, false
	}
	return &projects[0], false
}
