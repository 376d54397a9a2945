package client

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fakeFetcher struct {
	projectCalls atomic.Int32
	skillCalls   atomic.Int32
	projects     []models.ProjectWithImages
	skillsErr    error
	release      chan struct{}
}

func (f *fakeFetcher) Skills(ctx context.Context) ([]models.Skill, error) {
	n := f.skillCalls.Add(1)
	if f.release != nil {
		<-f.release
	}
	if f.skillsErr != nil {
		return nil, f.skillsErr
	}
	return []models.Skill{{ID: "s", Title: "Go", Order: int(n)}}, nil
}

func (f *fakeFetcher) Experiences(ctx context.Context) ([]models.Experience, error) {
	return []models.Experience{}, nil
}

func (f *fakeFetcher) Projects(ctx context.Context) ([]models.ProjectWithImages, error) {
	f.projectCalls.Add(1)
	return f.projects, nil
}

func (f *fakeFetcher) Profile(ctx context.Context) (*models.Profile, error) {
	return nil, errs.ErrNotFound
}

func threeProjects() []models.ProjectWithImages {
	order := 1
	url := "https://x/a.png"
	return []models.ProjectWithImages{
		{Project: models.Project{ID: "p1", Title: "First Project"}, Images: []models.ProjectImage{}},
		{Project: models.Project{ID: "p2", Title: "My  Cool   Site"}, Images: []models.ProjectImage{{ID: "i1", ProjectID: "p2", ImageURL: &url, ImageOrder: &order}}},
		{Project: models.Project{ID: "p3", Title: "Third"}},
	}
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "my-cool-site", Slugify("My  Cool   Site"))
	assert.Equal(t, "go", Slugify("Go"))
	assert.Equal(t, "-lead-and-trail-", Slugify(" Lead and\tTrail "))
	assert.Equal(t, "casa-blanca", Slugify("Casa\u00a0Blanca"))
	assert.Equal(t, "a-b-c-d", Slugify("A\vB\u2028C\ufeff\u3000D"))

	projects := []models.ProjectWithImages{
		{Project: models.Project{ID: "p1", Title: "First"}},
		{Project: models.Project{ID: "p2", Title: "Casa\u00a0Blanca"}},
	}
	p, matched := SelectProject(projects, "casa-blanca")
	require.NotNil(t, p)
	assert.True(t, matched)
	assert.Equal(t, "p2", p.ID)
}

func TestSelectProject(t *testing.T) {
	projects := threeProjects()

	p, matched := SelectProject(projects, "p3")
	require.NotNil(t, p)
	assert.True(t, matched)
	assert.Equal(t, "p3", p.ID)

	p, matched = SelectProject(projects, "my-cool-site")
	require.NotNil(t, p)
	assert.True(t, matched)
	assert.Equal(t, "p2", p.ID)

	p, matched = SelectProject(projects, "unknown")
	require.NotNil(t, p)
	assert.False(t, matched)
	assert.Equal(t, "p1", p.ID)

	p, matched = SelectProject(nil, "p1")
	assert.Nil(t, p)
	assert.False(t, matched)
}

func TestQueries_ProjectDetailAndImagesShareOneFetch(t *testing.T) {
	f := &fakeFetcher{projects: threeProjects()}
	q := NewQueries(f, NewQueryCache())
	ctx := context.Background()

	p, err := q.ProjectDetail(ctx, "unknown")
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)

	images, err := q.ProjectImages(ctx, "p2")
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, "https://x/a.png", images[0].Src())

	images, err = q.ProjectImages(ctx, "p3")
	require.NoError(t, err)
	assert.NotNil(t, images)
	assert.Empty(t, images)

	images, err = q.ProjectImages(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, images)

	assert.Equal(t, int32(1), f.projectCalls.Load())

	_, err = q.ProjectDetail(ctx, "")
	assert.ErrorIs(t, err, errs.ErrBadRequest)
}

func TestQueries_ProjectDetailEmptyIsNotFound(t *testing.T) {
	q := NewQueries(&fakeFetcher{projects: []models.ProjectWithImages{}}, nil)

	_, err := q.ProjectDetail(context.Background(), "anything")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestQueryCache_FreshThenStaleWhileRevalidate(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	f := &fakeFetcher{}
	q := NewQueries(f, NewQueryCache(WithClock(clock.Now)))
	ctx := context.Background()

	skills, err := q.Skills(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, skills[0].Order)

	clock.Advance(4 * time.Minute)
	skills, err = q.Skills(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, skills[0].Order)
	assert.Equal(t, int32(1), f.skillCalls.Load())

	// past the stale time the old value is served while a refresh runs
	clock.Advance(2 * time.Minute)
	skills, err = q.Skills(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, skills[0].Order)
	q.Cache().Wait()
	assert.Equal(t, int32(2), f.skillCalls.Load())

	skills, err = q.Skills(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, skills[0].Order)

	state := q.Cache().State(SkillsKey)
	assert.Equal(t, StatusSuccess, state.Status)
	assert.Equal(t, clock.Now(), state.UpdatedAt)
}

func TestQueryCache_FailedRefreshKeepsValue(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	f := &fakeFetcher{}
	q := NewQueries(f, NewQueryCache(WithClock(clock.Now)))
	ctx := context.Background()

	_, err := q.Skills(ctx)
	require.NoError(t, err)

	f.skillsErr = errors.New("network down")
	q.Cache().Invalidate(SkillsKey)
	skills, err := q.Skills(ctx)
	require.NoError(t, err)
	q.Cache().Wait()

	assert.Equal(t, 1, skills[0].Order)
	state := q.Cache().State(SkillsKey)
	assert.Equal(t, StatusSuccess, state.Status)
	assert.EqualError(t, state.Err, "network down")
	assert.NotNil(t, state.Data)
	assert.False(t, state.Refreshing)
}

func TestQueryCache_ColdLoadErrorState(t *testing.T) {
	q := NewQueries(&fakeFetcher{skillsErr: errors.New("boom")}, nil)

	assert.Equal(t, StatusLoading, q.Cache().State(SkillsKey).Status)
	_, err := q.Skills(context.Background())
	assert.EqualError(t, err, "boom")
	assert.Equal(t, StatusFailed, q.Cache().State(SkillsKey).Status)
}

func TestQueryCache_ConcurrentColdLoadsShareOneRequest(t *testing.T) {
	f := &fakeFetcher{release: make(chan struct{})}
	q := NewQueries(f, NewQueryCache())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := q.Skills(context.Background())
			assert.NoError(t, err)
		}()
	}

	require.Eventually(t, func() bool { return f.skillCalls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(f.release)
	wg.Wait()

	assert.Equal(t, int32(1), f.skillCalls.Load())
}

func TestQueryCache_InvalidateByPrefix(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	c := NewQueryCache(WithClock(clock.Now))
	ctx := context.Background()

	var calls atomic.Int32
	load := func(context.Context) (any, error) { return calls.Add(1), nil }

	for _, key := range []Key{{"project-images", "p1"}, {"project-images", "p2"}, {"projects"}} {
		_, err := c.Fetch(ctx, key, load)
		require.NoError(t, err)
	}

	c.InvalidateByPrefix(Key{"project-images"})
	for _, key := range []Key{{"project-images", "p1"}, {"project-images", "p2"}, {"projects"}} {
		_, err := c.Fetch(ctx, key, load)
		require.NoError(t, err)
	}
	c.Wait()

	assert.Equal(t, int32(5), calls.Load())
}
