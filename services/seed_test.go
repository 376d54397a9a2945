package services

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rpupo63/portfolio-site-backend/database"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

const manifestJSON = `{
  "skills": [
    {"title": "Interior Design", "description": "Modular kitchens", "icon": "Palette", "order": 1},
    {"title": "Space Planning", "description": "AutoCAD layouts", "icon": "Code2", "order": 2}
  ],
  "experiences": [
    {"company": "Sogno", "role": "Interior Designer", "period": "2023 - 2025", "description": "45+ projects", "order": 1}
  ],
  "projects": [
    {
      "title": "Modern Kitchen",
      "description": "A kitchen",
      "client": "Private",
      "tags": ["Kitchen", "Modular"],
      "featured": true,
      "images": [
        {"imageUrl": "https://cdn.example.com/k1.jpg", "imageOrder": 1},
        {"imageFile": "cover.png", "caption": "Cover", "imageOrder": 0}
      ]
    }
  ],
  "profile": {"name": "Ada", "title": "Designer", "bio": "Designs things", "email": "ada@example.com"}
}`

func newSeedStorage(t *testing.T) database.Database {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "seed.db")+"?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	d := database.New(db)
	require.NoError(t, d.Migrate())
	t.Cleanup(func() { d.Close() })
	return d
}

func writeManifest(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cover.png"), pngHeader, 0o644))
	path := filepath.Join(dir, "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	store := newSeedStorage(t)

	manifest, err := LoadManifest(writeManifest(t, manifestJSON))
	require.NoError(t, err)

	report, err := NewSeeder(store).Seed(ctx, manifest)
	require.NoError(t, err)
	assert.Equal(t, SeedReport{Skills: 2, Experiences: 1, Projects: 1, Images: 2, Profile: true}, report)

	projects, err := store.GetProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, []string{"Kitchen", "Modular"}, projects[0].Tags)

	images := projects[0].Images
	require.Len(t, images, 2)
	require.NotNil(t, images[0].ImageData)
	assert.Equal(t, base64.StdEncoding.EncodeToString(pngHeader), *images[0].ImageData)
	assert.Equal(t, "data:image/png;base64,"+*images[0].ImageData, images[0].Src())
	assert.Equal(t, "https://cdn.example.com/k1.jpg", images[1].Src())

	profile, err := store.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ada", profile.Name)
}

func TestParseManifest_SchemaErrors(t *testing.T) {
	cases := map[string]string{
		"missing title":   `{"skills": [{"description": "d", "icon": "i"}]}`,
		"negative order":  `{"experiences": [{"company": "c", "role": "r", "period": "p", "description": "d", "order": -1}]}`,
		"two image kinds": `{"projects": [{"title": "t", "description": "d", "images": [{"imageUrl": "https://x/a.png", "imageData": "aGk="}]}]}`,
		"unknown section": `{"blogPosts": []}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseManifest([]byte(body))
			assert.ErrorContains(t, err, "schema validation failed")
		})
	}

	_, err := ParseManifest([]byte(`{}`))
	assert.NoError(t, err)
}

func TestSeed_RejectsNonImageFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("just text"), 0o644))
	path := filepath.Join(dir, "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"projects": [{"title": "t", "description": "d", "images": [{"imageFile": "notes.txt"}]}]}`), 0o644))

	manifest, err := LoadManifest(path)
	require.NoError(t, err)

	report, err := NewSeeder(newSeedStorage(t)).Seed(context.Background(), manifest)
	assert.ErrorContains(t, err, "not a recognised image")
	assert.Equal(t, 1, report.Projects)
	assert.Equal(t, 0, report.Images)
}

func TestSeed_ValidationFailureStops(t *testing.T) {
	manifest, err := ParseManifest([]byte(`{"profile": {"name": "n", "title": "t", "bio": "b", "email": "nope"}}`))
	require.NoError(t, err)

	report, err := NewSeeder(newSeedStorage(t)).Seed(context.Background(), manifest)
	assert.Error(t, err)
	assert.False(t, report.Profile)
}
