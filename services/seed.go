package services

import (
	"context"
	_ "embed"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/xeipuuv/gojsonschema"

	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/models"
)

//go:embed manifest.schema.json
var manifestSchema []byte

// maxImageFileSize bounds a single local image read during seeding
const maxImageFileSize = 10 << 20

// Manifest is the seed file: everything the site shows, in one document.
type Manifest struct {
	Skills      []models.NewSkill      `json:"skills"`
	Experiences []models.NewExperience `json:"experiences"`
	Projects    []ManifestProject      `json:"projects"`
	Profile     *models.NewProfile     `json:"profile"`

	// dir resolves relative imageFile paths
	dir string
}

// ManifestProject is a project together with its gallery
type ManifestProject struct {
	models.NewProject
	Images []ManifestImage `json:"images"`
}

// ManifestImage is one gallery entry. Exactly one of ImageURL, ImageData or
// ImageFile is set; a local file is stored base64 encoded.
type ManifestImage struct {
	ImageURL   *string `json:"imageUrl"`
	ImageData  *string `json:"imageData"`
	ImageFile  string  `json:"imageFile"`
	Caption    *string `json:"caption"`
	ImageOrder *int    `json:"imageOrder"`
}

// SeedReport counts what Seed inserted
type SeedReport struct {
	Skills      int
	Experiences int
	Projects    int
	Images      int
	Profile     bool
}

// LoadManifest reads path, validates it against the manifest schema and
// decodes it.
func LoadManifest(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	manifest, err := ParseManifest(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	manifest.dir = filepath.Dir(path)
	return manifest, nil
}

// ParseManifest validates and decodes a manifest document. Relative image
// files resolve against the working directory.
func ParseManifest(raw []byte) (*Manifest, error) {
	res, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(manifestSchema),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		return nil, fmt.Errorf("validate manifest: %w", err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))
	}

	var manifest Manifest
	if err := json.Unmarshal(raw, &manifest); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	manifest.dir = "."
	return &manifest, nil
}

// Seeder writes a manifest through the storage Writer
type Seeder struct {
	writer database.Writer
	logger zerolog.Logger
}

func NewSeeder(writer database.Writer) Seeder {
	return Seeder{
		writer: writer,
		logger: log.With().Str("service", "seeder").Logger(),
	}
}

// Seed inserts every entry of m. It stops at the first failure; rows
// written before that are kept.
func (s Seeder) Seed(ctx context.Context, m *Manifest) (SeedReport, error) {
	var report SeedReport

	for _, in := range m.Skills {
		if _, err := s.writer.CreateSkill(ctx, in); err != nil {
			return report, fmt.Errorf("seed skill %q: %w", in.Title, err)
		}
		report.Skills++
	}

	for _, in := range m.Experiences {
		if _, err := s.writer.CreateExperience(ctx, in); err != nil {
			return report, fmt.Errorf("seed experience %q: %w", in.Company, err)
		}
		report.Experiences++
	}

	for _, mp := range m.Projects {
		project, err := s.writer.CreateProject(ctx, mp.NewProject)
		if err != nil {
			return report, fmt.Errorf("seed project %q: %w", mp.Title, err)
		}
		report.Projects++

		for i, img := range mp.Images {
			in, err := s.imageInsert(project.ID, img, m.dir)
			if err != nil {
				return report, fmt.Errorf("seed project %q image %d: %w", mp.Title, i, err)
			}
			if _, err := s.writer.CreateProjectImage(ctx, in); err != nil {
				return report, fmt.Errorf("seed project %q image %d: %w", mp.Title, i, err)
			}
			report.Images++
		}
	}

	if m.Profile != nil {
		if _, err := s.writer.CreateProfile(ctx, *m.Profile); err != nil {
			return report, fmt.Errorf("seed profile: %w", err)
		}
		report.Profile = true
	}

	s.logger.Info().
		Int("skills", report.Skills).
		Int("experiences", report.Experiences).
		Int("projects", report.Projects).
		Int("images", report.Images).
		Bool("profile", report.Profile).
		Msg("seed complete")
	return report, nil
}

func (s Seeder) imageInsert(projectID string, img ManifestImage, dir string) (models.NewProjectImage, error) {
	in := models.NewProjectImage{
		ProjectID:  projectID,
		ImageURL:   img.ImageURL,
		ImageData:  img.ImageData,
		Caption:    img.Caption,
		ImageOrder: img.ImageOrder,
	}
	if img.ImageFile == "" {
		return in, nil
	}

	path := img.ImageFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	data, err := readImageFile(path)
	if err != nil {
		return in, err
	}
	in.ImageData = &data
	return in, nil
}

// readImageFile returns the file base64 encoded after checking its magic
// bytes describe an image.
func readImageFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("image file: %w", err)
	}
	if info.Size() > maxImageFileSize {
		return "", fmt.Errorf("image file %s: %d bytes exceeds %d", path, info.Size(), maxImageFileSize)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("image file: %w", err)
	}

	kind, err := filetype.Match(raw)
	if err != nil || kind == filetype.Unknown || !filetype.IsImage(raw) {
		return "", fmt.Errorf("image file %s: not a recognised image", path)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}
