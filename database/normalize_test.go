package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/rpupo63/portfolio-site-backend/models"
)

func TestTagsCodec(t *testing.T) {
	assert.Nil(t, encodeTags(nil))

	empty := encodeTags([]string{})
	require.NotNil(t, empty)
	assert.Equal(t, "[]", string(empty))

	raw := encodeTags([]string{"A", "B"})
	require.NotNil(t, raw)
	assert.Equal(t, []string{"A", "B"}, decodeTags(raw))

	// order and duplicates survive the round trip
	dup := []string{"B", "A", "A", "B"}
	assert.Equal(t, dup, decodeTags(encodeTags(dup)))

	for _, bad := range []string{"", "nope", "[1,2]", "null", `{"x":1}`} {
		assert.Equal(t, []string{}, decodeTags(datatypes.JSON(bad)), bad)
	}
	assert.Equal(t, []string{}, decodeTags(nil))
}

func TestTagsColumnScan(t *testing.T) {
	var fromNull datatypes.JSON
	require.NoError(t, fromNull.Scan(nil))
	assert.Equal(t, []string{}, decodeTags(fromNull))

	var malformed datatypes.JSON
	require.NoError(t, malformed.Scan("not json"))
	assert.Equal(t, []string{}, decodeTags(malformed))

	var valid datatypes.JSON
	require.NoError(t, valid.Scan([]byte(`["x","y"]`)))
	assert.Equal(t, []string{"x", "y"}, decodeTags(valid))

	v, err := encodeTags(nil).Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestSortImagesMissingOrderIsZero(t *testing.T) {
	images := sortImages([]models.ProjectImage{
		{ID: "c", ImageOrder: intPtr(3)},
		{ID: "nil"},
		{ID: "a", ImageOrder: intPtr(1)},
		{ID: "zero", ImageOrder: intPtr(0)},
	})

	ids := make([]string, 0, len(images))
	for _, img := range images {
		ids = append(ids, img.ID)
	}
	assert.Equal(t, []string{"nil", "zero", "a", "c"}, ids)
	assert.Equal(t, []models.ProjectImage{}, sortImages(nil))
}

func TestRowMappingRenamesColumns(t *testing.T) {
	img := imageFromRow(projectImageRow{
		ID:         "i1",
		ProjectID:  "p1",
		ImageURL:   strPtr("https://x/a.png"),
		ImageOrder: intPtr(2),
	})
	assert.Equal(t, "p1", img.ProjectID)
	assert.Equal(t, "https://x/a.png", img.Src())
	assert.Equal(t, 2, img.SortKey())

	grouped := groupImages([]projectImageRow{
		{ID: "i1", ProjectID: "p1"},
		{ID: "i2", ProjectID: "p2"},
		{ID: "i3", ProjectID: "p1"},
	})
	assert.Len(t, grouped["p1"], 2)
	assert.Len(t, grouped["p2"], 1)

	p := withImages(projectFromRow(projectRow{ID: "p3", Title: "t"}), grouped["p3"])
	assert.Equal(t, []string{}, p.Tags)
	assert.Equal(t, []models.ProjectImage{}, p.Images)
}

func TestImageOrderOrDefault(t *testing.T) {
	assert.Equal(t, 0, *imageOrderOrDefault(nil))
	assert.Equal(t, 4, *imageOrderOrDefault(intPtr(4)))
}
