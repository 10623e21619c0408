package persist

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docshelf/internal/catalog/model"
)

func sampleDocs() []model.Document {
	return []model.Document{
		{
			ID:           "d1",
			Title:        "Quarterly Report",
			Contributors: []model.Contributor{{ID: "u1", Name: "Ana"}},
			Version:      model.SemanticVersion(1, 2, 0),
			Attachments:  []string{"q1.pdf"},
			CreatedAt:    time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC),
			UpdatedAt:    time.Date(2024, 5, 2, 9, 30, 0, 0, time.UTC),
		},
		{
			ID:        "d2",
			Title:     "Draft",
			Version:   model.NumericVersion(3),
			CreatedAt: time.Date(2024, 5, 3, 9, 30, 0, 0, time.UTC),
			UpdatedAt: time.Date(2024, 5, 3, 9, 30, 0, 0, time.UTC),
		},
	}
}

func TestFileGatewayRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	gw := NewFileGateway(path)

	require.NoError(t, gw.Save(sampleDocs()))

	loaded, err := gw.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "Quarterly Report", loaded[0].Title)
	assert.True(t, loaded[0].Version.IsSemantic())
	assert.Equal(t, []int{1, 2, 0}, loaded[0].Version.Parts())
	assert.False(t, loaded[1].Version.IsSemantic())
	assert.Equal(t, 3, loaded[1].Version.Numeric())
	assert.True(t, loaded[0].CreatedAt.Equal(sampleDocs()[0].CreatedAt))
}

func TestFileGatewayMissingSnapshotIsEmpty(t *testing.T) {
	gw := NewFileGateway(filepath.Join(t.TempDir(), "nope.json"))
	loaded, err := gw.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestFileGatewayCorruptSnapshotIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	loaded, err := NewFileGateway(path).Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestFileGatewaySaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	gw := NewFileGateway(path)

	require.NoError(t, gw.Save(sampleDocs()))
	require.NoError(t, gw.Save(nil))

	loaded, err := gw.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
