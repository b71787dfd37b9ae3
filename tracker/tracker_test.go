package tracker

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRepositoryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "track.json")
	repo := NewFileRepository(path)

	// Missing file reads as an empty cursor
	banID, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, banID)

	require.NoError(t, repo.Save(context.Background(), "b42"))

	banID, err = repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "b42", banID)

	// Save overwrites
	require.NoError(t, repo.Save(context.Background(), "b43"))

	banID, err = repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "b43", banID)
}

func TestFileRepositoryCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "track.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	_, err := NewFileRepository(path).Load(context.Background())

	assert.Error(t, err)
}
