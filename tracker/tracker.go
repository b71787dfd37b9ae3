// Package tracker persists the ban poller's last seen ban ID so a
// restart resumes where the previous process left off.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/infinitybotlist/eureka/jsonimpl"
)

// Repository loads and stores the last seen ban ID. Load on startup,
// Save on every advance and once more on shutdown.
type Repository interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, banID string) error
}

type trackState struct {
	LastSeenBanID string `json:"last_seen_ban_id"`
}

// FileRepository stores the cursor as a small JSON file.
type FileRepository struct {
	Path string

	mu sync.Mutex
}

func NewFileRepository(path string) *FileRepository {
	return &FileRepository{Path: path}
}

func (r *FileRepository) Load(_ context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.Path)

	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}

		return "", fmt.Errorf("failed to read track file: %w", err)
	}

	var state trackState

	err = jsonimpl.Unmarshal(data, &state)

	if err != nil {
		return "", fmt.Errorf("failed to parse track file: %w", err)
	}

	return state.LastSeenBanID, nil
}

func (r *FileRepository) Save(_ context.Context, banID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := jsonimpl.Marshal(trackState{LastSeenBanID: banID})

	if err != nil {
		return fmt.Errorf("failed to marshal track state: %w", err)
	}

	err = os.WriteFile(r.Path, data, 0644)

	if err != nil {
		return fmt.Errorf("failed to write track file: %w", err)
	}

	return nil
}
